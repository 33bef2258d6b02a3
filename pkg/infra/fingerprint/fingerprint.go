package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Headers that feed the fingerprint. Missing ones are encoded as null so the
// canonical record always has the same shape.
var fingerprintHeaders = []struct {
	header string
	field  string
}{
	{"Accept", "accept"},
	{"Accept-Language", "accept_language"},
	{"Accept-Encoding", "accept_encoding"},
}

// Generate derives a stable client identifier from the user agent, a few
// request headers and the first two octets of the IP. Clients rotating within
// the same /16 collapse to one fingerprint.
func Generate(userAgent string, headers map[string]string, ip string) string {
	record := make(map[string]interface{}, len(fingerprintHeaders)+2)
	record["user_agent"] = userAgent
	record["ip_prefix"] = IPPrefix(ip)
	for _, h := range fingerprintHeaders {
		if v, ok := lookup(headers, h.header); ok {
			record[h.field] = v
		} else {
			record[h.field] = nil
		}
	}

	// encoding/json writes map keys in sorted order.
	canonical, err := json.Marshal(record)
	if err != nil {
		canonical = []byte(userAgent + "|" + IPPrefix(ip))
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}

// IPPrefix keeps the first two dot-separated components of ip.
func IPPrefix(ip string) string {
	parts := strings.SplitN(strings.TrimSpace(ip), ".", 3)
	if len(parts) < 2 {
		return parts[0]
	}
	return parts[0] + "." + parts[1]
}

func lookup(headers map[string]string, name string) (string, bool) {
	if v, ok := headers[name]; ok {
		return v, true
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}
