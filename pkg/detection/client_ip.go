package detection

import "strings"

const (
	HeaderCFConnectingIP = "CF-Connecting-IP"
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderXRealIP        = "X-Real-IP"
)

// ResolveIP picks the originating client address from proxy headers, in order:
// CF-Connecting-IP, the first X-Forwarded-For entry, X-Real-IP, then fallback.
// Values are returned as sent; nothing is validated.
func ResolveIP(headers map[string]string, fallback string) string {
	if ip := HeaderValue(headers, HeaderCFConnectingIP); ip != "" {
		return ip
	}
	if xff := HeaderValue(headers, HeaderXForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if ip := HeaderValue(headers, HeaderXRealIP); ip != "" {
		return ip
	}
	return fallback
}

// HeaderValue looks a header up case-insensitively and trims the value.
func HeaderValue(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return strings.TrimSpace(v)
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
