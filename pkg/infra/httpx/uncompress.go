package httpx

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/valyala/fasthttp"
)

type decoder func(body []byte) ([]byte, error)

var decoders = map[string]decoder{
	"br": func(body []byte) ([]byte, error) {
		return io.ReadAll(brotli.NewReader(bytes.NewReader(body)))
	},
	"gzip": func(body []byte) ([]byte, error) {
		r, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		return readAndClose(r)
	},
	"zstd": func(body []byte) ([]byte, error) {
		d, err := zstd.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		defer d.Close()
		return io.ReadAll(d)
	},
	// deflate is zlib-wrapped per RFC 9110 but some servers send raw DEFLATE.
	"deflate": func(body []byte) ([]byte, error) {
		if r, err := zlib.NewReader(bytes.NewReader(body)); err == nil {
			return readAndClose(r)
		}
		return readAndClose(flate.NewReader(bytes.NewReader(body)))
	},
}

// DecodeChain undoes the Content-Encoding of resp, last coding first, so
// "gzip, br" is brotli-decoded then gunzipped. It reports whether anything
// was decoded.
func DecodeChain(resp *fasthttp.Response, body []byte) ([]byte, bool, error) {
	header := string(resp.Header.Peek(fasthttp.HeaderContentEncoding))
	if header == "" {
		return body, false, nil
	}
	codings := strings.Split(header, ",")
	changed := false
	for i := len(codings) - 1; i >= 0; i-- {
		coding := strings.ToLower(strings.TrimSpace(codings[i]))
		switch coding {
		case "", "identity", "compress":
			continue
		}
		decode, ok := decoders[coding]
		if !ok {
			return nil, false, fmt.Errorf("unsupported content-encoding: %q", coding)
		}
		out, err := decode(body)
		if err != nil {
			return nil, false, fmt.Errorf("decoding %s body: %w", coding, err)
		}
		body = out
		changed = true
	}
	return body, changed, nil
}

func readAndClose(r io.ReadCloser) ([]byte, error) {
	out, err := io.ReadAll(r)
	if cerr := r.Close(); err == nil {
		err = cerr
	}
	return out, err
}
