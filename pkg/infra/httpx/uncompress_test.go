package httpx

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

const token = "aibot-detect=Zm9vYmFy"

func respWithEncoding(enc string) *fasthttp.Response {
	resp := &fasthttp.Response{}
	if enc != "" {
		resp.Header.Set("Content-Encoding", enc)
	}
	return resp
}

func gz(data []byte) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, _ = w.Write(data)
	_ = w.Close()
	return buf.Bytes()
}

func br(data []byte) []byte {
	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	_, _ = w.Write(data)
	_ = w.Close()
	return buf.Bytes()
}

func zs(data []byte) []byte {
	var buf bytes.Buffer
	w, _ := zstd.NewWriter(&buf)
	_, _ = w.Write(data)
	_ = w.Close()
	return buf.Bytes()
}

func zl(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, _ = w.Write(data)
	_ = w.Close()
	return buf.Bytes()
}

func rawDeflate(data []byte) []byte {
	var buf bytes.Buffer
	w, _ := flate.NewWriter(&buf, flate.DefaultCompression)
	_, _ = w.Write(data)
	_ = w.Close()
	return buf.Bytes()
}

func TestDecodeChain(t *testing.T) {
	plain := []byte(token)
	tests := []struct {
		name     string
		encoding string
		body     []byte
		changed  bool
	}{
		{"no encoding", "", plain, false},
		{"identity", "identity", plain, false},
		{"gzip", "gzip", gz(plain), true},
		{"brotli", "br", br(plain), true},
		{"zstd", "zstd", zs(plain), true},
		{"zlib deflate", "deflate", zl(plain), true},
		{"raw deflate", "deflate", rawDeflate(plain), true},
		{"chained gzip then br", "gzip, br", br(gz(plain)), true},
		{"upper case", "GZIP", gz(plain), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, changed, err := DecodeChain(respWithEncoding(tt.encoding), tt.body)
			require.NoError(t, err)
			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, token, string(out))
		})
	}
}

func TestDecodeChain_Errors(t *testing.T) {
	_, _, err := DecodeChain(respWithEncoding("lzma"), []byte("x"))
	assert.ErrorContains(t, err, "unsupported content-encoding")

	_, _, err = DecodeChain(respWithEncoding("gzip"), []byte("not gzip"))
	assert.Error(t, err)
}
