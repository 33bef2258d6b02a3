package httpx_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/NeuralTrust/BotTracker/pkg/infra/httpx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

func startServer(t *testing.T, handler fasthttp.RequestHandler) httpx.Client {
	t.Helper()
	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: handler}
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = ln.Close() })

	return httpx.NewClient(
		httpx.WithTimeout(time.Second),
		httpx.WithDial(func(string) (net.Conn, error) { return ln.Dial() }),
	)
}

func TestClient_Get(t *testing.T) {
	client := startServer(t, func(ctx *fasthttp.RequestCtx) {
		assert.Equal(t, "GET", string(ctx.Method()))
		assert.Equal(t, httpx.DefaultUserAgent, string(ctx.UserAgent()))
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("hello")
	})

	resp, err := client.Get(context.Background(), "http://example.test/path")
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())
	assert.Equal(t, "hello", string(resp.Body))
}

func TestClient_PostJSON(t *testing.T) {
	client := startServer(t, func(ctx *fasthttp.RequestCtx) {
		assert.Equal(t, "POST", string(ctx.Method()))
		assert.Equal(t, "application/json", string(ctx.Request.Header.ContentType()))
		assert.JSONEq(t, `{"a":1}`, string(ctx.PostBody()))
		ctx.SetStatusCode(fasthttp.StatusBadGateway)
	})

	resp, err := client.PostJSON(context.Background(), "http://hook.test/", []byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, fasthttp.StatusBadGateway, resp.StatusCode)
	assert.False(t, resp.IsSuccess())
}

func TestClient_CancelledContext(t *testing.T) {
	client := startServer(t, func(ctx *fasthttp.RequestCtx) {})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Get(ctx, "http://example.test/")
	assert.ErrorIs(t, err, context.Canceled)
}
