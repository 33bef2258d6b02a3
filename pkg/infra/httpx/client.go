package httpx

import (
	"context"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
)

const (
	DefaultTimeout             = 5 * time.Second
	DefaultMaxConnsPerHost     = 64
	DefaultMaxResponseBodySize = 1 << 20
	DefaultUserAgent           = "BotTracker/1.0"
)

// Response is a detached copy of a fasthttp response; its body is already
// content-decoded.
type Response struct {
	StatusCode int
	Body       []byte
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter
type Client interface {
	Get(ctx context.Context, url string) (*Response, error)
	PostJSON(ctx context.Context, url string, body []byte) (*Response, error)
}

type Options struct {
	Timeout             time.Duration
	MaxConnsPerHost     int
	MaxResponseBodySize int
	UserAgent           string
	// Dial overrides the dialer, mainly for in-memory listeners in tests.
	Dial fasthttp.DialFunc
}

type Option func(*Options)

func WithTimeout(d time.Duration) Option {
	return func(o *Options) { o.Timeout = d }
}

func WithUserAgent(ua string) Option {
	return func(o *Options) { o.UserAgent = ua }
}

func WithMaxResponseBodySize(n int) Option {
	return func(o *Options) { o.MaxResponseBodySize = n }
}

func WithDial(dial fasthttp.DialFunc) Option {
	return func(o *Options) { o.Dial = dial }
}

type fastHTTPClient struct {
	client  *fasthttp.Client
	timeout time.Duration
	ua      string
}

func NewClient(opts ...Option) Client {
	o := &Options{
		Timeout:             DefaultTimeout,
		MaxConnsPerHost:     DefaultMaxConnsPerHost,
		MaxResponseBodySize: DefaultMaxResponseBodySize,
		UserAgent:           DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(o)
	}
	return &fastHTTPClient{
		client: &fasthttp.Client{
			MaxConnsPerHost:     o.MaxConnsPerHost,
			MaxResponseBodySize: o.MaxResponseBodySize,
			ReadTimeout:         o.Timeout,
			WriteTimeout:        o.Timeout,
			MaxIdleConnDuration: 30 * time.Second,
			Dial:                o.Dial,
		},
		timeout: o.Timeout,
		ua:      o.UserAgent,
	}
}

func (c *fastHTTPClient) Get(ctx context.Context, url string) (*Response, error) {
	return c.do(ctx, fasthttp.MethodGet, url, nil)
}

func (c *fastHTTPClient) PostJSON(ctx context.Context, url string, body []byte) (*Response, error) {
	return c.do(ctx, fasthttp.MethodPost, url, body)
}

func (c *fastHTTPClient) do(ctx context.Context, method, url string, body []byte) (*Response, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderUserAgent, c.ua)
	req.Header.Set(fasthttp.HeaderAcceptEncoding, "gzip, br, zstd, deflate")
	if body != nil {
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}

	raw := append([]byte(nil), resp.Body()...)
	decoded, _, err := DecodeChain(resp, raw)
	if err != nil {
		return nil, err
	}
	return &Response{StatusCode: resp.StatusCode(), Body: decoded}, nil
}
