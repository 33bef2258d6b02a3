package behavior

import (
	"context"
	"time"
)

type Label string

const (
	LabelNormal             Label = "normal"
	LabelLLMPrefetch        Label = "llm-prefetch"
	LabelAdvancedRAGCrawler Label = "advanced-rag-crawler"

	DefaultWindow = 60 * time.Second

	crawlerMinRequests  = 25
	crawlerMinPaths     = 6
	prefetchMinRequests = 12
	prefetchMaxPaths    = 3
)

// Analyzer records one request for a fingerprint and labels the pattern seen in
// the trailing window. Implementations mutate shared state on every call.
type Analyzer interface {
	Analyze(ctx context.Context, fingerprint, path string) (Label, error)
}

// Classify applies the fixed thresholds to a window's request and distinct path counts.
func Classify(count, distinctPaths int) Label {
	switch {
	case count > crawlerMinRequests && distinctPaths > crawlerMinPaths:
		return LabelAdvancedRAGCrawler
	case count > prefetchMinRequests && distinctPaths <= prefetchMaxPaths:
		return LabelLLMPrefetch
	default:
		return LabelNormal
	}
}

type options struct {
	window time.Duration
	now    func() time.Time
	newID  func() string
}

type Option func(*options)

func WithWindow(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.window = d
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{window: DefaultWindow, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
