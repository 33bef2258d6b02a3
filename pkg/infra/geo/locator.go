package geo

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/NeuralTrust/BotTracker/pkg/domain"
	"github.com/NeuralTrust/BotTracker/pkg/infra/cache"
	"github.com/NeuralTrust/BotTracker/pkg/infra/httpx"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
)

const (
	DefaultBaseURL = "http://ip-api.com/json/"
	DefaultTimeout = 2 * time.Second
)

var errLookupFailed = errors.New("geo lookup failed")

// Locator resolves an IP to a coarse location. It never fails: any problem
// yields nil.
type Locator interface {
	Locate(ctx context.Context, ip string) *domain.GeoLocationJSON
}

type ipAPILocator struct {
	logger  *logrus.Logger
	client  httpx.Client
	breaker httpx.CircuitBreaker
	baseURL string
	timeout time.Duration
	cache   *cache.TTLMap
	parsers fastjson.ParserPool
}

func NewLocator(
	logger *logrus.Logger,
	client httpx.Client,
	breaker httpx.CircuitBreaker,
	memoryCache *cache.TTLMap,
	baseURL string,
	timeout time.Duration,
) Locator {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ipAPILocator{
		logger:  logger,
		client:  client,
		breaker: breaker,
		baseURL: baseURL,
		timeout: timeout,
		cache:   memoryCache,
	}
}

func (l *ipAPILocator) Locate(ctx context.Context, ip string) *domain.GeoLocationJSON {
	if !IsPublic(ip) {
		return nil
	}
	if l.cache != nil {
		if v, ok := l.cache.Get(ip); ok {
			loc, _ := v.(*domain.GeoLocationJSON)
			return loc
		}
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	var loc *domain.GeoLocationJSON
	err := l.breaker.Execute(func() error {
		resp, err := l.client.Get(ctx, l.baseURL+ip)
		if err != nil {
			return err
		}
		if !resp.IsSuccess() {
			return fmt.Errorf("%w: status %d", errLookupFailed, resp.StatusCode)
		}
		loc, err = l.parse(resp.Body)
		return err
	})
	if err != nil {
		l.logger.WithError(err).WithField("ip", ip).Debug("geolocation unavailable")
		return nil
	}
	if l.cache != nil {
		l.cache.Set(ip, loc)
	}
	return loc
}

// parse reads an ip-api.com body. A well-formed body with a status other
// than "success" (reserved ranges, quota) is a nil location, not an error.
func (l *ipAPILocator) parse(body []byte) (*domain.GeoLocationJSON, error) {
	p := l.parsers.Get()
	defer l.parsers.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errLookupFailed, err)
	}
	if string(v.GetStringBytes("status")) != "success" {
		return nil, nil
	}
	return &domain.GeoLocationJSON{
		Country: string(v.GetStringBytes("country")),
		City:    string(v.GetStringBytes("city")),
		Region:  string(v.GetStringBytes("regionName")),
		Lat:     v.GetFloat64("lat"),
		Lon:     v.GetFloat64("lon"),
		ISP:     string(v.GetStringBytes("isp")),
	}, nil
}

// IsPublic reports whether ip parses and is globally routable.
func IsPublic(ip string) bool {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return false
	}
	return !(parsed.IsPrivate() ||
		parsed.IsLoopback() ||
		parsed.IsUnspecified() ||
		parsed.IsLinkLocalUnicast() ||
		parsed.IsLinkLocalMulticast() ||
		parsed.IsMulticast())
}
