package resty_client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/user/catalog-scraper/internal/entity"
	"github.com/user/catalog-scraper/pkg/proxy"
)

var errTooManyRedirects = errors.New("too many redirects")

// Client is a plain HTTP PageSource.
type Client struct {
	http    *resty.Client
	proxies *proxy.Manager
}

// Options configures the HTTP client.
type Options struct {
	Timeout      time.Duration
	MaxRedirects int
}

// NewClient creates an HTTP PageSource. User agents and proxies rotate through pm.
func NewClient(pm *proxy.Manager, opts Options) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = pm.ProxyFunc

	maxRedirects := opts.MaxRedirects
	client := resty.New().
		SetTransport(transport).
		SetTimeout(opts.Timeout).
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("%w: stopped after %d", errTooManyRedirects, len(via))
			}
			return nil
		}))

	return &Client{http: client, proxies: pm}
}

// Get fetches url and returns the body of a 2xx response.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("User-Agent", c.proxies.GetUserAgent()).
		Get(url)
	if err != nil {
		return nil, &entity.TransportError{Kind: classify(err), URL: url, Err: err}
	}
	if !res.IsSuccess() {
		return nil, &entity.TransportError{
			Kind:       entity.TransportOther,
			URL:        url,
			StatusCode: res.StatusCode(),
			Err:        fmt.Errorf("unexpected status %s", res.Status()),
		}
	}
	return res.Body(), nil
}

func classify(err error) entity.TransportKind {
	if errors.Is(err, errTooManyRedirects) {
		return entity.TransportRedirectLoop
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return entity.TransportTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return entity.TransportTimeout
	}
	return entity.TransportOther
}
