package chromedp_crawler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/user/catalog-scraper/internal/entity"
	"github.com/user/catalog-scraper/pkg/proxy"
	"go.uber.org/zap"
)

// ChromedpCrawler is a PageSource that renders pages in headless Chrome.
// Used when the shop serves listings that need JavaScript or blocks plain clients.
type ChromedpCrawler struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	timeout     time.Duration
	logger      *zap.Logger
}

// NewChromedpCrawler starts a browser allocator. Call Close when done.
func NewChromedpCrawler(pm *proxy.Manager, pageLoadTimeout time.Duration, logger *zap.Logger) *ChromedpCrawler {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(pm.GetUserAgent()),
	)
	if p := pm.GetProxy(); p != "" {
		opts = append(opts, chromedp.ProxyServer(p))
	}
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &ChromedpCrawler{
		allocCtx:    allocCtx,
		allocCancel: cancel,
		timeout:     pageLoadTimeout,
		logger:      logger,
	}
}

// Get navigates to url and returns the rendered document HTML.
func (c *ChromedpCrawler) Get(ctx context.Context, url string) ([]byte, error) {
	taskCtx, cancel := chromedp.NewContext(c.allocCtx, chromedp.WithLogf(c.logger.Sugar().Debugf))
	defer cancel()

	taskCtx, cancel = context.WithTimeout(taskCtx, c.timeout)
	defer cancel()

	// propagate caller cancellation into the browser task
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	// first document response is the page itself; redirects never reach it
	var status atomic.Int64
	chromedp.ListenTarget(taskCtx, func(ev interface{}) {
		if e, ok := ev.(*network.EventResponseReceived); ok && e.Type == network.ResourceTypeDocument {
			status.CompareAndSwap(0, e.Response.Status)
		}
	})

	var html string
	err := chromedp.Run(taskCtx,
		network.Enable(),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		c.logger.Debug("browser fetch failed", zap.String("url", url), zap.Error(err))
		return nil, &entity.TransportError{Kind: classify(taskCtx, err), URL: url, Err: err}
	}
	if code := int(status.Load()); code >= 300 {
		return nil, &entity.TransportError{
			Kind:       entity.TransportOther,
			URL:        url,
			StatusCode: code,
			Err:        fmt.Errorf("unexpected status %d", code),
		}
	}
	return []byte(html), nil
}

// Close shuts the browser down.
func (c *ChromedpCrawler) Close() {
	c.allocCancel()
}

func classify(ctx context.Context, err error) entity.TransportKind {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "ERR_TOO_MANY_REDIRECTS"):
		return entity.TransportRedirectLoop
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(ctx.Err(), context.DeadlineExceeded),
		strings.Contains(msg, "ERR_TIMED_OUT"):
		return entity.TransportTimeout
	default:
		return entity.TransportOther
	}
}
