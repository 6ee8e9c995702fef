package pagefetcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/catalog-scraper/internal/entity"
	"go.uber.org/zap"
)

type fakeSource struct {
	bodies map[string]string
	calls  []string
	err    error
}

func (s *fakeSource) Get(ctx context.Context, url string) ([]byte, error) {
	s.calls = append(s.calls, url)
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.bodies[url]), nil
}

type memCache struct {
	pages   map[string][]byte
	expiry  time.Duration
	failGet bool
}

func (c *memCache) Get(ctx context.Context, url string) ([]byte, bool, error) {
	if c.failGet {
		return nil, false, errors.New("cache down")
	}
	b, ok := c.pages[url]
	return b, ok, nil
}

func (c *memCache) Set(ctx context.Context, url string, body []byte, expiry time.Duration) error {
	c.pages[url] = body
	c.expiry = expiry
	return nil
}

const page1 = "https://clone.nl/instock/genre/techno?sort=id&order=desc&page=1"

func TestFetchPageBuildsListingURL(t *testing.T) {
	src := &fakeSource{bodies: map[string]string{page1: `<h3><a href="x">T</a></h3>`}}
	f := NewFetcher("https://clone.nl", src, zap.NewNop())

	doc, err := f.FetchPage(context.Background(), "techno", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{page1}, src.calls)
	assert.Equal(t, "T", doc.Find("h3 a").Text())
}

func TestFetchPagePropagatesTransportError(t *testing.T) {
	src := &fakeSource{err: &entity.TransportError{Kind: entity.TransportTimeout, URL: page1, Err: context.DeadlineExceeded}}
	f := NewFetcher("https://clone.nl", src, zap.NewNop())

	_, err := f.FetchPage(context.Background(), "techno", 1)
	assert.True(t, entity.IsTimeout(err))
}

func TestFetchPageUsesCache(t *testing.T) {
	src := &fakeSource{bodies: map[string]string{page1: "<p>fresh</p>"}}
	cache := &memCache{pages: map[string][]byte{}}
	f := NewFetcher("https://clone.nl", src, zap.NewNop(), WithCache(cache, time.Hour))

	_, err := f.FetchPage(context.Background(), "techno", 1)
	require.NoError(t, err)
	doc, err := f.FetchPage(context.Background(), "techno", 1)
	require.NoError(t, err)

	assert.Len(t, src.calls, 1)
	assert.Equal(t, time.Hour, cache.expiry)
	assert.Equal(t, "fresh", doc.Find("p").Text())
}

func TestFetchPageCacheFailureFallsBackToSource(t *testing.T) {
	src := &fakeSource{bodies: map[string]string{page1: "<p>fresh</p>"}}
	cache := &memCache{pages: map[string][]byte{}, failGet: true}
	f := NewFetcher("https://clone.nl", src, zap.NewNop(), WithCache(cache, time.Hour))

	_, err := f.FetchPage(context.Background(), "techno", 1)
	require.NoError(t, err)
	assert.Len(t, src.calls, 1)
}

func TestWithCacheDisabledByZeroTTL(t *testing.T) {
	cache := &memCache{pages: map[string][]byte{}}
	f := NewFetcher("https://clone.nl", &fakeSource{}, zap.NewNop(), WithCache(cache, 0))
	assert.Nil(t, f.cache)
}
