package chromedp_crawler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/user/catalog-scraper/internal/entity"
)

func TestClassify(t *testing.T) {
	live := context.Background()
	expired, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	<-expired.Done()

	assert.Equal(t, entity.TransportRedirectLoop,
		classify(live, errors.New("page load error net::ERR_TOO_MANY_REDIRECTS")))
	assert.Equal(t, entity.TransportTimeout,
		classify(live, errors.New("page load error net::ERR_TIMED_OUT")))
	assert.Equal(t, entity.TransportTimeout,
		classify(live, fmt.Errorf("navigate: %w", context.DeadlineExceeded)))
	assert.Equal(t, entity.TransportTimeout,
		classify(expired, errors.New("context canceled")))
	assert.Equal(t, entity.TransportOther,
		classify(live, errors.New("page load error net::ERR_NAME_NOT_RESOLVED")))
}
