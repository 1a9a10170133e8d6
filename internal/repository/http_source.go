package repository

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"plant_monitor/internal/models"

	"github.com/go-resty/resty/v2"
)

const (
	httpSourceRetries      = 2
	httpSourceRetryWait    = 500 * time.Millisecond
	httpSourceRetryMaxWait = 2 * time.Second
)

// HTTPSource fetches the fixture document from a remote URL.
type HTTPSource struct {
	client *resty.Client
	url    string
}

var _ FixtureSource = (*HTTPSource)(nil)

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(httpSourceRetries).
		SetRetryWaitTime(httpSourceRetryWait).
		SetRetryMaxWaitTime(httpSourceRetryMaxWait).
		SetHeader("Accept", "application/json")
	return &HTTPSource{client: client, url: url}
}

func (s *HTTPSource) Load(ctx context.Context) ([]models.Site, error) {
	resp, err := s.client.R().SetContext(ctx).Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("fetch fixture %q: %w", s.url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch fixture %q: unexpected status %d", s.url, resp.StatusCode())
	}
	sites, err := DecodeSites(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("fixture %q: %w", s.url, err)
	}
	return sites, nil
}
