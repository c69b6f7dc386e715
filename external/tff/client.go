package tff

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/oguzatak/lig-takip/internal/domain/league"
	"github.com/oguzatak/lig-takip/internal/platform/logging"
	"github.com/oguzatak/lig-takip/internal/platform/resilience"
	"github.com/oguzatak/lig-takip/internal/platform/turktext"
	"github.com/oguzatak/lig-takip/internal/usecase"
)

const (
	defaultBaseURL = "https://www.tff.org"
	maxBodyBytes   = 6 << 20
)

var errTransient = crerr.New("federation site transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client scrapes the federation's league pages. The site serves
// Windows-1254 encoded HTML and throttles non-browser traffic, so requests
// carry browser headers and responses are decoded before parsing.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

// FetchWeek downloads and parses one week's page of a league. The page
// always carries the full standings table plus the fixture list scrolled to
// the requested week.
func (c *Client) FetchWeek(ctx context.Context, lg league.League, week int) (usecase.SourceSnapshot, error) {
	if lg.GroupID <= 0 || lg.PageID <= 0 {
		return usecase.SourceSnapshot{}, fmt.Errorf("league %s has no federation group/page ids", lg.ID)
	}
	if week < 1 {
		week = 1
	}

	fullURL := fmt.Sprintf("%s/Default.aspx?pageID=%d&grupID=%d&hafta=%d", c.baseURL, lg.PageID, lg.GroupID, week)
	html, err := c.fetchHTML(ctx, fullURL)
	if err != nil {
		return usecase.SourceSnapshot{}, err
	}

	snapshot, err := ParsePage(html)
	if err != nil {
		return usecase.SourceSnapshot{}, fmt.Errorf("parse federation page league=%s week=%d: %w", lg.ID, week, err)
	}
	if len(snapshot.Standings) == 0 && len(snapshot.Fixtures) == 0 {
		c.logger.WarnContext(ctx, "federation page yielded no rows",
			"league_id", lg.ID,
			"week", week,
			"html_length", len(html),
		)
	}

	return snapshot, nil
}

func (c *Client) fetchHTML(ctx context.Context, fullURL string) (string, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "federation circuit breaker rejected request", "state", c.breaker.State())
			return "", fmt.Errorf("%w: federation site is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return "", err
	}

	raw, ok := out.([]byte)
	if !ok {
		return "", fmt.Errorf("unexpected response payload type %T", out)
	}
	return turktext.DecodeWindows1254(raw), nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		setBrowserHeaders(req)
		req.Header.Set("Referer", c.baseURL+"/Default.aspx?pageID=981")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: site status=%d", errTransient, resp.StatusCode)
			} else {
				return nil, fmt.Errorf("site status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("site request failed")
	}
	c.logger.WarnContext(ctx, "federation request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "tr-TR,tr;q=0.9,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
