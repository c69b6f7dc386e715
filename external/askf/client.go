package askf

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/oguzatak/lig-takip/internal/platform/logging"
	"github.com/oguzatak/lig-takip/internal/platform/resilience"
	"github.com/oguzatak/lig-takip/internal/usecase"
)

const (
	defaultPageURL = "https://karabukaskf.com/kategori/9/1-amator"
	maxBodyBytes   = 6 << 20
)

var errTransient = crerr.New("amateur federation site transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	PageURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client scrapes the amateur federation's category page. The page is UTF-8,
// unlike the national federation site, so no charset decoding is needed.
type Client struct {
	httpClient     *http.Client
	pageURL        string
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

	pageURL := cfg.PageURL
	if pageURL == "" {
		pageURL = defaultPageURL
	}
	return &Client{
		httpClient:     httpClient,
		pageURL:        pageURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

// FetchGroups downloads and parses the single page carrying both groups.
func (c *Client) FetchGroups(ctx context.Context) (usecase.GroupSnapshots, error) {
	html, err := c.fetchHTML(ctx)
	if err != nil {
		return usecase.GroupSnapshots{}, err
	}

	groups, err := ParsePage(html)
	if err != nil {
		return usecase.GroupSnapshots{}, fmt.Errorf("parse amateur page: %w", err)
	}
	if len(groups.GroupA.Standings) == 0 && len(groups.GroupB.Standings) == 0 {
		c.logger.WarnContext(ctx, "amateur page yielded no standings", "html_length", len(html))
	}

	return groups, nil
}

func (c *Client) fetchHTML(ctx context.Context) (string, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "amateur circuit breaker rejected request", "state", c.breaker.State())
			return "", fmt.Errorf("%w: amateur federation site is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(c.pageURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx)
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
	return string(raw), nil
}

func (c *Client) executeRequest(ctx context.Context) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pageURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "tr-TR,tr;q=0.9,en;q=0.5")
		req.Header.Set("Connection", "keep-alive")

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
	c.logger.WarnContext(ctx, "amateur federation request failed", "url", c.pageURL, "error", lastErr)
	return nil, lastErr
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
