package apifootball

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/booze-baton/internal/domain/baton"
	"github.com/riskibarqy/booze-baton/internal/platform/logging"
	"github.com/riskibarqy/booze-baton/internal/platform/metrics"
	"github.com/riskibarqy/booze-baton/internal/platform/resilience"
	"github.com/riskibarqy/booze-baton/internal/usecase"
)

const (
	defaultBaseURL   = "https://v3.football.api-sports.io"
	apiKeyHeader     = "x-apisports-key"
	maxResponseBytes = 6 << 20
	breakerName      = "api-football"
)

var (
	errTransient     = crerr.New("api-football transient failure")
	ErrMissingAPIKey = crerr.New("api-football key is not configured")
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	Metrics        *metrics.Recorder
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to API-Football v3.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxRetries     int
	logger         *logging.Logger
	metrics        *metrics.Recorder
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight[[]byte]
	backoff        func(attempt int) time.Duration
}

var _ usecase.FootballDataProvider = (*Client)(nil)

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
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	breaker := resilience.NewCircuitBreaker(breakerName, cfg.CircuitBreaker)
	breaker.OnStateChange(func(name string, _, to resilience.CircuitState) {
		cfg.Metrics.CircuitChanged(name, to != resilience.CircuitStateClosed)
		logger.Warn("api-football circuit breaker changed state", "breaker", name, "state", string(to))
	})

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		metrics:        cfg.Metrics,
		breaker:        breaker,
		circuitEnabled: cfg.CircuitBreaker.Enabled,
		backoff:        linearBackoff,
	}
}

func (c *Client) SearchTeams(ctx context.Context, query string) ([]usecase.TeamSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: team search query is required", usecase.ErrInvalidInput)
	}

	var resp envelope[teamItem]
	if err := c.doJSON(ctx, "teams", url.Values{"search": {query}}, &resp); err != nil {
		return nil, fmt.Errorf("search teams %q: %w", query, err)
	}

	out := make([]usecase.TeamSearchResult, 0, len(resp.Response))
	for _, item := range resp.Response {
		if item.Team.ID <= 0 {
			continue
		}
		out = append(out, item.toResult())
	}
	return out, nil
}

func (c *Client) FinishedFixtures(ctx context.Context, teamID int64, last int) ([]baton.Fixture, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("%w: team id must be > 0", usecase.ErrInvalidInput)
	}
	if last <= 0 {
		last = 100
	}

	params := url.Values{
		"team":   {strconv.FormatInt(teamID, 10)},
		"last":   {strconv.Itoa(last)},
		"status": {"FT"},
	}
	var resp envelope[fixtureItem]
	if err := c.doJSON(ctx, "fixtures", params, &resp); err != nil {
		return nil, fmt.Errorf("fetch finished fixtures for team %d: %w", teamID, err)
	}

	out := make([]baton.Fixture, 0, len(resp.Response))
	for _, item := range resp.Response {
		out = append(out, item.toFixture())
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, endpoint string, params url.Values, target providerPayload) error {
	if c.apiKey == "" {
		return fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, ErrMissingAPIKey)
	}
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "api-football circuit breaker rejected request", "endpoint", endpoint, "state", string(c.breaker.State()))
			return fmt.Errorf("%w: sports data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + "/" + endpoint
	if encoded := params.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	started := time.Now()
	raw, _, err := c.flight.Do(fullURL, func() ([]byte, error) {
		body, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return body, reqErr
	})
	if err != nil {
		c.metrics.ProviderRequest(endpoint, "error", time.Since(started))
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, err)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		c.metrics.ProviderRequest(endpoint, "decode_error", time.Since(started))
		return fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, crerr.Wrap(err, "decode provider payload"))
	}
	if msg, ok := target.providerError(); ok {
		c.metrics.ProviderRequest(endpoint, "api_error", time.Since(started))
		return fmt.Errorf("%w: provider reported errors: %s", usecase.ErrDependencyUnavailable, c.sanitize(msg))
	}

	c.metrics.ProviderRequest(endpoint, "ok", time.Since(started))
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set(apiKeyHeader, c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			lastErr = crerr.Mark(crerr.Newf("send request: %s", c.sanitize(err.Error())), errTransient)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Mark(crerr.Wrap(readErr, "read response body"), errTransient)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Mark(crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw)), errTransient)
			default:
				return nil, crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(c.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "api-football request failed", "url", fullURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

func (c *Client) sanitize(value string) string {
	value = strings.TrimSpace(value)
	if c.apiKey != "" {
		value = strings.ReplaceAll(value, c.apiKey, "REDACTED")
	}
	return value
}

func linearBackoff(attempt int) time.Duration {
	return time.Duration(attempt+1) * time.Second
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
