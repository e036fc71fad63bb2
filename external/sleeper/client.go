package sleeper

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/draft-assistant/internal/domain/player"
	"github.com/riskibarqy/draft-assistant/internal/platform/logging"
	"github.com/riskibarqy/draft-assistant/internal/platform/resilience"
	"github.com/riskibarqy/draft-assistant/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL  = "https://api.sleeper.app/v1"
	defaultSport    = "nfl"
	defaultTimeout  = 30 * time.Second
	maxPayloadBytes = 64 << 20
)

var errSleeperTransient = crerr.New("sleeper transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Sport      string
	Timeout    time.Duration
	MaxRetries int
	// RequestsPerSecond spaces out attempts, retries included. When set it
	// replaces the linear retry backoff; zero falls back to the backoff.
	RequestsPerSecond float64
	Logger            *logging.Logger
	CircuitBreaker    resilience.CircuitBreakerConfig
}

// Client reads the public Sleeper player catalogue.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	sport          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	limiter        *rate.Limiter
	backoff        func(attempt int) time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("sleeper")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport, otelhttp.WithSpanNameFormatter(sleeperSpanName)),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	sport := strings.ToLower(strings.TrimSpace(cfg.Sport))
	if sport == "" {
		sport = defaultSport
	}

	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("sleeper circuit breaker state changed", "from", from, "to", to)
	})

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		sport:          sport,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        breaker,
		circuitEnabled: cfg.CircuitBreaker.Enabled,
		limiter:        limiter,
		backoff:        linearBackoff,
	}
}

func sleeperSpanName(_ string, r *http.Request) string {
	return "sleeper " + r.Method + " " + r.URL.Path
}

func linearBackoff(attempt int) time.Duration {
	return time.Duration(attempt+1) * time.Second
}

// FetchRecords downloads every player of the configured sport, ordered by
// Sleeper player id.
func (c *Client) FetchRecords(ctx context.Context) ([]player.Record, error) {
	path := "/players/" + c.sport
	raw, err := c.doGet(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetch players sport=%s: %w", c.sport, err)
	}

	var payload PlayersResponse
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, crerr.Wrapf(err, "decode sleeper players payload sport=%s", c.sport)
	}

	records := make([]player.Record, 0, len(payload))
	for key, item := range payload {
		records = append(records, item.toRecord(key))
	}
	sort.SliceStable(records, func(i, j int) bool {
		return lessExternalID(records[i].ExternalID, records[j].ExternalID)
	})

	c.logger.DebugContext(ctx, "sleeper players fetched", "sport", c.sport, "records", len(records), "bytes", len(raw))
	return records, nil
}

func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	fullURL := c.baseURL + path

	if !c.circuitEnabled {
		return c.executeRequest(ctx, fullURL)
	}

	var body []byte
	err := c.breaker.Execute(func() error {
		var reqErr error
		body, reqErr = c.executeRequest(ctx, fullURL)
		return reqErr
	}, isSleeperCircuitFailure)
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "sleeper circuit breaker rejected request", "state", c.breaker.State())
		return nil, fmt.Errorf("%w: player data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		return nil, err
	}

	return body, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("wait for rate limiter: %w", err)
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Mark(crerr.Wrap(err, "send request"), errSleeperTransient)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Mark(crerr.Wrap(readErr, "read response body"), errSleeperTransient)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Mark(crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw)), errSleeperTransient)
			default:
				return nil, crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		if c.limiter != nil {
			// the limiter paces the next attempt
			continue
		}
		timer := time.NewTimer(c.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("provider request failed")
	}
	c.logger.WarnContext(ctx, "sleeper request failed", "url", fullURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

func isSleeperCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return crerr.Is(err, errSleeperTransient)
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
