package suggest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/couchcryptid/place-suggest-export/internal/domain"
	"github.com/couchcryptid/place-suggest-export/internal/observability"
)

// ErrFetch marks every failure to obtain a decoded response array: transport
// errors, non-2xx statuses, unreadable bodies and bodies that are not a JSON array.
var ErrFetch = errors.New("fetch suggestions")

// maxErrorBody caps how much of a non-2xx body is quoted in the error.
const maxErrorBody = 512

// Client implements domain.Suggester against the position-suggest API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a suggest client. A zero timeout leaves requests unbounded.
func NewClient(baseURL, userAgent string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:   baseURL,
		userAgent: userAgent,
		metrics:   metrics,
		logger:    logger,
	}
}

// RequestURL returns the request target for term. The term is appended to the
// base URL as-is, without percent-encoding.
func (c *Client) RequestURL(term string) string {
	return c.baseURL + term
}

// Suggest fetches the positions matching term. An empty result is returned as
// a zero-length slice with a nil error.
func (c *Client) Suggest(ctx context.Context, term string) ([]domain.RawSuggestion, error) {
	target := c.RequestURL(term)
	c.logger.Debug("requesting suggestions", "url", target)

	start := domain.Now()
	records, err := c.doRequest(ctx, target)
	c.metrics.SuggestDuration.Observe(domain.Since(start).Seconds())

	if err != nil {
		c.metrics.SuggestRequests.WithLabelValues("error").Inc()
		c.logger.Error("suggest request failed", "term", term, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	if len(records) == 0 {
		c.metrics.SuggestRequests.WithLabelValues("empty").Inc()
		c.logger.Info("suggest returned no results", "term", term)
		return []domain.RawSuggestion{}, nil
	}

	c.metrics.SuggestRequests.WithLabelValues("success").Inc()
	c.logger.Info("suggest returned results", "term", term, "count", len(records))
	return records, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string) ([]domain.RawSuggestion, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, escapeStrayPercent(fullURL), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("suggest request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("suggest API error: status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return decodeArray(body)
}

// escapeStrayPercent encodes each '%' that does not start a valid escape as
// "%25", so a term like "100%" reaches the server instead of failing to parse.
// Valid escapes pass through untouched.
func escapeStrayPercent(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && (i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2])) {
			b.WriteString("%25")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// decodeArray splits a JSON array body into its elements without decoding them.
func decodeArray(body []byte) ([]domain.RawSuggestion, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("decode response: body is not a JSON array")
	}

	var records []domain.RawSuggestion
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return records, nil
}
