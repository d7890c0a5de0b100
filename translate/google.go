package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultEndpoint = "https://translate.googleapis.com/translate_a/single"

// GoogleClient calls the public web translation endpoint (the same one
// the original googletrans library uses). No API key is required; the
// endpoint is best-effort and rate-limited upstream, which is why the
// Service wraps every call in per-chunk fallback.
type GoogleClient struct {
	httpClient *http.Client
	endpoint   string
	log        *zap.Logger
}

// GoogleOption customizes a GoogleClient.
type GoogleOption func(*GoogleClient)

// WithHTTPClient overrides the underlying *http.Client.
func WithHTTPClient(hc *http.Client) GoogleOption {
	return func(c *GoogleClient) { c.httpClient = hc }
}

// WithEndpoint overrides the service URL (used by tests).
func WithEndpoint(u string) GoogleOption {
	return func(c *GoogleClient) { c.endpoint = u }
}

// WithLogger sets the request logger.
func WithLogger(l *zap.Logger) GoogleOption {
	return func(c *GoogleClient) { c.log = l }
}

// NewGoogleClient builds a client with sane timeouts.
func NewGoogleClient(opts ...GoogleOption) *GoogleClient {
	c := &GoogleClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		endpoint:   defaultEndpoint,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Translate submits one chunk and returns the translated text.
func (c *GoogleClient) Translate(ctx context.Context, text, target string) (string, error) {
	reqID := uuid.NewString()

	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", "auto")
	q.Set("tl", target)
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("translate: build request: %w", err)
	}

	c.log.Debug("translate request",
		zap.String("request_id", reqID),
		zap.String("target", target),
		zap.Int("chars", len(text)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate: request %s: %w", reqID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("translate: request %s: status %d: %s", reqID, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("translate: request %s: read body: %w", reqID, err)
	}
	return parseGoogleResponse(body)
}

// parseGoogleResponse extracts translated text from the endpoint's
// nested-array payload: [[["translated","original",...],...],...].
func parseGoogleResponse(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("translate: decode response: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("translate: empty response")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("translate: decode segments: %w", err)
	}

	var b strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(seg[0], &part); err != nil {
			continue
		}
		b.WriteString(part)
	}
	return b.String(), nil
}
