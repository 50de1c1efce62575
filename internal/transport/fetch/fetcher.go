// Package fetch retrieves plain-text content from job posting URLs.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hirebase/assessrec/internal/domain"
)

const (
	// DefaultTimeout bounds a single fetch attempt.
	DefaultTimeout = 10 * time.Second
	// DefaultMaxBodyBytes caps the response body read.
	DefaultMaxBodyBytes = 2 << 20
)

var (
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Config holds fetcher settings. Zero values fall back to defaults.
type Config struct {
	Timeout      time.Duration
	MaxBodyBytes int64
	UserAgent    string
	Logger       *zap.Logger
}

// Fetcher performs a single bounded HTTP GET and returns the page
// content with HTML tags stripped and whitespace collapsed. No
// retries; any failure maps to domain.ErrFetchUnavailable and the
// caller proceeds without the content.
type Fetcher struct {
	client       *http.Client
	maxBodyBytes int64
	userAgent    string
	logger       *zap.Logger
}

// New creates a fetcher.
func New(cfg Config) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		client:       &http.Client{Timeout: timeout},
		maxBodyBytes: maxBody,
		userAgent:    cfg.UserAgent,
		logger:       logger,
	}
}

// FetchText retrieves the URL and returns its plain-text content.
func (f *Fetcher) FetchText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %w", domain.ErrFetchUnavailable, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrFetchUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: unexpected status %d", domain.ErrFetchUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", domain.ErrFetchUnavailable, err)
	}

	text := StripHTML(string(body))
	f.logger.Debug("Fetched URL content",
		zap.String("url", url),
		zap.Int("bytes", len(body)),
		zap.Int("text_len", len(text)),
	)
	return text, nil
}

// StripHTML replaces tags with spaces and collapses whitespace runs.
func StripHTML(s string) string {
	s = tagRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
