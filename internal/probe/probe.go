// Package probe checks that the remote site answers the shell's user agent.
// It runs beside the real navigation and only feeds diagnostics.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"tiktok-desktop/internal/infrastructure/errors"
	"tiktok-desktop/internal/infrastructure/logging"
)

// Result is what one successful probe saw
type Result struct {
	URL        string
	StatusCode int
	Title      string
	Duration   time.Duration
}

// Prober fetches the remote page with colly
type Prober struct {
	timeout   time.Duration
	retry     *errors.RetryConfig
	transport http.RoundTripper
	logger    logging.Logger
}

// Option configures a Prober
type Option func(*Prober)

// WithRetryConfig overrides the retry policy
func WithRetryConfig(cfg *errors.RetryConfig) Option {
	return func(p *Prober) { p.retry = cfg }
}

// WithTransport overrides the HTTP transport
func WithTransport(rt http.RoundTripper) Option {
	return func(p *Prober) { p.transport = rt }
}

// New creates a prober with a per-request timeout
func New(timeout time.Duration, logger logging.Logger, opts ...Option) *Prober {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	p := &Prober{
		timeout: timeout,
		retry:   errors.DefaultRetryConfig(),
		logger:  logging.With(logger, "component", "probe"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe fetches url as userAgent, retrying network failures and timeouts
func (p *Prober) Probe(ctx context.Context, url, userAgent string) error {
	_, err := p.Check(ctx, url, userAgent)
	return err
}

// Check is Probe returning what the page looked like
func (p *Prober) Check(ctx context.Context, url, userAgent string) (*Result, error) {
	var result *Result
	err := errors.WithRetryContext(ctx, p.retry, func(ctx context.Context) error {
		r, err := p.visit(ctx, url, userAgent)
		if err != nil {
			return err
		}
		result = r
		return nil
	}, "probe")
	if err != nil {
		return nil, err
	}

	p.logger.Info("Remote site reachable",
		"url", result.URL,
		"status", result.StatusCode,
		"title", result.Title,
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

func (p *Prober) visit(ctx context.Context, url, userAgent string) (*Result, error) {
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.AllowURLRevisit(),
		colly.StdlibContext(ctx),
	)
	if p.timeout > 0 {
		c.SetRequestTimeout(p.timeout)
	}
	if p.transport != nil {
		c.WithTransport(p.transport)
	}

	result := &Result{URL: url}
	start := time.Now()

	c.OnResponse(func(r *colly.Response) {
		result.StatusCode = r.StatusCode
	})
	c.OnHTML("title", func(e *colly.HTMLElement) {
		if result.Title == "" {
			result.Title = strings.TrimSpace(e.Text)
		}
	})

	var visitErr error
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			result.StatusCode = r.StatusCode
		}
		visitErr = err
	})

	if err := c.Visit(url); err != nil && visitErr == nil {
		visitErr = err
	}
	result.Duration = time.Since(start)

	if visitErr != nil {
		if ctx.Err() != nil {
			visitErr = ctx.Err()
		}
		return nil, errors.WrapWithContext("probe", visitErr, map[string]string{
			"url":    url,
			"status": fmt.Sprintf("%d", result.StatusCode),
		})
	}
	return result, nil
}
