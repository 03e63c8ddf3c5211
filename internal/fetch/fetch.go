// Package fetch downloads the source stat pages into a raw staging
// directory. The network step is isolated here so the rest of the pipeline
// only ever reads local files, and a season already on disk is never
// re-fetched unless asked.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"

	"qbrankings/internal/source"
)

// userAgent identifies the scraper honestly. Some stat sites reject blank
// or default library agents.
const userAgent = "qbrankings/1.0 (stats research; github.com/qbrankings)"

const defaultTimeout = 30 * time.Second

// Client downloads source pages. Zero retries: a failed page aborts the
// run rather than hammering the site.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the progress logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// New builds a download client.
func New(opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetHeader("User-Agent", userAgent).
			SetTimeout(defaultTimeout).
			SetRetryCount(0),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Download fetches every (source, year) page and writes it to rawDir under
// the source's staging filename. Existing files are skipped unless force is
// set. Any HTTP failure or non-2xx status aborts the whole run.
func (c *Client) Download(ctx context.Context, rawDir string, sources []source.Descriptor, years []int, force bool) error {
	if err := os.MkdirAll(rawDir, 0o755); err != nil {
		return fmt.Errorf("create raw dir: %w", err)
	}

	for _, year := range years {
		for _, src := range sources {
			path := filepath.Join(rawDir, src.RawFile(year))
			if !force {
				if _, err := os.Stat(path); err == nil {
					c.logger.Debug("already staged", "source", src.Name, "year", year, "path", path)
					continue
				}
			}
			if err := c.fetchOne(ctx, src, year, path); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Client) fetchOne(ctx context.Context, src source.Descriptor, year int, path string) error {
	url := src.URL(year)
	c.logger.Info("downloading", "source", src.Name, "year", year, "url", url)

	res, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return fmt.Errorf("fetch %s %d: %w", src.Name, year, err)
	}
	if res.IsError() {
		return fmt.Errorf("fetch %s %d: %s returned %s", src.Name, year, url, res.Status())
	}

	// Write through a temp file so a partial body never looks staged.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, res.Body(), 0o644); err != nil {
		return fmt.Errorf("stage %s %d: %w", src.Name, year, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("stage %s %d: %w", src.Name, year, err)
	}

	c.logger.Info("staged", "source", src.Name, "year", year, "bytes", len(res.Body()), "path", path)
	return nil
}
