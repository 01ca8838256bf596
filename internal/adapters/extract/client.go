// Package extract calls the task extraction service that turns a raw brain
// dump into structured tasks plus a suggested daily schedule
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"braindump/internal/core/workflow"
	perr "braindump/internal/platform/errors"
	"braindump/internal/platform/logger"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultMaxRetry  = 2
	defaultRetryBase = 400 * time.Millisecond
)

// Options configures the Client
type Options struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration

	// Retry config for transient upstream responses
	MaxRetries int
	RetryBase  time.Duration
}

// Client is a thin JSON client for the extraction endpoint
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	sleep func(time.Duration)
	now   func() time.Time
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("extract"),
		sleep: time.Sleep,
		now:   time.Now,
	}
}

// Extract submits content, a submit-time timestamp and preferences, and
// returns the repaired task set. Zero usable tasks is a success; transport
// and upstream failures surface as extraction errors so the caller can keep
// the buffer for a retry
func (c *Client) Extract(ctx context.Context, content string, prefs Preferences) ([]workflow.Task, *workflow.Schedule, error) {
	body, err := json.Marshal(extractRequest{
		Content:     content,
		Timestamp:   c.now().UTC().Format(time.RFC3339),
		Preferences: prefs,
	})
	if err != nil {
		return nil, nil, perr.Wrapf(err, perr.ErrorCodeExtraction, "extract encode failed")
	}

	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/extract", bytes.NewReader(body))
		if err != nil {
			return nil, nil, perr.Wrapf(err, perr.ErrorCodeExtraction, "extract new request failed")
		}
		req.Header.Set("Content-Type", "application/json")
		if c.opts.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
		}

		start := time.Now()
		resp, err := c.http.Do(req)
		if err != nil {
			if attempts >= c.opts.MaxRetries {
				return nil, nil, perr.Wrapf(err, perr.ErrorCodeExtraction, "extract request failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Err(err).Dur("retry_in", back).Int("attempt", attempts).Msg("extract transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.log.Debug().
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", time.Since(start)).
			Msg("extract http response")

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			var wire extractResponse
			err := json.NewDecoder(resp.Body).Decode(&wire)
			_ = resp.Body.Close()
			if err != nil {
				return nil, nil, perr.Wrapf(err, perr.ErrorCodeExtraction, "extract decode failed")
			}
			tasks := wire.toTasks()
			return tasks, wire.toSchedule(tasks), nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			_ = drain(resp.Body)
			if attempts >= c.opts.MaxRetries {
				return nil, nil, perr.Extractionf("extract upstream returned %d", resp.StatusCode)
			}
			back := c.backoff(attempts)
			c.log.Warn().Int("status", resp.StatusCode).Dur("retry_in", back).Msg("extract transient error retrying")
			c.sleep(back)
			attempts++
			continue
		default:
			tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return nil, nil, perr.Extractionf("extract unexpected status %d body %s", resp.StatusCode, string(tail))
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase << uint(attempt)
	if d > 10*time.Second {
		d = 10 * time.Second
	}
	return d
}

func drain(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 4096))
	return rc.Close()
}
