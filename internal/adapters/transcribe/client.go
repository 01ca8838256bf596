// Package transcribe calls the remote speech-to-text service. The client
// satisfies the voice capture session's transcriber seam
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"braindump/internal/core/normalize"
	perr "braindump/internal/platform/errors"
	"braindump/internal/platform/logger"
)

const defaultTimeout = 60 * time.Second

// Options configures the Client
type Options struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration

	// ContentType of the uploaded audio, defaults to audio/webm
	ContentType string
}

// Client posts captured audio and returns the normalized transcript
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	norm *normalize.Normalizer
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.ContentType == "" {
		o.ContentType = "audio/webm"
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("transcribe"),
		norm: normalize.New(),
	}
}

// Transcribe uploads audio and returns the transcript text. Empty audio
// short-circuits to an empty transcript without touching the network
func (c *Client) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	if len(audio) == 0 {
		return "", nil
	}

	u := c.opts.BaseURL + "/transcribe"
	if language != "" {
		u += "?language=" + url.QueryEscape(language)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(audio))
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeTranscription, "transcribe new request failed")
	}
	req.Header.Set("Content-Type", c.opts.ContentType)
	if c.opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeTranscription, "transcribe request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Int("status", resp.StatusCode).
		Int("audio_bytes", len(audio)).
		Dur("latency", time.Since(start)).
		Msg("transcribe http response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", perr.Transcriptionf("transcribe unexpected status %d body %s", resp.StatusCode, string(tail))
	}

	var wire struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeTranscription, "transcribe decode failed")
	}
	return c.norm.Normalize(wire.Text), nil
}
