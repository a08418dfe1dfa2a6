package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/shruti0731/MiniProject2/config"
	"github.com/shruti0731/MiniProject2/pkg/logger"
)

// ErrBackend covers every failed call to the OCR/translation API: network errors,
// non-2xx answers and bodies that are not the expected JSON.
var ErrBackend = errors.New("backend request failed")

// Backend is the OCR/translation API as seen by an UploadClient
type Backend interface {
	Upload(ctx context.Context, filename string, r io.Reader) (*UploadResponse, error)
	Translate(ctx context.Context, text string) (*TranslateResponse, error)
}

// UploadResponse is the /upload answer. Text and Translation are absent when
// the backend found nothing to read in the image.
type UploadResponse struct {
	Message     string `json:"message"`
	Text        string `json:"text"`
	Translation string `json:"translation,omitempty"`
}

// TranslateRequest is the /translate body
type TranslateRequest struct {
	Text string `json:"text"`
}

// TranslateResponse is the /translate answer
type TranslateResponse struct {
	Translation string `json:"translation"`
	Message     string `json:"message,omitempty"`
}

// errorResponse is the failure body the backend sends with 4xx/5xx
type errorResponse struct {
	Error string `json:"error"`
}

// OCRClient talks to the /upload and /translate endpoints
type OCRClient struct {
	config *config.BackendConfig
	http   *resty.Client
}

func NewOCRClient(cfg *config.BackendConfig) *OCRClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &OCRClient{
		config: cfg,
		http: resty.New().
			SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

// Upload sends the file as multipart field "file" and returns the extracted text
func (c *OCRClient) Upload(ctx context.Context, filename string, r io.Reader) (*UploadResponse, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", filename, r).
		Post(c.config.UploadPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to send upload: %v", ErrBackend, err)
	}

	logger.Debug(ctx, "backend upload answered",
		"status", resp.StatusCode(),
		"latency_ms", resp.Time().Milliseconds(),
	)

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: upload: %s", ErrBackend, describeFailure(resp))
	}

	var result UploadResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("%w: failed to parse upload response: %v, body: %s", ErrBackend, err, abbreviate(resp.String(), 512))
	}

	return &result, nil
}

// Translate posts {"text": text} and returns the translation
func (c *OCRClient) Translate(ctx context.Context, text string) (*TranslateResponse, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(TranslateRequest{Text: text}).
		Post(c.config.TranslatePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to send translate: %v", ErrBackend, err)
	}

	logger.Debug(ctx, "backend translate answered",
		"status", resp.StatusCode(),
		"latency_ms", resp.Time().Milliseconds(),
	)

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: translate: %s", ErrBackend, describeFailure(resp))
	}

	var result TranslateResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("%w: failed to parse translate response: %v, body: %s", ErrBackend, err, abbreviate(resp.String(), 512))
	}

	return &result, nil
}

// describeFailure prefers the backend's own {"error": ...} text over the raw body
func describeFailure(resp *resty.Response) string {
	var body errorResponse
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		return fmt.Sprintf("%s: %s", resp.Status(), body.Error)
	}
	return fmt.Sprintf("%s; body: %s", resp.Status(), abbreviate(resp.String(), 512))
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:runeCut(s, n)]
	}
	return s[:runeCut(s, n-3)] + "..."
}

// runeCut returns the largest index <= n that starts a rune
func runeCut(s string, n int) int {
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return n
}
