package adapter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kbukum/geohttp/logger"
)

// httpOutcome captures a completed HTTP exchange before it is translated
// into the public result/error contract.
type httpOutcome struct {
	statusCode  int
	contentType string
	body        []byte
	readErr     error
}

// doGet issues a GET request and drains the body within the per-call
// deadline. Transport-level failures are returned raw for the caller's
// classifier; body read failures are carried in the outcome so a status
// error is never masked by a secondary read error.
func doGet(ctx context.Context, client *http.Client, cfg *Config, rawurl string, timeout time.Duration, headers map[string]string) (*httpOutcome, error) {
	if timeout <= 0 {
		timeout = cfg.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	for k, v := range cfg.Headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	out := &httpOutcome{
		statusCode:  resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
	}
	out.body, out.readErr = io.ReadAll(resp.Body)
	return out, nil
}

// fetchText is the GetText flow shared by both transports; only the
// pre-response failure classifier differs.
func fetchText(ctx context.Context, client *http.Client, cfg *Config, log *logger.Logger, classify func(error) *Error, rawurl string, timeout time.Duration, headers map[string]string) (string, error) {
	out, err := doGet(ctx, client, cfg, rawurl, timeout, headers)
	if err != nil {
		return "", classify(err)
	}

	if out.statusCode >= 400 {
		// Best-effort body for diagnostics; its absence must never mask
		// the status error.
		var body string
		switch {
		case out.readErr != nil:
			log.Debug("unable to fetch body for a non-successful HTTP response",
				logger.Fields(logger.FieldError, out.readErr.Error(), logger.FieldStatus, out.statusCode))
		default:
			decoded, derr := decodeBody(out.contentType, out.body)
			if derr != nil {
				log.Debug("unable to decode body for a non-successful HTTP response",
					logger.Fields(logger.FieldError, derr.Error(), logger.FieldStatus, out.statusCode))
			} else {
				body = decoded
			}
		}
		return "", NewHTTPStatusError(out.statusCode, body)
	}

	if out.readErr != nil {
		if isTimeoutError(out.readErr) {
			return "", NewTimeoutError(out.readErr)
		}
		return "", NewServiceError(fmt.Errorf("unable to read the response: %w", out.readErr))
	}

	text, derr := decodeBody(out.contentType, out.body)
	if derr != nil {
		return "", NewParseError("unable to decode the response bytes", derr)
	}
	return text, nil
}
