// Package transport provides the shared HTTP client used for every tool
// invocation. It owns the base URL, the per-request timeout, and the
// default parameters (the API key) injected on every outgoing request.
package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/brukhabtu/places-mcp/internal/common"
)

// maxResponseSize caps response bodies to prevent OOM from unexpectedly
// large upstream responses.
const maxResponseSize = 50 << 20 // 50MB

// Config holds transport construction parameters. The credential is an
// explicit configuration value here, never a hidden global lookup, so
// multiple transports with different keys can coexist in one process.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	DefaultQuery  url.Values
	DefaultHeader http.Header
}

// Transport is the long-lived HTTP collaborator shared by all invocations.
// Its http.Client connection pool supports concurrent use.
type Transport struct {
	baseURL       string
	client        *http.Client
	defaultQuery  url.Values
	defaultHeader http.Header
	logger        *common.Logger
}

// Response is a raw upstream HTTP response. Status mapping is the
// invoker's concern; the transport returns every response it receives.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// New creates a transport. Default parameters are copied so later mutation
// of the config cannot affect in-flight requests.
func New(cfg Config, logger *common.Logger) *Transport {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	q := url.Values{}
	for k, vs := range cfg.DefaultQuery {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	h := http.Header{}
	for k, vs := range cfg.DefaultHeader {
		for _, v := range vs {
			h.Add(k, v)
		}
	}

	return &Transport{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		client:        &http.Client{Timeout: timeout},
		defaultQuery:  q,
		defaultHeader: h,
		logger:        logger,
	}
}

// BaseURL returns the configured base URL.
func (t *Transport) BaseURL() string {
	return t.baseURL
}

// Do executes exactly one HTTP request. Per-call query and header values
// are applied first and the transport defaults are set last, so a caller
// can never strip or override a mandatory default such as the credential.
func (t *Transport) Do(ctx context.Context, method, path string, query url.Values, header http.Header, body []byte, contentType string) (*Response, error) {
	merged := url.Values{}
	for k, vs := range query {
		for _, v := range vs {
			merged.Add(k, v)
		}
	}
	for k, vs := range t.defaultQuery {
		merged.Del(k)
		for _, v := range vs {
			merged.Add(k, v)
		}
	}

	requestURL := t.baseURL + path
	if len(merged) > 0 {
		requestURL += "?" + merged.Encode()
	}

	var bodyReader io.Reader
	if len(body) > 0 {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Err: err}
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, vs := range t.defaultHeader {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	t.logger.Debug().Str("method", method).Str("path", path).Msg("upstream request")

	start := time.Now()
	resp, err := t.client.Do(req)
	duration := time.Since(start)
	if err != nil {
		t.logger.Error().Str("method", method).Str("path", path).Int64("duration_ms", duration.Milliseconds()).Str("error", err.Error()).Msg("upstream request failed")
		return nil, classify(ctx, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, classify(ctx, err)
	}

	t.logger.Debug().Int("status", resp.StatusCode).Int64("duration_ms", duration.Milliseconds()).Msg("upstream response")

	return &Response{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        respBody,
	}, nil
}

// classify maps a client error onto a typed transport error.
func classify(ctx context.Context, err error) *Error {
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return &Error{Kind: KindCanceled, Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: KindTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, Err: err}
	}
	return &Error{Kind: KindNetwork, Err: err}
}
