// Package service implements the core proxy forwarding logic.
package service

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/OmarKhaled990/AI-Agent/internal/client"
	"github.com/OmarKhaled990/AI-Agent/internal/config"
	"github.com/OmarKhaled990/AI-Agent/internal/model"
)

// defaultContentType is assumed when either side omits a Content-Type header.
const defaultContentType = "application/json"

// forwardableRequestHeaders are the only request headers forwarded to the backend.
// Authorization carries the platform's Bearer tokens; X-Api-Key carries widget keys.
var forwardableRequestHeaders = []string{
	"Accept",
	"Accept-Encoding",
	"Accept-Language",
	"Authorization",
	"Content-Type",
	"Content-Length",
	"X-Api-Key",
	"X-Request-Id",
}

// forwardableResponseHeaders are the only response headers relayed to the client.
var forwardableResponseHeaders = map[string]bool{
	"Content-Type":     true,
	"Content-Length":   true,
	"Content-Encoding": true,
	"Cache-Control":    true,
	"Date":             true,
	"X-Request-Id":     true,
}

const userAgent = "backend-proxy/1.0"

// Forwarder rebuilds inbound requests against the backend origin and relays
// the backend's response. It holds no per-request state; concurrent Forward
// calls are independent.
type Forwarder struct {
	client *client.BackendClient
	cfg    *config.Config
	logger *slog.Logger
	base   string // backend origin, trailing slash trimmed
}

// NewForwarder creates a Forwarder. The backend base URL is read once from the
// config here; it is never re-read per request.
func NewForwarder(c *client.BackendClient, cfg *config.Config, logger *slog.Logger) (*Forwarder, error) {
	u, err := url.Parse(cfg.Backend.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend base_url must use http or https; got %q", cfg.Backend.BaseURL)
	}

	return &Forwarder{
		client: c,
		cfg:    cfg,
		logger: logger.With("component", "forwarder"),
		base:   strings.TrimRight(cfg.Backend.BaseURL, "/"),
	}, nil
}

// Forward sends a ProxyRequest to the backend and returns the response.
// The caller is responsible for closing the response body.
//
// The backend response is relayed untouched: status code and body pass
// through verbatim, including non-2xx error responses. Only a transport
// failure reaching the backend produces an error.
func (f *Forwarder) Forward(pr *model.ProxyRequest) (*model.ProxyResponse, error) {
	target := f.targetURL(pr.Segments, pr.RawQuery)
	header := f.filterRequestHeaders(pr.Header)

	var body io.Reader
	if pr.Method == http.MethodPost {
		body = pr.Body
		if header.Get("Content-Type") == "" {
			header.Set("Content-Type", defaultContentType)
		}
	}

	f.logger.Debug("forwarding request",
		"method", pr.Method,
		"target", target,
	)

	resp, err := f.client.DoStream(pr.Ctx, pr.Method, target, header, body)
	if err != nil {
		return nil, fmt.Errorf("forward to backend: %w", err)
	}

	resp.Header = f.filterResponseHeaders(resp.Header)
	if resp.Header.Get("Content-Type") == "" {
		resp.Header.Set("Content-Type", defaultContentType)
	}
	return resp, nil
}

// targetURL joins the captured path segments onto the backend origin and
// appends the raw query string verbatim. The query is not decoded and
// re-encoded, so the backend sees exactly what the client sent.
func (f *Forwarder) targetURL(segments []string, rawQuery string) string {
	target := f.base
	if p := strings.Join(segments, "/"); p != "" {
		target += "/" + p
	}
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	return target
}

func (f *Forwarder) filterRequestHeaders(src http.Header) http.Header {
	dst := make(http.Header)
	for _, key := range forwardableRequestHeaders {
		if vals := src.Values(key); len(vals) > 0 {
			dst[http.CanonicalHeaderKey(key)] = vals
		}
	}
	dst.Set("User-Agent", userAgent)
	return dst
}

func (f *Forwarder) filterResponseHeaders(src http.Header) http.Header {
	dst := make(http.Header)
	for key, vals := range src {
		if forwardableResponseHeaders[http.CanonicalHeaderKey(key)] {
			dst[key] = vals
		}
	}
	return dst
}
