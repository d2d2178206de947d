// Package model defines shared types for the proxy.
package model

import (
	"context"
	"io"
	"net/http"
)

// ProxyRequest represents a client request to be forwarded to the backend.
// Segments is the ordered wildcard path capture as produced by the router;
// RawQuery is the inbound query string, carried verbatim.
type ProxyRequest struct {
	Ctx      context.Context
	Method   string
	Segments []string
	RawQuery string
	Header   http.Header
	Body     io.ReadCloser
}

// ProxyResponse represents the backend response to be streamed back.
type ProxyResponse struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}
