package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/OmarKhaled990/AI-Agent/internal/client"
	"github.com/OmarKhaled990/AI-Agent/internal/config"
	"github.com/OmarKhaled990/AI-Agent/internal/service"
)

func TestRegisterRoutes_Wiring(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer backend.Close()

	cfg := &config.Config{
		Backend: config.BackendConfig{
			BaseURL:         backend.URL,
			TimeoutSeconds:  10,
			IdleConnections: 10,
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bc := client.NewBackendClient(cfg, logger, nil)
	fwd, err := service.NewForwarder(bc, cfg, logger)
	if err != nil {
		t.Fatalf("NewForwarder: %v", err)
	}

	proxy := NewProxyHandler(fwd, logger)
	health := NewHealthHandler(cfg, "test")

	e := echo.New()
	RegisterRoutes(e, proxy, health)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"GET /healthz", http.MethodGet, "/healthz", http.StatusOK},
		{"GET /proxy/status", http.MethodGet, "/proxy/status", http.StatusOK},
		{"GET /api/backend/chatbots", http.MethodGet, "/api/backend/chatbots", http.StatusOK},
		{"GET /api/backend with query", http.MethodGet, "/api/backend/analytics/events?days=7", http.StatusOK},
		{"POST /api/backend/chat", http.MethodPost, "/api/backend/chat", http.StatusOK},
		{"PUT not registered", http.MethodPut, "/api/backend/chatbots/1", http.StatusMethodNotAllowed},
		{"DELETE not registered", http.MethodDelete, "/api/backend/chatbots/1", http.StatusMethodNotAllowed},
		{"GET /unknown returns 404", http.MethodGet, "/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
