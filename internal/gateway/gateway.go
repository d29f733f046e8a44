package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/LuckyFay12/shareit/internal/config"
	"github.com/LuckyFay12/shareit/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Gateway is the public edge: it validates requests and rate-limits callers,
// then forwards everything that passes to the backend server unchanged.
// Business rules live behind it.
type Gateway struct {
	serverURL string
	client    *http.Client
	limiter   *userLimiter
	server    *http.Server
	logger    *zerolog.Logger
}

func New(cfg config.GatewayConfig, logger *zerolog.Logger) *Gateway {
	g := &Gateway{
		serverURL: strings.TrimRight(cfg.ServerURL, "/"),
		client:    &http.Client{Timeout: 30 * time.Second},
		limiter:   newUserLimiter(cfg.RateLimit),
		logger:    logger,
	}

	g.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           g.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	return g
}

// Handler builds the edge route table. Every route validates its input and
// forwards; routes without a validator forward as-is.
func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /users", g.validated(g.validateUserCreate))
	mux.HandleFunc("GET /users", g.forwardHandler)
	mux.HandleFunc("GET /users/{id}", g.withPathID(g.forward))
	mux.HandleFunc("PATCH /users/{id}", g.withPathID(g.validated(g.validateUserPatch)))
	mux.HandleFunc("DELETE /users/{id}", g.withPathID(g.forward))

	mux.HandleFunc("POST /items", g.withCaller(g.validated(g.validateItemCreate)))
	mux.HandleFunc("PATCH /items/{id}", g.withCaller(g.withPathID(g.forward)))
	mux.HandleFunc("GET /items/{id}", g.withCaller(g.withPathID(g.forward)))
	mux.HandleFunc("GET /items", g.withCaller(g.forward))
	mux.HandleFunc("GET /items/search", g.forwardHandler)
	mux.HandleFunc("POST /items/{id}/comment", g.withCaller(g.withPathID(g.validated(g.validateComment))))
	mux.HandleFunc("GET /items/{id}/comment", g.withPathID(g.forward))

	mux.HandleFunc("POST /bookings", g.withCaller(g.validated(g.validateBookingCreate)))
	mux.HandleFunc("PATCH /bookings/{id}", g.withCaller(g.withPathID(g.validateApproveParam)))
	mux.HandleFunc("DELETE /bookings/{id}", g.withCaller(g.withPathID(g.forward)))
	mux.HandleFunc("GET /bookings/{id}", g.withCaller(g.withPathID(g.forward)))
	mux.HandleFunc("GET /bookings", g.withCaller(g.validateState))
	mux.HandleFunc("GET /bookings/owner", g.withCaller(g.validateState))

	mux.HandleFunc("POST /requests", g.withCaller(g.validated(g.validateRequestCreate)))
	mux.HandleFunc("GET /requests", g.withCaller(g.forward))
	mux.HandleFunc("GET /requests/all", g.withCaller(g.forward))
	mux.HandleFunc("GET /requests/{id}", g.withCaller(g.withPathID(g.forward)))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return g.rateLimitMiddleware(g.loggingMiddleware(mux))
}

func (g *Gateway) Start() error {
	g.logger.Info().Str("addr", g.server.Addr).Str("server_url", g.serverURL).Msg("gateway listening")
	if err := g.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (g *Gateway) Shutdown(ctx context.Context) error {
	return g.server.Shutdown(ctx)
}

func (g *Gateway) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		r.Header.Set("X-Request-Id", requestID)
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		g.logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("gateway request")
	})
}

func (g *Gateway) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(models.HeaderUserID)
		if key == "" {
			key = r.RemoteAddr
		}
		if !g.limiter.Allow(key) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withCaller requires a well-formed X-Sharer-User-Id header.
func (g *Gateway) withCaller(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(models.HeaderUserID)
		if raw == "" {
			writeError(w, http.StatusBadRequest, models.HeaderUserID+" header is required")
			return
		}
		if id, err := strconv.ParseInt(raw, 10, 64); err != nil || id <= 0 {
			writeError(w, http.StatusBadRequest, models.HeaderUserID+" header must be a positive integer")
			return
		}
		next(w, r)
	}
}

// withPathID requires a positive integer {id} path segment.
func (g *Gateway) withPathID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id, err := strconv.ParseInt(r.PathValue("id"), 10, 64); err != nil || id <= 0 {
			writeError(w, http.StatusBadRequest, "path id must be a positive integer")
			return
		}
		next(w, r)
	}
}

// validated reads the body once, runs the validator over the raw bytes and
// forwards the same bytes on success.
func (g *Gateway) validated(validate func([]byte) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read request body")
			return
		}
		if err := validate(body); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		g.forwardBody(w, r, body)
	}
}

func (g *Gateway) forwardHandler(w http.ResponseWriter, r *http.Request) {
	g.forward(w, r)
}

func (g *Gateway) forward(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	g.forwardBody(w, r, body)
}

// forwardBody replays the request against the backend server, preserving
// method, path, query, identity header and body.
func (g *Gateway) forwardBody(w http.ResponseWriter, r *http.Request, body []byte) {
	target := g.serverURL + r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target, bytes.NewReader(body))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build upstream request")
		return
	}
	if v := r.Header.Get(models.HeaderUserID); v != "" {
		req.Header.Set(models.HeaderUserID, v)
	}
	if v := r.Header.Get("X-Request-Id"); v != "" {
		req.Header.Set("X-Request-Id", v)
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error().Err(err).Str("target", target).Msg("upstream request failed")
		writeError(w, http.StatusBadGateway, "backend is unavailable")
		return
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{"errorCode": statusCode, "error": message})
}
