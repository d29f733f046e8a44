package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/LuckyFay12/shareit/internal/config"
	"github.com/LuckyFay12/shareit/internal/metrics"
	"github.com/LuckyFay12/shareit/internal/models"
	"github.com/LuckyFay12/shareit/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HTTPServer exposes the backend REST surface. Request validation is the
// gateway's job; this server owns business rules and persistence.
type HTTPServer struct {
	users    *service.UserService
	items    *service.ItemService
	bookings *service.BookingService
	requests *service.RequestService
	server   *http.Server
	logger   *zerolog.Logger
}

func NewHTTPServer(cfg config.ServerConfig, users *service.UserService, items *service.ItemService,
	bookings *service.BookingService, requests *service.RequestService, logger *zerolog.Logger) *HTTPServer {
	srv := &HTTPServer{
		users:    users,
		items:    items,
		bookings: bookings,
		requests: requests,
		logger:   logger,
	}

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

// Handler builds the route table. Exposed separately for httptest.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /users", s.handleCreateUser)
	mux.HandleFunc("GET /users", s.handleGetAllUsers)
	mux.HandleFunc("GET /users/{id}", s.handleGetUser)
	mux.HandleFunc("PATCH /users/{id}", s.handleUpdateUser)
	mux.HandleFunc("DELETE /users/{id}", s.handleDeleteUser)

	mux.HandleFunc("POST /items", s.handleCreateItem)
	mux.HandleFunc("PATCH /items/{id}", s.handleUpdateItem)
	mux.HandleFunc("GET /items/{id}", s.handleGetItem)
	mux.HandleFunc("GET /items", s.handleGetUserItems)
	mux.HandleFunc("GET /items/search", s.handleSearchItems)
	mux.HandleFunc("POST /items/{id}/comment", s.handleAddComment)
	mux.HandleFunc("GET /items/{id}/comment", s.handleListComments)

	mux.HandleFunc("POST /bookings", s.handleCreateBooking)
	mux.HandleFunc("PATCH /bookings/{id}", s.handleApproveBooking)
	mux.HandleFunc("DELETE /bookings/{id}", s.handleCancelBooking)
	mux.HandleFunc("GET /bookings/{id}", s.handleGetBooking)
	mux.HandleFunc("GET /bookings", s.handleGetBookings)
	mux.HandleFunc("GET /bookings/owner", s.handleGetOwnerBookings)

	mux.HandleFunc("POST /requests", s.handleCreateRequest)
	mux.HandleFunc("GET /requests", s.handleGetUserRequests)
	mux.HandleFunc("GET /requests/all", s.handleGetAllRequests)
	mux.HandleFunc("GET /requests/{id}", s.handleGetRequest)

	mux.HandleFunc("GET /health", s.handleHealth)

	return s.loggingMiddleware(mux)
}

func (s *HTTPServer) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		endpoint := r.Pattern
		if endpoint == "" {
			endpoint = r.URL.Path
		}
		metrics.IncHTTP(endpoint, strconv.Itoa(recorder.status))
		s.logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
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

// callerID extracts the user identity the surrounding layer resolved into
// the X-Sharer-User-Id header.
func callerID(r *http.Request) (int64, error) {
	raw := r.Header.Get(models.HeaderUserID)
	if raw == "" {
		return 0, fmt.Errorf("%s header is required", models.HeaderUserID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s header must be a positive integer", models.HeaderUserID)
	}
	return id, nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("path id must be a positive integer")
	}
	return id, nil
}

func decodeBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
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
