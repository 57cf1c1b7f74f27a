package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"hotelier/internal/config"
	"hotelier/internal/database"
	"hotelier/internal/export"
	"hotelier/internal/metrics"
	"hotelier/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HTTPServer exposes the hotel API: availability search, reservations,
// clients, evaluations and the static catalog.
type HTTPServer struct {
	cfg          config.APIConfig
	reservations *service.ReservationService
	clients      *service.ClientService
	catalog      *service.CatalogService
	exporter     *export.Exporter
	server       *http.Server
	auth         *HTTPAuth
	logger       *zerolog.Logger
}

func NewHTTPServer(cfg config.APIConfig, reservations *service.ReservationService, clients *service.ClientService, catalog *service.CatalogService, exporter *export.Exporter, logger *zerolog.Logger) *HTTPServer {
	mux := http.NewServeMux()
	srv := &HTTPServer{
		cfg:          cfg,
		reservations: reservations,
		clients:      clients,
		catalog:      catalog,
		exporter:     exporter,
		logger:       logger,
	}
	srv.auth = NewHTTPAuth(cfg)

	mux.HandleFunc("/api/v1/rooms/available", srv.handleAvailableRooms)
	mux.HandleFunc("/api/v1/rooms", srv.handleRooms)
	mux.HandleFunc("/api/v1/reservations", srv.handleReservations)
	mux.HandleFunc("/api/v1/reservations/stats", srv.handleReservationStats)
	mux.HandleFunc("/api/v1/reservations/", srv.handleReservationByID)
	mux.HandleFunc("/api/v1/clients", srv.handleClients)
	mux.HandleFunc("/api/v1/clients/cities", srv.handleClientCities)
	mux.HandleFunc("/api/v1/evaluations", srv.handleEvaluations)
	mux.HandleFunc("/api/v1/hotels", srv.handleHotels)
	mux.HandleFunc("/api/v1/room-types", srv.handleRoomTypes)
	mux.HandleFunc("/api/v1/services", srv.handleServices)
	mux.HandleFunc("/api/v1/exports/reservations", srv.handleExportReservations)
	mux.HandleFunc("/healthz", srv.handleHealth)

	handler := srv.loggingMiddleware(srv.auth.Wrap(mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

// Handler returns the fully wrapped handler, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

const requestIDHeader = "X-Request-Id"

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		dur := time.Since(start)

		metrics.IncHTTP(r.URL.Path, strconv.Itoa(recorder.status))

		s.logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", dur).
			Msg("http request")
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeDomainError maps store sentinels to HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrInvalidDateRange),
		errors.Is(err, database.ErrMissingField),
		errors.Is(err, database.ErrInvalidRating):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, database.ErrClientNotFound),
		errors.Is(err, database.ErrRoomNotFound),
		errors.Is(err, database.ErrReservationNotFound),
		errors.Is(err, database.ErrServiceNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, database.ErrRoomNotAvailable),
		errors.Is(err, database.ErrDuplicateLink):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
