package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"hotelier/internal/models"
)

func parseDateParam(r *http.Request, name string) (time.Time, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return time.Time{}, false
	}
	date, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

func (s *HTTPServer) handleAvailableRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	start, ok := parseDateParam(r, "start")
	if !ok {
		writeError(w, http.StatusBadRequest, "start is required in YYYY-MM-DD format")
		return
	}
	end, ok := parseDateParam(r, "end")
	if !ok {
		writeError(w, http.StatusBadRequest, "end is required in YYYY-MM-DD format")
		return
	}

	rooms, err := s.reservations.AvailableRooms(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}

func (s *HTTPServer) handleReservations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listReservations(w, r)
	case http.MethodPost:
		s.createReservation(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) listReservations(w http.ResponseWriter, r *http.Request) {
	start, hasStart := parseDateParam(r, "start")
	end, hasEnd := parseDateParam(r, "end")

	var (
		details []models.ReservationDetail
		err     error
	)
	if hasStart && hasEnd {
		details, err = s.reservations.ListReservationsBetween(r.Context(), start, end)
	} else {
		details, err = s.reservations.ListReservations(r.Context())
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"reservations": details})
}

func (s *HTTPServer) createReservation(w http.ResponseWriter, r *http.Request) {
	type request struct {
		ClientID  int64  `json:"client_id"`
		RoomID    int64  `json:"room_id"`
		Arrival   string `json:"arrival"`
		Departure string `json:"departure"`
	}

	var body request
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	arrival, err := time.Parse(models.DateLayout, body.Arrival)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid arrival date; expected YYYY-MM-DD")
		return
	}
	departure, err := time.Parse(models.DateLayout, body.Departure)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid departure date; expected YYYY-MM-DD")
		return
	}

	id, err := s.reservations.CreateReservation(r.Context(), body.ClientID, body.RoomID, arrival, departure)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"reservation_id": id})
}

func (s *HTTPServer) handleReservationStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	stats, err := s.reservations.Stats(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// handleReservationByID serves /api/v1/reservations/{id} and
// /api/v1/reservations/{id}/services.
func (s *HTTPServer) handleReservationByID(w http.ResponseWriter, r *http.Request) {
	const prefix = "/api/v1/reservations/"
	rest := strings.TrimPrefix(r.URL.Path, prefix)

	parts := strings.Split(strings.Trim(rest, "/"), "/")
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}

	switch {
	case len(parts) == 1:
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		reservation, err := s.reservations.GetReservation(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reservation)

	case len(parts) == 2 && parts[1] == "services":
		s.handleReservationServices(w, r, id)

	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *HTTPServer) handleReservationServices(w http.ResponseWriter, r *http.Request, reservationID int64) {
	switch r.Method {
	case http.MethodGet:
		services, err := s.reservations.ServicesForReservation(r.Context(), reservationID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"services": services})

	case http.MethodPost:
		type request struct {
			ServiceID int64 `json:"service_id"`
		}
		var body request
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if err := s.reservations.AttachService(r.Context(), body.ServiceID, reservationID); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"status": "attached"})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleClients(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		clients, err := s.clients.ListClients(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"clients": clients})

	case http.MethodPost:
		var client models.Client
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&client); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if err := s.clients.CreateClient(r.Context(), &client); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"client_id": client.ID})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleClientCities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	counts, err := s.clients.ClientCountByCity(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"cities": counts})
}

func (s *HTTPServer) handleEvaluations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		evals, err := s.clients.ListEvaluations(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"evaluations": evals})

	case http.MethodPost:
		type request struct {
			Rating   int64  `json:"rating"`
			Comment  string `json:"comment"`
			ClientID int64  `json:"client_id"`
			Date     string `json:"date"`
		}
		var body request
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		eval := models.Evaluation{
			Rating:   body.Rating,
			Comment:  body.Comment,
			ClientID: body.ClientID,
		}
		if body.Date != "" {
			date, err := time.Parse(models.DateLayout, body.Date)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid date; expected YYYY-MM-DD")
				return
			}
			eval.Date = date
		}

		if err := s.clients.CreateEvaluation(r.Context(), &eval); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"evaluation_id": eval.ID})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rooms, err := s.catalog.ListRooms(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}

func (s *HTTPServer) handleHotels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	hotels, err := s.catalog.ListHotels(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hotels": hotels})
}

func (s *HTTPServer) handleRoomTypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	types, err := s.catalog.ListRoomTypes(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"room_types": types})
}

func (s *HTTPServer) handleServices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	services, err := s.catalog.ListServices(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": services})
}

// handleExportReservations builds an xlsx report for the window and serves
// it as a download.
func (s *HTTPServer) handleExportReservations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.exporter == nil {
		writeError(w, http.StatusServiceUnavailable, "export is not configured")
		return
	}

	start, ok := parseDateParam(r, "start")
	if !ok {
		writeError(w, http.StatusBadRequest, "start is required in YYYY-MM-DD format")
		return
	}
	end, ok := parseDateParam(r, "end")
	if !ok {
		writeError(w, http.StatusBadRequest, "end is required in YYYY-MM-DD format")
		return
	}

	path, err := s.exporter.ExportReservations(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	http.ServeFile(w, r, path)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
