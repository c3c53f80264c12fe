package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"synack/internal/archive"
	"synack/pkg/synop"
	synoperrors "synack/pkg/synop/errors"
)

// decodeRequest is the POST /v1/decode body.
type decodeRequest struct {
	Report string `json:"report"`
}

// decodeResponse carries the rendered tree plus any warnings. The
// archive id is present only when the report was stored.
type decodeResponse struct {
	Report    json.RawMessage `json:"report"`
	Warnings  []string        `json:"warnings,omitempty"`
	ArchiveID string          `json:"archive_id,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	raw, ok := s.readReport(w, r)
	if !ok {
		return
	}

	start := time.Now()
	report, err := synop.Decode(raw)
	s.metrics.DecodeDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		s.metrics.ReportsDecoded.WithLabelValues("error").Inc()
		resp := errorResponse{Error: err.Error()}
		var serr *synoperrors.Error
		if errors.As(err, &serr) {
			resp.Type = string(serr.Type)
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	s.metrics.ReportsDecoded.WithLabelValues("ok").Inc()
	s.metrics.DecodeWarnings.Add(float64(report.Warnings.Count()))

	rendered, err := json.Marshal(report.Render())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	resp := decodeResponse{Report: rendered}
	for _, warning := range report.Warnings.Warnings {
		resp.Warnings = append(resp.Warnings, warning.String())
	}

	if s.store != nil {
		rec, err := s.store.Save(r.Context(), report, raw)
		if err != nil {
			s.logger.Error("archiving failed", "error", err)
		} else {
			s.metrics.ArchivedReports.Inc()
			resp.ArchiveID = rec.ID
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// readReport accepts either a JSON body or raw telegram text.
func (s *Server) readReport(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "reading request body"})
		return "", false
	}
	if r.Header.Get("Content-Type") == "application/json" {
		var req decodeRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return "", false
		}
		return req.Report, true
	}
	return string(body), true
}

type recordResponse struct {
	ID         string          `json:"id"`
	StationID  string          `json:"station_id,omitempty"`
	Raw        string          `json:"raw"`
	Decoded    json.RawMessage `json:"decoded"`
	Warnings   int             `json:"warnings"`
	ReceivedAt time.Time       `json:"received_at"`
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "archive not configured"})
		return
	}

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	records, err := s.store.List(r.Context(), r.URL.Query().Get("station"), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	out := make([]recordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toRecordResponse(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "archive not configured"})
		return
	}

	rec, err := s.store.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "report not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, toRecordResponse(rec))
}

func toRecordResponse(rec *archive.Record) recordResponse {
	return recordResponse{
		ID:         rec.ID,
		StationID:  rec.StationID,
		Raw:        rec.Raw,
		Decoded:    rec.Decoded,
		Warnings:   rec.Warnings,
		ReceivedAt: rec.ReceivedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
