package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/claude/liftrecap/internal/ingest/strong"
	"github.com/claude/liftrecap/internal/models"
	"github.com/claude/liftrecap/internal/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRecap(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(r.URL.Query().Get("year"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "xlsx" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("unsupported format %q", format)})
		return
	}

	units := s.defaultUnits
	if v := r.URL.Query().Get("units"); v != "" {
		units, err = models.ParseUnits(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}

	body, err := s.uploadBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer body.Close()

	rep, err := s.reports.Build(r.Context(), body, year, units)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.observeRecap(format, rep)

	if format == "xlsx" {
		var buf bytes.Buffer
		if err := report.WriteXLSX(&buf, rep); err != nil {
			s.writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="recap-%d.xlsx"`, rep.Stats.Year))
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	body, err := s.uploadBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer body.Close()

	years, err := s.reports.Years(r.Context(), body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]int{"years": years})
}

// uploadBody returns the CSV stream: the "file" part of a multipart form, or
// the raw request body otherwise.
func (s *Server) uploadBody(w http.ResponseWriter, r *http.Request) (io.ReadCloser, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, nil
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("reading multipart file: %w", err)
	}
	return f, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	var parseErr *strong.ParseError
	switch {
	case errors.As(err, &tooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{
			"error": fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit),
		})
	case errors.As(err, &parseErr), errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, report.ErrNoData):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	default:
		s.log.Error("recap failed", "error", err, "request_id", RequestIDFromContext(r.Context()))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseYear reads the optional year parameter. Empty means the latest year.
func parseYear(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(v)
	if err != nil || year < 1 || year > 9999 {
		return 0, fmt.Errorf("invalid year %q", v)
	}
	return year, nil
}
