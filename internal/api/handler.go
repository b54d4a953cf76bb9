// ABOUTME: Read-only HTTP handlers exposing weekly progress reports per client.
// ABOUTME: Maps store outages to 503 and malformed query dates to 400.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/harperreed/trainerlog/internal/models"
	"github.com/harperreed/trainerlog/internal/progress"
	"github.com/harperreed/trainerlog/internal/storage"
	"github.com/sirupsen/logrus"
)

const (
	defaultQueryTimeout = 5 * time.Second
	defaultSessionDays  = 28
)

// Handler serves report endpoints backed by a session reader.
type Handler struct {
	reader       storage.SessionReader
	log          logrus.FieldLogger
	queryTimeout time.Duration
	now          func() time.Time
}

// NewHandler creates a Handler. A non-positive timeout falls back to 5s.
func NewHandler(reader storage.SessionReader, log logrus.FieldLogger, queryTimeout time.Duration) *Handler {
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}
	return &Handler{
		reader:       reader,
		log:          log,
		queryTimeout: queryTimeout,
		now:          time.Now,
	}
}

// RegisterRoutes mounts the client report routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/clients", func(r chi.Router) {
		r.Get("/", h.handleListClients)
		r.Route("/{client}", func(r chi.Router) {
			r.Get("/progress", h.handleProgress)
			r.Get("/prompt", h.handlePrompt)
			r.Get("/dashboard", h.handleDashboard)
			r.Get("/sessions", h.handleSessions)
		})
	})
}

// JSON writes a JSON response with the given status code.
// The body is encoded before the header is written so an encoding failure
// can still be reported as a 500.
func JSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		status = http.StatusInternalServerError
		buf.Reset()
		buf.WriteString(`{"error":"failed to encode response"}` + "\n")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// Text writes a plain-text response.
func Text(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body + "\n"))
}

func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	report, ok := h.report(w, r)
	if !ok {
		return
	}
	JSON(w, http.StatusOK, report)
}

func (h *Handler) handlePrompt(w http.ResponseWriter, r *http.Request) {
	report, ok := h.report(w, r)
	if !ok {
		return
	}
	Text(w, http.StatusOK, report.Prompt())
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	report, ok := h.report(w, r)
	if !ok {
		return
	}
	Text(w, http.StatusOK, report.Dashboard())
}

func (h *Handler) handleSessions(w http.ResponseWriter, r *http.Request) {
	id := clientIdentity(r)

	to := models.DateOf(h.now())
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := models.ParseDate(raw)
		if err != nil {
			Error(w, http.StatusBadRequest, "to: "+err.Error())
			return
		}
		to = parsed
	}
	from := to.AddDate(0, 0, -defaultSessionDays)
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := models.ParseDate(raw)
		if err != nil {
			Error(w, http.StatusBadRequest, "from: "+err.Error())
			return
		}
		from = parsed
	}
	if from.After(to) {
		Error(w, http.StatusBadRequest, "from must not be after to")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.queryTimeout)
	defer cancel()

	sessions, err := h.reader.FetchSessions(ctx, id, from, to)
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"client":   id.String(),
		"from":     models.FormatDate(from),
		"to":       models.FormatDate(to),
		"count":    len(sessions),
		"sessions": sessions,
	})
}

func (h *Handler) handleListClients(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.queryTimeout)
	defer cancel()

	clients, err := h.reader.ListClients(ctx)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	if clients == nil {
		clients = []storage.ClientSummary{}
	}
	JSON(w, http.StatusOK, map[string]any{"clients": clients, "count": len(clients)})
}

// report builds the weekly report for the requested client, writing an
// error response and returning false on failure.
func (h *Handler) report(w http.ResponseWriter, r *http.Request) (*progress.Report, bool) {
	opts := []progress.Option{progress.WithLogger(h.log), progress.WithClock(h.now)}
	if raw := r.URL.Query().Get("today"); raw != "" {
		today, err := models.ParseDate(raw)
		if err != nil {
			Error(w, http.StatusBadRequest, "today: "+err.Error())
			return nil, false
		}
		opts = append(opts, progress.WithToday(today))
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.queryTimeout)
	defer cancel()

	report, err := progress.NewService(h.reader, opts...).WeeklyReport(ctx, clientIdentity(r))
	if err != nil {
		h.storeError(w, r, err)
		return nil, false
	}
	return report, true
}

func (h *Handler) storeError(w http.ResponseWriter, r *http.Request, err error) {
	entry := h.log.WithError(err).WithField("path", r.URL.Path)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		entry.Warn("session read timed out")
		Error(w, http.StatusGatewayTimeout, "session read timed out")
	case errors.Is(err, storage.ErrStoreUnavailable):
		entry.Error("session store unavailable")
		Error(w, http.StatusServiceUnavailable, "session store unavailable")
	default:
		Error(w, http.StatusBadRequest, err.Error())
	}
}

func clientIdentity(r *http.Request) models.ClientIdentity {
	return models.NewClientIdentity(chi.URLParam(r, "client"), r.URL.Query().Get("alias"))
}
