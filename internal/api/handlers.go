package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/kaykas/alexandra-schedule/internal/config"
	"github.com/kaykas/alexandra-schedule/internal/custody"
	"github.com/kaykas/alexandra-schedule/internal/database"
	"github.com/kaykas/alexandra-schedule/internal/ics"
)

// maxRangeDays caps the range endpoint at one year of evaluations.
const maxRangeDays = 366

// feedMonths is the rolling iCal window length.
const feedMonths = 12

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db     *database.DB
	engine *custody.Engine
	cfg    *config.Config
	logger *slog.Logger

	// now is swappable in tests.
	now func() time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *database.DB, engine *custody.Engine, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		db:     db,
		engine: engine,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.db.Health(ctx); err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]string{
		"status": "healthy",
	})
}

// parseOptions reads per-evaluation options from the query string.
// Malformed values default to false: evaluation never fails on bad input.
func parseOptions(r *http.Request) custody.Options {
	rofr, _ := strconv.ParseBool(r.URL.Query().Get("rofr"))
	return custody.Options{CheckRightOfFirstRefusal: rofr}
}

// GetToday handles GET /api/v1/custody/today
func (h *Handlers) GetToday(w http.ResponseWriter, r *http.Request) {
	res := h.engine.Evaluate(h.now(), parseOptions(r))
	WriteSuccess(w, res)
}

// GetDate handles GET /api/v1/custody/date/{YYYY-MM-DD}
//
// The response carries matched_level and matched_rule, which is the debug
// surface: a caller can see exactly which precedence layer and branch
// produced the assignment.
func (h *Handlers) GetDate(w http.ResponseWriter, r *http.Request) {
	dateStr := r.PathValue("date")
	if dateStr == "" {
		WriteBadRequest(w, "Date parameter is required")
		return
	}

	date, err := custody.ParseDate(dateStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", dateStr))
		return
	}

	res := h.engine.Evaluate(date, parseOptions(r))
	WriteSuccess(w, res)
}

// GetRange handles GET /api/v1/custody/range?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handlers) GetRange(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" || endStr == "" {
		WriteBadRequest(w, "Both start and end date parameters are required")
		return
	}

	start, err := custody.ParseDate(startStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid start date format: %s. Use YYYY-MM-DD", startStr))
		return
	}

	end, err := custody.ParseDate(endStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid end date format: %s. Use YYYY-MM-DD", endStr))
		return
	}

	if start.After(end) {
		WriteBadRequest(w, "Start date must not be after end date")
		return
	}
	if end.Sub(start) > maxRangeDays*24*time.Hour {
		WriteBadRequest(w, fmt.Sprintf("Range too large: maximum %d days", maxRangeDays))
		return
	}

	opts := parseOptions(r)
	var results []custody.Result
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		results = append(results, h.engine.Evaluate(d, opts))
	}

	WriteSuccess(w, map[string]interface{}{
		"start":   startStr,
		"end":     endStr,
		"days":    len(results),
		"results": results,
	})
}

// GetFeed handles GET /calendar.ics
//
// Any failure during generation maps to a generic 500: subscribers get a
// non-200 status, never a stack trace.
func (h *Handlers) GetFeed(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if err := recover(); err != nil {
			h.logger.Error("feed generation panicked", slog.Any("error", err))
			WriteInternalError(w, "Failed to generate calendar feed")
		}
	}()

	cal := ics.Build(h.engine, h.now(), feedMonths)
	body := ics.Serialize(cal)

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, body)
}

// createRevisionRequest is the admin revision payload.
type createRevisionRequest struct {
	Date  string                `json:"date"`
	Kind  database.RevisionKind `json:"kind"`
	Label string                `json:"label"`
}

// CreateRevision handles POST /api/v1/admin/revisions
//
// Revisions are merged into the calendar facts at startup, so a new one
// takes effect on the next restart; the facts table itself is immutable
// for the life of the process.
func (h *Handlers) CreateRevision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createRevisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}

	if _, err := custody.ParseDate(req.Date); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", req.Date))
		return
	}
	if !req.Kind.IsValid() {
		WriteBadRequest(w, fmt.Sprintf("Invalid kind %q. Use no_school, minimum, or instruction", req.Kind))
		return
	}

	rev, err := h.db.UpsertRevision(ctx, req.Date, req.Kind, req.Label)
	if err != nil {
		h.logger.Error("failed to store revision",
			slog.String("date", req.Date),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to store revision")
		return
	}

	WriteJSON(w, http.StatusCreated, Response{
		Success: true,
		Data: map[string]interface{}{
			"revision": rev,
			"note":     "revision takes effect at next startup",
		},
	})
}
