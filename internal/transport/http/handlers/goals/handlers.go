package goalshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pms/internal/domain/audit"
	"pms/internal/domain/auth"
	"pms/internal/domain/goals"
	"pms/internal/domain/notifications"
	"pms/internal/platform/metrics"
	"pms/internal/transport/http/api"
	"pms/internal/transport/http/middleware"
	"pms/internal/transport/http/shared"
)

type Handler struct {
	Service *goals.Service
	Perms   middleware.PermissionStore
	Notify  *notifications.Service
	Audit   *audit.Service
	Metrics *metrics.Collector
}

func NewHandler(service *goals.Service, perms middleware.PermissionStore, notify *notifications.Service, auditSvc *audit.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Perms: perms, Notify: notify, Audit: auditSvc, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/goals", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermGoalsRead, h.Perms)).Get("/", h.handleListGoals)
		r.With(middleware.RequirePermission(auth.PermGoalsWrite, h.Perms)).Post("/", h.handleCreateGoal)
		r.With(middleware.RequirePermission(auth.PermGoalsRead, h.Perms)).Get("/{goalID}", h.handleGetGoal)
		r.With(middleware.RequirePermission(auth.PermGoalsWrite, h.Perms)).Put("/{goalID}", h.handleUpdateGoal)
		r.With(middleware.RequirePermission(auth.PermGoalsWrite, h.Perms)).Post("/{goalID}/progress", h.handleUpdateProgress)
		r.With(middleware.RequirePermission(auth.PermGoalsApprove, h.Perms)).Post("/{goalID}/approve", h.handleApprove)
		r.With(middleware.RequirePermission(auth.PermGoalsApprove, h.Perms)).Post("/{goalID}/reject", h.handleReject)
		r.With(middleware.RequirePermission(auth.PermGoalsWrite, h.Perms)).Post("/{goalID}/complete", h.handleComplete)
		r.With(middleware.RequirePermission(auth.PermRatingsWrite, h.Perms)).Post("/{goalID}/rating", h.handleSubmitRating)
		r.With(middleware.RequirePermission(auth.PermRatingsRead, h.Perms)).Get("/{goalID}/rating", h.handleGetRating)
	})
}

func (h *Handler) recordAudit(r *http.Request, actorID, action, entityType, entityID string, before, after any) {
	if h.Audit == nil {
		return
	}
	if err := h.Audit.Record(r.Context(), actorID, action, entityType, entityID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), before, after); err != nil {
		slog.Warn("audit "+action+" failed", "err", err)
	}
}

// writeDomainError translates engine and store errors into HTTP responses.
// Denials carry their kind as the error code; an invalid transition and a
// lost concurrency race both surface as 409 because in either case the
// caller acted on a stale view of the goal.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error, requestID string) {
	var denial *goals.Denial
	if errors.As(err, &denial) {
		if h.Metrics != nil {
			h.Metrics.RecordDenial()
		}
		status := http.StatusForbidden
		switch denial.Kind {
		case goals.DenialInvalidTransition:
			status = http.StatusConflict
		case goals.DenialNotEligible:
			status = http.StatusUnprocessableEntity
		case goals.DenialUnknownAction:
			status = http.StatusBadRequest
		}
		api.Fail(w, status, string(denial.Kind), denial.Reason, requestID)
		return
	}

	switch {
	case errors.Is(err, goals.ErrGoalNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "goal not found", requestID)
	case errors.Is(err, goals.ErrRatingNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "rating not found", requestID)
	case errors.Is(err, goals.ErrNoActivePeriod):
		api.Fail(w, http.StatusUnprocessableEntity, "no_active_period", "no active rating period", requestID)
	case errors.Is(err, goals.ErrConflict):
		api.Fail(w, http.StatusConflict, "conflict", "goal was modified concurrently, retry", requestID)
	case errors.Is(err, goals.ErrProgressRange):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "progress must be between 0 and 100", requestID)
	case errors.Is(err, goals.ErrInvalidPeriod):
		api.Fail(w, http.StatusBadRequest, "invalid_period", "rating period start is after end", requestID)
	default:
		slog.Warn("goal operation failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "operation failed", requestID)
	}
}

func (h *Handler) handleListGoals(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	page := shared.ParsePagination(r, 25, 100)
	items, total, err := h.Service.ListGoals(r.Context(), principal, page.Limit, page.Offset)
	if err != nil {
		h.writeDomainError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"items": items, "total": total}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Category    string   `json:"category"`
		Priority    string   `json:"priority"`
		Tags        []string `json:"tags"`
		DueDate     string   `json:"dueDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("title", payload.Title, "title required")
	var dueDate *time.Time
	if payload.DueDate != "" {
		parsed, ok := v.Date("dueDate", payload.DueDate)
		if ok {
			dueDate = &parsed
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.CreateGoal(r.Context(), principal, goals.GoalDetails{
		Title:       payload.Title,
		Description: payload.Description,
		Category:    payload.Category,
		Priority:    payload.Priority,
		Tags:        payload.Tags,
		DueDate:     dueDate,
	})
	if err != nil {
		h.writeDomainError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	h.recordAudit(r, principal.ID, "goals.create", "goal", created.ID, nil, created)
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	g, err := h.Service.GetGoal(r.Context(), principal, chi.URLParam(r, "goalID"))
	if err != nil {
		h.writeDomainError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, g, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	goalID := chi.URLParam(r, "goalID")
	var payload struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Category    string   `json:"category"`
		Priority    string   `json:"priority"`
		Tags        []string `json:"tags"`
		DueDate     string   `json:"dueDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("title", payload.Title, "title required")
	var dueDate *time.Time
	if payload.DueDate != "" {
		parsed, ok := v.Date("dueDate", payload.DueDate)
		if ok {
			dueDate = &parsed
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	updated, err := h.Service.UpdateGoal(r.Context(), principal, goalID, goals.GoalDetails{
		Title:       payload.Title,
		Description: payload.Description,
		Category:    payload.Category,
		Priority:    payload.Priority,
		Tags:        payload.Tags,
		DueDate:     dueDate,
	})
	if err != nil {
		h.writeDomainError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	h.recordAudit(r, principal.ID, "goals.update", "goal", goalID, nil, payload)
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	goalID := chi.URLParam(r, "goalID")
	var payload struct {
		Progress float64 `json:"progress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	updated, err := h.Service.UpdateProgress(r.Context(), principal, goalID, payload.Progress)
	if err != nil {
		h.writeDomainError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	h.recordAudit(r, principal.ID, "goals.progress", "goal", goalID, nil, payload)
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, goals.StatusApproved, "goals.approve", notifications.TypeGoalApproved, "Goal approved", "Your goal has been approved.")
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, goals.StatusRejected, "goals.reject", notifications.TypeGoalRejected, "Goal rejected", "Your goal has been rejected.")
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, goals.StatusCompleted, "goals.complete", notifications.TypeGoalCompleted, "Goal completed", "Your goal has been marked completed.")
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request, to goals.GoalStatus, auditAction, notifyType, notifyTitle, notifyBody string) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	goalID := chi.URLParam(r, "goalID")
	var payload struct {
		Feedback string `json:"feedback"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
			return
		}
	}

	applied, err := h.Service.Transition(r.Context(), principal, goalID, to, payload.Feedback)
	if err != nil {
		h.writeDomainError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	h.recordAudit(r, principal.ID, auditAction, "goal", goalID, map[string]any{"status": applied.From}, map[string]any{"status": applied.To})
	if h.Notify != nil {
		g, err := h.Service.Store.GetGoal(r.Context(), goalID)
		if err != nil {
			slog.Warn("transition owner lookup failed", "err", err)
		} else if g.OwnerID != principal.ID {
			h.Notify.Create(r.Context(), g.OwnerID, notifyType, notifyTitle, notifyBody)
		}
	}
	api.Success(w, applied, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSubmitRating(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	goalID := chi.URLParam(r, "goalID")
	var payload struct {
		Score    float64 `json:"score"`
		Feedback string  `json:"feedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Range("score", payload.Score, 1, 5, "score must be between 1 and 5")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	rating, err := h.Service.SubmitRating(r.Context(), principal, goalID, payload.Score, payload.Feedback)
	if err != nil {
		h.writeDomainError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	h.recordAudit(r, principal.ID, "ratings.submit", "rating", rating.ID, nil, payload)
	if h.Notify != nil {
		g, err := h.Service.Store.GetGoal(r.Context(), goalID)
		if err != nil {
			slog.Warn("rating owner lookup failed", "err", err)
		} else if g.OwnerID != principal.ID {
			h.Notify.Create(r.Context(), g.OwnerID, notifications.TypeRatingSubmitted, "Rating submitted", "A manager rating has been submitted for your goal.")
		}
	}
	api.Created(w, rating, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetRating(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	rating, err := h.Service.GetRating(r.Context(), principal, chi.URLParam(r, "goalID"))
	if err != nil {
		h.writeDomainError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rating, middleware.GetRequestID(r.Context()))
}
