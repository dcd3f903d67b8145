package periodshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pms/internal/domain/audit"
	"pms/internal/domain/auth"
	"pms/internal/domain/goals"
	"pms/internal/transport/http/api"
	"pms/internal/transport/http/middleware"
	"pms/internal/transport/http/shared"
)

type Handler struct {
	Service *goals.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
}

func NewHandler(service *goals.Service, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/rating-periods", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermRatingsRead, h.Perms)).Get("/", h.handleListPeriods)
		r.With(middleware.RequirePermission(auth.PermPeriodsManage, h.Perms)).Post("/", h.handleCreatePeriod)
	})
}

func (h *Handler) handleListPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.Service.ListPeriods(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "period_list_failed", "failed to list rating periods", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, periods, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreatePeriod(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload struct {
		Name  string `json:"name"`
		Start string `json:"start"`
		End   string `json:"end"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name required")
	start, startOK := v.Date("start", payload.Start)
	end, endOK := v.Date("end", payload.End)
	if startOK && endOK {
		v.DateOrder("start", start, "end", end)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.CreatePeriod(r.Context(), goals.RatingPeriod{Name: payload.Name, Start: start, End: end})
	if err != nil {
		if errors.Is(err, goals.ErrInvalidPeriod) {
			api.Fail(w, http.StatusBadRequest, "invalid_period", "rating period start is after end", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "period_create_failed", "failed to create rating period", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Audit.Record(r.Context(), principal.ID, "periods.create", "rating_period", created.ID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), nil, created); err != nil {
		slog.Warn("audit periods.create failed", "err", err)
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}
