package handler

import (
	"net/http"
	"strconv"

	"masterbook/internal/delivery/http/middleware"
	"masterbook/internal/usecase"
	"masterbook/pkg/response"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
	}
}

func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	masterID, ok := middleware.GetMasterIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	dashboard, err := h.dashboardUsecase.Get(r.Context(), masterID)
	if err != nil {
		if err == usecase.ErrMasterNotFound {
			response.NotFound(w, "Master not found")
			return
		}
		response.InternalServerError(w, "Failed to get dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}

func (h *DashboardHandler) GetAllClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.dashboardUsecase.ListClients(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get clients")
		return
	}

	response.Success(w, http.StatusOK, "Clients retrieved successfully", clients)
}

func (h *DashboardHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	events, err := h.dashboardUsecase.ListEvents(r.Context(), limit)
	if err != nil {
		response.InternalServerError(w, "Failed to get events")
		return
	}

	response.Success(w, http.StatusOK, "Events retrieved successfully", events)
}
