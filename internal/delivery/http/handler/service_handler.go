package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"masterbook/internal/delivery/dto"
	"masterbook/internal/delivery/http/middleware"
	"masterbook/internal/usecase"
	"masterbook/pkg/response"
	"masterbook/pkg/validator"

	"github.com/gorilla/mux"
)

type ServiceHandler struct {
	serviceUsecase usecase.ServiceUsecase
	validator      *validator.CustomValidator
}

func NewServiceHandler(serviceUsecase usecase.ServiceUsecase, validator *validator.CustomValidator) *ServiceHandler {
	return &ServiceHandler{
		serviceUsecase: serviceUsecase,
		validator:      validator,
	}
}

func (h *ServiceHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetTgUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req dto.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	svc, err := h.serviceUsecase.Create(r.Context(), req.Name, req.DurationMin, adminID)
	if err != nil {
		response.InternalServerError(w, "Failed to create service")
		return
	}

	response.Success(w, http.StatusCreated, "Service created successfully", svc)
}

func (h *ServiceHandler) GetAllServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.serviceUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get services")
		return
	}

	response.Success(w, http.StatusOK, "Services retrieved successfully", services)
}

func (h *ServiceHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetTgUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	vars := mux.Vars(r)
	serviceID, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid service ID", nil)
		return
	}

	var req dto.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	svc, err := h.serviceUsecase.Update(r.Context(), serviceID, req.Name, req.DurationMin, req.Active, adminID)
	if err != nil {
		if err == usecase.ErrServiceNotFound {
			response.NotFound(w, "Service not found")
			return
		}
		response.InternalServerError(w, "Failed to update service")
		return
	}

	response.Success(w, http.StatusOK, "Service updated successfully", svc)
}

func (h *ServiceHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetTgUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	vars := mux.Vars(r)
	serviceID, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid service ID", nil)
		return
	}

	err = h.serviceUsecase.Delete(r.Context(), serviceID, adminID)
	if err != nil {
		switch err {
		case usecase.ErrServiceNotFound:
			response.NotFound(w, "Service not found")
		case usecase.ErrServiceReferenced:
			// Referenced services are deactivated, not removed.
			response.Success(w, http.StatusOK, "Service has appointments and was deactivated instead", nil)
		default:
			response.InternalServerError(w, "Failed to delete service")
		}
		return
	}

	response.Success(w, http.StatusOK, "Service deleted successfully", nil)
}
