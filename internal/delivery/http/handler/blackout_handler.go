package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"masterbook/internal/delivery/dto"
	"masterbook/internal/delivery/http/middleware"
	"masterbook/internal/usecase"
	"masterbook/pkg/response"
	"masterbook/pkg/validator"

	"github.com/gorilla/mux"
)

type BlackoutHandler struct {
	blackoutUsecase usecase.BlackoutUsecase
	validator       *validator.CustomValidator
}

func NewBlackoutHandler(blackoutUsecase usecase.BlackoutUsecase, validator *validator.CustomValidator) *BlackoutHandler {
	return &BlackoutHandler{
		blackoutUsecase: blackoutUsecase,
		validator:       validator,
	}
}

func (h *BlackoutHandler) CreateBlackout(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetTgUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req dto.CreateBlackoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTs)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid start_ts, expected RFC3339", nil)
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndTs)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid end_ts, expected RFC3339", nil)
		return
	}

	blackout, err := h.blackoutUsecase.Create(r.Context(), req.MasterID, start, end, req.Reason, adminID)
	if err != nil {
		if err == usecase.ErrInvalidInterval {
			response.Error(w, http.StatusBadRequest, "Blackout end must be after start", nil)
			return
		}
		response.InternalServerError(w, "Failed to create blackout")
		return
	}

	response.Success(w, http.StatusCreated, "Blackout created successfully", blackout)
}

func (h *BlackoutHandler) GetAllBlackouts(w http.ResponseWriter, r *http.Request) {
	masterID, ok := middleware.GetMasterIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	blackouts, err := h.blackoutUsecase.GetAll(r.Context(), masterID)
	if err != nil {
		response.InternalServerError(w, "Failed to get blackouts")
		return
	}

	response.Success(w, http.StatusOK, "Blackouts retrieved successfully", blackouts)
}

func (h *BlackoutHandler) DeleteBlackout(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	blackoutID, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid blackout ID", nil)
		return
	}

	if err := h.blackoutUsecase.Delete(r.Context(), blackoutID); err != nil {
		response.InternalServerError(w, "Failed to delete blackout")
		return
	}

	response.Success(w, http.StatusOK, "Blackout deleted successfully", nil)
}
