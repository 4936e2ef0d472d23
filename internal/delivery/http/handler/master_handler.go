package handler

import (
	"encoding/json"
	"net/http"

	"masterbook/internal/delivery/dto"
	"masterbook/internal/delivery/http/middleware"
	"masterbook/internal/usecase"
	"masterbook/pkg/response"
	"masterbook/pkg/validator"
)

type MasterHandler struct {
	masterUsecase usecase.MasterUsecase
	validator     *validator.CustomValidator
	bufferOptions []int
}

func NewMasterHandler(masterUsecase usecase.MasterUsecase, validator *validator.CustomValidator, bufferOptions []int) *MasterHandler {
	return &MasterHandler{
		masterUsecase: masterUsecase,
		validator:     validator,
		bufferOptions: bufferOptions,
	}
}

func (h *MasterHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	master, err := h.masterUsecase.Get(r.Context())
	if err != nil {
		if err == usecase.ErrMasterNotFound {
			response.NotFound(w, "Master not found")
			return
		}
		response.InternalServerError(w, "Failed to get master profile")
		return
	}

	response.Success(w, http.StatusOK, "Master profile retrieved successfully", master)
}

func (h *MasterHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	masterID, ok := middleware.GetMasterIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req dto.UpdateMasterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	master, err := h.masterUsecase.UpdateProfile(r.Context(), masterID, req.DisplayName, req.WorkStart, req.WorkEnd, req.BufferMin, h.bufferOptions)
	if err != nil {
		switch err {
		case usecase.ErrMasterNotFound:
			response.NotFound(w, "Master not found")
		case usecase.ErrInvalidBuffer:
			response.Error(w, http.StatusBadRequest, "Buffer value is not allowed", nil)
		default:
			response.InternalServerError(w, "Failed to update master profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Master profile updated successfully", master)
}
