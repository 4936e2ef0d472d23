package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"masterbook/internal/delivery/dto"
	"masterbook/internal/delivery/http/middleware"
	"masterbook/internal/usecase"
	"masterbook/pkg/response"
	"masterbook/pkg/validator"

	"github.com/shopspring/decimal"
)

type PriceHandler struct {
	priceUsecase usecase.PriceUsecase
	validator    *validator.CustomValidator
}

func NewPriceHandler(priceUsecase usecase.PriceUsecase, validator *validator.CustomValidator) *PriceHandler {
	return &PriceHandler{
		priceUsecase: priceUsecase,
		validator:    validator,
	}
}

func (h *PriceHandler) CreatePrice(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetTgUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req dto.CreatePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		response.Error(w, http.StatusBadRequest, "Invalid price value", nil)
		return
	}

	activeFrom, err := time.Parse("2006-01-02", req.ActiveFrom)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid active_from date", nil)
		return
	}

	row, err := h.priceUsecase.Create(r.Context(), req.MasterID, req.ServiceID, price, activeFrom, adminID)
	if err != nil {
		if err == usecase.ErrServiceNotFound {
			response.NotFound(w, "Service not found")
			return
		}
		response.InternalServerError(w, "Failed to create price")
		return
	}

	response.Success(w, http.StatusCreated, "Price created successfully", row)
}

func (h *PriceHandler) GetAllPrices(w http.ResponseWriter, r *http.Request) {
	masterID, ok := middleware.GetMasterIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	prices, err := h.priceUsecase.GetAll(r.Context(), masterID)
	if err != nil {
		response.InternalServerError(w, "Failed to get prices")
		return
	}

	response.Success(w, http.StatusOK, "Prices retrieved successfully", prices)
}
