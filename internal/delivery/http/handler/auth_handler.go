package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"masterbook/internal/delivery/dto"
	"masterbook/internal/delivery/http/middleware"
	"masterbook/internal/usecase"
	"masterbook/pkg/jwt"
	"masterbook/pkg/response"
	"masterbook/pkg/telegramauth"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	log           *logrus.Logger
	masterUsecase usecase.MasterUsecase
	jwtService    *jwt.JWTService
	redisClient   *redis.Client
	botToken      string
}

func NewAuthHandler(
	log *logrus.Logger,
	masterUsecase usecase.MasterUsecase,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	botToken string,
) *AuthHandler {
	return &AuthHandler{
		log:           log,
		masterUsecase: masterUsecase,
		jwtService:    jwtService,
		redisClient:   redisClient,
		botToken:      botToken,
	}
}

// TelegramLogin exchanges a Telegram Login Widget payload for a session
// token. Only the Telegram account bound to the master row may log in.
func (h *AuthHandler) TelegramLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.TelegramLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	tgUserID, err := telegramauth.Verify(req, h.botToken, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, telegramauth.ErrExpired):
			response.Unauthorized(w, "Login payload has expired")
		default:
			response.Unauthorized(w, "Telegram login verification failed")
		}
		return
	}

	master, err := h.masterUsecase.GetByTgUserID(r.Context(), tgUserID)
	if err != nil {
		response.InternalServerError(w, "Failed to look up master")
		return
	}
	if master == nil {
		h.log.Warnf("Login attempt by non-master telegram user %d", tgUserID)
		response.Forbidden(w, "This Telegram account has no admin access")
		return
	}

	token, tokenID, err := h.jwtService.GenerateSessionToken(tgUserID, master.ID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate token")
		return
	}

	expiry := h.jwtService.GetSessionExpiry()
	key := middleware.SessionKey(tgUserID, tokenID)
	if err := h.redisClient.Set(r.Context(), key, "1", expiry).Err(); err != nil {
		response.InternalServerError(w, "Failed to store session")
		return
	}

	response.Success(w, http.StatusOK, "Login successful", dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(expiry.Seconds()),
		MasterID:  master.ID,
	})
}

// Logout revokes the current session immediately.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tgUserID, ok := middleware.GetTgUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}
	tokenID, ok := r.Context().Value(middleware.TokenIDKey).(string)
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	if err := h.redisClient.Del(r.Context(), middleware.SessionKey(tgUserID, tokenID)).Err(); err != nil {
		response.InternalServerError(w, "Failed to revoke session")
		return
	}

	response.Success(w, http.StatusOK, "Logged out successfully", nil)
}
