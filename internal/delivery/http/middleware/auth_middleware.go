package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"masterbook/pkg/jwt"
	"masterbook/pkg/response"

	"github.com/redis/go-redis/v9"
)

type contextKey string

const (
	TgUserIDKey contextKey = "tg_user_id"
	MasterIDKey contextKey = "master_id"
	TokenIDKey  contextKey = "token_id"
)

// SessionKey is the redis key holding a live admin session.
func SessionKey(tgUserID int64, tokenID string) string {
	return fmt.Sprintf("admin_session:%d:%s", tgUserID, tokenID)
}

type AuthMiddleware struct {
	jwtService  *jwt.JWTService
	redisClient *redis.Client
}

func NewAuthMiddleware(jwtService *jwt.JWTService, redisClient *redis.Client) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		redisClient: redisClient,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		// Sessions live in redis; a missing key means logout or revocation.
		exists, err := m.redisClient.Exists(r.Context(), SessionKey(claims.TgUserID, claims.TokenID)).Result()
		if err != nil {
			response.InternalServerError(w, "Failed to validate session")
			return
		}
		if exists == 0 {
			response.Unauthorized(w, "Session has been revoked")
			return
		}

		ctx := context.WithValue(r.Context(), TgUserIDKey, claims.TgUserID)
		ctx = context.WithValue(ctx, MasterIDKey, claims.MasterID)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTgUserIDFromContext extracts the authenticated Telegram user id.
func GetTgUserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(TgUserIDKey).(int64)
	return id, ok
}

// GetMasterIDFromContext extracts the authenticated master id.
func GetMasterIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(MasterIDKey).(int)
	return id, ok
}
