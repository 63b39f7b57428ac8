package middleware

import (
	"context"
	"net/http"
	"strings"

	"clinic-scheduling-api/pkg/jwt"
	"clinic-scheduling-api/pkg/response"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	SubjectKey contextKey = "subject"
	TokenIDKey contextKey = "token_id"
)

type AuthMiddleware struct {
	jwtService  *jwt.JWTService
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewAuthMiddleware(jwtService *jwt.JWTService, redisClient *redis.Client, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		redisClient: redisClient,
		log:         log,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
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

		if claims.TokenType != jwt.AccessToken {
			response.Unauthorized(w, "Invalid token type")
			return
		}

		// Check if token exists in Redis (not revoked)
		exists, err := m.redisClient.Exists(r.Context(), jwt.AccessTokenKey(claims.UserID, claims.TokenID)).Result()
		if err != nil {
			m.log.Warnf("Failed to check token allow-list: %+v", err)
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if exists == 0 {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		ctx := WithSubject(r.Context(), claims.Subject)
		ctx = WithTokenID(ctx, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithSubject stores the authenticated identity in ctx.
func WithSubject(ctx context.Context, subject jwt.Subject) context.Context {
	return context.WithValue(ctx, SubjectKey, subject)
}

func WithTokenID(ctx context.Context, tokenID string) context.Context {
	return context.WithValue(ctx, TokenIDKey, tokenID)
}

// GetSubjectFromContext extracts the authenticated identity from context
func GetSubjectFromContext(ctx context.Context) (jwt.Subject, bool) {
	subject, ok := ctx.Value(SubjectKey).(jwt.Subject)
	return subject, ok
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
