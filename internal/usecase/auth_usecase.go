package usecase

import (
	"context"
	"errors"
	"strings"

	"clinic-scheduling-api/internal/converter"
	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/delivery/http/middleware"
	"clinic-scheduling-api/internal/domain/entity"
	"clinic-scheduling-api/internal/domain/repository"
	"clinic-scheduling-api/internal/service"
	"clinic-scheduling-api/pkg/jwt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthenticated    = errors.New("user not found in context")
	ErrForbidden          = errors.New("forbidden")
)

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, req *dto.LogoutRequest) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context) (*dto.UserResponse, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	auditService service.AuditService
	jwtService   *jwt.JWTService
	redisClient  *redis.Client
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		auditService: auditService,
		jwtService:   jwtService,
		redisClient:  redisClient,
	}
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// Read-only, no transaction needed
	user, err := u.userRepo.FindByUsername(ctx, u.db, req.Username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokens, err := u.issueTokens(ctx, subjectOf(user))
	if err != nil {
		return nil, err
	}
	tokens.User = converter.UserToResponse(user)

	// Login auditing is best effort.
	actor := service.AuditActor{UserID: &user.ID, TenantID: user.TenantID}
	if err := u.auditService.LogEvent(ctx, u.db, actor, entity.AuditActionUserLogin, entity.JSON{"username": user.Username}); err != nil {
		u.log.Warnf("Login of %s succeeded but was not audited: %+v", user.Username, err)
	}

	return tokens, nil
}

// Logout revokes the access token of the request and, when given, the refresh token.
func (u *authUsecase) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	subject, ok := middleware.GetSubjectFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}
	tokenID, _ := middleware.GetTokenIDFromContext(ctx)

	keys := []string{jwt.AccessTokenKey(subject.UserID, tokenID)}
	if req != nil && req.RefreshToken != "" {
		claims, err := u.jwtService.ValidateToken(req.RefreshToken)
		if err == nil && claims.TokenType == jwt.RefreshToken && claims.UserID == subject.UserID {
			keys = append(keys, jwt.RefreshTokenKey(claims.UserID, claims.TokenID))
		}
	}

	if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
		u.log.Warnf("Failed to delete tokens: %+v", err)
		return err
	}

	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	// Deleting the key both checks and consumes it, so a refresh token works once.
	refreshKey := jwt.RefreshTokenKey(claims.UserID, claims.TokenID)
	deleted, err := u.redisClient.Del(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to consume refresh token in Redis: %+v", err)
		return nil, err
	}
	if deleted == 0 {
		return nil, ErrTokenRevoked
	}

	// Reload so role or tenant changes since login are picked up.
	user, err := u.userRepo.FindByID(ctx, u.db, claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return u.issueTokens(ctx, subjectOf(user))
}

func (u *authUsecase) GetCurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	subject, ok := middleware.GetSubjectFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	user, err := u.userRepo.FindByID(ctx, u.db, subject.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) issueTokens(ctx context.Context, subject jwt.Subject) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(subject)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(subject)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	pipe := u.redisClient.TxPipeline()
	pipe.Set(ctx, jwt.AccessTokenKey(subject.UserID, accessTokenID), "valid", u.jwtService.GetAccessExpiry())
	pipe.Set(ctx, jwt.RefreshTokenKey(subject.UserID, refreshTokenID), "valid", u.jwtService.GetRefreshExpiry())
	if _, err := pipe.Exec(ctx); err != nil {
		u.log.Warnf("Failed to store tokens in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func subjectOf(user *entity.User) jwt.Subject {
	return jwt.Subject{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		TenantID: user.TenantID,
	}
}

// auditActorOf converts the authenticated subject into audit attribution.
func auditActorOf(subject jwt.Subject) service.AuditActor {
	userID := subject.UserID
	return service.AuditActor{UserID: &userID, TenantID: subject.TenantID}
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
