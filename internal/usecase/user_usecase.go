package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"clinic-scheduling-api/internal/converter"
	"clinic-scheduling-api/internal/delivery/dto"
	"clinic-scheduling-api/internal/delivery/http/middleware"
	"clinic-scheduling-api/internal/domain/entity"
	"clinic-scheduling-api/internal/domain/repository"
	"clinic-scheduling-api/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrSpecialistFieldsEmpty = errors.New("area and specialty are required for specialists")
	ErrRoleNotAllowed        = errors.New("only a Super Admin can create administrators")
)

// identificationAttempts bounds retries on identification number collisions.
const identificationAttempts = 3

type UserUsecase interface {
	CreateUser(ctx context.Context, tenantID uint, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	RegisterPatient(ctx context.Context, tenantID uint, req *dto.RegisterPatientRequest) (*dto.UserResponse, error)
	GetUsersByTenant(ctx context.Context, tenantID uint) (*dto.UserListResponse, error)
}

type userUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	tenantRepo   repository.TenantRepository
	auditService service.AuditService
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	tenantRepo repository.TenantRepository,
	auditService service.AuditService,
) UserUsecase {
	return &userUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		tenantRepo:   tenantRepo,
		auditService: auditService,
	}
}

// CreateUser registers a user in tenantID.
//
// Rules:
// - only a Super Admin may create an Administrador
// - an Especialista needs both area and specialty
// - the identification number is a random 10-digit string, regenerated on collision
func (u *userUsecase) CreateUser(ctx context.Context, tenantID uint, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	subject, ok := middleware.GetSubjectFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	if req.Role == entity.RoleAdministrator && subject.Role != entity.RoleSuperAdmin {
		return nil, ErrRoleNotAllowed
	}
	if req.Role == entity.RoleSpecialist && (isBlank(req.Area) || isBlank(req.Specialty)) {
		return nil, ErrSpecialistFieldsEmpty
	}

	tenant, err := u.tenantRepo.FindByID(ctx, u.db, tenantID)
	if err != nil {
		u.log.Warnf("Failed to find tenant %d: %+v", tenantID, err)
		return nil, err
	}
	if tenant == nil {
		return nil, ErrTenantNotFound
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		TenantID: &tenantID,
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     req.Role,
	}
	if req.Role == entity.RoleSpecialist {
		user.Area = req.Area
		user.Specialty = req.Specialty
	}

	for attempt := 1; ; attempt++ {
		user.ID = 0
		user.IdentificationNumber, err = generateIdentificationNumber()
		if err != nil {
			u.log.Warnf("Failed to generate identification number: %+v", err)
			return nil, err
		}

		err = u.createWithAudit(ctx, auditActorOf(subject), user)
		if err == nil {
			break
		}
		if isDuplicateKeyError(err, "identification_number") && attempt < identificationAttempts {
			u.log.Debugf("Identification number collision, retrying (attempt %d)", attempt)
			continue
		}
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

// RegisterPatient lets front-desk staff and specialists register a Paciente.
// Patients cannot register other users.
func (u *userUsecase) RegisterPatient(ctx context.Context, tenantID uint, req *dto.RegisterPatientRequest) (*dto.UserResponse, error) {
	subject, ok := middleware.GetSubjectFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	if subject.Role == entity.RolePatient {
		return nil, ErrForbidden
	}

	return u.CreateUser(ctx, tenantID, &dto.CreateUserRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     entity.RolePatient,
	})
}

func (u *userUsecase) createWithAudit(ctx context.Context, actor service.AuditActor, user *entity.User) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.userRepo.Create(ctx, tx, user); err != nil {
		switch {
		case isDuplicateKeyError(err, "username"):
			return ErrUsernameAlreadyExists
		case isDuplicateKeyError(err, "email"):
			return ErrEmailAlreadyExists
		case isForeignKeyError(err, "tenant"):
			return ErrTenantNotFound
		case isDuplicateKeyError(err, "identification_number"):
			return err
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return err
	}

	if err := u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionUserCreate,
		"user", strconv.FormatUint(uint64(user.ID), 10), converter.UserToResponse(user)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *userUsecase) GetUsersByTenant(ctx context.Context, tenantID uint) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindByTenant(ctx, u.db, tenantID)
	if err != nil {
		u.log.Warnf("Failed to find users for tenant %d: %+v", tenantID, err)
		return nil, err
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: len(users),
	}, nil
}

func generateIdentificationNumber() (string, error) {
	// 10 digits, no leading zero
	n, err := rand.Int(rand.Reader, big.NewInt(9_000_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+1_000_000_000), nil
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
