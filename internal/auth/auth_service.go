package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "github.com/MuleAlemuB/project1-sub002/internal/auth/errors"
	"github.com/MuleAlemuB/project1-sub002/internal/domain"
	"github.com/MuleAlemuB/project1-sub002/internal/employee"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Me(ctx context.Context, caller domain.Identity) AuthResponse
	Register(ctx context.Context, req RegisterRequest) (UserResponse, error)
	ChangePassword(ctx context.Context, caller domain.Identity, req ChangePasswordRequest) error
	ListUsers(ctx context.Context) ([]UserResponse, error)
	Authenticate(ctx context.Context, token string) (domain.Identity, error)
}

type service struct {
	repo         Repository
	employeeRepo employee.Repository
	tokens       *tokenIssuer
	logger       *zap.Logger
}

func NewService(
	repo Repository,
	employeeRepo employee.Repository,
	secret []byte,
	ttl time.Duration,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		repo:         repo,
		employeeRepo: employeeRepo,
		tokens:       newTokenIssuer(secret, ttl),
		logger:       l,
	}
}

// account is the credential view shared by users and employees.
type account struct {
	identity domain.Identity
	hash     string
	active   bool
	rawRole  string
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	acc, err := s.findAccountByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		s.logger.Error("login lookup failed", zap.Error(err))
		return LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.hash), []byte(req.Password)); err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}
	if !acc.active {
		return LoginResponse{}, autherrors.ErrInactiveAccount
	}

	role, err := domain.ParseRole(acc.rawRole)
	if err != nil {
		s.logger.Warn("login with unknown role",
			zap.String("identity_id", acc.identity.ID.String()),
			zap.String("role", acc.rawRole),
		)
		return LoginResponse{}, autherrors.ErrUnknownRole
	}
	acc.identity.Role = role

	token, expiresAt, err := s.tokens.issue(acc.identity.ID.String(), acc.identity.Kind, role)
	if err != nil {
		return LoginResponse{}, err
	}

	s.logger.Info("login success",
		zap.String("identity_id", acc.identity.ID.String()),
		zap.String("kind", string(acc.identity.Kind)),
		zap.String("role", role.String()),
	)

	return LoginResponse{
		User:        mapIdentity(acc.identity),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *service) Me(ctx context.Context, caller domain.Identity) AuthResponse {
	return mapIdentity(caller)
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (UserResponse, error) {
	role := domain.RoleAdmin
	if strings.TrimSpace(req.Role) != "" {
		parsed, err := domain.ParseRole(req.Role)
		if err != nil {
			return UserResponse{}, apperror.InvalidField("Role")
		}
		role = parsed
	}

	if _, err := s.employeeRepo.FindByEmail(ctx, req.Email); err == nil {
		return UserResponse{}, autherrors.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	user := &User{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hashed),
		Role:     role.String(),
		IsActive: true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if apperror.IsUniqueViolation(err) {
			return UserResponse{}, autherrors.ErrEmailTaken
		}
		s.logger.Error("register user failed", zap.Error(err))
		return UserResponse{}, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()), zap.String("role", user.Role))
	return mapUser(*user), nil
}

func (s *service) ChangePassword(ctx context.Context, caller domain.Identity, req ChangePasswordRequest) error {
	var currentHash string
	switch caller.Kind {
	case domain.IdentityUser:
		u, err := s.repo.GetByID(ctx, caller.ID)
		if err != nil {
			return autherrors.ErrIdentityNotFound
		}
		currentHash = u.Password
	case domain.IdentityEmployee:
		e, err := s.employeeRepo.FindByID(ctx, caller.ID)
		if err != nil {
			return autherrors.ErrIdentityNotFound
		}
		currentHash = e.PasswordHash
	default:
		return autherrors.ErrIdentityNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(currentHash), []byte(req.CurrentPassword)); err != nil {
		return autherrors.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if caller.Kind == domain.IdentityUser {
		err = s.repo.UpdatePassword(ctx, caller.ID, string(hashed))
	} else {
		err = s.employeeRepo.UpdatePassword(ctx, caller.ID, string(hashed))
	}
	if err != nil {
		s.logger.Error("change password failed", zap.String("identity_id", caller.ID.String()), zap.Error(err))
		return err
	}

	s.logger.Info("password changed", zap.String("identity_id", caller.ID.String()))
	return nil
}

func (s *service) ListUsers(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]UserResponse, len(users))
	for i, u := range users {
		res[i] = mapUser(u)
	}
	return res, nil
}

// Authenticate verifies the token and resolves the caller, looking in users
// first and employees second.
func (s *service) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	claims, err := s.tokens.parse(token)
	if err != nil {
		return domain.Identity{}, err
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Identity{}, autherrors.ErrInvalidToken
	}

	acc, err := s.findAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Identity{}, autherrors.ErrIdentityNotFound
		}
		return domain.Identity{}, err
	}
	if !acc.active {
		return domain.Identity{}, autherrors.ErrInactiveAccount
	}

	role, err := domain.ParseRole(acc.rawRole)
	if err != nil {
		return domain.Identity{}, autherrors.ErrUnknownRole
	}
	acc.identity.Role = role

	return acc.identity, nil
}

func (s *service) findAccountByEmail(ctx context.Context, email string) (account, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return userAccount(u), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return account{}, err
	}

	e, err := s.employeeRepo.FindByEmail(ctx, email)
	if err != nil {
		return account{}, err
	}
	return employeeAccount(e), nil
}

func (s *service) findAccountByID(ctx context.Context, id uuid.UUID) (account, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err == nil {
		return userAccount(u), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return account{}, err
	}

	e, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return account{}, err
	}
	return employeeAccount(e), nil
}

func userAccount(u *User) account {
	return account{
		identity: domain.Identity{
			ID:    u.ID,
			Kind:  domain.IdentityUser,
			Name:  u.Name,
			Email: u.Email,
		},
		hash:    u.Password,
		active:  u.IsActive,
		rawRole: u.Role,
	}
}

func employeeAccount(e *employee.Employee) account {
	return account{
		identity: domain.Identity{
			ID:             e.ID,
			Kind:           domain.IdentityEmployee,
			Name:           e.FullName(),
			Email:          e.Email,
			DepartmentID:   e.DepartmentID,
			DepartmentName: e.DepartmentName,
		},
		hash:    e.PasswordHash,
		active:  e.IsActive(),
		rawRole: e.Role,
	}
}

func mapIdentity(id domain.Identity) AuthResponse {
	resp := AuthResponse{
		ID:             id.ID.String(),
		Kind:           string(id.Kind),
		Email:          id.Email,
		Name:           id.Name,
		Role:           id.Role.String(),
		DepartmentName: id.DepartmentName,
	}
	if id.DepartmentID != nil {
		resp.DepartmentID = id.DepartmentID.String()
	}
	return resp
}

func mapUser(u User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
