package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/MuleAlemuB/project1-sub002/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the initial administrator account when no user with the
// given email exists yet. Register is admin-only, so a fresh database needs
// one account to start from.
func SeedAdmin(ctx context.Context, repo Repository, name, email, password string, logger *zap.Logger) (bool, error) {
	if logger == nil {
		logger = zap.L()
	}
	logger = logger.Named("auth.seed")

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, nil
	}

	_, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	if strings.TrimSpace(name) == "" {
		name = "Administrator"
	}
	user := &User{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: string(hashed),
		Role:     domain.RoleAdmin.String(),
		IsActive: true,
	}
	if err := repo.Create(ctx, user); err != nil {
		return false, err
	}

	logger.Info("admin account seeded", zap.String("email", email))
	return true, nil
}
