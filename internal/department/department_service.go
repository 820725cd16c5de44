package department

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	departmenterrors "github.com/MuleAlemuB/project1-sub002/internal/department/errors"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	CacheKeyAll = "departments:all"
	cacheTTL    = 30 * time.Minute
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
	RecountEmployees(ctx context.Context, id uuid.UUID) (int64, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	s.logger.Debug("create department requested", zap.String("name", req.Name))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create department begin tx failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept := &Department{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Head:        strings.TrimSpace(req.Head),
		Faculty:     strings.TrimSpace(req.Faculty),
		Description: req.Description,
	}

	if err := qtx.Create(ctx, dept); err != nil {
		s.logger.Error("create department persist failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create department commit failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	s.invalidateCache(ctx)

	s.logger.Info("create department success", zap.String("department_id", dept.ID.String()))
	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, CacheKeyAll).Result(); err == nil {
			var resp []DepartmentResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	depts, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all departments failed", zap.Error(err))
		return nil, err
	}
	resp := mapToListResponse(depts)

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, CacheKeyAll, data, cacheTTL).Err(); err != nil {
				s.logger.Warn("cache departments failed", zap.Error(err))
			}
		}
	}

	return resp, nil
}

// GetByID treats an id that is not a UUID as an unknown department.
func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	deptID, err := uuid.Parse(id)
	if err != nil {
		return DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
	}

	dept, err := s.repo.FindByID(ctx, deptID)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*dept), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	deptID, err := uuid.Parse(id)
	if err != nil {
		return DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update department begin tx failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByID(ctx, deptID)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	newName := strings.TrimSpace(req.Name)
	renamed := dept.Name != newName

	dept.Name = newName
	dept.Head = strings.TrimSpace(req.Head)
	dept.Faculty = strings.TrimSpace(req.Faculty)
	dept.Description = req.Description

	if err := qtx.Update(ctx, dept); err != nil {
		s.logger.Error("update department persist failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if renamed {
		if err := qtx.PropagateName(ctx, dept.ID, dept.Name); err != nil {
			s.logger.Error("propagate department name failed", zap.Error(err))
			return DepartmentResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update department commit failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	s.invalidateCache(ctx)

	s.logger.Info("update department success", zap.String("department_id", id), zap.Bool("renamed", renamed))
	return mapToResponse(*dept), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	deptID, err := uuid.Parse(id)
	if err != nil {
		return departmenterrors.ErrDepartmentNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete department begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	count, err := qtx.CountEmployees(ctx, deptID)
	if err != nil {
		return err
	}
	if count > 0 {
		return departmenterrors.ErrDepartmentHasEmployees
	}

	if err := qtx.Delete(ctx, deptID); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete department commit failed", zap.Error(err))
		return err
	}
	s.invalidateCache(ctx)

	s.logger.Info("delete department success", zap.String("department_id", id))
	return nil
}

// RecountEmployees refreshes the stored headcount from the employees table.
func (s *service) RecountEmployees(ctx context.Context, id uuid.UUID) (int64, error) {
	count, err := s.repo.CountEmployees(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := s.repo.SetEmployeeCount(ctx, id, count); err != nil {
		return 0, err
	}
	s.invalidateCache(ctx)

	s.logger.Debug("department headcount refreshed", zap.String("department_id", id.String()), zap.Int64("count", count))
	return count, nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, CacheKeyAll).Err(); err != nil {
		s.logger.Error("failed to invalidate department cache", zap.String("key", CacheKeyAll), zap.Error(err))
	}
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}
	if apperror.IsUniqueViolation(err) {
		return departmenterrors.ErrDepartmentNameTaken
	}
	return err
}

func mapToResponse(dept Department) DepartmentResponse {
	return DepartmentResponse{
		ID:            dept.ID.String(),
		Name:          dept.Name,
		Head:          dept.Head,
		Faculty:       dept.Faculty,
		Description:   dept.Description,
		EmployeeCount: dept.EmployeeCount,
		CreatedAt:     dept.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     dept.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
