package vacancy

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	vacancyerrors "github.com/MuleAlemuB/project1-sub002/internal/vacancy/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	CacheKeyOpen = "vacancies:open"
	cacheTTL     = 5 * time.Minute
	dateLayout   = "2006-01-02"
)

//go:generate mockgen -source=vacancy_service.go -destination=mock/vacancy_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req VacancyRequest) (VacancyResponse, error)
	ListOpen(ctx context.Context) ([]VacancyResponse, error)
	ListAll(ctx context.Context) ([]VacancyResponse, error)
	GetByID(ctx context.Context, id string) (VacancyResponse, error)
	Update(ctx context.Context, id string, req VacancyRequest) (VacancyResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("vacancy.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("vacancy.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, logger: l}
}

func (s *service) Create(ctx context.Context, req VacancyRequest) (VacancyResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create vacancy begin tx failed", zap.Error(err))
		return VacancyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	v := &Vacancy{ID: uuid.New()}
	if err := s.apply(ctx, qtx, v, req); err != nil {
		return VacancyResponse{}, err
	}

	if err := qtx.Create(ctx, v); err != nil {
		s.logger.Error("create vacancy persist failed", zap.Error(err))
		return VacancyResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create vacancy commit failed", zap.Error(err))
		return VacancyResponse{}, err
	}
	s.invalidateCache(ctx)

	s.logger.Info("create vacancy success", zap.String("vacancy_id", v.ID.String()))
	return mapToResponse(*v), nil
}

// ListOpen backs the public job board and is cached.
func (s *service) ListOpen(ctx context.Context) ([]VacancyResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, CacheKeyOpen).Result(); err == nil {
			var resp []VacancyResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	items, err := s.repo.FindAll(ctx, true)
	if err != nil {
		s.logger.Error("list open vacancies failed", zap.Error(err))
		return nil, err
	}
	resp := mapToListResponse(items)

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, CacheKeyOpen, data, cacheTTL).Err(); err != nil {
				s.logger.Warn("cache vacancies failed", zap.Error(err))
			}
		}
	}

	return resp, nil
}

func (s *service) ListAll(ctx context.Context) ([]VacancyResponse, error) {
	items, err := s.repo.FindAll(ctx, false)
	if err != nil {
		s.logger.Error("list vacancies failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(items), nil
}

func (s *service) GetByID(ctx context.Context, id string) (VacancyResponse, error) {
	vacancyID, err := uuid.Parse(id)
	if err != nil {
		return VacancyResponse{}, vacancyerrors.ErrInvalidVacancyID
	}

	v, err := s.repo.FindByID(ctx, vacancyID)
	if err != nil {
		return VacancyResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*v), nil
}

func (s *service) Update(ctx context.Context, id string, req VacancyRequest) (VacancyResponse, error) {
	vacancyID, err := uuid.Parse(id)
	if err != nil {
		return VacancyResponse{}, vacancyerrors.ErrInvalidVacancyID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update vacancy begin tx failed", zap.Error(err))
		return VacancyResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	v, err := qtx.FindByID(ctx, vacancyID)
	if err != nil {
		return VacancyResponse{}, mapRepositoryError(err)
	}
	if err := s.apply(ctx, qtx, v, req); err != nil {
		return VacancyResponse{}, err
	}

	if err := qtx.Update(ctx, v); err != nil {
		s.logger.Error("update vacancy persist failed", zap.String("vacancy_id", id), zap.Error(err))
		return VacancyResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update vacancy commit failed", zap.String("vacancy_id", id), zap.Error(err))
		return VacancyResponse{}, err
	}
	s.invalidateCache(ctx)

	s.logger.Info("update vacancy success", zap.String("vacancy_id", id), zap.String("status", v.Status))
	return mapToResponse(*v), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	vacancyID, err := uuid.Parse(id)
	if err != nil {
		return vacancyerrors.ErrInvalidVacancyID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, vacancyID); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.invalidateCache(ctx)

	s.logger.Info("delete vacancy success", zap.String("vacancy_id", id))
	return nil
}

// apply copies the request onto v, resolving the department name and
// parsing the deadline.
func (s *service) apply(ctx context.Context, repo Repository, v *Vacancy, req VacancyRequest) error {
	v.DepartmentID = nil
	v.DepartmentName = ""
	if req.DepartmentID != "" {
		deptID, err := uuid.Parse(req.DepartmentID)
		if err != nil {
			return vacancyerrors.ErrInvalidDepartmentID
		}
		name, err := repo.GetDepartmentName(ctx, deptID)
		if err != nil {
			s.logger.Error("vacancy department lookup failed", zap.Error(err))
			return err
		}
		if name == "" {
			return vacancyerrors.ErrDepartmentNotFound
		}
		v.DepartmentID = &deptID
		v.DepartmentName = name
	}

	v.Deadline = nil
	if d := strings.TrimSpace(req.Deadline); d != "" {
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			return vacancyerrors.ErrInvalidDeadline
		}
		v.Deadline = &t
	}

	v.Title = strings.TrimSpace(req.Title)
	v.Description = req.Description
	v.Requirements = req.Requirements
	v.Location = strings.TrimSpace(req.Location)
	v.EmploymentType = req.EmploymentType
	v.Salary = strings.TrimSpace(req.Salary)
	v.Status = StatusOpen
	if req.Status != "" {
		v.Status = req.Status
	}
	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, CacheKeyOpen).Err(); err != nil {
		s.logger.Warn("invalidate vacancy cache failed", zap.Error(err))
	}
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return vacancyerrors.ErrVacancyNotFound
	}
	return err
}

func mapToResponse(v Vacancy) VacancyResponse {
	resp := VacancyResponse{
		ID:             v.ID.String(),
		Title:          v.Title,
		DepartmentName: v.DepartmentName,
		Description:    v.Description,
		Requirements:   v.Requirements,
		Location:       v.Location,
		EmploymentType: v.EmploymentType,
		Salary:         v.Salary,
		Status:         v.Status,
		CreatedAt:      v.CreatedAt.Format(time.RFC3339),
	}
	if v.DepartmentID != nil {
		id := v.DepartmentID.String()
		resp.DepartmentID = &id
	}
	if v.Deadline != nil {
		d := v.Deadline.Format(dateLayout)
		resp.Deadline = &d
	}
	return resp
}

func mapToListResponse(items []Vacancy) []VacancyResponse {
	resp := make([]VacancyResponse, len(items))
	for i, v := range items {
		resp[i] = mapToResponse(v)
	}
	return resp
}
