package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/MuleAlemuB/project1-sub002/internal/domain"
	employeeerrors "github.com/MuleAlemuB/project1-sub002/internal/employee/errors"
	"github.com/MuleAlemuB/project1-sub002/internal/events"
	"github.com/MuleAlemuB/project1-sub002/internal/messaging/kafka"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/contextutil"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/counter"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/upload"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeOptionsKey = "employees:options"
	optionsTTL         = time.Hour
	dateLayout         = "2006-01-02"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, query string) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOption, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	GetByDepartment(ctx context.Context, caller domain.Identity, departmentID string) ([]EmployeeResponse, error)
	Me(ctx context.Context, caller domain.Identity) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	UpdatePhoto(ctx context.Context, caller domain.Identity, photo *multipart.FileHeader) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	storage upload.Storage
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	storage upload.Storage,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		storage: storage,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("department_id", req.DepartmentID),
		zap.String("email", req.Email),
	)

	deptID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDepartmentID
	}
	role, err := parseRole(req.Role)
	if err != nil {
		return EmployeeResponse{}, err
	}
	hireDate, err := parseDate(req.HireDate)
	if err != nil {
		return EmployeeResponse{}, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	deptName, err := qtx.GetDepartmentName(ctx, deptID)
	if err != nil {
		s.logger.Error("create employee get department failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if deptName == "" {
		return EmployeeResponse{}, employeeerrors.ErrDepartmentNotFound
	}

	if req.EmployeeNumber == "" {
		nextVal, err := s.counter.WithTx(tx).GetNextValue(ctx, counter.TypeEmployeeNumber)
		if err != nil {
			s.logger.Error("create employee generate number failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		req.EmployeeNumber = fmt.Sprintf("EMP-%06d", nextVal)
	}

	status := req.Status
	if status == "" {
		status = StatusActive
	}

	empl := &Employee{
		ID:             uuid.New(),
		EmployeeNumber: req.EmployeeNumber,
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:          req.Phone,
		Position:       req.Position,
		Role:           role.String(),
		DepartmentID:   &deptID,
		DepartmentName: deptName,
		PasswordHash:   string(hashed),
		HireDate:       hireDate,
		Salary:         req.Salary,
		Status:         status,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueue(ctx, tx, events.EmployeeLifecycleEvent{
		EventType:    events.EmployeeCreated,
		RequestID:    rid,
		EmployeeID:   empl.ID.String(),
		DepartmentID: deptID.String(),
		OccurredAt:   time.Now().UTC(),
	}); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	s.invalidateOptions(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, query string) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested", zap.String("q", query))
	empls, err := s.repo.FindAll(ctx, ListFilter{Query: query})
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOption, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		empls, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOption, len(empls))
		for i, e := range empls {
			resp[i] = EmployeeOption{
				ID:             e.ID.String(),
				FullName:       e.FullName(),
				DepartmentName: e.DepartmentName,
			}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, EmployeeOptionsKey, jsonData, optionsTTL).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOption), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	emplID, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, emplID)
	if err != nil {
		s.logger.Error("get employee by id failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

// GetByDepartment lists a department's employees. Department heads are
// always scoped to their own department; admins pick one by id.
func (s *service) GetByDepartment(ctx context.Context, caller domain.Identity, departmentID string) ([]EmployeeResponse, error) {
	var deptID uuid.UUID
	if caller.Role == domain.RoleAdmin && departmentID != "" {
		parsed, err := uuid.Parse(departmentID)
		if err != nil {
			return nil, employeeerrors.ErrInvalidDepartmentID
		}
		deptID = parsed
	} else {
		if caller.DepartmentID == nil {
			return nil, employeeerrors.ErrNoDepartment
		}
		deptID = *caller.DepartmentID
	}

	empls, err := s.repo.FindAll(ctx, ListFilter{DepartmentID: &deptID})
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) Me(ctx context.Context, caller domain.Identity) (EmployeeResponse, error) {
	if caller.Kind != domain.IdentityEmployee {
		return EmployeeResponse{}, employeeerrors.ErrNoEmployeeProfile
	}

	empl, err := s.repo.FindByID(ctx, caller.ID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested",
		zap.String("employee_id", id),
		zap.String("department_id", req.DepartmentID),
	)

	emplID, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	deptID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDepartmentID
	}
	role, err := parseRole(req.Role)
	if err != nil {
		return EmployeeResponse{}, err
	}
	hireDate, err := parseDate(req.HireDate)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, emplID)
	if err != nil {
		s.logger.Error("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	deptName, err := qtx.GetDepartmentName(ctx, deptID)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if deptName == "" {
		return EmployeeResponse{}, employeeerrors.ErrDepartmentNotFound
	}

	previousDept := ""
	if empl.DepartmentID != nil {
		previousDept = empl.DepartmentID.String()
	}

	empl.FirstName = strings.TrimSpace(req.FirstName)
	empl.LastName = strings.TrimSpace(req.LastName)
	empl.Email = strings.ToLower(strings.TrimSpace(req.Email))
	empl.Phone = req.Phone
	empl.Position = req.Position
	empl.Role = role.String()
	empl.DepartmentID = &deptID
	empl.DepartmentName = deptName
	empl.HireDate = hireDate
	empl.Salary = req.Salary
	if req.Status != "" {
		empl.Status = req.Status
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return EmployeeResponse{}, err
		}
		empl.PasswordHash = string(hashed)
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueue(ctx, tx, events.EmployeeLifecycleEvent{
		EventType:            events.EmployeeUpdated,
		RequestID:            contextutil.GetRequestID(ctx),
		EmployeeID:           empl.ID.String(),
		DepartmentID:         deptID.String(),
		PreviousDepartmentID: previousDept,
		OccurredAt:           time.Now().UTC(),
	}); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	s.invalidateOptions(ctx)

	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

func (s *service) UpdatePhoto(ctx context.Context, caller domain.Identity, photo *multipart.FileHeader) (EmployeeResponse, error) {
	if caller.Kind != domain.IdentityEmployee {
		return EmployeeResponse{}, employeeerrors.ErrNoEmployeeProfile
	}
	if photo == nil {
		return EmployeeResponse{}, employeeerrors.ErrPhotoRequired
	}

	empl, err := s.repo.FindByID(ctx, caller.ID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	path, err := s.storage.Save(photo, upload.DirPhotos, upload.ImageExts)
	if err != nil {
		return EmployeeResponse{}, err
	}

	if err := s.repo.UpdatePhoto(ctx, empl.ID, path); err != nil {
		s.logger.Error("update employee photo failed", zap.String("employee_id", empl.ID.String()), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	empl.PhotoPath = path

	s.logger.Info("employee photo updated", zap.String("employee_id", empl.ID.String()), zap.String("path", path))
	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	s.logger.Debug("delete employee requested", zap.String("employee_id", id))

	emplID, err := uuid.Parse(id)
	if err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, emplID)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, emplID); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	event := events.EmployeeLifecycleEvent{
		EventType:  events.EmployeeDeleted,
		RequestID:  contextutil.GetRequestID(ctx),
		EmployeeID: id,
		OccurredAt: time.Now().UTC(),
	}
	if empl.DepartmentID != nil {
		event.DepartmentID = empl.DepartmentID.String()
	}
	if err := s.enqueue(ctx, tx, event); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}
	s.invalidateOptions(ctx)

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

// enqueue writes the lifecycle event to the outbox inside tx.
func (s *service) enqueue(ctx context.Context, tx *sql.Tx, event events.EmployeeLifecycleEvent) error {
	if s.outbox == nil {
		return nil
	}

	outboxEvent, err := kafka.NewOutboxEvent(kafka.EventMeta{
		AggregateType: "employee",
		AggregateID:   event.EmployeeID,
		EventType:     event.EventType,
		Topic:         events.EmployeeLifecycleTopic,
		RequestID:     event.RequestID,
	}, event)
	if err != nil {
		s.logger.Error("build employee outbox event failed", zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		s.logger.Error("employee outbox persist failed",
			zap.String("employee_id", event.EmployeeID),
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}

func parseRole(raw string) (domain.Role, error) {
	if strings.TrimSpace(raw) == "" {
		return domain.RoleEmployee, nil
	}
	role, err := domain.ParseRole(raw)
	if err != nil {
		return "", employeeerrors.ErrInvalidRole
	}
	return role, nil
}

func parseDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, employeeerrors.ErrInvalidHireDate
	}
	return &t, nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             empl.ID.String(),
		EmployeeNumber: empl.EmployeeNumber,
		FirstName:      empl.FirstName,
		LastName:       empl.LastName,
		FullName:       empl.FullName(),
		Email:          empl.Email,
		Phone:          empl.Phone,
		Position:       empl.Position,
		Role:           empl.Role,
		DepartmentName: empl.DepartmentName,
		Photo:          empl.PhotoPath,
		Salary:         empl.Salary,
		Status:         empl.Status,
	}
	if empl.DepartmentID != nil {
		resp.DepartmentID = empl.DepartmentID.String()
	}
	if empl.HireDate != nil {
		resp.HireDate = empl.HireDate.Format(dateLayout)
	}
	return resp
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
