package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/MuleAlemuB/project1-sub002/internal/domain"
	"github.com/MuleAlemuB/project1-sub002/internal/employee"
	employeeerrors "github.com/MuleAlemuB/project1-sub002/internal/employee/errors"
	"github.com/MuleAlemuB/project1-sub002/internal/events"
	"github.com/MuleAlemuB/project1-sub002/internal/messaging/kafka"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/upload"

	employeeMock "github.com/MuleAlemuB/project1-sub002/internal/employee/mock"
	kafkaMock "github.com/MuleAlemuB/project1-sub002/internal/messaging/kafka/mock"
	counterMock "github.com/MuleAlemuB/project1-sub002/internal/shared/counter/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeStorage struct {
	saved   string
	saveErr error
	dir     string
}

func (f *fakeStorage) Save(fh *multipart.FileHeader, dir string, allowed []string) (string, error) {
	f.dir = dir
	if f.saveErr != nil {
		return "", f.saveErr
	}
	return f.saved, nil
}

func (f *fakeStorage) WriteBytes(dir, ext string, data []byte) (string, error) {
	return "", nil
}

func (f *fakeStorage) Resolve(publicPath string) (string, error) {
	return "", nil
}

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   employee.Service
	repo      *employeeMock.MockRepository
	counter   *counterMock.MockRepository
	redismock redismock.ClientMock
	outbox    *kafkaMock.MockOutboxRepository
	storage   *fakeStorage
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	dbRedis, redisMock := redismock.NewClientMock()
	repo := employeeMock.NewMockRepository(ctrl)
	counterRepo := counterMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)
	storage := &fakeStorage{saved: "uploads/photos/p.png"}

	svc := employee.NewService(db, repo, counterRepo, outboxRepo, storage, dbRedis)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		counter:   counterRepo,
		outbox:    outboxRepo,
		redismock: redisMock,
		storage:   storage,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func validCreateRequest(deptID uuid.UUID) employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		FirstName:    "Sara",
		LastName:     "Bekele",
		Email:        "Sara@Example.com",
		DepartmentID: deptID.String(),
		Password:     "secret123",
		HireDate:     "2024-01-15",
		Salary:       1200,
	}
}

func TestEmployeeService_Create(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	deptID := uuid.New()

	t.Run("success - auto generate employee number", func(t *testing.T) {
		req := validCreateRequest(deptID)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().GetDepartmentName(ctx, deptID).Return("HR", nil)
		deps.counter.EXPECT().WithTx(gomock.Any()).Return(deps.counter)
		deps.counter.EXPECT().GetNextValue(ctx, "employee_number").Return(int64(7), nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, "EMP-000007", e.EmployeeNumber)
				assert.Equal(t, "sara@example.com", e.Email)
				assert.Equal(t, "HR", e.DepartmentName)
				assert.Equal(t, "employee", e.Role)
				assert.Equal(t, employee.StatusActive, e.Status)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte("secret123")))
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
				assert.Equal(t, events.EmployeeLifecycleTopic, ev.Topic)
				assert.Equal(t, events.EmployeeCreated, ev.EventType)
				var payload events.EmployeeLifecycleEvent
				assert.NoError(t, json.Unmarshal(ev.Payload, &payload))
				assert.Equal(t, deptID.String(), payload.DepartmentID)
				return nil
			})
		deps.redismock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "Sara Bekele", resp.FullName)
		assert.Equal(t, "2024-01-15", resp.HireDate)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown department", func(t *testing.T) {
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().GetDepartmentName(ctx, deptID).Return("", nil)

		_, err := deps.service.Create(ctx, validCreateRequest(deptID))

		assert.ErrorIs(t, err, employeeerrors.ErrDepartmentNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		req := validCreateRequest(deptID)
		req.EmployeeNumber = "EMP-1"

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().GetDepartmentName(ctx, deptID).Return("HR", nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"})

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	})

	t.Run("invalid role", func(t *testing.T) {
		req := validCreateRequest(deptID)
		req.Role = "superuser"

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidRole)
	})

	t.Run("invalid hire date", func(t *testing.T) {
		req := validCreateRequest(deptID)
		req.HireDate = "15/01/2024"

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
	})

	t.Run("outbox failure rolls back", func(t *testing.T) {
		req := validCreateRequest(deptID)
		req.EmployeeNumber = "EMP-2"

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().GetDepartmentName(ctx, deptID).Return("HR", nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("outbox down"))

		_, err := deps.service.Create(ctx, req)

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps.repo.EXPECT().FindByID(ctx, id).Return(&employee.Employee{ID: id, FirstName: "Abel"}, nil)

		resp, err := deps.service.GetByID(ctx, id.String())

		assert.NoError(t, err)
		assert.Equal(t, id.String(), resp.ID)
	})

	t.Run("not found", func(t *testing.T) {
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, id.String())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := deps.service.GetByID(ctx, "abc")

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("cache hit", func(t *testing.T) {
		cached, _ := json.Marshal([]employee.EmployeeOption{{ID: "1", FullName: "A B"}})
		deps.redismock.ExpectGet(employee.EmployeeOptionsKey).SetVal(string(cached))
		deps.repo.EXPECT().FindOptions(gomock.Any()).Times(0)

		resp, err := deps.service.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("cache miss", func(t *testing.T) {
		id := uuid.New()
		deps.redismock.ExpectGet(employee.EmployeeOptionsKey).RedisNil()
		deps.repo.EXPECT().FindOptions(ctx).Return([]employee.Employee{{ID: id, FirstName: "Abel", LastName: "T", DepartmentName: "IT"}}, nil)

		expected := []employee.EmployeeOption{{ID: id.String(), FullName: "Abel T", DepartmentName: "IT"}}
		payload, _ := json.Marshal(expected)
		deps.redismock.ExpectSet(employee.EmployeeOptionsKey, payload, time.Hour).SetVal("OK")

		resp, err := deps.service.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Equal(t, expected, resp)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})
}

func TestEmployeeService_GetByDepartment(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	own := uuid.New()
	other := uuid.New()

	t.Run("head is scoped to own department", func(t *testing.T) {
		head := domain.Identity{Role: domain.RoleDepartmentHead, DepartmentID: &own}
		deps.repo.EXPECT().
			FindAll(ctx, employee.ListFilter{DepartmentID: &own}).
			Return([]employee.Employee{{ID: uuid.New()}}, nil)

		resp, err := deps.service.GetByDepartment(ctx, head, other.String())

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("admin picks department", func(t *testing.T) {
		admin := domain.Identity{Role: domain.RoleAdmin}
		deps.repo.EXPECT().
			FindAll(ctx, employee.ListFilter{DepartmentID: &other}).
			Return(nil, nil)

		resp, err := deps.service.GetByDepartment(ctx, admin, other.String())

		assert.NoError(t, err)
		assert.Empty(t, resp)
	})

	t.Run("head without department", func(t *testing.T) {
		_, err := deps.service.GetByDepartment(ctx, domain.Identity{Role: domain.RoleDepartmentHead}, "")

		assert.ErrorIs(t, err, employeeerrors.ErrNoDepartment)
	})
}

func TestEmployeeService_Me(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	id := uuid.New()

	deps.repo.EXPECT().FindByID(ctx, id).Return(&employee.Employee{ID: id, Email: "me@x.io"}, nil)

	resp, err := deps.service.Me(ctx, domain.Identity{ID: id, Kind: domain.IdentityEmployee})
	assert.NoError(t, err)
	assert.Equal(t, "me@x.io", resp.Email)

	_, err = deps.service.Me(ctx, domain.Identity{ID: id, Kind: domain.IdentityUser})
	assert.ErrorIs(t, err, employeeerrors.ErrNoEmployeeProfile)
}

func TestEmployeeService_Update(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	id := uuid.New()
	fromDept := uuid.New()
	toDept := uuid.New()

	t.Run("department move emits both departments", func(t *testing.T) {
		req := employee.UpdateEmployeeRequest{
			FirstName:    "Sara",
			LastName:     "B",
			Email:        "sara@example.com",
			DepartmentID: toDept.String(),
			Role:         "Department Head",
		}

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(&employee.Employee{ID: id, DepartmentID: &fromDept, PasswordHash: "old"}, nil)
		deps.repo.EXPECT().GetDepartmentName(ctx, toDept).Return("Finance", nil)
		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, "departmenthead", e.Role)
				assert.Equal(t, "Finance", e.DepartmentName)
				assert.Equal(t, "old", e.PasswordHash)
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
				var payload events.EmployeeLifecycleEvent
				assert.NoError(t, json.Unmarshal(ev.Payload, &payload))
				assert.Equal(t, events.EmployeeUpdated, payload.EventType)
				assert.Equal(t, []string{toDept.String(), fromDept.String()}, payload.AffectedDepartments())
				return nil
			})
		deps.redismock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)

		resp, err := deps.service.Update(ctx, id.String(), req)

		assert.NoError(t, err)
		assert.Equal(t, toDept.String(), resp.DepartmentID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, id.String(), employee.UpdateEmployeeRequest{DepartmentID: toDept.String()})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_UpdatePhoto(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	id := uuid.New()
	caller := domain.Identity{ID: id, Kind: domain.IdentityEmployee}

	t.Run("success", func(t *testing.T) {
		deps.repo.EXPECT().FindByID(ctx, id).Return(&employee.Employee{ID: id}, nil)
		deps.repo.EXPECT().UpdatePhoto(ctx, id, "uploads/photos/p.png").Return(nil)

		resp, err := deps.service.UpdatePhoto(ctx, caller, &multipart.FileHeader{Filename: "p.png"})

		assert.NoError(t, err)
		assert.Equal(t, "uploads/photos/p.png", resp.Photo)
		assert.Equal(t, upload.DirPhotos, deps.storage.dir)
	})

	t.Run("rejected extension", func(t *testing.T) {
		deps.storage.saveErr = upload.ErrExtensionNotAllowed
		defer func() { deps.storage.saveErr = nil }()

		deps.repo.EXPECT().FindByID(ctx, id).Return(&employee.Employee{ID: id}, nil)

		_, err := deps.service.UpdatePhoto(ctx, caller, &multipart.FileHeader{Filename: "p.exe"})

		assert.ErrorIs(t, err, upload.ErrExtensionNotAllowed)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := deps.service.UpdatePhoto(ctx, caller, nil)

		assert.ErrorIs(t, err, employeeerrors.ErrPhotoRequired)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	id := uuid.New()
	dept := uuid.New()

	t.Run("success", func(t *testing.T) {
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(&employee.Employee{ID: id, DepartmentID: &dept}, nil)
		deps.repo.EXPECT().Delete(ctx, id).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
				assert.Equal(t, events.EmployeeDeleted, ev.EventType)
				return nil
			})
		deps.redismock.ExpectDel(employee.EmployeeOptionsKey).SetVal(1)

		err := deps.service.Delete(ctx, id.String())

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		err := deps.service.Delete(ctx, id.String())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
