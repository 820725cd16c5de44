package department_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MuleAlemuB/project1-sub002/internal/department"
	departmenterrors "github.com/MuleAlemuB/project1-sub002/internal/department/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeDepartmentService struct {
	CreateFn  func(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error)
	GetAllFn  func(ctx context.Context) ([]department.DepartmentResponse, error)
	GetByIDFn func(ctx context.Context, id string) (department.DepartmentResponse, error)
	UpdateFn  func(ctx context.Context, id string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (f *fakeDepartmentService) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeDepartmentService) GetAll(ctx context.Context) ([]department.DepartmentResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeDepartmentService) GetByID(ctx context.Context, id string) (department.DepartmentResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeDepartmentService) Update(ctx context.Context, id string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeDepartmentService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}
func (f *fakeDepartmentService) RecountEmployees(ctx context.Context, id uuid.UUID) (int64, error) {
	return 0, nil
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestDepartmentHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeDepartmentService{
			CreateFn: func(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
				return department.DepartmentResponse{ID: uuid.New().String(), Name: req.Name}, nil
			},
		}

		h := department.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/departments", `{"name":"HR"}`)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"HR"`)
	})

	t.Run("validation error", func(t *testing.T) {
		h := department.NewHandler(&fakeDepartmentService{})
		c, w := newTestContext(http.MethodPost, "/departments", `{}`)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"INVALID_INPUT"`)
		assert.Contains(t, w.Body.String(), `"rule":"required"`)
	})

	t.Run("duplicate name", func(t *testing.T) {
		svc := &fakeDepartmentService{
			CreateFn: func(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
				return department.DepartmentResponse{}, departmenterrors.ErrDepartmentNameTaken
			},
		}

		h := department.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/departments", `{"name":"HR"}`)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "CONFLICT")
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeDepartmentService{
			CreateFn: func(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
				return department.DepartmentResponse{}, errors.New("failed")
			},
		}

		h := department.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/departments", `{"name":"HR"}`)

		h.Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestDepartmentHandler_GetAll(t *testing.T) {
	svc := &fakeDepartmentService{
		GetAllFn: func(ctx context.Context) ([]department.DepartmentResponse, error) {
			return []department.DepartmentResponse{{ID: uuid.New().String(), Name: "HR"}}, nil
		},
	}

	h := department.NewHandler(svc)
	c, w := newTestContext(http.MethodGet, "/departments", "")

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "HR")
}

func TestDepartmentHandler_GetById(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		svc := &fakeDepartmentService{
			GetByIDFn: func(ctx context.Context, got string) (department.DepartmentResponse, error) {
				assert.Equal(t, id, got)
				return department.DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
			},
		}

		h := department.NewHandler(svc)
		c, w := newTestContext(http.MethodGet, "/departments/"+id, "")
		c.Params = gin.Params{{Key: "id", Value: id}}

		h.GetById(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("24-char hex id", func(t *testing.T) {
		svc := &fakeDepartmentService{
			GetByIDFn: func(ctx context.Context, got string) (department.DepartmentResponse, error) {
				assert.Equal(t, "65a1f0c2e4b0a1b2c3d4e5f6", got)
				return department.DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
			},
		}

		h := department.NewHandler(svc)
		c, w := newTestContext(http.MethodGet, "/departments/65a1f0c2e4b0a1b2c3d4e5f6", "")
		c.Params = gin.Params{{Key: "id", Value: "65a1f0c2e4b0a1b2c3d4e5f6"}}

		h.GetById(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDepartmentHandler_Update(t *testing.T) {
	id := uuid.New().String()
	svc := &fakeDepartmentService{
		UpdateFn: func(ctx context.Context, got string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
			assert.Equal(t, id, got)
			return department.DepartmentResponse{ID: got, Name: req.Name}, nil
		},
	}

	h := department.NewHandler(svc)
	c, w := newTestContext(http.MethodPut, "/departments/"+id, `{"name":"Finance"}`)
	c.Params = gin.Params{{Key: "id", Value: id}}

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Finance")
}

func TestDepartmentHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeDepartmentService{
			DeleteFn: func(ctx context.Context, id string) error { return nil },
		}

		h := department.NewHandler(svc)
		c, w := newTestContext(http.MethodDelete, "/departments/x", "")
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

		h.Delete(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("has employees", func(t *testing.T) {
		svc := &fakeDepartmentService{
			DeleteFn: func(ctx context.Context, id string) error {
				return departmenterrors.ErrDepartmentHasEmployees
			},
		}

		h := department.NewHandler(svc)
		c, w := newTestContext(http.MethodDelete, "/departments/x", "")
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

		h.Delete(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_STATE")
	})
}
