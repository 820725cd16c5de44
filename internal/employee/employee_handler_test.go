package employee_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MuleAlemuB/project1-sub002/internal/domain"
	"github.com/MuleAlemuB/project1-sub002/internal/employee"
	employeeerrors "github.com/MuleAlemuB/project1-sub002/internal/employee/errors"
	"github.com/MuleAlemuB/project1-sub002/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeService struct {
	CreateFn          func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetAllFn          func(ctx context.Context, query string) ([]employee.EmployeeResponse, error)
	GetOptionsFn      func(ctx context.Context) ([]employee.EmployeeOption, error)
	GetByIDFn         func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	GetByDepartmentFn func(ctx context.Context, caller domain.Identity, departmentID string) ([]employee.EmployeeResponse, error)
	MeFn              func(ctx context.Context, caller domain.Identity) (employee.EmployeeResponse, error)
	UpdateFn          func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	UpdatePhotoFn     func(ctx context.Context, caller domain.Identity, photo *multipart.FileHeader) (employee.EmployeeResponse, error)
	DeleteFn          func(ctx context.Context, id string) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context, query string) ([]employee.EmployeeResponse, error) {
	return f.GetAllFn(ctx, query)
}
func (f *fakeEmployeeService) GetOptions(ctx context.Context) ([]employee.EmployeeOption, error) {
	return f.GetOptionsFn(ctx)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEmployeeService) GetByDepartment(ctx context.Context, caller domain.Identity, departmentID string) ([]employee.EmployeeResponse, error) {
	return f.GetByDepartmentFn(ctx, caller, departmentID)
}
func (f *fakeEmployeeService) Me(ctx context.Context, caller domain.Identity) (employee.EmployeeResponse, error) {
	return f.MeFn(ctx, caller)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeEmployeeService) UpdatePhoto(ctx context.Context, caller domain.Identity, photo *multipart.FileHeader) (employee.EmployeeResponse, error) {
	return f.UpdatePhotoFn(ctx, caller, photo)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func withIdentity(id domain.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextIdentity, id)
		c.Next()
	}
}

type listEnvelope struct {
	Ok   bool                        `json:"ok"`
	Data []employee.EmployeeResponse `json:"data"`
	Meta struct {
		Total int `json:"total"`
	} `json:"meta"`
}

func TestEmployeeHandler_Create(t *testing.T) {
	validBody := `{"first_name":"Sara","last_name":"B","email":"sara@example.com","department_id":"` + uuid.NewString() + `","password":"secret123"}`

	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "Sara", req.FirstName)
				return employee.EmployeeResponse{ID: uuid.NewString(), FirstName: req.FirstName}, nil
			},
		}
		r := setupRouter()
		r.POST("/employees", employee.NewHandler(svc).Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(validBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		r := setupRouter()
		r.POST("/employees", employee.NewHandler(&fakeEmployeeService{}).Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"first_name":"Sara"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("conflict", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists
			},
		}
		r := setupRouter()
		r.POST("/employees", employee.NewHandler(svc).Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(validBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "CONFLICT")
	})
}

func TestEmployeeHandler_GetAll_SortAndPaginate(t *testing.T) {
	svc := &fakeEmployeeService{
		GetAllFn: func(ctx context.Context, query string) ([]employee.EmployeeResponse, error) {
			assert.Equal(t, "a", query)
			return []employee.EmployeeResponse{
				{ID: "1", FullName: "Charlie"},
				{ID: "2", FullName: "alice"},
				{ID: "3", FullName: "Bob"},
			}, nil
		},
	}
	r := setupRouter()
	r.GET("/employees", employee.NewHandler(svc).GetAll)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?q=a&page=1&page_size=2", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var env listEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, 3, env.Meta.Total)
	assert.Len(t, env.Data, 2)
	assert.Equal(t, "alice", env.Data[0].FullName)
	assert.Equal(t, "Bob", env.Data[1].FullName)
}

func TestEmployeeHandler_GetById(t *testing.T) {
	svc := &fakeEmployeeService{
		GetByIDFn: func(ctx context.Context, id string) (employee.EmployeeResponse, error) {
			return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		},
	}
	r := setupRouter()
	r.GET("/employees/:id", employee.NewHandler(svc).GetById)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEmployeeHandler_Me(t *testing.T) {
	caller := domain.Identity{ID: uuid.New(), Kind: domain.IdentityEmployee, Role: domain.RoleEmployee}

	t.Run("authenticated", func(t *testing.T) {
		svc := &fakeEmployeeService{
			MeFn: func(ctx context.Context, got domain.Identity) (employee.EmployeeResponse, error) {
				assert.Equal(t, caller.ID, got.ID)
				return employee.EmployeeResponse{ID: got.ID.String()}, nil
			},
		}
		r := setupRouter()
		r.GET("/employees/me", withIdentity(caller), employee.NewHandler(svc).Me)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/me", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("no identity", func(t *testing.T) {
		r := setupRouter()
		r.GET("/employees/me", employee.NewHandler(&fakeEmployeeService{}).Me)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestEmployeeHandler_GetByDepartment(t *testing.T) {
	dept := uuid.New()
	head := domain.Identity{ID: uuid.New(), Role: domain.RoleDepartmentHead, DepartmentID: &dept}
	svc := &fakeEmployeeService{
		GetByDepartmentFn: func(ctx context.Context, caller domain.Identity, departmentID string) ([]employee.EmployeeResponse, error) {
			assert.Equal(t, head.ID, caller.ID)
			return []employee.EmployeeResponse{{ID: "1"}}, nil
		},
	}
	r := setupRouter()
	r.GET("/employees/department", withIdentity(head), employee.NewHandler(svc).GetByDepartment)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/department", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEmployeeHandler_UpdatePhoto(t *testing.T) {
	caller := domain.Identity{ID: uuid.New(), Kind: domain.IdentityEmployee, Role: domain.RoleEmployee}

	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			UpdatePhotoFn: func(ctx context.Context, got domain.Identity, photo *multipart.FileHeader) (employee.EmployeeResponse, error) {
				assert.Equal(t, "me.png", photo.Filename)
				return employee.EmployeeResponse{Photo: "uploads/photos/x.png"}, nil
			},
		}
		r := setupRouter()
		r.PUT("/employees/me/photo", withIdentity(caller), employee.NewHandler(svc).UpdatePhoto)

		body := &bytes.Buffer{}
		mw := multipart.NewWriter(body)
		fw, _ := mw.CreateFormFile("photo", "me.png")
		_, _ = fw.Write([]byte("png-bytes"))
		_ = mw.Close()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/employees/me/photo", body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "uploads/photos/x.png")
	})

	t.Run("missing file", func(t *testing.T) {
		r := setupRouter()
		r.PUT("/employees/me/photo", withIdentity(caller), employee.NewHandler(&fakeEmployeeService{}).UpdatePhoto)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/employees/me/photo", strings.NewReader(""))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{DeleteFn: func(ctx context.Context, id string) error { return nil }}
		r := setupRouter()
		r.DELETE("/employees/:id", employee.NewHandler(svc).Delete)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/employees/"+uuid.NewString(), nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("internal error", func(t *testing.T) {
		svc := &fakeEmployeeService{DeleteFn: func(ctx context.Context, id string) error { return errors.New("boom") }}
		r := setupRouter()
		r.DELETE("/employees/:id", employee.NewHandler(svc).Delete)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/employees/"+uuid.NewString(), nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
