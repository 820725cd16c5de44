package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MuleAlemuB/project1-sub002/internal/attendance"
	"github.com/MuleAlemuB/project1-sub002/internal/domain"
	"github.com/MuleAlemuB/project1-sub002/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	clockInFn  func(ctx context.Context, caller domain.Identity, req attendance.ClockInRequest) (attendance.AttendanceResponse, error)
	clockOutFn func(ctx context.Context, caller domain.Identity, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error)
	getAllFn   func(ctx context.Context, caller domain.Identity, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error)
}

func (f *fakeService) ClockIn(ctx context.Context, caller domain.Identity, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	return f.clockInFn(ctx, caller, req)
}
func (f *fakeService) ClockOut(ctx context.Context, caller domain.Identity, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	return f.clockOutFn(ctx, caller, req)
}
func (f *fakeService) GetAll(ctx context.Context, caller domain.Identity, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
	return f.getAllFn(ctx, caller, filter)
}

func TestHandler_ClockInAndGetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	caller := domain.Identity{ID: uuid.New(), Role: domain.RoleEmployee}

	svc := &fakeService{
		clockInFn: func(ctx context.Context, c domain.Identity, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
			assert.Equal(t, caller.ID, c.ID)
			return attendance.AttendanceResponse{ID: uuid.New().String(), EmployeeID: c.ID.String()}, nil
		},
		getAllFn: func(ctx context.Context, c domain.Identity, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
			assert.Equal(t, "2024-01-01", filter.From)
			return []attendance.AttendanceResponse{{ID: uuid.New().String()}, {ID: uuid.New().String()}}, nil
		},
	}

	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(middleware.ContextIdentity, caller)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/clock-in", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.ClockIn(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Set(middleware.ContextIdentity, caller)
	c2.Request = httptest.NewRequest(http.MethodGet, "/attendance?page=1&page_size=1&from=2024-01-01", nil)
	h.GetAll(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "\"meta\"")
}

func TestHandler_ClockIn_EmptyBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	called := false
	svc := &fakeService{
		clockInFn: func(ctx context.Context, c domain.Identity, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
			called = true
			return attendance.AttendanceResponse{}, nil
		},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(middleware.ContextIdentity, domain.Identity{ID: uuid.New(), Role: domain.RoleEmployee})
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/clock-in", nil)
	attendance.NewHandler(svc).ClockIn(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, called)
}

func TestHandler_ClockOut_Unauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/clock-out", nil)
	attendance.NewHandler(&fakeService{}).ClockOut(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_GetAll_BadDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(middleware.ContextIdentity, domain.Identity{ID: uuid.New(), Role: domain.RoleEmployee})
	c.Request = httptest.NewRequest(http.MethodGet, "/attendance?from=yesterday", nil)
	attendance.NewHandler(&fakeService{}).GetAll(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
