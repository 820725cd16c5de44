package report_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MuleAlemuB/project1-sub002/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeReportService struct {
	DashboardFn func(ctx context.Context) (report.DashboardResponse, error)
	LeavesFn    func(ctx context.Context) ([]byte, error)
	EmployeesFn func(ctx context.Context) ([]byte, error)
}

func (f *fakeReportService) Dashboard(ctx context.Context) (report.DashboardResponse, error) {
	return f.DashboardFn(ctx)
}
func (f *fakeReportService) LeavesWorkbook(ctx context.Context) ([]byte, error) {
	return f.LeavesFn(ctx)
}
func (f *fakeReportService) EmployeesWorkbook(ctx context.Context) ([]byte, error) {
	return f.EmployeesFn(ctx)
}

func TestReportHandler_Dashboard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeReportService{
		DashboardFn: func(ctx context.Context) (report.DashboardResponse, error) {
			return report.DashboardResponse{Employees: 7}, nil
		},
	}
	r := gin.New()
	r.GET("/reports/dashboard", report.NewHandler(svc).Dashboard)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/dashboard", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"employees":7`)
}

func TestReportHandler_ExportLeaves(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeReportService{
		LeavesFn: func(ctx context.Context) ([]byte, error) { return []byte("PK"), nil },
	}
	r := gin.New()
	r.GET("/reports/leaves.xlsx", report.NewHandler(svc).ExportLeaves)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/leaves.xlsx", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "leaves.xlsx")
	assert.Equal(t, "PK", w.Body.String())
}

func TestReportHandler_ExportEmployees_Error(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeReportService{
		EmployeesFn: func(ctx context.Context) ([]byte, error) { return nil, errors.New("boom") },
	}
	r := gin.New()
	r.GET("/reports/employees.xlsx", report.NewHandler(svc).ExportEmployees)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/employees.xlsx", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
