package report

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/MuleAlemuB/project1-sub002/internal/employee"
	"github.com/MuleAlemuB/project1-sub002/internal/leave"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/apperror"

	"github.com/redis/go-redis/v9"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	CacheKeyDashboard = "reports:dashboard"
	dashboardTTL      = 60 * time.Second

	dateLayout = "2006-01-02"
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Dashboard(ctx context.Context) (DashboardResponse, error)
	LeavesWorkbook(ctx context.Context) ([]byte, error)
	EmployeesWorkbook(ctx context.Context) ([]byte, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Dashboard(ctx context.Context) (DashboardResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, CacheKeyDashboard).Result(); err == nil {
			var resp DashboardResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(CacheKeyDashboard, func() (interface{}, error) {
		resp, err := s.repo.Counts(ctx)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, CacheKeyDashboard, data, dashboardTTL).Err(); err != nil {
					s.logger.Warn("cache dashboard failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("dashboard counts failed", zap.Error(err))
		return DashboardResponse{}, err
	}
	return v.(DashboardResponse), nil
}

func (s *service) LeavesWorkbook(ctx context.Context) ([]byte, error) {
	rows, err := s.repo.Leaves(ctx)
	if err != nil {
		return nil, err
	}

	header := []interface{}{"Requester", "Email", "Role", "Department", "Type", "Start", "End", "Days", "Status", "Reason"}
	data := make([][]interface{}, len(rows))
	for i, l := range rows {
		data[i] = leaveRow(l)
	}
	return s.export("Leaves", header, data)
}

func (s *service) EmployeesWorkbook(ctx context.Context) ([]byte, error) {
	rows, err := s.repo.Employees(ctx)
	if err != nil {
		return nil, err
	}

	header := []interface{}{"Number", "Name", "Email", "Phone", "Position", "Role", "Department", "Hire date", "Status"}
	data := make([][]interface{}, len(rows))
	for i, e := range rows {
		data[i] = employeeRow(e)
	}
	return s.export("Employees", header, data)
}

func (s *service) export(sheet string, header []interface{}, rows [][]interface{}) ([]byte, error) {
	out, err := s.workbook(sheet, header, rows)
	if err != nil {
		s.logger.Error("build workbook failed", zap.String("sheet", sheet), zap.Error(err))
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "Failed to build report", http.StatusInternalServerError)
	}
	return out, nil
}

func (s *service) workbook(sheet string, header []interface{}, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("close workbook failed", zap.Error(err))
		}
	}()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func leaveRow(l leave.LeaveRequest) []interface{} {
	return []interface{}{
		l.RequesterName,
		l.RequesterEmail,
		l.RequesterRole,
		l.DepartmentName,
		l.LeaveType,
		l.StartDate.Format(dateLayout),
		l.EndDate.Format(dateLayout),
		l.TotalDays,
		l.Status,
		l.Reason,
	}
}

func employeeRow(e employee.Employee) []interface{} {
	hired := ""
	if e.HireDate != nil {
		hired = e.HireDate.Format(dateLayout)
	}
	return []interface{}{
		e.EmployeeNumber,
		e.FullName(),
		e.Email,
		e.Phone,
		e.Position,
		e.Role,
		e.DepartmentName,
		hired,
		e.Status,
	}
}
