package report

import (
	"context"

	"github.com/MuleAlemuB/project1-sub002/internal/application"
	"github.com/MuleAlemuB/project1-sub002/internal/department"
	"github.com/MuleAlemuB/project1-sub002/internal/employee"
	"github.com/MuleAlemuB/project1-sub002/internal/leave"
	"github.com/MuleAlemuB/project1-sub002/internal/requisition"
	"github.com/MuleAlemuB/project1-sub002/internal/vacancy"
	"github.com/MuleAlemuB/project1-sub002/internal/workexperience"

	"gorm.io/gorm"
)

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	Counts(ctx context.Context) (DashboardResponse, error)
	Leaves(ctx context.Context) ([]leave.LeaveRequest, error)
	Employees(ctx context.Context) ([]employee.Employee, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Counts(ctx context.Context) (DashboardResponse, error) {
	db := r.db.WithContext(ctx)
	var out DashboardResponse

	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&out.Employees, db.Model(&employee.Employee{})},
		{&out.Departments, db.Model(&department.Department{})},
		{&out.PendingLeaves, db.Model(&leave.LeaveRequest{}).Where("status = ?", leave.StatusPending)},
		{&out.PendingRequisitions, db.Model(&requisition.Requisition{}).Where("status = ?", requisition.StatusPending)},
		{&out.OpenVacancies, db.Model(&vacancy.Vacancy{}).Where("status = ?", vacancy.StatusOpen)},
		{&out.PendingApplications, db.Model(&application.Application{}).Where("status = ?", application.StatusPending)},
		{&out.PendingWorkExperience, db.Model(&workexperience.WorkExperienceRequest{}).Where("status = ?", workexperience.StatusPending)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return DashboardResponse{}, err
		}
	}
	return out, nil
}

func (r *repository) Leaves(ctx context.Context) ([]leave.LeaveRequest, error) {
	var rows []leave.LeaveRequest
	err := r.db.WithContext(ctx).Order("start_date DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) Employees(ctx context.Context) ([]employee.Employee, error) {
	var rows []employee.Employee
	err := r.db.WithContext(ctx).Order("department_name ASC, first_name ASC").Find(&rows).Error
	return rows, err
}
