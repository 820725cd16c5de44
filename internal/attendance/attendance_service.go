package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "github.com/MuleAlemuB/project1-sub002/internal/attendance/errors"
	"github.com/MuleAlemuB/project1-sub002/internal/domain"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPresent = "present"
	StatusLate    = "late"

	defaultSource = "manual"
	dateLayout    = "2006-01-02"

	// Clock-ins after 09:15 UTC count as late.
	lateHour   = 9
	lateMinute = 15
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, caller domain.Identity, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, caller domain.Identity, req ClockOutRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, caller domain.Identity, filter ListFilter) ([]AttendanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, now: time.Now, logger: l}
}

func (s *service) ClockIn(ctx context.Context, caller domain.Identity, req ClockInRequest) (AttendanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now().UTC()
	today := now.Truncate(24 * time.Hour)

	existing, err := qtx.FindByEmployeeAndDate(ctx, caller.ID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if err == nil && existing != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
	}

	status := StatusPresent
	if now.Hour() > lateHour || (now.Hour() == lateHour && now.Minute() > lateMinute) {
		status = StatusLate
	}

	source := req.Source
	if source == "" {
		source = defaultSource
	}

	row := &Attendance{
		ID:             uuid.New(),
		EmployeeID:     caller.ID,
		EmployeeName:   caller.Name,
		AttendanceDate: today,
		ClockIn:        now,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Status:         status,
		Source:         source,
		Notes:          req.Notes,
	}

	if err := qtx.Create(ctx, row); err != nil {
		if apperror.IsUniqueViolation(err, "uq_attendance_employee_date") {
			return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
		}
		s.logger.Error("clock in persist failed", zap.String("employee_id", caller.ID.String()), zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	s.logger.Info("clock in success", zap.String("employee_id", caller.ID.String()), zap.String("status", status))
	return mapToResponse(*row), nil
}

func (s *service) ClockOut(ctx context.Context, caller domain.Identity, req ClockOutRequest) (AttendanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now().UTC()
	today := now.Truncate(24 * time.Hour)

	row, err := qtx.FindByEmployeeAndDate(ctx, caller.ID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNotClockedIn
		}
		return AttendanceResponse{}, err
	}
	if row.ClockOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedOut
	}

	row.ClockOut = &now
	if req.Latitude != nil {
		row.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		row.Longitude = req.Longitude
	}
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

// GetAll returns every record for admins and the caller's own otherwise.
func (s *service) GetAll(ctx context.Context, caller domain.Identity, filter ListFilter) ([]AttendanceResponse, error) {
	q, err := buildQuery(filter)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		id := caller.ID
		q.EmployeeID = &id
	}

	rows, err := s.repo.FindAll(ctx, q)
	if err != nil {
		return nil, err
	}
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func buildQuery(filter ListFilter) (Query, error) {
	var q Query
	if filter.From != "" {
		from, err := time.Parse(dateLayout, filter.From)
		if err != nil {
			return Query{}, apperror.InvalidField("From")
		}
		q.From = &from
	}
	if filter.To != "" {
		to, err := time.Parse(dateLayout, filter.To)
		if err != nil {
			return Query{}, apperror.InvalidField("To")
		}
		q.To = &to
	}
	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		return Query{}, attendanceerrors.ErrInvalidDateRange
	}
	return q, nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		EmployeeName:   a.EmployeeName,
		AttendanceDate: a.AttendanceDate.Format(dateLayout),
		ClockIn:        a.ClockIn.Format(time.RFC3339),
		Latitude:       a.Latitude,
		Longitude:      a.Longitude,
		Status:         a.Status,
		Source:         a.Source,
		Notes:          a.Notes,
	}
	if a.ClockOut != nil {
		v := a.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
		worked := int64(a.ClockOut.Sub(a.ClockIn) / time.Minute)
		resp.WorkedMinutes = &worked
	}
	return resp
}
