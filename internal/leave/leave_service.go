package leave

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/MuleAlemuB/project1-sub002/internal/domain"
	leaveerrors "github.com/MuleAlemuB/project1-sub002/internal/leave/errors"
	"github.com/MuleAlemuB/project1-sub002/internal/notification"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/upload"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, caller domain.Identity, req CreateLeaveRequest, attachments []*multipart.FileHeader) (LeaveResponse, error)
	List(ctx context.Context, caller domain.Identity) ([]LeaveResponse, error)
	GetByID(ctx context.Context, caller domain.Identity, id string) (LeaveResponse, error)
	Decide(ctx context.Context, caller domain.Identity, id string, req DecisionRequest) (LeaveResponse, error)
	Delete(ctx context.Context, caller domain.Identity, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	notifier notification.Notifier
	storage  upload.Storage
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	notifier notification.Notifier,
	storage upload.Storage,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		notifier: notifier,
		storage:  storage,
		now:      time.Now,
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, caller domain.Identity, req CreateLeaveRequest, attachments []*multipart.FileHeader) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("requester_id", caller.ID.String()),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	target, err := resolveTargetRole(caller, req.TargetRole)
	if err != nil {
		return LeaveResponse{}, err
	}

	paths := make([]string, 0, len(attachments))
	for _, fh := range attachments {
		p, err := s.storage.Save(fh, upload.DirAttachments, upload.AttachmentExts)
		if err != nil {
			s.logger.Warn("create leave attachment rejected", zap.String("filename", fh.Filename), zap.Error(err))
			return LeaveResponse{}, err
		}
		paths = append(paths, p)
	}

	leaveType := strings.ToLower(strings.TrimSpace(req.LeaveType))
	if leaveType == "" {
		leaveType = DefaultLeaveType
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingPeriod(ctx, caller.ID, startDate, endDate)
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("create leave overlap detected",
			zap.String("requester_id", caller.ID.String()),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l := &LeaveRequest{
		ID:             uuid.New(),
		RequesterID:    caller.ID,
		RequesterKind:  caller.Kind,
		RequesterName:  caller.Name,
		RequesterEmail: caller.Email,
		RequesterRole:  caller.Role,
		TargetRole:     target,
		DepartmentID:   caller.DepartmentID,
		DepartmentName: caller.DepartmentName,
		LeaveType:      leaveType,
		StartDate:      startDate,
		EndDate:        endDate,
		TotalDays:      int(endDate.Sub(startDate).Hours()/24) + 1,
		Reason:         strings.TrimSpace(req.Reason),
		Attachments:    paths,
		Status:         StatusPending,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("requester_id", caller.ID.String()),
		zap.String("target_role", target.String()),
	)

	s.notify(ctx, notification.CreateInput{
		Type:          notification.TypeLeaveRequest,
		Title:         "New leave request",
		Message:       fmt.Sprintf("%s requested %s leave from %s to %s", displayName(l), l.LeaveType, req.StartDate, req.EndDate),
		Ref:           domain.Ref{Kind: domain.RefLeave, ID: l.ID},
		RecipientRole: target,
		Metadata:      sourceMetadata(*l),
		Employee:      requesterParty(*l),
	})

	return mapToResponse(*l), nil
}

func (s *service) List(ctx context.Context, caller domain.Identity) ([]LeaveResponse, error) {
	var scope Scope
	switch caller.Role {
	case domain.RoleAdmin:
	case domain.RoleDepartmentHead:
		id := caller.ID
		scope.RequesterID = &id
		scope.DepartmentID = caller.DepartmentID
	default:
		id := caller.ID
		scope.RequesterID = &id
	}

	leaves, err := s.repo.FindAll(ctx, scope)
	if err != nil {
		s.logger.Error("list leaves failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, caller domain.Identity, id string) (LeaveResponse, error) {
	l, err := s.find(ctx, s.repo, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !canView(caller, *l) {
		return LeaveResponse{}, leaveerrors.ErrNotAllowedToView
	}
	return mapToResponse(*l), nil
}

func (s *service) Decide(ctx context.Context, caller domain.Identity, id string, req DecisionRequest) (LeaveResponse, error) {
	decision, err := domain.ParseDecision(req.Status)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDecision
	}

	s.logger.Debug("decide leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", caller.ID.String()),
		zap.String("decision", string(decision)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.find(ctx, qtx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !canDecide(caller, *l) {
		s.logger.Warn("decide leave forbidden",
			zap.String("leave_id", id),
			zap.String("actor_id", caller.ID.String()),
			zap.String("actor_role", caller.Role.String()),
			zap.String("target_role", l.TargetRole.String()),
		)
		return LeaveResponse{}, leaveerrors.ErrNotAllowedToDecide
	}

	if l.Status == string(decision) {
		return mapToResponse(*l), nil
	}
	if l.Status != StatusPending {
		s.logger.Warn("decide leave invalid state",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status),
			zap.String("to_status", string(decision)),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveAlreadyDecided
	}

	now := s.now().UTC()
	decidedBy := caller.ID
	l.Status = string(decision)
	l.DecidedBy = &decidedBy
	l.DecidedAt = &now
	if c := strings.TrimSpace(req.Comment); c != "" {
		l.Comment = &c
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("decide leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("decide leave success",
		zap.String("leave_id", id),
		zap.String("status", l.Status),
		zap.String("actor_id", caller.ID.String()),
	)

	s.notify(ctx, notification.CreateInput{
		Type:          notification.TypeLeaveDecision,
		Title:         "Leave request " + l.Status,
		Message:       fmt.Sprintf("Your %s leave from %s to %s was %s", l.LeaveType, l.StartDate.Format(dateLayout), l.EndDate.Format(dateLayout), l.Status),
		Ref:           domain.Ref{Kind: domain.RefLeave, ID: l.ID},
		RecipientRole: l.RequesterRole,
		Metadata:      sourceMetadata(*l),
		Employee:      requesterParty(*l),
	})

	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, caller domain.Identity, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.find(ctx, qtx, id)
	if err != nil {
		return err
	}

	switch {
	case caller.IsAdmin():
	case l.IsOwnedBy(caller):
		if l.Status != StatusPending {
			return leaveerrors.ErrLeaveNotPending
		}
	default:
		return leaveerrors.ErrNotAllowedToView
	}

	if err := qtx.Delete(ctx, l.ID); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete leave success", zap.String("leave_id", id), zap.String("actor_id", caller.ID.String()))
	return nil
}

func (s *service) find(ctx context.Context, repo Repository, id string) (*LeaveRequest, error) {
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return nil, leaveerrors.ErrInvalidLeaveID
	}
	l, err := repo.FindByID(ctx, leaveID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return l, nil
}

// notify sends after the status write has committed; a failure here leaves
// the write in place and is only logged.
func (s *service) notify(ctx context.Context, in notification.CreateInput) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, in); err != nil {
		s.logger.Error("leave notification failed",
			zap.String("leave_id", in.Ref.ID.String()),
			zap.String("type", string(in.Type)),
			zap.Error(err),
		)
	}
}

// resolveTargetRole picks who decides the leave. Employees go to their
// department head unless they ask for admin; heads and admins go to admin.
func resolveTargetRole(caller domain.Identity, requested string) (domain.Role, error) {
	target := domain.RoleAdmin
	if caller.Role == domain.RoleEmployee && caller.DepartmentID != nil {
		target = domain.RoleDepartmentHead
	}

	if strings.TrimSpace(requested) != "" {
		parsed, err := domain.ParseRole(requested)
		if err != nil || !parsed.In(domain.RoleDepartmentHead, domain.RoleAdmin) {
			return "", leaveerrors.ErrInvalidTargetRole
		}
		target = parsed
	}

	if target == domain.RoleDepartmentHead && caller.DepartmentID == nil {
		return "", leaveerrors.ErrNoDepartment
	}
	return target, nil
}

func canView(caller domain.Identity, l LeaveRequest) bool {
	if caller.IsAdmin() || l.IsOwnedBy(caller) {
		return true
	}
	return caller.Role == domain.RoleDepartmentHead && caller.InDepartment(l.DepartmentID)
}

func canDecide(caller domain.Identity, l LeaveRequest) bool {
	if caller.IsAdmin() {
		return true
	}
	if caller.Role != l.TargetRole {
		return false
	}
	return caller.Role == domain.RoleDepartmentHead && caller.InDepartment(l.DepartmentID)
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	return err
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func displayName(l *LeaveRequest) string {
	if l.RequesterName != "" {
		return l.RequesterName
	}
	return l.RequesterEmail
}

func requesterParty(l LeaveRequest) *notification.Party {
	return &notification.Party{
		ID:    l.RequesterID.String(),
		Name:  l.RequesterName,
		Email: l.RequesterEmail,
	}
}

func sourceMetadata(l LeaveRequest) map[string]any {
	return map[string]any{
		"leave_type":      l.LeaveType,
		"start_date":      l.StartDate.Format(dateLayout),
		"end_date":        l.EndDate.Format(dateLayout),
		"total_days":      l.TotalDays,
		"reason":          l.Reason,
		"status":          l.Status,
		"requester_name":  l.RequesterName,
		"requester_email": l.RequesterEmail,
		"department_name": l.DepartmentName,
	}
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:             l.ID.String(),
		RequesterID:    l.RequesterID.String(),
		RequesterKind:  string(l.RequesterKind),
		RequesterName:  l.RequesterName,
		RequesterEmail: l.RequesterEmail,
		RequesterRole:  l.RequesterRole.String(),
		TargetRole:     l.TargetRole.String(),
		DepartmentName: l.DepartmentName,
		LeaveType:      l.LeaveType,
		StartDate:      l.StartDate.Format(dateLayout),
		EndDate:        l.EndDate.Format(dateLayout),
		TotalDays:      l.TotalDays,
		Reason:         l.Reason,
		Attachments:    []string(l.Attachments),
		Status:         l.Status,
		Comment:        l.Comment,
		CreatedAt:      l.CreatedAt.Format(time.RFC3339),
	}
	if resp.Attachments == nil {
		resp.Attachments = []string{}
	}
	if l.DepartmentID != nil {
		v := l.DepartmentID.String()
		resp.DepartmentID = &v
	}
	if l.DecidedBy != nil {
		v := l.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
