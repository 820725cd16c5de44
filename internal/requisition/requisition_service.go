package requisition

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MuleAlemuB/project1-sub002/internal/domain"
	"github.com/MuleAlemuB/project1-sub002/internal/notification"
	requisitionerrors "github.com/MuleAlemuB/project1-sub002/internal/requisition/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=requisition_service.go -destination=mock/requisition_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, caller domain.Identity, req CreateRequisitionRequest) (RequisitionResponse, error)
	List(ctx context.Context, caller domain.Identity) ([]RequisitionResponse, error)
	GetByID(ctx context.Context, caller domain.Identity, id string) (RequisitionResponse, error)
	Decide(ctx context.Context, caller domain.Identity, id string, req DecisionRequest) (RequisitionResponse, error)
	Delete(ctx context.Context, caller domain.Identity, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	notifier notification.Notifier
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, notifier notification.Notifier, logger ...*zap.Logger) Service {
	l := zap.L().Named("requisition.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("requisition.service")
	}
	return &service{db: db, repo: repo, notifier: notifier, now: time.Now, logger: l}
}

func (s *service) Create(ctx context.Context, caller domain.Identity, req CreateRequisitionRequest) (RequisitionResponse, error) {
	if caller.DepartmentID == nil {
		return RequisitionResponse{}, requisitionerrors.ErrNoDepartment
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create requisition begin tx failed", zap.Error(err))
		return RequisitionResponse{}, err
	}
	defer tx.Rollback()

	r := &Requisition{
		ID:               uuid.New(),
		RequestedByID:    caller.ID,
		RequestedByName:  caller.Name,
		RequestedByEmail: caller.Email,
		DepartmentID:     caller.DepartmentID,
		DepartmentName:   caller.DepartmentName,
		Position:         strings.TrimSpace(req.Position),
		Quantity:         req.Quantity,
		Description:      strings.TrimSpace(req.Description),
		Status:           StatusPending,
	}

	if err := s.repo.WithTx(tx).Create(ctx, r); err != nil {
		s.logger.Error("create requisition persist failed", zap.Error(err))
		return RequisitionResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create requisition commit failed", zap.Error(err))
		return RequisitionResponse{}, err
	}
	s.logger.Info("create requisition success",
		zap.String("requisition_id", r.ID.String()),
		zap.String("department_id", r.DepartmentID.String()),
	)

	s.notify(ctx, notification.CreateInput{
		Type:          notification.TypeRequisitionRequest,
		Title:         "New job requisition",
		Message:       fmt.Sprintf("%s requested %d x %s", r.DepartmentName, r.Quantity, r.Position),
		Ref:           domain.Ref{Kind: domain.RefRequisition, ID: r.ID},
		RecipientRole: domain.RoleAdmin,
		Metadata:      sourceMetadata(*r),
		Employee:      requesterParty(*r),
	})

	return mapToResponse(*r), nil
}

func (s *service) List(ctx context.Context, caller domain.Identity) ([]RequisitionResponse, error) {
	var departmentID *uuid.UUID
	if !caller.IsAdmin() {
		if caller.DepartmentID == nil {
			return []RequisitionResponse{}, nil
		}
		departmentID = caller.DepartmentID
	}

	items, err := s.repo.FindAll(ctx, departmentID)
	if err != nil {
		s.logger.Error("list requisitions failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(items), nil
}

func (s *service) GetByID(ctx context.Context, caller domain.Identity, id string) (RequisitionResponse, error) {
	r, err := s.find(ctx, s.repo, id)
	if err != nil {
		return RequisitionResponse{}, err
	}
	if !caller.IsAdmin() && !caller.InDepartment(r.DepartmentID) {
		return RequisitionResponse{}, requisitionerrors.ErrNotAllowed
	}
	return mapToResponse(*r), nil
}

// Decide is admin-only at the route level; the same implementation backs
// the /admin alias.
func (s *service) Decide(ctx context.Context, caller domain.Identity, id string, req DecisionRequest) (RequisitionResponse, error) {
	decision, err := domain.ParseDecision(req.Status)
	if err != nil {
		return RequisitionResponse{}, requisitionerrors.ErrInvalidDecision
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide requisition begin tx failed", zap.Error(err))
		return RequisitionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	r, err := s.find(ctx, qtx, id)
	if err != nil {
		return RequisitionResponse{}, err
	}
	if r.Status == string(decision) {
		return mapToResponse(*r), nil
	}
	if r.Status != StatusPending {
		s.logger.Warn("decide requisition invalid state",
			zap.String("requisition_id", id),
			zap.String("from_status", r.Status),
			zap.String("to_status", string(decision)),
		)
		return RequisitionResponse{}, requisitionerrors.ErrRequisitionAlreadyDecided
	}

	now := s.now().UTC()
	decidedBy := caller.ID
	r.Status = string(decision)
	r.DecidedBy = &decidedBy
	r.DecidedAt = &now
	if c := strings.TrimSpace(req.Comment); c != "" {
		r.Comment = &c
	}

	if err := qtx.Update(ctx, r); err != nil {
		s.logger.Error("decide requisition persist failed", zap.String("requisition_id", id), zap.Error(err))
		return RequisitionResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("decide requisition commit failed", zap.String("requisition_id", id), zap.Error(err))
		return RequisitionResponse{}, err
	}
	s.logger.Info("decide requisition success",
		zap.String("requisition_id", id),
		zap.String("status", r.Status),
		zap.String("actor_id", caller.ID.String()),
	)

	s.notify(ctx, notification.CreateInput{
		Type:          notification.TypeRequisitionDecision,
		Title:         "Requisition " + r.Status,
		Message:       fmt.Sprintf("Your requisition for %d x %s was %s", r.Quantity, r.Position, r.Status),
		Ref:           domain.Ref{Kind: domain.RefRequisition, ID: r.ID},
		RecipientRole: domain.RoleDepartmentHead,
		Metadata:      sourceMetadata(*r),
		Employee:      requesterParty(*r),
	})

	return mapToResponse(*r), nil
}

func (s *service) Delete(ctx context.Context, caller domain.Identity, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	r, err := s.find(ctx, qtx, id)
	if err != nil {
		return err
	}

	switch {
	case caller.IsAdmin():
	case r.RequestedByID == caller.ID:
		if r.Status != StatusPending {
			return requisitionerrors.ErrRequisitionNotPending
		}
	default:
		return requisitionerrors.ErrNotAllowed
	}

	if err := qtx.Delete(ctx, r.ID); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete requisition success", zap.String("requisition_id", id))
	return nil
}

func (s *service) find(ctx context.Context, repo Repository, id string) (*Requisition, error) {
	reqID, err := uuid.Parse(id)
	if err != nil {
		return nil, requisitionerrors.ErrInvalidRequisitionID
	}
	r, err := repo.FindByID(ctx, reqID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return r, nil
}

func (s *service) notify(ctx context.Context, in notification.CreateInput) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, in); err != nil {
		s.logger.Error("requisition notification failed",
			zap.String("requisition_id", in.Ref.ID.String()),
			zap.String("type", string(in.Type)),
			zap.Error(err),
		)
	}
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return requisitionerrors.ErrRequisitionNotFound
	}
	return err
}

func requesterParty(r Requisition) *notification.Party {
	return &notification.Party{
		ID:    r.RequestedByID.String(),
		Name:  r.RequestedByName,
		Email: r.RequestedByEmail,
	}
}

func sourceMetadata(r Requisition) map[string]any {
	return map[string]any{
		"position":        r.Position,
		"quantity":        r.Quantity,
		"description":     r.Description,
		"status":          r.Status,
		"requested_by":    r.RequestedByName,
		"department_name": r.DepartmentName,
	}
}

func mapToResponse(r Requisition) RequisitionResponse {
	resp := RequisitionResponse{
		ID:               r.ID.String(),
		RequestedByID:    r.RequestedByID.String(),
		RequestedByName:  r.RequestedByName,
		RequestedByEmail: r.RequestedByEmail,
		DepartmentName:   r.DepartmentName,
		Position:         r.Position,
		Quantity:         r.Quantity,
		Description:      r.Description,
		Status:           r.Status,
		Comment:          r.Comment,
		CreatedAt:        r.CreatedAt.Format(time.RFC3339),
	}
	if r.DepartmentID != nil {
		v := r.DepartmentID.String()
		resp.DepartmentID = &v
	}
	if r.DecidedBy != nil {
		v := r.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if r.DecidedAt != nil {
		v := r.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(items []Requisition) []RequisitionResponse {
	resp := make([]RequisitionResponse, len(items))
	for i, r := range items {
		resp[i] = mapToResponse(r)
	}
	return resp
}
