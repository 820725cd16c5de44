package notification

import (
	"context"
	"errors"
	"maps"
	"strings"
	"time"

	"github.com/MuleAlemuB/project1-sub002/internal/domain"
	notificationerrors "github.com/MuleAlemuB/project1-sub002/internal/notification/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notifier is the write side used by domain services after a state change.
//
//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Notifier interface {
	Notify(ctx context.Context, in CreateInput) error
}

type Service interface {
	Notifier
	List(ctx context.Context, caller domain.Identity) ([]NotificationResponse, error)
	UnseenCount(ctx context.Context, caller domain.Identity) (int64, error)
	MarkSeen(ctx context.Context, caller domain.Identity, id string) (NotificationResponse, error)
	MarkAllSeen(ctx context.Context, caller domain.Identity) (int64, error)
	Delete(ctx context.Context, caller domain.Identity, id string) error
	ClearRead(ctx context.Context, caller domain.Identity) (int64, error)
}

type service struct {
	repo      Repository
	resolvers Resolvers
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(repo Repository, resolvers Resolvers, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	if resolvers == nil {
		resolvers = Resolvers{}
	}
	return &service{repo: repo, resolvers: resolvers, now: time.Now, logger: l}
}

func (s *service) Notify(ctx context.Context, in CreateInput) error {
	if !in.RecipientRole.Valid() {
		return notificationerrors.ErrRecipientRoleRequired
	}

	n := &Notification{
		ID:            uuid.New(),
		Type:          in.Type,
		Title:         in.Title,
		Message:       in.Message,
		RecipientRole: in.RecipientRole,
		Metadata:      datatypes.JSONMap(in.Metadata),
	}
	if !in.Ref.IsZero() {
		refID := in.Ref.ID
		n.RefKind = in.Ref.Kind
		n.RefID = &refID
	}
	if in.Applicant != nil {
		n.Applicant = datatypes.NewJSONType(*in.Applicant)
	}
	if in.Employee != nil {
		n.Employee = datatypes.NewJSONType(*in.Employee)
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("create notification failed",
			zap.String("type", string(in.Type)),
			zap.String("recipient_role", in.RecipientRole.String()),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("notification created",
		zap.String("notification_id", n.ID.String()),
		zap.String("type", string(in.Type)),
		zap.String("recipient_role", in.RecipientRole.String()),
	)
	return nil
}

// resolvedItem is a notification the caller may see, with its source
// already loaded (nil when it has no reference or no resolver).
type resolvedItem struct {
	n      Notification
	source *Source
}

func (s *service) List(ctx context.Context, caller domain.Identity) ([]NotificationResponse, error) {
	items, err := s.visible(ctx, caller)
	if err != nil {
		return nil, err
	}

	out := make([]NotificationResponse, 0, len(items))
	for _, it := range items {
		out = append(out, mapToResponse(it.n, it.source))
	}
	return out, nil
}

func (s *service) UnseenCount(ctx context.Context, caller domain.Identity) (int64, error) {
	items, err := s.visible(ctx, caller)
	if err != nil {
		return 0, err
	}

	var count int64
	for _, it := range items {
		if !it.n.Seen {
			count++
		}
	}
	return count, nil
}

func (s *service) MarkSeen(ctx context.Context, caller domain.Identity, id string) (NotificationResponse, error) {
	it, err := s.loadForCaller(ctx, caller, id)
	if err != nil {
		return NotificationResponse{}, err
	}

	if !it.n.Seen {
		at := s.now().UTC()
		if _, err := s.repo.MarkSeen(ctx, []uuid.UUID{it.n.ID}, at); err != nil {
			s.logger.Error("mark notification seen failed", zap.String("notification_id", id), zap.Error(err))
			return NotificationResponse{}, err
		}
		it.n.Seen = true
		it.n.SeenAt = &at
	}

	return mapToResponse(it.n, it.source), nil
}

func (s *service) MarkAllSeen(ctx context.Context, caller domain.Identity) (int64, error) {
	items, err := s.visible(ctx, caller)
	if err != nil {
		return 0, err
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		if !it.n.Seen {
			ids = append(ids, it.n.ID)
		}
	}

	updated, err := s.repo.MarkSeen(ctx, ids, s.now().UTC())
	if err != nil {
		s.logger.Error("mark all notifications seen failed", zap.Error(err))
		return 0, err
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, caller domain.Identity, id string) error {
	it, err := s.loadForCaller(ctx, caller, id)
	if err != nil {
		return err
	}

	if _, err := s.repo.Delete(ctx, []uuid.UUID{it.n.ID}); err != nil {
		s.logger.Error("delete notification failed", zap.String("notification_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) ClearRead(ctx context.Context, caller domain.Identity) (int64, error) {
	items, err := s.visible(ctx, caller)
	if err != nil {
		return 0, err
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		if it.n.Seen {
			ids = append(ids, it.n.ID)
		}
	}

	deleted, err := s.repo.Delete(ctx, ids)
	if err != nil {
		s.logger.Error("clear read notifications failed", zap.Error(err))
		return 0, err
	}
	return deleted, nil
}

// visible returns every notification addressed to the caller's role that
// passes the per-role ownership filter.
func (s *service) visible(ctx context.Context, caller domain.Identity) ([]resolvedItem, error) {
	if !caller.Role.Valid() {
		return nil, notificationerrors.ErrNotificationForbidden
	}

	items, err := s.repo.FindByRecipientRole(ctx, caller.Role)
	if err != nil {
		s.logger.Error("list notifications failed", zap.String("role", caller.Role.String()), zap.Error(err))
		return nil, err
	}

	out := make([]resolvedItem, 0, len(items))
	for _, n := range items {
		it, ok := s.filter(ctx, caller, n)
		if ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *service) loadForCaller(ctx context.Context, caller domain.Identity, id string) (resolvedItem, error) {
	notificationID, err := uuid.Parse(id)
	if err != nil {
		return resolvedItem{}, notificationerrors.ErrInvalidNotificationID
	}

	n, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resolvedItem{}, notificationerrors.ErrNotificationNotFound
		}
		return resolvedItem{}, err
	}

	it, ok := s.filter(ctx, caller, *n)
	if !ok {
		s.logger.Warn("notification access denied",
			zap.String("notification_id", id),
			zap.String("caller_id", caller.ID.String()),
			zap.String("role", caller.Role.String()),
		)
		return resolvedItem{}, notificationerrors.ErrNotificationForbidden
	}
	return it, nil
}

// filter applies the selection policy for one notification:
//   - the recipient role must equal the caller's role
//   - employees see items about their own email, or items naming nobody
//   - department heads see leave/requisition items only when the source
//     resolves to their department; other kinds pass
func (s *service) filter(ctx context.Context, caller domain.Identity, n Notification) (resolvedItem, bool) {
	if n.RecipientRole != caller.Role {
		return resolvedItem{}, false
	}

	if caller.Role == domain.RoleEmployee && !addressedToEmployee(caller, n) {
		return resolvedItem{}, false
	}

	src, err := s.resolve(ctx, n)

	if caller.Role == domain.RoleDepartmentHead && n.RefKind.DepartmentScoped() {
		if err != nil || src == nil || !caller.InDepartment(src.DepartmentID) {
			return resolvedItem{}, false
		}
	}

	return resolvedItem{n: n, source: src}, true
}

func addressedToEmployee(caller domain.Identity, n Notification) bool {
	applicantEmail := strings.TrimSpace(n.Applicant.Data().Email)
	employeeEmail := strings.TrimSpace(n.Employee.Data().Email)
	if applicantEmail == "" && employeeEmail == "" {
		return true
	}
	return caller.Email != "" &&
		(strings.EqualFold(applicantEmail, caller.Email) || strings.EqualFold(employeeEmail, caller.Email))
}

// resolve loads the referenced document through the dispatch table. A
// lookup failure is logged and reported but never aborts a listing.
func (s *service) resolve(ctx context.Context, n Notification) (*Source, error) {
	ref := n.Ref()
	if ref.IsZero() {
		return nil, nil
	}
	resolver, ok := s.resolvers[ref.Kind]
	if !ok {
		return nil, nil
	}

	src, err := resolver.Resolve(ctx, ref.ID)
	if err != nil {
		s.logger.Warn("notification source lookup failed",
			zap.String("notification_id", n.ID.String()),
			zap.String("ref_kind", string(ref.Kind)),
			zap.String("ref_id", ref.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	return &src, nil
}

func mapToResponse(n Notification, src *Source) NotificationResponse {
	resp := NotificationResponse{
		ID:            n.ID.String(),
		Type:          n.Type,
		Title:         n.Title,
		Message:       n.Message,
		RecipientRole: n.RecipientRole,
		Seen:          n.Seen,
		SeenAt:        n.SeenAt,
		CreatedAt:     n.CreatedAt,
	}

	if ref := n.Ref(); !ref.IsZero() {
		resp.Reference = &ReferenceResponse{Kind: ref.Kind, ID: ref.ID.String()}
	}

	metadata := make(map[string]any, len(n.Metadata))
	maps.Copy(metadata, n.Metadata)
	if src != nil {
		maps.Copy(metadata, src.Metadata)
	}
	if len(metadata) > 0 {
		resp.Metadata = metadata
	}

	if p := n.Applicant.Data(); !p.IsZero() {
		resp.Applicant = &p
	}
	if p := n.Employee.Data(); !p.IsZero() {
		resp.Employee = &p
	}
	return resp
}
