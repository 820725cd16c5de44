package notification

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/MuleAlemuB/project1-sub002/internal/domain"
	notificationerrors "github.com/MuleAlemuB/project1-sub002/internal/notification/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// memRepo is an in-memory Repository.
type memRepo struct {
	items     map[uuid.UUID]*Notification
	createErr error
}

func newMemRepo(items ...Notification) *memRepo {
	r := &memRepo{items: map[uuid.UUID]*Notification{}}
	for i := range items {
		n := items[i]
		r.items[n.ID] = &n
	}
	return r
}

func (r *memRepo) Create(ctx context.Context, n *Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	n.CreatedAt = time.Now()
	cp := *n
	r.items[n.ID] = &cp
	return nil
}

func (r *memRepo) FindByID(ctx context.Context, id uuid.UUID) (*Notification, error) {
	n, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *memRepo) FindByRecipientRole(ctx context.Context, role domain.Role) ([]Notification, error) {
	var out []Notification
	for _, n := range r.items {
		if n.RecipientRole == role {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memRepo) countByRef(ref domain.Ref) int64 {
	var count int64
	for _, n := range r.items {
		if n.Ref() == ref {
			count++
		}
	}
	return count
}

func (r *memRepo) MarkSeen(ctx context.Context, ids []uuid.UUID, at time.Time) (int64, error) {
	var updated int64
	for _, id := range ids {
		if n, ok := r.items[id]; ok && !n.Seen {
			n.Seen = true
			n.SeenAt = &at
			updated++
		}
	}
	return updated, nil
}

func (r *memRepo) Delete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var deleted int64
	for _, id := range ids {
		if _, ok := r.items[id]; ok {
			delete(r.items, id)
			deleted++
		}
	}
	return deleted, nil
}

var (
	hrDept      = uuid.MustParse("00000000-0000-0000-0000-0000000000a1")
	financeDept = uuid.MustParse("00000000-0000-0000-0000-0000000000b2")
)

func note(role domain.Role, kind domain.RefKind, refID uuid.UUID, age time.Duration) Notification {
	id := refID
	return Notification{
		ID:            uuid.New(),
		Type:          TypeLeaveRequest,
		Title:         "t",
		RecipientRole: role,
		RefKind:       kind,
		RefID:         &id,
		CreatedAt:     time.Now().Add(-age),
	}
}

func withParties(n Notification, applicantEmail, employeeEmail string) Notification {
	if applicantEmail != "" {
		n.Applicant = datatypes.NewJSONType(Party{Name: "A", Email: applicantEmail})
	}
	if employeeEmail != "" {
		n.Employee = datatypes.NewJSONType(Party{Name: "E", Email: employeeEmail})
	}
	return n
}

// staticResolver serves sources from a map; unknown ids are not found.
func staticResolver(sources map[uuid.UUID]Source) SourceResolver {
	return SourceResolverFunc(func(ctx context.Context, id uuid.UUID) (Source, error) {
		src, ok := sources[id]
		if !ok {
			return Source{}, notificationerrors.ErrSourceNotFound
		}
		return src, nil
	})
}

func ids(resp []NotificationResponse) []string {
	out := make([]string, 0, len(resp))
	for _, r := range resp {
		out = append(out, r.ID)
	}
	return out
}

func TestService_Notify(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil)
	refID := uuid.New()

	err := svc.Notify(context.Background(), CreateInput{
		Type:          TypeLeaveDecision,
		Title:         "Leave approved",
		Ref:           domain.Ref{Kind: domain.RefLeave, ID: refID},
		RecipientRole: domain.RoleEmployee,
		Employee:      &Party{Name: "Jane", Email: "jane@example.com"},
		Metadata:      map[string]any{"status": "approved"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), repo.countByRef(domain.Ref{Kind: domain.RefLeave, ID: refID}))

	t.Run("invalid recipient", func(t *testing.T) {
		err := svc.Notify(context.Background(), CreateInput{Type: TypeLeaveDecision, RecipientRole: "boss"})
		assert.ErrorIs(t, err, notificationerrors.ErrRecipientRoleRequired)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo.createErr = errors.New("db down")
		err := NewService(repo, nil).Notify(context.Background(), CreateInput{RecipientRole: domain.RoleAdmin})
		assert.EqualError(t, err, "db down")
	})
}

func TestService_List_Employee(t *testing.T) {
	mine := withParties(note(domain.RoleEmployee, domain.RefLeave, uuid.New(), time.Minute), "", "jane@example.com")
	mineAsApplicant := withParties(note(domain.RoleEmployee, domain.RefApplication, uuid.New(), 2*time.Minute), "JANE@example.com", "")
	broadcast := note(domain.RoleEmployee, domain.RefWorkExperience, uuid.New(), 3*time.Minute)
	someoneElse := withParties(note(domain.RoleEmployee, domain.RefLeave, uuid.New(), 4*time.Minute), "", "bob@example.com")
	forAdmins := note(domain.RoleAdmin, domain.RefLeave, uuid.New(), time.Minute)

	svc := NewService(newMemRepo(mine, mineAsApplicant, broadcast, someoneElse, forAdmins), nil)
	caller := domain.Identity{ID: uuid.New(), Role: domain.RoleEmployee, Email: "jane@example.com"}

	resp, err := svc.List(context.Background(), caller)
	require.NoError(t, err)
	assert.Equal(t, []string{mine.ID.String(), mineAsApplicant.ID.String(), broadcast.ID.String()}, ids(resp))

	for _, r := range resp {
		emails := []string{}
		if r.Applicant != nil {
			emails = append(emails, r.Applicant.Email)
		}
		if r.Employee != nil {
			emails = append(emails, r.Employee.Email)
		}
		if len(emails) > 0 {
			matched := false
			for _, e := range emails {
				if e == "jane@example.com" || e == "JANE@example.com" {
					matched = true
				}
			}
			assert.True(t, matched, "notification %s leaked to another employee", r.ID)
		}
	}
}

func TestService_List_DepartmentHead(t *testing.T) {
	hrLeave, financeLeave, hrReq, missingLeave, appRef := uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()

	nHRLeave := note(domain.RoleDepartmentHead, domain.RefLeave, hrLeave, time.Minute)
	nFinanceLeave := note(domain.RoleDepartmentHead, domain.RefLeave, financeLeave, 2*time.Minute)
	nHRReq := note(domain.RoleDepartmentHead, domain.RefRequisition, hrReq, 3*time.Minute)
	nMissing := note(domain.RoleDepartmentHead, domain.RefLeave, missingLeave, 4*time.Minute)
	nApplication := note(domain.RoleDepartmentHead, domain.RefApplication, appRef, 5*time.Minute)

	resolvers := Resolvers{
		domain.RefLeave: staticResolver(map[uuid.UUID]Source{
			hrLeave:      {DepartmentID: &hrDept, Metadata: map[string]any{"reason": "medical"}},
			financeLeave: {DepartmentID: &financeDept},
		}),
		domain.RefRequisition: staticResolver(map[uuid.UUID]Source{
			hrReq: {DepartmentID: &hrDept},
		}),
	}

	svc := NewService(newMemRepo(nHRLeave, nFinanceLeave, nHRReq, nMissing, nApplication), resolvers)
	caller := domain.Identity{ID: uuid.New(), Role: domain.RoleDepartmentHead, DepartmentID: &hrDept}

	resp, err := svc.List(context.Background(), caller)
	require.NoError(t, err)
	assert.Equal(t, []string{nHRLeave.ID.String(), nHRReq.ID.String(), nApplication.ID.String()}, ids(resp))
	assert.Equal(t, "medical", resp[0].Metadata["reason"])

	t.Run("head without department sees no scoped items", func(t *testing.T) {
		resp, err := svc.List(context.Background(), domain.Identity{Role: domain.RoleDepartmentHead})
		require.NoError(t, err)
		assert.Equal(t, []string{nApplication.ID.String()}, ids(resp))
	})
}

func TestService_List_EnrichmentFallsBackToStoredMetadata(t *testing.T) {
	okRef, brokenRef := uuid.New(), uuid.New()

	enriched := note(domain.RoleAdmin, domain.RefApplication, okRef, time.Minute)
	enriched.Metadata = datatypes.JSONMap{"status": "pending", "note": "kept"}

	broken := note(domain.RoleAdmin, domain.RefApplication, brokenRef, 2*time.Minute)
	broken.Metadata = datatypes.JSONMap{"status": "stored"}

	noRef := Notification{ID: uuid.New(), RecipientRole: domain.RoleAdmin, CreatedAt: time.Now().Add(-3 * time.Minute)}

	resolvers := Resolvers{
		domain.RefApplication: SourceResolverFunc(func(ctx context.Context, id uuid.UUID) (Source, error) {
			if id == brokenRef {
				return Source{}, errors.New("connection reset")
			}
			return Source{Metadata: map[string]any{"status": "approved", "applicant_name": "Sam"}}, nil
		}),
	}

	svc := NewService(newMemRepo(enriched, broken, noRef), resolvers)
	resp, err := svc.List(context.Background(), domain.Identity{Role: domain.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, resp, 3)

	assert.Equal(t, map[string]any{"status": "approved", "note": "kept", "applicant_name": "Sam"}, resp[0].Metadata)
	assert.Equal(t, map[string]any{"status": "stored"}, resp[1].Metadata)
	assert.Nil(t, resp[2].Reference)
	assert.Nil(t, resp[2].Metadata)
}

func TestService_MarkSeen(t *testing.T) {
	n := withParties(note(domain.RoleEmployee, domain.RefLeave, uuid.New(), time.Minute), "", "jane@example.com")
	repo := newMemRepo(n)
	svc := NewService(repo, nil)
	jane := domain.Identity{Role: domain.RoleEmployee, Email: "jane@example.com"}

	first, err := svc.MarkSeen(context.Background(), jane, n.ID.String())
	require.NoError(t, err)
	assert.True(t, first.Seen)
	require.NotNil(t, first.SeenAt)

	second, err := svc.MarkSeen(context.Background(), jane, n.ID.String())
	require.NoError(t, err)
	assert.True(t, second.Seen)
	assert.Equal(t, first.SeenAt.Unix(), second.SeenAt.Unix())
	assert.True(t, repo.items[n.ID].Seen)

	t.Run("other employee is forbidden", func(t *testing.T) {
		_, err := svc.MarkSeen(context.Background(), domain.Identity{Role: domain.RoleEmployee, Email: "bob@example.com"}, n.ID.String())
		assert.ErrorIs(t, err, notificationerrors.ErrNotificationForbidden)
	})

	t.Run("other role is forbidden", func(t *testing.T) {
		_, err := svc.MarkSeen(context.Background(), domain.Identity{Role: domain.RoleAdmin}, n.ID.String())
		assert.ErrorIs(t, err, notificationerrors.ErrNotificationForbidden)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := svc.MarkSeen(context.Background(), jane, uuid.NewString())
		assert.ErrorIs(t, err, notificationerrors.ErrNotificationNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := svc.MarkSeen(context.Background(), jane, "not-a-uuid")
		assert.ErrorIs(t, err, notificationerrors.ErrInvalidNotificationID)
	})
}

func TestService_BulkOperations(t *testing.T) {
	a := note(domain.RoleAdmin, domain.RefLeave, uuid.New(), time.Minute)
	b := note(domain.RoleAdmin, domain.RefLeave, uuid.New(), 2*time.Minute)
	seen := note(domain.RoleAdmin, domain.RefLeave, uuid.New(), 3*time.Minute)
	seen.Seen = true
	other := note(domain.RoleEmployee, domain.RefLeave, uuid.New(), time.Minute)

	repo := newMemRepo(a, b, seen, other)
	svc := NewService(repo, nil)
	admin := domain.Identity{Role: domain.RoleAdmin}
	ctx := context.Background()

	count, err := svc.UnseenCount(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	deleted, err := svc.ClearRead(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.NotContains(t, repo.items, seen.ID)

	updated, err := svc.MarkAllSeen(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)
	assert.False(t, repo.items[other.ID].Seen)

	count, err = svc.UnseenCount(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	require.NoError(t, svc.Delete(ctx, admin, a.ID.String()))
	assert.NotContains(t, repo.items, a.ID)

	err = svc.Delete(ctx, admin, other.ID.String())
	assert.ErrorIs(t, err, notificationerrors.ErrNotificationForbidden)
	assert.Contains(t, repo.items, other.ID)
}
