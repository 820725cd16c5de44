package requisition_test

import (
	"context"
	"sync"
	"testing"

	"github.com/MuleAlemuB/project1-sub002/internal/domain"
	"github.com/MuleAlemuB/project1-sub002/internal/notification"
	"github.com/MuleAlemuB/project1-sub002/internal/requisition"
	requisitionerrors "github.com/MuleAlemuB/project1-sub002/internal/requisition/errors"

	notificationMock "github.com/MuleAlemuB/project1-sub002/internal/notification/mock"
	requisitionMock "github.com/MuleAlemuB/project1-sub002/internal/requisition/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	sqlMock  sqlmock.Sqlmock
	repo     *requisitionMock.MockRepository
	notifier *notificationMock.MockNotifier
	service  requisition.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, _ := sqlmock.New()
	repo := requisitionMock.NewMockRepository(ctrl)
	notifier := notificationMock.NewMockNotifier(ctrl)
	return &serviceDeps{
		sqlMock:  sqlMock,
		repo:     repo,
		notifier: notifier,
		service:  requisition.NewService(db, repo, notifier),
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

var itID = uuid.New()

func head() domain.Identity {
	dept := itID
	return domain.Identity{
		ID:             uuid.New(),
		Kind:           domain.IdentityEmployee,
		Name:           "Head",
		Email:          "head@example.com",
		Role:           domain.RoleDepartmentHead,
		DepartmentID:   &dept,
		DepartmentName: "IT",
	}
}

func admin() domain.Identity {
	return domain.Identity{ID: uuid.New(), Kind: domain.IdentityUser, Role: domain.RoleAdmin}
}

func pending(by domain.Identity) *requisition.Requisition {
	return &requisition.Requisition{
		ID:               uuid.New(),
		RequestedByID:    by.ID,
		RequestedByName:  by.Name,
		RequestedByEmail: by.Email,
		DepartmentID:     by.DepartmentID,
		DepartmentName:   by.DepartmentName,
		Position:         "Backend Engineer",
		Quantity:         2,
		Status:           requisition.StatusPending,
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success notifies admin", func(t *testing.T) {
		deps := setupServiceTest(t)
		caller := head()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.notifier.EXPECT().Notify(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, in notification.CreateInput) error {
			assert.Equal(t, domain.RoleAdmin, in.RecipientRole)
			assert.Equal(t, domain.RefRequisition, in.Ref.Kind)
			assert.Equal(t, 2, in.Metadata["quantity"])
			return nil
		})

		resp, err := deps.service.Create(ctx, caller, requisition.CreateRequisitionRequest{Position: " Backend Engineer ", Quantity: 2})

		assert.NoError(t, err)
		assert.Equal(t, "Backend Engineer", resp.Position)
		assert.Equal(t, "IT", resp.DepartmentName)
		assert.Equal(t, "pending", resp.Status)
	})

	t.Run("no department", func(t *testing.T) {
		deps := setupServiceTest(t)
		caller := head()
		caller.DepartmentID = nil

		_, err := deps.service.Create(ctx, caller, requisition.CreateRequisitionRequest{Position: "X", Quantity: 1})

		assert.ErrorIs(t, err, requisitionerrors.ErrNoDepartment)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("admin lists all", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindAll(ctx, (*uuid.UUID)(nil)).Return([]requisition.Requisition{*pending(head())}, nil)

		resp, err := deps.service.List(ctx, admin())
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("head lists own department", func(t *testing.T) {
		deps := setupServiceTest(t)
		caller := head()
		deps.repo.EXPECT().FindAll(ctx, caller.DepartmentID).Return(nil, nil)

		resp, err := deps.service.List(ctx, caller)
		assert.NoError(t, err)
		assert.Empty(t, resp)
	})
}

func TestService_GetByID_OtherDepartment(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()
	r := pending(head())
	other := head()
	otherDept := uuid.New()
	other.DepartmentID = &otherDept

	deps.repo.EXPECT().FindByID(ctx, r.ID).Return(r, nil)

	_, err := deps.service.GetByID(ctx, other, r.ID.String())

	assert.ErrorIs(t, err, requisitionerrors.ErrNotAllowed)
}

func TestService_Decide(t *testing.T) {
	ctx := context.Background()

	t.Run("approve notifies department head once", func(t *testing.T) {
		deps := setupServiceTest(t)
		r := pending(head())

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, r.ID).Return(r, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		deps.notifier.EXPECT().Notify(ctx, gomock.Any()).Times(1).DoAndReturn(func(ctx context.Context, in notification.CreateInput) error {
			assert.Equal(t, domain.RoleDepartmentHead, in.RecipientRole)
			assert.Equal(t, notification.TypeRequisitionDecision, in.Type)
			assert.Equal(t, r.ID, in.Ref.ID)
			return nil
		})

		resp, err := deps.service.Decide(ctx, admin(), r.ID.String(), requisition.DecisionRequest{Status: "APPROVED"})

		assert.NoError(t, err)
		assert.Equal(t, "approved", resp.Status)
		assert.NotNil(t, resp.DecidedAt)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("idempotent", func(t *testing.T) {
		deps := setupServiceTest(t)
		r := pending(head())
		r.Status = requisition.StatusApproved

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, r.ID).Return(r, nil)

		resp, err := deps.service.Decide(ctx, admin(), r.ID.String(), requisition.DecisionRequest{Status: "approved"})

		assert.NoError(t, err)
		assert.Equal(t, "approved", resp.Status)
	})

	t.Run("concurrent approvals both succeed", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.MatchExpectationsInOrder(false)
		stale := pending(head())

		var (
			mu       sync.Mutex
			reads    sync.WaitGroup
			saved    []string
			notified int
		)
		reads.Add(2)

		for i := 0; i < 2; i++ {
			deps.sqlMock.ExpectBegin()
			deps.sqlMock.ExpectCommit()
		}
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo).Times(2)
		deps.repo.EXPECT().FindByID(ctx, stale.ID).Times(2).DoAndReturn(func(ctx context.Context, id uuid.UUID) (*requisition.Requisition, error) {
			cp := *stale
			reads.Done()
			reads.Wait()
			return &cp, nil
		})
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Times(2).DoAndReturn(func(ctx context.Context, r *requisition.Requisition) error {
			mu.Lock()
			defer mu.Unlock()
			saved = append(saved, r.Status)
			return nil
		})
		deps.notifier.EXPECT().Notify(ctx, gomock.Any()).MinTimes(1).MaxTimes(2).DoAndReturn(func(ctx context.Context, in notification.CreateInput) error {
			mu.Lock()
			defer mu.Unlock()
			notified++
			return nil
		})

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = deps.service.Decide(ctx, admin(), stale.ID.String(), requisition.DecisionRequest{Status: "approved"})
			}(i)
		}
		wg.Wait()

		assert.NoError(t, errs[0])
		assert.NoError(t, errs[1])
		assert.Equal(t, []string{"approved", "approved"}, saved)
		assert.GreaterOrEqual(t, notified, 1)
		assert.LessOrEqual(t, notified, 2)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("flip rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		r := pending(head())
		r.Status = requisition.StatusApproved

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, r.ID).Return(r, nil)

		_, err := deps.service.Decide(ctx, admin(), r.ID.String(), requisition.DecisionRequest{Status: "rejected"})

		assert.ErrorIs(t, err, requisitionerrors.ErrRequisitionAlreadyDecided)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Decide(ctx, admin(), id.String(), requisition.DecisionRequest{Status: "approved"})

		assert.ErrorIs(t, err, requisitionerrors.ErrRequisitionNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

		_, err := deps.service.Decide(ctx, admin(), "nope", requisition.DecisionRequest{Status: "approved"})

		assert.ErrorIs(t, err, requisitionerrors.ErrInvalidRequisitionID)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("requester withdraws pending", func(t *testing.T) {
		deps := setupServiceTest(t)
		caller := head()
		r := pending(caller)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, r.ID).Return(r, nil)
		deps.repo.EXPECT().Delete(ctx, r.ID).Return(nil)

		assert.NoError(t, deps.service.Delete(ctx, caller, r.ID.String()))
	})

	t.Run("other head forbidden", func(t *testing.T) {
		deps := setupServiceTest(t)
		r := pending(head())

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, r.ID).Return(r, nil)

		assert.ErrorIs(t, deps.service.Delete(ctx, head(), r.ID.String()), requisitionerrors.ErrNotAllowed)
	})
}

func TestSourceResolver(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := requisitionMock.NewMockRepository(ctrl)
	ctx := context.Background()
	r := pending(head())

	repo.EXPECT().FindByID(ctx, r.ID).Return(r, nil)

	src, err := requisition.NewSourceResolver(repo).Resolve(ctx, r.ID)

	assert.NoError(t, err)
	assert.Equal(t, itID, *src.DepartmentID)
	assert.Equal(t, "Backend Engineer", src.Metadata["position"])
}
