package vacancy_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/MuleAlemuB/project1-sub002/internal/vacancy"
	vacancyerrors "github.com/MuleAlemuB/project1-sub002/internal/vacancy/errors"
	vacancyMock "github.com/MuleAlemuB/project1-sub002/internal/vacancy/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	sqlMock   sqlmock.Sqlmock
	redismock redismock.ClientMock
	repo      *vacancyMock.MockRepository
	service   vacancy.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, _ := sqlmock.New()
	rdb, redisMock := redismock.NewClientMock()
	repo := vacancyMock.NewMockRepository(ctrl)
	return &serviceDeps{
		sqlMock:   sqlMock,
		redismock: redisMock,
		repo:      repo,
		service:   vacancy.NewService(db, repo, rdb),
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

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	deptID := uuid.New()

	t.Run("success resolves department and clears cache", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().GetDepartmentName(ctx, deptID).Return("Engineering", nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.redismock.ExpectDel(vacancy.CacheKeyOpen).SetVal(1)

		resp, err := deps.service.Create(ctx, vacancy.VacancyRequest{
			Title:        "Go Developer",
			DepartmentID: deptID.String(),
			Deadline:     "2030-01-31",
		})

		assert.NoError(t, err)
		assert.Equal(t, "open", resp.Status)
		assert.Equal(t, "Engineering", resp.DepartmentName)
		assert.Equal(t, "2030-01-31", *resp.Deadline)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("unknown department", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().GetDepartmentName(ctx, deptID).Return("", nil)

		_, err := deps.service.Create(ctx, vacancy.VacancyRequest{Title: "X", DepartmentID: deptID.String()})

		assert.ErrorIs(t, err, vacancyerrors.ErrDepartmentNotFound)
	})

	t.Run("bad deadline", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

		_, err := deps.service.Create(ctx, vacancy.VacancyRequest{Title: "X", Deadline: "31/01/2030"})

		assert.ErrorIs(t, err, vacancyerrors.ErrInvalidDeadline)
	})
}

func TestService_ListOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit", func(t *testing.T) {
		deps := setupServiceTest(t)
		cached := []vacancy.VacancyResponse{{ID: "v1", Title: "Cached"}}
		data, _ := json.Marshal(cached)
		deps.redismock.ExpectGet(vacancy.CacheKeyOpen).SetVal(string(data))

		resp, err := deps.service.ListOpen(ctx)

		assert.NoError(t, err)
		assert.Equal(t, cached, resp)
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		deps := setupServiceTest(t)
		items := []vacancy.Vacancy{{ID: uuid.New(), Title: "Open", Status: vacancy.StatusOpen}}
		data, _ := json.Marshal([]vacancy.VacancyResponse{
			{ID: items[0].ID.String(), Title: "Open", Status: "open", CreatedAt: time.Time{}.Format(time.RFC3339)},
		})

		deps.redismock.ExpectGet(vacancy.CacheKeyOpen).RedisNil()
		deps.repo.EXPECT().FindAll(ctx, true).Return(items, nil)
		deps.redismock.ExpectSet(vacancy.CacheKeyOpen, data, 5*time.Minute).SetVal("OK")

		resp, err := deps.service.ListOpen(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed", func(t *testing.T) {
		_, err := setupServiceTest(t).service.GetByID(ctx, "x")
		assert.ErrorIs(t, err, vacancyerrors.ErrInvalidVacancyID)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, id.String())
		assert.ErrorIs(t, err, vacancyerrors.ErrVacancyNotFound)
	})
}

func TestService_Update_Close(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()
	v := &vacancy.Vacancy{ID: uuid.New(), Title: "Old", Status: vacancy.StatusOpen}

	expectTx(t, deps.sqlMock, true)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByID(ctx, v.ID).Return(v, nil)
	deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
	deps.redismock.ExpectDel(vacancy.CacheKeyOpen).SetVal(1)

	resp, err := deps.service.Update(ctx, v.ID.String(), vacancy.VacancyRequest{Title: "New", Status: "closed"})

	assert.NoError(t, err)
	assert.Equal(t, "closed", resp.Status)
	assert.Equal(t, "New", resp.Title)
}

func TestService_Delete_NotFound(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()
	id := uuid.New()

	expectTx(t, deps.sqlMock, false)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().Delete(ctx, id).Return(gorm.ErrRecordNotFound)

	assert.ErrorIs(t, deps.service.Delete(ctx, id.String()), vacancyerrors.ErrVacancyNotFound)
}

func TestVacancy_AcceptsApplications(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	today := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	assert.True(t, vacancy.Vacancy{Status: vacancy.StatusOpen}.AcceptsApplications(now))
	assert.True(t, vacancy.Vacancy{Status: vacancy.StatusOpen, Deadline: &today}.AcceptsApplications(now))
	assert.False(t, vacancy.Vacancy{Status: vacancy.StatusOpen, Deadline: &yesterday}.AcceptsApplications(now))
	assert.False(t, vacancy.Vacancy{Status: vacancy.StatusClosed}.AcceptsApplications(now))
}
