package application

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	applicationerrors "github.com/MuleAlemuB/project1-sub002/internal/application/errors"
	"github.com/MuleAlemuB/project1-sub002/internal/domain"
	"github.com/MuleAlemuB/project1-sub002/internal/notification"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/apperror"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/upload"
	"github.com/MuleAlemuB/project1-sub002/internal/vacancy"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const uniqueVacancyEmail = "uq_application_vacancy_email"

// VacancyFinder is the slice of the vacancy repository an application needs.
type VacancyFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*vacancy.Vacancy, error)
}

//go:generate mockgen -source=application_service.go -destination=mock/application_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, req ApplyRequest, resume *multipart.FileHeader) (ApplicationResponse, error)
	List(ctx context.Context, vacancyID string) ([]ApplicationResponse, error)
	GetByID(ctx context.Context, id string) (ApplicationResponse, error)
	Decide(ctx context.Context, caller domain.Identity, id string, req DecisionRequest) (ApplicationResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	vacancies VacancyFinder
	notifier  notification.Notifier
	storage   upload.Storage
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	vacancies VacancyFinder,
	notifier notification.Notifier,
	storage upload.Storage,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("application.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("application.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		vacancies: vacancies,
		notifier:  notifier,
		storage:   storage,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Apply(ctx context.Context, req ApplyRequest, resume *multipart.FileHeader) (ApplicationResponse, error) {
	vacancyID, err := uuid.Parse(req.VacancyID)
	if err != nil {
		return ApplicationResponse{}, applicationerrors.ErrInvalidVacancyID
	}
	if resume == nil {
		return ApplicationResponse{}, applicationerrors.ErrResumeRequired
	}

	v, err := s.vacancies.FindByID(ctx, vacancyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ApplicationResponse{}, applicationerrors.ErrVacancyNotFound
		}
		s.logger.Error("apply vacancy lookup failed", zap.Error(err))
		return ApplicationResponse{}, err
	}
	if !v.AcceptsApplications(s.now()) {
		return ApplicationResponse{}, applicationerrors.ErrVacancyClosed
	}

	resumePath, err := s.storage.Save(resume, upload.DirResumes, upload.DocumentExts)
	if err != nil {
		s.logger.Warn("apply resume rejected", zap.String("filename", resume.Filename), zap.Error(err))
		return ApplicationResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply begin tx failed", zap.Error(err))
		return ApplicationResponse{}, err
	}
	defer tx.Rollback()

	a := &Application{
		ID:           uuid.New(),
		VacancyID:    v.ID,
		VacancyTitle: v.Title,
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        strings.TrimSpace(req.Phone),
		CoverLetter:  req.CoverLetter,
		ResumePath:   resumePath,
		Status:       StatusPending,
	}

	if err := s.repo.WithTx(tx).Create(ctx, a); err != nil {
		if apperror.IsUniqueViolation(err, uniqueVacancyEmail) {
			return ApplicationResponse{}, applicationerrors.ErrAlreadyApplied
		}
		s.logger.Error("apply persist failed", zap.Error(err))
		return ApplicationResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("apply commit failed", zap.Error(err))
		return ApplicationResponse{}, err
	}
	s.logger.Info("application submitted",
		zap.String("application_id", a.ID.String()),
		zap.String("vacancy_id", a.VacancyID.String()),
	)

	s.notify(ctx, notification.CreateInput{
		Type:          notification.TypeApplicationSubmitted,
		Title:         "New job application",
		Message:       fmt.Sprintf("%s applied for %s", a.Name, a.VacancyTitle),
		Ref:           domain.Ref{Kind: domain.RefApplication, ID: a.ID},
		RecipientRole: domain.RoleAdmin,
		Metadata:      sourceMetadata(*a),
		Applicant:     applicantParty(*a),
	})

	return mapToResponse(*a), nil
}

func (s *service) List(ctx context.Context, vacancyID string) ([]ApplicationResponse, error) {
	var filter *uuid.UUID
	if vacancyID != "" {
		id, err := uuid.Parse(vacancyID)
		if err != nil {
			return nil, applicationerrors.ErrInvalidVacancyID
		}
		filter = &id
	}

	items, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list applications failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(items), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ApplicationResponse, error) {
	a, err := s.find(ctx, s.repo, id)
	if err != nil {
		return ApplicationResponse{}, err
	}
	return mapToResponse(*a), nil
}

func (s *service) Decide(ctx context.Context, caller domain.Identity, id string, req DecisionRequest) (ApplicationResponse, error) {
	decision, err := domain.ParseDecision(req.Status)
	if err != nil {
		return ApplicationResponse{}, applicationerrors.ErrInvalidDecision
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide application begin tx failed", zap.Error(err))
		return ApplicationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := s.find(ctx, qtx, id)
	if err != nil {
		return ApplicationResponse{}, err
	}
	if a.Status == string(decision) {
		return mapToResponse(*a), nil
	}
	if a.Status != StatusPending {
		return ApplicationResponse{}, applicationerrors.ErrApplicationAlreadyDecided
	}

	now := s.now().UTC()
	decidedBy := caller.ID
	a.Status = string(decision)
	a.DecidedBy = &decidedBy
	a.DecidedAt = &now
	if c := strings.TrimSpace(req.Comment); c != "" {
		a.Comment = &c
	}

	if err := qtx.Update(ctx, a); err != nil {
		s.logger.Error("decide application persist failed", zap.String("application_id", id), zap.Error(err))
		return ApplicationResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("decide application commit failed", zap.String("application_id", id), zap.Error(err))
		return ApplicationResponse{}, err
	}
	s.logger.Info("decide application success",
		zap.String("application_id", id),
		zap.String("status", a.Status),
		zap.String("actor_id", caller.ID.String()),
	)

	s.notify(ctx, notification.CreateInput{
		Type:          notification.TypeApplicationDecision,
		Title:         "Application " + a.Status,
		Message:       fmt.Sprintf("Your application for %s was %s", a.VacancyTitle, a.Status),
		Ref:           domain.Ref{Kind: domain.RefApplication, ID: a.ID},
		RecipientRole: domain.RoleEmployee,
		Metadata:      sourceMetadata(*a),
		Applicant:     applicantParty(*a),
	})

	return mapToResponse(*a), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	appID, err := uuid.Parse(id)
	if err != nil {
		return applicationerrors.ErrInvalidApplicationID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, appID); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete application success", zap.String("application_id", id))
	return nil
}

func (s *service) find(ctx context.Context, repo Repository, id string) (*Application, error) {
	appID, err := uuid.Parse(id)
	if err != nil {
		return nil, applicationerrors.ErrInvalidApplicationID
	}
	a, err := repo.FindByID(ctx, appID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return a, nil
}

func (s *service) notify(ctx context.Context, in notification.CreateInput) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, in); err != nil {
		s.logger.Error("application notification failed",
			zap.String("application_id", in.Ref.ID.String()),
			zap.String("type", string(in.Type)),
			zap.Error(err),
		)
	}
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return applicationerrors.ErrApplicationNotFound
	}
	return err
}

func applicantParty(a Application) *notification.Party {
	return &notification.Party{
		ID:    a.ID.String(),
		Name:  a.Name,
		Email: a.Email,
		Phone: a.Phone,
	}
}

func sourceMetadata(a Application) map[string]any {
	return map[string]any{
		"vacancy_id":    a.VacancyID.String(),
		"vacancy_title": a.VacancyTitle,
		"name":          a.Name,
		"email":         a.Email,
		"phone":         a.Phone,
		"resume_path":   a.ResumePath,
		"status":        a.Status,
	}
}

func mapToResponse(a Application) ApplicationResponse {
	resp := ApplicationResponse{
		ID:           a.ID.String(),
		VacancyID:    a.VacancyID.String(),
		VacancyTitle: a.VacancyTitle,
		Name:         a.Name,
		Email:        a.Email,
		Phone:        a.Phone,
		CoverLetter:  a.CoverLetter,
		ResumePath:   a.ResumePath,
		Status:       a.Status,
		Comment:      a.Comment,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
	}
	if a.DecidedBy != nil {
		v := a.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if a.DecidedAt != nil {
		v := a.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(items []Application) []ApplicationResponse {
	resp := make([]ApplicationResponse, len(items))
	for i, a := range items {
		resp[i] = mapToResponse(a)
	}
	return resp
}
