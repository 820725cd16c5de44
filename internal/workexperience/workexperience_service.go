package workexperience

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/MuleAlemuB/project1-sub002/internal/domain"
	"github.com/MuleAlemuB/project1-sub002/internal/employee"
	"github.com/MuleAlemuB/project1-sub002/internal/notification"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/pdf"
	"github.com/MuleAlemuB/project1-sub002/internal/shared/upload"
	workexperienceerrors "github.com/MuleAlemuB/project1-sub002/internal/workexperience/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const letterDateLayout = "January 2, 2006"

// EmployeeFinder supplies the position and hire date printed on a letter.
type EmployeeFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error)
}

//go:generate mockgen -source=workexperience_service.go -destination=mock/workexperience_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, caller domain.Identity, req CreateRequest) (WorkExperienceResponse, error)
	List(ctx context.Context, caller domain.Identity) ([]WorkExperienceResponse, error)
	GetByID(ctx context.Context, caller domain.Identity, id string) (WorkExperienceResponse, error)
	Decide(ctx context.Context, caller domain.Identity, id string, req DecisionRequest) (WorkExperienceResponse, error)
	GenerateLetter(ctx context.Context, caller domain.Identity, id string) (WorkExperienceResponse, error)
	UploadLetter(ctx context.Context, caller domain.Identity, id string, letter *multipart.FileHeader) (WorkExperienceResponse, error)
	Letter(ctx context.Context, caller domain.Identity, id string) (LetterFile, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees EmployeeFinder
	notifier  notification.Notifier
	storage   upload.Storage
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees EmployeeFinder,
	notifier notification.Notifier,
	storage upload.Storage,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("workexperience.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("workexperience.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		notifier:  notifier,
		storage:   storage,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, caller domain.Identity, req CreateRequest) (WorkExperienceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create work experience begin tx failed", zap.Error(err))
		return WorkExperienceResponse{}, err
	}
	defer tx.Rollback()

	w := &WorkExperienceRequest{
		ID:             uuid.New(),
		EmployeeID:     caller.ID,
		EmployeeKind:   string(caller.Kind),
		EmployeeName:   caller.Name,
		EmployeeEmail:  caller.Email,
		EmployeeRole:   caller.Role.String(),
		DepartmentID:   caller.DepartmentID,
		DepartmentName: caller.DepartmentName,
		Purpose:        strings.TrimSpace(req.Purpose),
		Status:         StatusPending,
	}

	if err := s.repo.WithTx(tx).Create(ctx, w); err != nil {
		s.logger.Error("create work experience persist failed", zap.Error(err))
		return WorkExperienceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create work experience commit failed", zap.Error(err))
		return WorkExperienceResponse{}, err
	}
	s.logger.Info("create work experience success",
		zap.String("request_id", w.ID.String()),
		zap.String("employee_id", w.EmployeeID.String()),
	)

	s.notify(ctx, notification.CreateInput{
		Type:          notification.TypeWorkExperienceRequest,
		Title:         "Work experience letter requested",
		Message:       fmt.Sprintf("%s requested a work experience letter", w.EmployeeName),
		Ref:           domain.Ref{Kind: domain.RefWorkExperience, ID: w.ID},
		RecipientRole: domain.RoleAdmin,
		Metadata:      sourceMetadata(*w),
		Employee:      employeeParty(*w),
	})

	return mapToResponse(*w), nil
}

func (s *service) List(ctx context.Context, caller domain.Identity) ([]WorkExperienceResponse, error) {
	var filter *uuid.UUID
	if !caller.IsAdmin() {
		id := caller.ID
		filter = &id
	}

	items, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list work experience failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(items), nil
}

func (s *service) GetByID(ctx context.Context, caller domain.Identity, id string) (WorkExperienceResponse, error) {
	w, err := s.find(ctx, s.repo, id)
	if err != nil {
		return WorkExperienceResponse{}, err
	}
	if !caller.IsAdmin() && !w.IsOwnedBy(caller) {
		return WorkExperienceResponse{}, workexperienceerrors.ErrNotAllowed
	}
	return mapToResponse(*w), nil
}

func (s *service) Decide(ctx context.Context, caller domain.Identity, id string, req DecisionRequest) (WorkExperienceResponse, error) {
	decision, err := domain.ParseDecision(req.Status)
	if err != nil {
		return WorkExperienceResponse{}, workexperienceerrors.ErrInvalidDecision
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide work experience begin tx failed", zap.Error(err))
		return WorkExperienceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	w, err := s.find(ctx, qtx, id)
	if err != nil {
		return WorkExperienceResponse{}, err
	}
	if w.Status == string(decision) {
		return mapToResponse(*w), nil
	}
	if w.Status != StatusPending {
		return WorkExperienceResponse{}, workexperienceerrors.ErrRequestAlreadyDecided
	}

	now := s.now().UTC()
	decidedBy := caller.ID
	w.Status = string(decision)
	w.DecidedBy = &decidedBy
	w.DecidedAt = &now
	if c := strings.TrimSpace(req.Comment); c != "" {
		w.AdminComment = &c
	}

	if err := qtx.Update(ctx, w); err != nil {
		s.logger.Error("decide work experience persist failed", zap.String("request_id", id), zap.Error(err))
		return WorkExperienceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("decide work experience commit failed", zap.String("request_id", id), zap.Error(err))
		return WorkExperienceResponse{}, err
	}
	s.logger.Info("decide work experience success",
		zap.String("request_id", id),
		zap.String("status", w.Status),
		zap.String("actor_id", caller.ID.String()),
	)

	s.notifyRequester(ctx, *w, "Work experience request "+w.Status,
		fmt.Sprintf("Your work experience letter request was %s", w.Status))

	return mapToResponse(*w), nil
}

func (s *service) GenerateLetter(ctx context.Context, caller domain.Identity, id string) (WorkExperienceResponse, error) {
	return s.issue(ctx, caller, id, func(w *WorkExperienceRequest) (string, error) {
		doc := s.letterDocument(ctx, *w)
		data, err := pdf.Render(doc)
		if err != nil {
			return "", err
		}
		return s.storage.WriteBytes(upload.DirLetters, ".pdf", data)
	})
}

func (s *service) UploadLetter(ctx context.Context, caller domain.Identity, id string, letter *multipart.FileHeader) (WorkExperienceResponse, error) {
	if letter == nil {
		return WorkExperienceResponse{}, workexperienceerrors.ErrLetterRequired
	}
	return s.issue(ctx, caller, id, func(*WorkExperienceRequest) (string, error) {
		return s.storage.Save(letter, upload.DirLetters, upload.DocumentExts)
	})
}

// issue moves an approved request to completed with the letter produced by
// write. Any other status is rejected before write runs.
func (s *service) issue(
	ctx context.Context,
	caller domain.Identity,
	id string,
	write func(w *WorkExperienceRequest) (string, error),
) (WorkExperienceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("issue letter begin tx failed", zap.Error(err))
		return WorkExperienceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	w, err := s.find(ctx, qtx, id)
	if err != nil {
		return WorkExperienceResponse{}, err
	}
	if w.Status != StatusApproved {
		return WorkExperienceResponse{}, workexperienceerrors.ErrRequestNotApproved
	}

	letterPath, err := write(w)
	if err != nil {
		s.logger.Warn("issue letter write failed", zap.String("request_id", id), zap.Error(err))
		return WorkExperienceResponse{}, err
	}

	now := s.now().UTC()
	w.LetterPath = letterPath
	w.Status = StatusCompleted
	w.CompletedAt = &now

	if err := qtx.Update(ctx, w); err != nil {
		s.logger.Error("issue letter persist failed", zap.String("request_id", id), zap.Error(err))
		return WorkExperienceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("issue letter commit failed", zap.String("request_id", id), zap.Error(err))
		return WorkExperienceResponse{}, err
	}
	s.logger.Info("issue letter success",
		zap.String("request_id", id),
		zap.String("letter_path", letterPath),
		zap.String("actor_id", caller.ID.String()),
	)

	s.notifyRequester(ctx, *w, "Work experience letter ready",
		"Your work experience letter is ready for download")

	return mapToResponse(*w), nil
}

func (s *service) Letter(ctx context.Context, caller domain.Identity, id string) (LetterFile, error) {
	w, err := s.find(ctx, s.repo, id)
	if err != nil {
		return LetterFile{}, err
	}
	if !caller.IsAdmin() && !w.IsOwnedBy(caller) {
		return LetterFile{}, workexperienceerrors.ErrNotAllowed
	}
	if w.LetterPath == "" {
		return LetterFile{}, workexperienceerrors.ErrLetterNotAvailable
	}

	full, err := s.storage.Resolve(w.LetterPath)
	if err != nil {
		if errors.Is(err, upload.ErrFileNotFound) {
			return LetterFile{}, workexperienceerrors.ErrLetterNotAvailable
		}
		return LetterFile{}, err
	}
	return LetterFile{
		Path:     full,
		Filename: "work-experience-letter" + path.Ext(w.LetterPath),
	}, nil
}

func (s *service) letterDocument(ctx context.Context, w WorkExperienceRequest) pdf.Document {
	now := s.now()
	position, since := "", ""
	if s.employees != nil && w.EmployeeKind == string(domain.IdentityEmployee) {
		e, err := s.employees.FindByID(ctx, w.EmployeeID)
		if err != nil {
			s.logger.Warn("letter employee lookup failed", zap.String("employee_id", w.EmployeeID.String()), zap.Error(err))
		} else {
			position = e.Position
			if e.HireDate != nil {
				since = e.HireDate.Format(letterDateLayout)
			}
		}
	}

	body := fmt.Sprintf("This is to certify that %s", w.EmployeeName)
	if position != "" {
		body += fmt.Sprintf(" has been working as %s", position)
	} else {
		body += " has been working"
	}
	if w.DepartmentName != "" {
		body += fmt.Sprintf(" in the %s department", w.DepartmentName)
	}
	if since != "" {
		body += fmt.Sprintf(" since %s", since)
	}
	body += "."

	lines := []string{
		"Date: " + now.Format(letterDateLayout),
		"Ref: " + w.ID.String(),
		"",
		"To Whom It May Concern,",
		"",
		body,
	}
	if w.Purpose != "" {
		lines = append(lines, "", "This letter is issued upon request for the purpose of: "+w.Purpose+".")
	}
	lines = append(lines, "", "Sincerely,", "Human Resources")

	return pdf.Document{Title: "Work Experience Letter", Lines: lines}
}

func (s *service) find(ctx context.Context, repo Repository, id string) (*WorkExperienceRequest, error) {
	reqID, err := uuid.Parse(id)
	if err != nil {
		return nil, workexperienceerrors.ErrInvalidRequestID
	}
	w, err := repo.FindByID(ctx, reqID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workexperienceerrors.ErrRequestNotFound
		}
		return nil, err
	}
	return w, nil
}

func (s *service) notifyRequester(ctx context.Context, w WorkExperienceRequest, title, message string) {
	role, err := domain.ParseRole(w.EmployeeRole)
	if err != nil {
		role = domain.RoleEmployee
	}
	s.notify(ctx, notification.CreateInput{
		Type:          notification.TypeWorkExperienceUpdate,
		Title:         title,
		Message:       message,
		Ref:           domain.Ref{Kind: domain.RefWorkExperience, ID: w.ID},
		RecipientRole: role,
		Metadata:      sourceMetadata(w),
		Employee:      employeeParty(w),
	})
}

func (s *service) notify(ctx context.Context, in notification.CreateInput) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, in); err != nil {
		s.logger.Error("work experience notification failed",
			zap.String("request_id", in.Ref.ID.String()),
			zap.String("type", string(in.Type)),
			zap.Error(err),
		)
	}
}

func employeeParty(w WorkExperienceRequest) *notification.Party {
	return &notification.Party{
		ID:    w.EmployeeID.String(),
		Name:  w.EmployeeName,
		Email: w.EmployeeEmail,
	}
}

func sourceMetadata(w WorkExperienceRequest) map[string]any {
	m := map[string]any{
		"employee_name":   w.EmployeeName,
		"employee_email":  w.EmployeeEmail,
		"department_name": w.DepartmentName,
		"purpose":         w.Purpose,
		"status":          w.Status,
	}
	if w.LetterPath != "" {
		m["letter_path"] = w.LetterPath
	}
	return m
}

func mapToResponse(w WorkExperienceRequest) WorkExperienceResponse {
	resp := WorkExperienceResponse{
		ID:             w.ID.String(),
		EmployeeID:     w.EmployeeID.String(),
		EmployeeName:   w.EmployeeName,
		EmployeeEmail:  w.EmployeeEmail,
		DepartmentName: w.DepartmentName,
		Purpose:        w.Purpose,
		Status:         w.Status,
		AdminComment:   w.AdminComment,
		LetterPath:     w.LetterPath,
		CreatedAt:      w.CreatedAt.Format(time.RFC3339),
	}
	if w.DepartmentID != nil {
		v := w.DepartmentID.String()
		resp.DepartmentID = &v
	}
	if w.DecidedAt != nil {
		v := w.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	if w.CompletedAt != nil {
		v := w.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &v
	}
	return resp
}

func mapToListResponse(items []WorkExperienceRequest) []WorkExperienceResponse {
	resp := make([]WorkExperienceResponse, len(items))
	for i, w := range items {
		resp[i] = mapToResponse(w)
	}
	return resp
}
