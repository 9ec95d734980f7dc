package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/internship-api/internal/domain"
	"github.com/internship-api/internal/infrastructure/smtp"
	"github.com/internship-api/internal/infrastructure/sns"
	"github.com/internship-api/internal/pkg/id"
)

type Service interface {
	Submit(ctx context.Context, userID string, req domain.SubmitApplicationRequest) (*domain.Application, error)
	ListMine(ctx context.Context, userID string) ([]domain.Application, error)
	ListAll(ctx context.Context) ([]domain.Application, error)
	UpdateStatus(ctx context.Context, applicationID string, req domain.UpdateApplicationStatusRequest) (*domain.Application, error)
}

type applicationStore interface {
	Put(ctx context.Context, a *domain.Application) error
	Get(ctx context.Context, applicationID string) (*domain.Application, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Application, error)
	ScanAll(ctx context.Context) ([]domain.Application, error)
	Update(ctx context.Context, applicationID string, updates map[string]interface{}) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type notificationStore interface {
	Put(ctx context.Context, n *domain.Notification) error
}

type service struct {
	appRepo   applicationStore
	userRepo  userStore
	notifRepo notificationStore
	mailer    smtp.Mailer
	smsSender sns.SMSSender
	clientURL string
}

type ServiceDeps struct {
	AppRepo   applicationStore
	UserRepo  userStore
	NotifRepo notificationStore
	Mailer    smtp.Mailer
	SMSSender sns.SMSSender // nil disables SMS
	ClientURL string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		appRepo:   deps.AppRepo,
		userRepo:  deps.UserRepo,
		notifRepo: deps.NotifRepo,
		mailer:    deps.Mailer,
		smsSender: deps.SMSSender,
		clientURL: deps.ClientURL,
	}
}

func (s *service) Submit(ctx context.Context, userID string, req domain.SubmitApplicationRequest) (*domain.Application, error) {
	if !domain.ValidProgram(req.Program, false) {
		return nil, fmt.Errorf("unknown program %q: %w", req.Program, domain.ErrBadRequest)
	}

	existing, err := s.appRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, a := range existing {
		if domain.ActiveApplicationStatus(a.Status) {
			return nil, fmt.Errorf("an application is already in progress: %w", domain.ErrConflict)
		}
	}

	now := time.Now().UTC()
	a := &domain.Application{
		ApplicationID: id.New(),
		UserID:        userID,
		Program:       req.Program,
		Experience:    req.Experience,
		Education:     req.Education,
		Motivation:    req.Motivation,
		Status:        domain.ApplicationPending,
		SubmittedAt:   now,
		UpdatedAt:     now,
	}
	if err := s.appRepo.Put(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) ListMine(ctx context.Context, userID string) ([]domain.Application, error) {
	apps, err := s.appRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(apps)
	return apps, nil
}

// ListAll returns every application with its applicant summary attached,
// for the admin review table.
func (s *service) ListAll(ctx context.Context) ([]domain.Application, error) {
	apps, err := s.appRepo.ScanAll(ctx)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(apps)

	// applicants repeat across applications rarely enough that a small
	// per-call cache is all we need
	users := map[string]*domain.UserSummary{}
	for i := range apps {
		summary, ok := users[apps[i].UserID]
		if !ok {
			u, err := s.userRepo.Get(ctx, apps[i].UserID)
			if err != nil {
				slog.Warn("applicant lookup failed", "user_id", apps[i].UserID, "err", err)
				users[apps[i].UserID] = nil
				continue
			}
			summary = u.Summary()
			users[apps[i].UserID] = summary
		}
		apps[i].Applicant = summary
	}
	return apps, nil
}

func (s *service) UpdateStatus(ctx context.Context, applicationID string, req domain.UpdateApplicationStatusRequest) (*domain.Application, error) {
	if !domain.ValidApplicationStatus(req.Status) {
		return nil, fmt.Errorf("unknown status %q: %w", req.Status, domain.ErrBadRequest)
	}

	a, err := s.appRepo.Get(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.Notes != "" {
		updates["notes"] = req.Notes
	}
	if err := s.appRepo.Update(ctx, applicationID, updates); err != nil {
		return nil, err
	}
	a.Status = req.Status
	if req.Notes != "" {
		a.Notes = req.Notes
	}

	s.notifyStatusChange(ctx, a)
	return a, nil
}

// notifyStatusChange fans out to email, SMS and the in-app feed. All three
// are best-effort; the status change itself has already been persisted.
func (s *service) notifyStatusChange(ctx context.Context, a *domain.Application) {
	u, err := s.userRepo.Get(ctx, a.UserID)
	if err != nil {
		slog.Warn("applicant lookup failed, skipping notifications", "user_id", a.UserID, "err", err)
		return
	}

	subject, body := smtp.ApplicationStatusEmail(u.Name, a.Program, a.Status, s.clientURL)
	if err := s.mailer.SendEmail(u.Email, subject, body); err != nil {
		slog.Warn("failed to send status email", "email", u.Email, "err", err)
	}

	if s.smsSender != nil && u.Phone != nil {
		msg := fmt.Sprintf("Your %s application is now %s.", a.Program, a.Status)
		if err := s.smsSender.SendSMS(ctx, *u.Phone, msg); err != nil {
			slog.Warn("failed to send status SMS", "user_id", u.UserID, "err", err)
		}
	}

	n := &domain.Notification{
		NotificationID: id.New(),
		UserID:         u.UserID,
		Title:          "Application status updated",
		Body:           fmt.Sprintf("Your %s application is now %s.", a.Program, a.Status),
		Read:           false,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.notifRepo.Put(ctx, n); err != nil {
		slog.Warn("failed to store notification", "user_id", u.UserID, "err", err)
	}
}

func sortNewestFirst(apps []domain.Application) {
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].SubmittedAt.After(apps[j].SubmittedAt)
	})
}
