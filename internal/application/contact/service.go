package contact

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/internship-api/internal/domain"
	"github.com/internship-api/internal/infrastructure/smtp"
	"github.com/internship-api/internal/pkg/id"
)

type Service interface {
	Submit(ctx context.Context, req domain.ContactRequest) (*domain.Contact, error)
	ListAll(ctx context.Context) ([]domain.Contact, error)
	UpdateStatus(ctx context.Context, contactID, status string) (*domain.Contact, error)
	Delete(ctx context.Context, contactID string) error
}

type contactStore interface {
	Put(ctx context.Context, c *domain.Contact) error
	Get(ctx context.Context, contactID string) (*domain.Contact, error)
	ScanAll(ctx context.Context) ([]domain.Contact, error)
	Update(ctx context.Context, contactID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, contactID string) error
}

type service struct {
	repo   contactStore
	mailer smtp.Mailer
}

type ServiceDeps struct {
	ContactRepo contactStore
	Mailer      smtp.Mailer
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.ContactRepo, mailer: deps.Mailer}
}

// Submit stores an inbound message from the public contact form and sends a
// best-effort receipt to the sender.
func (s *service) Submit(ctx context.Context, req domain.ContactRequest) (*domain.Contact, error) {
	c := &domain.Contact{
		ContactID: id.New(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     req.Phone,
		Subject:   strings.TrimSpace(req.Subject),
		Message:   req.Message,
		Status:    domain.ContactNew,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, err
	}

	subject, body := smtp.ContactReceiptEmail(c.Name, c.Subject)
	if err := s.mailer.SendEmail(c.Email, subject, body); err != nil {
		slog.Warn("failed to send contact receipt", "email", c.Email, "err", err)
	}
	return c, nil
}

func (s *service) ListAll(ctx context.Context) ([]domain.Contact, error) {
	contacts, err := s.repo.ScanAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(contacts, func(i, j int) bool {
		return contacts[i].CreatedAt.After(contacts[j].CreatedAt)
	})
	return contacts, nil
}

func (s *service) UpdateStatus(ctx context.Context, contactID, status string) (*domain.Contact, error) {
	if !domain.ValidContactStatus(status) {
		return nil, fmt.Errorf("unknown status %q: %w", status, domain.ErrBadRequest)
	}
	c, err := s.repo.Get(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, contactID, map[string]interface{}{"status": status}); err != nil {
		return nil, err
	}
	c.Status = status
	return c, nil
}

func (s *service) Delete(ctx context.Context, contactID string) error {
	if _, err := s.repo.Get(ctx, contactID); err != nil {
		return err
	}
	return s.repo.HardDelete(ctx, contactID)
}
