package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/internship-api/internal/domain"
)

const presignTTL = 15 * time.Minute

type Service interface {
	ExportApplications(ctx context.Context) (url string, err error)
	ExportUsers(ctx context.Context) (url string, err error)
}

type applicationStore interface {
	ScanAll(ctx context.Context) ([]domain.Application, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	ScanAll(ctx context.Context) ([]domain.User, error)
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type service struct {
	appRepo  applicationStore
	userRepo userStore
	store    objectStore
}

type ServiceDeps struct {
	AppRepo  applicationStore
	UserRepo userStore
	Store    objectStore
}

func NewService(deps ServiceDeps) Service {
	return &service{appRepo: deps.AppRepo, userRepo: deps.UserRepo, store: deps.Store}
}

// ExportApplications writes all applications as CSV to the export bucket and
// returns a short-lived presigned download URL.
func (s *service) ExportApplications(ctx context.Context) (string, error) {
	apps, err := s.appRepo.ScanAll(ctx)
	if err != nil {
		return "", err
	}
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].SubmittedAt.Before(apps[j].SubmittedAt)
	})

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"application_id", "applicant_name", "applicant_email", "program", "status", "submitted_at", "notes"}); err != nil {
		return "", err
	}
	for _, a := range apps {
		name, email := "", ""
		if u, err := s.userRepo.Get(ctx, a.UserID); err == nil {
			name, email = u.Name, u.Email
		}
		if err := w.Write([]string{
			a.ApplicationID,
			name,
			email,
			a.Program,
			a.Status,
			a.SubmittedAt.UTC().Format(time.RFC3339),
			a.Notes,
		}); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return s.uploadAndPresign(ctx, exportKey("applications"), &buf)
}

// ExportUsers writes all users as CSV. Password hashes never leave the
// database.
func (s *service) ExportUsers(ctx context.Context) (string, error) {
	users, err := s.userRepo.ScanAll(ctx)
	if err != nil {
		return "", err
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"user_id", "name", "email", "phone", "program", "is_verified", "role", "created_at"}); err != nil {
		return "", err
	}
	for _, u := range users {
		phone := ""
		if u.Phone != nil {
			phone = *u.Phone
		}
		if err := w.Write([]string{
			u.UserID,
			u.Name,
			u.Email,
			phone,
			u.Program,
			strconv.FormatBool(u.IsVerified),
			u.Role,
			u.CreatedAt.UTC().Format(time.RFC3339),
		}); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return s.uploadAndPresign(ctx, exportKey("users"), &buf)
}

func (s *service) uploadAndPresign(ctx context.Context, key string, r io.Reader) (string, error) {
	if err := s.store.Upload(ctx, key, r, "text/csv"); err != nil {
		return "", err
	}
	return s.store.PresignedURL(ctx, key, presignTTL)
}

func exportKey(kind string) string {
	return fmt.Sprintf("exports/%s-%s.csv", kind, time.Now().UTC().Format("20060102-150405"))
}
