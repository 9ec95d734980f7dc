package http

import (
	"context"
	"io"
	"time"

	"github.com/internship-api/internal/domain"
	jwtinfra "github.com/internship-api/internal/infrastructure/jwt"
	"github.com/internship-api/internal/infrastructure/smtp"
	"github.com/internship-api/internal/infrastructure/sns"
)

// UserRepository is the minimal interface the router requires from a user store.
type UserRepository interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, userID string) error
	ScanAll(ctx context.Context) ([]domain.User, error)
}

// OTPRepository is the minimal interface the router requires from a one-time-code store.
type OTPRepository interface {
	Put(ctx context.Context, c *domain.OneTimeCode) error
	Get(ctx context.Context, email, purpose string) (*domain.OneTimeCode, error)
	Delete(ctx context.Context, email, purpose string) error
}

// ApplicationRepository is the minimal interface the router requires from an application store.
type ApplicationRepository interface {
	Put(ctx context.Context, a *domain.Application) error
	Get(ctx context.Context, applicationID string) (*domain.Application, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Application, error)
	ScanAll(ctx context.Context) ([]domain.Application, error)
	Update(ctx context.Context, applicationID string, updates map[string]interface{}) error
	DeleteByUser(ctx context.Context, userID string) error
}

// ChatRepository is the minimal interface the router requires from a chat store.
type ChatRepository interface {
	Put(ctx context.Context, c *domain.Chat) error
	Get(ctx context.Context, chatID string) (*domain.Chat, error)
	GetByUser(ctx context.Context, userID string) (*domain.Chat, error)
	ScanAll(ctx context.Context) ([]domain.Chat, error)
	Update(ctx context.Context, chatID string, updates map[string]interface{}) error
}

// ContactRepository is the minimal interface the router requires from a contact store.
type ContactRepository interface {
	Put(ctx context.Context, c *domain.Contact) error
	Get(ctx context.Context, contactID string) (*domain.Contact, error)
	ScanAll(ctx context.Context) ([]domain.Contact, error)
	Update(ctx context.Context, contactID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, contactID string) error
}

// NotificationRepository is the minimal interface the router requires from a notification store.
type NotificationRepository interface {
	Put(ctx context.Context, n *domain.Notification) error
	Get(ctx context.Context, notificationID string) (*domain.Notification, error)
	ListUnread(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, notificationID string) (*domain.Notification, error)
}

// ObjectStore is the minimal interface the router requires from an object storage backend.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo    UserRepository
	OTPRepo     OTPRepository
	AppRepo     ApplicationRepository
	ChatRepo    ChatRepository
	ContactRepo ContactRepository
	NotifRepo   NotificationRepository
	S3Store     ObjectStore
	Mailer      smtp.Mailer
	SMSSender   sns.SMSSender // nil when SNS is unavailable
	JWTProvider *jwtinfra.Provider
}
