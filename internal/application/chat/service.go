package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/internship-api/internal/domain"
	"github.com/internship-api/internal/pkg/id"
)

type Service interface {
	GetOrCreateMine(ctx context.Context, user *domain.User) (*domain.Chat, error)
	Send(ctx context.Context, user *domain.User, body string) (*domain.Chat, error)
	ListAll(ctx context.Context) ([]domain.Chat, error)
	Get(ctx context.Context, chatID string) (*domain.Chat, error)
	Reply(ctx context.Context, admin *domain.User, chatID, body string) (*domain.Chat, error)
	Close(ctx context.Context, chatID string) (*domain.Chat, error)
}

type chatStore interface {
	Put(ctx context.Context, c *domain.Chat) error
	Get(ctx context.Context, chatID string) (*domain.Chat, error)
	GetByUser(ctx context.Context, userID string) (*domain.Chat, error)
	ScanAll(ctx context.Context) ([]domain.Chat, error)
	Update(ctx context.Context, chatID string, updates map[string]interface{}) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type service struct {
	chatRepo chatStore
	userRepo userStore
}

type ServiceDeps struct {
	ChatRepo chatStore
	UserRepo userStore
}

func NewService(deps ServiceDeps) Service {
	return &service{chatRepo: deps.ChatRepo, userRepo: deps.UserRepo}
}

// GetOrCreateMine returns the user's support thread, creating an empty open
// one on first access.
func (s *service) GetOrCreateMine(ctx context.Context, user *domain.User) (*domain.Chat, error) {
	c, err := s.chatRepo.GetByUser(ctx, user.UserID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	c = &domain.Chat{
		ChatID:        id.New(),
		UserID:        user.UserID,
		Messages:      []domain.ChatMessage{},
		Status:        domain.ChatOpen,
		LastMessageAt: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.chatRepo.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Send(ctx context.Context, user *domain.User, body string) (*domain.Chat, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("message body is empty: %w", domain.ErrBadRequest)
	}

	c, err := s.GetOrCreateMine(ctx, user)
	if err != nil {
		return nil, err
	}

	s.append(c, user, body, false)
	// a new message reopens a closed thread
	c.Status = domain.ChatOpen
	if err := s.chatRepo.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListAll returns every thread for the admin inbox, most recent activity
// first, with the owning user's summary attached.
func (s *service) ListAll(ctx context.Context) ([]domain.Chat, error) {
	chats, err := s.chatRepo.ScanAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(chats, func(i, j int) bool {
		return chats[i].LastMessageAt.After(chats[j].LastMessageAt)
	})
	for i := range chats {
		u, err := s.userRepo.Get(ctx, chats[i].UserID)
		if err != nil {
			slog.Warn("chat owner lookup failed", "user_id", chats[i].UserID, "err", err)
			continue
		}
		chats[i].User = u.Summary()
	}
	return chats, nil
}

func (s *service) Get(ctx context.Context, chatID string) (*domain.Chat, error) {
	c, err := s.chatRepo.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if u, err := s.userRepo.Get(ctx, c.UserID); err == nil {
		c.User = u.Summary()
	}
	return c, nil
}

func (s *service) Reply(ctx context.Context, admin *domain.User, chatID, body string) (*domain.Chat, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("message body is empty: %w", domain.ErrBadRequest)
	}

	c, err := s.chatRepo.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}

	s.append(c, admin, body, true)
	if err := s.chatRepo.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Close(ctx context.Context, chatID string) (*domain.Chat, error) {
	c, err := s.chatRepo.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if err := s.chatRepo.Update(ctx, chatID, map[string]interface{}{
		"status":     domain.ChatClosed,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		return nil, err
	}
	c.Status = domain.ChatClosed
	return c, nil
}

func (s *service) append(c *domain.Chat, sender *domain.User, body string, isAdmin bool) {
	now := time.Now().UTC()
	c.Messages = append(c.Messages, domain.ChatMessage{
		SenderID:   sender.UserID,
		SenderName: sender.Name,
		Body:       body,
		IsAdmin:    isAdmin,
		Timestamp:  now,
	})
	c.LastMessageAt = now
	c.UpdatedAt = now
}
