package chat

import (
	"context"
	"testing"
	"time"

	"github.com/internship-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockChatStore struct{ mock.Mock }

func (m *mockChatStore) Put(ctx context.Context, c *domain.Chat) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockChatStore) Get(ctx context.Context, chatID string) (*domain.Chat, error) {
	args := m.Called(ctx, chatID)
	if c, _ := args.Get(0).(*domain.Chat); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockChatStore) GetByUser(ctx context.Context, userID string) (*domain.Chat, error) {
	args := m.Called(ctx, userID)
	if c, _ := args.Get(0).(*domain.Chat); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockChatStore) ScanAll(ctx context.Context) ([]domain.Chat, error) {
	args := m.Called(ctx)
	if c, _ := args.Get(0).([]domain.Chat); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockChatStore) Update(ctx context.Context, chatID string, updates map[string]interface{}) error {
	return m.Called(ctx, chatID, updates).Error(0)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func newService(cs *mockChatStore, us *mockUserStore) Service {
	return NewService(ServiceDeps{ChatRepo: cs, UserRepo: us})
}

var student = &domain.User{UserID: "u1", Name: "Alice", Role: domain.RoleStudent}
var admin = &domain.User{UserID: "adm", Name: "Root", Role: domain.RoleAdmin}

func TestGetOrCreateMine_CreatesOnFirstAccess(t *testing.T) {
	cs := &mockChatStore{}
	cs.On("GetByUser", mock.Anything, "u1").Return(nil, domain.ErrNotFound)
	cs.On("Put", mock.Anything, mock.MatchedBy(func(c *domain.Chat) bool {
		return c.UserID == "u1" && c.Status == domain.ChatOpen && len(c.Messages) == 0
	})).Return(nil)

	svc := newService(cs, nil)
	c, err := svc.GetOrCreateMine(context.Background(), student)

	require.NoError(t, err)
	assert.NotEmpty(t, c.ChatID)
	cs.AssertExpectations(t)
}

func TestGetOrCreateMine_ReturnsExisting(t *testing.T) {
	cs := &mockChatStore{}
	cs.On("GetByUser", mock.Anything, "u1").Return(&domain.Chat{ChatID: "c1", UserID: "u1"}, nil)

	svc := newService(cs, nil)
	c, err := svc.GetOrCreateMine(context.Background(), student)

	require.NoError(t, err)
	assert.Equal(t, "c1", c.ChatID)
	cs.AssertNotCalled(t, "Put")
}

func TestSend_AppendsMessage(t *testing.T) {
	cs := &mockChatStore{}
	cs.On("GetByUser", mock.Anything, "u1").Return(&domain.Chat{
		ChatID: "c1", UserID: "u1", Status: domain.ChatOpen,
	}, nil)
	cs.On("Put", mock.Anything, mock.MatchedBy(func(c *domain.Chat) bool {
		return len(c.Messages) == 1 &&
			c.Messages[0].Body == "hello" &&
			c.Messages[0].SenderID == "u1" &&
			!c.Messages[0].IsAdmin
	})).Return(nil)

	svc := newService(cs, nil)
	c, err := svc.Send(context.Background(), student, "  hello  ")

	require.NoError(t, err)
	assert.Equal(t, "hello", c.Messages[0].Body)
}

func TestSend_EmptyBodyRejected(t *testing.T) {
	svc := newService(&mockChatStore{}, nil)
	_, err := svc.Send(context.Background(), student, "   ")

	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestSend_ReopensClosedThread(t *testing.T) {
	cs := &mockChatStore{}
	cs.On("GetByUser", mock.Anything, "u1").Return(&domain.Chat{
		ChatID: "c1", UserID: "u1", Status: domain.ChatClosed,
	}, nil)
	cs.On("Put", mock.Anything, mock.MatchedBy(func(c *domain.Chat) bool {
		return c.Status == domain.ChatOpen
	})).Return(nil)

	svc := newService(cs, nil)
	_, err := svc.Send(context.Background(), student, "anyone there?")

	require.NoError(t, err)
	cs.AssertExpectations(t)
}

func TestListAll_SortedByActivity(t *testing.T) {
	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	cs := &mockChatStore{}
	us := &mockUserStore{}
	cs.On("ScanAll", mock.Anything).Return([]domain.Chat{
		{ChatID: "quiet", UserID: "u1", LastMessageAt: older},
		{ChatID: "busy", UserID: "u2", LastMessageAt: newer},
	}, nil)
	us.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Name: "Alice"}, nil)
	us.On("Get", mock.Anything, "u2").Return(&domain.User{UserID: "u2", Name: "Bob"}, nil)

	svc := newService(cs, us)
	chats, err := svc.ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, "busy", chats[0].ChatID)
	require.NotNil(t, chats[0].User)
	assert.Equal(t, "Bob", chats[0].User.Name)
}

func TestReply_MarkedAsAdmin(t *testing.T) {
	cs := &mockChatStore{}
	cs.On("Get", mock.Anything, "c1").Return(&domain.Chat{ChatID: "c1", UserID: "u1"}, nil)
	cs.On("Put", mock.Anything, mock.MatchedBy(func(c *domain.Chat) bool {
		return len(c.Messages) == 1 && c.Messages[0].IsAdmin && c.Messages[0].SenderID == "adm"
	})).Return(nil)

	svc := newService(cs, nil)
	_, err := svc.Reply(context.Background(), admin, "c1", "on it")

	require.NoError(t, err)
	cs.AssertExpectations(t)
}

func TestClose_SetsStatus(t *testing.T) {
	cs := &mockChatStore{}
	cs.On("Get", mock.Anything, "c1").Return(&domain.Chat{ChatID: "c1", Status: domain.ChatOpen}, nil)
	cs.On("Update", mock.Anything, "c1", mock.MatchedBy(func(m map[string]interface{}) bool {
		return m["status"] == domain.ChatClosed
	})).Return(nil)

	svc := newService(cs, nil)
	c, err := svc.Close(context.Background(), "c1")

	require.NoError(t, err)
	assert.Equal(t, domain.ChatClosed, c.Status)
}

func TestClose_UnknownChat(t *testing.T) {
	cs := &mockChatStore{}
	cs.On("Get", mock.Anything, "nope").Return(nil, domain.ErrNotFound)

	svc := newService(cs, nil)
	_, err := svc.Close(context.Background(), "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
