package notification

import (
	"context"
	"testing"

	"github.com/internship-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotifStore struct{ mock.Mock }

func (m *mockNotifStore) Get(ctx context.Context, notificationID string) (*domain.Notification, error) {
	args := m.Called(ctx, notificationID)
	if n, _ := args.Get(0).(*domain.Notification); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockNotifStore) ListUnread(ctx context.Context, userID string) ([]domain.Notification, error) {
	args := m.Called(ctx, userID)
	if n, _ := args.Get(0).([]domain.Notification); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockNotifStore) MarkAsRead(ctx context.Context, notificationID string) (*domain.Notification, error) {
	args := m.Called(ctx, notificationID)
	if n, _ := args.Get(0).(*domain.Notification); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestMarkAsRead_OwnNotification(t *testing.T) {
	ns := &mockNotifStore{}
	ns.On("Get", mock.Anything, "n1").Return(&domain.Notification{NotificationID: "n1", UserID: "u1"}, nil)
	ns.On("MarkAsRead", mock.Anything, "n1").Return(&domain.Notification{NotificationID: "n1", UserID: "u1", Read: true}, nil)

	svc := NewService(ServiceDeps{NotifRepo: ns})
	n, err := svc.MarkAsRead(context.Background(), "u1", "n1")

	require.NoError(t, err)
	assert.True(t, n.Read)
}

func TestMarkAsRead_SomeoneElses(t *testing.T) {
	ns := &mockNotifStore{}
	ns.On("Get", mock.Anything, "n1").Return(&domain.Notification{NotificationID: "n1", UserID: "u2"}, nil)

	svc := NewService(ServiceDeps{NotifRepo: ns})
	_, err := svc.MarkAsRead(context.Background(), "u1", "n1")

	assert.ErrorIs(t, err, domain.ErrForbidden)
	ns.AssertNotCalled(t, "MarkAsRead")
}

func TestMarkAsRead_Unknown(t *testing.T) {
	ns := &mockNotifStore{}
	ns.On("Get", mock.Anything, "nope").Return(nil, domain.ErrNotFound)

	svc := NewService(ServiceDeps{NotifRepo: ns})
	_, err := svc.MarkAsRead(context.Background(), "u1", "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListUnread_PassesThrough(t *testing.T) {
	ns := &mockNotifStore{}
	ns.On("ListUnread", mock.Anything, "u1").Return([]domain.Notification{
		{NotificationID: "n1", UserID: "u1"},
	}, nil)

	svc := NewService(ServiceDeps{NotifRepo: ns})
	list, err := svc.ListUnread(context.Background(), "u1")

	require.NoError(t, err)
	assert.Len(t, list, 1)
}
