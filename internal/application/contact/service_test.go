package contact

import (
	"context"
	"testing"
	"time"

	"github.com/internship-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockContactStore struct{ mock.Mock }

func (m *mockContactStore) Put(ctx context.Context, c *domain.Contact) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockContactStore) Get(ctx context.Context, contactID string) (*domain.Contact, error) {
	args := m.Called(ctx, contactID)
	if c, _ := args.Get(0).(*domain.Contact); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockContactStore) ScanAll(ctx context.Context) ([]domain.Contact, error) {
	args := m.Called(ctx)
	if c, _ := args.Get(0).([]domain.Contact); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockContactStore) Update(ctx context.Context, contactID string, updates map[string]interface{}) error {
	return m.Called(ctx, contactID, updates).Error(0)
}
func (m *mockContactStore) HardDelete(ctx context.Context, contactID string) error {
	return m.Called(ctx, contactID).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

func newService(cs *mockContactStore, ml *mockMailer) Service {
	return NewService(ServiceDeps{ContactRepo: cs, Mailer: ml})
}

func TestSubmit_StoresAndSendsReceipt(t *testing.T) {
	cs := &mockContactStore{}
	ml := &mockMailer{}

	cs.On("Put", mock.Anything, mock.MatchedBy(func(c *domain.Contact) bool {
		return c.Email == "bob@example.com" && c.Status == domain.ContactNew && c.ContactID != ""
	})).Return(nil)
	ml.On("SendEmail", "bob@example.com", mock.Anything, mock.Anything).Return(nil)

	svc := newService(cs, ml)
	c, err := svc.Submit(context.Background(), domain.ContactRequest{
		Name:    " Bob ",
		Email:   " BOB@example.com ",
		Subject: "Question",
		Message: "How do I apply?",
	})

	require.NoError(t, err)
	assert.Equal(t, "Bob", c.Name)
	assert.Equal(t, "bob@example.com", c.Email)
	cs.AssertExpectations(t)
}

func TestSubmit_ReceiptFailureTolerated(t *testing.T) {
	cs := &mockContactStore{}
	ml := &mockMailer{}
	cs.On("Put", mock.Anything, mock.Anything).Return(nil)
	ml.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	svc := newService(cs, ml)
	_, err := svc.Submit(context.Background(), domain.ContactRequest{
		Name: "Bob", Email: "bob@example.com", Subject: "q", Message: "m",
	})

	require.NoError(t, err)
}

func TestListAll_NewestFirst(t *testing.T) {
	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	cs := &mockContactStore{}
	cs.On("ScanAll", mock.Anything).Return([]domain.Contact{
		{ContactID: "old", CreatedAt: older},
		{ContactID: "new", CreatedAt: newer},
	}, nil)

	svc := newService(cs, nil)
	contacts, err := svc.ListAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "new", contacts[0].ContactID)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc := newService(&mockContactStore{}, nil)
	_, err := svc.UpdateStatus(context.Background(), "c1", "yeeted")

	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestUpdateStatus_Success(t *testing.T) {
	cs := &mockContactStore{}
	cs.On("Get", mock.Anything, "c1").Return(&domain.Contact{ContactID: "c1", Status: domain.ContactNew}, nil)
	cs.On("Update", mock.Anything, "c1", map[string]interface{}{"status": domain.ContactReplied}).Return(nil)

	svc := newService(cs, nil)
	c, err := svc.UpdateStatus(context.Background(), "c1", domain.ContactReplied)

	require.NoError(t, err)
	assert.Equal(t, domain.ContactReplied, c.Status)
}

func TestDelete_UnknownContact(t *testing.T) {
	cs := &mockContactStore{}
	cs.On("Get", mock.Anything, "nope").Return(nil, domain.ErrNotFound)

	svc := newService(cs, nil)
	err := svc.Delete(context.Background(), "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	cs.AssertNotCalled(t, "HardDelete")
}

func TestDelete_Success(t *testing.T) {
	cs := &mockContactStore{}
	cs.On("Get", mock.Anything, "c1").Return(&domain.Contact{ContactID: "c1"}, nil)
	cs.On("HardDelete", mock.Anything, "c1").Return(nil)

	svc := newService(cs, nil)
	err := svc.Delete(context.Background(), "c1")

	require.NoError(t, err)
	cs.AssertExpectations(t)
}
