package auth

import (
	"context"
	"testing"
	"time"

	"github.com/internship-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Put(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}

type mockOTPStore struct{ mock.Mock }

func (m *mockOTPStore) Put(ctx context.Context, c *domain.OneTimeCode) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockOTPStore) Get(ctx context.Context, email, purpose string) (*domain.OneTimeCode, error) {
	args := m.Called(ctx, email, purpose)
	if c, _ := args.Get(0).(*domain.OneTimeCode); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockOTPStore) Delete(ctx context.Context, email, purpose string) error {
	return m.Called(ctx, email, purpose).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

type mockSigner struct{ mock.Mock }

func (m *mockSigner) Sign(userID, email, role string) (string, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Error(1)
}

// --- builder ---

func newService(us *mockUserStore, os *mockOTPStore, ml *mockMailer, sg *mockSigner) Service {
	return NewService(ServiceDeps{
		UserRepo:  us,
		OTPRepo:   os,
		Mailer:    ml,
		JWT:       sg,
		OTPTTL:    10 * time.Minute,
		ClientURL: "http://localhost:3000",
	})
}

func hashOf(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// --- Register ---

func TestRegister_Success(t *testing.T) {
	us := &mockUserStore{}
	ml := &mockMailer{}
	sg := &mockSigner{}

	us.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, domain.ErrNotFound)
	us.On("Put", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "alice@example.com" && u.Role == domain.RoleStudent && !u.IsVerified
	})).Return(nil)
	sg.On("Sign", mock.Anything, "alice@example.com", domain.RoleStudent).Return("tok", nil)
	ml.On("SendEmail", "alice@example.com", mock.Anything, mock.Anything).Return(nil)

	svc := newService(us, nil, ml, sg)
	u, token, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Alice",
		Email:    "  Alice@Example.com ",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEmpty(t, u.UserID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")))
	us.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(&domain.User{UserID: "u1", Email: "alice@example.com"}, nil)

	svc := newService(us, nil, nil, nil)
	_, _, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegister_MailFailureDoesNotFail(t *testing.T) {
	us := &mockUserStore{}
	ml := &mockMailer{}
	sg := &mockSigner{}

	us.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	us.On("Put", mock.Anything, mock.Anything).Return(nil)
	sg.On("Sign", mock.Anything, mock.Anything, mock.Anything).Return("tok", nil)
	ml.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	svc := newService(us, nil, ml, sg)
	_, token, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}

// --- Login ---

func TestLogin_Success(t *testing.T) {
	us := &mockUserStore{}
	sg := &mockSigner{}

	us.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{
		UserID:       "u1",
		Email:        "alice@example.com",
		Role:         domain.RoleStudent,
		PasswordHash: hashOf(t, "secret123"),
	}, nil)
	sg.On("Sign", "u1", "alice@example.com", domain.RoleStudent).Return("tok", nil)

	svc := newService(us, nil, nil, sg)
	u, token, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Equal(t, "u1", u.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{
		UserID:       "u1",
		PasswordHash: hashOf(t, "secret123"),
	}, nil)

	svc := newService(us, nil, nil, nil)
	_, _, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

	svc := newService(us, nil, nil, nil)
	_, _, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	// same error as a wrong password, so the response does not leak
	// which addresses have accounts
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// --- SendOTP / VerifyOTP ---

func TestSendOTP_StoresAndMails(t *testing.T) {
	os := &mockOTPStore{}
	ml := &mockMailer{}

	os.On("Put", mock.Anything, mock.MatchedBy(func(c *domain.OneTimeCode) bool {
		return c.Email == "alice@example.com" &&
			c.Purpose == domain.PurposeVerifyEmail &&
			len(c.Code) == 6 &&
			c.ExpiresAt > time.Now().Unix()
	})).Return(nil)
	ml.On("SendEmail", "alice@example.com", mock.Anything, mock.Anything).Return(nil)

	svc := newService(nil, os, ml, nil)
	err := svc.SendOTP(context.Background(), "Alice@Example.com")

	require.NoError(t, err)
	os.AssertExpectations(t)
	ml.AssertExpectations(t)
}

func TestSendOTP_MailFailureDoesNotFail(t *testing.T) {
	os := &mockOTPStore{}
	ml := &mockMailer{}

	os.On("Put", mock.Anything, mock.Anything).Return(nil)
	ml.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	svc := newService(nil, os, ml, nil)
	err := svc.SendOTP(context.Background(), "alice@example.com")

	// the code is stored either way; delivery is best-effort
	require.NoError(t, err)
	os.AssertExpectations(t)
}

func TestVerifyOTP_Success(t *testing.T) {
	us := &mockUserStore{}
	os := &mockOTPStore{}

	os.On("Get", mock.Anything, "alice@example.com", domain.PurposeVerifyEmail).Return(&domain.OneTimeCode{
		Email:     "alice@example.com",
		Purpose:   domain.PurposeVerifyEmail,
		Code:      "123456",
		ExpiresAt: time.Now().Add(time.Minute).Unix(),
	}, nil)
	us.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(&domain.User{UserID: "u1", Email: "alice@example.com"}, nil)
	us.On("Update", mock.Anything, "u1", map[string]interface{}{"is_verified": true}).Return(nil)
	os.On("Delete", mock.Anything, "alice@example.com", domain.PurposeVerifyEmail).Return(nil)

	svc := newService(us, os, nil, nil)
	err := svc.VerifyOTP(context.Background(), "alice@example.com", "123456")

	require.NoError(t, err)
	us.AssertExpectations(t)
	os.AssertExpectations(t)
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	os := &mockOTPStore{}
	os.On("Get", mock.Anything, "alice@example.com", domain.PurposeVerifyEmail).Return(&domain.OneTimeCode{
		Code:      "123456",
		ExpiresAt: time.Now().Add(time.Minute).Unix(),
	}, nil)

	svc := newService(nil, os, nil, nil)
	err := svc.VerifyOTP(context.Background(), "alice@example.com", "000000")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestVerifyOTP_Expired(t *testing.T) {
	os := &mockOTPStore{}
	os.On("Get", mock.Anything, "alice@example.com", domain.PurposeVerifyEmail).Return(&domain.OneTimeCode{
		Code:      "123456",
		ExpiresAt: time.Now().Add(-time.Minute).Unix(),
	}, nil)

	svc := newService(nil, os, nil, nil)
	err := svc.VerifyOTP(context.Background(), "alice@example.com", "123456")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestVerifyOTP_NoneIssued(t *testing.T) {
	os := &mockOTPStore{}
	os.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

	svc := newService(nil, os, nil, nil)
	err := svc.VerifyOTP(context.Background(), "alice@example.com", "123456")

	// same failure as a wrong code, so the response does not reveal
	// whether a code was ever issued for the address
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

// --- ForgotPassword / ResetPassword ---

func TestForgotPassword_UnknownEmail(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

	svc := newService(us, nil, nil, nil)
	err := svc.ForgotPassword(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestForgotPassword_IssuesResetCode(t *testing.T) {
	us := &mockUserStore{}
	os := &mockOTPStore{}
	ml := &mockMailer{}

	us.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(&domain.User{UserID: "u1", Email: "alice@example.com"}, nil)
	os.On("Put", mock.Anything, mock.MatchedBy(func(c *domain.OneTimeCode) bool {
		return c.Purpose == domain.PurposeResetPassword
	})).Return(nil)
	ml.On("SendEmail", "alice@example.com", mock.Anything, mock.Anything).Return(nil)

	svc := newService(us, os, ml, nil)
	err := svc.ForgotPassword(context.Background(), "alice@example.com")

	require.NoError(t, err)
	os.AssertExpectations(t)
}

func TestForgotPassword_MailFailureDoesNotFail(t *testing.T) {
	us := &mockUserStore{}
	os := &mockOTPStore{}
	ml := &mockMailer{}

	us.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(&domain.User{UserID: "u1", Email: "alice@example.com"}, nil)
	os.On("Put", mock.Anything, mock.Anything).Return(nil)
	ml.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	svc := newService(us, os, ml, nil)
	err := svc.ForgotPassword(context.Background(), "alice@example.com")

	require.NoError(t, err)
	os.AssertExpectations(t)
}

func TestResetPassword_Success(t *testing.T) {
	us := &mockUserStore{}
	os := &mockOTPStore{}

	os.On("Get", mock.Anything, "alice@example.com", domain.PurposeResetPassword).Return(&domain.OneTimeCode{
		Code:      "654321",
		ExpiresAt: time.Now().Add(time.Minute).Unix(),
	}, nil)
	us.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(&domain.User{UserID: "u1"}, nil)
	us.On("Update", mock.Anything, "u1", mock.MatchedBy(func(m map[string]interface{}) bool {
		hash, ok := m["password_hash"].(string)
		return ok && bcrypt.CompareHashAndPassword([]byte(hash), []byte("newpass1")) == nil
	})).Return(nil)
	os.On("Delete", mock.Anything, "alice@example.com", domain.PurposeResetPassword).Return(nil)

	svc := newService(us, os, nil, nil)
	err := svc.ResetPassword(context.Background(), "alice@example.com", "654321", "newpass1")

	require.NoError(t, err)
	us.AssertExpectations(t)
}

func TestResetPassword_VerifyCodeRejected(t *testing.T) {
	// a verify-email code must not reset a password
	os := &mockOTPStore{}
	os.On("Get", mock.Anything, "alice@example.com", domain.PurposeResetPassword).
		Return(nil, domain.ErrNotFound)

	svc := newService(nil, os, nil, nil)
	err := svc.ResetPassword(context.Background(), "alice@example.com", "123456", "newpass1")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// --- profile ---

func TestUpdateProfile_InvalidProgram(t *testing.T) {
	bad := "underwater-basket-weaving"
	svc := newService(&mockUserStore{}, nil, nil, nil)
	_, err := svc.UpdateProfile(context.Background(), "u1", domain.UpdateProfileRequest{
		Program: &bad,
	})

	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestUpdateProfile_Success(t *testing.T) {
	us := &mockUserStore{}
	name := "Alice B"
	us.On("Update", mock.Anything, "u1", map[string]interface{}{"name": "Alice B"}).Return(nil)
	us.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Name: "Alice B"}, nil)

	svc := newService(us, nil, nil, nil)
	u, err := svc.UpdateProfile(context.Background(), "u1", domain.UpdateProfileRequest{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "Alice B", u.Name)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	us := &mockUserStore{}
	us.On("Get", mock.Anything, "u1").Return(&domain.User{
		UserID:       "u1",
		PasswordHash: hashOf(t, "secret123"),
	}, nil)

	svc := newService(us, nil, nil, nil)
	err := svc.ChangePassword(context.Background(), "u1", "wrong", "newpass1")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestChangePassword_Success(t *testing.T) {
	us := &mockUserStore{}
	us.On("Get", mock.Anything, "u1").Return(&domain.User{
		UserID:       "u1",
		PasswordHash: hashOf(t, "secret123"),
	}, nil)
	us.On("Update", mock.Anything, "u1", mock.MatchedBy(func(m map[string]interface{}) bool {
		hash, ok := m["password_hash"].(string)
		return ok && bcrypt.CompareHashAndPassword([]byte(hash), []byte("newpass1")) == nil
	})).Return(nil)

	svc := newService(us, nil, nil, nil)
	err := svc.ChangePassword(context.Background(), "u1", "secret123", "newpass1")

	require.NoError(t, err)
	us.AssertExpectations(t)
}
