package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/internship-api/internal/domain"
	"github.com/internship-api/internal/infrastructure/smtp"
	"github.com/internship-api/internal/pkg/id"
	pkgotp "github.com/internship-api/internal/pkg/otp"
	"golang.org/x/crypto/bcrypt"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName         = "name"
	fieldPhone        = "phone"
	fieldProgram      = "program"
	fieldIsVerified   = "is_verified"
	fieldPasswordHash = "password_hash"
)

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, string, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.User, string, error)
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

type userStore interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type otpStore interface {
	Put(ctx context.Context, c *domain.OneTimeCode) error
	Get(ctx context.Context, email, purpose string) (*domain.OneTimeCode, error)
	Delete(ctx context.Context, email, purpose string) error
}

type tokenSigner interface {
	Sign(userID, email, role string) (string, error)
}

type service struct {
	userRepo  userStore
	otpRepo   otpStore
	mailer    smtp.Mailer
	jwt       tokenSigner
	otpTTL    time.Duration
	clientURL string
}

type ServiceDeps struct {
	UserRepo  userStore
	OTPRepo   otpStore
	Mailer    smtp.Mailer
	JWT       tokenSigner
	OTPTTL    time.Duration
	ClientURL string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		userRepo:  deps.UserRepo,
		otpRepo:   deps.OTPRepo,
		mailer:    deps.Mailer,
		jwt:       deps.JWT,
		otpTTL:    deps.OTPTTL,
		clientURL: deps.ClientURL,
	}
}

// normalizeEmail lowercases and trims so the email-index lookup has a single
// canonical form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, string, error) {
	email := normalizeEmail(req.Email)

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}

	if !domain.ValidProgram(req.Program, true) {
		return nil, "", fmt.Errorf("unknown program %q: %w", req.Program, domain.ErrBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Program:      req.Program,
		IsVerified:   false,
		Role:         domain.RoleStudent,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Put(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.jwt.Sign(u.UserID, u.Email, u.Role)
	if err != nil {
		return nil, "", err
	}

	// Welcome email is best-effort; registration already succeeded.
	subject, body := smtp.WelcomeEmail(u.Name, s.clientURL)
	if err := s.mailer.SendEmail(u.Email, subject, body); err != nil {
		slog.Warn("failed to send welcome email", "email", u.Email, "err", err)
	}

	return u, token, nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*domain.User, string, error) {
	u, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		// same error for unknown email and wrong password
		return nil, "", domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.jwt.Sign(u.UserID, u.Email, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// SendOTP issues an email-verification code. It does not reveal whether an
// account exists for the address.
func (s *service) SendOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	code, err := pkgotp.NewCode()
	if err != nil {
		return err
	}
	otc := &domain.OneTimeCode{
		Email:     email,
		Purpose:   domain.PurposeVerifyEmail,
		Code:      code,
		ExpiresAt: time.Now().Add(s.otpTTL).Unix(),
	}
	if err := s.otpRepo.Put(ctx, otc); err != nil {
		return err
	}

	// The code is issued once stored; delivery is best-effort.
	subject, body := smtp.OTPEmail(code, int(s.otpTTL.Minutes()))
	if err := s.mailer.SendEmail(email, subject, body); err != nil {
		slog.Warn("failed to send verification code email", "email", email, "err", err)
	}
	return nil
}

func (s *service) VerifyOTP(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)

	// one message for missing, wrong and expired codes; the response must
	// not reveal whether a code was ever issued
	otc, err := s.otpRepo.Get(ctx, email, domain.PurposeVerifyEmail)
	if err != nil || otc.Code != code || otc.ExpiresAt < time.Now().Unix() {
		return fmt.Errorf("invalid or expired code: %w", domain.ErrInvalidCredentials)
	}

	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	if err := s.userRepo.Update(ctx, u.UserID, map[string]interface{}{fieldIsVerified: true}); err != nil {
		return err
	}

	if err := s.otpRepo.Delete(ctx, email, domain.PurposeVerifyEmail); err != nil {
		slog.Warn("failed to delete consumed code", "email", email, "err", err)
	}
	return nil
}

// ForgotPassword requires an existing account, unlike SendOTP.
func (s *service) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	if _, err := s.userRepo.GetByEmail(ctx, email); err != nil {
		return fmt.Errorf("no account for this email: %w", domain.ErrNotFound)
	}

	code, err := pkgotp.NewCode()
	if err != nil {
		return err
	}
	otc := &domain.OneTimeCode{
		Email:     email,
		Purpose:   domain.PurposeResetPassword,
		Code:      code,
		ExpiresAt: time.Now().Add(s.otpTTL).Unix(),
	}
	if err := s.otpRepo.Put(ctx, otc); err != nil {
		return err
	}

	subject, body := smtp.PasswordResetEmail(code, int(s.otpTTL.Minutes()))
	if err := s.mailer.SendEmail(email, subject, body); err != nil {
		slog.Warn("failed to send reset code email", "email", email, "err", err)
	}
	return nil
}

func (s *service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = normalizeEmail(email)

	otc, err := s.otpRepo.Get(ctx, email, domain.PurposeResetPassword)
	if err != nil || otc.Code != code || otc.ExpiresAt < time.Now().Unix() {
		return fmt.Errorf("invalid or expired code: %w", domain.ErrInvalidCredentials)
	}

	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, u.UserID, map[string]interface{}{fieldPasswordHash: string(hash)}); err != nil {
		return err
	}

	if err := s.otpRepo.Delete(ctx, email, domain.PurposeResetPassword); err != nil {
		slog.Warn("failed to delete consumed code", "email", email, "err", err)
	}
	return nil
}

func (s *service) UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		updates[fieldPhone] = *req.Phone
	}
	if req.Program != nil {
		if !domain.ValidProgram(*req.Program, true) {
			return nil, fmt.Errorf("unknown program %q: %w", *req.Program, domain.ErrBadRequest)
		}
		updates[fieldProgram] = *req.Program
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}
	if err := s.userRepo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.userRepo.Get(ctx, userID)
}

func (s *service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	u, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect: %w", domain.ErrInvalidCredentials)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.Update(ctx, userID, map[string]interface{}{fieldPasswordHash: string(hash)})
}
