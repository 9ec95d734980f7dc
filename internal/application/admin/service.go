package admin

import (
	"context"
	"fmt"
	"sort"

	"github.com/internship-api/internal/domain"
)

// Stats is the aggregate snapshot shown on the admin dashboard.
type Stats struct {
	TotalUsers            int            `json:"total_users"`
	VerifiedUsers         int            `json:"verified_users"`
	TotalApplications     int            `json:"total_applications"`
	ApplicationsByStatus  map[string]int `json:"applications_by_status"`
	ApplicationsByProgram map[string]int `json:"applications_by_program"`
}

type Service interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	Stats(ctx context.Context) (*Stats, error)
	VerifyUser(ctx context.Context, userID string) (*domain.User, error)
	MakeAdmin(ctx context.Context, userID string) (*domain.User, error)
	DeleteUser(ctx context.Context, actingAdminID, userID string) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	ScanAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	HardDelete(ctx context.Context, userID string) error
}

type applicationStore interface {
	ScanAll(ctx context.Context) ([]domain.Application, error)
	DeleteByUser(ctx context.Context, userID string) error
}

type service struct {
	userRepo userStore
	appRepo  applicationStore
}

type ServiceDeps struct {
	UserRepo userStore
	AppRepo  applicationStore
}

func NewService(deps ServiceDeps) Service {
	return &service{userRepo: deps.UserRepo, appRepo: deps.AppRepo}
}

func (s *service) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.ScanAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	users, err := s.userRepo.ScanAll(ctx)
	if err != nil {
		return nil, err
	}
	apps, err := s.appRepo.ScanAll(ctx)
	if err != nil {
		return nil, err
	}

	st := &Stats{
		TotalUsers:           len(users),
		TotalApplications:    len(apps),
		ApplicationsByStatus:  map[string]int{},
		ApplicationsByProgram: map[string]int{},
	}
	for _, u := range users {
		if u.IsVerified {
			st.VerifiedUsers++
		}
	}
	for _, a := range apps {
		st.ApplicationsByStatus[a.Status]++
		st.ApplicationsByProgram[a.Program]++
	}
	return st, nil
}

func (s *service) VerifyUser(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, userID, map[string]interface{}{"is_verified": true}); err != nil {
		return nil, err
	}
	u.IsVerified = true
	return u, nil
}

func (s *service) MakeAdmin(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, userID, map[string]interface{}{"role": domain.RoleAdmin}); err != nil {
		return nil, err
	}
	u.Role = domain.RoleAdmin
	return u, nil
}

// DeleteUser removes the user and cascades to their applications. An admin
// cannot delete their own account.
func (s *service) DeleteUser(ctx context.Context, actingAdminID, userID string) error {
	if actingAdminID == userID {
		return fmt.Errorf("cannot delete your own account: %w", domain.ErrBadRequest)
	}
	if _, err := s.userRepo.Get(ctx, userID); err != nil {
		return err
	}
	if err := s.appRepo.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.HardDelete(ctx, userID)
}
