package kv

import (
	"context"

	"github.com/driveway/rental-system/internal/core/domain"
	"github.com/driveway/rental-system/internal/core/ports"
)

var _ ports.UserRepository = (*UserRepository)(nil)

// UserRepository stores users under KeyUsers.
type UserRepository struct {
	users collection[domain.User]
}

func NewUserRepository(a *Adapter) *UserRepository {
	return &UserRepository{users: collection[domain.User]{
		adapter: a,
		name:    KeyUsers,
		seed:    func() ([]domain.User, error) { return decodeSeed[domain.User](a.fixture.users) },
	}}
}

// FindByEmail matches the email exactly (case-sensitive).
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := r.users.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	users, err := r.users.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.users.mutate(ctx, func(users []domain.User) ([]domain.User, error) {
		for _, u := range users {
			if u.Email == user.Email {
				return nil, domain.ErrDuplicateEmail
			}
		}
		return append(users, *user), nil
	})
}
