package service

import (
	"context"
	"fmt"
	"testing"

	"app/internal/model"
	"app/internal/repository"

	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, u *model.User) error {
	if _, ok := f.users[u.ID]; ok {
		return fmt.Errorf("failed to create user profile: %w", repository.ErrConflict)
	}
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func TestUserGetOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("first access creates a minimal profile", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewUserService(repo)

		u, err := svc.GetOrCreate(ctx, "user-1", "driver@example.com")
		require.NoError(t, err)
		require.Equal(t, "user-1", u.ID)
		require.Equal(t, "driver@example.com", u.Email)
		require.Nil(t, u.DisplayName)
		require.Len(t, repo.users, 1)
	})

	t.Run("second access returns the stored profile", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewUserService(repo)

		display := "Taro"
		repo.users["user-1"] = &model.User{ID: "user-1", Email: "driver@example.com", DisplayName: &display}

		u, err := svc.GetOrCreate(ctx, "user-1", "driver@example.com")
		require.NoError(t, err)
		require.NotNil(t, u.DisplayName)
		require.Equal(t, "Taro", *u.DisplayName)
	})
}

func TestUserCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the full profile", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewUserService(repo)

		company := "Hikari Logistics"
		u, err := svc.Create(ctx, &model.User{ID: "user-1", Email: "driver@example.com", CompanyName: &company})
		require.NoError(t, err)
		require.Equal(t, "Hikari Logistics", *u.CompanyName)
	})

	t.Run("duplicate create is ErrUserConflict", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewUserService(repo)

		_, err := svc.Create(ctx, &model.User{ID: "user-1", Email: "driver@example.com"})
		require.NoError(t, err)
		_, err = svc.Create(ctx, &model.User{ID: "user-1", Email: "driver@example.com"})
		require.ErrorIs(t, err, ErrUserConflict)
	})
}
