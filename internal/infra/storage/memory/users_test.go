package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	domainuser "poolbnb/internal/domain/user"
)

func newUser(t *testing.T, id, email string) *domainuser.User {
	t.Helper()
	u, err := domainuser.New(domainuser.CreateParams{
		ID:           domainuser.ID(id),
		FullName:     "Dana Rivers",
		Email:        email,
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	})
	if err != nil {
		t.Fatalf("user: %v", err)
	}
	return u
}

func TestUserRepository_EmailUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	if err := repo.Save(ctx, newUser(t, "u1", "dana@example.com")); err != nil {
		t.Fatalf("save: %v", err)
	}

	t.Run("same email different user", func(t *testing.T) {
		err := repo.Save(ctx, newUser(t, "u2", "Dana@Example.com"))
		if !errors.Is(err, domainuser.ErrEmailAlreadyUsed) {
			t.Errorf("expected ErrEmailAlreadyUsed, got %v", err)
		}
	})

	t.Run("resaving the same user", func(t *testing.T) {
		if err := repo.Save(ctx, newUser(t, "u1", "dana@example.com")); err != nil {
			t.Errorf("resave: %v", err)
		}
	})

	t.Run("changing email frees the old one", func(t *testing.T) {
		if err := repo.Save(ctx, newUser(t, "u1", "dana.new@example.com")); err != nil {
			t.Fatalf("save with new email: %v", err)
		}
		if err := repo.Save(ctx, newUser(t, "u2", "dana@example.com")); err != nil {
			t.Errorf("expected freed email to be reusable: %v", err)
		}
	})
}

func TestUserRepository_ByEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	if err := repo.Save(ctx, newUser(t, "u1", "dana@example.com")); err != nil {
		t.Fatalf("save: %v", err)
	}

	u, err := repo.ByEmail(ctx, "DANA@EXAMPLE.COM")
	if err != nil {
		t.Fatalf("ByEmail: %v", err)
	}
	if u.ID != "u1" {
		t.Errorf("id = %q", u.ID)
	}
	if _, err := repo.ByEmail(ctx, "nobody@example.com"); !errors.Is(err, domainuser.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
