package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stridehq/stride-engine/internal/core/domain"
)

func newStoredUser(t *testing.T, repo *PostgresUserRepository, email string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(uuid.NewString(), email, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to build domain user: %v", err)
	}
	_ = user.SetPassword("passwordStrong123")

	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Failed to persist user fixture: %v", err)
	}
	return user
}

func TestPostgresUserRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewPostgresUserRepository(db)
	ctx := context.Background()

	t.Run("Should create a user successfully", func(t *testing.T) {
		// UUID-based emails avoid collisions across runs.
		email := fmt.Sprintf("test_%s@example.com", uuid.NewString())
		user := newStoredUser(t, repo, email)

		savedUser, err := repo.GetByEmail(ctx, user.Email)
		if err != nil {
			t.Fatalf("Could not retrieve saved user: %v", err)
		}

		if savedUser.ID != user.ID {
			t.Errorf("Expected ID %s, got %s", user.ID, savedUser.ID)
		}
		if savedUser.CreatedAt.IsZero() || savedUser.UpdatedAt.IsZero() {
			t.Error("Timestamps should not be zero")
		}
	})

	t.Run("Should fail on duplicate email", func(t *testing.T) {
		email := fmt.Sprintf("duplicate_%s@example.com", uuid.NewString())
		_ = newStoredUser(t, repo, email)

		dupe, _ := domain.NewUser(uuid.NewString(), email, time.Now().UTC())
		_ = dupe.SetPassword("passwordStrong456")

		err := repo.Create(ctx, dupe)

		if err != domain.ErrEmailAlreadyExists {
			t.Errorf("Expected ErrEmailAlreadyExists, got %v", err)
		}
	})
}

func TestPostgresUserRepository_GetByID(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewPostgresUserRepository(db)
	ctx := context.Background()

	t.Run("Should retrieve existing user by ID", func(t *testing.T) {
		email := fmt.Sprintf("id_test_%s@example.com", uuid.NewString())
		user := newStoredUser(t, repo, email)

		foundUser, err := repo.GetByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if foundUser.Email != user.Email {
			t.Errorf("Expected email %s, got %s", user.Email, foundUser.Email)
		}
	})

	t.Run("Should return ErrUserNotFound for non-existent ID", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.NewString())

		if err != domain.ErrUserNotFound {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestPostgresUserRepository_GetByEmail(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewPostgresUserRepository(db)
	ctx := context.Background()

	t.Run("Should retrieve existing user by Email", func(t *testing.T) {
		email := fmt.Sprintf("email_test_%s@example.com", uuid.NewString())
		user := newStoredUser(t, repo, email)

		foundUser, err := repo.GetByEmail(ctx, email)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if foundUser.ID != user.ID {
			t.Errorf("Expected ID %s, got %s", user.ID, foundUser.ID)
		}
	})

	t.Run("Should return ErrUserNotFound for non-existent email", func(t *testing.T) {
		_, err := repo.GetByEmail(ctx, "nonexistent@ghost.com")

		if err != domain.ErrUserNotFound {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})
}
