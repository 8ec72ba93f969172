package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

var userRowColumns = []string{"id", "email", "first_name", "last_name", "password_hash", "created_at", "updated_at"}

func TestUserRepositoryCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.Users()
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("ada@example.com", "Ada", "Lovelace", "hash").
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	user, err := repo.Create(context.Background(), model.User{Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 7 || !user.CreatedAt.Equal(now) {
		t.Fatalf("unexpected user: %+v", user)
	}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("ada@example.com", "", "", "hash").
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})
	if _, err := repo.Create(context.Background(), model.User{Email: "ada@example.com", PasswordHash: "hash"}); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("bob@example.com", "", "", "hash").
		WillReturnError(errors.New("db down"))
	if _, err := repo.Create(context.Background(), model.User{Email: "bob@example.com", PasswordHash: "hash"}); err == nil || errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected raw error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestUserRepositoryLookups(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.Users()
	now := time.Now().UTC()

	mock.ExpectQuery("FROM users WHERE email=").
		WithArgs("ada@example.com").
		WillReturnRows(pgxmockv3.NewRows(userRowColumns).AddRow(int64(1), "ada@example.com", "Ada", "Lovelace", "hash", now, now))
	user, err := repo.GetByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 1 || user.FirstName != "Ada" || user.PasswordHash != "hash" {
		t.Fatalf("unexpected user: %+v", user)
	}

	mock.ExpectQuery("FROM users WHERE id=").
		WithArgs(int64(1)).
		WillReturnRows(pgxmockv3.NewRows(userRowColumns).AddRow(int64(1), "ada@example.com", "Ada", "Lovelace", "hash", now, now))
	if _, err := repo.GetByID(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectQuery("FROM users WHERE id=").
		WithArgs(int64(2)).
		WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), 2); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM users WHERE email=").
		WithArgs("x@example.com").
		WillReturnError(errors.New("timeout"))
	if _, err := repo.GetByEmail(context.Background(), "x@example.com"); err == nil || errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected raw error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestUserRepositoryUpdatePassword(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.Users()

	mock.ExpectExec("UPDATE users SET password_hash").
		WithArgs("new-hash", int64(1)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.UpdatePassword(context.Background(), 1, "new-hash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE users SET password_hash").
		WithArgs("new-hash", int64(9)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.UpdatePassword(context.Background(), 9, "new-hash"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec("UPDATE users SET password_hash").
		WithArgs("new-hash", int64(1)).
		WillReturnError(errors.New("boom"))
	if err := repo.UpdatePassword(context.Background(), 1, "new-hash"); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
