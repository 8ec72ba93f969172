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

var resetRowColumns = []string{"id", "token", "user_id", "created_at"}

func TestPasswordResetRepositoryCreate(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.PasswordResets()
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO password_resets").
		WithArgs("tok-1", int64(1), now).
		WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(11)))
	reset, err := repo.Create(context.Background(), model.PasswordReset{Token: "tok-1", UserID: 1, CreatedAt: now})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reset.ID != 11 || reset.Token != "tok-1" {
		t.Fatalf("unexpected reset: %+v", reset)
	}

	mock.ExpectQuery("INSERT INTO password_resets").
		WithArgs("tok-1", int64(1), now).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})
	if _, err := repo.Create(context.Background(), model.PasswordReset{Token: "tok-1", UserID: 1, CreatedAt: now}); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestPasswordResetRepositoryGetByToken(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.PasswordResets()
	now := time.Now().UTC()

	mock.ExpectQuery("FROM password_resets WHERE token=").
		WithArgs("tok-1").
		WillReturnRows(pgxmockv3.NewRows(resetRowColumns).AddRow(int64(11), "tok-1", int64(1), now))
	reset, err := repo.GetByToken(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reset.UserID != 1 || !reset.CreatedAt.Equal(now) {
		t.Fatalf("unexpected reset: %+v", reset)
	}

	mock.ExpectQuery("FROM password_resets WHERE token=").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByToken(context.Background(), "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestPasswordResetRepositoryListCreatedSince(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := storage.PasswordResets()
	now := time.Now().UTC()
	since := now.Add(-model.PasswordResetWindow)

	mock.ExpectQuery("FROM password_resets").
		WithArgs(int64(1), since).
		WillReturnRows(pgxmockv3.NewRows(resetRowColumns).
			AddRow(int64(12), "tok-2", int64(1), now).
			AddRow(int64(11), "tok-1", int64(1), now.Add(-time.Hour)))
	resets, err := repo.ListCreatedSince(context.Background(), 1, since)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resets) != 2 || resets[0].Token != "tok-2" {
		t.Fatalf("unexpected resets: %+v", resets)
	}

	mock.ExpectQuery("FROM password_resets").
		WithArgs(int64(2), since).
		WillReturnError(errors.New("boom"))
	if _, err := repo.ListCreatedSince(context.Background(), 2, since); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}

	failing := &Storage{pool: &rowsErrorPool{rows: &errorRows{err: errors.New("rows")}}}
	if _, err := failing.PasswordResets().ListCreatedSince(context.Background(), 1, since); err == nil {
		t.Fatal("expected rows error")
	}
}
