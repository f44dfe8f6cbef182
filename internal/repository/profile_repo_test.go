package repository_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"reflect"
	"regexp"
	"testing"
	"time"

	"mindful_companion/internal/models"
	"mindful_companion/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

type sqlmockArgumentFunc func(v driver.Value) bool

func (f sqlmockArgumentFunc) Match(v driver.Value) bool {
	return f(v)
}

var profileColumns = []string{"id", "username", "is_anonymous", "display_name", "updated_at"}

func TestProfileSQLite_Save_SetsUTCWhenTimeZero(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	repo := repository.NewProfileSQLite(db)

	isUTCRecent := sqlmockArgumentFunc(func(v driver.Value) bool {
		tm, ok := v.(time.Time)
		if !ok || tm.Location() != time.UTC {
			return false
		}
		now := time.Now().UTC()
		return !tm.Before(now.Add(-5*time.Second)) && !tm.After(now.Add(5*time.Second))
	})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO profiles")).
		WithArgs(5, "Sunny", isUTCRecent).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(context.Background(), 5, "Sunny", time.Time{}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProfileSQLite_Save_ConvertsToUTCAndPropagatesError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	repo := repository.NewProfileSQLite(db)

	locTokyo := time.FixedZone("JST", 9*3600)
	original := time.Date(2023, 10, 5, 12, 34, 56, 0, locTokyo)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO profiles")).
		WithArgs(5, "Sunny", original.UTC()).
		WillReturnError(errors.New("db down"))

	if err := repo.Save(context.Background(), 5, "Sunny", original); err == nil {
		t.Fatalf("Save() expected error, got nil")
	}
}

func TestProfileSQLite_Load_NoRowsReturnsZeroValue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	repo := repository.NewProfileSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT u.id, u.username, u.is_anonymous, p.display_name, p.updated_at")).
		WithArgs(5).
		WillReturnError(sql.ErrNoRows)

	got, err := repo.Load(context.Background(), 5)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, models.Profile{}) {
		t.Fatalf("Load() expected zero profile, got: %+v", got)
	}
}

func TestProfileSQLite_Load_UserWithoutProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	repo := repository.NewProfileSQLite(db)

	rows := sqlmock.NewRows(profileColumns).AddRow(5, "anon-abc", true, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT u.id, u.username")).
		WithArgs(5).
		WillReturnRows(rows)

	got, err := repo.Load(context.Background(), 5)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if got.UserID != 5 || got.Login != "anon-abc" || !got.IsAnonymous || got.DisplayName != "" || !got.UpdatedAt.IsZero() {
		t.Fatalf("Load() unexpected profile: %+v", got)
	}
}

func TestProfileSQLite_Load_HappyPath(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	repo := repository.NewProfileSQLite(db)

	locNY := time.FixedZone("EST", -5*3600)
	updated := time.Date(2024, 2, 1, 8, 30, 0, 0, locNY)
	rows := sqlmock.NewRows(profileColumns).AddRow(5, "kim@example.com", false, "Kim", updated)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT u.id, u.username")).
		WithArgs(5).
		WillReturnRows(rows)

	got, err := repo.Load(context.Background(), 5)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if got.DisplayName != "Kim" || got.Login != "kim@example.com" || got.IsAnonymous {
		t.Fatalf("Load() unexpected profile: %+v", got)
	}
	if got.UpdatedAt.Location() != time.UTC || !got.UpdatedAt.Equal(updated) {
		t.Fatalf("Load() UpdatedAt not UTC: %v", got.UpdatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
