package repository

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"mindful_companion/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

type argFunc func(v driver.Value) bool

func (f argFunc) Match(v driver.Value) bool { return f(v) }

func isUTCTime(v driver.Value) bool {
	tm, ok := v.(time.Time)
	return ok && tm.Location() == time.UTC && !tm.IsZero()
}

func TestCheckInSQLite_Create_FillsIDAndTimestamp(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()
	repo := NewCheckInSQLite(db)

	nonEmpty := argFunc(func(v driver.Value) bool {
		s, ok := v.(string)
		return ok && s != ""
	})

	mock.ExpectExec(regexp.QuoteMeta(insertCheckInSQL)).
		WithArgs(nonEmpty, 3, "happy", "slept well", argFunc(isUTCTime)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(ctx(t), models.CheckIn{UserID: 3, Mood: "happy", Notes: "slept well"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestCheckInSQLite_Create_KeepsGivenValues(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()
	repo := NewCheckInSQLite(db)

	loc := time.FixedZone("UTC+2", 2*3600)
	at := time.Date(2025, 5, 5, 8, 0, 0, 0, loc)

	mock.ExpectExec(regexp.QuoteMeta(insertCheckInSQL)).
		WithArgs("c-1", 3, "sad", "", at.UTC()).
		WillReturnError(errors.New("disk full"))

	err = repo.Create(ctx(t), models.CheckIn{ID: "c-1", UserID: 3, Mood: "sad", CreatedAt: at})
	if err == nil || !strings.Contains(err.Error(), "insert check-in") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestCheckInSQLite_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()
	repo := NewCheckInSQLite(db)

	newer := time.Date(2025, 5, 6, 8, 0, 0, 0, time.UTC)
	older := newer.Add(-24 * time.Hour)
	rows := sqlmock.NewRows([]string{"id", "user_id", "mood", "notes", "created_at"}).
		AddRow("b", 3, "neutral", "", newer).
		AddRow("a", 3, "happy", "sunny", older)

	mock.ExpectQuery(regexp.QuoteMeta(selectCheckInsSQL)).
		WithArgs(3).
		WillReturnRows(rows)

	got, err := repo.ListByUser(ctx(t), 3)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b" || got[1].Notes != "sunny" {
		t.Fatalf("unexpected check-ins: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestCheckInSQLite_ListByUser_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()
	repo := NewCheckInSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectCheckInsSQL)).
		WithArgs(3).
		WillReturnError(errors.New("locked"))

	if _, err := repo.ListByUser(ctx(t), 3); err == nil || !strings.Contains(err.Error(), "select check-ins") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
