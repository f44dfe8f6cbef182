package repository

import (
	"errors"
	"path/filepath"
	"testing"

	"mindful_companion/internal/repository/db"
)

func TestUserRepository_DuplicateUsernameOnSQLite(t *testing.T) {
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer conn.Close()
	repo := NewUserRepository(conn)

	if _, err := repo.Create("taken", "hash"); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := repo.Create("taken", "other"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("second Create: expected ErrUsernameTaken, got %v", err)
	}

	guestID, err := repo.CreateAnonymous("anon-1")
	if err != nil {
		t.Fatalf("CreateAnonymous: %v", err)
	}
	if err := repo.LinkCredentials(guestID, "taken", "hash"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("LinkCredentials: expected ErrUsernameTaken, got %v", err)
	}

	u, err := repo.GetByID(guestID)
	if err != nil || u == nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !u.IsAnonymous || u.Username != "anon-1" {
		t.Fatalf("guest must be untouched after failed link: %+v", u)
	}
}
