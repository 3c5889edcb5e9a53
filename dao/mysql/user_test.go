package mysql

import (
	"testing"

	beacon "github.com/urdekcah/beacon/errors"
	"github.com/urdekcah/beacon/models"

	"github.com/pkg/errors"
)

func TestUserRepoInsertAndSelect(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)

	seedUser(t, db, 101, "alice")

	usr, err := repo.SelectByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("SelectByEmail: %v", err)
	}
	if usr.UserID != 101 || usr.UserName != "alice" {
		t.Fatalf("unexpected user: %+v", usr)
	}

	if _, err := repo.SelectByUserID(101); err != nil {
		t.Fatalf("SelectByUserID: %v", err)
	}
	if _, err := repo.SelectByName("alice"); err != nil {
		t.Fatalf("SelectByName: %v", err)
	}

	if _, err := repo.SelectByEmail("nobody@example.com"); !errors.Is(err, beacon.ErrUserNotExist) {
		t.Fatalf("expected ErrUserNotExist, got %v", err)
	}
}

func TestUserRepoDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)

	seedUser(t, db, 101, "alice")

	dup := &models.User{
		UserID:   102,
		UserName: "alice",
		Email:    "alice2@example.com",
		Password: "x",
		Nickname: "alice2",
	}
	if err := repo.Insert(dup); !errors.Is(err, beacon.ErrUserExist) {
		t.Fatalf("expected ErrUserExist, got %v", err)
	}
}

func TestUserRepoDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)

	seedUser(t, db, 101, "alice")

	dup := &models.User{
		UserID:   102,
		UserName: "alice_two",
		Email:    "alice@example.com",
		Password: "x",
		Nickname: "alice2",
	}
	if err := repo.Insert(dup); !errors.Is(err, beacon.ErrEmailExist) {
		t.Fatalf("expected ErrEmailExist, got %v", err)
	}
}
