package logic

import (
	"testing"

	beacon "github.com/urdekcah/beacon/errors"
	"github.com/urdekcah/beacon/models"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

func TestSignupCreatesUserAndSession(t *testing.T) {
	env := newTestEnv(t)

	usr, cookie, err := env.users.Signup(&models.ParamSignup{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
		Birthdate:       "1990-05-01",
		Nickname:        "Alice",
		Bio:             "hello",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if cookie == "" {
		t.Fatal("expected a session cookie")
	}

	// 密码落库是 bcrypt 哈希
	stored, err := env.userRepo.SelectByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("SelectByEmail: %v", err)
	}
	if stored.Password == "password123" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	sess, err := env.sessions.Get(cookie)
	if err != nil {
		t.Fatalf("session Get: %v", err)
	}
	if sess.UserID != usr.UserID || sess.UserName != "alice" {
		t.Fatalf("unexpected session: %+v", sess)
	}
}

func TestSignupConflicts(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice")

	_, _, err := env.users.Signup(&models.ParamSignup{
		Username:        "alice",
		Email:           "other@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
		Birthdate:       "1990-05-01",
		Nickname:        "Other",
	})
	if !errors.Is(err, beacon.ErrUserExist) {
		t.Fatalf("expected ErrUserExist, got %v", err)
	}

	_, _, err = env.users.Signup(&models.ParamSignup{
		Username:        "alice2",
		Email:           "alice@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
		Birthdate:       "1990-05-01",
		Nickname:        "Other",
	})
	if !errors.Is(err, beacon.ErrEmailExist) {
		t.Fatalf("expected ErrEmailExist, got %v", err)
	}
}

func TestSignin(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice")

	// 用户不存在和密码错误对外是同一个错误
	_, _, err := env.users.Signin(&models.ParamSignin{Email: "nobody@example.com", Password: "password123"})
	if !errors.Is(err, beacon.ErrWrongPassword) {
		t.Fatalf("unknown email: expected ErrWrongPassword, got %v", err)
	}

	_, _, err = env.users.Signin(&models.ParamSignin{Email: "alice@example.com", Password: "wrongwrong"})
	if !errors.Is(err, beacon.ErrWrongPassword) {
		t.Fatalf("wrong password: expected ErrWrongPassword, got %v", err)
	}

	usr, cookie, err := env.users.Signin(&models.ParamSignin{Email: "alice@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Signin: %v", err)
	}
	if usr.UserName != "alice" || cookie == "" {
		t.Fatalf("unexpected signin result: %+v, %q", usr, cookie)
	}
}

func TestSignoutIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "alice")

	_, cookie, err := env.users.Signin(&models.ParamSignin{Email: "alice@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Signin: %v", err)
	}

	if err := env.users.Signout(cookie); err != nil {
		t.Fatalf("Signout: %v", err)
	}
	// 会话已经没了也视为成功
	if err := env.users.Signout(cookie); err != nil {
		t.Fatalf("second Signout: %v", err)
	}
	if _, err := env.sessions.Get(cookie); !errors.Is(err, beacon.ErrNoSuchSession) {
		t.Fatalf("session should be destroyed, got %v", err)
	}
}
