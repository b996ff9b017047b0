package admin_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JuzzThyne/ERI-backend/admin"
	"github.com/JuzzThyne/ERI-backend/models"
	"github.com/JuzzThyne/ERI-backend/storage/memory"
	"github.com/JuzzThyne/ERI-backend/utils"
)

func newService(t *testing.T) (*admin.Service, *utils.TokenManager) {
	t.Helper()
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	return admin.NewService(memory.New(), tokens), tokens
}

var eve = models.AdminRegister{AdminName: "Eve", Username: "eve", Password: "s3cret", AdminType: "super"}

func TestRegisterHashesPassword(t *testing.T) {
	svc, _ := newService(t)
	a, err := svc.Register(context.Background(), eve)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if a.ID == "" || a.PasswordHash == "" || a.PasswordHash == eve.Password {
		t.Fatalf("unexpected admin %+v", a)
	}
	if !utils.CheckPassword(a.PasswordHash, eve.Password) {
		t.Fatalf("stored hash does not match the password")
	}
}

func TestRegisterRejects(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, eve); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, eve); !errors.Is(err, admin.ErrUsernameTaken) {
		t.Fatalf("expected taken, got %v", err)
	}
	missing := eve
	missing.Username = "other"
	missing.AdminType = " "
	if _, err := svc.Register(ctx, missing); !errors.Is(err, admin.ErrMissingFields) {
		t.Fatalf("expected missing fields, got %v", err)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	svc, tokens := newService(t)
	ctx := context.Background()
	a, _ := svc.Register(ctx, eve)

	token, err := svc.Login(ctx, models.AdminLogin{Username: "eve", Password: "s3cret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := tokens.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.AdminID != a.ID {
		t.Fatalf("token carries %q, want %q", claims.AdminID, a.ID)
	}

	p, err := svc.Profile(ctx, claims.AdminID)
	if err != nil || p.AdminName != "Eve" {
		t.Fatalf("profile: %v %+v", err, p)
	}
}

func TestLoginFailures(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	svc.Register(ctx, eve)

	cases := []struct {
		in   models.AdminLogin
		want error
	}{
		{models.AdminLogin{Username: "eve", Password: "wrong"}, admin.ErrInvalidCredentials},
		{models.AdminLogin{Username: "nobody", Password: "s3cret"}, admin.ErrInvalidCredentials},
		{models.AdminLogin{Username: "eve"}, admin.ErrMissingFields},
	}
	for _, tc := range cases {
		if _, err := svc.Login(ctx, tc.in); !errors.Is(err, tc.want) {
			t.Fatalf("login %+v: got %v, want %v", tc.in, err, tc.want)
		}
	}
}

func TestProfileMissing(t *testing.T) {
	svc, _ := newService(t)
	if _, err := svc.Profile(context.Background(), "nope"); !errors.Is(err, admin.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
