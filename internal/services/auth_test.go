package services

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/skillpath-backend/internal/repos"
	"github.com/yungbote/skillpath-backend/internal/requestdata"
	"github.com/yungbote/skillpath-backend/internal/types"
)

func newAuthFixture(t *testing.T) (AuthService, context.Context) {
	t.Helper()
	gdb := newTestDB(t)
	log := newTestLogger(t)
	svc := NewAuthService(gdb, log,
		repos.NewUserRepo(gdb, log),
		repos.NewUserTokenRepo(gdb, log),
		"test-secret", 15*time.Minute, 24*time.Hour)
	return svc, context.Background()
}

func registeredUser(t *testing.T, ctx context.Context, svc AuthService) *types.User {
	t.Helper()
	user := &types.User{
		Email:     "Dev@Example.com",
		Password:  "hunter22",
		FirstName: "Dev",
		LastName:  "One",
	}
	if err := svc.RegisterUser(ctx, user); err != nil {
		t.Fatalf("register: %v", err)
	}
	return user
}

func TestRegisterHashesPasswordAndNormalizesEmail(t *testing.T) {
	svc, ctx := newAuthFixture(t)
	user := registeredUser(t, ctx, svc)

	if user.Email != "dev@example.com" {
		t.Fatalf("email not normalized: got=%q", user.Email)
	}
	if user.Password == "hunter22" {
		t.Fatal("password stored in plain text")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, ctx := newAuthFixture(t)
	registeredUser(t, ctx, svc)

	dup := &types.User{Email: "dev@example.com", Password: "hunter22", FirstName: "Dev", LastName: "Two"}
	if err := svc.RegisterUser(ctx, dup); err == nil {
		t.Fatal("duplicate email must be rejected")
	}
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, ctx := newAuthFixture(t)
	user := registeredUser(t, ctx, svc)

	access, refresh, err := svc.LoginUser(ctx, "dev@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("empty token pair")
	}

	authed, err := svc.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	rd := requestdata.GetRequestData(authed)
	if rd == nil || rd.UserID != user.ID {
		t.Fatalf("token subject: want=%s got=%+v", user.ID, rd)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, ctx := newAuthFixture(t)
	registeredUser(t, ctx, svc)

	if _, _, err := svc.LoginUser(ctx, "dev@example.com", "wrong"); err == nil {
		t.Fatal("wrong password must be rejected")
	}
	if _, _, err := svc.LoginUser(ctx, "nobody@example.com", "hunter22"); err == nil {
		t.Fatal("unknown email must be rejected")
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, ctx := newAuthFixture(t)
	registeredUser(t, ctx, svc)

	access, refresh, err := svc.LoginUser(ctx, "dev@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// Refreshing right after login lands in the same second as the
	// original issuance; the jti claim must still make the new access
	// token distinct.
	access2, refresh2, err := svc.RefreshUser(ctx, refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if access2 == "" || refresh2 == "" || refresh2 == refresh {
		t.Fatal("refresh must rotate the token pair")
	}
	if access2 == access {
		t.Fatal("refreshed access token must differ from the original")
	}
	// The old refresh token is single use.
	if _, _, err := svc.RefreshUser(ctx, refresh); err == nil {
		t.Fatal("consumed refresh token must be rejected")
	}
}

func TestLogoutRevokesAccessToken(t *testing.T) {
	svc, ctx := newAuthFixture(t)
	registeredUser(t, ctx, svc)

	access, refresh, err := svc.LoginUser(ctx, "dev@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	authed, err := svc.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("set context: %v", err)
	}
	if err := svc.LogoutUser(authed); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, _, err := svc.RefreshUser(ctx, refresh); err == nil {
		t.Fatal("refresh token must be revoked by logout")
	}
}

func TestSetContextFromTokenRejectsBadToken(t *testing.T) {
	svc, ctx := newAuthFixture(t)
	if _, err := svc.SetContextFromToken(ctx, ""); err == nil {
		t.Fatal("empty token must be rejected")
	}
	if _, err := svc.SetContextFromToken(ctx, "not-a-jwt"); err == nil {
		t.Fatal("malformed token must be rejected")
	}
}
