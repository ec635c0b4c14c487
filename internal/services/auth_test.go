package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wayfarer-travel/wayfarer-backend/internal/apperr"
	"github.com/wayfarer-travel/wayfarer-backend/internal/requestdata"
	"github.com/wayfarer-travel/wayfarer-backend/internal/types"
)

func testRegisterInput(email string) RegisterInput {
	return RegisterInput{
		FirstName: "Ada",
		LastName:  "Wanderer",
		Email:     email,
		Password:  "hunter22",
	}
}

func TestRegister_CreatesActiveUserWithUserRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.auth.Register(ctx, testRegisterInput("ada@example.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != types.RoleUser {
		t.Fatalf("role=%q, want USER", user.Role)
	}
	if !user.IsActive {
		t.Fatalf("expected new user to be active")
	}
	if user.Password == "hunter22" {
		t.Fatalf("password stored in plaintext")
	}
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.auth.Register(ctx, testRegisterInput("ada@example.com")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := env.auth.Register(ctx, testRegisterInput("ada@example.com")); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("duplicate email: got %v, want conflict", err)
	}
}

func TestRegister_RequiresFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"missing email", func(in *RegisterInput) { in.Email = "" }},
		{"missing password", func(in *RegisterInput) { in.Password = "" }},
		{"missing first name", func(in *RegisterInput) { in.FirstName = "" }},
		{"missing last name", func(in *RegisterInput) { in.LastName = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := testRegisterInput("ada@example.com")
			tt.mutate(&in)
			if _, err := env.auth.Register(ctx, in); !errors.Is(err, apperr.ErrInvalid) {
				t.Fatalf("got %v, want invalid", err)
			}
		})
	}
}

func TestLogin_IssuesTokenThatStampsIdentity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registered, err := env.auth.Register(ctx, testRegisterInput("ada@example.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	token, user, err := env.auth.Login(ctx, "ada@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}
	if user.ID != registered.ID {
		t.Fatalf("login returned wrong user")
	}

	authed, err := env.auth.ContextFromToken(ctx, token)
	if err != nil {
		t.Fatalf("context from token: %v", err)
	}
	rd := requestdata.GetRequestData(authed)
	if rd == nil {
		t.Fatalf("no identity in context")
	}
	if rd.UserID != registered.ID || rd.Email != "ada@example.com" || rd.Role != types.RoleUser {
		t.Fatalf("identity mismatch: %+v", rd)
	}
}

func TestLogin_RejectsBadCredentialsAndInactiveAccounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.auth.Register(ctx, testRegisterInput("ada@example.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := env.auth.Login(ctx, "ada@example.com", "wrong"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("wrong password: got %v, want unauthorized", err)
	}
	if _, _, err := env.auth.Login(ctx, "nobody@example.com", "hunter22"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("unknown email: got %v, want unauthorized", err)
	}

	if err := env.users.Deactivate(ctx, user.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, _, err := env.auth.Login(ctx, "ada@example.com", "hunter22"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("inactive account: got %v, want unauthorized", err)
	}
}

func TestContextFromToken_RejectsGarbageAndForeignTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.auth.ContextFromToken(ctx, "not-a-token"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("garbage token: got %v, want unauthorized", err)
	}

	// A token signed by a different key fails verification even when
	// the subject is a real user.
	user, err := env.auth.Register(ctx, testRegisterInput("ada@example.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	now := time.Now().UTC()
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	})
	foreignToken, err := foreign.SignedString([]byte("another-secret"))
	if err != nil {
		t.Fatalf("sign foreign token: %v", err)
	}
	if _, err := env.auth.ContextFromToken(ctx, foreignToken); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("foreign token: got %v, want unauthorized", err)
	}
}
