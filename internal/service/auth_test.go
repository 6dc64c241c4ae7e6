package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Zed-Kryp/BlogSphere/internal/config"
	"github.com/Zed-Kryp/BlogSphere/internal/model"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "test-secret",
		AccessTokenMaxAge: 900,
		ResetTokenTTL:     30 * time.Minute,
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	users := &mockUserRepo{
		GetByUsernameFn: func(ctx context.Context, username string) (model.Record, error) {
			return model.Record{"username": username}, nil
		},
	}
	svc := NewAuthService(users, &mockProfileRepo{}, &mockResetTokenRepo{}, testConfig())

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "pw", Name: "Alice",
	})
	if !errors.Is(err, model.ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := &mockUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (model.Record, error) {
			return model.Record{"email": email}, nil
		},
	}
	svc := NewAuthService(users, &mockProfileRepo{}, &mockResetTokenRepo{}, testConfig())

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "pw", Name: "Alice",
	})
	if !errors.Is(err, model.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockProfileRepo{}, &mockResetTokenRepo{}, testConfig())

	_, err := svc.Register(context.Background(), model.RegisterRequest{Username: "alice"})
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterCompensatesFailedProfile(t *testing.T) {
	var deletedUserID string
	users := &mockUserRepo{
		DeleteFn: func(ctx context.Context, userID string) error {
			deletedUserID = userID
			return nil
		},
	}
	profiles := &mockProfileRepo{
		CreateFn: func(ctx context.Context, profile model.Record) error {
			return errors.New("table unavailable")
		},
	}
	svc := NewAuthService(users, profiles, &mockResetTokenRepo{}, testConfig())

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "pw", Name: "Alice",
	})
	if !errors.Is(err, model.ErrProfileCreate) {
		t.Fatalf("expected ErrProfileCreate, got %v", err)
	}
	if deletedUserID == "" {
		t.Fatal("expected the user row to be deleted after the profile write failed")
	}
}

func TestRegisterSuccess(t *testing.T) {
	var storedUser model.Record
	var storedProfile model.Record
	users := &mockUserRepo{
		PutFn: func(ctx context.Context, user model.Record) error {
			storedUser = user
			return nil
		},
	}
	profiles := &mockProfileRepo{
		CreateFn: func(ctx context.Context, profile model.Record) error {
			storedProfile = profile
			return nil
		},
	}
	svc := NewAuthService(users, profiles, &mockResetTokenRepo{}, testConfig())

	user, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret", Name: "Alice",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.UserID == "" {
		t.Error("expected a generated user ID")
	}
	if storedUser.String(model.AttrPasswordHash) == "" {
		t.Error("expected a password hash on the stored user")
	}
	if storedUser.String(model.AttrPasswordHash) == "secret" {
		t.Error("password must not be stored in plaintext")
	}
	if got := storedProfile.String("username"); got != "alice" {
		t.Errorf("profile username = %q, want alice", got)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	users := &mockUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (model.Record, error) {
			return model.Record{
				model.AttrUserID:       "u1",
				"email":                email,
				model.AttrPasswordHash: string(hash),
			}, nil
		},
	}
	svc := NewAuthService(users, &mockProfileRepo{}, &mockResetTokenRepo{}, testConfig())

	_, _, err := svc.Login(context.Background(), model.LoginRequest{Email: "a@b.c", Password: "wrong"})
	if !errors.Is(err, model.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockProfileRepo{}, &mockResetTokenRepo{}, testConfig())

	_, _, err := svc.Login(context.Background(), model.LoginRequest{Email: "a@b.c", Password: "pw"})
	if !errors.Is(err, model.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	users := &mockUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (model.Record, error) {
			return model.Record{
				model.AttrUserID:       "u1",
				"username":             "alice",
				"email":                email,
				model.AttrPasswordHash: string(hash),
			}, nil
		},
	}
	svc := NewAuthService(users, &mockProfileRepo{}, &mockResetTokenRepo{}, testConfig())

	user, token, err := svc.Login(context.Background(), model.LoginRequest{Email: "a@b.c", Password: "secret"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.UserID != "u1" {
		t.Errorf("user ID = %q, want u1", user.UserID)
	}
	if token == "" {
		t.Error("expected a signed token")
	}
}

func TestForgotPasswordStoresToken(t *testing.T) {
	users := &mockUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (model.Record, error) {
			return model.Record{model.AttrUserID: "u1"}, nil
		},
	}
	tokens := &mockResetTokenRepo{}
	svc := NewAuthService(users, &mockProfileRepo{}, tokens, testConfig())

	token, err := svc.ForgotPassword(context.Background(), "a@b.c")
	if err != nil {
		t.Fatalf("ForgotPassword failed: %v", err)
	}
	if token == "" || tokens.SavedToken != token {
		t.Errorf("token %q not saved (saved %q)", token, tokens.SavedToken)
	}
	if tokens.SavedUserID != "u1" {
		t.Errorf("saved user = %q, want u1", tokens.SavedUserID)
	}
	if tokens.SavedTTL != 30*time.Minute {
		t.Errorf("saved TTL = %v, want 30m", tokens.SavedTTL)
	}
}

func TestResetPasswordInvalidToken(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockProfileRepo{}, &mockResetTokenRepo{}, testConfig())

	err := svc.ResetPassword(context.Background(), model.ResetPasswordRequest{Token: "nope", Password: "new"})
	if !errors.Is(err, model.ErrResetTokenInvalid) {
		t.Fatalf("expected ErrResetTokenInvalid, got %v", err)
	}
}

func TestResetPasswordUpdatesHash(t *testing.T) {
	var updatedFields model.Record
	users := &mockUserRepo{
		UpdateFn: func(ctx context.Context, userID string, fields model.Record) (model.Record, error) {
			updatedFields = fields
			return fields, nil
		},
	}
	tokens := &mockResetTokenRepo{
		ConsumeFn: func(ctx context.Context, token string) (string, error) {
			return "u1", nil
		},
	}
	svc := NewAuthService(users, &mockProfileRepo{}, tokens, testConfig())

	if err := svc.ResetPassword(context.Background(), model.ResetPasswordRequest{Token: "tok", Password: "new"}); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}
	hash := updatedFields.String(model.AttrPasswordHash)
	if hash == "" || hash == "new" {
		t.Errorf("expected a bcrypt hash to be written, got %q", hash)
	}
}
