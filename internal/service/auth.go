package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Zed-Kryp/BlogSphere/internal/config"
	"github.com/Zed-Kryp/BlogSphere/internal/model"
	"github.com/Zed-Kryp/BlogSphere/internal/repository"
)

// AuthService handles registration, login and the password-reset flow.
type AuthService struct {
	users       repository.UserRepository
	profiles    repository.ProfileRepository
	resetTokens repository.ResetTokenRepository
	cfg         *config.Config
}

func NewAuthService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	resetTokens repository.ResetTokenRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		users:       users,
		profiles:    profiles,
		resetTokens: resetTokens,
		cfg:         cfg,
	}
}

// Register creates a user plus their default profile. Username and email
// uniqueness are pre-checked against the GSIs; if the profile write fails the
// user row is deleted again so no half-registered account remains.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.UserData, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, model.Validation("All fields are required")
	}

	if _, err := s.users.GetByUsername(ctx, req.Username); err == nil {
		return nil, model.ErrUsernameExists
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, model.ErrEmailExists
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID := uuid.NewString()
	user := model.Record{
		model.AttrUserID:       userID,
		"username":             req.Username,
		"email":                req.Email,
		model.AttrPasswordHash: string(hash),
		"name":                 req.Name,
		"createdAt":            repository.NowISO(),
	}
	if err := s.users.Put(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	profile := model.NewProfile(userID, req.Username, req.Email, req.Name)
	if err := s.profiles.Create(ctx, profile); err != nil {
		log.Printf("[ERROR] Register: profile create failed, compensating: user=%s err=%v", userID, err)
		if delErr := s.users.Delete(ctx, userID); delErr != nil {
			log.Printf("[ERROR] Register: compensating user delete failed: user=%s err=%v", userID, delErr)
		}
		return nil, model.ErrProfileCreate
	}

	return &model.UserData{
		UserID:   userID,
		Username: req.Username,
		Email:    req.Email,
		Name:     req.Name,
	}, nil
}

// Login verifies credentials against the bcrypt hash and issues an HS256
// access token carrying the user's ID.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.UserData, string, error) {
	if req.Email == "" || req.Password == "" {
		return nil, "", model.Validation("Email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		// Same answer for unknown email and store trouble: never reveal
		// which accounts exist.
		return nil, "", model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.String(model.AttrPasswordHash)), []byte(req.Password)); err != nil {
		return nil, "", model.ErrInvalidCredentials
	}

	userID := user.String(model.AttrUserID)
	token, err := s.generateAccessToken(userID)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return &model.UserData{
		UserID:   userID,
		Username: user.String("username"),
		Email:    user.String("email"),
		Name:     user.String("name"),
	}, token, nil
}

// ForgotPassword issues a single-use reset token with a TTL.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", model.Validation("Email is required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	if err := s.resetTokens.Save(ctx, token, user.String(model.AttrUserID), s.cfg.ResetTokenTTL); err != nil {
		return "", fmt.Errorf("store reset token: %w", err)
	}
	return token, nil
}

// ResetPassword consumes a reset token and replaces the user's password hash.
func (s *AuthService) ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error {
	if req.Token == "" || req.Password == "" {
		return model.Validation("Token and password are required")
	}

	userID, err := s.resetTokens.Consume(ctx, req.Token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if _, err := s.users.Update(ctx, userID, model.Record{model.AttrPasswordHash: string(hash)}); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *AuthService) generateAccessToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(time.Duration(s.cfg.AccessTokenMaxAge) * time.Second).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
