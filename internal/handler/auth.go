package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Zed-Kryp/BlogSphere/internal/httputil"
	"github.com/Zed-Kryp/BlogSphere/internal/model"
	"github.com/Zed-Kryp/BlogSphere/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.auth.Register(r.Context(), req)
	if err != nil {
		var verr *model.ValidationError
		switch {
		case errors.As(err, &verr):
			httputil.WriteBadRequest(w, verr.Msg)
		case errors.Is(err, model.ErrUsernameExists):
			httputil.WriteConflict(w, "Username already exists")
		case errors.Is(err, model.ErrEmailExists):
			httputil.WriteConflict(w, "Email already exists")
		case errors.Is(err, model.ErrProfileCreate):
			httputil.WriteInternalError(w, "Failed to create user profile")
		default:
			log.Printf("[ERROR] Register failed: %v", err)
			httputil.WriteStoreError(w, err)
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, model.AuthResponse{
		Message: "User registered successfully",
		User:    user,
	})
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, token, err := h.auth.Login(r.Context(), req)
	if err != nil {
		var verr *model.ValidationError
		switch {
		case errors.As(err, &verr):
			httputil.WriteBadRequest(w, verr.Msg)
		case errors.Is(err, model.ErrInvalidCredentials):
			httputil.WriteUnauthorized(w, "Invalid email or password")
		default:
			log.Printf("[ERROR] Login failed: %v", err)
			httputil.WriteStoreError(w, err)
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.AuthResponse{
		Message: "Login successful",
		User:    user,
		Token:   token,
	})
}

// ForgotPassword handles POST /forgot-password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	token, err := h.auth.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		var verr *model.ValidationError
		switch {
		case errors.As(err, &verr):
			httputil.WriteBadRequest(w, verr.Msg)
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		default:
			log.Printf("[ERROR] ForgotPassword failed: %v", err)
			httputil.WriteStoreError(w, err)
		}
		return
	}

	// There is no mail delivery here; the token goes back to the caller.
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Password reset token generated",
		"token":   token,
	})
}

// ResetPassword handles POST /reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := h.auth.ResetPassword(r.Context(), req); err != nil {
		var verr *model.ValidationError
		switch {
		case errors.As(err, &verr):
			httputil.WriteBadRequest(w, verr.Msg)
		case errors.Is(err, model.ErrResetTokenInvalid):
			httputil.WriteBadRequest(w, "Invalid or expired reset token")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		default:
			log.Printf("[ERROR] ResetPassword failed: %v", err)
			httputil.WriteStoreError(w, err)
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Password has been reset successfully",
	})
}
