package model

import "errors"

// User attribute names that need guarding or stripping.
const (
	AttrUserID       = "userId"
	AttrPasswordHash = "passwordHash"
	// AttrPassword is the legacy plaintext attribute name; it is rejected on
	// updates and stripped from every response.
	AttrPassword = "password"
)

// RegisterRequest is the body of POST /register. All fields are required.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest is the body of POST /forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the body of POST /reset-password.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// UserData is the public view of a user returned by auth endpoints.
type UserData struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// AuthResponse is the success body for login/register.
type AuthResponse struct {
	Message string    `json:"message"`
	User    *UserData `json:"user,omitempty"`
	Token   string    `json:"token,omitempty"`
}

var (
	// ErrUserNotFound is returned when a user or profile cannot be found.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when registering a taken username.
	ErrUsernameExists = errors.New("username already exists")

	// ErrEmailExists is returned when registering a taken email.
	ErrEmailExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrProfileCreate is returned when the profile row could not be created
	// during registration. The user row has already been compensated away.
	ErrProfileCreate = errors.New("failed to create user profile")

	// ErrResetTokenInvalid is returned for an unknown or expired reset token.
	ErrResetTokenInvalid = errors.New("invalid or expired reset token")
)
