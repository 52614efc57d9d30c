package api

import (
	"github.com/google/uuid"

	"github.com/taskroom/taskroom-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// UserResponse is the public view of a user: never the password hash.
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// NewUserResponse builds the public view of a user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

// AuthResponse defines the successful response for register and login.
// The refresh token travels only in the http-only cookie, never in the body.
type AuthResponse struct {
	Success     bool         `json:"success"`
	AccessToken string       `json:"accessToken"`
	User        UserResponse `json:"user"`
}

// RefreshResponse defines the successful response for the token refresh endpoint.
type RefreshResponse struct {
	Success     bool   `json:"success"`
	AccessToken string `json:"accessToken"`
}

// VerifyResponse defines the successful response for the session verification endpoint.
type VerifyResponse struct {
	Success bool         `json:"success"`
	IsValid bool         `json:"isValid"`
	User    UserResponse `json:"user"`
}

// LogoutResponse defines the successful response for the logout endpoint.
type LogoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CreateTaskRequest defines the payload for task creation.
// Title is a pointer so a present-but-empty string passes validation while an
// absent field fails it; the empty-title laxity is deliberate.
type CreateTaskRequest struct {
	Title *string `json:"title" validate:"required"`
}

// UpdateTaskRequest defines the payload for partial task updates.
// Absent fields leave the corresponding task fields untouched.
type UpdateTaskRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}
