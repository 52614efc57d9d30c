package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/taskroom/taskroom-api/internal/config"
	"github.com/taskroom/taskroom-api/internal/domain"
	"github.com/taskroom/taskroom-api/internal/service/auth"
	"github.com/taskroom/taskroom-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	validator        *validator.Validate
	refreshLifetime  time.Duration
	secureCookies    bool
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordHasher auth.PasswordHasher,
	passwordVerifier auth.PasswordVerifier,
	cfg *config.Config,
) *AuthHandler {
	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordHasher:   passwordHasher,
		passwordVerifier: passwordVerifier,
		validator:        validator.New(),
		refreshLifetime:  time.Duration(cfg.Auth.RefreshTokenLifetimeMinutes) * time.Minute,
		secureCookies:    cfg.Server.IsProduction(),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := domain.NewUser(req.Username, req.Email, req.Password)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid user data: "+err.Error())
		return
	}

	hashed, err := h.passwordHasher.Hash(user.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, "Registration failed")
		return
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			RespondWithError(w, r, http.StatusConflict, "Email already exists")
			return
		}
		slog.Error("failed to create user", "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, "Registration failed")
		return
	}

	h.issueTokens(w, r, user, http.StatusCreated)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Same message as a bad password: don't reveal which emails exist.
			RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		slog.Error("failed to get user by email", "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, "Login failed")
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	h.issueTokens(w, r, user, http.StatusOK)
}

// issueTokens mints the access/refresh pair, sets the refresh cookie and
// writes the auth response body. Shared tail of Register and Login.
func (h *AuthHandler) issueTokens(
	w http.ResponseWriter,
	r *http.Request,
	user *domain.User,
	status int,
) {
	accessToken, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to generate access token", "error", err, "user_id", user.ID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to generate refresh token", "error", err, "user_id", user.ID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	setRefreshCookie(w, refreshToken, h.refreshLifetime, h.secureCookies)

	RespondWithJSON(w, r, status, AuthResponse{
		Success:     true,
		AccessToken: accessToken,
		User:        NewUserResponse(user),
	})
}

// Refresh handles POST /api/auth/refresh.
// It reads the refresh cookie, verifies it, re-resolves the user, and issues
// a brand-new access token. The refresh token is NOT rotated. Any failure
// clears the cookie before the 401 goes out.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		clearRefreshCookie(w, h.secureCookies)
		RespondWithError(w, r, http.StatusUnauthorized, "No refresh token provided")
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), cookie.Value)
	if err != nil {
		clearRefreshCookie(w, h.secureCookies)
		RespondWithError(w, r, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	// The token may outlive the account; confirm the user still exists.
	user, err := h.userStore.GetByID(r.Context(), claims.UserID)
	if err != nil {
		clearRefreshCookie(w, h.secureCookies)
		if errors.Is(err, store.ErrUserNotFound) {
			RespondWithError(w, r, http.StatusUnauthorized, "User not found")
			return
		}
		slog.Error("failed to resolve user for refresh", "error", err, "user_id", claims.UserID)
		RespondWithError(w, r, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	accessToken, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		clearRefreshCookie(w, h.secureCookies)
		slog.Error("failed to generate access token", "error", err, "user_id", user.ID)
		RespondWithError(w, r, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, RefreshResponse{
		Success:     true,
		AccessToken: accessToken,
	})
}

// Logout handles POST /api/auth/logout.
// There is no server-side session state; clearing the cookie is all there is
// to do, so this always succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearRefreshCookie(w, h.secureCookies)
	RespondWithJSON(w, r, http.StatusOK, LogoutResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}

// Verify handles POST /api/auth/verify.
// The authentication middleware has already validated the bearer token and
// confirmed the user exists; this handler just returns the public profile.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			RespondWithError(w, r, http.StatusUnauthorized, "User not found")
			return
		}
		slog.Error("failed to resolve user for verify", "error", err, "user_id", userID)
		RespondWithError(w, r, http.StatusInternalServerError, "Verification failed")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, VerifyResponse{
		Success: true,
		IsValid: true,
		User:    NewUserResponse(user),
	})
}
