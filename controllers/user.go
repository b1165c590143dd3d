package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"storefront/middleware"
	"storefront/models"
	"storefront/repository"
	"storefront/utils"
)

var (
	ErrUserExists    = errors.New("user already exists")
	ErrAdminExists   = errors.New("an admin account already exists")
	ErrWeakPassword  = errors.Errorf("password must be at least %d characters", utils.MinPasswordLength)
	ErrInvalidEmail  = errors.New("a valid email is required")
	ErrInvalidLogins = errors.New("invalid email or password")
)

// UserController handles user-related requests
type UserController struct {
	Users repository.UserRepository
}

// NewUserController creates a new UserController
func NewUserController(users repository.UserRepository) *UserController {
	return &UserController{Users: users}
}

// CreateAccount validates u, hashes its password and stores it with role.
// Only one admin may be created this way.
func CreateAccount(ctx context.Context, users repository.UserRepository, u models.User, role string) (models.User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if !strings.Contains(u.Email, "@") {
		return u, ErrInvalidEmail
	}
	if len(u.Password) < utils.MinPasswordLength {
		return u, ErrWeakPassword
	}
	if role == models.RoleAdmin {
		n, err := users.CountByRole(ctx, models.RoleAdmin)
		if err != nil {
			return u, err
		}
		if n > 0 {
			return u, ErrAdminExists
		}
	}
	if _, err := users.FindByEmail(ctx, u.Email); err == nil {
		return u, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return u, err
	}

	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return u, errors.Wrap(err, "hash password")
	}
	u.Password = hashed
	u.Role = role
	if err := users.Create(ctx, &u); err != nil {
		return u, err
	}
	return u, nil
}

// Register handles customer registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	user, err := CreateAccount(r.Context(), uc.Users, user, models.RoleCustomer)
	switch {
	case errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrWeakPassword):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrUserExists):
		http.Error(w, "User already exists", http.StatusConflict)
		return
	case err != nil:
		zap.L().Error("register failed", zap.Error(err))
		http.Error(w, "Error creating user", http.StatusInternalServerError)
		return
	}

	token, err := utils.GenerateJWT(user.Email, user.Role)
	if err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"token": token})
}

// Login handles user authentication
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	user, err := uc.Users.FindByEmail(r.Context(), strings.ToLower(strings.TrimSpace(creds.Email)))
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		zap.L().Error("login lookup failed", zap.Error(err))
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if err != nil || !utils.CheckPassword(user.Password, creds.Password) {
		http.Error(w, ErrInvalidLogins.Error(), http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateJWT(user.Email, user.Role)
	if err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// GetProfile retrieves the authenticated user's profile
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := uc.Users.FindByEmail(r.Context(), claims.Email)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	user.Password = ""
	writeJSON(w, http.StatusOK, user)
}
