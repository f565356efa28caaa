package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/feedline/feedline/internal/logger"
	"github.com/feedline/feedline/internal/model"
)

const bcryptCost = 12

// Auth authenticates users: signup, credential login and token
// verification. Every mutation elsewhere relies on the Identity it resolves.
type Auth struct {
	userStore model.UserStore
	tokens    model.TokenManager
	validate  *validator.Validate
	logger    *logger.Logger
}

func NewAuth(userStore model.UserStore, tokens model.TokenManager, logger *logger.Logger) *Auth {
	return &Auth{
		userStore: userStore,
		tokens:    tokens,
		validate:  newValidator(),
		logger:    logger,
	}
}

// SignUpInput carries new-account fields.
type SignUpInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5"`
	Name     string `json:"name" validate:"required"`
}

// LoginInput carries credentials presented at login.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is a freshly issued session.
type LoginResult struct {
	Token  string
	UserID uuid.UUID
}

func (a *Auth) SignUp(ctx context.Context, input SignUpInput) (model.User, error) {
	input.Email = strings.TrimSpace(input.Email)
	input.Password = strings.TrimSpace(input.Password)
	input.Name = strings.TrimSpace(input.Name)

	if err := asValidationError(a.validate.Struct(input)); err != nil {
		return model.User{}, err
	}

	existing, err := a.userStore.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if existing.ID != uuid.Nil {
		return model.User{}, model.NewValidationError("email address already exists",
			model.FieldViolation{Field: "email", Message: "already exists"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hash),
		Name:         input.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	user, err = a.userStore.Create(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user created", "user_id", user.ID, "email", user.Email)

	return user, nil
}

func (a *Auth) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	input.Email = strings.TrimSpace(input.Email)

	if err := asValidationError(a.validate.Struct(input)); err != nil {
		return LoginResult{}, err
	}

	user, err := a.userStore.GetByEmail(ctx, input.Email)
	if errors.Is(err, model.ErrNotFound) {
		return LoginResult{}, model.NewUnauthenticatedError("invalid email or password")
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return LoginResult{}, model.NewUnauthenticatedError("invalid email or password")
	}

	tokenString, err := a.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to generate token: %w", err)
	}

	a.logger.Info("Auth service: user logged in", "user_id", user.ID)

	return LoginResult{Token: tokenString, UserID: user.ID}, nil
}

// Identify resolves a bearer token into an Identity. Missing, malformed,
// expired and badly signed tokens all fail with Unauthenticated.
func (a *Auth) Identify(ctx context.Context, tokenString string) (model.Identity, error) {
	if tokenString == "" {
		return model.Identity{}, model.NewUnauthenticatedError("missing authorization token")
	}

	identity, err := a.tokens.ParseToken(tokenString)
	if err != nil {
		return model.Identity{}, model.NewUnauthenticatedError("invalid or expired token")
	}

	return identity, nil
}
