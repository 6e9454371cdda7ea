package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ratehub/ratehub-server/internal/logger"
	"github.com/ratehub/ratehub-server/internal/model"
)

// SignupParams carries validated-on-entry signup input.
type SignupParams struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     model.Role
}

// LoginParams carries login credentials.
type LoginParams struct {
	Email    string
	Password string
}

// LoginResult is the login response payload.
type LoginResult struct {
	Token  string
	Role   model.Role
	UserID uuid.UUID
}

// Auth implements signup, login and password updates on top of the
// user store. Passwords only ever cross this boundary as bcrypt
// hashes; the plaintext is neither stored nor logged.
type Auth struct {
	userStore    model.UserStore
	tokenService *TokenService
	bcryptCost   int
	signupTTL    time.Duration
	loginTTL     time.Duration
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	tokenService *TokenService,
	bcryptCost int,
	signupTTL time.Duration,
	loginTTL time.Duration,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenService: tokenService,
		bcryptCost:   bcryptCost,
		signupTTL:    signupTTL,
		loginTTL:     loginTTL,
		logger:       logger,
	}
}

// Signup validates input, creates the user and returns a signup
// token. A user created but left without a token (issuance failure)
// is not rolled back.
func (a *Auth) Signup(ctx context.Context, params SignupParams) (string, error) {
	a.logger.Debug("Auth service: starting signup",
		"email", params.Email)

	if err := a.validateSignup(params); err != nil {
		return "", err
	}

	_, err := a.userStore.GetByEmail(ctx, params.Email)
	if err == nil {
		a.logger.Info("Auth service: email already registered",
			"email", params.Email)
		return "", model.ErrDuplicateEmail
	}
	if !errors.Is(err, model.ErrNotFound) {
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := hashPassword(params.Password, a.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: hash,
		Address:      params.Address,
		Role:         params.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// The unique index may reject a concurrent signup that won the
		// race after our existence check.
		if errors.Is(err, model.ErrDuplicateEmail) {
			return "", model.ErrDuplicateEmail
		}
		a.logger.Error("Auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := a.tokenService.Issue(user, a.signupTTL)
	if err != nil {
		return "", fmt.Errorf("failed to issue signup token: %w", err)
	}

	a.logger.Info("Auth service: signup completed",
		"user_id", user.ID,
		"role", user.Role)

	return token, nil
}

// Login verifies credentials and returns a login token. Unknown email
// and wrong password are deliberately indistinguishable.
func (a *Auth) Login(ctx context.Context, params LoginParams) (LoginResult, error) {
	a.logger.Debug("Auth service: starting login",
		"email", params.Email)

	if err := validateEmail(params.Email); err != nil {
		return LoginResult{}, err
	}
	if params.Password == "" {
		return LoginResult{}, model.NewValidationError("password", "password is required")
	}

	user, err := a.userStore.GetByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return LoginResult{}, model.ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(params.Password)); err != nil {
		return LoginResult{}, model.ErrInvalidCredentials
	}

	token, err := a.tokenService.Issue(user, a.loginTTL)
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to issue login token: %w", err)
	}

	a.logger.Info("Auth service: login completed",
		"user_id", user.ID,
		"role", user.Role)

	return LoginResult{Token: token, Role: user.Role, UserID: user.ID}, nil
}

// UpdatePassword re-hashes and persists a new password for the
// calling principal. Available to every authenticated role.
func (a *Auth) UpdatePassword(ctx context.Context, userID uuid.UUID, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	hash, err := hashPassword(password, a.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.userStore.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	a.logger.Info("Auth service: password updated",
		"user_id", userID)

	return nil
}

func (a *Auth) validateSignup(params SignupParams) error {
	if err := validateName(params.Name); err != nil {
		return err
	}
	if err := validateEmail(params.Email); err != nil {
		return err
	}
	if err := validatePassword(params.Password); err != nil {
		return err
	}
	if err := validateAddress(params.Address); err != nil {
		return err
	}
	return validateRole(params.Role)
}
