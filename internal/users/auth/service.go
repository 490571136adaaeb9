// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hondana-app/hondana/internal/platform/apperr"
	"github.com/hondana-app/hondana/internal/platform/constants"
	"github.com/hondana-app/hondana/internal/platform/sec"
	"github.com/hondana-app/hondana/internal/platform/validate"
	"github.com/hondana-app/hondana/pkg/uuidv7"
)

// RefreshTokenLength is the random byte length of refresh tokens.
const RefreshTokenLength = 32

// TokenProvider defines the contract for minting access tokens. Satisfied by
// [sec.TokenService].
type TokenProvider interface {
	GenerateAccessToken(userID, handle, role string, timeToLive time.Duration) (string, error)
}

// Service implements account and session use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed before merging.
type Service struct {
	accounts AccountRepository
	sessions SessionRepository
	tokens   TokenProvider
	logger   *slog.Logger
}

// NewService constructs a new [Service].
func NewService(accounts AccountRepository, sessions SessionRepository, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		accounts: accounts,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Email    string `json:"email"`
	Handle   string `json:"handle"`
	Password string `json:"password"`
}

/*
Register validates, hashes and persists a brand new account.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Account: The created account
  - error: CONFLICT when the email or handle is taken; VALIDATION_ERROR on
    malformed input

Business Rules:
  - Emails and handles are unique.
  - New accounts always start as active readers; role upgrades are a separate
    administrative action.
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Account, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Handle = strings.ToLower(strings.TrimSpace(input.Handle))

	validator := &validate.Validator{}
	validator.Required("email", input.Email).Email("email", input.Email)
	validator.Required("handle", input.Handle).MinLen("handle", input.Handle, 3).MaxLen("handle", input.Handle, 30).Slug("handle", input.Handle)
	validator.Required("password", input.Password).MinLen("password", input.Password, 8).MaxLen("password", input.Password, 72)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Pre-checks give friendly errors; the unique constraints still backstop
	// races with a CONFLICT from the insert itself.
	if _, err := service.accounts.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}
	if _, err := service.accounts.FindByHandle(context, input.Handle); err == nil {
		return nil, apperr.Conflict("Handle is already taken")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("hash password: %w", err))
	}

	account := &Account{
		ID:           uuidv7.Must(),
		Email:        input.Email,
		Handle:       input.Handle,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
		Status:       sec.StatusActive,
	}

	if err := service.accounts.Create(context, account); err != nil {
		return nil, err
	}

	service.logger.Info("account_registered",
		slog.String("user_id", account.ID),
		slog.String("handle", account.Handle),
	)

	return account, nil
}

// LoginInput defines credentials for an authentication attempt. Login accepts
// either the email or the handle.
type LoginInput struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginSession represents a successfully established session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	Account               *Account
}

/*
Login verifies credentials and issues an access token plus a refresh session.

Returns:
  - *LoginSession: The token pair and account
  - error: UNAUTHORIZED on bad credentials; FORBIDDEN for banned or suspended
    accounts

The unauthorized message never distinguishes unknown logins from wrong
passwords, preventing account enumeration.
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	login := strings.ToLower(strings.TrimSpace(input.Login))

	account, err := service.accounts.FindByEmail(context, login)
	if err != nil {
		account, err = service.accounts.FindByHandle(context, login)
	}
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !sec.CheckPasswordHash(input.Password, account.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if !account.Status.CanAct() {
		return nil, apperr.Forbidden("Account is " + string(account.Status))
	}

	session, err := service.establishSession(context, account)
	if err != nil {
		return nil, err
	}

	service.logger.Info("login_succeeded", slog.String("user_id", account.ID))

	return session, nil
}

/*
RefreshSession implements refresh token rotation.

Description: The presented token's session is deleted before new tokens are
issued, so a replayed token fails with UNAUTHORIZED even if the attacker moves
first. The account's status is re-read; a ban issued since login cuts the
session chain here.
*/
func (service *Service) RefreshSession(context context.Context, refreshToken string) (*LoginSession, error) {
	tokenHash := sec.HashToken(refreshToken)

	session, err := service.sessions.Find(context, tokenHash)
	if err != nil {
		return nil, err
	}

	if err := service.sessions.Delete(context, tokenHash); err != nil {
		return nil, err
	}

	account, err := service.accounts.FindByID(context, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}
	if !account.Status.CanAct() {
		return nil, apperr.Forbidden("Account is " + string(account.Status))
	}

	return service.establishSession(context, account)
}

// Logout revokes the presented refresh session. Logging out an already
// invalid session succeeds; the operation is idempotent.
func (service *Service) Logout(context context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return service.sessions.Delete(context, sec.HashToken(refreshToken))
}

// Me returns the acting user's account.
func (service *Service) Me(context context.Context, claims *sec.AuthClaims) (*Account, error) {
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return service.accounts.FindByID(context, claims.UserID)
}

// establishSession mints the access token and stores a fresh refresh session.
func (service *Service) establishSession(context context.Context, account *Account) (*LoginSession, error) {
	accessToken, err := service.tokens.GenerateAccessToken(account.ID, account.Handle, string(account.Role), constants.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("generate access token: %w", err))
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	expiresAt := time.Now().Add(constants.RefreshTokenTTL)
	session := &Session{
		UserID:    account.ID,
		ExpiresAt: expiresAt,
	}

	if err := service.sessions.Save(context, sec.HashToken(refreshToken), session); err != nil {
		return nil, err
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		Account:               account,
	}, nil
}
