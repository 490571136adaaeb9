// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package auth_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hondana-app/hondana/internal/platform/apperr"
	"github.com/hondana-app/hondana/internal/platform/dberr"
	"github.com/hondana-app/hondana/internal/platform/sec"
	"github.com/hondana-app/hondana/internal/users/auth"
)

// # Test Fakes

type fakeAccountRepository struct {
	accounts map[string]*auth.Account // keyed by id
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{accounts: make(map[string]*auth.Account)}
}

func (f *fakeAccountRepository) Create(_ context.Context, account *auth.Account) error {
	for _, existing := range f.accounts {
		if existing.Email == account.Email || existing.Handle == account.Handle {
			return apperr.Conflict("Resource already exists")
		}
	}
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	f.accounts[account.ID] = account
	return nil
}

func (f *fakeAccountRepository) FindByID(_ context.Context, id string) (*auth.Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, dberr.Wrap(pgx.ErrNoRows, "find_account_by_id")
	}
	return account, nil
}

func (f *fakeAccountRepository) FindByEmail(_ context.Context, email string) (*auth.Account, error) {
	for _, account := range f.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return nil, dberr.Wrap(pgx.ErrNoRows, "find_account_by_email")
}

func (f *fakeAccountRepository) FindByHandle(_ context.Context, handle string) (*auth.Account, error) {
	for _, account := range f.accounts {
		if account.Handle == handle {
			return account, nil
		}
	}
	return nil, dberr.Wrap(pgx.ErrNoRows, "find_account_by_handle")
}

func (f *fakeAccountRepository) AccountStatus(_ context.Context, userID string) (sec.AccountStatus, error) {
	account, ok := f.accounts[userID]
	if !ok {
		return sec.StatusBanned, nil
	}
	return account.Status, nil
}

type fakeSessionRepository struct {
	sessions map[string]*auth.Session
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: make(map[string]*auth.Session)}
}

func (f *fakeSessionRepository) Save(_ context.Context, tokenHash string, session *auth.Session) error {
	f.sessions[tokenHash] = session
	return nil
}

func (f *fakeSessionRepository) Find(_ context.Context, tokenHash string) (*auth.Session, error) {
	session, ok := f.sessions[tokenHash]
	if !ok {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}
	return session, nil
}

func (f *fakeSessionRepository) Delete(_ context.Context, tokenHash string) error {
	delete(f.sessions, tokenHash)
	return nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	return "jwt-for-" + userID, nil
}

type fixture struct {
	accounts *fakeAccountRepository
	sessions *fakeSessionRepository
	service  *auth.Service
}

func newFixture() *fixture {
	accounts := newFakeAccountRepository()
	sessions := newFakeSessionRepository()
	service := auth.NewService(accounts, sessions, fakeTokenProvider{}, slog.Default())
	return &fixture{accounts: accounts, sessions: sessions, service: service}
}

func register(t *testing.T, fx *fixture) *auth.Account {
	t.Helper()
	account, err := fx.service.Register(context.Background(), auth.RegisterInput{
		Email:    "reader@hondana.app",
		Handle:   "reader",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	return account
}

// # Tests

func TestService_Register(t *testing.T) {
	fx := newFixture()

	account := register(t, fx)
	assert.Equal(t, sec.RoleUser, account.Role)
	assert.Equal(t, sec.StatusActive, account.Status)
	assert.NotEqual(t, "correct horse battery", account.PasswordHash)

	_, err := fx.service.Register(context.Background(), auth.RegisterInput{
		Email:    "reader@hondana.app",
		Handle:   "other",
		Password: "correct horse battery",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	_, err = fx.service.Register(context.Background(), auth.RegisterInput{
		Email:    "other@hondana.app",
		Handle:   "reader",
		Password: "correct horse battery",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestService_Register_Validation(t *testing.T) {
	fx := newFixture()

	testCases := []struct {
		name  string
		input auth.RegisterInput
	}{
		{"bad email", auth.RegisterInput{Email: "not-an-email", Handle: "reader", Password: "long enough pass"}},
		{"short handle", auth.RegisterInput{Email: "a@b.io", Handle: "ab", Password: "long enough pass"}},
		{"short password", auth.RegisterInput{Email: "a@b.io", Handle: "reader", Password: "short"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := fx.service.Register(context.Background(), testCase.input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

func TestService_Login(t *testing.T) {
	fx := newFixture()
	register(t, fx)

	// Handle and email both work as the login.
	session, err := fx.service.Login(context.Background(), auth.LoginInput{Login: "reader", Password: "correct horse battery"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)

	_, err = fx.service.Login(context.Background(), auth.LoginInput{Login: "Reader@hondana.app", Password: "correct horse battery"})
	require.NoError(t, err)

	_, err = fx.service.Login(context.Background(), auth.LoginInput{Login: "reader", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	_, err = fx.service.Login(context.Background(), auth.LoginInput{Login: "nobody", Password: "whatever"})
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

func TestService_Login_DeniedForLockedAccounts(t *testing.T) {
	for _, status := range []sec.AccountStatus{sec.StatusBanned, sec.StatusSuspended} {
		t.Run(string(status), func(t *testing.T) {
			fx := newFixture()
			account := register(t, fx)
			account.Status = status

			_, err := fx.service.Login(context.Background(), auth.LoginInput{Login: "reader", Password: "correct horse battery"})
			require.Error(t, err)
			assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
		})
	}
}

func TestService_RefreshSession_RotatesToken(t *testing.T) {
	fx := newFixture()
	register(t, fx)

	session, err := fx.service.Login(context.Background(), auth.LoginInput{Login: "reader", Password: "correct horse battery"})
	require.NoError(t, err)

	refreshed, err := fx.service.RefreshSession(context.Background(), session.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, refreshed.RefreshToken)

	// The original token was consumed by the rotation; replaying it fails.
	_, err = fx.service.RefreshSession(context.Background(), session.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

func TestService_RefreshSession_DeniedAfterBan(t *testing.T) {
	fx := newFixture()
	account := register(t, fx)

	session, err := fx.service.Login(context.Background(), auth.LoginInput{Login: "reader", Password: "correct horse battery"})
	require.NoError(t, err)

	account.Status = sec.StatusBanned

	_, err = fx.service.RefreshSession(context.Background(), session.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

func TestService_Logout_Idempotent(t *testing.T) {
	fx := newFixture()
	register(t, fx)

	session, err := fx.service.Login(context.Background(), auth.LoginInput{Login: "reader", Password: "correct horse battery"})
	require.NoError(t, err)

	require.NoError(t, fx.service.Logout(context.Background(), session.RefreshToken))
	require.NoError(t, fx.service.Logout(context.Background(), session.RefreshToken))
	require.NoError(t, fx.service.Logout(context.Background(), ""))

	_, err = fx.service.RefreshSession(context.Background(), session.RefreshToken)
	require.Error(t, err)
}
