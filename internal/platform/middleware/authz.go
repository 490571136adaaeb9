// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hondana-app/hondana/internal/platform/ctxutil"
	"github.com/hondana-app/hondana/internal/platform/sec"
)

// # Authentication Contracts

// TokenVerifier validates a raw bearer token and returns the embedded claims.
// Implemented by sec.TokenService.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// StatusSource resolves the current moderation status of an account.
//
// Account status is deliberately not embedded in the access token: a ban or
// suspension must take effect at principal-resolution time, not when the
// token expires. Implemented by the users store.
type StatusSource interface {
	AccountStatus(ctx context.Context, userID string) (sec.AccountStatus, error)
}

// # Principal Resolution

// Authenticate parses an optional Bearer token and attaches the resulting
// claims to the request context.
//
// This middleware never rejects a request on its own:
//
//   - No Authorization header -> anonymous request, proceed.
//   - Invalid or expired token -> proceed WITHOUT claims; a downstream
//     RequireAuth decides whether that matters.
//   - Valid token but BANNED/SUSPENDED account -> claims are dropped, so the
//     principal degrades to anonymous and every authenticated operation fails.
func Authenticate(verifier TokenVerifier, statuses StatusSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Extract the Bearer token
			authHeader := request.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || tokenString == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// 2. Verify signature and expiry
			claims, err := verifier.VerifyToken(tokenString)
			if err != nil {
				next.ServeHTTP(writer, request)
				return
			}

			// 3. Re-read the account status from the store; a stale token must
			// not outlive a ban.
			status, err := statuses.AccountStatus(request.Context(), claims.UserID)
			if err != nil || !status.CanAct() {
				next.ServeHTTP(writer, request)
				return
			}

			// 4. Attach the resolved principal to the context
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// # Access Guards

// RequireAuth rejects requests that do not carry a resolved principal.
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			if ctxutil.GetAuthUser(request.Context()) == nil {
				writeError(writer, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// RequireRole rejects authenticated requests whose role is below the minimum.
// It implies RequireAuth.
func RequireRole(minimum sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			claims := ctxutil.GetAuthUser(request.Context())
			if claims == nil {
				writeError(writer, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
				return
			}

			if !sec.UserRole(claims.Role).AtLeast(minimum) {
				writeError(writer, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
