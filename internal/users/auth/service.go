// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/lexicon/internal/platform/apperr"
	"github.com/taibuivan/lexicon/internal/platform/constants"
	"github.com/taibuivan/lexicon/internal/platform/sec"
	"github.com/taibuivan/lexicon/internal/platform/validate"
	"github.com/taibuivan/lexicon/pkg/uuidv7"
)

// TokenProvider signs and verifies access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, email string, timeToLive time.Duration) (string, error)
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// Service implements token issuance, logout and verification.
type Service struct {
	accounts    AccountRepository
	revocations RevocationStore
	tokens      TokenProvider
	tokenTTL    time.Duration
	logger      *slog.Logger
}

func NewService(
	accounts AccountRepository,
	revocations RevocationStore,
	tokens TokenProvider,
	tokenTTL time.Duration,
	logger *slog.Logger,
) *Service {
	return &Service{
		accounts:    accounts,
		revocations: revocations,
		tokens:      tokens,
		tokenTTL:    tokenTTL,
		logger:      logger,
	}
}

// decoyHash is compared against when the email is unknown so both failure
// paths cost one bcrypt comparison.
var decoyHash = sync.OnceValue(func() string {
	hash, _ := sec.HashPassword("lexicon-decoy-password")
	return hash
})

/*
IssueToken exchanges account credentials for an access token.

Returns:
  - *TokenResponse: Bearer token and its lifetime in seconds
  - error: ErrInvalidCredentials for an unknown email or a wrong password
*/
func (service *Service) IssueToken(context context.Context, email, password string) (*TokenResponse, error) {
	email = normalizeEmail(email)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).Required(FieldPassword, password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	account, err := service.accounts.FindByEmail(context, email)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			sec.CheckPasswordHash(password, decoyHash())
			service.logger.Warn("token_denied", slog.String("reason", "unknown_email"))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(password, account.PasswordHash) {
		service.logger.Warn("token_denied", slog.String("reason", "bad_password"), slog.String("account_id", account.ID))
		return nil, ErrInvalidCredentials
	}

	token, err := service.tokens.GenerateAccessToken(account.ID, account.Email, service.tokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	service.logger.Info("token_issued", slog.String("account_id", account.ID))
	return &TokenResponse{
		AccessToken: token,
		TokenType:   constants.TokenTypeBearer,
		ExpiresIn:   int64(service.tokenTTL / time.Second),
	}, nil
}

// Logout revokes the token described by claims for the rest of its lifetime.
func (service *Service) Logout(context context.Context, claims *sec.AuthClaims) error {
	if claims == nil || claims.ID == "" {
		return apperr.Unauthorized("Authentication required")
	}

	// Verification still accepts the token for ClockSkew past its expiry.
	remaining := claims.Remaining(time.Now()) + sec.ClockSkew
	if remaining <= 0 {
		return nil
	}

	if err := service.revocations.Revoke(context, claims.ID, remaining); err != nil {
		return apperr.Internal(err)
	}

	service.logger.Info("token_revoked", slog.String("account_id", claims.UserID), slog.Duration("remaining", remaining))
	return nil
}

// VerifyToken validates the signature and rejects revoked tokens. It is the
// verifier used by the authentication middleware.
func (service *Service) VerifyToken(context context.Context, tokenString string) (*sec.AuthClaims, error) {
	claims, err := service.tokens.VerifyToken(tokenString)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}

	revoked, err := service.revocations.IsRevoked(context, claims.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// CreateAccount provisions an API account. It is used by the seeder CLI.
func (service *Service) CreateAccount(context context.Context, email, password string) (*Account, error) {
	email = normalizeEmail(email)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).
		MaxLen(FieldEmail, email, EmailMaxLen).
		Email(FieldEmail, email).
		Required(FieldPassword, password).
		MinLen(FieldPassword, password, PasswordMinLen).
		MaxLen(FieldPassword, password, PasswordMaxLen)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	hash, err := sec.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	account := &Account{
		ID:           uuidv7.New(),
		Email:        email,
		PasswordHash: hash,
	}
	if err := service.accounts.CreateAccount(context, account); err != nil {
		return nil, err
	}

	service.logger.Info("account_created", slog.String("account_id", account.ID))
	return account, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(validate.Normalize(email))
}
