// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth owns API accounts and the access tokens issued to them.

Every endpoint except token issuance requires a bearer token. Tokens are RS256
JWTs carrying the account id and email, so verification needs no database
round-trip. Logout adds the token id to a Redis deny list until the token
would have expired anyway.
*/
package auth

import (
	"time"

	"github.com/taibuivan/lexicon/internal/platform/apperr"
)

// Account is an API client allowed to request tokens.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// TokenResponse is the body returned by POST /auth/token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// # Field Identifiers

const (
	FieldEmail    = "email"
	FieldPassword = "password"

	EmailMaxLen    = 320
	PasswordMinLen = 8
	PasswordMaxLen = 72
)

var (
	ErrInvalidCredentials = apperr.Unauthorized("Invalid email or password")
	ErrTokenRevoked       = apperr.Unauthorized("Token has been revoked")
	ErrDuplicateEmail     = apperr.ConstraintViolation("Email is already registered", FieldEmail)
	ErrAccountNotFound    = apperr.NotFound("Account")
)
