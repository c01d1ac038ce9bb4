// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// AccountRepository persists API accounts.
type AccountRepository interface {
	// FindByEmail returns ErrAccountNotFound when no account matches.
	FindByEmail(context context.Context, email string) (*Account, error)

	// CreateAccount fails with ErrDuplicateEmail when the email is taken.
	CreateAccount(context context.Context, account *Account) error
}

// RevocationStore remembers logged out token ids until they expire.
type RevocationStore interface {
	Revoke(context context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(context context.Context, tokenID string) (bool, error)
}
