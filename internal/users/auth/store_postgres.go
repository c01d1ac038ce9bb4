// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/lexicon/internal/platform/database/schema"
	"github.com/taibuivan/lexicon/internal/platform/dberr"
)

var violations = dberr.Violations{
	dberr.NoRows:                ErrAccountNotFound,
	schema.UserAccount.EmailKey: ErrDuplicateEmail,
}

// PostgresAccountRepository implements [AccountRepository] on users.account.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

func (repository *PostgresAccountRepository) FindByEmail(context context.Context, email string) (*Account, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.PasswordHash, schema.UserAccount.CreatedAt,
		schema.UserAccount.Table, schema.UserAccount.Email,
	)

	account := &Account{}
	err := repository.pool.QueryRow(context, query, email).Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_account_by_email", violations)
	}
	return account, nil
}

/*
CreateAccount inserts a new account.

Description: Uniqueness of the email is left to the account_email_key
constraint, so concurrent provisioning of the same email yields exactly one
row and ErrDuplicateEmail for the others.
*/
func (repository *PostgresAccountRepository) CreateAccount(context context.Context, account *Account) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, NOW()) RETURNING %s`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.PasswordHash, schema.UserAccount.CreatedAt,
		schema.UserAccount.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query, account.ID, account.Email, account.PasswordHash).Scan(&account.CreatedAt)
	return dberr.Wrap(err, "create_account", violations)
}
