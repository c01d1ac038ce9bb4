// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package locale

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/lexicon/internal/platform/database/schema"
	"github.com/taibuivan/lexicon/internal/platform/dberr"
)

var violations = dberr.Violations{
	dberr.NoRows:                      ErrLocaleNotFound,
	schema.CoreLocale.CodeKey:         ErrDuplicateCode,
	schema.CoreTranslation.LocaleFKey: ErrLocaleInUse,
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectColumns = fmt.Sprintf(`%s, %s, %s, %s, %s`,
	schema.CoreLocale.ID,
	schema.CoreLocale.Code,
	schema.CoreLocale.Name,
	schema.CoreLocale.CreatedAt,
	schema.CoreLocale.UpdatedAt,
)

func (repository *PostgresRepository) ListLocales(context context.Context) ([]*Locale, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY %s ASC;
	`,
		selectColumns,
		schema.CoreLocale.Table,
		schema.CoreLocale.Code,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_locales")
	}
	defer rows.Close()

	locales := []*Locale{}
	for rows.Next() {
		l := &Locale{}
		if err := rows.Scan(&l.ID, &l.Code, &l.Name, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_locale")
		}
		locales = append(locales, l)
	}

	return locales, dberr.Wrap(rows.Err(), "list_locales")
}

func (repository *PostgresRepository) GetLocale(context context.Context, id int64) (*Locale, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.CoreLocale.Table, schema.CoreLocale.ID,
	)

	l := &Locale{}
	err := repository.db.QueryRow(context, query, id).Scan(&l.ID, &l.Code, &l.Name, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_locale", violations)
	}
	return l, nil
}

func (repository *PostgresRepository) GetLocaleByCode(context context.Context, code string) (*Locale, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns, schema.CoreLocale.Table, schema.CoreLocale.Code,
	)

	l := &Locale{}
	err := repository.db.QueryRow(context, query, code).Scan(&l.ID, &l.Code, &l.Name, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_locale_by_code", violations)
	}
	return l, nil
}

func (repository *PostgresRepository) CreateLocale(context context.Context, l *Locale) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.CoreLocale.Table, schema.CoreLocale.Code, schema.CoreLocale.Name,
		schema.CoreLocale.CreatedAt, schema.CoreLocale.UpdatedAt,
		schema.CoreLocale.ID, schema.CoreLocale.CreatedAt, schema.CoreLocale.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, l.Code, l.Name).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	return dberr.Wrap(err, "create_locale", violations)
}

func (repository *PostgresRepository) UpdateLocale(context context.Context, l *Locale) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CoreLocale.Table,
		schema.CoreLocale.Code, schema.CoreLocale.Name, schema.CoreLocale.UpdatedAt,
		schema.CoreLocale.ID,
		schema.CoreLocale.CreatedAt, schema.CoreLocale.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, l.ID, l.Code, l.Name).Scan(&l.CreatedAt, &l.UpdatedAt)
	return dberr.Wrap(err, "update_locale", violations)
}

func (repository *PostgresRepository) DeleteLocale(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreLocale.Table, schema.CoreLocale.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_locale", violations)
	}

	if cmd.RowsAffected() == 0 {
		return ErrLocaleNotFound
	}
	return nil
}
