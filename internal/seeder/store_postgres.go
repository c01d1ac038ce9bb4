// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package seeder

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/lexicon/internal/platform/database/schema"
	"github.com/taibuivan/lexicon/internal/platform/dberr"
)

// PostgresWriter inserts each batch with one INSERT ... SELECT unnest(...)
// statement. ON CONFLICT DO NOTHING against the natural keys makes batches
// idempotent.
type PostgresWriter struct {
	pool *pgxpool.Pool
}

func NewPostgresWriter(pool *pgxpool.Pool) *PostgresWriter {
	return &PostgresWriter{pool: pool}
}

func (writer *PostgresWriter) InsertLocales(context context.Context, rows []LocaleRow) (int64, error) {
	codes := make([]string, len(rows))
	names := make([]string, len(rows))
	for i, row := range rows {
		codes[i], names[i] = row.Code, row.Name
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		SELECT * FROM unnest($1::text[], $2::text[])
		ON CONFLICT (%s) DO NOTHING
	`, schema.CoreLocale.Table, schema.CoreLocale.Code, schema.CoreLocale.Name, schema.CoreLocale.Code)

	return writer.exec(context, "seed_locales", query, codes, names)
}

func (writer *PostgresWriter) InsertTags(context context.Context, names []string) (int64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		SELECT unnest($1::text[])
		ON CONFLICT (%s) DO NOTHING
	`, schema.CoreTag.Table, schema.CoreTag.Name, schema.CoreTag.Name)

	return writer.exec(context, "seed_tags", query, names)
}

func (writer *PostgresWriter) InsertTranslations(context context.Context, rows []TranslationRow) (int64, error) {
	localeIDs := make([]int64, len(rows))
	keys := make([]string, len(rows))
	values := make([]string, len(rows))
	for i, row := range rows {
		localeIDs[i], keys[i], values[i] = row.LocaleID, row.Key, row.Value
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		SELECT * FROM unnest($1::bigint[], $2::text[], $3::text[])
		ON CONFLICT (%s, %s) DO NOTHING
	`,
		schema.CoreTranslation.Table,
		schema.CoreTranslation.LocaleID, schema.CoreTranslation.Key, schema.CoreTranslation.Value,
		schema.CoreTranslation.LocaleID, schema.CoreTranslation.Key,
	)

	return writer.exec(context, "seed_translations", query, localeIDs, keys, values)
}

func (writer *PostgresWriter) InsertAssociations(context context.Context, rows []AssociationRow) (int64, error) {
	translationIDs := make([]int64, len(rows))
	tagIDs := make([]int64, len(rows))
	for i, row := range rows {
		translationIDs[i], tagIDs[i] = row.TranslationID, row.TagID
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		SELECT * FROM unnest($1::bigint[], $2::bigint[])
		ON CONFLICT DO NOTHING
	`, schema.CoreTagTranslation.Table, schema.CoreTagTranslation.TranslationID, schema.CoreTagTranslation.TagID)

	return writer.exec(context, "seed_associations", query, translationIDs, tagIDs)
}

func (writer *PostgresWriter) exec(context context.Context, action, query string, args ...any) (int64, error) {
	tag, err := writer.pool.Exec(context, query, args...)
	if err != nil {
		return 0, dberr.Wrap(err, action)
	}
	return tag.RowsAffected(), nil
}

func (writer *PostgresWriter) LocaleIDs(context context.Context) (map[string]int64, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s`, schema.CoreLocale.Code, schema.CoreLocale.ID, schema.CoreLocale.Table)

	rows, err := writer.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "seed_locale_ids")
	}
	defer rows.Close()

	ids := map[string]int64{}
	var (
		code string
		id   int64
	)
	for rows.Next() {
		if err := rows.Scan(&code, &id); err != nil {
			return nil, dberr.Wrap(err, "scan_locale_id")
		}
		ids[code] = id
	}
	return ids, dberr.Wrap(rows.Err(), "seed_locale_ids")
}

func (writer *PostgresWriter) TagIDs(context context.Context) ([]int64, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s`, schema.CoreTag.ID, schema.CoreTag.Table, schema.CoreTag.ID)
	return writer.ids(context, "seed_tag_ids", query)
}

func (writer *PostgresWriter) TranslationIDs(context context.Context, offset, limit int) ([]int64, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s LIMIT $1 OFFSET $2`,
		schema.CoreTranslation.ID, schema.CoreTranslation.Table, schema.CoreTranslation.ID,
	)
	return writer.ids(context, "seed_translation_ids", query, limit, offset)
}

func (writer *PostgresWriter) ids(context context.Context, action, query string, args ...any) ([]int64, error) {
	rows, err := writer.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return ids, nil
}
