// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/lexicon/internal/platform/constants"
	"github.com/taibuivan/lexicon/internal/platform/database/schema"
	"github.com/taibuivan/lexicon/internal/platform/dberr"
	"github.com/taibuivan/lexicon/pkg/query"
)

// violations turns storage constraint failures into client errors. Uniqueness
// and referential integrity are never checked in Go before writing.
var violations = dberr.Violations{
	dberr.NoRows:                        ErrTranslationNotFound,
	schema.CoreTranslation.LocaleKeyKey: ErrDuplicateKey,
	schema.CoreTranslation.LocaleFKey:   ErrUnknownLocale,
	schema.CoreTagTranslation.TagFKey:   ErrUnknownTag,
}

var exportViolations = dberr.Violations{
	dberr.NoRows: ErrLocaleNotFound,
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Query Fragments

// tagsColumn aggregates the tag ids of translation t, ascending.
var tagsColumn = fmt.Sprintf(
	`COALESCE((SELECT array_agg(tt.%[1]s ORDER BY tt.%[1]s) FROM %[2]s tt WHERE tt.%[3]s = t.%[4]s), '{}'::bigint[])`,
	schema.CoreTagTranslation.TagID,
	schema.CoreTagTranslation.Table,
	schema.CoreTagTranslation.TranslationID,
	schema.CoreTranslation.ID,
)

var selectColumns = fmt.Sprintf(`t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, %s`,
	schema.CoreTranslation.ID,
	schema.CoreTranslation.LocaleID,
	schema.CoreTranslation.Key,
	schema.CoreTranslation.Value,
	schema.CoreTranslation.CreatedAt,
	schema.CoreTranslation.UpdatedAt,
	tagsColumn,
)

func scanTranslation(row pgx.Row) (*Translation, error) {
	t := &Translation{}
	err := row.Scan(&t.ID, &t.LocaleID, &t.Key, &t.Value, &t.CreatedAt, &t.UpdatedAt, &t.Tags)
	return t, err
}

// # Entity Store

func (repository *PostgresRepository) GetTranslation(context context.Context, id int64) (*Translation, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s t WHERE t.%s = $1`,
		selectColumns, schema.CoreTranslation.Table, schema.CoreTranslation.ID,
	)

	t, err := scanTranslation(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_translation", violations)
	}
	return t, nil
}

/*
CreateTranslation persists a translation and its tag links.

Description: The row insert and the join inserts share one transaction, so a
duplicate key, an unknown locale or an unknown tag leaves nothing behind. The
unique (localeid, key) constraint is what arbitrates concurrent creates.

Parameters:
  - context: context.Context for request scoping and cancellation
  - t: *Translation (Tags must already be de-duplicated)

Returns:
  - error: ErrDuplicateKey, ErrUnknownLocale, ErrUnknownTag or a wrapped storage error
*/
func (repository *PostgresRepository) CreateTranslation(context context.Context, t *Translation) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_translation")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.CoreTranslation.Table,
		schema.CoreTranslation.LocaleID, schema.CoreTranslation.Key, schema.CoreTranslation.Value,
		schema.CoreTranslation.CreatedAt, schema.CoreTranslation.UpdatedAt,
		schema.CoreTranslation.ID, schema.CoreTranslation.CreatedAt, schema.CoreTranslation.UpdatedAt,
	)

	err = transaction.QueryRow(context, query, t.LocaleID, t.Key, t.Value).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_translation", violations)
	}

	if err := repository.linkTags(context, transaction, t.ID, t.Tags); err != nil {
		return err
	}

	return dberr.Wrap(transaction.Commit(context), "commit_create_translation", violations)
}

/*
UpdateTranslation rewrites locale, key and value of an existing translation.

Description: When replaceTags is set the join table is brought to exactly
t.Tags: links outside the new set are deleted, missing ones inserted, and links
present in both are left untouched. Replaying the same set is a no-op. When
replaceTags is unset the current tag set is read back into t.Tags.

Returns:
  - error: ErrTranslationNotFound, ErrDuplicateKey, ErrUnknownLocale, ErrUnknownTag
*/
func (repository *PostgresRepository) UpdateTranslation(context context.Context, t *Translation, replaceTags bool) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_update_translation")
	}
	defer transaction.Rollback(context)

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CoreTranslation.Table,
		schema.CoreTranslation.LocaleID, schema.CoreTranslation.Key, schema.CoreTranslation.Value,
		schema.CoreTranslation.UpdatedAt,
		schema.CoreTranslation.ID,
		schema.CoreTranslation.CreatedAt, schema.CoreTranslation.UpdatedAt,
	)

	err = transaction.QueryRow(context, query, t.ID, t.LocaleID, t.Key, t.Value).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_translation", violations)
	}

	if replaceTags {
		if err := repository.syncTags(context, transaction, t.ID, t.Tags); err != nil {
			return err
		}
	} else {
		tagsQuery := fmt.Sprintf(`SELECT %s FROM %s t WHERE t.%s = $1`,
			tagsColumn, schema.CoreTranslation.Table, schema.CoreTranslation.ID,
		)
		if err := transaction.QueryRow(context, tagsQuery, t.ID).Scan(&t.Tags); err != nil {
			return dberr.Wrap(err, "read_translation_tags", violations)
		}
	}

	return dberr.Wrap(transaction.Commit(context), "commit_update_translation", violations)
}

// DeleteTranslation removes the join rows explicitly before the row itself so
// the no-orphan rule does not depend on the cascade alone.
func (repository *PostgresRepository) DeleteTranslation(context context.Context, id int64) error {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_translation")
	}
	defer transaction.Rollback(context)

	unlinkQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreTagTranslation.Table, schema.CoreTagTranslation.TranslationID,
	)
	if _, err := transaction.Exec(context, unlinkQuery, id); err != nil {
		return dberr.Wrap(err, "unlink_translation_tags")
	}

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreTranslation.Table, schema.CoreTranslation.ID)
	cmd, err := transaction.Exec(context, deleteQuery, id)
	if err != nil {
		return dberr.Wrap(err, "delete_translation")
	}

	if cmd.RowsAffected() == 0 {
		return ErrTranslationNotFound
	}

	return dberr.Wrap(transaction.Commit(context), "commit_delete_translation")
}

// syncTags deletes links outside tagIDs, then inserts the rest if absent.
func (repository *PostgresRepository) syncTags(context context.Context, transaction pgx.Tx, translationID int64, tagIDs []int64) error {
	pruneQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND NOT (%s = ANY($2))`,
		schema.CoreTagTranslation.Table, schema.CoreTagTranslation.TranslationID, schema.CoreTagTranslation.TagID,
	)
	if _, err := transaction.Exec(context, pruneQuery, translationID, tagIDs); err != nil {
		return dberr.Wrap(err, "prune_translation_tags")
	}

	return repository.linkTags(context, transaction, translationID, tagIDs)
}

/*
linkTags inserts the (translation, tag) pairs that are not present yet.

Description: All inserts are queued on one pgx.Batch and sent in a single
round trip. ON CONFLICT DO NOTHING makes the call idempotent, and the tag
foreign key turns an unknown tag id into ErrUnknownTag.
*/
func (repository *PostgresRepository) linkTags(context context.Context, transaction pgx.Tx, translationID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		schema.CoreTagTranslation.Table, schema.CoreTagTranslation.TranslationID, schema.CoreTagTranslation.TagID,
	)

	batch := &pgx.Batch{}
	for _, tagID := range tagIDs {
		batch.Queue(insertQuery, translationID, tagID)
	}

	if err := transaction.SendBatch(context, batch).Close(); err != nil {
		return dberr.Wrap(err, "link_translation_tags", violations)
	}
	return nil
}

// # Query Engine

// ListTranslations filters by locale code, key prefix, tag name and an
// optional AIP-160 expression. Count and page travel in one batch.
func (repository *PostgresRepository) ListTranslations(context context.Context, f Filter, limit, offset int) ([]*Translation, int, error) {
	var (
		conditions []string
		args       []any
	)

	if f.LocaleCode != "" {
		args = append(args, f.LocaleCode)
		conditions = append(conditions, fmt.Sprintf(`t.%s = (SELECT l.%s FROM %s l WHERE l.%s = %s)`,
			schema.CoreTranslation.LocaleID,
			schema.CoreLocale.ID, schema.CoreLocale.Table, schema.CoreLocale.Code,
			query.Placeholder(len(args)),
		))
	}

	if f.KeyPrefix != "" {
		args = append(args, query.LikePrefix(f.KeyPrefix))
		conditions = append(conditions, fmt.Sprintf(`t.%s LIKE %s`, schema.CoreTranslation.Key, query.Placeholder(len(args))))
	}

	if f.TagName != "" {
		args = append(args, f.TagName)
		conditions = append(conditions, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM %s tt JOIN %s g ON g.%s = tt.%s WHERE tt.%s = t.%s AND g.%s = %s)`,
			schema.CoreTagTranslation.Table, schema.CoreTag.Table,
			schema.CoreTag.ID, schema.CoreTagTranslation.TagID,
			schema.CoreTagTranslation.TranslationID, schema.CoreTranslation.ID,
			schema.CoreTag.Name, query.Placeholder(len(args)),
		))
	}

	clause, args, err := compileFilter(f.Expression, args)
	if err != nil {
		return nil, 0, invalidFilter(err)
	}
	if clause != "" {
		conditions = append(conditions, clause)
	}

	return repository.page(context, "list_translations", conditions, args, limit, offset)
}

// SearchTranslations matches term as a case-insensitive substring of key or
// value. Both columns carry trigram indexes.
func (repository *PostgresRepository) SearchTranslations(context context.Context, term string, limit, offset int) ([]*Translation, int, error) {
	args := []any{query.LikeContains(term)}
	conditions := []string{fmt.Sprintf(`(t.%s ILIKE $1 OR t.%s ILIKE $1)`,
		schema.CoreTranslation.Key, schema.CoreTranslation.Value,
	)}

	return repository.page(context, "search_translations", conditions, args, limit, offset)
}

// page runs the count and one ordered page of translations matching conditions.
func (repository *PostgresRepository) page(context context.Context, action string, conditions []string, args []any, limit, offset int) ([]*Translation, int, error) {
	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s t %s`, schema.CoreTranslation.Table, where)
	pageQuery := fmt.Sprintf(`
		SELECT %s
		FROM %s t
		%s
		ORDER BY t.%s ASC
		LIMIT %s OFFSET %s
	`,
		selectColumns, schema.CoreTranslation.Table, where, schema.CoreTranslation.ID,
		query.Placeholder(len(args)+1), query.Placeholder(len(args)+2),
	)

	batch := &pgx.Batch{}
	batch.Queue(countQuery, args...)
	batch.Queue(pageQuery, append(args, limit, offset)...)

	results := repository.db.SendBatch(context, batch)
	defer results.Close()

	var total int
	if err := results.QueryRow().Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_"+action)
	}

	rows, err := results.Query()
	if err != nil {
		return nil, 0, dberr.Wrap(err, action)
	}
	defer rows.Close()

	translations := []*Translation{}
	for rows.Next() {
		t, err := scanTranslation(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_translation")
		}
		translations = append(translations, t)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, action)
	}
	return translations, total, nil
}

// ExportLocale streams key/value pairs straight from the cursor. Rows are
// never buffered, and cancelling the context aborts the query.
func (repository *PostgresRepository) ExportLocale(context context.Context, localeCode string, emit ExportFunc) error {
	localeQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.CoreLocale.ID, schema.CoreLocale.Table, schema.CoreLocale.Code,
	)
	exportQuery := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		schema.CoreTranslation.Key, schema.CoreTranslation.Value,
		schema.CoreTranslation.Table, schema.CoreTranslation.LocaleID, schema.CoreTranslation.Key,
	)
	// The pool-wide statement_timeout is sized for CRUD requests.
	timeoutQuery := fmt.Sprintf(`SET LOCAL statement_timeout = %d`, constants.ExportTimeout.Milliseconds())

	// One snapshot for the whole stream, so concurrent writes never tear it.
	options := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

	return pgx.BeginTxFunc(context, repository.db, options, func(tx pgx.Tx) error {
		if _, err := tx.Exec(context, timeoutQuery); err != nil {
			return dberr.Wrap(err, "export_set_timeout")
		}

		var localeID int64
		if err := tx.QueryRow(context, localeQuery, localeCode).Scan(&localeID); err != nil {
			return dberr.Wrap(err, "export_resolve_locale", exportViolations)
		}

		rows, err := tx.Query(context, exportQuery, localeID)
		if err != nil {
			return dberr.Wrap(err, "export_locale")
		}
		defer rows.Close()

		var key, value string
		for rows.Next() {
			if err := rows.Scan(&key, &value); err != nil {
				return dberr.Wrap(err, "scan_export_row")
			}
			if err := emit(key, value); err != nil {
				return err
			}
		}
		return dberr.Wrap(rows.Err(), "export_locale")
	})
}
