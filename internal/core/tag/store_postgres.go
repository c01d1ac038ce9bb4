// Copyright (c) 2026 Lexicon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/lexicon/internal/platform/database/schema"
	"github.com/taibuivan/lexicon/internal/platform/dberr"
	"github.com/taibuivan/lexicon/pkg/query"
)

var violations = dberr.Violations{
	dberr.NoRows:           ErrTagNotFound,
	schema.CoreTag.NameKey: ErrDuplicateName,
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectColumns = fmt.Sprintf(`%s, %s, %s, %s`,
	schema.CoreTag.ID, schema.CoreTag.Name, schema.CoreTag.CreatedAt, schema.CoreTag.UpdatedAt,
)

// ListTags runs the count and the page query in one round trip.
//
// The prefix predicate is written against lower(name) so it is served by the
// text_pattern_ops expression index, and the page is ordered by the primary key.
func (repository *PostgresRepository) ListTags(context context.Context, f Filter, limit, offset int) ([]*Tag, int, error) {
	var (
		conditions []string
		args       []any
	)

	if f.Search != "" {
		args = append(args, query.LikePrefix(strings.ToLower(f.Search)))
		conditions = append(conditions, fmt.Sprintf(`lower(%s) LIKE %s`, schema.CoreTag.Name, query.Placeholder(len(args))))
	}

	if len(f.IDs) > 0 {
		args = append(args, f.IDs)
		conditions = append(conditions, fmt.Sprintf(`%s = ANY(%s)`, schema.CoreTag.ID, query.Placeholder(len(args))))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s %s`, schema.CoreTag.Table, where)
	pageQuery := fmt.Sprintf(`
		SELECT %s
		FROM %s
		%s
		ORDER BY %s ASC
		LIMIT %s OFFSET %s
	`,
		selectColumns, schema.CoreTag.Table, where, schema.CoreTag.ID,
		query.Placeholder(len(args)+1), query.Placeholder(len(args)+2),
	)

	batch := &pgx.Batch{}
	batch.Queue(countQuery, args...)
	batch.Queue(pageQuery, append(args, limit, offset)...)

	results := repository.db.SendBatch(context, batch)
	defer results.Close()

	var total int
	if err := results.QueryRow().Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_tags")
	}

	rows, err := results.Query()
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_tags")
	}
	defer rows.Close()

	tags := []*Tag{}
	for rows.Next() {
		t := &Tag{}
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_tag")
		}
		tags = append(tags, t)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_tags")
	}
	return tags, total, nil
}

func (repository *PostgresRepository) GetTag(context context.Context, id int64) (*Tag, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, schema.CoreTag.Table, schema.CoreTag.ID)

	t := &Tag{}
	err := repository.db.QueryRow(context, query, id).Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_tag", violations)
	}
	return t, nil
}

func (repository *PostgresRepository) CreateTag(context context.Context, t *Tag) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.CoreTag.Table, schema.CoreTag.Name, schema.CoreTag.CreatedAt, schema.CoreTag.UpdatedAt,
		schema.CoreTag.ID, schema.CoreTag.CreatedAt, schema.CoreTag.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, t.Name).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	return dberr.Wrap(err, "create_tag", violations)
}

func (repository *PostgresRepository) UpdateTag(context context.Context, t *Tag) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.CoreTag.Table, schema.CoreTag.Name, schema.CoreTag.UpdatedAt, schema.CoreTag.ID,
		schema.CoreTag.CreatedAt, schema.CoreTag.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, t.ID, t.Name).Scan(&t.CreatedAt, &t.UpdatedAt)
	return dberr.Wrap(err, "update_tag", violations)
}

// DeleteTag removes the tag. Its translation links go with it (ON DELETE CASCADE).
func (repository *PostgresRepository) DeleteTag(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreTag.Table, schema.CoreTag.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_tag", violations)
	}

	if cmd.RowsAffected() == 0 {
		return ErrTagNotFound
	}
	return nil
}
