// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package list

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
	"github.com/taibuivan/tasklist/internal/platform/database/schema"
	"github.com/taibuivan/tasklist/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the list Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var (
	listColumns = fmt.Sprintf("%s, %s, %s, %s, %s",
		schema.TodoList.ID, schema.TodoList.Title, schema.TodoList.UserID,
		schema.TodoList.CreatedAt, schema.TodoList.UpdatedAt)

	listInsertQuery = fmt.Sprintf("INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5)",
		schema.TodoList.Table, listColumns)

	listByOwnerQuery = fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 ORDER BY %s, %s",
		listColumns, schema.TodoList.Table, schema.TodoList.UserID,
		schema.TodoList.CreatedAt, schema.TodoList.ID)

	listOwnedQuery = fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 AND %s = $2",
		listColumns, schema.TodoList.Table, schema.TodoList.ID, schema.TodoList.UserID)

	listUpdateQuery = fmt.Sprintf("UPDATE %s SET %s = $3, %s = $4 WHERE %s = $1 AND %s = $2",
		schema.TodoList.Table, schema.TodoList.Title, schema.TodoList.UpdatedAt,
		schema.TodoList.ID, schema.TodoList.UserID)

	listDeleteQuery = fmt.Sprintf("DELETE FROM %s WHERE %s = $1 AND %s = $2 RETURNING %s",
		schema.TodoList.Table, schema.TodoList.ID, schema.TodoList.UserID, listColumns)
)

// Create inserts a new row into todo.list.
func (repository *PostgresRepository) Create(context context.Context, list *List) error {
	_, err := repository.pool.Exec(context, listInsertQuery,
		list.ID,
		list.Title,
		list.UserID,
		list.CreatedAt,
		list.UpdatedAt,
	)
	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("User").WithCause(err)
		}
		return dberr.Wrap(err, "postgres_list_repo_create")
	}
	return nil
}

// FindByOwner returns the lists of userID ordered by creation time.
func (repository *PostgresRepository) FindByOwner(context context.Context, userID string) ([]*List, error) {
	rows, err := repository.pool.Query(context, listByOwnerQuery, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_list_repo_find_by_owner")
	}

	lists, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*List, error) {
		return scanList(row)
	})
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_list_repo_scan")
	}

	return lists, nil
}

// FindOwned returns the list when both id and owner match.
func (repository *PostgresRepository) FindOwned(context context.Context, id, userID string) (*List, error) {
	list, err := scanList(repository.pool.QueryRow(context, listOwnedQuery, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("List")
		}
		return nil, dberr.Wrap(err, "postgres_list_repo_find_owned")
	}
	return list, nil
}

// Update writes the title and modification time of an owned list.
func (repository *PostgresRepository) Update(context context.Context, list *List) error {
	tag, err := repository.pool.Exec(context, listUpdateQuery,
		list.ID,
		list.UserID,
		list.Title,
		list.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_list_repo_update")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("List")
	}
	return nil
}

// Delete removes an owned list. Its tasks go with it through ON DELETE CASCADE.
func (repository *PostgresRepository) Delete(context context.Context, id, userID string) (*List, error) {
	list, err := scanList(repository.pool.QueryRow(context, listDeleteQuery, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("List")
		}
		return nil, dberr.Wrap(err, "postgres_list_repo_delete")
	}
	return list, nil
}

func scanList(row pgx.Row) (*List, error) {
	list := &List{}
	err := row.Scan(
		&list.ID,
		&list.Title,
		&list.UserID,
		&list.CreatedAt,
		&list.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return list, nil
}
