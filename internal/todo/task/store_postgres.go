// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

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

// NewPostgresRepository creates a new PostgreSQL implementation of the task Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var (
	taskColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s",
		schema.TodoTask.ID, schema.TodoTask.Title, schema.TodoTask.ListID,
		schema.TodoTask.Completed, schema.TodoTask.CreatedAt, schema.TodoTask.UpdatedAt)

	taskInsertQuery = fmt.Sprintf("INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)",
		schema.TodoTask.Table, taskColumns)

	taskByListQuery = fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 ORDER BY %s, %s",
		taskColumns, schema.TodoTask.Table, schema.TodoTask.ListID,
		schema.TodoTask.CreatedAt, schema.TodoTask.ID)

	taskInListQuery = fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 AND %s = $2",
		taskColumns, schema.TodoTask.Table, schema.TodoTask.ID, schema.TodoTask.ListID)

	taskUpdateQuery = fmt.Sprintf("UPDATE %s SET %s = $3, %s = $4, %s = $5 WHERE %s = $1 AND %s = $2",
		schema.TodoTask.Table, schema.TodoTask.Title, schema.TodoTask.Completed, schema.TodoTask.UpdatedAt,
		schema.TodoTask.ID, schema.TodoTask.ListID)

	taskDeleteQuery = fmt.Sprintf("DELETE FROM %s WHERE %s = $1 AND %s = $2 RETURNING %s",
		schema.TodoTask.Table, schema.TodoTask.ID, schema.TodoTask.ListID, taskColumns)

	taskDeleteByListQuery = fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.TodoTask.Table, schema.TodoTask.ListID)
)

// Create inserts a new row into todo.task.
func (repository *PostgresRepository) Create(context context.Context, task *Task) error {
	_, err := repository.pool.Exec(context, taskInsertQuery,
		task.ID,
		task.Title,
		task.ListID,
		task.Completed,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("List").WithCause(err)
		}
		return dberr.Wrap(err, "postgres_task_repo_create")
	}
	return nil
}

// FindByList returns the tasks of listID ordered by creation time.
func (repository *PostgresRepository) FindByList(context context.Context, listID string) ([]*Task, error) {
	rows, err := repository.pool.Query(context, taskByListQuery, listID)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_task_repo_find_by_list")
	}

	tasks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Task, error) {
		return scanTask(row)
	})
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_task_repo_scan")
	}

	return tasks, nil
}

// FindInList returns the task when both id and list match.
func (repository *PostgresRepository) FindInList(context context.Context, id, listID string) (*Task, error) {
	task, err := scanTask(repository.pool.QueryRow(context, taskInListQuery, id, listID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Task")
		}
		return nil, dberr.Wrap(err, "postgres_task_repo_find_in_list")
	}
	return task, nil
}

// Update writes the mutable fields of task.
func (repository *PostgresRepository) Update(context context.Context, task *Task) error {
	tag, err := repository.pool.Exec(context, taskUpdateQuery,
		task.ID,
		task.ListID,
		task.Title,
		task.Completed,
		task.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_task_repo_update")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Task")
	}
	return nil
}

// Delete removes one task of listID.
func (repository *PostgresRepository) Delete(context context.Context, id, listID string) (*Task, error) {
	task, err := scanTask(repository.pool.QueryRow(context, taskDeleteQuery, id, listID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Task")
		}
		return nil, dberr.Wrap(err, "postgres_task_repo_delete")
	}
	return task, nil
}

// DeleteByList removes every task of listID. After a list delete the cascade
// has usually removed them already and the count is zero.
func (repository *PostgresRepository) DeleteByList(context context.Context, listID string) (int64, error) {
	tag, err := repository.pool.Exec(context, taskDeleteByListQuery, listID)
	if err != nil {
		return 0, dberr.Wrap(err, "postgres_task_repo_delete_by_list")
	}
	return tag.RowsAffected(), nil
}

func scanTask(row pgx.Row) (*Task, error) {
	task := &Task{}
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.ListID,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}
