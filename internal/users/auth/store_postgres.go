// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
	"github.com/taibuivan/tasklist/internal/platform/database/schema"
	"github.com/taibuivan/tasklist/internal/platform/dberr"
	"github.com/taibuivan/tasklist/pkg/uuid"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var (
	userColumns = fmt.Sprintf("%s, %s, %s, %s, %s",
		schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.Password,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt)

	userInsertQuery = fmt.Sprintf("INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5)",
		schema.UserAccount.Table, userColumns)

	userUpdateQuery = fmt.Sprintf("UPDATE %s SET %s = $2, %s = $3, %s = $4 WHERE %s = $1",
		schema.UserAccount.Table, schema.UserAccount.Email, schema.UserAccount.Password,
		schema.UserAccount.UpdatedAt, schema.UserAccount.ID)

	userByEmailQuery = fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		userColumns, schema.UserAccount.Table, schema.UserAccount.Email)

	userByIDQuery = fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		userColumns, schema.UserAccount.Table, schema.UserAccount.ID)
)

/*
Create persists a new user record into the users.account table.

Returns:
  - error: apperr.DuplicateEmail on the email unique index, or wrapped driver errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	_, err := repository.pool.Exec(context, userInsertQuery,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.DuplicateEmail().WithCause(err)
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
Update persists the email and password hash of an existing user.

Returns:
  - error: apperr.NotFound, apperr.DuplicateEmail or wrapped driver errors
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	tag, err := repository.pool.Exec(context, userUpdateQuery,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.DuplicateEmail().WithCause(err)
		}
		return fmt.Errorf("postgres_user_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Returns:
  - *User: Account entity without sessions
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	user, err := scanUser(repository.pool.QueryRow(context, userByEmailQuery, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}
	return user, nil
}

/*
FindByID retrieves a user record by their unique ID.

Returns:
  - *User: Account entity without sessions
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	user, err := scanUser(repository.pool.QueryRow(context, userByIDQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// # Session Repository

// PostgresSessionRepository implements [SessionRepository] with one row per session.
//
// Append is a single INSERT, so concurrent logins for one user cannot overwrite each other.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new PostgreSQL implementation of SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

var (
	sessionInsertQuery = fmt.Sprintf("INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)",
		schema.UserSession.Table, schema.UserSession.ID, schema.UserSession.UserID,
		schema.UserSession.TokenHash, schema.UserSession.ExpiresAt)

	sessionListQuery = fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s = $1 ORDER BY %s, %s",
		schema.UserSession.TokenHash, schema.UserSession.ExpiresAt, schema.UserSession.Table,
		schema.UserSession.UserID, schema.UserSession.CreatedAt, schema.UserSession.ID)

	sessionExistsQuery = fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)",
		schema.UserSession.Table, schema.UserSession.UserID, schema.UserSession.TokenHash)
)

/*
Append inserts one session row for userID.

Returns:
  - error: apperr.NotFound when the user does not exist, or wrapped driver errors
*/
func (repository *PostgresSessionRepository) Append(context context.Context, userID string, session Session) error {
	_, err := repository.pool.Exec(context, sessionInsertQuery,
		uuid.New(),
		userID,
		session.TokenHash,
		session.ExpiresAt,
	)

	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("User").WithCause(err)
		}
		return fmt.Errorf("postgres_session_repo_append_failed: %w", err)
	}

	return nil
}

/*
ListByUser returns all sessions of userID in issuance order.

Returns:
  - []Session: possibly empty
  - error: Wrapped driver errors
*/
func (repository *PostgresSessionRepository) ListByUser(context context.Context, userID string) ([]Session, error) {
	rows, err := repository.pool.Query(context, sessionListQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_session_repo_list_failed: %w", err)
	}

	sessions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Session, error) {
		var session Session
		err := row.Scan(&session.TokenHash, &session.ExpiresAt)
		return session, err
	})
	if err != nil {
		return nil, fmt.Errorf("postgres_session_repo_list_scan_failed: %w", err)
	}

	return sessions, nil
}

/*
Exists reports whether userID holds a session with tokenHash.

Returns:
  - bool: true when the pair is recorded
  - error: Wrapped driver errors
*/
func (repository *PostgresSessionRepository) Exists(context context.Context, userID, tokenHash string) (bool, error) {
	var found bool
	if err := repository.pool.QueryRow(context, sessionExistsQuery, userID, tokenHash).Scan(&found); err != nil {
		return false, fmt.Errorf("postgres_session_repo_exists_failed: %w", err)
	}
	return found, nil
}
