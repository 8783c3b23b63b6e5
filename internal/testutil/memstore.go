// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package testutil holds in-memory repositories and helpers for tests.

The stores mirror the PostgreSQL repositories closely enough to run the full
HTTP stack without a database: the same not-found and duplicate errors, copies
in and out, and creation-ordered listings.
*/
package testutil

import (
	"context"
	"log/slog"
	"sync"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
	"github.com/taibuivan/tasklist/internal/todo/list"
	"github.com/taibuivan/tasklist/internal/todo/task"
	"github.com/taibuivan/tasklist/internal/users/auth"
)

// Logger returns a logger that discards every record.
func Logger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// # Users

// Users is an in-memory [auth.UserRepository].
type Users struct {
	mu      sync.Mutex
	byID    map[string]auth.User
	byEmail map[string]string
}

// NewUsers constructs an empty user store.
func NewUsers() *Users {
	return &Users{
		byID:    make(map[string]auth.User),
		byEmail: make(map[string]string),
	}
}

func (s *Users) Create(ctx context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[user.Email]; taken {
		return apperr.DuplicateEmail()
	}
	s.byID[user.ID] = storedUser(user)
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *Users) Update(ctx context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byID[user.ID]
	if !ok {
		return apperr.NotFound("User")
	}
	if owner, taken := s.byEmail[user.Email]; taken && owner != user.ID {
		return apperr.DuplicateEmail()
	}

	delete(s.byEmail, current.Email)
	s.byID[user.ID] = storedUser(user)
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *Users) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	user := s.byID[id]
	return &user, nil
}

func (s *Users) FindByID(ctx context.Context, id string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return &user, nil
}

// storedUser copies the persisted columns only.
func storedUser(user *auth.User) auth.User {
	return auth.User{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// # Sessions

// Sessions is an in-memory [auth.SessionRepository].
type Sessions struct {
	mu     sync.Mutex
	users  *Users
	byUser map[string][]auth.Session
}

// NewSessions constructs an empty session store. Appends for ids unknown to
// users fail like the foreign key does in PostgreSQL.
func NewSessions(users *Users) *Sessions {
	return &Sessions{users: users, byUser: make(map[string][]auth.Session)}
}

func (s *Sessions) Append(ctx context.Context, userID string, session auth.Session) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.byUser[userID] = append(s.byUser[userID], session)
	return nil
}

func (s *Sessions) ListByUser(ctx context.Context, userID string) ([]auth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]auth.Session(nil), s.byUser[userID]...), nil
}

func (s *Sessions) Exists(ctx context.Context, userID, tokenHash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, session := range s.byUser[userID] {
		if session.TokenHash == tokenHash {
			return true, nil
		}
	}
	return false, nil
}

// Count returns how many sessions userID holds.
func (s *Sessions) Count(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.byUser[userID])
}

// # Lists

// Lists is an in-memory [list.Repository].
type Lists struct {
	mu    sync.Mutex
	order []string
	byID  map[string]list.List
}

// NewLists constructs an empty list store.
func NewLists() *Lists {
	return &Lists{byID: make(map[string]list.List)}
}

func (s *Lists) Create(ctx context.Context, item *list.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[item.ID] = *item
	s.order = append(s.order, item.ID)
	return nil
}

func (s *Lists) FindByOwner(ctx context.Context, userID string) ([]*list.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var lists []*list.List
	for _, id := range s.order {
		if item, ok := s.byID[id]; ok && item.UserID == userID {
			lists = append(lists, &item)
		}
	}
	return lists, nil
}

func (s *Lists) FindOwned(ctx context.Context, id, userID string) (*list.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.byID[id]
	if !ok || item.UserID != userID {
		return nil, apperr.NotFound("List")
	}
	return &item, nil
}

func (s *Lists) Update(ctx context.Context, item *list.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byID[item.ID]
	if !ok || current.UserID != item.UserID {
		return apperr.NotFound("List")
	}
	s.byID[item.ID] = *item
	return nil
}

func (s *Lists) Delete(ctx context.Context, id, userID string) (*list.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.byID[id]
	if !ok || item.UserID != userID {
		return nil, apperr.NotFound("List")
	}
	delete(s.byID, id)
	return &item, nil
}

// # Tasks

// Tasks is an in-memory [task.Repository]. Unlike PostgreSQL it does not
// cascade list deletes, so DeleteByList does the work.
type Tasks struct {
	mu    sync.Mutex
	order []string
	byID  map[string]task.Task
}

// NewTasks constructs an empty task store.
func NewTasks() *Tasks {
	return &Tasks{byID: make(map[string]task.Task)}
}

func (s *Tasks) Create(ctx context.Context, item *task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[item.ID] = *item
	s.order = append(s.order, item.ID)
	return nil
}

func (s *Tasks) FindByList(ctx context.Context, listID string) ([]*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tasks []*task.Task
	for _, id := range s.order {
		if item, ok := s.byID[id]; ok && item.ListID == listID {
			tasks = append(tasks, &item)
		}
	}
	return tasks, nil
}

func (s *Tasks) FindInList(ctx context.Context, id, listID string) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.byID[id]
	if !ok || item.ListID != listID {
		return nil, apperr.NotFound("Task")
	}
	return &item, nil
}

func (s *Tasks) Update(ctx context.Context, item *task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byID[item.ID]
	if !ok || current.ListID != item.ListID {
		return apperr.NotFound("Task")
	}
	s.byID[item.ID] = *item
	return nil
}

func (s *Tasks) Delete(ctx context.Context, id, listID string) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.byID[id]
	if !ok || item.ListID != listID {
		return nil, apperr.NotFound("Task")
	}
	delete(s.byID, id)
	return &item, nil
}

func (s *Tasks) DeleteByList(ctx context.Context, listID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for id, item := range s.byID {
		if item.ListID == listID {
			delete(s.byID, id)
			removed++
		}
	}
	return removed, nil
}
