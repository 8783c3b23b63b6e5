// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package list

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
	"github.com/taibuivan/tasklist/internal/platform/validate"
	"github.com/taibuivan/tasklist/pkg/textnorm"
	"github.com/taibuivan/tasklist/pkg/uuid"
)

// # Service Layer

// TaskRemover deletes every task of a list.
type TaskRemover interface {
	DeleteByList(context context.Context, listID string) (int64, error)
}

// Service orchestrates business rules for lists.
type Service struct {
	repo   Repository
	tasks  TaskRemover
	now    func() time.Time
	logger *slog.Logger
}

// NewService constructs a new list [Service].
func NewService(repo Repository, tasks TaskRemover, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		tasks:  tasks,
		now:    time.Now,
		logger: logger,
	}
}

/*
ListLists returns every list owned by userID.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []*List: possibly empty, never nil
  - error: Retrieval errors
*/
func (service *Service) ListLists(context context.Context, userID string) ([]*List, error) {
	lists, err := service.repo.FindByOwner(context, userID)
	if err != nil {
		return nil, err
	}
	if lists == nil {
		lists = []*List{}
	}
	return lists, nil
}

/*
CreateList validates title and stores a new list for userID.

Returns:
  - *List: The saved list
  - error: ValidationError or persistence failures
*/
func (service *Service) CreateList(context context.Context, userID, title string) (*List, error) {
	list, err := New(title, userID)
	if err != nil {
		return nil, err
	}

	now := service.now().UTC()
	list.ID = uuid.New()
	list.CreatedAt = now
	list.UpdatedAt = now

	if err := service.repo.Create(context, list); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "list_created",
		slog.String("list_id", list.ID),
		slog.String("user_id", userID),
	)

	return list, nil
}

/*
GetList returns the list id if userID owns it.

Malformed ids are reported as not found rather than reaching storage.

Returns:
  - *List: Hydrated entity
  - error: apperr.NotFound if missing or owned by someone else
*/
func (service *Service) GetList(context context.Context, id, userID string) (*List, error) {
	if !validate.IsUUID(id) {
		return nil, apperr.NotFound("List")
	}
	return service.repo.FindOwned(context, id, userID)
}

/*
RenameList replaces the title of a list owned by userID.

A nil title leaves the list untouched.

Returns:
  - *List: The list after the update
  - error: ValidationError, apperr.NotFound or persistence failures
*/
func (service *Service) RenameList(context context.Context, id, userID string, title *string) (*List, error) {
	list, err := service.GetList(context, id, userID)
	if err != nil {
		return nil, err
	}
	if title == nil {
		return list, nil
	}

	normalised := textnorm.Title(*title)
	if err := ValidateTitle(normalised); err != nil {
		return nil, err
	}

	list.Title = normalised
	list.UpdatedAt = service.now().UTC()

	if err := service.repo.Update(context, list); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "list_updated", slog.String("list_id", list.ID))

	return list, nil
}

/*
DeleteList removes a list owned by userID together with all of its tasks.

The task sweep runs after the list is gone. A failed sweep is logged and the
removed list is still returned; on PostgreSQL the foreign key cascade has
already removed the tasks.

Returns:
  - *List: The removed list
  - error: apperr.NotFound or persistence failures
*/
func (service *Service) DeleteList(context context.Context, id, userID string) (*List, error) {
	if !validate.IsUUID(id) {
		return nil, apperr.NotFound("List")
	}

	list, err := service.repo.Delete(context, id, userID)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "list_deleted",
		slog.String("list_id", list.ID),
		slog.String("user_id", userID),
	)

	removed, err := service.tasks.DeleteByList(context, list.ID)
	if err != nil {
		service.logger.WarnContext(context, "list_tasks_delete_failed",
			slog.String("list_id", list.ID),
			slog.Any("error", err),
		)
		return list, nil
	}

	service.logger.InfoContext(context, "list_tasks_deleted",
		slog.String("list_id", list.ID),
		slog.Int64("count", removed),
	)

	return list, nil
}
