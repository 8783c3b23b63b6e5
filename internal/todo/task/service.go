// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
	"github.com/taibuivan/tasklist/internal/platform/validate"
	"github.com/taibuivan/tasklist/internal/todo/list"
	"github.com/taibuivan/tasklist/pkg/uuid"
)

// # Service Layer

// ListFinder resolves a list only when the given user owns it.
type ListFinder interface {
	GetList(context context.Context, id, userID string) (*list.List, error)
}

// Service orchestrates business rules for tasks.
type Service struct {
	repo   Repository
	lists  ListFinder
	now    func() time.Time
	logger *slog.Logger
}

// NewService constructs a new task [Service].
func NewService(repo Repository, lists ListFinder, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		lists:  lists,
		now:    time.Now,
		logger: logger,
	}
}

/*
ListTasks returns the tasks of a list owned by userID.

Parameters:
  - context: context.Context
  - userID: string
  - listID: string

Returns:
  - []*Task: possibly empty, never nil
  - error: apperr.NotFound when the list is not the caller's
*/
func (service *Service) ListTasks(context context.Context, userID, listID string) ([]*Task, error) {
	if err := service.authorize(context, userID, listID); err != nil {
		return nil, err
	}

	tasks, err := service.repo.FindByList(context, listID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []*Task{}
	}
	return tasks, nil
}

/*
CreateTask adds a task to a list owned by userID.

Returns:
  - *Task: The saved task, not completed
  - error: ValidationError, apperr.NotFound or persistence failures
*/
func (service *Service) CreateTask(context context.Context, userID, listID, title string) (*Task, error) {
	if err := service.authorize(context, userID, listID); err != nil {
		return nil, err
	}

	task, err := New(title, listID)
	if err != nil {
		return nil, err
	}

	now := service.now().UTC()
	task.ID = uuid.New()
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := service.repo.Create(context, task); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "task_created",
		slog.String("task_id", task.ID),
		slog.String("list_id", listID),
	)

	return task, nil
}

/*
GetTask returns one task of a list owned by userID.

Returns:
  - *Task: Hydrated entity
  - error: apperr.NotFound for a foreign list or a missing task
*/
func (service *Service) GetTask(context context.Context, userID, listID, taskID string) (*Task, error) {
	if err := service.authorize(context, userID, listID); err != nil {
		return nil, err
	}
	return service.find(context, listID, taskID)
}

/*
UpdateTask applies patch to a task of a list owned by userID.

An empty patch returns the task unchanged.

Returns:
  - *Task: The task after the update
  - error: ValidationError, apperr.NotFound or persistence failures
*/
func (service *Service) UpdateTask(context context.Context, userID, listID, taskID string, patch Patch) (*Task, error) {
	task, err := service.GetTask(context, userID, listID, taskID)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return task, nil
	}

	if err := task.Apply(patch); err != nil {
		return nil, err
	}
	task.UpdatedAt = service.now().UTC()

	if err := service.repo.Update(context, task); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "task_updated",
		slog.String("task_id", task.ID),
		slog.Bool("completed", task.Completed),
	)

	return task, nil
}

/*
DeleteTask removes a task of a list owned by userID.

Returns:
  - *Task: The removed task
  - error: apperr.NotFound or persistence failures
*/
func (service *Service) DeleteTask(context context.Context, userID, listID, taskID string) (*Task, error) {
	if err := service.authorize(context, userID, listID); err != nil {
		return nil, err
	}
	if !validate.IsUUID(taskID) {
		return nil, apperr.NotFound("Task")
	}

	task, err := service.repo.Delete(context, taskID, listID)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "task_deleted",
		slog.String("task_id", task.ID),
		slog.String("list_id", listID),
	)

	return task, nil
}

// authorize confirms that userID owns listID.
func (service *Service) authorize(context context.Context, userID, listID string) error {
	_, err := service.lists.GetList(context, listID, userID)
	return err
}

func (service *Service) find(context context.Context, listID, taskID string) (*Task, error) {
	if !validate.IsUUID(taskID) {
		return nil, apperr.NotFound("Task")
	}
	return service.repo.FindInList(context, taskID, listID)
}
