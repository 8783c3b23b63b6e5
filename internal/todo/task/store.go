// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import "context"

// Repository defines the data access contract for tasks.
//
// Ownership is not checked here; callers resolve the owning list first.
type Repository interface {
	Create(context context.Context, task *Task) error

	// FindByList returns the tasks of listID in creation order.
	FindByList(context context.Context, listID string) ([]*Task, error)

	// FindInList returns task id when it belongs to listID, or apperr.NotFound.
	FindInList(context context.Context, id, listID string) (*Task, error)

	// Update writes title and completion of task, or returns apperr.NotFound.
	Update(context context.Context, task *Task) error

	// Delete removes task id of listID and returns it as it was.
	Delete(context context.Context, id, listID string) (*Task, error)

	// DeleteByList removes every task of listID and reports how many went.
	DeleteByList(context context.Context, listID string) (int64, error)
}
