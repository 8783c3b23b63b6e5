// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
	"github.com/taibuivan/tasklist/internal/testutil"
	"github.com/taibuivan/tasklist/internal/todo/list"
	"github.com/taibuivan/tasklist/internal/todo/task"
	"github.com/taibuivan/tasklist/pkg/pointer"
	"github.com/taibuivan/tasklist/pkg/uuid"
)

type harness struct {
	lists *list.Service
	tasks *task.Service
	owner string
	list  *list.List
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	logger := testutil.Logger()
	taskRepo := testutil.NewTasks()
	lists := list.NewService(testutil.NewLists(), taskRepo, logger)

	owner := uuid.New()
	groceries, err := lists.CreateList(context.Background(), owner, "Groceries")
	require.NoError(t, err)

	return &harness{
		lists: lists,
		tasks: task.NewService(taskRepo, lists, logger),
		owner: owner,
		list:  groceries,
	}
}

/*
TestService_TaskLifecycle walks a task through create, read, patch and delete.
*/
func TestService_TaskLifecycle(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	// 1. Create defaults to not completed
	milk, err := h.tasks.CreateTask(ctx, h.owner, h.list.ID, "  Milk ")
	require.NoError(t, err)
	assert.Equal(t, "Milk", milk.Title)
	assert.Equal(t, h.list.ID, milk.ListID)
	assert.False(t, milk.Completed)

	// 2. Listed in creation order
	eggs, err := h.tasks.CreateTask(ctx, h.owner, h.list.ID, "Eggs")
	require.NoError(t, err)

	all, err := h.tasks.ListTasks(ctx, h.owner, h.list.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, milk.ID, all[0].ID)
	assert.Equal(t, eggs.ID, all[1].ID)

	// 3. Partial patches
	done, err := h.tasks.UpdateTask(ctx, h.owner, h.list.ID, milk.ID, task.Patch{Completed: pointer.To(true)})
	require.NoError(t, err)
	assert.True(t, done.Completed)
	assert.Equal(t, "Milk", done.Title)

	renamed, err := h.tasks.UpdateTask(ctx, h.owner, h.list.ID, milk.ID, task.Patch{Title: pointer.To("Oat milk")})
	require.NoError(t, err)
	assert.Equal(t, "Oat milk", renamed.Title)
	assert.True(t, renamed.Completed)

	unchanged, err := h.tasks.UpdateTask(ctx, h.owner, h.list.ID, milk.ID, task.Patch{})
	require.NoError(t, err)
	assert.Equal(t, renamed.Title, unchanged.Title)

	_, err = h.tasks.UpdateTask(ctx, h.owner, h.list.ID, milk.ID, task.Patch{Title: pointer.To("")})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	// 4. Delete returns the removed task
	removed, err := h.tasks.DeleteTask(ctx, h.owner, h.list.ID, milk.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oat milk", removed.Title)

	_, err = h.tasks.GetTask(ctx, h.owner, h.list.ID, milk.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestService_ListOwnership checks that every task operation requires owning the list.
*/
func TestService_ListOwnership(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	stranger := uuid.New()

	milk, err := h.tasks.CreateTask(ctx, h.owner, h.list.ID, "Milk")
	require.NoError(t, err)

	operations := map[string]func() error{
		"list": func() error {
			_, err := h.tasks.ListTasks(ctx, stranger, h.list.ID)
			return err
		},
		"create": func() error {
			_, err := h.tasks.CreateTask(ctx, stranger, h.list.ID, "Bread")
			return err
		},
		"get": func() error {
			_, err := h.tasks.GetTask(ctx, stranger, h.list.ID, milk.ID)
			return err
		},
		"update": func() error {
			_, err := h.tasks.UpdateTask(ctx, stranger, h.list.ID, milk.ID, task.Patch{Completed: pointer.To(true)})
			return err
		},
		"delete": func() error {
			_, err := h.tasks.DeleteTask(ctx, stranger, h.list.ID, milk.ID)
			return err
		},
	}

	for name, operation := range operations {
		t.Run(name, func(t *testing.T) {
			assert.True(t, apperr.HasCode(operation(), apperr.CodeNotFound))
		})
	}

	// A task is not reachable through another list of the same owner
	other, err := h.lists.CreateList(ctx, h.owner, "Chores")
	require.NoError(t, err)
	_, err = h.tasks.GetTask(ctx, h.owner, other.ID, milk.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	// The task survived every rejected attempt
	still, err := h.tasks.GetTask(ctx, h.owner, h.list.ID, milk.ID)
	require.NoError(t, err)
	assert.False(t, still.Completed)
}

/*
TestTask_Apply covers patch normalisation on the entity.
*/
func TestTask_Apply(t *testing.T) {
	item, err := task.New("Milk", uuid.New())
	require.NoError(t, err)

	require.NoError(t, item.Apply(task.Patch{Title: pointer.To(" Café "), Completed: pointer.To(true)}))
	assert.Equal(t, "Café", item.Title)
	assert.True(t, item.Completed)

	assert.Error(t, item.Apply(task.Patch{Title: pointer.To("\t")}))
	assert.True(t, task.Patch{}.IsEmpty())
}
