// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package list_test

import (
	"context"
	"errors"
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

func newService() (*list.Service, *testutil.Tasks) {
	tasks := testutil.NewTasks()
	return list.NewService(testutil.NewLists(), tasks, testutil.Logger()), tasks
}

/*
TestService_CreateList checks title normalisation and validation.
*/
func TestService_CreateList(t *testing.T) {
	ctx := context.Background()
	service, _ := newService()
	owner := uuid.New()

	tests := []struct {
		name      string
		title     string
		wantTitle string
		wantErr   bool
	}{
		{"plain", "Groceries", "Groceries", false},
		{"trimmed", "  Weekend   chores \t", "Weekend chores", false},
		{"decomposed accent", "Cafe\u0301", "Caf\u00e9", false},
		{"empty", "", "", true},
		{"whitespace only", "   \n", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := service.CreateList(ctx, owner, tt.title)
			if tt.wantErr {
				assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, created.Title)
			assert.Equal(t, owner, created.UserID)
			assert.NotEmpty(t, created.ID)
		})
	}
}

/*
TestService_Ownership ensures lists are invisible to other users.
*/
func TestService_Ownership(t *testing.T) {
	ctx := context.Background()
	service, _ := newService()
	owner, stranger := uuid.New(), uuid.New()

	created, err := service.CreateList(ctx, owner, "Groceries")
	require.NoError(t, err)

	// 1. Listing is scoped by owner
	mine, err := service.ListLists(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := service.ListLists(ctx, stranger)
	require.NoError(t, err)
	assert.NotNil(t, theirs)
	assert.Empty(t, theirs)

	// 2. Every single-list operation fails for the stranger
	_, err = service.GetList(ctx, created.ID, stranger)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = service.RenameList(ctx, created.ID, stranger, pointer.To("Mine now"))
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = service.DeleteList(ctx, created.ID, stranger)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	// 3. Malformed ids never reach storage
	_, err = service.GetList(ctx, "not-a-uuid", owner)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestService_RenameList covers the partial update semantics.
*/
func TestService_RenameList(t *testing.T) {
	ctx := context.Background()
	service, _ := newService()
	owner := uuid.New()

	created, err := service.CreateList(ctx, owner, "Groceries")
	require.NoError(t, err)

	unchanged, err := service.RenameList(ctx, created.ID, owner, nil)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", unchanged.Title)

	renamed, err := service.RenameList(ctx, created.ID, owner, pointer.To(" Errands "))
	require.NoError(t, err)
	assert.Equal(t, "Errands", renamed.Title)

	_, err = service.RenameList(ctx, created.ID, owner, pointer.To(" "))
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	reloaded, err := service.GetList(ctx, created.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "Errands", reloaded.Title)
}

/*
TestService_DeleteList verifies that a list's tasks are removed with it.
*/
func TestService_DeleteList(t *testing.T) {
	ctx := context.Background()
	service, tasks := newService()
	owner := uuid.New()

	groceries, err := service.CreateList(ctx, owner, "Groceries")
	require.NoError(t, err)
	chores, err := service.CreateList(ctx, owner, "Chores")
	require.NoError(t, err)

	for _, item := range []*task.Task{
		{ID: uuid.New(), Title: "Milk", ListID: groceries.ID},
		{ID: uuid.New(), Title: "Eggs", ListID: groceries.ID},
		{ID: uuid.New(), Title: "Laundry", ListID: chores.ID},
	} {
		require.NoError(t, tasks.Create(ctx, item))
	}

	removed, err := service.DeleteList(ctx, groceries.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", removed.Title)

	left, err := tasks.FindByList(ctx, groceries.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	kept, err := tasks.FindByList(ctx, chores.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)

	_, err = service.GetList(ctx, groceries.ID, owner)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

type failingTaskRemover struct{ calls int }

func (remover *failingTaskRemover) DeleteByList(context.Context, string) (int64, error) {
	remover.calls++
	return 0, errors.New("connection reset")
}

/*
TestService_DeleteList_SweepFailure checks that a failed task sweep does not
fail the request once the list itself is gone.
*/
func TestService_DeleteList_SweepFailure(t *testing.T) {
	ctx := context.Background()
	remover := &failingTaskRemover{}
	service := list.NewService(testutil.NewLists(), remover, testutil.Logger())
	owner := uuid.New()

	groceries, err := service.CreateList(ctx, owner, "Groceries")
	require.NoError(t, err)

	// 1. The removed list comes back despite the sweep error
	removed, err := service.DeleteList(ctx, groceries.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, groceries.ID, removed.ID)
	assert.Equal(t, 1, remover.calls)

	// 2. The list is gone
	_, err = service.GetList(ctx, groceries.ID, owner)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
