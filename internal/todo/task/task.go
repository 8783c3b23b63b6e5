// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package task manages the tasks inside a list.

Every operation first confirms that the caller owns the enclosing list, so a
task is only reachable through its owner's list.
*/
package task

import (
	"time"

	"github.com/taibuivan/tasklist/internal/platform/validate"
	"github.com/taibuivan/tasklist/pkg/pointer"
	"github.com/taibuivan/tasklist/pkg/textnorm"
)

// # Domain Entities

// Task is a titled item of a list that can be marked completed.
type Task struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	ListID    string    `json:"_listId"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

// IsEmpty reports whether the patch changes nothing.
func (patch Patch) IsEmpty() bool {
	return patch.Title == nil && patch.Completed == nil
}

// # Field Identifiers

const (
	FieldTitle  = "title"
	FieldListID = "listId"
	FieldTaskID = "taskId"
)

// New validates title and returns an unsaved, uncompleted task of listID.
func New(title, listID string) (*Task, error) {
	title = textnorm.Title(title)
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}
	return &Task{Title: title, ListID: listID}, nil
}

// ValidateTitle fails unless the normalised title has at least one character.
func ValidateTitle(title string) error {
	validator := &validate.Validator{}
	return validator.Required(FieldTitle, title).Err()
}

// Apply copies the non-nil fields of patch onto task, normalising the title.
func (task *Task) Apply(patch Patch) error {
	if patch.Title != nil {
		title := textnorm.Title(*patch.Title)
		if err := ValidateTitle(title); err != nil {
			return err
		}
		task.Title = title
	}
	task.Completed = pointer.Fallback(patch.Completed, task.Completed)
	return nil
}
