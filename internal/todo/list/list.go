// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package list manages the task lists owned by a user.

Every read and write is scoped by the owner's id: a list that belongs to
someone else is reported exactly like a list that does not exist.
*/
package list

import (
	"time"

	"github.com/taibuivan/tasklist/internal/platform/validate"
	"github.com/taibuivan/tasklist/pkg/textnorm"
)

// # Domain Entities

// List is a titled container of tasks belonging to one user.
type List struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	UserID    string    `json:"_userId"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// # Field Identifiers

const (
	FieldTitle  = "title"
	FieldListID = "listId"
)

// New validates title and returns an unsaved list owned by userID.
func New(title, userID string) (*List, error) {
	title = textnorm.Title(title)
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}
	return &List{Title: title, UserID: userID}, nil
}

// ValidateTitle fails unless the normalised title has at least one character.
func ValidateTitle(title string) error {
	validator := &validate.Validator{}
	return validator.Required(FieldTitle, title).Err()
}
