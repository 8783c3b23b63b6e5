// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package list

import "context"

// Repository defines the data access contract for lists.
//
// Every lookup takes the owner's id; a row owned by another user is never returned.
type Repository interface {

	/*
		Create persists a new list.

		Parameters:
		  - context: context.Context
		  - list: *List (ID already set)

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, list *List) error

	/*
		FindByOwner returns every list of userID in creation order.

		Returns:
		  - []*List: possibly empty
		  - error: Database retrieval failures
	*/
	FindByOwner(context context.Context, userID string) ([]*List, error)

	/*
		FindOwned returns the list id if userID owns it.

		Returns:
		  - *List: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindOwned(context context.Context, id, userID string) (*List, error)

	/*
		Update persists the title of a list owned by list.UserID.

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Update(context context.Context, list *List) error

	/*
		Delete removes the list id owned by userID and returns it as it was.

		Returns:
		  - *List: The removed entity
		  - error: apperr.NotFound or persistence failures
	*/
	Delete(context context.Context, id, userID string) (*List, error)
}
