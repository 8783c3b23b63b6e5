// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package list

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/tasklist/internal/platform/request"
	"github.com/taibuivan/tasklist/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for list operations.
//
// It expects the stateless gate to have attached the caller's user id.
type Handler struct {
	service *Service
}

// NewHandler constructs a new list [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with list endpoints.
//
// # Endpoints
//   - GET    /          : Lists owned by the caller.
//   - POST   /          : Creates a list.
//   - PATCH  /{listId}  : Renames a list.
//   - DELETE /{listId}  : Deletes a list and its tasks.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listLists)
	router.Post("/", handler.createList)
	router.Patch("/{listId}", handler.updateList)
	router.Delete("/{listId}", handler.deleteList)

	return router
}

// # Request Payloads

type createListRequest struct {
	Title string `json:"title"`
}

type updateListRequest struct {
	Title *string `json:"title"`
}

/*
GET /lists.

Response:
  - 200: []List owned by the caller
*/
func (handler *Handler) listLists(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	lists, err := handler.service.ListLists(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, lists)
}

/*
POST /lists.

Request:
  - Body: createListRequest (Title)

Response:
  - 201: The created List
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) createList(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createListRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	list, err := handler.service.CreateList(request.Context(), userID, input.Title)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, list)
}

/*
PATCH /lists/{listId}.

Request:
  - Body: updateListRequest (Title, optional)

Response:
  - 200: The updated List
  - 404: NOT_FOUND when missing or owned by someone else
*/
func (handler *Handler) updateList(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateListRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	list, err := handler.service.RenameList(request.Context(), requestutil.Param(request, FieldListID), userID, input.Title)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, list)
}

/*
DELETE /lists/{listId}.

Response:
  - 200: The removed List
  - 404: NOT_FOUND when missing or owned by someone else
*/
func (handler *Handler) deleteList(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	list, err := handler.service.DeleteList(request.Context(), requestutil.Param(request, FieldListID), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, list)
}
