// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/tasklist/internal/platform/request"
	"github.com/taibuivan/tasklist/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for task operations.
//
// It is mounted under /lists/{listId}/tasks behind the stateless gate.
type Handler struct {
	service *Service
}

// NewHandler constructs a new task [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with task endpoints.
//
// # Endpoints
//   - GET    /          : Tasks of the list.
//   - POST   /          : Creates a task.
//   - GET    /{taskId}  : One task.
//   - PATCH  /{taskId}  : Updates title and/or completion.
//   - DELETE /{taskId}  : Deletes a task.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listTasks)
	router.Post("/", handler.createTask)
	router.Get("/{taskId}", handler.getTask)
	router.Patch("/{taskId}", handler.updateTask)
	router.Delete("/{taskId}", handler.deleteTask)

	return router
}

// # Request Payloads

type createTaskRequest struct {
	Title string `json:"title"`
}

// scope is the (user, list) pair every task route works within.
type scope struct {
	userID string
	listID string
}

func resolveScope(request *http.Request) (scope, error) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		return scope{}, err
	}
	return scope{userID: userID, listID: requestutil.Param(request, FieldListID)}, nil
}

/*
GET /lists/{listId}/tasks.

Response:
  - 200: []Task
  - 404: NOT_FOUND when the list is not the caller's
*/
func (handler *Handler) listTasks(writer http.ResponseWriter, request *http.Request) {
	target, err := resolveScope(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tasks, err := handler.service.ListTasks(request.Context(), target.userID, target.listID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tasks)
}

/*
POST /lists/{listId}/tasks.

Request:
  - Body: createTaskRequest (Title)

Response:
  - 201: The created Task
  - 400: VALIDATION_ERROR
  - 404: NOT_FOUND when the list is not the caller's
*/
func (handler *Handler) createTask(writer http.ResponseWriter, request *http.Request) {
	target, err := resolveScope(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createTaskRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.service.CreateTask(request.Context(), target.userID, target.listID, input.Title)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, task)
}

/*
GET /lists/{listId}/tasks/{taskId}.

Response:
  - 200: Task
  - 404: NOT_FOUND
*/
func (handler *Handler) getTask(writer http.ResponseWriter, request *http.Request) {
	target, err := resolveScope(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.service.GetTask(request.Context(), target.userID, target.listID, requestutil.Param(request, FieldTaskID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, task)
}

/*
PATCH /lists/{listId}/tasks/{taskId}.

Request:
  - Body: Patch (Title, Completed; both optional)

Response:
  - 200: The updated Task
  - 400: VALIDATION_ERROR
  - 404: NOT_FOUND
*/
func (handler *Handler) updateTask(writer http.ResponseWriter, request *http.Request) {
	target, err := resolveScope(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.service.UpdateTask(request.Context(), target.userID, target.listID, requestutil.Param(request, FieldTaskID), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, task)
}

/*
DELETE /lists/{listId}/tasks/{taskId}.

Response:
  - 200: The removed Task
  - 404: NOT_FOUND
*/
func (handler *Handler) deleteTask(writer http.ResponseWriter, request *http.Request) {
	target, err := resolveScope(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	task, err := handler.service.DeleteTask(request.Context(), target.userID, target.listID, requestutil.Param(request, FieldTaskID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, task)
}
