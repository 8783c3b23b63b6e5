// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
	"github.com/taibuivan/tasklist/internal/platform/constants"
	requestutil "github.com/taibuivan/tasklist/internal/platform/request"
	"github.com/taibuivan/tasklist/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the /users endpoints.
type Handler struct {
	authService *Service
	guard       *Guard
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, guard *Guard) *Handler {
	return &Handler{authService: service, guard: guard}
}

// Routes returns a [chi.Router] configured with the user routes.
//
// # Endpoints
//   - POST /                : Registers an account and opens a session.
//   - POST /login           : Opens a session for existing credentials.
//   - GET  /me/access-token : Mints an access token from a refresh session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.register)
	router.Post("/login", handler.login)

	router.With(handler.guard.RequireSession).Get("/me/access-token", handler.accessToken)

	return router
}

// # Request Payloads

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type accessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

/*
Register handles the creation of a new user account.

POST /users

Request:
  - Body: credentialsRequest (Email, Password)

Response:
  - 201: User, with x-access-token and x-refresh-token headers
  - 400: VALIDATION_ERROR or DUPLICATE_EMAIL
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input credentialsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, err := handler.authService.Register(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writeTokenHeaders(writer, pair)
	respond.Created(writer, pair.User)
}

/*
Login authenticates a user and opens a session.

POST /users/login

Request:
  - Body: credentialsRequest (Email, Password)

Response:
  - 200: User, with x-access-token and x-refresh-token headers
  - 400: INVALID_CREDENTIALS for any unknown email or wrong password
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input credentialsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pair, err := handler.authService.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writeTokenHeaders(writer, pair)
	respond.OK(writer, pair.User)
}

/*
AccessToken mints a fresh access token for the session admitted by the stateful gate.

GET /users/me/access-token

Request:
  - Headers: x-refresh-token, _id

Response:
  - 200: {accessToken}, with the x-access-token header
  - 401: SESSION_NOT_FOUND or SESSION_EXPIRED
  - 400: signing failure
*/
func (handler *Handler) accessToken(writer http.ResponseWriter, request *http.Request) {
	user := SessionUser(request.Context())
	if user == nil {
		respond.Error(writer, request, apperr.SessionNotFound())
		return
	}

	accessToken, err := handler.authService.IssueAccessToken(request.Context(), user.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set(constants.HeaderAccessToken, accessToken)
	respond.OK(writer, accessTokenResponse{AccessToken: accessToken})
}

func writeTokenHeaders(writer http.ResponseWriter, pair *TokenPair) {
	writer.Header().Set(constants.HeaderRefreshToken, pair.RefreshToken)
	writer.Header().Set(constants.HeaderAccessToken, pair.AccessToken)
}
