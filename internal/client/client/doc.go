// Package client is the HTTP adapter between the client application and the
// linkedin-clone REST backend.
//
// # Overview
//
// The package provides:
//  1. API contracts (AuthClient, PostClient, Client) covering the backend
//     endpoints: register, login, current user, posts CRUD and user profiles.
//  2. RESTClient, a net/http implementation whose transport attaches
//     "Authorization: Bearer <token>" to every request when a token is known.
//     The token comes from the request context (WithAccessToken), else the
//     in-memory default (SetToken), else the TokenSource read at request time.
//     SetToken("") turns the TokenSource fallback off until the next token.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying the embedded goose migrations.
//
// There is no retry and no response caching. Failures are returned as-is for
// the caller to interpret.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. HTTP failures are *APIError values
// wrapping one of ErrValidation, ErrUnauthorized, ErrForbidden, ErrNotFound,
// ErrConflict or ErrUnexpected, so both errors.Is and errors.As work.
package client
