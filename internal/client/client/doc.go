// Package client contains client-side building blocks for NexaBoard.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     the REST endpoints: /auth/login, /auth/register, /auth/profile and
//     /tasks.
//  2. A concrete HTTP implementation (see HTTPClient) that maps status codes
//     to sentinel errors and surfaces `{ "message": ... }` bodies as
//     *APIError.
//  3. BearerTransport, an http.RoundTripper that attaches the current bearer
//     token to every request. The token comes from a TokenSource (the
//     session store) or from a per-call override installed with WithToken.
//  4. Local persistence bootstrap utilities (InitDatabase, RunMigrations)
//     wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotFound.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation as well as the configured request
// timeout.
package client
