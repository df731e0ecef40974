// Package authsession manages client-side authentication session state for
// an application talking to a remote backend: whether a user is logged in,
// the bearer token attached to outgoing requests, persistence of the session
// record across restarts, and synchronization of that record across
// concurrently running contexts that share the same durable store.
//
// The package is designed around a single source of truth: a [Signal]
// holding the current [SessionStatusInfo]. All mutation goes through
// [Controller.UpdateSession], which compares the candidate state against the
// current one, applies side effects (token install/clear, cache and role
// invalidation, language propagation, persistence) exactly once per real
// change, and publishes the settled record last.
//
// # Architecture boundaries
//
// authsession is the public surface. It exposes [Controller], [Builder],
// [Config], [Signal], and value types (SessionStatusInfo, Response, the
// capability parameter structs). Durable persistence lives under storage/
// behind the [storage.Store] interface; the package never assumes a durable
// store is available and degrades to an in-memory-only mode.
//
// # What this package must NOT do
//
//   - Perform network authentication itself. Login, OTP, and password-reset
//     calls belong to a backend integration implementing [Capability].
//   - Validate tokens cryptographically. The token is an opaque bearer
//     credential; only its unverified expiry claim is inspected, and only to
//     schedule an expiry notification.
//   - Publish partially applied state. Subscribers always observe a session
//     whose side effects have settled.
package authsession
