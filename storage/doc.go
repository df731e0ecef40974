// Package storage persists the serialized session record under a single
// well-known key and notifies other execution contexts when the record
// changes.
//
// Four backends are provided: [Noop] for contexts without durable storage,
// [File] for a local JSON file watched with fsnotify, [Redis] for contexts
// sharing a Redis instance, and [MemoryHub] for in-process multi-context
// setups and tests. [CookieMirror] additionally mirrors every write into an
// http.CookieJar so a server can read the record from request cookies.
//
// All writes are best-effort: callers treat storage failures as non-fatal.
// Watch notifications carry no payload; handlers re-read the store instead
// of trusting an event body.
package storage
