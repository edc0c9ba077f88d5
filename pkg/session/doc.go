// Package session holds the authenticated state for one console endpoint
// and persists it across process runs.
//
// A Session captures what the server issued during login: the session
// cookie, the CSRF token bound to it, and an optional load-balancer route
// cookie. Sessions are keyed by a stable hash of (endpoint, identity,
// environment), so two identities against the same endpoint never collide
// in storage.
//
// Two Store implementations ship with the package:
//
//   - FileStore keeps one JSON file per session under a cache directory
//     (by default the user cache dir). Writes go through a temp file and
//     an atomic rename, so concurrent processes never observe a torn
//     record; two processes racing to log in simply overwrite each other
//     and the last writer wins.
//   - RedisStore keeps sessions in redis for fleets of workers that share
//     one login, with a sorted-set index providing most-recently-used
//     ordering.
//
// Stores fail closed: a record that cannot be parsed, or that is missing
// its session id or CSRF token, is deleted and reported as not found.
// Partial sessions are never persisted or returned.
package session
