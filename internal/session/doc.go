// Package session keeps uploaded group address exports between the parse
// request that creates them and the export requests that follow.
//
// A Session holds the raw document only. Resolution is deterministic, so
// handlers re-resolve the document on each request instead of storing the
// derived batch.
//
// Two backends implement Store:
//   - MemoryStore: a mutex-guarded map, lost on restart
//   - SQLiteStore: the sessions table of the studio database
//
// Sessions carry an expiry; RunJanitor removes expired sessions
// periodically and Get reports them as ErrSessionExpired in between.
package session
