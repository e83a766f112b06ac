// Package api implements the HTTP server of the studio.
//
// It serves the single-page editor and a small JSON API:
//
//	GET    /                        editor UI
//	GET    /api/health              liveness and dependency checks
//	POST   /api/parse               upload an export, open a session
//	POST   /api/export/xml          renamed document
//	POST   /api/export/xlsx         mapping workbook
//	POST   /api/template/export     per-object CSV template
//	POST   /api/template/import     apply a CSV template
//	DELETE /api/sessions/{id}       discard a session
//
// Uploaded documents live in a session.Store. Resolved batches are cached
// in a bounded LRU keyed by session ID and rebuilt from the stored
// document on a miss, so the cache never decides whether a session exists.
//
// With api.auth enabled every /api route except health requires an
// "Authorization: Bearer <token>" header signed with the configured
// secret (see package auth). Non-loopback binds require it.
package api
