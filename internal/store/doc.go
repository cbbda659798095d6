// Package store is the persistence layer: schema initialization, the record
// codec between SQLite rows and codex entities, CRUD for the four entity
// kinds plus the two association tables, and the search/filter queries.
//
// A Store wraps a single SQLite connection. Writes serialize at the
// connection level; callers await each operation and re-fetch derived state
// afterwards. Storage errors bubble to the caller unchanged except for
// wrapping; a missing identity on get-by-id is (nil, nil), not an error.
package store
