// Package store provides file-backed durable storage for question lists.
//
// The store maps a (user, week) partition key to a JSON file:
//
//	<root>/<user>/<week>
//
// Each file holds a JSON array of {"user", "week", "text"} objects written
// with two-space indentation. User directories are created lazily on first
// write; the root is created when the store is constructed.
//
// # Critical Patterns
//
// Whole-partition writes:
//   - SetQuestions replaces the entire partition, never merges
//   - Every record must agree with the target key or nothing is written
//   - Files are written to a temp file and renamed into place
//
// Absence is empty:
//   - A partition that was never written reads as an empty slice, not an error
//   - Every other filesystem failure is returned as a KindIO error
//
// Directory listing is the index:
//   - GetUsers and GetAllQuestions walk the tree; entries that are not
//     partitions (stray files, non-numeric names) are skipped
//
// # Concurrency
//
// Store itself holds no locks. Callers share one Guard, a store-wide
// reader/writer lock: many readers or one writer at a time. If a writer
// faults while holding the guard, the guard is poisoned and every later
// acquisition fails with ErrPoisoned.
//
// Concurrent processes sharing one root are not coordinated.
package store
