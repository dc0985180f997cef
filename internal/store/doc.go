// Package store provides SQLite-backed durable storage for completion
// histories.
//
// The store is an append-only log with:
//   - Sessions: one record per completion run (problem, signature, state)
//   - Steps: every completion step with its terms and the identity and
//     rule sets right after it
//
// # Ordering
//
// Steps are ordered by their logical seq, never by wall time. Every query
// that returns steps uses ORDER BY seq ASC, id ASC COLLATE BINARY, so a
// replay always reads the same sequence.
//
// # Identity
//
// Step ids are content-addressed (ir.StepID): SHA-256 with domain
// separation over canonical JSON. Writing the same step twice is a no-op.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// The log is diagnostic: a session cannot be resumed from it.
package store
