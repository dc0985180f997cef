// Package ir provides the record types shared by the completion engine,
// the history store and the problem loaders.
//
// This package contains type definitions, canonical JSON and
// content-addressed ids only. ir imports nothing internal, so every
// other package can depend on it without cycles.
//
// Key design constraints:
//   - Terms appear here as their rendered text, never as term values.
//   - NO float types anywhere; numbers are int64.
//   - All JSON tags use snake_case.
//   - Logical clocks (seq) only, never wall-clock timestamps.
package ir
