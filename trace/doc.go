// Package trace
// Author: momentics <momentics@gmail.com>
//
// Diagnostic allocation tracking for persistbuf pools.
// A Tracker logs every acquire/release event through zerolog and keeps a side
// table of live allocations keyed by storage address. It is a pure
// observability add-on: attaching one never changes pool semantics, and the
// pool works identically without it.
package trace
