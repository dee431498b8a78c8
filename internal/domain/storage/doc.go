// Package storage is the persistence adapter of the desktop session.
//
// Records are whole JSON documents addressed by key ("installed",
// "desktop", "setting"). Loads never fail: an absent or corrupt record
// yields the caller's default. Saves overwrite the full record; there is no
// merge, so any read-modify-write must load, mutate and save in one step
// under the caller's lock.
//
// Backends:
//   - MemoryBackend: process-local map, used by tests and ephemeral runs
//   - FileBackend: one <key>.json per record, replaced atomically
//   - SQLiteBackend: a single records table (modernc.org/sqlite)
//
// Two processes sharing one backend race with last-writer-wins semantics.
// There is no cross-process lock; this is a known consistency gap.
package storage
