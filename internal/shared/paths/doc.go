// Package paths provides the on-disk layout of the desktop data directory.
//
// # Directory Structure
//
//	<data dir>/
//	  ├── records/       (one <key>.json per persisted record, file backend)
//	  └── desk.db        (SQLite database, sqlite backend)
//
// # Usage
//
//	layout := paths.New(cfg.Storage.DataDir)
//	backend, err := storage.NewFileBackend(layout.RecordsDir())
package paths
