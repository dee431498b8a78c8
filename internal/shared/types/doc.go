// Package types provides shared data structures for the desktop session backend.
//
// Core Types:
//   - Descriptor: identity and window state of one application
//   - InstalledRecord: persisted subset of a user-installed descriptor
//   - TaskbarEntry: read projection of the taskbar
//   - Intent: the {type, payload} pair produced by a UI interaction
//   - Stats: registry and window stack statistics
//
// Example Usage:
//
//	d := types.Descriptor{
//	    Name:    "Notes",
//	    Icon:    "notes.svg",
//	    Payload: types.StringPtr(types.PayloadFull),
//	}
package types
