// Package providers holds outer collaborators of the desktop session:
// components that feed the shell data the session itself does not own.
//
// Available Providers:
//   - widget: weather and news widget refresher
package providers
