// Package app owns the application registry and the window stack.
//
// Every app, from the boot catalog or installed by the user, is a
// Descriptor keyed by its unique name; its launcher action is unique too.
// The window stack is the highestZ counter: focusing an app bumps it and
// assigns it to that app, so the focused app is always the unique maximum.
// Installed apps and the desktop icon layout are persisted through the
// storage adapter with whole-record read-modify-write.
package app
