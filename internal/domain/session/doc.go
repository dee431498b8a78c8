// Package session is the desktop session store and its command dispatcher.
//
// The Manager owns the whole shell state (app registry and window stack,
// menus, settings tree, start menu) behind one mutex, so every operation is
// atomic to callers, including read-modify-write of persisted records.
//
// Intents are {type, payload} pairs:
//   - an empty type is a no-op
//   - a type with no lower-case letter is a direct reducer action, or the
//     launcher action of a registered app
//   - any other type names a handler from a closed set; unknown names are
//     rejected at parse time and dispatch as a no-op
//
// Intents dispatched from a menu always close the menu afterwards. Every
// applied change is published to subscribers as a Snapshot.
//
// Example Usage:
//
//	m, err := session.New(ctx, session.Options{Store: adapter})
//	res, err := m.Dispatch(ctx, types.NewIntent("changeTheme"))
//	unsubscribe := m.Subscribe(func(s session.Snapshot) { ... })
package session
