// Package menu implements the desktop context menus.
//
// A menu is a tree of Node values: Item leaves, Submenu branches and
// Separator rows, nested to any depth. The Engine keeps the built-in menus
// and the single open menu session. Every Show recomputes the on-screen
// position from the anchor and viewport; nothing is cached between shows.
//
// Radio and check state is changed copy-on-write: the new tree is built
// aside and swapped in whole, so a reader never sees a group with zero or
// two selected items.
//
// The Engine is not safe for concurrent use; the session store serializes
// access to it.
package menu
