// Package settings implements the dot-path addressed settings tree.
//
// A tree is a plain nested map. Paths like "system.display.brightness"
// walk it one segment at a time; a read that misses yields nil, and a
// write never creates shape that the default tree does not already have.
//
// Theme changes are three-part transactions (person.theme, quicks.theme,
// wallpaper.index) applied through ApplyTheme so the parts never disagree.
package settings
