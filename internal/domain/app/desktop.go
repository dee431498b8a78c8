package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/GriffinCanCode/deskd/internal/domain/storage"
	"github.com/GriffinCanCode/deskd/internal/shared/types"
	"github.com/GriffinCanCode/deskd/internal/shared/utils"
)

// Desktop sort orders
const (
	SortName = "name"
	SortSize = "size"
	SortDate = "date"
)

// comparators order desktop icons. Size and date keys are name-derived
// hashes: there is no real byte size or timestamp behind an icon.
var comparators = map[string]func(a, b string) bool{
	SortName: func(a, b string) bool {
		return strings.ToLower(a) < strings.ToLower(b)
	},
	SortSize: func(a, b string) bool {
		return utils.PseudoKey(SortSize, a) > utils.PseudoKey(SortSize, b)
	},
	SortDate: func(a, b string) bool {
		return utils.PseudoKey(SortDate, a) < utils.PseudoKey(SortDate, b)
	},
}

// ValidSort reports whether by names a known comparator
func ValidSort(by string) bool {
	_, ok := comparators[by]
	return ok
}

// SortDesktop stable-sorts the desktop layout and persists it
func (m *Manager) SortDesktop(ctx context.Context, by string) error {
	less, ok := comparators[by]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSort, by)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sort.SliceStable(m.desktop, func(i, j int) bool {
		return less(m.desktop[i], m.desktop[j])
	})
	return m.store.Save(ctx, storage.KeyDesktop, m.desktop)
}

// AddShortcut puts an app on the desktop
func (m *Manager) AddShortcut(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.apps[name]; !ok {
		return fmt.Errorf("%w: %s", ErrAppNotFound, name)
	}
	if contains(m.desktop, name) {
		return nil
	}
	m.desktop = append(m.desktop, name)

	layout := storage.LoadOr(ctx, m.store, storage.KeyDesktop, m.desktopWithout(name))
	if !contains(layout, name) {
		layout = append(layout, name)
	}
	return m.store.Save(ctx, storage.KeyDesktop, layout)
}

// RemoveShortcut takes an app off the desktop without uninstalling it
func (m *Manager) RemoveShortcut(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.apps[name]; !ok {
		return fmt.Errorf("%w: %s", ErrAppNotFound, name)
	}
	if !contains(m.desktop, name) {
		return nil
	}
	m.desktop = without(m.desktop, name)

	layout := storage.LoadOr(ctx, m.store, storage.KeyDesktop, append([]string(nil), m.desktop...))
	return m.store.Save(ctx, storage.KeyDesktop, without(layout, name))
}

// Desktop returns the desktop icons in layout order
func (m *Manager) Desktop() []types.Descriptor {
	m.mu.RLock()
	defer m.mu.RUnlock()

	icons := make([]types.Descriptor, 0, len(m.desktop))
	for _, name := range m.desktop {
		if d, ok := m.apps[name]; ok {
			icons = append(icons, *d)
		}
	}
	return icons
}

// DesktopLayout returns the ordered desktop app names
func (m *Manager) DesktopLayout() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.desktop...)
}

// Taskbar returns pinned and open apps in registration order
func (m *Manager) Taskbar() []types.TaskbarEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]types.TaskbarEntry, 0)
	for _, name := range m.order {
		d := m.apps[name]
		if !d.Pinned && !d.Open {
			continue
		}
		entries = append(entries, types.TaskbarEntry{
			Name:   d.Name,
			Icon:   d.Icon,
			Action: d.Action,
			Pinned: d.Pinned,
			Open:   d.Open,
			Hidden: d.Hidden,
			Active: m.isActive(d),
		})
	}
	return entries
}
