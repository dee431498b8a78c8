package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/deskd/internal/domain/app"
	"github.com/GriffinCanCode/deskd/internal/domain/menu"
	"github.com/GriffinCanCode/deskd/internal/domain/registry"
	"github.com/GriffinCanCode/deskd/internal/domain/settings"
	"github.com/GriffinCanCode/deskd/internal/domain/storage"
	"github.com/GriffinCanCode/deskd/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/deskd/internal/shared/types"
	"github.com/GriffinCanCode/deskd/internal/shared/utils"
)

// Settings paths owned by desktop and taskbar actions
const (
	PathIconSize    = "desktop.iconSize"
	PathSort        = "desktop.sort"
	PathDeskHidden  = "desktop.hidden"
	PathTaskAlign   = "taskbar.align"
	maxSettingDepth = 8
)

// Taskbar alignments
const (
	AlignLeft   = "left"
	AlignCenter = "center"
)

var iconSizes = map[string]bool{"large": true, "medium": true, "small": true}

// StartState is the start menu panel
type StartState struct {
	Open  bool `json:"open"`
	Alpha bool `json:"alpha"` // alphabetical all-apps list
}

// Options configures a session
type Options struct {
	Store   *storage.Adapter
	Catalog *registry.Catalog
	Probe   settings.ThemeProbe
	Logger  *zap.Logger
	Metrics *monitoring.Metrics
}

type reducer func(ctx context.Context, payload *string) (bool, error)
type handler func(ctx context.Context, payload *string, ms menu.Session) (bool, error)

// Manager is the desktop session store
type Manager struct {
	mu    sync.Mutex
	apps  *app.Manager
	menus *menu.Engine
	tree  settings.Tree
	start StartState
	seq   uint64

	reducers map[string]reducer
	handlers map[HandlerName]handler

	subMu  sync.RWMutex
	subs   map[int]func(Snapshot)
	nextID int

	store   *storage.Adapter
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// New boots a session: seeds the catalog, restores installed apps and the
// desktop layout, loads settings and syncs menu state from them.
func New(ctx context.Context, opts Options) (*Manager, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store := opts.Store
	if store == nil {
		store = storage.NewMemoryAdapter()
	}
	catalog := opts.Catalog
	if catalog == nil {
		var err error
		if catalog, err = registry.Default(); err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
	}

	apps := app.NewManager(store, logger).WithMetrics(opts.Metrics)
	registry.NewSeeder(apps, logger).Seed(catalog)
	apps.Restore(ctx)

	m := &Manager{
		apps:    apps,
		menus:   menu.NewEngine(),
		subs:    make(map[int]func(Snapshot)),
		store:   store,
		logger:  logger.Named("session"),
		metrics: opts.Metrics,
	}
	m.reducers = m.reducerTable()
	m.handlers = m.handlerTable()

	tree, first := settings.Load(ctx, store, opts.Probe)
	m.tree = tree
	if first {
		if err := settings.Save(ctx, store, tree); err != nil {
			m.logger.Warn("First-run settings not persisted", zap.Error(err))
		}
	}
	m.syncMenus()

	person, _ := settings.PersonOf(tree)
	m.logger.Info("Session ready",
		zap.Bool("first_run", first),
		zap.String("user", person.Name),
		zap.String("theme", person.Theme),
		zap.Int("apps", len(apps.List())))
	return m, nil
}

// syncMenus mirrors the settings tree into menu radio and check state.
// Must hold lock.
func (m *Manager) syncMenus() {
	if v, ok := settings.String(m.tree, PathIconSize); ok {
		m.menus.SelectRadio(types.HandlerChangeIconSize, v)
	}
	if v, ok := settings.String(m.tree, PathSort); ok {
		m.menus.SelectRadio(types.HandlerChangeSort, v)
	}
	if v, ok := settings.String(m.tree, PathTaskAlign); ok {
		m.menus.SelectRadio(types.HandlerChangeTaskAlign, v)
	}
	hidden, _ := settings.Bool(m.tree, PathDeskHidden)
	m.menus.SetCheck(types.HandlerDeskHide, !hidden)
}

// saveSettings persists the whole tree. Must hold lock.
func (m *Manager) saveSettings(ctx context.Context) error {
	if err := settings.Save(ctx, m.store, m.tree); err != nil {
		m.logger.Error("Settings not persisted", zap.Error(err))
		return err
	}
	return nil
}

// setAndSave writes a settings leaf and persists. Must hold lock.
func (m *Manager) setAndSave(ctx context.Context, path string, value interface{}) (bool, error) {
	if err := settings.Set(m.tree, path, value); err != nil {
		return false, err
	}
	return true, m.saveSettings(ctx)
}

// Subscribe registers fn to receive a snapshot after every applied change.
// fn runs outside the session lock and must not block for long.
func (m *Manager) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	m.subMu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.subMu.Unlock()

	return func() {
		m.subMu.Lock()
		delete(m.subs, id)
		m.subMu.Unlock()
	}
}

func (m *Manager) publish(s Snapshot) {
	m.subMu.RLock()
	fns := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.RUnlock()

	for _, fn := range fns {
		fn(s)
	}
}

// change runs fn under the session lock and publishes a snapshot when it
// reports a change
func (m *Manager) change(fn func() (bool, error)) error {
	m.mu.Lock()
	changed, err := fn()
	var snap Snapshot
	if changed {
		m.seq++
		snap = m.snapshot()
	}
	m.mu.Unlock()

	if changed {
		m.publish(snap)
	}
	return err
}

// Install installs a user app
func (m *Manager) Install(ctx context.Context, d types.Descriptor) (types.Descriptor, error) {
	var out types.Descriptor
	err := m.change(func() (bool, error) {
		var err error
		out, err = m.apps.Install(ctx, d)
		return out.Action != "", err
	})
	return out, err
}

// Uninstall removes a user-installed app
func (m *Manager) Uninstall(ctx context.Context, name string) error {
	return m.change(func() (bool, error) {
		err := m.apps.Uninstall(ctx, name)
		if errors.Is(err, app.ErrAppNotFound) || errors.Is(err, app.ErrNotInstalled) {
			return false, err
		}
		return true, err
	})
}

// Focus raises an app
func (m *Manager) Focus(name string) error {
	return m.change(func() (bool, error) {
		err := m.apps.Focus(name)
		return err == nil, err
	})
}

// Minimize hides an app
func (m *Manager) Minimize(name string) error {
	return m.change(func() (bool, error) {
		err := m.apps.Minimize(name)
		return err == nil, err
	})
}

// OpenMenu shows menu id at anchor. A non-empty target names the app the
// menu was opened on.
func (m *Manager) OpenMenu(id menu.ID, anchor menu.Point, vp menu.Viewport, target string) (*menu.View, error) {
	var view *menu.View
	err := m.change(func() (bool, error) {
		if err := m.showMenu(id, anchor, vp, target); err != nil {
			return false, err
		}
		view = m.menus.View()
		return true, nil
	})
	return view, err
}

// showMenu must hold lock
func (m *Manager) showMenu(id menu.ID, anchor menu.Point, vp menu.Viewport, target string) error {
	var t *menu.Target
	if target != "" {
		d, ok := m.apps.Get(target)
		if !ok {
			return fmt.Errorf("%w: %s", app.ErrAppNotFound, target)
		}
		t = &menu.Target{Name: d.Name, Installed: d.Installed, Pinned: d.Pinned}
	}
	if _, err := m.menus.Show(id, anchor, vp, t); err != nil {
		return err
	}
	m.metrics.RecordMenuOpen(string(id))
	return nil
}

// CloseMenu hides the open menu
func (m *Manager) CloseMenu() bool {
	closed := false
	_ = m.change(func() (bool, error) {
		closed = m.menus.Hide()
		return closed, nil
	})
	return closed
}

// Setting reads a settings path
func (m *Manager) Setting(path string) (interface{}, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := settings.Lookup(m.tree, path)
	if !ok {
		return nil, false
	}
	if sub, isMap := v.(map[string]interface{}); isMap {
		return map[string]interface{}(settings.Clone(sub)), true
	}
	return v, true
}

// Settings returns a copy of the settings tree
func (m *Manager) Settings() settings.Tree {
	m.mu.Lock()
	defer m.mu.Unlock()
	return settings.Clone(m.tree)
}

// SetSetting writes an existing settings leaf and persists the tree.
// person.theme goes through the theme transaction; the theme glyph is not
// writable on its own.
func (m *Manager) SetSetting(ctx context.Context, path string, value interface{}) error {
	if err := utils.ValidateSettingPath(path); err != nil {
		return err
	}
	if err := utils.ValidateJSONDepth(value, maxSettingDepth); err != nil {
		return err
	}
	return m.change(func() (bool, error) {
		return m.setSetting(ctx, path, value)
	})
}

// setSetting must hold lock
func (m *Manager) setSetting(ctx context.Context, path string, value interface{}) (bool, error) {
	if err := settings.Writable(path); err != nil {
		return false, err
	}
	if path == settings.PathTheme {
		theme, _ := value.(string)
		if err := settings.ApplyTheme(m.tree, theme); err != nil {
			return false, err
		}
		return true, m.saveSettings(ctx)
	}

	changed, err := m.setAndSave(ctx, path, value)
	if changed {
		m.syncMenus()
	}
	return changed, err
}

// Apps returns the registry in registration order
func (m *Manager) Apps() []types.Descriptor {
	return m.apps.List()
}

// App returns one app by name
func (m *Manager) App(name string) (types.Descriptor, bool) {
	return m.apps.Get(name)
}

// Desktop returns the desktop icons in layout order
func (m *Manager) Desktop() []types.Descriptor {
	return m.apps.Desktop()
}

// Taskbar returns the taskbar entries
func (m *Manager) Taskbar() []types.TaskbarEntry {
	return m.apps.Taskbar()
}

// Stats returns registry and window stack statistics
func (m *Manager) Stats() types.Stats {
	return m.apps.Stats()
}
