package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/deskd/internal/domain/storage"
	"github.com/GriffinCanCode/deskd/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/deskd/internal/shared/id"
	"github.com/GriffinCanCode/deskd/internal/shared/types"
	"github.com/GriffinCanCode/deskd/internal/shared/utils"
)

var (
	ErrAppNotFound     = errors.New("app not found")
	ErrNotInstalled    = errors.New("app is not user-installed")
	ErrDuplicateName   = errors.New("app name already registered")
	ErrDuplicateAction = errors.New("app action already registered")
	ErrUnknownSort     = errors.New("unknown sort order")
)

// DefaultIcon is used for installs that carry no icon
const DefaultIcon = "app.png"

// Manager is the app registry and window stack
type Manager struct {
	mu       sync.RWMutex
	apps     map[string]*types.Descriptor // Protected by mu
	actions  map[string]string            // action -> name, protected by mu
	order    []string                     // registration order, protected by mu
	desktop  []string                     // desktop icon layout, protected by mu
	highestZ int                          // Protected by mu

	store     *storage.Adapter
	newAction func() string
	logger    *zap.Logger
	metrics   *monitoring.Metrics
}

// NewManager creates a registry persisting through store.
// A nil store keeps everything in memory.
func NewManager(store *storage.Adapter, logger *zap.Logger) *Manager {
	if store == nil {
		store = storage.NewMemoryAdapter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		apps:      make(map[string]*types.Descriptor),
		actions:   make(map[string]string),
		store:     store,
		newAction: func() string { return id.NewActionName().String() },
		logger:    logger.Named("app"),
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// WithActionGenerator replaces the launcher action generator
func (m *Manager) WithActionGenerator(gen func() string) *Manager {
	m.newAction = gen
	return m
}

// Register adds a catalog app. Catalog apps are never user-installed.
func (m *Manager) Register(d types.Descriptor) error {
	if d.Action == "" {
		return fmt.Errorf("register %q: action is required", d.Name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkCollision(d.Name, d.Action); err != nil {
		return err
	}

	d.Installed = false
	m.add(&d)
	if d.Desktop {
		m.desktop = append(m.desktop, d.Name)
	}
	return nil
}

// checkCollision must hold lock
func (m *Manager) checkCollision(name, action string) error {
	if _, ok := m.apps[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	if action == "" {
		return nil
	}
	if owner, ok := m.actions[action]; ok {
		return fmt.Errorf("%w: %s (owned by %s)", ErrDuplicateAction, action, owner)
	}
	return nil
}

// add must hold lock
func (m *Manager) add(d *types.Descriptor) {
	m.apps[d.Name] = d
	m.actions[d.Action] = d.Name
	m.order = append(m.order, d.Name)
	m.updateGauges()
}

// remove must hold lock
func (m *Manager) remove(name string) {
	d, ok := m.apps[name]
	if !ok {
		return
	}
	delete(m.apps, name)
	delete(m.actions, d.Action)
	m.order = without(m.order, name)
	m.desktop = without(m.desktop, name)
	m.updateGauges()
}

func without(list []string, name string) []string {
	out := list[:0]
	for _, n := range list {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}

func contains(list []string, name string) bool {
	for _, n := range list {
		if n == name {
			return true
		}
	}
	return false
}

// Restore loads user-installed apps and the desktop layout from storage.
// Records colliding with already registered apps are skipped.
func (m *Manager) Restore(ctx context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := storage.LoadOr(ctx, m.store, storage.KeyInstalled, []types.InstalledRecord{})
	restored := 0
	for _, rec := range records {
		if err := m.checkCollision(rec.Name, rec.Action); err != nil || rec.Action == "" {
			m.logger.Warn("Skipping installed record", zap.String("name", rec.Name), zap.Error(err))
			continue
		}
		d := rec.Descriptor()
		m.add(&d)
		restored++
	}

	defaultLayout := append([]string(nil), m.desktop...)
	for _, rec := range records {
		if _, ok := m.apps[rec.Name]; ok && !contains(defaultLayout, rec.Name) {
			defaultLayout = append(defaultLayout, rec.Name)
		}
	}

	layout := storage.LoadOr(ctx, m.store, storage.KeyDesktop, defaultLayout)
	m.desktop = m.desktop[:0]
	for _, name := range layout {
		if _, ok := m.apps[name]; ok && !contains(m.desktop, name) {
			m.desktop = append(m.desktop, name)
		}
	}

	m.logger.Info("Registry restored",
		zap.Int("installed", restored),
		zap.Int("desktop", len(m.desktop)))
	return restored
}

// Get retrieves a copy of an app by name
func (m *Manager) Get(name string) (types.Descriptor, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.apps[name]
	if !ok {
		return types.Descriptor{}, false
	}
	return *d, true
}

// FindByAction returns the app whose launcher fires action
func (m *Manager) FindByAction(action string) (types.Descriptor, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name, ok := m.actions[action]
	if !ok {
		return types.Descriptor{}, false
	}
	return *m.apps[name], true
}

// List returns copies of all apps in registration order
func (m *Manager) List() []types.Descriptor {
	m.mu.RLock()
	defer m.mu.RUnlock()

	apps := make([]types.Descriptor, 0, len(m.order))
	for _, name := range m.order {
		apps = append(apps, *m.apps[name])
	}
	return apps
}

// HighestZ returns the window stack counter
func (m *Manager) HighestZ() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.highestZ
}

// Focus raises an app to the top of the stack and shows it
func (m *Manager) Focus(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.apps[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAppNotFound, name)
	}
	m.focus(d)
	return nil
}

// focus must hold lock
func (m *Manager) focus(d *types.Descriptor) {
	m.highestZ++
	d.Z = m.highestZ
	d.Hidden = false
	d.Open = true
	m.metrics.RecordAppEvent("focus")
	m.updateGauges()
}

// Minimize hides an app, keeping its place in recency order
func (m *Manager) Minimize(name string) error {
	return m.mutate(name, "minimize", func(d *types.Descriptor) {
		d.Hidden = true
	})
}

// Close closes the app's window
func (m *Manager) Close(name string) error {
	return m.mutate(name, "close", func(d *types.Descriptor) {
		d.Open = false
		d.Hidden = true
		d.Maximized = false
	})
}

// Pin adds an app to the taskbar
func (m *Manager) Pin(name string) error {
	return m.mutate(name, "pin", func(d *types.Descriptor) { d.Pinned = true })
}

// Unpin removes an app from the taskbar
func (m *Manager) Unpin(name string) error {
	return m.mutate(name, "unpin", func(d *types.Descriptor) { d.Pinned = false })
}

func (m *Manager) mutate(name, event string, fn func(d *types.Descriptor)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.apps[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAppNotFound, name)
	}
	fn(d)
	m.metrics.RecordAppEvent(event)
	m.updateGauges()
	return nil
}

// Open opens and focuses an app's window; full opens it maximized
func (m *Manager) Open(name string, full bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.apps[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAppNotFound, name)
	}
	m.open(d, full)
	return nil
}

// open must hold lock
func (m *Manager) open(d *types.Descriptor, full bool) {
	if full {
		d.Maximized = true
	} else if !d.Open {
		d.Maximized = false
	}
	m.focus(d)
}

// Launch applies a launcher action with its payload. It reports false when
// no app owns the action.
func (m *Manager) Launch(action string, payload *string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	name, ok := m.actions[action]
	if !ok {
		return false
	}
	d := m.apps[name]

	arg := d.DefaultPayload()
	if payload != nil && *payload != "" {
		arg = *payload
	}

	switch arg {
	case types.PayloadFull:
		m.open(d, true)
	case types.PayloadClose:
		d.Open, d.Hidden, d.Maximized = false, true, false
		m.metrics.RecordAppEvent("close")
	case types.PayloadMaximize:
		d.Maximized = !d.Maximized
		m.focus(d)
	case types.PayloadMinimize:
		d.Hidden = true
		m.metrics.RecordAppEvent("minimize")
	case types.PayloadFront:
		if d.Open {
			m.focus(d)
		}
	case types.PayloadToggle:
		m.toggle(d)
	default:
		m.open(d, false)
	}

	m.updateGauges()
	return true
}

// toggle is the taskbar click: closed or background apps come to the
// front, the active one is minimized. Must hold lock.
func (m *Manager) toggle(d *types.Descriptor) {
	switch {
	case !d.Open:
		m.open(d, false)
	case d.Hidden || !m.isActive(d):
		m.focus(d)
	default:
		d.Hidden = true
		m.metrics.RecordAppEvent("minimize")
	}
}

// isActive must hold lock
func (m *Manager) isActive(d *types.Descriptor) bool {
	return m.highestZ > 0 && d.Z == m.highestZ && !d.Hidden
}

// Active returns the focused app, if any
func (m *Manager) Active() (types.Descriptor, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, name := range m.order {
		if d := m.apps[name]; m.isActive(d) {
			return *d, true
		}
	}
	return types.Descriptor{}, false
}

// Install registers a user app under a freshly generated launcher action,
// persists it and focuses it. Collisions are rejected before any mutation.
func (m *Manager) Install(ctx context.Context, d types.Descriptor) (types.Descriptor, error) {
	d.Name = utils.SanitizeText(d.Name)
	if d.Icon == "" {
		d.Icon = DefaultIcon
	}
	if err := utils.ValidateAppName(d.Name); err != nil {
		return types.Descriptor{}, err
	}
	if err := utils.ValidateIcon(d.Icon); err != nil {
		return types.Descriptor{}, err
	}
	if err := utils.ValidatePayload(d.Payload); err != nil {
		return types.Descriptor{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkCollision(d.Name, d.Action); err != nil {
		return types.Descriptor{}, err
	}

	action := m.newAction()
	for attempts := 0; ; attempts++ {
		if _, taken := m.actions[action]; !taken {
			break
		}
		if attempts >= 8 {
			return types.Descriptor{}, fmt.Errorf("%w: could not generate a fresh action", ErrDuplicateAction)
		}
		action = m.newAction()
	}

	app := &types.Descriptor{
		Name:      d.Name,
		Icon:      d.Icon,
		Action:    action,
		Payload:   d.Payload,
		Installed: true,
		Pinned:    d.Pinned,
		PWA:       d.PWA,
	}
	m.add(app)
	if !contains(m.desktop, app.Name) {
		m.desktop = append(m.desktop, app.Name)
	}
	m.focus(app)
	m.metrics.RecordAppEvent("install")

	err := m.persistInstall(ctx, app)
	if err != nil {
		m.logger.Error("Install not persisted", zap.String("name", app.Name), zap.Error(err))
	} else {
		m.logger.Info("App installed", zap.String("name", app.Name), zap.String("action", app.Action))
	}
	return *app, err
}

// persistInstall appends to the installed and desktop records. Must hold lock.
func (m *Manager) persistInstall(ctx context.Context, app *types.Descriptor) error {
	installed := storage.LoadOr(ctx, m.store, storage.KeyInstalled, []types.InstalledRecord{})
	installed = append(installed, app.Record())

	layout := storage.LoadOr(ctx, m.store, storage.KeyDesktop, m.desktopWithout(app.Name))
	if !contains(layout, app.Name) {
		layout = append(layout, app.Name)
	}

	return errors.Join(
		m.store.Save(ctx, storage.KeyInstalled, installed),
		m.store.Save(ctx, storage.KeyDesktop, layout),
	)
}

// desktopWithout must hold lock
func (m *Manager) desktopWithout(name string) []string {
	out := make([]string, 0, len(m.desktop))
	for _, n := range m.desktop {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}

// Uninstall removes a user-installed app from the registry, the installed
// record and the desktop layout. Focus is not moved to another app.
func (m *Manager) Uninstall(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.apps[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAppNotFound, name)
	}
	if !d.Installed {
		return fmt.Errorf("%w: %s", ErrNotInstalled, name)
	}

	m.remove(name)
	m.metrics.RecordAppEvent("uninstall")

	installed := storage.LoadOr(ctx, m.store, storage.KeyInstalled, []types.InstalledRecord{})
	kept := installed[:0]
	for _, rec := range installed {
		if rec.Name != name {
			kept = append(kept, rec)
		}
	}

	layout := storage.LoadOr(ctx, m.store, storage.KeyDesktop, append([]string(nil), m.desktop...))

	err := errors.Join(
		m.store.Save(ctx, storage.KeyInstalled, kept),
		m.store.Save(ctx, storage.KeyDesktop, without(layout, name)),
	)
	if err != nil {
		m.logger.Error("Uninstall not persisted", zap.String("name", name), zap.Error(err))
		return err
	}
	m.logger.Info("App uninstalled", zap.String("name", name))
	return nil
}

// updateGauges must hold lock
func (m *Manager) updateGauges() {
	if m.metrics == nil {
		return
	}
	var open, installed int
	for _, d := range m.apps {
		if d.Open {
			open++
		}
		if d.Installed {
			installed++
		}
	}
	m.metrics.SetAppGauges(len(m.apps), open, installed)
}

// Stats returns registry and window stack statistics
func (m *Manager) Stats() types.Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := types.Stats{
		TotalApps:    len(m.apps),
		DesktopIcons: len(m.desktop),
		HighestZ:     m.highestZ,
	}
	for _, name := range m.order {
		d := m.apps[name]
		if d.Installed {
			stats.InstalledApps++
		}
		if d.Open {
			stats.OpenApps++
		}
		if d.Hidden {
			stats.HiddenApps++
		}
		if m.isActive(d) {
			stats.FocusedApp = types.StringPtr(d.Name)
		}
	}
	return stats
}
