package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/deskd/internal/domain/storage"
	"github.com/GriffinCanCode/deskd/internal/shared/id"
	"github.com/GriffinCanCode/deskd/internal/shared/types"
)

func newTestManager(t *testing.T) (*Manager, *storage.Adapter) {
	t.Helper()
	store := storage.NewMemoryAdapter()
	m := NewManager(store, nil)
	require.NoError(t, m.Register(types.Descriptor{
		Name: "Files", Icon: "files.svg", Action: "EXPLORER", Desktop: true,
	}))
	return m, store
}

func installedRecords(t *testing.T, store *storage.Adapter) []types.InstalledRecord {
	t.Helper()
	return storage.LoadOr(context.Background(), store, storage.KeyInstalled, []types.InstalledRecord{})
}

func topCount(m *Manager) int {
	n := 0
	for _, d := range m.List() {
		if d.Z == m.HighestZ() {
			n++
		}
	}
	return n
}

func TestFocusZOrder(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Register(types.Descriptor{Name: "Browser", Action: "EDGE"}))
	require.NoError(t, m.Register(types.Descriptor{Name: "Store", Action: "WNSTORE"}))

	last := m.HighestZ()
	for _, name := range []string{"Files", "Browser", "Files", "Store", "Store", "Browser"} {
		require.NoError(t, m.Focus(name))

		assert.Greater(t, m.HighestZ(), last)
		last = m.HighestZ()

		d, _ := m.Get(name)
		assert.Equal(t, m.HighestZ(), d.Z)
		assert.False(t, d.Hidden)
		assert.Equal(t, 1, topCount(m))

		active, ok := m.Active()
		require.True(t, ok)
		assert.Equal(t, name, active.Name)
	}

	assert.ErrorIs(t, m.Focus("Nope"), ErrAppNotFound)
}

func TestMinimizeKeepsZ(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Focus("Files"))
	require.NoError(t, m.Minimize("Files"))

	d, _ := m.Get("Files")
	assert.True(t, d.Hidden)
	assert.Equal(t, 1, d.Z)

	_, ok := m.Active()
	assert.False(t, ok)
}

func TestFilesNotesScenario(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager(t)

	files, _ := m.Get("Files")
	assert.Equal(t, 0, files.Z)
	assert.False(t, files.Hidden)
	assert.Equal(t, 0, m.HighestZ())

	require.NoError(t, m.Focus("Files"))
	assert.Equal(t, 1, m.HighestZ())
	files, _ = m.Get("Files")
	assert.Equal(t, 1, files.Z)

	before := len(installedRecords(t, store))
	notes, err := m.Install(ctx, types.Descriptor{Name: "Notes", Icon: "notes.svg"})
	require.NoError(t, err)
	assert.True(t, id.IsGeneratedAction(notes.Action))
	assert.Len(t, installedRecords(t, store), before+1)
	assert.Equal(t, 2, m.HighestZ())
	assert.Equal(t, 2, notes.Z)

	active, ok := m.Active()
	require.True(t, ok)
	assert.Equal(t, "Notes", active.Name)

	require.NoError(t, m.Uninstall(ctx, "Notes"))
	assert.Len(t, m.List(), 1)
	assert.Equal(t, "Files", m.List()[0].Name)
	assert.Empty(t, installedRecords(t, store))

	_, ok = m.Active()
	assert.False(t, ok)
}

func TestInstallRejectsCollisionsBeforeMutation(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager(t)

	_, err := m.Install(ctx, types.Descriptor{Name: "Files", Icon: "x.svg"})
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = m.Install(ctx, types.Descriptor{Name: "Explorer 2", Action: "EXPLORER"})
	assert.ErrorIs(t, err, ErrDuplicateAction)

	assert.Len(t, m.List(), 1)
	assert.Equal(t, 0, m.HighestZ())
	assert.Empty(t, installedRecords(t, store))
}

func TestInstallRegeneratesTakenAction(t *testing.T) {
	m, _ := newTestManager(t)
	actions := []string{"EXPLORER", "APP_FRESH"}
	m.WithActionGenerator(func() string {
		a := actions[0]
		actions = actions[1:]
		return a
	})

	d, err := m.Install(context.Background(), types.Descriptor{Name: "Notes"})
	require.NoError(t, err)
	assert.Equal(t, "APP_FRESH", d.Action)
}

func TestInstallSanitizesName(t *testing.T) {
	m, _ := newTestManager(t)

	d, err := m.Install(context.Background(), types.Descriptor{Name: "<b>Notes</b>"})
	require.NoError(t, err)
	assert.Equal(t, "Notes", d.Name)

	_, err = m.Install(context.Background(), types.Descriptor{Name: "<script></script>"})
	assert.Error(t, err)
}

func TestInstallUninstallSymmetry(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager(t)
	_, err := m.Install(ctx, types.Descriptor{Name: "Paint"})
	require.NoError(t, err)

	names := func() []string {
		var out []string
		for _, d := range m.List() {
			out = append(out, d.Name)
		}
		return out
	}
	registry := names()
	installed := installedRecords(t, store)
	layout := m.DesktopLayout()

	_, err = m.Install(ctx, types.Descriptor{Name: "Notes", Icon: "notes.svg"})
	require.NoError(t, err)
	require.NoError(t, m.Uninstall(ctx, "Notes"))

	assert.ElementsMatch(t, registry, names())
	assert.ElementsMatch(t, installed, installedRecords(t, store))
	assert.ElementsMatch(t, layout, m.DesktopLayout())
	assert.ElementsMatch(t, layout, storage.LoadOr(ctx, store, storage.KeyDesktop, []string{}))
}

func TestUninstallCatalogApp(t *testing.T) {
	m, _ := newTestManager(t)

	assert.ErrorIs(t, m.Uninstall(context.Background(), "Files"), ErrNotInstalled)
	assert.ErrorIs(t, m.Uninstall(context.Background(), "Ghost"), ErrAppNotFound)
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager(t)
	notes, err := m.Install(ctx, types.Descriptor{Name: "Notes", Icon: "notes.svg"})
	require.NoError(t, err)

	fresh := NewManager(store, nil)
	require.NoError(t, fresh.Register(types.Descriptor{Name: "Files", Action: "EXPLORER", Desktop: true}))
	assert.Equal(t, 1, fresh.Restore(ctx))

	d, ok := fresh.Get("Notes")
	require.True(t, ok)
	assert.Equal(t, notes.Action, d.Action)
	assert.True(t, d.Installed)
	assert.Equal(t, []string{"Files", "Notes"}, fresh.DesktopLayout())
}

func TestRestoreSkipsCollidingRecords(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryAdapter()
	require.NoError(t, store.Save(ctx, storage.KeyInstalled, []types.InstalledRecord{
		{Name: "Files", Action: "APP_X"},
		{Name: "Other", Action: "EXPLORER"},
		{Name: "Good", Action: "APP_GOOD"},
	}))

	m := NewManager(store, nil)
	require.NoError(t, m.Register(types.Descriptor{Name: "Files", Action: "EXPLORER"}))
	assert.Equal(t, 1, m.Restore(ctx))
	_, ok := m.Get("Good")
	assert.True(t, ok)
}

func TestLaunchPayloads(t *testing.T) {
	m, _ := newTestManager(t)

	assert.False(t, m.Launch("NOPE", nil))

	require.True(t, m.Launch("EXPLORER", types.StringPtr(types.PayloadFull)))
	d, _ := m.Get("Files")
	assert.True(t, d.Open)
	assert.True(t, d.Maximized)
	assert.Equal(t, m.HighestZ(), d.Z)

	m.Launch("EXPLORER", types.StringPtr(types.PayloadMaximize))
	d, _ = m.Get("Files")
	assert.False(t, d.Maximized)

	m.Launch("EXPLORER", types.StringPtr(types.PayloadToggle))
	d, _ = m.Get("Files")
	assert.True(t, d.Hidden, "toggle on the active app minimizes")

	m.Launch("EXPLORER", types.StringPtr(types.PayloadToggle))
	d, _ = m.Get("Files")
	assert.False(t, d.Hidden, "toggle on a minimized app restores")

	m.Launch("EXPLORER", types.StringPtr(types.PayloadClose))
	d, _ = m.Get("Files")
	assert.False(t, d.Open)
	assert.True(t, d.Hidden)

	z := m.HighestZ()
	m.Launch("EXPLORER", types.StringPtr(types.PayloadFront))
	assert.Equal(t, z, m.HighestZ(), "front does not open a closed app")
}

func TestTaskbar(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Register(types.Descriptor{Name: "Browser", Action: "EDGE", Pinned: true}))
	require.NoError(t, m.Register(types.Descriptor{Name: "Store", Action: "WNSTORE"}))

	require.NoError(t, m.Open("Store", false))

	entries := m.Taskbar()
	require.Len(t, entries, 2)
	assert.Equal(t, "Browser", entries[0].Name)
	assert.False(t, entries[0].Active)
	assert.Equal(t, "Store", entries[1].Name)
	assert.True(t, entries[1].Active)

	require.NoError(t, m.Unpin("Browser"))
	require.NoError(t, m.Pin("Files"))
	names := []string{}
	for _, e := range m.Taskbar() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Files", "Store"}, names)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	_, err := m.Install(ctx, types.Descriptor{Name: "Notes"})
	require.NoError(t, err)

	stats := m.Stats()
	assert.Equal(t, 2, stats.TotalApps)
	assert.Equal(t, 1, stats.InstalledApps)
	assert.Equal(t, 1, stats.OpenApps)
	assert.Equal(t, 2, stats.DesktopIcons)
	require.NotNil(t, stats.FocusedApp)
	assert.Equal(t, "Notes", *stats.FocusedApp)
}
