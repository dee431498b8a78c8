package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/deskd/internal/domain/app"
	"github.com/GriffinCanCode/deskd/internal/domain/menu"
	"github.com/GriffinCanCode/deskd/internal/domain/settings"
	"github.com/GriffinCanCode/deskd/internal/domain/storage"
	"github.com/GriffinCanCode/deskd/internal/shared/types"
)

var screen = menu.Viewport{Width: 1280, Height: 720}

func TestDispatchNoOps(t *testing.T) {
	m := newTestSession(t)
	before := m.Snapshot()

	for _, in := range []types.Intent{
		{},
		types.NewIntent("unknownHandler"),
		types.NewIntent("NOTAREDUCER"),
		types.NewIntent("DESKSIZE", "gigantic"),
		types.NewIntent("WALLSET", "99"),
		types.NewIntent("STNGSETV", "not json"),
		types.NewIntent("STNGTOGG", "person.theme"),
	} {
		res, err := m.Dispatch(context.Background(), in)
		require.NoError(t, err, in.Type)
		assert.False(t, res.Applied, in.Type)
	}

	assert.Equal(t, before, m.Snapshot())
}

func TestLauncherActions(t *testing.T) {
	m := newTestSession(t)

	res := dispatch(t, m, "SETTINGS")
	assert.True(t, res.Applied)
	assert.Equal(t, "action", res.Kind)

	d, _ := m.App("Settings")
	assert.True(t, d.Open)
	assert.True(t, d.Maximized, "catalog payload full is the default")

	dispatch(t, m, "SETTINGS", "mnmz")
	d, _ = m.App("Settings")
	assert.True(t, d.Hidden)
}

func TestChangeThemeIsAtomic(t *testing.T) {
	m := newTestSession(t)

	for i := 0; i < 4; i++ {
		dispatch(t, m, "changeTheme")
		tree := m.Settings()
		assert.True(t, settings.ThemeConsistent(tree))
	}

	dispatch(t, m, "changeTheme", "dark")
	tree := m.Settings()
	assert.Equal(t, "dark", settings.Get(tree, settings.PathTheme))
	assert.Equal(t, "moon", settings.Get(tree, settings.PathThemeGlyph))
	assert.Equal(t, 1.0, settings.Get(tree, settings.PathWallpaper))

	dispatch(t, m, "STNGTHEME", "light")
	assert.True(t, settings.ThemeConsistent(m.Settings()))
	assert.Equal(t, "light", settings.Get(m.Settings(), settings.PathTheme))
}

func TestSetValueRoutesThemeThroughTransaction(t *testing.T) {
	m := newTestSession(t)

	res := dispatch(t, m, "STNGSETV", `{"path":"person.theme","value":"dark"}`)
	assert.True(t, res.Applied)
	assert.True(t, settings.ThemeConsistent(m.Settings()))
	assert.Equal(t, "moon", settings.Get(m.Settings(), settings.PathThemeGlyph))

	res = dispatch(t, m, "STNGSETV", `{"path":"system.audio.volume","value":25}`)
	assert.True(t, res.Applied)
	assert.Equal(t, 25.0, settings.Get(m.Settings(), "system.audio.volume"))

	res = dispatch(t, m, "STNGSETV", `{"path":"system.audio.bass","value":25}`)
	assert.False(t, res.Applied)
}

func TestSetValueIgnoresShapeChanges(t *testing.T) {
	m := newTestSession(t)
	before := m.Settings()

	payloads := []string{
		`{"path":"system","value":"flat"}`,
		`{"path":"person","value":null}`,
		`{"path":"desktop","value":{"sort":"size"}}`,
		`{"path":"system.audio.volume","value":"loud"}`,
		`{"path":"person.name","value":null}`,
		`{"path":"quicks.theme","value":"moon"}`,
	}
	for _, p := range payloads {
		res, err := m.Dispatch(context.Background(), types.NewIntent("STNGSETV", p))
		require.NoError(t, err, p)
		assert.False(t, res.Applied, p)
	}

	assert.Equal(t, before, m.Settings())
	assert.True(t, settings.ThemeConsistent(m.Settings()))
}

func TestWallpaperAndPaneTheme(t *testing.T) {
	m := newTestSession(t)

	dispatch(t, m, "WALLSET", "5")
	dispatch(t, m, "WALLNEXT")
	idx, _ := settings.Int(m.Settings(), settings.PathWallpaper)
	assert.Equal(t, 0, idx)

	m.mu.Lock()
	require.NoError(t, settings.Set(m.tree, settings.PathThemeGlyph, "cloud"))
	m.mu.Unlock()
	res := dispatch(t, m, "PANETHEM")
	assert.True(t, res.Applied)
	assert.Equal(t, "sun", settings.Get(m.Settings(), settings.PathThemeGlyph))
	assert.False(t, dispatch(t, m, "PANETHEM").Applied)
}

func TestRadioGroupsStayExclusive(t *testing.T) {
	ctx := context.Background()
	m := newTestSession(t)
	_, err := m.OpenMenu(menu.Desk, menu.Point{}, screen, "")
	require.NoError(t, err)

	steps := []types.Intent{
		types.NewIntent("changeIconSize", "large"),
		types.NewIntent("DESKSIZE", "small"),
		types.NewIntent("changeSort", "size"),
		types.NewIntent("DESKSORT", "name"),
		types.NewIntent("changeTaskAlign", "left"),
		types.NewIntent("TASKTOGG"),
	}
	for _, in := range steps {
		_, err := m.Dispatch(ctx, in)
		require.NoError(t, err)

		desk, _ := m.menus.Menu(menu.Desk)
		task, _ := m.menus.Menu(menu.Task)
		assert.Len(t, dotted(desk.Nodes, types.HandlerChangeIconSize), 1)
		assert.Len(t, dotted(desk.Nodes, types.HandlerChangeSort), 1)
		assert.Len(t, dotted(task.Nodes, types.HandlerChangeTaskAlign), 1)
	}

	tree := m.Settings()
	assert.Equal(t, "small", settings.Get(tree, PathIconSize))
	assert.Equal(t, "name", settings.Get(tree, PathSort))
	assert.Equal(t, "center", settings.Get(tree, PathTaskAlign))

	view := m.Snapshot().Menu
	require.NotNil(t, view, "dispatching outside a menu keeps it open")
}

func dotted(nodes []menu.Node, action string) []string {
	var out []string
	for _, n := range nodes {
		switch v := n.(type) {
		case menu.Item:
			if v.Action == action && v.Dot {
				out = append(out, *v.Payload)
			}
		case menu.Submenu:
			out = append(out, dotted(v.Children, action)...)
		}
	}
	return out
}

func TestDispatchFromMenuClosesMenu(t *testing.T) {
	ctx := context.Background()
	m := newTestSession(t)

	_, err := m.OpenMenu(menu.Desk, menu.Point{Top: 10, Left: 10}, screen, "")
	require.NoError(t, err)

	// even an ignored intent closes the menu
	res, err := m.DispatchFromMenu(ctx, types.NewIntent("notAHandler"))
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Nil(t, m.Snapshot().Menu)

	res, err = m.DispatchFromMenu(ctx, types.NewIntent("notAHandler"))
	require.NoError(t, err)
	assert.False(t, res.Applied, "nothing to close")
}

func TestDeskHideCheck(t *testing.T) {
	ctx := context.Background()
	m := newTestSession(t)
	_, err := m.OpenMenu(menu.Desk, menu.Point{}, screen, "")
	require.NoError(t, err)

	_, err = m.DispatchFromMenu(ctx, types.NewIntent("deskHide"))
	require.NoError(t, err)
	assert.Equal(t, true, settings.Get(m.Settings(), PathDeskHidden))

	desk, _ := m.menus.Menu(menu.Desk)
	view := menu.Render(desk)
	assert.False(t, view.Opts[0].Opts[4].Check)

	dispatch(t, m, "DESKSHOW")
	assert.Equal(t, false, settings.Get(m.Settings(), PathDeskHidden))
	assert.False(t, dispatch(t, m, "DESKSHOW").Applied)
	dispatch(t, m, "DESKTOGG")
	assert.Equal(t, true, settings.Get(m.Settings(), PathDeskHidden))
}

func TestAppMenuHandlersUseTarget(t *testing.T) {
	ctx := context.Background()
	m := newTestSession(t)
	_, err := m.Install(ctx, types.Descriptor{Name: "Notes", Icon: "notes.svg"})
	require.NoError(t, err)

	open := func(name string) {
		_, err := m.OpenMenu(menu.App, menu.Point{}, screen, name)
		require.NoError(t, err)
	}

	open("Files")
	_, err = m.DispatchFromMenu(ctx, types.NewIntent("performApp", "pin"))
	require.NoError(t, err)
	files, _ := m.App("Files")
	assert.True(t, files.Pinned)

	open("Files")
	_, err = m.DispatchFromMenu(ctx, types.NewIntent("delShort"))
	require.NoError(t, err)
	assert.NotContains(t, names(m.Desktop()), "Files")

	open("Files")
	res, err := m.DispatchFromMenu(ctx, types.NewIntent("delApp"))
	require.NoError(t, err, "catalog apps are not removable, silently")
	assert.True(t, res.Applied, "menu still closes")
	_, ok := m.App("Files")
	assert.True(t, ok)

	open("Notes")
	_, err = m.DispatchFromMenu(ctx, types.NewIntent("delApp"))
	require.NoError(t, err)
	_, ok = m.App("Notes")
	assert.False(t, ok)

	open("Terminal")
	_, err = m.DispatchFromMenu(ctx, types.NewIntent("performApp", "open"))
	require.NoError(t, err)
	active := m.Snapshot().Active
	require.NotNil(t, active)
	assert.Equal(t, "Terminal", *active)
}

func names(ds []types.Descriptor) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Name)
	}
	return out
}

func TestInstallAppHandler(t *testing.T) {
	ctx := context.Background()
	m := newTestSession(t)

	res := dispatch(t, m, "installApp", `{"name":"Notes","icon":"notes.svg","pwa":true}`)
	assert.True(t, res.Applied)
	notes, ok := m.App("Notes")
	require.True(t, ok)
	assert.True(t, notes.PWA)

	active := m.Snapshot().Active
	require.NotNil(t, active)
	assert.Equal(t, "Notes", *active)

	res, err := m.Dispatch(ctx, types.NewIntent("installApp", "Notes"))
	assert.ErrorIs(t, err, app.ErrDuplicateName)
	assert.False(t, res.Applied)

	res = dispatch(t, m, "installApp", "Paint")
	assert.True(t, res.Applied)
}

func TestStartMenu(t *testing.T) {
	m := newTestSession(t)

	dispatch(t, m, "STARTOGG")
	assert.True(t, m.Snapshot().Start.Open)
	dispatch(t, m, "STARTALPHA")
	assert.True(t, m.Snapshot().Start.Alpha)
	dispatch(t, m, "STARTHID")
	assert.Equal(t, StartState{}, m.Snapshot().Start)
}

func TestShortcutActions(t *testing.T) {
	m := newTestSession(t)

	assert.True(t, dispatch(t, m, "DESKREM", "Files").Applied)
	assert.NotContains(t, names(m.Desktop()), "Files")
	assert.True(t, dispatch(t, m, "DESKADD", "Files").Applied)
	assert.Contains(t, names(m.Desktop()), "Files")
	assert.False(t, dispatch(t, m, "DESKADD", "Ghost").Applied)
}

func TestMenuShowAction(t *testing.T) {
	m := newTestSession(t)

	res := dispatch(t, m, "MENUSHOW", `{"menu":"task","anchor":{"top":700,"left":10},"viewport":{"width":1280,"height":720}}`)
	assert.True(t, res.Applied)
	view := m.Snapshot().Menu
	require.NotNil(t, view)
	assert.Equal(t, menu.Task, view.ID)
	assert.True(t, view.Position.Flipped)

	assert.True(t, dispatch(t, m, "MENUHIDE").Applied)
	assert.False(t, dispatch(t, m, "MENUHIDE").Applied)
	assert.False(t, dispatch(t, m, "MENUSHOW", `{"menu":"bogus"}`).Applied)
}

type failingBackend struct {
	*storage.MemoryBackend
}

func (failingBackend) Write(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestStorageFailureIsReturned(t *testing.T) {
	store := storage.NewAdapter(failingBackend{storage.NewMemoryBackend()}, nil)
	m := newSessionWithStore(t, store)

	res, err := m.Dispatch(context.Background(), types.NewIntent("DESKSIZE", "large"))
	assert.Error(t, err)
	assert.True(t, res.Applied, "state stays mutated in memory")
	assert.Equal(t, "large", settings.Get(m.Settings(), PathIconSize))
}

func TestReducerTableMatchesActionSet(t *testing.T) {
	m := newTestSession(t)

	assert.Len(t, m.reducers, types.ReducerActions())
	for action := range m.reducers {
		assert.True(t, types.IsReducerAction(action), action)
	}
}
