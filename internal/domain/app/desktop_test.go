package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/deskd/internal/domain/storage"
	"github.com/GriffinCanCode/deskd/internal/shared/types"
)

func desktopManager(t *testing.T, names ...string) (*Manager, *storage.Adapter) {
	t.Helper()
	store := storage.NewMemoryAdapter()
	m := NewManager(store, nil)
	for i, n := range names {
		require.NoError(t, m.Register(types.Descriptor{
			Name: n, Action: "ACT" + string(rune('A'+i)), Desktop: true,
		}))
	}
	return m, store
}

func TestSortDesktopByName(t *testing.T) {
	ctx := context.Background()
	m, store := desktopManager(t, "paint", "Browser", "Calculator", "alarms")

	require.NoError(t, m.SortDesktop(ctx, SortName))
	want := []string{"alarms", "Browser", "Calculator", "paint"}
	assert.Equal(t, want, m.DesktopLayout())
	assert.Equal(t, want, storage.LoadOr(ctx, store, storage.KeyDesktop, []string{}))
}

func TestSortDesktopIsStable(t *testing.T) {
	ctx := context.Background()
	// equal keys under case folding keep their prior order
	m, _ := desktopManager(t, "b", "A", "a", "B")

	require.NoError(t, m.SortDesktop(ctx, SortName))
	assert.Equal(t, []string{"A", "a", "b", "B"}, m.DesktopLayout())
}

func TestSortDesktopPseudoKeysAreDeterministic(t *testing.T) {
	ctx := context.Background()
	names := []string{"Files", "Browser", "Store", "Terminal", "Notepad"}

	for _, by := range []string{SortSize, SortDate} {
		m1, _ := desktopManager(t, names...)
		m2, _ := desktopManager(t, names...)
		require.NoError(t, m1.SortDesktop(ctx, by))
		require.NoError(t, m2.SortDesktop(ctx, SortName))
		require.NoError(t, m2.SortDesktop(ctx, by))

		assert.Equal(t, m1.DesktopLayout(), m2.DesktopLayout(), by)
		assert.ElementsMatch(t, names, m1.DesktopLayout())
	}

	m, _ := desktopManager(t, names...)
	assert.ErrorIs(t, m.SortDesktop(ctx, "color"), ErrUnknownSort)
}

func TestShortcuts(t *testing.T) {
	ctx := context.Background()
	m, store := desktopManager(t, "Files", "Browser")

	require.NoError(t, m.RemoveShortcut(ctx, "Files"))
	assert.Equal(t, []string{"Browser"}, m.DesktopLayout())
	assert.Equal(t, []string{"Browser"}, storage.LoadOr(ctx, store, storage.KeyDesktop, []string{}))

	_, ok := m.Get("Files")
	assert.True(t, ok, "removing a shortcut keeps the app")

	require.NoError(t, m.AddShortcut(ctx, "Files"))
	assert.Equal(t, []string{"Browser", "Files"}, m.DesktopLayout())

	assert.ErrorIs(t, m.AddShortcut(ctx, "Ghost"), ErrAppNotFound)
	assert.Len(t, m.Desktop(), 2)
}
