package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/deskd/internal/domain/storage"
)

func TestApplyThemeKeepsPartsInLockstep(t *testing.T) {
	tree := Defaults()

	require.NoError(t, ApplyTheme(tree, ThemeDark))
	assert.Equal(t, "dark", Get(tree, PathTheme))
	assert.Equal(t, "moon", Get(tree, PathThemeGlyph))
	assert.Equal(t, 1.0, Get(tree, PathWallpaper))
	assert.True(t, ThemeConsistent(tree))

	require.NoError(t, ApplyTheme(tree, Opposite(CurrentTheme(tree))))
	assert.Equal(t, "light", Get(tree, PathTheme))
	assert.Equal(t, "sun", Get(tree, PathThemeGlyph))
	assert.Equal(t, 0.0, Get(tree, PathWallpaper))
	assert.True(t, ThemeConsistent(tree))
}

func TestApplyThemeIsAllOrNothing(t *testing.T) {
	tree := Defaults()
	delete(tree["wallpaper"].(map[string]interface{}), "index")
	before := Clone(tree)

	err := ApplyTheme(tree, ThemeDark)
	assert.ErrorIs(t, err, ErrPathNotFound)
	assert.Equal(t, before, tree)

	assert.ErrorIs(t, ApplyTheme(Defaults(), "sepia"), ErrUnknownTheme)
}

func TestLoadFirstRunUsesProbe(t *testing.T) {
	ctx := context.Background()
	a := storage.NewMemoryAdapter()

	tree, first := Load(ctx, a, StaticProbe(true))
	assert.True(t, first)
	assert.Equal(t, ThemeDark, CurrentTheme(tree))
	assert.True(t, ThemeConsistent(tree))
}

func TestLoadNullPersonIsFirstRun(t *testing.T) {
	ctx := context.Background()
	a := storage.NewMemoryAdapter()
	require.NoError(t, a.Save(ctx, storage.KeySetting, map[string]interface{}{"person": nil}))

	tree, first := Load(ctx, a, StaticProbe(false))
	assert.True(t, first)
	assert.Equal(t, ThemeLight, CurrentTheme(tree))
}

func TestLoadSavedTree(t *testing.T) {
	ctx := context.Background()
	a := storage.NewMemoryAdapter()

	tree := Defaults()
	require.NoError(t, ApplyTheme(tree, ThemeDark))
	require.NoError(t, Set(tree, "person.name", "Ada"))
	require.NoError(t, Save(ctx, a, tree))

	loaded, first := Load(ctx, a, StaticProbe(false))
	assert.False(t, first)
	assert.Equal(t, tree, loaded)

	p, err := PersonOf(loaded)
	require.NoError(t, err)
	assert.Equal(t, Person{Name: "Ada", Theme: "dark"}, p)
}

func TestWritable(t *testing.T) {
	assert.ErrorIs(t, Writable(PathThemeGlyph), ErrDerivedPath)
	assert.NoError(t, Writable(PathTheme))
	assert.NoError(t, Writable(PathWallpaper))
	assert.NoError(t, Writable("system.audio.volume"))
}

func TestApplyThemeRepairsForeignKinds(t *testing.T) {
	tree := Defaults()
	m := tree["wallpaper"].(map[string]interface{})
	m["index"] = "3"

	require.NoError(t, ApplyTheme(tree, ThemeDark))
	assert.True(t, ThemeConsistent(tree))
}
