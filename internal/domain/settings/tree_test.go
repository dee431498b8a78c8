package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMissingPaths(t *testing.T) {
	tree := Defaults()

	assert.Nil(t, Get(tree, ""))
	assert.Nil(t, Get(tree, "system.nope.brightness"))
	assert.Nil(t, Get(tree, "person.theme.deeper"))
	assert.Nil(t, Get(nil, "person.theme"))

	_, ok := Lookup(tree, "system.display.missing")
	assert.False(t, ok)
}

func TestSetRoundTrip(t *testing.T) {
	cases := map[string]interface{}{
		"person.name":               "x",
		"person.theme":              "dark",
		"system.display.brightness": 42.0,
		"system.audio.volume":       0.0,
		"system.audio.muted":        true,
		"desktop.sort":              "size",
		"wallpaper.index":           3.0,
	}

	for p, v := range cases {
		tree := Defaults()
		require.NoError(t, Set(tree, p, v), p)
		assert.Equal(t, v, Get(tree, p), p)
	}
}

func TestSetAcceptsAnyNumericKind(t *testing.T) {
	tree := Defaults()

	require.NoError(t, Set(tree, "wallpaper.index", 2))
	n, ok := Int(tree, "wallpaper.index")
	require.True(t, ok)
	assert.Equal(t, 2, n)
}

func TestSetRejectsSubtrees(t *testing.T) {
	for _, p := range []string{"person", "system", "system.display", "desktop", "quicks"} {
		for _, v := range []interface{}{"flat", nil, 1.0, map[string]interface{}{"k": "v"}} {
			tree := Defaults()
			before := Clone(tree)

			err := Set(tree, p, v)
			assert.ErrorIs(t, err, ErrNotLeaf, p)
			assert.Equal(t, before, tree, p)
		}
	}

	tree := Defaults()
	require.Error(t, Set(tree, "system", "flat"))
	_, ok := Lookup(tree, "system.display.brightness")
	assert.True(t, ok)
}

func TestSetRejectsKindChanges(t *testing.T) {
	cases := []struct {
		path  string
		value interface{}
	}{
		{"person.theme", nil},
		{"person.name", 7.0},
		{"system.display.brightness", "bright"},
		{"system.audio.muted", "yes"},
		{"desktop.sort", []interface{}{"name"}},
		{"wallpaper.index", map[string]interface{}{"i": 1.0}},
		{"taskbar.search", nil},
	}

	for _, tt := range cases {
		t.Run(tt.path, func(t *testing.T) {
			tree := Defaults()
			before := Clone(tree)

			err := Set(tree, tt.path, tt.value)
			assert.ErrorIs(t, err, ErrKindMismatch)
			assert.Equal(t, before, tree)
		})
	}
}

func TestSetOutsideDefaultsUsesCurrentKind(t *testing.T) {
	tree := Tree{"extra": map[string]interface{}{"level": 1.0, "note": nil}}

	require.NoError(t, Set(tree, "extra.level", 2.0))
	assert.ErrorIs(t, Set(tree, "extra.level", "high"), ErrKindMismatch)
	assert.ErrorIs(t, Set(tree, "extra", 1.0), ErrNotLeaf)

	require.NoError(t, Set(tree, "extra.note", "hi"))
	assert.Equal(t, "hi", Get(tree, "extra.note"))
}

func TestSetNeverCreatesShape(t *testing.T) {
	tree := Defaults()
	before := Clone(tree)

	err := Set(tree, "system.display.contrast", 3)
	assert.ErrorIs(t, err, ErrPathNotFound)

	err = Set(tree, "system.missing.value", 3)
	assert.ErrorIs(t, err, ErrPathNotFound)

	err = Set(tree, "person.theme.inner", 3)
	assert.ErrorIs(t, err, ErrPathNotFound)

	assert.ErrorIs(t, Set(tree, "", 1), ErrEmptyPath)
	assert.Equal(t, before, tree)
}

func TestToggle(t *testing.T) {
	tree := Defaults()

	v, err := Toggle(tree, "desktop.hidden")
	require.NoError(t, err)
	assert.True(t, v)

	v, err = Toggle(tree, "desktop.hidden")
	require.NoError(t, err)
	assert.False(t, v)

	_, err = Toggle(tree, "desktop.sort")
	assert.ErrorIs(t, err, ErrNotBool)
}

func TestCloneIsDeep(t *testing.T) {
	tree := Defaults()
	c := Clone(tree)

	require.NoError(t, Set(c, "system.audio.volume", 1.0))
	assert.Equal(t, 100.0, Get(tree, "system.audio.volume"))
}

func TestMergeKeepsExistingValues(t *testing.T) {
	tree := Tree{
		"person": map[string]interface{}{"name": "Ada", "theme": "dark"},
	}
	Merge(tree, Defaults())

	assert.Equal(t, "Ada", Get(tree, "person.name"))
	assert.Equal(t, "dark", Get(tree, "person.theme"))
	assert.Equal(t, "medium", Get(tree, "desktop.iconSize"))
	assert.Equal(t, 100.0, Get(tree, "system.display.brightness"))
}

func TestDefaultsNumbersAreFloat(t *testing.T) {
	n, ok := Int(Defaults(), "system.display.brightness")
	assert.True(t, ok)
	assert.Equal(t, 100, n)
	assert.IsType(t, float64(0), Get(Defaults(), "wallpaper.index"))
}
