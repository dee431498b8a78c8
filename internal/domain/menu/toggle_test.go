package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/deskd/internal/shared/types"
)

func dots(nodes []Node, action string) []string {
	var out []string
	for _, n := range nodes {
		switch v := n.(type) {
		case Item:
			if v.Action == action && v.Dot {
				out = append(out, *v.Payload)
			}
		case Submenu:
			out = append(out, dots(v.Children, action)...)
		}
	}
	return out
}

func TestSelectRadioExclusive(t *testing.T) {
	nodes := desktopMenu().Nodes

	for _, size := range []string{"large", "small", "small", "medium"} {
		var ok bool
		nodes, ok = SelectRadio(nodes, types.HandlerChangeIconSize, size)
		require.True(t, ok)
		assert.Equal(t, []string{size}, dots(nodes, types.HandlerChangeIconSize))
	}

	// other groups are untouched
	assert.Equal(t, []string{"name"}, dots(nodes, types.HandlerChangeSort))
}

func TestSelectRadioIsCopyOnWrite(t *testing.T) {
	orig := desktopMenu().Nodes

	next, ok := SelectRadio(orig, types.HandlerChangeSort, "date")
	require.True(t, ok)

	assert.Equal(t, []string{"name"}, dots(orig, types.HandlerChangeSort))
	assert.Equal(t, []string{"date"}, dots(next, types.HandlerChangeSort))
}

func TestSelectRadioWithoutMatchKeepsTree(t *testing.T) {
	orig := desktopMenu().Nodes

	next, ok := SelectRadio(orig, types.HandlerChangeSort, "color")
	assert.False(t, ok)
	assert.Equal(t, []string{"name"}, dots(next, types.HandlerChangeSort))
}

func TestSetCheck(t *testing.T) {
	nodes, ok := SetCheck(desktopMenu().Nodes, types.HandlerDeskHide, false)
	require.True(t, ok)

	view := Render(Menu{Nodes: nodes})
	assert.False(t, view.Opts[0].Opts[4].Check)

	_, ok = SetCheck(nodes, types.HandlerDeskHide, false)
	assert.False(t, ok, "no change reported when already set")
}

func TestSetDisabledByPayload(t *testing.T) {
	nodes, ok := SetDisabled(appMenu().Nodes, types.HandlerPerformApp, str(types.PerformPin), true)
	require.True(t, ok)

	for _, n := range nodes {
		it, isItem := n.(Item)
		if !isItem || it.Action != types.HandlerPerformApp {
			continue
		}
		assert.Equal(t, *it.Payload == types.PerformPin, it.Disabled, *it.Payload)
	}
}

func TestSelected(t *testing.T) {
	p, ok := Selected(taskbarMenu().Nodes, types.HandlerChangeTaskAlign)
	assert.True(t, ok)
	assert.Equal(t, "center", p)

	_, ok = Selected(taskbarMenu().Nodes, "nothing")
	assert.False(t, ok)
}
