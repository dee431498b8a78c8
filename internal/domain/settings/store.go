package settings

import (
	"context"

	"github.com/mitchellh/mapstructure"

	"github.com/GriffinCanCode/deskd/internal/domain/storage"
)

// ThemeProbe reports the host's dark-mode preference on first run
type ThemeProbe interface {
	PrefersDark() bool
}

// StaticProbe is a fixed preference, usually taken from configuration
type StaticProbe bool

// PrefersDark implements ThemeProbe
func (p StaticProbe) PrefersDark() bool { return bool(p) }

// Person is the typed view of the person subtree
type Person struct {
	Name  string `mapstructure:"name" json:"name"`
	Theme string `mapstructure:"theme" json:"theme"`
}

// PersonOf decodes the person subtree
func PersonOf(tree Tree) (Person, error) {
	var p Person
	if err := mapstructure.Decode(Get(tree, "person"), &p); err != nil {
		return Person{}, err
	}
	return p, nil
}

// Load reads the persisted tree. A missing record or a null person subtree
// is a first run: the defaults are returned with the theme seeded from
// probe. Otherwise the loaded tree is completed with default keys it lacks.
func Load(ctx context.Context, a *storage.Adapter, probe ThemeProbe) (Tree, bool) {
	tree := Tree{}
	if !a.Load(ctx, storage.KeySetting, &tree) || tree["person"] == nil {
		tree = Defaults()
		theme := ThemeLight
		if probe != nil && probe.PrefersDark() {
			theme = ThemeDark
		}
		_ = ApplyTheme(tree, theme)
		return tree, true
	}

	Merge(tree, defaultTree)
	return tree, false
}

// Save persists the whole tree
func Save(ctx context.Context, a *storage.Adapter, tree Tree) error {
	return a.Save(ctx, storage.KeySetting, tree)
}
