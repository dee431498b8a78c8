package settings

import (
	_ "embed"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/pelletier/go-toml/v2"
)

//go:embed defaults.toml
var defaultsTOML []byte

var defaultTree Tree

func init() {
	tree, err := parseDefaults(defaultsTOML)
	if err != nil {
		panic(fmt.Sprintf("settings: invalid embedded defaults: %v", err))
	}
	defaultTree = tree
}

// parseDefaults decodes TOML and normalizes it through JSON so that numbers
// have the same kinds as a tree loaded back from storage.
func parseDefaults(data []byte) (Tree, error) {
	raw := map[string]interface{}{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}

	encoded, err := sonic.ConfigStd.Marshal(raw)
	if err != nil {
		return nil, err
	}

	tree := Tree{}
	if err := sonic.ConfigStd.Unmarshal(encoded, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// Defaults returns a fresh copy of the canonical default tree
func Defaults() Tree {
	return Clone(defaultTree)
}
