package registry

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/goccy/go-yaml"

	"github.com/GriffinCanCode/deskd/internal/shared/types"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Entry is one built-in app
type Entry struct {
	Name    string  `yaml:"name"`
	Icon    string  `yaml:"icon"`
	Action  string  `yaml:"action"`
	Payload *string `yaml:"payload"`
	Pinned  bool    `yaml:"pinned"`
	Desktop bool    `yaml:"desktop"`
	Hidden  bool    `yaml:"hidden"`
}

// Descriptor converts the entry into a registry descriptor
func (e Entry) Descriptor() types.Descriptor {
	return types.Descriptor{
		Name:    e.Name,
		Icon:    e.Icon,
		Action:  e.Action,
		Payload: e.Payload,
		Pinned:  e.Pinned,
		Desktop: e.Desktop,
		Hidden:  e.Hidden,
	}
}

// Catalog is the ordered list of built-in apps
type Catalog struct {
	Apps []Entry `yaml:"apps"`
}

// Default returns the embedded catalog
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// LoadFile reads a catalog from path
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Load returns the catalog at path, or the embedded one when path is empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Parse decodes and validates a YAML catalog
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that names and actions are present and unique, and that
// actions contain no lower-case letter and do not shadow a reducer.
func (c *Catalog) Validate() error {
	names := make(map[string]bool, len(c.Apps))
	actions := make(map[string]bool, len(c.Apps))

	for i, e := range c.Apps {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("catalog entry %d: name is required", i)
		}
		if e.Action == "" {
			return fmt.Errorf("catalog entry %q: action is required", e.Name)
		}
		if strings.IndexFunc(e.Action, unicode.IsLower) >= 0 {
			return fmt.Errorf("catalog entry %q: action %q must be upper-case", e.Name, e.Action)
		}
		if types.IsReducerAction(e.Action) {
			return fmt.Errorf("catalog entry %q: action %q is a reducer action", e.Name, e.Action)
		}
		if names[e.Name] {
			return fmt.Errorf("catalog entry %q: duplicate name", e.Name)
		}
		if actions[e.Action] {
			return fmt.Errorf("catalog entry %q: duplicate action %q", e.Name, e.Action)
		}
		names[e.Name] = true
		actions[e.Action] = true
	}
	return nil
}
