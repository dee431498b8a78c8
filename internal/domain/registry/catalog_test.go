package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/deskd/internal/domain/app"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.NotEmpty(t, c.Apps)

	var settings *Entry
	for i := range c.Apps {
		if c.Apps[i].Action == "SETTINGS" {
			settings = &c.Apps[i]
		}
	}
	require.NotNil(t, settings)
	require.NotNil(t, settings.Payload)
	assert.Equal(t, "full", *settings.Payload)
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	cases := map[string]string{
		"lower-case action": "apps:\n  - name: A\n    action: open\n",
		"missing action":    "apps:\n  - name: A\n",
		"duplicate name":    "apps:\n  - name: A\n    action: X\n  - name: A\n    action: Y\n",
		"duplicate action":  "apps:\n  - name: A\n    action: X\n  - name: B\n    action: X\n",
		"not yaml":          "apps: [",
		"reducer action":    "apps:\n  - name: A\n    action: MENUHIDE\n",
		"theme reducer":     "apps:\n  - name: A\n    action: STNGTHEME\n",
	}
	for name, data := range cases {
		_, err := Parse([]byte(data))
		assert.Error(t, err, name)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("apps:\n  - name: Files\n    icon: files\n    action: EXPLORER\n    desktop: true\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Apps, 1)
	assert.True(t, c.Apps[0].Desktop)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	m := app.NewManager(nil, nil)
	loaded, failed := NewSeeder(m, nil).Seed(c)
	assert.Equal(t, len(c.Apps), loaded)
	assert.Zero(t, failed)

	d, ok := m.FindByAction("EXPLORER")
	require.True(t, ok)
	assert.False(t, d.Installed)
	assert.Contains(t, m.DesktopLayout(), d.Name)

	// seeding twice collides on every entry
	loaded, failed = NewSeeder(m, nil).Seed(c)
	assert.Zero(t, loaded)
	assert.Equal(t, len(c.Apps), failed)
}
