package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	l := New("/var/lib/deskd/")
	assert.Equal(t, filepath.Join("/var/lib/deskd", "records"), l.RecordsDir())
	assert.Equal(t, filepath.Join("/var/lib/deskd", "desk.db"), l.Database())
}

func TestRecordFile(t *testing.T) {
	path, err := RecordFile("/data", "installed")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data", "installed.json"), path)

	for _, bad := range []string{"", ".", "..", "../setting", "a/b", `a\b`} {
		_, err := RecordFile("/data", bad)
		assert.Error(t, err, bad)
	}
}
