package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Notes", "Notes"},
		{"trims", "  Notes  ", "Notes"},
		{"strips tags", "<b>Notes</b>", "Notes"},
		{"drops script", "Notes<script>alert(1)</script>", "Notes"},
		{"keeps ampersand", "Tom & Jerry", "Tom & Jerry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeText(tt.input))
		})
	}
}

func TestValidateAppName(t *testing.T) {
	assert.NoError(t, ValidateAppName("Notes"))
	assert.NoError(t, ValidateAppName("VS Code"))
	assert.NoError(t, ValidateAppName("Café 2.0"))

	for _, bad := range []string{"", " leading", "bad\x00name", "a/b", strings.Repeat("x", MaxAppNameLength+1)} {
		err := ValidateAppName(bad)
		require.Error(t, err, bad)
		assert.True(t, errors.Is(err, ErrValidation))
	}
}

func TestValidateIcon(t *testing.T) {
	assert.NoError(t, ValidateIcon("notes.svg"))
	assert.NoError(t, ValidateIcon("https://example.com/icon.png"))
	assert.Error(t, ValidateIcon(""))
	assert.Error(t, ValidateIcon(`"><img src=x>`))
}

func TestValidateIntentType(t *testing.T) {
	assert.NoError(t, ValidateIntentType(""))
	assert.NoError(t, ValidateIntentType("MENUHIDE"))
	assert.NoError(t, ValidateIntentType("changeTheme"))
	assert.NoError(t, ValidateIntentType("APP_01J0000000000000000000000"))
	assert.Error(t, ValidateIntentType("change-theme"))
	assert.Error(t, ValidateIntentType(strings.Repeat("A", MaxIntentTypeLength+1)))
}

func TestValidateSettingPath(t *testing.T) {
	assert.NoError(t, ValidateSettingPath("system.display.brightness"))
	assert.NoError(t, ValidateSettingPath("person"))

	for _, bad := range []string{"", ".", "a..b", "a.", "a.b c", "a.b.c.d.e.f.g.h.i"} {
		assert.Error(t, ValidateSettingPath(bad), bad)
	}
}

func TestValidatePayload(t *testing.T) {
	assert.NoError(t, ValidatePayload(nil))
	small := "full"
	assert.NoError(t, ValidatePayload(&small))
	big := strings.Repeat("x", MaxPayloadSize+1)
	assert.Error(t, ValidatePayload(&big))
}

func TestValidateJSONDepth(t *testing.T) {
	nested := map[string]interface{}{"a": map[string]interface{}{"b": []interface{}{1}}}
	assert.NoError(t, ValidateJSONDepth(nested, 3))
	assert.Error(t, ValidateJSONDepth(nested, 1))
}
