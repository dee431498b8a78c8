package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashJSONIsDeterministic(t *testing.T) {
	h := DefaultHasher()

	a, err := h.HashJSON(map[string]interface{}{"b": 1, "a": []string{"x"}})
	require.NoError(t, err)
	b, err := h.HashJSON(map[string]interface{}{"a": []string{"x"}, "b": 1})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestHashFieldsIgnoresOrder(t *testing.T) {
	h := DefaultHasher()
	assert.Equal(t, h.HashFields("a", "b"), h.HashFields("b", "a"))
	assert.NotEqual(t, h.HashFields("a", "b"), h.HashFields("a", "c"))
}

func TestPseudoKey(t *testing.T) {
	assert.Equal(t, PseudoKey("size", "Files"), PseudoKey("size", "Files"))
	assert.NotEqual(t, PseudoKey("size", "Files"), PseudoKey("date", "Files"))
	assert.NotEqual(t, PseudoKey("size", "Files"), PseudoKey("size", "Notes"))
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "abc", ShortHash("abc"))
	assert.Equal(t, "0123456789ab", ShortHash("0123456789abcdef"))
}
