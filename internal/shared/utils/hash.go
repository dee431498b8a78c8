package utils

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
)

// Hasher provides deterministic hashing of names and snapshots
type Hasher struct{}

// DefaultHasher returns the shared hasher
func DefaultHasher() *Hasher {
	return &Hasher{}
}

// Hash computes a hex SHA-256 digest of the input data
func (h *Hasher) Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashString computes a hash of a string
func (h *Hasher) HashString(s string) string {
	return h.Hash([]byte(s))
}

// HashJSON computes a hash of a JSON-serializable object.
// Map keys are sorted, so equal values hash equally.
func (h *Hasher) HashJSON(v interface{}) (string, error) {
	data, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return h.Hash(data), nil
}

// HashFields computes a hash from multiple fields in a fixed order
func (h *Hasher) HashFields(fields ...string) string {
	sorted := make([]string, len(fields))
	copy(sorted, fields)
	sort.Strings(sorted)
	return h.HashString(strings.Join(sorted, "|"))
}

// ShortHash returns the first 12 characters of a digest for display
func ShortHash(full string) string {
	if len(full) < 12 {
		return full
	}
	return full[:12]
}

// PseudoKey derives a stable numeric sort key from a name. Desktop icons
// have no real byte size or modification time, so "sort by size" and
// "sort by date" order by keys salted per criterion instead.
func PseudoKey(salt, name string) uint64 {
	sum := sha256.Sum256([]byte(salt + "\x00" + name))
	return binary.BigEndian.Uint64(sum[:8])
}
