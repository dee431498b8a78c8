package settings

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyPath    = errors.New("settings path is empty")
	ErrPathNotFound = errors.New("settings path not found")
	ErrNotBool      = errors.New("settings value is not a boolean")
	ErrNotLeaf      = errors.New("settings path is not a leaf")
	ErrKindMismatch = errors.New("settings value kind does not match")
)

// Tree is a nested settings mapping
type Tree map[string]interface{}

func split(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case Tree:
		return m, true
	}
	return nil, false
}

// Lookup walks path and reports whether every segment exists
func Lookup(tree Tree, path string) (interface{}, bool) {
	segs := split(path)
	if len(segs) == 0 || tree == nil {
		return nil, false
	}

	var cur interface{} = map[string]interface{}(tree)
	for _, seg := range segs {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		if cur, ok = m[seg]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// Get returns the value at path or nil when the path is empty or missing
func Get(tree Tree, path string) interface{} {
	v, _ := Lookup(tree, path)
	return v
}

// String returns the string at path
func String(tree Tree, path string) (string, bool) {
	s, ok := Get(tree, path).(string)
	return s, ok
}

// Bool returns the boolean at path
func Bool(tree Tree, path string) (bool, bool) {
	b, ok := Get(tree, path).(bool)
	return b, ok
}

// Int returns the number at path truncated to an int. Decoded JSON yields
// float64 and decoded TOML int64, so all numeric kinds are accepted.
func Int(tree Tree, path string) (int, bool) {
	switch n := Get(tree, path).(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// parent returns the map holding the final segment of path
func parent(tree Tree, path string) (map[string]interface{}, string, error) {
	segs := split(path)
	if len(segs) == 0 {
		return nil, "", ErrEmptyPath
	}

	var cur interface{} = map[string]interface{}(tree)
	for _, seg := range segs[:len(segs)-1] {
		m, ok := asMap(cur)
		if !ok {
			return nil, "", fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		if cur, ok = m[seg]; !ok {
			return nil, "", fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
	}

	m, ok := asMap(cur)
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	leaf := segs[len(segs)-1]
	if _, ok := m[leaf]; !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	return m, leaf, nil
}

// Set assigns value at an existing leaf. The value must have the kind of
// the default leaf, or of the current value for paths outside the defaults.
func Set(tree Tree, path string, value interface{}) error {
	m, leaf, err := parent(tree, path)
	if err != nil {
		return err
	}
	if err := check(path, m[leaf], value); err != nil {
		return err
	}
	m[leaf] = value
	return nil
}

// put assigns value at an existing path without kind checks
func put(tree Tree, path string, value interface{}) error {
	m, leaf, err := parent(tree, path)
	if err != nil {
		return err
	}
	m[leaf] = value
	return nil
}

func check(path string, cur, value interface{}) error {
	ref := cur
	if def, ok := Lookup(defaultTree, path); ok {
		if _, isMap := asMap(def); isMap {
			return fmt.Errorf("%w: %s", ErrNotLeaf, path)
		}
		ref = def
	}
	if _, isMap := asMap(cur); isMap {
		return fmt.Errorf("%w: %s", ErrNotLeaf, path)
	}

	want, got := kindOf(ref), kindOf(value)
	if got == kindNull || got == kindMap || (want != kindNull && want != got) {
		return fmt.Errorf("%w: %s wants %s, got %s", ErrKindMismatch, path, want, got)
	}
	return nil
}

type kind string

const (
	kindNull   kind = "null"
	kindBool   kind = "bool"
	kindString kind = "string"
	kindNumber kind = "number"
	kindList   kind = "list"
	kindMap    kind = "map"
	kindOther  kind = "other"
)

func kindOf(v interface{}) kind {
	switch v.(type) {
	case nil:
		return kindNull
	case bool:
		return kindBool
	case string:
		return kindString
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return kindNumber
	case []interface{}:
		return kindList
	case map[string]interface{}, Tree:
		return kindMap
	}
	return kindOther
}

// Toggle flips the boolean at path and returns the new value
func Toggle(tree Tree, path string) (bool, error) {
	m, leaf, err := parent(tree, path)
	if err != nil {
		return false, err
	}
	b, ok := m[leaf].(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrNotBool, path)
	}
	m[leaf] = !b
	return !b, nil
}

// Clone returns a deep copy of tree
func Clone(tree Tree) Tree {
	if tree == nil {
		return nil
	}
	return Tree(cloneMap(tree))
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return cloneMap(t)
	case Tree:
		return cloneMap(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	}
	return v
}

// Merge fills keys missing from dst with values from defaults.
// Existing values in dst always win, including mismatched kinds.
func Merge(dst, defaults Tree) {
	mergeMap(dst, defaults)
}

func mergeMap(dst, src map[string]interface{}) {
	for k, sv := range src {
		dv, ok := dst[k]
		if !ok || dv == nil {
			dst[k] = cloneValue(sv)
			continue
		}
		dm, dok := asMap(dv)
		sm, sok := asMap(sv)
		if dok && sok {
			mergeMap(dm, sm)
		}
	}
}
