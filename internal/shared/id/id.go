// Package id provides centralized ID generation for the desktop backend.
//
// All identifiers are ULIDs, optionally prefixed:
//   - Action names: launcher commands generated for installed apps. They are
//     entirely upper-case ("APP_01J..."), so the dispatcher routes them as
//     direct actions.
//   - Request IDs: trace and span identifiers for HTTP requests.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ActionName identifies the launcher command of an application
type ActionName string

// RequestID identifies an API request or span
type RequestID string

const (
	ActionPrefix  = "APP"
	RequestPrefix = "req"
)

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex // Protects entropy reader
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by monotonic crypto entropy,
// so IDs minted within the same millisecond still sort and never repeat.
func NewGenerator() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// NewGeneratorWithEntropy creates a generator with custom entropy source
// Useful for testing with deterministic entropy
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{
		entropy: entropy,
	}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateString creates a new ULID as a string
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.GenerateString())
}

// NewActionName generates a launcher action name.
// ULID text is Crockford base32 upper-case, so the result never contains
// a lower-case letter.
func NewActionName() ActionName {
	return ActionName(Default().GenerateWithPrefix(ActionPrefix))
}

// NewRequestID generates a new request ID
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

func (a ActionName) String() string { return string(a) }
func (r RequestID) String() string  { return string(r) }

// IsGeneratedAction reports whether s has the shape of a generated action name
func IsGeneratedAction(s string) bool {
	rest, ok := strings.CutPrefix(s, ActionPrefix+"_")
	return ok && IsValid(rest)
}

// IsValid checks if an ID string is a valid ULID
func IsValid(id string) bool {
	_, err := ulid.ParseStrict(id)
	return err == nil
}

// Timestamp extracts the timestamp from a ULID
func Timestamp(id string) (time.Time, error) {
	parsed, err := ulid.Parse(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
