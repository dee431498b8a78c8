package utils

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// Size limits (in bytes)
const (
	MaxPayloadSize = 16 * 1024 // single intent payload
	MaxValueSize   = 64 * 1024 // settings value written through the API
)

// String length limits
const (
	MaxAppNameLength    = 64
	MaxIconLength       = 512
	MaxIntentTypeLength = 64
	MaxSettingPathDepth = 8
	MaxSettingPathLen   = 256
)

var (
	// IntentTypePattern allows the characters found in data-action attributes
	IntentTypePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	// SettingPathPattern is a dot-separated list of identifier segments
	SettingPathPattern = regexp.MustCompile(`^[A-Za-z0-9_]+(\.[A-Za-z0-9_]+)*$`)
	// AppNamePattern allows the names a shell can show under an icon
	AppNamePattern = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ._'&+()-]*$`)

	textPolicy = bluemonday.StrictPolicy()
)

// ErrValidation is wrapped by every ValidationError
var ErrValidation = errors.New("validation failed")

// ValidationError reports an invalid input field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap lets callers match any validation failure with errors.Is
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// SanitizeText strips markup from user supplied text and collapses
// surrounding whitespace. Entities are decoded again so names stay plain text.
func SanitizeText(value string) string {
	cleaned := textPolicy.Sanitize(value)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return invalid(fieldName, "is required")
	}

	if value == "" && !required {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return invalid(fieldName, "must be at least %d characters", minLen)
	}
	if length > maxLen {
		return invalid(fieldName, "must not exceed %d characters", maxLen)
	}

	if strings.Contains(value, "\x00") {
		return invalid(fieldName, "contains invalid characters")
	}

	return nil
}

// ValidateAppName validates the display name of an application
func ValidateAppName(name string) error {
	if err := ValidateString(name, "name", 1, MaxAppNameLength, true); err != nil {
		return err
	}
	if !AppNamePattern.MatchString(name) {
		return invalid("name", "contains invalid characters")
	}
	return nil
}

// ValidateIcon validates an opaque icon reference
func ValidateIcon(icon string) error {
	if err := ValidateString(icon, "icon", 1, MaxIconLength, true); err != nil {
		return err
	}
	if strings.ContainsAny(icon, "<>\"") {
		return invalid("icon", "contains markup characters")
	}
	return nil
}

// ValidateIntentType checks the shape of an intent type. An empty type is
// valid: the dispatcher treats it as a no-op.
func ValidateIntentType(typ string) error {
	if typ == "" {
		return nil
	}
	if len(typ) > MaxIntentTypeLength {
		return invalid("type", "must not exceed %d characters", MaxIntentTypeLength)
	}
	if !IntentTypePattern.MatchString(typ) {
		return invalid("type", "contains invalid characters")
	}
	return nil
}

// ValidatePayload checks the size of an intent payload
func ValidatePayload(payload *string) error {
	if payload == nil {
		return nil
	}
	if len(*payload) > MaxPayloadSize {
		return invalid("payload", "exceeds %d bytes", MaxPayloadSize)
	}
	return nil
}

// ValidateSettingPath validates a dot-path into the settings tree
func ValidateSettingPath(path string) error {
	if err := ValidateString(path, "path", 1, MaxSettingPathLen, true); err != nil {
		return err
	}
	if !SettingPathPattern.MatchString(path) {
		return invalid("path", "must be dot-separated identifiers")
	}
	if strings.Count(path, ".")+1 > MaxSettingPathDepth {
		return invalid("path", "is deeper than %d segments", MaxSettingPathDepth)
	}
	return nil
}

// ValidateJSONDepth checks if decoded JSON nesting depth is within limits
func ValidateJSONDepth(data interface{}, maxDepth int) error {
	return checkDepth(data, 0, maxDepth)
}

func checkDepth(data interface{}, currentDepth int, maxDepth int) error {
	if currentDepth > maxDepth {
		return invalid("value", "nesting depth %d exceeds maximum %d", currentDepth, maxDepth)
	}

	switch v := data.(type) {
	case map[string]interface{}:
		for _, value := range v {
			if err := checkDepth(value, currentDepth+1, maxDepth); err != nil {
				return err
			}
		}
	case []interface{}:
		for _, value := range v {
			if err := checkDepth(value, currentDepth+1, maxDepth); err != nil {
				return err
			}
		}
	}

	return nil
}
