package columns

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// ErrInvalidLabel is returned when a header label cannot be treated as text.
var ErrInvalidLabel = errors.New("invalid column label")

// Key is the canonical lookup identifier of a column: lowercase, with runs of
// characters outside [a-z0-9_] collapsed to one underscore and no leading or
// trailing underscores. Example: "Postal Code" -> "postal_code".
type Key string

// String returns the key as plain text.
func (k Key) String() string {
	return string(k)
}

// IsBlank reports whether the key is empty.
// Blank keys are never indexed for lookup.
func (k Key) IsBlank() bool {
	return k == ""
}

// NormalizeString converts a header label to its canonical Key.
// It is idempotent: NormalizeString(string(NormalizeString(s))) == NormalizeString(s).
func NormalizeString(s string) Key {
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))

	inRun := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
			inRun = false
			continue
		}
		if !inRun {
			b.WriteByte('_')
			inRun = true
		}
	}

	return Key(strings.Trim(b.String(), "_"))
}

// Normalize converts any label that can be treated as text into a Key.
// A nil label is absent and yields a blank key.
func Normalize(label any) (Key, error) {
	if k, ok := label.(Key); ok {
		return NormalizeString(string(k)), nil
	}
	s, err := LabelString(label)
	if err != nil {
		return "", err
	}
	return NormalizeString(s), nil
}

// LabelString returns the display text for a label.
// Strings, keys, byte slices, numbers, booleans and fmt.Stringer values are
// accepted; anything else wraps ErrInvalidLabel.
func LabelString(label any) (string, error) {
	switch v := label.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case Key:
		return string(v), nil
	}

	s, err := cast.ToStringE(label)
	if err != nil {
		return "", fmt.Errorf("%w: %T", ErrInvalidLabel, label)
	}
	return s, nil
}

// IsBlank reports whether label is absent, empty, whitespace-only or
// normalizes to an empty key. Labels that cannot be converted are blank.
func IsBlank(label any) bool {
	s, err := LabelString(label)
	if err != nil || strings.TrimSpace(s) == "" {
		return true
	}
	return NormalizeString(s).IsBlank()
}
