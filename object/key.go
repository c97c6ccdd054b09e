package object

import (
	"unique"

	"golang.org/x/text/cases"
)

// Key is a case-insensitive identifier used for every scope, struct and
// parameter lookup. Two keys are equal when their case-folded names are
// equal. The folded name is interned, so comparing keys is a pointer
// comparison. The original spelling is kept for display.
type Key struct {
	id   unique.Handle[string]
	name string
}

// NewKey returns the Key for name.
func NewKey(name string) Key {
	// A Caser holds state and is not safe for concurrent use.
	folded := cases.Fold().String(name)
	return Key{id: unique.Make(folded), name: name}
}

// Keys converts names to keys.
func Keys(names ...string) []Key {
	out := make([]Key, len(names))
	for i, n := range names {
		out[i] = NewKey(n)
	}
	return out
}

// Name returns the key as originally spelled.
func (k Key) Name() string { return k.name }

// String returns the key as originally spelled.
func (k Key) String() string { return k.name }

// Folded returns the case-folded form used for comparison.
func (k Key) Folded() string {
	if k.IsZero() {
		return ""
	}
	return k.id.Value()
}

// Equal reports whether two keys name the same thing, ignoring case.
func (k Key) Equal(other Key) bool { return k.id == other.id }

// IsZero reports whether the key is the zero Key.
func (k Key) IsZero() bool { return k.id == unique.Handle[string]{} }

// keyID is the comparable identity of a Key, used to index maps.
type keyID = unique.Handle[string]
