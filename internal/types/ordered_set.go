package types

import (
	"strings"

	"github.com/goccy/go-json"
)

// SetDelimiter joins OrderedSet members in their string encoding.
const SetDelimiter = ","

// OrderedSet is an insertion-ordered set of non-empty strings. The zero value is an
// empty set. OrderedSet is a value type: every mutating method returns a new set and
// leaves the receiver untouched, so sets can be shared between snapshots.
//
// On the wire an OrderedSet is encoded as a single delimited string ("a,b,c"), the
// format plan documents have always used.
type OrderedSet struct {
	items []string
}

// NewOrderedSet builds a set from values, dropping blanks, duplicates and values that
// could not survive the string encoding.
func NewOrderedSet(values ...string) OrderedSet {
	var s OrderedSet
	for _, v := range values {
		if !validMember(v) || s.Contains(v) {
			continue
		}
		s.items = append(s.items, v)
	}
	return s
}

// ParseOrderedSet decodes the delimited string form.
func ParseOrderedSet(encoded string) OrderedSet {
	if encoded == "" {
		return OrderedSet{}
	}
	return NewOrderedSet(strings.Split(encoded, SetDelimiter)...)
}

func validMember(v string) bool {
	return strings.TrimSpace(v) != "" && !strings.Contains(v, SetDelimiter)
}

// Toggle removes v when present and appends it otherwise. Values that are blank or
// contain the delimiter leave the set unchanged.
func (s OrderedSet) Toggle(v string) OrderedSet {
	if !validMember(v) {
		return s
	}
	out := make([]string, 0, len(s.items)+1)
	removed := false
	for _, item := range s.items {
		if item == v {
			removed = true
			continue
		}
		out = append(out, item)
	}
	if !removed {
		out = append(out, v)
	}
	return OrderedSet{items: out}
}

// Contains reports membership.
func (s OrderedSet) Contains(v string) bool {
	for _, item := range s.items {
		if item == v {
			return true
		}
	}
	return false
}

// Len is the number of members.
func (s OrderedSet) Len() int {
	return len(s.items)
}

// IsEmpty reports whether the set has no members.
func (s OrderedSet) IsEmpty() bool {
	return len(s.items) == 0
}

// Items returns a copy of the members in insertion order.
func (s OrderedSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Join renders the members with sep, for display.
func (s OrderedSet) Join(sep string) string {
	return strings.Join(s.items, sep)
}

// String is the delimited encoding.
func (s OrderedSet) String() string {
	return strings.Join(s.items, SetDelimiter)
}

// Equal reports whether both sets hold the same members in the same order.
func (s OrderedSet) Equal(other OrderedSet) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for i := range s.items {
		if s.items[i] != other.items[i] {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as its delimited string.
func (s OrderedSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the delimited string form and, for convenience, a JSON array.
func (s *OrderedSet) UnmarshalJSON(data []byte) error {
	var encoded string
	if err := json.Unmarshal(data, &encoded); err == nil {
		*s = ParseOrderedSet(encoded)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = NewOrderedSet(list...)
	return nil
}
