package events

import "strings"

// keySeparator joins identity components into a flat map key. Component
// names come from source identifiers and never contain it.
const keySeparator = "/"

// ID is a hierarchical test identity: the path of a test through its
// enclosing suites, e.g. ["PaymentsTests", "RefundSuite", "testPartial"].
// IDs are comparable through their normalized Key and support subtree
// queries via key prefixes.
type ID struct {
	components []string
}

// NewID builds an identity from ordered path components.
func NewID(components ...string) ID {
	c := make([]string, len(components))
	copy(c, components)
	return ID{components: c}
}

// ParseID is the inverse of Key.
func ParseID(key string) ID {
	if key == "" {
		return ID{}
	}
	return ID{components: strings.Split(key, keySeparator)}
}

// Components returns the ordered path components.
func (id ID) Components() []string {
	c := make([]string, len(id.components))
	copy(c, id.components)
	return c
}

// Key returns the normalized string form used as a map key.
func (id ID) Key() string {
	return strings.Join(id.components, keySeparator)
}

// Name returns the last path component, or "" for the empty identity.
func (id ID) Name() string {
	if len(id.components) == 0 {
		return ""
	}
	return id.components[len(id.components)-1]
}

// Parent returns the enclosing identity and false at the root.
func (id ID) Parent() (ID, bool) {
	if len(id.components) == 0 {
		return ID{}, false
	}
	return ID{components: id.components[:len(id.components)-1]}, true
}

// Contains reports whether other is id itself or a descendant of id.
func (id ID) Contains(other ID) bool {
	prefix, key := id.Key(), other.Key()
	return key == prefix || strings.HasPrefix(key, prefix+keySeparator)
}

func (id ID) String() string {
	return id.Key()
}
