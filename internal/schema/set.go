package schema

import "slices"

// AttributeSet is the ordered list of attributes declared for one state.
// It holds at most one attribute per kind.
type AttributeSet struct {
	attrs   []Attribute
	unknown []string
}

// NewAttributeSet builds a set from attrs in order. A later attribute of a kind
// already present replaces the earlier one in place.
func NewAttributeSet(attrs ...Attribute) AttributeSet {
	var s AttributeSet
	for _, a := range attrs {
		s = s.with(a)
	}
	return s
}

func (s AttributeSet) with(a Attribute) AttributeSet {
	if a == nil {
		return s
	}
	next := make([]Attribute, len(s.attrs), len(s.attrs)+1)
	copy(next, s.attrs)
	for i, existing := range next {
		if existing.Kind() == a.Kind() {
			next[i] = a
			return AttributeSet{attrs: next}
		}
	}
	return AttributeSet{attrs: append(next, a)}
}

// Get returns the attribute of the given kind.
func (s AttributeSet) Get(kind Kind) (Attribute, bool) {
	for _, a := range s.attrs {
		if a.Kind() == kind {
			return a, true
		}
	}
	return nil, false
}

// Has reports whether the set declares kind.
func (s AttributeSet) Has(kind Kind) bool {
	_, ok := s.Get(kind)
	return ok
}

// All returns a copy of the attributes in decode order.
func (s AttributeSet) All() []Attribute {
	out := make([]Attribute, len(s.attrs))
	copy(out, s.attrs)
	return out
}

// UnknownKeys returns the paths of keys that named no attribute kind and were ignored.
func (s AttributeSet) UnknownKeys() []string {
	return slices.Clone(s.unknown)
}

// Len returns the number of attributes.
func (s AttributeSet) Len() int {
	return len(s.attrs)
}

// StateGroup holds the attribute sets of one scope (the whole text or one tag).
// Highlighted and Disabled are nil when the schema did not declare them.
type StateGroup struct {
	Normal      AttributeSet
	Highlighted *AttributeSet
	Disabled    *AttributeSet

	unknown []string
}

// UnknownKeys returns the paths of ignored keys in the group and its sets.
func (g StateGroup) UnknownKeys() []string {
	keys := slices.Clone(g.unknown)
	keys = append(keys, g.Normal.unknown...)
	for _, set := range []*AttributeSet{g.Highlighted, g.Disabled} {
		if set != nil {
			keys = append(keys, set.unknown...)
		}
	}
	return keys
}

// TagStyle is the state group applied to substrings marked with Name.
type TagStyle struct {
	Name       string
	Attributes StateGroup
}

// Definition is the decoded, uncompiled form of one named style.
type Definition struct {
	Name       string
	Attributes StateGroup
	TagStyles  []TagStyle
}

// UnknownKeys returns the paths of every ignored key in the style and its tags.
func (d Definition) UnknownKeys() []string {
	keys := d.Attributes.UnknownKeys()
	for _, tag := range d.TagStyles {
		keys = append(keys, tag.Attributes.UnknownKeys()...)
	}
	return keys
}
