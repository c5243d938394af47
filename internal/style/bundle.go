package style

import (
	"github.com/zjrosen/stylekit/internal/schema"
)

// Bundle holds the three independent attribute sets of one scope.
// Highlighted and disabled are nil when not declared.
type Bundle struct {
	normal      Attributes
	highlighted *Attributes
	disabled    *Attributes
}

// NewBundle creates a bundle from already resolved sets.
func NewBundle(normal Attributes, highlighted, disabled *Attributes) Bundle {
	return Bundle{normal: normal, highlighted: highlighted, disabled: disabled}
}

// Declared returns the set declared for state, without any fallback.
func (b Bundle) Declared(state State) (Attributes, bool) {
	switch state {
	case StateHighlighted:
		if b.highlighted == nil {
			return Attributes{}, false
		}
		return *b.highlighted, true
	case StateDisabled:
		if b.disabled == nil {
			return Attributes{}, false
		}
		return *b.disabled, true
	default:
		return b.normal, true
	}
}

// Lookup returns the effective value of kind in state. A non-normal state uses its
// own value when it declares kind, and the normal value otherwise.
func (b Bundle) Lookup(kind schema.Kind, state State) (any, bool) {
	if state != StateNormal {
		if set, ok := b.Declared(state); ok {
			if v, found := set.Get(kind); found {
				return v, true
			}
		}
	}
	return b.normal.Get(kind)
}

// Effective returns every effective value for state.
func (b Bundle) Effective(state State) Attributes {
	if state == StateNormal {
		return b.normal
	}
	set, ok := b.Declared(state)
	if !ok {
		return b.normal
	}
	return b.normal.Overlay(set)
}

// Normal returns the normal set.
func (b Bundle) Normal() Attributes {
	return b.normal
}

// CompiledStyle is the resolved, query-ready form of one named style.
type CompiledStyle struct {
	Name string
	Base Bundle

	tags     map[string]Bundle
	tagNames []string
}

// Tag returns the bundle for tag name. Tag bundles do not inherit from Base.
func (c *CompiledStyle) Tag(name string) (Bundle, bool) {
	b, ok := c.tags[name]
	return b, ok
}

// TagNames returns the tag names in declaration order.
func (c *CompiledStyle) TagNames() []string {
	out := make([]string, len(c.tagNames))
	copy(out, c.tagNames)
	return out
}
