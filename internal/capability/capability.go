// Package capability describes which platform text features a deployment supports.
// A Set is resolved once from configuration and injected into the resolvers and the
// style compiler; it is read-only after construction.
package capability

import (
	"maps"
	"slices"

	"github.com/zjrosen/stylekit/internal/log"
)

// Capability names for type-safe access.
const (
	// Shadow controls whether the shadow attribute can be rendered.
	Shadow = "shadow"

	// DefaultHyphenation gates paragraphStyle.usesDefaultHyphenation.
	DefaultHyphenation = "default-hyphenation"

	// TighteningForTruncation gates paragraphStyle.allowsDefaultTighteningForTruncation.
	TighteningForTruncation = "tightening-for-truncation"

	// LineBreakStrategy gates paragraphStyle.lineBreakStrategy.
	LineBreakStrategy = "line-break-strategy"

	// ExtendedSystemColors gates the newer standard color names
	// (systemBrown, systemCyan, systemGray2-6, systemIndigo, systemMint).
	ExtendedSystemColors = "extended-system-colors"
)

// Known returns every capability name, sorted.
func Known() []string {
	names := []string{
		Shadow,
		DefaultHyphenation,
		TighteningForTruncation,
		LineBreakStrategy,
		ExtendedSystemColors,
	}
	slices.Sort(names)
	return names
}

// IsKnown reports whether name is a recognized capability.
func IsKnown(name string) bool {
	return slices.Contains(Known(), name)
}

// Set holds capability state loaded from configuration.
// Known capabilities are enabled unless explicitly disabled.
type Set struct {
	overrides map[string]bool
}

// New creates a Set from a config map of overrides.
// If overrides is nil, every known capability is enabled.
func New(overrides map[string]bool) *Set {
	if overrides == nil {
		overrides = make(map[string]bool)
	}
	s := &Set{overrides: maps.Clone(overrides)}
	log.Debug(log.CatConfig, "Capabilities initialized", "overrides", len(overrides), "capabilities", s.All())
	return s
}

// All returns a Set with every known capability enabled.
func All() *Set {
	return &Set{overrides: map[string]bool{}}
}

// Enabled returns true if the named capability is available.
// Unknown names are reported as unavailable. A nil Set enables every known capability.
func (s *Set) Enabled(name string) bool {
	if !IsKnown(name) {
		log.Debug(log.CatConfig, "Unknown capability accessed", "capability", name, "result", false)
		return false
	}
	if s == nil || s.overrides == nil {
		return true
	}
	if value, exists := s.overrides[name]; exists {
		return value
	}
	return true
}

// Without returns a copy of s with the named capabilities disabled.
func (s *Set) Without(names ...string) *Set {
	next := make(map[string]bool)
	if s != nil {
		maps.Copy(next, s.overrides)
	}
	for _, name := range names {
		next[name] = false
	}
	return &Set{overrides: next}
}

// All returns the effective value of every known capability (for debugging/logging).
func (s *Set) All() map[string]bool {
	result := make(map[string]bool, len(Known()))
	for _, name := range Known() {
		result[name] = s.Enabled(name)
	}
	return result
}
