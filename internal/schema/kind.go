// Package schema decodes the declarative text-style schema into typed attributes.
//
// The schema is an open-ended, key-presence-driven tagged union: an attribute object
// may carry any subset of the known keys, and the presence of a key selects the
// variant. Decoding never guesses; a malformed payload for a present key fails the
// whole decode with a *DecodeError.
package schema

// Kind identifies one attribute variant.
type Kind int

const (
	KindFont Kind = iota
	KindParagraphStyle
	KindForegroundColor
	KindBackgroundColor
	KindLigature
	KindKern
	KindStrikethrough
	KindUnderline
	KindStroke
	KindShadow
	KindTextEffect
	KindLink
	KindBaselineOffset
	KindObliqueness
	KindExpansion
	KindWritingDirection
)

// kindKeys maps each kind to its JSON key, in decode order.
var kindKeys = [...]string{
	KindFont:             "font",
	KindParagraphStyle:   "paragraphStyle",
	KindForegroundColor:  "foregroundColor",
	KindBackgroundColor:  "backgroundColor",
	KindLigature:         "ligature",
	KindKern:             "kern",
	KindStrikethrough:    "strikethrough",
	KindUnderline:        "underline",
	KindStroke:           "stroke",
	KindShadow:           "shadow",
	KindTextEffect:       "textEffect",
	KindLink:             "link",
	KindBaselineOffset:   "baselineOffset",
	KindObliqueness:      "obliqueness",
	KindExpansion:        "expansion",
	KindWritingDirection: "writingDirection",
}

// Kinds returns every kind in decode order.
func Kinds() []Kind {
	kinds := make([]Kind, len(kindKeys))
	for i := range kindKeys {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Key returns the JSON key that selects this kind.
func (k Kind) Key() string {
	if k < 0 || int(k) >= len(kindKeys) {
		return "unknown"
	}
	return kindKeys[k]
}

func (k Kind) String() string {
	return k.Key()
}

// KindForKey returns the kind selected by a (camelCase) JSON key.
func KindForKey(key string) (Kind, bool) {
	for i, k := range kindKeys {
		if k == key {
			return Kind(i), true
		}
	}
	return 0, false
}
