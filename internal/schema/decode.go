package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

const rootPath = "$"

// DecodeDefinitions decodes the top-level schema: an array of style definitions.
func DecodeDefinitions(data []byte) ([]Definition, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil || items == nil {
		return nil, &DecodeError{Path: rootPath, Reason: "expected an array of style definitions", Err: err}
	}

	defs := make([]Definition, 0, len(items))
	for i, item := range items {
		def, err := decodeDefinition(item, fmt.Sprintf("%s[%d]", rootPath, i))
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// DecodeDefinition decodes a single style definition object.
func DecodeDefinition(data []byte) (Definition, error) {
	return decodeDefinition(data, rootPath)
}

// DecodeStateGroup decodes either the keyed form {normal, highlighted?, disabled?}
// or, when no normal key is present, a flat attribute object used as the normal state.
func DecodeStateGroup(data []byte) (StateGroup, error) {
	return decodeStateGroup(data, rootPath)
}

// DecodeAttributeSet decodes one attribute object.
func DecodeAttributeSet(data []byte) (AttributeSet, error) {
	o, err := parseObject(data, rootPath)
	if err != nil {
		return AttributeSet{}, err
	}
	return decodeAttributeSet(o)
}

func decodeDefinition(raw json.RawMessage, path string) (Definition, error) {
	o, err := parseObject(raw, path)
	if err != nil {
		return Definition{}, err
	}

	name, err := o.requiredString("name")
	if err != nil {
		return Definition{}, err
	}
	if !o.present("attributes") {
		return Definition{}, o.missing("attributes")
	}
	group, err := decodeStateGroup(o.fields["attributes"], o.child("attributes"))
	if err != nil {
		return Definition{}, err
	}

	def := Definition{Name: name, Attributes: group}
	if !o.present("tagStyles") {
		return def, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(o.fields["tagStyles"], &items); err != nil {
		return Definition{}, o.invalid("tagStyles", "expected an array of tag styles", err)
	}

	seen := make(map[string]bool, len(items))
	for i, item := range items {
		tag, err := decodeTagStyle(item, fmt.Sprintf("%s[%d]", o.child("tagStyles"), i))
		if err != nil {
			return Definition{}, err
		}
		if seen[tag.Name] {
			return Definition{}, o.invalid("tagStyles", fmt.Sprintf("duplicate tag style %q", tag.Name), nil)
		}
		seen[tag.Name] = true
		def.TagStyles = append(def.TagStyles, tag)
	}
	return def, nil
}

func decodeTagStyle(raw json.RawMessage, path string) (TagStyle, error) {
	o, err := parseObject(raw, path)
	if err != nil {
		return TagStyle{}, err
	}
	name, err := o.requiredString("name")
	if err != nil {
		return TagStyle{}, err
	}
	if !o.present("attributes") {
		return TagStyle{}, o.missing("attributes")
	}
	group, err := decodeStateGroup(o.fields["attributes"], o.child("attributes"))
	if err != nil {
		return TagStyle{}, err
	}
	return TagStyle{Name: name, Attributes: group}, nil
}

func decodeStateGroup(raw json.RawMessage, path string) (StateGroup, error) {
	o, err := parseObject(raw, path)
	if err != nil {
		return StateGroup{}, err
	}

	// Flat form: the whole object is the normal state.
	if !o.present("normal") {
		set, err := decodeAttributeSet(o)
		if err != nil {
			return StateGroup{}, err
		}
		return StateGroup{Normal: set}, nil
	}

	var group StateGroup
	for _, key := range sortedFieldNames(o) {
		if !slices.Contains(stateKeys, key) {
			group.unknown = append(group.unknown, o.child(key))
		}
	}
	if group.Normal, err = o.attributeSet("normal"); err != nil {
		return StateGroup{}, err
	}
	if group.Highlighted, err = o.optionalAttributeSet("highlighted"); err != nil {
		return StateGroup{}, err
	}
	if group.Disabled, err = o.optionalAttributeSet("disabled"); err != nil {
		return StateGroup{}, err
	}
	return group, nil
}

// decodeAttributeSet checks each known key independently, in kind order.
func decodeAttributeSet(o object) (AttributeSet, error) {
	var attrs []Attribute
	for _, kind := range Kinds() {
		key := kind.Key()
		if !o.present(key) {
			continue
		}
		attr, err := decodeAttribute(o, kind)
		if err != nil {
			return AttributeSet{}, err
		}
		attrs = append(attrs, attr)
	}

	set := NewAttributeSet(attrs...)
	for _, key := range sortedFieldNames(o) {
		if _, ok := KindForKey(key); !ok {
			set.unknown = append(set.unknown, o.child(key))
		}
	}
	return set, nil
}

// stateKeys are the keys of the keyed state group form.
var stateKeys = []string{"normal", "highlighted", "disabled"}

func sortedFieldNames(o object) []string {
	return slices.Sorted(maps.Keys(o.fields))
}

func decodeAttribute(o object, kind Kind) (Attribute, error) {
	key := kind.Key()
	switch kind {
	case KindFont:
		sub, err := o.object(key)
		if err != nil {
			return nil, err
		}
		token, err := decodeFontToken(sub)
		if err != nil {
			return nil, err
		}
		return Font{Token: token}, nil
	case KindParagraphStyle:
		sub, err := o.object(key)
		if err != nil {
			return nil, err
		}
		return decodeParagraph(sub)
	case KindForegroundColor:
		c, err := o.requiredString(key)
		return ForegroundColor{Color: c}, err
	case KindBackgroundColor:
		c, err := o.requiredString(key)
		return BackgroundColor{Color: c}, err
	case KindLigature:
		v, err := o.requiredInt(key)
		return Ligature{Value: v}, err
	case KindKern:
		v, err := o.requiredNumber(key)
		return Kern{Value: v}, err
	case KindStrikethrough:
		style, color, err := decodeLine(o, key)
		return Strikethrough{Style: style, Color: color}, err
	case KindUnderline:
		style, color, err := decodeLine(o, key)
		return Underline{Style: style, Color: color}, err
	case KindStroke:
		sub, err := o.object(key)
		if err != nil {
			return nil, err
		}
		color, err := sub.requiredString("color")
		if err != nil {
			return nil, err
		}
		width, err := sub.requiredNumber("width")
		if err != nil {
			return nil, err
		}
		return Stroke{Color: color, Width: width}, nil
	case KindShadow:
		sub, err := o.object(key)
		if err != nil {
			return nil, err
		}
		return decodeShadow(sub)
	case KindTextEffect:
		v, err := o.requiredString(key)
		return TextEffect{Value: v}, err
	case KindLink:
		v, err := o.requiredString(key)
		return Link{URL: v}, err
	case KindBaselineOffset:
		v, err := o.requiredNumber(key)
		return BaselineOffset{Value: v}, err
	case KindObliqueness:
		v, err := o.requiredNumber(key)
		return Obliqueness{Value: v}, err
	case KindExpansion:
		v, err := o.requiredNumber(key)
		return Expansion{Value: v}, err
	case KindWritingDirection:
		v, err := requiredEnum(o, key, WritingDirections)
		return WritingDirectionAttr{Direction: v}, err
	default:
		return nil, o.invalid(key, "unsupported attribute kind", nil)
	}
}

// decodeFontToken tries {name, size} first, then {textStyle, weight?}.
func decodeFontToken(o object) (FontToken, error) {
	if name, nameErr := o.requiredString("name"); nameErr == nil {
		if size, sizeErr := o.requiredNumber("size"); sizeErr == nil {
			return NamedFont{Name: name, Size: size}, nil
		}
	}

	textStyle, styleErr := requiredEnum(o, "textStyle", TextStyles)
	if styleErr == nil {
		weight, weightErr := optionalEnum(o, "weight", Weights)
		if weightErr == nil {
			token := PreferredFont{TextStyle: textStyle}
			if weight != nil {
				token.Weight = *weight
			}
			return token, nil
		}
	}

	return nil, &DecodeError{Path: o.path, Reason: "font must be {name, size} or {textStyle, weight?}"}
}

func decodeLine(o object, key string) (LineStyle, string, error) {
	sub, err := o.object(key)
	if err != nil {
		return "", "", err
	}
	style, err := requiredEnum(sub, "style", LineStyles)
	if err != nil {
		return "", "", err
	}
	color, err := sub.requiredString("color")
	if err != nil {
		return "", "", err
	}
	return style, color, nil
}

func decodeShadow(o object) (Shadow, error) {
	offset, err := o.object("offset")
	if err != nil {
		return Shadow{}, err
	}
	width, err := offset.requiredNumber("width")
	if err != nil {
		return Shadow{}, err
	}
	height, err := offset.requiredNumber("height")
	if err != nil {
		return Shadow{}, err
	}
	blur, err := o.requiredNumber("blurRadius")
	if err != nil {
		return Shadow{}, err
	}
	color, err := o.optionalString("color")
	if err != nil {
		return Shadow{}, err
	}
	return Shadow{Offset: Size{Width: width, Height: height}, BlurRadius: blur, Color: color}, nil
}

func decodeParagraph(o object) (Paragraph, error) {
	var p Paragraph

	numbers := []struct {
		key string
		dst **float64
	}{
		{"lineSpacing", &p.LineSpacing},
		{"paragraphSpacing", &p.ParagraphSpacing},
		{"firstLineHeadIndent", &p.FirstLineHeadIndent},
		{"headIndent", &p.HeadIndent},
		{"tailIndent", &p.TailIndent},
		{"minimumLineHeight", &p.MinimumLineHeight},
		{"maximumLineHeight", &p.MaximumLineHeight},
		{"lineHeightMultiple", &p.LineHeightMultiple},
		{"paragraphSpacingBefore", &p.ParagraphSpacingBefore},
		{"hyphenationFactor", &p.HyphenationFactor},
		{"defaultTabInterval", &p.DefaultTabInterval},
	}
	for _, n := range numbers {
		v, err := o.optionalNumber(n.key)
		if err != nil {
			return Paragraph{}, err
		}
		*n.dst = v
	}

	var err error
	if p.Alignment, err = optionalEnum(o, "alignment", TextAlignments); err != nil {
		return Paragraph{}, err
	}
	if p.LineBreakMode, err = optionalEnum(o, "lineBreakMode", LineBreakModes); err != nil {
		return Paragraph{}, err
	}
	if p.BaseWritingDirection, err = optionalEnum(o, "baseWritingDirection", WritingDirections); err != nil {
		return Paragraph{}, err
	}
	if p.LineBreakStrategy, err = optionalEnum(o, "lineBreakStrategy", LineBreakStrategies); err != nil {
		return Paragraph{}, err
	}
	if p.UsesDefaultHyphenation, err = o.optionalBool("usesDefaultHyphenation"); err != nil {
		return Paragraph{}, err
	}
	if p.AllowsDefaultTighteningForTruncation, err = o.optionalBool("allowsDefaultTighteningForTruncation"); err != nil {
		return Paragraph{}, err
	}
	return p, nil
}

// object is a decoded JSON object with keys normalized to camelCase.
type object struct {
	path   string
	fields map[string]json.RawMessage
}

func parseObject(raw json.RawMessage, path string) (object, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return object{}, &DecodeError{Path: path, Reason: "expected an object", Err: err}
	}

	normalized := make(map[string]json.RawMessage, len(fields))
	for key, value := range fields {
		name := camelCase(key)
		if _, dup := normalized[name]; dup {
			return object{}, &DecodeError{Path: path, Key: name, Reason: "duplicate key after snake_case normalization"}
		}
		normalized[name] = value
	}
	return object{path: path, fields: normalized}, nil
}

func (o object) child(key string) string {
	return o.path + "." + key
}

// present reports whether key exists with a non-null value.
func (o object) present(key string) bool {
	raw, ok := o.fields[key]
	return ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (o object) missing(key string) error {
	return &DecodeError{Path: o.path, Key: key, Reason: "required key is missing"}
}

func (o object) invalid(key, reason string, err error) error {
	return &DecodeError{Path: o.path, Key: key, Reason: reason, Err: err}
}

func (o object) object(key string) (object, error) {
	if !o.present(key) {
		return object{}, o.missing(key)
	}
	return parseObject(o.fields[key], o.child(key))
}

func (o object) attributeSet(key string) (AttributeSet, error) {
	sub, err := o.object(key)
	if err != nil {
		return AttributeSet{}, err
	}
	return decodeAttributeSet(sub)
}

func (o object) optionalAttributeSet(key string) (*AttributeSet, error) {
	if !o.present(key) {
		return nil, nil
	}
	set, err := o.attributeSet(key)
	if err != nil {
		return nil, err
	}
	return &set, nil
}

func optionalValue[T any](o object, key, expected string) (*T, error) {
	if !o.present(key) {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(o.fields[key], &v); err != nil {
		return nil, o.invalid(key, "expected "+expected, err)
	}
	return &v, nil
}

func requiredValue[T any](o object, key, expected string) (T, error) {
	var zero T
	if !o.present(key) {
		return zero, o.missing(key)
	}
	v, err := optionalValue[T](o, key, expected)
	if err != nil {
		return zero, err
	}
	return *v, nil
}

func (o object) requiredString(key string) (string, error) {
	return requiredValue[string](o, key, "a string")
}

func (o object) optionalString(key string) (*string, error) {
	return optionalValue[string](o, key, "a string")
}

func (o object) requiredNumber(key string) (float64, error) {
	return requiredValue[float64](o, key, "a number")
}

func (o object) optionalNumber(key string) (*float64, error) {
	return optionalValue[float64](o, key, "a number")
}

func (o object) requiredInt(key string) (int, error) {
	return requiredValue[int](o, key, "an integer")
}

func (o object) optionalBool(key string) (*bool, error) {
	return optionalValue[bool](o, key, "a boolean")
}

func optionalEnum[T ~string](o object, key string, valid []T) (*T, error) {
	s, err := o.optionalString(key)
	if err != nil || s == nil {
		return nil, err
	}
	v := T(*s)
	if !slices.Contains(valid, v) {
		return nil, o.invalid(key, fmt.Sprintf("unknown value %q", *s), nil)
	}
	return &v, nil
}

func requiredEnum[T ~string](o object, key string, valid []T) (T, error) {
	var zero T
	if !o.present(key) {
		return zero, o.missing(key)
	}
	v, err := optionalEnum(o, key, valid)
	if err != nil {
		return zero, err
	}
	return *v, nil
}

// camelCase converts snake_case keys ("line_spacing") to camelCase ("lineSpacing").
// Keys without an inner underscore are returned unchanged; leading and trailing
// underscores are preserved.
func camelCase(key string) string {
	trimmed := strings.Trim(key, "_")
	if !strings.Contains(trimmed, "_") {
		return key
	}
	lead := key[:strings.Index(key, trimmed)]
	trail := key[len(lead)+len(trimmed):]

	parts := strings.Split(trimmed, "_")
	var b strings.Builder
	b.WriteString(lead)
	b.WriteString(strings.ToLower(parts[0]))
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(strings.ToLower(part[size:]))
	}
	b.WriteString(trail)
	return b.String()
}
