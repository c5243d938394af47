package presentation

import (
	"maps"
	"slices"
	"time"

	"github.com/zjrosen/stylekit/internal/registry"
	"github.com/zjrosen/stylekit/internal/resolve"
	"github.com/zjrosen/stylekit/internal/style"
)

// SnapshotDTO represents a loaded registry generation for presentation
type SnapshotDTO struct {
	ID       string     `json:"id"`
	LoadedAt time.Time  `json:"loaded_at"`
	Source   string     `json:"source,omitempty"`
	Styles   []StyleDTO `json:"styles"`
}

// StyleDTO represents one compiled style
type StyleDTO struct {
	Name string `json:"name"`
	BundleDTO
	Tags []TagDTO `json:"tags"`
}

// TagDTO represents the bundle of one inline tag
type TagDTO struct {
	Name string `json:"name"`
	BundleDTO
}

// BundleDTO lists the declared states and the kinds each state sets on its own
type BundleDTO struct {
	States     []string            `json:"states"`
	Attributes map[string][]string `json:"attributes"`
}

// FromSnapshot converts a registry snapshot to a DTO, styles in name order.
func FromSnapshot(snap *registry.Snapshot) SnapshotDTO {
	dto := SnapshotDTO{
		ID:       snap.ID,
		LoadedAt: snap.LoadedAt,
		Source:   snap.Source,
		Styles:   make([]StyleDTO, 0, snap.Len()),
	}
	for _, name := range snap.Names() {
		cs, _ := snap.Style(name)
		dto.Styles = append(dto.Styles, FromCompiledStyle(cs))
	}
	return dto
}

// FromCompiledStyle converts a compiled style to a DTO, tags in declaration order.
func FromCompiledStyle(cs *style.CompiledStyle) StyleDTO {
	dto := StyleDTO{
		Name:      cs.Name,
		BundleDTO: fromBundle(cs.Base),
		Tags:      make([]TagDTO, 0, len(cs.TagNames())),
	}
	for _, name := range cs.TagNames() {
		b, _ := cs.Tag(name)
		dto.Tags = append(dto.Tags, TagDTO{Name: name, BundleDTO: fromBundle(b)})
	}
	return dto
}

func fromBundle(b style.Bundle) BundleDTO {
	dto := BundleDTO{States: []string{}, Attributes: map[string][]string{}}
	for _, st := range style.States {
		set, ok := b.Declared(st)
		if !ok {
			continue
		}
		kinds := make([]string, 0, len(set.Kinds()))
		for _, kind := range set.Kinds() {
			kinds = append(kinds, kind.String())
		}
		dto.States = append(dto.States, st.String())
		dto.Attributes[st.String()] = kinds
	}
	return dto
}

// Color sources.
const (
	SourceAsset    = "asset"
	SourceStandard = "standard"
	SourceExtended = "extended"
)

// ColorDTO is one color name a schema may reference
type ColorDTO struct {
	Name      string `json:"name"`
	Hex       string `json:"hex,omitempty"`
	Source    string `json:"source"`
	Available bool   `json:"available"`
}

// FromColors lists the asset colors and then the standard names not shadowed by
// an asset, each group sorted. Unavailable extended colors carry no hex value.
func FromColors(assets resolve.ColorCatalog, colors *resolve.ColorResolver) []ColorDTO {
	out := make([]ColorDTO, 0, len(assets))
	for _, name := range slices.Sorted(maps.Keys(assets)) {
		out = append(out, ColorDTO{Name: name, Hex: assets[name].Hex(), Source: SourceAsset, Available: true})
	}
	for _, name := range resolve.StandardColorNames() {
		if _, shadowed := assets.Color(name); shadowed {
			continue
		}
		dto := ColorDTO{Name: name, Source: SourceStandard, Available: !colors.Unavailable(name)}
		if colors.Extended(name) {
			dto.Source = SourceExtended
		}
		if dto.Available {
			dto.Hex = colors.Resolve(name).Hex()
		}
		out = append(out, dto)
	}
	return out
}
