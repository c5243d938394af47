package tracing

// Span names.
const (
	SpanPreload     = "registry.preload"
	SpanPreloadFile = "registry.preload_file"
	SpanDecode      = "schema.decode"
	SpanCompile     = "style.compile"
)

// Span attribute keys.
const (
	AttrStyleName   = "style.name"
	AttrStyleCount  = "style.count"
	AttrTagCount    = "style.tag_count"
	AttrSnapshotID  = "snapshot.id"
	AttrSource      = "snapshot.source"
	AttrPayloadSize = "payload.bytes"
)

// Event names.
const (
	EventDuplicateStyle = "style.duplicate"
	EventSnapshotSwap   = "snapshot.swapped"
)
