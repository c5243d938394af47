// Package templates embeds the example style schemas shipped with stylekit.
package templates

import (
	"embed"
	"io/fs"
)

// examples holds ready-to-load schemas:
//   - examples/styles.json
//   - examples/styles.yaml
//
//go:embed examples
var examples embed.FS

// ExampleSchema is the path of the default example within ExamplesFS.
const ExampleSchema = "examples/styles.json"

// ExamplesFS returns the embedded filesystem of example schemas.
func ExamplesFS() fs.FS {
	return examples
}

// Example returns the raw bytes of the default example schema.
func Example() []byte {
	data, err := fs.ReadFile(examples, ExampleSchema)
	if err != nil {
		panic(err) // embedded at build time
	}
	return data
}
