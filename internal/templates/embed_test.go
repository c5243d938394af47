package templates

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/stylekit/internal/registry"
)

func TestExamples_AllLoad(t *testing.T) {
	fsys := ExamplesFS()

	var loaded []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !(strings.HasSuffix(path, ".json") || registry.IsYAML(path)) {
			return nil
		}
		reg := registry.New(nil)
		require.NoError(t, reg.PreloadFS(context.Background(), fsys, path), path)
		require.NotEmpty(t, reg.Names(), path)
		loaded = append(loaded, path)
		return nil
	})

	require.NoError(t, err)
	require.ElementsMatch(t, []string{"examples/styles.json", "examples/styles.yaml"}, loaded)
}

func TestExample(t *testing.T) {
	reg := registry.New(nil)
	require.NoError(t, reg.Preload(context.Background(), Example()))
	require.Equal(t, []string{"button", "caption", "link", "price"}, reg.Names())
}
