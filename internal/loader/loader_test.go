package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/philipparndt/gomeasure/pkg/openscad"
	"github.com/philipparndt/gomeasure/pkg/stl"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triangleSTL = `solid tri
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
endsolid tri
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadSTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.STL")
	writeFile(t, path, triangleSTL)

	model, err := New(zerolog.Nop()).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, model.TriangleCount())
}

func TestLoadUnsupported(t *testing.T) {
	_, err := New(zerolog.Nop()).Load(context.Background(), "model.obj")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestLoadOpenSCADWithoutBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	path := filepath.Join(t.TempDir(), "part.scad")
	writeFile(t, path, "cube(1);\n")

	_, err := New(zerolog.Nop()).Load(context.Background(), path)
	assert.ErrorIs(t, err, openscad.ErrNotInstalled)
}

func TestSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "part.scad"), "include <dims.scad>\ncube(w);\n")
	writeFile(t, filepath.Join(dir, "dims.scad"), "w = 3;\n")

	l := New(zerolog.Nop())
	sources, err := l.Sources(filepath.Join(dir, "part.scad"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "part.scad"), filepath.Join(dir, "dims.scad")}, sources)

	sources, err = l.Sources(filepath.Join(dir, "part.stl"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "part.stl")}, sources)
}

func TestWatchReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.stl")
	writeFile(t, path, triangleSTL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *stl.Model, 1)
	done := make(chan error, 1)
	go func() {
		done <- New(zerolog.Nop()).Watch(ctx, path, 20*time.Millisecond, func(m *stl.Model, err error) {
			if err == nil {
				select {
				case reloaded <- m:
				default:
				}
			}
		})
	}()

	// the watch is registered asynchronously; keep touching the file until it reports
	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case m := <-reloaded:
			assert.Equal(t, 1, m.TriangleCount())
			cancel()
			assert.NoError(t, <-done)
			return
		case <-ticker.C:
			writeFile(t, path, triangleSTL)
		case <-deadline:
			t.Fatal("model was not reloaded")
		}
	}
}
