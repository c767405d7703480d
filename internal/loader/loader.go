package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/philipparndt/gomeasure/internal/logging"
	"github.com/philipparndt/gomeasure/pkg/openscad"
	"github.com/philipparndt/gomeasure/pkg/stl"
	"github.com/philipparndt/gomeasure/pkg/watcher"
	"github.com/rs/zerolog"
)

// ErrUnsupported is returned for files that are neither STL nor OpenSCAD
var ErrUnsupported = errors.New("unsupported file type")

// Loader turns model sources into parsed STL models
type Loader struct {
	log zerolog.Logger
}

// New creates a loader
func New(log zerolog.Logger) *Loader {
	return &Loader{log: logging.Component(log, "loader")}
}

func isOpenSCAD(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".scad")
}

// Load parses an STL file, or renders an OpenSCAD file to a temporary STL first
func (l *Loader) Load(ctx context.Context, path string) (*stl.Model, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl":
		model, err := stl.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse STL file: %w", err)
		}
		l.log.Debug().Str("path", path).Int("triangles", model.TriangleCount()).Msg("loaded")
		return model, nil

	case ".scad":
		return l.render(ctx, path)

	default:
		return nil, fmt.Errorf("%w: %s (expected .stl or .scad)", ErrUnsupported, filepath.Ext(path))
	}
}

func (l *Loader) render(ctx context.Context, path string) (*stl.Model, error) {
	tmp, err := os.CreateTemp("", "gomeasure-*.stl")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	start := time.Now()
	renderer := openscad.NewRenderer(filepath.Dir(path), l.log)
	if err := renderer.RenderToSTL(ctx, path, tmp.Name()); err != nil {
		return nil, fmt.Errorf("failed to render OpenSCAD file: %w", err)
	}

	model, err := stl.Parse(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered STL: %w", err)
	}

	l.log.Info().
		Str("path", path).
		Int("triangles", model.TriangleCount()).
		Dur("took", time.Since(start)).
		Msg("rendered")
	return model, nil
}

// Sources returns every file whose change affects the model at path
func (l *Loader) Sources(path string) ([]string, error) {
	if !isOpenSCAD(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
		}
		return []string{abs}, nil
	}

	deps, err := openscad.NewRenderer(filepath.Dir(path), l.log).ResolveDependencies(filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dependencies: %w", err)
	}
	return deps, nil
}

// Watch reloads the model whenever one of its sources changes and hands the
// result to onChange. Reloads run one at a time on the calling goroutine.
// Watch blocks until ctx is cancelled.
func (l *Loader) Watch(ctx context.Context, path string, debounce time.Duration, onChange func(*stl.Model, error)) error {
	w, err := watcher.New(debounce, l.log)
	if err != nil {
		return err
	}
	defer w.Close()

	changes := make(chan string, 1)
	notify := func(changed string) {
		select {
		case changes <- changed:
		default:
			// a reload is already pending
		}
	}

	if err := l.watchSources(w, path, notify); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			l.log.Error().Err(err).Msg("watcher stopped")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case changed := <-changes:
			l.log.Info().Str("file", changed).Msg("reloading")
			model, err := l.Load(ctx, path)
			onChange(model, err)

			// includes may have changed along with the source
			if err == nil && isOpenSCAD(path) {
				if err := w.RemoveAll(); err != nil {
					l.log.Warn().Err(err).Msg("failed to reset watches")
				}
				if err := l.watchSources(w, path, notify); err != nil {
					l.log.Warn().Err(err).Msg("failed to watch sources")
				}
			}
		}
	}
}

func (l *Loader) watchSources(w *watcher.Watcher, path string, notify func(string)) error {
	sources, err := l.Sources(path)
	if err != nil {
		return err
	}
	if err := w.Add(sources, notify); err != nil {
		return fmt.Errorf("failed to watch files: %w", err)
	}
	l.log.Info().Strs("files", sources).Msg("watching for changes")
	return nil
}
