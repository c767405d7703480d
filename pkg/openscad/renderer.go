package openscad

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// ErrNotInstalled is returned when the openscad binary is not in PATH
var ErrNotInstalled = errors.New("openscad not found in PATH, install it from https://openscad.org/")

// Matches: use <file.scad>, include <file.scad>, use <./file.scad>, etc.
var dependencyRegex = regexp.MustCompile(`^\s*(?:use|include)\s*<([^>]+)>`)

// Renderer renders OpenSCAD sources to STL so they can be measured
type Renderer struct {
	workDir string
	binary  string
	log     zerolog.Logger
}

// NewRenderer creates a renderer resolving relative paths against workDir
func NewRenderer(workDir string, log zerolog.Logger) *Renderer {
	return &Renderer{
		workDir: workDir,
		binary:  "openscad",
		log:     log.With().Str("component", "openscad").Logger(),
	}
}

func (r *Renderer) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.workDir, path)
}

// RenderToSTL renders scadFile into outputFile
func (r *Renderer) RenderToSTL(ctx context.Context, scadFile, outputFile string) error {
	if _, err := exec.LookPath(r.binary); err != nil {
		return ErrNotInstalled
	}

	cmd := exec.CommandContext(ctx, r.binary, "-o", outputFile, r.abs(scadFile))
	cmd.Dir = r.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.log.Info().Str("source", scadFile).Str("output", outputFile).Msg("rendering")
	if err := cmd.Run(); err != nil {
		var details []string
		if stderr.Len() > 0 {
			details = append(details, "stderr: "+strings.TrimSpace(stderr.String()))
		}
		if stdout.Len() > 0 {
			details = append(details, "stdout: "+strings.TrimSpace(stdout.String()))
		}
		if len(details) > 0 {
			return fmt.Errorf("failed to render %s: %w\n%s", scadFile, err, strings.Join(details, "\n"))
		}
		return fmt.Errorf("failed to render %s: %w", scadFile, err)
	}

	return nil
}

// ResolveDependencies returns scadFile and every file it uses or includes,
// transitively, as absolute paths
func (r *Renderer) ResolveDependencies(scadFile string) ([]string, error) {
	visited := make(map[string]bool)
	var deps []string

	if err := r.resolve(r.abs(scadFile), visited, &deps); err != nil {
		return nil, err
	}

	return deps, nil
}

func (r *Renderer) resolve(scadFile string, visited map[string]bool, deps *[]string) error {
	// Avoid circular dependencies
	if visited[scadFile] {
		return nil
	}
	visited[scadFile] = true
	*deps = append(*deps, scadFile)

	fileDeps, err := r.parseDependencies(scadFile)
	if err != nil {
		return err
	}

	for _, dep := range fileDeps {
		if err := r.resolve(dep, visited, deps); err != nil {
			return err
		}
	}

	return nil
}

// parseDependencies finds the use/include statements of a single file
func (r *Renderer) parseDependencies(scadFile string) ([]string, error) {
	file, err := os.Open(scadFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", scadFile, err)
	}
	defer file.Close()

	var deps []string
	scanner := bufio.NewScanner(file)
	scadDir := filepath.Dir(scadFile)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}

		if matches := dependencyRegex.FindStringSubmatch(line); len(matches) > 1 {
			deps = append(deps, r.resolveDepPath(matches[1], scadDir))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", scadFile, err)
	}

	return deps, nil
}

// resolveDepPath resolves a dependency relative to the including file,
// falling back to the work directory
func (r *Renderer) resolveDepPath(depPath, currentDir string) string {
	if strings.HasPrefix(depPath, "./") || strings.HasPrefix(depPath, "../") {
		return filepath.Clean(filepath.Join(currentDir, depPath))
	}

	absPath := filepath.Join(currentDir, depPath)
	if _, err := os.Stat(absPath); err == nil {
		return filepath.Clean(absPath)
	}

	return filepath.Clean(filepath.Join(r.workDir, depPath))
}
