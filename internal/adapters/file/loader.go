package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/labyrinth/pkg/domain"
)

// extensions are tried in order when resolving a maze name.
var extensions = []string{".yaml", ".yml", ".json"}

// Loader implements ports.MazeLoader over a directory of definition files.
// A maze is named after its file without the extension.
type Loader struct {
	Dir string
}

// NewLoader creates a loader rooted at dir. An empty dir means the working directory.
func NewLoader(dir string) *Loader {
	if dir == "" {
		dir = "."
	}
	return &Loader{Dir: dir}
}

// GetMaze reads the definition file for name.
func (l *Loader) GetMaze(name string) ([]byte, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, fmt.Errorf("%w: %q", domain.ErrMazeNotFound, name)
	}
	for _, ext := range extensions {
		data, err := os.ReadFile(filepath.Join(l.Dir, name+ext))
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read maze %s: %w", name, err)
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrMazeNotFound, name)
}

// ListMazes returns the names of all definition files in the directory, sorted.
func (l *Loader) ListMazes() ([]string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list mazes: %w", err)
	}

	seen := make(map[string]bool)
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if !isDefinition(ext) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func isDefinition(ext string) bool {
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}
