package memory

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/aretw0/labyrinth/pkg/domain"
)

// Loader implements ports.MazeLoader using an in-memory map.
type Loader struct {
	mazes map[string][]byte
}

// NewLoader creates a new Loader with the provided raw definitions (YAML or JSON strings).
func NewLoader(data map[string]string) *Loader {
	mazes := make(map[string][]byte)
	for k, v := range data {
		mazes[k] = []byte(v)
	}
	return &Loader{
		mazes: mazes,
	}
}

// NewFromDefinitions creates a new Loader from domain definitions.
// This handles serialization automatically, improving DX for tests.
func NewFromDefinitions(defs ...domain.MazeDefinition) (*Loader, error) {
	data := make(map[string][]byte)
	for _, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("maze definition missing name")
		}
		bytes, err := json.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal maze %s: %w", d.Name, err)
		}
		data[d.Name] = bytes
	}
	return &Loader{mazes: data}, nil
}

// GetMaze retrieves the raw definition of a maze by name.
func (l *Loader) GetMaze(name string) ([]byte, error) {
	content, ok := l.mazes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMazeNotFound, name)
	}
	return content, nil
}

// ListMazes returns all available maze names.
func (l *Loader) ListMazes() ([]string, error) {
	keys := make([]string, 0, len(l.mazes))
	for k := range l.mazes {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
