package tests

import (
	"errors"
	"testing"

	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/aretw0/labyrinth/pkg/ports"
)

// MazeLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.MazeLoader.
func MazeLoaderContractTest(t *testing.T, loader ports.MazeLoader, setupData map[string][]byte) {
	t.Helper()

	t.Run("GetMaze_Success", func(t *testing.T) {
		for name, expectedContent := range setupData {
			content, err := loader.GetMaze(name)
			if err != nil {
				t.Fatalf("unexpected error getting maze %s: %v", name, err)
			}
			if string(content) != string(expectedContent) {
				t.Errorf("content mismatch for %s. got %q, want %q", name, content, expectedContent)
			}
		}
	})

	t.Run("GetMaze_NotFound", func(t *testing.T) {
		_, err := loader.GetMaze("non-existent-maze")
		if !errors.Is(err, domain.ErrMazeNotFound) {
			t.Errorf("expected ErrMazeNotFound, got %v", err)
		}
	})

	t.Run("ListMazes", func(t *testing.T) {
		names, err := loader.ListMazes()
		if err != nil {
			t.Fatalf("unexpected error listing mazes: %v", err)
		}

		if len(names) != len(setupData) {
			t.Errorf("expected %d mazes, got %d", len(setupData), len(names))
		}

		lookup := make(map[string]bool)
		for _, name := range names {
			lookup[name] = true
		}
		for name := range setupData {
			if !lookup[name] {
				t.Errorf("maze %s missing from list", name)
			}
		}

		for i := 1; i < len(names); i++ {
			if names[i-1] > names[i] {
				t.Errorf("names not sorted: %v", names)
				break
			}
		}
	})
}
