package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/labyrinth/internal/compiler"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/aretw0/labyrinth/pkg/ports"
)

// ValidateMaze loads the named maze and runs ValidateDefinition on it.
func ValidateMaze(loader ports.MazeLoader, name string) error {
	raw, err := loader.GetMaze(name)
	if err != nil {
		return err
	}
	def, err := compiler.NewParser().Parse(raw)
	if err != nil {
		return err
	}
	return ValidateDefinition(def)
}

// ValidateDefinition checks for broken passages, bad costs and membership
// problems, then crawls from the declared start and reports members it cannot reach.
func ValidateDefinition(def *domain.MazeDefinition) error {
	compiled, err := compiler.Compile(def)
	if err != nil {
		return err
	}
	if def.Start == "" {
		return nil
	}

	start, err := compiled.Start()
	if err != nil {
		return err
	}

	visited := map[*domain.Cell]bool{start: true}
	queue := []*domain.Cell{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		// Passages leaving the maze are exits, not part of the crawl.
		if !compiled.Maze.Contains(current) {
			continue
		}

		next, err := current.ConnectedCells()
		if err != nil {
			return err
		}
		for _, c := range next {
			if !visited[c] {
				visited[c] = true
				queue = append(queue, c)
			}
		}
	}

	var problems []string
	for _, c := range compiled.Maze.Members() {
		if !visited[c] {
			problems = append(problems, fmt.Sprintf("member %q is unreachable from start %q", c.ID, def.Start))
		}
	}
	if len(problems) > 0 {
		return &compiler.DefinitionError{Maze: def.Name, Problems: problems}
	}
	return nil
}

// Problems extracts the individual findings of a validation error.
func Problems(err error) []string {
	var defErr *compiler.DefinitionError
	if errors.As(err, &defErr) {
		return defErr.Problems
	}
	if err != nil {
		return []string{strings.TrimSpace(err.Error())}
	}
	return nil
}
