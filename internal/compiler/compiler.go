package compiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/labyrinth/pkg/domain"
)

// DefinitionError lists every problem found while compiling a definition.
type DefinitionError struct {
	Maze     string
	Problems []string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("maze %q is invalid (%d problems):\n- %s", e.Maze, len(e.Problems), strings.Join(e.Problems, "\n- "))
}

// Compiled is a sealed maze together with the cells it was built from,
// including those declared outside its membership.
type Compiled struct {
	Definition *domain.MazeDefinition
	Maze       *domain.Maze

	cells map[string]*domain.Cell
}

// Cell resolves a cell by ID.
func (c *Compiled) Cell(id string) (*domain.Cell, error) {
	cell, ok := c.cells[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q in maze %q", domain.ErrCellNotFound, id, c.Maze.Name)
	}
	return cell, nil
}

// Start resolves the definition's default start cell.
func (c *Compiled) Start() (*domain.Cell, error) {
	if c.Definition.Start == "" {
		return nil, fmt.Errorf("%w: maze %q declares no start", domain.ErrCellNotFound, c.Maze.Name)
	}
	return c.Cell(c.Definition.Start)
}

// CellIDs returns every declared cell ID, sorted.
func (c *Compiled) CellIDs() []string {
	ids := make([]string, 0, len(c.cells))
	for id := range c.cells {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Compile builds the cells of def, assigns their passages and seals the maze.
// It reports all problems at once as a *DefinitionError.
func Compile(def *domain.MazeDefinition) (*Compiled, error) {
	var problems []string

	cells := make(map[string]*domain.Cell, len(def.Cells))
	for _, cd := range def.Cells {
		if cd.ID == "" {
			problems = append(problems, "cell with empty id")
			continue
		}
		if _, dup := cells[cd.ID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate cell %q", cd.ID))
			continue
		}
		cells[cd.ID] = domain.NewCell(cd.ID)
	}

	assigned := make(map[string]bool, len(def.Cells))
	for _, cd := range def.Cells {
		cell, ok := cells[cd.ID]
		if !ok || assigned[cd.ID] {
			continue
		}
		assigned[cd.ID] = true

		passages := make([]domain.Passage, 0, len(cd.Passages))
		dangling := false
		for _, pd := range cd.Passages {
			to, ok := cells[pd.To]
			if !ok {
				problems = append(problems, fmt.Sprintf("cell %q: passage to unknown cell %q", cd.ID, pd.To))
				dangling = true
				continue
			}
			passages = append(passages, domain.Passage{To: to, Cost: pd.Cost})
		}
		if dangling {
			continue
		}

		if status := cell.AssignPassages(passages...); status != domain.StatusOK {
			problems = append(problems, fmt.Sprintf("cell %q: passages rejected (%s)", cd.ID, status))
		}
	}

	memberIDs := def.Members
	if len(memberIDs) == 0 {
		for _, cd := range def.Cells {
			memberIDs = append(memberIDs, cd.ID)
		}
	}
	members := make([]*domain.Cell, 0, len(memberIDs))
	for _, id := range memberIDs {
		cell, ok := cells[id]
		if !ok {
			problems = append(problems, fmt.Sprintf("member %q is not a declared cell", id))
			continue
		}
		members = append(members, cell)
	}

	if def.Start != "" {
		if _, ok := cells[def.Start]; !ok {
			problems = append(problems, fmt.Sprintf("start %q is not a declared cell", def.Start))
		}
	}

	if len(problems) > 0 {
		return nil, &DefinitionError{Maze: def.Name, Problems: problems}
	}

	maze := domain.NewMaze(def.Name)
	if _, err := maze.AddCells(members...); err != nil {
		return nil, fmt.Errorf("failed to seal maze %q: %w", def.Name, err)
	}

	return &Compiled{
		Definition: def,
		Maze:       maze,
		cells:      cells,
	}, nil
}

// ParseAndCompile is Parse followed by Compile.
func (p *Parser) ParseAndCompile(data []byte) (*Compiled, error) {
	def, err := p.Parse(data)
	if err != nil {
		return nil, err
	}
	return Compile(def)
}
