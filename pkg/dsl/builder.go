package dsl

import (
	"fmt"

	"github.com/aretw0/labyrinth/internal/compiler"
	"github.com/aretw0/labyrinth/pkg/adapters/memory"
	"github.com/aretw0/labyrinth/pkg/domain"
)

// Builder manages the maze construction.
type Builder struct {
	name  string
	start string
	order []string
	cells map[string]*CellBuilder
}

// New creates a new maze builder.
func New(name string) *Builder {
	return &Builder{
		name:  name,
		cells: make(map[string]*CellBuilder),
	}
}

// Start sets the default cell for route discovery.
func (b *Builder) Start(id string) *Builder {
	b.start = id
	return b
}

// Cell declares a cell of the maze.
// If the cell already exists, it returns the existing builder.
func (b *Builder) Cell(id string) *CellBuilder {
	if cb, ok := b.cells[id]; ok {
		return cb
	}
	cb := &CellBuilder{
		def:    domain.CellDefinition{ID: id},
		member: true,
	}
	b.cells[id] = cb
	b.order = append(b.order, id)
	return cb
}

// Outside declares a cell that passages can lead to but that is not part of the maze.
// Walking onto it exits the maze.
func (b *Builder) Outside(id string) *CellBuilder {
	cb := b.Cell(id)
	cb.member = false
	return cb
}

// Definition returns the declarative form of the maze, cells in declaration order.
func (b *Builder) Definition() domain.MazeDefinition {
	def := domain.MazeDefinition{
		Name:  b.name,
		Start: b.start,
		Cells: make([]domain.CellDefinition, 0, len(b.order)),
	}
	outside := false
	for _, id := range b.order {
		cb := b.cells[id]
		def.Cells = append(def.Cells, cb.definition())
		if cb.member {
			def.Members = append(def.Members, id)
		} else {
			outside = true
		}
	}
	// An empty member list already means "every cell".
	if !outside {
		def.Members = nil
	}
	return def
}

// Compile builds and seals the maze directly.
func (b *Builder) Compile() (*compiler.Compiled, error) {
	def := b.Definition()
	return compiler.Compile(&def)
}

// Build packs the maze into a memory loader.
func (b *Builder) Build() (*memory.Loader, error) {
	loader, err := memory.NewFromDefinitions(b.Definition())
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}
