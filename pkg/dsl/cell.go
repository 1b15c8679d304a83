package dsl

import "github.com/aretw0/labyrinth/pkg/domain"

// CellBuilder provides a fluent API for configuring a cell.
type CellBuilder struct {
	def    domain.CellDefinition
	member bool
}

// To adds a passage to target that takes cost time units.
func (c *CellBuilder) To(target string, cost int) *CellBuilder {
	c.def.Passages = append(c.def.Passages, domain.PassageDefinition{
		To:   target,
		Cost: cost,
	})
	return c
}

// Blocked adds a passage to target that exists but cannot be traversed.
func (c *CellBuilder) Blocked(target string) *CellBuilder {
	return c.To(target, domain.Unreachable)
}

func (c *CellBuilder) definition() domain.CellDefinition {
	def := c.def
	def.Passages = append([]domain.PassageDefinition(nil), c.def.Passages...)
	return def
}
