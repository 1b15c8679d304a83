package domain

// MazeDefinition is the declarative form of a maze, as read from YAML or JSON.
// Cells that are defined but left out of Members model the outside of the maze.
type MazeDefinition struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Start is the default cell for route discovery (optional).
	Start string `json:"start,omitempty" yaml:"start,omitempty" mapstructure:"start"`

	// Members lists the cell IDs that belong to the maze. Empty means all cells.
	Members []string `json:"members,omitempty" yaml:"members,omitempty" mapstructure:"members"`

	Cells []CellDefinition `json:"cells" yaml:"cells" mapstructure:"cells"`
}

// CellDefinition declares a cell and its outgoing passages.
type CellDefinition struct {
	ID       string              `json:"id" yaml:"id" mapstructure:"id"`
	Passages []PassageDefinition `json:"passages,omitempty" yaml:"passages,omitempty" mapstructure:"passages"`
}

// PassageDefinition declares a timed passage. Cost accepts "unreachable" in source files.
type PassageDefinition struct {
	To   string `json:"to" yaml:"to" mapstructure:"to"`
	Cost int    `json:"cost" yaml:"cost" mapstructure:"cost"`
}
