package ports

// MazeLoader defines how the engine retrieves maze definitions.
// This allows the storage layer (FS, Memory) to be decoupled.
type MazeLoader interface {
	// GetMaze retrieves the raw definition of a maze by name.
	// It returns the raw bytes (which the compiler will parse) or an error
	// wrapping domain.ErrMazeNotFound.
	GetMaze(name string) ([]byte, error)

	// ListMazes returns the names of all available mazes, sorted.
	// This is used for introspection tools (e.g. 'labyrinth describe').
	ListMazes() ([]string, error)
}
