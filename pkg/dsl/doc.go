/*
Package dsl provides a fluent builder for constructing Labyrinth mazes in Go.

It is an alternative to YAML or JSON definition files and is handy in tests and
for mazes generated at runtime.

Example usage:

	b := dsl.New("tunnel").Start("A")

	b.Cell("A").To("B", 10).Blocked("C")
	b.Cell("B").To("C", 5).To("EXIT", 1)
	b.Cell("C")
	b.Outside("EXIT")

	// The resulting loader can be used as a ports.MazeLoader
	loader, err := b.Build()
	// ... pass loader to labyrinth.New(...)
*/
package dsl
