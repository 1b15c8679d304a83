/*
Package labyrinth discovers routes through mazes of timed passages.

A maze is a directed graph of cells. Each passage has a positive travel cost, or
is declared impassable. A route is found by walking passages from a start cell
until the walk reaches a dead end, re-enters a cell it already visited, or steps
outside the maze. Its travel time is the sum of the passage costs, or a sampled
value when each step is drawn uniformly from [1, cost].

# Architecture

The domain entities (Cell, Route, Maze) live in pkg/domain and are sealed once
after construction. Mazes are read through a ports.MazeLoader (a directory of
YAML/JSON files by default, or memory for tests), and discovered routes can be
kept in a ports.RouteStore (memory, file or Redis). The same Engine backs the
labyrinth CLI, the HTTP API and the MCP server.

# Usage

	engine, err := labyrinth.New("./mazes")
	if err != nil {
		log.Fatal(err)
	}

	res, err := engine.Discover(ctx, "ring", "", "first")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Discovery.Route)

Definition files look like this:

	name: ring
	start: A
	cells:
	  - id: A
	    passages:
	      - {to: B, cost: 10}
	      - {to: C, cost: unreachable}
	  - id: B
	    passages:
	      - {to: A, cost: 1}
	  - id: C
*/
package labyrinth
