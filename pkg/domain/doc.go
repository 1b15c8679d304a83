/*
Package domain contains the core maze model for the Labyrinth engine.

It defines the three entities of the model, Cells, Routes and Mazes, together with the
next-step policies used to discover routes. This package is kept pure and free of
external I/O like persistence or transport, following Hexagonal Architecture principles.

# Key Entities

  - Cell: A room of the maze holding timed, directed passages to other cells.
  - Route: An ordered sequence of cells with an on-demand travel time.
  - Maze: The set of cells forming the graph; discovers routes from a starting cell.
  - Policy: Chooses the next cell among the passable candidates (first or random).

# Sealing

Every entity starts uninitialized and is sealed exactly once by its setter
(Cell.AssignPassages, Route.SetCells, Maze.AddCells). A second call is a reported no-op.
Read operations on an unsealed entity fail with an error matching ErrUninitialized.
*/
package domain
