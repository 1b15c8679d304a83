/*
Package ports defines the driven ports (interfaces) for the Labyrinth engine.

These interfaces decouple the core logic from external implementations, allowing
the engine to read maze definitions from various sources and to persist the routes
it discovers in various backends.

# Key Interfaces

  - MazeLoader: Responsible for loading raw maze definitions (e.g., from Files or Memory).
  - RouteStore: Responsible for persisting and loading discovered RouteRecords.
*/
package ports
