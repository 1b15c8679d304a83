package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/labyrinth"
	"github.com/aretw0/labyrinth/internal/compiler"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const maxSamples = 100

// Engine defines the interface required by the MCP server to interact with Labyrinth.
type Engine interface {
	Mazes() ([]string, error)
	Describe(name string) (*labyrinth.Description, error)
	Validate(name string) error
	Discover(ctx context.Context, name, startID, policy string) (*labyrinth.Result, error)
	SampleTravelTime(route *domain.Route) (int, error)
	Route(ctx context.Context, id string) (*domain.RouteRecord, error)
}

// DiscoverArgs are the arguments of the discover_route tool.
type DiscoverArgs struct {
	Maze    string `json:"maze"`
	Start   string `json:"start,omitempty"`
	Policy  string `json:"policy,omitempty"`
	Samples int    `json:"samples,omitempty"`
}

// DiscoverResult aligns with the HTTP response and provides a unified structure across adapters.
type DiscoverResult struct {
	Route     *domain.RouteRecord `json:"route" jsonschema_description:"The persisted route record"`
	Rendering string              `json:"rendering" jsonschema_description:"Human readable route with per-step costs"`
	Samples   []int               `json:"samples,omitempty" jsonschema_description:"Randomized travel times, each step uniform in [1, cost]"`
}

// ValidateResult is returned by the validate_maze tool.
type ValidateResult struct {
	Valid    bool     `json:"valid"`
	Problems []string `json:"problems,omitempty"`
}

// Server wraps the Labyrinth Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("labyrinth-mcp", labyrinth.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server, mostly for in-process transports.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: list_mazes
	s.mcpServer.AddTool(mcp.NewTool("list_mazes",
		mcp.WithDescription("List the names of the available mazes."),
	), s.handleListMazes)

	// TOOL: describe_maze
	s.mcpServer.AddTool(mcp.NewTool("describe_maze",
		mcp.WithDescription("Describe a maze: its definition, members, dead ends and passages."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Maze name")),
		mcp.WithOutputSchema[labyrinth.Description](),
	), mcp.NewStructuredToolHandler(s.handleDescribe))

	// TOOL: validate_maze
	s.mcpServer.AddTool(mcp.NewTool("validate_maze",
		mcp.WithDescription("Check a maze for broken passages, bad costs and cells unreachable from its start."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Maze name")),
		mcp.WithOutputSchema[ValidateResult](),
	), mcp.NewStructuredToolHandler(s.handleValidate))

	// TOOL: discover_route
	s.mcpServer.AddTool(mcp.NewTool("discover_route",
		mcp.WithDescription("Walk a maze from a start cell until a dead end, a loop or an exit, and report the route."),
		mcp.WithString("maze", mcp.Required(), mcp.Description("Maze name")),
		mcp.WithString("start", mcp.Description("Start cell ID (defaults to the maze's declared start)")),
		mcp.WithString("policy", mcp.Description("Next-step policy"), mcp.Enum(domain.PolicyFirst, domain.PolicyRandom)),
		mcp.WithNumber("samples", mcp.Description("Number of randomized travel times to draw (0-100)")),
		mcp.WithOutputSchema[DiscoverResult](),
	), mcp.NewStructuredToolHandler(s.handleDiscover))

	// TOOL: get_route
	s.mcpServer.AddTool(mcp.NewTool("get_route",
		mcp.WithDescription("Fetch a previously discovered route by ID."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Route ID")),
	), s.handleGetRoute)
}

func (s *Server) handleListMazes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.engine.Mazes()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(names)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleGetRoute(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}
	rec, err := s.engine.Route(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get route failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(rec)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// Handler methods for structured tools

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (labyrinth.Description, error) {
	name, _ := args["name"].(string)
	desc, err := s.engine.Describe(name)
	if err != nil {
		return labyrinth.Description{}, fmt.Errorf("describe failed: %w", err)
	}
	return *desc, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidateResult, error) {
	name, _ := args["name"].(string)
	err := s.engine.Validate(name)

	var defErr *compiler.DefinitionError
	switch {
	case err == nil:
		return ValidateResult{Valid: true}, nil
	case errors.As(err, &defErr):
		return ValidateResult{Valid: false, Problems: defErr.Problems}, nil
	default:
		return ValidateResult{}, fmt.Errorf("validate failed: %w", err)
	}
}

func (s *Server) handleDiscover(ctx context.Context, request mcp.CallToolRequest, args DiscoverArgs) (DiscoverResult, error) {
	if args.Maze == "" {
		return DiscoverResult{}, fmt.Errorf("maze is required")
	}
	if args.Samples < 0 || args.Samples > maxSamples {
		return DiscoverResult{}, fmt.Errorf("samples must be between 0 and %d", maxSamples)
	}

	res, err := s.engine.Discover(ctx, args.Maze, args.Start, args.Policy)
	if err != nil {
		s.logger.Warn("MCP discover_route failed", "maze", args.Maze, "error", err)
		return DiscoverResult{}, fmt.Errorf("discover failed: %w", err)
	}

	out := DiscoverResult{
		Route:     res.Record,
		Rendering: res.Discovery.Route.String(),
	}
	// Sampling a route without passage only repeats Unreachable.
	for i := 0; res.Record.Reachable && i < args.Samples; i++ {
		t, err := s.engine.SampleTravelTime(res.Discovery.Route)
		if err != nil {
			return DiscoverResult{}, fmt.Errorf("sampling failed: %w", err)
		}
		out.Samples = append(out.Samples, t)
	}
	return out, nil
}

func (s *Server) registerResources() {
	// EXPOSE: labyrinth://mazes
	s.mcpServer.AddResource(mcp.NewResource("labyrinth://mazes", "Available Mazes",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.engine.Mazes()
		if err != nil {
			return nil, fmt.Errorf("failed to list mazes: %w", err)
		}
		jsonBytes, _ := json.Marshal(names)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "labyrinth://mazes",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
