package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/p2lu/turingtoy"
	"github.com/p2lu/turingtoy/internal/presentation/graph"
	"github.com/p2lu/turingtoy/internal/sanitize"
	"github.com/p2lu/turingtoy/pkg/adapters/file"
	"github.com/p2lu/turingtoy/pkg/domain"
	"github.com/p2lu/turingtoy/pkg/ports"
)

// DefaultSteps is the step budget of calls that do not set one.
const DefaultSteps = 1_000

// MaxSteps caps the budget a call may ask for. Each history entry holds the
// whole tape, so the result grows with the square of the step count.
const MaxSteps = 2_000

// Engine runs machines. *turingtoy.Engine satisfies it.
type Engine interface {
	Run(ctx context.Context, machine *domain.Machine, input string, steps *int) (*domain.Result, error)
}

// Server wraps the engine and exposes it as an MCP Server.
type Server struct {
	engine       Engine
	loader       ports.MachineLoader
	defaultSteps int
	maxSteps     int
	mcpServer    *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithDefaultSteps sets the budget of calls without steps.
func WithDefaultSteps(n int) Option {
	return func(s *Server) { s.defaultSteps = n }
}

// WithMaxSteps sets the ceiling applied to every call budget.
func WithMaxSteps(n int) Option {
	return func(s *Server) { s.maxSteps = n }
}

// NewServer creates a new MCP Server instance. loader may be nil, in which case
// tools only accept inline definitions.
func NewServer(engine Engine, loader ports.MachineLoader, opts ...Option) *Server {
	s := &Server{
		engine:       engine,
		loader:       loader,
		defaultSteps: DefaultSteps,
		maxSteps:     MaxSteps,
		mcpServer:    server.NewMCPServer("turingtoy-mcp", strings.TrimSpace(turingtoy.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over SSE on port until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
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
	// TOOL: run_machine
	s.mcpServer.AddTool(mcp.NewTool("run_machine",
		mcp.WithDescription("Run a Turing machine on an input tape and return the final tape, whether it halted in the done state, and the step history."),
		mcp.WithString("machine", mcp.Description("Machine definition as YAML or JSON with 'table', 'blank' and 'start state' keys")),
		mcp.WithString("machine_name", mcp.Description("Name of a machine known to the server (instead of 'machine')")),
		mcp.WithString("input", mcp.Description("Initial tape contents, one symbol per character")),
		mcp.WithNumber("steps", mcp.Description("Maximum number of instructions to execute")),
	), s.handleRunMachine)

	// TOOL: graph_machine
	s.mcpServer.AddTool(mcp.NewTool("graph_machine",
		mcp.WithDescription("Render the transition table of a machine as a Mermaid flowchart."),
		mcp.WithString("machine", mcp.Description("Machine definition as YAML or JSON")),
		mcp.WithString("machine_name", mcp.Description("Name of a machine known to the server (instead of 'machine')")),
	), s.handleGraphMachine)
}

func (s *Server) resolveMachine(ctx context.Context, request mcp.CallToolRequest) (*domain.Machine, error) {
	def := request.GetString("machine", "")
	name := request.GetString("machine_name", "")

	switch {
	case def != "" && name != "":
		return nil, errors.New("set either machine or machine_name, not both")
	case def != "":
		return file.ParseMachine([]byte(def))
	case name != "":
		if s.loader == nil {
			return nil, errors.New("this server does not serve named machines")
		}
		return s.loader.Load(ctx, name)
	default:
		return nil, errors.New("machine is required")
	}
}

func (s *Server) handleRunMachine(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	machine, err := s.resolveMachine(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid machine: %v", err)), nil
	}

	input := request.GetString("input", "")
	if err := sanitize.Tape(input); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid input: %v", err)), nil
	}

	steps := request.GetInt("steps", s.defaultSteps)
	if s.maxSteps > 0 {
		steps = min(steps, s.maxSteps)
	}
	res, err := s.engine.Run(ctx, machine, input, &steps)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("run failed: %v", err)), nil
	}

	jsonBytes, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleGraphMachine(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	machine, err := s.resolveMachine(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid machine: %v", err)), nil
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(machine, nil)), nil
}

func (s *Server) registerResources() {
	lister, ok := s.loader.(ports.MachineLister)
	if !ok {
		return
	}

	// EXPOSE: turingtoy://machines
	s.mcpServer.AddResource(mcp.NewResource("turingtoy://machines", "Available Machines",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := lister.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list machines: %w", err)
		}
		jsonBytes, _ := json.Marshal(names)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "turingtoy://machines",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
