package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/p2lu/turingtoy"
	"github.com/p2lu/turingtoy/internal/logging"
	"github.com/p2lu/turingtoy/pkg/adapters/file"
	"github.com/p2lu/turingtoy/pkg/adapters/mcp"
	"github.com/p2lu/turingtoy/pkg/ports"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the run_machine and graph_machine tools to MCP clients.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		machinesDir, _ := cmd.Flags().GetString("machines")
		steps, _ := cmd.Flags().GetInt("steps")
		maxSteps, _ := cmd.Flags().GetInt("max-steps")

		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		slog.SetDefault(logging.New(level))

		var loader ports.MachineLoader
		if machinesDir != "" {
			loader = file.NewLoader(machinesDir)
		}
		srv := mcp.NewServer(turingtoy.New(turingtoy.WithLogger(slog.Default())), loader,
			mcp.WithDefaultSteps(steps), mcp.WithMaxSteps(maxSteps))

		switch transport {
		case "stdio":
			// keep JSON-RPC on stdout clean
			log.SetOutput(os.Stderr)
			slog.Info("Starting turingtoy MCP Server (Stdio)")
			return srv.ServeStdio()
		case "sse":
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := srv.ServeSSE(ctx, port); err != nil {
				return err
			}
			slog.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
	mcpCmd.Flags().String("machines", "", "Directory of named machine definitions")
	mcpCmd.Flags().Int("steps", mcp.DefaultSteps, "Step budget of calls that do not set one")
	mcpCmd.Flags().Int("max-steps", mcp.MaxSteps, "Ceiling on the step budget of any call")
}
