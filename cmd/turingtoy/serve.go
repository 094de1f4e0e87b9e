package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/p2lu/turingtoy/internal/cli"
	httpAdapter "github.com/p2lu/turingtoy/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Exposes machine runs over a JSON API:

  POST   /v1/runs        run a machine ({"machine": ..., "input": ..., "steps": ...})
  GET    /v1/runs        list stored runs
  GET    /v1/runs/{id}   fetch a stored run
  DELETE /v1/runs/{id}   delete a stored run
  GET    /metrics        Prometheus metrics

Results are kept in Redis (--redis-addr), in a directory (--store-dir), or in memory.
Set TURINGTOY_STORE_KEY to a base64 32-byte key to encrypt stored results.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		addr, _ := cmd.Flags().GetString("addr")
		steps, _ := cmd.Flags().GetInt("steps")
		maxSteps, _ := cmd.Flags().GetInt("max-steps")
		machinesDir, _ := cmd.Flags().GetString("machines")
		storeDir, _ := cmd.Flags().GetString("store-dir")
		redisAddr, _ := cmd.Flags().GetString("redis-addr")
		redisDB, _ := cmd.Flags().GetInt("redis-db")
		redisTTL, _ := cmd.Flags().GetDuration("redis-ttl")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return cli.Serve(ctx, cli.ServeOptions{
			Addr:          addr,
			Steps:         steps,
			MaxSteps:      maxSteps,
			MachinesDir:   machinesDir,
			StoreDir:      storeDir,
			RedisAddr:     redisAddr,
			RedisPassword: os.Getenv("TURINGTOY_REDIS_PASSWORD"),
			RedisDB:       redisDB,
			RedisTTL:      redisTTL,
			StoreKey:      os.Getenv("TURINGTOY_STORE_KEY"),
			Debug:         debug,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().Int("steps", httpAdapter.DefaultSteps, "Step budget of requests that do not set one")
	serveCmd.Flags().Int("max-steps", httpAdapter.MaxSteps, "Ceiling on the step budget of any request")
	serveCmd.Flags().String("machines", "", "Directory of named machine definitions")
	serveCmd.Flags().String("store-dir", "", "Directory where run results are stored")
	serveCmd.Flags().String("redis-addr", "", "Redis address for run results (password from TURINGTOY_REDIS_PASSWORD)")
	serveCmd.Flags().Int("redis-db", 0, "Redis database")
	serveCmd.Flags().Duration("redis-ttl", 0, "Expiry of stored results (0 = never)")
}
