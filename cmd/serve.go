package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/whoisrunning/civic-research/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := server.New(server.Deps{
			Research:       env.Research,
			Census:         env.Census,
			Payments:       env.Payments,
			Community:      env.Community,
			Store:          env.Store,
			Tracker:        env.Tracker,
			Port:           port,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		})
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
