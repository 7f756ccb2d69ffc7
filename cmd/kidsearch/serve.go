// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/laurentftech/kidsearch/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON API server for the browser front end",
	Long: `Serve exposes search, knowledge panels, suggestions, and quota status
under /api/ with CORS enabled for the configured origins.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		defer a.close()

		if host, _ := cmd.Flags().GetString("host"); host != "" {
			a.cfg.Server.Host = host
		}
		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			a.cfg.Server.Port = port
		}

		srv := server.New(a.engine, a.panels, a.suggest, a.cfg.Server, os.Stderr)
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().String("host", "", "listen host (default: all interfaces)")
	serveCmd.Flags().Int("port", 0, "listen port (default: 8080)")

	rootCmd.AddCommand(serveCmd)
}
