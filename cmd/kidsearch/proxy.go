// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/laurentftech/kidsearch/internal/server"
)

var proxyCmd = &cobra.Command{
	Use:   "proxy",
	Short: "Run a CORS relay in front of an upstream API",
	Long: `Proxy forwards requests to the configured backend and adds CORS headers
to the responses. Meant for local front-end development against APIs that
do not serve CORS headers themselves.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
			cfg.Proxy.Backend = backend
		}
		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Proxy.Port = port
		}

		p, err := server.NewProxy(cfg.Proxy, os.Stderr)
		if err != nil {
			return err
		}
		return p.ListenAndServe()
	},
}

func init() {
	proxyCmd.Flags().String("backend", "", "upstream base URL to relay to")
	proxyCmd.Flags().Int("port", 0, "listen port (default: 8081)")

	rootCmd.AddCommand(proxyCmd)
}
