// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/laurentftech/kidsearch/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches from the search log",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.History.Enabled {
			fmt.Fprintln(os.Stderr, "History is disabled in the configuration.")
			return nil
		}

		store, err := history.NewStore(cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		entries, err := store.Recent(limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No searches logged yet.")
			return nil
		}

		for _, e := range entries {
			primary := ""
			if e.UsedPrimary {
				primary = " [google]"
			}
			fmt.Printf("%s  %-6s  %-30q  %d results%s\n",
				e.At.Local().Format("2006-01-02 15:04"), e.Mode, e.Query, e.ResultCount, primary)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "number of entries to show")

	rootCmd.AddCommand(historyCmd)
}
