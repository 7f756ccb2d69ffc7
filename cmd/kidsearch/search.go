// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/laurentftech/kidsearch/internal/engine"
	"github.com/laurentftech/kidsearch/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run one search across Google and the configured sources",
	Long: `Search queries the primary Google Custom Search API and every enabled
secondary source concurrently, merges the results by weight, and prints the
ranked page. Results are served from the cache when a fresh entry exists.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		defer a.close()

		images, _ := cmd.Flags().GetBool("images")
		page, _ := cmd.Flags().GetInt("page")
		sort, _ := cmd.Flags().GetString("sort")
		lang, _ := cmd.Flags().GetString("lang")
		asJSON, _ := cmd.Flags().GetBool("json")

		mode := types.ModeWeb
		if images {
			mode = types.ModeImages
		}

		data, err := a.engine.Search(cmd.Context(), engine.Request{
			Query: strings.Join(args, " "),
			Page:  page,
			Sort:  sort,
			Mode:  mode,
			Lang:  lang,
		})
		if err != nil {
			return err
		}

		if asJSON {
			return engine.FormatJSON(data, os.Stdout)
		}
		engine.FormatTable(data, os.Stdout)

		usage := a.engine.Quota()
		fmt.Fprintf(os.Stderr, "Google quota: %d/%d used today\n", usage.Used, usage.Limit)
		return nil
	},
}

func init() {
	searchCmd.Flags().Bool("images", false, "search images instead of web pages")
	searchCmd.Flags().Int("page", 1, "result page (pages beyond the first come from Google only)")
	searchCmd.Flags().String("sort", "", "Google sort expression (e.g. \"date\")")
	searchCmd.Flags().String("lang", "", "force the query language (default: detected)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
