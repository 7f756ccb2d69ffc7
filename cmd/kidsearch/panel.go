// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var panelCmd = &cobra.Command{
	Use:   "panel [query]",
	Short: "Look up the knowledge panel for a query",
	Long: `Panel searches the configured encyclopedia for an article matching the
query and prints its summary. When no article matches well enough, nothing
is printed: a wrong panel is worse than no panel.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		defer a.close()

		lang, _ := cmd.Flags().GetString("lang")
		if lang == "" {
			lang = a.cfg.Search.DefaultLanguage
		}
		if lang == "" {
			lang = "fr"
		}

		p, err := a.panels.Fetch(cmd.Context(), strings.Join(args, " "), lang)
		if err != nil {
			return err
		}
		if p == nil {
			fmt.Fprintln(os.Stderr, "No matching article.")
			return nil
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		}

		fmt.Printf("%s (%s)\n\n%s\n\n%s\n", p.Title, p.Source, p.Extract, p.URL)
		return nil
	},
}

func init() {
	panelCmd.Flags().String("lang", "", "encyclopedia language (default: configured)")
	panelCmd.Flags().Bool("json", false, "output the panel as JSON")

	rootCmd.AddCommand(panelCmd)
}
