// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/laurentftech/kidsearch/internal/suggest"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [prefix]",
	Short: "Print autocomplete suggestions for a prefix",
	Long: `Suggest prints the autocomplete entries matching a prefix. Without a
prefix it lists the languages the suggestion file covers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		p, err := suggest.Load(cfg.Suggest.File)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			for _, lang := range p.Languages() {
				fmt.Println(lang)
			}
			return nil
		}

		lang, _ := cmd.Flags().GetString("lang")
		if lang == "" {
			lang = cfg.Search.DefaultLanguage
		}
		if lang == "" {
			lang = "fr"
		}

		for _, s := range p.For(strings.Join(args, " "), lang) {
			fmt.Println(s)
		}
		return nil
	},
}

func init() {
	suggestCmd.Flags().String("lang", "", "suggestion language (default: configured)")

	rootCmd.AddCommand(suggestCmd)
}
