// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var quotaCmd = &cobra.Command{
	Use:   "quota",
	Short: "Show today's Google API usage and cache state",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp()
		if err != nil {
			return err
		}
		defer a.close()

		usage := a.engine.Quota()
		fmt.Printf("Used:      %d\n", usage.Used)
		fmt.Printf("Limit:     %d\n", usage.Limit)
		fmt.Printf("Remaining: %d\n", usage.Remaining)

		web, images := a.engine.CacheStats()
		fmt.Printf("Web cache:   %d/%d entries\n", web.Size, web.MaxSize)
		fmt.Printf("Image cache: %d/%d entries (enabled: %t)\n", images.Size, images.MaxSize, images.Enabled)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(quotaCmd)
}
