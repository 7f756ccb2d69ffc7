// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/laurentftech/kidsearch/pkg/types"
)

// FormatTable writes one result page as a human-readable table to w.
func FormatTable(data *types.SearchData, w io.Writer) {
	if data == nil || len(data.Items) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-50s  %-30s  %-6s  %s\n",
		"Rank", "Title", "Link", "Score", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for i, r := range data.Items {
		source := r.Source
		if source == "" {
			source = "Google"
		}
		fmt.Fprintf(w, "%-4d  %-50s  %-30s  %-6.2f  %s\n",
			i+1, truncate(r.Title, 50), truncate(r.Link, 30), r.CalculatedWeight, source)
	}

	fmt.Fprintf(w, "\n%d results", len(data.Items))
	if data.SearchInformation.TotalResults != "" {
		fmt.Fprintf(w, " (about %s in total)", data.SearchInformation.TotalResults)
	}
	if data.HasMorePages {
		fmt.Fprint(w, ", more pages available")
	}
	fmt.Fprintln(w)
}

// FormatJSON writes one result page as indented JSON to w.
func FormatJSON(data *types.SearchData, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
