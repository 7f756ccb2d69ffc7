package engine

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/laurentftech/kidsearch/pkg/types"
)

func TestFormatTable(t *testing.T) {
	data := &types.SearchData{
		Items: []types.Result{
			{Title: "Dinosaure", Link: "https://fr.vikidia.org/wiki/Dinosaure", Source: "Vikidia", CalculatedWeight: 1.5},
			{Title: "Dinosaure - Wikipédia", Link: "https://fr.wikipedia.org/wiki/Dinosaure", CalculatedWeight: 1.0},
		},
		SearchInformation: types.SearchInformation{TotalResults: "1250"},
		HasMorePages:      true,
	}

	var buf bytes.Buffer
	FormatTable(data, &buf)
	s := buf.String()

	if !strings.Contains(s, "Vikidia") {
		t.Error("table should name the source")
	}
	if !strings.Contains(s, "Google") {
		t.Error("unlabeled results should show the primary label")
	}
	if !strings.Contains(s, "2 results") {
		t.Error("table should count results")
	}
	if !strings.Contains(s, "more pages available") {
		t.Error("table should mention pagination")
	}
}

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(&types.SearchData{}, &buf)
	if !strings.Contains(buf.String(), "No results") {
		t.Error("empty output should say 'No results'")
	}
}

func TestFormatJSON(t *testing.T) {
	data := &types.SearchData{
		Items: []types.Result{{Title: "Dinosaure", Link: "https://fr.vikidia.org/wiki/Dinosaure"}},
	}

	var buf bytes.Buffer
	if err := FormatJSON(data, &buf); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}

	var parsed types.SearchData
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(parsed.Items) != 1 || parsed.Items[0].Title != "Dinosaure" {
		t.Errorf("parsed = %+v", parsed)
	}
}
