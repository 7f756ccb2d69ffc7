// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/laurentftech/kidsearch/pkg/types"
)

// sourcesFile is the on-disk shape of the descriptor list.
type sourcesFile struct {
	Sources []types.Descriptor `json:"sources" yaml:"sources"`
}

// LoadDescriptors reads the secondary-source descriptor list from path.
// The file is parsed as YAML, which also accepts JSON. An empty path or a
// missing file falls back to the built-in encyclopedia sources.
func LoadDescriptors(path string) ([]types.Descriptor, error) {
	if path == "" {
		return DefaultDescriptors(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultDescriptors(), nil
		}
		return nil, fmt.Errorf("reading sources file %s: %w", path, err)
	}

	var f sourcesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing sources file %s: %w", path, err)
	}
	if len(f.Sources) == 0 {
		return DefaultDescriptors(), nil
	}
	return f.Sources, nil
}

// DefaultDescriptors returns the two built-in encyclopedia sources used
// when no configuration is supplied.
func DefaultDescriptors() []types.Descriptor {
	return []types.Descriptor{
		{
			ID:              "vikidia",
			Name:            "Vikidia",
			Type:            types.SourceMediaWiki,
			Weight:          0.5,
			APIURL:          "https://{lang}.vikidia.org/w/api.php",
			BaseURL:         "https://{lang}.vikidia.org",
			ArticlePath:     "/wiki/",
			FetchThumbnails: true,
			ThumbnailSize:   200,
			ResultsLimit:    5,
		},
		{
			ID:              "wikipedia",
			Name:            "Wikipedia",
			Type:            types.SourceMediaWiki,
			Weight:          0.5,
			APIURL:          "https://{lang}.wikipedia.org/w/api.php",
			BaseURL:         "https://{lang}.wikipedia.org",
			ArticlePath:     "/wiki/",
			FetchThumbnails: true,
			ThumbnailSize:   200,
			ResultsLimit:    5,
		},
	}
}
