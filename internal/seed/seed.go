// Package seed holds the fixed demonstration content written by the setup route.
package seed

import (
	_ "embed"
	"fmt"

	"github.com/fashion-digest/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var contentYAML []byte

// Content is the full set of sample rows
type Content struct {
	Articles []*models.Article `yaml:"articles"`
	Videos   []*models.Video   `yaml:"videos"`
}

// Load parses the embedded sample content. Every call returns fresh
// values, so callers may mutate the result (e.g. assign IDs).
func Load() (*Content, error) {
	return Parse(contentYAML)
}

// Parse decodes seed content from YAML. Titles must be present and unique
// per content type, mirroring the table constraints.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse seed content: %w", err)
	}

	articleTitles := make(map[string]bool, len(c.Articles))
	for i, a := range c.Articles {
		if a.Title == "" {
			return nil, fmt.Errorf("seed article %d: title is required", i)
		}
		if articleTitles[a.Title] {
			return nil, fmt.Errorf("seed article %d: duplicate title %q", i, a.Title)
		}
		articleTitles[a.Title] = true
	}
	videoTitles := make(map[string]bool, len(c.Videos))
	for i, v := range c.Videos {
		if v.Title == "" {
			return nil, fmt.Errorf("seed video %d: title is required", i)
		}
		if videoTitles[v.Title] {
			return nil, fmt.Errorf("seed video %d: duplicate title %q", i, v.Title)
		}
		videoTitles[v.Title] = true
	}
	return &c, nil
}
