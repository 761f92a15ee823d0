// Package quotefile loads quote corpus files for import.
//
// A quote file is a YAML, TOML, or JSON document with a top-level "quotes"
// list; the format is picked by file extension. Example (YAML):
//
//	quotes:
//	  - text: "The only way out is through."
//	    author: Robert Frost
//	    difficulty: medium
package quotefile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/quotegrid/cryptoseed/internal/model"
)

// File is a parsed quote corpus file.
type File struct {
	Quotes []Entry `yaml:"quotes" toml:"quotes" json:"quotes"`
}

// Entry is one quote in a corpus file.
type Entry struct {
	Text       string `yaml:"text" toml:"text" json:"text"`
	Author     string `yaml:"author" toml:"author" json:"author"`
	Difficulty string `yaml:"difficulty" toml:"difficulty" json:"difficulty"`
}

// Load reads and validates a quote file, returning model quotes.
// Entries with no difficulty default to medium.
func Load(path string) ([]model.Quote, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quote file: %w", err)
	}

	var file File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse yaml quote file: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse toml quote file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse json quote file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported quote file extension: %s (use .yaml, .toml, or .json)", filepath.Ext(path))
	}

	if len(file.Quotes) == 0 {
		return nil, fmt.Errorf("quote file has no quotes")
	}

	quotes := make([]model.Quote, 0, len(file.Quotes))
	for i, entry := range file.Quotes {
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			return nil, fmt.Errorf("quote %d has empty text", i+1)
		}

		difficulty := model.Difficulty(entry.Difficulty)
		if entry.Difficulty == "" {
			difficulty = model.DifficultyMedium
		}
		if !difficulty.IsValid() {
			return nil, fmt.Errorf("quote %d has invalid difficulty %q (valid: easy, medium, hard)", i+1, entry.Difficulty)
		}

		quotes = append(quotes, model.Quote{
			Text:       text,
			Author:     strings.TrimSpace(entry.Author),
			Difficulty: difficulty,
		})
	}

	return quotes, nil
}
