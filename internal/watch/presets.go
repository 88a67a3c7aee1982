package watch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/seojun-dev/danwatch/internal/domain"
)

// Preset is one filter declared in the preset file, started
// automatically at boot so watches survive restarts without a manual
// /watch call for each.
type Preset struct {
	Location string `yaml:"location"`
	Keyword  string `yaml:"keyword"`
	MinPrice *int   `yaml:"min_price"`
	MaxPrice *int   `yaml:"max_price"`
}

type presetFile struct {
	Watches []Preset `yaml:"watches"`
}

// Filter converts the preset to its domain filter.
func (p Preset) Filter() domain.Filter {
	return domain.Filter{
		Location: p.Location,
		Keyword:  p.Keyword,
		MinPrice: p.MinPrice,
		MaxPrice: p.MaxPrice,
	}
}

// LoadPresets reads and parses the preset file.
func LoadPresets(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset file: %w", err)
	}

	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse preset file: %w", err)
	}

	for i, p := range file.Watches {
		if p.Location == "" || p.Keyword == "" {
			return nil, fmt.Errorf("preset %d: location and keyword are required", i)
		}
	}

	return file.Watches, nil
}
