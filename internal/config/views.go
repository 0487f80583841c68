package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Views maps a table key ("orders", "shipments") to its initial view.
type Views map[string]View

// View is the initial engine state for one table.
//
// Example file:
//
//	orders:
//	  page_size: 20
//	  sort:
//	    column: kaufdatum
//	    desc: true
//	  hidden:
//	    - floating-col-fehler
type View struct {
	PageSize int      `yaml:"page_size"`
	Sort     *Sort    `yaml:"sort"`
	Hidden   []string `yaml:"hidden"`
}

// Sort is a single-column sort preset.
type Sort struct {
	Column string `yaml:"column"`
	Desc   bool   `yaml:"desc"`
}

// ViewsFromYAML parses and validates view presets from raw YAML bytes.
func ViewsFromYAML(data []byte) (Views, error) {
	var views Views
	if err := yaml.Unmarshal(data, &views); err != nil {
		return nil, fmt.Errorf("invalid views yaml: %w", err)
	}
	for key, v := range views {
		if v.PageSize < 0 {
			return nil, fmt.Errorf("views %s: page_size must be non-negative", key)
		}
		if v.Sort != nil && v.Sort.Column == "" {
			return nil, fmt.Errorf("views %s: sort.column is required", key)
		}
	}
	return views, nil
}

// LoadViews reads view presets from path. An empty path yields no presets.
func LoadViews(path string) (Views, error) {
	if path == "" {
		return Views{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read views file: %w", err)
	}
	return ViewsFromYAML(data)
}

// For returns the view for a table key, falling back to pageSize when
// the preset leaves it unset.
func (v Views) For(key string, pageSize int) View {
	view := v[key]
	if view.PageSize == 0 {
		view.PageSize = pageSize
	}
	return view
}
