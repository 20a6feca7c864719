// Package commit classifies commits: it associates them with issues and
// releases, groups them by release, label and path, and aggregates their
// authors.
package commit

import (
	"fmt"

	"github.com/jeffrom/ghlog/config"
)

// Dimension is an axis commits can be grouped by.
type Dimension int

const (
	_ Dimension = iota

	DimensionRelease
	DimensionLabel
	DimensionPath
)

// dimensionOrder is the order dimensions are attempted in, outermost first.
var dimensionOrder = []Dimension{DimensionRelease, DimensionLabel, DimensionPath}

func (d Dimension) String() string {
	switch d {
	case DimensionRelease:
		return config.GroupRelease
	case DimensionLabel:
		return config.GroupLabel
	case DimensionPath:
		return config.GroupPath
	case 0:
		return "<INVALID>"
	default:
		return "<UNKNOWN>"
	}
}

func DimensionFromString(s string) (Dimension, error) {
	switch s {
	case config.GroupRelease:
		return DimensionRelease, nil
	case config.GroupLabel:
		return DimensionLabel, nil
	case config.GroupPath:
		return DimensionPath, nil
	}
	return 0, fmt.Errorf("commit: unknown dimension %q", s)
}

// EnabledDimensions returns the dimensions named in cfg.GroupBy, in attempt
// order. Unknown names are skipped; Config.Validate reports them.
func EnabledDimensions(cfg config.Config) []Dimension {
	enabled := make(map[Dimension]bool, len(cfg.GroupBy))
	for _, name := range cfg.GroupBy {
		if d, err := DimensionFromString(name); err == nil {
			enabled[d] = true
		}
	}

	var dims []Dimension
	for _, d := range dimensionOrder {
		if enabled[d] {
			dims = append(dims, d)
		}
	}
	return dims
}
