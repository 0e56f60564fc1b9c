// pkg/core/pass.go
package core

import (
	"errors"
	"fmt"
)

// PassCategory is the label the classifier attaches to every event row.
type PassCategory string

const (
	PassProgressive PassCategory = "progressive"
	PassNormal      PassCategory = "normal"
	PassBackwards   PassCategory = "backwards"
	PassUnknown     PassCategory = "unknown"
	PassNonPass     PassCategory = "non_pass"
)

// PassCategories lists every category in reporting order.
var PassCategories = []PassCategory{
	PassProgressive,
	PassNormal,
	PassBackwards,
	PassUnknown,
	PassNonPass,
}

// String returns the label as written to the pass_category column.
func (c PassCategory) String() string {
	return string(c)
}

// ParsePassCategory converts a pass_category value back into a PassCategory.
func ParsePassCategory(s string) (PassCategory, error) {
	for _, c := range PassCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown pass category %q", s)
}

// LengthBucket groups pass distances for color coding.
type LengthBucket string

const (
	BucketShort  LengthBucket = "short"
	BucketMedium LengthBucket = "medium"
	BucketLong   LengthBucket = "long"
)

// ErrInvalidColorMap is returned when a color map does not cover every bucket.
var ErrInvalidColorMap = errors.New("invalid color map")

// ColorMap assigns a drawing color to each length bucket.
// Colors are any value understood by SVG (names, #rrggbb, rgb()).
type ColorMap struct {
	Short  string `json:"short" mapstructure:"short"`
	Medium string `json:"medium" mapstructure:"medium"`
	Long   string `json:"long" mapstructure:"long"`
}

// Validate checks that every bucket has a color.
func (m ColorMap) Validate() error {
	switch {
	case m.Short == "":
		return fmt.Errorf("%w: missing color for %q", ErrInvalidColorMap, BucketShort)
	case m.Medium == "":
		return fmt.Errorf("%w: missing color for %q", ErrInvalidColorMap, BucketMedium)
	case m.Long == "":
		return fmt.Errorf("%w: missing color for %q", ErrInvalidColorMap, BucketLong)
	}
	return nil
}

// For returns the color assigned to bucket.
func (m ColorMap) For(bucket LengthBucket) string {
	switch bucket {
	case BucketShort:
		return m.Short
	case BucketMedium:
		return m.Medium
	default:
		return m.Long
	}
}
