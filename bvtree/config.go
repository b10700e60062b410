package bvtree

import (
	"github.com/pkg/errors"
)

const (
	defaultMaxLeafSize  = 4
	defaultSplitQuality = 4
)

// Config controls static tree construction.
type Config struct {
	// MaxLeafSize is the largest number of primitives a leaf may hold before
	// the builder keeps splitting.
	MaxLeafSize int

	// SplitQuality controls how strongly the splitter favors spatially
	// balanced subtrees over equal-cardinality subtrees. Zero always splits
	// at the cardinality median; higher values accept increasingly lopsided
	// spatial-midpoint splits before falling back to the median.
	SplitQuality int
}

// DefaultConfig returns the build configuration used across the module.
func DefaultConfig() Config {
	return Config{MaxLeafSize: defaultMaxLeafSize, SplitQuality: defaultSplitQuality}
}

// Validate returns an error if the configuration cannot produce a tree.
func (c Config) Validate() error {
	if c.MaxLeafSize < 1 {
		return errors.Errorf("max leaf size must be at least 1, got %d", c.MaxLeafSize)
	}
	if c.SplitQuality < 0 {
		return errors.Errorf("split quality cannot be negative, got %d", c.SplitQuality)
	}
	return nil
}

// normalized substitutes defaults for zero values so the builder always has
// a usable configuration.
func (c Config) normalized() Config {
	if c.MaxLeafSize < 1 {
		c.MaxLeafSize = defaultMaxLeafSize
	}
	if c.SplitQuality < 0 {
		c.SplitQuality = defaultSplitQuality
	}
	return c
}
