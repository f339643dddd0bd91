package terrain

import (
	"errors"
	"fmt"
)

// MaxTextures is the number of height-blended terrain layers.
const MaxTextures = 4

var (
	// ErrInvalidConfig is wrapped by every configuration validation failure.
	ErrInvalidConfig = errors.New("invalid terrain config")

	// ErrAlreadyBuilt is returned when a mesh is built a second time.
	ErrAlreadyBuilt = errors.New("terrain mesh already built")

	// ErrNotInitialized is returned by queries made before Init.
	ErrNotInitialized = errors.New("terrain not initialized")
)

// Config describes a terrain. It is treated as immutable once handed to New.
type Config struct {
	TerrainSize  int      // Grid edge length in vertices
	PatchSize    int      // Patch edge length in vertices (odd, PatchSize-1 a power of two)
	Roughness    float32  // Midpoint displacement roughness
	MinHeight    float32  // Lowest height after normalization
	MaxHeight    float32  // Highest height after normalization
	WorldScale   float32  // World units between adjacent grid vertices
	TextureScale float32  // Texture repetitions across the terrain
	Textures     []string // Up to MaxTextures layers, lowest first
	Seed         int64    // 0 picks a fresh seed per Init
}

// DefaultConfig returns a medium sized terrain.
func DefaultConfig() Config {
	return Config{
		TerrainSize:  513,
		PatchSize:    33,
		Roughness:    1.0,
		MinHeight:    0,
		MaxHeight:    300,
		WorldScale:   4.0,
		TextureScale: 4.0,
	}
}

// Validate checks the patch/terrain size relationship and value ranges.
func (c Config) Validate() error {
	if c.PatchSize < 3 {
		return fmt.Errorf("%w: minimum patch size is 3, got %d", ErrInvalidConfig, c.PatchSize)
	}
	if c.PatchSize%2 == 0 {
		return fmt.Errorf("%w: patch size must be odd, got %d", ErrInvalidConfig, c.PatchSize)
	}
	if !isPowerOfTwo(c.PatchSize - 1) {
		return fmt.Errorf("%w: patch size minus one must be a power of two, got %d", ErrInvalidConfig, c.PatchSize)
	}
	if c.TerrainSize < c.PatchSize {
		return fmt.Errorf("%w: terrain size %d is smaller than patch size %d", ErrInvalidConfig, c.TerrainSize, c.PatchSize)
	}
	if (c.TerrainSize-1)%(c.PatchSize-1) != 0 {
		return fmt.Errorf("%w: terrain size minus one (%d) must be divisible by patch size minus one (%d), try %d",
			ErrInvalidConfig, c.TerrainSize-1, c.PatchSize-1, RecommendedSize(c.TerrainSize, c.PatchSize))
	}
	if c.MaxHeight < c.MinHeight {
		return fmt.Errorf("%w: max height %.2f below min height %.2f", ErrInvalidConfig, c.MaxHeight, c.MinHeight)
	}
	if c.WorldScale <= 0 {
		return fmt.Errorf("%w: world scale must be positive, got %.2f", ErrInvalidConfig, c.WorldScale)
	}
	if len(c.Textures) > MaxTextures {
		return fmt.Errorf("%w: at most %d textures, got %d", ErrInvalidConfig, MaxTextures, len(c.Textures))
	}
	return nil
}

// NumPatches returns the number of patches along one edge of the terrain.
func (c Config) NumPatches() int {
	return (c.TerrainSize - 1) / (c.PatchSize - 1)
}

// RecommendedSize rounds terrainSize up to the nearest size that patchSize tiles.
func RecommendedSize(terrainSize, patchSize int) int {
	seg := patchSize - 1
	if seg <= 0 {
		return terrainSize
	}
	return ((terrainSize-1+seg-1)/seg)*seg + 1
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// nextPowerOfTwo returns the smallest power of two >= n.
func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
