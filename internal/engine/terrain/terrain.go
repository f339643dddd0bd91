package terrain

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Terrain generates a heightfield and owns the geomipmapped mesh built on it.
type Terrain struct {
	cfg     Config
	rng     *rand.Rand
	log     *zap.Logger
	heights *HeightField
	mesh    *Mesh
}

// Option configures a Terrain.
type Option func(*Terrain)

// WithRand makes every Init draw from rng instead of a fresh source.
func WithRand(rng *rand.Rand) Option {
	return func(t *Terrain) {
		t.rng = rng
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(log *zap.Logger) Option {
	return func(t *Terrain) {
		t.log = log
	}
}

// New validates cfg and returns an uninitialized terrain.
func New(cfg Config, opts ...Option) (*Terrain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Textures = append([]string(nil), cfg.Textures...)

	t := &Terrain{
		cfg: cfg,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Init generates the heightfield and builds the mesh. Calling it again
// regenerates the terrain; with a non-zero Config.Seed the result is identical.
func (t *Terrain) Init() error {
	start := time.Now()

	hf := NewGenerator(t.source()).Generate(t.cfg.TerrainSize, t.cfg.Roughness, t.cfg.MinHeight, t.cfg.MaxHeight)

	mesh := &Mesh{}
	if err := mesh.BuildOnce(hf, t.cfg); err != nil {
		return fmt.Errorf("building terrain mesh: %w", err)
	}
	t.heights = hf
	t.mesh = mesh

	px, pz := mesh.NumPatches()
	t.log.Info("terrain initialized",
		zap.Int("size", t.cfg.TerrainSize),
		zap.Int("patchSize", t.cfg.PatchSize),
		zap.Int("patches", px*pz),
		zap.Int("maxLOD", mesh.Mesher().MaxLOD()),
		zap.Int("vertices", len(mesh.Vertices())),
		zap.Int("indices", len(mesh.Indices())),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// source returns the random source for one generation run.
func (t *Terrain) source() *rand.Rand {
	if t.rng != nil {
		return t.rng
	}
	seed := t.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	t.log.Debug("terrain seed", zap.Int64("seed", seed))
	return rand.New(rand.NewSource(seed))
}

// Draw updates patch levels for the camera and issues one draw per patch.
func (t *Terrain) Draw(backend DrawBackend, cameraPos mgl32.Vec3) {
	if t.mesh == nil {
		return
	}
	t.mesh.RenderFrame(backend, cameraPos)
}

// DrawCurrent issues the draws of the last Draw without updating levels.
func (t *Terrain) DrawCurrent(backend DrawBackend) {
	if t.mesh == nil {
		return
	}
	t.mesh.DrawCurrent(backend)
}

// GetHeight returns the height at grid coordinate (x, z).
func (t *Terrain) GetHeight(x, z int) float32 {
	if t.heights == nil {
		return 0
	}
	return t.heights.Get(x, z)
}

// HeightAt returns the interpolated height under a world-space position.
func (t *Terrain) HeightAt(worldX, worldZ float32) float32 {
	if t.heights == nil {
		return 0
	}
	return t.heights.Sample(worldX/t.cfg.WorldScale, worldZ/t.cfg.WorldScale)
}

// GetWorldScale returns the spacing between grid vertices in world units.
func (t *Terrain) GetWorldScale() float32 {
	return t.cfg.WorldScale
}

// GetTextureScale returns the texture repetition factor.
func (t *Terrain) GetTextureScale() float32 {
	return t.cfg.TextureScale
}

// GetSize returns the grid edge length in vertices.
func (t *Terrain) GetSize() int {
	return t.cfg.TerrainSize
}

// Config returns the terrain configuration.
func (t *Terrain) Config() Config {
	return t.cfg
}

// HeightField returns the generated field, or nil before Init.
func (t *Terrain) HeightField() *HeightField {
	return t.heights
}

// Mesh returns the built mesh, or nil before Init.
func (t *Terrain) Mesh() *Mesh {
	return t.mesh
}

// Center returns a camera target above the middle of the terrain.
func (t *Terrain) Center() (mgl32.Vec3, error) {
	if t.mesh == nil {
		return mgl32.Vec3{}, ErrNotInitialized
	}
	c := t.mesh.Center()
	c[1] *= 1.2
	return c, nil
}

// Bounds returns the terrain bounding box.
func (t *Terrain) Bounds() (Bounds, error) {
	if t.mesh == nil {
		return Bounds{}, ErrNotInitialized
	}
	return t.mesh.Bounds(), nil
}

// PatchLod returns the level descriptor last computed for a patch.
func (t *Terrain) PatchLod(px, pz int) (PatchLod, error) {
	if t.mesh == nil {
		return PatchLod{}, ErrNotInitialized
	}
	return t.mesh.Selector().PatchLod(px, pz), nil
}

// PatchAtWorld returns the patch under a world-space position.
func (t *Terrain) PatchAtWorld(worldX, worldZ float32) (px, pz int, ok bool) {
	if t.mesh == nil || worldX < 0 || worldZ < 0 {
		return 0, 0, false
	}
	span := float32(t.cfg.PatchSize-1) * t.cfg.WorldScale
	nx, nz := t.mesh.NumPatches()
	px, pz = int(worldX/span), int(worldZ/span)

	// The far border belongs to the last patch.
	if worldX == float32(nx)*span {
		px = nx - 1
	}
	if worldZ == float32(nz)*span {
		pz = nz - 1
	}
	if px >= nx || pz >= nz {
		return 0, 0, false
	}
	return px, pz, true
}
