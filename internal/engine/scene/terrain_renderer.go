package scene

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/geomip/internal/engine/debug"
	"github.com/Faultbox/geomip/internal/engine/scene/shaders"
	"github.com/Faultbox/geomip/internal/engine/shader"
	"github.com/Faultbox/geomip/internal/engine/shadow"
	"github.com/Faultbox/geomip/internal/engine/terrain"
)

// Texture units used by the terrain shader.
const (
	shadowTextureUnit = terrain.MaxTextures
)

// TerrainParams are the per-frame inputs of the terrain pass.
type TerrainParams struct {
	ViewProj         mgl32.Mat4
	LightViewProj    mgl32.Mat4
	ReversedLightDir mgl32.Vec3
	Ambient          float32
	ShadowMap        *shadow.Map
	Shadows          bool
	LodTint          bool
}

// TerrainRenderer uploads a terrain mesh once and draws its patches with
// glDrawElementsBaseVertex. It is the terrain's DrawBackend.
type TerrainRenderer struct {
	program *shader.Program
	depth   *shader.Program

	vao uint32
	vbo uint32
	ebo uint32

	textures  [terrain.MaxTextures]uint32
	minHeight float32
	maxHeight float32

	// Set while drawing the color pass so each patch can pick its tint.
	mesh    *terrain.Mesh
	tinting bool
}

// NewTerrainRenderer compiles the terrain and depth programs.
func NewTerrainRenderer() (*TerrainRenderer, error) {
	program, err := shader.NewProgram(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}
	depth, err := shader.NewProgram(shaders.DepthVertexShader, shaders.DepthFragmentShader)
	if err != nil {
		program.Delete()
		return nil, fmt.Errorf("terrain depth shader: %w", err)
	}

	tr := &TerrainRenderer{program: program, depth: depth}

	program.Use()
	for i := int32(0); i < terrain.MaxTextures; i++ {
		program.SetInt(fmt.Sprintf("gTextureHeight%d", i), i)
	}
	program.SetInt("gShadowMap", shadowTextureUnit)
	gl.UseProgram(0)

	return tr, nil
}

// Upload replaces the GPU copy of the mesh and the height layer textures.
func (tr *TerrainRenderer) Upload(mesh *terrain.Mesh, cfg terrain.Config, layers []*image.RGBA) error {
	if mesh == nil || len(mesh.Vertices()) == 0 {
		return terrain.ErrNotInitialized
	}
	tr.clear()

	tr.uploadMesh(mesh.Vertices(), mesh.Indices())
	for i, img := range layers {
		if i >= len(tr.textures) {
			break
		}
		tr.textures[i] = uploadTexture(img)
	}
	tr.minHeight = cfg.MinHeight
	tr.maxHeight = cfg.MaxHeight
	tr.mesh = mesh
	return nil
}

func (tr *TerrainRenderer) uploadMesh(vertices []terrain.Vertex, indices []uint32) {
	gl.GenVertexArrays(1, &tr.vao)
	gl.BindVertexArray(tr.vao)

	gl.GenBuffers(1, &tr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	vertexSize := int(unsafe.Sizeof(terrain.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*vertexSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), unsafe.Offsetof(terrain.Vertex{}.Position))
	gl.EnableVertexAttribArray(0)

	// TexCoord (location 1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, int32(vertexSize), unsafe.Offsetof(terrain.Vertex{}.TexCoord))
	gl.EnableVertexAttribArray(1)

	// Normal (location 2)
	gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, int32(vertexSize), unsafe.Offsetof(terrain.Vertex{}.Normal))
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &tr.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tr.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
}

func uploadTexture(img *image.RGBA) uint32 {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))

	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, 8.0)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texID
}

// DrawIndexedBaseVertex draws one patch. Indices are offsets within the
// patch and baseVertex moves them to its place in the grid.
func (tr *TerrainRenderer) DrawIndexedBaseVertex(start, count, baseVertex int) {
	if tr.tinting && tr.mesh != nil {
		px, pz := tr.mesh.PatchAt(baseVertex)
		tr.program.SetVec3("gLodTint", debug.LodColorVec(tr.mesh.Selector().PatchLod(px, pz).Core))
	}
	gl.DrawElementsBaseVertex(gl.TRIANGLES, int32(count), gl.UNSIGNED_INT, gl.PtrOffset(start*4), int32(baseVertex))
}

// Render draws the terrain color pass. draw issues the patch draws, either
// updating levels for the camera or replaying the last ones.
func (tr *TerrainRenderer) Render(p TerrainParams, draw func(terrain.DrawBackend)) {
	if tr.vao == 0 {
		return
	}

	tr.program.Use()
	tr.program.SetMat4("gVP", p.ViewProj)
	tr.program.SetMat4("gLightVP", p.LightViewProj)
	tr.program.SetVec3("gReversedLightDir", p.ReversedLightDir)
	tr.program.SetFloat("gAmbient", p.Ambient)
	tr.program.SetFloat("gMinHeight", tr.minHeight)
	tr.program.SetFloat("gMaxHeight", tr.maxHeight)
	tr.program.SetBool("gLodTintEnabled", p.LodTint)

	shadows := p.Shadows && p.ShadowMap.IsValid()
	tr.program.SetBool("gShadowsEnabled", shadows)
	if shadows {
		p.ShadowMap.BindTexture(gl.TEXTURE0 + shadowTextureUnit)
	}

	for i, tex := range tr.textures {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.BindTexture(gl.TEXTURE_2D, tex)
	}

	gl.BindVertexArray(tr.vao)
	tr.tinting = p.LodTint
	draw(tr)
	tr.tinting = false
	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
}

// RenderShadow draws the terrain depth into the bound shadow map.
func (tr *TerrainRenderer) RenderShadow(lightViewProj mgl32.Mat4, draw func(terrain.DrawBackend)) {
	if tr.vao == 0 {
		return
	}

	tr.depth.Use()
	tr.depth.SetMat4("gLightVP", lightViewProj)

	gl.BindVertexArray(tr.vao)
	draw(tr)
	gl.BindVertexArray(0)
}

func (tr *TerrainRenderer) clear() {
	if tr.vao != 0 {
		gl.DeleteVertexArrays(1, &tr.vao)
		tr.vao = 0
	}
	if tr.vbo != 0 {
		gl.DeleteBuffers(1, &tr.vbo)
		tr.vbo = 0
	}
	if tr.ebo != 0 {
		gl.DeleteBuffers(1, &tr.ebo)
		tr.ebo = 0
	}
	for i, tex := range tr.textures {
		if tex != 0 {
			gl.DeleteTextures(1, &tex)
			tr.textures[i] = 0
		}
	}
	tr.mesh = nil
}

// Destroy releases all resources.
func (tr *TerrainRenderer) Destroy() {
	tr.clear()
	if tr.program != nil {
		tr.program.Delete()
		tr.program = nil
	}
	if tr.depth != nil {
		tr.depth.Delete()
		tr.depth = nil
	}
}
