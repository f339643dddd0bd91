package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/geomip/internal/engine/debug"
	"github.com/Faultbox/geomip/internal/engine/scene/shaders"
	"github.com/Faultbox/geomip/internal/engine/shader"
)

// LineRenderer draws colored debug lines such as the patch grid overlay.
type LineRenderer struct {
	program *shader.Program
	vao     uint32
	vbo     uint32
	count   int32
	capa    int
}

// NewLineRenderer compiles the line program and creates an empty buffer.
func NewLineRenderer() (*LineRenderer, error) {
	program, err := shader.NewProgram(shaders.LineVertexShader, shaders.LineFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("line shader: %w", err)
	}
	lr := &LineRenderer{program: program}

	gl.GenVertexArrays(1, &lr.vao)
	gl.BindVertexArray(lr.vao)
	gl.GenBuffers(1, &lr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, lr.vbo)

	stride := int32(unsafe.Sizeof(debug.LineVertex{}))
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return lr, nil
}

// Update replaces the line vertices. Pairs of vertices form one line.
func (lr *LineRenderer) Update(verts []debug.LineVertex) {
	lr.count = int32(len(verts))
	if len(verts) == 0 {
		return
	}

	size := len(verts) * int(unsafe.Sizeof(debug.LineVertex{}))
	gl.BindBuffer(gl.ARRAY_BUFFER, lr.vbo)
	if size > lr.capa {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&verts[0]), gl.DYNAMIC_DRAW)
		lr.capa = size
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&verts[0]))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Render draws the current lines.
func (lr *LineRenderer) Render(viewProj mgl32.Mat4) {
	if lr.count == 0 {
		return
	}
	lr.program.Use()
	lr.program.SetMat4("gVP", viewProj)

	gl.BindVertexArray(lr.vao)
	gl.DrawArrays(gl.LINES, 0, lr.count)
	gl.BindVertexArray(0)
}

// Destroy releases all resources.
func (lr *LineRenderer) Destroy() {
	if lr.vao != 0 {
		gl.DeleteVertexArrays(1, &lr.vao)
		lr.vao = 0
	}
	if lr.vbo != 0 {
		gl.DeleteBuffers(1, &lr.vbo)
		lr.vbo = 0
	}
	if lr.program != nil {
		lr.program.Delete()
		lr.program = nil
	}
}
