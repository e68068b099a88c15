// Package display implements the host's presentation adapter: it
// renders the machine's 64x32 framebuffer as an OpenGL textured quad.
package display

import (
	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/vm"
)

// Lit and unlit cell colors as RGBA components.
var (
	colorOff = [4]float32{0.04, 0.09, 0.11, 1}
	colorOn  = [4]float32{0.55, 0.92, 0.59, 1}
)

// Device defines all internal doodads for the display.
type Device struct {
	source      *vm.Display
	shader      uint32
	vao         uint32
	vbo         uint32
	tex         uint32
	initialized bool
}

var _ devices.Device = &Device{}

// New creates a new display reading from the given framebuffer.
func New(source *vm.Display) *Device {
	return &Device{source: source}
}

// ID returns the device identifier.
func (d *Device) ID() devices.ID {
	return devices.NewID(0x00c8, 0x0001)
}

// Startup compiles the shader and builds the texture and quad.
// It must be called on the thread owning the GL context.
func (d *Device) Startup() error {
	var err error

	d.shader, err = compileProgram(vertex, fragment)
	if err != nil {
		return errors.Wrapf(err, "failed to compile shaders")
	}

	gl.UseProgram(d.shader)

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertPos")))
	texCoordAttrib := uint32(gl.GetAttribLocation(d.shader, glStr("vertTexCoord")))

	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 3, gl.FLOAT, false, 5*4, gl.PtrOffset(0))

	gl.EnableVertexAttribArray(texCoordAttrib)
	gl.VertexAttribPointer(texCoordAttrib, 2, gl.FLOAT, false, 5*4, gl.PtrOffset(3*4))

	gl.Uniform4fv(gl.GetUniformLocation(d.shader, glStr("colorOff")), 1, &colorOff[0])
	gl.Uniform4fv(gl.GetUniformLocation(d.shader, glStr("colorOn")), 1, &colorOn[0])

	d.tex = makeTexture()
	d.initialized = true
	d.Swap()
	return nil
}

// Shutdown clears up device resources.
func (d *Device) Shutdown() error {
	if !d.initialized {
		return nil
	}
	d.initialized = false
	gl.DeleteTextures(1, &d.tex)
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteProgram(d.shader)
	return nil
}

// Swap uploads the current framebuffer contents to the texture.
func (d *Device) Swap() {
	if !d.initialized {
		return
	}
	uploadTexture(d.tex, gl.RED, vm.DisplayWidth, vm.DisplayHeight, gl.RED, gl.UNSIGNED_BYTE, d.source.Pixels())
}

// Draw renders the display contents.
func (d *Device) Draw() {
	if !d.initialized {
		return
	}

	gl.UseProgram(d.shader)
	gl.BindVertexArray(d.vao)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.tex)

	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

var quadVertices = []float32{
	//  X, Y, Z, U, V
	-1.0, -1.0, 0.0, 0.0, 1.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
	1.0, -1.0, 0.0, 1.0, 1.0,
	1.0, 1.0, 0.0, 1.0, 0.0,
	-1.0, 1.0, 0.0, 0.0, 0.0,
}
