package renderer

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-spheres/engine/renderer/buffer_set"
	"github.com/Carmen-Shannon/oxy-spheres/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-spheres/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-spheres/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Attribute and uniform names the OpenGL program must declare.
const (
	AttribVertexPosition   = "aVertexPosition"
	AttribVertexColor      = "aVertexColor"
	UniformProjection      = "uProjectionMatrix"
	UniformModelViewMatrix = "uModelViewMatrix"
)

// Components per vertex in the uploaded buffers: positions are packed vec3, colors packed RGBA.
// A shader may declare the attributes wider (vec4 positions); GL fills the missing w with 1.
const (
	positionComponents int32 = 3
	colorComponents    int32 = 4
)

type glRendererBackend struct {
	mu  *sync.Mutex
	win window.Window

	clearColor  ClearColor
	presentMode PresentMode

	projection mgl32.Mat4
	modelView  mgl32.Mat4

	inFrame bool
}

// glProgram is the handle stored on a pipeline registered with the OpenGL backend.
type glProgram struct {
	id uint32
	// vao records the attribute bindings; it is rebound to each set's buffers per draw
	vao uint32

	positionLoc   uint32
	colorLoc      uint32
	positionComps int32
	colorComps    int32

	projectionLoc int32
	modelViewLoc  int32

	depthTest  bool
	depthWrite bool
	depthFunc  uint32
}

func (p *glProgram) Release() {
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
		p.vao = 0
	}
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// glBuffer is a buffer object name stored on a BufferSet.
type glBuffer struct {
	id uint32
}

func (b *glBuffer) Release() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}

var _ RendererBackend = &glRendererBackend{}

func newGLRendererBackend(win window.Window, clearColor ClearColor) (*glRendererBackend, error) {
	if win == nil || win.GraphicsAPI() != window.GraphicsAPIOpenGL {
		return nil, fmt.Errorf("%w: window has no OpenGL context", ErrContextUnavailable)
	}
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContextUnavailable, err)
	}

	b := &glRendererBackend{
		mu:          &sync.Mutex{},
		win:         win,
		clearColor:  clearColor,
		presentMode: PresentModeVSync,
		projection:  mgl32.Ident4(),
		modelView:   mgl32.Ident4(),
	}

	gl.ClearColor(float32(clearColor[0]), float32(clearColor[1]), float32(clearColor[2]), float32(clearColor[3]))
	gl.ClearDepth(1)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	return b, nil
}

func (b *glRendererBackend) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (b *glRendererBackend) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.presentMode = mode
	if mode == PresentModeUncapped {
		b.win.SetSwapInterval(0)
		return
	}
	b.win.SetSwapInterval(1)
}

func (b *glRendererBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	vertexShader := p.Shader(shader.ShaderTypeVertex)
	fragmentShader := p.Shader(shader.ShaderTypeFragment)
	if vertexShader == nil || fragmentShader == nil {
		return errors.New("both vertex and fragment shaders must be set to create a render pipeline")
	}
	if p.Language() != shader.LanguageGLSL {
		return fmt.Errorf("OpenGL pipelines need GLSL shaders, got %s", p.Language())
	}

	vs, err := compileShader(vertexShader.Source(), gl.VERTEX_SHADER, vertexShader.ShaderType().String())
	if err != nil {
		return err
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(fragmentShader.Source(), gl.FRAGMENT_SHADER, fragmentShader.ShaderType().String())
	if err != nil {
		return err
	}
	defer gl.DeleteShader(fs)

	id, err := linkProgram(vs, fs)
	if err != nil {
		return err
	}

	prog := &glProgram{
		id:         id,
		depthTest:  p.DepthTestEnabled(),
		depthWrite: p.DepthWriteEnabled(),
		depthFunc:  glDepthFunc(p),
	}
	if err := prog.lookupLocations(vertexShader); err != nil {
		prog.Release()
		return err
	}
	gl.GenVertexArrays(1, &prog.vao)

	p.SetHandle(prog)
	return nil
}

// lookupLocations resolves the attribute and uniform locations the program is drawn with.
// Attribute sizes come from the buffer layout, not from the shader declaration.
func (p *glProgram) lookupLocations(vertexShader shader.Shader) error {
	var missing []string

	attrib := func(name string) uint32 {
		loc := gl.GetAttribLocation(p.id, gl.Str(name+"\x00"))
		if _, declared := vertexShader.Attribute(name); loc < 0 || !declared {
			missing = append(missing, name)
			return 0
		}
		return uint32(loc)
	}
	uniform := func(name string) int32 {
		loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
		if loc < 0 {
			missing = append(missing, name)
		}
		return loc
	}

	p.positionLoc = attrib(AttribVertexPosition)
	p.colorLoc = attrib(AttribVertexColor)
	p.positionComps, p.colorComps = positionComponents, colorComponents
	p.projectionLoc = uniform(UniformProjection)
	p.modelViewLoc = uniform(UniformModelViewMatrix)

	if len(missing) > 0 {
		return newLinkError("program does not declare " + strings.Join(missing, ", "))
	}
	return nil
}

// glDepthFunc maps the pipeline's depth comparison onto the GL enum.
func glDepthFunc(p pipeline.Pipeline) uint32 {
	switch p.DepthCompare() {
	case wgpu.CompareFunctionNever:
		return gl.NEVER
	case wgpu.CompareFunctionLess:
		return gl.LESS
	case wgpu.CompareFunctionEqual:
		return gl.EQUAL
	case wgpu.CompareFunctionGreater:
		return gl.GREATER
	case wgpu.CompareFunctionNotEqual:
		return gl.NOTEQUAL
	case wgpu.CompareFunctionGreaterEqual:
		return gl.GEQUAL
	case wgpu.CompareFunctionAlways:
		return gl.ALWAYS
	default:
		return gl.LEQUAL
	}
}

func compileShader(source string, shaderType uint32, stage string) (uint32, error) {
	id := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csources, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)

		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(id, logLength, nil, gl.Str(infoLog))
		gl.DeleteShader(id)

		return 0, newCompileError(stage, strings.TrimRight(infoLog, "\x00"))
	}
	return id, nil
}

func linkProgram(vs, fs uint32) (uint32, error) {
	id := gl.CreateProgram()
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)

		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(id, logLength, nil, gl.Str(infoLog))
		gl.DeleteProgram(id)

		return 0, newLinkError(strings.TrimRight(infoLog, "\x00"))
	}
	gl.DetachShader(id, vs)
	gl.DetachShader(id, fs)
	return id, nil
}

func (b *glRendererBackend) InitBufferSet(set buffer_set.BufferSet, positions, colors, indices []byte, indexCount int) error {
	if len(positions) == 0 || len(colors) == 0 || len(indices) == 0 {
		return fmt.Errorf("%s: empty mesh data", set.Label())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	set.SetPositionBuffer(createGLBuffer(gl.ARRAY_BUFFER, positions))
	set.SetColorBuffer(createGLBuffer(gl.ARRAY_BUFFER, colors))
	set.SetIndexBuffer(createGLBuffer(gl.ELEMENT_ARRAY_BUFFER, indices))
	set.SetIndexCount(indexCount)
	return nil
}

func createGLBuffer(target uint32, data []byte) *glBuffer {
	buf := &glBuffer{}
	gl.GenBuffers(1, &buf.id)
	gl.BindBuffer(target, buf.id)
	gl.BufferData(target, len(data), gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(target, 0)
	return buf
}

// WriteTransforms only stores the matrices; uniforms are program state and are set per draw.
func (b *glRendererBackend) WriteTransforms(projection, modelView mgl32.Mat4) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.projection = projection
	b.modelView = modelView
}

func (b *glRendererBackend) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.inFrame = true
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	return nil
}

func (b *glRendererBackend) DrawCall(p pipeline.Pipeline, set buffer_set.BufferSet) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.inFrame {
		return
	}
	prog, ok := p.Handle().(*glProgram)
	if !ok || prog.id == 0 {
		return
	}
	pos, okPos := set.PositionBuffer().(*glBuffer)
	col, okCol := set.ColorBuffer().(*glBuffer)
	idx, okIdx := set.IndexBuffer().(*glBuffer)
	if !okPos || !okCol || !okIdx {
		return
	}

	if prog.depthTest {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(prog.depthFunc)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.DepthMask(prog.depthWrite)

	gl.UseProgram(prog.id)
	gl.BindVertexArray(prog.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, pos.id)
	gl.VertexAttribPointer(prog.positionLoc, prog.positionComps, gl.FLOAT, false, 0, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(prog.positionLoc)

	gl.BindBuffer(gl.ARRAY_BUFFER, col.id)
	gl.VertexAttribPointer(prog.colorLoc, prog.colorComps, gl.FLOAT, false, 0, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(prog.colorLoc)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, idx.id)

	gl.UniformMatrix4fv(prog.projectionLoc, 1, false, &b.projection[0])
	gl.UniformMatrix4fv(prog.modelViewLoc, 1, false, &b.modelView[0])

	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(set.IndexCount()), gl.UNSIGNED_SHORT, 0)
}

func (b *glRendererBackend) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.inFrame {
		return
	}
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.Flush()
}

func (b *glRendererBackend) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.inFrame {
		return
	}
	b.inFrame = false
	b.win.SwapBuffers()
}

func (b *glRendererBackend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inFrame = false
}
