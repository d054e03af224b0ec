package window

import (
	"errors"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrWindowUnavailable is returned by NewWindow when the platform window or its
// graphics context cannot be created.
var ErrWindowUnavailable = errors.New("window: unavailable")

// GraphicsAPI selects which client API context the window is created with.
type GraphicsAPI int

const (
	// GraphicsAPINone creates the window without a client API context. WebGPU renders
	// through a surface created from SurfaceDescriptor.
	GraphicsAPINone GraphicsAPI = iota

	// GraphicsAPIOpenGL creates an OpenGL 4.1 core profile context that is made current
	// on the calling thread.
	GraphicsAPIOpenGL
)

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetKeyDownCallback sets the callback for key press and key repeat events.
	//
	// Parameters:
	//   - callback: function receiving the key code (see common.KeyX and friends)
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetMouseMoveCallback sets the callback for mouse movement.
	// Coordinates are relative to the client area.
	//
	// Parameters:
	//   - callback: function receiving mouse x, y position, fractional on high-DPI displays
	SetMouseMoveCallback(callback func(x, y float32))

	// GraphicsAPI returns the client API the window was created with.
	//
	// Returns:
	//   - GraphicsAPI: GraphicsAPINone or GraphicsAPIOpenGL
	GraphicsAPI() GraphicsAPI

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// MakeContextCurrent makes the window's OpenGL context current on the calling thread.
	// It does nothing for GraphicsAPINone windows.
	MakeContextCurrent()

	// SwapBuffers swaps the front and back buffers of an OpenGL window.
	// It does nothing for GraphicsAPINone windows.
	SwapBuffers()

	// SetSwapInterval sets the number of vertical blanks to wait before swapping OpenGL buffers.
	//
	// Parameters:
	//   - interval: 1 for vsync, 0 for uncapped
	SetSwapInterval(interval int)

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// RequestClose asks the message loop to stop after the current iteration without
	// destroying the window, so graphics resources can still be released against it.
	RequestClose()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls OnUpdate callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	title string

	// size limits applied while resizing
	maxWidth, maxHeight int
	minWidth, minHeight int

	// current framebuffer size in pixels
	width, height int

	graphicsAPI GraphicsAPI

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate    func()
	onResize    func(width, height int)
	onKeyDown   func(keyCode uint32)
	onMouseMove func(x, y float32)
}

var _ Window = &engineWindow{}

// NewWindow creates and spawns a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
//   - error: an error wrapping ErrWindowUnavailable if the platform window or its context cannot be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "oxy-spheres",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  320,
		minHeight: 240,
		width:     640,
		height:    480,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y float32)) {
	w.onMouseMove = callback
}

func (w *engineWindow) GraphicsAPI() GraphicsAPI {
	return w.graphicsAPI
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) MakeContextCurrent() {
	if w.graphicsAPI == GraphicsAPIOpenGL {
		platformMakeContextCurrent(w)
	}
}

func (w *engineWindow) SwapBuffers() {
	if w.graphicsAPI == GraphicsAPIOpenGL {
		platformSwapBuffers(w)
	}
}

func (w *engineWindow) SetSwapInterval(interval int) {
	if w.graphicsAPI == GraphicsAPIOpenGL {
		platformSetSwapInterval(interval)
	}
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
