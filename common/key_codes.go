package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyX   = 88  // X key (ASCII), selects the X rotation axis
	KeyY   = 89  // Y key (ASCII), selects the Y rotation axis
	KeyZ   = 90  // Z key (ASCII), selects the Z rotation axis
	KeyEsc = 256 // Escape key (GLFW)
)
