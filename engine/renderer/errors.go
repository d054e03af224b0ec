package renderer

import (
	"errors"
	"fmt"
)

var (
	// ErrContextUnavailable is returned by NewRenderer when the graphics context cannot be created.
	ErrContextUnavailable = errors.New("renderer: graphics context unavailable")

	// ErrShaderCompile marks a ShaderError raised while compiling a shader stage.
	ErrShaderCompile = errors.New("renderer: shader compile failed")

	// ErrShaderLink marks a ShaderError raised while linking a program or creating a pipeline.
	ErrShaderLink = errors.New("renderer: shader link failed")

	// ErrPipelineNotFound is returned by DrawCall when no pipeline is registered under the key.
	ErrPipelineNotFound = errors.New("renderer: pipeline not found")

	// ErrBufferSetNotInitialized is returned by DrawCall for a set that was never uploaded.
	ErrBufferSetNotInitialized = errors.New("renderer: buffer set not initialized")
)

// ShaderError carries the diagnostic log of a failed shader stage.
// It unwraps to ErrShaderCompile or ErrShaderLink.
type ShaderError struct {
	// Stage is "vertex", "fragment" or "program".
	Stage string
	// Log is the backend's info log for the failure.
	Log string
	// Err is ErrShaderCompile or ErrShaderLink.
	Err error
}

func (e *ShaderError) Error() string {
	return fmt.Sprintf("%v: %s: %s", e.Err, e.Stage, e.Log)
}

func (e *ShaderError) Unwrap() error {
	return e.Err
}

func newCompileError(stage, log string) error {
	return &ShaderError{Stage: stage, Log: log, Err: ErrShaderCompile}
}

func newLinkError(log string) error {
	return &ShaderError{Stage: "program", Log: log, Err: ErrShaderLink}
}
