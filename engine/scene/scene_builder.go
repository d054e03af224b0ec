package scene

import (
	"github.com/Carmen-Shannon/oxy-spheres/engine/input"
	"github.com/Carmen-Shannon/oxy-spheres/engine/model"
	"github.com/Carmen-Shannon/oxy-spheres/engine/renderer/pipeline"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithDescriptors replaces the default sphere field. Descriptors are copied.
//
// Parameters:
//   - descriptors: the spheres to draw
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithDescriptors(descriptors ...model.Descriptor) SceneBuilderOption {
	return func(s *scene) {
		s.descriptors = append([]model.Descriptor(nil), descriptors...)
	}
}

// WithGenerator sets the generator used by Build.
//
// Parameters:
//   - g: the mesh generator
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithGenerator(g model.Generator) SceneBuilderOption {
	return func(s *scene) {
		if g != nil {
			s.generator = g
		}
	}
}

// WithWorkers sets the number of goroutines Build generates meshes on.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		s.workers = max(n, 1)
	}
}

// WithSmoother eases the rendered angle toward the controller's angle.
//
// Parameters:
//   - smoother: the spring smoother, nil disables smoothing
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSmoother(smoother *input.Smoother) SceneBuilderOption {
	return func(s *scene) {
		s.smoother = smoother
	}
}

// WithPipeline sets the pipeline the scene registers during Build and draws with.
//
// Parameters:
//   - p: the render pipeline
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPipeline(p pipeline.Pipeline) SceneBuilderOption {
	return func(s *scene) {
		if p == nil {
			return
		}
		s.pipeline = p
		s.pipelineKey = p.PipelineKey()
	}
}

// WithPipelineKey draws with an already registered pipeline.
//
// Parameters:
//   - key: the pipeline key
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPipelineKey(key string) SceneBuilderOption {
	return func(s *scene) {
		s.pipeline = nil
		s.pipelineKey = key
	}
}
