package scene

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-spheres/engine/camera"
	"github.com/Carmen-Shannon/oxy-spheres/engine/input"
	"github.com/Carmen-Shannon/oxy-spheres/engine/model"
	"github.com/Carmen-Shannon/oxy-spheres/engine/renderer"
	"github.com/Carmen-Shannon/oxy-spheres/engine/renderer/buffer_set"
	"github.com/Carmen-Shannon/oxy-spheres/engine/renderer/pipeline"
)

// DefaultPipelineKey is the pipeline key spheres are drawn with unless WithPipeline overrides it.
const DefaultPipelineKey = "spheres"

// ErrNotBuilt is returned by Render when Build has not completed.
var ErrNotBuilt = errors.New("scene: not built")

// Scene owns the sphere field and everything needed to draw it: the generated models, their
// BufferSets, the camera and the input controller whose rotation state is read each frame.
// It replaces process-wide globals with one explicit context driven by the engine.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Build generates every sphere mesh and uploads it into its own BufferSet. Meshes are
	// generated on a worker pool; uploads happen on the calling goroutine. Build registers
	// the scene's pipeline first when one was supplied with WithPipeline. Calling Build
	// again after success is a no-op.
	//
	// Returns:
	//   - error: the first generation, registration or upload failure
	Build() error

	// Render stages the frame's transforms and issues one draw per BufferSet.
	// Must be called between Renderer.BeginFrame and Renderer.EndFrame.
	//
	// Returns:
	//   - error: ErrNotBuilt, or the joined draw call errors
	Render() error

	// Resize updates the camera aspect ratio and the renderer surface. Zero sizes are ignored.
	//
	// Parameters:
	//   - width: the new framebuffer width in pixels
	//   - height: the new framebuffer height in pixels
	Resize(width, height int)

	// Models returns the generated models in descriptor order, empty before Build.
	Models() []model.Model

	// BufferSets returns the uploaded sets in descriptor order, empty before Build.
	BufferSets() []buffer_set.BufferSet

	// Descriptors returns the spheres this scene draws.
	Descriptors() []model.Descriptor

	// Camera returns the scene camera.
	Camera() camera.Camera

	// Controller returns the input controller the scene reads rotation state from.
	Controller() input.Controller

	// Renderer returns the renderer the scene draws with.
	Renderer() renderer.Renderer

	// Release frees every BufferSet. The renderer is owned by the caller.
	Release()
}

type scene struct {
	mu *sync.Mutex

	name       string
	r          renderer.Renderer
	controller input.Controller
	cam        camera.Camera
	generator  model.Generator
	smoother   *input.Smoother

	pipelineKey string
	pipeline    pipeline.Pipeline

	descriptors []model.Descriptor
	models      []model.Model
	sets        []buffer_set.BufferSet
	built       bool

	workers int
}

var _ Scene = &scene{}

// NewScene creates a Scene drawing DefaultDescriptors with a 10x10 band generator.
// Panics if r is nil. A nil controller or camera is replaced with the defaults.
//
// Parameters:
//   - name: the name of the scene
//   - r: the renderer to draw with (must not be nil)
//   - controller: the input controller supplying rotation state
//   - cam: the camera supplying projection and model-view
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, r renderer.Renderer, controller input.Controller, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}
	if controller == nil {
		controller = input.NewController()
	}
	if cam == nil {
		cam = camera.NewCamera()
	}

	s := &scene{
		mu:          &sync.Mutex{},
		name:        name,
		r:           r,
		controller:  controller,
		cam:         cam,
		generator:   model.NewGenerator(),
		pipelineKey: DefaultPipelineKey,
		descriptors: DefaultDescriptors(),
		workers:     max(runtime.NumCPU()-1, 1),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Build() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.built {
		return nil
	}
	if s.pipeline != nil {
		if err := s.r.RegisterPipelines(s.pipeline); err != nil {
			return err
		}
	}

	start := time.Now()
	models, err := s.generate()
	if err != nil {
		return err
	}

	sets := make([]buffer_set.BufferSet, 0, len(models))
	for _, m := range models {
		set := buffer_set.NewBufferSet(m.Name())
		if err := s.r.InitBufferSet(set, m); err != nil {
			for _, created := range sets {
				created.Release()
			}
			set.Release()
			return err
		}
		sets = append(sets, set)
	}

	s.models = models
	s.sets = sets
	s.built = true
	log.Printf("[Scene] %s: built %d spheres in %s", s.name, len(sets), time.Since(start).Round(time.Microsecond))
	return nil
}

// generate runs Generate for every descriptor on a worker pool and returns the models in
// descriptor order.
func (s *scene) generate() ([]model.Model, error) {
	models := make([]model.Model, len(s.descriptors))
	errs := make([]error, len(s.descriptors))
	if len(s.descriptors) == 0 {
		return models, nil
	}

	pool := worker.NewDynamicWorkerPool(min(s.workers, len(s.descriptors)), len(s.descriptors), time.Second)

	// A WaitGroup is the barrier; the pool only idles its workers out after the timeout.
	var wg sync.WaitGroup
	for i, d := range s.descriptors {
		wg.Add(1)
		idx, desc := i, d
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				m, err := s.generator.Generate(desc)
				models[idx], errs[idx] = m, err
				return m, err
			},
		})
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("generate sphere %d: %w", s.descriptors[i].ID, err)
		}
	}
	return models, nil
}

func (s *scene) Render() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.built {
		return ErrNotBuilt
	}

	angle := s.controller.AngleDegrees()
	if s.smoother != nil {
		angle = s.smoother.Step(angle)
	}
	s.r.SetTransforms(s.cam.Projection(), s.cam.ModelView(angle, s.controller.Axis()))

	var errs []error
	for _, set := range s.sets {
		if err := s.r.DrawCall(s.pipelineKey, set); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.cam.SetViewport(width, height)
	s.r.Resize(width, height)
}

func (s *scene) Models() []model.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Model(nil), s.models...)
}

func (s *scene) BufferSets() []buffer_set.BufferSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]buffer_set.BufferSet(nil), s.sets...)
}

func (s *scene) Descriptors() []model.Descriptor {
	return append([]model.Descriptor(nil), s.descriptors...)
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Controller() input.Controller {
	return s.controller
}

func (s *scene) Renderer() renderer.Renderer {
	return s.r
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, set := range s.sets {
		set.Release()
	}
	s.sets = nil
	s.models = nil
	s.built = false
}

// DefaultDescriptors returns the built-in field: a 5x3 grid of radius 20 spheres in the z = 0 plane
// in row-major order. Ids are the flat sphere list indices 0, 4, 8, ... as config.ParseSphereArray
// assigns them.
func DefaultDescriptors() []model.Descriptor {
	descriptors := make([]model.Descriptor, 0, 15)
	for row := 0; row < 3; row++ {
		for col := 0; col < 5; col++ {
			descriptors = append(descriptors, model.Descriptor{
				Offset: [3]float32{float32(col-2) * 60, float32(1-row) * 60, 0},
				Radius: 20,
				ID:     4 * len(descriptors),
			})
		}
	}
	return descriptors
}
