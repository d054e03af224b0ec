package scene

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-spheres/common"
	"github.com/Carmen-Shannon/oxy-spheres/engine/camera"
	"github.com/Carmen-Shannon/oxy-spheres/engine/input"
	"github.com/Carmen-Shannon/oxy-spheres/engine/model"
	"github.com/Carmen-Shannon/oxy-spheres/engine/renderer"
	"github.com/Carmen-Shannon/oxy-spheres/engine/renderer/buffer_set"
	"github.com/Carmen-Shannon/oxy-spheres/engine/renderer/pipeline"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBuffer struct{ released bool }

func (b *fakeBuffer) Release() { b.released = true }

// fakeRenderer implements the parts of renderer.Renderer a scene uses.
type fakeRenderer struct {
	renderer.Renderer

	registered []string
	initErr    error
	uploads    []string
	projection mgl32.Mat4
	modelView  mgl32.Mat4
	draws      []string
	sizes      [][2]int
}

func (f *fakeRenderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		f.registered = append(f.registered, p.PipelineKey())
	}
	return nil
}

func (f *fakeRenderer) InitBufferSet(set buffer_set.BufferSet, mesh renderer.MeshData) error {
	if f.initErr != nil && len(f.uploads) == 2 {
		return f.initErr
	}
	f.uploads = append(f.uploads, set.Label())
	set.SetPositionBuffer(&fakeBuffer{})
	set.SetColorBuffer(&fakeBuffer{})
	set.SetIndexBuffer(&fakeBuffer{})
	set.SetIndexCount(mesh.IndexCount())
	return nil
}

func (f *fakeRenderer) SetTransforms(projection, modelView mgl32.Mat4) {
	f.projection = projection
	f.modelView = modelView
}

func (f *fakeRenderer) DrawCall(key string, set buffer_set.BufferSet) error {
	if key != DefaultPipelineKey {
		return renderer.ErrPipelineNotFound
	}
	f.draws = append(f.draws, set.Label())
	return nil
}

func (f *fakeRenderer) Resize(width, height int) {
	f.sizes = append(f.sizes, [2]int{width, height})
}

func threeSpheres() []model.Descriptor {
	return []model.Descriptor{
		{Offset: [3]float32{-50, 0, 0}, Radius: 10, ID: 0},
		{Offset: [3]float32{0, 0, 0}, Radius: 10, ID: 1},
		{Offset: [3]float32{50, 0, 0}, Radius: 10, ID: 2},
	}
}

func TestNewScenePanicsWithoutRenderer(t *testing.T) {
	assert.Panics(t, func() {
		NewScene("field", nil, nil, nil)
	})
}

func TestBuildUploadsOneSetPerSphere(t *testing.T) {
	r := &fakeRenderer{}
	s := NewScene("field", r, nil, nil, WithDescriptors(threeSpheres()...), WithWorkers(2))

	require.NoError(t, s.Build())
	assert.Equal(t, []string{"sphere-0", "sphere-1", "sphere-2"}, r.uploads)

	models := s.Models()
	require.Len(t, models, 3)
	for i, m := range models {
		assert.Equal(t, i, m.Descriptor().ID)
		assert.Equal(t, 121, m.VertexCount())
	}
	for _, set := range s.BufferSets() {
		assert.True(t, set.Initialized())
		assert.Equal(t, 600, set.IndexCount())
	}

	require.NoError(t, s.Build())
	assert.Len(t, r.uploads, 3)
}

func TestBuildRegistersPipeline(t *testing.T) {
	r := &fakeRenderer{}
	s := NewScene("field", r, nil, nil, WithDescriptors(threeSpheres()...), WithPipeline(pipeline.NewPipeline(DefaultPipelineKey)))

	require.NoError(t, s.Build())
	assert.Equal(t, []string{DefaultPipelineKey}, r.registered)
}

func TestBuildGenerationError(t *testing.T) {
	r := &fakeRenderer{}
	s := NewScene("field", r, nil, nil,
		WithDescriptors(threeSpheres()...),
		WithGenerator(model.NewGenerator(model.WithBands(0, 10))),
	)

	err := s.Build()
	assert.ErrorIs(t, err, model.ErrInvalidBands)
	assert.Empty(t, r.uploads)
	assert.ErrorIs(t, s.Render(), ErrNotBuilt)
}

func TestBuildUploadErrorReleasesSets(t *testing.T) {
	uploadErr := errors.New("out of memory")
	r := &fakeRenderer{initErr: uploadErr}
	s := NewScene("field", r, nil, nil, WithDescriptors(threeSpheres()...))

	assert.ErrorIs(t, s.Build(), uploadErr)
	assert.Empty(t, s.BufferSets())
}

func TestRenderDrawsEverySet(t *testing.T) {
	r := &fakeRenderer{}
	cam := camera.NewCamera()
	s := NewScene("field", r, input.NewController(), cam, WithDescriptors(threeSpheres()...))
	require.NoError(t, s.Build())

	require.NoError(t, s.Render())
	assert.Equal(t, []string{"sphere-0", "sphere-1", "sphere-2"}, r.draws)
	assert.Equal(t, cam.Projection(), r.projection)
	assert.Equal(t, mgl32.Translate3D(0, 0, -250), r.modelView)
}

func TestRenderFollowsController(t *testing.T) {
	r := &fakeRenderer{}
	ctrl := input.NewController()
	cam := camera.NewCamera()
	s := NewScene("field", r, ctrl, cam, WithDescriptors(threeSpheres()...))
	require.NoError(t, s.Build())

	ctrl.KeyDown(common.KeyX)
	ctrl.MouseMove(0, 0)
	ctrl.MouseMove(9000, 0)
	require.NoError(t, s.Render())

	assert.Equal(t, cam.ModelView(90, mgl32.Vec3{1, 0, 0}), r.modelView)
}

func TestRenderWithSmoother(t *testing.T) {
	r := &fakeRenderer{}
	ctrl := input.NewController(input.WithAngle(45))
	cam := camera.NewCamera()
	s := NewScene("field", r, ctrl, cam, WithDescriptors(threeSpheres()...), WithSmoother(input.NewSmoother(60, 6, 1)))
	require.NoError(t, s.Build())

	require.NoError(t, s.Render())
	assert.Equal(t, cam.ModelView(45, ctrl.Axis()), r.modelView)
}

func TestRenderJoinsDrawErrors(t *testing.T) {
	r := &fakeRenderer{}
	s := NewScene("field", r, nil, nil, WithDescriptors(threeSpheres()...), WithPipelineKey("other"))
	require.NoError(t, s.Build())

	err := s.Render()
	assert.ErrorIs(t, err, renderer.ErrPipelineNotFound)
	assert.Empty(t, r.draws)
}

func TestResize(t *testing.T) {
	r := &fakeRenderer{}
	cam := camera.NewCamera()
	s := NewScene("field", r, nil, cam)

	s.Resize(0, 100)
	s.Resize(800, 400)

	assert.Equal(t, [][2]int{{800, 400}}, r.sizes)
	assert.InDelta(t, 2.0, cam.Aspect(), 1e-6)
}

func TestRelease(t *testing.T) {
	r := &fakeRenderer{}
	s := NewScene("field", r, nil, nil, WithDescriptors(threeSpheres()...))
	require.NoError(t, s.Build())
	sets := s.BufferSets()

	s.Release()
	for _, set := range sets {
		assert.False(t, set.Initialized())
	}
	assert.Empty(t, s.BufferSets())
}

func TestDefaultDescriptors(t *testing.T) {
	ds := DefaultDescriptors()
	require.Len(t, ds, 15)
	for i, d := range ds {
		assert.Equal(t, 4*i, d.ID)
		assert.Equal(t, float32(20), d.Radius)
	}
	assert.Equal(t, 12, model.DefaultPalette.Index(ds[1].ID))
	assert.Equal(t, 3, model.DefaultPalette.Index(ds[2].ID))
	assert.Equal(t, [3]float32{-120, 60, 0}, ds[0].Offset)
	assert.Equal(t, [3]float32{120, -60, 0}, ds[14].Offset)
}
