package swirl

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestToggleSystem_SpaceFlipsWireframe(t *testing.T) {
	rs := &renderState{logger: NewNopLogger()}
	input := &Input{}
	input.JustPressed[KeySpace] = true

	toggleSystem(rs, input)
	assert.True(t, rs.wireframe)
	assert.Equal(t, ShapeRectangle, rs.shape, "Space must not touch the shape")

	toggleSystem(rs, input)
	assert.False(t, rs.wireframe)
	assert.Equal(t, ShapeRectangle, rs.shape)
}

func TestToggleSystem_TSwapsShapeBothWays(t *testing.T) {
	rs := &renderState{logger: NewNopLogger()}
	input := &Input{}
	input.JustPressed[KeyT] = true

	toggleSystem(rs, input)
	assert.Equal(t, ShapeCircle, rs.shape)
	assert.False(t, rs.wireframe, "T must not touch the fill mode")

	toggleSystem(rs, input)
	assert.Equal(t, ShapeRectangle, rs.shape)
	assert.False(t, rs.wireframe)
}

func TestToggleSystem_HeldKeysDoNothing(t *testing.T) {
	rs := &renderState{logger: NewNopLogger()}
	input := &Input{}
	input.Pressed[KeySpace] = true
	input.Pressed[KeyT] = true

	toggleSystem(rs, input)

	assert.False(t, rs.wireframe)
	assert.Equal(t, ShapeRectangle, rs.shape)
}

// Every pipeline carries a bind group built from its own layout; the draw
// must always pair the active pipeline with that pipeline's bind group,
// never one borrowed from another pipeline.
func TestRenderState_ActiveDrawPairsPipelineWithItsBindGroup(t *testing.T) {
	rs := &renderState{
		triangleIndexCount: 6,
		lineIndexCount:     8,
	}
	for shape := range rs.pipelines {
		for mode := range rs.pipelines[shape] {
			rs.pipelines[shape][mode] = &wgpu.RenderPipeline{}
			rs.bindGroups[shape][mode] = &wgpu.BindGroup{}
		}
	}

	for _, shape := range []Shape{ShapeRectangle, ShapeCircle} {
		for _, wireframe := range []bool{false, true} {
			rs.shape = shape
			rs.wireframe = wireframe

			mode := fillSolid
			expectedCount := uint32(6)
			if wireframe {
				mode = fillWire
				expectedCount = 8
			}

			pipeline, bindGroup, _, indexCount := rs.activeDraw()
			assert.Same(t, rs.pipelines[shape][mode], pipeline)
			assert.Same(t, rs.bindGroups[shape][mode], bindGroup)
			assert.Equal(t, expectedCount, indexCount)
		}
	}
}
