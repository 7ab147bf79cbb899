package swirl

import (
	"sort"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Shape selects which of the two pipelines draws the field.
type Shape int

const (
	ShapeRectangle Shape = iota
	ShapeCircle
)

func (s Shape) String() string {
	if s == ShapeCircle {
		return "circle"
	}
	return "rectangle"
}

type fillMode int

const (
	fillSolid fillMode = iota
	fillWire
)

// Vertex and instance layouts. Locations match the WGSL shaders; the
// instance structs step per instance, the wgpu analog of glVertexAttribDivisor.
type quadVertex struct {
	pos [2]float32 `swirl:"layout" location:"0" format:"float2"`
}

type instancePosition struct {
	pos [2]float32 `swirl:"layout" location:"1" format:"float2"`
}

type instanceTint struct {
	rgb [3]float32 `swirl:"layout" location:"2" format:"float3"`
}

type instanceModel struct {
	model [3]float32 `swirl:"layout" location:"3" format:"float3"` // scale.xy, rotation
}

type shapeUniforms struct {
	Projection mgl32.Mat4
	Resolution mgl32.Vec2
	Pad        mgl32.Vec2
}

type renderState struct {
	quadMeshId   AssetId
	rectShaderId AssetId
	circShaderId AssetId

	vertexBuffer        *wgpu.Buffer
	triangleIndexBuffer *wgpu.Buffer
	lineIndexBuffer     *wgpu.Buffer
	triangleIndexCount  uint32
	lineIndexCount      uint32

	positionBuffer *wgpu.Buffer
	tintBuffer     *wgpu.Buffer
	modelBuffer    *wgpu.Buffer
	instanceIds    []EntityId
	models         []instanceModel
	instanceCount  uint32

	uniformBuffer *wgpu.Buffer

	// [shape][fillMode]; a pipeline that failed to build stays nil and its
	// mode draws nothing. The pipelines use implicit layouts and the two
	// shaders differ in which stages read the uniform, so every pipeline
	// gets a bind group built from its own layout.
	pipelines  [2][2]*wgpu.RenderPipeline
	bindGroups [2][2]*wgpu.BindGroup

	shape      Shape
	wireframe  bool
	clearColor wgpu.Color

	logger Logger
}

// RendererModule owns the GPU state and the instanced draw of the shape
// field. It requires WindowModule and AssetServerModule to be installed
// first.
type RendererModule struct {
	ClearColor wgpu.Color
}

func (mod RendererModule) Install(app *App, cmd *Commands) {
	ws := resource[WindowState](app)
	if ws == nil {
		panic("RendererModule requires WindowModule")
	}
	assets := resource[AssetServer](app)
	if assets == nil {
		panic("RendererModule requires AssetServerModule")
	}
	logger := app.Logger()

	gpuState := createGpuState(ws)
	rs := createRenderState(ws, gpuState, assets, mod.ClearColor, logger)

	app.UseSystem(
		System(toggleSystem).
			InStage(Update),
	)
	app.UseSystem(
		System(prepareInstancesSystem).
			InStage(PreRender),
	)
	app.UseSystem(
		System(renderSystem).
			InStage(Render),
	)
	cmd.AddResources(gpuState, rs)
}

func createRenderState(ws *WindowState, gpuState *GpuState, assets *AssetServer, clearColor wgpu.Color, logger Logger) *renderState {
	// Unit quad; the shape shaders scale, rotate and place it per instance.
	quadMeshId := assets.AddMesh(MeshAsset{
		Vertices: []quadVertex{
			{pos: [2]float32{1, 1}},   // top right
			{pos: [2]float32{1, -1}},  // bottom right
			{pos: [2]float32{-1, -1}}, // bottom left
			{pos: [2]float32{-1, 1}},  // top left
		},
		TriangleIndices: []uint16{0, 1, 3, 1, 2, 3},
		LineIndices:     []uint16{0, 1, 1, 2, 2, 3, 3, 0},
	})
	rectShaderId := assets.AddShader(ShaderAsset{Name: "shape_rectangle", Listing: rectangleWGSL})
	circShaderId := assets.AddShader(ShaderAsset{Name: "shape_circle", Listing: circleWGSL})

	rs := &renderState{
		quadMeshId:   quadMeshId,
		rectShaderId: rectShaderId,
		circShaderId: circShaderId,
		clearColor:   clearColor,
		logger:       logger,
	}

	mesh, _ := assets.Mesh(quadMeshId)
	rs.vertexBuffer = createBuffer("quad vertices", wgpu.ToBytes(mesh.Vertices.([]quadVertex)), wgpu.BufferUsageVertex, gpuState)
	rs.triangleIndexBuffer = createBuffer("quad triangle indices", wgpu.ToBytes(mesh.TriangleIndices), wgpu.BufferUsageIndex, gpuState)
	rs.lineIndexBuffer = createBuffer("quad line indices", wgpu.ToBytes(mesh.LineIndices), wgpu.BufferUsageIndex, gpuState)
	rs.triangleIndexCount = uint32(len(mesh.TriangleIndices))
	rs.lineIndexCount = uint32(len(mesh.LineIndices))

	uniforms := shapeUniforms{
		Projection: mgl32.Ortho2D(-ws.Aspect(), ws.Aspect(), -1, 1),
		Resolution: mgl32.Vec2{float32(ws.WindowWidth), float32(ws.WindowHeight)},
	}
	rs.uniformBuffer = createBuffer("shape uniforms", toBufferBytes(uniforms), wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst, gpuState)

	layouts := []wgpu.VertexBufferLayout{
		vertexLayoutFor(quadVertex{}, wgpu.VertexStepModeVertex),
		vertexLayoutFor(instancePosition{}, wgpu.VertexStepModeInstance),
		vertexLayoutFor(instanceTint{}, wgpu.VertexStepModeInstance),
		vertexLayoutFor(instanceModel{}, wgpu.VertexStepModeInstance),
	}

	// Wireframe is a line-list pipeline over the outline indices; wgpu has
	// no polygon-mode switch.
	for _, build := range []struct {
		shape    Shape
		mode     fillMode
		name     string
		shaderId AssetId
		topology wgpu.PrimitiveTopology
	}{
		{ShapeRectangle, fillSolid, "rectangle", rectShaderId, wgpu.PrimitiveTopologyTriangleList},
		{ShapeRectangle, fillWire, "rectangle wire", rectShaderId, wgpu.PrimitiveTopologyLineList},
		{ShapeCircle, fillSolid, "circle", circShaderId, wgpu.PrimitiveTopologyTriangleList},
		{ShapeCircle, fillWire, "circle wire", circShaderId, wgpu.PrimitiveTopologyLineList},
	} {
		shader, _ := assets.Shader(build.shaderId)
		pipeline, err := createRenderPipeline(build.name, shader.Listing, build.topology, layouts, gpuState)
		if err != nil {
			// Report and keep going; the mode just won't draw.
			logger.Errorf("%v", err)
			continue
		}
		rs.pipelines[build.shape][build.mode] = pipeline

		layout := pipeline.GetBindGroupLayout(0)
		bindGroup, err := gpuState.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Layout: layout,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: rs.uniformBuffer, Size: wgpu.WholeSize},
			},
		})
		layout.Release()
		if err != nil {
			panic(err)
		}
		rs.bindGroups[build.shape][build.mode] = bindGroup
	}

	return rs
}

// activeDraw picks the pipeline for the current shape and fill mode, the
// bind group built from that pipeline's own layout, and the matching index
// buffer.
func (rs *renderState) activeDraw() (*wgpu.RenderPipeline, *wgpu.BindGroup, *wgpu.Buffer, uint32) {
	mode := fillSolid
	indexBuffer, indexCount := rs.triangleIndexBuffer, rs.triangleIndexCount
	if rs.wireframe {
		mode = fillWire
		indexBuffer, indexCount = rs.lineIndexBuffer, rs.lineIndexCount
	}
	return rs.pipelines[rs.shape][mode], rs.bindGroups[rs.shape][mode], indexBuffer, indexCount
}

// toggleSystem maps the two key presses to the two independent toggles.
func toggleSystem(rs *renderState, input *Input) {
	if input.JustPressed[KeySpace] {
		rs.wireframe = !rs.wireframe
		rs.logger.Debugf("Wireframe: %v", rs.wireframe)
	}
	if input.JustPressed[KeyT] {
		if rs.shape == ShapeRectangle {
			rs.shape = ShapeCircle
		} else {
			rs.shape = ShapeRectangle
		}
		rs.logger.Debugf("Shape: %v", rs.shape)
	}
}

// prepareInstancesSystem uploads the static per-instance buffers on the
// first frame with shapes present, then rewrites only the model buffer on
// every later frame. Instances are ordered by entity id so the static and
// per-frame buffers always line up.
func prepareInstancesSystem(rs *renderState, gpuState *GpuState, cmd *Commands) {
	if rs.positionBuffer == nil {
		count := MakeQuery2[Shape2D, Tint](cmd).Count()
		if count == 0 {
			return
		}

		rs.instanceIds = make([]EntityId, 0, count)
		MakeQuery2[Shape2D, Tint](cmd).Map(func(eid EntityId, shape *Shape2D, tint *Tint) bool {
			rs.instanceIds = append(rs.instanceIds, eid)
			return true
		})
		sort.Slice(rs.instanceIds, func(i, j int) bool { return rs.instanceIds[i] < rs.instanceIds[j] })

		positions := make([]instancePosition, count)
		tints := make([]instanceTint, count)
		rs.models = make([]instanceModel, count)
		rs.packInstances(cmd, positions, tints)

		rs.positionBuffer = createBuffer("instance positions", wgpu.ToBytes(positions), wgpu.BufferUsageVertex, gpuState)
		rs.tintBuffer = createBuffer("instance tints", wgpu.ToBytes(tints), wgpu.BufferUsageVertex, gpuState)
		rs.modelBuffer = createBuffer("instance models", wgpu.ToBytes(rs.models), wgpu.BufferUsageVertex|wgpu.BufferUsageCopyDst, gpuState)
		rs.instanceCount = uint32(count)
		rs.logger.Infof("Instance buffers created for %d shapes", count)
		return
	}

	rs.packInstances(cmd, nil, nil)
	if err := gpuState.queue.WriteBuffer(rs.modelBuffer, 0, wgpu.ToBytes(rs.models)); err != nil {
		panic(err)
	}
}

// packInstances fills rs.models (and optionally the static position/tint
// slices) in rs.instanceIds order.
func (rs *renderState) packInstances(cmd *Commands, positions []instancePosition, tints []instanceTint) {
	slot := make(map[EntityId]int, len(rs.instanceIds))
	for i, eid := range rs.instanceIds {
		slot[eid] = i
	}

	MakeQuery2[Shape2D, Tint](cmd).Map(func(eid EntityId, shape *Shape2D, tint *Tint) bool {
		i, ok := slot[eid]
		if !ok {
			return true
		}
		rs.models[i] = instanceModel{model: [3]float32{shape.Scale.X(), shape.Scale.Y(), shape.Rotation}}
		if positions != nil {
			positions[i] = instancePosition{pos: [2]float32{shape.Pos.X(), shape.Pos.Y()}}
		}
		if tints != nil {
			tints[i] = instanceTint{rgb: [3]float32{tint.RGB.X(), tint.RGB.Y(), tint.RGB.Z()}}
		}
		return true
	})
}

// renderSystem encodes one frame: clear, a single instanced draw with the
// active pipeline, present. A nil pipeline still clears and presents.
func renderSystem(rs *renderState, gpuState *GpuState) {
	nextTexture, err := gpuState.surface.GetCurrentTexture()
	if err != nil {
		panic(err)
	}
	view, err := nextTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}
	defer view.Release()

	encoder, err := gpuState.device.CreateCommandEncoder(nil)
	if err != nil {
		panic(err)
	}
	defer encoder.Release()

	renderPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: rs.clearColor,
			},
		},
	})
	defer renderPass.Release()

	pipeline, bindGroup, indexBuffer, indexCount := rs.activeDraw()
	if pipeline != nil && bindGroup != nil && rs.instanceCount > 0 {
		renderPass.SetPipeline(pipeline)
		renderPass.SetBindGroup(0, bindGroup, nil)
		renderPass.SetVertexBuffer(0, rs.vertexBuffer, 0, wgpu.WholeSize)
		renderPass.SetVertexBuffer(1, rs.positionBuffer, 0, wgpu.WholeSize)
		renderPass.SetVertexBuffer(2, rs.tintBuffer, 0, wgpu.WholeSize)
		renderPass.SetVertexBuffer(3, rs.modelBuffer, 0, wgpu.WholeSize)
		renderPass.SetIndexBuffer(indexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
		renderPass.DrawIndexed(indexCount, rs.instanceCount, 0, 0, 0)
	}

	if err := renderPass.End(); err != nil {
		panic(err)
	}

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		panic(err)
	}
	defer cmdBuffer.Release()

	gpuState.queue.Submit(cmdBuffer)
	gpuState.surface.Present()
}
