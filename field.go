package swirl

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Shape2D places one instanced shape in world space. World y spans [-1, 1],
// world x spans [-aspect, aspect]. Scale.X doubles as the circle radius.
type Shape2D struct {
	Pos      mgl32.Vec2
	Scale    mgl32.Vec2
	Rotation float32
}

// Tint is the per-instance color, each channel in [0, 1].
type Tint struct {
	RGB mgl32.Vec3
}

// Spin is the shared rotation state. Every shape carries the same angle
// within a frame; the angle wraps at a full turn.
type Spin struct {
	Angle float32
	Speed float32 // radians per second
}

// FieldModule spawns a fixed field of randomly placed, randomly colored
// shapes. Positions and colors are rolled once at install time and never
// change; only the rotation is animated.
type FieldModule struct {
	Count  int
	Scale  float32
	Speed  float32
	Aspect float32
	Seed   int64
}

func (m FieldModule) Install(app *App, cmd *Commands) {
	count := m.Count
	if count < 0 {
		count = 0
	}
	scale := m.Scale
	if scale <= 0 {
		scale = 0.05
	}
	aspect := m.Aspect
	if aspect <= 0 {
		aspect = 1
	}

	rng := rand.New(rand.NewSource(m.Seed))
	for i := 0; i < count; i++ {
		cmd.AddEntity(
			&Shape2D{
				Pos:   mgl32.Vec2{randRange(rng, -aspect, aspect), randRange(rng, -1, 1)},
				Scale: mgl32.Vec2{scale, scale},
			},
			&Tint{
				RGB: mgl32.Vec3{rng.Float32(), rng.Float32(), rng.Float32()},
			},
		)
	}

	cmd.AddResources(&Spin{Speed: m.Speed})
	app.UseSystem(
		System(spinSystem).
			InStage(Update),
	)
	app.Logger().Infof("Spawned %d shapes (scale %.3f, speed %.2f rad/s)", count, scale, m.Speed)
}

func randRange(rng *rand.Rand, lower, upper float32) float32 {
	return lower + rng.Float32()*(upper-lower)
}

// spinSystem advances the shared angle by the elapsed wall-clock time and
// writes it into every shape.
func spinSystem(spin *Spin, t *Time, cmd *Commands) {
	dt := float32(t.Dt.Seconds())
	if dt <= 0 {
		return
	}

	spin.Angle += spin.Speed * dt
	if spin.Angle >= 2*math.Pi {
		spin.Angle -= 2 * math.Pi
	}

	angle := spin.Angle
	MakeQuery1[Shape2D](cmd).Map(func(eid EntityId, shape *Shape2D) bool {
		shape.Rotation = angle
		return true
	})
}
