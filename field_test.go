package swirl

import (
	"math"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldModule_SpawnsInstances(t *testing.T) {
	const aspect = float32(16.0 / 9.0)

	app := NewApp()
	app.UseModules(FieldModule{Count: 1000, Scale: 0.05, Speed: 1, Aspect: aspect, Seed: 1})
	cmd := app.Commands()

	assert.Equal(t, 1000, MakeQuery2[Shape2D, Tint](cmd).Count())

	MakeQuery2[Shape2D, Tint](cmd).Map(func(eid EntityId, shape *Shape2D, tint *Tint) bool {
		assert.GreaterOrEqual(t, shape.Pos.X(), -aspect)
		assert.LessOrEqual(t, shape.Pos.X(), aspect)
		assert.GreaterOrEqual(t, shape.Pos.Y(), float32(-1))
		assert.LessOrEqual(t, shape.Pos.Y(), float32(1))
		assert.Equal(t, float32(0.05), shape.Scale.X())
		assert.Equal(t, float32(0.05), shape.Scale.Y())
		assert.Zero(t, shape.Rotation)

		for i := 0; i < 3; i++ {
			assert.GreaterOrEqual(t, tint.RGB[i], float32(0))
			assert.LessOrEqual(t, tint.RGB[i], float32(1))
		}
		return true
	})
}

func TestFieldModule_SeedIsDeterministic(t *testing.T) {
	// Entity ids start at zero per app and shapes are rolled in spawn
	// order, so sorting by id makes the two runs comparable slot by slot.
	shapes := func(seed int64) []Shape2D {
		app := NewApp()
		app.UseModules(FieldModule{Count: 10, Aspect: 1, Seed: seed})

		byId := make(map[EntityId]Shape2D)
		MakeQuery1[Shape2D](app.Commands()).Map(func(eid EntityId, shape *Shape2D) bool {
			byId[eid] = *shape
			return true
		})

		ids := make([]EntityId, 0, len(byId))
		for id := range byId {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		out := make([]Shape2D, 0, len(ids))
		for _, id := range ids {
			out = append(out, byId[id])
		}
		return out
	}

	assert.Equal(t, shapes(42), shapes(42))
}

func TestFieldModule_ZeroCount(t *testing.T) {
	app := NewApp()
	app.UseModules(FieldModule{Count: 0, Aspect: 1})

	assert.Equal(t, 0, MakeQuery1[Shape2D](app.Commands()).Count())
}

func TestSpinSystem_AdvancesAndWritesAllShapes(t *testing.T) {
	app := NewApp()
	app.UseModules(FieldModule{Count: 25, Aspect: 1, Speed: 2})
	cmd := app.Commands()
	cmd.AddResources(&Time{Dt: 250 * time.Millisecond})

	app.Step()

	spin := resource[Spin](app)
	require.NotNil(t, spin)
	assert.InDelta(t, 0.5, spin.Angle, 1e-6)

	MakeQuery1[Shape2D](cmd).Map(func(eid EntityId, shape *Shape2D) bool {
		assert.Equal(t, spin.Angle, shape.Rotation)
		return true
	})
}

func TestSpinSystem_WrapsAtFullTurn(t *testing.T) {
	app := NewApp()
	app.UseModules(FieldModule{Count: 1, Aspect: 1, Speed: 1})
	cmd := app.Commands()
	cmd.AddResources(&Time{Dt: 100 * time.Millisecond})

	spin := resource[Spin](app)
	spin.Angle = float32(2*math.Pi) - 0.05

	app.Step()

	assert.Less(t, spin.Angle, float32(2*math.Pi))
	assert.InDelta(t, 0.05, spin.Angle, 1e-3)
}

func TestSpinSystem_IgnoresNonPositiveDt(t *testing.T) {
	app := NewApp()
	app.UseModules(FieldModule{Count: 1, Aspect: 1, Speed: 1})
	cmd := app.Commands()
	cmd.AddResources(&Time{Dt: 0})

	app.Step()

	assert.Zero(t, resource[Spin](app).Angle)
}
