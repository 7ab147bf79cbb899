package swirl

import (
	"time"
)

// Time tracks the wall clock between frames.
type Time struct {
	Now time.Time
	Dt  time.Duration
}

type TimeModule struct{}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{
		Now: time.Now(),
	})
	app.UseSystem(
		System(timeSystem).
			InStage(PreUpdate),
	)
}

func timeSystem(timeResource *Time) {
	now := time.Now()
	timeResource.Dt = now.Sub(timeResource.Now)
	timeResource.Now = now
}
