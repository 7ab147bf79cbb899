package swirl

// Stage names a slot in the per-frame schedule. Stages run in declaration
// order; every system in a stage runs before the next stage starts.
type Stage struct {
	Name string
}

var (
	PreUpdate = Stage{Name: "PreUpdate"}
	Update    = Stage{Name: "Update"}
	PreRender = Stage{Name: "PreRender"}
	Render    = Stage{Name: "Render"}
)

var defaultStages = []Stage{PreUpdate, Update, PreRender, Render}

type systemScheduleBuilder struct {
	inStage Stage
	system  systemFn
}

// System starts a schedule builder for a system function. Systems default
// to the Update stage.
func System(system systemFn) systemScheduleBuilder {
	return systemScheduleBuilder{
		system:  system,
		inStage: Update,
	}
}

func (sched systemScheduleBuilder) InStage(s Stage) systemScheduleBuilder {
	return systemScheduleBuilder{
		system:  sched.system,
		inStage: s,
	}
}

func (app *App) UseSystem(system systemScheduleBuilder) *App {
	systems, ok := app.systems[system.inStage.Name]
	if !ok {
		panic("unknown stage: " + system.inStage.Name)
	}
	app.systems[system.inStage.Name] = append(systems, system.system)
	return app
}
