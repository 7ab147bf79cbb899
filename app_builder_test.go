package swirl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockModule struct {
	installed bool
}

func (m *mockModule) Install(app *App, commands *Commands) {
	m.installed = true
}

func TestAppBuilder_Build(t *testing.T) {
	app := NewAppBuilder().Build()

	assert.NotNil(t, app)
	assert.False(t, app.quit)
	assert.Len(t, app.stages, len(defaultStages))
}

func TestAppBuilder_UseModule(t *testing.T) {
	builder := NewAppBuilder()
	builder.UseModule(&mockModule{})

	assert.Len(t, builder.modules, 1)
}

func TestAppBuilder_Build_InstallsModules(t *testing.T) {
	module1 := &mockModule{}
	module2 := &mockModule{}

	NewAppBuilder().
		UseModule(module1).
		UseModule(module2).
		Build()

	assert.True(t, module1.installed, "Install should be called on module 1")
	assert.True(t, module2.installed, "Install should be called on module 2")
}
