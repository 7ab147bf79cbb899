package swirl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyKeyEvent_PressEdges(t *testing.T) {
	input := &Input{}

	applyKeyEvent(input, keyEvent{key: KeySpace, pressed: true})
	assert.True(t, input.Pressed[KeySpace])
	assert.True(t, input.JustPressed[KeySpace])

	// A repeated press while held is not a new edge.
	input.JustPressed[KeySpace] = false
	applyKeyEvent(input, keyEvent{key: KeySpace, pressed: true})
	assert.True(t, input.Pressed[KeySpace])
	assert.False(t, input.JustPressed[KeySpace])
}

func TestApplyKeyEvent_ReleaseEdges(t *testing.T) {
	input := &Input{}
	input.Pressed[KeyT] = true

	applyKeyEvent(input, keyEvent{key: KeyT, pressed: false})
	assert.False(t, input.Pressed[KeyT])
	assert.True(t, input.JustReleased[KeyT])

	input.JustReleased[KeyT] = false
	applyKeyEvent(input, keyEvent{key: KeyT, pressed: false})
	assert.False(t, input.JustReleased[KeyT], "release without a press is not an edge")
}

func TestApplyKeyEvent_IndependentKeys(t *testing.T) {
	input := &Input{}

	applyKeyEvent(input, keyEvent{key: KeySpace, pressed: true})
	applyKeyEvent(input, keyEvent{key: KeyT, pressed: true})
	applyKeyEvent(input, keyEvent{key: KeySpace, pressed: false})

	assert.False(t, input.Pressed[KeySpace])
	assert.True(t, input.Pressed[KeyT])
	assert.True(t, input.JustPressed[KeyT])
	assert.True(t, input.JustReleased[KeySpace])
}

func TestGlfwKeyMapCoversDemoKeys(t *testing.T) {
	mapped := make(map[int]bool)
	for _, key := range glfwToKey {
		assert.False(t, mapped[key], "key %d mapped twice", key)
		mapped[key] = true
	}

	for _, key := range []int{KeySpace, KeyT, KeyEscape} {
		assert.True(t, mapped[key], "demo key %d must be mapped", key)
	}
}
