package swirl

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyA int = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyEnter
	KeyEscape
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	keyCount
)

type keyEvent struct {
	key     int
	pressed bool
}

// Input exposes per-frame keyboard state. Pressed is level-triggered;
// JustPressed/JustReleased fire only on the frame the edge happened.
type Input struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	pending []keyEvent
	bound   bool
}

type InputModule struct{}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate),
	)
}

// inputSystem drains the key events queued by the GLFW callback since the
// last frame. It runs after windowEventsSystem, which pumps the events.
func inputSystem(s *WindowState, input *Input) {
	if !input.bound {
		input.bound = true
		s.windowGlfw.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
			mapped, ok := glfwToKey[key]
			if !ok {
				return
			}
			switch action {
			case glfw.Press:
				input.pending = append(input.pending, keyEvent{key: mapped, pressed: true})
			case glfw.Release:
				input.pending = append(input.pending, keyEvent{key: mapped, pressed: false})
			}
		})
	}

	for i := range input.JustPressed {
		input.JustPressed[i] = false
		input.JustReleased[i] = false
	}
	for _, ev := range input.pending {
		applyKeyEvent(input, ev)
	}
	input.pending = input.pending[:0]
}

func applyKeyEvent(input *Input, ev keyEvent) {
	if ev.pressed {
		if !input.Pressed[ev.key] {
			input.JustPressed[ev.key] = true
		}
		input.Pressed[ev.key] = true
	} else {
		if input.Pressed[ev.key] {
			input.JustReleased[ev.key] = true
		}
		input.Pressed[ev.key] = false
	}
}

var glfwToKey = map[glfw.Key]int{
	glfw.KeyA:      KeyA,
	glfw.KeyB:      KeyB,
	glfw.KeyC:      KeyC,
	glfw.KeyD:      KeyD,
	glfw.KeyE:      KeyE,
	glfw.KeyF:      KeyF,
	glfw.KeyG:      KeyG,
	glfw.KeyH:      KeyH,
	glfw.KeyI:      KeyI,
	glfw.KeyJ:      KeyJ,
	glfw.KeyK:      KeyK,
	glfw.KeyL:      KeyL,
	glfw.KeyM:      KeyM,
	glfw.KeyN:      KeyN,
	glfw.KeyO:      KeyO,
	glfw.KeyP:      KeyP,
	glfw.KeyQ:      KeyQ,
	glfw.KeyR:      KeyR,
	glfw.KeyS:      KeyS,
	glfw.KeyT:      KeyT,
	glfw.KeyU:      KeyU,
	glfw.KeyV:      KeyV,
	glfw.KeyW:      KeyW,
	glfw.KeyX:      KeyX,
	glfw.KeyY:      KeyY,
	glfw.KeyZ:      KeyZ,
	glfw.Key0:      Key0,
	glfw.Key1:      Key1,
	glfw.Key2:      Key2,
	glfw.Key3:      Key3,
	glfw.Key4:      Key4,
	glfw.Key5:      Key5,
	glfw.Key6:      Key6,
	glfw.Key7:      Key7,
	glfw.Key8:      Key8,
	glfw.Key9:      Key9,
	glfw.KeySpace:  KeySpace,
	glfw.KeyEnter:  KeyEnter,
	glfw.KeyEscape: KeyEscape,
	glfw.KeyRight:  KeyRight,
	glfw.KeyLeft:   KeyLeft,
	glfw.KeyDown:   KeyDown,
	glfw.KeyUp:     KeyUp,
}
