package stage

import "runtime"

type KeyCode byte

const (
	Key0 KeyCode = '0' + iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

const (
	// ascii table order
	KeyA KeyCode = 'A' + iota
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
)

const (
	KeyCodeNone KeyCode = iota

	KeyLeft KeyCode = 128 + iota
	KeyRight
	KeyUp
	KeyDown
	KeyEnter
	KeyEscape
	KeyHome
	KeyEnd
	KeyDeleteBackward
	KeyDeleteForward
	KeyPageUp
	KeyPageDown
	KeyTab
	KeySpace
	KeyCtrl
	KeyShift
	KeyAlt
	KeySuper
	KeyCommand
)

// Control runes delivered through KeyTyped for the two delete keys. Hosts
// that report deletes as named keys translate them to these.
const (
	RuneBackspace rune = 8
	RuneDelete    rune = 127
)

type Modifiers uint32

// mirrors the values in gioui
const (
	ModCtrl Modifiers = 1 << iota
	ModCmd
	ModShift
	ModAlt
	ModSuper
)

const ModNone Modifiers = 0

func (m Modifiers) Has(mod Modifiers) bool {
	return m&mod != 0
}

// CommandModifier is the platform's shortcut modifier: Cmd on macOS, Ctrl
// elsewhere.
func CommandModifier() Modifiers {
	if runtime.GOOS == "darwin" {
		return ModCmd
	}
	return ModCtrl
}

// modifierKeys maps modifier keys tracked as pressed to their flag.
var modifierKeys = map[KeyCode]Modifiers{
	KeyCtrl:    ModCtrl,
	KeyCommand: ModCmd,
	KeyShift:   ModShift,
	KeyAlt:     ModAlt,
	KeySuper:   ModSuper,
}

type KeyCombo struct {
	Key KeyCode
	Mod Modifiers
}

func Combo(key KeyCode, mod Modifiers) KeyCombo {
	return KeyCombo{
		Key: key,
		Mod: mod,
	}
}
