package widgets

import "go.hasen.dev/stage"

// OnscreenKeyboard shows or hides a soft keyboard when a field gains focus.
type OnscreenKeyboard interface {
	Show(visible bool)
}

// DefaultOnscreenKeyboard asks the host's input to toggle the system
// keyboard. With a nil Input it does nothing.
type DefaultOnscreenKeyboard struct {
	Input stage.Input
}

func (k DefaultOnscreenKeyboard) Show(visible bool) {
	if k.Input != nil {
		k.Input.SetOnscreenKeyboardVisible(visible)
	}
}

// TextFieldListener is told about every character a focused field handled,
// after the text was updated.
type TextFieldListener interface {
	KeyTyped(field *TextField, ch rune)
}

type TextFieldListenerFunc func(field *TextField, ch rune)

func (fn TextFieldListenerFunc) KeyTyped(field *TextField, ch rune) {
	fn(field, ch)
}
