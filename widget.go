package stage

// Actor is anything that lives in the scene graph. Coordinates handed to the
// input methods are local to the actor (0,0 is its top-left corner).
type Actor interface {
	Base() *Widget

	// Layout recomputes preferred sizes; called lazily when invalidated.
	Layout()
	Draw(b *Batch, parentAlpha float32)

	Hit(x, y float32) bool

	TouchDown(x, y float32, pointer int) bool
	TouchUp(x, y float32, pointer int) bool
	TouchDragged(x, y float32, pointer int) bool

	KeyDown(combo KeyCombo) bool
	KeyTyped(ch rune) bool
}

// Widget carries the state shared by all actors and no-op defaults for the
// Actor methods. Concrete actors embed it and override what they handle.
type Widget struct {
	Name string

	// position relative to the parent
	X, Y          float32
	Width, Height float32

	PrefWidth, PrefHeight float32

	// tint, multiplied with the parent alpha when drawing
	Color Color

	Visible bool

	invalidated bool
	parent      *Group
}

func NewWidget(name string, prefWidth, prefHeight float32) Widget {
	return Widget{
		Name:        name,
		PrefWidth:   prefWidth,
		PrefHeight:  prefHeight,
		Color:       White,
		Visible:     true,
		invalidated: true,
	}
}

func (w *Widget) Base() *Widget { return w }

func (w *Widget) Parent() *Group { return w.parent }

// Stage walks up to the root group; nil while detached.
func (w *Widget) Stage() *Stage {
	p := w.parent
	if p == nil {
		return nil
	}
	for p.parent != nil {
		p = p.parent
	}
	return p.stage
}

func (w *Widget) Invalidated() bool { return w.invalidated }

func (w *Widget) Invalidate() { w.invalidated = true }

// InvalidateHierarchy marks this widget and every ancestor for layout.
func (w *Widget) InvalidateHierarchy() {
	w.invalidated = true
	for p := w.parent; p != nil; p = p.parent {
		p.invalidated = true
	}
}

// LayoutDone clears the invalidated flag; Layout implementations call it.
func (w *Widget) LayoutDone() { w.invalidated = false }

func (w *Widget) Hit(x, y float32) bool {
	return x >= 0 && x < w.Width && y >= 0 && y < w.Height
}

func (w *Widget) Layout() { w.invalidated = false }

func (w *Widget) Draw(b *Batch, parentAlpha float32) {}

func (w *Widget) TouchDown(x, y float32, pointer int) bool    { return false }
func (w *Widget) TouchUp(x, y float32, pointer int) bool      { return false }
func (w *Widget) TouchDragged(x, y float32, pointer int) bool { return false }

func (w *Widget) KeyDown(combo KeyCombo) bool { return false }
func (w *Widget) KeyTyped(ch rune) bool       { return false }

// HasKeyboardFocus reports whether key events reaching the root of the tree
// end up at self. self must be the actor embedding w.
func (w *Widget) HasKeyboardFocus(self Actor) bool {
	return w.parent != nil && w.parent.keyboardFocused == self && w.parent.focusRouted()
}

// RequestKeyboardFocus asks the parent to route key events to self.
func (w *Widget) RequestKeyboardFocus(self Actor) {
	if w.parent != nil {
		w.parent.KeyboardFocus(self)
	}
}
