package stage

import (
	"slices"

	g "go.hasen.dev/generic"
)

// Group is an actor holding an ordered list of children. Children draw in
// order and receive input in reverse order, so the topmost child wins.
//
// A child draws in its own coordinate space: the group translates the batch
// to the child's X/Y before calling Draw, and hands input over in coordinates
// local to the child.
type Group struct {
	Widget

	children []Actor

	keyboardFocused Actor
	touchFocused    map[int]Actor

	// set on the root group only
	stage *Stage
}

var _ Actor = (*Group)(nil)

func NewGroup(name string) *Group {
	return &Group{Widget: NewWidget(name, 0, 0)}
}

func (gr *Group) Children() []Actor {
	return gr.children
}

// AddActor appends a child, detaching it from its previous group first.
func (gr *Group) AddActor(a Actor) {
	w := a.Base()
	if w.parent != nil {
		w.parent.RemoveActor(a)
	}
	w.parent = gr
	g.Append(&gr.children, a)
	gr.InvalidateHierarchy()
}

func (gr *Group) RemoveActor(a Actor) bool {
	idx := slices.Index(gr.children, a)
	if idx == -1 {
		return false
	}
	gr.children = slices.Delete(gr.children, idx, idx+1)
	if gr.keyboardFocused == a {
		gr.keyboardFocused = nil
	}
	for pointer, t := range gr.touchFocused {
		if t == a {
			delete(gr.touchFocused, pointer)
		}
	}
	a.Base().parent = nil
	gr.InvalidateHierarchy()
	return true
}

// KeyboardFocus makes a (a child of this group, or nil) the receiver of key
// events, and routes the focus of every ancestor through this group.
func (gr *Group) KeyboardFocus(a Actor) {
	gr.keyboardFocused = a
	if a == nil {
		return
	}
	if gr.parent != nil {
		gr.parent.KeyboardFocus(gr)
	}
}

func (gr *Group) KeyboardFocused() Actor {
	return gr.keyboardFocused
}

// focusRouted reports whether key events reaching the root would be routed
// down to this group.
func (gr *Group) focusRouted() bool {
	for p := gr; p.parent != nil; p = p.parent {
		if p.parent.keyboardFocused != Actor(p) {
			return false
		}
	}
	return true
}

// ActorAt returns the topmost visible child hit at (x, y), in group
// coordinates.
func (gr *Group) ActorAt(x, y float32) Actor {
	for i := len(gr.children) - 1; i >= 0; i-- {
		child := gr.children[i]
		w := child.Base()
		if !w.Visible {
			continue
		}
		if child.Hit(x-w.X, y-w.Y) {
			return child
		}
	}
	return nil
}

// Hit on a group is transparent: only its children count.
func (gr *Group) Hit(x, y float32) bool {
	return gr.ActorAt(x, y) != nil
}

func (gr *Group) Layout() {
	for _, child := range gr.children {
		if child.Base().Invalidated() {
			child.Layout()
		}
	}
	gr.LayoutDone()
}

func (gr *Group) Draw(b *Batch, parentAlpha float32) {
	if !gr.Visible {
		return
	}
	alpha := parentAlpha * float32(gr.Color.A) / 255
	for _, child := range gr.children {
		w := child.Base()
		if !w.Visible {
			continue
		}
		if w.Invalidated() {
			child.Layout()
		}
		b.PushTranslate(w.X, w.Y)
		child.Draw(b, alpha)
		b.PopTranslate()
	}
}

func (gr *Group) TouchDown(x, y float32, pointer int) bool {
	for i := len(gr.children) - 1; i >= 0; i-- {
		child := gr.children[i]
		w := child.Base()
		if !w.Visible {
			continue
		}
		lx, ly := x-w.X, y-w.Y
		if !child.Hit(lx, ly) {
			continue
		}
		if child.TouchDown(lx, ly, pointer) {
			if gr.touchFocused == nil {
				gr.touchFocused = make(map[int]Actor)
			}
			gr.touchFocused[pointer] = child
			return true
		}
	}
	return false
}

func (gr *Group) TouchDragged(x, y float32, pointer int) bool {
	child := gr.touchFocused[pointer]
	if child == nil {
		return false
	}
	w := child.Base()
	return child.TouchDragged(x-w.X, y-w.Y, pointer)
}

func (gr *Group) TouchUp(x, y float32, pointer int) bool {
	child := gr.touchFocused[pointer]
	if child == nil {
		return false
	}
	delete(gr.touchFocused, pointer)
	w := child.Base()
	return child.TouchUp(x-w.X, y-w.Y, pointer)
}

func (gr *Group) KeyDown(combo KeyCombo) bool {
	if gr.keyboardFocused == nil {
		return false
	}
	return gr.keyboardFocused.KeyDown(combo)
}

func (gr *Group) KeyTyped(ch rune) bool {
	if gr.keyboardFocused == nil {
		return false
	}
	return gr.keyboardFocused.KeyTyped(ch)
}
