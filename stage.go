package stage

import (
	"slices"
	"sync"
	"sync/atomic"

	g "go.hasen.dev/generic"
)

// Input is the slice of the host's input system that widgets may drive.
type Input interface {
	SetOnscreenKeyboardVisible(visible bool)
}

// Stage owns the root group and turns host events into actor input. All
// methods except Post must be called from the UI thread.
type Stage struct {
	root *Group

	Width, Height float32

	downKeys []KeyCode
	hostMods Modifiers

	keyboardVisible bool
	renderRequested atomic.Bool

	postLock sync.Mutex
	posted   []func()
	wakeup   func()
}

var _ Input = (*Stage)(nil)

func NewStage(width, height float32) *Stage {
	s := &Stage{root: NewGroup("root")}
	s.root.stage = s
	s.SetViewport(width, height)
	return s
}

func (s *Stage) Root() *Group {
	return s.root
}

func (s *Stage) AddActor(a Actor) {
	s.root.AddActor(a)
}

func (s *Stage) SetViewport(width, height float32) {
	s.Width, s.Height = width, height
	s.root.Width, s.root.Height = width, height
	s.root.Invalidate()
}

// SetKeyboardFocus routes key events to a, or to nobody when a is nil.
func (s *Stage) SetKeyboardFocus(a Actor) {
	if a == nil {
		s.root.KeyboardFocus(nil)
		return
	}
	if p := a.Base().Parent(); p != nil {
		p.KeyboardFocus(a)
	}
}

// KeyboardFocus returns the actor key events are routed to.
func (s *Stage) KeyboardFocus() Actor {
	var focused Actor = s.root
	for {
		gr, ok := focused.(*Group)
		if !ok || gr.keyboardFocused == nil {
			break
		}
		focused = gr.keyboardFocused
	}
	if focused == Actor(s.root) {
		return nil
	}
	return focused
}

// TouchDown dispatches a press in stage coordinates. A press of the primary
// pointer that no actor handles clears the keyboard focus and hides the
// on-screen keyboard.
func (s *Stage) TouchDown(x, y float32, pointer int) bool {
	if s.root.TouchDown(x, y, pointer) {
		return true
	}
	if pointer == 0 {
		s.SetKeyboardFocus(nil)
		s.SetOnscreenKeyboardVisible(false)
	}
	return false
}

func (s *Stage) TouchDragged(x, y float32, pointer int) bool {
	return s.root.TouchDragged(x, y, pointer)
}

func (s *Stage) TouchUp(x, y float32, pointer int) bool {
	return s.root.TouchUp(x, y, pointer)
}

// KeyDown records the key as pressed and hands the combo with the current
// modifiers to the focused actor.
func (s *Stage) KeyDown(key KeyCode) bool {
	g.SliceAddUniq(&s.downKeys, key)
	return s.root.KeyDown(Combo(key, s.Modifiers()))
}

func (s *Stage) KeyUp(key KeyCode) {
	g.SliceRemove(&s.downKeys, key)
}

func (s *Stage) KeyTyped(ch rune) bool {
	return s.root.KeyTyped(ch)
}

// SetModifiers records the modifier state reported by the host alongside its
// key events.
func (s *Stage) SetModifiers(mods Modifiers) {
	s.hostMods = mods
}

// Modifiers is the union of the host reported modifiers and the modifier
// keys currently held.
func (s *Stage) Modifiers() Modifiers {
	mods := s.hostMods
	for _, k := range s.downKeys {
		mods |= modifierKeys[k]
	}
	return mods
}

func (s *Stage) IsKeyPressed(key KeyCode) bool {
	return slices.Contains(s.downKeys, key)
}

// ReleaseAllKeys forgets every held key; hosts call it when the window loses
// focus and key-up events will not arrive.
func (s *Stage) ReleaseAllKeys() {
	g.ResetSlice(&s.downKeys)
	s.hostMods = ModNone
}

func (s *Stage) SetOnscreenKeyboardVisible(visible bool) {
	s.keyboardVisible = visible
}

func (s *Stage) OnscreenKeyboardVisible() bool {
	return s.keyboardVisible
}

// RequestRendering asks the host for another frame even when no input
// arrives, e.g. to keep a cursor blinking.
func (s *Stage) RequestRendering() {
	s.renderRequested.Store(true)
}

// TakeRenderRequest reports whether a frame was requested since the last call.
func (s *Stage) TakeRenderRequest() bool {
	return s.renderRequested.Swap(false)
}

// SetWakeup installs the host callback Post uses to wake an idle event loop.
func (s *Stage) SetWakeup(fn func()) {
	s.postLock.Lock()
	s.wakeup = fn
	s.postLock.Unlock()
}

// Post queues fn to run on the UI thread at the start of the next Draw. It is
// safe to call from any goroutine.
func (s *Stage) Post(fn func()) {
	s.postLock.Lock()
	g.Append(&s.posted, fn)
	wakeup := s.wakeup
	s.postLock.Unlock()
	s.RequestRendering()
	if wakeup != nil {
		wakeup()
	}
}

// Pending reports whether posted functions are waiting for the next frame.
func (s *Stage) Pending() bool {
	s.postLock.Lock()
	defer s.postLock.Unlock()
	return len(s.posted) > 0
}

func (s *Stage) runPosted() {
	s.postLock.Lock()
	fns := s.posted
	s.posted = nil
	s.postLock.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Draw runs posted functions, lays out whatever was invalidated and draws the
// tree into b, which is reset first.
func (s *Stage) Draw(b *Batch) {
	s.runPosted()
	if s.root.Invalidated() {
		s.root.Layout()
	}
	b.Begin()
	s.root.Draw(b, 1)
	b.End()
}
