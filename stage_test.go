package stage

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// box is a minimal actor that records what reaches it.
type box struct {
	Widget

	handleTouch bool
	touches     []Vec2
	drags       int
	ups         int
	combos      []KeyCombo
	typed       []rune
	layouts     int
}

func newBox(name string, x, y, w, h float32) *box {
	b := &box{Widget: NewWidget(name, w, h), handleTouch: true}
	b.X, b.Y, b.Width, b.Height = x, y, w, h
	return b
}

func (b *box) Layout() {
	b.layouts++
	b.LayoutDone()
}

func (b *box) Draw(batch *Batch, parentAlpha float32) {
	batch.SetColor(MulAlpha(b.Color, parentAlpha))
	batch.DrawRect(0, 0, b.Width, b.Height)
}

func (b *box) TouchDown(x, y float32, pointer int) bool {
	b.touches = append(b.touches, Vec2{x, y})
	if b.handleTouch {
		b.RequestKeyboardFocus(b)
	}
	return b.handleTouch
}

func (b *box) TouchDragged(x, y float32, pointer int) bool {
	b.drags++
	return true
}

func (b *box) TouchUp(x, y float32, pointer int) bool {
	b.ups++
	return true
}

func (b *box) KeyDown(combo KeyCombo) bool {
	if !b.HasKeyboardFocus(b) {
		return false
	}
	b.combos = append(b.combos, combo)
	return true
}

func (b *box) KeyTyped(ch rune) bool {
	if !b.HasKeyboardFocus(b) {
		return false
	}
	b.typed = append(b.typed, ch)
	return true
}

func TestStageDispatchesTouchInLocalCoordinates(t *testing.T) {
	st := NewStage(200, 200)
	panel := NewGroup("panel")
	panel.X, panel.Y = 50, 50
	inner := newBox("inner", 10, 10, 20, 20)
	panel.AddActor(inner)
	st.AddActor(panel)

	require.True(t, st.TouchDown(65, 70, 0))
	assert.Equal(t, []Vec2{{5, 10}}, inner.touches)

	st.TouchDragged(100, 100, 0)
	st.TouchUp(100, 100, 0)
	assert.Equal(t, 1, inner.drags)
	assert.Equal(t, 1, inner.ups)

	// the touch focus is released on up
	assert.False(t, st.TouchDragged(100, 100, 0))
	assert.Equal(t, 1, inner.drags)
}

func TestTopmostChildWins(t *testing.T) {
	st := NewStage(100, 100)
	below := newBox("below", 0, 0, 50, 50)
	above := newBox("above", 25, 25, 50, 50)
	st.AddActor(below)
	st.AddActor(above)

	st.TouchDown(30, 30, 0)
	assert.Len(t, above.touches, 1)
	assert.Empty(t, below.touches)

	assert.Equal(t, Actor(below), st.Root().ActorAt(10, 10))
	assert.Nil(t, st.Root().ActorAt(90, 10))

	// an actor that declines lets the one below have it
	above.handleTouch = false
	st.TouchDown(30, 30, 0)
	assert.Len(t, above.touches, 2)
	assert.Len(t, below.touches, 1)

	above.Visible = false
	st.TouchDown(30, 30, 0)
	assert.Len(t, above.touches, 2)
	assert.Len(t, below.touches, 2)
}

func TestKeyboardFocusRouting(t *testing.T) {
	st := NewStage(100, 100)
	left := NewGroup("left")
	right := NewGroup("right")
	a := newBox("a", 0, 0, 10, 10)
	b := newBox("b", 0, 0, 10, 10)
	left.AddActor(a)
	right.AddActor(b)
	st.AddActor(left)
	st.AddActor(right)

	st.SetKeyboardFocus(a)
	assert.Equal(t, Actor(a), st.KeyboardFocus())
	assert.True(t, a.HasKeyboardFocus(a))
	st.KeyTyped('x')
	assert.Equal(t, []rune{'x'}, a.typed)

	// focusing another branch takes the route away from the first
	st.SetKeyboardFocus(b)
	assert.False(t, a.HasKeyboardFocus(a))
	assert.True(t, b.HasKeyboardFocus(b))
	st.KeyTyped('y')
	assert.Equal(t, []rune{'x'}, a.typed)
	assert.Equal(t, []rune{'y'}, b.typed)

	st.SetKeyboardFocus(nil)
	assert.Nil(t, st.KeyboardFocus())
	assert.False(t, st.KeyTyped('z'))
	assert.False(t, b.HasKeyboardFocus(b))
}

func TestUnhandledPressBlurs(t *testing.T) {
	st := NewStage(100, 100)
	a := newBox("a", 0, 0, 10, 10)
	st.AddActor(a)

	st.TouchDown(5, 5, 0)
	st.SetOnscreenKeyboardVisible(true)
	require.Equal(t, Actor(a), st.KeyboardFocus())

	// secondary pointers leave the focus alone
	st.TouchDown(50, 50, 1)
	assert.Equal(t, Actor(a), st.KeyboardFocus())

	assert.False(t, st.TouchDown(50, 50, 0))
	assert.Nil(t, st.KeyboardFocus())
	assert.False(t, st.OnscreenKeyboardVisible())
}

func TestModifiersAndPressedKeys(t *testing.T) {
	st := NewStage(100, 100)
	a := newBox("a", 0, 0, 10, 10)
	st.AddActor(a)
	st.SetKeyboardFocus(a)

	st.KeyDown(KeyShift)
	st.KeyDown(KeyLeft)
	assert.True(t, st.IsKeyPressed(KeyShift))
	assert.True(t, st.Modifiers().Has(ModShift))
	assert.Equal(t, Combo(KeyLeft, ModShift), a.combos[1])

	st.KeyUp(KeyShift)
	st.KeyUp(KeyLeft)
	assert.False(t, st.IsKeyPressed(KeyShift))
	assert.Equal(t, ModNone, st.Modifiers())

	st.SetModifiers(ModCtrl | ModAlt)
	st.KeyDown(KeyC)
	assert.Equal(t, Combo(KeyC, ModCtrl|ModAlt), a.combos[2])

	st.ReleaseAllKeys()
	assert.False(t, st.IsKeyPressed(KeyC))
	assert.Equal(t, ModNone, st.Modifiers())
}

func TestStageDrawLaysOutAndTranslates(t *testing.T) {
	st := NewStage(100, 100)
	panel := NewGroup("panel")
	panel.X, panel.Y = 10, 10
	a := newBox("a", 5, 5, 10, 10)
	panel.AddActor(a)
	st.AddActor(panel)

	b := NewBatch()
	st.Draw(b)
	assert.Equal(t, 1, a.layouts)
	require.Len(t, b.Surfaces(), 1)
	assert.Equal(t, RectXYWH(15, 15, 10, 10), b.Surfaces()[0].Rect)

	// nothing invalidated, no layout
	st.Draw(b)
	assert.Equal(t, 1, a.layouts)

	a.InvalidateHierarchy()
	assert.True(t, panel.Invalidated())
	assert.True(t, st.Root().Invalidated())
	st.Draw(b)
	assert.Equal(t, 2, a.layouts)

	a.Visible = false
	st.Draw(b)
	assert.Empty(t, b.Surfaces())
}

func TestGroupAlpha(t *testing.T) {
	st := NewStage(100, 100)
	panel := NewGroup("panel")
	panel.Color = MulAlpha(White, 0.5)
	a := newBox("a", 0, 0, 10, 10)
	panel.AddActor(a)
	st.AddActor(panel)

	b := NewBatch()
	st.Draw(b)
	require.Len(t, b.Surfaces(), 1)
	assert.InDelta(t, 127, int(b.Surfaces()[0].Color.A), 1)
}

func TestReparenting(t *testing.T) {
	st := NewStage(100, 100)
	g1 := NewGroup("g1")
	g2 := NewGroup("g2")
	a := newBox("a", 0, 0, 10, 10)
	st.AddActor(g1)
	st.AddActor(g2)

	g1.AddActor(a)
	g1.KeyboardFocus(a)
	g2.AddActor(a)
	assert.Empty(t, g1.Children())
	assert.Nil(t, g1.KeyboardFocused())
	assert.Same(t, g2, a.Parent())
	assert.Same(t, st, a.Stage())

	assert.True(t, g2.RemoveActor(a))
	assert.False(t, g2.RemoveActor(a))
	assert.Nil(t, a.Parent())
	assert.Nil(t, a.Stage())
}

func TestPostRunsOnDraw(t *testing.T) {
	st := NewStage(10, 10)
	var woken atomic.Int32
	st.SetWakeup(func() { woken.Add(1) })

	var wg sync.WaitGroup
	ran := 0
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.Post(func() { ran++ })
		}()
	}
	wg.Wait()

	assert.True(t, st.Pending())
	assert.Equal(t, int32(10), woken.Load())
	assert.True(t, st.TakeRenderRequest())
	assert.False(t, st.TakeRenderRequest())
	assert.Equal(t, 0, ran)

	st.Draw(NewBatch())
	assert.Equal(t, 10, ran)
	assert.False(t, st.Pending())
}

func TestMemoryClipboard(t *testing.T) {
	var c MemoryClipboard
	_, ok := c.Contents()
	assert.False(t, ok)

	var forwarded []string
	c.OnSet = func(text string) { forwarded = append(forwarded, text) }
	c.SetContents("hello")
	c.Refresh("from system")

	got, ok := c.Contents()
	assert.True(t, ok)
	assert.Equal(t, "from system", got)
	assert.Equal(t, []string{"hello"}, forwarded)
}
