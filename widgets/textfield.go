package widgets

import (
	"time"

	g "go.hasen.dev/generic"

	"go.hasen.dev/stage"
	"go.hasen.dev/stage/textbuf"
)

const DefaultBlinkTime = 500 * time.Millisecond

// TextField is a single line of editable text.
//
// The field scrolls horizontally to keep the cursor visible. Shift with the
// arrow, Home and End keys selects; the platform command modifier with C, X,
// V and A copies, cuts, pastes and selects all through the field's Clipboard.
//
// Preferred width is the width given at construction plus the background's
// side insets; preferred height is the text height plus the background's top
// and bottom insets.
type TextField struct {
	stage.Widget

	style *TextFieldStyle

	buf   textbuf.Buffer
	runes []rune // text as of the last mutation

	cursor int

	hasSelection   bool
	selectionStart int
	selectionX     float32
	selectionWidth float32

	initialPrefWidth float32
	textAscent       float32
	textHeight       float32

	glyphAdvances  []float32
	glyphPositions []float32

	renderOffset     float32
	textOffset       float32
	visibleTextStart int
	visibleTextEnd   int

	blinkTime time.Duration
	lastBlink time.Time
	cursorOn  bool
	now       func() time.Time

	clipboard stage.Clipboard
	keyboard  OnscreenKeyboard
	listener  TextFieldListener
}

var _ stage.Actor = (*TextField)(nil)

// NewTextField creates an empty field laid out at its preferred size. It
// panics when style or its font is missing.
func NewTextField(name string, prefWidth float32, style *TextFieldStyle) *TextField {
	if style == nil || style.Font == nil {
		panic("widgets: text field style must have a font")
	}
	f := &TextField{
		Widget:           stage.NewWidget(name, prefWidth, 0),
		style:            style,
		initialPrefWidth: prefWidth,
		blinkTime:        DefaultBlinkTime,
		cursorOn:         true,
		now:              time.Now,
		clipboard:        stage.DefaultClipboard(),
	}
	f.lastBlink = f.now()
	f.Layout()
	f.Width = f.PrefWidth
	f.Height = f.PrefHeight
	return f
}

// NewTextFieldFromSkin creates a field styled by the skin's named textfield
// style.
func NewTextFieldFromSkin(skin *stage.Skin, name string, prefWidth float32, styleName string) (*TextField, error) {
	style, err := StyleFromSkin(skin, styleName)
	if err != nil {
		return nil, err
	}
	return NewTextField(name, prefWidth, style), nil
}

func (f *TextField) Style() *TextFieldStyle {
	return f.style
}

// SetStyle swaps the look of the field, keeping its text and cursor. Like
// NewTextField it panics without a font.
func (f *TextField) SetStyle(style *TextFieldStyle) {
	if style == nil || style.Font == nil {
		panic("widgets: text field style must have a font")
	}
	f.style = style
	f.Layout()
	f.InvalidateHierarchy()
}

func (f *TextField) Layout() {
	font := f.style.Font
	bg := f.style.Background

	f.updateGlyphs()
	bounds := font.Bounds(f.runes)
	f.textAscent = bounds.Height
	f.textHeight = bounds.Height - font.Descent()*2

	f.PrefHeight = bg.BottomHeight() + bg.TopHeight() + f.textHeight
	f.PrefWidth = bg.LeftWidth() + bg.RightWidth() + f.initialPrefWidth
	f.LayoutDone()
}

// updateGlyphs refreshes the rune copy and glyph tables after the buffer
// changed. Both are O(n) per edit; the font measures a contiguous run, so the
// flat copy is rebuilt alongside the glyph tables.
func (f *TextField) updateGlyphs() {
	f.runes = f.buf.AppendRunes(f.runes[:0])
	f.glyphAdvances, f.glyphPositions = f.style.Font.ComputeGlyphAdvancesAndPositions(
		f.runes, f.glyphAdvances[:0], f.glyphPositions[:0])
}

func (f *TextField) blink() {
	now := f.now()
	if now.Sub(f.lastBlink) > f.blinkTime {
		f.cursorOn = !f.cursorOn
		f.lastBlink = now
	}
}

func (f *TextField) restartBlink() {
	f.cursorOn = true
	f.lastBlink = f.now()
}

func (f *TextField) calculateOffsets() {
	bg := f.style.Background
	positions := f.glyphPositions
	n := len(f.runes)

	position := positions[f.cursor]
	distance := position - stage.Absf32(f.renderOffset)
	visibleWidth := f.Width - bg.LeftWidth() - bg.RightWidth()

	// keep the cursor inside the visible area
	if distance <= 0 {
		if f.cursor > 0 {
			f.renderOffset = -positions[f.cursor-1]
		} else {
			f.renderOffset = 0
		}
	} else if distance > visibleWidth {
		f.renderOffset -= distance - visibleWidth
	}

	// first visible character
	f.visibleTextStart = 0
	f.textOffset = 0
	start := stage.Absf32(f.renderOffset)
	var startPos float32
	for i, pos := range positions {
		if pos >= start {
			f.visibleTextStart = i
			startPos = pos
			f.textOffset = pos - start
			break
		}
	}

	// last visible character
	f.visibleTextEnd = min(n, f.cursor+1)
	for ; f.visibleTextEnd <= n; f.visibleTextEnd++ {
		if positions[f.visibleTextEnd]-startPos > visibleWidth {
			break
		}
	}
	f.visibleTextEnd = max(0, f.visibleTextEnd-1)

	if f.hasSelection {
		from, to := f.selectionRange()
		minX := max(positions[from], positions[f.visibleTextStart])
		maxX := min(positions[to], positions[f.visibleTextEnd])
		f.selectionX = minX
		f.selectionWidth = maxX - minX
	}
}

func (f *TextField) Draw(b *stage.Batch, parentAlpha float32) {
	font := f.style.Font
	bg := f.style.Background

	if f.Invalidated() {
		f.Layout()
	}

	tint := stage.MulAlpha(f.Color, parentAlpha)
	b.SetColor(tint)
	bg.Draw(b, 0, 0, f.Width, f.Height)

	// vertically centred text box; the baseline leaves one descent of room
	// above and below the glyphs
	textTop := float32(int(f.Height/2)) - float32(int(f.textHeight/2))
	baseline := textTop - font.Descent() + f.textAscent
	f.calculateOffsets()

	left := bg.LeftWidth()
	b.PushClip(left, 0, f.Width-left-bg.RightWidth(), f.Height)
	if f.hasSelection && f.selectionWidth > 0 {
		b.Draw(f.style.Selection, left+f.selectionX+f.renderOffset, textTop, f.selectionWidth, f.textHeight)
	}
	b.SetColor(stage.MulAlpha(f.style.FontColor, parentAlpha))
	font.Draw(b, f.runes, left+f.textOffset, baseline, f.visibleTextStart, f.visibleTextEnd)
	b.SetColor(tint)
	b.PopClip()

	if f.HasKeyboardFocus(f) {
		f.blink()
		if f.cursorOn {
			cursor := f.style.Cursor
			cursor.Draw(b, left+f.glyphPositions[f.cursor]+f.renderOffset-1, textTop, cursor.TotalWidth(), f.textHeight)
		}
		if st := f.Stage(); st != nil {
			st.RequestRendering()
		}
	}
}

// TouchDown focuses the field and moves the cursor to the boundary left of
// the press. Only the primary pointer is handled.
func (f *TextField) TouchDown(x, y float32, pointer int) bool {
	if pointer != 0 || !f.Hit(x, y) {
		return false
	}
	f.RequestKeyboardFocus(f)
	f.OnscreenKeyboard().Show(true)

	x = x - f.style.Background.LeftWidth() - f.renderOffset
	f.cursor = len(f.runes)
	for i, pos := range f.glyphPositions {
		if pos > x {
			f.cursor = max(0, i-1)
			break
		}
	}
	f.hasSelection = false
	f.restartBlink()
	return true
}

func (f *TextField) KeyDown(combo stage.KeyCombo) bool {
	if !f.HasKeyboardFocus(f) {
		return false
	}

	switch {
	case combo.Mod.Has(stage.CommandModifier()):
		switch combo.Key {
		case stage.KeyV:
			f.paste()
		case stage.KeyC:
			f.copySelection()
		case stage.KeyX:
			if f.hasSelection {
				f.copySelection()
				f.deleteSelection()
				f.updateGlyphs()
			}
		case stage.KeyA:
			f.SelectAll()
		}

	case combo.Mod.Has(stage.ModShift):
		switch combo.Key {
		case stage.KeyLeft, stage.KeyRight, stage.KeyHome, stage.KeyEnd:
			if !f.hasSelection {
				f.selectionStart = f.cursor
				f.hasSelection = true
			}
			f.moveCursor(combo.Key)
		}

	default:
		switch combo.Key {
		case stage.KeyLeft, stage.KeyRight, stage.KeyHome, stage.KeyEnd:
			f.hasSelection = false
			f.moveCursor(combo.Key)
		}
	}

	g.Clamp(0, &f.cursor, len(f.runes))
	return true
}

func (f *TextField) moveCursor(key stage.KeyCode) {
	switch key {
	case stage.KeyLeft:
		f.cursor--
	case stage.KeyRight:
		f.cursor++
	case stage.KeyHome:
		f.cursor = 0
	case stage.KeyEnd:
		f.cursor = len(f.runes)
	}
	f.restartBlink()
}

func (f *TextField) KeyTyped(ch rune) bool {
	if !f.HasKeyboardFocus(f) {
		return false
	}
	n := len(f.runes)

	switch {
	case ch == stage.RuneBackspace:
		if f.hasSelection {
			f.deleteSelection()
			f.updateGlyphs()
		} else if f.cursor > 0 {
			f.buf.Delete(f.cursor-1, f.cursor)
			f.cursor--
			f.updateGlyphs()
		}

	case ch == stage.RuneDelete:
		if f.hasSelection {
			f.deleteSelection()
			f.updateGlyphs()
		} else if f.cursor < n {
			f.buf.Delete(f.cursor, f.cursor+1)
			f.updateGlyphs()
		}

	case f.style.Font.ContainsCharacter(ch):
		if f.hasSelection {
			f.deleteSelection()
		}
		f.buf.Insert(f.cursor, ch)
		f.cursor++
		f.updateGlyphs()
	}

	if f.listener != nil {
		f.listener.KeyTyped(f, ch)
	}
	return true
}

func (f *TextField) selectionRange() (int, int) {
	from, to := f.selectionStart, f.cursor
	if to < from {
		from, to = to, from
	}
	return from, to
}

// deleteSelection removes the selected runes and leaves the cursor where
// they started. Callers refresh the glyphs.
func (f *TextField) deleteSelection() {
	from, to := f.selectionRange()
	f.buf.Delete(from, to)
	f.cursor = from
	f.hasSelection = false
}

func (f *TextField) copySelection() {
	if !f.hasSelection {
		return
	}
	from, to := f.selectionRange()
	f.clipboard.SetContents(string(f.runes[from:to]))
}

// paste inserts the clipboard text at the cursor, dropping characters the
// font cannot render. A selection is not replaced, only cleared.
func (f *TextField) paste() {
	content, ok := f.clipboard.Contents()
	if !ok {
		return
	}
	font := f.style.Font
	var accepted []rune
	for _, ch := range content {
		if font.ContainsCharacter(ch) {
			accepted = append(accepted, ch)
		}
	}
	f.buf.Insert(f.cursor, accepted...)
	f.cursor += len(accepted)
	f.hasSelection = false
	f.updateGlyphs()
}

func (f *TextField) Hit(x, y float32) bool {
	return x >= 0 && x < f.Width && y >= 0 && y < f.Height
}

// SetText replaces the text, moves the cursor to the start and clears the
// selection.
func (f *TextField) SetText(text string) {
	f.buf.Reset(text)
	f.cursor = 0
	f.hasSelection = false
	f.updateGlyphs()
	f.InvalidateHierarchy()
}

func (f *TextField) Text() string {
	return string(f.runes)
}

func (f *TextField) Cursor() int {
	return f.cursor
}

// SetCursor moves the cursor, clamped to the text, and clears the selection.
func (f *TextField) SetCursor(cursor int) {
	g.Clamp(0, &cursor, len(f.runes))
	f.cursor = cursor
	f.hasSelection = false
}

// Selection returns the selected range [from, to), ok is false when nothing
// is selected.
func (f *TextField) Selection() (from, to int, ok bool) {
	if !f.hasSelection {
		return f.cursor, f.cursor, false
	}
	from, to = f.selectionRange()
	return from, to, true
}

// SetSelection selects from anchor to cursor, both clamped to the text. The
// cursor ends up at cursor.
func (f *TextField) SetSelection(anchor, cursor int) {
	n := len(f.runes)
	g.Clamp(0, &anchor, n)
	g.Clamp(0, &cursor, n)
	f.selectionStart = anchor
	f.cursor = cursor
	f.hasSelection = anchor != cursor
}

func (f *TextField) SelectAll() {
	f.SetSelection(0, len(f.runes))
}

func (f *TextField) SetTextFieldListener(listener TextFieldListener) {
	f.listener = listener
}

// OnscreenKeyboard returns the keyboard the field shows on focus. Unless one
// was set, it drives the field's stage.
func (f *TextField) OnscreenKeyboard() OnscreenKeyboard {
	if f.keyboard != nil {
		return f.keyboard
	}
	if st := f.Stage(); st != nil {
		return DefaultOnscreenKeyboard{Input: st}
	}
	return DefaultOnscreenKeyboard{}
}

// SetOnscreenKeyboard replaces the keyboard; nil restores the default.
func (f *TextField) SetOnscreenKeyboard(keyboard OnscreenKeyboard) {
	f.keyboard = keyboard
}

func (f *TextField) SetClipboard(clipboard stage.Clipboard) {
	f.clipboard = clipboard
}

func (f *TextField) SetBlinkTime(d time.Duration) {
	f.blinkTime = d
}
