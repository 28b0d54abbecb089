package stage

import (
	g "go.hasen.dev/generic"
)

type ClipStackOp int

const (
	_ ClipStackOp = iota
	ClipPush
	ClipPop
)

// Surface is one flat drawing command. A surface is a solid rectangle, an
// image stretched over its rect, or a glyph.
//
// For glyphs, Rect.Origin is the pen position on the baseline and
// Rect.Size is (advance, font size in pixels).
//
// Surfaces must stay flat (no pointers) because batches hash their raw bytes.
type Surface struct {
	Rect  Rect
	Color Color

	ImageId ImageId

	FontId  FontId
	GlyphId GlyphId

	Clip ClipStackOp
}

func (s Surface) IsGlyph() bool {
	return s.FontId > 0 && s.GlyphId > 0
}

// Batch collects the surfaces of one frame. Draw calls are positioned
// relative to the current translation and tinted with the current color.
type Batch struct {
	surfaces []Surface
	color    Color
	offsets  []Vec2
	offset   Vec2
	clips    int
}

func NewBatch() *Batch {
	b := &Batch{surfaces: make([]Surface, 0, 1024)}
	b.Begin()
	return b
}

// Begin resets the batch for a new frame.
func (b *Batch) Begin() {
	g.ResetSlice(&b.surfaces)
	g.ResetSlice(&b.offsets)
	b.offset = Vec2{}
	b.color = White
	b.clips = 0
}

// End closes any clip left open and returns the frame's surfaces. The slice is
// reused by the next Begin.
func (b *Batch) End() []Surface {
	for b.clips > 0 {
		b.PopClip()
	}
	return b.surfaces
}

func (b *Batch) Surfaces() []Surface {
	return b.surfaces
}

func (b *Batch) SetColor(c Color) {
	b.color = c
}

func (b *Batch) Color() Color {
	return b.color
}

// PushTranslate moves the origin of subsequent draws by (dx, dy) until the
// matching PopTranslate.
func (b *Batch) PushTranslate(dx, dy float32) {
	g.Append(&b.offsets, b.offset)
	b.offset = Vec2Add(b.offset, Vec2{dx, dy})
}

func (b *Batch) PopTranslate() {
	if len(b.offsets) == 0 {
		panic("batch: uneven push/pop translate")
	}
	b.offset = b.offsets[len(b.offsets)-1]
	b.offsets = b.offsets[:len(b.offsets)-1]
}

func (b *Batch) rect(x, y, w, h float32) Rect {
	return RectXYWH(x+b.offset[0], y+b.offset[1], w, h)
}

func (b *Batch) push(s Surface) {
	g.Append(&b.surfaces, s)
}

// Draw stretches a region over the rectangle. Solid regions are filled with
// their color; both are tinted with the batch color.
func (b *Batch) Draw(region TextureRegion, x, y, w, h float32) {
	if w <= 0 || h <= 0 {
		return
	}
	s := Surface{Rect: b.rect(x, y, w, h), Color: b.color}
	if region.Image != 0 {
		s.ImageId = region.Image
	} else {
		s.Color = Tint(region.Color, b.color)
	}
	if s.Color.A == 0 {
		return
	}
	b.push(s)
}

func (b *Batch) DrawRect(x, y, w, h float32) {
	b.Draw(TextureRegion{Color: White}, x, y, w, h)
}

// DrawGlyph places a glyph with its pen at (x, baseline).
func (b *Batch) DrawGlyph(font FontId, glyph GlyphId, x, baseline, size, advance float32) {
	b.push(Surface{
		Rect:    b.rect(x, baseline, advance, size),
		Color:   b.color,
		FontId:  font,
		GlyphId: glyph,
	})
}

// PushClip restricts subsequent surfaces to the rectangle until PopClip.
func (b *Batch) PushClip(x, y, w, h float32) {
	b.clips++
	b.push(Surface{Rect: b.rect(x, y, max(0, w), max(0, h)), Clip: ClipPush})
}

func (b *Batch) PopClip() {
	if b.clips == 0 {
		panic("batch: uneven push/pop clip")
	}
	b.clips--
	b.push(Surface{Clip: ClipPop})
}

// Hash summarizes the current surfaces; hosts compare it between frames to
// skip rebuilding unchanged output.
func (b *Batch) Hash() uint64 {
	return hashSurfaces(b.surfaces)
}
