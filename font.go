package stage

import (
	"fmt"
	"unicode"

	"github.com/dboslee/lru"
)

// TextBounds is the size of a run of text. Height is the ascent; callers add
// the descent themselves when they need the full line box.
type TextBounds struct {
	Width  float32
	Height float32
}

// TextFont is what widgets need from a font: per-boundary glyph positions for
// cursor placement and hit testing, a coverage check, vertical metrics, and a
// way to emit the glyph run into a batch.
type TextFont interface {
	// ComputeGlyphAdvancesAndPositions appends to advances and positions one
	// entry per character boundary (len(text)+1 each) and returns them.
	// positions[0] is 0; the last advance is 0.
	ComputeGlyphAdvancesAndPositions(text []rune, advances, positions []float32) ([]float32, []float32)
	ContainsCharacter(ch rune) bool
	Bounds(text []rune) TextBounds
	// Descent is negative, measured downwards from the baseline.
	Descent() float32
	// Draw emits text[start:end] with its pen starting at x on the given
	// baseline, tinted with the batch color.
	Draw(b *Batch, text []rune, x, baseline float32, start, end int)
}

type glyphInfo struct {
	gid     GlyphId
	advance float32
	ok      bool
}

// Font is a registered face at a pixel size.
type Font struct {
	id    FontId
	size  float32
	scale float32

	ascent  float32
	descent float32
	lineGap float32

	glyphs *lru.Cache[rune, glyphInfo]
}

var _ TextFont = (*Font)(nil)

func NewFont(id FontId, size float32) (*Font, error) {
	if ParsedFace(id) == nil {
		return nil, fmt.Errorf("%w: id %d", ErrFontNotFound, id)
	}
	face := GetFace(id)
	scale := size * face.InvUPM
	return &Font{
		id:      id,
		size:    size,
		scale:   scale,
		ascent:  face.Ascender * scale,
		descent: face.Descender * scale,
		lineGap: face.LineGap * scale,
		glyphs:  lru.New[rune, glyphInfo](),
	}, nil
}

func (f *Font) Id() FontId { return f.id }

func (f *Font) Size() float32 { return f.size }

func (f *Font) Ascent() float32 { return f.ascent }

func (f *Font) Descent() float32 {
	return f.descent
}

func (f *Font) LineHeight() float32 {
	return f.ascent - f.descent + f.lineGap
}

func (f *Font) glyph(ch rune) glyphInfo {
	if info, ok := f.glyphs.Get(ch); ok {
		return info
	}
	var info glyphInfo
	if face := ParsedFace(f.id); face != nil && !unicode.IsControl(ch) {
		gid, ok := face.NominalGlyph(ch)
		if ok && gid != 0 {
			info = glyphInfo{gid: gid, advance: face.HorizontalAdvance(gid) * f.scale, ok: true}
		}
	}
	f.glyphs.Set(ch, info)
	return info
}

// ContainsCharacter reports whether the face maps ch to a real glyph.
// Control characters are never contained.
func (f *Font) ContainsCharacter(ch rune) bool {
	return f.glyph(ch).ok
}

func (f *Font) ComputeGlyphAdvancesAndPositions(text []rune, advances, positions []float32) ([]float32, []float32) {
	var x float32
	for _, ch := range text {
		adv := f.glyph(ch).advance
		advances = append(advances, adv)
		positions = append(positions, x)
		x += adv
	}
	advances = append(advances, 0)
	positions = append(positions, x)
	return advances, positions
}

func (f *Font) Bounds(text []rune) TextBounds {
	var width float32
	for _, ch := range text {
		width += f.glyph(ch).advance
	}
	return TextBounds{Width: width, Height: f.ascent}
}

func (f *Font) Draw(b *Batch, text []rune, x, baseline float32, start, end int) {
	start = max(0, start)
	end = min(end, len(text))
	for i := start; i < end; i++ {
		info := f.glyph(text[i])
		if info.ok {
			b.DrawGlyph(f.id, info.gid, x, baseline, f.size, info.advance)
		}
		x += info.advance
	}
}
