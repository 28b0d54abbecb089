package tw

import (
	. "go.hasen.dev/stage"
	"go.hasen.dev/stage/widgets"
)

// TailWind style way to build up text field styles in code!
//
//	style := tw.TFS(tw.Font(font), tw.FontColor(0, 0, 10, 1),
//		tw.Background(6, 0, 0, 96, 1), tw.CursorColor(210, 80, 50, 1))

type StyleFn func(*widgets.TextFieldStyle)
type f32 = float32

// TextFieldStyle
func TFS(fns ...StyleFn) *widgets.TextFieldStyle {
	s := &widgets.TextFieldStyle{FontColor: White}
	for _, f := range fns {
		f(s)
	}
	return s
}

// TextFieldStyle With; s is copied, not modified
func TFSW(s *widgets.TextFieldStyle, fns ...StyleFn) *widgets.TextFieldStyle {
	c := *s
	for _, f := range fns {
		f(&c)
	}
	return &c
}

func Compose(fns ...StyleFn) StyleFn {
	return func(s *widgets.TextFieldStyle) {
		for _, f := range fns {
			f(s)
		}
	}
}

func Font(font TextFont) StyleFn {
	return func(s *widgets.TextFieldStyle) {
		s.Font = font
	}
}

func FontColor(h, s, l, a f32) StyleFn {
	return FontColorV(Vec4{h, s, l, a})
}

func FontColorV(v Vec4) StyleFn {
	return func(s *widgets.TextFieldStyle) {
		s.FontColor = HSLAColor(v)
	}
}

// Background is a flat color patch with pad on every side
func Background(pad, h, s, l, a f32) StyleFn {
	return func(st *widgets.TextFieldStyle) {
		st.Background = NewColorPatch(HSLAColor(Vec4{h, s, l, a}), pad, pad, pad, pad)
	}
}

func BackgroundPatch(p *NinePatch) StyleFn {
	return func(s *widgets.TextFieldStyle) {
		s.Background = p
	}
}

// RoundedBackground generates a rounded patch; Padding doubles as the text inset.
func RoundedBackground(rp RoundedPatch) StyleFn {
	return func(s *widgets.TextFieldStyle) {
		s.Background = GenerateRoundedPatch(rp)
	}
}

// CursorColor gives a 2px wide cursor
func CursorColor(h, s, l, a f32) StyleFn {
	return func(st *widgets.TextFieldStyle) {
		st.Cursor = NewColorPatch(HSLAColor(Vec4{h, s, l, a}), 1, 1, 0, 0)
	}
}

func Cursor(p *NinePatch) StyleFn {
	return func(s *widgets.TextFieldStyle) {
		s.Cursor = p
	}
}

func SelectionColor(h, s, l, a f32) StyleFn {
	return func(st *widgets.TextFieldStyle) {
		st.Selection = ColorRegion(HSLAColor(Vec4{h, s, l, a}))
	}
}

func Selection(r TextureRegion) StyleFn {
	return func(s *widgets.TextFieldStyle) {
		s.Selection = r
	}
}

func NoBackground(s *widgets.TextFieldStyle) {
	s.Background = nil
}

func NoCursor(s *widgets.TextFieldStyle) {
	s.Cursor = nil
}
