package stage

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

type Color = color.NRGBA

var White = Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

var ErrBadColor = errors.New("bad color")

// HSLAColor converts the hsla convention used throughout the skins
// (H: 0-360, S: 0-100, L: 0-100, A: 0-1) to rgb.
func HSLAColor(c Vec4) Color {
	h := c[0] / 360
	s := c[1] / 100
	l := c[2] / 100

	r, g, b := FloatHSLToRGB(h, s, l)
	return Color{
		R: uint8(r * 0xff),
		G: uint8(g * 0xff),
		B: uint8(b * 0xff),
		A: uint8(c[3] * 0xff),
	}
}

// taken from https://github.com/alessani/ColorConverter/blob/master/ColorSpaceUtilities.h
func FloatHSLToRGB(h f32, s f32, l f32) (f32, f32, f32) {
	if s == 0.0 {
		return l, l, l
	}

	var temp2 f32
	if l < 0.5 {
		temp2 = l * (1.0 + s)
	} else {
		temp2 = l + s - l*s
	}
	temp1 := 2.0*l - temp2

	temp := [3]f32{
		h + 1.0/3.0,
		h,
		h - 1.0/3.0,
	}

	for i := range temp {
		if temp[i] < 0.0 {
			temp[i] += 1.0
		}
		if temp[i] > 1.0 {
			temp[i] -= 1.0
		}

		switch {
		case 6.0*temp[i] < 1.0:
			temp[i] = temp1 + (temp2-temp1)*6.0*temp[i]
		case 2.0*temp[i] < 1.0:
			temp[i] = temp2
		case 3.0*temp[i] < 2.0:
			temp[i] = temp1 + (temp2-temp1)*((2.0/3.0)-temp[i])*6.0
		default:
			temp[i] = temp1
		}
	}

	return temp[0], temp[1], temp[2]
}

// MulAlpha scales the alpha channel, used for parent alpha and tints.
func MulAlpha(c Color, alpha f32) Color {
	alpha = max(0, min(alpha, 1))
	c.A = uint8(f32(c.A) * alpha)
	return c
}

// Tint multiplies two colors channel by channel.
func Tint(c Color, t Color) Color {
	return Color{
		R: uint8(uint16(c.R) * uint16(t.R) / 0xff),
		G: uint8(uint16(c.G) * uint16(t.G) / 0xff),
		B: uint8(uint16(c.B) * uint16(t.B) / 0xff),
		A: uint8(uint16(c.A) * uint16(t.A) / 0xff),
	}
}

// ParseColor accepts "#rgb", "#rrggbb", "#rrggbbaa" and "hsla(h, s, l, a)".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "hsla(") && strings.HasSuffix(s, ")"):
		parts := strings.Split(s[len("hsla("):len(s)-1], ",")
		if len(parts) != 4 {
			return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		var v Vec4
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
			if err != nil {
				return Color{}, fmt.Errorf("%w: %q: %v", ErrBadColor, s, err)
			}
			v[i] = f32(f)
		}
		return HSLAColor(v), nil
	}
	return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
}

func parseHex(hex string) (Color, error) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Color{}, fmt.Errorf("%w: #%s", ErrBadColor, hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: #%s", ErrBadColor, hex)
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
