package stage

type f32 = float32

type Vec2 = [2]f32
type Vec4 = [4]f32

func N4(v f32) Vec4 {
	return [4]f32{v, v, v, v}
}

// inset order follows css padding: top right bottom left
const (
	PAD_TOP    = 0
	PAD_RIGHT  = 1
	PAD_BOTTOM = 2
	PAD_LEFT   = 3
)

type Rect struct {
	Origin Vec2
	Size   Vec2
}

func RectXYWH(x, y, w, h f32) Rect {
	return Rect{Origin: Vec2{x, y}, Size: Vec2{w, h}}
}

// RectContainsPoint is inclusive on the top-left edges and exclusive on the
// bottom-right ones.
func RectContainsPoint(r Rect, p Vec2) bool {
	tl := r.Origin
	br := Vec2Add(r.Origin, r.Size)
	return p[0] >= tl[0] && p[0] < br[0] && p[1] >= tl[1] && p[1] < br[1]
}

func RectIntersect(r1 Rect, r2 Rect) Rect {
	var lo, hi Vec2
	lo[0] = max(r1.Origin[0], r2.Origin[0])
	lo[1] = max(r1.Origin[1], r2.Origin[1])

	hi1 := Vec2Add(r1.Origin, r1.Size)
	hi2 := Vec2Add(r2.Origin, r2.Size)
	hi[0] = min(hi1[0], hi2[0])
	hi[1] = min(hi1[1], hi2[1])

	r3 := Rect{Origin: lo, Size: Vec2Sub(hi, lo)}
	if r3.Size[0] < 0 || r3.Size[1] < 0 {
		return Rect{}
	}
	return r3
}

func Vec2Add(v1 Vec2, v2 Vec2) Vec2 {
	return Vec2{
		v1[0] + v2[0],
		v1[1] + v2[1],
	}
}

func Vec2Sub(v1 Vec2, v2 Vec2) Vec2 {
	return Vec2{
		v1[0] - v2[0],
		v1[1] - v2[1],
	}
}

func Vec2Mul(v1 Vec2, f float32) Vec2 {
	return Vec2{
		v1[0] * f,
		v1[1] * f,
	}
}

func Absf32(x f32) f32 {
	if x < 0 {
		return -x
	}
	return x
}
