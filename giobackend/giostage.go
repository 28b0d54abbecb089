package giobackend

import (
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/io/clipboard"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/transfer"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"github.com/dboslee/lru"
	ot "github.com/go-text/typesetting/font/opentype"

	"go.hasen.dev/stage"
)

const textMime = "application/text"

var window *app.Window

func SetupWindow(title string, width int, height int) {
	window = new(app.Window)
	window.Option(app.Title(title))
	window.Option(app.Size(unit.Dp(width), unit.Dp(height)))
}

var frameMacro op.CallOp
var lastFrameHash uint64

// Run hosts the stage in the window created by SetupWindow and blocks until
// the window is closed. Input is translated into stage events; the system
// clipboard is bridged to stage.DefaultClipboard.
func Run(st *stage.Stage) {
	if window == nil {
		SetupWindow("stage", 800, 600)
	}
	st.SetWakeup(window.Invalidate)

	// hard limit fps so we don't eat up cpu resources during mouse movements, resize, etc
	const fps = 60
	const syncMS = 1000 / fps
	frameTicker := time.NewTicker(time.Millisecond * syncMS)

	var pendingCopy *string
	clipboardCache := stage.DefaultClipboard()
	clipboardCache.OnSet = func(text string) {
		pendingCopy = &text
		window.Invalidate()
	}

	// a paste shortcut waits here until the system clipboard has been read
	var paste stage.PendingPaste

	var keyboardShown bool
	var batch = stage.NewBatch()

	var tag = new(int) // just a thing that gio events can attach to
	go func() {
		for {
			switch e := window.Event().(type) {
			case app.DestroyEvent:
				if e.Err != nil {
					log.Println(e.Err)
					os.Exit(1)
				}
				os.Exit(0)
			case app.FrameEvent:
				// force waiting for frame time
				<-frameTicker.C

				dpi = e.Metric.PxPerDp
				now := e.Now
				ctx := app.NewContext(new(op.Ops), e)
				size := stage.Vec2Mul(imgVec2(e.Size), 1/dpi)
				if size[0] != st.Width || size[1] != st.Height {
					st.SetViewport(size[0], size[1])
					lastFrameHash = 0
				}

				// to not receive events about mouse movement outside window
				clip.Rect{Max: e.Size}.Push(ctx.Ops)

				ctx.Execute(key.FocusCmd{Tag: tag})
				event.Op(ctx.Ops, tag)

				var readClipboard bool
				for {
					e, ok := ctx.Event(
						pointer.Filter{
							Target: tag,
							Kinds:  pointer.Press | pointer.Release | pointer.Drag | pointer.Cancel,
						},
						key.Filter{
							Focus:    tag,
							Optional: key.ModSuper | key.ModAlt | key.ModCommand | key.ModShift | key.ModCtrl,
						},
						key.Filter{
							Focus:    tag,
							Optional: key.ModSuper | key.ModAlt | key.ModCommand | key.ModShift | key.ModCtrl,
							Name:     key.NameTab,
						},
						key.FocusFilter{
							Target: tag,
						},
						transfer.TargetFilter{
							Target: tag,
							Type:   textMime,
						},
					)
					if !ok {
						break
					}
					switch e := e.(type) {
					case pointer.Event:
						p := stage.Vec2Mul(f32Vec2(e.Position), 1/dpi)
						id := pointerIndex(e)
						switch e.Kind {
						case pointer.Press:
							st.TouchDown(p[0], p[1], id)
						case pointer.Drag:
							st.TouchDragged(p[0], p[1], id)
						case pointer.Release, pointer.Cancel:
							st.TouchUp(p[0], p[1], id)
						}

					case key.Event:
						mods := stage.Modifiers(e.Modifiers)
						st.SetModifiers(mods)
						keyCode := mapKeyCode(e.Name)

						if e.State == key.Release {
							if keyCode != stage.KeyCodeNone {
								st.KeyUp(keyCode)
							}
							continue
						}

						if keyCode == stage.KeyV && mods.Has(stage.CommandModifier()) {
							paste.Request(mods, now)
							readClipboard = true
							continue
						}
						if keyCode != stage.KeyCodeNone {
							st.KeyDown(keyCode)
						}
						switch e.Name {
						case key.NameDeleteBackward:
							st.KeyTyped(stage.RuneBackspace)
						case key.NameDeleteForward:
							st.KeyTyped(stage.RuneDelete)
						case key.NameReturn, key.NameEnter:
							st.KeyTyped('\r')
						case key.NameTab:
							st.KeyTyped('\t')
						}

					case key.EditEvent:
						for _, ch := range e.Text {
							st.KeyTyped(ch)
						}

					case transfer.DataEvent:
						if e.Type != textMime {
							continue
						}
						f := e.Open()
						data, err := io.ReadAll(f)
						f.Close()
						if err != nil {
							log.Printf("clipboard read: %v", err)
							paste.Cancel()
							continue
						}
						clipboardCache.Refresh(string(data))
						if mods, ok := paste.Take(now); ok {
							st.SetModifiers(mods)
							st.KeyDown(stage.KeyV)
							st.KeyUp(stage.KeyV)
						}

					case key.FocusEvent:
						if !e.Focus {
							// key releases won't reach us while unfocused
							st.ReleaseAllKeys()
						}
					case key.SnippetEvent, key.SelectionEvent:
					default:
						fmt.Printf("unhandled %#v\n", e)
					}
				}

				if v := st.OnscreenKeyboardVisible(); v != keyboardShown {
					keyboardShown = v
					ctx.Execute(key.SoftKeyboardCmd{Show: v})
				}

				st.Draw(batch)
				if h := batch.Hash(); h != lastFrameHash {
					lastFrameHash = h
					frameMacro = renderSurfaces(batch.Surfaces())
				}

				frameMacro.Add(ctx.Ops)
				e.Frame(ctx.Ops)

				if pendingCopy != nil {
					e.Source.Execute(clipboard.WriteCmd{
						Type: textMime,
						Data: io.NopCloser(strings.NewReader(*pendingCopy)),
					})
					pendingCopy = nil
				}
				if readClipboard {
					e.Source.Execute(clipboard.ReadCmd{Tag: tag})
				}
				// an empty system clipboard never answers
				paste.Expire(now)

				if st.TakeRenderRequest() || st.Pending() {
					window.Invalidate()
				}
			}
		}
	}()
	app.Main()
}

// pointerIndex maps the primary mouse button and the first touch to pointer 0.
func pointerIndex(e pointer.Event) int {
	if e.Source == pointer.Mouse {
		if e.Buttons == 0 || e.Buttons.Contain(pointer.ButtonPrimary) {
			return 0
		}
		return 1
	}
	return int(e.PointerID)
}

func imgPoint(v stage.Vec2) image.Point {
	return image.Point{
		X: int(v[0]),
		Y: int(v[1]),
	}
}

func f32Point(v stage.Vec2) f32.Point {
	return f32.Pt(v[0], v[1])
}

func f32Vec2(p f32.Point) stage.Vec2 {
	return stage.Vec2{p.X, p.Y}
}

func imgVec2(p image.Point) stage.Vec2 {
	return stage.Vec2{float32(p.X), float32(p.Y)}
}

var dpi float32 = 1

func renderSurfaces(surfaces []stage.Surface) op.CallOp {
	ops := new(op.Ops)
	macro := op.Record(ops)

	// support hidpi
	op.Affine(f32.Affine2D{}.Scale(f32.Pt(0, 0), f32.Pt(dpi, dpi))).Add(ops)

	var clipStack []clip.Stack

	for _, s := range surfaces {
		r := s.Rect
		// FIXME: clip rect uses ints, but we should build the shape from float32 instead
		rect := clip.Rect{
			Min: imgPoint(r.Origin),
			Max: imgPoint(stage.Vec2Add(r.Origin, r.Size)),
		}

		switch {
		case s.Clip == stage.ClipPush:
			clipStack = append(clipStack, rect.Push(ops))

		case s.Clip == stage.ClipPop:
			if len(clipStack) == 0 {
				panic("surface rendering: uneven push/pop clip stack")
			}
			clipStack[len(clipStack)-1].Pop()
			clipStack = clipStack[:len(clipStack)-1]

		case s.IsGlyph():
			face := stage.GetFace(s.FontId)
			scale := r.Size[1] * face.InvUPM

			// font units are y-up; the origin is the pen on the baseline
			var affine f32.Affine2D
			affine = affine.Scale(f32.Pt(0, 0), f32.Pt(scale, -scale))
			affine = affine.Offset(f32Point(r.Origin))

			stack := op.Affine(affine).Push(ops)
			shape := clip.Outline{Path: FontGlyphPathSpec(s.FontId, s.GlyphId)}.Op().Push(ops)
			paint.ColorOp{Color: s.Color}.Add(ops)
			paint.PaintOp{}.Add(ops)
			shape.Pop()
			stack.Pop()

		case s.ImageId > 0:
			img := stage.LookupImage(s.ImageId)
			if img == nil || img.Bounds().Empty() {
				continue
			}
			imgOp, ok := imageOpCache.Get(img)
			if !ok {
				imgOp = paint.NewImageOp(img)
				imageOpCache.Set(img, imgOp)
			}

			b := img.Bounds()
			var affine f32.Affine2D
			affine = affine.Scale(f32.Pt(0, 0), f32.Pt(r.Size[0]/float32(b.Dx()), r.Size[1]/float32(b.Dy())))
			affine = affine.Offset(f32Point(r.Origin))

			var opacity paint.OpacityStack
			translucent := s.Color.A < 0xff
			if translucent {
				opacity = paint.PushOpacity(ops, float32(s.Color.A)/0xff)
			}
			stack := op.Affine(affine).Push(ops)
			shape := clip.Rect{Max: b.Size()}.Push(ops)
			imgOp.Add(ops)
			paint.PaintOp{}.Add(ops)
			shape.Pop()
			stack.Pop()
			if translucent {
				opacity.Pop()
			}

		default:
			paint.FillShape(ops, s.Color, rect.Op())
		}
	}

	if len(clipStack) != 0 {
		panic(fmt.Sprintf("uneven clip stack %d", len(clipStack)))
	}

	return macro.Stop()
}

var imageOpCache = lru.New[*image.RGBA, paint.ImageOp]()

// -----------------------------------------------------------------------------
//      Text Rendering
// -----------------------------------------------------------------------------

type FontGlyphKey struct {
	FontId  stage.FontId
	GlyphId stage.GlyphId
}

var glyphPathCache = lru.New[FontGlyphKey, clip.PathSpec]()

func FontGlyphPathSpec(fontId stage.FontId, glyphId stage.GlyphId) clip.PathSpec {
	key := FontGlyphKey{FontId: fontId, GlyphId: glyphId}
	if cached, ok := glyphPathCache.Get(key); ok {
		return cached
	}

	outline := stage.GlyphOutline(fontId, glyphId)
	ops := new(op.Ops)

	var path clip.Path
	path.Begin(ops)

	for _, segment := range outline.Segments {
		switch segment.Op {
		case ot.SegmentOpMoveTo:
			path.MoveTo(f32.Point(segment.Args[0]))
		case ot.SegmentOpLineTo:
			path.LineTo(f32.Point(segment.Args[0]))
		case ot.SegmentOpQuadTo:
			path.QuadTo(f32.Point(segment.Args[0]), f32.Point(segment.Args[1]))
		case ot.SegmentOpCubeTo:
			path.CubeTo(f32.Point(segment.Args[0]), f32.Point(segment.Args[1]), f32.Point(segment.Args[2]))
		}
	}

	pathSpec := path.End()

	// don't cache the empty outline of an unknown glyph
	if len(outline.Segments) > 0 {
		glyphPathCache.Set(key, pathSpec)
	}
	return pathSpec
}

func mapKeyCode(name key.Name) stage.KeyCode {
	switch name {
	case key.NameLeftArrow:
		return stage.KeyLeft
	case key.NameRightArrow:
		return stage.KeyRight
	case key.NameUpArrow:
		return stage.KeyUp
	case key.NameDownArrow:
		return stage.KeyDown
	case key.NameReturn, key.NameEnter:
		return stage.KeyEnter
	case key.NameEscape:
		return stage.KeyEscape
	case key.NameHome:
		return stage.KeyHome
	case key.NameEnd:
		return stage.KeyEnd
	case key.NameDeleteBackward:
		return stage.KeyDeleteBackward
	case key.NameDeleteForward:
		return stage.KeyDeleteForward
	case key.NamePageUp:
		return stage.KeyPageUp
	case key.NamePageDown:
		return stage.KeyPageDown
	case key.NameTab:
		return stage.KeyTab
	case key.NameSpace:
		return stage.KeySpace
	case key.NameCtrl:
		return stage.KeyCtrl
	case key.NameShift:
		return stage.KeyShift
	case key.NameAlt:
		return stage.KeyAlt
	case key.NameSuper:
		return stage.KeySuper
	case key.NameCommand:
		return stage.KeyCommand
	}
	if utf8.RuneCountInString(string(name)) == 1 {
		r, _ := utf8.DecodeRuneInString(string(name))
		if r < 128 {
			return stage.KeyCode(r)
		}
	}
	return stage.KeyCodeNone
}
