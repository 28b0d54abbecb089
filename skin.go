package stage

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/pelletier/go-toml/v2"
)

const LOG_SKIN = false

var ErrUnknownResource = errors.New("unknown skin resource")

// Skin is a set of named resources loaded from a toml file:
//
//	[fonts.default]
//	family = "Go"          # or file = "fonts/Inter.ttf"
//	size = 16
//
//	[colors]
//	text = "#202020"
//	selection = "hsla(210, 80, 60, 0.5)"
//
//	[images.ui]
//	file = "ui.png"
//
//	[patches.field]
//	image = "ui"
//	rect = [0, 0, 24, 24]       # x y w h
//	insets = [6, 6, 6, 6]       # top right bottom left
//
//	[patches.cursor]
//	color = "text"
//	insets = [0, 1, 0, 1]
//
//	[patches.rounded]
//	rounded = { radius = 4, fill = "#fff", border = "#999", border_width = 1, padding = 4 }
//
//	[regions.selection]
//	color = "selection"
//
//	[textfield.default]
//	font = "default"
//	font_color = "text"
//	cursor = "cursor"
//	selection = "selection"
//	background = "field"
//
// Color references accept either a name from [colors] or a literal.
type Skin struct {
	Path string

	fonts      map[string]*Font
	colors     map[string]Color
	images     map[string]*image.RGBA
	patches    map[string]*NinePatch
	regions    map[string]TextureRegion
	textFields map[string]TextFieldStyleDef

	hash uint64
}

// TextFieldStyleDef names the resources of a text field style. Widgets
// resolve it into their own style type.
type TextFieldStyleDef struct {
	Font       string `toml:"font"`
	FontColor  string `toml:"font_color"`
	Cursor     string `toml:"cursor"`
	Selection  string `toml:"selection"`
	Background string `toml:"background"`
}

type skinFile struct {
	Fonts      map[string]fontDef           `toml:"fonts"`
	Colors     map[string]string            `toml:"colors"`
	Images     map[string]imageDef          `toml:"images"`
	Patches    map[string]patchDef          `toml:"patches"`
	Regions    map[string]regionDef         `toml:"regions"`
	TextFields map[string]TextFieldStyleDef `toml:"textfield"`
}

type fontDef struct {
	File   string  `toml:"file"`
	Family string  `toml:"family"`
	Size   float32 `toml:"size"`
}

type imageDef struct {
	File string `toml:"file"`
}

type regionDef struct {
	Image string `toml:"image"`
	Rect  []int  `toml:"rect"`
	Color string `toml:"color"`
}

type roundedDef struct {
	Radius      float32 `toml:"radius"`
	Fill        string  `toml:"fill"`
	Border      string  `toml:"border"`
	BorderWidth float32 `toml:"border_width"`
	Blur        float32 `toml:"blur"`
	Padding     float32 `toml:"padding"`
}

type patchDef struct {
	regionDef
	Insets  []float32   `toml:"insets"`
	Rounded *roundedDef `toml:"rounded"`
}

const defaultFontSize = 16

// LoadSkin reads and resolves a skin file. Relative file references are
// resolved against the skin's directory.
func LoadSkin(fpath string) (*Skin, error) {
	data, err := os.ReadFile(fpath)
	if err != nil {
		return nil, fmt.Errorf("load skin: %w", err)
	}
	skin, err := ParseSkin(data, filepath.Dir(fpath))
	if err != nil {
		return nil, fmt.Errorf("load skin %s: %w", fpath, err)
	}
	skin.Path = fpath
	return skin, nil
}

func ParseSkin(data []byte, baseDir string) (*Skin, error) {
	var file skinFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse skin: %w", err)
	}

	s := &Skin{
		fonts:      make(map[string]*Font),
		colors:     make(map[string]Color),
		images:     make(map[string]*image.RGBA),
		patches:    make(map[string]*NinePatch),
		regions:    make(map[string]TextureRegion),
		textFields: file.TextFields,
		hash:       xxhash.Sum64(data),
	}
	if s.textFields == nil {
		s.textFields = make(map[string]TextFieldStyleDef)
	}

	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}

	for name, def := range file.Colors {
		c, err := ParseColor(def)
		if err != nil {
			return nil, fmt.Errorf("color %q: %w", name, err)
		}
		s.colors[name] = c
	}

	for name, def := range file.Fonts {
		f, err := loadSkinFont(def, resolve)
		if err != nil {
			return nil, fmt.Errorf("font %q: %w", name, err)
		}
		s.fonts[name] = f
	}

	for name, def := range file.Images {
		img, _, err := LoadImage(resolve(def.File))
		if err != nil {
			return nil, fmt.Errorf("image %q: %w", name, err)
		}
		s.images[name] = img
	}

	for name, def := range file.Regions {
		r, err := s.buildRegion(def)
		if err != nil {
			return nil, fmt.Errorf("region %q: %w", name, err)
		}
		s.regions[name] = r
	}

	for name, def := range file.Patches {
		p, err := s.buildPatch(def)
		if err != nil {
			return nil, fmt.Errorf("patch %q: %w", name, err)
		}
		s.patches[name] = p
	}

	// validate style references up front so a typo fails at load time
	for name, def := range s.textFields {
		if _, err := s.Font(def.Font); err != nil {
			return nil, fmt.Errorf("textfield %q: %w", name, err)
		}
		for _, ref := range []struct {
			kind, name string
		}{{"patch", def.Cursor}, {"patch", def.Background}, {"region", def.Selection}, {"color", def.FontColor}} {
			if ref.name == "" {
				continue
			}
			var err error
			switch ref.kind {
			case "patch":
				_, err = s.Patch(ref.name)
			case "region":
				_, err = s.Region(ref.name)
			case "color":
				_, err = s.Color(ref.name)
			}
			if err != nil {
				return nil, fmt.Errorf("textfield %q: %w", name, err)
			}
		}
	}

	if LOG_SKIN {
		log.Printf("skin: %d fonts, %d colors, %d patches, %d regions, %d text field styles",
			len(s.fonts), len(s.colors), len(s.patches), len(s.regions), len(s.textFields))
	}
	return s, nil
}

func loadSkinFont(def fontDef, resolve func(string) string) (*Font, error) {
	size := def.Size
	if size <= 0 {
		size = defaultFontSize
	}

	var id FontId
	switch {
	case def.File != "":
		data, err := ReadFileContent(resolve(def.File))
		if err != nil {
			return nil, err
		}
		ids, err := UseFontBytes(data)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return nil, fmt.Errorf("%w: %s has no faces", ErrFontNotFound, def.File)
		}
		id = ids[0]
	case def.Family != "":
		id = LookupFamily(def.Family)
		if id == 0 {
			regular, _ := UseGoFonts()
			id = LookupFamily(def.Family)
			if id == 0 {
				if LOG_SKIN {
					log.Printf("skin: family %q not found, using Go", def.Family)
				}
				id = regular
			}
		}
	default:
		id, _ = UseGoFonts()
	}
	return NewFont(id, size)
}

func (s *Skin) buildRegion(def regionDef) (TextureRegion, error) {
	if def.Image == "" {
		c, err := s.Color(def.Color)
		if err != nil {
			return TextureRegion{}, err
		}
		return ColorRegion(c), nil
	}
	img, ok := s.images[def.Image]
	if !ok {
		return TextureRegion{}, fmt.Errorf("%w: image %q", ErrUnknownResource, def.Image)
	}
	rect := img.Bounds()
	if len(def.Rect) == 4 {
		rect = image.Rect(def.Rect[0], def.Rect[1], def.Rect[0]+def.Rect[2], def.Rect[1]+def.Rect[3])
	} else if len(def.Rect) != 0 {
		return TextureRegion{}, fmt.Errorf("rect wants [x, y, w, h], got %v", def.Rect)
	}
	return NewTextureRegion(img, rect), nil
}

func (s *Skin) buildPatch(def patchDef) (*NinePatch, error) {
	var insets Vec4
	switch len(def.Insets) {
	case 0:
	case 1:
		insets = N4(def.Insets[0])
	case 4:
		copy(insets[:], def.Insets)
	default:
		return nil, fmt.Errorf("insets wants [all] or [top, right, bottom, left], got %v", def.Insets)
	}

	switch {
	case def.Rounded != nil:
		rd := def.Rounded
		fill, err := s.Color(rd.Fill)
		if err != nil {
			return nil, err
		}
		var border Color
		if rd.Border != "" {
			if border, err = s.Color(rd.Border); err != nil {
				return nil, err
			}
		}
		return GenerateRoundedPatch(RoundedPatch{
			Radius:      rd.Radius,
			BorderWidth: rd.BorderWidth,
			Fill:        fill,
			Border:      border,
			Blur:        rd.Blur,
			Padding:     rd.Padding,
		}), nil

	case def.Image != "":
		region, err := s.buildRegion(def.regionDef)
		if err != nil {
			return nil, err
		}
		img := LookupImage(region.Image)
		return NewNinePatch(img,
			int(insets[PAD_LEFT]), int(insets[PAD_RIGHT]),
			int(insets[PAD_TOP]), int(insets[PAD_BOTTOM])), nil

	default:
		c, err := s.Color(def.Color)
		if err != nil {
			return nil, err
		}
		return NewColorPatch(c, insets[PAD_LEFT], insets[PAD_RIGHT], insets[PAD_TOP], insets[PAD_BOTTOM]), nil
	}
}

func (s *Skin) Font(name string) (*Font, error) {
	f, ok := s.fonts[name]
	if !ok {
		return nil, fmt.Errorf("%w: font %q", ErrUnknownResource, name)
	}
	return f, nil
}

// Color resolves a named color, falling back to parsing the reference as a
// literal.
func (s *Skin) Color(ref string) (Color, error) {
	if c, ok := s.colors[ref]; ok {
		return c, nil
	}
	c, err := ParseColor(ref)
	if err != nil {
		return Color{}, fmt.Errorf("%w: color %q", ErrUnknownResource, ref)
	}
	return c, nil
}

func (s *Skin) Patch(name string) (*NinePatch, error) {
	p, ok := s.patches[name]
	if !ok {
		return nil, fmt.Errorf("%w: patch %q", ErrUnknownResource, name)
	}
	return p, nil
}

// Region resolves a named region; a patch name is accepted too and yields
// the patch's centre.
func (s *Skin) Region(name string) (TextureRegion, error) {
	if r, ok := s.regions[name]; ok {
		return r, nil
	}
	if p, ok := s.patches[name]; ok {
		return p.patches[patchCenter], nil
	}
	return TextureRegion{}, fmt.Errorf("%w: region %q", ErrUnknownResource, name)
}

func (s *Skin) TextFieldStyle(name string) (TextFieldStyleDef, error) {
	def, ok := s.textFields[name]
	if !ok {
		return TextFieldStyleDef{}, fmt.Errorf("%w: textfield %q", ErrUnknownResource, name)
	}
	return def, nil
}

// WatchSkin reloads the skin whenever its file changes and hands the result
// to onReload, through post so it runs on the UI thread (pass Stage.Post).
// Writes that leave the content unchanged are ignored.
func WatchSkin(skin *Skin, post func(func()), onReload func(*Skin, error)) (stop func(), err error) {
	if skin.Path == "" {
		return nil, fmt.Errorf("watch skin: skin was not loaded from a file")
	}
	last := skin.hash
	return WatchFile(skin.Path, func() {
		data, err := os.ReadFile(skin.Path)
		if err != nil {
			// editors often remove and recreate; the create event follows
			return
		}
		h := xxhash.Sum64(data)
		if h == last {
			return
		}
		last = h
		next, err := ParseSkin(data, filepath.Dir(skin.Path))
		if next != nil {
			next.Path = skin.Path
		}
		if err != nil {
			log.Printf("skin reload %s: %v", skin.Path, err)
		}
		post(func() { onReload(next, err) })
	})
}
