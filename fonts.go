package stage

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/fontscan"
	"go.hasen.dev/generic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

const LOG_FONTS = false

var ErrFontNotFound = errors.New("font not found")

type Face = font.Face

type Style = font.Style
type Weight = font.Weight
type Stretch = font.Stretch
type FontAspect = font.Aspect

const StyleNormal = font.StyleNormal
const StyleItalic = font.StyleItalic

const WeightNormal = font.WeightNormal
const WeightBold = font.WeightBold

const StretchNormal = font.StretchNormal

func DefaultFontAspect() FontAspect {
	return FontAspect{Style: StyleNormal, Weight: WeightNormal, Stretch: StretchNormal}
}

type FontId int32
type GlyphId = opentype.GID

type FaceLookupKey struct {
	Family string
	Aspect FontAspect
}

// FontFace holds the registry entry for one face. Faces registered from files
// are parsed on first use; faces registered from bytes are parsed up front.
type FontFace struct {
	FontId FontId

	FaceLookupKey

	Filepath string
	index    int // index within a collection file

	parseError error

	// Inverted "Units Per eM"
	InvUPM float32

	// Extents, in font units
	Ascender  float32
	Descender float32
	LineGap   float32

	// should not be read directly; call ParsedFace instead
	parsed *Face
}

var registry = struct {
	sync.Mutex
	faces []FontFace // element 0 is the nil face
	byKey map[FaceLookupKey]FontId
}{
	faces: make([]FontFace, 1),
	byKey: make(map[FaceLookupKey]FontId),
}

func normalizeKey(key FaceLookupKey) FaceLookupKey {
	key.Family = strings.ToLower(key.Family)
	return key
}

// must hold registry lock
func nextFace(key FaceLookupKey) *FontFace {
	id := FontId(len(registry.faces))
	face := generic.AllocAppend(&registry.faces)
	face.FontId = id
	face.FaceLookupKey = key
	registry.byKey[normalizeKey(key)] = id
	return face
}

// must hold registry lock
func setParsed(face *FontFace, parsed *Face) {
	fexts, _ := parsed.FontHExtents()
	face.InvUPM = 1 / float32(parsed.Upem())
	face.Ascender = fexts.Ascender
	face.Descender = fexts.Descender
	face.LineGap = fexts.LineGap
	face.parsed = parsed
}

func GetFace(id FontId) FontFace {
	registry.Lock()
	defer registry.Unlock()
	return getFace(id)
}

func getFace(id FontId) FontFace {
	var idx = int(id)
	if idx < 0 || idx >= len(registry.faces) {
		idx = 0
	}
	return registry.faces[idx]
}

func LookupFace(family string, aspect FontAspect) FontId {
	registry.Lock()
	defer registry.Unlock()
	return registry.byKey[normalizeKey(FaceLookupKey{family, aspect})]
}

// LookupFamily returns any registered face of the family, preferring the
// default aspect.
func LookupFamily(family string) FontId {
	if id := LookupFace(family, DefaultFontAspect()); id != 0 {
		return id
	}
	family = strings.ToLower(family)
	registry.Lock()
	defer registry.Unlock()
	for _, face := range registry.faces[1:] {
		if strings.ToLower(face.Family) == family {
			return face.FontId
		}
	}
	return 0
}

// ParsedFace returns the parsed face, parsing the backing file on first use.
// Returns nil for unknown ids and files that fail to parse.
func ParsedFace(id FontId) *Face {
	if id == 0 {
		return nil
	}
	registry.Lock()
	defer registry.Unlock()

	face := getFace(id)
	if face.parsed != nil || face.parseError != nil {
		return face.parsed
	}

	parsed, err := parseFaceFile(face.Filepath, face.index)
	if err != nil {
		if LOG_FONTS {
			log.Printf("font %d (%s): %v", id, face.Filepath, err)
		}
		registry.faces[id].parseError = err
		return nil
	}
	setParsed(&registry.faces[id], parsed)
	return parsed
}

func parseFaceFile(fpath string, index int) (*Face, error) {
	f, err := os.Open(fpath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	faces, err := font.ParseTTC(f)
	if err != nil {
		return nil, err
	}
	if index >= len(faces) {
		return nil, fmt.Errorf("%w: index %d in %s", ErrFontNotFound, index, fpath)
	}
	return faces[index], nil
}

// UseFontBytes parses and registers every face in a font file or collection.
func UseFontBytes(data []byte) ([]FontId, error) {
	faces, err := font.ParseTTC(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	registry.Lock()
	defer registry.Unlock()

	var ids []FontId
	for _, parsed := range faces {
		desc := parsed.Describe()
		face := nextFace(FaceLookupKey(desc))
		setParsed(face, parsed)
		ids = append(ids, face.FontId)
	}
	return ids, nil
}

var goFonts struct {
	sync.Once
	regular FontId
	mono    FontId
}

// UseGoFonts registers the Go font family bundled with x/image. It is the
// fallback used whenever a skin font can't be resolved.
func UseGoFonts() (regular FontId, mono FontId) {
	goFonts.Do(func() {
		ids := generic.Must(UseFontBytes(goregular.TTF))
		goFonts.regular = ids[0]
		ids = generic.Must(UseFontBytes(gomono.TTF))
		goFonts.mono = ids[0]
	})
	return goFonts.regular, goFonts.mono
}

// UseFontFile registers the faces of a font file without parsing glyph data;
// only the description is read.
func UseFontFile(fpath string) error {
	f, err := os.Open(fpath)
	if err != nil {
		return err
	}
	defer f.Close()

	loaders, err := opentype.NewLoaders(f)
	if err != nil {
		return fmt.Errorf("scan %s: %w", fpath, err)
	}

	registry.Lock()
	defer registry.Unlock()

	for idx := range loaders {
		desc, _ := font.Describe(loaders[idx], nil)
		face := nextFace(FaceLookupKey(desc))
		face.Filepath = fpath
		face.index = idx
		if LOG_FONTS {
			log.Printf("%s: %#v", filepath.Base(fpath), desc)
		}
	}
	return nil
}

var fontExtensions = []string{".ttf", ".otf", ".ttc", ".otc"}

func UseFontsDirectories(dirpaths ...string) {
	for _, dirpath := range dirpaths {
		filepath.WalkDir(dirpath, func(fpath string, entry fs.DirEntry, err error) error {
			if err != nil {
				if LOG_FONTS {
					log.Println(err)
				}
				return err
			}
			if entry.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(fpath))
			for _, valid := range fontExtensions {
				if ext == valid {
					if err := UseFontFile(fpath); err != nil && LOG_FONTS {
						log.Println(err)
					}
					break
				}
			}
			return nil
		})
	}
}

// UseSystemFonts scans the platform font directories. This costs a couple
// hundred milliseconds at startup.
func UseSystemFonts() {
	dirs, _ := fontscan.DefaultFontDirectories(log.Default())
	UseFontsDirectories(dirs...)
}

func GlyphOutline(id FontId, gid GlyphId) font.GlyphOutline {
	var empty font.GlyphOutline

	face := ParsedFace(id)
	if face == nil {
		return empty
	}

	switch v := face.GlyphData(gid).(type) {
	case font.GlyphOutline:
		return v
	case font.GlyphSVG:
		return v.Outline
	}
	return empty
}
