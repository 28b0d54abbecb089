package stage

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sync"

	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/webp"
)

type ImageId uint32

var images = struct {
	sync.RWMutex
	list   []*image.RGBA // first image is the zero image
	byPath map[string]ImageId
}{
	list:   make([]*image.RGBA, 1, 256),
	byPath: make(map[string]ImageId),
}

func RegisterImage(img *image.RGBA) ImageId {
	images.Lock()
	defer images.Unlock()
	id := ImageId(len(images.list))
	images.list = append(images.list, img)
	return id
}

// this function is mostly for the backend
func LookupImage(id ImageId) *image.RGBA {
	images.RLock()
	defer images.RUnlock()
	if int(id) >= len(images.list) {
		return nil
	}
	return images.list[id]
}

func decodeImage(content []byte) (*image.RGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	return imageToRGBA(img), nil
}

// from: https://stackoverflow.com/a/61721655/35364
func imageToRGBA(src image.Image) *image.RGBA {
	if src == nil {
		return nil
	}
	if dst, ok := src.(*image.RGBA); ok {
		return dst
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// LoadImage decodes an image file. The decoded image is cached until the file
// changes on disk; the id for a path stays stable and points at the latest
// version.
func LoadImage(fpath string) (*image.RGBA, ImageId, error) {
	const key = "image"
	if img, found := getFileCacheContent[*image.RGBA](fpath, key); found {
		images.RLock()
		id := images.byPath[fpath]
		images.RUnlock()
		return img, id, nil
	}

	content, err := ReadFileContent(fpath)
	if err != nil {
		return nil, 0, err
	}
	img, err := decodeImage(content)
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", fpath, err)
	}
	setFileCacheContent(fpath, key, img)

	images.Lock()
	defer images.Unlock()
	id := images.byPath[fpath]
	if id == 0 {
		id = ImageId(len(images.list))
		images.byPath[fpath] = id
		images.list = append(images.list, img)
	} else {
		images.list[id] = img
	}
	return img, id, nil
}

// TextureRegion is a rectangle of pixels drawn stretched, or a solid color
// when Image is 0.
type TextureRegion struct {
	Image  ImageId
	Width  int
	Height int
	Color  Color
}

func ColorRegion(c Color) TextureRegion {
	return TextureRegion{Color: c}
}

// NewTextureRegion copies the rect out of src into its own image so the
// backend can draw it without sub-image bookkeeping.
func NewTextureRegion(src image.Image, rect image.Rectangle) TextureRegion {
	rect = rect.Add(src.Bounds().Min).Intersect(src.Bounds())
	if rect.Empty() {
		return TextureRegion{}
	}
	cropped := transform.Crop(src, rect)
	// regions are addressed from their own origin
	cropped.Rect = cropped.Rect.Sub(cropped.Rect.Min)
	return TextureRegion{
		Image:  RegisterImage(cropped),
		Width:  rect.Dx(),
		Height: rect.Dy(),
		Color:  White,
	}
}

func (r TextureRegion) IsZero() bool {
	return r.Image == 0 && r.Color.A == 0
}
