package widgets

import (
	"fmt"

	"go.hasen.dev/stage"
)

// TextFieldStyle is how a TextField looks. A style may be shared between
// fields and must not change while in use; only Font is required.
type TextFieldStyle struct {
	Font       stage.TextFont
	FontColor  stage.Color
	Cursor     *stage.NinePatch
	Selection  stage.TextureRegion
	Background *stage.NinePatch
}

// StyleFromSkin resolves the named [textfield] entry of a skin.
func StyleFromSkin(skin *stage.Skin, name string) (*TextFieldStyle, error) {
	def, err := skin.TextFieldStyle(name)
	if err != nil {
		return nil, err
	}

	var style TextFieldStyle
	if style.Font, err = skin.Font(def.Font); err != nil {
		return nil, fmt.Errorf("textfield style %q: %w", name, err)
	}
	style.FontColor = stage.White
	if def.FontColor != "" {
		if style.FontColor, err = skin.Color(def.FontColor); err != nil {
			return nil, fmt.Errorf("textfield style %q: %w", name, err)
		}
	}
	if def.Cursor != "" {
		if style.Cursor, err = skin.Patch(def.Cursor); err != nil {
			return nil, fmt.Errorf("textfield style %q: %w", name, err)
		}
	}
	if def.Selection != "" {
		if style.Selection, err = skin.Region(def.Selection); err != nil {
			return nil, fmt.Errorf("textfield style %q: %w", name, err)
		}
	}
	if def.Background != "" {
		if style.Background, err = skin.Patch(def.Background); err != nil {
			return nil, fmt.Errorf("textfield style %q: %w", name, err)
		}
	}
	return &style, nil
}
