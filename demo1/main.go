package main

import (
	_ "embed"
	"flag"
	"log"

	app "go.hasen.dev/stage/giobackend"

	"go.hasen.dev/stage"
	"go.hasen.dev/stage/tw"
	"go.hasen.dev/stage/widgets"
)

//go:embed skin.toml
var defaultSkin []byte

type styledField struct {
	field     *widgets.TextField
	styleName string
}

func main() {
	skinPath := flag.String("skin", "", "skin file to load and watch for changes (default: built in)")
	flag.Parse()

	var skin *stage.Skin
	var err error
	if *skinPath != "" {
		skin, err = stage.LoadSkin(*skinPath)
	} else {
		skin, err = stage.ParseSkin(defaultSkin, ".")
	}
	if err != nil {
		log.Fatal(err)
	}

	st := stage.NewStage(480, 320)

	var fields []styledField
	y := float32(24)
	addField := func(name, styleName, text string) *widgets.TextField {
		f, err := widgets.NewTextFieldFromSkin(skin, name, 280, styleName)
		if err != nil {
			log.Fatal(err)
		}
		f.SetText(text)
		f.X, f.Y = 24, y
		y += f.Height + 12
		st.AddActor(f)
		fields = append(fields, styledField{field: f, styleName: styleName})
		return f
	}

	name := addField("name", "default", "")
	addField("command", "code", "go run ./demo1 -skin demo1/skin.toml")

	// styles can be built in code too
	base, err := widgets.StyleFromSkin(skin, "default")
	if err != nil {
		log.Fatal(err)
	}
	warn := widgets.NewTextField("warning", 280, tw.TFSW(base,
		tw.FontColor(8, 70, 35, 1),
		tw.RoundedBackground(stage.RoundedPatch{Radius: 4, Fill: stage.HSLAColor(stage.Vec4{40, 90, 92, 1}), Padding: 4}),
		tw.SelectionColor(40, 90, 60, 0.5),
	))
	warn.SetText("edit skin.toml while this runs")
	warn.X, warn.Y = 24, y
	st.AddActor(warn)

	name.SetTextFieldListener(widgets.TextFieldListenerFunc(func(f *widgets.TextField, ch rune) {
		if ch == '\r' || ch == '\n' {
			log.Printf("hello, %s", f.Text())
		}
	}))
	st.SetKeyboardFocus(name)

	if skin.Path != "" {
		stop, err := stage.WatchSkin(skin, st.Post, func(next *stage.Skin, err error) {
			if err != nil {
				return
			}
			for _, sf := range fields {
				style, err := widgets.StyleFromSkin(next, sf.styleName)
				if err != nil {
					log.Printf("reload %s: %v", sf.field.Name, err)
					continue
				}
				sf.field.SetStyle(style)
				sf.field.Width, sf.field.Height = sf.field.PrefWidth, sf.field.PrefHeight
			}
		})
		if err != nil {
			log.Fatal(err)
		}
		defer stop()
	}

	app.SetupWindow("Text Fields", 480, 320)
	app.Run(st)
}
