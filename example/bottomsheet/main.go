// SPDX-License-Identifier: Unlicense OR MIT

package main

// A demo of the sliding sheet: a list of rows inside a dismissible
// bottom sheet with configurable snap positions. Snap settings can be
// loaded from a TOML file, see the -config flag.

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/BurntSushi/toml"

	sheet "github.com/mattermoran/sliding-sheet"
)

type config struct {
	// Snappings are the snap positions. A negative value stands for
	// the fully expanded position.
	Snappings   []float32 `toml:"snappings"`
	Positioning string    `toml:"positioning"`
	InitialSnap int       `toml:"initial_snap"`
	BottomSheet bool      `toml:"bottom_sheet"`
	Snap        bool      `toml:"snap"`
}

func defaultConfig() config {
	return config{
		Snappings:   []float32{0.3, 0.7, -1},
		BottomSheet: true,
		Snap:        true,
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c config) behavior() sheet.SnapBehavior {
	b := sheet.SnapBehavior{
		Snap:        c.Snap,
		InitialSnap: c.InitialSnap,
	}
	switch c.Positioning {
	case "", "available":
		b.Positioning = sheet.RelativeToAvailable
	case "sheet":
		b.Positioning = sheet.RelativeToSheetSize
	case "pixel":
		b.Positioning = sheet.PixelOffset
	default:
		log.Fatalf("unknown positioning %q", c.Positioning)
	}
	for _, s := range c.Snappings {
		if s < 0 {
			s = sheet.Expand
		}
		b.Snappings = append(b.Snappings, s)
	}
	return b
}

func main() {
	confPath := flag.String("config", "", "TOML file with snap settings")
	flag.Parse()
	cfg := defaultConfig()
	if *confPath != "" {
		var err error
		if cfg, err = loadConfig(*confPath); err != nil {
			log.Fatal(err)
		}
	}
	go func() {
		w := new(app.Window)
		w.Option(
			app.Title("Sliding sheet"),
			app.Size(unit.Dp(420), unit.Dp(800)),
		)
		if err := loop(w, cfg); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(w *app.Window, cfg config) error {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	ui := &UI{th: th, cfg: cfg}
	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			ui.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

type UI struct {
	th  *material.Theme
	cfg config

	show   widget.Clickable
	expand widget.Clickable
	sheet  *sheet.Sheet
	ctrl   sheet.Controller
	status string
}

func (ui *UI) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, ui.th.Palette.Bg)
	if ui.show.Clicked(gtx) && ui.sheet == nil {
		ui.openSheet()
	}
	if ui.expand.Clicked(gtx) {
		if err := ui.ctrl.Expand(); err != nil {
			log.Printf("expand: %v", err)
		}
	}
	layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(material.Button(ui.th, &ui.show, "Show sheet").Layout),
			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
			layout.Rigid(material.Button(ui.th, &ui.expand, "Expand").Layout),
			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
			layout.Rigid(material.Caption(ui.th, ui.status).Layout),
		)
	})
	if ui.sheet != nil {
		st := sheet.Style(ui.th, ui.sheet)
		st.Layout(gtx, ui.layoutHeader, ui.layoutContent, ui.layoutFooter)
		if ui.sheet.Dismissed() {
			ui.sheet = nil
		}
	}
	return layout.Dimensions{Size: gtx.Constraints.Max}
}

func (ui *UI) openSheet() {
	ui.ctrl = sheet.Controller{}
	ui.sheet = &sheet.Sheet{
		Behavior:    ui.cfg.behavior(),
		BottomSheet: ui.cfg.BottomSheet,
		Duration:    250 * time.Millisecond,
		Controller:  &ui.ctrl,
		OnStateChanged: func(st sheet.State) {
			ui.status = fmt.Sprintf("extent %.2f, progress %.2f", st.Extent, st.Progress)
		},
	}
}

func (ui *UI) layoutHeader(gtx layout.Context) layout.Dimensions {
	return layout.UniformInset(unit.Dp(16)).Layout(gtx, material.H6(ui.th, "Settings").Layout)
}

func (ui *UI) layoutContent(gtx layout.Context) layout.Dimensions {
	var rows []layout.FlexChild
	for i := 0; i < 25; i++ {
		lbl := material.Body1(ui.th, fmt.Sprintf("Item %d", i+1))
		rows = append(rows, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{
				Top: unit.Dp(8), Bottom: unit.Dp(8),
				Left: unit.Dp(16), Right: unit.Dp(16),
			}.Layout(gtx, lbl.Layout)
		}))
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, rows...)
}

func (ui *UI) layoutFooter(gtx layout.Context) layout.Dimensions {
	return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min.X = gtx.Constraints.Max.X
		return layout.Center.Layout(gtx, material.Caption(ui.th, "Drag the sheet or fling it away").Layout)
	})
}
