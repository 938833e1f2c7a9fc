// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelgrid-demo/main.go
// Summary: Interactive demo: a scrollable grid with checkboxes, labels
// with tooltips and syntax-highlighted code cells.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/framegrace/texelgrid/core"
	"github.com/framegrace/texelgrid/effects"
	"github.com/framegrace/texelgrid/grid"
	"github.com/framegrace/texelgrid/theme"
	"github.com/framegrace/texelgrid/views"
	"github.com/framegrace/texelgrid/widgets"
)

func main() {
	rows := flag.Int("rows", 500, "number of grid rows")
	themePath := flag.String("theme", "", "theme file to load")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "texelgrid-demo: stdout is not a terminal")
		os.Exit(1)
	}
	if *themePath != "" {
		if err := theme.Get().LoadFile(*themePath); err != nil {
			log.Fatalf("texelgrid-demo: theme: %v", err)
		}
	}
	if err := run(*rows); err != nil {
		log.Fatalf("texelgrid-demo: %v", err)
	}
}

var codeSamples = []string{
	`func main() { fmt.Println("hello") }`,
	`if err != nil { return fmt.Errorf("demo: %w", err) }`,
	`for i := range items { total += items[i].Weight }`,
	`type Point struct{ X, Y int }`,
	`go func() { defer close(done); work(ctx) }()`,
}

func run(rows int) error {
	checked := make(map[int]bool)

	space := grid.NewSpaceGrid(rows, 3, 1, 24)
	space.SetColWidth(0, 4)
	space.SetColWidth(2, 56)

	space.SetSchema(func(id grid.ItemID, ctx *grid.GuiContext, mask grid.ViewApplicationMask) grid.CacheView {
		switch id.Col {
		case 0:
			check := views.NewCheckView(func(id grid.ItemID) bool { return checked[id.Row] })
			var controllers []grid.Controller
			if mask&grid.ViewApplicationEdit != 0 {
				controllers = append(controllers, views.NewToggleController(func(id grid.ItemID) {
					checked[id.Row] = !checked[id.Row]
					space.ItemsContentChanged()
				}))
			}
			return grid.NewLeafView(id, check, controllers...)
		case 1:
			var r grid.Renderer = views.NewTextView(func(id grid.ItemID) string {
				return fmt.Sprintf("sample %d", id.Row)
			}).WithSelection(func(id grid.ItemID) bool { return checked[id.Row] })
			if mask&grid.ViewApplicationTooltip != 0 {
				r = views.WithTooltip(r, func(id grid.ItemID) (string, bool) {
					return fmt.Sprintf("row %d of %d", id.Row+1, rows), true
				})
			}
			return grid.NewLeafView(id, r)
		default:
			return grid.NewLeafView(id, views.NewSyntaxTextView(func(id grid.ItemID) string {
				return codeSamples[id.Row%len(codeSamples)]
			}).WithLexer("go"))
		}
	})

	mask := grid.ViewApplicationDraw | grid.ViewApplicationEdit | grid.ViewApplicationTooltip
	cache := grid.NewCacheSpaceGrid(space, mask)
	defer cache.Close()

	box := widgets.NewGridBox(cache)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	defer screen.DisableMouse()

	w, h := screen.Size()
	buf := core.NewBuffer(w, h, box.Style)
	box.SetRect(core.Rect{W: w, H: h - 1})

	dirty := true
	box.SetInvalidator(func(core.Rect) { dirty = true })

	faded := false
	statusStyle := tcell.StyleDefault.Reverse(true)

	draw := func() {
		p := core.NewPainter(buf, core.Rect{W: w, H: h})
		box.Draw(p)
		status := " wheel/keys scroll · click toggles · hover for tooltip · f fade · q quit "
		p.Fill(core.Rect{Y: h - 1, W: w, H: 1}, ' ', statusStyle)
		p.DrawText(0, h-1, status, statusStyle)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				screen.SetContent(x, y, buf[y][x].Ch, nil, buf[y][x].Style)
			}
		}
		screen.Show()
		dirty = false
	}
	draw()

	for {
		ev := screen.PollEvent()
		switch tev := ev.(type) {
		case *tcell.EventResize:
			w, h = tev.Size()
			buf = core.NewBuffer(w, h, box.Style)
			box.SetRect(core.Rect{W: w, H: h - 1})
			screen.Sync()
			dirty = true
		case *tcell.EventKey:
			switch {
			case tev.Key() == tcell.KeyCtrlC || tev.Key() == tcell.KeyEscape || tev.Rune() == 'q':
				return nil
			case tev.Rune() == 'f':
				faded = !faded
				if faded {
					cache.SetDrawProxy(effects.NewFadeProxy(tcell.ColorBlack, 0.5))
				} else {
					cache.SetDrawProxy(nil)
				}
				dirty = true
			default:
				box.HandleKey(tev)
			}
		case *tcell.EventMouse:
			box.HandleMouse(tev)
		}
		if dirty {
			draw()
		}
	}
}
