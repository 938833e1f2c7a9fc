// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: effects/fade.go
// Summary: Draw proxy that fades a cache space's window toward a color.

package effects

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/framegrace/texelgrid/core"
	"github.com/framegrace/texelgrid/grid"
)

// NewFadeProxy returns a draw proxy that paints the cache space
// normally and then blends every window cell's colors toward color in
// Lab space. Intensity runs from 0 (no effect) to 1 (fully faded).
// Useful for rendering unfocused or disabled grids.
func NewFadeProxy(color tcell.Color, intensity float64) grid.DrawProxy {
	if intensity < 0 {
		intensity = 0
	}
	if intensity > 1 {
		intensity = 1
	}
	target := toColorful(color)
	return func(cs *grid.CacheSpace, p *core.Painter, ctx *grid.GuiContext) {
		cs.DrawRaw(p, ctx)
		if intensity == 0 {
			return
		}
		window := cs.Window()
		for y := window.Y; y < window.Y+window.H; y++ {
			for x := window.X; x < window.X+window.W; x++ {
				cell, ok := p.CellAt(x, y)
				if !ok {
					continue
				}
				fg, bg, attrs := cell.Style.Decompose()
				style := tcell.StyleDefault.
					Foreground(blend(fg, target, intensity)).
					Background(blend(bg, target, intensity)).
					Attributes(attrs)
				p.SetCell(x, y, cell.Ch, style)
			}
		}
	}
}

// blend interpolates a cell color toward the fade target. Default
// colors pass through untouched.
func blend(original tcell.Color, target colorful.Color, intensity float64) tcell.Color {
	if !original.Valid() {
		return original
	}
	mixed := toColorful(original).BlendLab(target, intensity).Clamped()
	r, g, b := mixed.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.TrueColor().RGB()
	return colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}
}
