// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/painter.go
// Summary: Clipped painter over a cell buffer. All drawing the grid
// engine does goes through this type.

package core

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Painter draws into a shared cell buffer, restricted to a clip rect.
// Save/Restore manage a clip stack so callers can tighten the clip for
// a sub-draw and recover the previous state afterwards, including on
// panic via defer.
type Painter struct {
	buf  [][]Cell
	clip Rect

	saved []Rect
}

// NewPainter creates a painter over buf clipped to clip. The clip is
// intersected with the buffer bounds; a ragged buffer is bounded by its
// shortest row, so every clipped write lands inside the buffer.
func NewPainter(buf [][]Cell, clip Rect) *Painter {
	p := &Painter{buf: buf}
	p.clip = clip.Normalized().Intersect(bufferRect(buf))
	return p
}

func bufferRect(buf [][]Cell) Rect {
	h := len(buf)
	w := 0
	if h > 0 {
		w = len(buf[0])
		for _, row := range buf[1:] {
			if len(row) < w {
				w = len(row)
			}
		}
	}
	return Rect{W: w, H: h}
}

// Clip returns the current clip rect.
func (p *Painter) Clip() Rect { return p.clip }

// Save pushes the current clip onto the stack.
func (p *Painter) Save() {
	p.saved = append(p.saved, p.clip)
}

// Restore pops the most recently saved clip. Restoring with an empty
// stack is a programming error.
func (p *Painter) Restore() {
	if len(p.saved) == 0 {
		panic("texelgrid: Painter.Restore without matching Save")
	}
	p.clip = p.saved[len(p.saved)-1]
	p.saved = p.saved[:len(p.saved)-1]
}

// SetClip tightens the clip to the intersection of the current clip and
// r. Use together with Save/Restore.
func (p *Painter) SetClip(r Rect) {
	p.clip = p.clip.Intersect(r.Normalized())
}

// WithClip returns a derived painter sharing the buffer, clipped to the
// intersection of the current clip and r.
func (p *Painter) WithClip(r Rect) *Painter {
	return &Painter{buf: p.buf, clip: p.clip.Intersect(r.Normalized())}
}

// SetCell writes one cell, if inside the clip.
func (p *Painter) SetCell(x, y int, ch rune, style tcell.Style) {
	if !p.clip.Contains(Point{X: x, Y: y}) {
		return
	}
	p.buf[y][x] = Cell{Ch: ch, Style: style}
}

// CellAt reads a cell from the buffer regardless of clip. The second
// return is false outside the buffer.
func (p *Painter) CellAt(x, y int) (Cell, bool) {
	if y < 0 || y >= len(p.buf) || x < 0 || x >= len(p.buf[y]) {
		return Cell{}, false
	}
	return p.buf[y][x], true
}

// Fill paints every clipped cell of r with ch in style.
func (p *Painter) Fill(r Rect, ch rune, style tcell.Style) {
	r = r.Normalized().Intersect(p.clip)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			p.buf[y][x] = Cell{Ch: ch, Style: style}
		}
	}
}

// DrawText writes a string starting at (x, y), advancing by rune width
// so wide runes occupy two cells. Returns the x position after the last
// written rune.
func (p *Painter) DrawText(x, y int, text string, style tcell.Style) int {
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		p.SetCell(x, y, ch, style)
		if w == 2 {
			// The shadow cell keeps the style so fades apply evenly.
			p.SetCell(x+1, y, ' ', style)
		}
		x += w
	}
	return x
}
