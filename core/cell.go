// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package core

import "github.com/gdamore/tcell/v2"

// Cell is one character cell of a buffer.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// NewBuffer allocates a w×h cell buffer filled with spaces in the given
// style.
func NewBuffer(w, h int, style tcell.Style) [][]Cell {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	buf := make([][]Cell, h)
	for y := range buf {
		row := make([]Cell, w)
		for x := range row {
			row[x] = Cell{Ch: ' ', Style: style}
		}
		buf[y] = row
	}
	return buf
}

// CloneBuffer deep-copies a cell buffer.
func CloneBuffer(in [][]Cell) [][]Cell {
	out := make([][]Cell, len(in))
	for i := range in {
		out[i] = make([]Cell, len(in[i]))
		copy(out[i], in[i])
	}
	return out
}
