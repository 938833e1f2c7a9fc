// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: views/text.go
// Summary: Plain text leaf renderer plus the tooltip wrapper.

package views

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelgrid/core"
	"github.com/framegrace/texelgrid/grid"
)

// TextFunc resolves the display text of an item.
type TextFunc func(id grid.ItemID) string

// StaticText adapts a fixed string to a TextFunc.
func StaticText(s string) TextFunc {
	return func(grid.ItemID) string { return s }
}

// TextView renders one line of text per item, truncated to the rect
// width. Selection highlighting is optional.
type TextView struct {
	text     TextFunc
	selected func(id grid.ItemID) bool
}

// NewTextView builds a renderer over the text source.
func NewTextView(text TextFunc) *TextView {
	return &TextView{text: text}
}

// WithSelection marks items for which selected returns true with the
// themed selection background. Returns the receiver for chaining.
func (v *TextView) WithSelection(selected func(id grid.ItemID) bool) *TextView {
	v.selected = selected
	return v
}

// Draw implements grid.Renderer.
func (v *TextView) Draw(p *core.Painter, ctx *grid.GuiContext, rect core.Rect, id grid.ItemID) {
	style := ctx.BaseStyle
	if v.selected != nil && v.selected(id) {
		bg := ctx.Theme.GetColor("grid", "selected_bg", tcell.ColorNavy)
		style = style.Background(bg)
	}
	p.Fill(rect, ' ', style)
	if v.text == nil || rect.W <= 0 || rect.H <= 0 {
		return
	}
	text := runewidth.Truncate(v.text(id), rect.W, "…")
	p.DrawText(rect.X, rect.Y, text, style)
}

// tooltipRenderer decorates a renderer with a tooltip source.
type tooltipRenderer struct {
	grid.Renderer
	tip func(id grid.ItemID) (string, bool)
}

// WithTooltip wraps r so views using it answer tooltip queries through
// tip. Drawing is unchanged.
func WithTooltip(r grid.Renderer, tip func(id grid.ItemID) (string, bool)) grid.Renderer {
	return &tooltipRenderer{Renderer: r, tip: tip}
}

// Tooltip implements grid.TooltipRenderer.
func (t *tooltipRenderer) Tooltip(id grid.ItemID) (string, bool) {
	if t.tip == nil {
		return "", false
	}
	return t.tip(id)
}
