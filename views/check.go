// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: views/check.go
// Summary: Checkbox renderer and the controller that toggles it.

package views

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelgrid/core"
	"github.com/framegrace/texelgrid/grid"
)

// CheckView renders a checkbox mark per item.
type CheckView struct {
	checked func(id grid.ItemID) bool
}

// NewCheckView builds a renderer over the checked-state source.
func NewCheckView(checked func(id grid.ItemID) bool) *CheckView {
	return &CheckView{checked: checked}
}

// Draw implements grid.Renderer.
func (v *CheckView) Draw(p *core.Painter, ctx *grid.GuiContext, rect core.Rect, id grid.ItemID) {
	p.Fill(rect, ' ', ctx.BaseStyle)
	if rect.W <= 0 || rect.H <= 0 {
		return
	}
	mark := "[ ]"
	style := ctx.BaseStyle
	if v.checked != nil && v.checked(id) {
		mark = "[x]"
		fg := ctx.Theme.GetColor("grid", "check_fg", tcell.ColorGreen)
		style = style.Foreground(fg)
	}
	p.DrawText(rect.X, rect.Y, mark, style)
}

// ToggleController flips an item's checked state on a primary-button
// press. Pair it with a CheckView in an edit-masked schema.
type ToggleController struct {
	toggle func(id grid.ItemID)
}

// NewToggleController builds a controller invoking toggle on click.
func NewToggleController(toggle func(id grid.ItemID)) *ToggleController {
	return &ToggleController{toggle: toggle}
}

// ProcessMouse implements grid.Controller.
func (c *ToggleController) ProcessMouse(cctx *grid.ControllerContext, item *grid.CacheItem) bool {
	if cctx.Buttons&tcell.Button1 == 0 || c.toggle == nil {
		return false
	}
	c.toggle(item.ID())
	return true
}
