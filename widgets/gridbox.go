// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/gridbox.go
// Summary: Host widget embedding a cache space: scrolling, mouse
// routing and the tooltip overlay.

package widgets

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelgrid/core"
	"github.com/framegrace/texelgrid/grid"
	"github.com/framegrace/texelgrid/theme"
)

// CacheSpacer is the engine surface GridBox drives. Both cache space
// strategies satisfy it.
type CacheSpacer interface {
	Space() grid.Space
	Window() core.Rect
	ScrollOffset() core.Point
	Set(window core.Rect, offset core.Point)
	SetScrollOffset(offset core.Point)
	Draw(p *core.Painter, ctx *grid.GuiContext)
	Validate(ctx *grid.GuiContext)
	CacheItemByPosition(pt core.Point) *grid.CacheItem
	TryActivateControllers(cctx *grid.ControllerContext, out *[]grid.Controller)
	TooltipByPoint(pt core.Point, info *grid.TooltipInfo) bool
	OnCacheChanged(fn func(*grid.CacheSpace, grid.ChangeReason))
}

// GridBox hosts one cache space inside a widget rect. It owns the
// window/scroll mapping, routes wheel and button events, and renders a
// one-line tooltip overlay while the pointer rests on a tooltip-capable
// view.
type GridBox struct {
	Style        tcell.Style
	TooltipStyle tcell.Style

	cache CacheSpacer
	rect  core.Rect
	ctx   *grid.GuiContext

	inv func(core.Rect)

	tooltip    grid.TooltipInfo
	hasTooltip bool
}

// NewGridBox wraps the cache space. The window tracks the widget rect;
// cache change events mark the widget dirty.
func NewGridBox(cache CacheSpacer) *GridBox {
	tm := theme.Get()
	gb := &GridBox{
		cache: cache,
		ctx:   grid.NewGuiContext(),
		Style: tcell.StyleDefault.
			Foreground(tm.GetSemanticColor("text.primary")).
			Background(tm.GetSemanticColor("bg.surface")),
		TooltipStyle: tcell.StyleDefault.
			Foreground(tm.GetColor("grid", "tooltip_fg", tcell.ColorBlack)).
			Background(tm.GetColor("grid", "tooltip_bg", tcell.ColorYellow)),
	}
	cache.OnCacheChanged(func(*grid.CacheSpace, grid.ChangeReason) {
		gb.invalidate()
	})
	return gb
}

// Cache returns the hosted cache space.
func (gb *GridBox) Cache() CacheSpacer { return gb.cache }

// GuiContext returns the drawing context handed to the engine.
func (gb *GridBox) GuiContext() *grid.GuiContext { return gb.ctx }

// Rect returns the widget rect.
func (gb *GridBox) Rect() core.Rect { return gb.rect }

// SetRect moves the widget. The cache window follows and the scroll
// offset is re-clamped against the space bounds.
func (gb *GridBox) SetRect(r core.Rect) {
	gb.rect = r.Normalized()
	gb.cache.Set(gb.rect, gb.clampOffset(gb.cache.ScrollOffset()))
}

// SetInvalidator sets the dirty-region callback.
func (gb *GridBox) SetInvalidator(fn func(core.Rect)) { gb.inv = fn }

func (gb *GridBox) invalidate() {
	if gb.inv != nil {
		gb.inv(gb.rect)
	}
}

// SetFocused toggles the focus flag forwarded to renderers.
func (gb *GridBox) SetFocused(focused bool) {
	if gb.ctx.Focused == focused {
		return
	}
	gb.ctx.Focused = focused
	gb.invalidate()
}

// clampOffset keeps the window inside the space bounds, preferring the
// top-left edge when the space is smaller than the window.
func (gb *GridBox) clampOffset(offset core.Point) core.Point {
	bounds := gb.cache.Space().Bounds()
	maxX := max(bounds.W-gb.rect.W, 0)
	maxY := max(bounds.H-gb.rect.H, 0)
	return core.Point{
		X: min(max(offset.X, 0), maxX),
		Y: min(max(offset.Y, 0), maxY),
	}
}

// ScrollBy scrolls by the delta in space cells, clamped to the bounds.
func (gb *GridBox) ScrollBy(dx, dy int) {
	old := gb.cache.ScrollOffset()
	next := gb.clampOffset(old.Add(core.Point{X: dx, Y: dy}))
	if next == old {
		return
	}
	gb.cache.SetScrollOffset(next)
}

// ScrollTo scrolls to an absolute offset, clamped to the bounds.
func (gb *GridBox) ScrollTo(offset core.Point) {
	gb.cache.SetScrollOffset(gb.clampOffset(offset))
}

// HandleKey scrolls on paging keys. Returns true when consumed.
func (gb *GridBox) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		gb.ScrollBy(0, -1)
		return true
	case tcell.KeyDown:
		gb.ScrollBy(0, 1)
		return true
	case tcell.KeyPgUp:
		gb.ScrollBy(0, -gb.rect.H)
		return true
	case tcell.KeyPgDn:
		gb.ScrollBy(0, gb.rect.H)
		return true
	case tcell.KeyHome:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			gb.ScrollTo(core.Point{})
			return true
		}
	case tcell.KeyEnd:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			bounds := gb.cache.Space().Bounds()
			gb.ScrollTo(core.Point{Y: bounds.H})
			return true
		}
	}
	return false
}

// HandleMouse routes wheel scrolling, clicks and hover tracking.
// Returns true when the event landed inside the widget.
func (gb *GridBox) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	pt := core.Point{X: x, Y: y}
	if !gb.rect.Contains(pt) {
		gb.dropTooltip()
		return false
	}

	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		gb.ScrollBy(0, -3)
		return true
	case ev.Buttons()&tcell.WheelDown != 0:
		gb.ScrollBy(0, 3)
		return true
	}

	if ev.Buttons()&tcell.Button1 != 0 {
		cctx := &grid.ControllerContext{
			Point:     pt,
			Buttons:   ev.Buttons(),
			Modifiers: ev.Modifiers(),
		}
		var controllers []grid.Controller
		gb.cache.TryActivateControllers(cctx, &controllers)
		item := gb.cache.CacheItemByPosition(pt)
		for _, c := range controllers {
			if c.ProcessMouse(cctx, item) {
				break
			}
		}
		return true
	}

	gb.trackTooltip(pt)
	return true
}

// trackTooltip refreshes the hover overlay for the pointer position.
func (gb *GridBox) trackTooltip(pt core.Point) {
	var info grid.TooltipInfo
	if gb.cache.TooltipByPoint(pt, &info) {
		if !gb.hasTooltip || info != gb.tooltip {
			gb.tooltip = info
			gb.hasTooltip = true
			gb.invalidate()
		}
		return
	}
	gb.dropTooltip()
}

func (gb *GridBox) dropTooltip() {
	if !gb.hasTooltip {
		return
	}
	gb.hasTooltip = false
	gb.invalidate()
}

// Draw paints the background, the cache space clipped to the widget
// rect, and the tooltip overlay on top.
func (gb *GridBox) Draw(p *core.Painter) {
	p.Fill(gb.rect, ' ', gb.Style)

	clipped := p.WithClip(gb.rect)
	gb.cache.Draw(clipped, gb.ctx)

	if gb.hasTooltip {
		gb.drawTooltip(clipped)
	}
}

// drawTooltip renders a one-line tooltip below its source rect, or
// above when there is no room.
func (gb *GridBox) drawTooltip(p *core.Painter) {
	text := runewidth.Truncate(gb.tooltip.Text, max(gb.rect.W-2, 1), "…")
	w := runewidth.StringWidth(text) + 2

	x := min(gb.tooltip.Rect.X, gb.rect.X+gb.rect.W-w)
	x = max(x, gb.rect.X)
	y := gb.tooltip.Rect.Y + gb.tooltip.Rect.H
	if y >= gb.rect.Y+gb.rect.H {
		y = gb.tooltip.Rect.Y - 1
	}
	if y < gb.rect.Y {
		return
	}

	box := core.Rect{X: x, Y: y, W: w, H: 1}
	p.Fill(box, ' ', gb.TooltipStyle)
	p.DrawText(x+1, y, text, gb.TooltipStyle)
}
