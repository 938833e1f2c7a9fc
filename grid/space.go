// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/space.go
// Summary: The Space contract plus the context types crossing the
// engine boundary (gui, controller, tooltip).

package grid

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelgrid/core"
	"github.com/framegrace/texelgrid/theme"
)

// ViewApplicationMask selects which view variants a factory emits for
// an item. Replacing the mask is a structural event for the cache.
type ViewApplicationMask uint32

const (
	// ViewApplicationDraw: plain renderable views.
	ViewApplicationDraw ViewApplicationMask = 1 << iota
	// ViewApplicationEdit: views that carry input controllers.
	ViewApplicationEdit
	// ViewApplicationTooltip: views that synthesize tooltips.
	ViewApplicationTooltip
)

// Space is a mutable 2-D arrangement of addressable items. Coordinates
// returned by Bounds, VisibleItems and ItemRect are space coordinates:
// cell positions independent of any window or scroll state.
//
// A Space must outlive every CacheSpace observing it. Several cache
// spaces may observe one space on the same goroutine.
type Space interface {
	// Bounds returns the current geometric extents of the space.
	Bounds() core.Rect
	// VisibleItems returns the IDs of items intersecting the window,
	// in the space's natural iteration order.
	VisibleItems(window core.Rect) []ItemID
	// ItemRect returns the geometry of one item.
	ItemRect(id ItemID) core.Rect
	// CreateCacheItemFactory builds a factory for the given mask. The
	// result must be non-nil.
	CreateCacheItemFactory(mask ViewApplicationMask) CacheItemFactory

	Subscribe(l SpaceListener)
	Unsubscribe(l SpaceListener)
}

// GuiContext carries the ambient drawing state the host widget supplies
// on each paint: the theme and the style everything defaults to.
type GuiContext struct {
	Theme     *theme.Theme
	BaseStyle tcell.Style
	Focused   bool
}

// NewGuiContext builds a context over the process theme with the grid
// default styles.
func NewGuiContext() *GuiContext {
	tm := theme.Get()
	fg := tm.GetColor("grid", "item_fg", tcell.ColorWhite)
	bg := tm.GetColor("grid", "item_bg", tcell.ColorBlack)
	return &GuiContext{
		Theme:     tm,
		BaseStyle: tcell.StyleDefault.Foreground(fg).Background(bg),
	}
}

// ControllerContext describes one pointing-device event in widget
// coordinates.
type ControllerContext struct {
	Point     core.Point
	Buttons   tcell.ButtonMask
	Modifiers tcell.ModMask
}

// TooltipInfo is the output record of a tooltip query.
type TooltipInfo struct {
	Text string
	// Rect is the widget-coordinate region the tooltip describes.
	Rect core.Rect
}

// Controller reacts to pointer events routed to its view. Activation
// only collects controllers; the host widget decides when to invoke
// ProcessMouse.
type Controller interface {
	// ProcessMouse handles the event for the given item. Returns true
	// when consumed.
	ProcessMouse(cctx *ControllerContext, item *CacheItem) bool
}

// Renderer draws leaf content. Implementations live in the views
// package; the engine only needs this surface.
type Renderer interface {
	Draw(p *core.Painter, ctx *GuiContext, rect core.Rect, id ItemID)
}

// TooltipRenderer is implemented by renderers that can synthesize a
// tooltip for an item.
type TooltipRenderer interface {
	Tooltip(id ItemID) (string, bool)
}
