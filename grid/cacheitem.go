// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/cacheitem.go
// Summary: Materialized item: identity, widget-coordinate geometry and
// a lazily built view tree. The unit of eviction.

package grid

import "github.com/framegrace/texelgrid/core"

// ViewSchema builds the view tree for one item under a mask. The tree
// is returned unlaid-out; the item assigns geometry via SetRect.
type ViewSchema func(id ItemID, ctx *GuiContext, mask ViewApplicationMask) CacheView

// CacheItem is one cached entry of a CacheSpace. Its view tree is built
// on first draw or hit-test and torn down with the item. If CacheView
// returns non-nil, the tree was built against the current factory's
// schema.
type CacheItem struct {
	id   ItemID
	rect core.Rect // widget coordinates, assigned by the validator

	schema        ViewSchema
	mask          ViewApplicationMask
	schemaVersion int

	view      CacheView
	builtRect core.Rect
}

// ID returns the item's identity.
func (ci *CacheItem) ID() ItemID { return ci.id }

// Rect returns the item's geometry in widget coordinates.
func (ci *CacheItem) Rect() core.Rect { return ci.rect }

// SetRect assigns the geometry. Validators call this on every
// validation pass; a moved rect re-lays the view on next use.
func (ci *CacheItem) SetRect(r core.Rect) { ci.rect = r }

// CacheView returns the built view tree, or nil before the first
// validation.
func (ci *CacheItem) CacheView() CacheView { return ci.view }

// SchemaVersion counts how often the item was re-schemaed.
func (ci *CacheItem) SchemaVersion() int { return ci.schemaVersion }

// ValidateCacheView materializes the view tree if absent and re-lays it
// when the item moved since it was built. window is accepted for parity
// with the draw path; geometry comes from the item rect.
func (ci *CacheItem) ValidateCacheView(ctx *GuiContext, window core.Rect) {
	if ci.view == nil {
		if ci.schema == nil {
			return
		}
		ci.view = ci.schema(ci.id, ctx, ci.mask)
		if ci.view == nil {
			return
		}
		ci.view.SetRect(ci.rect)
		ci.builtRect = ci.rect
		return
	}
	if ci.builtRect != ci.rect {
		ci.view.SetRect(ci.rect)
		ci.builtRect = ci.rect
	}
}

// InvalidateCacheView discards the built tree; the next validation
// rebuilds it against the current schema.
func (ci *CacheItem) InvalidateCacheView() { ci.view = nil }

// Draw paints the item's view tree clipped to rect ∩ window.
func (ci *CacheItem) Draw(p *core.Painter, ctx *GuiContext, window core.Rect) {
	if ci.view == nil {
		return
	}
	clip := ci.rect.Intersect(window)
	if clip.Empty() {
		return
	}
	ci.view.Draw(p, ctx, clip)
}

// TryActivateControllers appends the controllers of every view under
// the context point, topmost first.
func (ci *CacheItem) TryActivateControllers(cctx *ControllerContext, cs *CacheSpace, window core.Rect, out *[]Controller) {
	if ci.view == nil || !window.Contains(cctx.Point) || !ci.rect.Contains(cctx.Point) {
		return
	}
	ci.view.TryActivateControllers(cctx, ci, out)
}

// TooltipByPoint resolves a tooltip at the widget point. Returns false
// when no view there produces one.
func (ci *CacheItem) TooltipByPoint(pt core.Point, info *TooltipInfo) bool {
	if ci.view == nil || !ci.rect.Contains(pt) {
		return false
	}
	return ci.view.TooltipByPoint(pt, info)
}
