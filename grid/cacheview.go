// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/cacheview.go
// Summary: Composable renderable nodes forming an item's view tree.
// Composition order fixes paint order (later over earlier) and the
// reverse fixes hit-test order.

package grid

import "github.com/framegrace/texelgrid/core"

// CacheView is one renderable node of an item's composition tree.
// Trees have arbitrary fan-out and no cycles. Layout happens through
// SetRect: composites split their rect among children.
type CacheView interface {
	// Rect returns the widget-coordinate layout rect.
	Rect() core.Rect
	// SetRect assigns the layout rect and lays out children.
	SetRect(r core.Rect)
	// ForEachCacheView visits the subtree pre-order in stable order,
	// stopping early when the visitor returns false. The return value
	// reports whether the walk completed.
	ForEachCacheView(visitor func(CacheView) bool) bool
	// Draw paints the node within the clipping rect.
	Draw(p *core.Painter, ctx *GuiContext, clip core.Rect)
	// CacheViewByPoint returns the deepest node containing the point,
	// or nil.
	CacheViewByPoint(pt core.Point) CacheView
	// TooltipByPoint fills info for the topmost tooltip-capable node at
	// the point. Returns whether a tooltip was produced.
	TooltipByPoint(pt core.Point, info *TooltipInfo) bool
	// TryActivateControllers appends the controllers of every node
	// containing the point, topmost first.
	TryActivateControllers(cctx *ControllerContext, item *CacheItem, out *[]Controller)
}

// LeafView renders a single Renderer within its rect. It may carry
// controllers (editable variants) and a tooltip source.
type LeafView struct {
	rect        core.Rect
	id          ItemID
	renderer    Renderer
	controllers []Controller
}

// NewLeafView builds a leaf for one item.
func NewLeafView(id ItemID, renderer Renderer, controllers ...Controller) *LeafView {
	return &LeafView{id: id, renderer: renderer, controllers: controllers}
}

func (v *LeafView) Rect() core.Rect     { return v.rect }
func (v *LeafView) SetRect(r core.Rect) { v.rect = r }

func (v *LeafView) ForEachCacheView(visitor func(CacheView) bool) bool {
	return visitor(v)
}

func (v *LeafView) Draw(p *core.Painter, ctx *GuiContext, clip core.Rect) {
	area := v.rect.Intersect(clip)
	if area.Empty() || v.renderer == nil {
		return
	}
	p.Save()
	defer p.Restore()
	p.SetClip(area)
	v.renderer.Draw(p, ctx, v.rect, v.id)
}

func (v *LeafView) CacheViewByPoint(pt core.Point) CacheView {
	if v.rect.Contains(pt) {
		return v
	}
	return nil
}

func (v *LeafView) TooltipByPoint(pt core.Point, info *TooltipInfo) bool {
	if !v.rect.Contains(pt) {
		return false
	}
	tr, ok := v.renderer.(TooltipRenderer)
	if !ok {
		return false
	}
	text, ok := tr.Tooltip(v.id)
	if !ok {
		return false
	}
	info.Text = text
	info.Rect = v.rect
	return true
}

func (v *LeafView) TryActivateControllers(cctx *ControllerContext, item *CacheItem, out *[]Controller) {
	if !v.rect.Contains(cctx.Point) {
		return
	}
	*out = append(*out, v.controllers...)
}

// BoxView lays children out along one axis. A size of 0 marks a flex
// child; flex children share the space left after fixed sizes.
type BoxView struct {
	rect       core.Rect
	horizontal bool
	sizes      []int
	children   []CacheView
}

// NewHBox composes children left to right. sizes may be nil (all flex)
// or one entry per child.
func NewHBox(sizes []int, children ...CacheView) *BoxView {
	return &BoxView{horizontal: true, sizes: sizes, children: children}
}

// NewVBox composes children top to bottom.
func NewVBox(sizes []int, children ...CacheView) *BoxView {
	return &BoxView{horizontal: false, sizes: sizes, children: children}
}

func (v *BoxView) Rect() core.Rect { return v.rect }

func (v *BoxView) SetRect(r core.Rect) {
	v.rect = r
	n := len(v.children)
	if n == 0 {
		return
	}
	total := r.W
	if !v.horizontal {
		total = r.H
	}
	fixed := 0
	flexCount := 0
	for i := range v.children {
		if sz := v.sizeOf(i); sz > 0 {
			fixed += sz
		} else {
			flexCount++
		}
	}
	flexSpace := max(total-fixed, 0)
	flexEach := 0
	flexExtra := 0
	if flexCount > 0 {
		flexEach = flexSpace / flexCount
		flexExtra = flexSpace % flexCount
	}
	pos := 0
	for i, child := range v.children {
		extent := v.sizeOf(i)
		if extent <= 0 {
			extent = flexEach
			if flexExtra > 0 {
				extent++
				flexExtra--
			}
		}
		if v.horizontal {
			child.SetRect(core.Rect{X: r.X + pos, Y: r.Y, W: extent, H: r.H})
		} else {
			child.SetRect(core.Rect{X: r.X, Y: r.Y + pos, W: r.W, H: extent})
		}
		pos += extent
	}
}

func (v *BoxView) sizeOf(i int) int {
	if i < len(v.sizes) {
		return v.sizes[i]
	}
	return 0
}

func (v *BoxView) ForEachCacheView(visitor func(CacheView) bool) bool {
	if !visitor(v) {
		return false
	}
	for _, child := range v.children {
		if !child.ForEachCacheView(visitor) {
			return false
		}
	}
	return true
}

func (v *BoxView) Draw(p *core.Painter, ctx *GuiContext, clip core.Rect) {
	area := v.rect.Intersect(clip)
	if area.Empty() {
		return
	}
	for _, child := range v.children {
		child.Draw(p, ctx, area)
	}
}

func (v *BoxView) CacheViewByPoint(pt core.Point) CacheView {
	if !v.rect.Contains(pt) {
		return nil
	}
	// Later children draw on top, so they are tested first.
	for i := len(v.children) - 1; i >= 0; i-- {
		if hit := v.children[i].CacheViewByPoint(pt); hit != nil {
			return hit
		}
	}
	return nil
}

func (v *BoxView) TooltipByPoint(pt core.Point, info *TooltipInfo) bool {
	if !v.rect.Contains(pt) {
		return false
	}
	for i := len(v.children) - 1; i >= 0; i-- {
		if v.children[i].TooltipByPoint(pt, info) {
			return true
		}
	}
	return false
}

func (v *BoxView) TryActivateControllers(cctx *ControllerContext, item *CacheItem, out *[]Controller) {
	if !v.rect.Contains(cctx.Point) {
		return
	}
	for i := len(v.children) - 1; i >= 0; i-- {
		v.children[i].TryActivateControllers(cctx, item, out)
	}
}

// OverlayView z-stacks children over the same rect. The last child is
// topmost.
type OverlayView struct {
	rect     core.Rect
	children []CacheView
}

// NewOverlay composes children back to front.
func NewOverlay(children ...CacheView) *OverlayView {
	return &OverlayView{children: children}
}

func (v *OverlayView) Rect() core.Rect { return v.rect }

func (v *OverlayView) SetRect(r core.Rect) {
	v.rect = r
	for _, child := range v.children {
		child.SetRect(r)
	}
}

func (v *OverlayView) ForEachCacheView(visitor func(CacheView) bool) bool {
	if !visitor(v) {
		return false
	}
	for _, child := range v.children {
		if !child.ForEachCacheView(visitor) {
			return false
		}
	}
	return true
}

func (v *OverlayView) Draw(p *core.Painter, ctx *GuiContext, clip core.Rect) {
	area := v.rect.Intersect(clip)
	if area.Empty() {
		return
	}
	for _, child := range v.children {
		child.Draw(p, ctx, area)
	}
}

func (v *OverlayView) CacheViewByPoint(pt core.Point) CacheView {
	if !v.rect.Contains(pt) {
		return nil
	}
	for i := len(v.children) - 1; i >= 0; i-- {
		if hit := v.children[i].CacheViewByPoint(pt); hit != nil {
			return hit
		}
	}
	return nil
}

func (v *OverlayView) TooltipByPoint(pt core.Point, info *TooltipInfo) bool {
	if !v.rect.Contains(pt) {
		return false
	}
	for i := len(v.children) - 1; i >= 0; i-- {
		if v.children[i].TooltipByPoint(pt, info) {
			return true
		}
	}
	return false
}

func (v *OverlayView) TryActivateControllers(cctx *ControllerContext, item *CacheItem, out *[]Controller) {
	if !v.rect.Contains(cctx.Point) {
		return
	}
	for i := len(v.children) - 1; i >= 0; i-- {
		v.children[i].TryActivateControllers(cctx, item, out)
	}
}
