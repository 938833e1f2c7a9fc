// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/cachespace.go
// Summary: The viewport cache engine: a windowed, scrolled, validated
// projection of a Space. Concrete geometric strategies (grid, list)
// embed CacheSpace and satisfy cacheSpaceImpl.

package grid

import (
	"github.com/framegrace/texelgrid/core"
)

// DrawProxy intercepts the paint pipeline. A registered proxy receives
// the cache space, painter and context; it is expected to call DrawRaw
// at most once for the default pipeline and may wrap it with effects.
// DrawRaw never calls the proxy.
type DrawProxy func(cs *CacheSpace, p *core.Painter, ctx *GuiContext)

// cacheSpaceImpl is the geometric strategy contract. All operations run
// under the engine's invariants; calls originating from within an
// iteration must stay read-only.
type cacheSpaceImpl interface {
	// clearItemsCacheImpl discards every cached item.
	clearItemsCacheImpl()
	// validateItemsCacheImpl rebuilds or incrementally updates the item
	// set from the space for the current window and scroll offset. The
	// accumulated ScrollDelta/SizeDelta journals are available to pick
	// an incremental strategy; the engine resets them afterwards.
	validateItemsCacheImpl()
	// forEachCacheItemImpl visits items in the strategy's order.
	forEachCacheItemImpl(visitor func(*CacheItem) bool) bool
	// cacheItemImpl returns the cached entry for an item, or nil.
	cacheItemImpl(id ItemID) *CacheItem
	// cacheItemByPositionImpl returns the topmost item whose geometry
	// contains the widget point, or nil.
	cacheItemByPositionImpl(pt core.Point) *CacheItem
}

// CacheSpace maintains the materialized cache of items visible through
// a window over a Space. It owns the invariants: the validation flag,
// the scroll/size journals, the in-use guard and the change fan-out.
//
// CacheSpace is single-threaded: all operations must run on the UI
// goroutine, and space change events must not be dispatched from within
// an engine call on the same space.
type CacheSpace struct {
	space   Space
	mask    ViewApplicationMask
	factory CacheItemFactory

	// visible frame, widget coordinates
	window core.Rect
	// space-coordinate point mapped to the window's top-left
	scrollOffset core.Point

	// journals accumulated since the last validation
	scrollDelta core.Point
	sizeDelta   core.Point

	itemsCacheInvalid bool
	cacheIsInUse      bool

	drawProxy DrawProxy

	impl cacheSpaceImpl

	cacheChanged []func(*CacheSpace, ChangeReason)
	preDraw      []func()
}

// init wires the embedding strategy to its space. Called by concrete
// constructors.
func (cs *CacheSpace) init(space Space, mask ViewApplicationMask, impl cacheSpaceImpl) {
	if space == nil {
		panic("texelgrid: CacheSpace needs a space")
	}
	if impl == nil {
		panic("texelgrid: CacheSpace needs a strategy")
	}
	cs.space = space
	cs.mask = mask
	cs.impl = impl
	cs.itemsCacheInvalid = true
	cs.factory = space.CreateCacheItemFactory(mask)
	if cs.factory == nil {
		panic("texelgrid: space returned a nil cache item factory")
	}
	space.Subscribe(cs)
}

// Close detaches the cache space from its space's change signal. The
// back-reference is a non-owning subscription; dropping it breaks the
// space↔cache cycle.
func (cs *CacheSpace) Close() {
	if cs.space != nil {
		cs.space.Unsubscribe(cs)
	}
}

// Space returns the observed space.
func (cs *CacheSpace) Space() Space { return cs.space }

// CacheItemFactory returns the current factory.
func (cs *CacheSpace) CacheItemFactory() CacheItemFactory { return cs.factory }

// ViewApplicationMask returns the current mask.
func (cs *CacheSpace) ViewApplicationMask() ViewApplicationMask { return cs.mask }

// Window returns the visible frame in widget coordinates.
func (cs *CacheSpace) Window() core.Rect { return cs.window }

// ScrollOffset returns the scroll position in space coordinates.
func (cs *CacheSpace) ScrollOffset() core.Point { return cs.scrollOffset }

// ScrollDelta returns the offset journal accumulated since the last
// validation. Strategies read it during validateItemsCacheImpl.
func (cs *CacheSpace) ScrollDelta() core.Point { return cs.scrollDelta }

// SizeDelta returns the window size journal accumulated since the last
// validation.
func (cs *CacheSpace) SizeDelta() core.Point { return cs.sizeDelta }

// OriginPos is the widget position of the space origin:
// window.TopLeft − scrollOffset.
func (cs *CacheSpace) OriginPos() core.Point {
	return cs.window.TopLeft().Sub(cs.scrollOffset)
}

// Window2Space converts a widget point to space coordinates.
func (cs *CacheSpace) Window2Space(p core.Point) core.Point {
	return p.Sub(cs.window.TopLeft()).Add(cs.scrollOffset)
}

// Space2Window converts a space point to widget coordinates.
func (cs *CacheSpace) Space2Window(p core.Point) core.Point {
	return p.Sub(cs.scrollOffset).Add(cs.window.TopLeft())
}

// Space2WindowRect projects a space rect into widget coordinates.
func (cs *CacheSpace) Space2WindowRect(r core.Rect) core.Rect {
	return r.Translate(cs.OriginPos())
}

// OnCacheChanged registers a cache-changed observer. Events are
// delivered synchronously; coalescing is the caller's responsibility.
func (cs *CacheSpace) OnCacheChanged(fn func(*CacheSpace, ChangeReason)) {
	cs.cacheChanged = append(cs.cacheChanged, fn)
}

// OnPreDraw registers an observer fired inside the draw pipeline before
// any item is painted.
func (cs *CacheSpace) OnPreDraw(fn func()) {
	cs.preDraw = append(cs.preDraw, fn)
}

func (cs *CacheSpace) emitCacheChanged(reason ChangeReason) {
	for _, fn := range cs.cacheChanged {
		fn(cs, reason)
	}
}

func (cs *CacheSpace) emitPreDraw() {
	for _, fn := range cs.preDraw {
		fn()
	}
}

// assertNotInUse detects structural mutation during iteration. The
// check runs before any state changes, so a recovered panic leaves the
// cache consistent.
func (cs *CacheSpace) assertNotInUse(op string) {
	if cs.cacheIsInUse {
		panic("texelgrid: " + op + " while the cache is iterated")
	}
}

// acquireCache scopes the in-use guard. Nested acquisitions restore the
// previous state, so the guard survives proxy → DrawRaw chains.
func (cs *CacheSpace) acquireCache() func() {
	prev := cs.cacheIsInUse
	cs.cacheIsInUse = true
	return func() { cs.cacheIsInUse = prev }
}

// OnSpaceChanged implements SpaceListener. Precedence when several bits
// are set: structure clears, hint/item-structure rebuild the factory,
// item content forwards. The CacheContent bit is never interpreted
// inbound.
func (cs *CacheSpace) OnSpaceChanged(space Space, reason ChangeReason) {
	if space != cs.space {
		panic("texelgrid: change event from a foreign space")
	}
	switch {
	case reason.Has(ChangeReasonSpaceStructure):
		cs.Clear()
	case reason.Has(ChangeReasonSpaceHint | ChangeReasonSpaceItemsStructure):
		cs.updateCacheItemsFactory()
		cs.emitCacheChanged(reason | ChangeReasonCacheContent)
	case reason.Has(ChangeReasonSpaceItemsContent):
		cs.emitCacheChanged(reason | ChangeReasonCacheContent)
	}
}

// SetViewApplicationMask replaces the mask, rebuilds the factory and
// re-schemas every cached item. Assigning the current mask is a no-op.
func (cs *CacheSpace) SetViewApplicationMask(mask ViewApplicationMask) {
	if cs.mask == mask {
		return
	}
	cs.mask = mask
	cs.updateCacheItemsFactory()
	cs.emitCacheChanged(ChangeReasonCacheContent)
}

// SetWindow assigns the visible frame. The rect is normalized; the
// top-left displacement and size change accumulate in the journals.
func (cs *CacheSpace) SetWindow(window core.Rect) {
	if cs.window == window {
		return
	}
	normalized := window.Normalized()
	cs.scrollDelta = cs.scrollDelta.Add(normalized.TopLeft().Sub(cs.window.TopLeft()))
	cs.sizeDelta = cs.sizeDelta.Add(normalized.Size().Sub(cs.window.Size()))
	cs.window = normalized
	cs.invalidateItemsCache()
}

// SetScrollOffset assigns the scroll position. Scrolling shifts content
// opposite to the offset, so the journal accumulates the negated delta.
func (cs *CacheSpace) SetScrollOffset(offset core.Point) {
	if cs.scrollOffset == offset {
		return
	}
	cs.scrollDelta = cs.scrollDelta.Add(cs.scrollOffset.Sub(offset))
	cs.scrollOffset = offset
	cs.invalidateItemsCache()
}

// Set assigns window then scroll offset.
func (cs *CacheSpace) Set(window core.Rect, offset core.Point) {
	cs.SetWindow(window)
	cs.SetScrollOffset(offset)
}

// Clear discards all cached items and marks the cache invalid.
// Forbidden while the cache is iterated.
func (cs *CacheSpace) Clear() {
	cs.clearItemsCache()
	cs.invalidateItemsCache()
}

func (cs *CacheSpace) clearItemsCache() {
	cs.assertNotInUse("Clear")
	cs.impl.clearItemsCacheImpl()
	core.Logger().Debug("texelgrid: items cache cleared")
}

func (cs *CacheSpace) invalidateItemsCache() {
	cs.assertNotInUse("invalidate")
	cs.itemsCacheInvalid = true
	cs.emitCacheChanged(ChangeReasonCacheContent)
}

// createCacheItem is the strategies' item constructor.
func (cs *CacheSpace) createCacheItem(id ItemID) *CacheItem {
	return cs.factory.Create(id)
}

func (cs *CacheSpace) updateCacheItemsFactory() {
	cs.assertNotInUse("factory rebuild")
	cs.factory = cs.space.CreateCacheItemFactory(cs.mask)
	if cs.factory == nil {
		panic("texelgrid: space returned a nil cache item factory")
	}
	cs.impl.forEachCacheItemImpl(func(item *CacheItem) bool {
		item.InvalidateCacheView()
		cs.factory.UpdateSchema(item)
		return true
	})
	core.Logger().Debug("texelgrid: cache item factory rebuilt")
}

// validateItemsCache is idempotent and cheap when the cache is valid.
// After the strategy ran, the invalid flag clears and both journals
// reset to zero.
func (cs *CacheSpace) validateItemsCache() {
	if !cs.itemsCacheInvalid {
		return
	}
	cs.impl.validateItemsCacheImpl()
	cs.itemsCacheInvalid = false
	cs.scrollDelta = core.Point{}
	cs.sizeDelta = core.Point{}
}

// CacheItem validates, then returns the cached entry for the item, or
// nil when it is not visible. The pointer is borrowed; it stays valid
// until the next structural invalidation.
func (cs *CacheSpace) CacheItem(id ItemID) *CacheItem {
	cs.validateItemsCache()
	return cs.impl.cacheItemImpl(id)
}

// CacheItemByPosition validates, then returns the topmost cached item
// whose geometry contains the widget point, or nil.
func (cs *CacheSpace) CacheItemByPosition(pt core.Point) *CacheItem {
	cs.validateItemsCache()
	return cs.impl.cacheItemByPositionImpl(pt)
}

// ForEachCacheItem iterates cached items in the strategy's order. The
// visitor returns false to stop; the result reports whether iteration
// completed. The cache may not be mutated from inside the visitor.
func (cs *CacheSpace) ForEachCacheItem(visitor func(*CacheItem) bool) bool {
	if visitor == nil {
		panic("texelgrid: nil visitor")
	}
	release := cs.acquireCache()
	defer release()
	return cs.impl.forEachCacheItemImpl(visitor)
}

// IterateInfo is the cursor passed to ForEachCacheView visitors. Both
// indices are monotonically increasing counters reset per iteration;
// CacheViewIndex restarts at each new cache item.
type IterateInfo struct {
	CacheItem      *CacheItem
	CacheItemIndex int
	CacheView      CacheView
	CacheViewIndex int
}

// ForEachCacheView walks every cached item's view tree pre-order.
func (cs *CacheSpace) ForEachCacheView(visitor func(IterateInfo) bool) bool {
	if visitor == nil {
		panic("texelgrid: nil visitor")
	}
	info := IterateInfo{}
	return cs.ForEachCacheItem(func(item *CacheItem) bool {
		result := true
		info.CacheItem = item
		info.CacheViewIndex = 0
		if root := item.CacheView(); root != nil {
			result = root.ForEachCacheView(func(view CacheView) bool {
				info.CacheView = view
				keep := visitor(info)
				info.CacheViewIndex++
				return keep
			})
		}
		info.CacheItemIndex++
		return result
	})
}

// HasDrawProxy reports whether a proxy is installed.
func (cs *CacheSpace) HasDrawProxy() bool { return cs.drawProxy != nil }

// SetDrawProxy registers a draw interceptor (nil uninstalls). Only
// allowed while the cache is not in use.
func (cs *CacheSpace) SetDrawProxy(proxy DrawProxy) {
	cs.assertNotInUse("SetDrawProxy")
	cs.drawProxy = proxy
}

// Draw runs the full paint pipeline. With a proxy installed the
// sequence (minus validation) is delegated to it; the proxy calls
// DrawRaw for the default pipeline.
func (cs *CacheSpace) Draw(p *core.Painter, ctx *GuiContext) {
	cs.validateItemsCache()
	if cs.drawProxy != nil {
		release := cs.acquireCache()
		defer release()
		cs.drawProxy(cs, p, ctx)
		return
	}
	cs.DrawRaw(p, ctx)
}

// DrawRaw runs the default pipeline, bypassing any proxy: build missing
// views, fire preDraw, then paint every item clipped to the window.
// Painter state and the in-use guard are restored on all exit paths.
func (cs *CacheSpace) DrawRaw(p *core.Painter, ctx *GuiContext) {
	cs.validateItemsCache()

	release := cs.acquireCache()
	defer release()

	cs.impl.forEachCacheItemImpl(func(item *CacheItem) bool {
		item.ValidateCacheView(ctx, cs.window)
		return true
	})

	cs.emitPreDraw()

	p.Save()
	defer p.Restore()
	p.SetClip(cs.window)

	cs.impl.forEachCacheItemImpl(func(item *CacheItem) bool {
		item.Draw(p, ctx, cs.window)
		return true
	})
}

// Validate pre-warms the cache outside a draw pass: item validation
// plus lazy view construction, no painting.
func (cs *CacheSpace) Validate(ctx *GuiContext) {
	cs.validateItemsCache()

	release := cs.acquireCache()
	defer release()

	cs.impl.forEachCacheItemImpl(func(item *CacheItem) bool {
		item.ValidateCacheView(ctx, cs.window)
		return true
	})
}

// TryActivateControllers routes a pointer event to the controllers of
// the cache item under it, appending them to out.
func (cs *CacheSpace) TryActivateControllers(cctx *ControllerContext, out *[]Controller) {
	cs.validateItemsCache()

	release := cs.acquireCache()
	defer release()

	item := cs.impl.cacheItemByPositionImpl(cctx.Point)
	if item == nil {
		return
	}
	item.TryActivateControllers(cctx, cs, cs.window, out)
}

// TooltipByPoint resolves a tooltip at the widget point. Returns
// whether info was filled.
func (cs *CacheSpace) TooltipByPoint(pt core.Point, info *TooltipInfo) bool {
	cs.validateItemsCache()

	release := cs.acquireCache()
	defer release()

	item := cs.impl.cacheItemByPositionImpl(pt)
	if item == nil {
		return false
	}
	return item.TooltipByPoint(pt, info)
}
