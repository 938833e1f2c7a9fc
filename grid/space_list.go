// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/space_list.go
// Summary: Vertical list space (single column, per-row heights) and a
// cache strategy that keeps items sorted by row for binary search.

package grid

import (
	"sort"

	"github.com/framegrace/texelgrid/core"
)

// SpaceList arranges items in a single vertical column. Item i is
// ItemID{Row: i}.
type SpaceList struct {
	SpaceDispatcher

	heights      []int
	width        int
	offsets      []int
	offsetsValid bool

	schema ViewSchema
}

// NewSpaceList builds a list of count rows with uniform height.
func NewSpaceList(count, rowHeight, width int) *SpaceList {
	s := &SpaceList{heights: make([]int, max(count, 0)), width: width}
	for i := range s.heights {
		s.heights[i] = rowHeight
	}
	return s
}

// Count returns the row count.
func (s *SpaceList) Count() int { return len(s.heights) }

// SetSchema assigns the view schema (schema-affecting metadata).
func (s *SpaceList) SetSchema(schema ViewSchema) {
	s.schema = schema
	s.Broadcast(s, ChangeReasonSpaceHint)
}

// SetCount grows or shrinks the list; new rows take rowHeight.
func (s *SpaceList) SetCount(count, rowHeight int) {
	if count < 0 {
		count = 0
	}
	if count == len(s.heights) {
		return
	}
	for len(s.heights) < count {
		s.heights = append(s.heights, rowHeight)
	}
	s.heights = s.heights[:count]
	s.offsetsValid = false
	s.Broadcast(s, ChangeReasonSpaceStructure)
}

// SetRowHeight changes one row's height, a structural change.
func (s *SpaceList) SetRowHeight(row, h int) {
	if row < 0 || row >= len(s.heights) || s.heights[row] == h {
		return
	}
	s.heights[row] = h
	s.offsetsValid = false
	s.Broadcast(s, ChangeReasonSpaceStructure)
}

// SetWidth changes the column width, a structural change.
func (s *SpaceList) SetWidth(w int) {
	if s.width == w {
		return
	}
	s.width = w
	s.Broadcast(s, ChangeReasonSpaceStructure)
}

// ItemsContentChanged announces value-only changes.
func (s *SpaceList) ItemsContentChanged() {
	s.Broadcast(s, ChangeReasonSpaceItemsContent)
}

// ItemsSchemaChanged announces per-item schema changes; views are
// rebuilt through a fresh factory.
func (s *SpaceList) ItemsSchemaChanged() {
	s.Broadcast(s, ChangeReasonSpaceItemsStructure)
}

func (s *SpaceList) ensureOffsets() {
	if s.offsetsValid {
		return
	}
	s.offsets = prefixSums(s.heights)
	s.offsetsValid = true
}

// Bounds implements Space.
func (s *SpaceList) Bounds() core.Rect {
	s.ensureOffsets()
	return core.Rect{W: s.width, H: s.offsets[len(s.heights)]}
}

// VisibleItems implements Space, top to bottom.
func (s *SpaceList) VisibleItems(window core.Rect) []ItemID {
	s.ensureOffsets()
	window = window.Normalized()
	if window.X >= s.width || window.X+window.W <= 0 {
		return nil
	}
	r0, r1 := visibleRange(s.offsets, window.Y, window.Y+window.H)
	ids := make([]ItemID, 0, r1-r0)
	for r := r0; r < r1; r++ {
		ids = append(ids, ItemID{Row: r})
	}
	return ids
}

// ItemRect implements Space.
func (s *SpaceList) ItemRect(id ItemID) core.Rect {
	if id.Col != 0 || id.Row < 0 || id.Row >= len(s.heights) {
		return core.Rect{}
	}
	s.ensureOffsets()
	return core.Rect{Y: s.offsets[id.Row], W: s.width, H: s.heights[id.Row]}
}

// CreateCacheItemFactory implements Space.
func (s *SpaceList) CreateCacheItemFactory(mask ViewApplicationMask) CacheItemFactory {
	return NewSchemaFactory(s.schema, mask)
}

// CacheSpaceList caches the list projection in a slice sorted by row,
// which keeps lookups logarithmic.
type CacheSpaceList struct {
	CacheSpace

	items []*CacheItem
}

// NewCacheSpaceList builds the cache space and subscribes it to the
// space. Call Close when done.
func NewCacheSpaceList(space Space, mask ViewApplicationMask) *CacheSpaceList {
	cl := &CacheSpaceList{}
	cl.CacheSpace.init(space, mask, cl)
	return cl
}

func (cl *CacheSpaceList) clearItemsCacheImpl() {
	cl.items = cl.items[:0]
}

func (cl *CacheSpaceList) validateItemsCacheImpl() {
	window := cl.Window()
	spaceWindow := core.Rect{
		X: cl.ScrollOffset().X,
		Y: cl.ScrollOffset().Y,
		W: window.W,
		H: window.H,
	}
	visible := cl.Space().VisibleItems(spaceWindow)

	old := cl.items
	next := make([]*CacheItem, 0, len(visible))
	for _, id := range visible {
		item := findByRow(old, id.Row)
		if item == nil {
			item = cl.createCacheItem(id)
		}
		item.SetRect(cl.Space2WindowRect(cl.Space().ItemRect(id)))
		next = append(next, item)
	}
	cl.items = next
	core.Logger().Debug("texelgrid: list cache validated", "visible", len(visible))
}

// findByRow binary-searches a row-sorted item slice.
func findByRow(items []*CacheItem, row int) *CacheItem {
	i := sort.Search(len(items), func(i int) bool { return items[i].ID().Row >= row })
	if i < len(items) && items[i].ID().Row == row {
		return items[i]
	}
	return nil
}

func (cl *CacheSpaceList) forEachCacheItemImpl(visitor func(*CacheItem) bool) bool {
	for _, item := range cl.items {
		if !visitor(item) {
			return false
		}
	}
	return true
}

func (cl *CacheSpaceList) cacheItemImpl(id ItemID) *CacheItem {
	if id.Col != 0 {
		return nil
	}
	return findByRow(cl.items, id.Row)
}

func (cl *CacheSpaceList) cacheItemByPositionImpl(pt core.Point) *CacheItem {
	if !cl.Window().Contains(pt) {
		return nil
	}
	i := sort.Search(len(cl.items), func(i int) bool {
		r := cl.items[i].Rect()
		return r.Y+r.H > pt.Y
	})
	if i < len(cl.items) && cl.items[i].Rect().Contains(pt) {
		return cl.items[i]
	}
	return nil
}
