// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grid/space_grid.go
// Summary: Grid space (rows × columns with per-row heights and
// per-column widths) and its cache space strategy.

package grid

import (
	"sort"

	"github.com/framegrace/texelgrid/core"
)

// SpaceGrid arranges items in rows and columns. Item (r, c) occupies
// the rect spanned by the row's height and the column's width. Mutators
// emit the canonical change reasons.
type SpaceGrid struct {
	SpaceDispatcher

	rowHeights []int
	colWidths  []int

	// prefix sums, rebuilt lazily
	rowOffsets   []int
	colOffsets   []int
	offsetsValid bool

	schema ViewSchema
}

// NewSpaceGrid builds a grid with uniform cell geometry.
func NewSpaceGrid(rows, cols, rowHeight, colWidth int) *SpaceGrid {
	s := &SpaceGrid{
		rowHeights: make([]int, max(rows, 0)),
		colWidths:  make([]int, max(cols, 0)),
	}
	for i := range s.rowHeights {
		s.rowHeights[i] = rowHeight
	}
	for i := range s.colWidths {
		s.colWidths[i] = colWidth
	}
	return s
}

// Rows returns the row count.
func (s *SpaceGrid) Rows() int { return len(s.rowHeights) }

// Cols returns the column count.
func (s *SpaceGrid) Cols() int { return len(s.colWidths) }

// SetSchema assigns the view schema. Schema-affecting metadata: cached
// items persist, views are rebuilt.
func (s *SpaceGrid) SetSchema(schema ViewSchema) {
	s.schema = schema
	s.Broadcast(s, ChangeReasonSpaceHint)
}

// SetRowHeight changes one row's height, a structural change.
func (s *SpaceGrid) SetRowHeight(row, h int) {
	if row < 0 || row >= len(s.rowHeights) || s.rowHeights[row] == h {
		return
	}
	s.rowHeights[row] = h
	s.offsetsValid = false
	s.Broadcast(s, ChangeReasonSpaceStructure)
}

// SetColWidth changes one column's width, a structural change.
func (s *SpaceGrid) SetColWidth(col, w int) {
	if col < 0 || col >= len(s.colWidths) || s.colWidths[col] == w {
		return
	}
	s.colWidths[col] = w
	s.offsetsValid = false
	s.Broadcast(s, ChangeReasonSpaceStructure)
}

// SetRowCount grows or shrinks the grid; new rows take rowHeight.
func (s *SpaceGrid) SetRowCount(rows, rowHeight int) {
	if rows < 0 {
		rows = 0
	}
	if rows == len(s.rowHeights) {
		return
	}
	for len(s.rowHeights) < rows {
		s.rowHeights = append(s.rowHeights, rowHeight)
	}
	s.rowHeights = s.rowHeights[:rows]
	s.offsetsValid = false
	s.Broadcast(s, ChangeReasonSpaceStructure)
}

// ItemsContentChanged announces value-only changes; the cache keeps its
// items and views.
func (s *SpaceGrid) ItemsContentChanged() {
	s.Broadcast(s, ChangeReasonSpaceItemsContent)
}

// ItemsSchemaChanged announces per-item schema changes; views are
// rebuilt through a fresh factory.
func (s *SpaceGrid) ItemsSchemaChanged() {
	s.Broadcast(s, ChangeReasonSpaceItemsStructure)
}

func (s *SpaceGrid) ensureOffsets() {
	if s.offsetsValid {
		return
	}
	s.rowOffsets = prefixSums(s.rowHeights)
	s.colOffsets = prefixSums(s.colWidths)
	s.offsetsValid = true
}

// prefixSums returns n+1 offsets: offsets[i] is the start of entry i,
// offsets[n] the total extent.
func prefixSums(sizes []int) []int {
	out := make([]int, len(sizes)+1)
	for i, sz := range sizes {
		out[i+1] = out[i] + max(sz, 0)
	}
	return out
}

// Bounds implements Space.
func (s *SpaceGrid) Bounds() core.Rect {
	s.ensureOffsets()
	return core.Rect{W: s.colOffsets[len(s.colWidths)], H: s.rowOffsets[len(s.rowHeights)]}
}

// visibleRange returns [first, last) of entries overlapping [from, to)
// given prefix sums.
func visibleRange(offsets []int, from, to int) (int, int) {
	n := len(offsets) - 1
	if n <= 0 || to <= from {
		return 0, 0
	}
	// first entry whose end is past `from`
	first := sort.Search(n, func(i int) bool { return offsets[i+1] > from })
	// first entry starting at or past `to`
	last := sort.Search(n, func(i int) bool { return offsets[i] >= to })
	if first > last {
		first = last
	}
	return first, last
}

// VisibleItems implements Space: row-major over the rows and columns
// intersecting the window.
func (s *SpaceGrid) VisibleItems(window core.Rect) []ItemID {
	s.ensureOffsets()
	window = window.Normalized()
	r0, r1 := visibleRange(s.rowOffsets, window.Y, window.Y+window.H)
	c0, c1 := visibleRange(s.colOffsets, window.X, window.X+window.W)
	ids := make([]ItemID, 0, (r1-r0)*(c1-c0))
	for r := r0; r < r1; r++ {
		for c := c0; c < c1; c++ {
			ids = append(ids, ItemID{Row: r, Col: c})
		}
	}
	return ids
}

// ItemRect implements Space.
func (s *SpaceGrid) ItemRect(id ItemID) core.Rect {
	if id.Row < 0 || id.Row >= len(s.rowHeights) || id.Col < 0 || id.Col >= len(s.colWidths) {
		return core.Rect{}
	}
	s.ensureOffsets()
	return core.Rect{
		X: s.colOffsets[id.Col],
		Y: s.rowOffsets[id.Row],
		W: s.colWidths[id.Col],
		H: s.rowHeights[id.Row],
	}
}

// CreateCacheItemFactory implements Space.
func (s *SpaceGrid) CreateCacheItemFactory(mask ViewApplicationMask) CacheItemFactory {
	return NewSchemaFactory(s.schema, mask)
}

// CacheSpaceGrid caches the grid projection. Items are kept in a map by
// ID plus a row-major visit order; validation reuses entries whose ID
// is still visible so built views and schema versions survive scrolls.
type CacheSpaceGrid struct {
	CacheSpace

	items map[ItemID]*CacheItem
	order []ItemID
}

// NewCacheSpaceGrid builds the cache space and subscribes it to the
// space. Call Close when done.
func NewCacheSpaceGrid(space Space, mask ViewApplicationMask) *CacheSpaceGrid {
	cg := &CacheSpaceGrid{items: make(map[ItemID]*CacheItem)}
	cg.CacheSpace.init(space, mask, cg)
	return cg
}

func (cg *CacheSpaceGrid) clearItemsCacheImpl() {
	cg.items = make(map[ItemID]*CacheItem)
	cg.order = cg.order[:0]
}

func (cg *CacheSpaceGrid) validateItemsCacheImpl() {
	window := cg.Window()
	spaceWindow := core.Rect{
		X: cg.ScrollOffset().X,
		Y: cg.ScrollOffset().Y,
		W: window.W,
		H: window.H,
	}
	visible := cg.Space().VisibleItems(spaceWindow)

	old := cg.items
	cg.items = make(map[ItemID]*CacheItem, len(visible))
	cg.order = cg.order[:0]
	reused := 0
	for _, id := range visible {
		item := old[id]
		if item != nil {
			reused++
		} else {
			item = cg.createCacheItem(id)
		}
		item.SetRect(cg.Space2WindowRect(cg.Space().ItemRect(id)))
		cg.items[id] = item
		cg.order = append(cg.order, id)
	}
	core.Logger().Debug("texelgrid: grid cache validated",
		"visible", len(visible), "reused", reused,
		"scrollDelta", cg.ScrollDelta(), "sizeDelta", cg.SizeDelta())
}

func (cg *CacheSpaceGrid) forEachCacheItemImpl(visitor func(*CacheItem) bool) bool {
	for _, id := range cg.order {
		if !visitor(cg.items[id]) {
			return false
		}
	}
	return true
}

func (cg *CacheSpaceGrid) cacheItemImpl(id ItemID) *CacheItem {
	return cg.items[id]
}

func (cg *CacheSpaceGrid) cacheItemByPositionImpl(pt core.Point) *CacheItem {
	if !cg.Window().Contains(pt) {
		return nil
	}
	// Reverse visit order: the topmost item wins.
	for i := len(cg.order) - 1; i >= 0; i-- {
		item := cg.items[cg.order[i]]
		if item.Rect().Contains(pt) {
			return item
		}
	}
	return nil
}
