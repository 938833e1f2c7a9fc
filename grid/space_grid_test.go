// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package grid

import (
	"testing"

	"github.com/framegrace/texelgrid/core"
)

type reasonRecorder struct {
	reasons []ChangeReason
}

func (r *reasonRecorder) OnSpaceChanged(space Space, reason ChangeReason) {
	r.reasons = append(r.reasons, reason)
}

func TestSpaceGridGeometry(t *testing.T) {
	s := NewSpaceGrid(3, 2, 10, 20)
	if got := s.Bounds(); got != core.NewRect(0, 0, 40, 30) {
		t.Fatalf("Bounds = %+v", got)
	}
	if got := s.ItemRect(ItemID{Row: 1, Col: 1}); got != core.NewRect(20, 10, 20, 10) {
		t.Fatalf("ItemRect = %+v", got)
	}
	if got := s.ItemRect(ItemID{Row: 9, Col: 0}); !got.Empty() {
		t.Fatalf("out-of-range rect = %+v", got)
	}
}

func TestSpaceGridVisibleItems(t *testing.T) {
	s := NewSpaceGrid(4, 4, 10, 10)

	ids := s.VisibleItems(core.NewRect(15, 15, 10, 10))
	want := []ItemID{{1, 1}, {1, 2}, {2, 1}, {2, 2}}
	if len(ids) != len(want) {
		t.Fatalf("visible = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("visible[%d] = %v, want %v (row-major order)", i, ids[i], want[i])
		}
	}

	if ids := s.VisibleItems(core.NewRect(100, 100, 10, 10)); len(ids) != 0 {
		t.Fatalf("window beyond bounds = %v", ids)
	}
	if ids := s.VisibleItems(core.Rect{}); len(ids) != 0 {
		t.Fatalf("empty window = %v", ids)
	}
}

func TestSpaceGridPartialOverlapCounts(t *testing.T) {
	s := NewSpaceGrid(3, 1, 10, 100)
	// one row fully, the next partially
	ids := s.VisibleItems(core.NewRect(0, 5, 100, 10))
	if len(ids) != 2 || ids[0] != (ItemID{Row: 0}) || ids[1] != (ItemID{Row: 1}) {
		t.Fatalf("partial overlap = %v", ids)
	}
}

func TestSpaceGridBroadcastReasons(t *testing.T) {
	s := NewSpaceGrid(2, 2, 10, 10)
	rec := &reasonRecorder{}
	s.Subscribe(rec)

	s.SetRowHeight(0, 5)
	s.SetColWidth(1, 5)
	s.SetRowCount(4, 10)
	s.SetSchema(nil)
	s.ItemsContentChanged()
	s.ItemsSchemaChanged()

	want := []ChangeReason{
		ChangeReasonSpaceStructure,
		ChangeReasonSpaceStructure,
		ChangeReasonSpaceStructure,
		ChangeReasonSpaceHint,
		ChangeReasonSpaceItemsContent,
		ChangeReasonSpaceItemsStructure,
	}
	if len(rec.reasons) != len(want) {
		t.Fatalf("reasons = %v, want %v", rec.reasons, want)
	}
	for i := range want {
		if rec.reasons[i] != want[i] {
			t.Fatalf("reason %d = %v, want %v", i, rec.reasons[i], want[i])
		}
	}

	// same-value mutators stay silent
	rec.reasons = nil
	s.SetRowHeight(0, 5)
	s.SetColWidth(1, 5)
	s.SetRowCount(4, 10)
	if len(rec.reasons) != 0 {
		t.Fatalf("no-op mutators emitted %v", rec.reasons)
	}

	s.Unsubscribe(rec)
	s.SetRowHeight(0, 9)
	if len(rec.reasons) != 0 {
		t.Fatalf("unsubscribed listener still notified")
	}
}

func TestSpaceGridResizeReflows(t *testing.T) {
	s := NewSpaceGrid(2, 2, 10, 10)
	s.SetRowHeight(0, 4)
	if got := s.ItemRect(ItemID{Row: 1, Col: 0}); got != core.NewRect(0, 4, 10, 10) {
		t.Fatalf("row 1 rect after resize = %+v", got)
	}
	if got := s.Bounds(); got != core.NewRect(0, 0, 20, 14) {
		t.Fatalf("Bounds after resize = %+v", got)
	}
}

func TestCacheSpaceGridEndToEnd(t *testing.T) {
	s := NewSpaceGrid(10, 3, 2, 10)
	s.SetSchema(func(id ItemID, ctx *GuiContext, mask ViewApplicationMask) CacheView {
		return NewLeafView(id, &markRenderer{ch: '.'})
	})
	cs := NewCacheSpaceGrid(s, ViewApplicationDraw)
	defer cs.Close()
	cs.Set(core.NewRect(0, 0, 30, 10), core.Pt(0, 0))

	cs.Draw(testPainter(), testContext())

	// 5 visible rows × 3 cols
	count := 0
	cs.ForEachCacheItem(func(*CacheItem) bool { count++; return true })
	if count != 15 {
		t.Fatalf("cached %d items, want 15", count)
	}

	item := cs.CacheItemByPosition(core.Pt(15, 3))
	if item == nil || item.ID() != (ItemID{Row: 1, Col: 1}) {
		t.Fatalf("hit = %v, want (1,1)", item)
	}

	// a structural resize reflows the projection
	s.SetRowHeight(0, 6)
	if got := cs.CacheItem(ItemID{Row: 1, Col: 0}).Rect(); got != core.NewRect(0, 6, 10, 2) {
		t.Fatalf("row 1 rect after reflow = %+v", got)
	}
}
