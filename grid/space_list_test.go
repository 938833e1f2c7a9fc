// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package grid

import (
	"testing"

	"github.com/framegrace/texelgrid/core"
)

func TestSpaceListGeometry(t *testing.T) {
	s := NewSpaceList(5, 2, 40)
	if got := s.Bounds(); got != core.NewRect(0, 0, 40, 10) {
		t.Fatalf("Bounds = %+v", got)
	}
	if got := s.ItemRect(ItemID{Row: 3}); got != core.NewRect(0, 6, 40, 2) {
		t.Fatalf("ItemRect = %+v", got)
	}
	if got := s.ItemRect(ItemID{Row: 3, Col: 1}); !got.Empty() {
		t.Fatalf("non-zero column rect = %+v", got)
	}
}

func TestSpaceListVisibleItems(t *testing.T) {
	s := NewSpaceList(10, 2, 40)

	ids := s.VisibleItems(core.NewRect(0, 3, 40, 4))
	want := []ItemID{{Row: 1}, {Row: 2}, {Row: 3}}
	if len(ids) != len(want) {
		t.Fatalf("visible = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("visible[%d] = %v", i, ids[i])
		}
	}

	// window fully left or right of the column yields nothing
	if ids := s.VisibleItems(core.NewRect(40, 0, 10, 10)); len(ids) != 0 {
		t.Fatalf("off-column window = %v", ids)
	}
	if ids := s.VisibleItems(core.NewRect(-10, 0, 10, 10)); len(ids) != 0 {
		t.Fatalf("negative-x window = %v", ids)
	}
}

func TestSpaceListBroadcastReasons(t *testing.T) {
	s := NewSpaceList(3, 1, 10)
	rec := &reasonRecorder{}
	s.Subscribe(rec)

	s.SetSchema(nil)
	s.SetRowHeight(0, 2)
	s.SetWidth(20)
	s.ItemsContentChanged()
	s.ItemsSchemaChanged()

	want := []ChangeReason{
		ChangeReasonSpaceHint,
		ChangeReasonSpaceStructure,
		ChangeReasonSpaceStructure,
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
}

func TestSpaceListSetCount(t *testing.T) {
	s := NewSpaceList(2, 3, 10)
	rec := &reasonRecorder{}
	s.Subscribe(rec)

	s.SetCount(4, 5)
	if s.Count() != 4 {
		t.Fatalf("Count = %d", s.Count())
	}
	if got := s.ItemRect(ItemID{Row: 3}); got != core.NewRect(0, 11, 10, 5) {
		t.Fatalf("appended row rect = %+v", got)
	}

	s.SetCount(1, 5)
	if got := s.Bounds(); got != core.NewRect(0, 0, 10, 3) {
		t.Fatalf("Bounds after shrink = %+v", got)
	}

	s.SetCount(1, 5) // no-op
	if len(rec.reasons) != 2 {
		t.Fatalf("reasons = %v", rec.reasons)
	}
	for _, r := range rec.reasons {
		if r != ChangeReasonSpaceStructure {
			t.Fatalf("count change must be structural, got %v", r)
		}
	}
}

func TestCacheSpaceListLookup(t *testing.T) {
	s := NewSpaceList(100, 1, 80)
	s.SetSchema(func(id ItemID, ctx *GuiContext, mask ViewApplicationMask) CacheView {
		return NewLeafView(id, &markRenderer{ch: '-'})
	})
	cs := NewCacheSpaceList(s, ViewApplicationDraw)
	defer cs.Close()
	cs.Set(core.NewRect(0, 0, 80, 25), core.Pt(0, 50))
	cs.Validate(testContext())

	if got := cs.CacheItem(ItemID{Row: 60}); got == nil || got.ID().Row != 60 {
		t.Fatalf("row 60 lookup = %v", got)
	}
	if got := cs.CacheItem(ItemID{Row: 10}); got != nil {
		t.Fatalf("scrolled-out row = %v", got)
	}
	if got := cs.CacheItem(ItemID{Row: 60, Col: 1}); got != nil {
		t.Fatalf("non-zero column lookup = %v", got)
	}

	item := cs.CacheItemByPosition(core.Pt(5, 10))
	if item == nil || item.ID().Row != 60 {
		t.Fatalf("position hit = %v, want row 60", item)
	}
	if got := cs.CacheItemByPosition(core.Pt(5, 30)); got != nil {
		t.Fatalf("hit outside the window = %v", got)
	}
}

func TestCacheSpaceListReuseAcrossScroll(t *testing.T) {
	s := NewSpaceList(50, 2, 40)
	s.SetSchema(func(id ItemID, ctx *GuiContext, mask ViewApplicationMask) CacheView {
		return NewLeafView(id, &markRenderer{ch: '-'})
	})
	cs := NewCacheSpaceList(s, ViewApplicationDraw)
	defer cs.Close()
	cs.Set(core.NewRect(0, 0, 40, 20), core.Pt(0, 0))
	cs.Validate(testContext())

	row5 := cs.CacheItem(ItemID{Row: 5})
	view5 := row5.CacheView()

	cs.SetScrollOffset(core.Pt(0, 10))
	cs.Validate(testContext())

	if got := cs.CacheItem(ItemID{Row: 5}); got != row5 {
		t.Fatalf("row 5 entry was not reused")
	}
	if row5.CacheView() != view5 {
		t.Fatalf("reused entry lost its view")
	}
	if got := row5.Rect(); got != core.NewRect(0, 0, 40, 2) {
		t.Fatalf("row 5 rect after scroll = %+v", got)
	}
	if cs.CacheItem(ItemID{Row: 14}) == nil {
		t.Fatalf("newly revealed row missing")
	}
	if cs.CacheItem(ItemID{Row: 0}) != nil {
		t.Fatalf("scrolled-out row still cached")
	}
}
