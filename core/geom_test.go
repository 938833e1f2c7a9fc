// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package core

import "testing"

func TestRectNormalized(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: -4, H: -2}.Normalized()
	want := Rect{X: 6, Y: 8, W: 4, H: 2}
	if r != want {
		t.Fatalf("Normalized = %+v, want %+v", r, want)
	}
	if r != r.Normalized() {
		t.Fatalf("Normalized is not idempotent")
	}
}

func TestRectIntersect(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)
	got := a.Intersect(b)
	want := Rect{X: 5, Y: 5, W: 5, H: 5}
	if got != want {
		t.Fatalf("Intersect = %+v, want %+v", got, want)
	}
	if !a.Overlaps(b) || !b.Overlaps(a) {
		t.Fatalf("Overlaps should be true both ways")
	}

	c := NewRect(20, 20, 5, 5)
	if got := a.Intersect(c); !got.Empty() {
		t.Fatalf("disjoint Intersect = %+v, want empty", got)
	}
	if a.Overlaps(c) {
		t.Fatalf("disjoint rects must not overlap")
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 5)
	if !r.Contains(Pt(2, 3)) {
		t.Fatalf("top-left corner must be inside")
	}
	if r.Contains(Pt(6, 3)) || r.Contains(Pt(2, 8)) {
		t.Fatalf("right/bottom edges are exclusive")
	}
}

func TestRectUnion(t *testing.T) {
	a := NewRect(0, 0, 2, 2)
	b := NewRect(5, 5, 1, 1)
	want := Rect{X: 0, Y: 0, W: 6, H: 6}
	if got := a.Union(b); got != want {
		t.Fatalf("Union = %+v, want %+v", got, want)
	}
	if got := a.Union(Rect{}); got != a {
		t.Fatalf("Union with empty = %+v, want %+v", got, a)
	}
}

func TestPointArithmetic(t *testing.T) {
	p := Pt(3, 4)
	q := Pt(1, -2)
	if got := p.Add(q); got != Pt(4, 2) {
		t.Fatalf("Add = %+v", got)
	}
	if got := p.Sub(q); got != Pt(2, 6) {
		t.Fatalf("Sub = %+v", got)
	}
	if got := q.Neg(); got != Pt(-1, 2) {
		t.Fatalf("Neg = %+v", got)
	}
	if !(Point{}).IsZero() || p.IsZero() {
		t.Fatalf("IsZero misreports")
	}
}

func TestRectTranslate(t *testing.T) {
	r := NewRect(1, 1, 3, 3).Translate(Pt(-1, 2))
	if r != NewRect(0, 3, 3, 3) {
		t.Fatalf("Translate = %+v", r)
	}
}
