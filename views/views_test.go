// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelgrid/core"
	"github.com/framegrace/texelgrid/grid"
	"github.com/framegrace/texelgrid/theme"
)

func testContext() *grid.GuiContext {
	return &grid.GuiContext{Theme: theme.Get(), BaseStyle: tcell.StyleDefault}
}

func rowText(buf [][]core.Cell, y, x, w int) string {
	var sb strings.Builder
	for i := 0; i < w; i++ {
		sb.WriteRune(buf[y][x+i].Ch)
	}
	return sb.String()
}

func TestTextViewDrawsAndTruncates(t *testing.T) {
	buf := core.NewBuffer(20, 1, tcell.StyleDefault)
	p := core.NewPainter(buf, core.NewRect(0, 0, 20, 1))

	v := NewTextView(StaticText("hello world"))
	v.Draw(p, testContext(), core.NewRect(0, 0, 8, 1), grid.ItemID{})

	if got := rowText(buf, 0, 0, 8); got != "hello w…" {
		t.Fatalf("rendered %q", got)
	}
	if buf[0][8].Ch != ' ' {
		t.Fatalf("text overran the rect")
	}
}

func TestTextViewSelection(t *testing.T) {
	buf := core.NewBuffer(10, 1, tcell.StyleDefault)
	p := core.NewPainter(buf, core.NewRect(0, 0, 10, 1))

	v := NewTextView(StaticText("x")).WithSelection(func(id grid.ItemID) bool {
		return id.Row == 1
	})

	v.Draw(p, testContext(), core.NewRect(0, 0, 5, 1), grid.ItemID{Row: 0})
	_, plainBg, _ := buf[0][0].Style.Decompose()

	v.Draw(p, testContext(), core.NewRect(5, 0, 5, 1), grid.ItemID{Row: 1})
	_, selBg, _ := buf[0][5].Style.Decompose()

	if plainBg == selBg {
		t.Fatalf("selected row must use a distinct background")
	}
}

func TestWithTooltip(t *testing.T) {
	r := WithTooltip(NewTextView(StaticText("x")), func(id grid.ItemID) (string, bool) {
		if id.Row == 0 {
			return "first row", true
		}
		return "", false
	})

	tr, ok := r.(grid.TooltipRenderer)
	if !ok {
		t.Fatalf("wrapper must implement TooltipRenderer")
	}
	if text, ok := tr.Tooltip(grid.ItemID{Row: 0}); !ok || text != "first row" {
		t.Fatalf("tooltip = %q %v", text, ok)
	}
	if _, ok := tr.Tooltip(grid.ItemID{Row: 5}); ok {
		t.Fatalf("row 5 must have no tooltip")
	}
}

func TestCheckViewMarks(t *testing.T) {
	buf := core.NewBuffer(10, 1, tcell.StyleDefault)
	p := core.NewPainter(buf, core.NewRect(0, 0, 10, 1))

	v := NewCheckView(func(id grid.ItemID) bool { return id.Row == 1 })

	v.Draw(p, testContext(), core.NewRect(0, 0, 4, 1), grid.ItemID{Row: 0})
	if got := rowText(buf, 0, 0, 3); got != "[ ]" {
		t.Fatalf("unchecked mark = %q", got)
	}

	v.Draw(p, testContext(), core.NewRect(4, 0, 4, 1), grid.ItemID{Row: 1})
	if got := rowText(buf, 0, 4, 3); got != "[x]" {
		t.Fatalf("checked mark = %q", got)
	}
}

func TestToggleController(t *testing.T) {
	var toggled []grid.ItemID
	c := NewToggleController(func(id grid.ItemID) { toggled = append(toggled, id) })

	click := &grid.ControllerContext{Buttons: tcell.Button1}
	move := &grid.ControllerContext{}

	item := &grid.CacheItem{}
	if !c.ProcessMouse(click, item) {
		t.Fatalf("primary click must be consumed")
	}
	if c.ProcessMouse(move, item) {
		t.Fatalf("motion without buttons must pass through")
	}
	if len(toggled) != 1 {
		t.Fatalf("toggled %d times, want 1", len(toggled))
	}
}

func TestSyntaxTextViewRendersSource(t *testing.T) {
	buf := core.NewBuffer(40, 1, tcell.StyleDefault)
	p := core.NewPainter(buf, core.NewRect(0, 0, 40, 1))

	src := `func f() {}`
	v := NewSyntaxTextView(StaticText(src)).WithLexer("go")
	v.Draw(p, testContext(), core.NewRect(0, 0, 40, 1), grid.ItemID{})

	if got := rowText(buf, 0, 0, len(src)); got != src {
		t.Fatalf("rendered %q, want %q", got, src)
	}

	// the keyword should pick up a non-default foreground
	fg, _, _ := buf[0][0].Style.Decompose()
	if fg == tcell.ColorDefault {
		t.Fatalf("keyword kept the default foreground")
	}
}

func TestSyntaxTextViewUnknownLexerFallsBack(t *testing.T) {
	buf := core.NewBuffer(20, 1, tcell.StyleDefault)
	p := core.NewPainter(buf, core.NewRect(0, 0, 20, 1))

	v := NewSyntaxTextView(StaticText("plain words here")).WithLexer("no-such-language")
	v.Draw(p, testContext(), core.NewRect(0, 0, 20, 1), grid.ItemID{})

	if got := rowText(buf, 0, 0, 16); got != "plain words here" {
		t.Fatalf("rendered %q", got)
	}
}

func TestSyntaxTextViewEmpty(t *testing.T) {
	buf := core.NewBuffer(10, 1, tcell.StyleDefault)
	p := core.NewPainter(buf, core.NewRect(0, 0, 10, 1))

	v := NewSyntaxTextView(StaticText(""))
	v.Draw(p, testContext(), core.NewRect(0, 0, 10, 1), grid.ItemID{})
	if got := rowText(buf, 0, 0, 10); got != strings.Repeat(" ", 10) {
		t.Fatalf("empty text rendered %q", got)
	}
}
