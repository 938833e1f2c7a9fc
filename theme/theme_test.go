// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestDefaultsPresent(t *testing.T) {
	tm := New()
	if c := tm.GetColor("grid", "item_fg", tcell.ColorDefault); c == tcell.ColorDefault {
		t.Fatalf("built-in grid.item_fg missing")
	}
	if s := tm.GetString("grid", "syntax_style", ""); s != "catppuccin-mocha" {
		t.Fatalf("syntax_style = %q", s)
	}
	if c := tm.GetSemanticColor("text.primary"); c == tcell.ColorDefault {
		t.Fatalf("semantic text.primary missing")
	}
}

func TestRegisterDefaultsDoesNotOverwrite(t *testing.T) {
	tm := New()
	tm.RegisterDefaults("demo", Section{"accent": "#ff0000"})
	tm.RegisterDefaults("demo", Section{"accent": "#00ff00", "extra": "#0000ff"})

	if got := tm.GetColor("demo", "accent", tcell.ColorDefault); got != tcell.NewHexColor(0xff0000) {
		t.Fatalf("accent was overwritten: %v", got)
	}
	if got := tm.GetColor("demo", "extra", tcell.ColorDefault); got != tcell.NewHexColor(0x0000ff) {
		t.Fatalf("extra not registered: %v", got)
	}
}

func TestLoadFileMerges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	data := `{
		"sections": {"grid": {"item_fg": "#ff0000"}},
		"semantic": {"text.primary": "#00ff00"}
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	tm := New()
	if err := tm.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := tm.GetColor("grid", "item_fg", tcell.ColorDefault); got != tcell.NewHexColor(0xff0000) {
		t.Fatalf("file value did not win: %v", got)
	}
	if got := tm.GetSemanticColor("text.primary"); got != tcell.NewHexColor(0x00ff00) {
		t.Fatalf("semantic merge failed: %v", got)
	}
	// untouched keys keep their defaults
	if got := tm.GetColor("grid", "item_bg", tcell.ColorDefault); got == tcell.ColorDefault {
		t.Fatalf("item_bg default lost after merge")
	}
}

func TestLoadFileErrors(t *testing.T) {
	tm := New()
	if err := tm.LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("missing file must error")
	}
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := tm.LoadFile(path); err == nil {
		t.Fatalf("malformed file must error")
	}
}

func TestParseColorForms(t *testing.T) {
	tm := New()
	tm.RegisterDefaults("p", Section{
		"hex":   "#123456",
		"named": "red",
		"junk":  "not-a-color",
	})
	if got := tm.GetColor("p", "hex", tcell.ColorDefault); got != tcell.NewHexColor(0x123456) {
		t.Fatalf("hex parse = %v", got)
	}
	if got := tm.GetColor("p", "named", tcell.ColorDefault); got != tcell.ColorNames["red"] {
		t.Fatalf("named parse = %v", got)
	}
	if got := tm.GetColor("p", "junk", tcell.ColorBlue); got != tcell.ColorBlue {
		t.Fatalf("junk must fall back to def, got %v", got)
	}
}
