// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: theme/theme.go
// Summary: Process-wide color theme for texelgrid widgets. JSON files
// merge over compiled-in defaults, keyed by section and name.

package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Section maps color names to values. Values are "#rrggbb" hex strings
// or tcell color names ("red", "grey30", ...).
type Section map[string]string

// Theme holds named colors grouped by section, plus a flat semantic
// palette ("text.primary", "bg.surface", ...) shared across widgets.
type Theme struct {
	mu       sync.RWMutex
	sections map[string]Section
	semantic map[string]string
}

// New returns a theme preloaded with the built-in defaults.
func New() *Theme {
	t := &Theme{
		sections: make(map[string]Section),
		semantic: make(map[string]string),
	}
	t.applyDefaults()
	return t
}

func (t *Theme) applyDefaults() {
	t.RegisterDefaults("grid", Section{
		"item_fg":      "#cdd6f4",
		"item_bg":      "#1e1e2e",
		"selected_bg":  "#45475a",
		"tooltip_fg":   "#11111b",
		"tooltip_bg":   "#f9e2af",
		"check_fg":     "#a6e3a1",
		"syntax_style": "catppuccin-mocha",
	})
	for name, v := range map[string]string{
		"text.primary": "#cdd6f4",
		"text.muted":   "#6c7086",
		"bg.surface":   "#1e1e2e",
		"bg.overlay":   "#313244",
	} {
		if _, ok := t.semantic[name]; !ok {
			t.semantic[name] = v
		}
	}
}

// RegisterDefaults adds entries to a section without overwriting values
// already present.
func (t *Theme) RegisterDefaults(section string, defs Section) {
	t.mu.Lock()
	defer t.mu.Unlock()
	sec, ok := t.sections[section]
	if !ok {
		sec = make(Section)
		t.sections[section] = sec
	}
	for k, v := range defs {
		if _, exists := sec[k]; !exists {
			sec[k] = v
		}
	}
}

type themeFile struct {
	Sections map[string]Section `json:"sections"`
	Semantic map[string]string  `json:"semantic"`
}

// LoadFile merges a JSON theme file over the current values.
func (t *Theme) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("theme: read %s: %w", path, err)
	}
	var f themeFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("theme: parse %s: %w", path, err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for name, sec := range f.Sections {
		dst, ok := t.sections[name]
		if !ok {
			dst = make(Section)
			t.sections[name] = dst
		}
		for k, v := range sec {
			dst[k] = v
		}
	}
	for k, v := range f.Semantic {
		t.semantic[k] = v
	}
	return nil
}

// GetColor resolves a color by section and key, falling back to def
// when the key is missing or unparsable.
func (t *Theme) GetColor(section, key string, def tcell.Color) tcell.Color {
	t.mu.RLock()
	v, ok := t.sections[section][key]
	t.mu.RUnlock()
	if !ok {
		return def
	}
	if c, ok := parseColor(v); ok {
		return c
	}
	return def
}

// GetString returns a raw string value from a section, or def.
func (t *Theme) GetString(section, key, def string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if v, ok := t.sections[section][key]; ok {
		return v
	}
	return def
}

// GetSemanticColor resolves a semantic palette entry. Unknown names
// return tcell.ColorDefault.
func (t *Theme) GetSemanticColor(name string) tcell.Color {
	t.mu.RLock()
	v, ok := t.semantic[name]
	t.mu.RUnlock()
	if !ok {
		return tcell.ColorDefault
	}
	if c, ok := parseColor(v); ok {
		return c
	}
	return tcell.ColorDefault
}

func parseColor(v string) (tcell.Color, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return tcell.ColorDefault, false
	}
	if strings.HasPrefix(v, "#") {
		n, err := strconv.ParseInt(v[1:], 16, 64)
		if err != nil || len(v) != 7 {
			return tcell.ColorDefault, false
		}
		return tcell.NewHexColor(int32(n)), true
	}
	if c, ok := tcell.ColorNames[strings.ToLower(v)]; ok {
		return c, true
	}
	return tcell.ColorDefault, false
}

var (
	active     *Theme
	activeOnce sync.Once
	activeMu   sync.RWMutex
)

// Get returns the process-wide theme, creating it with defaults on
// first use.
func Get() *Theme {
	activeOnce.Do(func() {
		activeMu.Lock()
		if active == nil {
			active = New()
		}
		activeMu.Unlock()
	})
	activeMu.RLock()
	defer activeMu.RUnlock()
	return active
}

// Set replaces the process-wide theme. Intended for startup and tests.
func Set(t *Theme) {
	activeOnce.Do(func() {})
	activeMu.Lock()
	active = t
	activeMu.Unlock()
}
