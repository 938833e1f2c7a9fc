// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: views/syntax.go
// Summary: Syntax-highlighted text renderer. Chroma does the
// tokenizing; enry detects the language when no lexer is named.

package views

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	"github.com/go-enry/go-enry/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelgrid/core"
	"github.com/framegrace/texelgrid/grid"
)

const defaultSyntaxStyle = "catppuccin-mocha"

// SyntaxTextView renders one line of source text per item with token
// colors from a Chroma style. The lexer is resolved once per item draw:
// explicit name, then enry detection over the filename hint and text,
// then Chroma's content analysis, then the fallback lexer.
type SyntaxTextView struct {
	text      TextFunc
	lexerName string
	filename  string
	styleName string
}

// NewSyntaxTextView builds a highlighting renderer over the text
// source.
func NewSyntaxTextView(text TextFunc) *SyntaxTextView {
	return &SyntaxTextView{text: text}
}

// WithLexer names the lexer explicitly, bypassing detection. Returns
// the receiver for chaining.
func (v *SyntaxTextView) WithLexer(name string) *SyntaxTextView {
	v.lexerName = name
	return v
}

// WithFilename supplies a filename hint for language detection.
func (v *SyntaxTextView) WithFilename(name string) *SyntaxTextView {
	v.filename = name
	return v
}

// WithStyle names the Chroma style. Unset falls back to the themed
// syntax style.
func (v *SyntaxTextView) WithStyle(name string) *SyntaxTextView {
	v.styleName = name
	return v
}

// Draw implements grid.Renderer.
func (v *SyntaxTextView) Draw(p *core.Painter, ctx *grid.GuiContext, rect core.Rect, id grid.ItemID) {
	p.Fill(rect, ' ', ctx.BaseStyle)
	if v.text == nil || rect.W <= 0 || rect.H <= 0 {
		return
	}
	text := v.text(id)
	if text == "" {
		return
	}

	styleName := v.styleName
	if styleName == "" {
		styleName = ctx.Theme.GetString("grid", "syntax_style", defaultSyntaxStyle)
	}
	style := styles.Get(styleName)

	lexer := chroma.Coalesce(v.resolveLexer(text))
	tokens, err := chroma.Tokenise(lexer, nil, text)
	if err != nil {
		p.DrawText(rect.X, rect.Y, runewidth.Truncate(text, rect.W, "…"), ctx.BaseStyle)
		return
	}

	x := rect.X
	limit := rect.X + rect.W
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType || x >= limit {
			break
		}
		x = p.DrawText(x, rect.Y, tok.Value, tokenStyle(ctx.BaseStyle, style.Get(tok.Type)))
	}
}

// resolveLexer walks the detection chain for the item's text.
func (v *SyntaxTextView) resolveLexer(text string) chroma.Lexer {
	if v.lexerName != "" {
		if l := lexers.Get(v.lexerName); l != nil {
			return l
		}
	}
	if lang := enry.GetLanguage(v.filename, []byte(text)); lang != "" && lang != enry.OtherLanguage {
		if l := lexers.Get(lang); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}

// tokenStyle maps a Chroma style entry onto the base cell style.
func tokenStyle(base tcell.Style, entry chroma.StyleEntry) tcell.Style {
	st := base
	if entry.Colour.IsSet() {
		st = st.Foreground(tcell.NewRGBColor(
			int32(entry.Colour.Red()),
			int32(entry.Colour.Green()),
			int32(entry.Colour.Blue()),
		))
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}
