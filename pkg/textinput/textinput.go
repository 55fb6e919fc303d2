// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

// Package textinput implements the standalone Text Input Core (spec §4.K):
// a multi-line text buffer with cursor motion, insertion/deletion, masked
// (password) rendering and viewport scrolling. Grounded on
// original_source/src/components/textinput.rs's TextArea, whose cursor is a
// (row, column) pair of character offsets; here "character" is a grapheme
// cluster (github.com/rivo/uniseg) rather than a Rust `char`, which is the
// more unicode-correct boundary and the one charmbracelet/bubbles uses for
// the same job. Display width for viewport math comes from
// github.com/mattn/go-runewidth.
package textinput

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cursor is a 0-based (row, column) position; column counts grapheme
// clusters, not bytes or runes (spec §4.K, invariant 6).
type Cursor struct {
	Row, Col int
}

// Buffer is the TextBuffer of spec §3: a list of lines plus a cursor that
// invariant 6 requires always stays within bounds.
type Buffer struct {
	lines  []string
	cursor Cursor

	// MaskRune, when non-zero, replaces every rendered character with this
	// glyph (masked/password mode, spec §4.K "Masked mode").
	MaskRune rune

	// Placeholder is the text a renderer shows while IsEmpty reports true
	// (spec §4.K). Buffer only stores it; RenderLine does not substitute it.
	Placeholder string

	// viewportTop is the first visible row, maintained by Scroll.
	viewportTop int
}

// New returns an empty, single-line buffer with the cursor at (0, 0).
func New() *Buffer {
	return &Buffer{lines: []string{""}}
}

// SetText replaces the buffer contents with text split on '\n', placing the
// cursor at (0, 0).
func (b *Buffer) SetText(text string) {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	b.lines = lines
	b.cursor = Cursor{}
	b.viewportTop = 0
}

// Text joins the buffer's lines back into a single '\n'-delimited string.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// Lines returns the buffer's lines. The returned slice must not be mutated.
func (b *Buffer) Lines() []string {
	return b.lines
}

// Cursor returns the current cursor position.
func (b *Buffer) Cursor() Cursor {
	return b.cursor
}

// IsEmpty reports whether the buffer equals [""], the placeholder condition.
func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 1 && b.lines[0] == ""
}

// clusterOffsets returns the byte offset of the start of every grapheme
// cluster in s, followed by len(s) as a sentinel end offset. Its length
// minus one is the line's character count in spec terms.
func clusterOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		start, _ := gr.Positions()
		offsets = append(offsets, start)
	}
	offsets = append(offsets, len(s))
	return offsets
}

// charCount returns the number of grapheme clusters in s.
func charCount(s string) int {
	offsets := clusterOffsets(s)
	return len(offsets) - 1
}

// byteOffsetAt returns the byte offset of the col-th grapheme cluster in s,
// or len(s) if col is at or past the end (mirrors the Rust original's
// `char_indices().nth(column).map_or(line.len(), ...)`).
func byteOffsetAt(s string, col int) int {
	offsets := clusterOffsets(s)
	if col < 0 {
		col = 0
	}
	if col >= len(offsets)-1 {
		return offsets[len(offsets)-1]
	}
	return offsets[col]
}

// InsertChar inserts r at the cursor and moves the cursor one character
// to the right (spec §4.K "Insert a character at cursor").
func (b *Buffer) InsertChar(r rune) {
	line := b.lines[b.cursor.Row]
	offset := byteOffsetAt(line, b.cursor.Col)
	b.lines[b.cursor.Row] = line[:offset] + string(r) + line[offset:]
	b.cursor.Col++
}

// InsertNewline splits the current line at the cursor; the cursor moves to
// (row+1, 0) (spec §4.K "Insert newline").
func (b *Buffer) InsertNewline() {
	row, col := b.cursor.Row, b.cursor.Col
	line := b.lines[row]
	offset := byteOffsetAt(line, col)

	before, after := line[:offset], line[offset:]

	newLines := make([]string, 0, len(b.lines)+1)
	newLines = append(newLines, b.lines[:row]...)
	newLines = append(newLines, before, after)
	newLines = append(newLines, b.lines[row+1:]...)
	b.lines = newLines

	b.cursor = Cursor{Row: row + 1, Col: 0}
}

// DeleteBackward deletes the character to the left of the cursor, joining
// with the previous line at column 0 (spec §4.K "Delete-backward").
func (b *Buffer) DeleteBackward() {
	row, col := b.cursor.Row, b.cursor.Col
	if col > 0 {
		line := b.lines[row]
		start := byteOffsetAt(line, col-1)
		end := byteOffsetAt(line, col)
		b.lines[row] = line[:start] + line[end:]
		b.cursor.Col--
		return
	}
	if row > 0 {
		prev := b.lines[row-1]
		prevCount := charCount(prev)
		b.lines[row-1] = prev + b.lines[row]
		b.lines = append(b.lines[:row], b.lines[row+1:]...)
		b.cursor = Cursor{Row: row - 1, Col: prevCount}
	}
}

// DeleteForward deletes the character under the cursor, joining with the
// next line if at end-of-line (spec §4.K "Delete-forward").
func (b *Buffer) DeleteForward() {
	row, col := b.cursor.Row, b.cursor.Col
	line := b.lines[row]
	count := charCount(line)

	if col < count {
		start := byteOffsetAt(line, col)
		end := byteOffsetAt(line, col+1)
		b.lines[row] = line[:start] + line[end:]
		return
	}
	if row < len(b.lines)-1 {
		b.lines[row] = line + b.lines[row+1]
		b.lines = append(b.lines[:row+1], b.lines[row+2:]...)
	}
}

// Move is one of the cursor-motion kinds of spec §4.K "Cursor moves".
type Move int

const (
	MoveLeft Move = iota
	MoveRight
	MoveUp
	MoveDown
	MoveHome
	MoveEnd
	MoveTop
	MoveBottom
	MovePageUp
	MovePageDown
)

// MoveCursor applies m, clamping to line bounds per spec §4.K. viewHeight is
// the viewport height in rows, used by PageUp/PageDown.
func (b *Buffer) MoveCursor(m Move, viewHeight int) {
	row, col := b.cursor.Row, b.cursor.Col
	lastRow := len(b.lines) - 1

	clampCol := func(r, c int) Cursor {
		max := charCount(b.lines[r])
		if c > max {
			c = max
		}
		return Cursor{Row: r, Col: c}
	}

	switch m {
	case MoveLeft:
		if col > 0 {
			b.cursor.Col--
		}
	case MoveRight:
		max := charCount(b.lines[row])
		if col < max {
			b.cursor.Col++
		}
	case MoveUp:
		newRow := row - 1
		if newRow < 0 {
			newRow = 0
		}
		b.cursor = clampCol(newRow, col)
	case MoveDown:
		newRow := row + 1
		if newRow > lastRow {
			newRow = lastRow
		}
		b.cursor = clampCol(newRow, col)
	case MoveHome:
		b.cursor.Col = 0
	case MoveEnd:
		b.cursor.Col = charCount(b.lines[row])
	case MoveTop:
		b.cursor = clampCol(0, col)
	case MoveBottom:
		b.cursor = clampCol(lastRow, col)
	case MovePageUp:
		step := viewHeight
		if step <= 0 {
			step = 1
		}
		newRow := row - step
		if newRow < 0 {
			newRow = 0
		}
		b.cursor = clampCol(newRow, col)
	case MovePageDown:
		step := viewHeight
		if step <= 0 {
			step = 1
		}
		newRow := row + step
		if newRow > lastRow {
			newRow = lastRow
		}
		b.cursor = clampCol(newRow, col)
	}
}

// Scroll recomputes and returns the viewport's top row so that cursor.Row
// stays visible within height rows, sliding the window minimally (spec
// §4.K "Viewport").
func (b *Buffer) Scroll(height int) int {
	if height <= 0 {
		return b.viewportTop
	}
	if b.cursor.Row < b.viewportTop {
		b.viewportTop = b.cursor.Row
	} else if b.cursor.Row >= b.viewportTop+height {
		b.viewportTop = b.cursor.Row - height + 1
	}
	if b.viewportTop < 0 {
		b.viewportTop = 0
	}
	return b.viewportTop
}

// RenderLine returns line row as it should be displayed: mask-substituted
// if MaskRune is set, unchanged otherwise. Renderers call it instead of
// Lines() so masked mode never leaks plaintext.
func (b *Buffer) RenderLine(row int) string {
	line := b.lines[row]
	if b.MaskRune == 0 {
		return line
	}
	count := charCount(line)
	return strings.Repeat(string(b.MaskRune), count)
}

// DisplayWidth returns the terminal column width line row would occupy,
// honoring masked mode, via go-runewidth.
func (b *Buffer) DisplayWidth(row int) int {
	return runewidth.StringWidth(b.RenderLine(row))
}
