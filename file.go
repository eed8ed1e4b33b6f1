// Copyright 2017-2020 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

package rulex

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// ErrLine is returned by File.Line for positions outside of the file.
var ErrLine = errors.New("invalid line number")

// Position describes an arbitrary source position including the file, line, and column location.
//
type Position struct {
	Filename string
	Line     int // 1-based line number
	Column   int // 1-based column number (rune index)
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// A File represents an input text. It handles rune offset to line/column
// conversion for token positions.
//
type File struct {
	name  string
	text  []rune
	lines []Pos // 0-based line/Pos information
}

// NewFile returns a new File for the given text.
//
func NewFile(name string, text string) *File {
	f := &File{
		name:  name,
		text:  []rune(text),
		lines: []Pos{0},
	}
	for i, r := range f.text {
		if r == '\n' {
			f.lines = append(f.lines, Pos(i+1))
		}
	}
	return f
}

// Name returns the file name.
//
func (f *File) Name() string {
	return f.name
}

// Position returns the 1-based line and column for a given pos.
//
func (f *File) Position(pos Pos) Position {
	i, j := 0, len(f.lines)
	for i < j {
		h := int(uint(i+j) >> 1)
		if !(f.lines[h] > pos) {
			i = h + 1
		} else {
			j = h
		}
	}
	if i == 0 {
		i = 1
	}
	return Position{f.name, i, int(pos - f.lines[i-1] + 1)}
}

// LinePos return the file offset of the given line.
//
func (f *File) LinePos(line int) Pos {
	if line < 1 || line > len(f.lines) {
		return -1
	}
	return f.lines[line-1]
}

// Line returns the text of the line containing pos, without its line
// terminator.
//
func (f *File) Line(pos Pos) (string, error) {
	if pos < 0 || int(pos) > len(f.text) {
		return "", ErrLine
	}
	lp := f.LinePos(f.Position(pos).Line)
	if !lp.IsValid() {
		return "", ErrLine
	}
	end := int(lp)
	for end < len(f.text) && f.text[end] != '\n' {
		end++
	}
	return strings.TrimSuffix(string(f.text[lp:end]), "\r"), nil
}

// Caret returns a line containing a caret aligned with pos when printed below
// the line returned by Line, assuming a monospaced font and a UTF-8 locale.
// East Asian wide characters count for two cells and tabs are preserved.
//
func (f *File) Caret(pos Pos) string {
	l, err := f.Line(pos)
	if err != nil {
		return ""
	}
	col := f.Position(pos).Column - 1
	rs := []rune(l)
	if col > len(rs) {
		col = len(rs)
	}
	var b strings.Builder
	for _, r := range rs[:col] {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", cellWidth(r)))
	}
	b.WriteByte('^')
	return b.String()
}

// cellWidth returns the width in text cells of r.
//
func cellWidth(r rune) int {
	if !unicode.IsGraphic(r) {
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianFullwidth, width.EastAsianWide:
		return 2
	case width.EastAsianAmbiguous:
		return 1 // depends on user locale. 2 if locale is CJK, 1 otherwise.
	default:
		return 1
	}
}
