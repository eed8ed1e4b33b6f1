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
	"strconv"
	"strings"
)

// Pos represents a token's position within the input text. This is a rune
// index rather than a byte index.
//
type Pos int

// IsValid returns true if p is a valid position (i.e. p >= 0).
//
func (p Pos) IsValid() bool {
	return p >= 0
}

// A Type is the lexical category of a token. Types form a hierarchy where
// each type but the top-level ones specializes a parent type. For example
// LiteralStringRegex is a specialization of LiteralString, itself a
// specialization of Literal.
//
type Type int

// Invalid is returned by Type.Parent for top-level types.
//
const Invalid Type = -1

// Token types.
//
const (
	EOF   Type = iota // end of input, not part of the text coverage
	Error             // unmatched input
	Other             // text deferred to another lexer (see Composite)
	Text
	Whitespace
	Comment
	CommentPreproc
	Keyword
	KeywordConstant
	KeywordDeclaration
	KeywordNamespace
	KeywordReserved
	KeywordType
	Name
	NameAttribute
	NameClass
	NameDecorator
	NameEntity
	NameFunction
	NameLabel
	NameNamespace
	NameTag
	Literal
	LiteralString
	LiteralStringDouble
	LiteralStringSingle
	LiteralStringEscape
	LiteralStringInterpol
	LiteralStringRegex
	LiteralNumber
	LiteralNumberFloat
	LiteralNumberHex
	LiteralNumberInteger
	LiteralNumberIntegerLong
	LiteralNumberOct
	Operator
	Punctuation

	maxType
)

// Shorter aliases for the most common literal types.
//
const (
	String   = LiteralString
	Number   = LiteralNumber
	Escape   = LiteralStringEscape
	Regex    = LiteralStringRegex
	Interpol = LiteralStringInterpol
)

var types = [maxType]struct {
	name   string
	parent Type
}{
	EOF:                      {"EOF", Invalid},
	Error:                    {"Error", Invalid},
	Other:                    {"Other", Invalid},
	Text:                     {"Text", Invalid},
	Whitespace:               {"Whitespace", Text},
	Comment:                  {"Comment", Invalid},
	CommentPreproc:           {"Preproc", Comment},
	Keyword:                  {"Keyword", Invalid},
	KeywordConstant:          {"Constant", Keyword},
	KeywordDeclaration:       {"Declaration", Keyword},
	KeywordNamespace:         {"Namespace", Keyword},
	KeywordReserved:          {"Reserved", Keyword},
	KeywordType:              {"Type", Keyword},
	Name:                     {"Name", Invalid},
	NameAttribute:            {"Attribute", Name},
	NameClass:                {"Class", Name},
	NameDecorator:            {"Decorator", Name},
	NameEntity:               {"Entity", Name},
	NameFunction:             {"Function", Name},
	NameLabel:                {"Label", Name},
	NameNamespace:            {"Namespace", Name},
	NameTag:                  {"Tag", Name},
	Literal:                  {"Literal", Invalid},
	LiteralString:            {"String", Literal},
	LiteralStringDouble:      {"Double", LiteralString},
	LiteralStringSingle:      {"Single", LiteralString},
	LiteralStringEscape:      {"Escape", LiteralString},
	LiteralStringInterpol:    {"Interpol", LiteralString},
	LiteralStringRegex:       {"Regex", LiteralString},
	LiteralNumber:            {"Number", Literal},
	LiteralNumberFloat:       {"Float", LiteralNumber},
	LiteralNumberHex:         {"Hex", LiteralNumber},
	LiteralNumberInteger:     {"Integer", LiteralNumber},
	LiteralNumberIntegerLong: {"Long", LiteralNumberInteger},
	LiteralNumberOct:         {"Oct", LiteralNumber},
	Operator:                 {"Operator", Invalid},
	Punctuation:              {"Punctuation", Invalid},
}

func (t Type) valid() bool {
	return t >= 0 && t < maxType
}

// Parent returns the type specialized by t, or Invalid if t is a top-level
// type.
//
func (t Type) Parent() Type {
	if !t.valid() {
		return Invalid
	}
	return types[t].parent
}

// In returns true if t is c or one of its specializations. A consumer matching
// on a coarse category should use In rather than ==.
//
func (t Type) In(c Type) bool {
	for ; t.valid(); t = types[t].parent {
		if t == c {
			return true
		}
	}
	return false
}

// String returns the dotted path of t, e.g. "Literal.String.Regex".
//
func (t Type) String() string {
	if !t.valid() {
		return "Invalid"
	}
	if types[t].parent == Invalid {
		return types[t].name
	}
	var parts []string
	for ; t.valid(); t = types[t].parent {
		parts = append(parts, types[t].name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// A Token is a typed span of the input text.
//
type Token struct {
	Type  Type
	Pos   Pos    // rune offset of Value in the input
	Value string // the span text
}

// String returns a string representation of the token. This should be used
// only for debugging purposes as the output format is not guaranteed to be
// stable.
//
func (t Token) String() string {
	return t.Type.String() + " " + strconv.Quote(t.Value)
}
