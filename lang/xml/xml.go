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

// Package xml implements a lexer for generic XML markup.
//
package xml

import (
	"strings"

	"github.com/db47h/rulex"
	"golang.org/x/net/html"
)

// Lexer is the XML lexer.
//
var Lexer = rulex.MustNew(rulex.Config{
	Name:      "XML",
	Aliases:   []string{"xml"},
	Filenames: []string{"*.xml", "*.xsl", "*.rss", "*.xslt", "*.xsd", "*.wsdl"},
	MimeTypes: []string{"text/xml", "application/xml", "image/svg+xml", "application/rss+xml", "application/atom+xml"},
}, rulex.States{
	"root": {
		{`[^<&]+`, rulex.Emit(rulex.Text), nil},
		{`&\S*?;`, rulex.Emit(rulex.NameEntity), nil},
		{`<!\[CDATA\[.*?\]\]>`, rulex.Emit(rulex.CommentPreproc), nil},
		{`<!--`, rulex.Emit(rulex.Comment), rulex.Push("comment")},
		{`<\?.*?\?>`, rulex.Emit(rulex.CommentPreproc), nil},
		{`<![^>]*>`, rulex.Emit(rulex.CommentPreproc), nil},
		{`<\s*[\w:.-]+`, rulex.Emit(rulex.NameTag), rulex.Push("tag")},
		{`<\s*/\s*[\w:.-]+\s*>`, rulex.Emit(rulex.NameTag), nil},
	},
	"comment": {
		{`[^-]+`, rulex.Emit(rulex.Comment), nil},
		{`-->`, rulex.Emit(rulex.Comment), rulex.Pop(1)},
		{`-`, rulex.Emit(rulex.Comment), nil},
	},
	"tag": {
		{`\s+`, rulex.Emit(rulex.Text), nil},
		{`[\w.:-]+\s*=`, rulex.Emit(rulex.NameAttribute), rulex.Push("attr")},
		{`/?\s*>`, rulex.Emit(rulex.NameTag), rulex.Pop(1)},
	},
	"attr": {
		{`\s+`, rulex.Emit(rulex.Text), nil},
		{`".*?"`, rulex.Emit(rulex.String), rulex.Pop(1)},
		{`'.*?'`, rulex.Emit(rulex.String), rulex.Pop(1)},
		{`[^\s>]+`, rulex.Emit(rulex.String), rulex.Pop(1)},
	},
}).SetAnalyser(func(text string) float32 {
	if LooksLikeXML(text) {
		return 0.45
	}
	return 0
})

// sniffLen is the number of runes searched for a pair of tags by LooksLikeXML.
const sniffLen = 1000

// LooksLikeXML returns true if text starts with an XML declaration, if it
// contains a document type declaration, or if a start tag followed by an end
// tag appears within its first 1000 characters.
//
func LooksLikeXML(text string) bool {
	if hasXMLDecl(text) {
		return true
	}
	limit := len(text)
	n := 0
	for i := range text {
		if n == sniffLen {
			limit = i
			break
		}
		n++
	}
	z := html.NewTokenizer(strings.NewReader(text))
	off, open := 0, false
	for {
		tt := z.Next()
		off += len(z.Raw())
		switch tt {
		case html.ErrorToken:
			return false
		case html.DoctypeToken:
			return true
		case html.StartTagToken:
			if off <= limit {
				open = true
			}
		case html.EndTagToken:
			if open && off <= limit {
				return true
			}
		}
	}
}

// hasXMLDecl reports whether text starts with an <?xml ... ?> declaration,
// ignoring leading white space.
//
func hasXMLDecl(text string) bool {
	const decl = "<?xml"
	text = strings.TrimLeft(text, " \t\r\n\f\v")
	if len(text) < len(decl) || !strings.EqualFold(text[:len(decl)], decl) {
		return false
	}
	rest := text[len(decl):]
	i := strings.IndexByte(rest, '>')
	return i > 0 && rest[i-1] == '?'
}
