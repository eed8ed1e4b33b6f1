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

// Package gsp implements a lexer for Groovy Server Pages: XML documents with
// embedded Groovy code blocks, expressions and custom tags.
//
package gsp

import (
	"errors"
	"strings"

	"github.com/db47h/rulex"
	"github.com/db47h/rulex/lang/groovy"
	"github.com/db47h/rulex/lang/xml"
	"github.com/db47h/rulex/state"
)

// Tags is the catalog of custom g: tags recognized by Lexer.
//
var Tags = []string{
	"actionSubmit", "applyLayout", "checkBox", "collect", "cookie", "country",
	"countrySelect", "createLink", "createLinkTo", "currencySelect",
	"datePicker", "each", "eachError", "else", "elseif", "fieldValue", "findAll",
	"form", "formRemote", "formatBoolean", "formatDate", "formatNumber", "grep",
	"hasErrors", "header", "hiddenField", "if", "include", "javascript", "layoutBody",
	"layoutHead", "layoutTitle", "link", "localeSelect", "message", "meta",
	"pageProperty", "paginate", "passwordField", "radio", "radioGroup",
	"remoteField", "remoteFunction", "remoteLink", "render", "renderErrors",
	"resource", "select", "set", "sortableColumn", "submitButton", "submitToRemote",
}

// New returns a lexer splitting a page into regions. Code blocks (<% ... %>,
// with an optional one character suffix on the opening delimiter), ${ ... }
// expressions and custom tags named in tags are emitted as Keyword tokens, the
// code they enclose being delegated to base. Everything else is emitted as
// Other.
//
func New(base *rulex.RegexLexer, tags []string) (*rulex.RegexLexer, error) {
	if base == nil {
		return nil, errors.New("gsp: nil base lexer")
	}
	root := []rulex.Rule{
		{`<%\S?`, rulex.Emit(rulex.Keyword), rulex.Push("code")},
		{`\$\{`, rulex.Emit(rulex.Keyword), rulex.Push("expr")},
	}
	if len(tags) > 0 {
		// custom tags are opaque, attributes included.
		root = append(root, rulex.Rule{
			Pattern: state.Words(`</?g:`, `.*?>`, tags...),
			Action:  rulex.Emit(rulex.Keyword),
		})
	}
	root = append(root,
		rulex.Rule{Pattern: `([^<$]|\$[^{])+`, Action: rulex.Emit(rulex.Other)},
		rulex.Rule{Pattern: `<`, Action: rulex.Emit(rulex.Other)},
		rulex.Rule{Pattern: `\$`, Action: rulex.Emit(rulex.Other)},
	)
	name := "Groovy Server Page regions"
	if n := base.Config().Name; n != "" {
		name = n + " regions"
	}
	return rulex.New(rulex.Config{
		Name:               name,
		DotExcludesNewline: true,
	}, rulex.States{
		"root": root,
		"code": state.Embedded("%>", rulex.Keyword, base),
		"expr": state.Embedded("}", rulex.Keyword, base),
	})
}

// Lexer is the Groovy Server Pages lexer.
//
var Lexer = rulex.NewComposite(rulex.Config{
	Name:      "Groovy Server Page",
	Aliases:   []string{"gsp"},
	Filenames: []string{"*.gsp"},
	MimeTypes: []string{"application/x-gsp"},
}, xml.Lexer, mustNew(groovy.Lexer, Tags)).SetAnalyser(analyse)

func mustNew(base *rulex.RegexLexer, tags []string) *rulex.RegexLexer {
	l, err := New(base, tags)
	if err != nil {
		panic(err)
	}
	return l
}

func analyse(text string) float32 {
	rv := groovy.Lexer.AnalyseText(text) - 0.01
	if xml.LooksLikeXML(text) {
		rv += 0.4
	}
	if strings.Contains(text, "<%") && strings.Contains(text, "%>") {
		rv += 0.1
	}
	if strings.Contains(text, "${") && strings.Contains(text, "}") {
		rv += 0.1
	}
	return rv
}
