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

// Package groovy implements a lexer for the Groovy programming language.
//
package groovy

import (
	"strings"

	"github.com/db47h/rulex"
	"github.com/db47h/rulex/state"
)

// afterTilde is a lookbehind matching a '~' operator followed by up to two
// whitespace characters. It selects the regex flavour of string literals.
const afterTilde = `((?<=~)|(?<=~\s)|(?<=~\s\s))`

const (
	line      = `\\\n|[^\n]` // one character of a single-line string
	multiLine = `.`          // one character of a triple-quoted string
)

// Lexer is the Groovy lexer.
//
var Lexer = rulex.MustNew(rulex.Config{
	Name:      "Groovy",
	Aliases:   []string{"groovy"},
	Filenames: []string{"*.groovy", "*.gradle"},
	MimeTypes: []string{"text/x-groovy"},
}, rulex.States{
	"root": {
		// method signature: return type and modifiers, method name, opening parenthesis
		{`^(\s*(?:[a-zA-Z_][a-zA-Z0-9_\.\[\]]*\s+)+?)([a-zA-Z_][a-zA-Z0-9_]*)(\s*)(\()`,
			rulex.ByGroups(rulex.UsingThis(), rulex.Emit(rulex.NameFunction), rulex.Emit(rulex.Text), rulex.Emit(rulex.Operator)), nil},
		{`[^\S\n]+`, rulex.Emit(rulex.Text), nil},
		{`//.*?$`, rulex.Emit(rulex.Comment), nil},
		{`/\*.*?\*/`, rulex.Emit(rulex.Comment), nil},
		{`@[a-zA-Z_][a-zA-Z0-9_\.]*`, rulex.Emit(rulex.NameDecorator), nil},
		// 'in' is not included because of its limited scope
		{state.Words(``, `\b`, "assert", "break", "case", "catch", "continue", "default", "else", "finally", "for",
			"if", "instanceof", "new", "return", "switch", "this", "throw", "try", "while"), rulex.Emit(rulex.Keyword), nil},
		{state.Words(``, `\b`, "abstract", "enum", "extends", "final", "implements", "native", "private",
			"protected", "public", "static", "super", "synchronized", "threadsafe", "throws",
			"transient", "volatile"), rulex.Emit(rulex.KeywordDeclaration), nil},
		{state.Words(``, `\b`, "const", "do", "goto", "strictfp"), rulex.Emit(rulex.KeywordReserved), nil},
		{state.Words(``, `\b`, "def", "boolean", "byte", "char", "double", "float", "int", "long", "short", "void"),
			rulex.Emit(rulex.KeywordType), nil},
		{`(package)(\s+)`, rulex.ByGroups(rulex.Emit(rulex.KeywordNamespace), rulex.Emit(rulex.Text)), nil},
		{state.Words(``, `\b`, "true", "false", "null"), rulex.Emit(rulex.KeywordConstant), nil},
		{`(class|interface)(\s+)`, rulex.ByGroups(rulex.Emit(rulex.KeywordDeclaration), rulex.Emit(rulex.Text)), rulex.Push("class")},
		{`(import)(\s+)`, rulex.ByGroups(rulex.Emit(rulex.KeywordNamespace), rulex.Emit(rulex.Text)), rulex.Push("import")},
		// regex literals: strings following a ~ operator
		{afterTilde + `/(\\/|[^/\n])*/`, rulex.Emit(rulex.Regex), nil},
		{afterTilde + `"""`, rulex.Emit(rulex.Regex), rulex.Combined("stringinterpol", "re-tdqs")},
		{afterTilde + `'''`, rulex.Emit(rulex.Regex), rulex.Push("re-tsqs")},
		{afterTilde + `"`, rulex.Emit(rulex.Regex), rulex.Combined("stringinterpol", "re-dqs")},
		{afterTilde + `'`, rulex.Emit(rulex.Regex), rulex.Push("re-sqs")},
		{`/(\\/|[^/\n])*/`, rulex.Emit(rulex.String), nil},
		{`"""`, rulex.Emit(rulex.LiteralStringDouble), rulex.Combined("stringinterpol", "tdqs")},
		{`'''`, rulex.Emit(rulex.LiteralStringSingle), rulex.Push("tsqs")},
		{`"`, rulex.Emit(rulex.LiteralStringDouble), rulex.Combined("stringinterpol", "dqs")},
		{`'`, rulex.Emit(rulex.LiteralStringSingle), rulex.Push("sqs")},
		{`(\.)([a-zA-Z_][a-zA-Z0-9_]*)`, rulex.ByGroups(rulex.Emit(rulex.Operator), rulex.Emit(rulex.NameAttribute)), nil},
		{`[a-zA-Z_][a-zA-Z0-9_]*:`, rulex.Emit(rulex.NameLabel), nil},
		{`[a-zA-Z_\$][a-zA-Z0-9_]*`, rulex.Emit(rulex.Name), nil},
		{`[~\^\*!%&\[\]\(\)\{\}<>\|+=:;,./?-]`, rulex.Emit(rulex.Operator), nil},
		{`[0-9][0-9]*\.[0-9]+([eE][0-9]+)?[fd]?`, rulex.Emit(rulex.LiteralNumberFloat), nil},
		{`0x[0-9a-f]+`, rulex.Emit(rulex.LiteralNumberHex), nil},
		{`[0-9]+[lL]`, rulex.Emit(rulex.LiteralNumberIntegerLong), nil},
		{`[0-9]+`, rulex.Emit(rulex.LiteralNumberInteger), nil},
		{`\\[0-3]?[0-7]{1,2}`, rulex.Emit(rulex.LiteralNumberOct), nil},
		{`\n`, rulex.Emit(rulex.Text), nil},
	},
	"class": {
		{`[a-zA-Z_][a-zA-Z0-9_]*`, rulex.Emit(rulex.NameClass), rulex.Pop(1)},
	},
	"import": {
		{`([a-zA-Z0-9_.]+\*?)(?:(\s+)(as)(\s+)([a-zA-Z0-9_.]+\*?))?`,
			rulex.ByGroups(rulex.Emit(rulex.NameNamespace), rulex.Emit(rulex.Text), rulex.Emit(rulex.KeywordNamespace),
				rulex.Emit(rulex.Text), rulex.Emit(rulex.NameNamespace)), rulex.Pop(1)},
	},
	"stringinterpol": {
		{`\$(\{[^}]*}|[a-zA-Z_][a-zA-Z0-9_]*)`, rulex.Emit(rulex.Interpol), nil},
	},
	"stringescape": {
		state.Escape(`btnfr"'\`, rulex.Escape),
	},
	"dqs":     state.Quoted(`"`, rulex.String, []string{"stringescape"}, line, rulex.String),
	"sqs":     state.Quoted(`'`, rulex.String, []string{"stringescape"}, line, rulex.String),
	"tdqs":    state.Quoted(`"""`, rulex.String, []string{"stringescape"}, multiLine, rulex.String),
	"tsqs":    state.Quoted(`'''`, rulex.String, []string{"stringescape"}, multiLine, rulex.String),
	"re-dqs":  state.Quoted(`"`, rulex.Regex, []string{"stringescape"}, line, rulex.Regex),
	"re-sqs":  state.Quoted(`'`, rulex.Regex, []string{"stringescape"}, line, rulex.Regex),
	"re-tdqs": state.Quoted(`"""`, rulex.Regex, []string{"stringescape"}, multiLine, rulex.Regex),
	"re-tsqs": state.Quoted(`'''`, rulex.Regex, []string{"stringescape"}, multiLine, rulex.Regex),
}).SetAnalyser(analyse)

// analyse recognizes a shebang line invoking groovy.
//
func analyse(text string) float32 {
	if !strings.HasPrefix(text, "#!") {
		return 0
	}
	first := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		first = text[:i]
	}
	if strings.Contains(strings.ToLower(first), "groovy") {
		return 1
	}
	return 0
}
