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

package state_test

import (
	"fmt"
	"testing"
	"unicode/utf8"

	"github.com/db47h/rulex"
	"github.com/db47h/rulex/state"
)

func itemString(f *rulex.File, t rulex.Token) string {
	p := f.Position(t.Pos)
	return fmt.Sprintf("%d:%d %v %q", p.Line, p.Column, t.Type, t.Value)
}

type res []string

type testData struct {
	name string
	in   string
	res  res
}

func runTests(t *testing.T, td []testData, l *rulex.RegexLexer) {
	t.Helper()
	for _, sample := range td {
		t.Run(sample.name, func(t *testing.T) {
			f := rulex.NewFile(sample.name, sample.in)
			it := l.Tokenise(sample.in)
			for i := range sample.res {
				got := itemString(f, it.Lex())
				if got != sample.res[i] {
					t.Errorf("\nGot     : %v\nExpected: %v", got, sample.res[i])
				}
			}
			tok := it.Lex()
			if tok.Type != rulex.EOF || int(tok.Pos) != utf8.RuneCountInString(sample.in) {
				pos := f.Position(rulex.Pos(utf8.RuneCountInString(sample.in)))
				t.Errorf("Got: %s (Pos: %d), Expected: %d:%d EOF. ", itemString(f, tok), tok.Pos, pos.Line, pos.Column)
			}
			if err := it.Err(); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

var quoted = rulex.MustNew(rulex.Config{Name: "quoted"}, rulex.States{
	"root": {
		{`"`, rulex.Emit(rulex.String), rulex.Push("dqs")},
		{`'''`, rulex.Emit(rulex.String), rulex.Push("tsqs")},
		{`\s+`, rulex.Emit(rulex.Text), nil},
	},
	"escape": {state.Escape(`nt"'\`, rulex.Escape)},
	"dqs":    state.Quoted(`"`, rulex.String, []string{"escape"}, `[^\n]`, rulex.String),
	"tsqs":   state.Quoted(`'''`, rulex.String, []string{"escape"}, `.`, rulex.String),
})

func Test_Quoted(t *testing.T) {
	var td = []testData{
		{"str1", `"a\n"`, res{`1:1 Literal.String "\""`, `1:2 Literal.String "a"`, `1:3 Literal.String.Escape "\\n"`,
			`1:5 Literal.String "\""`}},
		{"str2", `"\101\9"`, res{`1:1 Literal.String "\""`, `1:2 Literal.String.Escape "\\101"`, `1:6 Literal.String "\\"`,
			`1:7 Literal.String "9"`, `1:8 Literal.String "\""`}},
		{"str3", `"\u00e9x\"" `, res{`1:1 Literal.String "\""`, `1:2 Literal.String.Escape "\\u00e9"`, `1:8 Literal.String "x"`,
			`1:9 Literal.String.Escape "\\\""`, `1:11 Literal.String "\""`, `1:12 Text " "`}},
		{"str4", "\"a\nb", res{`1:1 Literal.String "\""`, `1:2 Literal.String "a"`, `1:3 Error "\n"`, `2:1 Literal.String "b"`}},
		{"str5", "'''a\n'b'''", res{`1:1 Literal.String "'''"`, `1:4 Literal.String "a"`, `1:5 Literal.String "\n"`,
			`2:1 Literal.String "'"`, `2:2 Literal.String "b"`, `2:3 Literal.String "'''"`}},
	}
	runTests(t, td, quoted)
}

func Test_Words(t *testing.T) {
	if p, want := state.Words(``, `\b`, "if", "a.b", "c+"), `(if|a\.b|c\+)\b`; p != want {
		t.Errorf("got %s, expected %s", p, want)
	}
	l := rulex.MustNew(rulex.Config{Name: "words"}, rulex.States{
		"root": {
			{state.Words(``, `\b`, "in", "int"), rulex.Emit(rulex.Keyword), nil},
			{state.Words(`@`, ``, "a.b"), rulex.Emit(rulex.NameDecorator), nil},
			{`\w+`, rulex.Emit(rulex.Name), nil},
			{`\s+`, rulex.Emit(rulex.Text), nil},
		},
	})
	var td = []testData{
		{"words", "int in inside @a.b @axb", res{`1:1 Keyword "int"`, `1:4 Text " "`, `1:5 Keyword "in"`, `1:7 Text " "`,
			`1:8 Name "inside"`, `1:14 Text " "`, `1:15 Name.Decorator "@a.b"`, `1:19 Text " "`, `1:20 Error "@"`, `1:21 Name "axb"`}},
	}
	runTests(t, td, l)
}

func Test_Embedded(t *testing.T) {
	inner := rulex.MustNew(rulex.Config{Name: "inner"}, rulex.States{
		"root": {
			{`\w+`, rulex.Emit(rulex.Name), nil},
			{`\s+`, rulex.Emit(rulex.Text), nil},
		},
	})
	l := rulex.MustNew(rulex.Config{Name: "outer"}, rulex.States{
		"root": {
			{`<%`, rulex.Emit(rulex.Keyword), rulex.Push("code")},
			{`[^<]+|<`, rulex.Emit(rulex.Other), nil},
		},
		"code": state.Embedded("%>", rulex.Keyword, inner),
	})
	var td = []testData{
		{"region", "a<% b c %>d", res{`1:1 Other "a"`, `1:2 Keyword "<%"`, `1:4 Text " "`, `1:5 Name "b"`, `1:6 Text " "`,
			`1:7 Name "c"`, `1:8 Text " "`, `1:9 Keyword "%>"`, `1:11 Other "d"`}},
		{"empty", "<%%>", res{`1:1 Keyword "<%"`, `1:3 Keyword "%>"`}},
		{"unclosed", "<% e\n", res{`1:1 Keyword "<%"`, `1:3 Text " "`, `1:4 Name "e"`, `1:5 Text "\n"`}},
		{"percent", "<%a%b%>", res{`1:1 Keyword "<%"`, `1:3 Name "a"`, `1:4 Error "%"`, `1:5 Name "b"`, `1:6 Keyword "%>"`}},
	}
	runTests(t, td, l)
}
