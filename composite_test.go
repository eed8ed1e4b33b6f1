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

package rulex_test

import (
	"testing"

	"github.com/db47h/rulex"
	"github.com/google/go-cmp/cmp"
)

var (
	markup = rulex.MustNew(rulex.Config{Name: "markup"}, rulex.States{
		"root": {
			{`<[^>]*>`, rulex.Emit(rulex.NameTag), nil},
			{`[^<]+`, rulex.Emit(rulex.Text), nil},
		},
	})
	regions = rulex.MustNew(rulex.Config{Name: "regions"}, rulex.States{
		"root": {
			{`\{\{`, rulex.Emit(rulex.Keyword), rulex.Push("code")},
			{`[^{]+|\{`, rulex.Emit(rulex.Other), nil},
		},
		"code": {
			{`\}\}`, rulex.Emit(rulex.Keyword), rulex.Pop(1)},
			{`[^}]+|\}`, rulex.Emit(rulex.Name), nil},
		},
	})
)

func TestComposite(t *testing.T) {
	c := rulex.NewComposite(rulex.Config{Name: "template"}, markup, regions)
	td := []struct {
		name string
		in   string
		want res
	}{
		{"split", "<b>x{{y}}z</b>", res{`Name.Tag "<b>"`, `Text "x"`, `Keyword "{{"`, `Name "y"`, `Keyword "}}"`,
			`Text "z"`, `Name.Tag "</b>"`}},
		{"in_tag", `<a href="{{u}}">`, res{`Name.Tag "<a href=\""`, `Keyword "{{"`, `Name "u"`, `Keyword "}}"`, `Name.Tag "\">"`}},
		{"markup_only", "<i>é</i>", res{`Name.Tag "<i>"`, `Text "é"`, `Name.Tag "</i>"`}},
		{"unclosed", "a{{b", res{`Text "a"`, `Keyword "{{"`, `Name "b"`}},
		{"empty", "", res{}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			if diff := cmp.Diff(d.want, lexAll(t, c, d.in)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// sliceDef is a Definition returning a fixed token stream.
//
type sliceDef []rulex.Token

func (d sliceDef) Config() *rulex.Config { return &rulex.Config{Name: "slice"} }
func (d sliceDef) AnalyseText(text string) float32 { return 0 }
func (d sliceDef) Tokenise(text string) rulex.Iterator {
	return &sliceIter{ts: d}
}

type sliceIter struct {
	ts  []rulex.Token
	pos rulex.Pos
}

func (it *sliceIter) Lex() rulex.Token {
	if len(it.ts) == 0 {
		return rulex.Token{Type: rulex.EOF, Pos: it.pos}
	}
	t := it.ts[0]
	it.ts = it.ts[1:]
	it.pos = t.Pos + rulex.Pos(len([]rune(t.Value)))
	return t
}

func (it *sliceIter) Err() error { return nil }

func TestComposite_ShortMarkup(t *testing.T) {
	short := sliceDef{{Type: rulex.Text, Pos: 0, Value: "ab"}}
	c := rulex.NewComposite(rulex.Config{Name: "short"}, short, regions)
	want := res{`Text "ab"`, `Other "cd"`, `Keyword "{{"`, `Name "x"`, `Keyword "}}"`, `Other "e"`}
	if diff := cmp.Diff(want, lexAll(t, c, "abcd{{x}}e")); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestComposite_Analyse(t *testing.T) {
	c := rulex.NewComposite(rulex.Config{Name: "template"}, markup, regions)
	if s := c.AnalyseText("x"); s != 0 {
		t.Errorf("expected 0, got %v", s)
	}
	c.SetAnalyser(func(string) float32 { return 1.3 })
	if s := c.AnalyseText("x"); s != 1 {
		t.Errorf("expected 1, got %v", s)
	}
	if c.Config().Name != "template" {
		t.Errorf("unexpected config %+v", c.Config())
	}
}
