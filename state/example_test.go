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

	"github.com/db47h/rulex"
	"github.com/db47h/rulex/state"
)

// A toy language with keywords, identifiers and double quoted strings with
// escape sequences and ${...} interpolation.
//
var toy = rulex.MustNew(rulex.Config{Name: "toy"}, rulex.States{
	"root": {
		{state.Words(``, `\b`, "let", "print"), rulex.Emit(rulex.Keyword), nil},
		{`[a-zA-Z_]\w*`, rulex.Emit(rulex.Name), nil},
		{`=`, rulex.Emit(rulex.Operator), nil},
		{`"`, rulex.Emit(rulex.String), rulex.Combined("interp", "dqs")},
		{`\s+`, rulex.Emit(rulex.Text), nil},
	},
	"interp": {
		{`\$\{`, rulex.Emit(rulex.Interpol), rulex.Push("expr")},
	},
	"expr": {
		{`\}`, rulex.Emit(rulex.Interpol), rulex.Pop(1)},
		rulex.Include("root"),
	},
	"escape": {state.Escape(`nt"\$`, rulex.Escape)},
	"dqs":    state.Quoted(`"`, rulex.String, []string{"escape"}, `[^\n]`, rulex.String),
})

func Example() {
	it := rulex.Coalesce(toy.Tokenise(`let s = "a\t${b}"`))
	for t := it.Lex(); t.Type != rulex.EOF; t = it.Lex() {
		fmt.Printf("%-24v %q\n", t.Type, t.Value)
	}

	// Output:
	// Keyword                  "let"
	// Text                     " "
	// Name                     "s"
	// Text                     " "
	// Operator                 "="
	// Text                     " "
	// Literal.String           "\"a"
	// Literal.String.Escape    "\\t"
	// Literal.String.Interpol  "${"
	// Name                     "b"
	// Literal.String.Interpol  "}"
	// Literal.String           "\""
}
