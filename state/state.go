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

// Package state provides reusable rule sets for quoted strings, escape
// sequences, keyword lists and embedded language regions.
//
// Functions in this package return plain rulex.Rule values or patterns; they
// are meant to be used while building a rulex.States table:
//
//	states := rulex.States{
//		"root": {
//			{`"`, rulex.Emit(rulex.String), rulex.Push("dqs")},
//		},
//		"escape": {state.Escape(`nt"\`, rulex.Escape)},
//		"dqs":    state.Quoted(`"`, rulex.String, []string{"escape"}, `[^\n]`, rulex.String),
//	}
//
package state

import (
	"strings"

	"github.com/db47h/rulex"
	"github.com/dlclark/regexp2"
)

// Words returns a pattern matching any of words, with the given prefix and
// suffix patterns. Words are matched literally and tried in order.
//
func Words(prefix, suffix string, words ...string) string {
	q := make([]string, len(words))
	for i, w := range words {
		q[i] = regexp2.Escape(w)
	}
	return prefix + "(" + strings.Join(q, "|") + ")" + suffix
}

// Escape returns a rule matching a backslash escape sequence and emitting it
// as a single token of type t. Recognized sequences are a backslash followed
// by any of the runes in chars, by one to three octal digits (up to \377), or
// by 'u' and four hexadecimal digits.
//
func Escape(chars string, t rulex.Type) rulex.Rule {
	var b strings.Builder
	for _, r := range chars {
		switch r {
		case '\\', ']', '[', '^', '-':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return rulex.Rule{
		Pattern: `\\([` + b.String() + `]|[0-3]?[0-7]{1,2}|u[0-9A-Fa-f]{4})`,
		Action:  rulex.Emit(t),
	}
}

// Quoted returns the rules of a state lexing the inside of a string literal.
// The closing delimiter is tried first, emitted as closeType, and pops the
// state. The rules of the included states are tried next, then body, a pattern
// matching one unit of string content, emitted as bodyType.
//
func Quoted(delim string, closeType rulex.Type, include []string, body string, bodyType rulex.Type) []rulex.Rule {
	rules := make([]rulex.Rule, 0, len(include)+2)
	rules = append(rules, rulex.Rule{Pattern: regexp2.Escape(delim), Action: rulex.Emit(closeType), Next: rulex.Pop(1)})
	for _, s := range include {
		rules = append(rules, rulex.Include(s))
	}
	return append(rules, rulex.Rule{Pattern: body, Action: rulex.Emit(bodyType)})
}

// Embedded returns the rules of a state for a region of text written in the
// language of l and terminated by close. The text up to, but not including,
// close or the end of input is delegated to l. The close delimiter is emitted
// as delimType and pops the state.
//
func Embedded(close string, delimType rulex.Type, l *rulex.RegexLexer) []rulex.Rule {
	c := regexp2.Escape(close)
	return []rulex.Rule{
		{Pattern: c, Action: rulex.Emit(delimType), Next: rulex.Pop(1)},
		{Pattern: `[\w\W]+?(?=` + c + `|\z)`, Action: rulex.Using(l)},
	}
}
