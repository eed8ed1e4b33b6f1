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

/*
Package rulex provides the core of a syntax highlighting lexer driven by tables
of regular expression rules.

Clients of the package only need to provide a rule table for the target
language. The package compiles it once into an immutable RegexLexer which can
then tokenise any number of texts, concurrently if need be.

Rule tables

A table maps state names to ordered lists of rules:

	var l = rulex.MustNew(rulex.Config{Name: "ini"}, rulex.States{
		"root": {
			{`;.*?$`, rulex.Emit(rulex.Comment), nil},
			{`\[`, rulex.Emit(rulex.Keyword), rulex.Push("section")},
			{`(\w+)(\s*)(=)`, rulex.ByGroups(rulex.Emit(rulex.NameAttribute), rulex.Emit(rulex.Text), rulex.Emit(rulex.Operator)), nil},
			{`\s+`, rulex.Emit(rulex.Text), nil},
			{`[^\s;]+`, rulex.Emit(rulex.String), nil},
		},
		"section": {
			{`\]`, rulex.Emit(rulex.Keyword), rulex.Pop(1)},
			{`[^\]\n]+`, rulex.Emit(rulex.NameNamespace), nil},
		},
	})

Each rule is a pattern, an action and an optional transition. At each position,
the rules of the state on top of the state stack are tried in order and the
first one matching at the current position wins, even if a later rule would
match a longer text. The action emits the matched text as one or more tokens,
or delegates it to another lexer; the transition then pushes or pops states.
The stack starts as ["root"] and root is never popped.

Patterns use the syntax of github.com/dlclark/regexp2, lookahead and lookbehind
included. They are anchored at the current position. '^' and '$' match at line
boundaries. '.' matches newlines unless Config.DotExcludesNewline is set.

Include rules splice the rules of another state in place. They are expanded
when the table is compiled, and include cycles are reported by New along with
unknown states and invalid patterns.

Token stream

Tokenise returns an Iterator. Like a parser calling a hand written lexer, the
caller pulls tokens one at a time with Lex. Tokens are queued in a FIFO and
produced lazily. Once the end of input is reached, Lex returns an EOF token
forever.

The input text must be valid UTF-8. Tokens cover it exactly once, in order and
without gaps: concatenating their values yields the input text. Invalid byte
sequences are read as U+FFFD, so for such input the concatenation differs from
the original bytes. Token positions are rune offsets in the input; use File to
convert them to lines and columns.

Error handling

The rulex package provides a single built-in Error token. Input characters that
no rule matches are emitted as one character Error tokens and lexing resumes at
the next character in the same state.

A rule matching the empty string must change the state, otherwise lexing would
not progress. Such rules are rejected by New when their pattern is empty, and
stop the lexer at run time otherwise: Lex then returns EOF and Err returns an
error wrapping ErrNoProgress.

Delegation

Using, UsingThis and ByGroups delegate a matched text to another lexer. The
delegated text is tokenised on its own, from the root state, and the resulting
tokens are spliced in the output with their positions adjusted. Delegations
are run on an explicit stack whose depth is bounded by Config.MaxDepth.

Composite documents, where a markup language embeds regions of code, are
handled by Composite, which merges the streams of a markup lexer and of a
region lexer.

State sub-package

The state sub-package provides rule sets for common constructs like quoted
strings, escape sequences, keyword lists and embedded code regions.

*/
package rulex
