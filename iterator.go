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

import "strings"

// Tokenise tokenises text with d and returns all tokens, EOF excluded.
//
func Tokenise(d Definition, text string) ([]Token, error) {
	var ts []Token
	it := d.Tokenise(text)
	for t := it.Lex(); t.Type != EOF; t = it.Lex() {
		ts = append(ts, t)
	}
	return ts, it.Err()
}

// Coalesce returns an Iterator that merges adjacent tokens of it having the
// same type.
//
func Coalesce(it Iterator) Iterator {
	return &coalescer{it: it}
}

type coalescer struct {
	it   Iterator
	next *Token
}

func (c *coalescer) Lex() Token {
	var t Token
	if c.next != nil {
		t = *c.next
		c.next = nil
	} else {
		t = c.it.Lex()
	}
	if t.Type == EOF {
		return t
	}
	var b strings.Builder
	b.WriteString(t.Value)
	for {
		n := c.it.Lex()
		if n.Type != t.Type {
			c.next = &n
			t.Value = b.String()
			return t
		}
		b.WriteString(n.Value)
	}
}

func (c *coalescer) Err() error {
	return c.it.Err()
}
