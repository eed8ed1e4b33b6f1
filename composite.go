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

import "unicode/utf8"

// A Composite lexes documents mixing a markup language with embedded regions
// of another language. Both the markup lexer and the region lexer tokenise the
// whole input. Tokens of the region lexer win everywhere except on Other
// tokens, where the markup tokens overlapping the Other span are used, clipped
// to that span.
//
type Composite struct {
	config   Config
	markup   Definition
	regions  Definition
	analyser func(text string) float32
}

// NewComposite returns a new Composite lexer. The regions lexer must emit
// Other tokens for text that is not part of an embedded region.
//
func NewComposite(config Config, markup, regions Definition) *Composite {
	return &Composite{config: config, markup: markup, regions: regions}
}

// SetAnalyser sets the function used by AnalyseText and returns c.
//
func (c *Composite) SetAnalyser(f func(text string) float32) *Composite {
	c.analyser = f
	return c
}

// Config returns the lexer configuration.
//
func (c *Composite) Config() *Config {
	return &c.config
}

// AnalyseText returns a score in [0, 1] telling how likely text is to be
// written in the lexer's language.
//
func (c *Composite) AnalyseText(text string) float32 {
	if c.analyser == nil {
		return 0
	}
	return Clamp(c.analyser(text))
}

// Tokenise returns an Iterator over the merged token streams.
//
func (c *Composite) Tokenise(text string) Iterator {
	return &merger{
		regions: c.regions.Tokenise(text),
		markup:  c.markup.Tokenise(text),
		queue:   queue{items: make([]Token, 4)},
	}
}

type merger struct {
	queue
	regions  Iterator
	markup   Iterator
	rest     []rune // unused part of the current markup token
	restType Type
	eof      bool // markup stream exhausted
}

func (m *merger) Lex() Token {
	for m.count == 0 {
		t := m.regions.Lex()
		if t.Type == EOF {
			return t
		}
		if t.Type != Other {
			m.skip(utf8.RuneCountInString(t.Value))
			return t
		}
		m.take(t)
	}
	return m.pop()
}

func (m *merger) Err() error {
	if err := m.regions.Err(); err != nil {
		return err
	}
	return m.markup.Err()
}

// fill loads the next markup token if the current one is used up.
//
func (m *merger) fill() bool {
	for len(m.rest) == 0 {
		if m.eof {
			return false
		}
		t := m.markup.Lex()
		if t.Type == EOF {
			m.eof = true
			return false
		}
		m.rest, m.restType = []rune(t.Value), t.Type
	}
	return true
}

// skip discards n runes of markup.
//
func (m *merger) skip(n int) {
	for n > 0 && m.fill() {
		k := min(n, len(m.rest))
		m.rest = m.rest[k:]
		n -= k
	}
}

// take queues the markup tokens covering the span of the Other token t.
//
func (m *merger) take(t Token) {
	span := []rune(t.Value)
	for len(span) > 0 {
		if !m.fill() {
			// markup stream ended early: keep the rest of the span as is.
			m.push(Token{Type: Other, Pos: t.Pos, Value: string(span)})
			return
		}
		k := min(len(span), len(m.rest))
		m.push(Token{Type: m.restType, Pos: t.Pos, Value: string(span[:k])})
		m.rest = m.rest[k:]
		span = span[k:]
		t.Pos += Pos(k)
	}
}
