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

import (
	"github.com/dlclark/regexp2"
)

// maxEmptyMatches is the maximum number of consecutive empty matches allowed
// in a frame before the lexer gives up with ErrNoProgress.
//
const maxEmptyMatches = 64

// An Iterator is a lazy, single-pass token stream. Lex returns the next token
// until the end of input is reached, then returns an EOF token forever.
// Err returns the fatal error that ended the stream early, if any.
//
type Iterator interface {
	Lex() Token
	Err() error
}

// A Definition is a configured lexer.
//
type Definition interface {
	Config() *Config
	Tokenise(text string) Iterator
	AnalyseText(text string) float32
}

// queue is a FIFO queue.
//
type queue struct {
	items []Token
	head  int
	tail  int
	count int
}

func (q *queue) push(t Token) {
	if q.head == q.tail && q.count > 0 {
		items := make([]Token, len(q.items)*2)
		copy(items, q.items[q.head:])
		copy(items[len(q.items)-q.head:], q.items[:q.head])
		q.head = 0
		q.tail = len(q.items)
		q.items = items
	}
	q.items[q.tail] = t
	q.tail = (q.tail + 1) % len(q.items)
	q.count++
}

// pop pops the first item from the queue. Callers must check that q.count > 0 beforehand.
//
func (q *queue) pop() Token {
	i := q.head
	q.head = (q.head + 1) % len(q.items)
	q.count--
	t := q.items[i]
	q.items[i] = Token{}
	return t
}

// step is an emission or delegation pending in a frame.
//
type step struct {
	typ        Type
	lexer      *RegexLexer // delegate to lexer if not nil
	start, end int
}

// A frame is a scan over a text slice. The first frame covers the whole
// input, the others are delegations.
//
type frame struct {
	lexer   *RegexLexer
	text    []rune
	base    Pos // offset of text[0] in the input
	pos     int
	stack   []string
	pending []step
	empty   int // consecutive empty matches
}

func newFrame(l *RegexLexer, text []rune, base Pos) *frame {
	return &frame{
		lexer: l,
		text:  text,
		base:  base,
		stack: []string{Root},
	}
}

func (f *frame) state() string {
	return f.stack[len(f.stack)-1]
}

// A Lexer holds the state of a RegexLexer while tokenising a given text.
// Nested delegations are handled with an explicit stack of frames.
//
type Lexer struct {
	queue
	frames   []*frame
	maxDepth int
	end      Pos
	err      error
}

// Tokenise returns an Iterator over the tokens of text. Each call returns an
// independent iterator. text should be valid UTF-8: invalid bytes are lexed as
// U+FFFD.
//
func (l *RegexLexer) Tokenise(text string) Iterator {
	return l.tokenise([]rune(text))
}

func (l *RegexLexer) tokenise(text []rune) *Lexer {
	return &Lexer{
		// initial q size must be an exponent of 2
		queue:    queue{items: make([]Token, 4)},
		frames:   []*frame{newFrame(l, text, 0)},
		maxDepth: l.config.maxDepth(),
		end:      Pos(len(text)),
	}
}

// Lex returns the next token. Once the end of input has been reached or a
// fatal error occurred, it returns an EOF token positioned at the end of input.
//
func (l *Lexer) Lex() Token {
	for l.count == 0 {
		if !l.step() {
			return Token{Type: EOF, Pos: l.end}
		}
	}
	return l.pop()
}

// Err returns the error that stopped the lexer, or nil.
//
func (l *Lexer) Err() error {
	return l.err
}

// State returns the state stack of the innermost active frame. It is meant
// for debugging and tests; the returned slice must not be modified.
//
func (l *Lexer) State() []string {
	if len(l.frames) == 0 {
		return nil
	}
	return l.frames[len(l.frames)-1].stack
}

// step runs one iteration of the innermost frame. It returns false once all
// frames are exhausted or on error.
//
func (l *Lexer) step() bool {
	n := len(l.frames)
	if n == 0 || l.err != nil {
		return false
	}
	f := l.frames[n-1]
	if len(f.pending) > 0 {
		l.flush(f)
		return true
	}
	if f.pos >= len(f.text) {
		if n == 1 {
			// keep the root frame for State
			return false
		}
		l.frames[n-1] = nil
		l.frames = l.frames[:n-1]
		return true
	}
	for _, r := range f.lexer.states[f.state()] {
		m := r.match(f.text, f.pos)
		if m == nil {
			continue
		}
		if m.Length == 0 {
			f.empty++
			if !r.hasNext || r.popsRoot(len(f.stack)) || f.empty > maxEmptyMatches {
				l.err = &RuleError{
					Lexer:   f.lexer.config.Name,
					State:   r.state,
					Index:   r.index,
					Pattern: r.pattern,
					Err:     ErrNoProgress,
				}
				return false
			}
		} else {
			f.empty = 0
		}
		l.apply(f, r, m)
		return true
	}
	// no match: error out the current rune and keep going
	f.empty = 0
	l.emit(f, Error, f.pos, f.pos+1)
	f.pos++
	return true
}

// apply queues the steps of a rule's action, advances the cursor and applies
// the rule's transition.
//
func (l *Lexer) apply(f *frame, r *compiledRule, m *regexp2.Match) {
	start, end := m.Index, m.Index+m.Length
	switch a := &r.action; a.Kind {
	case ActEmit:
		f.pending = append(f.pending, step{typ: a.Type, start: start, end: end})
	case ActDelegate:
		f.pending = append(f.pending, step{lexer: a.Lexer, start: start, end: end})
	case ActGroups:
		groups := m.Groups()
		at := start
		for i := range a.Groups {
			if i+1 >= len(groups) {
				break
			}
			g := &groups[i+1]
			if len(g.Captures) == 0 {
				continue
			}
			s, e := g.Index, g.Index+g.Length
			if s < at {
				s = at // overlaps the previous group
			}
			if e <= s {
				continue
			}
			if s > at {
				f.pending = append(f.pending, step{typ: Error, start: at, end: s})
			}
			f.pending = append(f.pending, step{typ: a.Groups[i].Type, lexer: a.Groups[i].Lexer, start: s, end: e})
			at = e
		}
		if at < end {
			f.pending = append(f.pending, step{typ: Error, start: at, end: end})
		}
	}
	f.pos = end
	if r.hasNext {
		if r.pop > 0 {
			n := len(f.stack) - r.pop
			if n < 1 {
				n = 1
			}
			f.stack = f.stack[:n]
		}
		f.stack = append(f.stack, r.push...)
	}
	l.flush(f)
}

// flush runs the pending steps of f until a delegation pushes a new frame.
//
func (l *Lexer) flush(f *frame) {
	for len(f.pending) > 0 {
		s := f.pending[0]
		f.pending = f.pending[1:]
		if s.lexer == nil {
			l.emit(f, s.typ, s.start, s.end)
			continue
		}
		if len(l.frames) >= l.maxDepth {
			l.emit(f, Error, s.start, s.end)
			continue
		}
		l.frames = append(l.frames, newFrame(s.lexer, f.text[s.start:s.end], f.base+Pos(s.start)))
		return
	}
}

// emit queues a token for f.text[start:end]. Empty spans are ignored.
//
func (l *Lexer) emit(f *frame, t Type, start, end int) {
	if end <= start {
		return
	}
	l.push(Token{
		Type:  t,
		Pos:   f.base + Pos(start),
		Value: string(f.text[start:end]),
	})
}
