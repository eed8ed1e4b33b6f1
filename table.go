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
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"
)

// DefaultMaxDepth is the default bound on nested delegations.
//
const DefaultMaxDepth = 32

// Errors reported by New and Lexer.Err. They are wrapped in a *RuleError.
var (
	ErrNoRoot       = errors.New("no root state")
	ErrUnknownState = errors.New("unknown state")
	ErrIncludeCycle = errors.New("include cycle")
	ErrInvalidRule  = errors.New("invalid rule")
	ErrNoProgress   = errors.New("empty match without state change")
)

// A RuleError describes an error in a state table.
//
type RuleError struct {
	Lexer   string // lexer name
	State   string // state where the rule is defined
	Index   int    // rule index in State, -1 if not applicable
	Pattern string
	Err     error
}

func (e *RuleError) Error() string {
	var b strings.Builder
	if e.Lexer != "" {
		b.WriteString(e.Lexer)
		b.WriteString(": ")
	}
	if e.State != "" {
		fmt.Fprintf(&b, "state %q", e.State)
		if e.Index >= 0 {
			fmt.Fprintf(&b, " rule %d", e.Index)
		}
		if e.Pattern != "" {
			fmt.Fprintf(&b, " %q", e.Pattern)
		}
		b.WriteString(": ")
	}
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// Config holds the configuration of a lexer. Name, Aliases, Filenames and
// MimeTypes are not used by the engine.
//
type Config struct {
	Name      string
	Aliases   []string // short names, e.g. "groovy"
	Filenames []string // file name globs, e.g. "*.groovy"
	MimeTypes []string

	CaseInsensitive    bool // compile patterns with case folding
	DotExcludesNewline bool // '.' does not match '\n' unless a pattern sets (?s)
	MaxDepth           int  // bound on nested delegations, DefaultMaxDepth if <= 0
}

func (c *Config) maxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}

type compiledRule struct {
	re      *regexp2.Regexp
	pattern string
	action  Action
	hasNext bool
	push    []string
	pop     int
	state   string // defining state
	index   int
}

// popsRoot returns true if the transition of r leaves a stack of depth n
// unchanged because it would pop the root state.
//
func (r *compiledRule) popsRoot(n int) bool {
	return r.pop > 0 && len(r.push) == 0 && n == 1
}

// match returns the match of r anchored at pos or nil.
//
func (r *compiledRule) match(text []rune, pos int) *regexp2.Match {
	m, err := r.re.FindRunesMatchStartingAt(text, pos)
	if err != nil || m == nil || m.Index != pos {
		return nil
	}
	return m
}

// A RegexLexer is a compiled state table. It is immutable and can be used
// concurrently by any number of Tokenise calls.
//
type RegexLexer struct {
	config   Config
	states   map[string][]*compiledRule
	analyser func(text string) float32
}

// New compiles a state table. Include rules are flattened in place and
// patterns are compiled once. It fails if the root state is missing, if an
// include, push or combined target does not exist, if includes form a cycle,
// or if a pattern is invalid.
//
func New(config Config, states States) (*RegexLexer, error) {
	l := &RegexLexer{config: config}
	c := compiler{
		l:      l,
		src:    states,
		done:   make(map[string][]*compiledRule),
		cache:  make(map[string]*regexp2.Regexp),
		opts:   regexp2.Multiline,
		combos: make(map[string][]string),
	}
	if !config.DotExcludesNewline {
		c.opts |= regexp2.Singleline
	}
	if config.CaseInsensitive {
		c.opts |= regexp2.IgnoreCase
	}
	if _, ok := states[Root]; !ok {
		return nil, c.errorf("", -1, "", ErrNoRoot)
	}
	names := make([]string, 0, len(states))
	for name := range states {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := c.expand(name, nil); err != nil {
			return nil, err
		}
	}
	if err := c.combine(); err != nil {
		return nil, err
	}
	l.states = c.done
	return l, nil
}

// MustNew is like New but panics on error. It simplifies the initialization of
// global lexers.
//
func MustNew(config Config, states States) *RegexLexer {
	l, err := New(config, states)
	if err != nil {
		panic(err)
	}
	return l
}

// SetAnalyser sets the function used by AnalyseText and returns l. It must be
// called before l is used.
//
func (l *RegexLexer) SetAnalyser(f func(text string) float32) *RegexLexer {
	l.analyser = f
	return l
}

// Config returns the lexer configuration.
//
func (l *RegexLexer) Config() *Config {
	return &l.config
}

// AnalyseText returns a score in [0, 1] telling how likely text is to be
// written in the lexer's language.
//
func (l *RegexLexer) AnalyseText(text string) float32 {
	if l.analyser == nil {
		return 0
	}
	return Clamp(l.analyser(text))
}

// Clamp clamps a score to [0, 1].
//
func Clamp(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

type compiler struct {
	l      *RegexLexer
	src    States
	done   map[string][]*compiledRule
	cache  map[string]*regexp2.Regexp
	opts   regexp2.RegexOptions
	combos map[string][]string // synthesized state name -> combined states
}

func (c *compiler) errorf(state string, index int, pattern string, err error) error {
	return &RuleError{Lexer: c.l.config.Name, State: state, Index: index, Pattern: pattern, Err: err}
}

// expand returns the flattened rules of the named state. path holds the
// states whose includes are being expanded.
//
func (c *compiler) expand(name string, path []string) ([]*compiledRule, error) {
	if rules, ok := c.done[name]; ok {
		return rules, nil
	}
	for i, p := range path {
		if p == name {
			cycle := append(path[i:len(path):len(path)], name)
			return nil, c.errorf(path[len(path)-1], -1, "",
				fmt.Errorf("%w: %s", ErrIncludeCycle, strings.Join(cycle, " -> ")))
		}
	}
	src, ok := c.src[name]
	if !ok {
		state := ""
		if len(path) > 0 {
			state = path[len(path)-1]
		}
		return nil, c.errorf(state, -1, "", fmt.Errorf("%w %q", ErrUnknownState, name))
	}
	path = append(path, name)
	rules := make([]*compiledRule, 0, len(src))
	for i := range src {
		r := &src[i]
		if r.Action.Kind == ActInclude {
			if r.Pattern != "" || r.Next != nil {
				return nil, c.errorf(name, i, r.Pattern, fmt.Errorf("%w: include with a pattern or transition", ErrInvalidRule))
			}
			sub, err := c.expand(r.Action.State, path)
			if err != nil {
				return nil, err
			}
			rules = append(rules, sub...)
			continue
		}
		cr, err := c.compile(name, i, r)
		if err != nil {
			return nil, err
		}
		rules = append(rules, cr)
	}
	c.done[name] = rules
	return rules, nil
}

func (c *compiler) compile(state string, index int, r *Rule) (*compiledRule, error) {
	if r.Pattern == "" && r.Next == nil {
		return nil, c.errorf(state, index, "", ErrNoProgress)
	}
	action, err := c.resolve(r.Action, true)
	if err != nil {
		return nil, c.errorf(state, index, r.Pattern, err)
	}
	re, ok := c.cache[r.Pattern]
	if !ok {
		re, err = regexp2.Compile(`\G(?:`+r.Pattern+`)`, c.opts)
		if err != nil {
			return nil, c.errorf(state, index, r.Pattern, fmt.Errorf("%w: %v", ErrInvalidRule, err))
		}
		c.cache[r.Pattern] = re
	}
	if action.Kind == ActGroups && len(action.Groups) > len(re.GetGroupNumbers())-1 {
		return nil, c.errorf(state, index, r.Pattern, fmt.Errorf("%w: %d group actions for %d groups",
			ErrInvalidRule, len(action.Groups), len(re.GetGroupNumbers())-1))
	}
	cr := &compiledRule{re: re, pattern: r.Pattern, action: action, state: state, index: index}
	if t := r.Next; t != nil {
		cr.hasNext = true
		switch t.Op {
		case OpPush:
			for _, s := range t.States {
				if _, ok := c.src[s]; !ok {
					return nil, c.errorf(state, index, r.Pattern, fmt.Errorf("%w %q", ErrUnknownState, s))
				}
			}
			cr.push = t.States
		case OpCombined:
			if len(t.States) == 0 {
				return nil, c.errorf(state, index, r.Pattern, fmt.Errorf("%w: empty combined state", ErrInvalidRule))
			}
			name := "#" + strings.Join(t.States, "+")
			c.combos[name] = t.States
			cr.push = []string{name}
		case OpPop:
			if t.Count < 1 {
				return nil, c.errorf(state, index, r.Pattern, fmt.Errorf("%w: pop count %d", ErrInvalidRule, t.Count))
			}
			cr.pop = t.Count
		default:
			return nil, c.errorf(state, index, r.Pattern, fmt.Errorf("%w: transition op %d", ErrInvalidRule, t.Op))
		}
	}
	return cr, nil
}

// resolve checks an action and binds self-delegations to the lexer being
// compiled.
//
func (c *compiler) resolve(a Action, top bool) (Action, error) {
	switch a.Kind {
	case ActEmit:
	case ActDelegate:
		if a.Lexer == nil {
			a.Lexer = c.l
		}
	case ActGroups:
		if !top {
			return a, fmt.Errorf("%w: nested ByGroups", ErrInvalidRule)
		}
		groups := make([]Action, len(a.Groups))
		for i, g := range a.Groups {
			var err error
			if groups[i], err = c.resolve(g, false); err != nil {
				return a, err
			}
		}
		a.Groups = groups
	case ActInclude:
		return a, fmt.Errorf("%w: include used as a group action", ErrInvalidRule)
	default:
		return a, fmt.Errorf("%w: action kind %d", ErrInvalidRule, a.Kind)
	}
	return a, nil
}

// combine synthesizes the states pushed by Combined transitions.
//
func (c *compiler) combine() error {
	for name, states := range c.combos {
		if _, ok := c.done[name]; ok {
			continue
		}
		var rules []*compiledRule
		for _, s := range states {
			sub, ok := c.done[s]
			if !ok {
				return c.errorf(name, -1, "", fmt.Errorf("%w %q", ErrUnknownState, s))
			}
			rules = append(rules, sub...)
		}
		c.done[name] = rules
	}
	return nil
}
