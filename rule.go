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

// ActionKind identifies the variant held by an Action.
//
type ActionKind uint8

// Action kinds.
//
const (
	ActEmit     ActionKind = iota // emit one token for the whole match
	ActGroups                     // one sub-action per capture group
	ActDelegate                   // tokenise the text with another lexer
	ActInclude                    // splice the rules of another state
)

// An Action describes what a Rule does with the text it matched.
//
// Actions are built with Emit, ByGroups, Using, UsingThis and Include.
//
type Action struct {
	Kind   ActionKind
	Type   Type        // ActEmit
	Groups []Action    // ActGroups, one entry per capture group
	Lexer  *RegexLexer // ActDelegate, nil means the lexer owning the rule
	State  string      // ActInclude
}

// Emit returns an action emitting the whole match as a single token of type t.
//
func Emit(t Type) Action {
	return Action{Kind: ActEmit, Type: t}
}

// ByGroups returns an action emitting one token per capture group of the
// match. The i-th action applies to the i-th group and must be either an Emit
// or a delegation. Groups that did not participate in the match or matched
// the empty string are skipped. Characters of the match not covered by any
// group are emitted as Error tokens.
//
func ByGroups(actions ...Action) Action {
	return Action{Kind: ActGroups, Groups: actions}
}

// Using returns an action that tokenises the matched text with l and splices
// the resulting tokens in place.
//
func Using(l *RegexLexer) Action {
	return Action{Kind: ActDelegate, Lexer: l}
}

// UsingThis returns an action that tokenises the matched text with a fresh
// instance of the lexer owning the rule, starting in its root state.
//
func UsingThis() Action {
	return Action{Kind: ActDelegate}
}

// TransitionOp is a state stack operation.
//
type TransitionOp uint8

// Transition operations.
//
const (
	OpPush     TransitionOp = iota // push States in order
	OpCombined                     // push a single state made of States' rules
	OpPop                          // pop Count states
)

// A Transition is the state stack operation applied after a rule's action.
//
type Transition struct {
	Op     TransitionOp
	States []string
	Count  int
}

// Push returns a transition pushing the given states in order. The last one
// becomes the current state.
//
func Push(states ...string) *Transition {
	return &Transition{Op: OpPush, States: states}
}

// Combined returns a transition pushing a single anonymous state whose rules
// are the rules of all given states, in order.
//
func Combined(states ...string) *Transition {
	return &Transition{Op: OpCombined, States: states}
}

// Pop returns a transition popping n states. The root state is never popped.
//
func Pop(n int) *Transition {
	return &Transition{Op: OpPop, Count: n}
}

// A Rule is a pattern associated to an action and an optional state
// transition. A nil Next leaves the state stack unchanged.
//
type Rule struct {
	Pattern string
	Action  Action
	Next    *Transition
}

// Include returns a rule that splices the rules of the named state in place.
//
func Include(state string) Rule {
	return Rule{Action: Action{Kind: ActInclude, State: state}}
}

// States maps state names to ordered rule lists. The "root" state is the
// initial state.
//
type States map[string][]Rule

// Root is the name of the initial state.
//
const Root = "root"
