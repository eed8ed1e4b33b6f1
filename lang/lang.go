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

// Package lang provides a registry of lexers, searchable by name, alias or
// file name, and able to guess the language of a text.
//
package lang

import (
	"path/filepath"
	"strings"

	"github.com/db47h/rulex"
	"github.com/db47h/rulex/lang/groovy"
	"github.com/db47h/rulex/lang/gsp"
	"github.com/db47h/rulex/lang/xml"
	"github.com/gobwas/glob"
)

type entry struct {
	def   rulex.Definition
	globs []glob.Glob
}

// A Registry is a set of lexers.
//
type Registry struct {
	entries []entry
	names   map[string]int // lower case name or alias -> index in entries
}

// NewRegistry returns a new registry holding the given lexers, in order.
//
func NewRegistry(defs ...rulex.Definition) *Registry {
	r := &Registry{names: make(map[string]int)}
	for _, d := range defs {
		r.Register(d)
	}
	return r
}

// Register adds d to the registry. It panics if a name or alias of d is
// already registered or if one of its file name patterns is invalid.
//
func (r *Registry) Register(d rulex.Definition) {
	c := d.Config()
	e := entry{def: d}
	for _, p := range c.Filenames {
		e.globs = append(e.globs, glob.MustCompile(p))
	}
	i := len(r.entries)
	for _, n := range append([]string{c.Name}, c.Aliases...) {
		n = strings.ToLower(n)
		if _, ok := r.names[n]; ok {
			panic("lexer " + n + " registered twice")
		}
		r.names[n] = i
	}
	r.entries = append(r.entries, e)
}

// All returns the registered lexers in registration order.
//
func (r *Registry) All() []rulex.Definition {
	defs := make([]rulex.Definition, len(r.entries))
	for i := range r.entries {
		defs[i] = r.entries[i].def
	}
	return defs
}

// Get returns the lexer with the given name or alias, compared
// case-insensitively, or nil.
//
func (r *Registry) Get(name string) rulex.Definition {
	if i, ok := r.names[strings.ToLower(name)]; ok {
		return r.entries[i].def
	}
	return nil
}

// Match returns the first lexer with a file name pattern matching the base
// name of filename, or nil.
//
func (r *Registry) Match(filename string) rulex.Definition {
	base := filepath.Base(filename)
	for i := range r.entries {
		for _, g := range r.entries[i].globs {
			if g.Match(base) {
				return r.entries[i].def
			}
		}
	}
	return nil
}

// Analyse returns the lexer giving the highest score to text, along with that
// score. Ties go to the lexer registered first. It returns nil if no lexer
// gives text a positive score.
//
func (r *Registry) Analyse(text string) (rulex.Definition, float32) {
	var (
		best  rulex.Definition
		score float32
	)
	for i := range r.entries {
		d := r.entries[i].def
		if s := d.AnalyseText(text); s > score {
			best, score = d, s
		}
	}
	return best, score
}

// Default is the registry of the lexers provided by this module.
//
var Default = NewRegistry(groovy.Lexer, gsp.Lexer, xml.Lexer)

// All returns the lexers in the default registry.
//
func All() []rulex.Definition { return Default.All() }

// Get returns the lexer with the given name or alias from the default
// registry, or nil.
//
func Get(name string) rulex.Definition { return Default.Get(name) }

// Match returns the lexer of the default registry matching filename, or nil.
//
func Match(filename string) rulex.Definition { return Default.Match(filename) }

// Analyse returns the lexer of the default registry giving the highest score
// to text, or nil.
//
func Analyse(text string) (rulex.Definition, float32) { return Default.Analyse(text) }
