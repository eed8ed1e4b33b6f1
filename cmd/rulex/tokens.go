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

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/db47h/rulex"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// palette maps top-level and some specialized token types to colors. Types
// not listed use the color of their closest listed parent.
//
var palette = map[rulex.Type]lipgloss.Color{
	rulex.Error:                 "#EF4444",
	rulex.Comment:               "#6B7280",
	rulex.CommentPreproc:        "#8B5CF6",
	rulex.Keyword:               "#3B82F6",
	rulex.KeywordType:           "#06B6D4",
	rulex.Name:                  "#E5E7EB",
	rulex.NameFunction:          "#10B981",
	rulex.NameClass:             "#10B981",
	rulex.NameDecorator:         "#F59E0B",
	rulex.NameTag:               "#3B82F6",
	rulex.LiteralString:         "#84CC16",
	rulex.LiteralStringEscape:   "#F59E0B",
	rulex.LiteralStringInterpol: "#F59E0B",
	rulex.LiteralStringRegex:    "#EC4899",
	rulex.LiteralNumber:         "#F97316",
	rulex.Operator:              "#9CA3AF",
}

type tokenOptions struct {
	lexer    string
	color    bool
	coalesce bool
	errors   bool
}

func (a *app) tokensCmd() *cobra.Command {
	var opts tokenOptions
	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the tokens of a file",
		Long: "Print the tokens of a file, one per line, as line:column, type and quoted value.\n" +
			"The lexer is selected by --lexer, by file name or by content, in that order.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename, text, err := a.read(args)
			if err != nil {
				return err
			}
			d, err := a.pick(opts.lexer, filename, text)
			if err != nil {
				return err
			}
			return a.dump(rulex.NewFile(filename, text), d, text, &opts)
		},
	}
	opts.Flags(cmd.Flags())
	return cmd
}

func (o *tokenOptions) Flags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.lexer, "lexer", "l", "", "Lexer name or alias")
	flags.BoolVar(&o.color, "color", false, "Colorize token types")
	flags.BoolVar(&o.coalesce, "coalesce", false, "Merge adjacent tokens of the same type")
	flags.BoolVar(&o.errors, "errors", false, "Report error tokens and fail if any")
}

func (a *app) dump(f *rulex.File, d rulex.Definition, text string, opts *tokenOptions) error {
	it := d.Tokenise(text)
	if opts.coalesce {
		it = rulex.Coalesce(it)
	}
	var r *lipgloss.Renderer
	if opts.color {
		r = lipgloss.NewRenderer(a.out)
	}
	style := styler(r)
	var errs []rulex.Token
	n := 0
	for t := it.Lex(); t.Type != rulex.EOF; t = it.Lex() {
		n++
		if t.Type == rulex.Error {
			errs = append(errs, t)
		}
		p := f.Position(t.Pos)
		// pad before styling, escape sequences would break alignment.
		typ := fmt.Sprintf("%-30s", t.Type.String())
		fmt.Fprintf(a.out, "%d:%d\t%s %s\n", p.Line, p.Column, style(t.Type, typ), strconv.Quote(t.Value))
	}
	if err := it.Err(); err != nil {
		return err
	}
	a.log.WithField("tokens", n).Debug("done")
	if !opts.errors || len(errs) == 0 {
		return nil
	}
	for _, t := range errs {
		report(a.log.Out, f, t)
	}
	return fmt.Errorf("%s: %d error tokens", f.Name(), len(errs))
}

// report prints the position of an error token followed by its source line
// and a caret under the offending text.
//
func report(w io.Writer, f *rulex.File, t rulex.Token) {
	fmt.Fprintf(w, "%s: unexpected %s\n", f.Position(t.Pos), strconv.Quote(t.Value))
	l, err := f.Line(t.Pos)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "\t%s\n\t%s\n", l, f.Caret(t.Pos))
}

// styler returns a function rendering a string with the color of a token
// type. With a nil renderer, strings are returned as is.
//
func styler(r *lipgloss.Renderer) func(rulex.Type, string) string {
	if r == nil {
		return func(_ rulex.Type, s string) string { return s }
	}
	styles := make(map[rulex.Type]lipgloss.Style, len(palette))
	for t, c := range palette {
		styles[t] = r.NewStyle().Foreground(c)
	}
	return func(t rulex.Type, s string) string {
		for ; t != rulex.Invalid; t = t.Parent() {
			if st, ok := styles[t]; ok {
				return st.Render(s)
			}
		}
		return s
	}
}
