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
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/db47h/rulex/lang"
	"github.com/spf13/cobra"
)

func (a *app) analyseCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "analyse [file]",
		Aliases: []string{"analyze"},
		Short:   "Score the likelihood of a file being written in each language",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, text, err := a.read(args)
			if err != nil {
				return err
			}
			type score struct {
				name string
				v    float32
			}
			var scores []score
			for _, d := range lang.All() {
				scores = append(scores, score{d.Config().Name, d.AnalyseText(text)})
			}
			sort.SliceStable(scores, func(i, j int) bool { return scores[i].v > scores[j].v })
			w := tabwriter.NewWriter(a.out, 0, 8, 2, ' ', 0)
			for _, s := range scores {
				fmt.Fprintf(w, "%s\t%.2f\n", s.name, s.v)
			}
			return w.Flush()
		},
	}
}

func (a *app) lexersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lexers",
		Short: "List available lexers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(a.out, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tALIASES\tFILENAMES")
			for _, d := range lang.All() {
				c := d.Config()
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.Name, strings.Join(c.Aliases, ","), strings.Join(c.Filenames, ","))
			}
			return w.Flush()
		},
	}
}
