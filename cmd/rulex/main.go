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

// Command rulex tokenises Groovy, Groovy Server Pages and XML files and dumps
// the resulting tokens.
//
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/db47h/rulex"
	"github.com/db47h/rulex/lang"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const stdinName = "<stdin>"

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	cmd := newRootCmd(os.Stdin, os.Stdout, log)
	if err := cmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// app holds the I/O streams shared by all commands.
//
type app struct {
	in    io.Reader
	out   io.Writer
	log   *logrus.Logger
	debug bool
}

func newRootCmd(in io.Reader, out io.Writer, log *logrus.Logger) *cobra.Command {
	a := &app{in: in, out: out, log: log}
	cmd := &cobra.Command{
		Use:           "rulex",
		Short:         "Syntax highlighting tokenizer",
		Long:          "rulex - tokenise Groovy, Groovy Server Pages and XML source files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.debug {
				a.log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")
	cmd.AddCommand(a.tokensCmd(), a.analyseCmd(), a.lexersCmd())
	return cmd
}

// read returns the name and contents of the file named in args, or of the
// standard input if args is empty or "-".
//
func (a *app) read(args []string) (string, string, error) {
	var (
		name = stdinName
		b    []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		if b, err = io.ReadAll(a.in); err != nil {
			return "", "", fmt.Errorf("read standard input: %w", err)
		}
	} else {
		name = args[0]
		if b, err = os.ReadFile(name); err != nil {
			return "", "", fmt.Errorf("read input: %w", err)
		}
	}
	if !utf8.Valid(b) {
		return "", "", fmt.Errorf("%s: %w", name, errInvalidUTF8)
	}
	return name, string(b), nil
}

var (
	errNoLexer     = errors.New("cannot determine lexer")
	errInvalidUTF8 = errors.New("input is not valid UTF-8")
)

// pick selects the lexer for a file: by name if one is given, then by file
// name, then by content.
//
func (a *app) pick(name, filename, text string) (rulex.Definition, error) {
	if name != "" {
		d := lang.Get(name)
		if d == nil {
			return nil, fmt.Errorf("unknown lexer %q", name)
		}
		a.log.WithField("lexer", d.Config().Name).Debug("lexer selected by name")
		return d, nil
	}
	if filename != stdinName {
		if d := lang.Match(filename); d != nil {
			a.log.WithFields(logrus.Fields{
				"lexer": d.Config().Name,
				"file":  filename,
			}).Debug("lexer selected by file name")
			return d, nil
		}
	}
	d, score := lang.Analyse(text)
	if d == nil {
		return nil, fmt.Errorf("%s: %w", filename, errNoLexer)
	}
	a.log.WithFields(logrus.Fields{
		"lexer": d.Config().Name,
		"score": score,
	}).Debug("lexer selected by content")
	return d, nil
}
