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
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/db47h/rulex"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	log := logrus.New()
	log.SetOutput(&logs)
	cmd := newRootCmd(strings.NewReader(stdin), &out, log)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), logs.String(), err
}

func TestLexers(t *testing.T) {
	out, _, err := run(t, "", "lexers")
	if err != nil {
		t.Fatalf("lexers failed: %v", err)
	}
	for _, s := range []string{"Groovy", "Groovy Server Page", "XML", "*.gsp"} {
		if !strings.Contains(out, s) {
			t.Errorf("lexers output does not contain %q:\n%s", s, out)
		}
	}
}

func TestTokensStdin(t *testing.T) {
	out, _, err := run(t, "def x = 1\n", "tokens", "-l", "groovy")
	if err != nil {
		t.Fatalf("tokens failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) == 0 || !strings.HasPrefix(lines[0], "1:1\tKeyword.Type") || !strings.HasSuffix(lines[0], `"def"`) {
		t.Fatalf("unexpected first line in:\n%s", out)
	}
	if !strings.Contains(out, "1:9\tLiteral.Number.Integer") {
		t.Fatalf("missing integer token in:\n%s", out)
	}
}

func TestTokensByFileName(t *testing.T) {
	name := filepath.Join(t.TempDir(), "page.gsp")
	if err := os.WriteFile(name, []byte("<p><%= x %></p>"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := run(t, "", "tokens", "--coalesce", name)
	if err != nil {
		t.Fatalf("tokens failed: %v", err)
	}
	for _, s := range []string{"1:1\tName.Tag", `"<p>"`, `"<%="`, `"%>"`, `"</p>"`} {
		if !strings.Contains(out, s) {
			t.Errorf("output does not contain %q:\n%s", s, out)
		}
	}
	found := false
	for _, l := range strings.Split(out, "\n") {
		if strings.HasPrefix(l, "1:8\tName ") && strings.HasSuffix(l, `"x"`) {
			found = true
		}
	}
	if !found {
		t.Errorf("name token not found in:\n%s", out)
	}
}

func TestTokensColor(t *testing.T) {
	const src = "def x = 'a'\n"
	plain, _, err := run(t, src, "tokens", "-l", "groovy")
	if err != nil {
		t.Fatalf("tokens failed: %v", err)
	}
	// not a terminal: no escape sequences
	out, _, err := run(t, src, "tokens", "-l", "groovy", "--color")
	if err != nil {
		t.Fatalf("tokens --color failed: %v", err)
	}
	if out != plain {
		t.Errorf("unexpected output:\n%s\nexpected:\n%s", out, plain)
	}
	if strings.Contains(out, "\x1b") {
		t.Errorf("escape sequence in output:\n%q", out)
	}
}

func TestStyler(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI256)
	style := styler(r)
	str := r.NewStyle().Foreground(palette[rulex.LiteralString]).Render("x")
	if str == "x" {
		t.Fatal("style not applied")
	}
	td := []struct {
		typ  rulex.Type
		want string
	}{
		{rulex.LiteralString, str},
		{rulex.LiteralStringDouble, str}, // parent color
		{rulex.Text, "x"},                // no color
	}
	for _, d := range td {
		if got := style(d.typ, "x"); got != d.want {
			t.Errorf("%s: got %q, expected %q", d.typ, got, d.want)
		}
	}
	if got := styler(nil)(rulex.Keyword, "x"); got != "x" {
		t.Errorf("got %q without renderer", got)
	}
}

func TestTokensInvalidUTF8(t *testing.T) {
	_, _, err := run(t, "a\xffb", "tokens", "-l", "groovy")
	if !errors.Is(err, errInvalidUTF8) {
		t.Fatalf("expected errInvalidUTF8, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), stdinName+":") {
		t.Errorf("unexpected error %q", err)
	}
}

func TestTokensErrors(t *testing.T) {
	_, logs, err := run(t, "x = `a`\n", "tokens", "-l", "groovy", "--errors")
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, s := range []string{"<stdin>:1:5: unexpected \"`\"", "\tx = `a`\n\t    ^\n", "<stdin>:1:7"} {
		if !strings.Contains(logs, s) {
			t.Errorf("report does not contain %q:\n%s", s, logs)
		}
	}
}

func TestTokensUnknownLexer(t *testing.T) {
	_, _, err := run(t, "", "tokens", "-l", "cobol")
	if err == nil || !strings.Contains(err.Error(), `unknown lexer "cobol"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTokensGuess(t *testing.T) {
	out, _, err := run(t, "#!/usr/bin/env groovy\nprintln 'hi'\n", "tokens")
	if err != nil {
		t.Fatalf("tokens failed: %v", err)
	}
	if !strings.Contains(out, "2:1\tName ") || !strings.Contains(out, `"println"`) {
		t.Fatalf("name not found in:\n%s", out)
	}
	out, _, err = run(t, "<?xml version=\"1.0\"?>\n<config/>\n", "tokens")
	if err != nil {
		t.Fatalf("tokens failed: %v", err)
	}
	if !strings.Contains(out, "1:1\tComment.Preproc") || !strings.Contains(out, "2:1\tName.Tag") {
		t.Fatalf("XML tokens not found in:\n%s", out)
	}
	_, _, err = run(t, "plain text", "tokens")
	if !errors.Is(err, errNoLexer) {
		t.Fatalf("expected errNoLexer, got %v", err)
	}
}

func TestAnalyse(t *testing.T) {
	out, _, err := run(t, "#!/usr/bin/groovy\n", "analyse")
	if err != nil {
		t.Fatalf("analyse failed: %v", err)
	}
	first := strings.SplitN(out, "\n", 2)[0]
	if !strings.HasPrefix(first, "Groovy ") || !strings.HasSuffix(first, "1.00") {
		t.Fatalf("unexpected first line %q", first)
	}
}
