// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package pattern

import (
	"fmt"
	"regexp"
	"regexp/syntax"
	"testing"

	qt "github.com/frankban/quicktest"
)

var regexpTests = []struct {
	pat     string
	mode    Mode
	want    string
	wantErr bool

	mustMatch    []string
	mustNotMatch []string
}{
	{pat: ``, want: ``},
	{pat: `foo`, want: `foo`},
	{pat: `foóà中`, want: `foóà中`},
	{pat: `.`, want: `\.`},
	{pat: `foo*`, want: `(?s)foo.*`},
	{pat: `foo*`, mode: Shortest, want: `(?sU)foo.*`},
	{pat: `**`, want: `(?s).*.*`},
	{pat: `\*`, want: `\*`},
	{pat: `\`, wantErr: true},
	{pat: `?`, want: `(?s).`},
	{pat: `?à`, want: `(?s).à`},
	{pat: `\a`, want: `a`},
	{pat: `(`, want: `\(`},
	{pat: `a|b`, want: `a\|b`},
	{pat: `x{3}`, want: `x\{3\}`},
	{pat: `{3,4}`, want: `\{3,4\}`},
	{pat: `[a]`, want: `[a]`},
	{pat: `[abc]`, want: `[abc]`},
	{pat: `[^bc]`, want: `[^bc]`},
	{pat: `[!bc]`, want: `[^bc]`},
	{pat: `[[]`, want: `[[]`},
	{pat: `[\]]`, want: `[\]]`},
	{pat: `[]]`, want: `[]]`},
	{pat: `[!]]`, want: `[^]]`},
	{pat: `[^]]`, want: `[^]]`},
	{pat: `[a/b]`, want: `[a/b]`},
	{pat: `[`, wantErr: true},
	{pat: `[\`, wantErr: true},
	{pat: `[^`, wantErr: true},
	{pat: `[!`, wantErr: true},
	{pat: `[]`, wantErr: true},
	{pat: `[^]`, wantErr: true},
	{pat: `[!]`, wantErr: true},
	{pat: `[ab`, wantErr: true},
	{pat: `[a-]`, want: `[a-]`},
	{pat: `[z-a]`, wantErr: true},
	{pat: `[a-a]`, want: `[a-a]`},
	{pat: `[aa]`, want: `[aa]`},
	{pat: `[0-4A-Z]`, want: `[0-4A-Z]`},
	{pat: `[-a]`, want: `[-a]`},
	{pat: `[^-a]`, want: `[^-a]`},
	{pat: `[[:digit:]]`, want: `[[:digit:]]`},
	{pat: `[[:`, wantErr: true},
	{pat: `[[:digit`, wantErr: true},
	{pat: `[[:wrong:]]`, wantErr: true},
	{pat: `[[=x=]]`, wantErr: true},
	{pat: `[[.x.]]`, wantErr: true},
	{
		pat: `foo*`, mode: EntireString, want: `^(?s)foo.*$`,
		mustMatch:    []string{"foo", "foobar"},
		mustNotMatch: []string{"barfoo"},
	},
}

func TestRegexp(t *testing.T) {
	t.Parallel()
	for i, tc := range regexpTests {
		t.Run(fmt.Sprintf("%02d", i), func(t *testing.T) {
			c := qt.New(t)
			got, gotErr := Regexp(tc.pat, tc.mode)
			if tc.wantErr {
				c.Assert(gotErr, qt.IsNotNil)
				return
			}
			c.Assert(gotErr, qt.IsNil)
			c.Assert(got, qt.Equals, tc.want)
			_, rxErr := syntax.Parse(got, syntax.Perl)
			c.Assert(rxErr, qt.IsNil)
			rx := regexp.MustCompile(got)
			for _, s := range tc.mustMatch {
				c.Check(rx.MatchString(s), qt.IsTrue, qt.Commentf("must match: %q", s))
			}
			for _, s := range tc.mustNotMatch {
				c.Check(rx.MatchString(s), qt.IsFalse, qt.Commentf("must not match: %q", s))
			}
		})
	}
}

var metaTests = []struct {
	pat       string
	wantHas   bool
	wantQuote string
}{
	{``, false, ``},
	{`foo`, false, `foo`},
	{`.`, false, `.`},
	{`*`, true, `\*`},
	{`foo?`, true, `foo\?`},
	{`\[`, false, `\\\[`},
	{`{`, false, `{`},
}

func TestMeta(t *testing.T) {
	t.Parallel()
	c := qt.New(t)
	for _, tc := range metaTests {
		c.Check(HasMeta(tc.pat), qt.Equals, tc.wantHas, qt.Commentf("HasMeta(%q)", tc.pat))
		c.Check(QuoteMeta(tc.pat), qt.Equals, tc.wantQuote, qt.Commentf("QuoteMeta(%q)", tc.pat))
	}
}

var matchTests = []struct {
	pat  string
	name string
	want bool
}{
	{"foo", "foo", true},
	{"foo", "foobar", false},
	{"foo*", "foobar", true},
	{"foo*", "barfoo", false},
	{"*foo*", "barfoobaz", true},
	{"f?o", "foo", true},
	{"f?o", "fo", false},
	{"[fg]oo", "foo", true},
	{"[fg]oo", "hoo", false},
}

func TestMatch(t *testing.T) {
	t.Parallel()
	c := qt.New(t)
	for _, tc := range matchTests {
		c.Check(Match(tc.pat, tc.name), qt.Equals, tc.want,
			qt.Commentf("Match(%q, %q)", tc.pat, tc.name))
	}
}

var trimTests = []struct {
	name   string
	s      string
	pat    string
	greedy bool
	prefix bool
	want   string
}{
	{
		name: "smallest suffix leaves pattern-matches-empty unchanged",
		s:    "abc💩 d abced", pat: "*", greedy: false, prefix: false,
		want: "abc💩 d abced",
	},
	{
		name: "largest suffix strips pattern-matches-empty to empty",
		s:    "abc💩 d abced", pat: "*", greedy: true, prefix: false,
		want: "",
	},
	{
		name: "smallest suffix trims the shortest trailing match",
		s:    "abc💩 d abced", pat: "abc*", greedy: false, prefix: false,
		want: "abc💩 d ",
	},
	{
		name: "largest suffix trims the longest trailing match",
		s:    "💩ab cd ab ced", pat: "ab c*", greedy: true, prefix: false,
		want: "💩",
	},
	{
		name: "smallest prefix trims the shortest leading match",
		s:    "foobarfoobaz", pat: "*foo", greedy: false, prefix: true,
		want: "barfoobaz",
	},
	{
		name: "largest prefix trims the longest leading match",
		s:    "foobarfoobaz", pat: "*foo", greedy: true, prefix: true,
		want: "baz",
	},
	{
		name: "no match leaves value unchanged",
		s:    "abc", pat: "xyz", greedy: false, prefix: false,
		want: "abc",
	},
}

func TestTrim(t *testing.T) {
	t.Parallel()
	for _, tc := range trimTests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			c := qt.New(t)
			var got string
			var err error
			if tc.prefix {
				got, err = TrimPrefix(tc.s, tc.pat, tc.greedy)
			} else {
				got, err = TrimSuffix(tc.s, tc.pat, tc.greedy)
			}
			c.Assert(err, qt.IsNil)
			c.Assert(got, qt.Equals, tc.want)
		})
	}
}
