// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package expand

import (
	"context"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/shenv/shcore/ast"
)

// mapEnviron is a minimal WriteEnviron test double backed by a map.
type mapEnviron map[string]Variable

func (m mapEnviron) Get(name string) Variable { return m[name] }

func (m mapEnviron) Each(fn func(string, Variable) bool) {
	for name, vr := range m {
		if !fn(name, vr) {
			return
		}
	}
}

func (m mapEnviron) Set(name string, vr Variable) error {
	if !vr.IsSet() {
		delete(m, name)
		return nil
	}
	m[name] = vr
	return nil
}

func lit(s string) *ast.Word { return &ast.Word{Parts: []ast.WordPart{&ast.Lit{Value: s}}} }

func TestFieldsSplitting(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	env := mapEnviron{}
	cfg := &Config{Env: env}

	word := &ast.Word{Parts: []ast.WordPart{&ast.Lit{Value: "foo  bar\tbaz"}}}
	got, err := cfg.Fields(context.Background(), word)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Kind, qt.Equals, FieldSplit)
	c.Assert(got.Strings(), qt.DeepEquals, []string{"foo", "bar", "baz"})
}

func TestDoubleQuotedNoSplit(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	env := mapEnviron{}
	cfg := &Config{Env: env}

	word := &ast.Word{Parts: []ast.WordPart{&ast.DblQuoted{
		Parts: []ast.WordPart{&ast.Lit{Value: "foo bar"}},
	}}}
	got, err := cfg.Fields(context.Background(), word)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Strings(), qt.DeepEquals, []string{"foo bar"})
}

func TestPositionalAtVsStar(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	env := mapEnviron{}
	cfg := &Config{Env: env, Params: Params{Args: []string{"a b", "c"}}}

	at := &ast.Word{Parts: []ast.WordPart{&ast.ParamExp{Short: true, Param: "@"}}}
	gotAt, err := cfg.Fields(context.Background(), at)
	c.Assert(err, qt.IsNil)
	c.Assert(gotAt.Kind, qt.Equals, FieldAt)
	// unquoted "$@" still splits each element's content on IFS.
	c.Assert(gotAt.Strings(), qt.DeepEquals, []string{"a", "b", "c"})

	quotedAt := &ast.Word{Parts: []ast.WordPart{&ast.DblQuoted{
		Parts: []ast.WordPart{&ast.ParamExp{Short: true, Param: "@"}},
	}}}
	gotQuotedAt, err := cfg.Fields(context.Background(), quotedAt)
	c.Assert(err, qt.IsNil)
	c.Assert(gotQuotedAt.Strings(), qt.DeepEquals, []string{"a b", "c"})

	star := &ast.Word{Parts: []ast.WordPart{&ast.ParamExp{Short: true, Param: "*"}}}
	gotStar, err := cfg.Fields(context.Background(), star)
	c.Assert(err, qt.IsNil)
	c.Assert(gotStar.Kind, qt.Equals, FieldStar)
}

func TestParamLength(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	env := mapEnviron{"FOO": {Set: true, Str: "héllo"}}
	cfg := &Config{Env: env, Params: Params{Args: []string{"ab", "c"}}}

	lenFoo := &ast.Word{Parts: []ast.WordPart{&ast.ParamExp{Param: "FOO", Length: true}}}
	got, err := cfg.Literal(context.Background(), lenFoo)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, "5")

	lenAt := &ast.Word{Parts: []ast.WordPart{&ast.ParamExp{Param: "@", Length: true}}}
	got, err = cfg.Literal(context.Background(), lenAt)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, "3") // "ab" (2) + "c" (1)
}

func TestSubstDefaultAndAssign(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	env := mapEnviron{}
	cfg := &Config{Env: env}

	word := &ast.Word{Parts: []ast.WordPart{&ast.ParamExp{
		Param: "FOO",
		Exp:   &ast.Expansion{Op: ast.SubstColMinus, Word: lit("fallback")},
	}}}
	got, err := cfg.Literal(context.Background(), word)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, "fallback")
	// ":-" never assigns.
	c.Assert(env.Get("FOO").IsSet(), qt.IsFalse)

	assignWord := &ast.Word{Parts: []ast.WordPart{&ast.ParamExp{
		Param: "FOO",
		Exp:   &ast.Expansion{Op: ast.SubstColAssgn, Word: lit("assigned")},
	}}}
	got, err = cfg.Literal(context.Background(), assignWord)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, "assigned")
	c.Assert(env.Get("FOO"), qt.Equals, Variable{Set: true, Str: "assigned"})
}

func TestSubstError(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	env := mapEnviron{}
	cfg := &Config{Env: env}

	word := &ast.Word{Parts: []ast.WordPart{&ast.ParamExp{
		Param: "FOO",
		Exp:   &ast.Expansion{Op: ast.SubstColQuest, Word: lit("must be set")},
	}}}
	_, err := cfg.Literal(context.Background(), word)
	c.Assert(err, qt.ErrorMatches, "FOO: must be set")
}

func TestTrimOperators(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	env := mapEnviron{"FOO": {Set: true, Str: "abc💩 d abced"}}
	cfg := &Config{Env: env}

	smallSuffix := &ast.Word{Parts: []ast.WordPart{&ast.ParamExp{
		Param: "FOO",
		Exp:   &ast.Expansion{Op: ast.RemSmallSuffix, Word: lit("abc*")},
	}}}
	got, err := cfg.Literal(context.Background(), smallSuffix)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, "abc💩 d ")

	star := &ast.Word{Parts: []ast.WordPart{&ast.ParamExp{
		Param: "FOO",
		Exp:   &ast.Expansion{Op: ast.RemSmallSuffix, Word: lit("*")},
	}}}
	got, err = cfg.Literal(context.Background(), star)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, "abc💩 d abced")
}

func TestTildeExpansion(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	env := mapEnviron{}
	cfg := &Config{
		Env:            env,
		TildeExpansion: TildeFirst,
		home: func(user string) (string, bool) {
			if user == "" {
				return "/home/me", true
			}
			return "", false
		},
	}

	word := &ast.Word{Parts: []ast.WordPart{&ast.Lit{Value: "~/dir"}}}
	got, err := cfg.Literal(context.Background(), word)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, "/home/me/dir")
}
