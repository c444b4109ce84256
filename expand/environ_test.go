// Copyright (c) 2018, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package expand

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestListEnviron(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	env := ListEnviron("A=1", "B=2", "A=3", "invalid", "=alsoinvalid")

	c.Assert(env.Get("A"), qt.Equals, Variable{Set: true, Exported: true, Str: "3"})
	c.Assert(env.Get("B"), qt.Equals, Variable{Set: true, Exported: true, Str: "2"})
	c.Assert(env.Get("C").IsSet(), qt.IsFalse)

	seen := map[string]string{}
	env.Each(func(name string, vr Variable) bool {
		seen[name] = vr.Str
		return true
	})
	c.Assert(seen, qt.DeepEquals, map[string]string{"A": "3", "B": "2"})
}

func TestFuncEnviron(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	env := FuncEnviron(func(name string) string {
		if name == "FOO" {
			return "bar"
		}
		return ""
	})
	c.Assert(env.Get("FOO"), qt.Equals, Variable{Set: true, Exported: true, Str: "bar"})
	c.Assert(env.Get("BAZ").IsSet(), qt.IsFalse)
}
