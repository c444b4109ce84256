// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package builtin

import (
	"context"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/shenv/shcore/env"
)

func newTestEnv(t *testing.T) *env.Env {
	t.Helper()
	e, err := env.New()
	qt.Assert(t, err, qt.IsNil)
	return e
}

func TestShiftDefaultsToOne(t *testing.T) {
	c := qt.New(t)
	e := newTestEnv(t)
	e.SetArgs([]string{"a", "b", "c"})

	st, err := shift(context.Background(), e, []string{"shift"})
	c.Assert(err, qt.IsNil)
	c.Assert(st.Success(), qt.IsTrue)
	c.Assert(e.ArgsSlice(), qt.DeepEquals, []string{"b", "c"})
}

func TestShiftExplicitCount(t *testing.T) {
	c := qt.New(t)
	e := newTestEnv(t)
	e.SetArgs([]string{"a", "b", "c"})

	st, err := shift(context.Background(), e, []string{"shift", "2"})
	c.Assert(err, qt.IsNil)
	c.Assert(st.Success(), qt.IsTrue)
	c.Assert(e.ArgsSlice(), qt.DeepEquals, []string{"c"})
}

func TestShiftNegativeLeavesArgsUnchanged(t *testing.T) {
	c := qt.New(t)
	e := newTestEnv(t)
	e.SetArgs([]string{"a", "b"})

	st, err := shift(context.Background(), e, []string{"shift", "-1"})
	c.Assert(err, qt.IsNil)
	c.Assert(st.Success(), qt.IsFalse)
	c.Assert(e.ArgsSlice(), qt.DeepEquals, []string{"a", "b"})
}

func TestShiftNonNumericLeavesArgsUnchanged(t *testing.T) {
	c := qt.New(t)
	e := newTestEnv(t)
	e.SetArgs([]string{"a", "b"})

	st, err := shift(context.Background(), e, []string{"shift", "x"})
	c.Assert(err, qt.IsNil)
	c.Assert(st.Success(), qt.IsFalse)
	c.Assert(e.ArgsSlice(), qt.DeepEquals, []string{"a", "b"})
}

func TestShiftOutOfRangeLeavesArgsUnchanged(t *testing.T) {
	c := qt.New(t)
	e := newTestEnv(t)
	e.SetArgs([]string{"a", "b"})

	st, err := shift(context.Background(), e, []string{"shift", "5"})
	c.Assert(err, qt.IsNil)
	c.Assert(st.Success(), qt.IsFalse)
	c.Assert(e.ArgsSlice(), qt.DeepEquals, []string{"a", "b"})
}

func TestShiftTooManyArgsLeavesArgsUnchanged(t *testing.T) {
	c := qt.New(t)
	e := newTestEnv(t)
	e.SetArgs([]string{"a", "b"})

	st, err := shift(context.Background(), e, []string{"shift", "1", "2"})
	c.Assert(err, qt.IsNil)
	c.Assert(st.Success(), qt.IsFalse)
	c.Assert(e.ArgsSlice(), qt.DeepEquals, []string{"a", "b"})
}
