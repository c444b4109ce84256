package env

import (
	"os"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/shenv/shcore/expand"
	"github.com/shenv/shcore/fd"
)

func TestVarRestorer(t *testing.T) {
	c := qt.New(t)

	e, err := New()
	c.Assert(err, qt.IsNil)
	c.Assert(e.Set("FOO", expand.Variable{Set: true, Str: "outer"}), qt.IsNil)

	r := e.NewVarRestorer()
	c.Assert(r.Set("FOO", expand.Variable{Set: true, Str: "inner"}), qt.IsNil)
	c.Assert(r.Set("BAR", expand.Variable{Set: true, Str: "only-inner"}), qt.IsNil)
	c.Assert(e.Get("FOO").Str, qt.Equals, "inner")
	c.Assert(e.Get("BAR").Str, qt.Equals, "only-inner")

	r.Restore()
	c.Assert(e.Get("FOO").Str, qt.Equals, "outer")
	c.Assert(e.Get("BAR").IsSet(), qt.IsFalse)

	r.Restore()
	c.Assert(e.Get("FOO").Str, qt.Equals, "outer")
}

func TestFileDescRestorer(t *testing.T) {
	c := qt.New(t)

	e, err := New()
	c.Assert(err, qt.IsNil)
	origStdout, ok := e.FD(1)
	c.Assert(ok, qt.IsTrue)

	devnull, err := fd.Open(os.DevNull, fd.WriteOnly)
	c.Assert(err, qt.IsNil)
	defer devnull.Close()

	r := e.NewFileDescRestorer()
	r.SetFD(1, devnull)
	got, _ := e.FD(1)
	c.Assert(got, qt.Equals, devnull)

	r.Restore()
	got, _ = e.FD(1)
	c.Assert(got, qt.Equals, origStdout)
}
