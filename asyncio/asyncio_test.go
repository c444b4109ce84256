package asyncio

import (
	"context"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/shenv/shcore/fd"
)

func TestEventedReadWrite(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	p, err := fd.NewPipe()
	c.Assert(err, qt.IsNil)
	defer p.Close()

	rw := New(p.Write, StrategyEvented, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	res := <-rw.Write(ctx, []byte("hi"))
	c.Assert(res.Err, qt.IsNil)
	c.Assert(res.N, qt.Equals, 2)

	readSide := New(p.Read, StrategyEvented, nil)
	buf := make([]byte, 16)
	got := <-readSide.Read(ctx, buf)
	c.Assert(got.Err, qt.IsNil)
	c.Assert(string(got.Data), qt.Equals, "hi")
}

func TestThreadPoolWrite(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	p, err := fd.NewPipe()
	c.Assert(err, qt.IsNil)
	defer p.Close()

	pool := NewThreadPool(2)
	rw := New(p.Write, StrategyThreadPool, pool)
	ctx := context.Background()

	res := <-rw.Write(ctx, []byte("ok"))
	c.Assert(res.Err, qt.IsNil)
	c.Assert(res.N, qt.Equals, 2)
	c.Assert(pool.Wait(), qt.IsNil)
}

func TestPlatformPicksStrategy(t *testing.T) {
	t.Parallel()
	c := qt.New(t)

	c.Assert(Platform(true), qt.Equals, StrategyThreadPool)
	c.Assert(Platform(false), qt.Equals, StrategyEvented)
}
