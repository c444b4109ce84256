// Package asyncio provides non-blocking read/write adapters over a
// fd.FileDesc, plus best-effort background writes, so that the spawner
// never has to block its scheduling goroutine on a slow pipe or file.
//
// The OS-level mechanics of making a descriptor non-blocking (epoll,
// kqueue, IOCP) are an external collaborator's concern; this package only
// needs the two strategies a caller picks between, realized here as
// goroutines reading/writing through the ordinary (blocking) *os.File
// calls, which the Go runtime's own netpoller already multiplexes
// efficiently for pipes and sockets.
package asyncio

import (
	"context"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/shenv/shcore/fd"
)

// ReadResult is the outcome of one asynchronous read.
type ReadResult struct {
	Data []byte
	Err  error // io.EOF on a clean end of input
}

// WriteResult is the outcome of one asynchronous write.
type WriteResult struct {
	N   int
	Err error
}

// Reader performs non-blocking reads from a descriptor.
type Reader interface {
	// Read starts a read of up to len(buf) bytes and returns a channel
	// that receives exactly one ReadResult. If ctx is done before the
	// read completes, the result carries ctx.Err(); the read itself may
	// still complete in the background once unblocked.
	Read(ctx context.Context, buf []byte) <-chan ReadResult
}

// Writer performs non-blocking writes to a descriptor.
type Writer interface {
	// Write queues p and returns a channel receiving one WriteResult once
	// the write completes or ctx is done.
	Write(ctx context.Context, p []byte) <-chan WriteResult

	// WriteBestEffort queues p for a background write whose result is
	// never waited on. Errors are swallowed; this is for cases like
	// writing a trap or diagnostic message where blocking the caller
	// would be worse than losing the output.
	WriteBestEffort(p []byte)
}

// ReadWriter is the full async I/O adapter over one descriptor.
type ReadWriter interface {
	Reader
	Writer
	io.Closer
}

// Strategy distinguishes the two adapter implementations a Platform picks
// between.
type Strategy int

const (
	// StrategyThreadPool dedicates one bounded worker-pool goroutine per
	// in-flight operation, suited to regular files where a read/write
	// call can genuinely block on disk I/O.
	StrategyThreadPool Strategy = iota
	// StrategyEvented assumes the descriptor is already suitable for
	// non-blocking multiplexing (pipes, sockets) and lets the Go runtime
	// poller do the waiting instead of a dedicated worker.
	StrategyEvented
)

// Platform picks the adapter strategy for a descriptor. Regular files use
// the thread pool, since their reads/writes can block on disk I/O in ways
// the runtime poller does not multiplex; everything else (pipes, in
// particular) uses the evented strategy.
func Platform(isRegularFile bool) Strategy {
	if isRegularFile {
		return StrategyThreadPool
	}
	return StrategyEvented
}

// New builds a ReadWriter over f using the given strategy and a shared
// worker group (used only by StrategyThreadPool to bound concurrent
// blocking calls).
func New(f *fd.FileDesc, strategy Strategy, pool *ThreadPool) ReadWriter {
	switch strategy {
	case StrategyThreadPool:
		return &threadPoolIO{f: f, pool: pool}
	default:
		return &eventedIO{f: f}
	}
}

// ThreadPool bounds the number of concurrent blocking read/write calls
// made on behalf of regular-file descriptors, the same role
// golang.org/x/sync/errgroup's Group plays for the spawner's own pipeline
// concurrency.
type ThreadPool struct {
	grp *errgroup.Group
	sem chan struct{}
}

// NewThreadPool creates a pool allowing up to size concurrent blocking
// operations.
func NewThreadPool(size int) *ThreadPool {
	if size <= 0 {
		size = 1
	}
	grp := &errgroup.Group{}
	grp.SetLimit(size)
	return &ThreadPool{grp: grp, sem: make(chan struct{}, size)}
}

// Wait blocks until every operation submitted to the pool has finished.
func (tp *ThreadPool) Wait() error { return tp.grp.Wait() }

func (tp *ThreadPool) submit(fn func()) {
	tp.grp.Go(func() error {
		fn()
		return nil
	})
}

type threadPoolIO struct {
	f    *fd.FileDesc
	pool *ThreadPool
}

func (t *threadPoolIO) Read(ctx context.Context, buf []byte) <-chan ReadResult {
	out := make(chan ReadResult, 1)
	t.pool.submit(func() {
		n, err := t.f.Read(buf)
		select {
		case out <- ReadResult{Data: buf[:n], Err: err}:
		case <-ctx.Done():
		}
	})
	return out
}

func (t *threadPoolIO) Write(ctx context.Context, p []byte) <-chan WriteResult {
	out := make(chan WriteResult, 1)
	t.pool.submit(func() {
		n, err := t.f.Write(p)
		select {
		case out <- WriteResult{N: n, Err: err}:
		case <-ctx.Done():
		}
	})
	return out
}

func (t *threadPoolIO) WriteBestEffort(p []byte) {
	t.pool.submit(func() {
		t.f.Write(p)
	})
}

func (t *threadPoolIO) Close() error { return t.f.Close() }

type eventedIO struct {
	f *fd.FileDesc
}

func (e *eventedIO) Read(ctx context.Context, buf []byte) <-chan ReadResult {
	out := make(chan ReadResult, 1)
	go func() {
		n, err := e.f.Read(buf)
		select {
		case out <- ReadResult{Data: buf[:n], Err: err}:
		case <-ctx.Done():
		}
	}()
	return out
}

func (e *eventedIO) Write(ctx context.Context, p []byte) <-chan WriteResult {
	out := make(chan WriteResult, 1)
	go func() {
		n, err := e.f.Write(p)
		select {
		case out <- WriteResult{N: n, Err: err}:
		case <-ctx.Done():
		}
	}()
	return out
}

func (e *eventedIO) WriteBestEffort(p []byte) {
	go func() {
		e.f.Write(p)
	}()
}

func (e *eventedIO) Close() error { return e.f.Close() }
