// Package fd provides the owned file-descriptor primitives the spawner and
// async I/O layers build on: a FileDesc wrapping an OS handle, pipe
// creation, and permission bits for file-opening redirections.
package fd

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Permissions are the access-mode bits used when a redirection opens a
// file, mirroring the O_RDONLY/O_WRONLY/... constants a real open(2) call
// would take.
type Permissions int

const (
	ReadOnly Permissions = iota
	WriteOnly
	ReadWrite
)

func (p Permissions) osFlags() int {
	switch p {
	case WriteOnly:
		return os.O_WRONLY
	case ReadWrite:
		return os.O_RDWR
	default:
		return os.O_RDONLY
	}
}

// FileDesc is an owned OS file handle. Once Close is called, further use is
// an error; Close itself is idempotent.
type FileDesc struct {
	f      *os.File
	closed bool
}

// New wraps an already-open *os.File as a FileDesc.
func New(f *os.File) *FileDesc { return &FileDesc{f: f} }

// Open opens path with the given permissions and, for WriteOnly/ReadWrite,
// creates it (mode 0644) and truncates it, matching a simple command's
// plain ">"/"<" redirection targets. Append-mode redirections should use
// OpenAppend instead.
func Open(path string, perm Permissions) (*FileDesc, error) {
	flags := perm.osFlags()
	if perm != ReadOnly {
		flags |= os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, err
	}
	return New(f), nil
}

// OpenAppend opens path for appending, creating it if necessary.
func OpenAppend(path string) (*FileDesc, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return New(f), nil
}

// Read implements io.Reader.
func (fd *FileDesc) Read(p []byte) (int, error) { return fd.f.Read(p) }

// Write implements io.Writer.
func (fd *FileDesc) Write(p []byte) (int, error) { return fd.f.Write(p) }

// Fd returns the underlying OS descriptor number.
func (fd *FileDesc) Fd() uintptr { return fd.f.Fd() }

// File exposes the underlying *os.File, for callers that need e.g. Stat.
func (fd *FileDesc) File() *os.File { return fd.f }

// Dup returns a new FileDesc that duplicates the underlying descriptor; the
// two can be closed independently.
func (fd *FileDesc) Dup() (*FileDesc, error) {
	newFd, err := unix.Dup(int(fd.f.Fd()))
	if err != nil {
		return nil, err
	}
	return New(os.NewFile(uintptr(newFd), fd.f.Name())), nil
}

// Close releases the descriptor. Calling Close more than once is a no-op.
func (fd *FileDesc) Close() error {
	if fd.closed {
		return nil
	}
	fd.closed = true
	return fd.f.Close()
}

var _ io.ReadWriteCloser = (*FileDesc)(nil)

// Pipe is a connected read/write FileDesc pair, as used to wire pipeline
// stages together.
type Pipe struct {
	Read  *FileDesc
	Write *FileDesc
}

// NewPipe creates an OS pipe.
func NewPipe() (Pipe, error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], 0); err != nil {
		return Pipe{}, err
	}
	return Pipe{
		Read:  New(os.NewFile(uintptr(fds[0]), "|0")),
		Write: New(os.NewFile(uintptr(fds[1]), "|1")),
	}, nil
}

// Close closes both ends of the pipe. It returns the read end's error if
// there is one, otherwise the write end's.
func (p Pipe) Close() error {
	err1 := p.Read.Close()
	err2 := p.Write.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
