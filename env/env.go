// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package env holds the mutable state a spawned command tree runs against:
// variables, positional parameters, open descriptors, the working
// directory, defined functions, and the last exit status. It also provides
// the restorer types that let a caller push a scoped mutation (a local
// variable, a temporary redirection) and later undo exactly that, in order,
// regardless of how the scope exited.
package env

import (
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/sys/unix"

	"github.com/shenv/shcore/ast"
	"github.com/shenv/shcore/asyncio"
	"github.com/shenv/shcore/expand"
	"github.com/shenv/shcore/fd"
)

// Args exposes the positional parameters and the program name ($0).
type Args interface {
	Name0() string
	Arg(i int) string
	NumArgs() int
	SetArgs(args []string)
	// Shift drops the first n positional parameters. It returns an error
	// if n is negative or greater than the number of parameters currently
	// set.
	Shift(n int) error
}

// Vars exposes the variable table as an expand.WriteEnviron, so the
// expand package can evaluate words directly against it.
type Vars interface {
	expand.WriteEnviron
}

// LastStatus exposes the exit status of the most recently completed
// command, i.e. the value "$?" reads.
type LastStatus interface {
	LastStatus() ExitStatus
	SetLastStatus(ExitStatus)
}

// FileDescs exposes the open descriptor table that redirections rewrite and
// simple commands inherit.
type FileDescs interface {
	FD(n int) (*fd.FileDesc, bool)
	SetFD(n int, f *fd.FileDesc)
}

// AsyncIO exposes the non-blocking read/write adapter bound to a given
// descriptor number, wrapping whatever FileDescs currently holds there.
type AsyncIO interface {
	AsyncFD(n int) (asyncio.ReadWriter, bool)
}

// WorkingDir exposes the shell's notion of the current directory,
// keeping PWD/OLDPWD in sync the way a real cd builtin would.
type WorkingDir interface {
	Dir() string
	Chdir(path string) error
}

// Functions exposes defined shell functions by name.
type Functions interface {
	Func(name string) (*ast.Stmt, bool)
	SetFunc(name string, body *ast.Stmt)
}

// Reporter exposes where diagnostic and error output goes.
type Reporter interface {
	Report(err error)
}

// Env is the full environment a spawned command tree runs against. It
// implements every sub-interface in this package; callers typically depend
// on the narrower interface that matches what they actually touch.
type Env struct {
	vars  map[string]expand.Variable
	args  []string
	name0 string

	status ExitStatus

	fds     map[int]*fd.FileDesc
	pool    *asyncio.ThreadPool
	regular map[int]bool // descriptors backed by a regular file, for asyncio.Platform

	dir string

	funcs map[string]*ast.Stmt

	out io.Writer
}

// New builds an Env bootstrapped from the real process: the current working
// directory, PWD/OLDPWD, and descriptors 0/1/2 wired to os.Stdin/Stdout/Stderr.
func New() (*Env, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	e := &Env{
		vars:    map[string]expand.Variable{},
		fds:     map[int]*fd.FileDesc{},
		regular: map[int]bool{},
		funcs:   map[string]*ast.Stmt{},
		dir:     wd,
		out:     os.Stderr,
		pool:    asyncio.NewThreadPool(4),
	}
	e.vars["PWD"] = expand.Variable{Set: true, Exported: true, Str: wd}
	e.vars["OLDPWD"] = expand.Variable{Set: true, Exported: true, Str: wd}
	e.fds[0] = fd.New(os.Stdin)
	e.fds[1] = fd.New(os.Stdout)
	e.fds[2] = fd.New(os.Stderr)
	return e, nil
}

// Clone returns a snapshot of e suitable for running a subshell or function
// scope in: every map and slice is copied so mutations the clone makes
// (variable assignments, redirections, cd, function definitions) never
// leak back into e. Descriptors themselves are shared (not duplicated);
// closing one through the clone only affects the clone's table entry, not
// the underlying *fd.FileDesc's lifetime as seen by the parent, since
// restorers (not raw deletes) are expected to undo descriptor swaps.
func (e *Env) Clone() *Env {
	return &Env{
		vars:    maps.Clone(e.vars),
		args:    slices.Clone(e.args),
		name0:   e.name0,
		status:  e.status,
		fds:     maps.Clone(e.fds),
		pool:    e.pool,
		regular: maps.Clone(e.regular),
		dir:     e.dir,
		funcs:   maps.Clone(e.funcs),
		out:     e.out,
	}
}

// Args

func (e *Env) Name0() string { return e.name0 }

// SetName0 sets the program name reported as "$0" and used in diagnostic
// messages.
func (e *Env) SetName0(name string) { e.name0 = name }

func (e *Env) Arg(i int) string {
	if i <= 0 {
		return e.name0
	}
	if i > len(e.args) {
		return ""
	}
	return e.args[i-1]
}

func (e *Env) NumArgs() int { return len(e.args) }

// ArgsSlice returns a copy of the current positional parameters ($1..$#).
func (e *Env) ArgsSlice() []string { return slices.Clone(e.args) }

func (e *Env) SetArgs(args []string) { e.args = slices.Clone(args) }

func (e *Env) Shift(n int) error {
	if n < 0 {
		return fmt.Errorf("shift: %d: invalid shift count", n)
	}
	if n > len(e.args) {
		return fmt.Errorf("shift: %d: shift count out of range", n)
	}
	e.args = slices.Clone(e.args[n:])
	return nil
}

// Vars / expand.WriteEnviron

func (e *Env) Get(name string) expand.Variable { return e.vars[name] }

func (e *Env) Each(fn func(name string, vr expand.Variable) bool) {
	for name, vr := range e.vars {
		if !fn(name, vr) {
			return
		}
	}
}

func (e *Env) Set(name string, vr expand.Variable) error {
	if name == "" {
		return fmt.Errorf("cannot set empty variable name")
	}
	if cur, ok := e.vars[name]; ok && cur.ReadOnly {
		return fmt.Errorf("%s: readonly variable", name)
	}
	return e.setRaw(name, vr)
}

// setRaw bypasses the read-only check, for restorers undoing a prior Set.
func (e *Env) setRaw(name string, vr expand.Variable) error {
	if !vr.IsSet() {
		delete(e.vars, name)
		return nil
	}
	e.vars[name] = vr
	return nil
}

// LastStatus

func (e *Env) LastStatus() ExitStatus { return e.status }

func (e *Env) SetLastStatus(st ExitStatus) { e.status = st }

// FileDescs

func (e *Env) FD(n int) (*fd.FileDesc, bool) {
	f, ok := e.fds[n]
	return f, ok
}

func (e *Env) SetFD(n int, f *fd.FileDesc) {
	if f == nil {
		delete(e.fds, n)
		delete(e.regular, n)
		return
	}
	e.fds[n] = f
	if st, err := f.File().Stat(); err == nil {
		e.regular[n] = st.Mode().IsRegular()
	}
}

// AsyncIO

func (e *Env) AsyncFD(n int) (asyncio.ReadWriter, bool) {
	f, ok := e.fds[n]
	if !ok {
		return nil, false
	}
	strategy := asyncio.Platform(e.regular[n])
	return asyncio.New(f, strategy, e.pool), true
}

// WorkingDir

func (e *Env) Dir() string { return e.dir }

func (e *Env) Chdir(path string) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.dir, path)
	}
	path = filepath.Clean(path)
	if err := unix.Access(path, unix.X_OK); err != nil {
		return fmt.Errorf("cd: %s: %w", path, err)
	}
	old := e.dir
	e.dir = path
	e.vars["OLDPWD"] = expand.Variable{Set: true, Exported: true, Str: old}
	e.vars["PWD"] = expand.Variable{Set: true, Exported: true, Str: path}
	return nil
}

// Functions

func (e *Env) Func(name string) (*ast.Stmt, bool) {
	s, ok := e.funcs[name]
	return s, ok
}

func (e *Env) SetFunc(name string, body *ast.Stmt) { e.funcs[name] = body }

// Reporter

func (e *Env) Report(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(e.out, "%s: %v\n", e.name0, err)
}

func (e *Env) SetReportWriter(w io.Writer) { e.out = w }

var (
	_ Args       = (*Env)(nil)
	_ Vars       = (*Env)(nil)
	_ LastStatus = (*Env)(nil)
	_ FileDescs  = (*Env)(nil)
	_ AsyncIO    = (*Env)(nil)
	_ WorkingDir = (*Env)(nil)
	_ Functions  = (*Env)(nil)
	_ Reporter   = (*Env)(nil)
)
