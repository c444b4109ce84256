// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package interp wires the env, spawn, and builtin packages together into a
// reusable entry point: build a Runner with New and the RunnerOptions below,
// then call Run with a parsed statement list.
package interp

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/shenv/shcore/ast"
	"github.com/shenv/shcore/env"
	"github.com/shenv/shcore/expand"
	"github.com/shenv/shcore/fd"
	"github.com/shenv/shcore/spawn"
)

// A Runner executes shell statement trees. It can be reused across calls to
// Run, but it is not safe for concurrent use.
type Runner struct {
	env *env.Env
}

// Env exposes the runner's environment, e.g. so a caller can inspect
// variables or the last exit status between Run calls.
func (r *Runner) Env() *env.Env { return r.env }

// RunnerOption configures a Runner being built by New.
type RunnerOption func(*Runner) error

// New builds a Runner. Unset options fall back to the process's own
// working directory and standard streams. Without the Env option, the only
// variables set are PWD and OLDPWD; the process's environment variables are
// not inherited.
func New(opts ...RunnerOption) (*Runner, error) {
	e, err := env.New()
	if err != nil {
		return nil, err
	}
	r := &Runner{env: e}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Env sets the runner's initial variables from "NAME=value" pairs, the same
// shape as os.Environ. A nil vars inherits the real process environment.
func Env(vars []string) RunnerOption {
	return func(r *Runner) error {
		if vars == nil {
			vars = os.Environ()
		}
		for _, kv := range vars {
			name, value, ok := strings.Cut(kv, "=")
			if !ok {
				continue
			}
			if err := r.env.Set(name, expand.Variable{Set: true, Exported: true, Str: value}); err != nil {
				return err
			}
		}
		return nil
	}
}

// Dir sets the runner's initial working directory. An empty path keeps
// whatever New's environment already resolved (the real process's cwd).
func Dir(path string) RunnerOption {
	return func(r *Runner) error {
		if path == "" {
			return nil
		}
		return r.env.Chdir(path)
	}
}

// Params sets the runner's program name ($0) and positional parameters
// ($1, $2, ...). If args is empty, Name0 alone is set.
func Params(name0 string, args ...string) RunnerOption {
	return func(r *Runner) error {
		r.env.SetName0(name0)
		r.env.SetArgs(args)
		return nil
	}
}

// StdIO wires the runner's descriptors 0, 1, and 2. A nil reader or writer
// keeps the real process's corresponding stream. Only an *os.File can be
// wired directly; any other io.Reader/io.Writer is bridged through an
// os.Pipe and a copying goroutine, the same technique os/exec uses for a
// non-file Stdin.
func StdIO(in io.Reader, out, err io.Writer) RunnerOption {
	return func(r *Runner) error {
		if in != nil {
			f, wireErr := asFile(in, false)
			if wireErr != nil {
				return wireErr
			}
			r.env.SetFD(0, fd.New(f))
		}
		if out != nil {
			f, wireErr := asFile(out, true)
			if wireErr != nil {
				return wireErr
			}
			r.env.SetFD(1, fd.New(f))
		}
		if err != nil {
			f, wireErr := asFile(err, true)
			if wireErr != nil {
				return wireErr
			}
			r.env.SetFD(2, fd.New(f))
		}
		return nil
	}
}

// asFile adapts an arbitrary stream to an *os.File, which is what every
// external process needs for its own stdio. writing selects the copy
// direction for the bridging goroutine when v isn't already a file.
func asFile(v any, writing bool) (*os.File, error) {
	if f, ok := v.(*os.File); ok {
		return f, nil
	}
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	if writing {
		w := v.(io.Writer)
		go func() {
			io.Copy(w, pr)
			pr.Close()
		}()
		return pw, nil
	}
	r := v.(io.Reader)
	go func() {
		io.Copy(pw, r)
		pw.Close()
	}()
	return pr, nil
}

// Run executes stmts in order against the runner's environment, updating
// its last exit status as each statement completes. It returns a non-nil
// error only for a fatal failure (per the spawn package's fatal/non-fatal
// taxonomy); a command that merely exits non-zero is reflected in
// r.Env().LastStatus() instead.
func (r *Runner) Run(ctx context.Context, stmts []*ast.Stmt) error {
	for _, stmt := range stmts {
		p2, err := spawn.Stmt(ctx, r.env, stmt)
		if err != nil {
			return err
		}
		st, err := p2.Wait(ctx)
		if err != nil {
			return err
		}
		r.env.SetLastStatus(st)
	}
	return nil
}
