// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package expand evaluates words and parameter expansions into Fields,
// following the tilde/parameter/field-splitting/assignment rules of a
// POSIX-ish shell.
package expand

import (
	"context"
	"io"

	"github.com/shenv/shcore/ast"
)

// TildeMode controls how aggressively tilde expansion is applied to a word.
type TildeMode int

const (
	// TildeNone disables tilde expansion entirely.
	TildeNone TildeMode = iota
	// TildeFirst expands a leading "~..." prefix only.
	TildeFirst
	// TildeAll expands every "~..." prefix found after a ':', as in
	// PATH-like assignments.
	TildeAll
)

// CmdSubstFunc runs a command substitution's statement list to completion,
// writing its standard output to w. It is supplied by the spawner, since
// expand has no notion of how to execute an ast.Stmt list; this keeps the
// two packages from importing each other.
type CmdSubstFunc func(ctx context.Context, w io.Writer, stmts []*ast.Stmt) error

// Params supplies the positional-parameter and status state that parameter
// expansion needs beyond plain named variables.
type Params struct {
	// Name0 is $0.
	Name0 string
	// Args holds $1 upwards; Args[0] is $1, len(Args) is also $#.
	Args []string
	// LastStatus is $?.
	LastStatus int
	// Pid is $$, the shell's own process id. Zero if not meaningful.
	Pid int
}

// Config carries everything word evaluation needs beyond the word itself.
type Config struct {
	Env WriteEnviron

	TildeExpansion TildeMode

	Params Params

	// CmdSubst executes a command substitution. A nil CmdSubst makes any
	// CmdSubst word part expand to an error.
	CmdSubst CmdSubstFunc

	// home looks up a user's home directory for tilde expansion; tests
	// override this to avoid touching the real system.
	home func(user string) (string, bool)

	// onError, if non-nil, is called with every error evaluation hits,
	// such as a ":?"/"?" parameter expansion firing on an unset or empty
	// parameter. Literal and Fields return the first such error either way.
	onError func(error)
}

// UnsetParameterError is returned (or passed to onError) when a "${p:?msg}"
// style expansion fires because p is unset or empty.
type UnsetParameterError struct {
	Param   string
	Message string
}

func (u UnsetParameterError) Error() string {
	if u.Message != "" {
		return u.Param + ": " + u.Message
	}
	return u.Param + ": parameter not set"
}

// BadSubstitutionError reports a malformed parameter expansion, such as an
// invalid trim pattern.
type BadSubstitutionError struct {
	Param string
	Err   error
}

func (b BadSubstitutionError) Error() string {
	return "bad substitution for " + b.Param + ": " + b.Err.Error()
}

func (b BadSubstitutionError) Unwrap() error { return b.Err }

// evaluator carries the per-call mutable state that a recursive word walk
// needs: the Config plus scratch space and an accumulated error.
type evaluator struct {
	cfg *Config
	ctx context.Context
	ifs string
	err error
}

func (c *Config) newEvaluator(ctx context.Context) *evaluator {
	ifs := " \t\n"
	if vr := c.Env.Get("IFS"); vr.IsSet() {
		ifs = vr.Str
	}
	return &evaluator{cfg: c, ctx: ctx, ifs: ifs}
}

func (e *evaluator) fail(err error) {
	if e.err == nil {
		e.err = err
	}
	if e.cfg.onError != nil {
		e.cfg.onError(err)
	}
}
