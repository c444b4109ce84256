// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package spawn runs an ast.Stmt tree against an env.Env: simple commands,
// pipelines, and-or lists, compound commands, functions, and command/
// subshell substitution.
//
// Every spawnable node follows a two-phase contract: Spawn does the work
// that has to happen up front (redirection, assignment, variable/function
// lookup, pipe wiring, and running builtins) and returns a PhaseTwo that the
// caller waits on. The split exists only in the API shape: nothing in the
// PhaseTwo interface takes an *env.Env, but a PhaseTwo is not detached from
// the environment it was spawned with. Statements report errors through it
// during Wait, and brace groups, if/while/for/case clauses and and-or lists
// run their bodies against it (spawning, assigning variables, and setting
// the last status) only once Wait is called.
package spawn

import (
	"context"

	"github.com/shenv/shcore/env"
)

// PhaseTwo is the second half of a spawned command: the part that is
// waited on, concurrently with sibling pipeline stages (each of which runs
// against its own cloned environment). It may still read and mutate the
// environment it was spawned with until Wait returns; see the package doc.
type PhaseTwo interface {
	// Wait blocks until the command finishes (or ctx is done) and reports
	// its exit status. Wait must be called at most once.
	Wait(ctx context.Context) (env.ExitStatus, error)
}

// Spawnable is anything that can be spawned against an environment.
type Spawnable interface {
	Spawn(ctx context.Context, e *env.Env) (PhaseTwo, error)
}

// spawnableFunc adapts a plain function to Spawnable.
type spawnableFunc func(ctx context.Context, e *env.Env) (PhaseTwo, error)

func (f spawnableFunc) Spawn(ctx context.Context, e *env.Env) (PhaseTwo, error) { return f(ctx, e) }

// phaseTwoFunc adapts a plain function to PhaseTwo.
type phaseTwoFunc func(ctx context.Context) (env.ExitStatus, error)

func (f phaseTwoFunc) Wait(ctx context.Context) (env.ExitStatus, error) { return f(ctx) }

// immediate returns a PhaseTwo that resolves to st without doing anything
// further, for command kinds whose work is entirely done during phase one
// (e.g. a function definition, or a phase one that already failed and was
// swallowed into EXIT_ERROR).
func immediate(st env.ExitStatus) PhaseTwo {
	return phaseTwoFunc(func(context.Context) (env.ExitStatus, error) { return st, nil })
}

// SwallowNonFatal wraps s so that a non-fatal error from either phase is
// reported via the environment's Reporter and replaced with EXIT_ERROR,
// while a fatal error still propagates. This is the mechanism by which a
// sequence of commands, or a subshell, keeps going after one command fails
// for an ordinary reason (command not found, broken pipe, bad
// substitution) but still aborts on something the runner can't recover
// from.
func SwallowNonFatal(s Spawnable) Spawnable {
	return spawnableFunc(func(ctx context.Context, e *env.Env) (PhaseTwo, error) {
		p2, err := s.Spawn(ctx, e)
		if err != nil {
			if IsFatal(err) {
				return nil, err
			}
			e.Report(err)
			return immediate(env.Code(1)), nil
		}
		return phaseTwoFunc(func(ctx context.Context) (env.ExitStatus, error) {
			st, err := p2.Wait(ctx)
			if err != nil {
				if IsFatal(err) {
					return env.ExitStatus{}, err
				}
				e.Report(err)
				return env.Code(1), nil
			}
			return st, nil
		}), nil
	})
}
