// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package spawn

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/shenv/shcore/ast"
	"github.com/shenv/shcore/env"
	"github.com/shenv/shcore/fd"
)

// andOrSpawn implements 4.F.3: left-associative "&&"/"||". The right side
// only runs if the connector and the left side's status agree ("&&" runs
// on success, "||" runs on failure); the final status is whichever side
// last ran.
func andOrSpawn(ctx context.Context, e *env.Env, bc *ast.BinaryCmd) (PhaseTwo, error) {
	return phaseTwoFunc(func(ctx context.Context) (env.ExitStatus, error) {
		leftP2, err := Stmt(ctx, e, bc.X)
		if err != nil {
			return env.ExitStatus{}, err
		}
		leftSt, err := leftP2.Wait(ctx)
		if err != nil {
			return env.ExitStatus{}, err
		}
		e.SetLastStatus(leftSt)

		runRight := (bc.Op == ast.AndStmt) == leftSt.Success()
		if !runRight {
			return leftSt, nil
		}

		rightP2, err := Stmt(ctx, e, bc.Y)
		if err != nil {
			return env.ExitStatus{}, err
		}
		rightSt, err := rightP2.Wait(ctx)
		if err != nil {
			return env.ExitStatus{}, err
		}
		e.SetLastStatus(rightSt)
		return rightSt, nil
	}), nil
}

// pipelineSpawn implements 4.F.2 for one pipe stage transition. A chain
// "a | b | c" parses as nested BinaryCmd nodes, so this only ever wires a
// single pipe per call; recursing through Stmt on bc.X handles arbitrarily
// long chains the same way the teacher's statement walker recurses on one
// pipe per BinaryCmd node.
//
// Both sides run against a cloned environment, so neither stage's fd/var
// mutations are visible to the other or to the caller; only the right
// side's descriptor table gains the pipe's read end, and the left side's
// gains the write end (plus the write end on fd 2 too for "|&").
func pipelineSpawn(ctx context.Context, e *env.Env, bc *ast.BinaryCmd) (PhaseTwo, error) {
	p, err := fd.NewPipe()
	if err != nil {
		return nil, &IOError{Err: err}
	}

	leftEnv := e.Clone()
	leftEnv.SetFD(1, p.Write)
	if bc.Op == ast.PipeAll {
		leftEnv.SetFD(2, p.Write)
	}
	rightEnv := e.Clone()
	rightEnv.SetFD(0, p.Read)

	leftP2, err := Stmt(ctx, leftEnv, bc.X)
	if err != nil {
		p.Close()
		return nil, err
	}
	rightP2, err := Stmt(ctx, rightEnv, bc.Y)
	if err != nil {
		p.Close()
		return nil, err
	}

	return phaseTwoFunc(func(ctx context.Context) (env.ExitStatus, error) {
		var g errgroup.Group
		g.Go(func() error {
			_, err := leftP2.Wait(ctx)
			p.Write.Close()
			// The left stage's own error (if non-fatal) already became
			// its own EXIT_ERROR inside Stmt; only a fatal error reaches
			// here, and per 4.F.2 it must not short-circuit the other
			// stage, so it's reported rather than propagated.
			if err != nil {
				e.Report(err)
			}
			return nil
		})

		rightSt, rightErr := rightP2.Wait(ctx)
		p.Read.Close()
		g.Wait()

		if rightErr != nil {
			return env.ExitStatus{}, rightErr
		}
		return rightSt, nil
	}), nil
}
