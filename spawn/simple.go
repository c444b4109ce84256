// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package spawn

import (
	"context"

	"github.com/shenv/shcore/ast"
	"github.com/shenv/shcore/builtin"
	"github.com/shenv/shcore/env"
	"github.com/shenv/shcore/expand"
)

// simpleCommandSpawn implements 4.F.1: apply assignments (their lifetime
// depends on whether a command word follows), field-split the remaining
// words, and dispatch to a function, a builtin, or an external process.
func simpleCommandSpawn(ctx context.Context, e *env.Env, ce *ast.CallExpr) (PhaseTwo, error) {
	args, err := fieldWords(ctx, e, ce.Args)
	if err != nil {
		return nil, err
	}

	if len(args) == 0 {
		// No command word: assignments persist in the current scope.
		for _, as := range ce.Assigns {
			val, err := assignValue(ctx, e, as)
			if err != nil {
				return nil, err
			}
			if err := e.Set(as.Name, expand.Variable{Set: true, Str: val}); err != nil {
				return nil, &ExpansionError{Err: err}
			}
		}
		return immediate(env.Code(0)), nil
	}

	// A command word is present: assignments are exported for the
	// command's duration only, then rolled back once it completes.
	vr := e.NewVarRestorer()
	for _, as := range ce.Assigns {
		val, err := assignValue(ctx, e, as)
		if err != nil {
			vr.Restore()
			return nil, err
		}
		if err := vr.Set(as.Name, expand.Variable{Set: true, Exported: true, Str: val}); err != nil {
			vr.Restore()
			return nil, &ExpansionError{Err: err}
		}
	}

	name := args[0]

	if body, ok := e.Func(name); ok {
		p2, err := invokeFunc(ctx, e, body, args[1:])
		if err != nil {
			vr.Restore()
			return nil, err
		}
		return restoringPhaseTwo(p2, vr), nil
	}

	if fn, ok := builtin.Lookup(name); ok {
		st, err := fn(ctx, e, args)
		vr.Restore()
		if err != nil {
			return nil, err
		}
		return immediate(st), nil
	}

	p2, err := runExternal(ctx, e, args)
	vr.Restore()
	if err != nil {
		return nil, err
	}
	return p2, nil
}

// assignValue evaluates an Assign's right-hand side, or "" for a naked
// "NAME" with no "=value".
func assignValue(ctx context.Context, e *env.Env, as *ast.Assign) (string, error) {
	if as.Value == nil {
		return "", nil
	}
	return wordAssignValue(ctx, e, as.Value)
}

// restoringPhaseTwo wraps p2 so that vr is restored once Wait completes,
// keeping a function's exported command-duration assignments alive for the
// whole call rather than just its phase one.
func restoringPhaseTwo(p2 PhaseTwo, vr *env.VarRestorer) PhaseTwo {
	return phaseTwoFunc(func(ctx context.Context) (env.ExitStatus, error) {
		defer vr.Restore()
		return p2.Wait(ctx)
	})
}

// invokeFunc spawns body with callArgs installed as the positional
// parameters for its duration, restored on return.
func invokeFunc(ctx context.Context, e *env.Env, body *ast.Stmt, callArgs []string) (PhaseTwo, error) {
	prevArgs := e.ArgsSlice()
	e.SetArgs(callArgs)
	p2, err := Stmt(ctx, e, body)
	if err != nil {
		e.SetArgs(prevArgs)
		return nil, err
	}
	return phaseTwoFunc(func(ctx context.Context) (env.ExitStatus, error) {
		defer e.SetArgs(prevArgs)
		return p2.Wait(ctx)
	}), nil
}
