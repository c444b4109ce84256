// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package spawn

import (
	"context"

	"github.com/shenv/shcore/ast"
	"github.com/shenv/shcore/env"
	"github.com/shenv/shcore/expand"
	"github.com/shenv/shcore/pattern"
)

// blockSpawn runs a brace group "{ list; }" in the current environment: no
// subshell isolation, unlike Subshell.
func blockSpawn(ctx context.Context, e *env.Env, b *ast.Block) (PhaseTwo, error) {
	return phaseTwoFunc(func(ctx context.Context) (env.ExitStatus, error) {
		return runSequence(ctx, e, b.Stmts)
	}), nil
}

// subshellSpawn runs "( list )" in a cloned environment, per 4.F.6: neither
// variable nor fd changes are visible outside, and no error escapes.
func subshellSpawn(ctx context.Context, e *env.Env, s *ast.Subshell) (PhaseTwo, error) {
	clone := e.Clone()
	return phaseTwoFunc(func(ctx context.Context) (env.ExitStatus, error) {
		return runSubshellBody(ctx, clone, s.Stmts), nil
	}), nil
}

// ifSpawn tries each guard/body pair in order, falling back to the else
// body (if any) or EXIT_SUCCESS.
func ifSpawn(ctx context.Context, e *env.Env, ic *ast.IfClause) (PhaseTwo, error) {
	return phaseTwoFunc(func(ctx context.Context) (env.ExitStatus, error) {
		for _, pair := range ic.Conds {
			condSt, err := runSequence(ctx, e, pair.Cond)
			if err != nil {
				return env.ExitStatus{}, err
			}
			if condSt.Success() {
				return runSequence(ctx, e, pair.Then)
			}
		}
		if ic.Else != nil {
			return runSequence(ctx, e, ic.Else)
		}
		return env.Code(0), nil
	}), nil
}

// whileSpawn runs a while/until loop, re-evaluating Cond before every
// iteration and stopping early if ctx is cancelled.
func whileSpawn(ctx context.Context, e *env.Env, wc *ast.WhileClause) (PhaseTwo, error) {
	return phaseTwoFunc(func(ctx context.Context) (env.ExitStatus, error) {
		st := env.Code(0)
		for {
			if err := ctx.Err(); err != nil {
				return env.ExitStatus{}, err
			}
			condSt, err := runSequence(ctx, e, wc.Cond)
			if err != nil {
				return env.ExitStatus{}, err
			}
			again := condSt.Success()
			if wc.Until {
				again = !again
			}
			if !again {
				return st, nil
			}
			st, err = runSequence(ctx, e, wc.Do)
			if err != nil {
				return env.ExitStatus{}, err
			}
		}
	}), nil
}

// forSpawn iterates Items (or, if nil, the current positional parameters)
// binding Name to each in turn for the duration of Do, then restoring
// whatever Name held beforehand.
func forSpawn(ctx context.Context, e *env.Env, fc *ast.ForClause) (PhaseTwo, error) {
	return phaseTwoFunc(func(ctx context.Context) (env.ExitStatus, error) {
		var items []string
		if fc.Items == nil {
			items = e.ArgsSlice()
		} else {
			var err error
			items, err = fieldWords(ctx, e, fc.Items)
			if err != nil {
				return env.ExitStatus{}, err
			}
		}

		vr := e.NewVarRestorer()
		defer vr.Restore()

		st := env.Code(0)
		for _, item := range items {
			if err := ctx.Err(); err != nil {
				return env.ExitStatus{}, err
			}
			if err := vr.Set(fc.Name, expand.Variable{Set: true, Str: item}); err != nil {
				return env.ExitStatus{}, &ExpansionError{Err: err}
			}
			var err error
			st, err = runSequence(ctx, e, fc.Do)
			if err != nil {
				return env.ExitStatus{}, err
			}
		}
		return st, nil
	}), nil
}

// caseSpawn matches Word against each item's patterns in order, running
// the first match's body; no match yields EXIT_SUCCESS.
func caseSpawn(ctx context.Context, e *env.Env, cc *ast.CaseClause) (PhaseTwo, error) {
	return phaseTwoFunc(func(ctx context.Context) (env.ExitStatus, error) {
		word, err := wordLiteral(ctx, e, cc.Word)
		if err != nil {
			return env.ExitStatus{}, err
		}
		for _, item := range cc.Items {
			for _, patWord := range item.Patterns {
				pat, err := wordLiteral(ctx, e, patWord)
				if err != nil {
					return env.ExitStatus{}, err
				}
				if pattern.Match(pat, word) {
					return runSequence(ctx, e, item.Stmts)
				}
			}
		}
		return env.Code(0), nil
	}), nil
}

// funcDeclSpawn installs a function definition; it takes effect immediately
// and has no runtime exit status of its own beyond success.
func funcDeclSpawn(ctx context.Context, e *env.Env, fd *ast.FuncDecl) (PhaseTwo, error) {
	e.SetFunc(fd.Name, fd.Body)
	return immediate(env.Code(0)), nil
}
