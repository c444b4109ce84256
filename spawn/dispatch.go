// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package spawn

import (
	"context"

	"github.com/shenv/shcore/ast"
	"github.com/shenv/shcore/env"
)

// Stmt spawns a single statement: redirections are applied first (undone
// once the statement's phase two completes), then the statement's command
// is dispatched. Every recursive entry point in this package (sequences,
// pipeline stages, compound-command bodies) calls back through Stmt, so
// the non-fatal-error-swallowing policy in 4.F.7 is applied uniformly
// without every call site needing to remember to wrap it.
func Stmt(ctx context.Context, e *env.Env, stmt *ast.Stmt) (PhaseTwo, error) {
	fr := e.NewFileDescRestorer()
	if err := applyRedirects(ctx, e, fr, stmt.Redirs); err != nil {
		fr.Restore()
		if IsFatal(err) {
			return nil, err
		}
		e.Report(err)
		return immediate(env.Code(1)), nil
	}

	rawP2, rawErr := dispatch(ctx, e, stmt.Cmd)

	if stmt.Negated {
		return negate(rawP2, rawErr, fr), nil
	}

	if rawErr != nil {
		fr.Restore()
		if IsFatal(rawErr) {
			return nil, rawErr
		}
		e.Report(rawErr)
		return immediate(env.Code(1)), nil
	}

	return phaseTwoFunc(func(ctx context.Context) (env.ExitStatus, error) {
		defer fr.Restore()
		st, err := rawP2.Wait(ctx)
		if err != nil {
			if IsFatal(err) {
				return env.ExitStatus{}, err
			}
			e.Report(err)
			return env.Code(1), nil
		}
		return st, nil
	}), nil
}

// negate implements the leading "!" inversion: unlike the ordinary
// non-fatal-only swallow, every error (fatal or not) is swallowed as
// EXIT_SUCCESS, and a successful status is flipped.
func negate(p2 PhaseTwo, err error, fr *env.FileDescRestorer) PhaseTwo {
	if err != nil {
		fr.Restore()
		return immediate(env.Code(0))
	}
	return phaseTwoFunc(func(ctx context.Context) (env.ExitStatus, error) {
		defer fr.Restore()
		st, err := p2.Wait(ctx)
		if err != nil {
			return env.Code(0), nil
		}
		if st.Success() {
			return env.Code(1), nil
		}
		return env.Code(0), nil
	})
}

// dispatch spawns the command-specific part of a statement; redirections
// and negation are handled by Stmt, one layer up.
func dispatch(ctx context.Context, e *env.Env, cmd ast.Command) (PhaseTwo, error) {
	switch x := cmd.(type) {
	case nil:
		return immediate(env.Code(0)), nil
	case *ast.CallExpr:
		return simpleCommandSpawn(ctx, e, x)
	case *ast.BinaryCmd:
		switch x.Op {
		case ast.Pipe, ast.PipeAll:
			return pipelineSpawn(ctx, e, x)
		default:
			return andOrSpawn(ctx, e, x)
		}
	case *ast.Block:
		return blockSpawn(ctx, e, x)
	case *ast.Subshell:
		return subshellSpawn(ctx, e, x)
	case *ast.IfClause:
		return ifSpawn(ctx, e, x)
	case *ast.WhileClause:
		return whileSpawn(ctx, e, x)
	case *ast.ForClause:
		return forSpawn(ctx, e, x)
	case *ast.CaseClause:
		return caseSpawn(ctx, e, x)
	case *ast.FuncDecl:
		return funcDeclSpawn(ctx, e, x)
	default:
		return nil, &UnimplementedError{Msg: "unsupported command node"}
	}
}
