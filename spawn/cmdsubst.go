// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package spawn

import (
	"context"
	"io"

	"github.com/shenv/shcore/ast"
	"github.com/shenv/shcore/env"
	"github.com/shenv/shcore/fd"
)

// runSequence runs stmts one after another, updating e's last-status after
// each and stopping at the first fatal error. Stmt already swallows its own
// non-fatal errors into EXIT_ERROR, so any error returned here is fatal.
func runSequence(ctx context.Context, e *env.Env, stmts []*ast.Stmt) (env.ExitStatus, error) {
	st := env.Code(0)
	for _, stmt := range stmts {
		p2, err := Stmt(ctx, e, stmt)
		if err != nil {
			return env.ExitStatus{}, err
		}
		st, err = p2.Wait(ctx)
		if err != nil {
			return env.ExitStatus{}, err
		}
		e.SetLastStatus(st)
	}
	return st, nil
}

// runSubshellBody runs stmts against clone and swallows any resulting
// error, fatal or not, into EXIT_ERROR: per 4.F.6, a subshell never poisons
// its parent.
func runSubshellBody(ctx context.Context, clone *env.Env, stmts []*ast.Stmt) env.ExitStatus {
	st, err := runSequence(ctx, clone, stmts)
	if err != nil {
		clone.Report(err)
		return env.Code(1)
	}
	return st
}

// runCmdSubst runs stmts as a command substitution: a subshell whose
// standard output is captured into w. Partial output is preserved even if
// a command inside errors.
func runCmdSubst(ctx context.Context, e *env.Env, w io.Writer, stmts []*ast.Stmt) error {
	p, err := fd.NewPipe()
	if err != nil {
		return &IOError{Err: err}
	}

	clone := e.Clone()
	clone.SetFD(1, p.Write)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer p.Write.Close()
		runSubshellBody(ctx, clone, stmts)
	}()

	_, copyErr := io.Copy(w, p.Read)
	p.Read.Close()
	<-done

	if copyErr != nil {
		return &IOError{Err: copyErr}
	}
	return nil
}
