// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package spawn

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shenv/shcore/ast"
	"github.com/shenv/shcore/env"
	"github.com/shenv/shcore/fd"
)

func applyRedirects(ctx context.Context, e *env.Env, fr *env.FileDescRestorer, redirs []*ast.Redirect) error {
	for _, r := range redirs {
		if err := applyRedirect(ctx, e, fr, r); err != nil {
			return err
		}
	}
	return nil
}

func redirDefaultFD(op ast.RedirOperator) int {
	if op == ast.RdrIn || op == ast.DplIn {
		return 0
	}
	return 1
}

func applyRedirect(ctx context.Context, e *env.Env, fr *env.FileDescRestorer, r *ast.Redirect) error {
	n := redirDefaultFD(r.Op)
	if r.N != nil {
		n = *r.N
	}

	switch r.Op {
	case ast.RdrOut, ast.AppOut, ast.RdrIn, ast.RdrAll, ast.AppAll:
		path, err := wordLiteral(ctx, e, r.Word)
		if err != nil {
			return err
		}
		var f *fd.FileDesc
		switch r.Op {
		case ast.RdrIn:
			f, err = fd.Open(path, fd.ReadOnly)
		case ast.AppOut, ast.AppAll:
			f, err = fd.OpenAppend(path)
		default:
			f, err = fd.Open(path, fd.WriteOnly)
		}
		if err != nil {
			return &RedirectionError{Err: err}
		}
		fr.SetFD(n, f)
		if r.Op == ast.RdrAll || r.Op == ast.AppAll {
			dup, err := f.Dup()
			if err != nil {
				return &RedirectionError{Err: err}
			}
			fr.SetFD(2, dup)
		}
		return nil

	case ast.DplOut, ast.DplIn:
		target, err := wordLiteral(ctx, e, r.Word)
		if err != nil {
			return err
		}
		if target == "-" {
			fr.SetFD(n, nil)
			return nil
		}
		tn, convErr := strconv.Atoi(target)
		if convErr != nil {
			return &RedirectionError{Err: fmt.Errorf("%s: invalid file descriptor", target)}
		}
		src, ok := e.FD(tn)
		if !ok {
			return &RedirectionError{Err: fmt.Errorf("%d: bad file descriptor", tn)}
		}
		dup, err := src.Dup()
		if err != nil {
			return &RedirectionError{Err: err}
		}
		fr.SetFD(n, dup)
		return nil

	default:
		return &RedirectionError{Err: fmt.Errorf("unsupported redirection operator")}
	}
}
