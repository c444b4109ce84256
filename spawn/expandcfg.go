// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package spawn

import (
	"context"
	"io"

	"github.com/shenv/shcore/ast"
	"github.com/shenv/shcore/env"
	"github.com/shenv/shcore/expand"
)

// expandConfig builds the expand.Config for evaluating words against e,
// wiring command substitution back into this package so "$(...)" can spawn
// and run its own statement list.
func expandConfig(e *env.Env, tilde expand.TildeMode) *expand.Config {
	return &expand.Config{
		Env:            e,
		TildeExpansion: tilde,
		Params: expand.Params{
			Name0:      e.Name0(),
			Args:       e.ArgsSlice(),
			LastStatus: e.LastStatus().AsParam(),
		},
		CmdSubst: func(ctx context.Context, w io.Writer, stmts []*ast.Stmt) error {
			return runCmdSubst(ctx, e, w, stmts)
		},
	}
}

// wordFields field-splits w against e's current state, with first-word
// tilde expansion.
func wordFields(ctx context.Context, e *env.Env, w *ast.Word) (expand.Fields, error) {
	fs, err := expandConfig(e, expand.TildeFirst).Fields(ctx, w)
	if err != nil {
		return expand.Fields{}, &ExpansionError{Err: err}
	}
	return fs, nil
}

// wordLiteral evaluates w as a single joined string with no further field
// splitting, as used for redirection targets and parameter-substitution
// argument words.
func wordLiteral(ctx context.Context, e *env.Env, w *ast.Word) (string, error) {
	s, err := expandConfig(e, expand.TildeFirst).Literal(ctx, w)
	if err != nil {
		return "", &ExpansionError{Err: err}
	}
	return s, nil
}

// wordAssignValue evaluates w the way a "NAME=word" assignment does:
// tilde expansion everywhere a ':' introduces a new path segment, no
// further field splitting, then joined per expand.Fields.Join semantics.
func wordAssignValue(ctx context.Context, e *env.Env, w *ast.Word) (string, error) {
	s, err := expandConfig(e, expand.TildeAll).Literal(ctx, w)
	if err != nil {
		return "", &ExpansionError{Err: err}
	}
	return s, nil
}

// fieldWords field-splits and flattens a whole word list, as used for a
// simple command's argument vector or a for-loop's item list.
func fieldWords(ctx context.Context, e *env.Env, words []*ast.Word) ([]string, error) {
	var out []string
	for _, w := range words {
		fs, err := wordFields(ctx, e, w)
		if err != nil {
			return nil, err
		}
		out = append(out, fs.Strings()...)
	}
	return out, nil
}
