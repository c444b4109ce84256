// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package expand

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/shenv/shcore/ast"
)

// chunk is one piece of a word's expansion, tagged with whether it came
// from quoted context (and so must never be split by IFS) and whether a
// field boundary must be forced right after it (used by "$@"'s per-element
// semantics, which always separates fields regardless of quoting).
type chunk struct {
	quoted   bool
	val      string
	boundary bool
}

// Literal evaluates word to a single joined string: quoting is still
// honored for the purpose of parameter/command substitution, but the
// result is never field-split. This is the form used for assignment
// right-hand sides, case patterns, and parameter-substitution argument
// words, matching the "split_fields_further: false" rule those contexts
// share.
func (c *Config) Literal(ctx context.Context, w *ast.Word) (string, error) {
	e := c.newEvaluator(ctx)
	chunks := e.evalWord(w, false)
	if e.err != nil {
		return "", e.err
	}
	var sb strings.Builder
	for i, ch := range chunks {
		sb.WriteString(ch.val)
		if ch.boundary && i < len(chunks)-1 {
			sb.WriteByte(' ')
		}
	}
	return sb.String(), nil
}

// Fields evaluates word into one or more fields, applying IFS field
// splitting to any unquoted portion, and preserving "$@"/"$*" provenance in
// the returned Fields.Kind.
func (c *Config) Fields(ctx context.Context, w *ast.Word) (Fields, error) {
	e := c.newEvaluator(ctx)
	kind := e.wordFieldKind(w)
	chunks := e.evalWord(w, false)
	if e.err != nil {
		return Fields{}, e.err
	}
	vals := e.splitChunks(chunks)
	if len(vals) == 0 {
		return Zero(), nil
	}
	return Fields{Kind: kind, Vals: vals}, nil
}

// wordFieldKind classifies a word ahead of evaluation so the returned
// Fields can carry the right provenance. Only the common "the whole word is
// one parameter expansion of $@ or $*" shape is recognized; anything more
// composite degrades to FieldSplit, same as ordinary word splitting.
func (e *evaluator) wordFieldKind(w *ast.Word) FieldKind {
	if len(w.Parts) != 1 {
		return FieldSplit
	}
	switch p := w.Parts[0].(type) {
	case *ast.ParamExp:
		switch p.Param {
		case "@":
			return FieldAt
		case "*":
			return FieldStar
		}
	case *ast.DblQuoted:
		if len(p.Parts) == 1 {
			if pe, ok := p.Parts[0].(*ast.ParamExp); ok {
				switch pe.Param {
				case "@":
					return FieldAt
				case "*":
					return FieldStar
				}
			}
		}
	}
	return FieldSplit
}

// evalWord walks w's parts, producing the chunk sequence for its
// expansion. quoted forces every chunk produced to be treated as quoted;
// Literal and Fields both pass false, and DblQuoted parts mark their own
// nested chunks as quoted.
func (e *evaluator) evalWord(w *ast.Word, quoted bool) []chunk {
	if w == nil {
		return nil
	}
	var out []chunk
	for i, part := range w.Parts {
		out = append(out, e.evalWordPart(part, quoted, i == 0)...)
	}
	return out
}

func (e *evaluator) evalWordPart(part ast.WordPart, quoted, atWordStart bool) []chunk {
	switch p := part.(type) {
	case *ast.Lit:
		val := p.Value
		if !quoted && atWordStart {
			val = e.applyTilde(val)
		}
		return []chunk{{quoted: quoted, val: val}}
	case *ast.SglQuoted:
		return []chunk{{quoted: true, val: p.Value}}
	case *ast.DblQuoted:
		var out []chunk
		for _, inner := range p.Parts {
			out = append(out, e.evalWordPart(inner, true, false)...)
		}
		return out
	case *ast.ParamExp:
		return e.paramExpChunks(p, quoted)
	case *ast.CmdSubst:
		out, err := e.runCmdSubst(p)
		if err != nil {
			e.fail(err)
			return nil
		}
		return []chunk{{quoted: quoted, val: out}}
	default:
		return nil
	}
}

// runCmdSubst executes a command substitution and trims trailing newlines
// from its output, as POSIX requires.
func (e *evaluator) runCmdSubst(cs *ast.CmdSubst) (string, error) {
	if e.cfg.CmdSubst == nil {
		return "", &BadSubstitutionError{Param: "$(...)", Err: errNoCmdSubst}
	}
	var buf strings.Builder
	if err := e.cfg.CmdSubst(e.ctx, &buf, cs.Stmts); err != nil {
		return "", err
	}
	s := strings.TrimRight(buf.String(), "\r\n")
	return s, nil
}

var errNoCmdSubst = errNoCmdSubstError{}

type errNoCmdSubstError struct{}

func (errNoCmdSubstError) Error() string { return "command substitution is not supported here" }

func (e *evaluator) ifsRune(r rune) bool {
	for _, r2 := range e.ifs {
		if r == r2 {
			return true
		}
	}
	return false
}

// splitChunks performs IFS field splitting over chunks: quoted chunks pass
// through whole, unquoted chunks are cut on IFS runs, and a chunk flagged
// boundary always forces the current field to end right after it (even if
// empty), which is how "$@" keeps each positional parameter as its own
// field.
func (e *evaluator) splitChunks(chunks []chunk) []string {
	var fields []string
	var cur strings.Builder
	any := false
	push := func() {
		fields = append(fields, cur.String())
		cur.Reset()
		any = false
	}
	for _, ch := range chunks {
		if ch.quoted {
			cur.WriteString(ch.val)
			any = true
		} else {
			start := 0
			for i := 0; i < len(ch.val); {
				r, size := utf8.DecodeRuneInString(ch.val[i:])
				if e.ifsRune(r) {
					if i > start {
						cur.WriteString(ch.val[start:i])
						any = true
					}
					if any {
						push()
					}
					start = i + size
				}
				i += size
			}
			if start < len(ch.val) {
				cur.WriteString(ch.val[start:])
				any = true
			}
		}
		if ch.boundary {
			push()
		}
	}
	if any {
		push()
	}
	return fields
}
