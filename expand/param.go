// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package expand

import (
	"strconv"
	"strings"

	"github.com/shenv/shcore/ast"
	"github.com/shenv/shcore/pattern"
)

// paramExpChunks evaluates a parameter expansion into the chunk(s) it
// contributes to the surrounding word. "@" fans out into one chunk per
// positional parameter, each with boundary set, since that parameter always
// separates fields regardless of quoting; everything else yields exactly
// one chunk.
func (e *evaluator) paramExpChunks(pe *ast.ParamExp, quoted bool) []chunk {
	name := pe.Param

	if name == "@" || name == "*" {
		args := e.cfg.Params.Args
		if pe.Length {
			n := 0
			for _, a := range args {
				n += runeLen(a)
			}
			return []chunk{{quoted: quoted, val: strconv.Itoa(n)}}
		}
		if pe.Exp != nil {
			// Substitution operators apply to $@/$* as a whole via its
			// joined string form, matching the teacher's elems-rejoin
			// behavior for array-like parameters.
			joined := strings.Join(args, " ")
			out, err := e.applySubst(pe, name, len(args) > 0, joined)
			if err != nil {
				e.fail(err)
				return nil
			}
			return []chunk{{quoted: quoted, val: out}}
		}
		if name == "@" {
			if len(args) == 0 {
				return nil
			}
			out := make([]chunk, len(args))
			for i, a := range args {
				out[i] = chunk{quoted: quoted, val: a, boundary: true}
			}
			return out
		}
		// "*": join on IFS's first character for the joined-field case.
		sep := " "
		if e.ifs != "" {
			sep = e.ifs[:1]
		}
		return []chunk{{quoted: quoted, val: strings.Join(args, sep)}}
	}

	set, str := e.lookupScalar(name)

	if pe.Length {
		return []chunk{{quoted: quoted, val: strconv.Itoa(runeLen(str))}}
	}
	if pe.Exp != nil {
		out, err := e.applySubst(pe, name, set, str)
		if err != nil {
			e.fail(err)
			return nil
		}
		return []chunk{{quoted: quoted, val: out}}
	}
	return []chunk{{quoted: quoted, val: str}}
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// lookupScalar resolves a parameter name to (set, value), covering the
// special parameters $0, $1.., $?, $$ alongside ordinary named variables.
func (e *evaluator) lookupScalar(name string) (set bool, str string) {
	switch name {
	case "0":
		return true, e.cfg.Params.Name0
	case "?":
		return true, strconv.Itoa(e.cfg.Params.LastStatus)
	case "$":
		return true, strconv.Itoa(e.cfg.Params.Pid)
	case "#":
		return true, strconv.Itoa(len(e.cfg.Params.Args))
	case "-", "!":
		// Job control and option-string state are out of scope; these
		// always read as unset.
		return false, ""
	}
	if n, err := strconv.Atoi(name); err == nil && n >= 1 {
		if n <= len(e.cfg.Params.Args) {
			return true, e.cfg.Params.Args[n-1]
		}
		return false, ""
	}
	vr := e.cfg.Env.Get(name)
	return vr.IsSet(), vr.Str
}

// applySubst implements the ${param<op>word} substitution/trim forms.
func (e *evaluator) applySubst(pe *ast.ParamExp, name string, set bool, str string) (string, error) {
	exp := pe.Exp
	switch exp.Op {
	case ast.SubstColPlus:
		if str == "" {
			return str, nil
		}
		fallthrough
	case ast.SubstPlus:
		if set {
			return e.cfg.Literal(e.ctx, exp.Word)
		}
		return str, nil
	case ast.SubstMinus:
		if set {
			return str, nil
		}
		fallthrough
	case ast.SubstColMinus:
		if str == "" {
			return e.cfg.Literal(e.ctx, exp.Word)
		}
		return str, nil
	case ast.SubstQuest:
		if set {
			return str, nil
		}
		fallthrough
	case ast.SubstColQuest:
		if str == "" {
			msg, err := e.cfg.Literal(e.ctx, exp.Word)
			if err != nil {
				return "", err
			}
			return "", UnsetParameterError{Param: name, Message: msg}
		}
		return str, nil
	case ast.SubstAssgn:
		if set {
			return str, nil
		}
		fallthrough
	case ast.SubstColAssgn:
		if str == "" {
			val, err := e.cfg.Literal(e.ctx, exp.Word)
			if err != nil {
				return "", err
			}
			if err := e.cfg.Env.Set(name, Variable{Set: true, Str: val}); err != nil {
				return "", err
			}
			return val, nil
		}
		return str, nil
	case ast.RemSmallPrefix, ast.RemLargePrefix,
		ast.RemSmallSuffix, ast.RemLargeSuffix:
		pat, err := e.cfg.Literal(e.ctx, exp.Word)
		if err != nil {
			return "", err
		}
		greedy := exp.Op == ast.RemLargePrefix || exp.Op == ast.RemLargeSuffix
		isSuffix := exp.Op == ast.RemSmallSuffix || exp.Op == ast.RemLargeSuffix
		if isSuffix {
			trimmed, err := pattern.TrimSuffix(str, pat, greedy)
			if err != nil {
				return "", BadSubstitutionError{Param: name, Err: err}
			}
			return trimmed, nil
		}
		trimmed, err := pattern.TrimPrefix(str, pat, greedy)
		if err != nil {
			return "", BadSubstitutionError{Param: name, Err: err}
		}
		return trimmed, nil
	default:
		return str, nil
	}
}
