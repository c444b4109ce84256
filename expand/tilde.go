// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package expand

import (
	"os/user"
	"strings"
)

// lookupHome resolves user (empty meaning the invoking user) to a home
// directory, via e.cfg.home if the caller supplied one for testing, falling
// back to os/user otherwise.
func (e *evaluator) lookupHome(name string) (string, bool) {
	if e.cfg.home != nil {
		return e.cfg.home(name)
	}
	if name == "" {
		if u, err := user.Current(); err == nil {
			return u.HomeDir, true
		}
		return "", false
	}
	if u, err := user.Lookup(name); err == nil {
		return u.HomeDir, true
	}
	return "", false
}

// applyTilde applies tilde expansion to lit according to mode, treating lit
// as the literal text produced so far by joining a word's unquoted literal
// parts (tilde expansion only ever applies to unquoted, unexpanded text at
// the very start of a word, or after a ':' in TildeAll mode).
func (e *evaluator) applyTilde(lit string) string {
	switch e.cfg.TildeExpansion {
	case TildeFirst:
		if strings.HasPrefix(lit, "~") {
			return e.expandOneTilde(lit)
		}
		return lit
	case TildeAll:
		var sb strings.Builder
		start := 0
		for start < len(lit) {
			idx := strings.IndexByte(lit[start:], ':')
			segEnd := len(lit)
			if idx >= 0 {
				segEnd = start + idx
			}
			seg := lit[start:segEnd]
			if strings.HasPrefix(seg, "~") {
				sb.WriteString(e.expandOneTilde(seg))
			} else {
				sb.WriteString(seg)
			}
			if idx >= 0 {
				sb.WriteByte(':')
				start = segEnd + 1
			} else {
				start = segEnd
			}
		}
		return sb.String()
	default:
		return lit
	}
}

// expandOneTilde expands a single "~name[/rest]" token, leaving the part
// after the first '/' untouched.
func (e *evaluator) expandOneTilde(tok string) string {
	name, rest, hasSlash := strings.Cut(tok[1:], "/")
	if i := strings.IndexAny(name, "*?[\\"); i >= 0 {
		return tok
	}
	home, ok := e.lookupHome(name)
	if !ok {
		return tok
	}
	if hasSlash {
		return home + "/" + rest
	}
	return home
}
