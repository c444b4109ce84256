// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package builtin

import (
	"context"
	"strconv"
	"strings"

	"github.com/shenv/shcore/env"
)

func echo(_ context.Context, e *env.Env, args []string) (env.ExitStatus, error) {
	rest := args[1:]
	newline, doExpand := true, false

flags:
	for len(rest) > 0 {
		arg := rest[0]
		if len(arg) < 2 || arg[0] != '-' {
			break
		}
		for _, c := range arg[1:] {
			switch c {
			case 'n', 'e', 'E':
			default:
				break flags
			}
		}
		for _, c := range arg[1:] {
			switch c {
			case 'n':
				newline = false
			case 'e':
				doExpand = true
			case 'E':
				doExpand = false
			}
		}
		rest = rest[1:]
	}

	var sb strings.Builder
	stop := false
	for i, arg := range rest {
		if stop {
			break
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		if doExpand {
			s, terminated := echoExpand(arg)
			sb.WriteString(s)
			if terminated {
				stop = true
			}
		} else {
			sb.WriteString(arg)
		}
	}
	if newline && !stop {
		sb.WriteByte('\n')
	}

	if f, ok := e.FD(1); ok {
		if _, err := f.Write([]byte(sb.String())); err != nil {
			return env.ExitStatus{}, &writeError{err}
		}
	}
	return env.Code(0), nil
}

type writeError struct{ err error }

func (w *writeError) Error() string { return w.err.Error() }
func (w *writeError) Unwrap() error { return w.err }

// Fatal reports false: a broken pipe on echo's output is an ordinary
// non-fatal I/O failure, matched by the caller's own error classification
// rather than this package depending on spawn's taxonomy directly.
func (w *writeError) Fatal() bool { return false }

// echoExpand processes one argument's backslash escapes under "-e",
// returning the expanded text and whether a "\c" was hit (which suppresses
// all further output, including the trailing newline).
func echoExpand(s string) (string, bool) {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			sb.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'c':
			return sb.String(), true
		case 'e':
			sb.WriteByte(0x1b)
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'v':
			sb.WriteByte('\v')
		case '\\':
			sb.WriteByte('\\')
		case 'x':
			n, width := hexDigits(s[i+1:], 2)
			if width == 0 {
				sb.WriteByte('\\')
				sb.WriteByte('x')
				continue
			}
			sb.WriteByte(byte(n))
			i += width
		case '0', '1', '2', '3', '4', '5', '6', '7':
			n, width := octalDigits(s[i:], 3)
			sb.WriteByte(byte(n))
			i += width - 1
		default:
			sb.WriteByte('\\')
			sb.WriteByte(s[i])
		}
	}
	return sb.String(), false
}

func hexDigits(s string, max int) (int, int) {
	n := 0
	i := 0
	for i < max && i < len(s) && isHexDigit(s[i]) {
		v, _ := strconv.ParseUint(string(s[i]), 16, 8)
		n = n*16 + int(v)
		i++
	}
	return n, i
}

func octalDigits(s string, max int) (int, int) {
	n := 0
	i := 0
	for i < max && i < len(s) && s[i] >= '0' && s[i] <= '7' {
		n = n*8 + int(s[i]-'0')
		i++
	}
	return n, i
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
