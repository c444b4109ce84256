// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package builtin

import (
	"context"
	"strconv"

	"github.com/shenv/shcore/env"
)

func shift(_ context.Context, e *env.Env, args []string) (env.ExitStatus, error) {
	n := 1
	switch len(args) {
	case 1:
		// args[0] is the builtin's own name; no count given, default to 1.
	case 2:
		v, err := strconv.Atoi(args[1])
		if err != nil || v < 0 {
			return usage(e)
		}
		n = v
	default:
		return usage(e)
	}
	if err := e.Shift(n); err != nil {
		return usage(e)
	}
	return env.Code(0), nil
}

func usage(e *env.Env) (env.ExitStatus, error) {
	if f, ok := e.FD(2); ok {
		f.Write([]byte("shift: usage: shift [n]\n"))
	}
	return env.Code(1), nil
}
