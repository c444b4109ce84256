// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package builtin implements the small set of commands the core runs
// in-process rather than as external processes: ":", "true", "false",
// "shift", and "echo".
package builtin

import (
	"context"

	"github.com/shenv/shcore/env"
)

// Func runs a builtin against e with the given argument vector (args[0] is
// the builtin's own name). It returns the exit status the builtin
// completes with; an error is only returned for a failure the caller
// should treat as a spawn-level error rather than a plain non-zero status.
type Func func(ctx context.Context, e *env.Env, args []string) (env.ExitStatus, error)

var registry = map[string]Func{
	":":     colon,
	"true":  trueCmd,
	"false": falseCmd,
	"shift": shift,
	"echo":  echo,
}

// Lookup returns the Func registered under name, if any.
func Lookup(name string) (Func, bool) {
	f, ok := registry[name]
	return f, ok
}

func colon(context.Context, *env.Env, []string) (env.ExitStatus, error) {
	return env.Code(0), nil
}

func trueCmd(context.Context, *env.Env, []string) (env.ExitStatus, error) {
	return env.Code(0), nil
}

func falseCmd(context.Context, *env.Env, []string) (env.ExitStatus, error) {
	return env.Code(1), nil
}
