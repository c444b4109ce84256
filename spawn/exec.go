// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package spawn

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/shenv/shcore/env"
	"github.com/shenv/shcore/expand"
)

// lookPath resolves name to an executable path, honoring PATH and the
// current working directory the way a real shell's command lookup does.
func lookPath(e *env.Env, name string) (string, error) {
	if strings.ContainsRune(name, '/') {
		return checkExecutable(e.Dir(), name)
	}
	pathList := filepath.SplitList(e.Get("PATH").Str)
	if len(pathList) == 0 {
		pathList = []string{""}
	}
	for _, dir := range pathList {
		candidate := filepath.Join(dir, name)
		if dir == "" || dir == "." {
			candidate = "." + string(filepath.Separator) + name
		}
		if path, err := checkExecutable(e.Dir(), candidate); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s: executable file not found in $PATH", name)
}

func checkExecutable(cwd, file string) (string, error) {
	if !filepath.IsAbs(file) {
		file = filepath.Join(cwd, file)
	}
	return exec.LookPath(file)
}

// execEnv builds the "NAME=value" slice a child process's environment is
// made from: every currently exported variable.
func execEnv(e *env.Env) []string {
	var out []string
	e.Each(func(name string, vr expand.Variable) bool {
		if vr.Exported {
			out = append(out, name+"="+vr.Str)
		}
		return true
	})
	return out
}

// runExternal launches name with args (args[0] == name) as a child process,
// inheriting e's exported variables, working directory, and fds 0/1/2.
func runExternal(ctx context.Context, e *env.Env, args []string) (PhaseTwo, error) {
	path, err := lookPath(e, args[0])
	if err != nil {
		return nil, &CommandNotFoundError{Name: args[0]}
	}

	cmd := exec.Cmd{
		Path: path,
		Args: args,
		Env:  execEnv(e),
		Dir:  e.Dir(),
	}
	if f, ok := e.FD(0); ok {
		cmd.Stdin = f.File()
	}
	if f, ok := e.FD(1); ok {
		cmd.Stdout = f.File()
	}
	if f, ok := e.FD(2); ok {
		cmd.Stderr = f.File()
	}

	if err := cmd.Start(); err != nil {
		return nil, &CommandNotFoundError{Name: args[0]}
	}

	return phaseTwoFunc(func(ctx context.Context) (env.ExitStatus, error) {
		stopped := make(chan struct{})
		defer close(stopped)
		go func() {
			select {
			case <-ctx.Done():
				cmd.Process.Signal(syscall.SIGTERM)
			case <-stopped:
			}
		}()

		waitErr := cmd.Wait()
		switch werr := waitErr.(type) {
		case nil:
			return env.Code(0), nil
		case *exec.ExitError:
			if status, ok := werr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
				return env.Signal(int(status.Signal())), nil
			}
			return env.Code(werr.ExitCode()), nil
		default:
			return env.ExitStatus{}, &IOError{Err: waitErr}
		}
	}), nil
}
