// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package spawn

import "golang.org/x/xerrors"

// FatalError is implemented by errors that know whether they should abandon
// the enclosing sequence/pipeline (Fatal() == true) or merely turn the
// current command into EXIT_ERROR while its siblings keep running.
type FatalError interface {
	error
	Fatal() bool
}

// IsFatal classifies err. Errors that don't implement FatalError are
// treated as fatal: every error this package itself produces is tagged one
// way or the other, so an unclassified error reaching here likely comes
// from somewhere that was never taught about the non-fatal categories, and
// propagating it is the safer default.
func IsFatal(err error) bool {
	var fe FatalError
	if xerrors.As(err, &fe) {
		return fe.Fatal()
	}
	return true
}

// IOError wraps a read/write failure on a descriptor: non-fatal by
// default (a broken pipe on write, an error on read).
type IOError struct{ Err error }

func (e *IOError) Error() string { return e.Err.Error() }
func (e *IOError) Unwrap() error { return e.Err }
func (e *IOError) Fatal() bool   { return false }

// ExpansionError wraps a word/parameter evaluation failure, such as
// "${var?msg}" firing on an unset variable.
type ExpansionError struct{ Err error }

func (e *ExpansionError) Error() string { return e.Err.Error() }
func (e *ExpansionError) Unwrap() error { return e.Err }
func (e *ExpansionError) Fatal() bool   { return false }

// RedirectionError wraps a failure applying a redirection, such as a
// missing file for "<".
type RedirectionError struct{ Err error }

func (e *RedirectionError) Error() string { return e.Err.Error() }
func (e *RedirectionError) Unwrap() error { return e.Err }
func (e *RedirectionError) Fatal() bool   { return false }

// CommandNotFoundError reports that a simple command's name didn't resolve
// to a function, builtin, or executable on PATH.
type CommandNotFoundError struct{ Name string }

func (e *CommandNotFoundError) Error() string { return e.Name + ": command not found" }
func (e *CommandNotFoundError) Fatal() bool   { return false }

// UnimplementedError reports a construct this core intentionally doesn't
// support, such as job control. Unlike the other categories, it's fatal:
// there's no sensible EXIT_ERROR to fall back to for code the runner
// genuinely can't run.
type UnimplementedError struct{ Msg string }

func (e *UnimplementedError) Error() string { return e.Msg }
func (e *UnimplementedError) Fatal() bool   { return true }

// Fatal wraps err as an explicitly fatal error, for callers that want to
// force propagation regardless of err's own classification.
type Fatal struct{ Err error }

func (e *Fatal) Error() string { return e.Err.Error() }
func (e *Fatal) Unwrap() error { return e.Err }
func (e *Fatal) Fatal() bool   { return true }
