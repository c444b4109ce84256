// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package env

import (
	"github.com/shenv/shcore/expand"
	"github.com/shenv/shcore/fd"
)

// VarRestorer records variable assignments made against an Env so they can
// be undone later, in reverse order, the way a function call's local
// variables or a command's leading "NAME=val" assignments are undone once
// that scope ends.
//
// A VarRestorer is append-only and single-use: once Restore runs, the log is
// cleared and further Restore calls are no-ops.
type VarRestorer struct {
	env     *Env
	entries []varEntry
}

type varEntry struct {
	name string
	prev expand.Variable
	had  bool
}

// NewVarRestorer returns a restorer that records changes made through it
// against e.
func (e *Env) NewVarRestorer() *VarRestorer {
	return &VarRestorer{env: e}
}

// Set assigns name to vr through the restorer, recording name's previous
// value (or absence) so Restore can undo it.
func (r *VarRestorer) Set(name string, vr expand.Variable) error {
	prev, had := r.env.vars[name]
	if err := r.env.Set(name, vr); err != nil {
		return err
	}
	r.entries = append(r.entries, varEntry{name: name, prev: prev, had: had})
	return nil
}

// Restore undoes every Set made through r, most recent first, then clears
// the log. Restoring bypasses the read-only check, since a read-only
// variable set earlier in the same scope must still be unwindable.
func (r *VarRestorer) Restore() {
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if e.had {
			r.env.setRaw(e.name, e.prev)
		} else {
			r.env.setRaw(e.name, expand.Variable{})
		}
	}
	r.entries = nil
}

// FileDescRestorer records descriptor-table swaps made against an Env so
// they can be undone later, the way a command's redirections are undone
// once that command finishes.
type FileDescRestorer struct {
	env     *Env
	entries []fdEntry
}

type fdEntry struct {
	n    int
	prev *fd.FileDesc
	had  bool
}

// NewFileDescRestorer returns a restorer that records descriptor changes
// made against e.
func (e *Env) NewFileDescRestorer() *FileDescRestorer {
	return &FileDescRestorer{env: e}
}

// SetFD installs f as descriptor n through the restorer, recording n's
// previous binding so Restore can put it back.
func (r *FileDescRestorer) SetFD(n int, f *fd.FileDesc) {
	prev, had := r.env.fds[n]
	r.env.SetFD(n, f)
	r.entries = append(r.entries, fdEntry{n: n, prev: prev, had: had})
}

// Restore undoes every SetFD made through r, most recent first, then clears
// the log.
func (r *FileDescRestorer) Restore() {
	for i := len(r.entries) - 1; i >= 0; i-- {
		e := r.entries[i]
		if e.had {
			r.env.SetFD(e.n, e.prev)
		} else {
			r.env.SetFD(e.n, nil)
		}
	}
	r.entries = nil
}
