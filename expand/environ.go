// Copyright (c) 2018, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package expand

import (
	"cmp"
	"slices"
	"strings"
)

// Variable describes a shell variable: a name bound to a single scalar
// string value, plus the attributes that matter to the rest of the core
// (whether it's exported to spawned programs, whether it can be
// reassigned).
//
// Unlike the wider ecosystem's indexed/associative arrays, this core only
// ever deals in scalar values; callers needing richer structure build it on
// top of Str.
type Variable struct {
	// Set is true when the variable has been assigned a value, which may
	// be empty. The zero Variable is unset.
	Set bool

	Exported bool
	ReadOnly bool

	Str string
}

// IsSet reports whether the variable has been assigned a value.
func (v Variable) IsSet() bool { return v.Set }

// String returns the variable's scalar value, or "" if unset.
func (v Variable) String() string { return v.Str }

// Environ is the base interface for a shell's environment: fetching
// variables by name and iterating over all currently set ones.
type Environ interface {
	// Get retrieves a variable by name. Use Variable.IsSet to check
	// whether it is actually set, since a zero Variable is returned for
	// names that aren't.
	Get(name string) Variable

	// Each calls fn once per currently set variable. Iteration stops
	// early if fn returns false. Names need not be unique or sorted; if a
	// name repeats, the latest call wins.
	//
	// Each must yield every exported variable, since it is how the
	// spawner builds a child process's environment.
	Each(fn func(name string, vr Variable) bool)
}

// WriteEnviron extends Environ with mutation: setting and unsetting
// variables.
type WriteEnviron interface {
	Environ

	// Set assigns name to vr. Passing a Variable with !vr.IsSet() unsets
	// name. Set returns an error if name is empty or if name is
	// currently read-only.
	Set(name string, vr Variable) error
}

// FuncEnviron adapts a function from name to value into an Environ. An
// empty string returned by fn is treated as "unset". All variables are
// reported as exported. Each is a no-op, since fn can't be iterated.
func FuncEnviron(fn func(string) string) Environ {
	return funcEnviron(fn)
}

type funcEnviron func(string) string

func (f funcEnviron) Get(name string) Variable {
	value := f(name)
	if value == "" {
		return Variable{}
	}
	return Variable{Set: true, Exported: true, Str: value}
}

func (f funcEnviron) Each(func(name string, vr Variable) bool) {}

// ListEnviron returns an Environ built from "name=value" pairs, as used to
// bootstrap a process's environment from os.Environ(). All variables are
// exported. If a name repeats, the last pair wins.
func ListEnviron(pairs ...string) Environ {
	list := slices.Clone(pairs)

	slices.SortStableFunc(list, func(a, b string) int {
		isep := strings.IndexByte(a, '=')
		jsep := strings.IndexByte(b, '=')
		if isep < 0 {
			isep = len(a)
		}
		if jsep < 0 {
			jsep = len(b)
		}
		return strings.Compare(a[:isep], b[:jsep])
	})

	last := ""
	for i := 0; i < len(list); {
		name, _, ok := strings.Cut(list[i], "=")
		if name == "" || !ok {
			list = slices.Delete(list, i, i+1)
			continue
		}
		if last == name {
			list = slices.Delete(list, i-1, i)
			continue
		}
		last = name
		i++
	}
	return listEnviron(list)
}

type listEnviron []string

func (l listEnviron) Get(name string) Variable {
	eqpos := len(name)
	endpos := len(name) + 1
	i, ok := slices.BinarySearchFunc(l, name, func(l, name string) int {
		if len(l) < endpos {
			return strings.Compare(l, name)
		}
		c := strings.Compare(l[:eqpos], name)
		if c == 0 {
			return cmp.Compare(l[eqpos], '=')
		}
		return c
	})
	if ok {
		return Variable{Set: true, Exported: true, Str: l[i][endpos:]}
	}
	return Variable{}
}

func (l listEnviron) Each(fn func(name string, vr Variable) bool) {
	for _, pair := range l {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			panic("expand.listEnviron: malformed name-value pair: " + pair)
		}
		if !fn(name, Variable{Set: true, Exported: true, Str: value}) {
			return
		}
	}
}
