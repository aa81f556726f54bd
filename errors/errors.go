// Copyright 2018 The CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errors holds the diagnostic record shared by the tokenizer,
// parser and binder: a range, a format string and its arguments,
// accumulated per pass into a List.
package errors

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/dj1mm/vhdlstuff-sub000/token"
)

// A Diagnostic is one lexical, parse or semantic complaint. It carries its
// message as a format string plus arguments rather than a pre-rendered
// string so that a future consumer (a hover tooltip, a localized editor) can
// choose how to render it.
type Diagnostic struct {
	Range  token.Range
	format string
	args   []any
}

// New creates a Diagnostic at rng with a printf-style message.
func New(rng token.Range, format string, args ...any) *Diagnostic {
	return &Diagnostic{Range: rng, format: format, args: args}
}

// Msg returns the unformatted message and its arguments.
func (d *Diagnostic) Msg() (string, []any) { return d.format, d.args }

// Error implements the error interface, rendering range and message.
func (d *Diagnostic) Error() string {
	msg := fmt.Sprintf(d.format, d.args...)
	if d.Range.IsValid() {
		return fmt.Sprintf("%s: %s", d.Range, msg)
	}
	return msg
}

// List is an accumulating, sortable collection of diagnostics. The zero
// value is an empty list ready to use; every pass (tokenizer, parser,
// binder) owns one, per §7 "Diagnostics are held by the façade until a
// consumer collects them."
type List []*Diagnostic

// Add appends d, unless an identical (range, message) diagnostic is already
// present - recovery paths in the parser can otherwise re-report the same
// complaint from an enclosing and an inner production.
func (l *List) Add(d *Diagnostic) {
	for _, existing := range *l {
		if existing.Range == d.Range && existing.Error() == d.Error() {
			return
		}
	}
	*l = append(*l, d)
}

// Addf is a convenience wrapper around Add/New.
func (l *List) Addf(rng token.Range, format string, args ...any) {
	l.Add(New(rng, format, args...))
}

// Reset empties the list, keeping its backing array.
func (l *List) Reset() { *l = (*l)[:0] }

// Len reports the number of diagnostics.
func (l List) Len() int { return len(l) }

// Sort orders diagnostics by range, then by message text, so output is
// stable across runs that produce the same diagnostics in different
// discovery order (e.g. two independent recovery paths).
func (l List) Sort() {
	slices.SortFunc(l, func(a, b *Diagnostic) int {
		if c := comparePos(a.Range.Begin, b.Range.Begin); c != 0 {
			return c
		}
		return cmp.Compare(a.Error(), b.Error())
	})
}

func comparePos(a, b token.Position) int {
	if a == b {
		return 0
	}
	if a.Less(b) {
		return -1
	}
	return 1
}

// Err returns l as an error, or nil if l is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

func (l List) Error() string {
	var b strings.Builder
	for i, d := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(d.Error())
	}
	return b.String()
}

// Append returns a new list formed by l followed by other's diagnostics,
// without mutating either input.
func Append(l List, other List) List {
	out := make(List, 0, len(l)+len(other))
	out = append(out, l...)
	out = append(out, other...)
	return out
}
