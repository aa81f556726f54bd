// Package interner deduplicates identifier and literal text behind stable,
// arena-owned byte-slice handles. It is the Go analogue of the original
// front end's page-chained string table (common::stringtable).
package interner

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

const pageSize = 4096

// View is a borrowed handle to interned bytes. Two Views produced by the
// same Interner for equal content hash share the identical slice header;
// Equal compares content, so Views from different Interners holding
// identical text are Equal as well (see Interner.Merge).
type View struct {
	b []byte
}

// Bytes returns the interned content.
func (v View) Bytes() []byte { return v.b }

// String returns a copy of the interned content as a string.
func (v View) String() string { return string(v.b) }

// Equal reports whether two views hold byte-identical content, regardless
// of which Interner produced them.
func (v View) Equal(other View) bool {
	return string(v.b) == string(other.b)
}

func (v View) IsZero() bool { return v.b == nil }

type page struct {
	previous *page
	buf      []byte // len == cap; buf[len(used):] is free
	used     int
}

func newPage(size int) *page {
	if size < pageSize {
		size = pageSize
	}
	return &page{buf: make([]byte, size)}
}

func (p *page) frontier() int { return len(p.buf) - p.used }

func (p *page) alloc(n int) []byte {
	start := p.used
	p.used += n
	return p.buf[start:p.used:p.used]
}

// Interner deduplicates byte content into stable views backed by a
// singly-linked, newest-first chain of arena pages. It is not safe for
// concurrent use - each AST façade owns exactly one, per §5 "String
// interner: owned by a single façade; never shared across threads."
type Interner struct {
	table   map[uint64]View
	current *page
}

// New creates an empty interner with one page already allocated.
func New() *Interner {
	return &Interner{
		table:   make(map[uint64]View),
		current: newPage(pageSize),
	}
}

// Intern returns the stable view for content, copying it into arena storage
// on first occurrence (by content hash) and returning the existing view on
// every subsequent call with equal content. VHDL basic identifiers are
// case-insensitive (LRM §13.3); callers that intern identifier text should
// fold case before calling Intern so that "CLK" and "clk" collide, as
// common::stringtable's caller does for ordinary identifiers while passing
// extended identifiers (\Foo\, case-sensitive) through unfolded.
func (in *Interner) Intern(content []byte) View {
	h := xxhash.Sum64(content)
	if v, ok := in.table[h]; ok {
		return v
	}

	dst := in.allocate(len(content))
	copy(dst, content)
	v := View{b: dst}
	in.table[h] = v
	return v
}

// InternString is a convenience wrapper around Intern for string content.
func (in *Interner) InternString(s string) View {
	return in.Intern([]byte(s))
}

// InternFold lower-cases s before interning, the case-insensitive path used
// for basic identifiers and reserved words.
func (in *Interner) InternFold(s string) View {
	return in.InternString(strings.ToLower(s))
}

// allocate returns n bytes of arena storage, chaining a new page in front
// of current for ordinary requests (preserving history) or, for requests
// larger than twice the page size, splicing a dedicated oversize page in
// behind current so the current page's frontier is undisturbed.
func (in *Interner) allocate(n int) []byte {
	if n <= in.current.frontier() {
		return in.current.alloc(n)
	}
	if n > 2*pageSize {
		oversize := newPage(n)
		oversize.previous = in.current.previous
		in.current.previous = oversize
		return oversize.alloc(n)
	}
	next := newPage(n)
	next.previous = in.current
	in.current = next
	return in.current.alloc(n)
}

// Merge splices other's page chain into this interner's history and empties
// other, extending the lifetime of its content past other's destruction.
// The content-hash table is deliberately not merged: after Merge, strings
// originally interned through other are retrievable only via the Views the
// original caller already holds, not by re-interning equal content through
// the receiver. Merge is for lifetime extension, not deduplication.
func (in *Interner) Merge(other *Interner) {
	if other == nil || other.current == nil {
		return
	}
	tail := other.current
	for tail.previous != nil {
		tail = tail.previous
	}
	tail.previous = in.current.previous
	in.current.previous = other.current
	other.current = nil
	other.table = nil
}
