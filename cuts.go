// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package cuts

import (
	"fmt"
	"sort"

	"github.com/go-air/gini/z"
)

// Config carries the resource caps.  The caps, not timeouts, are the
// load shedding mechanism: a caller under pressure lowers them or stops
// calling Enumerate.
type Config struct {
	MaxCutSetSize int  // per-variable cut cap
	MaxAux        int  // per-variable definition cap
	MaxInsertions int  // global accepted AddNode cap
	Full          bool // enumerate all variables, not just dirty ones
}

// NewConfig returns the default configuration.
func NewConfig() Config {
	return Config{MaxCutSetSize: 20, MaxAux: 5, MaxInsertions: 20}
}

// OnClause receives one clause as a sequence of literals.  The slice is
// valid only for the duration of the call.
type OnClause func(ms []z.Lit)

// A extracts an and-inverter graph from a solver's clauses and
// enumerates cut sets over it.  The zero value is not usable; use New
// or NewWith.
type A struct {
	cfg         Config
	nodes       [][]node // per-variable alternative definitions
	lits        []z.Lit  // shared child literal buffer
	cuts        []CutSet
	capSize     []int // per-variable cut set cap, relaxable
	lastTouched []int
	numCutCalls int
	numCuts     int
	insertions  int
	roots       []rootPair

	onClauseAdd OnClause
	onClauseDel OnClause
	onCutAdd    OnCut
	onCutDel    OnCut

	cs1, cs2 CutSet  // scratch for n-ary combination
	clause   []z.Lit // scratch clause buffer
}

type rootPair struct {
	v z.Var
	r z.Lit
}

// New creates an A with the default configuration.
func New() *A {
	return NewWith(NewConfig())
}

// NewWith creates an A with configuration cfg.
func NewWith(cfg Config) *A {
	a := &A{cfg: cfg}
	a.reserve(1)
	return a
}

func (a *A) reserve(n int) {
	for len(a.nodes) < n {
		a.nodes = append(a.nodes, nil)
		a.cuts = append(a.cuts, CutSet{})
		a.capSize = append(a.capSize, a.cfg.MaxCutSetSize)
		a.lastTouched = append(a.lastTouched, 0)
	}
}

// AddVar registers v, reserving its slot in all per-variable state and
// seeding its cut set with the trivial self cut.  Registering a known
// variable is a no-op.
func (a *A) AddVar(v z.Var) {
	if v == 0 {
		panic("cuts: null variable")
	}
	a.reserve(int(v) + 1)
	if len(a.nodes[v]) == 0 {
		a.nodes[v] = append(a.nodes[v], varNode(v))
		a.initCutSet(v)
		a.Touch(v)
	}
}

func (a *A) initCutSet(v z.Var) {
	cs := &a.cuts[v]
	cs.reset(a.noteCutDel, v)
	cs.push(a.noteCutAdd, v, unitCut(v))
}

func (a *A) checkVar(v z.Var) {
	if int(v) >= len(a.nodes) || len(a.nodes[v]) == 0 {
		panic(fmt.Sprintf("cuts: unregistered variable %d", v))
	}
}

// AddNode records head.Var() = op(args...), inverted when head is
// negative, as an alternative definition of head's variable.  Head and
// all argument variables must be registered.  The call silently has no
// effect when the definition duplicates a stored one or when the
// insertion caps are reached, except that a definition with fewer
// children may displace a stored larger one.
func (a *A) AddNode(head z.Lit, op Op, args ...z.Lit) {
	v := head.Var()
	a.checkVar(v)
	switch op {
	case OpVar:
		if len(args) != 0 {
			panic("cuts: var definition with children")
		}
		return // AddVar already recorded it
	case OpIte:
		if len(args) != 3 {
			panic("cuts: ite definition without 3 children")
		}
	case OpAnd, OpXor:
	default:
		panic("cuts: bad op")
	}
	for _, m := range args {
		a.checkVar(m.Var())
		if m.Var() == v {
			panic(fmt.Sprintf("cuts: self-referential definition of %d", v))
		}
	}
	off := uint32(len(a.lits))
	a.lits = append(a.lits, args...)
	if op == OpAnd || op == OpXor {
		s := a.lits[off:]
		sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	}
	n := node{sign: !head.IsPos(), op: op, size: uint32(len(args)), off: off}
	a.insertNode(v, n)
}

// insertNode applies the retention policy: duplicates and over-cap
// definitions are dropped, the first real definition replaces the var
// node, and at the per-variable cap a smaller definition displaces the
// largest stored one.
func (a *A) insertNode(v z.Var, n node) {
	ns := a.nodes[v]
	for _, m := range ns {
		if a.eqNode(m, n) {
			return
		}
	}
	if a.insertions >= a.cfg.MaxInsertions {
		return
	}
	switch {
	case ns[0].isVar():
		a.nodes[v][0] = n
	case len(ns) < a.cfg.MaxAux:
		a.nodes[v] = append(a.nodes[v], n)
	default:
		w := -1
		for i, m := range ns {
			if m.size > n.size && (w < 0 || m.size > ns[w].size) {
				w = i
			}
		}
		if w < 0 {
			return
		}
		a.noteNodeDel(v, ns[w])
		a.nodes[v][w] = n
	}
	a.insertions++
	a.Touch(v)
	a.noteNodeAdd(v, n)
}

// SetRoot records r as v's canonical literal.  Stored nodes and cuts
// are rewritten lazily, on the next Enumerate.
func (a *A) SetRoot(v z.Var, r z.Lit) {
	a.checkVar(v)
	a.checkVar(r.Var())
	a.roots = append(a.roots, rootPair{v, r})
}

// Touch marks v dirty for the next enumeration pass.
func (a *A) Touch(v z.Var) {
	a.lastTouched[v] = int(v) + a.numCutCalls*len(a.nodes)
}

func (a *A) touched(v z.Var) bool {
	n := len(a.nodes)
	return a.lastTouched[v]+n >= a.numCutCalls*n
}

func (a *A) touchedNode(v z.Var, n node) bool {
	if a.touched(v) {
		return true
	}
	for i := 0; i < int(n.size); i++ {
		if a.touched(a.child(n, i).Var()) {
			return true
		}
	}
	return false
}

// IncMaxCutSetSize relaxes v's cut cap by 10 and marks it dirty so the
// next pass can use the new headroom.
func (a *A) IncMaxCutSetSize(v z.Var) {
	a.checkVar(v)
	a.capSize[v] += 10
	a.Touch(v)
}

func (a *A) maxCutSetSize(v z.Var) int {
	return a.capSize[v]
}

// OnClauseAdd registers the callback receiving defining clauses of
// accepted definitions.
func (a *A) OnClauseAdd(fn OnClause) { a.onClauseAdd = fn }

// OnClauseDel registers the callback retracting clauses of displaced
// definitions.
func (a *A) OnClauseDel(fn OnClause) { a.onClauseDel = fn }

// OnCutAdd registers a hook observing every cut insertion.
func (a *A) OnCutAdd(fn OnCut) { a.onCutAdd = fn }

// OnCutDel registers a hook observing every cut eviction.
func (a *A) OnCutDel(fn OnCut) { a.onCutDel = fn }

// NumCuts returns the number of live cuts over all variables.
func (a *A) NumCuts() int { return a.numCuts }

func (a *A) noteCutAdd(v z.Var, c *Cut) {
	a.numCuts++
	if a.onCutAdd != nil {
		a.onCutAdd(v, c)
	}
}

func (a *A) noteCutDel(v z.Var, c *Cut) {
	a.numCuts--
	if a.onCutDel != nil {
		a.onCutDel(v, c)
	}
}
