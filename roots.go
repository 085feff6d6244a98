// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package cuts

import (
	"fmt"
	"sort"

	"github.com/go-air/gini/z"
)

// flushRoots rewrites stored nodes and cut leaves onto canonical roots.
// The recorded pairs are compressed into a per-variable literal map
// first, so folding is a pure literal rewrite.  A cyclic root chain is
// an internal consistency fault.
func (a *A) flushRoots() {
	if len(a.roots) == 0 {
		return
	}
	toRoot := a.rootMap()
	a.roots = a.roots[:0]
	for v := 1; v < len(a.nodes); v++ {
		if len(a.nodes[v]) != 0 {
			a.flushRootsNode(toRoot, z.Var(v))
		}
		a.flushRootsCuts(toRoot, z.Var(v))
	}
}

func (a *A) rootMap() []z.Lit {
	n := len(a.nodes)
	toRoot := make([]z.Lit, n)
	for i := range toRoot {
		toRoot[i] = z.Var(i).Pos()
	}
	for i := len(a.roots) - 1; i >= 0; i-- {
		p := a.roots[i]
		r := toRoot[p.r.Var()]
		if !p.r.IsPos() {
			r = r.Not()
		}
		toRoot[p.v] = r
	}
	// compress multi-hop chains
	for v := 1; v < n; v++ {
		m := toRoot[v]
		steps := 0
		for toRoot[m.Var()] != m.Var().Pos() {
			r := toRoot[m.Var()]
			if !m.IsPos() {
				r = r.Not()
			}
			m = r
			steps++
			if steps > n {
				panic(fmt.Sprintf("cuts: cyclic root chain at %d", v))
			}
		}
		toRoot[v] = m
	}
	return toRoot
}

// flushRootsNode rewrites the children of v's definitions.  A var node
// whose variable folds away is replaced by a unary and onto the root, so
// enumeration derives the root's cuts for v.  Definitions that become
// self-referential are dropped.
func (a *A) flushRootsNode(toRoot []z.Lit, v z.Var) {
	ns := a.nodes[v]
	w := 0
	for _, n := range ns {
		if n.isVar() {
			if r := toRoot[v]; r != v.Pos() {
				a.lits = append(a.lits, r)
				n = node{op: OpAnd, size: 1, off: uint32(len(a.lits) - 1)}
				a.Touch(v)
			}
			ns[w] = n
			w++
			continue
		}
		changed := false
		for i := 0; i < int(n.size); i++ {
			m := a.lits[n.off+uint32(i)]
			r := toRoot[m.Var()]
			if !m.IsPos() {
				r = r.Not()
			}
			if r != m {
				a.lits[n.off+uint32(i)] = r
				changed = true
			}
		}
		if changed {
			if n.op == OpAnd || n.op == OpXor {
				s := a.lits[n.off : n.off+n.size]
				sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
			}
			a.Touch(v)
		}
		self := false
		for i := 0; i < int(n.size); i++ {
			if a.child(n, i).Var() == v {
				self = true
				break
			}
		}
		if self {
			a.noteNodeDel(v, n)
			continue
		}
		ns[w] = n
		w++
	}
	if w == 0 {
		ns[w] = varNode(v)
		w++
	}
	a.nodes[v] = ns[:w]
}

// flushRootsCuts rewrites cut leaves.  A sign flip permutes the table,
// a variable change re-sorts the leaves, and a leaf collision evicts
// the cut; the owner is touched so the next pass re-derives it.
func (a *A) flushRootsCuts(toRoot []z.Lit, v z.Var) {
	cs := &a.cuts[v]
	i := 0
	for i < cs.Len() {
		c := cs.At(i)
		d, changed, ok := remapCut(c, toRoot)
		if !changed {
			i++
			continue
		}
		cs.evict(a.noteCutDel, v, i)
		a.Touch(v)
		if ok {
			a.insertCut(v, d, cs)
		}
	}
}

// remapCut folds c's leaves through toRoot, permuting the truth table
// to the re-sorted, sign-adjusted leaf set.  ok is false when two
// leaves collide on the same root variable.
func remapCut(c *Cut, toRoot []z.Lit) (d Cut, changed, ok bool) {
	var rs [MaxCutLeaves]z.Lit
	for i := 0; i < int(c.n); i++ {
		rs[i] = toRoot[c.leaves[i]]
		if rs[i] != c.leaves[i].Pos() {
			changed = true
		}
	}
	if !changed {
		return *c, false, true
	}
	d.n = c.n
	for i := 0; i < int(c.n); i++ {
		u := rs[i].Var()
		for j := 0; j < i; j++ {
			if rs[j].Var() == u {
				return d, true, false
			}
		}
		d.leaves[i] = u
		d.sig |= leafBit(u)
	}
	ls := d.leaves[:d.n]
	sort.Slice(ls, func(i, j int) bool { return ls[i] < ls[j] })
	// old leaf i sits at position pos[i] of the new cut, negated when
	// the root literal is
	var pos [MaxCutLeaves]uint
	for i := 0; i < int(c.n); i++ {
		for j := 0; j < int(d.n); j++ {
			if d.leaves[j] == rs[i].Var() {
				pos[i] = uint(j)
				break
			}
		}
	}
	rows := uint(1) << d.n
	for r := uint(0); r < rows; r++ {
		or := uint(0)
		for i := 0; i < int(c.n); i++ {
			b := r >> pos[i] & 1
			if !rs[i].IsPos() {
				b ^= 1
			}
			or |= b << uint(i)
		}
		if c.Value(or) {
			d.table |= 1 << r
		}
	}
	return d, true, true
}
