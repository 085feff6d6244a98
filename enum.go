// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package cuts

import "github.com/go-air/gini/z"

// Enumerate folds any recorded roots, recomputes the cut sets of dirty
// variables bottom-up, advances the pass counter and returns the cut
// sets indexed by variable.  The result aliases internal state and is
// valid until the next mutating call.
//
// Two consecutive calls with no intervening mutation return identical
// contents.
func (a *A) Enumerate() []CutSet {
	a.flushRoots()
	for _, v := range a.enumOrder() {
		a.augment(v)
	}
	a.numCutCalls++
	return a.cuts
}

// enumOrder yields every variable with definitions, children before
// parents.  Back edges in malformed chains are broken at the revisit so
// the walk terminates.
func (a *A) enumOrder() []z.Var {
	state := make([]int8, len(a.nodes))
	order := make([]z.Var, 0, len(a.nodes))
	var vis func(v z.Var)
	vis = func(v z.Var) {
		if state[v] != 0 {
			return
		}
		state[v] = 1
		for _, n := range a.nodes[v] {
			if n.isVar() {
				continue
			}
			for i := 0; i < int(n.size); i++ {
				vis(a.child(n, i).Var())
			}
		}
		state[v] = 2
		order = append(order, v)
	}
	for v := 1; v < len(a.nodes); v++ {
		if len(a.nodes[v]) != 0 {
			vis(z.Var(v))
		}
	}
	return order
}

func (a *A) augment(v z.Var) {
	cs := &a.cuts[v]
	// base case: the trivial self cut is always derivable
	a.insertCut(v, unitCut(v), cs)
	for _, n := range a.nodes[v] {
		if !a.cfg.Full && !a.touchedNode(v, n) {
			continue
		}
		a.augmentNode(v, n, cs)
	}
}

func (a *A) augmentNode(v z.Var, n node, cs *CutSet) {
	switch {
	case n.op == OpVar:
		// self cut inserted by augment
	case n.op == OpIte:
		a.augmentIte(v, n, cs)
	case n.size == 0:
		val := n.sign // xor() is false
		if n.op == OpAnd {
			val = !n.sign // and() is true
		}
		a.insertCut(v, constCut(val), cs)
	case n.size == 1:
		a.augment1(v, n, cs)
	case n.size == 2:
		a.augment2(v, n, cs)
	default:
		a.augmentN(v, n, cs)
	}
}

// augment1 copies the child's cuts, adjusting for the child literal's
// sign and the node's.
func (a *A) augment1(v z.Var, n node, cs *CutSet) {
	m := a.child(n, 0)
	ds := &a.cuts[m.Var()]
	for i := 0; i < ds.Len(); i++ {
		c := *ds.At(i)
		t := c.table
		if !m.IsPos() {
			t = ^t
		}
		if n.sign {
			t = ^t
		}
		c.table = t & c.mask()
		if !a.insertCut(v, c, cs) {
			return
		}
	}
}

// augment2 crosses the two children's cut sets.  Pairings whose merged
// leaf set exceeds MaxCutLeaves are discarded before any table work.
func (a *A) augment2(v z.Var, n node, cs *CutSet) {
	x, y := a.child(n, 0), a.child(n, 1)
	xs, ys := &a.cuts[x.Var()], &a.cuts[y.Var()]
	for i := 0; i < xs.Len(); i++ {
		for j := 0; j < ys.Len(); j++ {
			cx, cy := xs.At(i), ys.At(j)
			c, ok := merge(cx, cy)
			if !ok {
				continue
			}
			tx, ty := c.project(cx), c.project(cy)
			if !x.IsPos() {
				tx = ^tx
			}
			if !y.IsPos() {
				ty = ^ty
			}
			var t uint64
			if n.op == OpAnd {
				t = tx & ty
			} else {
				t = tx ^ ty
			}
			if n.sign {
				t = ^t
			}
			c.table = t & c.mask()
			if !a.insertCut(v, c, cs) {
				return
			}
		}
	}
}

func (a *A) augmentIte(v z.Var, n node, cs *CutSet) {
	mi, mt, me := a.child(n, 0), a.child(n, 1), a.child(n, 2)
	is, ts, es := &a.cuts[mi.Var()], &a.cuts[mt.Var()], &a.cuts[me.Var()]
	for i := 0; i < is.Len(); i++ {
		for j := 0; j < ts.Len(); j++ {
			ci, ct := is.At(i), ts.At(j)
			cit, ok := merge(ci, ct)
			if !ok {
				continue
			}
			for k := 0; k < es.Len(); k++ {
				ce := es.At(k)
				c, ok := merge(&cit, ce)
				if !ok {
					continue
				}
				ti, tt, te := c.project(ci), c.project(ct), c.project(ce)
				if !mi.IsPos() {
					ti = ^ti
				}
				if !mt.IsPos() {
					tt = ^tt
				}
				if !me.IsPos() {
					te = ^te
				}
				t := ti&tt | ^ti&te
				if n.sign {
					t = ^t
				}
				c.table = t & c.mask()
				if !a.insertCut(v, c, cs) {
					return
				}
			}
		}
	}
}

// augmentN folds an n-ary and/xor left to right through the two scratch
// sets, applying the node sign last.
func (a *A) augmentN(v z.Var, n node, cs *CutSet) {
	limit := a.maxCutSetSize(v)
	m := a.child(n, 0)
	a.cs1.cuts = a.cs1.cuts[:0]
	ms := &a.cuts[m.Var()]
	for i := 0; i < ms.Len(); i++ {
		c := *ms.At(i)
		if !m.IsPos() {
			c.table = ^c.table & c.mask()
		}
		a.scratchInsert(&a.cs1, c, limit)
	}
	for i := 1; i < int(n.size); i++ {
		m = a.child(n, i)
		ms = &a.cuts[m.Var()]
		a.cs2.cuts = a.cs2.cuts[:0]
		for j := range a.cs1.cuts {
			c1 := a.cs1.cuts[j]
			for k := 0; k < ms.Len(); k++ {
				c2 := ms.At(k)
				c, ok := merge(&c1, c2)
				if !ok {
					continue
				}
				t1, t2 := c.project(&c1), c.project(c2)
				if !m.IsPos() {
					t2 = ^t2
				}
				var t uint64
				if n.op == OpAnd {
					t = t1 & t2
				} else {
					t = t1 ^ t2
				}
				c.table = t & c.mask()
				a.scratchInsert(&a.cs2, c, limit)
			}
		}
		a.cs1, a.cs2 = a.cs2, a.cs1
	}
	for i := range a.cs1.cuts {
		c := a.cs1.cuts[i]
		if n.sign {
			c.table = ^c.table & c.mask()
		}
		if !a.insertCut(v, c, cs) {
			return
		}
	}
}

// scratchInsert is a bounded dedup insert with no notifications; the
// scratch sets never carry live cuts.
func (a *A) scratchInsert(cs *CutSet, c Cut, limit int) {
	if cs.Len() >= limit || cs.find(&c) >= 0 {
		return
	}
	cs.cuts = append(cs.cuts, c)
}

// insertCut inserts c into cs unless it duplicates a member.  At
// capacity, c displaces the incumbent with the most leaves, latest
// inserted among ties, and only when c has strictly fewer leaves.
// A false return tells the caller to stop combining for the current
// definition: the set is full and c did not beat anything.
func (a *A) insertCut(v z.Var, c Cut, cs *CutSet) bool {
	if cs.find(&c) >= 0 {
		return true
	}
	if debugCuts {
		if err := a.checkCut(v, &c); err != nil {
			panic(err)
		}
	}
	if cs.Len() < a.maxCutSetSize(v) {
		cs.push(a.noteCutAdd, v, c)
		return true
	}
	w := 0
	for i := 1; i < cs.Len(); i++ {
		if cs.cuts[i].n >= cs.cuts[w].n {
			w = i
		}
	}
	if c.n < cs.cuts[w].n {
		cs.evict(a.noteCutDel, v, w)
		cs.push(a.noteCutAdd, v, c)
		return true
	}
	return false
}
