// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package cuts

import "github.com/go-air/gini/z"

// CutDef emits the clauses defining r as c's function over its leaves,
// one clause per truth table row, each passed to on.  The clause slice
// is reused across calls.
func (a *A) CutDef(on OnClause, c *Cut, r z.Lit) {
	rows := uint(1) << c.n
	for row := uint(0); row < rows; row++ {
		a.clause = a.clause[:0]
		for i := 0; i < int(c.n); i++ {
			if row>>uint(i)&1 == 1 {
				a.clause = append(a.clause, c.leaves[i].Neg())
			} else {
				a.clause = append(a.clause, c.leaves[i].Pos())
			}
		}
		if c.Value(row) {
			a.clause = append(a.clause, r)
		} else {
			a.clause = append(a.clause, r.Not())
		}
		on(a.clause)
	}
}

// nodeDef emits the operator-shaped defining clauses of n for head
// literal r.
func (a *A) nodeDef(on OnClause, n node, r z.Lit) {
	if n.sign {
		r = r.Not()
	}
	switch n.op {
	case OpVar:
		// no defining clauses
	case OpAnd:
		a.andDef(on, n, r)
	case OpXor:
		a.xorDef(on, n, r)
	case OpIte:
		mi, mt, me := a.child(n, 0), a.child(n, 1), a.child(n, 2)
		a.emit(on, mi.Not(), mt.Not(), r)
		a.emit(on, mi.Not(), mt, r.Not())
		a.emit(on, mi, me.Not(), r)
		a.emit(on, mi, me, r.Not())
	}
}

func (a *A) andDef(on OnClause, n node, r z.Lit) {
	if n.size == 0 {
		a.emit(on, r)
		return
	}
	for i := 0; i < int(n.size); i++ {
		a.emit(on, r.Not(), a.child(n, i))
	}
	a.clause = a.clause[:0]
	a.clause = append(a.clause, r)
	for i := 0; i < int(n.size); i++ {
		a.clause = append(a.clause, a.child(n, i).Not())
	}
	on(a.clause)
}

// xorDef enumerates the child assignments; xors here are small, so the
// 2^n clauses stay cheap.
func (a *A) xorDef(on OnClause, n node, r z.Lit) {
	if n.size == 0 {
		a.emit(on, r.Not())
		return
	}
	rows := uint(1) << n.size
	for row := uint(0); row < rows; row++ {
		a.clause = a.clause[:0]
		par := false
		for i := 0; i < int(n.size); i++ {
			m := a.child(n, i)
			if row>>uint(i)&1 == 1 {
				par = !par
				a.clause = append(a.clause, m.Not())
			} else {
				a.clause = append(a.clause, m)
			}
		}
		if par {
			a.clause = append(a.clause, r)
		} else {
			a.clause = append(a.clause, r.Not())
		}
		on(a.clause)
	}
}

func (a *A) emit(on OnClause, ms ...z.Lit) {
	a.clause = append(a.clause[:0], ms...)
	on(a.clause)
}

func (a *A) noteNodeAdd(v z.Var, n node) {
	if a.onClauseAdd != nil {
		a.nodeDef(a.onClauseAdd, n, v.Pos())
	}
}

func (a *A) noteNodeDel(v z.Var, n node) {
	if a.onClauseDel != nil {
		a.nodeDef(a.onClauseDel, n, v.Pos())
	}
}
