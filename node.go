// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package cuts

import "github.com/go-air/gini/z"

// node is one alternative definition of a variable: the variable equals
// op over the children, inverted when sign is set.  Children live in the
// shared literal buffer of A at [off, off+size); a var node has no
// children and stores its variable in off.  Nodes are replaced, never
// mutated.
type node struct {
	sign bool
	op   Op
	size uint32
	off  uint32
}

func varNode(v z.Var) node {
	return node{op: OpVar, off: uint32(v)}
}

func (n node) isVar() bool { return n.op == OpVar }

func (n node) isConst() bool { return n.op == OpAnd && n.size == 0 }

// v gives the variable of a var node.
func (n node) v() z.Var { return z.Var(n.off) }

func (a *A) child(n node, i int) z.Lit {
	return a.lits[n.off+uint32(i)]
}

// eqNode tests structural equality of two definitions.  And/xor children
// are sorted at AddNode time, so sequence equality covers commutativity.
func (a *A) eqNode(m, n node) bool {
	if m.sign != n.sign || m.op != n.op || m.size != n.size {
		return false
	}
	if m.op == OpVar {
		return m.off == n.off
	}
	for i := 0; i < int(m.size); i++ {
		if a.lits[m.off+uint32(i)] != a.lits[n.off+uint32(i)] {
			return false
		}
	}
	return true
}
