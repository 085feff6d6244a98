// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package cuts

import (
	"errors"
	"fmt"

	"github.com/go-air/gini/z"
)

// debugCuts gates re-derivation of every inserted cut.  Development
// only; the checks are quadratic in table work and assume consistent
// definitions.
const debugCuts = false

var errFreeVar = errors.New("free outside the leaf set")

// checkCut re-derives c's function by explicit truth table evaluation
// of v's main definition chain and reports the first disagreement.
// Rows assigning a defined leaf against its own definition over the
// other leaves are unreachable and skipped: composed tables carry no
// meaning there.
func (a *A) checkCut(v z.Var, c *Cut) error {
	rows := uint(1) << c.n
	active := make([]bool, len(a.nodes))
	for r := uint(0); r < rows; r++ {
		ok, err := a.consistentRow(c.Leaves(), r, active)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		want, err := a.evalAt(v, c.Leaves(), r, active)
		if err != nil {
			return err
		}
		if want != c.Value(r) {
			return fmt.Errorf("cuts: cut %s of %d disagrees on row %d", c, v, r)
		}
	}
	return nil
}

// consistentRow reports whether row assigns every defined leaf the
// value its main definition takes over the other leaves.  A leaf whose
// definition the leaf set does not determine is unconstrained.
func (a *A) consistentRow(leaves []z.Var, row uint, active []bool) (bool, error) {
	for i, u := range leaves {
		if int(u) >= len(a.nodes) || len(a.nodes[u]) == 0 {
			continue
		}
		n := a.nodes[u][0]
		if n.isVar() {
			continue
		}
		active[u] = true
		b, err := a.evalNode(n, leaves, row, active)
		active[u] = false
		if err != nil {
			if errors.Is(err, errFreeVar) {
				continue
			}
			return false, err
		}
		if b != (row>>uint(i)&1 == 1) {
			return false, nil
		}
	}
	return true, nil
}

func (a *A) evalAt(v z.Var, leaves []z.Var, row uint, active []bool) (bool, error) {
	for i, u := range leaves {
		if u == v {
			return row>>uint(i)&1 == 1, nil
		}
	}
	if int(v) >= len(a.nodes) || len(a.nodes[v]) == 0 {
		return false, fmt.Errorf("cuts: unregistered variable %d under cut", v)
	}
	n := a.nodes[v][0]
	if n.isVar() {
		return false, fmt.Errorf("cuts: variable %d %w", v, errFreeVar)
	}
	if active[v] {
		return false, fmt.Errorf("cuts: cyclic definition at %d", v)
	}
	active[v] = true
	defer func() { active[v] = false }()
	return a.evalNode(n, leaves, row, active)
}

func (a *A) evalNode(n node, leaves []z.Var, row uint, active []bool) (bool, error) {
	lit := func(m z.Lit) (bool, error) {
		b, err := a.evalAt(m.Var(), leaves, row, active)
		if !m.IsPos() {
			b = !b
		}
		return b, err
	}
	var r bool
	switch n.op {
	case OpAnd:
		r = true
		for i := 0; i < int(n.size); i++ {
			b, err := lit(a.child(n, i))
			if err != nil {
				return false, err
			}
			r = r && b
		}
	case OpXor:
		for i := 0; i < int(n.size); i++ {
			b, err := lit(a.child(n, i))
			if err != nil {
				return false, err
			}
			r = r != b
		}
	case OpIte:
		bi, err := lit(a.child(n, 0))
		if err != nil {
			return false, err
		}
		if bi {
			r, err = lit(a.child(n, 1))
		} else {
			r, err = lit(a.child(n, 2))
		}
		if err != nil {
			return false, err
		}
	default:
		return false, fmt.Errorf("cuts: malformed definition")
	}
	if n.sign {
		r = !r
	}
	return r, nil
}
