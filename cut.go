// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package cuts

import (
	"fmt"
	"strings"

	"github.com/go-air/gini/z"
)

// MaxCutLeaves bounds the number of leaves of a cut.  Six is the largest
// arity whose truth table fits a packed uint64.
const MaxCutLeaves = 6

// A Cut describes a variable's function over a small set of leaf
// variables.  Leaves are sorted and distinct; bit r of the table is the
// function's value on the assignment which sets leaf i to bit i of r.
type Cut struct {
	leaves [MaxCutLeaves]z.Var
	n      uint32
	sig    uint64
	table  uint64
}

func unitCut(v z.Var) Cut {
	c := Cut{n: 1, sig: leafBit(v), table: 2}
	c.leaves[0] = v
	return c
}

func constCut(val bool) Cut {
	var c Cut
	if val {
		c.table = 1
	}
	return c
}

func leafBit(v z.Var) uint64 {
	return 1 << (uint(v) % 64)
}

// Len returns the number of leaves.
func (c *Cut) Len() int { return int(c.n) }

// Leaves returns the leaf variables in increasing order.  The slice
// aliases the cut and must not be modified.
func (c *Cut) Leaves() []z.Var { return c.leaves[:c.n] }

// Table returns the packed truth table; rows beyond 1<<Len() are zero.
func (c *Cut) Table() uint64 { return c.table }

// Value returns the function's value on row, which assigns leaf i the
// i'th bit of row.
func (c *Cut) Value(row uint) bool {
	return c.table>>(row&63)&1 == 1
}

func (c *Cut) mask() uint64 {
	rows := uint(1) << c.n
	if rows >= 64 {
		return ^uint64(0)
	}
	return 1<<rows - 1
}

func (c *Cut) eqLeaves(d *Cut) bool {
	if c.n != d.n || c.sig != d.sig {
		return false
	}
	for i := 0; i < int(c.n); i++ {
		if c.leaves[i] != d.leaves[i] {
			return false
		}
	}
	return true
}

// merge unions the leaf sets of a and b into a table-less cut, failing
// when the union exceeds MaxCutLeaves.  This is the early pruning point
// of enumeration: oversized combinations die before any table work.
func merge(a, b *Cut) (Cut, bool) {
	var c Cut
	i, j, k := 0, 0, 0
	for i < int(a.n) || j < int(b.n) {
		if k == MaxCutLeaves {
			return c, false
		}
		switch {
		case j == int(b.n) || (i < int(a.n) && a.leaves[i] < b.leaves[j]):
			c.leaves[k] = a.leaves[i]
			i++
		case i == int(a.n) || b.leaves[j] < a.leaves[i]:
			c.leaves[k] = b.leaves[j]
			j++
		default:
			c.leaves[k] = a.leaves[i]
			i++
			j++
		}
		k++
	}
	c.n = uint32(k)
	c.sig = a.sig | b.sig
	return c, true
}

// project lifts d's table onto c's leaf set.  d's leaves must be a
// subset of c's.
func (c *Cut) project(d *Cut) uint64 {
	var pos [MaxCutLeaves]uint
	j := 0
	for i := 0; i < int(d.n); i++ {
		for c.leaves[j] != d.leaves[i] {
			j++
		}
		pos[i] = uint(j)
	}
	var t uint64
	rows := uint(1) << c.n
	for r := uint(0); r < rows; r++ {
		dr := uint(0)
		for i := 0; i < int(d.n); i++ {
			dr |= (r >> pos[i] & 1) << uint(i)
		}
		if d.table>>dr&1 == 1 {
			t |= 1 << r
		}
	}
	return t
}

func (c *Cut) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i := 0; i < int(c.n); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d", c.leaves[i])
	}
	fmt.Fprintf(&b, "} %#x", c.table)
	return b.String()
}
