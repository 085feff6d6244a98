// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package cuts

import (
	"testing"

	"github.com/go-air/gini/z"
)

func mkCut(table uint64, leaves ...z.Var) Cut {
	var c Cut
	for i, u := range leaves {
		c.leaves[i] = u
		c.sig |= leafBit(u)
	}
	c.n = uint32(len(leaves))
	c.table = table & c.mask()
	return c
}

func TestCutMerge(t *testing.T) {
	a := mkCut(0x8, 1, 3)
	b := mkCut(0x6, 2, 3)
	c, ok := merge(&a, &b)
	if !ok {
		t.Fatalf("merge failed")
	}
	want := []z.Var{1, 2, 3}
	if c.Len() != 3 {
		t.Fatalf("merged %d leaves", c.Len())
	}
	for i, u := range c.Leaves() {
		if u != want[i] {
			t.Errorf("leaf %d is %d", i, u)
		}
	}
}

func TestCutMergeOverflow(t *testing.T) {
	a := mkCut(0, 1, 2, 3, 4)
	b := mkCut(0, 5, 6, 7)
	if _, ok := merge(&a, &b); ok {
		t.Errorf("merged %d leaves", a.Len()+b.Len())
	}
}

func TestCutProject(t *testing.T) {
	// f(1,3) = l1 & l3 lifted over {1,2,3}
	d := mkCut(0x8, 1, 3)
	c, _ := merge(&d, &d)
	if c.Len() != 2 {
		t.Fatalf("self merge changed arity")
	}
	if got := c.project(&d); got != 0x8 {
		t.Errorf("identity projection gave %#x", got)
	}
	e := mkCut(0, 2)
	c, _ = merge(&d, &e)
	got := c.project(&d)
	// leaves {1,2,3}: value iff bit0 and bit2
	if got != 0xa0 {
		t.Errorf("projection gave %#x, want 0xa0", got)
	}
}

func TestCutValue(t *testing.T) {
	c := mkCut(0x8, 1, 2)
	for row := uint(0); row < 4; row++ {
		want := row == 3
		if c.Value(row) != want {
			t.Errorf("row %d", row)
		}
	}
}

func TestCutSetNotify(t *testing.T) {
	var cs CutSet
	adds, dels := 0, 0
	onAdd := func(v z.Var, c *Cut) { adds++ }
	onDel := func(v z.Var, c *Cut) { dels++ }
	cs.push(onAdd, 1, mkCut(2, 1))
	cs.push(onAdd, 1, mkCut(0x8, 1, 2))
	cs.push(onAdd, 1, mkCut(0x6, 2, 3))
	if adds != 3 {
		t.Errorf("%d add notifications", adds)
	}
	cs.evict(onDel, 1, 1)
	if dels != 1 || cs.Len() != 2 {
		t.Errorf("evict: %d dels, %d cuts", dels, cs.Len())
	}
	cs.shrink(onDel, 1, 1)
	if dels != 2 || cs.Len() != 1 {
		t.Errorf("shrink: %d dels, %d cuts", dels, cs.Len())
	}
	cs.reset(onDel, 1)
	if dels != 3 || cs.Len() != 0 {
		t.Errorf("reset: %d dels, %d cuts", dels, cs.Len())
	}
}

// at capacity a candidate displaces the largest incumbent, and only
// when strictly smaller.
func TestCutSetEvictionPolicy(t *testing.T) {
	cfg := NewConfig()
	cfg.MaxCutSetSize = 2
	a := NewWith(cfg)
	a.AddVar(1)
	var cs CutSet
	if !a.insertCut(1, mkCut(0x08, 2, 3), &cs) {
		t.Fatalf("insert into empty set failed")
	}
	if !a.insertCut(1, mkCut(0x80, 2, 3, 4), &cs) {
		t.Fatalf("insert under cap failed")
	}
	if a.insertCut(1, mkCut(0x60, 4, 5, 6), &cs) {
		t.Errorf("equal-size candidate accepted at capacity")
	}
	if !a.insertCut(1, mkCut(2, 5), &cs) {
		t.Errorf("smaller candidate rejected at capacity")
	}
	if cs.find(&Cut{}) >= 0 {
		t.Errorf("stray empty cut")
	}
	if i := cs.find(mustCut(mkCut(0x80, 2, 3, 4))); i >= 0 {
		t.Errorf("largest incumbent survived displacement")
	}
	if i := cs.find(mustCut(mkCut(2, 5))); i < 0 {
		t.Errorf("displacing candidate missing")
	}
	// duplicates are recognized, not re-inserted
	n := cs.Len()
	if !a.insertCut(1, mkCut(2, 5), &cs) {
		t.Errorf("duplicate reported as drop")
	}
	if cs.Len() != n {
		t.Errorf("duplicate inserted")
	}
}

func mustCut(c Cut) *Cut { return &c }
