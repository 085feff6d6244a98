// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package cuts_test

import (
	"fmt"
	"testing"

	"github.com/go-air/cuts"
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

func adder(s *gini.Gini) cuts.OnClause {
	return func(ms []z.Lit) {
		for _, m := range ms {
			s.Add(m)
		}
		s.Add(0)
	}
}

func lit(v int, val bool) z.Lit {
	if val {
		return z.Var(v).Pos()
	}
	return z.Var(v).Neg()
}

// the clauses emitted for a cut pin its variable to the cut's function
// in both directions.
func TestCutDefSolver(t *testing.T) {
	a := cuts.New()
	for i := 1; i <= 3; i++ {
		a.AddVar(z.Var(i))
	}
	a.AddNode(z.Var(3).Pos(), cuts.OpAnd, z.Var(1).Pos(), z.Var(2).Neg())
	css := a.Enumerate()
	cs := css[3]
	var c *cuts.Cut
	for i := 0; i < cs.Len(); i++ {
		if cs.At(i).Len() == 2 {
			c = cs.At(i)
		}
	}
	if c == nil {
		t.Fatalf("no 2-leaf cut of 3: %s", &cs)
	}
	s := gini.New()
	a.CutDef(adder(s), c, z.Var(3).Pos())
	for row := uint(0); row < 4; row++ {
		b1, b2 := row&1 == 1, row&2 != 0
		want := b1 && !b2
		s.Assume(lit(1, b1), lit(2, b2), lit(3, want))
		if s.Solve() != 1 {
			t.Errorf("row %d: consistent assignment unsat", row)
		}
		s.Assume(lit(1, b1), lit(2, b2), lit(3, !want))
		if s.Solve() != -1 {
			t.Errorf("row %d: inconsistent assignment sat", row)
		}
	}
}

// accepted definitions flow out through the add callback; displaced
// ones are retracted through the delete callback.
func TestNodeDefCallbacks(t *testing.T) {
	var added, deleted [][]z.Lit
	snap := func(dst *[][]z.Lit) cuts.OnClause {
		return func(ms []z.Lit) {
			*dst = append(*dst, append([]z.Lit(nil), ms...))
		}
	}
	cfg := cuts.NewConfig()
	cfg.MaxAux = 1
	a := cuts.NewWith(cfg)
	snapAdd, snapDel := snap(&added), snap(&deleted)
	a.OnClauseAdd(snapAdd)
	a.OnClauseDel(snapDel)
	for i := 1; i <= 5; i++ {
		a.AddVar(z.Var(i))
	}
	a.AddNode(z.Var(5).Pos(), cuts.OpAnd, z.Var(1).Pos(), z.Var(2).Pos(), z.Var(3).Pos())
	if len(added) != 4 { // 3 binary clauses and one long one
		t.Fatalf("ternary and emitted %d clauses", len(added))
	}
	// a smaller definition displaces the larger one at the aux cap
	a.AddNode(z.Var(5).Pos(), cuts.OpAnd, z.Var(1).Pos(), z.Var(4).Pos())
	if len(deleted) != 4 {
		t.Errorf("displacement retracted %d clauses", len(deleted))
	}
	if len(added) != 4+3 {
		t.Errorf("binary and emitted %d clauses", len(added)-4)
	}
	// both directions around the solver: the added minus deleted set
	// still defines 5 as and(1, 4)
	s := gini.New()
	live := func(ms []z.Lit) bool {
		for _, del := range deleted {
			if litsEq(del, ms) {
				return false
			}
		}
		return true
	}
	for _, ms := range added {
		if !live(ms) {
			continue
		}
		for _, m := range ms {
			s.Add(m)
		}
		s.Add(0)
	}
	s.Assume(z.Var(1).Pos(), z.Var(4).Pos(), z.Var(5).Neg())
	if s.Solve() != -1 {
		t.Errorf("retained clauses do not force 5")
	}
}

func litsEq(a, b []z.Lit) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Screen a candidate equivalence by simulation, then confirm it by
// handing the emitted definitions to a solver, the way an embedding
// solver would.
func Example() {
	a := cuts.New()
	for i := 1; i <= 4; i++ {
		a.AddVar(z.Var(i))
	}
	a.AddNode(z.Var(3).Pos(), cuts.OpAnd, z.Var(1).Pos(), z.Var(2).Pos())
	a.AddNode(z.Var(4).Pos(), cuts.OpAnd, z.Var(2).Pos(), z.Var(1).Pos())
	css := a.Enumerate()
	sig := a.Simulate(4)
	if cuts.LitSig(sig, z.Var(3).Pos()) != cuts.LitSig(sig, z.Var(4).Pos()) {
		fmt.Println("not a candidate")
		return
	}
	s := gini.New()
	on := func(ms []z.Lit) {
		for _, m := range ms {
			s.Add(m)
		}
		s.Add(0)
	}
	for _, v := range []z.Var{3, 4} {
		cs := css[v]
		for i := 0; i < cs.Len(); i++ {
			if cs.At(i).Len() == 2 {
				a.CutDef(on, cs.At(i), v.Pos())
			}
		}
	}
	s.Assume(z.Var(3).Pos(), z.Var(4).Neg())
	r1 := s.Solve()
	s.Assume(z.Var(3).Neg(), z.Var(4).Pos())
	r2 := s.Solve()
	if r1 == -1 && r2 == -1 {
		fmt.Println("equivalent")
	}
	// Output: equivalent
}
