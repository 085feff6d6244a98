// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package cuts

import (
	"strings"

	"github.com/go-air/gini/z"
)

// OnCut is the shape of cut add/delete notifications.  The cut pointer
// is valid only for the duration of the call.
type OnCut func(v z.Var, c *Cut)

// A CutSet holds the retained cuts of one variable.  Every mutation
// threads a notification so dependent bookkeeping stays consistent;
// a nil notification is skipped.
type CutSet struct {
	cuts []Cut
}

// Len returns the number of cuts.
func (cs *CutSet) Len() int { return len(cs.cuts) }

// At returns the i'th cut.  Earlier cuts are preferred.
func (cs *CutSet) At(i int) *Cut { return &cs.cuts[i] }

// find locates a duplicate of c: same leaves, same table.
func (cs *CutSet) find(c *Cut) int {
	for i := range cs.cuts {
		d := &cs.cuts[i]
		if d.eqLeaves(c) && d.table == c.table {
			return i
		}
	}
	return -1
}

func (cs *CutSet) push(on OnCut, v z.Var, c Cut) {
	cs.cuts = append(cs.cuts, c)
	if on != nil {
		on(v, &cs.cuts[len(cs.cuts)-1])
	}
}

func (cs *CutSet) evict(on OnCut, v z.Var, i int) {
	if on != nil {
		on(v, &cs.cuts[i])
	}
	copy(cs.cuts[i:], cs.cuts[i+1:])
	cs.cuts = cs.cuts[:len(cs.cuts)-1]
}

// shrink drops every cut at index j and beyond, notifying once per
// dropped cut.
func (cs *CutSet) shrink(on OnCut, v z.Var, j int) {
	if on != nil {
		for i := j; i < len(cs.cuts); i++ {
			on(v, &cs.cuts[i])
		}
	}
	cs.cuts = cs.cuts[:j]
}

func (cs *CutSet) reset(on OnCut, v z.Var) {
	cs.shrink(on, v, 0)
}

func (cs *CutSet) String() string {
	var b strings.Builder
	for i := range cs.cuts {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(cs.cuts[i].String())
	}
	return b.String()
}
