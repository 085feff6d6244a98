// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package cuts

import (
	"fmt"
	"io"
	"strings"
)

// String renders the stored definitions and cut sets, one variable per
// line.  Diagnostics only; the format is not stable.
func (a *A) String() string {
	var b strings.Builder
	for v := 1; v < len(a.nodes); v++ {
		if len(a.nodes[v]) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%d :=", v)
		for _, n := range a.nodes[v] {
			b.WriteByte(' ')
			a.writeNode(&b, n)
		}
		if a.cuts[v].Len() > 0 {
			fmt.Fprintf(&b, " | %s", a.cuts[v].String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteTo writes the String rendering to w.
func (a *A) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, a.String())
	return int64(n), err
}

func (a *A) writeNode(b *strings.Builder, n node) {
	if n.sign {
		b.WriteByte('-')
	}
	if n.isVar() {
		fmt.Fprintf(b, "v%d", n.v())
		return
	}
	b.WriteString(n.op.String())
	b.WriteByte('(')
	for i := 0; i < int(n.size); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(b, "%d", a.child(n, i).Dimacs())
	}
	b.WriteByte(')')
}
