// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package cuts

// Op tags the shape of a node: a plain variable, an and gate, an
// if-then-else over three operands, an xor gate, or nothing at all.
type Op byte

const (
	OpVar Op = iota
	OpAnd
	OpIte
	OpXor
	OpNone
)

func (o Op) String() string {
	switch o {
	case OpVar:
		return "v"
	case OpAnd:
		return "&"
	case OpIte:
		return "?"
	case OpXor:
		return "^"
	default:
		return ""
	}
}
