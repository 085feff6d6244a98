// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package cuts

import (
	"math/rand"

	"github.com/go-air/gini/z"
)

// Simulate evaluates the graph under rounds batches of 64 packed
// pseudo-random trial assignments and returns each variable's bit
// signature, indexed by variable.  Literals whose signatures disagree
// on any trial cannot be equivalent; agreement is necessary but not
// sufficient, so the result screens candidates before confirmation.
//
// Simulate is deterministic; use SimulateR for an explicit source.
func (a *A) Simulate(rounds int) []uint64 {
	return a.SimulateR(rounds, rand.New(rand.NewSource(44)))
}

// SimulateR is Simulate drawing trials from rnd.
func (a *A) SimulateR(rounds int, rnd *rand.Rand) []uint64 {
	sig := make([]uint64, len(a.nodes))
	for i := range sig {
		sig[i] = rnd.Uint64()
	}
	order := a.enumOrder()
	for r := 0; r < rounds; r++ {
		for _, v := range order {
			n := a.nodes[v][0]
			if n.isVar() {
				continue // input, keeps its random draw
			}
			sig[v] = a.eval(n, sig)
		}
	}
	return sig
}

func (a *A) eval(n node, env []uint64) uint64 {
	var r uint64
	switch n.op {
	case OpVar:
		r = env[n.v()]
	case OpAnd:
		r = ^uint64(0)
		for i := 0; i < int(n.size); i++ {
			r &= litSig(env, a.child(n, i))
		}
	case OpXor:
		for i := 0; i < int(n.size); i++ {
			r ^= litSig(env, a.child(n, i))
		}
	case OpIte:
		ti := litSig(env, a.child(n, 0))
		tt := litSig(env, a.child(n, 1))
		te := litSig(env, a.child(n, 2))
		r = ti&tt | ^ti&te
	}
	if n.sign {
		r = ^r
	}
	return r
}

// LitSig reads m's signature out of a Simulate result, inverting for a
// negative literal.
func LitSig(sig []uint64, m z.Lit) uint64 {
	return litSig(sig, m)
}

func litSig(sig []uint64, m z.Lit) uint64 {
	s := sig[m.Var()]
	if !m.IsPos() {
		s = ^s
	}
	return s
}
