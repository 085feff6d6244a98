// Copyright 2021 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package cuts maintains an and-inverter graph view of the clauses inside
// a SAT solver and enumerates bounded cut sets over it, surfacing candidate
// equivalences between literals for the solver's inprocessing phase.
//
// The central type is A.  A solver registers variables with AddVar and
// records alternative definitions with AddNode as it walks its clauses;
// definitions may be and, xor, or if-then-else gates over literals.
// Enumerate then recomputes, incrementally, the set of cuts of every
// variable whose definitions changed since the last call.  A cut describes
// the variable's function over a small set of leaf literals as a packed
// truth table, so two variables sharing a cut are candidates for being
// equivalent.  Simulate screens candidates further by evaluating the graph
// under packed pseudo-random assignments.
//
// The package never touches a clause database.  Defining clauses flow out
// through the two callbacks registered with OnClauseAdd and OnClauseDel,
// and confirmation of a candidate equivalence is the caller's business.
//
// All operations are synchronous and none of them lock; an A is meant to
// be owned by a single solver thread.  Resource use is governed by the
// caps in Config rather than by timeouts.
package cuts
