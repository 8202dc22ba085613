// Copyright 2026 The Ziria Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package guess implements the approximator's guessing strategy: a map of
// boolean assumptions and a map of integer interval-with-holes domains,
// each keyed by a location-stripped expression. Guessing is the only
// source of non-determinism in the interpreter; everything else is a pure
// tree-recursive reduction.
package guess

import "github.com/octaplexsys/Ziria/internal/core/adt"

// IntDomain is the possible-value set tracked for an integer sub-term:
// an interval with specific holes punched out of it.
type IntDomain struct {
	HasLower bool
	Lower    int64
	HasUpper bool
	Upper    int64
	Holes    map[int64]bool
}

// Unbounded is the initial domain for a term no guess has touched yet.
func Unbounded() IntDomain { return IntDomain{} }

// Empty reports whether the domain can contain no integer at all: the
// bounds are inverted, or the single remaining value is itself a hole.
func (d IntDomain) Empty() bool {
	if d.HasLower && d.HasUpper && d.Lower > d.Upper {
		return true
	}
	if d.HasLower && d.HasUpper && d.Lower == d.Upper && d.Holes[d.Lower] {
		return true
	}
	return false
}

// Intersect combines two domains: the pointwise max of lowers, the
// pointwise min of uppers, and the union of holes.
func (d IntDomain) Intersect(o IntDomain) IntDomain {
	r := IntDomain{HasLower: d.HasLower, Lower: d.Lower, HasUpper: d.HasUpper, Upper: d.Upper}
	if o.HasLower && (!r.HasLower || o.Lower > r.Lower) {
		r.HasLower, r.Lower = true, o.Lower
	}
	if o.HasUpper && (!r.HasUpper || o.Upper < r.Upper) {
		r.HasUpper, r.Upper = true, o.Upper
	}
	if len(d.Holes) > 0 || len(o.Holes) > 0 {
		r.Holes = make(map[int64]bool, len(d.Holes)+len(o.Holes))
		for k := range d.Holes {
			r.Holes[k] = true
		}
		for k := range o.Holes {
			r.Holes[k] = true
		}
	}
	return r
}

// Clone returns an independent copy, so that forking a branch never lets
// one branch's guesses leak into another's.
func (d IntDomain) Clone() IntDomain {
	if len(d.Holes) == 0 {
		return IntDomain{HasLower: d.HasLower, Lower: d.Lower, HasUpper: d.HasUpper, Upper: d.Upper}
	}
	holes := make(map[int64]bool, len(d.Holes))
	for k := range d.Holes {
		holes[k] = true
	}
	return IntDomain{HasLower: d.HasLower, Lower: d.Lower, HasUpper: d.HasUpper, Upper: d.Upper, Holes: holes}
}

// NegateOp implements negBinOp: the comparator assumed when the guessed
// comparison is false, e.g. "=" negates to "≠" and "<" negates to "≥".
func NegateOp(op adt.BinOpKind) (adt.BinOpKind, bool) {
	switch op {
	case adt.Eq:
		return adt.Neq, true
	case adt.Neq:
		return adt.Eq, true
	case adt.Lt:
		return adt.Geq, true
	case adt.Geq:
		return adt.Lt, true
	case adt.Gt:
		return adt.Leq, true
	case adt.Leq:
		return adt.Gt, true
	}
	return 0, false
}

// FromComparison derives the domain implied by assuming "e' op k" true,
// for a ground integer k.
func FromComparison(op adt.BinOpKind, k int64) (IntDomain, bool) {
	switch op {
	case adt.Eq:
		return IntDomain{HasLower: true, Lower: k, HasUpper: true, Upper: k}, true
	case adt.Neq:
		return IntDomain{Holes: map[int64]bool{k: true}}, true
	case adt.Lt:
		return IntDomain{HasUpper: true, Upper: k - 1}, true
	case adt.Leq:
		return IntDomain{HasUpper: true, Upper: k}, true
	case adt.Gt:
		return IntDomain{HasLower: true, Lower: k + 1}, true
	case adt.Geq:
		return IntDomain{HasLower: true, Lower: k}, true
	}
	return IntDomain{}, false
}
