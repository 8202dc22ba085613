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

package guess

import (
	"testing"

	"github.com/octaplexsys/Ziria/internal/core/adt"
)

func TestUnboundedIsNeverEmpty(t *testing.T) {
	if Unbounded().Empty() {
		t.Error("an untouched domain must not be empty")
	}
}

func TestIntersectNarrowsBounds(t *testing.T) {
	a := IntDomain{HasLower: true, Lower: 0, HasUpper: true, Upper: 10}
	b := IntDomain{HasLower: true, Lower: 5, HasUpper: true, Upper: 20}
	got := a.Intersect(b)
	if got.Lower != 5 || got.Upper != 10 {
		t.Errorf("Intersect = [%d,%d], want [5,10]", got.Lower, got.Upper)
	}
}

func TestIntersectUnionsHoles(t *testing.T) {
	a := IntDomain{Holes: map[int64]bool{1: true}}
	b := IntDomain{Holes: map[int64]bool{2: true}}
	got := a.Intersect(b)
	if !got.Holes[1] || !got.Holes[2] {
		t.Errorf("Intersect holes = %v, want both 1 and 2", got.Holes)
	}
}

func TestEmptyInvertedBounds(t *testing.T) {
	d := IntDomain{HasLower: true, Lower: 5, HasUpper: true, Upper: 3}
	if !d.Empty() {
		t.Error("lower > upper must be empty")
	}
}

func TestEmptySinglePointHole(t *testing.T) {
	d := IntDomain{HasLower: true, Lower: 5, HasUpper: true, Upper: 5, Holes: map[int64]bool{5: true}}
	if !d.Empty() {
		t.Error("a single remaining value that is itself a hole must be empty")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	d := IntDomain{Holes: map[int64]bool{1: true}}
	c := d.Clone()
	c.Holes[2] = true
	if d.Holes[2] {
		t.Error("mutating a clone's holes must not affect the original")
	}
}

func TestFromComparisonAndNegateOp(t *testing.T) {
	cases := []struct {
		op       adt.BinOpKind
		k        int64
		hasLower bool
		lower    int64
		hasUpper bool
		upper    int64
	}{
		{adt.Eq, 5, true, 5, true, 5},
		{adt.Lt, 5, false, 0, true, 4},
		{adt.Leq, 5, false, 0, true, 5},
		{adt.Gt, 5, true, 6, false, 0},
		{adt.Geq, 5, true, 5, false, 0},
	}
	for _, c := range cases {
		d, ok := FromComparison(c.op, c.k)
		if !ok {
			t.Fatalf("FromComparison(%v, %d) rejected", c.op, c.k)
		}
		if d.HasLower != c.hasLower || (c.hasLower && d.Lower != c.lower) {
			t.Errorf("FromComparison(%v,%d).Lower = %v/%d, want %v/%d", c.op, c.k, d.HasLower, d.Lower, c.hasLower, c.lower)
		}
		if d.HasUpper != c.hasUpper || (c.hasUpper && d.Upper != c.upper) {
			t.Errorf("FromComparison(%v,%d).Upper = %v/%d, want %v/%d", c.op, c.k, d.HasUpper, d.Upper, c.hasUpper, c.upper)
		}
	}

	neg, ok := NegateOp(adt.Lt)
	if !ok || neg != adt.Geq {
		t.Errorf("NegateOp(Lt) = %v, want Geq", neg)
	}
	neg, ok = NegateOp(adt.Eq)
	if !ok || neg != adt.Neq {
		t.Errorf("NegateOp(Eq) = %v, want Neq", neg)
	}
}

func TestFromComparisonNeqPunchesHole(t *testing.T) {
	d, ok := FromComparison(adt.Neq, 7)
	if !ok {
		t.Fatal("FromComparison(Neq, 7) rejected")
	}
	if d.HasLower || d.HasUpper {
		t.Error("Neq domain should remain unbounded aside from the hole")
	}
	if !d.Holes[7] {
		t.Error("Neq domain should punch a hole at 7")
	}
}
