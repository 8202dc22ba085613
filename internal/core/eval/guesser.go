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

// This file is the approximator's one non-deterministic primitive: guessing
// the value of a boolean sub-expression that did not reduce to a ground
// VBool. Only boolean-typed sub-terms are ever guessed; a non-boolean
// sub-term that cannot reduce simply residualizes, exactly as it would in
// partial mode, since the guesser has no domain defined for it.
package eval

import (
	"github.com/octaplexsys/Ziria/internal/core/adt"
	"github.com/octaplexsys/Ziria/internal/core/guess"
)

// guessBoolExpr resolves e, a boolean-typed expression that failed to
// reduce to a ground value, into one or more ground-VBool branches.
//
// If e has the shape "operand ⊙ k" (or "k ⊙ operand") for a ground integer
// k and a comparator ⊙, the guess narrows operand's tracked integer domain
// instead of e's own memo: this lets a chain of guesses over the same
// variable accumulate (e.g. x < 10, then x > 0, then x != 5) rather than
// each comparison guessing independently and risking a self-contradictory
// combination. Any other boolean shape — And, Or, Not, a bare free
// variable — gets a flat true/false guess keyed on its own structural Key,
// reused from the guess memo if this exact sub-expression was already
// guessed once (so that two syntactic occurrences of the same free boolean
// term always agree).
func guessBoolExpr(c *Ctx, e adt.Expr) []Branch {
	if cmp, ok := e.(*adt.BinOp); ok {
		if op, k, operand, ok := matchIntComparison(cmp); ok {
			return guessIntComparison(c, operand, op, k)
		}
	}

	key := adt.Key(e)
	if v, ok := c.Guess.Bool(key); ok {
		return one(c, boolVal(v))
	}
	cTrue := c.Fork()
	cTrue.Guess.SetBool(key, true)
	cFalse := c.Fork()
	cFalse.Guess.SetBool(key, false)
	return []Branch{
		{Ctx: cTrue, Result: boolVal(true)},
		{Ctx: cFalse, Result: boolVal(false)},
	}
}

// matchIntComparison recognizes "operand op k" for a ground integer k and a
// non-ground operand, normalizing "k op operand" to the mirrored comparator
// on operand so callers only ever see the operand-first shape.
func matchIntComparison(cmp *adt.BinOp) (op adt.BinOpKind, k int64, operand adt.Expr, ok bool) {
	if !isComparator(cmp.Op) {
		return 0, 0, nil, false
	}
	if yv, isVal := cmp.Y.(*adt.Val); isVal {
		if yi, isInt := yv.V.(adt.VInt); isInt {
			if _, xGround := cmp.X.(*adt.Val); !xGround {
				return cmp.Op, yi.V, cmp.X, true
			}
		}
	}
	if xv, isVal := cmp.X.(*adt.Val); isVal {
		if xi, isInt := xv.V.(adt.VInt); isInt {
			if _, yGround := cmp.Y.(*adt.Val); !yGround {
				mirrored, ok := mirror(cmp.Op)
				if !ok {
					return 0, 0, nil, false
				}
				return mirrored, xi.V, cmp.Y, true
			}
		}
	}
	return 0, 0, nil, false
}

func isComparator(op adt.BinOpKind) bool {
	switch op {
	case adt.Eq, adt.Neq, adt.Lt, adt.Gt, adt.Leq, adt.Geq:
		return true
	}
	return false
}

// mirror rewrites "k op operand" as "operand op' k": < and > swap, <= and >=
// swap, = and != are symmetric.
func mirror(op adt.BinOpKind) (adt.BinOpKind, bool) {
	switch op {
	case adt.Eq:
		return adt.Eq, true
	case adt.Neq:
		return adt.Neq, true
	case adt.Lt:
		return adt.Gt, true
	case adt.Gt:
		return adt.Lt, true
	case adt.Leq:
		return adt.Geq, true
	case adt.Geq:
		return adt.Leq, true
	}
	return 0, false
}

// guessIntComparison branches on "operand op k" by narrowing operand's
// tracked integer domain with the domain the comparison (and its negation)
// implies, pruning any branch whose resulting domain is provably empty. It
// can therefore return zero, one, or two branches.
func guessIntComparison(c *Ctx, operand adt.Expr, op adt.BinOpKind, k int64) []Branch {
	domKey := adt.Key(operand)
	cur := c.Guess.IntDomain(domKey)

	negOp, ok := guess.NegateOp(op)
	if !ok {
		return failed(c, adt.Newf(nil, adt.CastDomainError, "unguessable comparator"))
	}
	posDom, _ := guess.FromComparison(op, k)
	negDom, _ := guess.FromComparison(negOp, k)

	var out []Branch
	if d := cur.Intersect(posDom); !d.Empty() {
		cPos := c.Fork()
		cPos.Guess.SetIntDomain(domKey, d)
		out = append(out, Branch{Ctx: cPos, Result: boolVal(true)})
	}
	if d := cur.Intersect(negDom); !d.Empty() {
		cNeg := c.Fork()
		cNeg.Guess.SetIntDomain(domKey, d)
		out = append(out, Branch{Ctx: cNeg, Result: boolVal(false)})
	}
	return out
}

func boolVal(b bool) *adt.Val {
	return adt.NewVal(noPos, adt.TBool, adt.VBool(b))
}
