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

// Package ziria is the top-level entry point to the expression-language
// interpreter used by the Ziria optimizer: it selects one of the
// interpreter's three roles (partial evaluator, full evaluator, or
// approximator) for a given typed IR expression and reports either a
// result and its accumulated print output, or an error and whatever
// output was produced before the error occurred.
//
// Lexing, parsing, type checking, code generation, the stream-combinator
// layer, and the Ziria runtime are all external collaborators; this
// package consumes an already-typed adt.Expr and, for the two Src
// variants, a caller-supplied TypeChecker that produces one.
package ziria

import (
	"fmt"

	"github.com/octaplexsys/Ziria/internal/core/adt"
	"github.com/octaplexsys/Ziria/internal/core/eval"
)

// Error is what a failed top-level call returns: the classified reason the
// branch failed, alongside any print output accumulated before the
// failure.
type Error struct {
	Code   adt.ErrorCode
	Err    error
	Prints string
}

func (e *Error) Error() string { return e.Err.Error() }

func fromBottom(b *adt.Bottom, prints string) *Error {
	return &Error{Code: b.Code, Err: b.Err, Prints: prints}
}

// head runs e to completion in mode and returns its single branch. Partial
// and Full evaluation never produce more than one branch; Approx mode must
// go through Approximate/Satisfiable instead.
func head(mode eval.Mode, e adt.Expr) (adt.Expr, string, *adt.Bottom) {
	c := eval.New(mode)
	bs := eval.Reduce(c, e)
	b := bs[0]
	if b.Err != nil {
		return nil, b.Ctx.Output(), b.Err
	}
	return b.Result, b.Ctx.Output(), nil
}

// EvalPartial reduces e under an open environment, residualizing any
// sub-term it cannot reduce rather than failing.
func EvalPartial(e adt.Expr) (adt.Expr, string, error) {
	v, prints, b := head(eval.ModePartial, e)
	if b != nil {
		return nil, prints, fromBottom(b, prints)
	}
	return v, prints, nil
}

// EvalFull reduces e to a ground value, failing with FreeVariables if any
// sub-term depends on an unbound variable. A successful result is always
// one of *adt.Val, *adt.ValArr, or *adt.StructLit, fully in normal form.
func EvalFull(e adt.Expr) (adt.Expr, string, error) {
	v, prints, b := head(eval.ModeFull, e)
	if b != nil {
		return nil, prints, fromBottom(b, prints)
	}
	return v, prints, nil
}

// EvalInt fully evaluates e and projects out a VInt, failing with
// TypeProjection if the ground result is some other shape.
func EvalInt(e adt.Expr) (int64, string, error) {
	v, prints, err := EvalFull(e)
	if err != nil {
		return 0, prints, err
	}
	val, ok := v.(*adt.Val)
	if !ok {
		return 0, prints, &Error{Code: adt.TypeProjection, Err: fmt.Errorf("not an integer"), Prints: prints}
	}
	vi, ok := val.V.(adt.VInt)
	if !ok {
		return 0, prints, &Error{Code: adt.TypeProjection, Err: fmt.Errorf("not an integer"), Prints: prints}
	}
	return vi.V, prints, nil
}

// EvalBool fully evaluates e and projects out a VBool, failing with
// TypeProjection if the ground result is some other shape.
func EvalBool(e adt.Expr) (bool, string, error) {
	v, prints, err := EvalFull(e)
	if err != nil {
		return false, prints, err
	}
	val, ok := v.(*adt.Val)
	if !ok {
		return false, prints, &Error{Code: adt.TypeProjection, Err: fmt.Errorf("not a boolean"), Prints: prints}
	}
	vb, ok := val.V.(adt.VBool)
	if !ok {
		return false, prints, &Error{Code: adt.TypeProjection, Err: fmt.Errorf("not a boolean"), Prints: prints}
	}
	return bool(vb), prints, nil
}

// ApproxResult is one surviving branch of Approximate: a reduced value
// together with the prints accumulated on that branch.
type ApproxResult struct {
	Value  adt.Expr
	Prints string
}

// Approximate enumerates every branch the approximator reaches, silently
// dropping branches that ended in an error (per the specification's
// propagation policy: approximate never surfaces a per-branch error to its
// caller).
func Approximate(e adt.Expr) []ApproxResult {
	c := eval.New(eval.ModeApprox)
	bs := eval.Reduce(c, e)
	out := make([]ApproxResult, 0, len(bs))
	for _, b := range bs {
		if b.Err != nil {
			continue
		}
		out = append(out, ApproxResult{Value: b.Result, Prints: b.Ctx.Output()})
	}
	return out
}

// Satisfiable reports whether some branch of Approximate(e) reduces e to
// VBool true.
func Satisfiable(e adt.Expr) bool {
	for _, r := range Approximate(e) {
		if v, ok := r.Value.(*adt.Val); ok {
			if b, ok := v.V.(adt.VBool); ok && bool(b) {
				return true
			}
		}
	}
	return false
}

// Provable reports whether e holds under every guess the approximator is
// willing to make: it is sound with respect to the guessing strategy in
// internal/core/eval, not a general decision procedure, so a false result
// never rules out that e happens to be true for reasons the guesser cannot
// see.
func Provable(e adt.Expr) bool {
	return !Satisfiable(notExpr(e))
}

// Implies reports whether a implies b under the same approximation the
// guesser performs for Provable.
func Implies(a, b adt.Expr) bool {
	return Provable(orExpr(notExpr(a), b))
}

func notExpr(e adt.Expr) adt.Expr {
	return &adt.UnOp{Op: adt.Not, X: e}
}

func orExpr(a, b adt.Expr) adt.Expr {
	return &adt.BinOp{Op: adt.Or, X: a, Y: b}
}

// TypeChecker elaborates Ziria source text into the typed IR the
// interpreter consumes. It is a black box to this package: EvalSrcInt and
// EvalSrcBool forward whatever error it returns as TypeCheckError and
// otherwise hand its result straight to EvalInt/EvalBool.
type TypeChecker interface {
	Check(src string) (adt.Expr, error)
}

// EvalSrcInt type-checks src, then evaluates it to an Int.
func EvalSrcInt(tc TypeChecker, src string) (int64, string, error) {
	e, err := tc.Check(src)
	if err != nil {
		return 0, "", &Error{Code: adt.TypeCheckError, Err: err}
	}
	return EvalInt(e)
}

// EvalSrcBool type-checks src, then evaluates it to a Bool.
func EvalSrcBool(tc TypeChecker, src string) (bool, string, error) {
	e, err := tc.Check(src)
	if err != nil {
		return false, "", &Error{Code: adt.TypeCheckError, Err: err}
	}
	return EvalBool(e)
}
