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

// This file implements the dynamic operator table: one monomorphic family
// per operator, keyed by the runtime type tags of its operands. Dispatch
// succeeds only when a family member matches; callers fall back to
// residualization or a guess according to the interpreter's mode.
package adt

import (
	"math"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

var roundCtx apd.Context

func init() {
	roundCtx = apd.BaseContext
	roundCtx.Precision = 40
	roundCtx.Rounding = apd.RoundHalfEven
}

func truncate(width int, v int64) int64 {
	if width >= 64 {
		return v
	}
	shift := uint(64 - width)
	return (v << shift) >> shift
}

// UnOp applies a unary dynamic operator. n is used only for error
// positions. ALength is not dispatched here: it operates on the array
// expression directly and has a dedicated reduction rule in the
// interpreter core.
func UnOp(n Node, op UnOpKind, x Scalar) (Scalar, *Bottom) {
	switch op {
	case Neg:
		switch v := x.(type) {
		case VInt:
			return VInt{Width: v.Width, V: truncate(v.Width, -v.V)}, nil
		case VDouble:
			return -v, nil
		}
	case Not:
		if v, ok := x.(VBool); ok {
			return !v, nil
		}
	case BwNeg:
		switch v := x.(type) {
		case VBit:
			return !v, nil
		case VBool:
			return !v, nil
		case VInt:
			return VInt{Width: v.Width, V: truncate(v.Width, ^v.V)}, nil
		}
	}
	return nil, Newf(n, CastDomainError, "operator %v not defined for %s", op, x.Kind())
}

// BinOp applies a binary dynamic operator. And/Or are accepted here too
// (the short-circuit decision of whether both operands are ground enough
// to evaluate at all is the interpreter's, not the op table's).
func BinOp(n Node, op BinOpKind, x, y Scalar) (Scalar, *Bottom) {
	switch op {
	case Add, Sub, Mult, Div, Rem, Expon:
		return arith(n, op, x, y)
	case ShL, ShR:
		return shift(n, op, x, y)
	case BwAnd, BwOr, BwXor:
		return bitwise(n, op, x, y)
	case Eq, Neq, Lt, Gt, Leq, Geq:
		return compare(n, op, x, y)
	case And, Or:
		xb, ok1 := x.(VBool)
		yb, ok2 := y.(VBool)
		if !ok1 || !ok2 {
			break
		}
		if op == And {
			return VBool(bool(xb) && bool(yb)), nil
		}
		return VBool(bool(xb) || bool(yb)), nil
	}
	return nil, Newf(n, CastDomainError, "operator %v not defined for %s and %s", op, x.Kind(), y.Kind())
}

func arith(n Node, op BinOpKind, x, y Scalar) (Scalar, *Bottom) {
	if xi, ok := x.(VInt); ok {
		yi, ok := y.(VInt)
		if !ok || yi.Width != xi.Width {
			return nil, Newf(n, CastDomainError, "mismatched integer widths")
		}
		switch op {
		case Add:
			return VInt{Width: xi.Width, V: truncate(xi.Width, xi.V+yi.V)}, nil
		case Sub:
			return VInt{Width: xi.Width, V: truncate(xi.Width, xi.V-yi.V)}, nil
		case Mult:
			return VInt{Width: xi.Width, V: truncate(xi.Width, xi.V*yi.V)}, nil
		case Div:
			if yi.V == 0 {
				return nil, Newf(n, CastDomainError, "integer division by zero")
			}
			return VInt{Width: xi.Width, V: truncate(xi.Width, xi.V/yi.V)}, nil // truncated toward zero
		case Rem:
			if yi.V == 0 {
				return nil, Newf(n, CastDomainError, "remainder by zero")
			}
			return VInt{Width: xi.Width, V: truncate(xi.Width, xi.V%yi.V)}, nil // sign of dividend
		case Expon:
			return VInt{Width: xi.Width, V: truncate(xi.Width, ipow(xi.V, yi.V))}, nil
		}
	}
	if xd, ok := x.(VDouble); ok {
		yd, ok := y.(VDouble)
		if !ok {
			return nil, Newf(n, CastDomainError, "mismatched operand kinds")
		}
		switch op {
		case Add:
			return xd + yd, nil
		case Sub:
			return xd - yd, nil
		case Mult:
			return xd * yd, nil
		case Div:
			return xd / yd, nil
		case Expon:
			return VDouble(math.Pow(float64(xd), float64(yd))), nil
		case Rem:
			return nil, Newf(n, CastDomainError, "remainder undefined for Double")
		}
	}
	return nil, Newf(n, CastDomainError, "arithmetic operator %v not defined for %s", op, x.Kind())
}

func ipow(base, exp int64) int64 {
	if exp < 0 {
		return 0
	}
	r := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			r *= base
		}
		base *= base
		exp >>= 1
	}
	return r
}

func shift(n Node, op BinOpKind, x, y Scalar) (Scalar, *Bottom) {
	xi, ok := x.(VInt)
	if !ok {
		return nil, Newf(n, CastDomainError, "shift operand must be an integer")
	}
	yi, ok := y.(VInt)
	if !ok {
		return nil, Newf(n, CastDomainError, "shift amount must be an integer")
	}
	if yi.V < 0 {
		return nil, Newf(n, CastDomainError, "negative shift amount")
	}
	sh := uint(yi.V)
	if op == ShL {
		return VInt{Width: xi.Width, V: truncate(xi.Width, xi.V<<sh)}, nil
	}
	// ShR is arithmetic (sign-extending).
	return VInt{Width: xi.Width, V: truncate(xi.Width, xi.V>>sh)}, nil
}

func bitwise(n Node, op BinOpKind, x, y Scalar) (Scalar, *Bottom) {
	switch xv := x.(type) {
	case VBit:
		yv, ok := y.(VBit)
		if !ok {
			break
		}
		switch op {
		case BwAnd:
			return xv && yv, nil
		case BwOr:
			return xv || yv, nil
		case BwXor:
			return xv != yv, nil
		}
	case VBool:
		yv, ok := y.(VBool)
		if !ok {
			break
		}
		switch op {
		case BwAnd:
			return VBool(bool(xv) && bool(yv)), nil
		case BwOr:
			return VBool(bool(xv) || bool(yv)), nil
		case BwXor:
			return VBool(bool(xv) != bool(yv)), nil
		}
	case VInt:
		yv, ok := y.(VInt)
		if !ok || yv.Width != xv.Width {
			break
		}
		switch op {
		case BwAnd:
			return VInt{Width: xv.Width, V: truncate(xv.Width, xv.V&yv.V)}, nil
		case BwOr:
			return VInt{Width: xv.Width, V: truncate(xv.Width, xv.V|yv.V)}, nil
		case BwXor:
			return VInt{Width: xv.Width, V: truncate(xv.Width, xv.V^yv.V)}, nil
		}
	}
	return nil, Newf(n, CastDomainError, "bitwise operator %v not defined for %s and %s", op, x.Kind(), y.Kind())
}

func compare(n Node, op BinOpKind, x, y Scalar) (Scalar, *Bottom) {
	var r int
	switch xv := x.(type) {
	case VUnit:
		r = 0
	case VBit:
		yv, ok := y.(VBit)
		if !ok {
			return nil, Newf(n, CastDomainError, "mismatched operand kinds")
		}
		r = boolCmp(bool(xv), bool(yv))
	case VBool:
		yv, ok := y.(VBool)
		if !ok {
			return nil, Newf(n, CastDomainError, "mismatched operand kinds")
		}
		r = boolCmp(bool(xv), bool(yv))
	case VInt:
		yv, ok := y.(VInt)
		if !ok {
			return nil, Newf(n, CastDomainError, "mismatched operand kinds")
		}
		r = intCmp(xv.V, yv.V)
	case VDouble:
		yv, ok := y.(VDouble)
		if !ok {
			return nil, Newf(n, CastDomainError, "mismatched operand kinds")
		}
		r = floatCmp(float64(xv), float64(yv))
	case VString:
		yv, ok := y.(VString)
		if !ok {
			return nil, Newf(n, CastDomainError, "mismatched operand kinds")
		}
		r = strings.Compare(string(xv), string(yv))
	default:
		return nil, Newf(n, CastDomainError, "%s is not orderable", x.Kind())
	}
	switch op {
	case Eq:
		return VBool(r == 0), nil
	case Neq:
		return VBool(r != 0), nil
	case Lt:
		return VBool(r < 0), nil
	case Gt:
		return VBool(r > 0), nil
	case Leq:
		return VBool(r <= 0), nil
	case Geq:
		return VBool(r >= 0), nil
	}
	return nil, Newf(n, CastDomainError, "unknown comparison %v", op)
}

func boolCmp(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func intCmp(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func floatCmp(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ApplyCast converts x to target, per the cast matrix in the specification.
// "round" uses round-half-to-even (banker's rounding); "truncate-or-id"
// means identity at equal width, else bitwise truncation with sign
// extension to the new width.
func ApplyCast(n Node, target *Type, x Scalar) (Scalar, *Bottom) {
	switch target.Kind {
	case UnitKind:
		return VUnit{}, nil

	case BitKind:
		switch v := x.(type) {
		case VBit:
			return v, nil
		case VBool:
			return VBit(v), nil
		}

	case BoolKind:
		switch v := x.(type) {
		case VBool:
			return v, nil
		case VBit:
			return VBool(v), nil
		}

	case IntKind:
		switch v := x.(type) {
		case VBit:
			return VInt{Width: target.Width, V: truncate(target.Width, int64(b2i(bool(v))))}, nil
		case VBool:
			return VInt{Width: target.Width, V: truncate(target.Width, int64(b2i(bool(v))))}, nil
		case VInt:
			if v.Width == target.Width {
				return v, nil
			}
			return VInt{Width: target.Width, V: truncate(target.Width, v.V)}, nil
		case VDouble:
			i, err := roundToInt64(float64(v))
			if err != nil {
				return nil, Newf(n, CastDomainError, "%v", err)
			}
			return VInt{Width: target.Width, V: truncate(target.Width, i)}, nil
		}

	case DoubleKind:
		switch v := x.(type) {
		case VInt:
			return VDouble(float64(v.V)), nil
		case VDouble:
			return v, nil
		}

	case StringKind:
		return VString(x.String()), nil
	}
	return nil, Newf(n, CastDomainError, "no cast from %s to %s", x.Kind(), target)
}

func roundToInt64(f float64) (int64, error) {
	d := new(apd.Decimal)
	if _, err := d.SetFloat64(f); err != nil {
		return 0, err
	}
	var rounded apd.Decimal
	if _, err := roundCtx.RoundToIntegralValue(&rounded, d); err != nil {
		return 0, err
	}
	i, err := rounded.Int64()
	if err != nil {
		return 0, err
	}
	return i, nil
}
