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

// This file implements assignment through a deref path: Var | ArrRead path
// | Proj path. Assignment is modeled, as the specification puts it, as
// "given a function f : Value -> Value, update the variable at the root by
// composing f with index/field updates along the path."
package eval

import "github.com/octaplexsys/Ziria/internal/core/adt"

// update is the f in the specification's description of assignment.
type update func(old adt.Expr) (adt.Expr, *adt.Bottom)

// doAssign reduces rhs fully, then writes it through the deref path lhs.
// It always evaluates to VUnit.
func doAssign(c *Ctx, lhs, rhs adt.Expr) []Branch {
	return bind(Reduce(c, rhs), func(c *Ctx, rhsVal adt.Expr) []Branch {
		return bind(updatePath(c, lhs, func(adt.Expr) (adt.Expr, *adt.Bottom) {
			return rhsVal, nil
		}), func(c *Ctx, _ adt.Expr) []Branch {
			return one(c, unitVal())
		})
	})
}

func unitVal() adt.Expr {
	return adt.NewVal(noPos, adt.TUnit, adt.VUnit{})
}

// updatePath walks lhs to its root Var, applies f to the current value
// found there, and writes the result back. It returns the root variable's
// updated contents; doAssign discards them and evaluates to VUnit.
func updatePath(c *Ctx, lhs adt.Expr, f update) []Branch {
	switch p := lhs.(type) {
	case *adt.Var:
		old, ok := c.Heap.Lookup(p.ID)
		if !ok {
			return failed(c, adt.Newf(p, adt.NotInScope, "write to variable %q not in scope", p.Name))
		}
		newVal, err := f(old)
		if err != nil {
			return failed(c, err)
		}
		c.Heap.Set(p.ID, newVal)
		return one(c, newVal)

	case *adt.ArrRead:
		return bind(Reduce(c, p.Idx), func(c *Ctx, idxE adt.Expr) []Branch {
			idxVal, ok := idxE.(*adt.Val)
			if !ok {
				return failed(c, adt.Newf(p, adt.CastDomainError, "Partial assignment for arrays/structs not supported"))
			}
			i := int(idxVal.V.(adt.VInt).V)
			if !p.Kind.Slice {
				return updatePath(c, p.Arr, func(old adt.Expr) (adt.Expr, *adt.Bottom) {
					arr, ok := old.(*adt.ValArr)
					if !ok {
						return nil, adt.Newf(p, adt.CastDomainError, "Partial assignment for arrays/structs not supported")
					}
					prefix, _, suffix, ok := adt.SplitArrayAt(arr, i)
					if !ok {
						return nil, adt.Newf(p, adt.OutOfBounds, "index %d out of bounds", i)
					}
					newElem, err := f(arr.Elems[i])
					if err != nil {
						return nil, err
					}
					return spliceArr(prefix, []adt.Expr{newElem}, suffix), nil
				})
			}
			n := p.Kind.Len
			return updatePath(c, p.Arr, func(old adt.Expr) (adt.Expr, *adt.Bottom) {
				arr, ok := old.(*adt.ValArr)
				if !ok {
					return nil, adt.Newf(p, adt.CastDomainError, "Partial assignment for arrays/structs not supported")
				}
				prefix, middle, suffix, ok := adt.SliceArrayAt(arr, i, n)
				if !ok {
					return nil, adt.Newf(p, adt.OutOfBounds, "slice [%d:%d) out of bounds", i, i+n)
				}
				newMiddleE, err := f(&adt.ValArr{Elems: middle})
				if err != nil {
					return nil, err
				}
				newMiddle, ok := newMiddleE.(*adt.ValArr)
				if !ok || len(newMiddle.Elems) != n {
					panic("internal invariant violation: slice assignment changed length")
				}
				return spliceArr(prefix, newMiddle.Elems, suffix), nil
			})
		})

	case *adt.Proj:
		return updatePath(c, p.X, func(old adt.Expr) (adt.Expr, *adt.Bottom) {
			s, ok := old.(*adt.StructLit)
			if !ok {
				return nil, adt.Newf(p, adt.CastDomainError, "Partial assignment for arrays/structs not supported")
			}
			before, field, after, ok := adt.FindField(s, p.Field)
			if !ok {
				return nil, adt.Newf(p, adt.UnknownField, "unknown field %q", p.Field)
			}
			newVal, err := f(field.Val)
			if err != nil {
				return nil, err
			}
			fields := make([]adt.StructField, 0, len(s.Fields))
			fields = append(fields, before...)
			fields = append(fields, adt.StructField{Name: p.Field, Val: newVal})
			fields = append(fields, after...)
			return &adt.StructLit{Type: s.Type, Fields: fields}, nil
		})

	default:
		return failed(c, adt.Newf(lhs, adt.NotInScope, "malformed assignment target"))
	}
}

func spliceArr(prefix, middle, suffix []adt.Expr) *adt.ValArr {
	elems := make([]adt.Expr, 0, len(prefix)+len(middle)+len(suffix))
	elems = append(elems, prefix...)
	elems = append(elems, middle...)
	elems = append(elems, suffix...)
	return &adt.ValArr{Elems: elems}
}
