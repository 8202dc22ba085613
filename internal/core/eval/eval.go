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

// This file implements the interpreter's single traversal: Reduce walks an
// Expr once, in every mode, and differs between modes only at the points a
// sub-term cannot be reduced further (see the per-rule mode switches below,
// and guessBoolExpr in guesser.go for how ModeApprox resolves one).
package eval

import (
	"github.com/octaplexsys/Ziria/internal/core/adt"
	"github.com/octaplexsys/Ziria/internal/pos"
)

var noPos = pos.NoPos

// Reduce is the interpreter core. It returns one Branch per distinct
// trajectory: exactly one in ModePartial and ModeFull, and possibly many in
// ModeApprox once a guess forks the search.
func Reduce(c *Ctx, e adt.Expr) []Branch {
	switch x := e.(type) {
	case *adt.Val:
		return one(c, x)
	case *adt.ValArr:
		return reduceArr(c, x)
	case *adt.StructLit:
		return reduceStruct(c, x)
	case *adt.Var:
		return reduceVar(c, x)
	case *adt.ArrRead:
		return reduceArrRead(c, x)
	case *adt.Proj:
		return reduceProj(c, x)
	case *adt.UnOp:
		return reduceUnOp(c, x)
	case *adt.BinOp:
		return reduceBinOp(c, x)
	case *adt.Cast:
		return reduceCast(c, x)
	case *adt.Let:
		return reduceLet(c, x)
	case *adt.LetRef:
		return reduceLetRef(c, x)
	case *adt.Assign:
		return doAssign(c, x.Lhs, x.Rhs)
	case *adt.Seq:
		return reduceSeq(c, x)
	case *adt.If:
		return reduceIf(c, x)
	case *adt.While:
		return reduceWhile(c, x)
	case *adt.For:
		return reduceFor(c, x)
	case *adt.Print:
		return reducePrint(c, x)
	case *adt.LUT:
		return Reduce(c, x.X)
	case *adt.ErrorExpr:
		return failed(c, adt.Newf(x, adt.ExplicitError, "%s", x.Msg))
	case *adt.Call, *adt.BPerm, *adt.Iter:
		return failed(c, adt.Newf(e, adt.UnsupportedConstruct, "construct %T is outside the interpreter's scope", e))
	default:
		return failed(c, adt.Newf(e, adt.UnsupportedConstruct, "unrecognized node %T", e))
	}
}

// listBranch is the list-valued analogue of Branch, used while reducing an
// ordered sequence of sub-expressions (array elements, struct fields) that
// must all land in the same trajectory.
type listBranch struct {
	Ctx     *Ctx
	Results []adt.Expr
	Err     *adt.Bottom
}

func reduceList(c *Ctx, items []adt.Expr) []listBranch {
	acc := []listBranch{{Ctx: c, Results: make([]adt.Expr, 0, len(items))}}
	for _, it := range items {
		var next []listBranch
		for _, a := range acc {
			if a.Err != nil {
				next = append(next, a)
				continue
			}
			for _, b := range Reduce(a.Ctx, it) {
				if b.Err != nil {
					next = append(next, listBranch{Ctx: b.Ctx, Err: b.Err})
					continue
				}
				results := make([]adt.Expr, len(a.Results), len(a.Results)+1)
				copy(results, a.Results)
				results = append(results, b.Result)
				next = append(next, listBranch{Ctx: b.Ctx, Results: results})
			}
		}
		acc = next
	}
	return acc
}

func reduceArr(c *Ctx, x *adt.ValArr) []Branch {
	lbs := reduceList(c, x.Elems)
	out := make([]Branch, 0, len(lbs))
	for _, lb := range lbs {
		if lb.Err != nil {
			out = append(out, Branch{Ctx: lb.Ctx, Err: lb.Err})
			continue
		}
		out = append(out, Branch{Ctx: lb.Ctx, Result: &adt.ValArr{Elems: lb.Results}})
	}
	return out
}

func reduceStruct(c *Ctx, x *adt.StructLit) []Branch {
	vals := make([]adt.Expr, len(x.Fields))
	for i, f := range x.Fields {
		vals[i] = f.Val
	}
	lbs := reduceList(c, vals)
	out := make([]Branch, 0, len(lbs))
	for _, lb := range lbs {
		if lb.Err != nil {
			out = append(out, Branch{Ctx: lb.Ctx, Err: lb.Err})
			continue
		}
		fields := make([]adt.StructField, len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = adt.StructField{Name: f.Name, Val: lb.Results[i]}
		}
		out = append(out, Branch{Ctx: lb.Ctx, Result: &adt.StructLit{Type: x.Type, Fields: fields}})
	}
	return out
}

func reduceVar(c *Ctx, x *adt.Var) []Branch {
	if v, ok := c.Heap.Lookup(x.ID); ok {
		return one(c, v)
	}
	switch c.Mode {
	case ModeFull:
		return failed(c, adt.Newf(x, adt.FreeVariables, "free variable %q", x.Name))
	case ModeApprox:
		if x.Type != nil && x.Type.Kind == adt.BoolKind {
			return guessBoolExpr(c, x)
		}
		return one(c, x)
	default: // ModePartial
		return one(c, x)
	}
}

func reduceArrRead(c *Ctx, x *adt.ArrRead) []Branch {
	return bind(Reduce(c, x.Arr), func(c *Ctx, arrE adt.Expr) []Branch {
		return bind(Reduce(c, x.Idx), func(c *Ctx, idxE adt.Expr) []Branch {
			arrV, arrOk := arrE.(*adt.ValArr)
			idxV, idxOk := idxE.(*adt.Val)
			if arrOk && idxOk {
				ii, ok := idxV.V.(adt.VInt)
				if !ok {
					return failed(c, adt.Newf(x, adt.CastDomainError, "array index is not an integer"))
				}
				i := int(ii.V)
				if !x.Kind.Slice {
					_, elem, _, ok := adt.SplitArrayAt(arrV, i)
					if !ok {
						return failed(c, adt.Newf(x, adt.OutOfBounds, "index %d out of bounds", i))
					}
					return one(c, elem)
				}
				_, middle, _, ok := adt.SliceArrayAt(arrV, i, x.Kind.Len)
				if !ok {
					return failed(c, adt.Newf(x, adt.OutOfBounds, "slice [%d:%d) out of bounds", i, i+x.Kind.Len))
				}
				return one(c, &adt.ValArr{Elems: middle})
			}
			switch c.Mode {
			case ModeFull:
				return failed(c, adt.Newf(x, adt.FreeVariables, "free variable in array read"))
			default: // ModePartial, ModeApprox: no guess strategy over array contents/indices
				return one(c, &adt.ArrRead{Arr: arrE, Idx: idxE, Kind: x.Kind})
			}
		})
	})
}

func reduceProj(c *Ctx, x *adt.Proj) []Branch {
	return bind(Reduce(c, x.X), func(c *Ctx, xE adt.Expr) []Branch {
		if s, ok := xE.(*adt.StructLit); ok {
			_, field, _, ok := adt.FindField(s, x.Field)
			if !ok {
				return failed(c, adt.Newf(x, adt.UnknownField, "unknown field %q", x.Field))
			}
			return one(c, field.Val)
		}
		switch c.Mode {
		case ModeFull:
			return failed(c, adt.Newf(x, adt.FreeVariables, "free variable in field projection"))
		default:
			return one(c, &adt.Proj{X: xE, Field: x.Field})
		}
	})
}

// isBoolOp reports whether a BinOpKind always yields a VBool, the only
// shapes the guesser knows how to assume a value for.
func isBoolOp(op adt.BinOpKind) bool {
	switch op {
	case adt.Eq, adt.Neq, adt.Lt, adt.Gt, adt.Leq, adt.Geq, adt.And, adt.Or:
		return true
	}
	return false
}

func reduceUnOp(c *Ctx, x *adt.UnOp) []Branch {
	return bind(Reduce(c, x.X), func(c *Ctx, xE adt.Expr) []Branch {
		// ALength has its own reduction rule: it only ever needs the array's
		// shape, never a fully evaluated scalar, so a ValArr literal (ground
		// or still holding residual elements) is already enough.
		if x.Op == adt.ALength {
			if arr, ok := xE.(*adt.ValArr); ok {
				return one(c, adt.NewVal(x.P, adt.TInt(adt.Width32), adt.VInt{Width: adt.Width32, V: int64(len(arr.Elems))}))
			}
			switch c.Mode {
			case ModeFull:
				return failed(c, adt.Newf(x, adt.FreeVariables, "free variable in array length"))
			default:
				return one(c, &adt.UnOp{Op: x.Op, X: xE})
			}
		}
		xg, ok := xE.(*adt.Val)
		if !ok {
			switch c.Mode {
			case ModeFull:
				return failed(c, adt.Newf(x, adt.FreeVariables, "free variable in unary operation"))
			case ModeApprox:
				if x.Op == adt.Not {
					return guessBoolExpr(c, &adt.UnOp{Op: x.Op, X: xE})
				}
				return one(c, &adt.UnOp{Op: x.Op, X: xE})
			default:
				return one(c, &adt.UnOp{Op: x.Op, X: xE})
			}
		}
		res, berr := adt.UnOp(x, x.Op, xg.V)
		if berr != nil {
			return failed(c, berr)
		}
		return one(c, adt.NewVal(x.P, scalarType(res), res))
	})
}

func reduceBinOp(c *Ctx, x *adt.BinOp) []Branch {
	return bind(Reduce(c, x.X), func(c *Ctx, xE adt.Expr) []Branch {
		return bind(Reduce(c, x.Y), func(c *Ctx, yE adt.Expr) []Branch {
			xg, xOk := xE.(*adt.Val)
			yg, yOk := yE.(*adt.Val)
			if xOk && yOk {
				res, berr := adt.BinOp(x, x.Op, xg.V, yg.V)
				if berr != nil {
					// Both operands fully ground and the op table still
					// refused: a genuine runtime error, not a groundness
					// gap. Partial and Full report it; Approx guesses the
					// outcome of a comparison or And/Or instead.
					if !isBoolOp(x.Op) || c.Mode != ModeApprox {
						return failed(c, berr)
					}
					return guessBoolExpr(c, &adt.BinOp{Op: x.Op, X: xE, Y: yE})
				}
				return one(c, adt.NewVal(x.P, scalarType(res), res))
			}
			switch c.Mode {
			case ModeFull:
				return failed(c, adt.Newf(x, adt.FreeVariables, "free variable in binary operation"))
			case ModeApprox:
				if isBoolOp(x.Op) {
					return guessBoolExpr(c, &adt.BinOp{Op: x.Op, X: xE, Y: yE})
				}
				return one(c, &adt.BinOp{Op: x.Op, X: xE, Y: yE})
			default: // ModePartial
				return one(c, &adt.BinOp{Op: x.Op, X: xE, Y: yE})
			}
		})
	})
}

func reduceCast(c *Ctx, x *adt.Cast) []Branch {
	return bind(Reduce(c, x.X), func(c *Ctx, xE adt.Expr) []Branch {
		xg, ok := xE.(*adt.Val)
		if !ok {
			switch c.Mode {
			case ModeFull:
				return failed(c, adt.Newf(x, adt.FreeVariables, "free variable in cast"))
			default:
				return one(c, &adt.Cast{Target: x.Target, X: xE})
			}
		}
		res, berr := adt.ApplyCast(x, x.Target, xg.V)
		if berr != nil {
			return failed(c, berr)
		}
		return one(c, adt.NewVal(x.P, x.Target, res))
	})
}

func reduceLet(c *Ctx, x *adt.Let) []Branch {
	if x.ForceInline {
		return Reduce(c, subst(x.Body, x.X, x.Init))
	}
	return bind(Reduce(c, x.Init), func(c *Ctx, initV adt.Expr) []Branch {
		c.Heap.Push(x.X, initV)
		return bind(Reduce(c, x.Body), func(c *Ctx, bodyV adt.Expr) []Branch {
			c.Heap.Pop()
			return one(c, bodyV)
		})
	})
}

func reduceLetRef(c *Ctx, x *adt.LetRef) []Branch {
	if x.Init != nil {
		return bind(Reduce(c, x.Init), func(c *Ctx, initV adt.Expr) []Branch {
			c.Heap.Push(x.X, initV)
			return bind(Reduce(c, x.Body), func(c *Ctx, bodyV adt.Expr) []Branch {
				c.Heap.Pop()
				return one(c, bodyV)
			})
		})
	}
	initV, berr := initialValue(x.P, x.Type)
	if berr != nil {
		return failed(c, berr)
	}
	c.Heap.Push(x.X, initV)
	return bind(Reduce(c, x.Body), func(c *Ctx, bodyV adt.Expr) []Branch {
		c.Heap.Pop()
		return one(c, bodyV)
	})
}

func reduceSeq(c *Ctx, x *adt.Seq) []Branch {
	return bind(Reduce(c, x.X), func(c *Ctx, _ adt.Expr) []Branch {
		return Reduce(c, x.Y)
	})
}

func reduceIf(c *Ctx, x *adt.If) []Branch {
	return bind(Reduce(c, x.Cond), func(c *Ctx, condE adt.Expr) []Branch {
		return bind(resolveCond(c, x, condE), func(c *Ctx, condV adt.Expr) []Branch {
			if bool(condV.(*adt.Val).V.(adt.VBool)) {
				return Reduce(c, x.Then)
			}
			return Reduce(c, x.Else)
		})
	})
}

func reduceWhile(c *Ctx, x *adt.While) []Branch {
	return bind(Reduce(c, x.Cond), func(c *Ctx, condE adt.Expr) []Branch {
		return bind(resolveCond(c, x, condE), func(c *Ctx, condV adt.Expr) []Branch {
			if !bool(condV.(*adt.Val).V.(adt.VBool)) {
				return one(c, unitVal())
			}
			return bind(Reduce(c, x.Body), func(c *Ctx, _ adt.Expr) []Branch {
				return reduceWhile(c, x)
			})
		})
	})
}

// resolveCond turns a reduced control-flow condition into a ground VBool
// Branch set: it passes a ground condition through untouched, and otherwise
// applies the mode's policy for control flow that didn't reduce (Partial and
// Full both fail; Approx guesses).
func resolveCond(c *Ctx, src adt.Node, condE adt.Expr) []Branch {
	if v, ok := condE.(*adt.Val); ok {
		if _, ok := v.V.(adt.VBool); ok {
			return one(c, v)
		}
	}
	switch c.Mode {
	case ModeApprox:
		return guessBoolExpr(c, condE)
	default:
		return failed(c, adt.Newf(src, adt.ControlFlowNotGround, "control flow condition is not ground"))
	}
}

func reduceFor(c *Ctx, x *adt.For) []Branch {
	return bind(Reduce(c, x.Start), func(c *Ctx, startE adt.Expr) []Branch {
		return bind(Reduce(c, x.Len), func(c *Ctx, lenE adt.Expr) []Branch {
			sv, sOk := startE.(*adt.Val)
			lv, lOk := lenE.(*adt.Val)
			if !sOk || !lOk {
				// The guesser has no domain over loop trip counts: a
				// non-ground bound is always an error, in every mode.
				return failed(c, adt.Newf(x, adt.ControlFlowNotGround, "for-loop bounds are not ground"))
			}
			si, ok := sv.V.(adt.VInt)
			if !ok {
				return failed(c, adt.Newf(x, adt.CastDomainError, "for-loop start is not an integer"))
			}
			ni, ok := lv.V.(adt.VInt)
			if !ok {
				return failed(c, adt.Newf(x, adt.CastDomainError, "for-loop length is not an integer"))
			}
			n := ni.V
			if n < 0 {
				n = 0
			}
			c.Heap.Push(x.X, adt.NewVal(x.P, adt.TInt(si.Width), adt.VInt{Width: si.Width, V: si.V}))
			branches := []Branch{{Ctx: c, Result: unitVal()}}
			for i := int64(0); i < n; i++ {
				iter := si.V + i
				branches = bind(branches, func(c *Ctx, _ adt.Expr) []Branch {
					c.Heap.Set(x.X, adt.NewVal(x.P, adt.TInt(si.Width), adt.VInt{Width: si.Width, V: iter}))
					return Reduce(c, x.Body)
				})
			}
			return bind(branches, func(c *Ctx, _ adt.Expr) []Branch {
				c.Heap.Pop()
				return one(c, unitVal())
			})
		})
	})
}

func reducePrint(c *Ctx, x *adt.Print) []Branch {
	return bind(Reduce(c, x.X), func(c *Ctx, v adt.Expr) []Branch {
		s := adt.Pretty(v)
		if x.Newline {
			s += "\n"
		}
		c.Print(s)
		return one(c, unitVal())
	})
}

// scalarType infers the static Type of a freshly computed Scalar, so that a
// reduction rule never has to thread a result type through the op table: the
// Scalar already carries everything Type needs (width included, for VInt).
func scalarType(s adt.Scalar) *adt.Type {
	switch v := s.(type) {
	case adt.VUnit:
		return adt.TUnit
	case adt.VBit:
		return adt.TBit
	case adt.VBool:
		return adt.TBool
	case adt.VInt:
		return adt.TInt(v.Width)
	case adt.VDouble:
		return adt.TDouble
	case adt.VString:
		return adt.TString
	default:
		return adt.TUnit
	}
}

// initialValue builds the type-driven default for a LetRef with no
// initializer, recursing structurally into arrays of literal length and
// structs; a symbolic array length has no default, matching the
// specification's wording that such a LetRef is ill-formed input.
func initialValue(p pos.Position, t *adt.Type) (adt.Expr, *adt.Bottom) {
	if s, ok := adt.InitialScalar(t); ok {
		return adt.NewVal(p, t, s), nil
	}
	switch t.Kind {
	case adt.ArrayKind:
		if !t.Len.IsLiteral {
			return nil, adt.Newf(nil, adt.CastDomainError, "array of symbolic length %q has no default value", t.Len)
		}
		elems := make([]adt.Expr, t.Len.Literal)
		for i := range elems {
			e, berr := initialValue(p, t.Elem)
			if berr != nil {
				return nil, berr
			}
			elems[i] = e
		}
		return &adt.ValArr{Elems: elems}, nil
	case adt.StructKind:
		fields := make([]adt.StructField, len(t.Fields))
		for i, f := range t.Fields {
			e, berr := initialValue(p, f.Type)
			if berr != nil {
				return nil, berr
			}
			fields[i] = adt.StructField{Name: f.Name, Val: e}
		}
		return &adt.StructLit{Type: t, Fields: fields}, nil
	default:
		return nil, adt.Newf(nil, adt.CastDomainError, "no default value for type %s", t)
	}
}
