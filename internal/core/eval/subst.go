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

package eval

import "github.com/octaplexsys/Ziria/internal/core/adt"

// subst replaces every occurrence of Var{ID: id} in e with repl, textually,
// without reducing repl first. Because every binding form carries a unique
// identifier assigned once by the type checker, shadowing can never
// reintroduce id inside a nested binding, so no capture-avoidance renaming
// is needed: a plain structural walk is already capture-avoiding.
//
// This is the only place in the interpreter that uses substitution; it
// exists solely to implement Let(x, ForceInline, e1, e2), which must
// preserve e1's side effects at every syntactic use of x in e2 rather than
// evaluate e1 once.
func subst(e adt.Expr, id adt.UniqID, repl adt.Expr) adt.Expr {
	switch x := e.(type) {
	case *adt.Val:
		return x
	case *adt.ValArr:
		elems := make([]adt.Expr, len(x.Elems))
		for i, el := range x.Elems {
			elems[i] = subst(el, id, repl)
		}
		return &adt.ValArr{Elems: elems}
	case *adt.StructLit:
		fields := make([]adt.StructField, len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = adt.StructField{Name: f.Name, Val: subst(f.Val, id, repl)}
		}
		return &adt.StructLit{Type: x.Type, Fields: fields}
	case *adt.Var:
		if x.ID == id {
			return repl
		}
		return x
	case *adt.UnOp:
		return &adt.UnOp{Op: x.Op, X: subst(x.X, id, repl)}
	case *adt.BinOp:
		return &adt.BinOp{Op: x.Op, X: subst(x.X, id, repl), Y: subst(x.Y, id, repl)}
	case *adt.Cast:
		return &adt.Cast{Target: x.Target, X: subst(x.X, id, repl)}
	case *adt.ArrRead:
		return &adt.ArrRead{Arr: subst(x.Arr, id, repl), Idx: subst(x.Idx, id, repl), Kind: x.Kind}
	case *adt.Proj:
		return &adt.Proj{X: subst(x.X, id, repl), Field: x.Field}
	case *adt.Let:
		body := x.Body
		if x.X != id {
			body = subst(x.Body, id, repl)
		}
		return &adt.Let{X: x.X, Name: x.Name, ForceInline: x.ForceInline, Init: subst(x.Init, id, repl), Body: body}
	case *adt.LetRef:
		init := x.Init
		if init != nil {
			init = subst(init, id, repl)
		}
		body := x.Body
		if x.X != id {
			body = subst(x.Body, id, repl)
		}
		return &adt.LetRef{X: x.X, Name: x.Name, Type: x.Type, Init: init, Body: body}
	case *adt.Assign:
		return &adt.Assign{Lhs: subst(x.Lhs, id, repl), Rhs: subst(x.Rhs, id, repl)}
	case *adt.Seq:
		return &adt.Seq{X: subst(x.X, id, repl), Y: subst(x.Y, id, repl)}
	case *adt.If:
		return &adt.If{Cond: subst(x.Cond, id, repl), Then: subst(x.Then, id, repl), Else: subst(x.Else, id, repl)}
	case *adt.While:
		return &adt.While{Cond: subst(x.Cond, id, repl), Body: subst(x.Body, id, repl)}
	case *adt.For:
		body := x.Body
		if x.X != id {
			body = subst(x.Body, id, repl)
		}
		return &adt.For{X: x.X, Name: x.Name, Start: subst(x.Start, id, repl), Len: subst(x.Len, id, repl), Body: body}
	case *adt.Print:
		return &adt.Print{Newline: x.Newline, X: subst(x.X, id, repl)}
	case *adt.LUT:
		return &adt.LUT{Tag: x.Tag, X: subst(x.X, id, repl)}
	case *adt.ErrorExpr, *adt.Call, *adt.BPerm, *adt.Iter:
		return x
	default:
		return x
	}
}
