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

package adt

import (
	"fmt"
	"strings"
)

// IsGround reports whether e is in normal form: a Val, or a ValArr/StructLit
// whose sub-parts are themselves all in normal form.
func IsGround(e Expr) bool {
	switch x := e.(type) {
	case *Val:
		return true
	case *ValArr:
		for _, el := range x.Elems {
			if !IsGround(el) {
				return false
			}
		}
		return true
	case *StructLit:
		for _, f := range x.Fields {
			if !IsGround(f.Val) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// SplitArrayAt returns the elements before i, the element at i, and the
// elements after i, for a ground array literal. It fails if i is out of
// [0, length).
func SplitArrayAt(arr *ValArr, i int) (prefix []Expr, elem Expr, suffix []Expr, ok bool) {
	if i < 0 || i >= len(arr.Elems) {
		return nil, nil, nil, false
	}
	return arr.Elems[:i], arr.Elems[i], arr.Elems[i+1:], true
}

// SliceArrayAt returns the elements before, the n-element run starting at
// i, and the elements after, for a ground array literal. It fails if
// i < 0 or i+n > length.
func SliceArrayAt(arr *ValArr, i, n int) (prefix, middle, suffix []Expr, ok bool) {
	if i < 0 || n < 0 || i+n > len(arr.Elems) {
		return nil, nil, nil, false
	}
	return arr.Elems[:i], arr.Elems[i : i+n], arr.Elems[i+n:], true
}

// FindField returns the fields before and after the named field, and the
// field itself, for a ground struct literal. It fails if fld is absent.
func FindField(s *StructLit, fld string) (before []StructField, field StructField, after []StructField, ok bool) {
	for i, f := range s.Fields {
		if f.Name == fld {
			return s.Fields[:i], f, s.Fields[i+1:], true
		}
	}
	return nil, StructField{}, nil, false
}

// Key produces a deterministic string encoding of e that ignores source
// positions, so that two structurally equal expressions at different
// positions compare equal. It is used to memoize guesses (see the guess
// package) and has no other role in evaluation. Only the shapes a reduction
// can leave residual (Val, ValArr, StructLit, Var, UnOp, BinOp, Cast,
// ArrRead, Proj) are encoded structurally; any other node kind is encoded by
// its Go type and node address, so two distinct copies of it get different
// keys.
func Key(e Expr) string {
	var b strings.Builder
	writeKey(&b, e)
	return b.String()
}

func writeKey(b *strings.Builder, e Expr) {
	if e == nil {
		b.WriteString("<nil>")
		return
	}
	switch x := e.(type) {
	case *Val:
		fmt.Fprintf(b, "Val(%s,%s)", x.Type, x.V)
	case *ValArr:
		b.WriteString("Arr[")
		for i, el := range x.Elems {
			if i > 0 {
				b.WriteByte(',')
			}
			writeKey(b, el)
		}
		b.WriteByte(']')
	case *StructLit:
		fmt.Fprintf(b, "Struct(%s){", x.Type)
		for i, f := range x.Fields {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(b, "%s=", f.Name)
			writeKey(b, f.Val)
		}
		b.WriteByte('}')
	case *Var:
		fmt.Fprintf(b, "Var(%d)", x.ID)
	case *UnOp:
		fmt.Fprintf(b, "Un(%d,", x.Op)
		writeKey(b, x.X)
		b.WriteByte(')')
	case *BinOp:
		fmt.Fprintf(b, "Bin(%d,", x.Op)
		writeKey(b, x.X)
		b.WriteByte(',')
		writeKey(b, x.Y)
		b.WriteByte(')')
	case *Cast:
		fmt.Fprintf(b, "Cast(%s,", x.Target)
		writeKey(b, x.X)
		b.WriteByte(')')
	case *ArrRead:
		fmt.Fprintf(b, "Read(%v,", x.Kind)
		writeKey(b, x.Arr)
		b.WriteByte(',')
		writeKey(b, x.Idx)
		b.WriteByte(')')
	case *Proj:
		writeKey(b, x.X)
		fmt.Fprintf(b, ".%s", x.Field)
	default:
		fmt.Fprintf(b, "%T@%p", e, e)
	}
}
