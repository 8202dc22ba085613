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

// Package adt defines the typed expression IR consumed by the interpreter,
// the dynamic value model, and the dynamic operator table that gives the
// IR's primitives their (possibly type-dependent) meaning.
//
// None of the types here are produced by a lexer or parser in this
// repository: the IR is assumed to arrive already typed, from the
// compiler's type checker. A Node never needs to be re-type-checked; it is
// consumed as-is.
package adt

import "github.com/octaplexsys/Ziria/internal/pos"

// UniqID identifies a variable by binding occurrence, not by source name.
// Shadowing therefore never merges two bindings: two Var nodes with the
// same Name but different UniqID refer to distinct heap slots.
type UniqID int64

// Node is any IR node.
type Node interface {
	Pos() pos.Position
	node()
}

// Expr is an IR node that can be reduced to a value (or left residual).
type Expr interface {
	Node
	expr()
}

type base struct{ P pos.Position }

func (b base) Pos() pos.Position { return b.P }
func (base) node()               {}

// Val is a literal scalar.
type Val struct {
	base
	Type *Type
	V    Scalar
}

func (*Val) expr() {}

// ValArr is an array literal whose elements are themselves expressions in
// normal form (ground values, or nested literals during partial reduction).
type ValArr struct {
	base
	Elems []Expr
}

func (*ValArr) expr() {}

// StructField is one named field of a record literal; field order is
// preserved end to end, including through reduction and equality.
type StructField struct {
	Name string
	Val  Expr
}

// StructLit is a record literal.
type StructLit struct {
	base
	Type   *Type
	Fields []StructField
}

func (*StructLit) expr() {}

// Var is a reference to a named variable, carrying the unique identifier
// and type assigned to it by the type checker.
type Var struct {
	base
	ID   UniqID
	Name string
	Type *Type
}

func (*Var) expr() {}

// UnOpKind enumerates the unary dynamic operators.
type UnOpKind uint8

const (
	Neg UnOpKind = iota
	Not
	BwNeg
	ALength
)

func (op UnOpKind) String() string {
	return [...]string{"Neg", "Not", "BwNeg", "ALength"}[op]
}

// UnOp applies a unary dynamic operator to a single operand.
type UnOp struct {
	base
	Op UnOpKind
	X  Expr
}

func (*UnOp) expr() {}

// BinOpKind enumerates the binary dynamic operators, including the
// short-circuit-free And/Or (see BinOp dispatch notes).
type BinOpKind uint8

const (
	Add BinOpKind = iota
	Sub
	Mult
	Div
	Rem
	Expon
	ShL
	ShR
	BwAnd
	BwOr
	BwXor
	Eq
	Neq
	Lt
	Gt
	Leq
	Geq
	And
	Or
)

func (op BinOpKind) String() string {
	return [...]string{
		"Add", "Sub", "Mult", "Div", "Rem", "Expon", "ShL", "ShR",
		"BwAnd", "BwOr", "BwXor", "Eq", "Neq", "Lt", "Gt", "Leq", "Geq",
		"And", "Or",
	}[op]
}

// BinOp applies a binary dynamic operator to two operands.
type BinOp struct {
	base
	Op   BinOpKind
	X, Y Expr
}

func (*BinOp) expr() {}

// Cast converts a ground scalar to Target, per the cast matrix.
type Cast struct {
	base
	Target *Type
	X      Expr
}

func (*Cast) expr() {}

// ReadKind distinguishes a single-element array read (Singleton) from a
// slice read of Len elements (Length(Len)).
type ReadKind struct {
	Slice bool
	Len   int // meaningful only when Slice is true
}

// Singleton builds the ReadKind for a single-element read.
func Singleton() ReadKind { return ReadKind{} }

// SliceOf builds the ReadKind for an n-element slice read.
func SliceOf(n int) ReadKind { return ReadKind{Slice: true, Len: n} }

// ArrRead reads a single element or a contiguous slice out of Arr at Idx.
type ArrRead struct {
	base
	Arr  Expr
	Idx  Expr
	Kind ReadKind
}

func (*ArrRead) expr() {}

// NewArrWrite builds the Assign node that ArrWrite desugars to on entry:
// ArrWrite(arr, idx, kind, rhs) == Assign(ArrRead(arr, idx, kind), rhs).
func NewArrWrite(p pos.Position, arr, idx Expr, kind ReadKind, rhs Expr) *Assign {
	return &Assign{
		base: base{p},
		Lhs:  &ArrRead{base: base{p}, Arr: arr, Idx: idx, Kind: kind},
		Rhs:  rhs,
	}
}

// Proj projects a named field out of a struct.
type Proj struct {
	base
	X     Expr
	Field string
}

func (*Proj) expr() {}

// Let is an immutable-let binding. When ForceInline is true, Init is
// substituted textually into Body rather than evaluated once (see
// interpreter rule 7 and the Force-inline equivalence property).
type Let struct {
	base
	X           UniqID
	Name        string
	ForceInline bool
	Init        Expr
	Body        Expr
}

func (*Let) expr() {}

// LetRef is a mutable-ref binding. Init may be nil, in which case the slot
// is seeded with the type-driven default for Type.
type LetRef struct {
	base
	X    UniqID
	Name string
	Type *Type
	Init Expr // nil if no initializer
	Body Expr
}

func (*LetRef) expr() {}

// Assign writes Rhs through the deref path Lhs (Var | ArrRead | Proj,
// recursively). It evaluates to VUnit.
type Assign struct {
	base
	Lhs Expr
	Rhs Expr
}

func (*Assign) expr() {}

// Seq sequences two expressions, discarding the first's result.
type Seq struct {
	base
	X, Y Expr
}

func (*Seq) expr() {}

// If is a conditional.
type If struct {
	base
	Cond, Then, Else Expr
}

func (*If) expr() {}

// While is a pre-test loop.
type While struct {
	base
	Cond, Body Expr
}

func (*While) expr() {}

// For is a bounded counting loop: x ranges over [Start, Start+Len).
type For struct {
	base
	X     UniqID
	Name  string
	Start Expr
	Len   Expr
	Body  Expr
}

func (*For) expr() {}

// Call is a function call. The interpreter always rejects it (see
// UnsupportedConstruct); it exists in the IR only so that inputs mentioning
// calls produce a clear error instead of a type assertion panic.
type Call struct {
	base
	Fn   Expr
	Args []Expr
}

func (*Call) expr() {}

// Print reduces X and appends its pretty-printed form to the branch output,
// followed by a newline when Newline is set.
type Print struct {
	base
	Newline bool
	X       Expr
}

func (*Print) expr() {}

// ErrorExpr unconditionally fails evaluation with Msg.
type ErrorExpr struct {
	base
	Msg string
}

func (*ErrorExpr) expr() {}

// LUT is a transparent wrapper around a lookup-table-compiled expression;
// LUT compilation itself is out of scope, so the interpreter simply reduces
// the wrapped expression.
type LUT struct {
	base
	Tag string
	X   Expr
}

func (*LUT) expr() {}

// BPerm is a bit-permutation primitive. It is always rejected
// (UnsupportedConstruct); the fields are unconstrained by the IR.
type BPerm struct {
	base
	A, B Expr
}

func (*BPerm) expr() {}

// Iter is a stream-combinator iteration construct. It belongs to the
// stream/combinator layer, which is out of scope for the interpreter; like
// Call and BPerm, it is always rejected.
type Iter struct {
	base
	X Expr
}

func (*Iter) expr() {}

// NewVal is a convenience constructor for a ground literal.
func NewVal(p pos.Position, t *Type, v Scalar) *Val {
	return &Val{base: base{p}, Type: t, V: v}
}
