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

import "fmt"

// Kind identifies the shape of a Type or the runtime tag of a Value. It is
// the discriminant dynamic dispatch in the op table switches on.
type Kind uint8

const (
	UnitKind Kind = iota
	BitKind
	BoolKind
	IntKind
	DoubleKind
	StringKind
	ArrayKind
	StructKind
	ArrowKind
)

func (k Kind) String() string {
	switch k {
	case UnitKind:
		return "Unit"
	case BitKind:
		return "Bit"
	case BoolKind:
		return "Bool"
	case IntKind:
		return "Int"
	case DoubleKind:
		return "Double"
	case StringKind:
		return "String"
	case ArrayKind:
		return "Array"
	case StructKind:
		return "Struct"
	case ArrowKind:
		return "Arrow"
	default:
		return "?"
	}
}

// Widths accepted for IntKind types and values.
const (
	Width8  = 8
	Width16 = 16
	Width32 = 32
	Width64 = 64
)

// ArrayLen is either a literal length or a symbolic length variable (used
// when an array's length is parametric, e.g. in a function signature).
type ArrayLen struct {
	Literal   int
	IsLiteral bool
	Symbol    string // meaningful only when !IsLiteral
}

func LitLen(n int) ArrayLen { return ArrayLen{Literal: n, IsLiteral: true} }
func SymLen(s string) ArrayLen { return ArrayLen{Symbol: s} }

func (l ArrayLen) String() string {
	if l.IsLiteral {
		return fmt.Sprintf("%d", l.Literal)
	}
	return l.Symbol
}

// FieldType is one named, ordered field of a Struct type.
type FieldType struct {
	Name string
	Type *Type
}

// Type is the static type tag carried alongside values and expressions, per
// the data model in the specification: Unit, Bit, Bool, Int(w), Double,
// String, Array(len, elem), Struct(name, fields), Arrow(args, result).
type Type struct {
	Kind Kind

	// Width is meaningful only for IntKind (8, 16, 32, or 64).
	Width int

	// Len and Elem are meaningful only for ArrayKind.
	Len  ArrayLen
	Elem *Type

	// Name and Fields are meaningful only for StructKind.
	Name   string
	Fields []FieldType

	// Args and Result are meaningful only for ArrowKind. The interpreter
	// never fabricates Arrow values; this shape only participates in
	// type-matching of dynamic operators.
	Args   []*Type
	Result *Type
}

var (
	TUnit   = &Type{Kind: UnitKind}
	TBit    = &Type{Kind: BitKind}
	TBool   = &Type{Kind: BoolKind}
	TDouble = &Type{Kind: DoubleKind}
	TString = &Type{Kind: StringKind}
)

func TInt(width int) *Type { return &Type{Kind: IntKind, Width: width} }

func TArray(length ArrayLen, elem *Type) *Type {
	return &Type{Kind: ArrayKind, Len: length, Elem: elem}
}

func TStruct(name string, fields []FieldType) *Type {
	return &Type{Kind: StructKind, Name: name, Fields: fields}
}

// FindFieldType returns the type of the named field, or nil if absent.
func (t *Type) FindFieldType(name string) *Type {
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Type
		}
	}
	return nil
}

func (t *Type) String() string {
	switch t.Kind {
	case IntKind:
		return fmt.Sprintf("Int%d", t.Width)
	case ArrayKind:
		return fmt.Sprintf("Array(%s, %s)", t.Len, t.Elem)
	case StructKind:
		return fmt.Sprintf("Struct(%s)", t.Name)
	default:
		return t.Kind.String()
	}
}

// Equal reports whether two types are structurally identical. Symbolic
// array lengths compare by name, not by the (unknown) value they stand for.
func (t *Type) Equal(o *Type) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil || t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case IntKind:
		return t.Width == o.Width
	case ArrayKind:
		return t.Len == o.Len && t.Elem.Equal(o.Elem)
	case StructKind:
		if t.Name != o.Name || len(t.Fields) != len(o.Fields) {
			return false
		}
		for i, f := range t.Fields {
			if f.Name != o.Fields[i].Name || !f.Type.Equal(o.Fields[i].Type) {
				return false
			}
		}
		return true
	case ArrowKind:
		if len(t.Args) != len(o.Args) || !t.Result.Equal(o.Result) {
			return false
		}
		for i, a := range t.Args {
			if !a.Equal(o.Args[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
