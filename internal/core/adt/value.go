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

// Scalar is a ground scalar value: VUnit, VBit, VBool, VInt, VDouble, or
// VString. Arrays and records are not scalars; they stay represented as
// expressions (ValArr, StructLit) so that partial reduction can coexist
// with concrete data (see Expr normal forms).
type Scalar interface {
	Kind() Kind
	String() string
	scalar()
}

// VUnit is the single unit value.
type VUnit struct{}

func (VUnit) Kind() Kind     { return UnitKind }
func (VUnit) String() string { return "()" }
func (VUnit) scalar()        {}

// VBit is a bit value. Bit and Bool are distinct kinds; only Cast converts
// between them.
type VBit bool

func (VBit) Kind() Kind       { return BitKind }
func (b VBit) String() string { return fmt.Sprintf("%dbit", b2i(bool(b))) }
func (VBit) scalar()          {}

// VBool is a boolean value.
type VBool bool

func (VBool) Kind() Kind       { return BoolKind }
func (b VBool) String() string { return fmt.Sprintf("%t", bool(b)) }
func (VBool) scalar()          {}

// VInt is a mathematical integer value whose width is carried alongside it,
// matching the "Int(w)" type tag in the data model (w in {8,16,32,64}).
type VInt struct {
	Width int
	V     int64
}

func (VInt) Kind() Kind       { return IntKind }
func (i VInt) String() string { return fmt.Sprintf("%d", i.V) }
func (VInt) scalar()          {}

// VDouble is an IEEE double-precision value.
type VDouble float64

func (VDouble) Kind() Kind       { return DoubleKind }
func (d VDouble) String() string { return fmt.Sprintf("%g", float64(d)) }
func (VDouble) scalar()          {}

// VString is a string value.
type VString string

func (VString) Kind() Kind       { return StringKind }
func (s VString) String() string { return string(s) }
func (VString) scalar()          {}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// InitialScalar returns the type-driven default scalar for a LetRef with no
// initializer, for every scalar kind. Array and struct defaults are built
// structurally in eval.initialValue.
func InitialScalar(t *Type) (Scalar, bool) {
	switch t.Kind {
	case UnitKind:
		return VUnit{}, true
	case BitKind:
		return VBit(false), true
	case BoolKind:
		return VBool(false), true
	case IntKind:
		return VInt{Width: t.Width, V: 0}, true
	case DoubleKind:
		return VDouble(0), true
	case StringKind:
		return VString(""), true
	default:
		return nil, false
	}
}
