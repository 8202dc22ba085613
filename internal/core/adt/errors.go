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
	"github.com/octaplexsys/Ziria/internal/errors"
	"github.com/octaplexsys/Ziria/internal/pos"
)

// ErrorCode classifies why a branch failed. See the specification's error
// surface: every top-level call returns either Ok(result, prints) or
// Err(message, prints). The code classifies the failure for callers; it does
// not affect the message text (that comes from Bottom.Err), and it never
// drives control flow outside of the branch it belongs to.
type ErrorCode int8

const (
	// OutOfBounds: array index or slice outside [0, length).
	OutOfBounds ErrorCode = iota
	// UnknownField: struct projection or assignment to an absent field.
	UnknownField
	// NotInScope: read or write of a variable absent from the heap.
	NotInScope
	// FreeVariables: full-mode demand for a value depending on a free var.
	FreeVariables
	// ControlFlowNotGround: If/While/For condition or bounds didn't reduce.
	ControlFlowNotGround
	// UnsupportedConstruct: Call, Iter, or BPerm.
	UnsupportedConstruct
	// CastDomainError: cast pair outside the matrix, or Rem/ShL/ShR/Div
	// applied outside their domain.
	CastDomainError
	// ExplicitError: execution of an Error node.
	ExplicitError
	// TypeProjection: evalInt/evalBool demanded a shape it didn't get.
	TypeProjection
	// TypeCheckError: forwarded from the type checker by evalSrc*.
	TypeCheckError
)

func (c ErrorCode) String() string {
	switch c {
	case OutOfBounds:
		return "out of bounds"
	case UnknownField:
		return "unknown field"
	case NotInScope:
		return "not in scope"
	case FreeVariables:
		return "free variables"
	case ControlFlowNotGround:
		return "control flow not ground"
	case UnsupportedConstruct:
		return "unsupported construct"
	case CastDomainError:
		return "cast domain error"
	case ExplicitError:
		return "explicit error"
	case TypeProjection:
		return "type projection"
	case TypeCheckError:
		return "type check error"
	default:
		return "error"
	}
}

// Bottom represents a failed branch. It is returned instead of an Expr by
// any reduction rule that cannot proceed in the current mode; it is never
// itself a reducible Expr.
type Bottom struct {
	Src  Node
	Err  error
	Code ErrorCode
}

func (b *Bottom) Error() string { return b.Err.Error() }

// Newf builds a Bottom with a freshly formatted message at n's position.
func Newf(n Node, code ErrorCode, format string, args ...any) *Bottom {
	p := pos.NoPos
	if n != nil {
		p = n.Pos()
	}
	return &Bottom{Src: n, Code: code, Err: errors.Newf(p, format, args...)}
}
