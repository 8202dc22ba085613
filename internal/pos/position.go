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

// Package pos provides source positions used for error reporting and
// pretty-printing of interpreter expressions.
//
// Positions are carried by IR nodes purely for diagnostics. The interpreter
// never branches on a position, and two expressions that differ only in
// position are considered identical wherever the interpreter needs a
// structural key (see adt.Key, which strips positions before hashing an
// expression for guess memoization).
package pos

import "fmt"

// Position describes a location in a Ziria source file.
//
// A Position is valid if Line > 0.
type Position struct {
	Filename string
	Line     int
	Column   int
}

// NoPos is the zero value for Position; it represents an unknown location.
var NoPos = Position{}

// IsValid reports whether the position carries line information.
func (p Position) IsValid() bool { return p.Line > 0 }

// String renders the position in "file:line:column" form, falling back to
// progressively less specific forms as fields are missing.
func (p Position) String() string {
	s := p.Filename
	if p.IsValid() {
		if s != "" {
			s += ":"
		}
		s += fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	if s == "" {
		s = "-"
	}
	return s
}
