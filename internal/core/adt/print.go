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
	"strconv"
	"strings"
)

// Pretty renders a reduced expression for a Print node. The format is
// deterministic and distinguishes scalar kinds: a VBit and a VBool never
// render identically, nor do a Double and an Int of equal magnitude. The
// integer width is not rendered, so integers of equal value but different
// widths (e.g. Int8 5 and Int32 5) render identically.
func Pretty(e Expr) string {
	var b strings.Builder
	writePretty(&b, e)
	return b.String()
}

func writePretty(b *strings.Builder, e Expr) {
	switch x := e.(type) {
	case *Val:
		switch v := x.V.(type) {
		case VUnit:
			b.WriteString("()")
		case VBit:
			fmt.Fprintf(b, "%db", b2i(bool(v)))
		case VBool:
			fmt.Fprintf(b, "%t", bool(v))
		case VInt:
			fmt.Fprintf(b, "%d", v.V)
		case VDouble:
			b.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 64))
			b.WriteString("d")
		case VString:
			fmt.Fprintf(b, "%q", string(v))
		default:
			fmt.Fprintf(b, "%v", v)
		}
	case *ValArr:
		b.WriteByte('{')
		for i, el := range x.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			writePretty(b, el)
		}
		b.WriteByte('}')
	case *StructLit:
		b.WriteString(x.Type.Name)
		b.WriteString(" { ")
		for i, f := range x.Fields {
			if i > 0 {
				b.WriteString("; ")
			}
			fmt.Fprintf(b, "%s = ", f.Name)
			writePretty(b, f.Val)
		}
		b.WriteString(" }")
	default:
		fmt.Fprintf(b, "<residual %T>", e)
	}
}
