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

import "testing"

func TestArithTruncates(t *testing.T) {
	x := VInt{Width: Width8, V: 120}
	y := VInt{Width: Width8, V: 20}
	got, err := BinOp(nil, Add, x, y)
	if err != nil {
		t.Fatal(err)
	}
	gi := got.(VInt)
	if gi.V != -116 {
		t.Errorf("120+20 at width 8 = %d, want -116 (wraps)", gi.V)
	}
}

func TestDivByZero(t *testing.T) {
	x := VInt{Width: Width32, V: 5}
	y := VInt{Width: Width32, V: 0}
	if _, err := BinOp(nil, Div, x, y); err == nil {
		t.Fatal("expected division-by-zero error")
	} else if err.Code != CastDomainError {
		t.Errorf("got code %v, want CastDomainError", err.Code)
	}
}

func TestRemSignOfDividend(t *testing.T) {
	x := VInt{Width: Width32, V: -7}
	y := VInt{Width: Width32, V: 2}
	got, err := BinOp(nil, Rem, x, y)
	if err != nil {
		t.Fatal(err)
	}
	if got.(VInt).V != -1 {
		t.Errorf("-7 rem 2 = %d, want -1", got.(VInt).V)
	}
}

func TestShiftRejectsNegativeAmount(t *testing.T) {
	x := VInt{Width: Width32, V: 1}
	y := VInt{Width: Width32, V: -1}
	if _, err := BinOp(nil, ShL, x, y); err == nil {
		t.Fatal("expected error for negative shift amount")
	}
}

func TestShiftRightIsArithmetic(t *testing.T) {
	x := VInt{Width: Width8, V: -8} // 0xF8
	y := VInt{Width: Width8, V: 1}
	got, err := BinOp(nil, ShR, x, y)
	if err != nil {
		t.Fatal(err)
	}
	if got.(VInt).V != -4 {
		t.Errorf("-8 >> 1 (arithmetic) = %d, want -4", got.(VInt).V)
	}
}

func TestCompareOrdersEveryScalarKind(t *testing.T) {
	cases := []struct {
		x, y Scalar
		op   BinOpKind
		want bool
	}{
		{VUnit{}, VUnit{}, Eq, true},
		{VBit(false), VBit(true), Lt, true},
		{VBool(true), VBool(false), Gt, true},
		{VInt{Width: Width32, V: 3}, VInt{Width: Width32, V: 5}, Lt, true},
		{VDouble(1.5), VDouble(1.5), Eq, true},
		{VString("abc"), VString("abd"), Lt, true},
	}
	for _, c := range cases {
		got, err := BinOp(nil, c.op, c.x, c.y)
		if err != nil {
			t.Fatalf("%s %v %s: %v", c.x, c.op, c.y, err)
		}
		if bool(got.(VBool)) != c.want {
			t.Errorf("%s %v %s = %v, want %v", c.x, c.op, c.y, got, c.want)
		}
	}
}

func TestCastMatrix(t *testing.T) {
	cases := []struct {
		name   string
		target *Type
		src    Scalar
		want   Scalar
	}{
		{"bit-to-bool", TBool, VBit(true), VBool(true)},
		{"bool-to-bit", TBit, VBool(false), VBit(false)},
		{"bool-to-int", TInt(Width32), VBool(true), VInt{Width: Width32, V: 1}},
		{"int-same-width-id", TInt(Width32), VInt{Width: Width32, V: 7}, VInt{Width: Width32, V: 7}},
		{"int-narrow-truncates", TInt(Width8), VInt{Width: Width32, V: 257}, VInt{Width: Width8, V: 1}},
		{"int-to-double", TDouble, VInt{Width: Width32, V: 4}, VDouble(4)},
		{"string-show", TString, VInt{Width: Width32, V: 4}, VString("4")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ApplyCast(nil, c.target, c.src)
			if err != nil {
				t.Fatal(err)
			}
			if got != c.want {
				t.Errorf("cast(%v -> %s) = %#v, want %#v", c.src, c.target, got, c.want)
			}
		})
	}
}

func TestCastDoubleToIntRoundsHalfToEven(t *testing.T) {
	cases := []struct {
		in   float64
		want int64
	}{
		{2.5, 2},
		{3.5, 4},
		{-2.5, -2},
		{0.49, 0},
	}
	for _, c := range cases {
		got, err := ApplyCast(nil, TInt(Width32), VDouble(c.in))
		if err != nil {
			t.Fatal(err)
		}
		if got.(VInt).V != c.want {
			t.Errorf("round(%v) = %d, want %d", c.in, got.(VInt).V, c.want)
		}
	}
}

func TestCastOutsideMatrixIsError(t *testing.T) {
	if _, err := ApplyCast(nil, TBit, VInt{Width: Width32, V: 1}); err == nil {
		t.Fatal("expected error for Int -> Bit, which is not in the cast matrix")
	}
}

func TestExponIntegerPower(t *testing.T) {
	x := VInt{Width: Width32, V: 2}
	y := VInt{Width: Width32, V: 10}
	got, err := BinOp(nil, Expon, x, y)
	if err != nil {
		t.Fatal(err)
	}
	if got.(VInt).V != 1024 {
		t.Errorf("2^10 = %d, want 1024", got.(VInt).V)
	}
}

func TestExponDoubleIsRealValuedPower(t *testing.T) {
	got, err := BinOp(nil, Expon, VDouble(4.0), VDouble(0.5))
	if err != nil {
		t.Fatal(err)
	}
	if got.(VDouble) != 2.0 {
		t.Errorf("4.0 ** 0.5 = %v, want 2", got)
	}
}

func TestUnOpNeg(t *testing.T) {
	got, err := UnOp(nil, Neg, VDouble(2.5))
	if err != nil {
		t.Fatal(err)
	}
	if got.(VDouble) != -2.5 {
		t.Errorf("neg(2.5) = %v, want -2.5", got)
	}
}
