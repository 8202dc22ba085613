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

func TestTypeEqual(t *testing.T) {
	complex1 := TStruct("complex", []FieldType{
		{Name: "re", Type: TInt(Width32)},
		{Name: "im", Type: TInt(Width32)},
	})
	complex2 := TStruct("complex", []FieldType{
		{Name: "re", Type: TInt(Width32)},
		{Name: "im", Type: TInt(Width32)},
	})
	if !complex1.Equal(complex2) {
		t.Error("structurally identical struct types should compare equal")
	}

	arr1 := TArray(LitLen(5), TInt(Width8))
	arr2 := TArray(LitLen(5), TInt(Width8))
	if !arr1.Equal(arr2) {
		t.Error("arrays of equal literal length and element type should compare equal")
	}

	arr3 := TArray(LitLen(6), TInt(Width8))
	if arr1.Equal(arr3) {
		t.Error("arrays of different literal length must not compare equal")
	}

	if TInt(Width32).Equal(TInt(Width64)) {
		t.Error("Int32 and Int64 must not compare equal")
	}
	if TBit.Equal(TBool) {
		t.Error("Bit and Bool are distinct kinds and must not compare equal")
	}
}

func TestSymbolicArrayLenComparesByName(t *testing.T) {
	a := TArray(SymLen("n"), TInt(Width32))
	b := TArray(SymLen("n"), TInt(Width32))
	c := TArray(SymLen("m"), TInt(Width32))
	if !a.Equal(b) {
		t.Error("same symbolic length name should compare equal")
	}
	if a.Equal(c) {
		t.Error("different symbolic length names must not compare equal")
	}
}

func TestFindFieldType(t *testing.T) {
	ty := TStruct("pair", []FieldType{{Name: "a", Type: TBool}, {Name: "b", Type: TDouble}})
	if got := ty.FindFieldType("b"); got != TDouble {
		t.Errorf("FindFieldType(b) = %v, want TDouble", got)
	}
	if got := ty.FindFieldType("missing"); got != nil {
		t.Errorf("FindFieldType(missing) = %v, want nil", got)
	}
}
