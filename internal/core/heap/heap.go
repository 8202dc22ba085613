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

// Package heap implements the mapping from a variable's unique identifier
// to its current value, with the scoped push/pop discipline Let and LetRef
// entry/exit require: a binding is born when its introducing form is
// entered and is gone, entirely, the instant that form is exited.
package heap

import "github.com/octaplexsys/Ziria/internal/core/adt"

// entry is one binding. prevSet/prev record what, if anything, occupied
// the same UniqID before this Push, so Pop can restore it exactly. In
// practice a UniqID is pushed at most once at a time (shadowing never
// reuses a UniqID, per the identity invariant), so prevSet is almost
// always false; it exists for defensive correctness, not because reuse is
// expected.
type entry struct {
	id      adt.UniqID
	prevSet bool
	prev    adt.Expr
}

// Heap is a scoped map from UniqID to the variable's current value (which
// may itself be a residual expression in partial mode, not only a ground
// Val/ValArr/StructLit).
type Heap struct {
	vals  map[adt.UniqID]adt.Expr
	stack []entry
}

// New returns an empty heap.
func New() *Heap {
	return &Heap{vals: make(map[adt.UniqID]adt.Expr)}
}

// Push binds id to v. Each Push must be undone by a Pop, in strict LIFO
// order with every other Push on this heap, when the introducing form is
// exited.
func (h *Heap) Push(id adt.UniqID, v adt.Expr) {
	prev, ok := h.vals[id]
	h.stack = append(h.stack, entry{id: id, prevSet: ok, prev: prev})
	h.vals[id] = v
}

// Pop undoes the most recent Push.
func (h *Heap) Pop() {
	n := len(h.stack) - 1
	e := h.stack[n]
	h.stack = h.stack[:n]
	if e.prevSet {
		h.vals[e.id] = e.prev
	} else {
		delete(h.vals, e.id)
	}
}

// Lookup returns the current value bound to id, if any.
func (h *Heap) Lookup(id adt.UniqID) (adt.Expr, bool) {
	v, ok := h.vals[id]
	return v, ok
}

// Set overwrites the value bound to id in place, without altering the
// push/pop stack. It reports false if id is not currently bound, which the
// caller must treat as NotInScope.
func (h *Heap) Set(id adt.UniqID, v adt.Expr) bool {
	if _, ok := h.vals[id]; !ok {
		return false
	}
	h.vals[id] = v
	return true
}

// Clone returns an independent copy of the heap, for the approximation
// mode's per-branch state.
func (h *Heap) Clone() *Heap {
	vals := make(map[adt.UniqID]adt.Expr, len(h.vals))
	for k, v := range h.vals {
		vals[k] = v
	}
	stack := make([]entry, len(h.stack))
	copy(stack, h.stack)
	return &Heap{vals: vals, stack: stack}
}
