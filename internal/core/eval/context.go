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

// Package eval is the interpreter core: it plays the partial-evaluator,
// full-evaluator, and approximator roles described in the specification
// against one shared traversal, one heap model, and one assignment
// discipline. The only place the three roles diverge is how each reacts to
// a sub-term that cannot be reduced further (see the per-rule mode switches
// in eval.go).
package eval

import (
	"github.com/octaplexsys/Ziria/internal/core/adt"
	"github.com/octaplexsys/Ziria/internal/core/guess"
	"github.com/octaplexsys/Ziria/internal/core/heap"
)

// Mode selects which of the interpreter's three roles a Ctx plays.
type Mode uint8

const (
	// ModePartial reduces under an open environment, residualizing
	// sub-terms it cannot reduce.
	ModePartial Mode = iota
	// ModeFull reduces to a ground value, failing on any free variable.
	ModeFull
	// ModeApprox explores multiple plausible reductions, guessing the
	// outcome of boolean and integer sub-terms it cannot otherwise decide.
	ModeApprox
)

// Ctx is the evaluation state threaded through a single branch of a single
// top-level call. Branching in ModeApprox hands each branch its own Ctx
// (see Ctx.Fork); nothing is ever shared, mutably, across branches.
type Ctx struct {
	Mode   Mode
	Heap   *heap.Heap
	Guess  *guess.State
	Prints []string
}

// New starts a fresh, empty Ctx for a top-level evaluation.
func New(mode Mode) *Ctx {
	return &Ctx{Mode: mode, Heap: heap.New(), Guess: guess.NewState()}
}

// Fork returns an independent copy of c, so that the guesser can hand out
// one Ctx per assumption without one branch's heap writes or guesses
// leaking into a sibling branch.
func (c *Ctx) Fork() *Ctx {
	prints := make([]string, len(c.Prints))
	copy(prints, c.Prints)
	return &Ctx{
		Mode:   c.Mode,
		Heap:   c.Heap.Clone(),
		Guess:  c.Guess.Clone(),
		Prints: prints,
	}
}

// Print appends s to the branch's accumulated output, in program order.
func (c *Ctx) Print(s string) {
	c.Prints = append(c.Prints, s)
}

// Output joins the branch's prints into the final string the top-level API
// reports alongside a result or error.
func (c *Ctx) Output() string {
	out := ""
	for _, s := range c.Prints {
		out += s
	}
	return out
}

// Branch is one trajectory of a reduction: either a reduced Result under
// Ctx, or a failed Err. Exactly one of Result and Err is set.
type Branch struct {
	Ctx    *Ctx
	Result adt.Expr
	Err    *adt.Bottom
}

func one(c *Ctx, e adt.Expr) []Branch { return []Branch{{Ctx: c, Result: e}} }

func failed(c *Ctx, b *adt.Bottom) []Branch { return []Branch{{Ctx: c, Err: b}} }

// bind sequences a reduction step after each branch in bs, in program
// order: f sees exactly the Ctx that branch ended in (so its heap writes,
// guesses, and prints are visible), and an error branch passes through
// unchanged. This is the list-of-results, error-short-circuiting monad the
// whole interpreter core is built on.
func bind(bs []Branch, f func(*Ctx, adt.Expr) []Branch) []Branch {
	out := make([]Branch, 0, len(bs))
	for _, b := range bs {
		if b.Err != nil {
			out = append(out, b)
			continue
		}
		out = append(out, f(b.Ctx, b.Result)...)
	}
	return out
}
