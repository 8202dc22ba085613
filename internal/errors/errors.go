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

// Package errors defines the shared error type returned by the interpreter
// and its top-level API.
package errors

import (
	"fmt"

	"github.com/octaplexsys/Ziria/internal/pos"
)

// A Message carries a printf-style error message together with its
// arguments, so that formatting can be deferred to the point of display.
type Message struct {
	format string
	args   []any
}

// NewMessagef builds a deferred, printf-style error message.
func NewMessagef(format string, args ...any) Message {
	return Message{format: format, args: args}
}

// Msg returns the unformatted message and its arguments.
func (m Message) Msg() (string, []any) { return m.format, m.args }

func (m Message) Error() string { return fmt.Sprintf(m.format, m.args...) }

// Error is the common error type produced by the interpreter. It carries a
// position for diagnostics in addition to the message.
type Error struct {
	Message
	Pos pos.Position
}

// Newf builds an Error at the given position.
func Newf(p pos.Position, format string, args ...any) *Error {
	return &Error{Message: NewMessagef(format, args...), Pos: p}
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return e.Pos.String() + ": " + e.Message.Error()
	}
	return e.Message.Error()
}

func (e *Error) Position() pos.Position { return e.Pos }
