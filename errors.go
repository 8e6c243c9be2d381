/*
 * errors.go, part of goQML.
 *
 * Copyright 2024 The goQML authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package qml

import (
	"errors"
	"fmt"
)

// The error kinds of goQML. Every error returned by the library wraps exactly
// one of these, so callers can classify failures with errors.Is. None of them
// is transient: they all mean the input or the configuration is wrong and the
// call must not be retried as-is.
var (
	//ErrConfiguration: an option value is invalid (non-positive kernel width,
	//padding size smaller than the molecule, unknown kernel or sorting scheme...).
	ErrConfiguration = errors.New("goQML: invalid configuration")

	//ErrShapeMismatch: two objects that must be numerically comparable are not
	//(different representation lengths, sets built with different schemes...).
	ErrShapeMismatch = errors.New("goQML: incompatible shapes")

	//ErrEmptyInput: a molecule with no atoms, or a set with no members.
	ErrEmptyInput = errors.New("goQML: empty input")
)

// Error is the interface implemented by all errors created in this library.
// The Decorate method adds information as the error is passed up, and returns
// the trace accumulated so far. Each element of the trace names a function in
// the calling stack, optionally as "FunctionName: extra info". Passing an
// empty string just returns the current trace.
type Error interface {
	error
	Decorate(string) []string
}

// CError is the concrete error used throughout goQML. It wraps one of the
// sentinel kinds above (recoverable with errors.Is/errors.Unwrap) and carries
// the Decorate trace.
type CError struct {
	kind error
	msg  string
	deco []string
}

// NewError returns a CError of the given kind. caller should be the name of
// the function creating the error; msg says what was wrong with the input.
func NewError(kind error, caller, msg string) *CError {
	return &CError{kind: kind, msg: msg, deco: []string{caller}}
}

func (err *CError) Error() string {
	return fmt.Sprintf("%v: %s", err.kind, err.msg)
}

// Unwrap exposes the sentinel kind to errors.Is and errors.As.
func (err *CError) Unwrap() error {
	return err.kind
}

// Decorate implements the Error interface.
func (err *CError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}
