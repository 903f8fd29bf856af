/*
 * errors.go, part of gostream.
 *
 * Copyright 2024 The gostream authors
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

package stream

import (
	"errors"
	"fmt"
	"strings"
)

//Sentinel conditions. They are returned wrapped in an *Error, so use errors.Is to test for them.
var (
	//ErrFormat signals a line that does not follow the assumed stream grammar.
	ErrFormat = errors.New("wrong format in stream file")

	//ErrNoHead signals crystals that are exported before their frame head was propagated.
	ErrNoHead = errors.New("crystal has no head, call PropagateHead first")

	//ErrNoSelection signals an export attempted on a selection that was never computed.
	ErrNoSelection = errors.New("no selection, call FilterByMethods or FlattenCrystals first")

	//ErrZeroStdDev signals a score requested for a population with a zero (or undefined)
	//standard deviation in one of the cell axes.
	ErrZeroStdDev = errors.New("zero standard deviation in cell parameters")
)

//Error is the error type returned by this package. Decorate allows to add and retrieve
//the list of callers the error went through, without changing its type.
type Error struct {
	message  string
	filename string //the file that has problems, or empty string if none.
	line     int    //1-based line in the file, or 0 if it doesn't apply.
	deco     []string
	critical bool
	cause    error
}

func newError(message, filename string, line int, caller string, critical bool, cause error) *Error {
	return &Error{message: message, filename: filename, line: line, deco: []string{caller}, critical: critical, cause: cause}
}

func (err *Error) Error() string {
	var b strings.Builder
	b.WriteString("stream")
	if err.filename != "" {
		fmt.Fprintf(&b, " file %s", err.filename)
	}
	if err.line > 0 {
		fmt.Fprintf(&b, " line %d", err.line)
	}
	b.WriteString(" error: ")
	b.WriteString(err.message)
	if err.cause != nil {
		b.WriteString(": ")
		b.WriteString(err.cause.Error())
	}
	return b.String()
}

//Decorate adds the caller to the decoration trail and returns the trail.
//An empty string just returns the current trail.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file associated to the error, if any.
func (err *Error) FileName() string { return err.filename }

//Line returns the 1-based line that caused the error, or 0.
func (err *Error) Line() int { return err.line }

//Critical returns true if the error is critical, false otherwise
func (err *Error) Critical() bool { return err.critical }

//Unwrap returns the underlying cause.
func (err *Error) Unwrap() error { return err.cause }

//errDecorate adds the caller to err if it is an *Error, and returns it.
//Other errors are returned unchanged.
func errDecorate(err error, caller string) error {
	var e *Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}
