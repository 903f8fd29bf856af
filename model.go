/*
 * model.go, part of gostream.
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

import "strconv"

//Defaults for the fields that a stream file may not provide.
const (
	DefaultFilename   = "example.h5"
	DefaultTimeline   = "0"
	DefaultAngle      = 90.0
	DefaultResolution = 5.0
)

//Event is the event identifier of a shot. CrystFEL writes either a number (after "//")
//or a free tag. The zero value is the empty event.
type Event struct {
	Int   int
	Tag   string
	IsInt bool
}

//IntEvent returns an integer event.
func IntEvent(i int) Event {
	return Event{Int: i, IsInt: true}
}

//TagEvent returns a string event.
func TagEvent(s string) Event {
	return Event{Tag: s}
}

//Empty returns true for the "no event" value.
func (e Event) Empty() bool {
	return !e.IsInt && e.Tag == ""
}

func (e Event) String() string {
	if e.IsInt {
		return strconv.Itoa(e.Int)
	}
	return e.Tag
}

//Provenance holds where a record comes from. Frames and crystals each
//carry their own copy.
type Provenance struct {
	Filename string
	Event    Event
	Timeline string
	Method   string //the indexing method, never "none"
}

func defaultProvenance() Provenance {
	return Provenance{Filename: DefaultFilename, Timeline: DefaultTimeline}
}

//Frame is an indexed image (a chunk with an indexing method) in a stream file.
type Frame struct {
	Provenance
	//Head contains the raw lines of the chunk, except the crystal blocks and the
	//end of chunk mark.
	Head     []string
	Crystals []*Crystal
}

//NewFrame returns a Frame with default provenance.
func NewFrame() *Frame {
	return &Frame{Provenance: defaultProvenance()}
}

//Crystal is one crystal indexed on a frame. a, b and c are in nm, angles in degrees
//and the resolution limit in A.
type Crystal struct {
	Provenance
	A, B, C            float64
	Alpha, Beta, Gamma float64
	Resolution         float64
	//Reflections contains the raw lines from "Begin crystal" to "End crystal", both
	//included, with the blank lines removed.
	Reflections []string
	//Head is nil until PropagateHead copies the head of the owning frame.
	Head []string
}

//NewCrystal returns a Crystal with the default angles and resolution.
func NewCrystal() *Crystal {
	return &Crystal{
		Provenance: defaultProvenance(),
		Alpha:      DefaultAngle,
		Beta:       DefaultAngle,
		Gamma:      DefaultAngle,
		Resolution: DefaultResolution,
	}
}

//Stream is a parsed stream file.
type Stream struct {
	Filename string //empty if the stream was not read from a file
	Header   string
	Frames   []*Frame
	//TotalShots counts every chunk, IndexedShots only those retained as Frames.
	TotalShots   int
	IndexedShots int
	//Methods are the indexing methods found, in discovery order.
	Methods []string
	//Terminator is the first end of chunk line found, without the newline.
	//It closes every record when the stream is written back.
	Terminator string
}

//HasMethod returns true if the method was used to index any frame in the stream.
func (S *Stream) HasMethod(method string) bool {
	for _, v := range S.Methods {
		if v == method {
			return true
		}
	}
	return false
}
