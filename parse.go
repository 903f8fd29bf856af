/*
 * parse.go, part of gostream.
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
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

//Marks recognized in a stream file. They are matched as substrings of a line,
//in the order they are listed here.
const (
	markBeginChunk   = "Begin chunk"
	markFilename     = "Image filename"
	markEvent        = "Event:"
	markIndexedBy    = "indexed_by"
	markBeginCrystal = "Begin crystal"
	markResolution   = "diffraction_resolution_limit"
	markCell         = "Cell parameters"
	markEndCrystal   = "End crystal"
	markEndChunk     = "End chunk"

	notIndexed  = "none"
	timelineTag = "tag_"
)

//ParseOption modifies the behavior of Parse.
type ParseOption func(*parser)

//WithProgress makes the parser call fn every "every" chunks, and once more when the
//parsing is over, with the number of chunks and indexed frames found so far.
func WithProgress(every int, fn func(shots, indexed int)) ParseOption {
	return func(p *parser) {
		if every > 0 && fn != nil {
			p.every = every
			p.progress = fn
		}
	}
}

//WithFilename sets the file name reported in the errors and in the returned Stream.
func WithFilename(name string) ParseOption {
	return func(p *parser) {
		p.filename = name
	}
}

//parser holds the whole state of one pass over a stream file.
type parser struct {
	s        *Stream
	filename string
	lineno   int

	inHeader bool
	header   strings.Builder

	inChunk      bool
	pendingFile  string
	pendingEvent Event
	frame        *Frame //nil unless the current chunk is indexed
	head         []string

	crystal      *Crystal //nil unless we are inside a crystal block
	crystalLines []string

	every    int
	progress func(shots, indexed int)
}

//Parse builds a Stream from the lines of a stream file. The lines should not contain
//the newline character. The only possible errors come from numeric fields that can't
//be read, which means the input doesn't follow the expected format.
func Parse(lines []string, options ...ParseOption) (*Stream, error) {
	p := &parser{s: &Stream{}, inHeader: true}
	for _, o := range options {
		o(p)
	}
	p.s.Filename = p.filename
	for i, line := range lines {
		p.lineno = i + 1
		if err := p.line(line); err != nil {
			return nil, errDecorate(err, "Parse")
		}
	}
	p.s.Header = p.header.String()
	if p.progress != nil {
		p.progress(p.s.TotalShots, p.s.IndexedShots)
	}
	return p.s, nil
}

//ParseReader reads the whole content of r and parses it.
func ParseReader(r io.Reader, options ...ParseOption) (*Stream, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, newError("can't read stream", "", 0, "ParseReader", true, err)
	}
	s, err := Parse(SplitLines(string(b)), options...)
	if err != nil {
		return nil, errDecorate(err, "ParseReader")
	}
	return s, nil
}

//SplitLines splits text in lines, removing the "\n" characters. A final newline
//does not produce an empty last line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

func (p *parser) line(line string) error {
	switch {
	case strings.Contains(line, markBeginChunk):
		p.beginChunk()
	case p.inHeader:
		p.header.WriteString(line)
		p.header.WriteString("\n")
		return nil
	case strings.Contains(line, markFilename):
		if f := strings.Fields(line); len(f) > 2 {
			p.pendingFile = f[2]
		}
	case strings.Contains(line, markEvent):
		p.pendingEvent = ParseEvent(line)
	case strings.Contains(line, markIndexedBy):
		p.indexedBy(line)
	case strings.Contains(line, markBeginCrystal):
		if p.inChunk {
			p.crystal = NewCrystal()
			p.crystalLines = nil
		}
	case strings.Contains(line, markResolution):
		if err := p.resolution(line); err != nil {
			return err
		}
	case strings.Contains(line, markCell):
		if err := p.cell(line); err != nil {
			return err
		}
	case strings.Contains(line, markEndCrystal):
		p.endCrystal(line)
		return nil
	case strings.Contains(line, markEndChunk):
		p.endChunk(line)
		return nil
	}
	p.keep(line)
	return nil
}

//keep appends the line to the buffer currently open, if any.
func (p *parser) keep(line string) {
	if p.crystal != nil {
		p.crystalLines = append(p.crystalLines, line)
	} else if p.inChunk {
		p.head = append(p.head, line)
	}
}

func (p *parser) beginChunk() {
	p.inHeader = false
	p.inChunk = true
	p.s.TotalShots++
	p.pendingFile = DefaultFilename
	p.pendingEvent = Event{}
	p.frame = nil
	p.head = nil
	p.crystal = nil
	p.crystalLines = nil
	if p.progress != nil && p.s.TotalShots%p.every == 0 {
		p.progress(p.s.TotalShots, p.s.IndexedShots)
	}
}

func (p *parser) indexedBy(line string) {
	f := strings.Fields(line)
	if !p.inChunk || p.frame != nil || len(f) < 3 || f[2] == notIndexed {
		return
	}
	p.s.IndexedShots++
	p.frame = NewFrame()
	p.frame.Method = f[2]
	if !p.s.HasMethod(f[2]) {
		p.s.Methods = append(p.s.Methods, f[2])
	}
	p.frame.Filename = p.pendingFile
	p.frame.Event = p.pendingEvent
	if t, ok := Timeline(p.pendingFile); ok {
		p.frame.Timeline = t
	}
}

func (p *parser) resolution(line string) error {
	if p.crystal == nil {
		return nil
	}
	f := strings.Fields(line)
	if len(f) < 6 {
		return p.formatError(markResolution, fmt.Errorf("%d fields, at least 6 expected", len(f)))
	}
	res, err := strconv.ParseFloat(f[5], 64)
	if err != nil {
		return p.formatError(markResolution, err)
	}
	p.crystal.Resolution = res
	return nil
}

func (p *parser) cell(line string) error {
	if p.crystal == nil {
		return nil
	}
	f := strings.Fields(line)
	if len(f) < 9 {
		return p.formatError(markCell, fmt.Errorf("%d fields, at least 9 expected", len(f)))
	}
	var vals [6]float64
	for i, v := range append(f[2:5:5], f[6:9]...) {
		var err error
		vals[i], err = strconv.ParseFloat(v, 64)
		if err != nil {
			return p.formatError(markCell, err)
		}
	}
	c := p.crystal
	c.A, c.B, c.C = vals[0], vals[1], vals[2]
	c.Alpha, c.Beta, c.Gamma = vals[3], vals[4], vals[5]
	return nil
}

func (p *parser) endCrystal(line string) {
	if p.crystal != nil && p.frame != nil {
		c := p.crystal
		c.Provenance = p.frame.Provenance
		lines := make([]string, 0, len(p.crystalLines)+1)
		for _, v := range append(p.crystalLines, line) {
			if !blank(v) {
				lines = append(lines, v)
			}
		}
		c.Reflections = lines
		p.frame.Crystals = append(p.frame.Crystals, c)
	}
	p.crystal = nil
	p.crystalLines = nil
}

func (p *parser) endChunk(line string) {
	if p.frame != nil {
		p.frame.Head = p.head
		p.s.Frames = append(p.s.Frames, p.frame)
	}
	if p.s.Terminator == "" {
		p.s.Terminator = line
	}
	p.inChunk = false
	p.frame = nil
	p.head = nil
	p.crystal = nil
	p.crystalLines = nil
	p.pendingFile = DefaultFilename
	p.pendingEvent = Event{}
}

func (p *parser) formatError(mark string, cause error) error {
	return newError(fmt.Sprintf("can't read %q line", mark), p.filename, p.lineno, "parser", true, fmt.Errorf("%w: %w", ErrFormat, cause))
}

func blank(line string) bool {
	return strings.TrimRight(line, "\r") == ""
}

//ParseEvent obtains the event from an "Event:" line. The event is whatever follows "//",
//or, if nothing does, whatever follows "Event:". It is returned as an integer if it can
//be read as one, as a tag otherwise. A line with neither gives the empty event.
func ParseEvent(line string) Event {
	line = strings.TrimSpace(line)
	if _, after, ok := strings.Cut(line, "//"); ok {
		if ev := strings.TrimSpace(after); ev != "" {
			return eventValue(ev)
		}
	}
	_, after, ok := strings.Cut(line, markEvent)
	if !ok {
		return Event{}
	}
	ev := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(after), "//"))
	if ev == "" {
		return Event{}
	}
	return eventValue(ev)
}

func eventValue(s string) Event {
	if i, err := strconv.Atoi(s); err == nil {
		return IntEvent(i)
	}
	return TagEvent(s)
}

//Timeline extracts the time-resolved tag from an image file name, i.e. what follows
//"tag_" in the base name without extension. The second value is false if the name
//has no tag.
func Timeline(filename string) (string, bool) {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	_, after, ok := strings.Cut(base, timelineTag)
	if !ok {
		return "", false
	}
	//a second tag_ ends the first one.
	after, _, _ = strings.Cut(after, timelineTag)
	return after, true
}
