/*
 * write.go, part of gostream.
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
	"bufio"
	"bytes"
	"fmt"
	"io"
)

//Record is anything that can be written back as a chunk of a stream file.
type Record interface {
	//RecordHead returns the lines that open the chunk.
	RecordHead() []string
	//RecordBody returns the crystal lines of the chunk.
	RecordBody() []string
}

//RecordHead returns the frame head.
func (F *Frame) RecordHead() []string { return F.Head }

//RecordBody returns the lines of all the crystals in the frame.
func (F *Frame) RecordBody() []string {
	var body []string
	for _, c := range F.Crystals {
		body = append(body, c.Reflections...)
	}
	return body
}

//RecordHead returns the head copied from the owning frame, nil if it was never copied.
func (C *Crystal) RecordHead() []string { return C.Head }

//RecordBody returns the crystal lines.
func (C *Crystal) RecordBody() []string { return C.Reflections }

//Kind tells whether an exported file contains whole frames or single crystals.
type Kind int

const (
	ImageKind Kind = iota
	CrystalKind
)

func (k Kind) String() string {
	if k == CrystalKind {
		return "crystals"
	}
	return "images"
}

//OutputName returns the conventional name for a file with n exported records:
//prefix_<n>indexed_images.stream or prefix_<n>indexed_crystals.stream
func OutputName(prefix string, n int, kind Kind) string {
	return fmt.Sprintf("%s_%dindexed_%s%s", prefix, n, kind, streamSuffix)
}

//Serialize writes the header, and then each record followed by the terminator line.
func Serialize[R Record](w io.Writer, header, terminator string, records []R) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(header)
	for _, r := range records {
		for _, l := range r.RecordHead() {
			bw.WriteString(l)
			bw.WriteByte('\n')
		}
		for _, l := range r.RecordBody() {
			bw.WriteString(l)
			bw.WriteByte('\n')
		}
		bw.WriteString(terminator)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

//ExportFrames returns the text of a stream file with the header of S and the
//frames given.
func ExportFrames(S *Stream, frames []*Frame) ([]byte, error) {
	if frames == nil {
		return nil, newError("nothing to export", S.Filename, 0, "ExportFrames", true, ErrNoSelection)
	}
	var b bytes.Buffer
	if err := Serialize(&b, S.Header, S.Terminator, frames); err != nil {
		return nil, newError("can't serialize frames", S.Filename, 0, "ExportFrames", true, err)
	}
	return b.Bytes(), nil
}

//ExportCrystals returns the text of a stream file with the header of S and one
//chunk per crystal given. Every crystal needs a head, see PropagateHead.
func ExportCrystals(S *Stream, crystals []*Crystal) ([]byte, error) {
	if crystals == nil {
		return nil, newError("nothing to export", S.Filename, 0, "ExportCrystals", true, ErrNoSelection)
	}
	for i, c := range crystals {
		if c.Head == nil {
			return nil, newError(fmt.Sprintf("crystal %d (%s, event %q)", i, c.Filename, c.Event), S.Filename, 0, "ExportCrystals", true, ErrNoHead)
		}
	}
	var b bytes.Buffer
	if err := Serialize(&b, S.Header, S.Terminator, crystals); err != nil {
		return nil, newError("can't serialize crystals", S.Filename, 0, "ExportCrystals", true, err)
	}
	return b.Bytes(), nil
}
