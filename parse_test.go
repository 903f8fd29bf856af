/*
 * parse_test.go, part of gostream.
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
	"strings"
	"testing"
)

const testHeader = `CrystFEL stream format 2.3
Generated by CrystFEL 0.10.2
Command line: indexamajig -i files.lst -o run12.stream -g det.geom --indexing=xds,xgandalf
----- Begin geometry file -----
clen = 0.1
photon_energy = 9500
----- End geometry file -----
----- Begin unit cell -----
CrystFEL unit cell file version 1.0
lattice_type = tetragonal
----- End unit cell -----
`

//testStream has 3 chunks: an indexed one with one crystal, a non-indexed one and
//an indexed one with 2 crystals.
const testStream = testHeader + `----- Begin chunk -----
Image filename: /data/run_tag_0005.h5
Event: //3
Image serial number: 1
hit = 1
indexed_by = xds-latt-cell
num_peaks = 2
Peaks from peak search
  fs/px   ss/px (1/d)/nm^-1   Intensity  Panel
 100.00  200.00       1.00     500.00   p0
 120.00  210.00       1.10     450.00   p0
End of peak list
--- Begin crystal
Cell parameters 7.85400 7.85400 3.77800 nm, 90.00000 90.00000 90.00000 deg
astar = +0.1273 +0.0000 +0.0000 nm^-1
lattice_type = tetragonal
diffraction_resolution_limit = 2.45 nm^-1 or 4.08 A

Reflections measured after indexing
   h    k    l          I   sigma(I)       peak background  fs/px  ss/px panel
   1    0    0     100.00      10.00     200.00     10.00  100.0  200.0 p0
End of reflections
--- End crystal
----- End chunk -----
----- Begin chunk -----
Image filename: /data/run_tag_0005.h5
Event: //4
Image serial number: 2
hit = 0
indexed_by = none
num_peaks = 0
Peaks from peak search
  fs/px   ss/px (1/d)/nm^-1   Intensity  Panel
End of peak list
----- End chunk -----
----- Begin chunk -----
Image filename: /data/other.h5
Event: //7
Image serial number: 3
hit = 1
indexed_by = xgandalf-nolatt-cell
num_peaks = 1
Peaks from peak search
  fs/px   ss/px (1/d)/nm^-1   Intensity  Panel
 300.00  100.00       0.90     800.00   p1
End of peak list
--- Begin crystal
Cell parameters 7.90000 7.80000 3.70000 nm, 90.10000 89.90000 90.00000 deg
diffraction_resolution_limit = 2.00 nm^-1 or 5.00 A
Reflections measured after indexing
   h    k    l          I   sigma(I)       peak background  fs/px  ss/px panel
   0    1    0      50.00       5.00     100.00     10.00  300.0  100.0 p1
End of reflections
--- End crystal
--- Begin crystal
Cell parameters 8.00000 7.70000 3.80000 nm, 90.00000 90.00000 90.00000 deg
diffraction_resolution_limit = 2.50 nm^-1 or 4.00 A
Reflections measured after indexing
   h    k    l          I   sigma(I)       peak background  fs/px  ss/px panel
   0    0    1      70.00       7.00     140.00     10.00  310.0  110.0 p1
End of reflections
--- End crystal
----- End chunk -----
`

func mustParse(Te *testing.T, text string) *Stream {
	Te.Helper()
	S, err := Parse(SplitLines(text))
	if err != nil {
		Te.Fatal(err)
	}
	return S
}

func TestParseScenario(Te *testing.T) {
	S := mustParse(Te, testStream)
	if S.TotalShots != 3 || S.IndexedShots != 2 {
		Te.Errorf("shots: total %d indexed %d, expected 3 and 2", S.TotalShots, S.IndexedShots)
	}
	if len(S.Frames) != S.IndexedShots {
		Te.Errorf("%d frames for %d indexed shots", len(S.Frames), S.IndexedShots)
	}
	if strings.Join(S.Methods, ",") != "xds-latt-cell,xgandalf-nolatt-cell" {
		Te.Errorf("methods: %v", S.Methods)
	}
	if n := len(FlattenCrystals(S.Frames)); n != 3 {
		Te.Errorf("%d crystals, expected 3", n)
	}
	if S.Header != testHeader {
		Te.Errorf("header not preserved:\n%q", S.Header)
	}
	if S.Terminator != "----- End chunk -----" {
		Te.Errorf("terminator: %q", S.Terminator)
	}
}

func TestParseProvenance(Te *testing.T) {
	S := mustParse(Te, testStream)
	f := S.Frames[0]
	if f.Filename != "/data/run_tag_0005.h5" || f.Event != IntEvent(3) || f.Timeline != "0005" || f.Method != "xds-latt-cell" {
		Te.Errorf("wrong provenance for the first frame: %+v", f.Provenance)
	}
	f = S.Frames[1]
	if f.Event != IntEvent(7) || f.Timeline != DefaultTimeline {
		Te.Errorf("wrong provenance for the second frame: %+v", f.Provenance)
	}
	for _, f := range S.Frames {
		for _, c := range f.Crystals {
			if c.Provenance != f.Provenance {
				Te.Errorf("crystal provenance %+v differs from frame's %+v", c.Provenance, f.Provenance)
			}
			if c.Head != nil {
				Te.Errorf("crystal head should be empty until propagated")
			}
		}
	}
}

func TestParseCrystal(Te *testing.T) {
	S := mustParse(Te, testStream)
	c := S.Frames[0].Crystals[0]
	if c.A != 7.854 || c.B != 7.854 || c.C != 3.778 {
		Te.Errorf("wrong axes %v %v %v", c.A, c.B, c.C)
	}
	if c.Alpha != 90 || c.Beta != 90 || c.Gamma != 90 || c.Resolution != 4.08 {
		Te.Errorf("wrong angles or resolution %v %v %v %v", c.Alpha, c.Beta, c.Gamma, c.Resolution)
	}
	if c.Reflections[0] != "--- Begin crystal" || c.Reflections[len(c.Reflections)-1] != "--- End crystal" {
		Te.Errorf("crystal block not delimited: %q ... %q", c.Reflections[0], c.Reflections[len(c.Reflections)-1])
	}
	for _, l := range c.Reflections {
		if l == "" {
			Te.Errorf("blank line kept in crystal block")
		}
	}
	c = S.Frames[1].Crystals[0]
	if c.Alpha != 90.1 || c.Beta != 89.9 || c.Resolution != 5.0 {
		Te.Errorf("wrong values for the second crystal: %+v", c)
	}
	head := S.Frames[1].Head
	if head[0] != "----- Begin chunk -----" || head[len(head)-1] != "End of peak list" {
		Te.Errorf("unexpected frame head limits: %q ... %q", head[0], head[len(head)-1])
	}
	for _, l := range head {
		if strings.Contains(l, "crystal") || strings.Contains(l, "End chunk") {
			Te.Errorf("frame head contains %q", l)
		}
	}
}

func TestParseEvent(Te *testing.T) {
	tests := []struct {
		line string
		want Event
	}{
		{"Event: //42", IntEvent(42)},
		{"Event: //", Event{}},
		{"Event: foo", TagEvent("foo")},
		{"Event: //3/7", TagEvent("3/7")},
		{"Event: 12", IntEvent(12)},
		{"  Event: //5  ", IntEvent(5)},
		{"Event:", Event{}},
	}
	for _, tt := range tests {
		if got := ParseEvent(tt.line); got != tt.want {
			Te.Errorf("ParseEvent(%q) = %+v, want %+v", tt.line, got, tt.want)
		}
	}
	if !ParseEvent("Event: //").Empty() || ParseEvent("Event: //").String() != "" {
		Te.Errorf("empty event expected")
	}
}

func TestTimeline(Te *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"/data/run_tag_0005.h5", "0005", true},
		{"run_tag_12_tag_3.cxi", "12_", true},
		{"/data/other.h5", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := Timeline(tt.name)
		if got != tt.want || ok != tt.ok {
			Te.Errorf("Timeline(%q) = %q, %v, want %q, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseFormatError(Te *testing.T) {
	bad := strings.Replace(testStream, "Cell parameters 7.85400", "Cell parameters seven", 1)
	_, err := Parse(SplitLines(bad), WithFilename("bad.stream"))
	if err == nil {
		Te.Fatal("expected an error for a non numeric cell parameter")
	}
	if !errors.Is(err, ErrFormat) {
		Te.Errorf("expected ErrFormat, got %v", err)
	}
	var e *Error
	if !errors.As(err, &e) {
		Te.Fatalf("expected *Error, got %T", err)
	}
	if e.Line() != 25 || e.FileName() != "bad.stream" || !e.Critical() {
		Te.Errorf("wrong error details: line %d file %q", e.Line(), e.FileName())
	}
	if deco := e.Decorate(""); len(deco) != 2 || deco[1] != "Parse" {
		Te.Errorf("wrong decoration %v", deco)
	}
	short := strings.Replace(testStream, "= 2.45 nm^-1 or 4.08 A", "= 2.45", 1)
	if _, err := Parse(SplitLines(short)); !errors.Is(err, ErrFormat) {
		Te.Errorf("expected ErrFormat for a short resolution line, got %v", err)
	}
}

func TestParseNoChunks(Te *testing.T) {
	S := mustParse(Te, testHeader)
	if S.TotalShots != 0 || S.IndexedShots != 0 || len(S.Frames) != 0 {
		Te.Errorf("no chunks expected: %+v", S)
	}
	if S.Header != testHeader {
		Te.Errorf("header not preserved")
	}
	if IndexRate(S) != 0.0 {
		Te.Errorf("index rate should be 0 for an empty stream")
	}
	empty := mustParse(Te, "")
	if empty.TotalShots != 0 || empty.Header != "" {
		Te.Errorf("empty input gave %+v", empty)
	}
}

func TestParseProgress(Te *testing.T) {
	var calls [][2]int
	_, err := ParseReader(strings.NewReader(testStream), WithProgress(2, func(shots, indexed int) {
		calls = append(calls, [2]int{shots, indexed})
	}))
	if err != nil {
		Te.Fatal(err)
	}
	//once at the second chunk, once at the end.
	if len(calls) != 2 || calls[0] != [2]int{2, 1} || calls[1] != [2]int{3, 2} {
		Te.Errorf("unexpected progress calls %v", calls)
	}
}

func TestParseMethodNames(Te *testing.T) {
	text := strings.Replace(testStream, "indexed_by = xgandalf-nolatt-cell", "indexed_by = mosflm-nonerefine-cell", 1)
	S := mustParse(Te, text)
	if S.IndexedShots != 2 || S.Frames[1].Method != "mosflm-nonerefine-cell" {
		Te.Errorf("a method containing \"none\" should index its chunk: %d indexed, methods %v", S.IndexedShots, S.Methods)
	}
	text = strings.Replace(testStream, "indexed_by = xds-latt-cell", "indexed_by = none", 1)
	if S = mustParse(Te, text); S.IndexedShots != 1 {
		Te.Errorf("expected 1 indexed frame, got %d", S.IndexedShots)
	}
}
