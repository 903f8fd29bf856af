/*
 * write_test.go, part of gostream.
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

//sameCells checks that two crystal lists have the same cell parameters, in the same order.
func sameCells(Te *testing.T, got, want []*Crystal) {
	Te.Helper()
	if len(got) != len(want) {
		Te.Fatalf("%d crystals, expected %d", len(got), len(want))
	}
	for i, c := range want {
		g := got[i]
		if g.A != c.A || g.B != c.B || g.C != c.C || g.Alpha != c.Alpha || g.Beta != c.Beta || g.Gamma != c.Gamma || g.Resolution != c.Resolution {
			Te.Errorf("crystal %d: got %+v, want %+v", i, g, c)
		}
	}
}

func TestFramesRoundTrip(Te *testing.T) {
	S := mustParse(Te, testStream)
	all, _ := FilterByMethods(S, S.Methods)
	sel, clamped := Sample(all, 100, NewRand(1))
	if !clamped {
		Te.Errorf("asking for more frames than available should clamp")
	}
	text, err := ExportFrames(S, sel)
	if err != nil {
		Te.Fatal(err)
	}
	S2 := mustParse(Te, string(text))
	if S2.IndexedShots != S.IndexedShots || S2.TotalShots != S.IndexedShots {
		Te.Errorf("re-read stream has %d/%d shots, expected %d", S2.IndexedShots, S2.TotalShots, S.IndexedShots)
	}
	c1, c2 := CountsByMethod(S), CountsByMethod(S2)
	for k, v := range c1 {
		if c2[k] != v {
			Te.Errorf("method %s: %d frames, expected %d", k, c2[k], v)
		}
	}
	sameCells(Te, FlattenCrystals(S2.Frames), FlattenCrystals(S.Frames))
	if S2.Header != S.Header || S2.Terminator != S.Terminator {
		Te.Errorf("header or terminator changed")
	}
	//once the blank lines are gone, writing is lossless.
	text2, err := ExportFrames(S2, S2.Frames)
	if err != nil {
		Te.Fatal(err)
	}
	if string(text2) != string(text) {
		Te.Errorf("second round trip differs:\n%s\n----\n%s", text2, text)
	}
	//the only thing lost from the original are the unindexed chunk and the blank line.
	if !strings.HasPrefix(string(text), testHeader+"----- Begin chunk -----\nImage filename: /data/run_tag_0005.h5\nEvent: //3\n") {
		Te.Errorf("unexpected start of the exported file")
	}
	if strings.Contains(string(text), "indexed_by = none") {
		Te.Errorf("unindexed chunk exported")
	}
}

func TestExportCrystals(Te *testing.T) {
	S := mustParse(Te, testStream)
	crystals := FlattenCrystals(S.Frames)
	_, err := ExportCrystals(S, crystals)
	if !errors.Is(err, ErrNoHead) {
		Te.Errorf("expected ErrNoHead, got %v", err)
	}
	PropagateHead(S.Frames)
	text, err := ExportCrystals(S, crystals)
	if err != nil {
		Te.Fatal(err)
	}
	S2 := mustParse(Te, string(text))
	if S2.TotalShots != 3 || S2.IndexedShots != 3 {
		Te.Errorf("expected one chunk per crystal, got %d/%d", S2.IndexedShots, S2.TotalShots)
	}
	for i, f := range S2.Frames {
		if len(f.Crystals) != 1 {
			Te.Errorf("chunk %d has %d crystals", i, len(f.Crystals))
		}
		if f.Provenance != crystals[i].Provenance {
			Te.Errorf("chunk %d: provenance %+v, expected %+v", i, f.Provenance, crystals[i].Provenance)
		}
	}
	sameCells(Te, FlattenCrystals(S2.Frames), crystals)
}

func TestExportNoSelection(Te *testing.T) {
	S := mustParse(Te, testStream)
	if _, err := ExportFrames(S, nil); !errors.Is(err, ErrNoSelection) {
		Te.Errorf("expected ErrNoSelection, got %v", err)
	}
	if _, err := ExportCrystals(S, nil); !errors.Is(err, ErrNoSelection) {
		Te.Errorf("expected ErrNoSelection, got %v", err)
	}
	text, err := ExportFrames(S, []*Frame{})
	if err != nil || string(text) != S.Header {
		Te.Errorf("an empty selection should give just the header: %q %v", text, err)
	}
}

func TestSerialize(Te *testing.T) {
	c := &Crystal{Head: []string{"----- Begin chunk -----", "indexed_by = x"}, Reflections: []string{"--- Begin crystal", "--- End crystal"}}
	var b strings.Builder
	if err := Serialize(&b, "HEADER\n", "----- End chunk -----", []*Crystal{c, c}); err != nil {
		Te.Fatal(err)
	}
	chunk := "----- Begin chunk -----\nindexed_by = x\n--- Begin crystal\n--- End crystal\n----- End chunk -----\n"
	if b.String() != "HEADER\n"+chunk+chunk {
		Te.Errorf("unexpected output:\n%s", b.String())
	}
}

func TestOutputName(Te *testing.T) {
	if n := OutputName("run12", 50, ImageKind); n != "run12_50indexed_images.stream" {
		Te.Errorf("wrong name %s", n)
	}
	if n := OutputName("out/run12", 3, CrystalKind); n != "out/run12_3indexed_crystals.stream" {
		Te.Errorf("wrong name %s", n)
	}
}

func TestCRLFRoundTrip(Te *testing.T) {
	crlf := strings.ReplaceAll(testStream, "\n", "\r\n")
	S := mustParse(Te, crlf)
	if S.Terminator != "----- End chunk -----\r" {
		Te.Errorf("terminator should keep its carriage return: %q", S.Terminator)
	}
	text, err := ExportFrames(S, S.Frames)
	if err != nil {
		Te.Fatal(err)
	}
	out := string(text)
	if n := strings.Count(out, "\n") - strings.Count(out, "\r\n"); n != 0 {
		Te.Errorf("%d lines without carriage return in the export of a CRLF stream", n)
	}
	//everything but the unindexed chunk and the blank line is kept.
	want := strings.Replace(crlf, "4.08 A\r\n\r\n", "4.08 A\r\n", 1)
	i := strings.Index(want, "----- Begin chunk -----\r\nImage filename: /data/run_tag_0005.h5\r\nEvent: //4")
	j := strings.Index(want, "----- Begin chunk -----\r\nImage filename: /data/other.h5")
	want = want[:i] + want[j:]
	if out != want {
		Te.Errorf("CRLF export differs from the input:\n%q\n----\n%q", out, want)
	}
}
