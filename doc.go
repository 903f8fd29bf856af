/*
 * doc.go, part of gostream.
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

/*Package stream reads CrystFEL stream files, computes indexing statistics on them, and writes
subsets of them (whole images or single crystals) back as valid stream files.



	**Capabilities**


    Reads plain, zstd (.zst) and gzip (.gz) compressed stream files, in a single pass.

    Keeps the raw lines of each indexed image (Frame) and of each crystal in it,
	so any selection can be written back unchanged.

    Selects frames by indexing method, flattens frames to crystals and draws
	uniform random samples, with a seedable source.

    Indexing rate, frames per indexing method, unit cell statistics and a
	score (indexing rate over the product of the cell axes' standard deviations).

    Histograms (package histo) and plots (package streamplot) of the cell parameters,
	text and markdown summaries (package report).


A typical use:

	S, err := stream.ReadFile("run12.stream")
	if err != nil {
		return err
	}
	frames, missing := stream.FilterByMethods(S, []string{"xgandalf-nolatt-cell"})
	stream.PropagateHead(frames)
	crystals, _ := stream.Sample(stream.FlattenCrystals(frames), 100, stream.NewRand(1))
	text, err := stream.ExportCrystals(S, crystals)

The Stream and its records are not modified after parsing, selections only hold pointers to them.
The only exception is PropagateHead, which fills the Head of crystals that don't have one.
*/
package stream
