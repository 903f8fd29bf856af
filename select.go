/*
 * select.go, part of gostream.
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
	"math/rand/v2"
	"slices"
)

//FilterByMethods returns the frames indexed with any of the given methods, in the
//order they appear in the stream. Requested methods that were never used in the
//stream are returned in missing. That is not an error, the caller decides what to do.
func FilterByMethods(S *Stream, methods []string) (frames []*Frame, missing []string) {
	want := make(map[string]bool, len(methods))
	for _, m := range methods {
		if !S.HasMethod(m) {
			missing = append(missing, m)
			continue
		}
		want[m] = true
	}
	frames = make([]*Frame, 0, len(S.Frames))
	for _, f := range S.Frames {
		if want[f.Method] {
			frames = append(frames, f)
		}
	}
	return frames, missing
}

//FlattenCrystals returns the crystals of all the frames given, in frame order, and then in
//the order they appear in each frame.
func FlattenCrystals(frames []*Frame) []*Crystal {
	n := 0
	for _, f := range frames {
		n += len(f.Crystals)
	}
	ret := make([]*Crystal, 0, n)
	for _, f := range frames {
		ret = append(ret, f.Crystals...)
	}
	return ret
}

//PropagateHead copies the head of each frame to those of its crystals that don't have a head yet.
//The lines are shared, not copied.
func PropagateHead(frames []*Frame) {
	for _, f := range frames {
		for _, c := range f.Crystals {
			if c.Head == nil {
				c.Head = f.Head
				if c.Head == nil {
					c.Head = []string{}
				}
			}
		}
	}
}

//NewRand returns a random source for Sample with a fixed seed, to get reproducible selections.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

//Sample draws n elements from population, uniformly and without replacement, and returns them in the
//order they have in population. If n is not smaller than the population, the whole population
//is returned and clamped is true. If rng is nil, a non-deterministic source is used.
func Sample[T any](population []T, n int, rng *rand.Rand) (sample []T, clamped bool) {
	if n >= len(population) {
		return population, true
	}
	if n <= 0 {
		return []T{}, false
	}
	var perm []int
	if rng == nil {
		perm = rand.Perm(len(population))
	} else {
		perm = rng.Perm(len(population))
	}
	idx := perm[:n]
	slices.Sort(idx)
	sample = make([]T, 0, n)
	for _, i := range idx {
		sample = append(sample, population[i])
	}
	return sample, false
}
