/*
 * stats.go, part of gostream.
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
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//IndexRate returns the fraction of shots that were indexed, 0 for a stream without shots.
func IndexRate(S *Stream) float64 {
	if S.TotalShots == 0 {
		return 0.0
	}
	return float64(S.IndexedShots) / float64(S.TotalShots)
}

//MethodCount is the number of frames indexed with a method.
type MethodCount struct {
	Method string
	Frames int
}

//MethodCounts returns the number of frames per indexing method, in the order the
//methods were found.
func MethodCounts(S *Stream) []MethodCount {
	c := CountsByMethod(S)
	ret := make([]MethodCount, 0, len(S.Methods))
	for _, m := range S.Methods {
		ret = append(ret, MethodCount{Method: m, Frames: c[m]})
	}
	return ret
}

//CountsByMethod maps each indexing method to the number of frames indexed with it.
func CountsByMethod(S *Stream) map[string]int {
	ret := make(map[string]int, len(S.Methods))
	for _, m := range S.Methods {
		ret[m] = 0
	}
	for _, f := range S.Frames {
		ret[f.Method]++
	}
	return ret
}

//NumCrystals returns the total number of crystals in the stream. It can be larger than
//the number of indexed frames when several crystals were found on one image.
func NumCrystals(S *Stream) int {
	n := 0
	for _, f := range S.Frames {
		n += len(f.Crystals)
	}
	return n
}

//CellStatistics holds the mean and the (population) standard deviation of the
//unit cell axes, in nm.
type CellStatistics struct {
	MeanA, StdA float64
	MeanB, StdB float64
	MeanC, StdC float64
}

//Product returns the product of the three standard deviations.
func (C CellStatistics) Product() float64 {
	return floats.Prod([]float64{C.StdA, C.StdB, C.StdC})
}

//CellAxes returns the a, b and c values of the crystals as 3 slices.
func CellAxes(crystals []*Crystal) (a, b, c []float64) {
	a = make([]float64, len(crystals))
	b = make([]float64, len(crystals))
	c = make([]float64, len(crystals))
	for i, v := range crystals {
		a[i], b[i], c[i] = v.A, v.B, v.C
	}
	return a, b, c
}

//CellStats returns the mean and standard deviation of a, b and c over the crystals.
//For an empty slice all the values are NaN. Callers must check for that.
func CellStats(crystals []*Crystal) CellStatistics {
	if len(crystals) == 0 {
		n := math.NaN()
		return CellStatistics{n, n, n, n, n, n}
	}
	a, b, c := CellAxes(crystals)
	var ret CellStatistics
	ret.MeanA, ret.StdA = stat.PopMeanStdDev(a, nil)
	ret.MeanB, ret.StdB = stat.PopMeanStdDev(b, nil)
	ret.MeanC, ret.StdC = stat.PopMeanStdDev(c, nil)
	return ret
}

//Score returns the indexing rate of S divided by the product of the standard deviations
//of a, b and c over the crystals. The larger, the better. It fails if any standard deviation
//is zero or undefined, as happens with less than 2 crystals.
func Score(S *Stream, crystals []*Crystal) (float64, error) {
	cs := CellStats(crystals)
	p := cs.Product()
	if p == 0 || math.IsNaN(p) {
		return 0, newError(fmt.Sprintf("std(a)=%g std(b)=%g std(c)=%g over %d crystals", cs.StdA, cs.StdB, cs.StdC, len(crystals)), S.Filename, 0, "Score", true, ErrZeroStdDev)
	}
	return IndexRate(S) / p, nil
}

//Summary gathers the numbers usually reported for a stream.
type Summary struct {
	Filename  string
	Shots     int
	Indexed   int
	Unindexed int
	Crystals  int
	Rate      float64
	Methods   []MethodCount
}

//Summarize returns the summary of S.
func Summarize(S *Stream) Summary {
	return Summary{
		Filename:  S.Filename,
		Shots:     S.TotalShots,
		Indexed:   S.IndexedShots,
		Unindexed: S.TotalShots - S.IndexedShots,
		Crystals:  NumCrystals(S),
		Rate:      IndexRate(S),
		Methods:   MethodCounts(S),
	}
}
