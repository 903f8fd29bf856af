/*
 * plot.go, part of gostream.
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

//Package streamplot draws the distributions of unit cell parameters of a stream as png plots.
package streamplot

import (
	"fmt"
	"image/color"

	"github.com/sxtoolbox/gostream/histo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//DefaultSize is the side of the (square) plots.
const DefaultSize = 4 * vg.Inch

//units for the axis labels, by cell parameter.
var units = map[string]string{
	"a":     "nm",
	"b":     "nm",
	"c":     "nm",
	"alpha": "deg",
	"beta":  "deg",
	"gamma": "deg",
}

//colors cycles through the plots, one per cell parameter.
var colors = []color.RGBA{
	{R: 196, G: 48, B: 43, A: 255},
	{R: 52, G: 101, B: 164, A: 255},
	{R: 78, G: 154, B: 6, A: 255},
	{R: 196, G: 160, B: 0, A: 255},
	{R: 117, G: 80, B: 123, A: 255},
	{R: 206, G: 92, B: 0, A: 255},
}

func basicPlot(title, xlabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "Crystals"
	p.Add(plotter.NewGrid())
	return p
}

//HistoPlot returns a plot of the histogram h, filled with the color number key.
func HistoPlot(h *histo.Data, title string, key int) (*plot.Plot, error) {
	div := h.CopyDividers()
	vals := h.View()
	if len(vals) == 0 {
		return nil, fmt.Errorf("streamplot: empty histogram %s", h.Name())
	}
	bins := make([]plotter.HistogramBin, len(vals))
	for i, v := range vals {
		bins[i] = plotter.HistogramBin{Min: div[i], Max: div[i+1], Weight: v}
	}
	xlabel := h.Name()
	if u, ok := units[xlabel]; ok {
		xlabel = fmt.Sprintf("%s (%s)", xlabel, u)
	}
	p := basicPlot(title, xlabel)
	ph := &plotter.Histogram{
		Bins:      bins,
		Width:     div[1] - div[0],
		FillColor: colors[key%len(colors)],
		LineStyle: plotter.DefaultLineStyle,
	}
	p.Add(ph)
	return p, nil
}

//SaveCellHistograms writes one png file per histogram, named prefix_<parameter>.png,
//and returns the names of the files written. size is the side of each plot, DefaultSize is
//used if it is not positive.
func SaveCellHistograms(hs []*histo.Data, title, prefix string, size vg.Length) ([]string, error) {
	if size <= 0 {
		size = DefaultSize
	}
	names := make([]string, 0, len(hs))
	for key, h := range hs {
		p, err := HistoPlot(h, title, key)
		if err != nil {
			return names, err
		}
		filename := fmt.Sprintf("%s_%s.png", prefix, h.Name())
		if err := p.Save(size, size, filename); err != nil {
			return names, err
		}
		names = append(names, filename)
	}
	return names, nil
}
