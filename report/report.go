//Package report writes the summary of a stream, as plain text, markdown or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	stream "github.com/sxtoolbox/gostream"
	"github.com/sxtoolbox/gostream/histo"
)

//Cells holds the unit cell statistics and the score of a set of crystals.
type Cells struct {
	Crystals int
	Stats    stream.CellStatistics
	Score    float64
	//ScoreErr is not nil if the score could not be obtained.
	ScoreErr error
	//Histograms of the cell parameters, only written by WriteJSON. Can be nil.
	Histograms []*histo.Data
}

//NewCells computes the cell statistics and the score of the crystals of S.
func NewCells(S *stream.Stream, crystals []*stream.Crystal) *Cells {
	c := &Cells{Crystals: len(crystals), Stats: stream.CellStats(crystals)}
	c.Score, c.ScoreErr = stream.Score(S, crystals)
	return c
}

//axes returns name, mean and std for a, b and c.
func (C *Cells) axes() [][3]any {
	s := C.Stats
	return [][3]any{{"a", s.MeanA, s.StdA}, {"b", s.MeanB, s.StdB}, {"c", s.MeanC, s.StdC}}
}

//WriteText writes the summary in the classic plain text form. cells can be nil.
func WriteText(w io.Writer, sum stream.Summary, cells *Cells) error {
	ew := &errWriter{w: w}
	ew.printf("number of processed images: %d\n", sum.Shots)
	ew.printf("number of indexed images: %d\n", sum.Indexed)
	for _, m := range sum.Methods {
		ew.printf("   %s: %d\n", m.Method, m.Frames)
	}
	ew.printf("Indexing rate: %.4f\n", sum.Rate)
	ew.printf("Number of crystals: %d\n", sum.Crystals)
	ew.printf("Number of unindexed images: %d\n", sum.Unindexed)
	if cells != nil {
		for _, v := range cells.axes() {
			ew.printf("%s: %.4f +/- %.4f nm\n", v[0], v[1], v[2])
		}
		if cells.ScoreErr != nil {
			ew.printf("Score: undefined (%v)\n", cells.ScoreErr)
		} else {
			ew.printf("Score: %.4g\n", cells.Score)
		}
	}
	return ew.err
}

//errWriter keeps the first error and ignores later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, a ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, a...)
}

type jsonMethod struct {
	Method string `json:"method"`
	Frames int    `json:"frames"`
}

type jsonCells struct {
	Crystals int      `json:"crystals"`
	MeanA    *float64 `json:"mean_a"`
	StdA     *float64 `json:"std_a"`
	MeanB    *float64 `json:"mean_b"`
	StdB     *float64 `json:"std_b"`
	MeanC    *float64 `json:"mean_c"`
	StdC     *float64 `json:"std_c"`
	Score    *float64 `json:"score"`
	ScoreErr string   `json:"score_error,omitempty"`

	Histograms []*histo.Data `json:"histograms,omitempty"`
}

type jsonReport struct {
	Filename  string       `json:"filename,omitempty"`
	Shots     int          `json:"shots"`
	Indexed   int          `json:"indexed"`
	Unindexed int          `json:"unindexed"`
	Crystals  int          `json:"crystals"`
	Rate      float64      `json:"index_rate"`
	Methods   []jsonMethod `json:"methods"`
	Cells     *jsonCells   `json:"cells,omitempty"`
}

//finite returns nil for NaN and infinities, which JSON can't represent.
func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

//WriteJSON writes the summary as an indented JSON object. Undefined statistics are null.
func WriteJSON(w io.Writer, sum stream.Summary, cells *Cells) error {
	r := jsonReport{
		Filename:  sum.Filename,
		Shots:     sum.Shots,
		Indexed:   sum.Indexed,
		Unindexed: sum.Unindexed,
		Crystals:  sum.Crystals,
		Rate:      sum.Rate,
		Methods:   make([]jsonMethod, 0, len(sum.Methods)),
	}
	for _, m := range sum.Methods {
		r.Methods = append(r.Methods, jsonMethod{m.Method, m.Frames})
	}
	if cells != nil {
		s := cells.Stats
		r.Cells = &jsonCells{
			Crystals: cells.Crystals,
			MeanA:    finite(s.MeanA), StdA: finite(s.StdA),
			MeanB: finite(s.MeanB), StdB: finite(s.StdB),
			MeanC: finite(s.MeanC), StdC: finite(s.StdC),
			Histograms: cells.Histograms,
		}
		if cells.ScoreErr != nil {
			r.Cells.ScoreErr = cells.ScoreErr.Error()
		} else {
			r.Cells.Score = finite(cells.Score)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
