//Package histo builds histograms of the unit cell parameters of the crystals in a stream.
package histo

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	stream "github.com/sxtoolbox/gostream"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Names of the cell parameters, in the order CellHistograms returns them.
var CellParameters = []string{"a", "b", "c", "alpha", "beta", "gamma"}

//Data is a histogram. The bin i goes from dividers[i] (included) to dividers[i+1] (excluded).
type Data struct {
	name       string
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

func (D *Data) MarshalJSON() ([]byte, error) {
	j, err := json.Marshal(struct {
		Name       string    `json:"name"`
		Normalized bool      `json:"normalized"`
		Total      int       `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
	}{
		Name:       D.name,
		Normalized: D.normalized,
		Total:      D.total,
		Dividers:   D.dividers,
		Histo:      D.histo,
	})
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (D *Data) UnmarshalJSON(b []byte) error {
	var a struct {
		Name       string    `json:"name"`
		Normalized bool      `json:"normalized"`
		Total      int       `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
	}
	err := json.Unmarshal(b, &a)
	if err != nil {
		return err
	}
	if len(a.Dividers) != len(a.Histo)+1 {
		return fmt.Errorf("histo: %d dividers for %d bins", len(a.Dividers), len(a.Histo))
	}
	D.name = a.Name
	D.normalized = a.Normalized
	D.total = a.Total
	D.dividers = a.Dividers
	D.histo = a.Histo
	return nil
}

//Name returns the name of the histogram (the cell parameter, for CellHistograms).
func (D *Data) Name() string {
	return D.name
}

//Total returns the number of data points in the histogram.
func (D *Data) Total() int {
	return D.total
}

//String prints a -hopefully- pretty string representation of
//the histogram. The representation uses 3 lines of text
func (D *Data) String() string {
	ret := fmt.Sprintf("%s, Normalized: %v, TotalData: %d\n", D.name, D.normalized, D.total)
	d := make([]string, 0, len(D.histo))
	h := make([]string, 0, len(D.histo))
	for i, v := range D.histo {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return ret + fmt.Sprintf("%s\n%s", strings.Join(d, " "), strings.Join(h, " "))
}

//NewData returns a new histogram from the dividers and rawdata given.
//rawdata can be nil. In that case, an empty histogram is created.
func NewData(name string, dividers []float64, rawdata []float64) *Data {
	if len(dividers) < 2 {
		panic("histo.NewData: at least 2 dividers are needed")
	}
	d := new(Data)
	d.name = name
	//I prefer to copy the slice to avoid somebody changing it from outside
	d.dividers = make([]float64, len(dividers))
	copy(d.dividers, dividers)
	d.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		d.ReHisto(d.dividers, rawdata)
	}
	return d
}

//AddData adds the given data point(s) to the histogram. Values out of the dividers' range
//are omitted.
func (D *Data) AddData(point ...float64) {
	var norma bool
	if D.normalized {
		norma = true
		D.UnNormalize()
	}
	for _, v := range point {
		i := sort.SearchFloat64s(D.dividers, v)
		//SearchFloat64s gives the first divider >= v
		if i < len(D.dividers) && D.dividers[i] == v {
			i++
		}
		if i == 0 || i == len(D.dividers) {
			continue
		}
		D.histo[i-1]++
		D.total++
	}
	//if it was normalized, we should return it to that state
	if norma {
		D.Normalize()
	}
}

//Normalized Returns true if the histogram is normalized
func (D *Data) Normalized() bool {
	return D.normalized
}

//Normalize normalizes the histogram
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

//UnNormalize un-normalizes the histogram
func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

//normalizes or un-normalizes the histogram depending
//on whether normalize is true
func (D *Data) normaunnorma(normalize bool) {
	if D.total <= 0 || D.normalized == normalize {
		return
	}
	n := float64(D.total)
	D.normalized = false
	if normalize {
		n = 1 / float64(D.total)
		D.normalized = true
	}
	floats.Scale(n, D.histo)
}

//CopyDividers copies the dividers of the histogram
func (D *Data) CopyDividers() []float64 {
	return append([]float64(nil), D.dividers...)
}

//Copy returns a copy of the bin values.
func (D *Data) Copy() []float64 {
	return append([]float64(nil), D.histo...)
}

//View returns the bin values themselves, not a copy.
func (D *Data) View() []float64 {
	return D.histo
}

func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

//ReHisto replaces the content of the histogram with the given data and dividers.
//rawdata is not modified.
func (D *Data) ReHisto(dividers, rawdata []float64) {
	if len(dividers) != len(D.dividers) {
		log.Printf("histo.Data.ReHisto: %s: %d dividers given, %d bins will be used instead of %d", D.name, len(dividers), len(dividers)-1, len(D.histo))
	}
	D.dividers = append(D.dividers[:0], dividers...)
	data := append([]float64(nil), rawdata...)
	sort.Float64s(data)
	//stat.Histograms just panics instead of omitting the values that are off limits
	//so we remove them here before the call.
	maxi := sort.SearchFloat64s(data, dividers[len(dividers)-1])
	data = data[:maxi]
	mini := sort.SearchFloat64s(data, dividers[0])
	data = data[mini:]
	D.total = len(data) //as this could have been modified
	D.normalized = false
	D.histo = stat.Histogram(nil, dividers, data, nil)
}

//Dividers returns bins+1 equally spaced dividers covering all the values in data.
//The last divider is moved slightly up so the maximum value falls in the last bin.
func Dividers(data []float64, bins int) []float64 {
	if bins < 1 {
		bins = 1
	}
	if len(data) == 0 {
		return floats.Span(make([]float64, bins+1), 0, 1)
	}
	min, max := floats.Min(data), floats.Max(data)
	if min == max {
		min, max = min-0.5, max+0.5
	}
	d := floats.Span(make([]float64, bins+1), min, max)
	d[bins] = math.Nextafter(max, math.Inf(1))
	return d
}

//CellHistograms returns one histogram per cell parameter (see CellParameters) of the crystals
//given, each with the number of bins requested.
func CellHistograms(crystals []*stream.Crystal, bins int) []*Data {
	values := make([][]float64, len(CellParameters))
	for i := range values {
		values[i] = make([]float64, 0, len(crystals))
	}
	for _, c := range crystals {
		for i, v := range []float64{c.A, c.B, c.C, c.Alpha, c.Beta, c.Gamma} {
			values[i] = append(values[i], v)
		}
	}
	ret := make([]*Data, len(CellParameters))
	for i, name := range CellParameters {
		ret[i] = NewData(name, Dividers(values[i], bins), values[i])
	}
	return ret
}
