package report

import (
	"fmt"
	"io"

	"github.com/nao1215/markdown"
	stream "github.com/sxtoolbox/gostream"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//counts prints the numbers of images and crystals with thousands separators.
var counts = message.NewPrinter(language.English)

func count(n int) string { return counts.Sprintf("%d", n) }

//WriteMarkdown writes the summary as a markdown document. cells can be nil.
func WriteMarkdown(w io.Writer, sum stream.Summary, cells *Cells) error {
	md := markdown.NewMarkdown(w)
	title := "Stream report"
	if sum.Filename != "" {
		title = "Stream report: " + sum.Filename
	}
	md.H1(title)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Processed images", count(sum.Shots)},
			{"Indexed images", count(sum.Indexed)},
			{"Unindexed images", count(sum.Unindexed)},
			{"Crystals", count(sum.Crystals)},
			{"Indexing rate", fmt.Sprintf("%.4f", sum.Rate)},
		},
	})
	md.PlainText("")

	md.H2("Indexing methods")
	md.PlainText("")
	if len(sum.Methods) == 0 {
		md.PlainText("No indexed images.")
	} else {
		rows := make([][]string, 0, len(sum.Methods))
		for _, m := range sum.Methods {
			share := 0.0
			if sum.Indexed > 0 {
				share = float64(m.Frames) / float64(sum.Indexed)
			}
			rows = append(rows, []string{"`" + m.Method + "`", count(m.Frames), fmt.Sprintf("%.1f%%", 100*share)})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Method", "Images", "Share"},
			Rows:   rows,
		})
	}
	md.PlainText("")

	if cells != nil {
		writeCells(md, cells)
	}
	return md.Build()
}

func writeCells(md *markdown.Markdown, cells *Cells) {
	md.H2("Unit cell")
	md.PlainText("")
	rows := make([][]string, 0, 3)
	for _, v := range cells.axes() {
		rows = append(rows, []string{v[0].(string), fmt.Sprintf("%.4f", v[1]), fmt.Sprintf("%.4f", v[2])})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Axis", "Mean (nm)", "Std (nm)"},
		Rows:   rows,
	})
	md.PlainText("")
	if cells.ScoreErr != nil {
		md.Warningf("Score undefined over %d crystals: %v", cells.Crystals, cells.ScoreErr)
	} else {
		md.PlainTextf("Score (indexing rate / std(a)std(b)std(c)): **%.4g**", cells.Score)
	}
	md.PlainText("")
}
