package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dtnitsch/term-ranker/pkg/batch"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// pieSlices caps how many terms the chart shows.
const pieSlices = 10

// MarkdownSink writes a GitHub-flavored markdown report.
type MarkdownSink struct{}

func (s *MarkdownSink) Write(result batch.Result, destination string) error {
	return writeTo(destination, func(w io.Writer) error {
		return RenderMarkdown(w, result)
	})
}

// RenderMarkdown writes the markdown report for result to w.
func RenderMarkdown(w io.Writer, result batch.Result) error {
	md := markdown.NewMarkdown(w)
	md.H1("Term Frequency Report")
	md.PlainText("")

	if result.NoDocuments() {
		md.Warningf("%s", NoDocumentsMessage)
		return md.Build()
	}

	writeSummary(md, result)
	writeDocuments(md, result)
	writeFailures(md, result)
	writeTopTerms(md, result)
	return md.Build()
}

func writeSummary(md *markdown.Markdown, result batch.Result) {
	r := result.Report
	md.Table(markdown.TableSet{
		Header: []string{"Field", "Value"},
		Rows: [][]string{
			{"Folder", result.Folder},
			{"Generated", result.StartedAt.Format("2006-01-02 15:04:05")},
			{"Documents", strconv.Itoa(len(result.Documents))},
			{"Unique terms", strconv.Itoa(r.TotalUniqueTerms())},
			{"Total terms", strconv.Itoa(r.TotalTerms())},
			{"Top fraction", fmt.Sprintf("%.2f", r.TopFraction())},
			{"Top share of unique terms", fmt.Sprintf("%.2f%%", r.TopPercentage())},
		},
	})
	md.PlainText("")
}

func writeDocuments(md *markdown.Markdown, result batch.Result) {
	md.H2("Documents")
	md.PlainText("")

	rows := make([][]string, 0, len(result.Documents))
	for _, d := range result.Documents {
		status, terms, lang := "failed", "-", "-"
		if d.OK() {
			status = "success"
			terms = strconv.Itoa(d.TermCount())
			if d.Language.Language != "" {
				lang = d.Language.Language
			}
		}
		rows = append(rows, []string{d.Doc.Name, status, terms, lang})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Document", "Status", "Terms", "Language"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeFailures(md *markdown.Markdown, result batch.Result) {
	failures := result.Failures()
	if len(failures) == 0 {
		return
	}
	md.Cautionf("%d of %d documents could not be read.", len(failures), len(result.Documents))
	md.PlainText("")
	md.BulletList(failures...)
	md.PlainText("")
}

func writeTopTerms(md *markdown.Markdown, result batch.Result) {
	if result.Report.IsEmpty() {
		md.Note(EmptyCorpusMessage)
		md.PlainText("")
		return
	}

	entries := Entries(result)
	md.H2(fmt.Sprintf("Top %d terms", len(entries)))
	md.PlainText("")

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		kind := "word"
		if e.IsCompound {
			kind = "compound"
		}
		rows = append(rows, []string{
			strconv.Itoa(e.Rank),
			e.Term,
			kind,
			strconv.Itoa(e.Count),
			fmt.Sprintf("%.2f", e.Weight),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Term", "Kind", "Count", "Weight"},
		Rows:   rows,
	})
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Top term occurrences"),
		piechart.WithShowData(true),
	)
	for i, e := range entries {
		if i == pieSlices {
			break
		}
		chart.LabelAndIntValue(e.Term, uint64(e.Count))
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}
