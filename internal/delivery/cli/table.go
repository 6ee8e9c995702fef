package cli

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/user/catalog-scraper/internal/usecase"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func renderSummary(w io.Writer, genres []usecase.GenreSummary) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Genre", "Category", "Pages", "Items"})

	total := 0
	for _, g := range genres {
		t.AppendRow(table.Row{g.Genre, g.CategoryID, g.Pages, g.Items})
		total += g.Items
	}
	t.AppendFooter(table.Row{"Total", "", "", total})
	t.Render()
}
