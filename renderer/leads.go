package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/capnow/portfolio"
	"github.com/capnow/portfolio/leads"
	md "github.com/nao1215/markdown"
)

// RenderLeads renders recorded leads as a table, newest first as given.
func RenderLeads(ls []leads.Lead, stats leads.Stats) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Investor Leads")
	doc.PlainText(fmt.Sprintf("%d leads, %s total indicated allocation.", stats.Count, portfolio.FormatCurrency(stats.TotalAmount)))

	if len(ls) == 0 {
		doc.PlainText("No lead recorded yet.")
		return doc.String()
	}

	rows := make([][]string, 0, len(ls))
	for _, l := range ls {
		rows = append(rows, []string{
			l.CreatedAt.Format(time.DateTime),
			l.Name,
			l.Email,
			portfolio.FormatCurrency(l.Amount),
			l.Source,
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Received", "Name", "Email", "Amount", "Source"},
		Rows:   rows,
	})

	return doc.String()
}
