package htmltable

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/tally/cascade"
	"github.com/tsawler/tally/model"
)

// Backend reads <table> elements out of an HTML document.
type Backend struct {
	engine *cascade.Engine
}

// New creates an HTML table backend over the shared extraction engine.
func New(engine *cascade.Engine) *Backend {
	if engine == nil {
		engine = cascade.NewEngine()
	}
	return &Backend{engine: engine}
}

// Name identifies the backend in cascade configuration and audit entries.
func (b *Backend) Name() string {
	return "htmltable"
}

// Extract parses the document and runs the structured-table path over
// every <table> found, in document order.
func (b *Backend) Extract(ctx context.Context, doc *cascade.Document) (*model.Attempt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(doc.Path)
	if err != nil {
		return nil, fmt.Errorf("open html: %w", err)
	}
	defer f.Close()

	root, err := html.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	tables := collectTables(root)
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables in %s", doc.Path)
	}
	return b.engine.ExtractRows(tables, model.SourceHTML, b.Name()), nil
}

// collectTables walks the document and flattens every <table> into rows.
// Nested tables are flattened into their own entries, not into the parent.
func collectTables(root *html.Node) [][][]string {
	var tables [][][]string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			if rows := tableRows(n); len(rows) > 0 {
				tables = append(tables, rows)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return tables
}

// tableRows flattens one table. thead, tbody and direct tr children are
// all taken in document order; colspans repeat the cell text so column
// indexes stay aligned.
func tableRows(table *html.Node) [][]string {
	var rows [][]string
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "thead", "tbody", "tfoot":
			for tr := c.FirstChild; tr != nil; tr = tr.NextSibling {
				if tr.Type == html.ElementNode && tr.Data == "tr" {
					if row := rowCells(tr); len(row) > 0 {
						rows = append(rows, row)
					}
				}
			}
		case "tr":
			if row := rowCells(c); len(row) > 0 {
				rows = append(rows, row)
			}
		}
	}
	return rows
}

func rowCells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		text := model.NormalizeSpace(textContent(c))
		span := colSpan(c)
		for i := 0; i < span; i++ {
			cells = append(cells, text)
		}
	}
	return cells
}

func colSpan(cell *html.Node) int {
	for _, attr := range cell.Attr {
		if attr.Key == "colspan" {
			span := 0
			if _, err := fmt.Sscanf(attr.Val, "%d", &span); err == nil && span > 1 {
				return span
			}
		}
	}
	return 1
}

// textContent flattens a cell's text, skipping script and style bodies.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style":
				return
			case "br":
				sb.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
