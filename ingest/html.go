package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/midbel/ggraphs"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ReadHTML parses an html page and extracts the table with the given id.
func ReadHTML(r io.Reader, id string) (charts.Table, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return charts.Table{}, err
	}
	t, ok := FindTable(doc, id)
	if !ok {
		return t, fmt.Errorf("%w: table %q", ErrNotFound, id)
	}
	return t, nil
}

// FindTable looks for the table element with the given id below root.
func FindTable(root *html.Node, id string) (charts.Table, bool) {
	n := FindByID(root, id)
	if n == nil || n.DataAtom != atom.Table {
		return charts.Table{}, false
	}
	return ScrapeTable(n), true
}

// ScrapeTable reads the header from the first row of thead and one body row
// per tr of tbody. Without thead, the first row of the table is the header.
func ScrapeTable(table *html.Node) charts.Table {
	var (
		t    charts.Table
		head []*html.Node
		body []*html.Node
	)
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		switch c.DataAtom {
		case atom.Caption:
			t.Title = textOf(c)
		case atom.Thead:
			head = append(head, children(c, atom.Tr)...)
		case atom.Tbody, atom.Tfoot:
			body = append(body, children(c, atom.Tr)...)
		case atom.Tr:
			body = append(body, c)
		}
	}
	if len(head) == 0 && len(body) > 0 {
		head, body = body[:1], body[1:]
	}
	if len(head) > 0 {
		cells := cellsOf(head[0])
		if len(cells) > 0 {
			if t.Title == "" {
				t.Title = cells[0]
			}
			t.Labels = cells[1:]
		}
	}
	for _, tr := range body {
		cells := cellsOf(tr)
		if len(cells) == 0 {
			continue
		}
		t.Rows = append(t.Rows, charts.TableRow{
			Title: cells[0],
			Cells: cells[1:],
		})
	}
	return t
}

// FindByID returns the first element below root carrying the given id.
func FindByID(root *html.Node, id string) *html.Node {
	if root == nil || id == "" {
		return nil
	}
	if root.Type == html.ElementNode && Attr(root, "id") == id {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if n := FindByID(c, id); n != nil {
			return n
		}
	}
	return nil
}

func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func children(n *html.Node, which atom.Atom) []*html.Node {
	var list []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == which {
			list = append(list, c)
		}
	}
	return list
}

func cellsOf(tr *html.Node) []string {
	var list []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom == atom.Th || c.DataAtom == atom.Td {
			list = append(list, textOf(c))
		}
	}
	return list
}

func textOf(n *html.Node) string {
	var (
		str  strings.Builder
		walk func(*html.Node)
	)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			str.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(str.String()), " ")
}
