package ingest

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/midbel/ggraphs"
)

// ReadCSV reads a table from comma separated records. The first record is
// the header. Records may have fewer fields than the header.
func ReadCSV(r io.Reader) (charts.Table, error) {
	rs := csv.NewReader(r)
	rs.FieldsPerRecord = -1
	rs.TrimLeadingSpace = true
	rs.Comment = '#'

	var t charts.Table
	head, err := rs.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return t, nil
		}
		return t, err
	}
	if len(head) > 0 {
		t.Title = strings.TrimSpace(head[0])
		t.Labels = trimAll(head[1:])
	}
	for {
		rec, err := rs.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return t, err
		}
		if len(rec) == 0 {
			continue
		}
		t.Rows = append(t.Rows, charts.TableRow{
			Title: strings.TrimSpace(rec[0]),
			Cells: trimAll(rec[1:]),
		})
	}
	return t, nil
}

func trimAll(list []string) []string {
	out := make([]string, len(list))
	for i := range list {
		out[i] = strings.TrimSpace(list[i])
	}
	return out
}
