/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package crosstable

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML reads the first <table> in the document whose header row
// parses as a wallchart header (see ParseCSV).
func ParseHTML(r io.Reader) (*Wallchart, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("crosstable.ParseHTML: failed to parse html: %w",
			err)
	}

	var header []string
	var rows [][]string
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		var tableRows [][]string
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var row []string
			tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
				row = append(row, strings.TrimSpace(cell.Text()))
			})
			if len(row) > 0 {
				tableRows = append(tableRows, row)
			}
		})
		if len(tableRows) == 0 {
			return true
		}
		if _, err := findColumns(tableRows[0]); err != nil {
			return true
		}
		header, rows = tableRows[0], tableRows[1:]
		return false
	})
	if header == nil {
		return nil, ErrNoTable
	}

	return newWallchart(header, rows)
}
