/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package crosstable

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ParseCSV reads a wallchart whose first record is a header with a "#"
// player id column and round columns "1".."n" (or "R1".."Rn"). Other
// columns, e.g. "Pts" or "Rating", are ignored.
func ParseCSV(r io.Reader) (*Wallchart, error) {
	rdr := csv.NewReader(r)
	rdr.FieldsPerRecord = -1
	rdr.TrimLeadingSpace = true

	records, err := rdr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("crosstable.ParseCSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("crosstable.ParseCSV: empty input: %w",
			ErrBadHeader)
	}

	return newWallchart(records[0], records[1:])
}
