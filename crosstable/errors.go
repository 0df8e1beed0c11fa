/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package crosstable

import "errors"

var (
	ErrBadCode = errors.New("malformed result code")

	// ErrBadHeader is returned when a wallchart has no player id column or
	// its round columns are not numbered 1..n.
	ErrBadHeader = errors.New("malformed wallchart header")

	// ErrInconsistent is returned when the two players of a game disagree
	// about it.
	ErrInconsistent = errors.New("inconsistent wallchart")

	ErrNoTable = errors.New("no wallchart table found")
)
