/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tiebreak

import "errors"

var (
	ErrDuplicateResult = errors.New("multiple results for player in round")
	ErrInvalidScore    = errors.New("score must be 0, 0.5 or 1")
	ErrSelfPairing     = errors.New("player paired against themselves")
	ErrUnknownTiebreak = errors.New("unknown tiebreak")
	ErrInvalidRound    = errors.New("round out of range")
)
