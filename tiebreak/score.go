/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tiebreak

// ScoreForResult returns the points a single round's result is worth.
func ScoreForResult(r PlayerResult) float64 {
	switch r.Kind {
	case Paired:
		return float64(r.Score)
	case AllocatedBye:
		return 1
	case HalfPointBye:
		return 0.5
	default:
		return 0
	}
}

// Score returns the total points the player scored in rounds 1 through
// round. Rounds past the end of the results count as unpaired.
func (c *Calculator) Score(player PlayerID, round int) float64 {
	return c.memo.cached(scoreTable, memoKey{player, round}, func() float64 {
		total := 0.0
		for _, result := range c.results.GetAll(player, round) {
			total += ScoreForResult(result)
		}
		return total
	})
}
