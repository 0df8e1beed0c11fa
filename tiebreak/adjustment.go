/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tiebreak

import (
	"fmt"
	"strings"
)

// UnplayedRoundsAdjustment selects how unplayed rounds are counted when
// scoring a player's opponents for Buchholz and Sonneborn-Berger.
type UnplayedRoundsAdjustment int

const (
	// AdjustNone counts unplayed rounds according to the points that were
	// scored. No virtual opponents are created. A forfeited pairing still
	// counts the real opponent's score.
	AdjustNone UnplayedRoundsAdjustment = iota

	// AdjustFIDE2023 follows the 2023 FIDE tiebreak regulations. Opponents
	// who withdrew have every round after their last available round
	// counted as ½ point, and the player's own unplayed rounds count as a
	// game against an opponent with the player's final score.
	AdjustFIDE2023

	// AdjustFIDE2009 follows the 2009 FIDE regulations. An opponent's
	// unplayed games always count as draws, and the player's own unplayed
	// games are scored against a virtual opponent who starts level with
	// the player and draws every following round.
	AdjustFIDE2009
)

func (a UnplayedRoundsAdjustment) String() string {
	switch a {
	case AdjustNone:
		return "NONE"
	case AdjustFIDE2023:
		return "FIDE_2023"
	case AdjustFIDE2009:
		return "FIDE_2009"
	default:
		return "?"
	}
}

// ParseUnplayedRoundsAdjustment converts NONE, FIDE_2023 or FIDE_2009
// (case insensitive) into an UnplayedRoundsAdjustment.
func ParseUnplayedRoundsAdjustment(s string) (UnplayedRoundsAdjustment,
	error) {

	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NONE", "":
		return AdjustNone, nil
	case "FIDE_2023", "FIDE2023", "2023":
		return AdjustFIDE2023, nil
	case "FIDE_2009", "FIDE2009", "2009":
		return AdjustFIDE2009, nil
	}

	return AdjustNone, fmt.Errorf("unknown unplayed rounds adjustment %q", s)
}

// AdjustedScore returns the player's score as of the given round with
// unplayed rounds adjusted according to the calculator's policy. This is
// the score a player contributes to their opponents' tiebreaks.
func (c *Calculator) AdjustedScore(player PlayerID, round int) float64 {
	return c.memo.cached(adjustedTable, memoKey{player, round}, func() float64 {
		return c.adjustedScore(player, round)
	})
}

func (c *Calculator) adjustedScore(player PlayerID, round int) float64 {
	switch c.adjustment {
	case AdjustFIDE2023:
		// rounds after a withdrawal each count ½
		last := c.lastAvailableToPlayRound(player, round)
		return c.Score(player, last) + float64(round-last)*0.5

	case AdjustFIDE2009:
		total := 0.0
		for _, result := range c.results.GetAll(player, round) {
			if IsPlayed(result) {
				total += float64(result.Score)
			} else {
				total += 0.5
			}
		}
		return total

	default:
		return c.Score(player, round)
	}
}

// lastAvailableToPlayRound returns the highest round up to maxRound in which
// the player did not voluntarily sit out, or 0 if there is none.
func (c *Calculator) lastAvailableToPlayRound(player PlayerID,
	maxRound int) int {

	for round := maxRound; round >= 1; round-- {
		if !IsVoluntarilyUnplayedRound(c.results.Get(player, round)) {
			return round
		}
	}
	return 0
}
