/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package tiebreak calculates FIDE style tournament tiebreaks (Buchholz and
// its Cut/Median variants, Sonneborn-Berger) and full rankings for Swiss and
// round robin tournaments, as of any completed round.
package tiebreak

import (
	"fmt"
	"sort"
	"strings"
)

// Tiebreak names a tiebreak that can be requested from a Calculator.
type Tiebreak string

const (
	// TiebreakScore is the player's points: 1 per win, ½ per draw.
	TiebreakScore Tiebreak = "SCORE"

	// TiebreakBuchholz is the sum of the scores of each opponent.
	TiebreakBuchholz Tiebreak = "BH"

	// TiebreakBuchholzCut1 is Buchholz with the least significant opponent
	// cut. Under FIDE 2023 voluntarily unplayed rounds are cut first.
	TiebreakBuchholzCut1 Tiebreak = "BH-C1"

	TiebreakBuchholzCut2    Tiebreak = "BH-C2"
	TiebreakBuchholzMedian1 Tiebreak = "BH-M1"
	TiebreakBuchholzMedian2 Tiebreak = "BH-M2"

	// TiebreakSonnebornBerger sums the opponents' scores weighted by the
	// player's result against them.
	TiebreakSonnebornBerger Tiebreak = "SB"
)

type tiebreakFunc func(c *Calculator, player PlayerID, round int) float64

var tiebreakFuncs = map[Tiebreak]tiebreakFunc{
	TiebreakScore: (*Calculator).Score,
	TiebreakBuchholz: func(c *Calculator, player PlayerID, round int) float64 {
		return c.Buchholz(player, round, 0, 0)
	},
	TiebreakBuchholzCut1: func(c *Calculator, player PlayerID, round int) float64 {
		return c.Buchholz(player, round, 1, 0)
	},
	TiebreakBuchholzCut2: func(c *Calculator, player PlayerID, round int) float64 {
		return c.Buchholz(player, round, 2, 0)
	},
	TiebreakBuchholzMedian1: func(c *Calculator, player PlayerID, round int) float64 {
		return c.Buchholz(player, round, 1, 1)
	},
	TiebreakBuchholzMedian2: func(c *Calculator, player PlayerID, round int) float64 {
		return c.Buchholz(player, round, 2, 2)
	},
	TiebreakSonnebornBerger: (*Calculator).SonnebornBerger,
}

// AllTiebreaks lists the supported tiebreaks in their canonical order.
var AllTiebreaks = []Tiebreak{
	TiebreakScore,
	TiebreakBuchholz,
	TiebreakBuchholzCut1,
	TiebreakBuchholzCut2,
	TiebreakBuchholzMedian1,
	TiebreakBuchholzMedian2,
	TiebreakSonnebornBerger,
}

// ParseTiebreak converts a tiebreak name such as "BH-C1" (case insensitive)
// into a Tiebreak.
func ParseTiebreak(s string) (Tiebreak, error) {
	t := Tiebreak(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := tiebreakFuncs[t]; !ok {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownTiebreak)
	}
	return t, nil
}

// ParseTiebreaks parses a comma separated list such as "SCORE,BH-C1,BH".
func ParseTiebreaks(s string) ([]Tiebreak, error) {
	var tiebreaks []Tiebreak
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		t, err := ParseTiebreak(part)
		if err != nil {
			return nil, err
		}
		tiebreaks = append(tiebreaks, t)
	}
	return tiebreaks, nil
}

// AdjustedGame is one round from the view of a player with the opponent's
// score adjusted for the purpose of Buchholz and Sonneborn-Berger.
type AdjustedGame struct {
	Round         int
	GameScore     float64
	OpponentScore float64
	IsVUR         bool
}

// Calculator calculates tiebreaks for a tournament with the given results
// and unplayed rounds adjustment. A Calculator is safe for concurrent use.
type Calculator struct {
	results    *Results
	adjustment UnplayedRoundsAdjustment
	memo       *memo
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithoutMemo disables caching of Score and AdjustedScore so every value is
// recomputed on each call.
func WithoutMemo() Option {
	return func(c *Calculator) {
		c.memo = nil
	}
}

func NewCalculator(results *Results, adjustment UnplayedRoundsAdjustment,
	opts ...Option) *Calculator {

	c := &Calculator{
		results:    results,
		adjustment: adjustment,
		memo:       newMemo(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Calculator) Results() *Results {
	return c.results
}

func (c *Calculator) Adjustment() UnplayedRoundsAdjustment {
	return c.adjustment
}

// Tiebreak calculates the named tiebreak for the player as of the given
// round. The round must be between 1 and the number of rounds in the
// results.
func (c *Calculator) Tiebreak(t Tiebreak, player PlayerID,
	round int) (float64, error) {

	if err := c.checkRound(round); err != nil {
		return 0, err
	}
	fn, ok := tiebreakFuncs[t]
	if !ok {
		return 0, fmt.Errorf("%q: %w", t, ErrUnknownTiebreak)
	}
	return fn(c, player, round), nil
}

func (c *Calculator) checkRound(round int) error {
	if round < 1 || round > c.results.Rounds() {
		return fmt.Errorf("round %v not in 1..%v: %w", round,
			c.results.Rounds(), ErrInvalidRound)
	}
	return nil
}

// AdjustedGames returns every round of the player up to round along with
// the opponent's adjusted score as of round, i.e. later results of the
// opponent are taken into account.
func (c *Calculator) AdjustedGames(player PlayerID, round int) []AdjustedGame {
	results := c.results.GetAll(player, round)
	games := make([]AdjustedGame, len(results))

	for idx, result := range results {
		game := AdjustedGame{
			Round:     idx + 1,
			GameScore: ScoreForResult(result),
			IsVUR:     IsVoluntarilyUnplayedRound(result),
		}
		if IsPaired(result) {
			game.OpponentScore = c.AdjustedScore(result.Opponent, round)
		}

		if !IsPlayed(result) {
			switch c.adjustment {
			case AdjustFIDE2023:
				// dummy opponent with the player's own score
				game.OpponentScore = c.Score(player, round)
			case AdjustFIDE2009:
				// virtual opponent level with the player before this
				// round who draws every round afterwards
				initialScore := c.Score(player, game.Round-1)
				opponentGameScore := 1 - game.GameScore
				virtualPoints := float64(round-game.Round) * 0.5
				game.OpponentScore = initialScore + opponentGameScore +
					virtualPoints
			}
		}
		games[idx] = game
	}

	return games
}

// Buchholz returns the sum of the player's opponents' adjusted scores,
// after cutting the cutLowest least significant and cutHighest most
// significant opponents.
func (c *Calculator) Buchholz(player PlayerID, round int, cutLowest int,
	cutHighest int) float64 {

	games := c.AdjustedGames(player, round)

	cutLowest = max(cutLowest, 0)
	cutHighest = max(cutHighest, 0)
	if cutLowest > 0 || cutHighest > 0 {
		sort.SliceStable(games, func(i, j int) bool {
			// since 2023 voluntarily unplayed rounds are cut first
			if c.adjustment == AdjustFIDE2023 && games[i].IsVUR != games[j].IsVUR {
				return !games[i].IsVUR
			}
			return games[i].OpponentScore > games[j].OpponentScore
		})

		if cutLowest+cutHighest >= len(games) {
			games = nil
		} else {
			games = games[cutHighest : len(games)-cutLowest]
		}
	}

	total := 0.0
	for _, g := range games {
		total += g.OpponentScore
	}
	return total
}

// SonnebornBerger returns the sum of the opponents' adjusted scores
// weighted by the player's result: the full score for a win, half for a
// draw, nothing for a loss.
func (c *Calculator) SonnebornBerger(player PlayerID, round int) float64 {
	total := 0.0
	for _, g := range c.AdjustedGames(player, round) {
		total += g.GameScore * g.OpponentScore
	}
	return total
}
