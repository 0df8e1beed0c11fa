/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tiebreak

import (
	"fmt"
	"sort"
)

// PlayerRanking is one row of a ranking. Scores holds one value per
// requested tiebreak, in the requested order.
type PlayerRanking struct {
	PlayerID PlayerID
	Scores   []float64
	Rank     int
}

// Ranking calculates a full ranking of every player as of the given round,
// ordered by the given tiebreaks. Players whose tiebreaks are all equal
// share a rank and the next player's rank skips accordingly (1, 2, 2, 4).
// Players sharing a rank are listed in PlayerID order.
func (c *Calculator) Ranking(round int,
	tiebreaks []Tiebreak) ([]PlayerRanking, error) {

	if err := c.checkRound(round); err != nil {
		return nil, err
	}
	fns := make([]tiebreakFunc, len(tiebreaks))
	for i, t := range tiebreaks {
		fn, ok := tiebreakFuncs[t]
		if !ok {
			return nil, fmt.Errorf("%q: %w", t, ErrUnknownTiebreak)
		}
		fns[i] = fn
	}

	players := c.results.AllPlayers()
	ranking := make([]PlayerRanking, len(players))
	for idx, player := range players {
		scores := make([]float64, len(fns))
		for i, fn := range fns {
			scores[i] = fn(c, player, round)
		}
		ranking[idx] = PlayerRanking{PlayerID: player, Scores: scores, Rank: 1}
	}

	sort.Slice(ranking, func(i, j int) bool {
		cmp := compareScores(ranking[i].Scores, ranking[j].Scores)
		if cmp != 0 {
			return cmp < 0
		}
		return ranking[i].PlayerID < ranking[j].PlayerID
	})

	for i := 1; i < len(ranking); i++ {
		if compareScores(ranking[i-1].Scores, ranking[i].Scores) == 0 {
			ranking[i].Rank = ranking[i-1].Rank
		} else {
			ranking[i].Rank = i + 1
		}
	}

	return ranking, nil
}

// compareScores orders tiebreak tuples best first: it is negative when a
// ranks ahead of b. Only the common prefix is compared.
func compareScores(a []float64, b []float64) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] > b[i] {
			return -1
		}
		if a[i] < b[i] {
			return 1
		}
	}
	return 0
}
