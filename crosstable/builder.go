/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package crosstable

import (
	"fmt"
	"sort"

	"github.com/mikeb26/boylstonchessclub-tiebreak/tiebreak"
)

// Builder collects per-player wallchart cells and assembles them into
// per-round results. Each game is reported by both of its players; Build
// checks that the two reports agree.
type Builder struct {
	cells  map[tiebreak.PlayerID]map[int]Code
	rounds int
}

func NewBuilder() *Builder {
	return &Builder{
		cells: make(map[tiebreak.PlayerID]map[int]Code),
	}
}

// Add records the player's cell for the given round.
func (b *Builder) Add(player tiebreak.PlayerID, round int, code Code) error {
	if round < 1 {
		return fmt.Errorf("player %v: round %v: %w", player, round,
			ErrInconsistent)
	}
	byRound, ok := b.cells[player]
	if !ok {
		byRound = make(map[int]Code)
		b.cells[player] = byRound
	}
	if _, ok := byRound[round]; ok {
		return fmt.Errorf("player %v: round %v recorded twice: %w", player,
			round, ErrInconsistent)
	}
	byRound[round] = code
	b.rounds = max(b.rounds, round)

	return nil
}

// Build returns one RoundResults per round, from round 1 through the last
// round any cell was added for.
func (b *Builder) Build() ([]tiebreak.RoundResults, error) {
	players := make([]tiebreak.PlayerID, 0, len(b.cells))
	for p := range b.cells {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i] < players[j] })

	rounds := make([]tiebreak.RoundResults, b.rounds)
	for r := 1; r <= b.rounds; r++ {
		done := make(map[tiebreak.PlayerID]bool)
		for _, p := range players {
			if done[p] {
				continue
			}
			code := b.cells[p][r]
			switch code.Kind {
			case CodeAllocatedBye:
				rounds[r-1].PairingAllocatedByes =
					append(rounds[r-1].PairingAllocatedByes, p)
			case CodeHalfPointBye:
				rounds[r-1].HalfPointByes = append(rounds[r-1].HalfPointByes, p)
			case CodeGame, CodeForfeit:
				pairing, err := b.pairing(p, r, code)
				if err != nil {
					return nil, err
				}
				rounds[r-1].Pairings = append(rounds[r-1].Pairings, pairing)
				done[code.Opponent] = true
			}
			done[p] = true
		}
	}

	return rounds, nil
}

func (b *Builder) pairing(player tiebreak.PlayerID, round int,
	code Code) (tiebreak.Pairing, error) {

	oppByRound, ok := b.cells[code.Opponent]
	if !ok {
		return tiebreak.Pairing{}, fmt.Errorf("round %v: %v plays unknown player %v: %w",
			round, player, code.Opponent, ErrInconsistent)
	}
	oppCode := oppByRound[round]
	if oppCode.Kind != code.Kind || oppCode.Opponent != player {
		return tiebreak.Pairing{}, fmt.Errorf("round %v: %v reports %v but %v reports %v: %w",
			round, player, code, code.Opponent, oppCode, ErrInconsistent)
	}
	if code.Color != NoColor && code.Color == oppCode.Color {
		return tiebreak.Pairing{}, fmt.Errorf("round %v: %v and %v both report the same color: %w",
			round, player, code.Opponent, ErrInconsistent)
	}
	total := code.Score + oppCode.Score
	if (code.Kind == CodeGame && total != tiebreak.Win) ||
		(code.Kind == CodeForfeit && total > tiebreak.Win) {
		return tiebreak.Pairing{}, fmt.Errorf("round %v: %v vs %v scores %v-%v: %w",
			round, player, code.Opponent, code.Score, oppCode.Score,
			ErrInconsistent)
	}

	pairing := tiebreak.Pairing{
		White:      player,
		Black:      code.Opponent,
		ScoreWhite: code.Score,
		ScoreBlack: oppCode.Score,
		Forfeited:  code.Kind == CodeForfeit,
	}
	if code.Color == Black || oppCode.Color == White {
		pairing.White, pairing.Black = pairing.Black, pairing.White
		pairing.ScoreWhite, pairing.ScoreBlack = pairing.ScoreBlack,
			pairing.ScoreWhite
	}

	return pairing, nil
}
