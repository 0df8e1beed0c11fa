/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tiebreak

import (
	"fmt"
	"sort"
)

// PlayerID uniquely identifies a player. Exact format is up to the caller
// (pairing numbers, USCF member ids, names).
type PlayerID string

// Score is the number of points for a single game: 0, ½ or 1.
type Score float64

const (
	Loss Score = 0
	Draw Score = 0.5
	Win  Score = 1
)

func (s Score) valid() bool {
	return s == Loss || s == Draw || s == Win
}

// Pairing is one game of a round. ScoreWhite+ScoreBlack is normally 1 but
// may be 0 when both players lost by forfeit.
type Pairing struct {
	White      PlayerID
	Black      PlayerID
	ScoreWhite Score
	ScoreBlack Score
	Forfeited  bool
}

// RoundResults holds the results of a tournament round.
type RoundResults struct {
	Pairings []Pairing

	// PairingAllocatedByes lists players who were given a full point bye by
	// the pairing algorithm, usually because of an odd number of players.
	PairingAllocatedByes []PlayerID

	// HalfPointByes lists players who requested a bye and received ½ point.
	HalfPointByes []PlayerID
}

// ResultKind distinguishes the variants of PlayerResult.
type ResultKind int

const (
	Unpaired ResultKind = iota
	Paired
	AllocatedBye
	HalfPointBye
)

func (k ResultKind) String() string {
	switch k {
	case Unpaired:
		return "unpaired"
	case Paired:
		return "paired"
	case AllocatedBye:
		return "allocated-bye"
	case HalfPointBye:
		return "half-point-bye"
	default:
		return "?"
	}
}

// PlayerResult is a round's result from the view of one player. Score,
// OpponentScore, Opponent and Forfeited are only meaningful when Kind is
// Paired. The zero value is an Unpaired result.
type PlayerResult struct {
	Kind          ResultKind
	Score         Score
	OpponentScore Score
	Opponent      PlayerID
	Forfeited     bool
}

// Results is an immutable index of a tournament's pairings and results. It
// is safe for concurrent use once built.
type Results struct {
	byPlayer map[PlayerID]map[int]PlayerResult
	players  []PlayerID
	rounds   int
}

// NewResults indexes the given rounds; rounds[0] is round 1. A player with
// more than one result in a round means the input is corrupt, in which case
// no index is returned.
func NewResults(rounds []RoundResults) (*Results, error) {
	res := &Results{
		byPlayer: make(map[PlayerID]map[int]PlayerResult),
		rounds:   len(rounds),
	}

	for idx, rr := range rounds {
		round := idx + 1
		for _, p := range rr.Pairings {
			if p.White == p.Black {
				return nil, fmt.Errorf("round %v player %v: %w", round,
					p.White, ErrSelfPairing)
			}
			if !p.ScoreWhite.valid() || !p.ScoreBlack.valid() {
				return nil, fmt.Errorf("round %v %v-%v score %v:%v: %w", round,
					p.White, p.Black, p.ScoreWhite, p.ScoreBlack,
					ErrInvalidScore)
			}
			err := res.add(p.White, round, PlayerResult{
				Kind:          Paired,
				Score:         p.ScoreWhite,
				OpponentScore: p.ScoreBlack,
				Opponent:      p.Black,
				Forfeited:     p.Forfeited,
			})
			if err != nil {
				return nil, err
			}
			err = res.add(p.Black, round, PlayerResult{
				Kind:          Paired,
				Score:         p.ScoreBlack,
				OpponentScore: p.ScoreWhite,
				Opponent:      p.White,
				Forfeited:     p.Forfeited,
			})
			if err != nil {
				return nil, err
			}
		}
		for _, player := range rr.PairingAllocatedByes {
			err := res.add(player, round, PlayerResult{Kind: AllocatedBye})
			if err != nil {
				return nil, err
			}
		}
		for _, player := range rr.HalfPointByes {
			err := res.add(player, round, PlayerResult{Kind: HalfPointBye})
			if err != nil {
				return nil, err
			}
		}
	}

	res.players = make([]PlayerID, 0, len(res.byPlayer))
	for player := range res.byPlayer {
		res.players = append(res.players, player)
	}
	sort.Slice(res.players, func(i, j int) bool {
		return res.players[i] < res.players[j]
	})

	return res, nil
}

func (res *Results) add(player PlayerID, round int, result PlayerResult) error {
	rounds, ok := res.byPlayer[player]
	if !ok {
		rounds = make(map[int]PlayerResult)
		res.byPlayer[player] = rounds
	}
	if _, ok := rounds[round]; ok {
		return fmt.Errorf("round %v player %v: %w", round, player,
			ErrDuplicateResult)
	}
	rounds[round] = result

	return nil
}

// Get returns the result for the given player and round, or an Unpaired
// result if nothing was recorded.
func (res *Results) Get(player PlayerID, round int) PlayerResult {
	return res.byPlayer[player][round]
}

// GetAll returns the player's results for rounds 1 through maxRound.
func (res *Results) GetAll(player PlayerID, maxRound int) []PlayerResult {
	if maxRound <= 0 {
		return nil
	}
	all := make([]PlayerResult, maxRound)
	for i := range all {
		all[i] = res.Get(player, i+1)
	}
	return all
}

// AllPlayers returns every player that appears in any round, sorted.
func (res *Results) AllPlayers() []PlayerID {
	return append([]PlayerID(nil), res.players...)
}

// Rounds returns the number of rounds the index was built from.
func (res *Results) Rounds() int {
	return res.rounds
}

// IsPaired reports whether the player was paired against an opponent,
// whether or not the game was actually played.
func IsPaired(r PlayerResult) bool {
	return r.Kind == Paired
}

// IsPlayed reports whether a game was actually played over the board.
func IsPlayed(r PlayerResult) bool {
	return IsPaired(r) && !r.Forfeited
}

func IsForfeitLoss(r PlayerResult) bool {
	return IsPaired(r) && r.Forfeited && r.Score == Loss
}

// IsVoluntarilyUnplayedRound reports whether the player chose not to play
// the round: unpaired, a requested half point bye or a forfeit loss. An
// allocated bye or a forfeit win is not voluntary.
func IsVoluntarilyUnplayedRound(r PlayerResult) bool {
	return r.Kind == Unpaired || r.Kind == HalfPointBye || IsForfeitLoss(r)
}
