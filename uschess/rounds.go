/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"fmt"
	"strconv"

	"github.com/mikeb26/boylstonchessclub-tiebreak/crosstable"
	"github.com/mikeb26/boylstonchessclub-tiebreak/tiebreak"
)

// PlayerID returns the tiebreak id of the player with the given pair number.
func PlayerID(pairNum int) tiebreak.PlayerID {
	return tiebreak.PlayerID(strconv.Itoa(pairNum))
}

// RoundResults converts the cross table into per-round results keyed by
// pair number (see PlayerID). A forfeit whose opponent is not recorded
// becomes a pairing allocated bye when won and an unpaired round when lost.
func (xt *CrossTable) RoundResults() ([]tiebreak.RoundResults, error) {
	b := crosstable.NewBuilder()
	for _, e := range xt.PlayerEntries {
		player := PlayerID(e.PairNum)
		for idx, res := range e.Results {
			if err := b.Add(player, idx+1, res.code()); err != nil {
				return nil, fmt.Errorf("%v: %w", xt.SectionName, err)
			}
		}
		// players who withdrew early may have fewer outcomes listed
		for r := len(e.Results) + 1; r <= xt.NumRounds; r++ {
			err := b.Add(player, r, crosstable.Code{Kind: crosstable.CodeUnpaired})
			if err != nil {
				return nil, fmt.Errorf("%v: %w", xt.SectionName, err)
			}
		}
	}

	rounds, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("%v: %w", xt.SectionName, err)
	}
	return rounds, nil
}

// Names maps each player's tiebreak id to their name.
func (xt *CrossTable) Names() map[tiebreak.PlayerID]string {
	names := make(map[tiebreak.PlayerID]string, len(xt.PlayerEntries))
	for _, e := range xt.PlayerEntries {
		names[PlayerID(e.PairNum)] = e.PlayerName
	}
	return names
}

func (res RoundResult) code() crosstable.Code {
	game := func(kind crosstable.CodeKind, score tiebreak.Score) crosstable.Code {
		code := crosstable.Code{
			Kind:     kind,
			Score:    score,
			Opponent: PlayerID(res.OpponentPairNum),
		}
		switch res.Color {
		case "white":
			code.Color = crosstable.White
		case "black":
			code.Color = crosstable.Black
		}
		return code
	}

	switch res.Outcome {
	case ResultWin:
		return game(crosstable.CodeGame, tiebreak.Win)
	case ResultDraw:
		return game(crosstable.CodeGame, tiebreak.Draw)
	case ResultLoss:
		return game(crosstable.CodeGame, tiebreak.Loss)
	case ResultWinByForfeit:
		if res.OpponentPairNum <= 0 {
			return crosstable.Code{Kind: crosstable.CodeAllocatedBye}
		}
		return game(crosstable.CodeForfeit, tiebreak.Win)
	case ResultLossByForfeit:
		if res.OpponentPairNum <= 0 {
			return crosstable.Code{Kind: crosstable.CodeUnpaired}
		}
		return game(crosstable.CodeForfeit, tiebreak.Loss)
	case ResultFullBye:
		return crosstable.Code{Kind: crosstable.CodeAllocatedBye}
	case ResultHalfBye:
		return crosstable.Code{Kind: crosstable.CodeHalfPointBye}
	}
	return crosstable.Code{Kind: crosstable.CodeUnpaired}
}
