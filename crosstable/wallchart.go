/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package crosstable reads tournament wallcharts (one row per player, one
// result code per round) from CSV and HTML and converts them into the
// per-round results the tiebreak package consumes.
package crosstable

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mikeb26/boylstonchessclub-tiebreak/tiebreak"
)

// Wallchart is a tournament read from a crosstable.
type Wallchart struct {
	Rounds []tiebreak.RoundResults

	// Names maps each player to the name in the wallchart's Name column,
	// if it has one.
	Names map[tiebreak.PlayerID]string
}

type columns struct {
	id     int
	name   int
	rounds []int // rounds[r-1] is the column of round r
}

func findColumns(header []string) (columns, error) {
	cols := columns{id: -1, name: -1}
	byRound := make(map[int]int)

	for idx, h := range header {
		h = strings.ToUpper(strings.TrimSpace(h))
		switch h {
		case "#", "NO", "NO.", "ID":
			if cols.id < 0 {
				cols.id = idx
			}
			continue
		case "NAME", "PLAYER":
			if cols.name < 0 {
				cols.name = idx
			}
			continue
		}
		round, err := strconv.Atoi(strings.TrimPrefix(h, "R"))
		if err != nil || round < 1 {
			continue
		}
		if _, ok := byRound[round]; ok {
			return cols, fmt.Errorf("round %v appears twice: %w", round,
				ErrBadHeader)
		}
		byRound[round] = idx
	}

	if cols.id < 0 {
		return cols, fmt.Errorf("no player id column in %q: %w", header,
			ErrBadHeader)
	}
	cols.rounds = make([]int, len(byRound))
	for r := 1; r <= len(byRound); r++ {
		idx, ok := byRound[r]
		if !ok {
			return cols, fmt.Errorf("round %v missing: %w", r, ErrBadHeader)
		}
		cols.rounds[r-1] = idx
	}

	return cols, nil
}

// newWallchart converts a header row and player rows of cell text.
func newWallchart(header []string, rows [][]string) (*Wallchart, error) {
	cols, err := findColumns(header)
	if err != nil {
		return nil, err
	}

	b := NewBuilder()
	names := make(map[tiebreak.PlayerID]string)
	for rowIdx, row := range rows {
		cell := func(idx int) string {
			if idx < 0 || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		player := tiebreak.PlayerID(strings.TrimSuffix(cell(cols.id), "."))
		if player == "" {
			continue
		}
		if _, ok := names[player]; ok {
			return nil, fmt.Errorf("row %v: player %v listed twice: %w",
				rowIdx+1, player, ErrInconsistent)
		}
		names[player] = cell(cols.name)

		for r, idx := range cols.rounds {
			code, err := ParseCode(cell(idx))
			if err != nil {
				return nil, fmt.Errorf("row %v round %v: %w", rowIdx+1, r+1,
					err)
			}
			if err := b.Add(player, r+1, code); err != nil {
				return nil, err
			}
		}
	}

	rounds, err := b.Build()
	if err != nil {
		return nil, err
	}
	if cols.name < 0 {
		names = nil
	}

	return &Wallchart{Rounds: rounds, Names: names}, nil
}
