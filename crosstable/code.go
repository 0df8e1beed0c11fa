/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package crosstable

import (
	"fmt"
	"strings"

	"github.com/mikeb26/boylstonchessclub-tiebreak/tiebreak"
)

// CodeKind is the kind of a single wallchart cell.
type CodeKind int

const (
	CodeUnpaired CodeKind = iota
	CodeGame
	CodeForfeit
	CodeAllocatedBye
	CodeHalfPointBye
)

func (k CodeKind) String() string {
	switch k {
	case CodeUnpaired:
		return "Unpaired"
	case CodeGame:
		return "Game"
	case CodeForfeit:
		return "Forfeit"
	case CodeAllocatedBye:
		return "AllocatedBye"
	case CodeHalfPointBye:
		return "HalfPointBye"
	}
	return fmt.Sprintf("CodeKind(%d)", int(k))
}

type Color int

const (
	NoColor Color = iota
	White
	Black
)

// Code is one player's result in one round as written on a wallchart.
//
//	+W10  win with white against 10
//	=B3   draw with black against 3
//	-F11  forfeit loss against 11 (+F11 is the forfeit win)
//	+BYE  pairing allocated bye
//	=BYE  half point bye
//	-BYE  unpaired; so are "--" and an empty cell
type Code struct {
	Kind     CodeKind
	Score    tiebreak.Score
	Color    Color
	Opponent tiebreak.PlayerID
}

// ParseCode parses a single wallchart cell.
func ParseCode(s string) (Code, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "--" {
		return Code{Kind: CodeUnpaired}, nil
	}
	if len(s) < 2 {
		return Code{}, fmt.Errorf("%q: %w", s, ErrBadCode)
	}

	var score tiebreak.Score
	switch s[0] {
	case '+':
		score = tiebreak.Win
	case '=':
		score = tiebreak.Draw
	case '-':
		score = tiebreak.Loss
	default:
		return Code{}, fmt.Errorf("%q: unknown result %q: %w", s, s[0],
			ErrBadCode)
	}

	rest := strings.ToUpper(s[1:])
	if rest == "BYE" {
		switch score {
		case tiebreak.Win:
			return Code{Kind: CodeAllocatedBye}, nil
		case tiebreak.Draw:
			return Code{Kind: CodeHalfPointBye}, nil
		default:
			return Code{Kind: CodeUnpaired}, nil
		}
	}

	code := Code{Kind: CodeGame, Score: score}
	switch rest[0] {
	case 'W':
		code.Color = White
	case 'B':
		code.Color = Black
	case 'F':
		if score == tiebreak.Draw {
			return Code{}, fmt.Errorf("%q: a forfeit cannot be drawn: %w", s,
				ErrBadCode)
		}
		code.Kind = CodeForfeit
	default:
		return Code{}, fmt.Errorf("%q: unknown color %q: %w", s, rest[0],
			ErrBadCode)
	}
	code.Opponent = tiebreak.PlayerID(strings.TrimSpace(s[2:]))
	if code.Opponent == "" {
		return Code{}, fmt.Errorf("%q: missing opponent: %w", s, ErrBadCode)
	}

	return code, nil
}

// String renders the code in the form ParseCode accepts.
func (c Code) String() string {
	var result string
	switch c.Score {
	case tiebreak.Win:
		result = "+"
	case tiebreak.Draw:
		result = "="
	default:
		result = "-"
	}

	switch c.Kind {
	case CodeAllocatedBye:
		return "+BYE"
	case CodeHalfPointBye:
		return "=BYE"
	case CodeForfeit:
		return fmt.Sprintf("%vF%v", result, c.Opponent)
	case CodeGame:
		color := "W"
		if c.Color == Black {
			color = "B"
		}
		return fmt.Sprintf("%v%v%v", result, color, c.Opponent)
	}
	return "--"
}
