/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package standings

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mikeb26/boylstonchessclub-tiebreak/internal"
	"github.com/mikeb26/boylstonchessclub-tiebreak/tiebreak"
)

// Build formats a ranking as an aligned table with one column per
// tiebreak. The place is left blank for a player sharing the previous
// player's rank. Players without an entry in names are shown by id.
func Build(ranking []tiebreak.PlayerRanking,
	names map[tiebreak.PlayerID]string, tiebreaks []tiebreak.Tiebreak) string {

	header := []string{"Place", "Name"}
	for _, t := range tiebreaks {
		header = append(header, string(t))
	}

	rows := make([][]string, 0, len(ranking))
	for idx, r := range ranking {
		place := ""
		if idx == 0 || r.Rank != ranking[idx-1].Rank {
			place = fmt.Sprintf("%v.", r.Rank)
		}
		row := []string{place, displayName(r.PlayerID, names)}
		for _, score := range r.Scores {
			row = append(row, internal.ScoreToString(score))
		}
		rows = append(rows, row)
	}

	return formatTable(header, rows)
}

// BuildPlayer formats one player's tiebreak values, one per line.
func BuildPlayer(player tiebreak.PlayerID, names map[tiebreak.PlayerID]string,
	round int, tiebreaks []tiebreak.Tiebreak, values []float64) string {

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%v after round %v\n",
		displayName(player, names), round))

	rows := make([][]string, 0, len(tiebreaks))
	for i, t := range tiebreaks {
		if i >= len(values) {
			break
		}
		rows = append(rows, []string{string(t), internal.ScoreToString(values[i])})
	}
	sb.WriteString(formatTable([]string{"Tiebreak", "Value"}, rows))

	return sb.String()
}

func displayName(player tiebreak.PlayerID, names map[tiebreak.PlayerID]string) string {
	if name := names[player]; name != "" {
		return name
	}
	return string(player)
}

func formatTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(cell))
			}
		}
	}

	var sb strings.Builder
	writeRow := func(row []string) {
		var line strings.Builder
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				line.WriteString("  ")
			}
			line.WriteString(fmt.Sprintf("%-*s", widths[i], cell))
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteString("\n")
	}

	writeRow(header)
	for _, row := range rows {
		writeRow(row)
	}

	return sb.String()
}

// FindPlayer matches query against player ids first and then, ignoring
// case and middle names, against player names.
func FindPlayer(players []tiebreak.PlayerID, names map[tiebreak.PlayerID]string,
	query string) (tiebreak.PlayerID, bool) {

	query = strings.TrimSpace(query)
	if query == "" {
		return "", false
	}
	for _, id := range players {
		if string(id) == query {
			return id, true
		}
	}
	normalized := internal.NormalizeName(query)
	for _, id := range players {
		if name := names[id]; name != "" && internal.NormalizeName(name) == normalized {
			return id, true
		}
	}
	return "", false
}
