/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package standings

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mikeb26/boylstonchessclub-tiebreak/tiebreak"
)

func TestBuild(t *testing.T) {
	ranking := []tiebreak.PlayerRanking{
		{PlayerID: "1", Scores: []float64{3, 7.5}, Rank: 1},
		{PlayerID: "3", Scores: []float64{2.5, 8}, Rank: 2},
		{PlayerID: "2", Scores: []float64{2.5, 8}, Rank: 2},
		{PlayerID: "4", Scores: []float64{0.5, 6}, Rank: 4},
	}
	names := map[tiebreak.PlayerID]string{
		"1": "Alice Adams",
		"2": "Bob Brown",
		"3": "Carol Chen",
	}

	got := Build(ranking, names, []tiebreak.Tiebreak{tiebreak.TiebreakScore,
		tiebreak.TiebreakBuchholz})
	want := "" +
		"Place  Name         SCORE  BH\n" +
		"1.     Alice Adams  3      7½\n" +
		"2.     Carol Chen   2½     8\n" +
		"       Bob Brown    2½     8\n" +
		"4.     4            ½      6\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildEmpty(t *testing.T) {
	got := Build(nil, nil, []tiebreak.Tiebreak{tiebreak.TiebreakScore})
	if want := "Place  Name  SCORE\n"; got != want {
		t.Errorf("Build(nil) = %q; want %q", got, want)
	}
}

func TestBuildPlayer(t *testing.T) {
	got := BuildPlayer("2", map[tiebreak.PlayerID]string{"2": "Bob Brown"}, 4,
		[]tiebreak.Tiebreak{tiebreak.TiebreakBuchholzCut1,
			tiebreak.TiebreakSonnebornBerger},
		[]float64{9.5, 6.25})
	want := "" +
		"Bob Brown after round 4\n" +
		"Tiebreak  Value\n" +
		"BH-C1     9½\n" +
		"SB        6.25\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildPlayer mismatch (-want +got):\n%s", diff)
	}
}

func TestFindPlayer(t *testing.T) {
	players := []tiebreak.PlayerID{"1", "2", "3", "4"}
	names := map[tiebreak.PlayerID]string{
		"1": "Alice Adams",
		"2": "Bob Brown",
		"3": "Carol Chen",
	}

	cases := []struct {
		query  string
		want   tiebreak.PlayerID
		wantOk bool
	}{
		{"2", "2", true},
		{" 4 ", "4", true},
		{"Alice Adams", "1", true},
		{"CAROL CHEN", "3", true},
		{"Bob Q Brown", "2", true},
		{"Dan Diaz", "", false},
		{"5", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := FindPlayer(players, names, c.query)
		if got != c.want || ok != c.wantOk {
			t.Errorf("FindPlayer(%q) = %q, %v; want %q, %v", c.query, got, ok,
				c.want, c.wantOk)
		}
	}
}
