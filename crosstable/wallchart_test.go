/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package crosstable

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mikeb26/boylstonchessclub-tiebreak/tiebreak"
)

const testCSV = `#,Name,Rating,1,2,3,Pts
1,Alice Adams,1800,+W3,=B2,-F4,1.5
2,Bob Brown,1750,-B4,=W1,+BYE,2
3,Carol Chen,1600,-B1,=BYE,--,0.5
4,Dan Diaz,1500,+W2,--,+F1,2
`

const testHTML = `<html><body>
<table><tr><th>Date</th><th>Event</th></tr><tr><td>Jan 5</td><td>Thursday Night</td></tr></table>
<table>
  <tr><th>No</th><th>Name</th><th>R1</th><th>R2</th><th>R3</th><th>Total</th></tr>
  <tr><td>1.</td><td>Alice Adams</td><td>+W3</td><td>=B2</td><td>-F4</td><td>1½</td></tr>
  <tr><td>2.</td><td>Bob Brown</td><td>-B4</td><td>=W1</td><td>+BYE</td><td>2</td></tr>
  <tr><td>3.</td><td>Carol Chen</td><td>-B1</td><td>=BYE</td><td>--</td><td>½</td></tr>
  <tr><td>4.</td><td>Dan Diaz</td><td>+W2</td><td></td><td>+F1</td><td>2</td></tr>
</table>
</body></html>`

func wantRounds() []tiebreak.RoundResults {
	return []tiebreak.RoundResults{
		{Pairings: []tiebreak.Pairing{
			{White: "1", Black: "3", ScoreWhite: tiebreak.Win, ScoreBlack: tiebreak.Loss},
			{White: "4", Black: "2", ScoreWhite: tiebreak.Win, ScoreBlack: tiebreak.Loss},
		}},
		{
			Pairings: []tiebreak.Pairing{
				{White: "2", Black: "1", ScoreWhite: tiebreak.Draw, ScoreBlack: tiebreak.Draw},
			},
			HalfPointByes: []tiebreak.PlayerID{"3"},
		},
		{
			Pairings: []tiebreak.Pairing{
				{White: "1", Black: "4", ScoreWhite: tiebreak.Loss, ScoreBlack: tiebreak.Win,
					Forfeited: true},
			},
			PairingAllocatedByes: []tiebreak.PlayerID{"2"},
		},
	}
}

var wantNames = map[tiebreak.PlayerID]string{
	"1": "Alice Adams",
	"2": "Bob Brown",
	"3": "Carol Chen",
	"4": "Dan Diaz",
}

func mustParseCSV(t *testing.T, in string) *Wallchart {
	t.Helper()
	wc, err := ParseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	return wc
}

func TestParseCSV(t *testing.T) {
	wc := mustParseCSV(t, testCSV)
	if diff := cmp.Diff(wantRounds(), wc.Rounds); diff != "" {
		t.Errorf("Rounds mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantNames, wc.Names); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}

	res, err := tiebreak.NewResults(wc.Rounds)
	if err != nil {
		t.Fatalf("NewResults: %v", err)
	}
	calc := tiebreak.NewCalculator(res, tiebreak.AdjustNone)
	for player, want := range map[tiebreak.PlayerID]float64{
		"1": 1.5, "2": 1.5, "3": 0.5, "4": 2,
	} {
		if got := calc.Score(player, 3); got != want {
			t.Errorf("score of %v = %v; want %v", player, got, want)
		}
	}
}

func TestParseCSVWithoutNames(t *testing.T) {
	wc := mustParseCSV(t, "#,R1\nA,=W B\nB,=B A\n")
	if wc.Names != nil {
		t.Errorf("Names = %v; want nil", wc.Names)
	}
	if len(wc.Rounds) != 1 {
		t.Fatalf("%v rounds; want 1", len(wc.Rounds))
	}
	want := []tiebreak.Pairing{
		{White: "A", Black: "B", ScoreWhite: tiebreak.Draw, ScoreBlack: tiebreak.Draw},
	}
	if diff := cmp.Diff(want, wc.Rounds[0].Pairings); diff != "" {
		t.Errorf("Pairings mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCSVDoubleForfeit(t *testing.T) {
	wc := mustParseCSV(t, "#,1\n1,-F2\n2,-F1\n")
	want := []tiebreak.Pairing{
		{White: "1", Black: "2", ScoreWhite: tiebreak.Loss, ScoreBlack: tiebreak.Loss,
			Forfeited: true},
	}
	if diff := cmp.Diff(want, wc.Rounds[0].Pairings); diff != "" {
		t.Errorf("Pairings mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", ErrBadHeader},
		{"no id column", "Name,1\nA,+W2\n", ErrBadHeader},
		{"round gap", "#,1,3\n1,--,--\n", ErrBadHeader},
		{"round twice", "#,1,R1\n1,--,--\n", ErrBadHeader},
		{"bad code", "#,1\n1,+Q2\n2,-B1\n", ErrBadCode},
		{"unknown opponent", "#,1\n1,+W9\n2,--\n", ErrInconsistent},
		{"opponents disagree", "#,1\n1,+W2\n2,-B3\n3,--\n", ErrInconsistent},
		{"scores disagree", "#,1\n1,+W2\n2,+B1\n", ErrInconsistent},
		{"both white", "#,1\n1,+W2\n2,-W1\n", ErrInconsistent},
		{"both black", "#,1\n1,=B2\n2,=B1\n", ErrInconsistent},
		{"forfeit vs game", "#,1\n1,+F2\n2,-B1\n", ErrInconsistent},
		{"both forfeit wins", "#,1\n1,+F2\n2,+F1\n", ErrInconsistent},
		{"player twice", "#,1\n1,--\n1,--\n", ErrInconsistent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tt.in))
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseCSV error = %v; want %v", err, tt.want)
			}
		})
	}
}

func TestParseHTML(t *testing.T) {
	wc, err := ParseHTML(strings.NewReader(testHTML))
	if err != nil {
		t.Fatalf("ParseHTML: %v", err)
	}
	if diff := cmp.Diff(wantRounds(), wc.Rounds); diff != "" {
		t.Errorf("Rounds mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantNames, wc.Names); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHTMLNoTable(t *testing.T) {
	_, err := ParseHTML(strings.NewReader(
		"<html><body><p>No crosstable yet</p></body></html>"))
	if !errors.Is(err, ErrNoTable) {
		t.Errorf("ParseHTML error = %v; want %v", err, ErrNoTable)
	}
}

func TestBuilderTrailingEmptyRound(t *testing.T) {
	b := NewBuilder()
	if err := b.Add("A", 1, Code{Kind: CodeAllocatedBye}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := b.Add("A", 2, Code{Kind: CodeUnpaired}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := b.Add("A", 2, Code{Kind: CodeUnpaired}); !errors.Is(err, ErrInconsistent) {
		t.Errorf("duplicate Add error = %v; want %v", err, ErrInconsistent)
	}
	if err := b.Add("A", 0, Code{Kind: CodeUnpaired}); !errors.Is(err, ErrInconsistent) {
		t.Errorf("round 0 Add error = %v; want %v", err, ErrInconsistent)
	}

	rounds, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []tiebreak.RoundResults{
		{PairingAllocatedByes: []tiebreak.PlayerID{"A"}},
		{},
	}
	if diff := cmp.Diff(want, rounds); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderColors(t *testing.T) {
	b := NewBuilder()
	if err := b.Add("1", 1, Code{Kind: CodeGame, Score: tiebreak.Win,
		Color: White, Opponent: "2"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := b.Add("2", 1, Code{Kind: CodeGame, Score: tiebreak.Loss,
		Color: White, Opponent: "1"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := b.Build(); !errors.Is(err, ErrInconsistent) {
		t.Errorf("Build error = %v; want %v", err, ErrInconsistent)
	}
}
