/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/boylstonchessclub-tiebreak/internal"
)

var (
	ErrSectionNotFound  = errors.New("section not found")
	ErrAmbiguousSection = errors.New("more than one section matches")
)

// Result represents the outcome of a round.
type Result int

const (
	ResultWin Result = iota
	ResultLoss
	ResultDraw
	ResultFullBye
	ResultHalfBye
	ResultLossByForfeit
	ResultWinByForfeit
	ResultUnplayedGame
	ResultUnknown
)

func (r Result) String() string {
	switch r {
	case ResultWin:
		return "Win"
	case ResultLoss:
		return "Loss"
	case ResultDraw:
		return "Draw"
	case ResultFullBye:
		return "FullBye"
	case ResultHalfBye:
		return "HalfBye"
	case ResultLossByForfeit:
		return "LossByForfeit"
	case ResultWinByForfeit:
		return "WinByForfeit"
	case ResultUnplayedGame:
		return "Unplayed"
	}
	return "Unknown"
}

// RoundResult holds the result of a single round for a player.
type RoundResult struct {
	OpponentPairNum int
	Outcome         Result
	Color           string
}

// CrossTableEntry holds the data for one player in the cross table.
type CrossTableEntry struct {
	PairNum     int
	PlayerName  string
	PlayerId    int
	TotalPoints float64
	Results     []RoundResult
}

// CrossTable holds the full cross table data, one per section.
type CrossTable struct {
	SectionNum    int
	SectionName   string
	NumRounds     int
	PlayerEntries []CrossTableEntry
}

// Tournament encapsulates the overall event and its cross tables.
type Tournament struct {
	Event       Event
	CrossTables []*CrossTable
}

type apiRatedEventResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Sections  []struct {
		Number int    `json:"number"`
		Name   string `json:"name"`
	} `json:"sections"`
}

type apiStandingsResponse struct {
	Items []apiStandingItem `json:"items"`
}

type apiStandingItem struct {
	Ordinal       int               `json:"ordinal"`
	MemberID      string            `json:"memberId"`
	FirstName     string            `json:"firstName"`
	LastName      string            `json:"lastName"`
	Score         float64           `json:"score"`
	RoundOutcomes []apiRoundOutcome `json:"roundOutcomes"`
}

type apiRoundOutcome struct {
	RoundNumber     int    `json:"roundNumber"`
	Outcome         string `json:"outcome"`
	Color           string `json:"color"`
	OpponentOrdinal int    `json:"opponentOrdinal"`
}

// FetchCrossTables retrieves a Tournament with all sections' cross tables
// for the given event id. Sections are fetched concurrently; a section that
// cannot be fetched is logged and left out.
func (client *Client) FetchCrossTables(ctx context.Context,
	id EventID) (*Tournament, error) {

	var eventData apiRatedEventResponse
	// these are rarely (if ever) updated so 1 month cache is fine for our use case
	err := client.getJSON(ctx, client.httpClient30day,
		fmt.Sprintf("/rated-events/%v", id), &eventData)
	if err != nil {
		return nil, fmt.Errorf("uschess.FetchCrossTables: %w", err)
	}

	xts := make([]*CrossTable, len(eventData.Sections))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxSectionFetches)
	for idx, section := range eventData.Sections {
		g.Go(func() error {
			var standings apiStandingsResponse
			err := client.getJSON(gctx, client.httpClient30day,
				fmt.Sprintf("/rated-events/%v/sections/%d/standings", id,
					section.Number), &standings)
			if err != nil {
				log.Printf("uschess.FetchCrossTables: warning: failed to fetch section %d of %v: %v",
					section.Number, id, err)
				return nil
			}
			xt := convertStandingsToCrossTable(&standings, section.Name)
			xt.SectionNum = section.Number
			xts[idx] = xt
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	crossTables := make([]*CrossTable, 0, len(xts))
	for _, xt := range xts {
		if xt != nil {
			crossTables = append(crossTables, xt)
		}
	}
	sort.Slice(crossTables, func(i, j int) bool {
		return crossTables[i].SectionNum < crossTables[j].SectionNum
	})

	endDate, err := internal.ParseDateOrZero(eventData.EndDate)
	if err != nil {
		log.Printf("uschess.FetchCrossTables: warning: unable to parse event end date %v: %v",
			eventData.EndDate, err)
	}

	return &Tournament{
		Event: Event{
			EndDate: endDate,
			Name:    eventData.Name,
			ID:      id,
		},
		CrossTables: crossTables,
	}, nil
}

// Section returns the cross table whose name contains name (case
// insensitive). An empty name selects the only section of a single section
// event.
func (t *Tournament) Section(name string) (*CrossTable, error) {
	if name == "" {
		if len(t.CrossTables) == 1 {
			return t.CrossTables[0], nil
		}
		return nil, fmt.Errorf("event %v has %v sections: %w", t.Event.ID,
			len(t.CrossTables), ErrAmbiguousSection)
	}

	var found *CrossTable
	want := strings.ToUpper(name)
	for _, xt := range t.CrossTables {
		if strings.ToUpper(xt.SectionName) == "SECTION "+want {
			return xt, nil
		}
		if !strings.Contains(strings.ToUpper(xt.SectionName), want) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%q in event %v: %w", name, t.Event.ID,
				ErrAmbiguousSection)
		}
		found = xt
	}
	if found == nil {
		return nil, fmt.Errorf("%q in event %v: %w", name, t.Event.ID,
			ErrSectionNotFound)
	}

	return found, nil
}

func convertStandingsToCrossTable(standings *apiStandingsResponse,
	sectionName string) *CrossTable {

	var entries []CrossTableEntry
	var numRounds int

	for _, item := range standings.Items {
		results := make([]RoundResult, 0, len(item.RoundOutcomes))
		for _, outcome := range item.RoundOutcomes {
			results = append(results, RoundResult{
				OpponentPairNum: outcome.OpponentOrdinal,
				Outcome:         convertOutcome(outcome.Outcome),
				Color:           convertColor(outcome.Color),
			})
		}
		numRounds = max(numRounds, len(results))

		memberID, err := strconv.Atoi(item.MemberID)
		if err != nil {
			log.Printf("uschess.convertStandingsToCrossTable: warning: failed to convert member ID %v to int: %v",
				item.MemberID, err)
		}

		entries = append(entries, CrossTableEntry{
			PairNum:     item.Ordinal,
			PlayerName:  internal.NormalizeName(item.FirstName + " " + item.LastName),
			PlayerId:    memberID,
			TotalPoints: item.Score,
			Results:     results,
		})
	}

	return &CrossTable{
		SectionName:   fmt.Sprintf("Section %s", sectionName),
		NumRounds:     numRounds,
		PlayerEntries: entries,
	}
}

func convertOutcome(outcome string) Result {
	switch outcome {
	case "Win":
		return ResultWin
	case "Loss":
		return ResultLoss
	case "Draw":
		return ResultDraw
	case "ByeFull":
		return ResultFullBye
	case "ByeHalf":
		return ResultHalfBye
	case "LossByForfeit", "LossForfeit":
		return ResultLossByForfeit
	case "WinByForfeit", "WinForfeit":
		return ResultWinByForfeit
	case "Unplayed", "Unpaired":
		return ResultUnplayedGame
	default:
		return ResultUnknown
	}
}

func convertColor(color string) string {
	switch strings.ToLower(color) {
	case "white":
		return "white"
	case "black":
		return "black"
	default:
		return ""
	}
}
