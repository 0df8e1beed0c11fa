/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mikeb26/boylstonchessclub-tiebreak/crosstable"
	"github.com/mikeb26/boylstonchessclub-tiebreak/internal"
	"github.com/mikeb26/boylstonchessclub-tiebreak/tiebreak"
	"github.com/mikeb26/boylstonchessclub-tiebreak/uschess"
)

var errNoSource = errors.New("exactly one of --csv, --html or --uscftid is required")

// sourceFlags are the flags shared by every command that reads results.
type sourceFlags struct {
	csvPath   *string
	htmlPath  *string
	tid       *int
	section   *string
	round     *int
	tiebreaks *string
	adjust    *string
}

func addSourceFlags(fs *flag.FlagSet) *sourceFlags {
	return &sourceFlags{
		csvPath:  fs.String("csv", "", "Wallchart CSV file"),
		htmlPath: fs.String("html", "", "Wallchart HTML file"),
		tid:      fs.Int("uscftid", 0, "USCF Tournament ID"),
		section: fs.String("section", "",
			"Section name (USCF events with more than one section)"),
		round: fs.Int("round", 0,
			"Calculate as of this round (default: the last round)"),
		tiebreaks: fs.String("tiebreaks", internal.DefaultTiebreaks,
			"Comma separated tiebreaks, from: SCORE,BH,BH-C1,BH-C2,BH-M1,BH-M2,SB"),
		adjust: fs.String("adjust", internal.DefaultAdjustment,
			"Unplayed rounds adjustment: NONE, FIDE_2023 or FIDE_2009"),
	}
}

// event is a single section's results ready for tiebreak calculation.
type event struct {
	title     string
	names     map[tiebreak.PlayerID]string
	calc      *tiebreak.Calculator
	round     int
	tiebreaks []tiebreak.Tiebreak
}

func (src *sourceFlags) load(ctx context.Context) (*event, error) {
	tiebreaks, err := tiebreak.ParseTiebreaks(*src.tiebreaks)
	if err != nil {
		return nil, err
	}
	adjustment, err := tiebreak.ParseUnplayedRoundsAdjustment(*src.adjust)
	if err != nil {
		return nil, err
	}

	ev := &event{tiebreaks: tiebreaks}
	var rounds []tiebreak.RoundResults
	switch {
	case *src.csvPath != "" && *src.htmlPath == "" && *src.tid == 0:
		rounds, ev.names, err = readWallchart(*src.csvPath, crosstable.ParseCSV)
		ev.title = *src.csvPath
	case *src.htmlPath != "" && *src.csvPath == "" && *src.tid == 0:
		rounds, ev.names, err = readWallchart(*src.htmlPath, crosstable.ParseHTML)
		ev.title = *src.htmlPath
	case *src.tid > 0 && *src.csvPath == "" && *src.htmlPath == "":
		rounds, ev.names, ev.title, err = fetchSection(ctx,
			uschess.EventID(*src.tid), *src.section)
	default:
		return nil, errNoSource
	}
	if err != nil {
		return nil, err
	}

	results, err := tiebreak.NewResults(rounds)
	if err != nil {
		return nil, err
	}
	ev.calc = tiebreak.NewCalculator(results, adjustment)
	ev.round = *src.round
	if ev.round == 0 {
		ev.round = results.Rounds()
	}

	return ev, nil
}

func readWallchart(path string,
	parse func(io.Reader) (*crosstable.Wallchart, error)) (
	[]tiebreak.RoundResults, map[tiebreak.PlayerID]string, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	wc, err := parse(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%v: %w", path, err)
	}
	return wc.Rounds, wc.Names, nil
}

func fetchSection(ctx context.Context, tid uschess.EventID,
	sectionName string) ([]tiebreak.RoundResults,
	map[tiebreak.PlayerID]string, string, error) {

	client := uschess.NewClient(ctx)
	tourney, err := client.FetchCrossTables(ctx, tid)
	if err != nil {
		return nil, nil, "", err
	}
	xt, err := tourney.Section(sectionName)
	if err != nil {
		for _, xt := range tourney.CrossTables {
			fmt.Fprintf(os.Stderr, "  %v\n", xt.SectionName)
		}
		return nil, nil, "", err
	}
	rounds, err := xt.RoundResults()
	if err != nil {
		return nil, nil, "", err
	}

	title := tourney.Event.Name
	if len(tourney.CrossTables) > 1 {
		title = fmt.Sprintf("%v %v", title, xt.SectionName)
	}
	return rounds, xt.Names(), title, nil
}
