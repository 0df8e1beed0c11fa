/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/mikeb26/boylstonchessclub-tiebreak/internal"
	"github.com/mikeb26/boylstonchessclub-tiebreak/standings"
	"github.com/mikeb26/boylstonchessclub-tiebreak/uschess"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":      handleHelp,
	"history":   handleHistory,
	"standings": handleStandings,
	"tiebreak":  handleTiebreak,
}

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

func handleStandings(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("standings", flag.ExitOnError)
	src := addSourceFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ev, err := src.load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		fs.Usage()
		os.Exit(1)
	}
	ranking, err := ev.calc.Ranking(ev.round, ev.tiebreaks)
	if err != nil {
		log.Fatalf("Error ranking %v: %v", ev.title, err)
	}

	fmt.Printf("%v: standings after round %v (%v)\n\n", ev.title, ev.round,
		ev.calc.Adjustment())
	fmt.Print(standings.Build(ranking, ev.names, ev.tiebreaks))
}

func handleTiebreak(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("tiebreak", flag.ExitOnError)
	src := addSourceFlags(fs)
	player := fs.String("player", "", "Player id (pair number) or exact name")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *player == "" {
		fmt.Fprintln(os.Stderr, "Please provide a valid --player.")
		fs.Usage()
		os.Exit(1)
	}

	ev, err := src.load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		fs.Usage()
		os.Exit(1)
	}
	id, ok := standings.FindPlayer(ev.calc.Results().AllPlayers(), ev.names,
		*player)
	if !ok {
		log.Fatalf("Player %q not found in %v", *player, ev.title)
	}

	values := make([]float64, len(ev.tiebreaks))
	for i, t := range ev.tiebreaks {
		values[i], err = ev.calc.Tiebreak(t, id, ev.round)
		if err != nil {
			log.Fatalf("Error calculating %v for %v: %v", t, *player, err)
		}
	}
	fmt.Print(standings.BuildPlayer(id, ev.names, ev.round, ev.tiebreaks,
		values))
}

func handleHistory(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	days := fs.Int("days", 14, "Number of days to retrieve (1-60)")
	aid := fs.String("uscfaid", internal.BccUSCFAffiliateID, "USCF Affiliate ID")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *aid == "" {
		fmt.Fprintln(os.Stderr, "Please provide a valid --uscfaid ID.")
		fs.Usage()
		os.Exit(1)
	}

	// enforce bounds
	if *days <= 0 {
		*days = 14
	} else if *days > 60 {
		*days = 60
	}
	since := time.Now().AddDate(0, 0, -*days)

	client := uschess.NewClient(ctx)
	events, err := client.GetAffiliateEvents(ctx, *aid)
	if err != nil {
		log.Fatalf("Error fetching events for aid:%v: %v", *aid, err)
	}

	eventsByDate := make(map[string][]uschess.Event)
	for _, ev := range events {
		if ev.EndDate.Before(since) {
			continue
		}
		key := ev.EndDate.Format("2006-01-02")
		eventsByDate[key] = append(eventsByDate[key], ev)
	}
	if len(eventsByDate) == 0 {
		fmt.Printf("No recent events found for aid:%v\n", *aid)
		return
	}

	var dates []string
	for d := range eventsByDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i] > dates[j]
	})
	for _, d := range dates {
		fmt.Println(d)
		for _, ev := range eventsByDate[d] {
			fmt.Printf("  - %s (uscftid:%v)\n", ev.Name, ev.ID)
		}
	}
	fmt.Printf("\nRun '%s standings --uscftid ID' to get tiebreak standings for a specific event\n",
		os.Args[0])
}
