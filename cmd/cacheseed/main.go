/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/boylstonchessclub-tiebreak/internal"
	"github.com/mikeb26/boylstonchessclub-tiebreak/uschess"
)

// this program exists just to seed the http cache with crosstables of
// recent club events

const maxInFlight = 2

func main() {
	aid := flag.String("uscfaid", internal.BccUSCFAffiliateID,
		"USCF Affiliate ID whose events to seed (empty to skip)")
	days := flag.Int("days", 60, "Seed affiliate events that ended in the last N days")
	tids := flag.String("uscftids", "", "Comma separated USCF tournament ids to seed")
	flag.Parse()

	ctx := context.Background()
	client := uschess.NewClient(ctx)

	events, err := parseEventIDs(*tids)
	if err != nil {
		log.Fatalf("cacheseed: %v", err)
	}
	if *aid != "" {
		since := time.Now().AddDate(0, 0, -*days)
		affEvents, err := client.GetAffiliateEvents(ctx, *aid)
		if err != nil {
			// best effort
			log.Printf("cacheseed: failed to fetch events for aid:%v: %v",
				*aid, err)
		}
		for _, ev := range affEvents {
			if !ev.EndDate.Before(since) {
				events = append(events, ev.ID)
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxInFlight)
	for _, id := range events {
		g.Go(func() error {
			tourney, err := client.FetchCrossTables(gctx, id)
			time.Sleep(2 * time.Second) // avoid pegging uschess.org
			if err != nil {
				// best effort
				log.Printf("cacheseed: failed to seed tid:%v: %v", id, err)
				return nil
			}
			fmt.Printf("seeded tid:%v %v (%v sections)\n", id,
				tourney.Event.Name, len(tourney.CrossTables))
			return nil
		})
	}
	_ = g.Wait()
}

func parseEventIDs(s string) ([]uschess.EventID, error) {
	var ids []uschess.EventID
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid uscftid %q", part)
		}
		ids = append(ids, uschess.EventID(id))
	}
	return ids, nil
}
