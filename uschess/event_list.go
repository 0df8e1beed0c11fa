/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"time"

	"github.com/mikeb26/boylstonchessclub-tiebreak/internal"
)

type EventID int

type Event struct {
	EndDate time.Time
	Name    string
	ID      EventID
}

type apiAffiliateEventsResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		EndDate string `json:"endDate"`
	} `json:"items"`
	HasNextPage bool `json:"hasNextPage"`
}

// GetAffiliateEvents returns every rated event run by the given affiliate,
// most recent first as listed by the ratings API.
func (client *Client) GetAffiliateEvents(ctx context.Context,
	affiliateCode string) ([]Event, error) {

	var events []Event
	const pageSize = 100

	for offset := 0; ; offset += pageSize {
		q := url.Values{}
		q.Set("offset", strconv.Itoa(offset))
		q.Set("pageSize", strconv.Itoa(pageSize))
		path := fmt.Sprintf("/affiliates/%v/events?%v",
			url.PathEscape(affiliateCode), q.Encode())

		// new events show up weekly so a day old listing is fine
		var page apiAffiliateEventsResponse
		err := client.getJSON(ctx, client.httpClient1day, path, &page)
		if err != nil {
			return nil, fmt.Errorf("uschess.GetAffiliateEvents: %w", err)
		}

		for _, item := range page.Items {
			id, err := strconv.Atoi(item.ID)
			if err != nil {
				log.Printf("uschess.GetAffiliateEvents: skipping event id %q: %v",
					item.ID, err)
				continue
			}
			endDate, _ := internal.ParseDateOrZero(item.EndDate)
			events = append(events, Event{
				EndDate: endDate,
				Name:    item.Name,
				ID:      EventID(id),
			})
		}

		if !page.HasNextPage {
			break
		}
	}

	return events, nil
}
