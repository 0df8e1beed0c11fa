/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/boylstonchessclub-tiebreak/uschess"
)

func testTournament() *uschess.Tournament {
	return &uschess.Tournament{
		Event: uschess.Event{Name: "Thursday Night Swiss", ID: 202501010001},
		CrossTables: []*uschess.CrossTable{{
			SectionNum:  1,
			SectionName: "Section OPEN",
			NumRounds:   2,
			PlayerEntries: []uschess.CrossTableEntry{
				{PairNum: 1, PlayerName: "Alice Adams", Results: []uschess.RoundResult{
					{OpponentPairNum: 2, Outcome: uschess.ResultWin, Color: "white"},
					{OpponentPairNum: 3, Outcome: uschess.ResultDraw, Color: "black"},
				}},
				{PairNum: 2, PlayerName: "Bob Brown", Results: []uschess.RoundResult{
					{OpponentPairNum: 1, Outcome: uschess.ResultLoss, Color: "black"},
					{OpponentPairNum: 4, Outcome: uschess.ResultWin, Color: "white"},
				}},
				{PairNum: 3, PlayerName: "Carol Chen", Results: []uschess.RoundResult{
					{OpponentPairNum: 4, Outcome: uschess.ResultWin, Color: "white"},
					{OpponentPairNum: 1, Outcome: uschess.ResultDraw, Color: "white"},
				}},
				{PairNum: 4, PlayerName: "Dan Diaz", Results: []uschess.RoundResult{
					{OpponentPairNum: 3, Outcome: uschess.ResultLoss, Color: "black"},
					{OpponentPairNum: 2, Outcome: uschess.ResultLoss, Color: "black"},
				}},
			},
		}},
	}
}

func stubFetchTournament(t *testing.T, tourney *uschess.Tournament) {
	orig := fetchTournament
	fetchTournament = func(ctx context.Context,
		id uschess.EventID) (*uschess.Tournament, error) {

		if id != tourney.Event.ID {
			return nil, errors.New("not found")
		}
		return tourney, nil
	}
	t.Cleanup(func() { fetchTournament = orig })
}

func subCommand(name string,
	opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {

	return &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Name: string(TdCmd),
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{
					Name:    name,
					Type:    discordgo.ApplicationCommandOptionSubCommand,
					Options: opts,
				},
			},
		},
	}
}

func intOpt(name string, v int64) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionInteger,
		Value: float64(v),
	}
}

func stringOpt(name string, v string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: v,
	}
}

func boolOpt(name string, v bool) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionBoolean,
		Value: v,
	}
}

func TestTdHelpCmdHandler(t *testing.T) {
	ctx := context.Background()

	// unknown sub commands fall back to help
	for _, name := range []string{"help", "pairings"} {
		resp := tdCmdHandler(ctx, subCommand(name))
		if resp == nil || resp.Data == nil {
			t.Fatal("Expected non-nil response")
		}
		if resp.Type != discordgo.InteractionResponseChannelMessageWithSource {
			t.Errorf("Expected response type %v, got %v",
				discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
		}
		if resp.Data.Content != truncateContent(helpText) {
			t.Errorf("%v: expected help text, got %q", name, resp.Data.Content)
		}
		if resp.Data.Flags != discordgo.MessageFlagsEphemeral {
			t.Errorf("%v: expected ephemeral response", name)
		}
	}
}

func TestTdStandingsCmdHandler(t *testing.T) {
	stubFetchTournament(t, testTournament())

	resp := tdCmdHandler(context.Background(), subCommand("standings",
		intOpt("uscftid", 202501010001), boolOpt("broadcast", true)))
	content := resp.Data.Content
	if !strings.HasPrefix(content, "```\nThursday Night Swiss after round 2 (FIDE_2023)") {
		t.Errorf("unexpected standings header: %q", content)
	}
	if !strings.Contains(content, "Place  Name         SCORE  BH-C1  BH  SB") {
		t.Errorf("expected tiebreak columns in %q", content)
	}
	// Alice and Carol tie on score and BH-C1; BH separates them
	alice := strings.Index(content, "1.     Alice Adams")
	carol := strings.Index(content, "2.     Carol Chen")
	if alice < 0 || carol < 0 || alice > carol {
		t.Errorf("expected Alice ranked ahead of Carol in %q", content)
	}
	if resp.Data.Flags != 0 {
		t.Errorf("expected broadcast response, got flags %v", resp.Data.Flags)
	}
}

func TestTdStandingsCmdHandlerErrors(t *testing.T) {
	stubFetchTournament(t, testTournament())

	cases := []struct {
		name string
		opts []*discordgo.ApplicationCommandInteractionDataOption
		want string
	}{
		{"no tid", nil, "uscftid"},
		{"unknown event", []*discordgo.ApplicationCommandInteractionDataOption{
			intOpt("uscftid", 1)}, "not found"},
		{"bad tiebreak", []*discordgo.ApplicationCommandInteractionDataOption{
			intOpt("uscftid", 202501010001), stringOpt("tiebreaks", "ARO")},
			"unknown tiebreak"},
		{"bad section", []*discordgo.ApplicationCommandInteractionDataOption{
			intOpt("uscftid", 202501010001), stringOpt("section", "U1200")},
			"sections are: OPEN"},
		{"bad round", []*discordgo.ApplicationCommandInteractionDataOption{
			intOpt("uscftid", 202501010001), intOpt("round", 5)},
			"round 5"},
	}
	for _, c := range cases {
		resp := tdStandingsCmdHandler(context.Background(),
			subCommand("standings", c.opts...))
		if !strings.Contains(resp.Data.Content, c.want) {
			t.Errorf("%v: expected %q in %q", c.name, c.want, resp.Data.Content)
		}
		if resp.Data.Flags != discordgo.MessageFlagsEphemeral {
			t.Errorf("%v: expected ephemeral response", c.name)
		}
	}
}

func TestTdTiebreakCmdHandler(t *testing.T) {
	stubFetchTournament(t, testTournament())

	resp := tdCmdHandler(context.Background(), subCommand("tiebreak",
		intOpt("uscftid", 202501010001), stringOpt("player", "carol chen"),
		stringOpt("tiebreaks", "BH,SB"), stringOpt("adjust", "NONE")))
	want := "```\nThursday Night Swiss (NONE)\n" +
		"Carol Chen after round 2\n" +
		"Tiebreak  Value\n" +
		"BH        1½\n" +
		"SB        0.75\n" +
		"```"
	if resp.Data.Content != want {
		t.Errorf("tiebreak content = %q; want %q", resp.Data.Content, want)
	}

	resp = tdTiebreakCmdHandler(context.Background(), subCommand("tiebreak",
		intOpt("uscftid", 202501010001), stringOpt("player", "Eve Evans")))
	if !strings.Contains(resp.Data.Content, "not found") {
		t.Errorf("expected player not found, got %q", resp.Data.Content)
	}
}

func TestTdHistoryCmdHandler(t *testing.T) {
	orig := fetchAffiliateEvents
	fetchAffiliateEvents = func(ctx context.Context,
		aid string) ([]uschess.Event, error) {

		now := time.Now()
		return []uschess.Event{
			{Name: "Thursday Night Swiss", ID: 202501010001, EndDate: now.AddDate(0, 0, -2)},
			{Name: "Summer Open", ID: 202401010001, EndDate: now.AddDate(-1, 0, 0)},
		}, nil
	}
	t.Cleanup(func() { fetchAffiliateEvents = orig })

	resp := tdCmdHandler(context.Background(), subCommand("history",
		intOpt("days", 7)))
	if !strings.Contains(resp.Data.Content, "Thursday Night Swiss (uscftid:202501010001)") {
		t.Errorf("expected recent event in %q", resp.Data.Content)
	}
	if strings.Contains(resp.Data.Content, "Summer Open") {
		t.Errorf("unexpected old event in %q", resp.Data.Content)
	}
}

func TestTruncateContent(t *testing.T) {
	short := "Place  Name"
	if got := truncateContent(short); got != short {
		t.Errorf("truncateContent(%q) = %q", short, got)
	}

	long := strings.Repeat("½", 2500)
	got := truncateContent(long)
	if want := strings.Repeat("½", 1988) + "..."; got != want {
		t.Errorf("truncateContent(long) has %v runes; want %v",
			len([]rune(got)), len([]rune(want)))
	}
}
