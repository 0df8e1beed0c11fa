/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/boylstonchessclub-tiebreak/internal"
	"github.com/mikeb26/boylstonchessclub-tiebreak/standings"
	"github.com/mikeb26/boylstonchessclub-tiebreak/tiebreak"
	"github.com/mikeb26/boylstonchessclub-tiebreak/uschess"
)

type TdSubCommand string

const (
	TdAboutCmd     TdSubCommand = "about"
	TdHelpCmd      TdSubCommand = "help"
	TdHistoryCmd   TdSubCommand = "history"
	TdStandingsCmd TdSubCommand = "standings"
	TdTiebreakCmd  TdSubCommand = "tiebreak"
)

var tdSubCmdHdlrs = map[TdSubCommand]CmdHandler{
	TdAboutCmd:     tdAboutCmdHandler,
	TdHelpCmd:      tdHelpCmdHandler,
	TdHistoryCmd:   tdHistoryCmdHandler,
	TdStandingsCmd: tdStandingsCmdHandler,
	TdTiebreakCmd:  tdTiebreakCmdHandler,
}

var (
	uscfClientOnce sync.Once
	uscfClient     *uschess.Client
)

func getUSCFClient() *uschess.Client {
	uscfClientOnce.Do(func() {
		// the client outlives any one interaction
		uscfClient = uschess.NewClient(context.Background())
	})
	return uscfClient
}

// replaced in tests
var (
	fetchTournament = func(ctx context.Context,
		id uschess.EventID) (*uschess.Tournament, error) {

		return getUSCFClient().FetchCrossTables(ctx, id)
	}
	fetchAffiliateEvents = func(ctx context.Context,
		aid string) ([]uschess.Event, error) {

		return getUSCFClient().GetAffiliateEvents(ctx, aid)
	}
)

func tdCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := tdHelpCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := tdSubCmdHdlrs[TdSubCommand(subName)]
			if ok {
				hdlr = h
			}
		}
	}
	return hdlr(ctx, inter)
}

func newEphemeralResponse() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

// subCommandOptions returns the options of the invoked sub command by name.
func subCommandOptions(
	inter *discordgo.Interaction) map[string]*discordgo.ApplicationCommandInteractionDataOption {

	opts := make(map[string]*discordgo.ApplicationCommandInteractionDataOption)
	data := inter.ApplicationCommandData()
	if len(data.Options) > 0 {
		for _, opt := range data.Options[0].Options {
			opts[opt.Name] = opt
		}
	}
	return opts
}

func setBroadcast(resp *discordgo.InteractionResponse,
	opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {

	if opt, ok := opts["broadcast"]; ok && opt.BoolValue() {
		resp.Data.Flags = 0
	}
}

//go:embed about.txt
var aboutText string

func tdAboutCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	resp.Data.Content = truncateContent(aboutText)
	return resp
}

//go:embed help.md
var helpText string

func tdHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	resp.Data.Content = truncateContent(helpText)
	return resp
}

func tdHistoryCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	opts := subCommandOptions(inter)
	days := int64(14) // default
	if opt, ok := opts["days"]; ok {
		days = opt.IntValue()
	}
	// enforce bounds
	if days <= 0 {
		days = 14
	} else if days > 60 {
		days = 60
	}
	since := time.Now().AddDate(0, 0, -int(days))

	events, err := fetchAffiliateEvents(ctx, internal.BccUSCFAffiliateID)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error fetching events: %v", err)
		log.Printf("discordbot.history: %v", resp.Data.Content)
		return resp
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
		resp.Data.Content = fmt.Sprintf("No events rated in the last %d days.",
			days)
		return resp
	}

	var datesList []string
	for d := range eventsByDate {
		datesList = append(datesList, d)
	}
	sort.Slice(datesList, func(i, j int) bool {
		return datesList[i] > datesList[j]
	})
	var sb strings.Builder
	for _, d := range datesList {
		sb.WriteString(fmt.Sprintf("**%s**\n", d))
		for _, ev := range eventsByDate[d] {
			sb.WriteString(fmt.Sprintf("- %v (uscftid:%v)\n", ev.Name, ev.ID))
		}
	}
	sb.WriteString("\nRun /td standings <uscftid> to get tiebreak standings for an event\n")
	resp.Data.Content = truncateContent(sb.String())

	return resp
}

// tdEvent is one section of a rated event ready for tiebreak calculation.
type tdEvent struct {
	title     string
	names     map[tiebreak.PlayerID]string
	calc      *tiebreak.Calculator
	round     int
	tiebreaks []tiebreak.Tiebreak
}

func loadEvent(ctx context.Context,
	opts map[string]*discordgo.ApplicationCommandInteractionDataOption) (*tdEvent, error) {

	tidOpt, ok := opts["uscftid"]
	if !ok || tidOpt.IntValue() <= 0 {
		return nil, errors.New("please provide a USCF tournament id (uscftid)")
	}
	tiebreaksText := internal.DefaultTiebreaks
	if opt, ok := opts["tiebreaks"]; ok {
		tiebreaksText = opt.StringValue()
	}
	tiebreaks, err := tiebreak.ParseTiebreaks(tiebreaksText)
	if err != nil {
		return nil, err
	}
	if len(tiebreaks) == 0 {
		return nil, errors.New("please provide at least one tiebreak")
	}
	adjustText := internal.DefaultAdjustment
	if opt, ok := opts["adjust"]; ok {
		adjustText = opt.StringValue()
	}
	adjustment, err := tiebreak.ParseUnplayedRoundsAdjustment(adjustText)
	if err != nil {
		return nil, err
	}
	var sectionName string
	if opt, ok := opts["section"]; ok {
		sectionName = opt.StringValue()
	}

	tid := uschess.EventID(tidOpt.IntValue())
	tourney, err := fetchTournament(ctx, tid)
	if err != nil {
		return nil, fmt.Errorf("error fetching event %v: %w", tid, err)
	}
	xt, err := tourney.Section(sectionName)
	if err != nil {
		var names []string
		for _, xt := range tourney.CrossTables {
			names = append(names, strings.TrimPrefix(xt.SectionName, "Section "))
		}
		return nil, fmt.Errorf("%w; sections are: %v", err,
			strings.Join(names, ", "))
	}
	rounds, err := xt.RoundResults()
	if err != nil {
		return nil, err
	}
	results, err := tiebreak.NewResults(rounds)
	if err != nil {
		return nil, err
	}

	ev := &tdEvent{
		title:     tourney.Event.Name,
		names:     xt.Names(),
		calc:      tiebreak.NewCalculator(results, adjustment),
		round:     results.Rounds(),
		tiebreaks: tiebreaks,
	}
	if len(tourney.CrossTables) > 1 {
		ev.title = fmt.Sprintf("%v %v", ev.title, xt.SectionName)
	}
	if opt, ok := opts["round"]; ok {
		ev.round = int(opt.IntValue())
	}

	return ev, nil
}

// tdStandingsCmdHandler handles the /td standings command to rank every
// player of a rated event
func tdStandingsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	opts := subCommandOptions(inter)
	ev, err := loadEvent(ctx, opts)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Unable to calculate standings: %v", err)
		log.Printf("discordbot.standings: %v", resp.Data.Content)
		return resp
	}
	ranking, err := ev.calc.Ranking(ev.round, ev.tiebreaks)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error ranking %v: %v", ev.title, err)
		log.Printf("discordbot.standings: %v", resp.Data.Content)
		return resp
	}

	output := fmt.Sprintf("%v after round %v (%v)\n\n%v", ev.title, ev.round,
		ev.calc.Adjustment(),
		standings.Build(ranking, ev.names, ev.tiebreaks))
	// Wrap output in code block for monospace formatting in Discord
	resp.Data.Content = fmt.Sprintf("```\n%s```", truncateContent(output))
	setBroadcast(resp, opts)

	return resp
}

// tdTiebreakCmdHandler handles the /td tiebreak command to show a single
// player's tiebreaks
func tdTiebreakCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newEphemeralResponse()
	opts := subCommandOptions(inter)
	playerOpt, ok := opts["player"]
	if !ok || strings.TrimSpace(playerOpt.StringValue()) == "" {
		resp.Data.Content = "Please provide a player."
		log.Printf("discordbot.tiebreak: %v", resp.Data.Content)
		return resp
	}
	ev, err := loadEvent(ctx, opts)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Unable to calculate tiebreaks: %v", err)
		log.Printf("discordbot.tiebreak: %v", resp.Data.Content)
		return resp
	}
	player, ok := standings.FindPlayer(ev.calc.Results().AllPlayers(),
		ev.names, playerOpt.StringValue())
	if !ok {
		resp.Data.Content = fmt.Sprintf("Player %q not found in %v",
			playerOpt.StringValue(), ev.title)
		return resp
	}

	values := make([]float64, len(ev.tiebreaks))
	for i, t := range ev.tiebreaks {
		values[i], err = ev.calc.Tiebreak(t, player, ev.round)
		if err != nil {
			resp.Data.Content = fmt.Sprintf("Error calculating %v: %v", t, err)
			log.Printf("discordbot.tiebreak: %v", resp.Data.Content)
			return resp
		}
	}

	output := fmt.Sprintf("%v (%v)\n%v", ev.title, ev.calc.Adjustment(),
		standings.BuildPlayer(player, ev.names, ev.round, ev.tiebreaks, values))
	resp.Data.Content = fmt.Sprintf("```\n%s```", truncateContent(output))
	setBroadcast(resp, opts)

	return resp
}

// https://discord.com/developers/docs/resources/channel#start-thread-in-forum-or-media-channel-forum-and-media-thread-message-params-object
// limits messages to 2k characters
func truncateContent(s string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
