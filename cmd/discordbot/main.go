/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/boylstonchessclub-tiebreak/internal"
)

var client *discordgo.Session

type TopLevelCommand string

const (
	TdCmd TopLevelCommand = "td"
)

type CmdHandler func(ctx context.Context,
	i *discordgo.Interaction) *discordgo.InteractionResponse

var topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
	TdCmd: tdCmdHandler,
}

// newInteractionHandler returns the http handler for Discord interactions
// signed with pubKey.
func newInteractionHandler(pubKey ed25519.PublicKey) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !discordgo.VerifyInteraction(r, pubKey) {
			log.Printf("discordbot.int: failed to verify")
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Printf("discordbot.int: failed to read request body: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var inter discordgo.Interaction
		if err := inter.UnmarshalJSON(body); err != nil {
			log.Printf("discordbot.int: failed to unmarshal interaction: err:%v body:%v",
				err, string(body))
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		resp := &discordgo.InteractionResponse{}
		switch inter.Type {
		case discordgo.InteractionPing:
			resp.Type = discordgo.InteractionResponsePong
		case discordgo.InteractionApplicationCommand:
			name := inter.ApplicationCommandData().Name
			hdlr, ok := topLevelCmdHdlrs[TopLevelCommand(name)]
			if !ok {
				resp.Type = discordgo.InteractionResponseChannelMessageWithSource
				resp.Data = &discordgo.InteractionResponseData{
					Content: fmt.Sprintf("unknown command '%v'", name),
					Flags:   discordgo.MessageFlagsEphemeral,
				}
			} else {
				resp = hdlr(r.Context(), &inter)
			}
		default:
			log.Printf("discordbot.int: unimplemented interation type %v: inter:%v",
				inter.Type, inter)
			w.WriteHeader(http.StatusNotImplemented)
			return
		}

		rawResp, err := json.Marshal(resp)
		if err != nil {
			log.Printf("discordbot.int: failed to marshal resp: err:%v", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if _, err = w.Write(rawResp); err != nil {
			log.Printf("discordbot.int: failed to write resp: err:%v", err)
		}
	}
}

func cmdRegistrationHash(cmd *discordgo.ApplicationCommand) string {
	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		log.Fatalf("discordbot.reg: failed to marshal cmd: %v", err)
	}
	hash := sha256.Sum256(cmdJson)
	return hex.EncodeToString(hash[:])
}

func tiebreakOptions() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "section",
			Description: "Section name for events with more than one section",
			Required:    false,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "round",
			Description: "Calculate as of this round (default is the last round)",
			Required:    false,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "tiebreaks",
			Description: fmt.Sprintf("Comma separated tiebreaks (default is %v)", internal.DefaultTiebreaks),
			Required:    false,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "adjust",
			Description: "Unplayed rounds adjustment (default is FIDE_2023)",
			Required:    false,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "NONE", Value: "NONE"},
				{Name: "FIDE_2023", Value: "FIDE_2023"},
				{Name: "FIDE_2009", Value: "FIDE_2009"},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionBoolean,
			Name:        "broadcast",
			Description: "Share with the rest of the channel instead of only to you (default is false)",
			Required:    false,
		},
	}
}

func tdCommand() *discordgo.ApplicationCommand {
	tidOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "uscftid",
		Description: "USCF tournament id (as returned by history)",
		Required:    true,
	}
	playerOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "player",
		Description: "Pair number or player name",
		Required:    true,
	}

	return &discordgo.ApplicationCommand{
		Name:        string(TdCmd),
		Description: "Tournament director commands; try /td help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdHelpCmd),
				Description: "Show usage for td",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdAboutCmd),
				Description: "Show information about boylstonchessclub-tiebreak",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdHistoryCmd),
				Description: "Show recently rated club events",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "days",
						Description: "Number of days to look back (default is 14)",
						Required:    false,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdStandingsCmd),
				Description: "Rank an event's players by score and tiebreaks",
				Options: append([]*discordgo.ApplicationCommandOption{tidOpt},
					tiebreakOptions()...),
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdTiebreakCmd),
				Description: "Show one player's tiebreaks",
				Options: append([]*discordgo.ApplicationCommandOption{tidOpt,
					playerOpt}, tiebreakOptions()...),
			},
		},
	}
}

func registerSlashCommands(cfg config) {
	tdCmd := tdCommand()

	if cfg.CmdID == "" {
		cmd, err := client.ApplicationCommandCreate(cfg.AppID, "", tdCmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to register %v: %v", tdCmd.Name,
				err)
			return
		}

		log.Printf("discordbot.reg: registered %v(cmdID:%v); please set DISCORD_TD_CMD_ID",
			cmd.Name, cmd.ID)
		return
	}

	hash := cmdRegistrationHash(tdCmd)
	if hash == cfg.LastCmdUpdateHash {
		return
	}
	cmd, err := client.ApplicationCommandEdit(cfg.AppID, "", cfg.CmdID, tdCmd)
	if err != nil {
		log.Printf("discordbot.reg: failed to update %v: %v", tdCmd.Name, err)
		return
	}
	log.Printf("discordbot.reg: updated %v(cmdID:%v); please set DISCORD_TD_CMD_HASH to %v",
		cmd.Name, cmd.ID, hash)
}

func main() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("discordbot.main: %v", err)
	}
	client, err = discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		log.Fatalf("discordbot.main: Failed to initialize discord client: %v",
			err)
	}
	go registerSlashCommands(cfg)

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("discordbot.main: starting server on %v%v", hostname, cfg.Addr)

	http.HandleFunc("/DiscordBot/Interaction", newInteractionHandler(cfg.PublicKey))
	if err := http.ListenAndServe(cfg.Addr, nil); err != nil {
		log.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	log.Printf("discordbot.main: exiting")
}
