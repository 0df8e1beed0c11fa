/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// config holds the bot's Discord credentials and listen address.
type config struct {
	BotToken  string
	PublicKey ed25519.PublicKey
	AppID     string

	// CmdID is the id of the already registered /td command; empty means
	// register it.
	CmdID string

	// LastCmdUpdateHash is the sha256 of the /td registration last pushed
	// to Discord.
	LastCmdUpdateHash string

	Addr string
}

// loadConfig reads configuration from a .env file (if present) and the
// environment.
func loadConfig() (config, error) {
	// .env is optional; production sets the environment directly
	_ = godotenv.Load()

	cfg := config{
		BotToken:          os.Getenv("DISCORD_BOT_TOKEN"),
		AppID:             os.Getenv("DISCORD_APP_ID"),
		CmdID:             os.Getenv("DISCORD_TD_CMD_ID"),
		LastCmdUpdateHash: os.Getenv("DISCORD_TD_CMD_HASH"),
		Addr:              envOr("ADDR", ":8080"),
	}
	if cfg.BotToken == "" {
		return cfg, fmt.Errorf("DISCORD_BOT_TOKEN cannot be empty")
	}
	if cfg.AppID == "" {
		return cfg, fmt.Errorf("DISCORD_APP_ID cannot be empty")
	}

	pubKeyBytes, err := hex.DecodeString(os.Getenv("DISCORD_PUBLIC_KEY"))
	if err != nil {
		return cfg, fmt.Errorf("failed to parse DISCORD_PUBLIC_KEY: %w", err)
	}
	if len(pubKeyBytes) != ed25519.PublicKeySize {
		return cfg, fmt.Errorf("DISCORD_PUBLIC_KEY must be %v bytes; got %v",
			ed25519.PublicKeySize, len(pubKeyBytes))
	}
	cfg.PublicKey = ed25519.PublicKey(pubKeyBytes)

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
