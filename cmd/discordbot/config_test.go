/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"strings"
	"testing"
)

const testPubKey = "e4d5c3b2a1f0e9d8c7b6a5f4e3d2c1b0a9f8e7d6c5b4a3f2e1d0c9b8a7f6e5d4"

func setTestEnv(t *testing.T, pubKey string) {
	t.Setenv("DISCORD_BOT_TOKEN", "token")
	t.Setenv("DISCORD_APP_ID", "1234")
	t.Setenv("DISCORD_PUBLIC_KEY", pubKey)
	t.Setenv("DISCORD_TD_CMD_ID", "")
	t.Setenv("ADDR", "")
}

func TestLoadConfig(t *testing.T) {
	setTestEnv(t, testPubKey)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q; want :8080", cfg.Addr)
	}
	if len(cfg.PublicKey) != 32 {
		t.Errorf("PublicKey has %v bytes; want 32", len(cfg.PublicKey))
	}
	if cfg.CmdID != "" {
		t.Errorf("CmdID = %q; want empty", cfg.CmdID)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	cases := []struct {
		name    string
		setup   func(t *testing.T)
		wantErr string
	}{
		{"no token", func(t *testing.T) {
			setTestEnv(t, testPubKey)
			t.Setenv("DISCORD_BOT_TOKEN", "")
		}, "DISCORD_BOT_TOKEN"},
		{"no app id", func(t *testing.T) {
			setTestEnv(t, testPubKey)
			t.Setenv("DISCORD_APP_ID", "")
		}, "DISCORD_APP_ID"},
		{"bad key", func(t *testing.T) { setTestEnv(t, "zz") }, "DISCORD_PUBLIC_KEY"},
		{"short key", func(t *testing.T) { setTestEnv(t, "abcd") }, "DISCORD_PUBLIC_KEY"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			c.setup(t)
			_, err := loadConfig()
			if err == nil || !strings.Contains(err.Error(), c.wantErr) {
				t.Errorf("loadConfig error = %v; want mention of %v", err,
					c.wantErr)
			}
		})
	}
}
