// Command devtoken mints a bearer token for a ledger owner using the server's JWT settings.
//
//	go run ./cmd/devtoken -owner alice
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mmynk/debtledger/internal/auth"
	"github.com/mmynk/debtledger/internal/config"
	"github.com/mmynk/debtledger/pkg/logging"
)

func main() {
	owner := flag.String("owner", "", "owner id to put in the token (defaults to DEV_OWNER_ID)")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to TOKEN_TTL)")
	flag.Parse()

	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET is not set")
		os.Exit(1)
	}

	ownerID := *owner
	if ownerID == "" {
		ownerID = cfg.DevOwnerID
	}
	if ownerID == "" {
		slog.Error("No owner given", "hint", "pass -owner or set DEV_OWNER_ID")
		os.Exit(2)
	}

	lifetime := cfg.TokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}

	token, err := auth.NewJWTManager(cfg.JWTSecret, lifetime).Generate(ownerID)
	if err != nil {
		slog.Error("Failed to generate token", "error", err)
		os.Exit(1)
	}
	slog.Debug("Token issued", "owner_id", ownerID, "expires", time.Now().Add(lifetime).Format(time.RFC3339))
	fmt.Println(token)
}
