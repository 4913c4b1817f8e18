package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"deepfake-game/internal/cli"
	"deepfake-game/internal/config"
	"deepfake-game/internal/game"
	"deepfake-game/internal/game/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	store, err := sqlite.NewSQLiteStore(cfg.DBPath,
		sqlite.WithPasswordHasher(cfg.Hasher()),
		sqlite.WithForeignKeys(cfg.ForeignKeys),
	)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	service := game.NewService(store, store, store)
	err = cli.Run(context.Background(), os.Stdin, os.Stdout, service, cli.Config{
		Rounds:           cfg.Rounds,
		LeaderboardLimit: cfg.LeaderboardLimit,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		store.Close()
		os.Exit(1)
	}
}
