package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"

	"deepfake-game/internal/admin"
	"deepfake-game/internal/config"
	"deepfake-game/internal/game/sqlite"
	"deepfake-game/internal/opentdb"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), admin.ErrUsage)
		flag.PrintDefaults()
	}
	flag.Parse()

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	trivia := opentdb.NewClient(
		&http.Client{Timeout: cfg.OpenTDBTimeout},
		opentdb.WithBaseURL(cfg.OpenTDBURL),
	)

	err = admin.Run(ctx, flag.Args(), os.Stdout, admin.Deps{
		Store:            store,
		Trivia:           trivia,
		LeaderboardLimit: cfg.LeaderboardLimit,
	})
	if err != nil {
		if errors.Is(err, admin.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			store.Close()
			os.Exit(2)
		}
		store.Close()
		log.Fatalf("deepfake-admin: %v", err)
	}
}
