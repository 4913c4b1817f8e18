// Package admin implements the maintenance commands of deepfake-admin.
package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"deepfake-game/internal/game"
	"deepfake-game/internal/opentdb"
	"deepfake-game/internal/seed"
)

const defaultImportAmount = 10

// Store is the store surface the admin commands touch.
type Store interface {
	seed.Writer
	InitSchema(ctx context.Context) error
	GetLeaderboard(ctx context.Context, limit int) ([]game.LeaderboardEntry, error)
	CountMediaQuestions(ctx context.Context) (map[game.QuestionType]int, error)
	ListQuestionsByType(ctx context.Context, questionType game.QuestionType) ([]game.QuestionSummary, error)
}

type Fetcher interface {
	FetchQuestions(ctx context.Context, amount int) ([]opentdb.RawQuestion, error)
}

type Deps struct {
	Store            Store
	Trivia           Fetcher
	LeaderboardLimit int
}

var ErrUsage = errors.New("usage: deepfake-admin <init|seed [file]|import-opentdb [n]|leaderboard [n]|stats>")

func Run(ctx context.Context, args []string, out io.Writer, deps Deps) error {
	if deps.Store == nil {
		return errors.New("store is required")
	}
	if len(args) == 0 {
		return ErrUsage
	}
	if deps.LeaderboardLimit <= 0 {
		deps.LeaderboardLimit = game.DefaultLeaderboardLimit
	}

	switch strings.ToLower(args[0]) {
	case "init":
		if err := deps.Store.InitSchema(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "schema ready")
		return nil
	case "seed":
		return runSeed(ctx, args[1:], out, deps.Store)
	case "import-opentdb":
		return runImport(ctx, args[1:], out, deps)
	case "leaderboard":
		limit, err := positiveArg(args[1:], deps.LeaderboardLimit)
		if err != nil {
			return fmt.Errorf("leaderboard limit: %w", err)
		}
		return runLeaderboard(ctx, out, deps.Store, limit)
	case "stats":
		return runStats(ctx, out, deps.Store)
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], ErrUsage)
	}
}

func runSeed(ctx context.Context, args []string, out io.Writer, store Store) error {
	file := seed.Defaults()
	source := "built-in sample bank"
	if len(args) > 0 {
		loaded, err := seed.LoadFile(args[0])
		if err != nil {
			return err
		}
		file = loaded
		source = args[0]
	}

	ids, err := seed.Apply(ctx, store, file)
	fmt.Fprintf(out, "seeded %d of %d questions from %s\n", len(ids), len(file.Questions), source)
	return err
}

func runImport(ctx context.Context, args []string, out io.Writer, deps Deps) error {
	if deps.Trivia == nil {
		return errors.New("opentdb client is not configured")
	}
	amount, err := positiveArg(args, defaultImportAmount)
	if err != nil {
		return fmt.Errorf("import amount: %w", err)
	}

	started := time.Now()
	raw, err := deps.Trivia.FetchQuestions(ctx, amount)
	if err != nil {
		return err
	}
	log.Printf("admin: fetched %d opentdb questions in %s", len(raw), time.Since(started).Round(time.Millisecond))

	file := seed.FromTrivia(raw)
	if len(file.Questions) == 0 {
		fmt.Fprintln(out, "opentdb returned no usable questions")
		return nil
	}
	ids, err := seed.Apply(ctx, deps.Store, file)
	fmt.Fprintf(out, "imported %d of %d questions from opentdb\n", len(ids), len(file.Questions))
	return err
}

func runLeaderboard(ctx context.Context, out io.Writer, store Store, limit int) error {
	entries, err := store.GetLeaderboard(ctx, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "no scores yet")
		return nil
	}
	for idx, entry := range entries {
		fmt.Fprintf(out, "%2d. %-20s %5d  %s\n", idx+1, entry.Username, entry.Score, entry.Date.Format(time.RFC3339))
	}
	return nil
}

func runStats(ctx context.Context, out io.Writer, store Store) error {
	counts, err := store.CountMediaQuestions(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "media questions:")
	for _, questionType := range game.QuestionTypes() {
		if !questionType.IsMedia() {
			continue
		}
		fmt.Fprintf(out, "  %s: %d\n", questionType, counts[questionType])
	}

	for _, questionType := range game.QuestionTypes() {
		summaries, err := store.ListQuestionsByType(ctx, questionType)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s questions (%d):\n", questionType, len(summaries))
		for _, summary := range summaries {
			fmt.Fprintf(out, "  #%d %s\n", summary.ID, summary.Prompt)
		}
	}
	return nil
}

func positiveArg(args []string, defaultValue int) (int, error) {
	if len(args) == 0 {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(args[0])
	if err != nil || value <= 0 {
		return 0, errors.New("must be a positive integer")
	}
	return value, nil
}
