package admin

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"deepfake-game/internal/game"
	"deepfake-game/internal/game/sqlite"
	"deepfake-game/internal/opentdb"
)

type fakeFetcher struct {
	amount    int
	questions []opentdb.RawQuestion
	err       error
}

func (f *fakeFetcher) FetchQuestions(_ context.Context, amount int) ([]opentdb.RawQuestion, error) {
	f.amount = amount
	return f.questions, f.err
}

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()

	store, err := sqlite.NewSQLiteStore(filepath.Join(t.TempDir(), "admin.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRunRequiresCommand(t *testing.T) {
	err := Run(context.Background(), nil, &bytes.Buffer{}, Deps{Store: newTestStore(t)})
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected ErrUsage, got %v", err)
	}

	err = Run(context.Background(), []string{"drop"}, &bytes.Buffer{}, Deps{Store: newTestStore(t)})
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected ErrUsage for unknown command, got %v", err)
	}
}

func TestRunInit(t *testing.T) {
	var out bytes.Buffer
	if err := Run(context.Background(), []string{"init"}, &out, Deps{Store: newTestStore(t)}); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out.String(), "schema ready") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRunSeedDefaultsAndStats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var out bytes.Buffer
	if err := Run(ctx, []string{"seed"}, &out, Deps{Store: store}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if !strings.Contains(out.String(), "seeded 2 of 2 questions from built-in sample bank") {
		t.Fatalf("unexpected seed output: %q", out.String())
	}

	out.Reset()
	if err := Run(ctx, []string{"stats"}, &out, Deps{Store: store}); err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	text := out.String()
	for _, want := range []string{
		"image: 1",
		"video: 0",
		"text questions (1):",
		"Select the Deepfake",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("stats output missing %q:\n%s", want, text)
		}
	}
}

func TestRunSeedFromFile(t *testing.T) {
	store := newTestStore(t)
	path := filepath.Join(t.TempDir(), "bank.yaml")
	doc := `
questions:
  - type: video
    prompt: Which clip is synthetic?
    answers:
      - payload: clips/a.mp4
        correct: true
        feedback: Lips drift out of sync.
      - payload: clips/b.mp4
        feedback: Natural blinking.
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}

	var out bytes.Buffer
	if err := Run(context.Background(), []string{"seed", path}, &out, Deps{Store: store}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	counts, err := store.CountMediaQuestions(context.Background())
	if err != nil {
		t.Fatalf("CountMediaQuestions failed: %v", err)
	}
	if counts[game.QuestionVideo] != 1 {
		t.Fatalf("expected one video question, got %+v", counts)
	}

	if err := Run(context.Background(), []string{"seed", filepath.Join(t.TempDir(), "missing.yaml")}, &out, Deps{Store: store}); err == nil {
		t.Fatalf("expected error for missing seed file")
	}
}

func TestRunImportOpenTDB(t *testing.T) {
	store := newTestStore(t)
	fetcher := &fakeFetcher{questions: []opentdb.RawQuestion{
		{Category: "Art", Question: "Who painted &quot;Guernica&quot;?", CorrectAnswer: "Picasso", IncorrectAnswers: []string{"Dali", "Miro"}},
		{Category: "Art", Question: "", CorrectAnswer: "skip"},
	}}

	var out bytes.Buffer
	if err := Run(context.Background(), []string{"import-opentdb", "3"}, &out, Deps{Store: store, Trivia: fetcher}); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if fetcher.amount != 3 {
		t.Fatalf("expected amount 3, got %d", fetcher.amount)
	}
	if !strings.Contains(out.String(), "imported 1 of 1 questions") {
		t.Fatalf("unexpected import output: %q", out.String())
	}

	summaries, err := store.ListQuestionsByType(context.Background(), game.QuestionText)
	if err != nil {
		t.Fatalf("ListQuestionsByType failed: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Prompt != `Who painted "Guernica"?` {
		t.Fatalf("unexpected imported questions: %+v", summaries)
	}
}

func TestRunImportErrors(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := Run(ctx, []string{"import-opentdb"}, &bytes.Buffer{}, Deps{Store: store}); err == nil {
		t.Fatalf("expected error without fetcher")
	}
	if err := Run(ctx, []string{"import-opentdb", "-1"}, &bytes.Buffer{}, Deps{Store: store, Trivia: &fakeFetcher{}}); err == nil {
		t.Fatalf("expected error for negative amount")
	}

	fetchErr := errors.New("rate limited")
	err := Run(ctx, []string{"import-opentdb"}, &bytes.Buffer{}, Deps{Store: store, Trivia: &fakeFetcher{err: fetchErr}})
	if !errors.Is(err, fetchErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestRunLeaderboard(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var out bytes.Buffer
	if err := Run(ctx, []string{"leaderboard"}, &out, Deps{Store: store}); err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	if !strings.Contains(out.String(), "no scores yet") {
		t.Fatalf("unexpected empty output: %q", out.String())
	}

	for _, entry := range []struct {
		name  string
		score int
	}{{"alice", 40}, {"bob", 20}} {
		userID, err := store.RegisterUser(ctx, game.Registration{Username: entry.name, Password: "pw"})
		if err != nil {
			t.Fatalf("RegisterUser failed: %v", err)
		}
		if _, err := store.RecordScore(ctx, userID, entry.score); err != nil {
			t.Fatalf("RecordScore failed: %v", err)
		}
	}

	out.Reset()
	if err := Run(ctx, []string{"leaderboard", "1"}, &out, Deps{Store: store}); err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "alice") || strings.Contains(text, "bob") {
		t.Fatalf("expected only alice:\n%s", text)
	}

	if err := Run(ctx, []string{"leaderboard", "x"}, &out, Deps{Store: store}); err == nil {
		t.Fatalf("expected error for invalid limit")
	}
}
