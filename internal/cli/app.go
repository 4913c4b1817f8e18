package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"deepfake-game/internal/game"
)

const (
	maxAttempts = 3
)

// Game is the part of game.Service the terminal front-end drives.
type Game interface {
	Register(ctx context.Context, reg game.Registration) (int64, error)
	Login(ctx context.Context, username, password string) (int64, error)
	DrawQuestions(ctx context.Context, n int) ([]game.PlayableQuestion, error)
	SubmitScore(ctx context.Context, userID int64, score int) (int64, error)
	HighScore(ctx context.Context, userID int64) (int, error)
	Leaderboard(ctx context.Context, limit int) ([]game.LeaderboardEntry, error)
}

type Config struct {
	Rounds           int
	LeaderboardLimit int
}

type session struct {
	userID   int64
	username string
}

func Run(ctx context.Context, in io.Reader, out io.Writer, g Game, cfg Config) error {
	if g == nil {
		return errors.New("game service is required")
	}
	if cfg.Rounds <= 0 {
		cfg.Rounds = game.DefaultRounds
	}
	if cfg.LeaderboardLimit <= 0 {
		cfg.LeaderboardLimit = game.DefaultLeaderboardLimit
	}

	reader := bufio.NewReader(in)
	var current *session

	fmt.Fprintln(out, "deepfake-game")
	printHelp(out)

	for {
		fmt.Fprint(out, "\n> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return err
			}
			// Run a final command that lacks a trailing newline before stopping.
			if strings.TrimSpace(line) == "" {
				fmt.Fprintln(out)
				return nil
			}
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		switch strings.ToLower(args[0]) {
		case "help":
			printHelp(out)
		case "exit", "quit":
			return nil
		case "register":
			if len(args) < 3 {
				fmt.Fprintln(out, "usage: register <username> <password> [email] [first_name] [last_name]")
				continue
			}
			reg := game.Registration{Username: args[1], Password: args[2]}
			if len(args) > 3 {
				reg.Email = args[3]
			}
			if len(args) > 4 {
				reg.FirstName = args[4]
			}
			if len(args) > 5 {
				reg.LastName = strings.Join(args[5:], " ")
			}
			userID, err := g.Register(ctx, reg)
			if err != nil {
				fmt.Fprintf(out, "registration failed: %s\n", describeError(err))
				continue
			}
			current = &session{userID: userID, username: reg.Username}
			fmt.Fprintf(out, "Welcome, %s! (user %d)\n", reg.Username, userID)
		case "login":
			if len(args) != 3 {
				fmt.Fprintln(out, "usage: login <username> <password>")
				continue
			}
			userID, err := g.Login(ctx, args[1], args[2])
			if err != nil {
				fmt.Fprintf(out, "login failed: %s\n", describeError(err))
				continue
			}
			current = &session{userID: userID, username: args[1]}
			fmt.Fprintf(out, "Logged in as %s.\n", args[1])
		case "logout":
			current = nil
			fmt.Fprintln(out, "Logged out.")
		case "highscore":
			if current == nil {
				fmt.Fprintln(out, "login first.")
				continue
			}
			highScore, err := g.HighScore(ctx, current.userID)
			if err != nil {
				fmt.Fprintf(out, "error: %s\n", describeError(err))
				continue
			}
			fmt.Fprintf(out, "High score for %s: %d\n", current.username, highScore)
		case "leaderboard":
			limit, parseErr := parsePositiveLimit(args, 1, cfg.LeaderboardLimit)
			if parseErr != nil {
				fmt.Fprintf(out, "invalid leaderboard limit: %v\n", parseErr)
				continue
			}
			if err := runLeaderboard(ctx, out, g, limit); err != nil {
				fmt.Fprintf(out, "error: %s\n", describeError(err))
			}
		case "play":
			if err := runPlay(ctx, reader, out, g, current, cfg.Rounds); err != nil {
				fmt.Fprintf(out, "error: %s\n", describeError(err))
			}
		default:
			fmt.Fprintln(out, "unknown command. type 'help' for usage.")
		}
	}
}

func runLeaderboard(ctx context.Context, out io.Writer, g Game, limit int) error {
	entries, err := g.Leaderboard(ctx, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No scores yet.")
		return nil
	}

	fmt.Fprintln(out, "Leaderboard:")
	for idx, entry := range entries {
		fmt.Fprintf(out, "%d. %s score=%d date=%s\n",
			idx+1,
			entry.Username,
			entry.Score,
			entry.Date.Format(time.RFC3339),
		)
	}
	return nil
}

func runPlay(ctx context.Context, reader *bufio.Reader, out io.Writer, g Game, current *session, rounds int) error {
	questions, err := g.DrawQuestions(ctx, rounds)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		fmt.Fprintln(out, "No questions available. Ask an admin to seed the question bank.")
		return nil
	}

	score := 0
	for idx, question := range questions {
		printQuestion(out, idx+1, question)

		chosenIndex, ok := getAnswer(reader, out, len(question.Options))
		fmt.Fprintln(out)
		outcome := question.Evaluate(chosenIndex)
		correction := formatOption(outcome.Correction)
		switch {
		case !ok:
			fmt.Fprintf(out, "Skipping. Correct answer was %s\n", correction)
		case outcome.Correct:
			score += outcome.Points
			fmt.Fprintf(out, "Correct! +%d\n", outcome.Points)
		default:
			fmt.Fprintf(out, "Wrong. Correct answer was %s\n", correction)
		}
		fmt.Fprintf(out, "Why: %s\n", outcome.Explanation)
	}

	fmt.Fprintf(out, "\nFinal score: %d/%d\n", score, len(questions)*game.PointsPerCorrect)

	if current == nil {
		fmt.Fprintln(out, "Not logged in; score was not saved.")
		return nil
	}
	if _, err := g.SubmitScore(ctx, current.userID, score); err != nil {
		return fmt.Errorf("save score: %w", err)
	}
	highScore, err := g.HighScore(ctx, current.userID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Score saved. High score: %d\n", highScore)
	return nil
}

func printQuestion(out io.Writer, number int, question game.PlayableQuestion) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Q%d [%s]: %s\n\n", number, question.Type, question.Prompt)
	for _, option := range question.Options {
		fmt.Fprintf(out, "%s. %s\n", option.Letter, option.Payload)
	}
	fmt.Fprintln(out)
}

func getAnswer(reader *bufio.Reader, out io.Writer, optionCount int) (int, bool) {
	if optionCount < 1 {
		return -1, false
	}

	maxLetter := byte('A' + optionCount - 1)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		fmt.Fprintf(out, "Your answer (A-%c): ", maxLetter)
		userAnswer, err := reader.ReadString('\n')
		if err != nil && userAnswer == "" {
			return -1, false
		}

		userAnswer = strings.ToUpper(strings.TrimSpace(userAnswer))
		if len(userAnswer) == 1 {
			letter := userAnswer[0]
			if letter >= 'A' && letter <= maxLetter {
				return int(letter - 'A'), true
			}
		}

		if attempt < maxAttempts {
			fmt.Fprintf(out, "\nInvalid input. Please enter a letter A-%c.\n", maxLetter)
		}
	}

	return -1, false
}

func formatOption(option game.Option) string {
	if option.Letter == "" {
		return "unknown"
	}
	return fmt.Sprintf("%s. %s", option.Letter, option.Payload)
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  help")
	fmt.Fprintln(out, "  register <username> <password> [email] [first_name] [last_name]")
	fmt.Fprintln(out, "  login <username> <password>")
	fmt.Fprintln(out, "  logout")
	fmt.Fprintln(out, "  play")
	fmt.Fprintln(out, "  highscore")
	fmt.Fprintln(out, "  leaderboard [limit]")
	fmt.Fprintln(out, "  exit")
}

func parsePositiveLimit(args []string, index int, defaultValue int) (int, error) {
	if len(args) <= index {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(args[index])
	if err != nil || value <= 0 {
		return 0, errors.New("must be a positive integer")
	}
	return value, nil
}

func describeError(err error) string {
	switch {
	case errors.Is(err, game.ErrUsernameExists):
		return "that username is taken"
	case errors.Is(err, game.ErrEmailExists):
		return "that email is already registered"
	case errors.Is(err, game.ErrInvalidCredentials):
		return "wrong username or password"
	case errors.Is(err, game.ErrInvalidUsername):
		return "username must not be blank"
	case errors.Is(err, game.ErrUserNotFound):
		return "account no longer exists"
	default:
		return err.Error()
	}
}
