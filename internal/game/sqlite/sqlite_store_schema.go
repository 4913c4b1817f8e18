package sqlite

import (
	"context"
	"fmt"
)

// InitSchema creates the four game tables if they are missing. It never drops
// or alters existing tables, so it is safe on every start.
func (s *SQLiteStore) InitSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			first_name TEXT,
			last_name TEXT,
			-- NULL for accounts without email; UNIQUE ignores NULLs.
			email TEXT UNIQUE,
			high_score INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS questions (
			question_id INTEGER PRIMARY KEY AUTOINCREMENT,
			question_type TEXT NOT NULL,
			question_string TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS answers (
			answer_id INTEGER PRIMARY KEY AUTOINCREMENT,
			question_id INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			answer_string TEXT NOT NULL,
			feedback TEXT NOT NULL,
			FOREIGN KEY (question_id) REFERENCES questions(question_id)
		);`,
		`CREATE TABLE IF NOT EXISTS leaderboard (
			board_id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			score_date_unix INTEGER NOT NULL DEFAULT (CAST(strftime('%s', 'now') AS INTEGER) * 1000000000),
			FOREIGN KEY (user_id) REFERENCES users(user_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_answers_question ON answers(question_id);`,
		`CREATE INDEX IF NOT EXISTS idx_questions_type ON questions(question_type);`,
		`CREATE INDEX IF NOT EXISTS idx_leaderboard_rank ON leaderboard(score DESC, score_date_unix ASC);`,
		`CREATE INDEX IF NOT EXISTS idx_leaderboard_user ON leaderboard(user_id);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
