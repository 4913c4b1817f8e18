package sqlite

import (
	"context"
	"fmt"
	"time"

	"deepfake-game/internal/game"
)

// RecordScore appends a leaderboard row and raises the user's high score in a
// single transaction.
//
// Invariants:
//   - leaderboard rows are never updated or deleted.
//   - users.high_score only moves up; a lower score leaves it unchanged.
//   - an unknown user commits nothing and returns ErrUserNotFound, whether or
//     not foreign keys are enforced.
func (s *SQLiteStore) RecordScore(ctx context.Context, userID int64, score int) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(
		ctx,
		`INSERT INTO leaderboard (user_id, score, score_date_unix) VALUES (?, ?, ?)`,
		userID,
		score,
		s.now().UTC().UnixNano(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, game.ErrUserNotFound
		}
		return 0, fmt.Errorf("insert leaderboard entry: %w", err)
	}
	boardID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	update, err := tx.ExecContext(
		ctx,
		`UPDATE users SET high_score = MAX(high_score, ?) WHERE user_id = ?`,
		score,
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("update high score: %w", err)
	}
	matched, err := update.RowsAffected()
	if err != nil {
		return 0, err
	}
	if matched == 0 {
		return 0, game.ErrUserNotFound
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit score: %w", err)
	}
	return boardID, nil
}

// GetLeaderboard orders by score descending, then earliest submission. A
// non-positive limit falls back to game.DefaultLeaderboardLimit.
func (s *SQLiteStore) GetLeaderboard(ctx context.Context, limit int) ([]game.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = game.DefaultLeaderboardLimit
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT u.username, l.score, l.score_date_unix
		 FROM leaderboard l
		 JOIN users u ON l.user_id = u.user_id
		 -- board_id settles rows recorded within the same clock tick.
		 ORDER BY l.score DESC, l.score_date_unix ASC, l.board_id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}
	defer rows.Close()

	leaderboard := make([]game.LeaderboardEntry, 0)
	for rows.Next() {
		var (
			entry       game.LeaderboardEntry
			scoreDateNs int64
		)
		if err := rows.Scan(&entry.Username, &entry.Score, &scoreDateNs); err != nil {
			return nil, err
		}
		entry.Date = time.Unix(0, scoreDateNs).UTC()
		leaderboard = append(leaderboard, entry)
	}

	return leaderboard, rows.Err()
}
