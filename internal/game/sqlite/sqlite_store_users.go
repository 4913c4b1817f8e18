package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"deepfake-game/internal/game"
)

// RegisterUser checks the username first and the email second, so an email
// collision is only reported for an otherwise free username. Unique-constraint
// failures from a concurrent insert map to the same sentinels.
func (s *SQLiteStore) RegisterUser(ctx context.Context, reg game.Registration) (int64, error) {
	if strings.TrimSpace(reg.Username) == "" {
		return 0, game.ErrInvalidUsername
	}

	taken, err := s.exists(ctx, `SELECT 1 FROM users WHERE username = ? LIMIT 1`, reg.Username)
	if err != nil {
		return 0, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return 0, game.ErrUsernameExists
	}

	email := nullableString(reg.Email)
	if email.Valid {
		taken, err := s.exists(ctx, `SELECT 1 FROM users WHERE email = ? LIMIT 1`, email.String)
		if err != nil {
			return 0, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return 0, game.ErrEmailExists
		}
	}

	digest, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(
		ctx,
		`INSERT INTO users (username, password_hash, first_name, last_name, email)
		 VALUES (?, ?, ?, ?, ?)`,
		reg.Username,
		digest,
		nullableString(reg.FirstName),
		nullableString(reg.LastName),
		email,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err, "users.username"):
			return 0, game.ErrUsernameExists
		case isUniqueViolation(err, "users.email"):
			return 0, game.ErrEmailExists
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	return result.LastInsertId()
}

// Authenticate matches the username case-sensitively. Unknown usernames and
// wrong passwords both yield ErrInvalidCredentials.
func (s *SQLiteStore) Authenticate(ctx context.Context, username, password string) (int64, error) {
	if s.hasher.Deterministic() {
		digest, err := s.hasher.Hash(password)
		if err != nil {
			return 0, err
		}

		var userID int64
		err = s.db.QueryRowContext(
			ctx,
			`SELECT user_id FROM users WHERE username = ? AND password_hash = ?`,
			username,
			digest,
		).Scan(&userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return 0, game.ErrInvalidCredentials
			}
			return 0, fmt.Errorf("authenticate: %w", err)
		}
		return userID, nil
	}

	var (
		userID int64
		digest string
	)
	err := s.db.QueryRowContext(
		ctx,
		`SELECT user_id, password_hash FROM users WHERE username = ?`,
		username,
	).Scan(&userID, &digest)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, game.ErrInvalidCredentials
		}
		return 0, fmt.Errorf("authenticate: %w", err)
	}
	if !s.hasher.Verify(digest, password) {
		return 0, game.ErrInvalidCredentials
	}
	return userID, nil
}

func (s *SQLiteStore) GetUser(ctx context.Context, userID int64) (game.User, error) {
	var (
		user                       game.User
		firstName, lastName, email sql.NullString
	)
	err := s.db.QueryRowContext(
		ctx,
		`SELECT user_id, username, first_name, last_name, email, high_score
		 FROM users WHERE user_id = ?`,
		userID,
	).Scan(&user.ID, &user.Username, &firstName, &lastName, &email, &user.HighScore)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return game.User{}, game.ErrUserNotFound
		}
		return game.User{}, fmt.Errorf("get user: %w", err)
	}
	user.FirstName = firstName.String
	user.LastName = lastName.String
	user.Email = email.String
	return user, nil
}

func (s *SQLiteStore) GetHighScore(ctx context.Context, userID int64) (int, error) {
	var highScore int
	err := s.db.QueryRowContext(
		ctx,
		`SELECT high_score FROM users WHERE user_id = ?`,
		userID,
	).Scan(&highScore)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, game.ErrUserNotFound
		}
		return 0, fmt.Errorf("get high score: %w", err)
	}
	return highScore, nil
}

func (s *SQLiteStore) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var found int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
