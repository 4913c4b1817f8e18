package game

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUsernameExists      = errors.New("username already exists")
	ErrEmailExists         = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrUserNotFound        = errors.New("user not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrInvalidQuestionType = errors.New("invalid question type")
	ErrInvalidUsername     = errors.New("invalid username")
)

// DefaultLeaderboardLimit is used when a caller asks for a non-positive number of rows.
const DefaultLeaderboardLimit = 10

type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	Email     string
	HighScore int
}

// Registration carries the plaintext password; stores hash it before writing.
type Registration struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
}

type LeaderboardEntry struct {
	Username string    `json:"username"`
	Score    int       `json:"score"`
	Date     time.Time `json:"date"`
}

type UserRepository interface {
	RegisterUser(ctx context.Context, reg Registration) (int64, error)
	Authenticate(ctx context.Context, username, password string) (int64, error)
	GetUser(ctx context.Context, userID int64) (User, error)
	GetHighScore(ctx context.Context, userID int64) (int, error)
}

type QuestionRepository interface {
	AddQuestion(ctx context.Context, questionType QuestionType, prompt string) (int64, error)
	AddAnswer(ctx context.Context, answer NewAnswer) (int64, error)
	AddQuestionWithAnswers(ctx context.Context, questionType QuestionType, prompt string, answers []NewAnswer) (int64, error)
	GetQuestionWithAnswers(ctx context.Context, questionID int64) ([]QuestionAnswerRow, error)
	CountMediaQuestions(ctx context.Context) (map[QuestionType]int, error)
	ListQuestionsByType(ctx context.Context, questionType QuestionType) ([]QuestionSummary, error)
	ListQuestionIDs(ctx context.Context) ([]int64, error)
	GetMedia(ctx context.Context, questionID int64) ([]MediaRef, error)
}

type LeaderboardRepository interface {
	RecordScore(ctx context.Context, userID int64, score int) (int64, error)
	GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}
