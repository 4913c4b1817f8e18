package game

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Service validates caller input at the boundary and delegates to the repositories.
type Service struct {
	users     UserRepository
	questions QuestionRepository
	board     LeaderboardRepository

	mu  sync.Mutex
	rng *rand.Rand
}

func NewService(users UserRepository, questions QuestionRepository, board LeaderboardRepository) *Service {
	return &Service{
		users:     users,
		questions: questions,
		board:     board,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Service) Register(ctx context.Context, reg Registration) (int64, error) {
	username, err := normalizeUsername(reg.Username)
	if err != nil {
		return 0, err
	}
	reg.Username = username
	reg.FirstName = strings.TrimSpace(reg.FirstName)
	reg.LastName = strings.TrimSpace(reg.LastName)
	reg.Email = strings.TrimSpace(reg.Email)

	userID, err := s.users.RegisterUser(ctx, reg)
	if err != nil {
		return 0, err
	}
	log.Printf("game: registered user %d (%s)", userID, username)
	return userID, nil
}

// Login never reveals whether the username or the password was wrong.
func (s *Service) Login(ctx context.Context, username, password string) (int64, error) {
	username, err := normalizeUsername(username)
	if err != nil {
		return 0, ErrInvalidCredentials
	}
	return s.users.Authenticate(ctx, username, password)
}

func (s *Service) User(ctx context.Context, userID int64) (User, error) {
	return s.users.GetUser(ctx, userID)
}

func (s *Service) AddQuestion(ctx context.Context, rawType, prompt string) (int64, error) {
	questionType, err := ParseQuestionType(rawType)
	if err != nil {
		return 0, err
	}
	questionID, err := s.questions.AddQuestion(ctx, questionType, prompt)
	if err != nil {
		return 0, err
	}
	log.Printf("game: added %s question %d", questionType, questionID)
	return questionID, nil
}

func (s *Service) AddAnswer(ctx context.Context, answer NewAnswer) (int64, error) {
	answerID, err := s.questions.AddAnswer(ctx, answer)
	if err != nil {
		return 0, err
	}
	log.Printf("game: added answer %d to question %d", answerID, answer.QuestionID)
	return answerID, nil
}

func (s *Service) SubmitScore(ctx context.Context, userID int64, score int) (int64, error) {
	boardID, err := s.board.RecordScore(ctx, userID, score)
	if err != nil {
		return 0, err
	}
	log.Printf("game: recorded score %d for user %d (entry %d)", score, userID, boardID)
	return boardID, nil
}

func (s *Service) HighScore(ctx context.Context, userID int64) (int, error) {
	return s.users.GetHighScore(ctx, userID)
}

func (s *Service) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	return s.board.GetLeaderboard(ctx, limit)
}

func (s *Service) QuestionWithAnswers(ctx context.Context, questionID int64) ([]QuestionAnswerRow, error) {
	return s.questions.GetQuestionWithAnswers(ctx, questionID)
}

func (s *Service) QuestionsByType(ctx context.Context, rawType string) ([]QuestionSummary, error) {
	questionType, err := ParseQuestionType(rawType)
	if err != nil {
		return nil, err
	}
	return s.questions.ListQuestionsByType(ctx, questionType)
}

func (s *Service) MediaCounts(ctx context.Context) (map[QuestionType]int, error) {
	return s.questions.CountMediaQuestions(ctx)
}

func (s *Service) Media(ctx context.Context, questionID int64) ([]MediaRef, error) {
	return s.questions.GetMedia(ctx, questionID)
}

// DrawQuestions picks up to n distinct questions at random and shuffles their
// answers. Questions without answers are skipped.
func (s *Service) DrawQuestions(ctx context.Context, n int) ([]PlayableQuestion, error) {
	if n <= 0 {
		n = DefaultRounds
	}

	ids, err := s.questions.ListQuestionIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list question ids: %w", err)
	}

	s.mu.Lock()
	s.rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	s.mu.Unlock()

	drawn := make([]PlayableQuestion, 0, n)
	for _, questionID := range ids {
		if len(drawn) == n {
			break
		}
		rows, err := s.questions.GetQuestionWithAnswers(ctx, questionID)
		if err != nil {
			return nil, fmt.Errorf("load question %d: %w", questionID, err)
		}

		s.mu.Lock()
		playable, ok := buildPlayable(questionID, rows, s.rng.Shuffle)
		s.mu.Unlock()
		if !ok {
			continue
		}
		drawn = append(drawn, playable)
	}
	return drawn, nil
}

func normalizeUsername(username string) (string, error) {
	normalized := strings.TrimSpace(username)
	if normalized == "" {
		return "", ErrInvalidUsername
	}
	return normalized, nil
}
