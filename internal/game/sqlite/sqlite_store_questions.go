package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"deepfake-game/internal/game"
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *SQLiteStore) AddQuestion(ctx context.Context, questionType game.QuestionType, prompt string) (int64, error) {
	return insertQuestion(ctx, s.db, questionType, prompt)
}

// AddAnswer relies on the foreign key to reject answers for unknown questions.
// With enforcement switched off the orphan row is accepted.
func (s *SQLiteStore) AddAnswer(ctx context.Context, answer game.NewAnswer) (int64, error) {
	return insertAnswer(ctx, s.db, answer.QuestionID, answer)
}

// AddQuestionWithAnswers writes a question and all of its answers in one transaction.
func (s *SQLiteStore) AddQuestionWithAnswers(ctx context.Context, questionType game.QuestionType, prompt string, answers []game.NewAnswer) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	questionID, err := insertQuestion(ctx, tx, questionType, prompt)
	if err != nil {
		return 0, err
	}
	for _, answer := range answers {
		if _, err := insertAnswer(ctx, tx, questionID, answer); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit question: %w", err)
	}
	return questionID, nil
}

func insertQuestion(ctx context.Context, db execer, questionType game.QuestionType, prompt string) (int64, error) {
	if !questionType.Valid() {
		return 0, fmt.Errorf("%w: %q", game.ErrInvalidQuestionType, string(questionType))
	}

	result, err := db.ExecContext(
		ctx,
		`INSERT INTO questions (question_type, question_string) VALUES (?, ?)`,
		string(questionType),
		prompt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert question: %w", err)
	}
	return result.LastInsertId()
}

func insertAnswer(ctx context.Context, db execer, questionID int64, answer game.NewAnswer) (int64, error) {
	result, err := db.ExecContext(
		ctx,
		`INSERT INTO answers (question_id, correct, answer_string, feedback) VALUES (?, ?, ?, ?)`,
		questionID,
		answer.Correct,
		answer.Payload,
		answer.Feedback,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: %d", game.ErrQuestionNotFound, questionID)
		}
		return 0, fmt.Errorf("insert answer: %w", err)
	}
	return result.LastInsertId()
}

// GetQuestionWithAnswers returns one row per answer. A question without answers
// still yields one row whose Answer is nil; an unknown question yields none.
func (s *SQLiteStore) GetQuestionWithAnswers(ctx context.Context, questionID int64) ([]game.QuestionAnswerRow, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT q.question_string, q.question_type, a.answer_id, a.correct, a.answer_string, a.feedback
		 FROM questions q
		 LEFT JOIN answers a ON q.question_id = a.question_id
		 WHERE q.question_id = ?
		 ORDER BY a.answer_id ASC`,
		questionID,
	)
	if err != nil {
		return nil, fmt.Errorf("get question with answers: %w", err)
	}
	defer rows.Close()

	out := make([]game.QuestionAnswerRow, 0)
	for rows.Next() {
		var (
			row          game.QuestionAnswerRow
			questionType string
			answerID     sql.NullInt64
			correct      sql.NullBool
			payload      sql.NullString
			feedback     sql.NullString
		)
		if err := rows.Scan(&row.Prompt, &questionType, &answerID, &correct, &payload, &feedback); err != nil {
			return nil, err
		}
		row.Type = game.QuestionType(questionType)
		if answerID.Valid {
			row.Answer = &game.AnswerDetail{
				ID:       answerID.Int64,
				Correct:  correct.Bool,
				Payload:  payload.String,
				Feedback: feedback.String,
			}
		}
		out = append(out, row)
	}

	return out, rows.Err()
}

// CountMediaQuestions counts image and video questions. A type with no
// questions is absent from the map rather than present with zero.
func (s *SQLiteStore) CountMediaQuestions(ctx context.Context) (map[game.QuestionType]int, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT question_type, COUNT(*)
		 FROM questions
		 WHERE question_type IN (?, ?)
		 GROUP BY question_type`,
		string(game.QuestionImage),
		string(game.QuestionVideo),
	)
	if err != nil {
		return nil, fmt.Errorf("count media questions: %w", err)
	}
	defer rows.Close()

	counts := make(map[game.QuestionType]int)
	for rows.Next() {
		var (
			questionType string
			count        int
		)
		if err := rows.Scan(&questionType, &count); err != nil {
			return nil, err
		}
		counts[game.QuestionType(questionType)] = count
	}

	return counts, rows.Err()
}

// ListQuestionsByType returns questions of one type in no particular order.
func (s *SQLiteStore) ListQuestionsByType(ctx context.Context, questionType game.QuestionType) ([]game.QuestionSummary, error) {
	if !questionType.Valid() {
		return nil, fmt.Errorf("%w: %q", game.ErrInvalidQuestionType, string(questionType))
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT question_id, question_string FROM questions WHERE question_type = ?`,
		string(questionType),
	)
	if err != nil {
		return nil, fmt.Errorf("list questions by type: %w", err)
	}
	defer rows.Close()

	out := make([]game.QuestionSummary, 0)
	for rows.Next() {
		var item game.QuestionSummary
		if err := rows.Scan(&item.ID, &item.Prompt); err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, rows.Err()
}

func (s *SQLiteStore) ListQuestionIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT question_id FROM questions ORDER BY question_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list question ids: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// GetMedia projects only the answer payloads of the question/answers join.
func (s *SQLiteStore) GetMedia(ctx context.Context, questionID int64) ([]game.MediaRef, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT a.answer_string
		 FROM questions q
		 LEFT JOIN answers a ON q.question_id = a.question_id
		 WHERE q.question_id = ?
		 ORDER BY a.answer_id ASC`,
		questionID,
	)
	if err != nil {
		return nil, fmt.Errorf("get media: %w", err)
	}
	defer rows.Close()

	out := make([]game.MediaRef, 0)
	for rows.Next() {
		var payload sql.NullString
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		out = append(out, game.MediaRef{Path: payload.String, Valid: payload.Valid})
	}

	return out, rows.Err()
}
