package game

import (
	"fmt"
	"strings"
)

// QuestionType is the closed set of question kinds. For image and video
// questions the prompt and answer payloads are media references resolved by
// whoever serves the media, not stored bytes.
type QuestionType string

const (
	QuestionText  QuestionType = "text"
	QuestionImage QuestionType = "image"
	QuestionVideo QuestionType = "video"
)

var questionTypes = []QuestionType{QuestionText, QuestionImage, QuestionVideo}

// QuestionTypes lists every accepted question type.
func QuestionTypes() []QuestionType {
	out := make([]QuestionType, len(questionTypes))
	copy(out, questionTypes)
	return out
}

// ParseQuestionType accepts exactly "text", "image" or "video" after trimming.
func ParseQuestionType(raw string) (QuestionType, error) {
	candidate := QuestionType(strings.TrimSpace(raw))
	if !candidate.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidQuestionType, raw)
	}
	return candidate, nil
}

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionText, QuestionImage, QuestionVideo:
		return true
	default:
		return false
	}
}

func (t QuestionType) IsMedia() bool {
	return t == QuestionImage || t == QuestionVideo
}

func (t QuestionType) String() string {
	return string(t)
}

type Question struct {
	ID     int64
	Type   QuestionType
	Prompt string
}

// NewAnswer is the insert shape for an answer. QuestionID is ignored when the
// answer is written together with its question.
type NewAnswer struct {
	QuestionID int64
	Correct    bool
	Payload    string
	Feedback   string
}

type Answer struct {
	ID         int64
	QuestionID int64
	Correct    bool
	Payload    string
	Feedback   string
}

type AnswerDetail struct {
	ID       int64
	Correct  bool
	Payload  string
	Feedback string
}

// QuestionAnswerRow is one row of the question/answers left join. Answer is nil
// for the single row returned when a question has no answers.
type QuestionAnswerRow struct {
	Prompt string
	Type   QuestionType
	Answer *AnswerDetail
}

type QuestionSummary struct {
	ID     int64
	Prompt string
}

// MediaRef is an answer payload from the media projection. Valid is false for
// the null row of a question without answers.
type MediaRef struct {
	Path  string
	Valid bool
}
