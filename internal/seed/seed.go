// Package seed loads question banks into the game store.
//
// Seed files are YAML:
//
//	questions:
//	  - type: image
//	    prompt: Select the Deepfake
//	    answers:
//	      - payload: media/fake.jpg
//	        correct: true
//	        feedback: Look at the mismatched earrings.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"deepfake-game/internal/game"
)

type File struct {
	Questions []Question `yaml:"questions" validate:"required,min=1,dive"`
}

type Question struct {
	Type    string   `yaml:"type" validate:"required,oneof=text image video"`
	Prompt  string   `yaml:"prompt" validate:"required"`
	Answers []Answer `yaml:"answers" validate:"required,min=1,dive"`
}

type Answer struct {
	Payload  string `yaml:"payload" validate:"required"`
	Correct  bool   `yaml:"correct"`
	Feedback string `yaml:"feedback" validate:"required"`
}

// Writer is the store surface seeding needs.
type Writer interface {
	AddQuestionWithAnswers(ctx context.Context, questionType game.QuestionType, prompt string, answers []game.NewAnswer) (int64, error)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Parse decodes and validates a seed document. Unknown keys are rejected.
func Parse(r io.Reader) (File, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var file File
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, errors.New("seed file is empty")
		}
		return File{}, fmt.Errorf("decode seed file: %w", err)
	}
	if err := file.Validate(); err != nil {
		return File{}, err
	}
	return file, nil
}

func LoadFile(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, err
	}
	defer f.Close()
	return Parse(f)
}

func (f File) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("invalid seed file: %w", err)
	}
	return nil
}

// Apply writes every question with its answers, one transaction per question,
// and returns the new question ids in file order. It stops at the first failure.
func Apply(ctx context.Context, w Writer, file File) ([]int64, error) {
	if err := file.Validate(); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(file.Questions))
	for idx, question := range file.Questions {
		questionType, err := game.ParseQuestionType(question.Type)
		if err != nil {
			return ids, fmt.Errorf("question %d: %w", idx+1, err)
		}

		answers := make([]game.NewAnswer, 0, len(question.Answers))
		for _, answer := range question.Answers {
			answers = append(answers, game.NewAnswer{
				Correct:  answer.Correct,
				Payload:  answer.Payload,
				Feedback: answer.Feedback,
			})
		}

		questionID, err := w.AddQuestionWithAnswers(ctx, questionType, question.Prompt, answers)
		if err != nil {
			return ids, fmt.Errorf("question %d: %w", idx+1, err)
		}
		log.Printf("seed: added %s question %d with %d answers", questionType, questionID, len(answers))
		ids = append(ids, questionID)
	}
	return ids, nil
}

// Defaults is the sample bank shipped with the game: one text question and one
// image question.
func Defaults() File {
	return File{
		Questions: []Question{
			{
				Type:   string(game.QuestionText),
				Prompt: "example question",
				Answers: []Answer{
					{Payload: "Answer1", Correct: true, Feedback: "feedback1"},
					{Payload: "Answer2", Correct: false, Feedback: "feedback2"},
				},
			},
			{
				Type:   string(game.QuestionImage),
				Prompt: "Select the Deepfake",
				Answers: []Answer{
					{Payload: "floridapoly_fulllogo_rgb_fc.jpg", Correct: true, Feedback: "feedback1"},
					{Payload: "floridapoly_markonlylogo_rgb_fc.jpg", Correct: false, Feedback: "feedback2"},
				},
			},
		},
	}
}
