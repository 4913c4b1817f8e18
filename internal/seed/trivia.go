package seed

import (
	"fmt"
	"html"
	"strings"

	"deepfake-game/internal/game"
	"deepfake-game/internal/opentdb"
)

// FromTrivia converts OpenTriviaDB questions into text questions. Every answer
// carries feedback naming the correct answer. Entries without a question or a
// correct answer are dropped.
func FromTrivia(raw []opentdb.RawQuestion) File {
	file := File{Questions: make([]Question, 0, len(raw))}
	for _, item := range raw {
		prompt := strings.TrimSpace(html.UnescapeString(item.Question))
		correct := strings.TrimSpace(html.UnescapeString(item.CorrectAnswer))
		if prompt == "" || correct == "" {
			continue
		}

		explanation := fmt.Sprintf("The correct answer is %q.", correct)
		if category := strings.TrimSpace(html.UnescapeString(item.Category)); category != "" {
			explanation = fmt.Sprintf("%s (%s)", explanation, category)
		}

		answers := []Answer{{Payload: correct, Correct: true, Feedback: explanation}}
		for _, incorrect := range item.IncorrectAnswers {
			text := strings.TrimSpace(html.UnescapeString(incorrect))
			if text == "" {
				continue
			}
			answers = append(answers, Answer{Payload: text, Correct: false, Feedback: explanation})
		}

		file.Questions = append(file.Questions, Question{
			Type:    string(game.QuestionText),
			Prompt:  prompt,
			Answers: answers,
		})
	}
	return file
}
