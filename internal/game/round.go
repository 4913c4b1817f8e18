package game

import "strings"

const (
	// PointsPerCorrect is awarded for each correctly answered question in a round.
	PointsPerCorrect = 10
	DefaultRounds    = 5
)

const defaultExplanation = "Look for unnatural features, background inconsistencies, or unusual details."

type Option struct {
	Letter   string
	AnswerID int64
	Payload  string
	Feedback string
}

// PlayableQuestion is a question with its answers shuffled into lettered options.
type PlayableQuestion struct {
	QuestionID   int64
	Type         QuestionType
	Prompt       string
	Options      []Option
	CorrectIndex int
}

type Outcome struct {
	Correct     bool
	Points      int
	Correction  Option
	Explanation string
}

// Evaluate scores the option at index. Out of range picks score zero.
func (q PlayableQuestion) Evaluate(index int) Outcome {
	outcome := Outcome{Explanation: defaultExplanation}
	if q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options) {
		outcome.Correction = q.Options[q.CorrectIndex]
		if feedback := strings.TrimSpace(outcome.Correction.Feedback); feedback != "" {
			outcome.Explanation = feedback
		}
	}
	if index == q.CorrectIndex && index >= 0 && index < len(q.Options) {
		outcome.Correct = true
		outcome.Points = PointsPerCorrect
	}
	return outcome
}

// buildPlayable collapses left-join rows into a playable question. ok is false
// when the question has no answers to choose from.
func buildPlayable(questionID int64, rows []QuestionAnswerRow, shuffle func(n int, swap func(i, j int))) (PlayableQuestion, bool) {
	if len(rows) == 0 {
		return PlayableQuestion{}, false
	}

	choices := make([]AnswerDetail, 0, len(rows))
	for _, row := range rows {
		if row.Answer == nil {
			continue
		}
		choices = append(choices, *row.Answer)
	}
	if len(choices) == 0 {
		return PlayableQuestion{}, false
	}

	if shuffle != nil {
		shuffle(len(choices), func(i, j int) {
			choices[i], choices[j] = choices[j], choices[i]
		})
	}

	options := make([]Option, len(choices))
	correctIndex := -1
	for idx, candidate := range choices {
		options[idx] = Option{
			Letter:   string(rune('A' + idx)),
			AnswerID: candidate.ID,
			Payload:  candidate.Payload,
			Feedback: candidate.Feedback,
		}
		if candidate.Correct && correctIndex == -1 {
			correctIndex = idx
		}
	}

	return PlayableQuestion{
		QuestionID:   questionID,
		Type:         rows[0].Type,
		Prompt:       rows[0].Prompt,
		Options:      options,
		CorrectIndex: correctIndex,
	}, true
}
