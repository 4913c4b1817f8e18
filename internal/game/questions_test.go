package game

import (
	"errors"
	"testing"
)

func TestParseQuestionType(t *testing.T) {
	for _, raw := range []string{"text", "image", "video", " image "} {
		got, err := ParseQuestionType(raw)
		if err != nil {
			t.Fatalf("ParseQuestionType(%q) failed: %v", raw, err)
		}
		if !got.Valid() {
			t.Fatalf("ParseQuestionType(%q) returned invalid %q", raw, got)
		}
	}

	for _, raw := range []string{"", "audio", "IMAGE", "texts"} {
		if _, err := ParseQuestionType(raw); !errors.Is(err, ErrInvalidQuestionType) {
			t.Fatalf("ParseQuestionType(%q) = %v, want ErrInvalidQuestionType", raw, err)
		}
	}
}

func TestQuestionTypeIsMedia(t *testing.T) {
	if QuestionText.IsMedia() {
		t.Fatalf("text must not be media")
	}
	if !QuestionImage.IsMedia() || !QuestionVideo.IsMedia() {
		t.Fatalf("image and video must be media")
	}
	if len(QuestionTypes()) != 3 {
		t.Fatalf("expected 3 question types, got %v", QuestionTypes())
	}
}

func TestHashPassword(t *testing.T) {
	first := HashPassword("correct horse")
	second := HashPassword("correct horse")
	if first != second {
		t.Fatalf("hash is not deterministic: %q vs %q", first, second)
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(first))
	}
	if first == "correct horse" {
		t.Fatalf("digest must differ from plaintext")
	}
	if HashPassword("correct horse") == HashPassword("battery staple") {
		t.Fatalf("different passwords produced the same digest")
	}
	// Known SHA-256 vector.
	if got := HashPassword("abc"); got != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Fatalf("unexpected sha256 digest: %s", got)
	}
}

func TestPasswordHashers(t *testing.T) {
	hashers := map[string]PasswordHasher{
		"sha256": SHA256Hasher{},
		"bcrypt": BcryptHasher{Cost: 4},
	}
	for name, hasher := range hashers {
		t.Run(name, func(t *testing.T) {
			digest, err := hasher.Hash("secret")
			if err != nil {
				t.Fatalf("Hash failed: %v", err)
			}
			if digest == "secret" {
				t.Fatalf("digest equals plaintext")
			}
			if !hasher.Verify(digest, "secret") {
				t.Fatalf("Verify rejected the right password")
			}
			if hasher.Verify(digest, "Secret") {
				t.Fatalf("Verify accepted the wrong password")
			}
		})
	}

	first, _ := BcryptHasher{Cost: 4}.Hash("secret")
	second, _ := BcryptHasher{Cost: 4}.Hash("secret")
	if first == second {
		t.Fatalf("bcrypt digests should be salted")
	}
}

func TestPlayableQuestionEvaluate(t *testing.T) {
	question := PlayableQuestion{
		Options: []Option{
			{Letter: "A", Payload: "real.jpg", Feedback: "Real."},
			{Letter: "B", Payload: "fake.jpg", Feedback: "Smudged teeth."},
		},
		CorrectIndex: 1,
	}

	hit := question.Evaluate(1)
	if !hit.Correct || hit.Points != PointsPerCorrect {
		t.Fatalf("unexpected outcome for correct pick: %+v", hit)
	}
	if hit.Explanation != "Smudged teeth." || hit.Correction.Payload != "fake.jpg" {
		t.Fatalf("explanation should come from the correct answer: %+v", hit)
	}

	miss := question.Evaluate(0)
	if miss.Correct || miss.Points != 0 {
		t.Fatalf("unexpected outcome for wrong pick: %+v", miss)
	}

	if out := question.Evaluate(5); out.Correct {
		t.Fatalf("out of range pick must not score")
	}

	question.Options[1].Feedback = ""
	if got := question.Evaluate(0).Explanation; got != defaultExplanation {
		t.Fatalf("expected default explanation, got %q", got)
	}
}

func TestBuildPlayableWithoutAnswers(t *testing.T) {
	if _, ok := buildPlayable(1, nil, nil); ok {
		t.Fatalf("expected no playable question for zero rows")
	}
	if _, ok := buildPlayable(1, []QuestionAnswerRow{{Prompt: "p", Type: QuestionText}}, nil); ok {
		t.Fatalf("expected no playable question for null-answer row")
	}
}
