package opentdb

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func newTestClient(rt http.RoundTripper) *Client {
	return NewClient(&http.Client{Transport: rt})
}

func jsonResponse(status int, body []byte) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestFetchQuestionsClampsAmount(t *testing.T) {
	cases := map[int]string{0: "10", -3: "10", 7: "7", 500: "50"}
	for amount, want := range cases {
		var seenAmount string
		client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			seenAmount = r.URL.Query().Get("amount")
			return jsonResponse(http.StatusOK, []byte(`{"response_code":0,"results":[]}`)), nil
		}))

		questions, err := client.FetchQuestions(context.Background(), amount)
		if err != nil {
			t.Fatalf("FetchQuestions(%d) returned error: %v", amount, err)
		}
		if len(questions) != 0 {
			t.Fatalf("expected no questions, got %d", len(questions))
		}
		if seenAmount != want {
			t.Fatalf("FetchQuestions(%d) sent amount %q, want %q", amount, seenAmount, want)
		}
	}
}

func TestFetchQuestionsPropagatesNonOKStatus(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadGateway, nil), nil
	}))

	if _, err := client.FetchQuestions(context.Background(), 5); err == nil {
		t.Fatalf("expected error for non-200 status")
	}
}

func TestFetchQuestionsJSONDecodeError(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, []byte("not-json")), nil
	}))

	if _, err := client.FetchQuestions(context.Background(), 3); err == nil {
		t.Fatalf("expected JSON decode error")
	}
}

func TestFetchQuestionsNonZeroResponseCode(t *testing.T) {
	client := newTestClient(roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		encoded, err := json.Marshal(apiResponse{
			ResponseCode: 1,
			Results:      []RawQuestion{{Question: "ignored"}},
		})
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		return jsonResponse(http.StatusOK, encoded), nil
	}))

	if _, err := client.FetchQuestions(context.Background(), 3); err == nil {
		t.Fatalf("expected error for non-zero response_code")
	}
}

func TestFetchQuestionsAgainstServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("category") != "9" {
			t.Errorf("existing query parameters were dropped: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response_code":0,"results":[{"type":"multiple","difficulty":"easy","category":"General","question":"2+2?","correct_answer":"4","incorrect_answers":["3","5","22"]}]}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), WithBaseURL(server.URL+"/api.php?category=9"))
	questions, err := client.FetchQuestions(context.Background(), 1)
	if err != nil {
		t.Fatalf("FetchQuestions failed: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected one question, got %d", len(questions))
	}
	got := questions[0]
	if got.Question != "2+2?" || got.CorrectAnswer != "4" || len(got.IncorrectAnswers) != 3 {
		t.Fatalf("unexpected question: %+v", got)
	}
}
