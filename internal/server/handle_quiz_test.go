package server

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/swisscitizen/prep/internal/quiz"
	"github.com/swisscitizen/prep/internal/swisscitizen"
)

func correctIndex(t *testing.T, id int) int {
	t.Helper()
	for _, q := range swisscitizen.Questions() {
		if q.ID == id {
			return q.CorrectAnswer
		}
	}
	t.Fatalf("question %d not in catalog", id)
	return -1
}

func TestQuizRun(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/api/quiz/config", QuizConfigRequest{Category: "history", Difficulty: "all"})
	wantStatus(t, rec, http.StatusOK)
	if v := decode[quiz.View](t, rec); v.Available != 2 {
		t.Fatalf("available = %d, want 2 history questions", v.Available)
	}

	rec = env.do(t, http.MethodPost, "/api/quiz/start", QuizStartRequest{})
	wantStatus(t, rec, http.StatusOK)
	v := decode[quiz.View](t, rec)
	if v.State != quiz.StateInProgress || v.Total != 2 {
		t.Fatalf("after start: %+v", v)
	}
	if v.CorrectAnswer != nil {
		t.Fatal("correct answer leaked before confirmation")
	}

	var result *swisscitizen.QuizResult
	for i := range 2 {
		rec = env.do(t, http.MethodPost, "/api/quiz/confirm", nil)
		wantStatus(t, rec, http.StatusBadRequest)

		answer := correctIndex(t, v.Question.ID)
		rec = env.do(t, http.MethodPost, "/api/quiz/select", QuizSelectRequest{Answer: &answer})
		wantStatus(t, rec, http.StatusOK)

		rec = env.do(t, http.MethodPost, "/api/quiz/confirm", nil)
		wantStatus(t, rec, http.StatusOK)
		revealed := decode[quiz.View](t, rec)
		if revealed.Outcome == nil || !revealed.Outcome.IsCorrect || revealed.Explanation == "" {
			t.Fatalf("question %d: reveal = %+v", i, revealed)
		}

		rec = env.do(t, http.MethodPost, "/api/quiz/next", nil)
		wantStatus(t, rec, http.StatusOK)
		next := decode[QuizNextResponse](t, rec)
		v = next.View
		result = next.Result
	}

	if result == nil || result.Score != 2 || result.Total != 2 {
		t.Fatalf("result = %+v, want 2/2", result)
	}
	if v.State != quiz.StateConfiguring {
		t.Errorf("state after finish = %s", v.State)
	}

	rec = env.do(t, http.MethodGet, "/api/quiz/results", nil)
	wantStatus(t, rec, http.StatusOK)
	if got := decode[[]swisscitizen.QuizResult](t, rec); len(got) != 1 || got[0].ID != result.ID {
		t.Errorf("stored results = %+v", got)
	}
}

func TestQuizStartWithoutQuestions(t *testing.T) {
	env := newTestEnv(t)

	wantStatus(t, env.do(t, http.MethodPut, "/api/quiz/config",
		QuizConfigRequest{Category: "local", Difficulty: "hard"}), http.StatusOK)

	rec := env.do(t, http.MethodPost, "/api/quiz/start", nil)
	wantStatus(t, rec, http.StatusConflict)
	if got := decode[ErrorResponse](t, rec).Error; got != quiz.NoQuestionsMessage {
		t.Errorf("error = %q", got)
	}

	rec = env.do(t, http.MethodGet, "/api/quiz", nil)
	if v := decode[quiz.View](t, rec); v.State != quiz.StateConfiguring {
		t.Errorf("state = %s, want configuring", v.State)
	}
}

func TestQuizWrongState(t *testing.T) {
	env := newTestEnv(t)

	wantStatus(t, env.do(t, http.MethodPost, "/api/quiz/next", nil), http.StatusConflict)
	wantStatus(t, env.do(t, http.MethodPost, "/api/quiz/select", QuizSelectRequest{Answer: new(int)}), http.StatusConflict)
	wantStatus(t, env.do(t, http.MethodPut, "/api/quiz/config",
		QuizConfigRequest{Category: "sport"}), http.StatusBadRequest)

	wantStatus(t, env.do(t, http.MethodPost, "/api/quiz/start", nil), http.StatusOK)
	wantStatus(t, env.do(t, http.MethodPut, "/api/quiz/config", QuizConfigRequest{}), http.StatusConflict)
	wantStatus(t, env.do(t, http.MethodPost, "/api/quiz/select", map[string]any{}), http.StatusBadRequest)

	rec := env.do(t, http.MethodPost, "/api/quiz/reset", nil)
	wantStatus(t, rec, http.StatusOK)
	if v := decode[quiz.View](t, rec); v.State != quiz.StateConfiguring {
		t.Errorf("state after reset = %s", v.State)
	}
	rec = env.do(t, http.MethodGet, "/api/quiz/results", nil)
	if got := decode[[]swisscitizen.QuizResult](t, rec); len(got) != 0 {
		t.Errorf("reset stored %d results", len(got))
	}
}

func TestQuizQuestionCount(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		query string
		want  int
	}{
		{"", 5},
		{"?category=history", 2},
		{"?category=history&difficulty=hard", 1},
		{"?difficulty=easy", 3},
		{"?category=local", 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/quiz/questions"+tt.query, nil)
			wantStatus(t, rec, http.StatusOK)
			if got := decode[QuestionCountResponse](t, rec).Available; got != tt.want {
				t.Errorf("available = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQuizEventStream(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.handler)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/quiz/events", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("connecting: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("content-type = %q", got)
	}

	for env.deps.Broker.Subscribers(TopicQuiz) == 0 {
		if ctx.Err() != nil {
			t.Fatal("subscriber never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := env.deps.Quiz.Start(false); err != nil {
		t.Fatalf("Start: %v", err)
	}

	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		line := sc.Text()
		data, ok := strings.CutPrefix(line, "data: ")
		if !ok {
			continue
		}
		var ev quiz.Event
		if err := json.Unmarshal([]byte(data), &ev); err != nil {
			t.Fatalf("decoding event: %v", err)
		}
		if ev.Type != quiz.EventStarted || ev.Question != 1 || ev.Total != 5 {
			t.Errorf("event = %+v", ev)
		}
		return
	}
	t.Fatalf("stream ended without an event: %v", sc.Err())
}
