package progress

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/swisscitizen/prep/internal/facts"
	"github.com/swisscitizen/prep/internal/kvstore"
	"github.com/swisscitizen/prep/internal/quiz"
	"github.com/swisscitizen/prep/internal/swisscitizen"
)

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func factsIn(c swisscitizen.Category, n int) []swisscitizen.Fact {
	out := make([]swisscitizen.Fact, n)
	for i := range out {
		out[i] = swisscitizen.Fact{
			ID:        int64(i + 1),
			Title:     fmt.Sprintf("%s %d", c, i),
			Category:  c,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}
	return out
}

func result(score, total int, at time.Time) swisscitizen.QuizResult {
	return swisscitizen.QuizResult{Score: score, Total: total, Date: at}
}

func achievement(t *testing.T, snap Snapshot, title string) AchievementState {
	t.Helper()
	for _, a := range snap.Achievements {
		if a.Title == title {
			return a
		}
	}
	t.Fatalf("achievement %q missing", title)
	return AchievementState{}
}

func TestComputeEmpty(t *testing.T) {
	snap := Compute(nil, nil, nil)

	if snap.SuccessRate != 0 || snap.Overall != 0 {
		t.Errorf("success %d overall %d, want 0", snap.SuccessRate, snap.Overall)
	}
	for _, a := range snap.Achievements {
		if a.Unlocked {
			t.Errorf("%s unlocked on empty data", a.Title)
		}
	}
	if len(snap.Recent) != 0 {
		t.Errorf("recent = %v, want empty", snap.Recent)
	}
	if len(snap.Categories) != len(swisscitizen.Categories) {
		t.Errorf("categories = %d, want %d", len(snap.Categories), len(swisscitizen.Categories))
	}
	if len(snap.Tips) != 3 {
		t.Errorf("tips = %v, want facts, buildings and category hints", snap.Tips)
	}
}

func TestSuccessRate(t *testing.T) {
	tests := []struct {
		name    string
		results []swisscitizen.QuizResult
		want    int
	}{
		{"no answers", nil, 0},
		{"perfect", []swisscitizen.QuizResult{result(5, 5, base)}, 100},
		{"rounded", []swisscitizen.QuizResult{result(2, 3, base)}, 67},
		{"across runs", []swisscitizen.QuizResult{result(1, 2, base), result(2, 2, base)}, 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compute(nil, tt.results, nil).SuccessRate; got != tt.want {
				t.Errorf("SuccessRate = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCategoryCounts(t *testing.T) {
	fs := append(factsIn(swisscitizen.CategoryHistory, 3), factsIn(swisscitizen.CategoryCulture, 2)...)
	fs = append(fs, swisscitizen.Fact{ID: 99, Category: "sport", CreatedAt: base})

	snap := Compute(fs, nil, nil)

	want := map[swisscitizen.Category]int{
		swisscitizen.CategoryHistory:   3,
		swisscitizen.CategoryPolitics:  0,
		swisscitizen.CategoryGeography: 0,
		swisscitizen.CategoryCulture:   2,
		swisscitizen.CategoryLocal:     0,
	}
	if diff := cmp.Diff(want, snap.CategoryCounts); diff != "" {
		t.Errorf("CategoryCounts mismatch (-want +got):\n%s", diff)
	}
	if snap.TotalFacts != 6 {
		t.Errorf("TotalFacts = %d, want 6", snap.TotalFacts)
	}
	if got := snap.CategoryPercent(swisscitizen.CategoryHistory); got != 15 {
		t.Errorf("history percent = %v, want 15", got)
	}
}

func TestCategoryPercentCapped(t *testing.T) {
	snap := Compute(factsIn(swisscitizen.CategoryLocal, 30), nil, nil)
	if got := snap.CategoryPercent(swisscitizen.CategoryLocal); got != 100 {
		t.Errorf("percent = %v, want 100", got)
	}
}

func TestOverall(t *testing.T) {
	// 25/50 facts, 20/20 quizzes (capped), 0/10 buildings.
	var results []swisscitizen.QuizResult
	for range 25 {
		results = append(results, result(1, 1, base))
	}
	snap := Compute(factsIn(swisscitizen.CategoryHistory, 25), results, nil)
	if snap.Overall != 50 {
		t.Errorf("Overall = %d, want 50", snap.Overall)
	}
}

func TestExploredCountsDistinctIDs(t *testing.T) {
	snap := Compute(nil, nil, []int{1, 2, 2, 3, 1})
	if snap.ExploredBuildings != 3 {
		t.Errorf("ExploredBuildings = %d, want 3", snap.ExploredBuildings)
	}
}

func TestKnowledgeSeekerThreshold(t *testing.T) {
	nine := Compute(factsIn(swisscitizen.CategoryHistory, 9), nil, nil)
	ten := Compute(factsIn(swisscitizen.CategoryHistory, 10), nil, nil)

	if a := achievement(t, nine, "Wissensdurstig"); a.Unlocked || a.Progress != 0.9 {
		t.Errorf("9 facts: %+v", a)
	}
	if a := achievement(t, ten, "Wissensdurstig"); !a.Unlocked || a.Progress != 1 {
		t.Errorf("10 facts: %+v", a)
	}
	if !achievement(t, nine, "Erste Schritte").Unlocked {
		t.Error("Erste Schritte locked with facts present")
	}
}

func TestQuizMaster(t *testing.T) {
	tests := []struct {
		name    string
		quizzes int
		score   int
		want    bool
	}{
		{"five strong runs", 5, 4, true},
		{"four strong runs", 4, 5, false},
		{"five weak runs", 5, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var results []swisscitizen.QuizResult
			for range tt.quizzes {
				results = append(results, result(tt.score, 5, base))
			}
			snap := Compute(nil, results, nil)
			if got := achievement(t, snap, "Quiz-Meister").Unlocked; got != tt.want {
				t.Errorf("Quiz-Meister = %v, want %v", got, tt.want)
			}
			if !achievement(t, snap, "Quiz-Anfänger").Unlocked {
				t.Error("Quiz-Anfänger locked after a quiz")
			}
		})
	}
}

func TestSwissExpert(t *testing.T) {
	var fs []swisscitizen.Fact
	for _, c := range swisscitizen.Categories {
		fs = append(fs, factsIn(c, 10)...)
	}
	if !achievement(t, Compute(fs, nil, nil), "Schweiz-Experte").Unlocked {
		t.Error("Schweiz-Experte locked with 10 facts per category")
	}

	short := fs[:len(fs)-5]
	a := achievement(t, Compute(short, nil, nil), "Schweiz-Experte")
	if a.Unlocked || a.Progress != 0.5 {
		t.Errorf("one category at 5: %+v", a)
	}
}

func TestExplorer(t *testing.T) {
	snap := Compute(nil, nil, []int{1, 2, 3, 4, 5})
	if !achievement(t, snap, "Entdecker").Unlocked {
		t.Error("Entdecker locked after five buildings")
	}
}

func TestRecentActivity(t *testing.T) {
	var results []swisscitizen.QuizResult
	for i := range 7 {
		results = append(results, result(i, 7, base.Add(time.Duration(i)*time.Hour)))
	}
	fs := factsIn(swisscitizen.CategoryHistory, 5)

	snap := Compute(fs, results, nil)

	if len(snap.Recent) != 8 {
		t.Fatalf("recent = %d entries, want 5 quizzes + 3 facts", len(snap.Recent))
	}
	for i := 1; i < len(snap.Recent); i++ {
		if snap.Recent[i].Date.After(snap.Recent[i-1].Date) {
			t.Fatalf("recent not sorted descending at %d", i)
		}
	}
	if got := snap.Recent[0].Description; got != "Quiz abgeschlossen: 6/7 Punkte" {
		t.Errorf("newest = %q", got)
	}
	last := snap.Recent[len(snap.Recent)-1]
	if last.Type != ActivityFact || last.Description != "Neuer Fakt hinzugefügt: history 2" {
		t.Errorf("oldest = %+v", last)
	}
}

func TestTips(t *testing.T) {
	var fs []swisscitizen.Fact
	for _, c := range swisscitizen.Categories {
		fs = append(fs, factsIn(c, 5)...)
	}
	snap := Compute(fs, []swisscitizen.QuizResult{result(1, 2, base)}, []int{1, 2, 3, 4, 5})

	want := []string{"Wiederholen Sie schwierige Themen, um Ihre Erfolgsrate zu verbessern"}
	if diff := cmp.Diff(want, snap.Tips); diff != "" {
		t.Errorf("Tips mismatch (-want +got):\n%s", diff)
	}
}

type exploredStub []int

func (e exploredStub) Explored(context.Context) ([]int, error) { return e, nil }

func TestServiceSnapshot(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	results := quiz.NewResults(store)
	if err := results.Append(ctx, result(3, 4, base)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	svc := NewService(facts.NewRepository(store, nil), results, exploredStub{7})
	snap, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	// First read seeds the sample facts.
	if snap.TotalFacts != 3 {
		t.Errorf("TotalFacts = %d, want 3 sample facts", snap.TotalFacts)
	}
	if snap.TotalQuizzes != 1 || snap.SuccessRate != 75 {
		t.Errorf("quizzes %d success %d", snap.TotalQuizzes, snap.SuccessRate)
	}
	if snap.ExploredBuildings != 1 {
		t.Errorf("ExploredBuildings = %d, want 1", snap.ExploredBuildings)
	}
}
