// Package progress derives the study dashboard from the stored facts, quiz
// results and explored buildings.
package progress

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/swisscitizen/prep/internal/swisscitizen"
)

const (
	categoryGoal  = 20
	factGoal      = 50
	quizGoal      = 20
	buildingGoal  = 10
	recentQuizzes = 5
	recentFacts   = 3
	recentLimit   = 10
)

// Stats are the raw counters the dashboard is computed from.
type Stats struct {
	TotalFacts        int                           `json:"totalFacts"`
	TotalQuizzes      int                           `json:"totalQuizzes"`
	CorrectAnswers    int                           `json:"correctAnswers"`
	TotalAnswers      int                           `json:"totalAnswers"`
	ExploredBuildings int                           `json:"exploredBuildings"`
	CategoryCounts    map[swisscitizen.Category]int `json:"categoryCounts"`
}

// SuccessRate is the share of correct answers as a rounded percentage.
func (s Stats) SuccessRate() int {
	if s.TotalAnswers == 0 {
		return 0
	}
	return int(math.Round(float64(s.CorrectAnswers) / float64(s.TotalAnswers) * 100))
}

// CategoryPercent treats categoryGoal facts as complete.
func (s Stats) CategoryPercent(c swisscitizen.Category) float64 {
	return math.Min(float64(s.CategoryCounts[c])*100/categoryGoal, 100)
}

func (s Stats) Overall() int {
	sum := ratio(s.TotalFacts, factGoal) + ratio(s.TotalQuizzes, quizGoal) + ratio(s.ExploredBuildings, buildingGoal)
	return int(math.Round(sum * 100 / 3))
}

type CategoryProgress struct {
	Category swisscitizen.Category `json:"category"`
	Label    string                `json:"label"`
	Count    int                   `json:"count"`
	Percent  float64               `json:"percent"`
}

type ActivityType string

const (
	ActivityQuiz ActivityType = "quiz"
	ActivityFact ActivityType = "fact"
)

type Activity struct {
	Type        ActivityType `json:"type"`
	Date        time.Time    `json:"date"`
	Description string       `json:"description"`
}

type Snapshot struct {
	Stats
	SuccessRate  int                `json:"successRate"`
	Overall      int                `json:"overall"`
	Categories   []CategoryProgress `json:"categories"`
	Achievements []AchievementState `json:"achievements"`
	Recent       []Activity         `json:"recent"`
	Tips         []string           `json:"tips"`
}

// Compute builds the dashboard. Explored ids are counted once each; facts in
// categories outside the fixed set are not tallied per category.
func Compute(facts []swisscitizen.Fact, results []swisscitizen.QuizResult, explored []int) Snapshot {
	st := Stats{
		TotalFacts:     len(facts),
		TotalQuizzes:   len(results),
		CategoryCounts: make(map[swisscitizen.Category]int, len(swisscitizen.Categories)),
	}
	for _, c := range swisscitizen.Categories {
		st.CategoryCounts[c] = 0
	}
	for _, r := range results {
		st.TotalAnswers += r.Total
		st.CorrectAnswers += r.Score
	}
	for _, f := range facts {
		if _, ok := st.CategoryCounts[f.Category]; ok {
			st.CategoryCounts[f.Category]++
		}
	}
	seen := make(map[int]struct{}, len(explored))
	for _, id := range explored {
		seen[id] = struct{}{}
	}
	st.ExploredBuildings = len(seen)

	snap := Snapshot{
		Stats:        st,
		SuccessRate:  st.SuccessRate(),
		Overall:      st.Overall(),
		Achievements: Evaluate(st),
		Recent:       recent(facts, results),
		Tips:         tips(st),
	}
	for _, c := range swisscitizen.Categories {
		snap.Categories = append(snap.Categories, CategoryProgress{
			Category: c,
			Label:    c.Label(),
			Count:    st.CategoryCounts[c],
			Percent:  st.CategoryPercent(c),
		})
	}
	return snap
}

func recent(facts []swisscitizen.Fact, results []swisscitizen.QuizResult) []Activity {
	activity := []Activity{}
	for _, r := range lastN(results, recentQuizzes) {
		activity = append(activity, Activity{
			Type:        ActivityQuiz,
			Date:        r.Date,
			Description: fmt.Sprintf("Quiz abgeschlossen: %d/%d Punkte", r.Score, r.Total),
		})
	}
	for _, f := range lastN(facts, recentFacts) {
		activity = append(activity, Activity{
			Type:        ActivityFact,
			Date:        f.CreatedAt,
			Description: "Neuer Fakt hinzugefügt: " + f.Title,
		})
	}
	slices.SortStableFunc(activity, func(a, b Activity) int {
		return b.Date.Compare(a.Date)
	})
	if len(activity) > recentLimit {
		activity = activity[:recentLimit]
	}
	return activity
}

func lastN[T any](s []T, n int) []T {
	return s[max(len(s)-n, 0):]
}

func tips(st Stats) []string {
	out := []string{}
	if st.TotalFacts < 10 {
		out = append(out, "Fügen Sie mehr Fakten hinzu, um Ihr Wissen zu erweitern")
	}
	if st.TotalQuizzes > 0 && st.SuccessRate() < 70 {
		out = append(out, "Wiederholen Sie schwierige Themen, um Ihre Erfolgsrate zu verbessern")
	}
	if st.ExploredBuildings < 5 {
		out = append(out, "Erkunden Sie mehr Gebäude auf der interaktiven Karte")
	}
	if minCategory(st) < 5 {
		out = append(out, "Konzentrieren Sie sich auf schwächere Kategorien für ausgewogenes Lernen")
	}
	return out
}

func minCategory(st Stats) int {
	counts := make([]int, 0, len(swisscitizen.Categories))
	for _, c := range swisscitizen.Categories {
		counts = append(counts, st.CategoryCounts[c])
	}
	return slices.Min(counts)
}
