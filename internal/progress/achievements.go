package progress

import (
	"math"

	"github.com/swisscitizen/prep/internal/swisscitizen"
)

// Achievement is a milestone evaluated against Stats. Progress is in [0, 1].
type Achievement struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Unlocked    func(Stats) bool
	Progress    func(Stats) float64
}

type AchievementState struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Unlocked    bool    `json:"unlocked"`
	Progress    float64 `json:"progress"`
}

func ratio(n, goal int) float64 {
	return math.Min(float64(n)/float64(goal), 1)
}

func quizMaster(s Stats) bool {
	return s.SuccessRate() >= 80 && s.TotalQuizzes >= 5
}

func allCategories(s Stats, atLeast int) bool {
	for _, c := range swisscitizen.Categories {
		if s.CategoryCounts[c] < atLeast {
			return false
		}
	}
	return true
}

// Achievements in display order.
var Achievements = []Achievement{
	{
		ID:          "first-steps",
		Title:       "Erste Schritte",
		Description: "Ersten Fakt hinzugefügt",
		Icon:        "🌟",
		Unlocked:    func(s Stats) bool { return s.TotalFacts > 0 },
		Progress:    func(s Stats) float64 { return ratio(s.TotalFacts, 1) },
	},
	{
		ID:          "quiz-beginner",
		Title:       "Quiz-Anfänger",
		Description: "Erstes Quiz abgeschlossen",
		Icon:        "🎯",
		Unlocked:    func(s Stats) bool { return s.TotalQuizzes > 0 },
		Progress:    func(s Stats) float64 { return ratio(s.TotalQuizzes, 1) },
	},
	{
		ID:          "knowledge-seeker",
		Title:       "Wissensdurstig",
		Description: "10 Fakten gesammelt",
		Icon:        "📖",
		Unlocked:    func(s Stats) bool { return s.TotalFacts >= 10 },
		Progress:    func(s Stats) float64 { return ratio(s.TotalFacts, 10) },
	},
	{
		ID:          "quiz-master",
		Title:       "Quiz-Meister",
		Description: "5 Quiz mit über 80% bestanden",
		Icon:        "🏆",
		Unlocked:    quizMaster,
		Progress: func(s Stats) float64 {
			if quizMaster(s) {
				return 1
			}
			return 0
		},
	},
	{
		ID:          "explorer",
		Title:       "Entdecker",
		Description: "5 Gebäude erkundet",
		Icon:        "🗺️",
		Unlocked:    func(s Stats) bool { return s.ExploredBuildings >= 5 },
		Progress:    func(s Stats) float64 { return ratio(s.ExploredBuildings, 5) },
	},
	{
		ID:          "swiss-expert",
		Title:       "Schweiz-Experte",
		Description: "Alle Kategorien zu 50% abgeschlossen",
		Icon:        "🇨🇭",
		Unlocked:    func(s Stats) bool { return allCategories(s, 10) },
		Progress: func(s Stats) float64 {
			p := 1.0
			for _, c := range swisscitizen.Categories {
				p = math.Min(p, ratio(s.CategoryCounts[c], 10))
			}
			return p
		},
	},
}

func Evaluate(s Stats) []AchievementState {
	out := make([]AchievementState, 0, len(Achievements))
	for _, a := range Achievements {
		out = append(out, AchievementState{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Icon:        a.Icon,
			Unlocked:    a.Unlocked(s),
			Progress:    a.Progress(s),
		})
	}
	return out
}
