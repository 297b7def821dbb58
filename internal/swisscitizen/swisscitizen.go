// Package swisscitizen defines the core domain types and the static catalogs
// shipped with the application.
package swisscitizen

import (
	"fmt"
	"time"
)

// All is the filter value that disables category or difficulty filtering.
const All = "all"

type Category string

const (
	CategoryHistory   Category = "history"
	CategoryPolitics  Category = "politics"
	CategoryGeography Category = "geography"
	CategoryCulture   Category = "culture"
	CategoryLocal     Category = "local"
)

// Categories is the fixed set tallied by the progress dashboard, in display order.
var Categories = []Category{
	CategoryHistory,
	CategoryPolitics,
	CategoryGeography,
	CategoryCulture,
	CategoryLocal,
}

var categoryLabels = map[Category]string{
	CategoryHistory:   "Geschichte",
	CategoryPolitics:  "Politik",
	CategoryGeography: "Geographie",
	CategoryCulture:   "Kultur",
	CategoryLocal:     "Lokales Wissen",
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var difficultyLabels = map[Difficulty]string{
	DifficultyEasy:   "Einfach",
	DifficultyMedium: "Mittel",
	DifficultyHard:   "Schwer",
}

func (d Difficulty) Valid() bool {
	_, ok := difficultyLabels[d]
	return ok
}

func (d Difficulty) Label() string {
	if l, ok := difficultyLabels[d]; ok {
		return l
	}
	return string(d)
}

type Fact struct {
	ID         int64      `json:"id" yaml:"id"`
	Title      string     `json:"title" yaml:"title"`
	Content    string     `json:"content" yaml:"content"`
	Category   Category   `json:"category" yaml:"category"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`
	Tags       []string   `json:"tags" yaml:"tags"`
	CreatedAt  time.Time  `json:"createdAt" yaml:"createdAt"`
}

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionTrueFalse      QuestionType = "true-false"
)

type Question struct {
	ID            int          `json:"id" yaml:"id"`
	Prompt        string       `json:"question" yaml:"question"`
	Answers       []string     `json:"answers" yaml:"answers"`
	CorrectAnswer int          `json:"correctAnswer" yaml:"correctAnswer"`
	Category      Category     `json:"category" yaml:"category"`
	Difficulty    Difficulty   `json:"difficulty" yaml:"difficulty"`
	Explanation   string       `json:"explanation" yaml:"explanation"`
	Type          QuestionType `json:"type" yaml:"type"`
}

func (q Question) Validate() error {
	if len(q.Answers) < 2 {
		return fmt.Errorf("question %d: need at least two answers, got %d", q.ID, len(q.Answers))
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Answers) {
		return fmt.Errorf("question %d: correct answer %d out of range", q.ID, q.CorrectAnswer)
	}
	if !q.Category.Valid() {
		return fmt.Errorf("question %d: unknown category %q", q.ID, q.Category)
	}
	if !q.Difficulty.Valid() {
		return fmt.Errorf("question %d: unknown difficulty %q", q.ID, q.Difficulty)
	}
	return nil
}

// Matches reports whether q passes the category and difficulty filters.
// Either filter may be All or empty.
func (q Question) Matches(category, difficulty string) bool {
	categoryMatch := category == "" || category == All || string(q.Category) == category
	difficultyMatch := difficulty == "" || difficulty == All || string(q.Difficulty) == difficulty
	return categoryMatch && difficultyMatch
}

// Outcome is the per-question record of a quiz run. Selected is nil when the
// countdown ran out before an answer was confirmed.
type Outcome struct {
	QuestionID int  `json:"questionId"`
	Selected   *int `json:"selectedAnswer"`
	IsCorrect  bool `json:"isCorrect"`
	TimedOut   bool `json:"timedOut,omitempty"`
}

type QuizResult struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Category   string    `json:"category"`
	Difficulty string    `json:"difficulty"`
	Timed      bool      `json:"timed"`
	Results    []Outcome `json:"results"`
}

type BuildingCategory string

const (
	BuildingGovernment BuildingCategory = "government"
	BuildingCulture    BuildingCategory = "culture"
	BuildingEducation  BuildingCategory = "education"
	BuildingTransport  BuildingCategory = "transport"
)

type Position struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Zurich is the default map centre.
var Zurich = Position{Lat: 47.3769, Lng: 8.5417}

type Building struct {
	ID              int              `json:"id" yaml:"id"`
	Name            string           `json:"name" yaml:"name"`
	Category        BuildingCategory `json:"category" yaml:"category"`
	Position        Position         `json:"position" yaml:"position"`
	Address         string           `json:"address" yaml:"address"`
	Description     string           `json:"description" yaml:"description"`
	OpeningHours    string           `json:"openingHours" yaml:"openingHours"`
	Contact         string           `json:"contact" yaml:"contact"`
	HistoricalFacts []string         `json:"historicalFacts" yaml:"historicalFacts"`
}

type Topic struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Icon        string `json:"icon" yaml:"icon"`
	Description string `json:"description" yaml:"description"`
	Link        string `json:"link" yaml:"link"`
}
