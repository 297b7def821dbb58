package quiz

import (
	"slices"

	"github.com/swisscitizen/prep/internal/swisscitizen"
)

// QuestionView is a question without its solution.
type QuestionView struct {
	ID         int                       `json:"id"`
	Prompt     string                    `json:"question"`
	Answers    []string                  `json:"answers"`
	Category   swisscitizen.Category     `json:"category"`
	Difficulty swisscitizen.Difficulty   `json:"difficulty"`
	Type       swisscitizen.QuestionType `json:"type"`
}

// View is a snapshot of the engine for rendering. The correct answer and
// explanation are only present once the answer is revealed.
type View struct {
	State         State                    `json:"state"`
	Category      string                   `json:"category"`
	Difficulty    string                   `json:"difficulty"`
	Available     int                      `json:"available"`
	Index         int                      `json:"index"`
	Total         int                      `json:"total"`
	Score         int                      `json:"score"`
	Timed         bool                     `json:"timed"`
	Remaining     *int                     `json:"remaining"`
	Question      *QuestionView            `json:"question"`
	Selected      *int                     `json:"selected"`
	Outcome       *swisscitizen.Outcome    `json:"outcome,omitempty"`
	CorrectAnswer *int                     `json:"correctAnswer,omitempty"`
	Explanation   string                   `json:"explanation,omitempty"`
	LastResult    *swisscitizen.QuizResult `json:"lastResult,omitempty"`
}

func (e *Engine) View() View {
	e.mu.Lock()
	defer e.unlock()

	v := View{
		State:      e.state,
		Category:   e.category,
		Difficulty: e.difficulty,
		Available:  len(e.eligible()),
		LastResult: e.lastResult,
	}
	if e.state == StateConfiguring {
		return v
	}

	q := e.questions[e.index]
	v.Index = e.index
	v.Total = len(e.questions)
	v.Score = e.score
	v.Timed = e.timed
	if e.timed {
		remaining := e.remaining
		v.Remaining = &remaining
	}
	v.Question = &QuestionView{
		ID:         q.ID,
		Prompt:     q.Prompt,
		Answers:    slices.Clone(q.Answers),
		Category:   q.Category,
		Difficulty: q.Difficulty,
		Type:       q.Type,
	}
	if e.selected != nil {
		selected := *e.selected
		v.Selected = &selected
	}
	if e.state == StateAnswerRevealed {
		o := e.outcomes[len(e.outcomes)-1]
		correct := q.CorrectAnswer
		v.Outcome = &o
		v.CorrectAnswer = &correct
		v.Explanation = q.Explanation
	}
	return v
}
