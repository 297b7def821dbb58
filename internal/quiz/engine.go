// Package quiz runs one quiz at a time over the question catalog.
//
// A run moves through Configuring, InProgress, AnswerRevealed (once per
// question) and Finished, after which the result is appended to the store
// and the engine is back in Configuring. Timed runs give every question a
// countdown; when it runs out the answer is revealed without a selection.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/swisscitizen/prep/internal/swisscitizen"
)

type State string

const (
	StateConfiguring    State = "configuring"
	StateInProgress     State = "in_progress"
	StateAnswerRevealed State = "answer_revealed"
	StateFinished       State = "finished"
)

var (
	ErrNoQuestions   = errors.New("no questions match the selected filters")
	ErrInvalidState  = errors.New("action not allowed in current quiz state")
	ErrNoSelection   = errors.New("no answer selected")
	ErrInvalidAnswer = errors.New("answer index out of range")
	ErrInvalidFilter = errors.New("unknown category or difficulty")
)

// NoQuestionsMessage is shown to the user when Start returns ErrNoQuestions.
const NoQuestionsMessage = "Keine Fragen für die gewählten Kriterien gefunden!"

const (
	DefaultSeconds = 30
	DefaultTick    = time.Second
)

// Shuffler permutes the eligible questions. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type Config struct {
	Questions []swisscitizen.Question
	Results   *Results
	Logger    *slog.Logger
	Observer  Observer
	Clock     Clock
	Shuffler  Shuffler
	Seconds   int
	Tick      time.Duration
	Now       func() time.Time
}

type Engine struct {
	catalog  []swisscitizen.Question
	results  *Results
	logger   *slog.Logger
	observer Observer
	clock    Clock
	shuffler Shuffler
	seconds  int
	tick     time.Duration
	now      func() time.Time

	mu         sync.Mutex
	pending    []Event
	state      State
	category   string
	difficulty string
	questions  []swisscitizen.Question
	index      int
	selected   *int
	score      int
	outcomes   []swisscitizen.Outcome
	timed      bool
	remaining  int
	timer      Timer
	gen        uint64
	lastResult *swisscitizen.QuizResult
}

func NewEngine(cfg Config) *Engine {
	e := &Engine{
		catalog:    slices.Clone(cfg.Questions),
		results:    cfg.Results,
		logger:     cfg.Logger,
		observer:   cfg.Observer,
		clock:      cfg.Clock,
		shuffler:   cfg.Shuffler,
		seconds:    cfg.Seconds,
		tick:       cfg.Tick,
		now:        cfg.Now,
		state:      StateConfiguring,
		category:   swisscitizen.All,
		difficulty: swisscitizen.All,
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.observer == nil {
		e.observer = nopObserver{}
	}
	if e.clock == nil {
		e.clock = SystemClock
	}
	if e.shuffler == nil {
		e.shuffler = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if e.seconds <= 0 {
		e.seconds = DefaultSeconds
	}
	if e.tick <= 0 {
		e.tick = DefaultTick
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// unlock releases the engine and then delivers events queued while it was held.
func (e *Engine) unlock() {
	events := e.pending
	e.pending = nil
	e.mu.Unlock()
	for _, ev := range events {
		e.observer.QuizEvent(ev)
	}
}

func (e *Engine) emit(typ EventType) {
	ev := Event{
		Type:     typ,
		State:    e.state,
		Question: e.index + 1,
		Total:    len(e.questions),
		Score:    e.score,
	}
	if e.timed {
		ev.Remaining = e.remaining
	}
	e.pending = append(e.pending, ev)
}

// Configure sets the category and difficulty filters for the next run.
func (e *Engine) Configure(category, difficulty string) error {
	if category == "" {
		category = swisscitizen.All
	}
	if difficulty == "" {
		difficulty = swisscitizen.All
	}
	if category != swisscitizen.All && !swisscitizen.Category(category).Valid() {
		return fmt.Errorf("%w: category %q", ErrInvalidFilter, category)
	}
	if difficulty != swisscitizen.All && !swisscitizen.Difficulty(difficulty).Valid() {
		return fmt.Errorf("%w: difficulty %q", ErrInvalidFilter, difficulty)
	}

	e.mu.Lock()
	defer e.unlock()
	if e.state != StateConfiguring {
		return ErrInvalidState
	}
	e.category = category
	e.difficulty = difficulty
	return nil
}

func (e *Engine) eligible() []swisscitizen.Question {
	var out []swisscitizen.Question
	for _, q := range e.catalog {
		if q.Matches(e.category, e.difficulty) {
			out = append(out, q)
		}
	}
	return out
}

// Available returns how many questions match the current filters.
func (e *Engine) Available() int {
	e.mu.Lock()
	defer e.unlock()
	return len(e.eligible())
}

// Count returns how many catalog questions match the given filters.
func (e *Engine) Count(category, difficulty string) int {
	n := 0
	for _, q := range e.catalog {
		if q.Matches(category, difficulty) {
			n++
		}
	}
	return n
}

// Start shuffles the eligible questions and begins a run. With no eligible
// questions it returns ErrNoQuestions and changes nothing.
func (e *Engine) Start(timed bool) error {
	e.mu.Lock()
	defer e.unlock()

	if e.state != StateConfiguring {
		return ErrInvalidState
	}
	qs := e.eligible()
	if len(qs) == 0 {
		return ErrNoQuestions
	}
	e.shuffler.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })

	e.questions = qs
	e.index = 0
	e.selected = nil
	e.score = 0
	e.outcomes = nil
	e.timed = timed
	e.lastResult = nil
	e.state = StateInProgress
	if timed {
		e.armCountdown()
	}

	e.logger.Info("quiz started",
		"questions", len(qs),
		"category", e.category,
		"difficulty", e.difficulty,
		"timed", timed,
	)
	e.emit(EventStarted)
	return nil
}

// Select marks an answer. It can be changed until Confirm.
func (e *Engine) Select(answer int) error {
	e.mu.Lock()
	defer e.unlock()

	if e.state != StateInProgress {
		return ErrInvalidState
	}
	if answer < 0 || answer >= len(e.questions[e.index].Answers) {
		return ErrInvalidAnswer
	}
	e.selected = &answer
	return nil
}

// Confirm scores the selected answer and reveals the correct one.
func (e *Engine) Confirm() (swisscitizen.Outcome, error) {
	e.mu.Lock()
	defer e.unlock()

	if e.state != StateInProgress {
		return swisscitizen.Outcome{}, ErrInvalidState
	}
	if e.selected == nil {
		return swisscitizen.Outcome{}, ErrNoSelection
	}

	q := e.questions[e.index]
	selected := *e.selected
	o := swisscitizen.Outcome{
		QuestionID: q.ID,
		Selected:   &selected,
		IsCorrect:  selected == q.CorrectAnswer,
	}
	if o.IsCorrect {
		e.score++
	}
	e.reveal(o)
	return o, nil
}

func (e *Engine) reveal(o swisscitizen.Outcome) {
	e.cancelCountdown()
	e.outcomes = append(e.outcomes, o)
	e.state = StateAnswerRevealed
	e.emit(EventRevealed)
}

// Advance moves to the next question. After the last question the run is
// finished: its result is appended to the store and returned, and the engine
// is back in Configuring.
func (e *Engine) Advance(ctx context.Context) (*swisscitizen.QuizResult, error) {
	e.mu.Lock()
	defer e.unlock()

	if e.state != StateAnswerRevealed {
		return nil, ErrInvalidState
	}

	if e.index < len(e.questions)-1 {
		e.index++
		e.selected = nil
		e.state = StateInProgress
		if e.timed {
			e.armCountdown()
		}
		e.emit(EventAdvanced)
		return nil, nil
	}

	e.state = StateFinished
	res := swisscitizen.QuizResult{
		ID:         uuid.NewString(),
		Date:       e.now().UTC(),
		Score:      e.score,
		Total:      len(e.questions),
		Category:   e.category,
		Difficulty: e.difficulty,
		Timed:      e.timed,
		Results:    slices.Clone(e.outcomes),
	}
	if err := e.results.Append(ctx, res); err != nil {
		e.state = StateAnswerRevealed
		return nil, fmt.Errorf("recording quiz result: %w", err)
	}
	e.emit(EventFinished)

	e.logger.Info("quiz finished", "score", res.Score, "total", res.Total, "timed", res.Timed)
	e.lastResult = &res
	e.clearRun()
	return &res, nil
}

// Reset abandons the current run without recording a result.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.unlock()

	e.cancelCountdown()
	e.clearRun()
	e.emit(EventReset)
}

func (e *Engine) clearRun() {
	e.state = StateConfiguring
	e.questions = nil
	e.index = 0
	e.selected = nil
	e.score = 0
	e.outcomes = nil
	e.timed = false
	e.remaining = 0
}

func (e *Engine) armCountdown() {
	e.cancelCountdown()
	e.remaining = e.seconds
	e.schedule()
}

func (e *Engine) schedule() {
	gen := e.gen
	e.timer = e.clock.AfterFunc(e.tick, func() { e.onTick(gen) })
}

// cancelCountdown stops the pending tick. Bumping gen makes a tick that
// already fired a no-op.
func (e *Engine) cancelCountdown() {
	e.gen++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Engine) onTick(gen uint64) {
	e.mu.Lock()
	defer e.unlock()

	if gen != e.gen || e.state != StateInProgress {
		return
	}
	e.remaining--
	if e.remaining > 0 {
		e.emit(EventTick)
		e.schedule()
		return
	}

	e.emit(EventTimeUp)
	e.selected = nil
	e.reveal(swisscitizen.Outcome{
		QuestionID: e.questions[e.index].ID,
		TimedOut:   true,
	})
}
