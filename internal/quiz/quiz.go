// Package quiz implements the multiple-choice quiz mini-game. Answers lock
// in on first submission and advancing to the next question is a separate
// explicit step, so the screen controls feedback pacing.
package quiz

import "github.com/tectonhq/tecton/internal/catalog"

// Status is the lifecycle phase of a quiz run.
type Status int

const (
	StatusNotStarted Status = iota
	StatusInProgress
	StatusCompleted
)

const unanswered = -1

// Game is one quiz run over a fixed question list. A replay is a new Game;
// a completed run never transitions back.
type Game struct {
	questions []catalog.Question
	status    Status
	index     int
	chosen    []int // locked-in choice per question, unanswered = -1
	score     int
}

// New builds a quiz over the given questions. Start must be called before
// answers are accepted.
func New(questions []catalog.Question) *Game {
	qs := make([]catalog.Question, len(questions))
	copy(qs, questions)
	return &Game{questions: qs}
}

// Start begins the run. Only valid from NotStarted; otherwise a no-op.
func (g *Game) Start() {
	if g.status != StatusNotStarted {
		return
	}
	g.chosen = make([]int, len(g.questions))
	for i := range g.chosen {
		g.chosen[i] = unanswered
	}
	g.index = 0
	g.score = 0
	if len(g.questions) == 0 {
		g.status = StatusCompleted
		return
	}
	g.status = StatusInProgress
}

// SubmitAnswer locks in a choice for the current question and scores it
// against the fixed correct index. The first submission wins: repeated
// submissions for the same question are ignored, as are out-of-range
// choices. The run does not auto-advance.
func (g *Game) SubmitAnswer(choice int) {
	if g.status != StatusInProgress {
		return
	}
	q := g.questions[g.index]
	if choice < 0 || choice >= len(q.Choices) {
		return
	}
	if g.chosen[g.index] != unanswered {
		return
	}
	g.chosen[g.index] = choice
	if choice == q.Answer {
		g.score++
	}
}

// Advance moves to the next question once the current one is answered.
// Advancing past the final question completes the run.
func (g *Game) Advance() {
	if g.status != StatusInProgress || g.chosen[g.index] == unanswered {
		return
	}
	g.index++
	if g.index >= len(g.questions) {
		g.status = StatusCompleted
	}
}

// Status returns the current lifecycle phase.
func (g *Game) Status() Status {
	return g.status
}

// Current returns the active question, or false when no question is active.
func (g *Game) Current() (catalog.Question, bool) {
	if g.status != StatusInProgress {
		return catalog.Question{}, false
	}
	return g.questions[g.index], true
}

// Index returns the zero-based position of the current question.
func (g *Game) Index() int {
	return g.index
}

// Len returns the number of questions in the run.
func (g *Game) Len() int {
	return len(g.questions)
}

// Answered reports whether the current question has a locked-in choice.
func (g *Game) Answered() bool {
	return g.status == StatusInProgress && g.chosen[g.index] != unanswered
}

// Chosen returns the locked-in choice for the current question, or -1.
func (g *Game) Chosen() int {
	if g.status != StatusInProgress {
		return unanswered
	}
	return g.chosen[g.index]
}

// Score returns the number of correctly answered questions so far.
func (g *Game) Score() int {
	return g.score
}
