package quiz

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/tectonhq/tecton/internal/catalog"
	"github.com/tectonhq/tecton/internal/progress"
	quizgame "github.com/tectonhq/tecton/internal/quiz"
	"github.com/tectonhq/tecton/internal/router"
	"github.com/tectonhq/tecton/internal/screen"
	summaryscreen "github.com/tectonhq/tecton/internal/screens/summary"
	"github.com/tectonhq/tecton/internal/store"
	"github.com/tectonhq/tecton/internal/ui/components"
	"github.com/tectonhq/tecton/internal/ui/layout"
)

// QuizScreen drives one quiz game from first question to summary.
type QuizScreen struct {
	volcanoName string
	def         catalog.GameDef
	prog        *progress.Store
	eventRepo   store.EventRepo

	game      *quizgame.Game
	choice    components.MultiChoice
	sessionID string
	startedAt time.Time

	showingFeedback bool
	confirmingQuit  bool
	finished        bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscInterceptor = (*QuizScreen)(nil)

// New creates a QuizScreen for the given game definition.
func New(volcanoName string, def catalog.GameDef, prog *progress.Store, eventRepo store.EventRepo) *QuizScreen {
	g := quizgame.New(def.Questions)
	g.Start()

	s := &QuizScreen{
		volcanoName: volcanoName,
		def:         def,
		prog:        prog,
		eventRepo:   eventRepo,
		game:        g,
		sessionID:   uuid.New().String(),
		startedAt:   time.Now(),
	}
	s.loadChoice()
	return s
}

func (s *QuizScreen) loadChoice() {
	if q, ok := s.game.Current(); ok {
		s.choice = components.NewMultiChoice(q.Prompt, q.Choices, q.Answer)
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	// An empty question list completes on Start.
	if s.game.Status() == quizgame.StatusCompleted {
		return s.finish()
	}
	return nil
}

func (s *QuizScreen) Title() string {
	return s.def.Title
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.confirmingQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Keep playing"},
		}
	}
	if s.showingFeedback {
		return []layout.KeyHint{
			{Key: "Any key", Description: "Continue"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Select"},
		{Key: "Esc", Description: "Leave"},
	}
}

// InterceptEsc keeps esc inside the screen while a run is in flight so
// leaving goes through the confirmation dialog.
func (s *QuizScreen) InterceptEsc() bool {
	return !s.finished
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	return s, s.handleKey(kmsg)
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.confirmingQuit {
		switch msg.String() {
		case "y", "Y":
			s.recordAbandoned()
			return func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmingQuit = false
		}
		return nil
	}

	if s.finished {
		return nil
	}

	if s.showingFeedback {
		// Any key dismisses feedback and advances.
		s.showingFeedback = false
		s.game.Advance()
		if s.game.Status() == quizgame.StatusCompleted {
			return s.finish()
		}
		s.loadChoice()
		return nil
	}

	switch msg.String() {
	case "esc":
		s.confirmingQuit = true
		return nil
	case "1", "2", "3", "4":
		idx := int(msg.String()[0] - '1')
		if idx < len(s.choice.Options) {
			s.choice.Selected = idx
			s.choice.Submitted = true
			s.choice.ChosenIndex = idx
			s.submitCurrent(idx)
		}
		return nil
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	if s.choice.Submitted {
		s.submitCurrent(s.choice.ChosenIndex)
	}
	return cmd
}

// submitCurrent records the locked-in answer and shows feedback. The
// machine ignores re-submissions, so this is safe to reach twice.
func (s *QuizScreen) submitCurrent(choice int) {
	s.game.SubmitAnswer(choice)
	s.showingFeedback = true
}

// finish runs once: progress update, play event, then the summary screen.
func (s *QuizScreen) finish() tea.Cmd {
	if s.finished {
		return nil
	}
	s.finished = true

	res := s.prog.MarkGameCompleted(s.volcanoName, s.def.Type)
	s.appendPlayEvent(true)

	sum := summaryscreen.New(summaryscreen.Data{
		VolcanoName: s.volcanoName,
		GameTitle:   s.def.Title,
		GameType:    s.def.Type,
		Score:       s.game.Score(),
		Total:       s.game.Len(),
		ScoreLabel:  "correct",
		Duration:    time.Since(s.startedAt),
		Result:      res,
	})
	return func() tea.Msg { return router.PushScreenMsg{Screen: sum} }
}

func (s *QuizScreen) recordAbandoned() {
	s.appendPlayEvent(false)
}

func (s *QuizScreen) appendPlayEvent(completed bool) {
	if s.eventRepo == nil {
		return
	}
	_ = s.eventRepo.AppendPlay(context.Background(), store.PlayEventData{
		SessionID:    s.sessionID,
		Volcano:      s.volcanoName,
		GameType:     string(s.def.Type),
		GameTitle:    s.def.Title,
		Score:        s.game.Score(),
		Total:        s.game.Len(),
		Completed:    completed,
		DurationSecs: int(time.Since(s.startedAt).Seconds()),
	})
}
