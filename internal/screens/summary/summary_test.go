package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/tectonhq/tecton/internal/catalog"
	"github.com/tectonhq/tecton/internal/progress"
)

func testData() Data {
	return Data{
		VolcanoName: "Mount Vesuvius",
		GameTitle:   "Vesuvius Quiz",
		GameType:    catalog.GameQuiz,
		Score:       3,
		Total:       4,
		ScoreLabel:  "correct",
		Duration:    65 * time.Second,
		Result:      progress.Result{Changed: true},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testData())
	if s.Title() != "Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testData())
	view := s.View(80, 24)
	if view == "" {
		t.Error("expected non-empty summary view")
	}
	if !strings.Contains(view, "Score: 3/4 correct") {
		t.Error("expected the score line in the view")
	}
}

func TestSummaryScreen_Banners(t *testing.T) {
	d := testData()
	d.Result.VolcanoCompleted = true
	d.Result.Unlocked = "Mount St. Helens"
	d.Result.Achievement = &catalog.Achievement{
		ID:    "vesuvius-master",
		Title: "Vesuvius Master",
		Tier:  catalog.TierGold,
	}

	view := New(d).View(80, 30)
	if !strings.Contains(view, "Mount Vesuvius complete!") {
		t.Error("expected the volcano-complete banner")
	}
	if !strings.Contains(view, "Mount St. Helens is now unlocked!") {
		t.Error("expected the unlock banner")
	}
	if !strings.Contains(view, "Vesuvius Master") {
		t.Error("expected the achievement banner")
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testData())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a command on Enter (pop back to the volcano)")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testData())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop back to the volcano)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testData())
	hints := s.KeyHints()
	if len(hints) != 1 {
		t.Errorf("KeyHints length = %d, want 1", len(hints))
	}
}
