package builder

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/tectonhq/tecton/internal/catalog"
	"github.com/tectonhq/tecton/internal/progress"
	puzzlegame "github.com/tectonhq/tecton/internal/puzzle"
	"github.com/tectonhq/tecton/internal/router"
	"github.com/tectonhq/tecton/internal/screen"
	summaryscreen "github.com/tectonhq/tecton/internal/screens/summary"
	"github.com/tectonhq/tecton/internal/store"
	"github.com/tectonhq/tecton/internal/ui/components"
	"github.com/tectonhq/tecton/internal/ui/layout"
	"github.com/tectonhq/tecton/internal/ui/theme"
)

// BuilderScreen drives one volcano-builder game. Layers are stacked onto
// a cross-section diagram, bottom to top; slot 0 is the base. Placement is
// free and the build completes when every layer is somewhere on the stack.
type BuilderScreen struct {
	volcanoName string
	def         catalog.GameDef
	prog        *progress.Store
	eventRepo   store.EventRepo

	game      *puzzlegame.Game
	sessionID string
	startedAt time.Time

	trayCursor int
	slotCursor int
	heldLayer  int // layer ID in hand, -1 when none

	confirmingQuit bool
	finished       bool
}

var _ screen.Screen = (*BuilderScreen)(nil)
var _ screen.KeyHintProvider = (*BuilderScreen)(nil)
var _ screen.EscInterceptor = (*BuilderScreen)(nil)

// New creates a BuilderScreen for the given game definition. Layer i of
// the definition becomes piece i with home slot i.
func New(volcanoName string, def catalog.GameDef, prog *progress.Store, eventRepo store.EventRepo) *BuilderScreen {
	labels := make([]string, len(def.Layers))
	for i, l := range def.Layers {
		labels[i] = l.Name
	}
	g := puzzlegame.New(labels)
	g.Start()

	return &BuilderScreen{
		volcanoName: volcanoName,
		def:         def,
		prog:        prog,
		eventRepo:   eventRepo,
		game:        g,
		sessionID:   uuid.New().String(),
		startedAt:   time.Now(),
		heldLayer:   -1,
	}
}

func (s *BuilderScreen) Init() tea.Cmd {
	if s.game.Status() == puzzlegame.StatusCompleted {
		return s.finish()
	}
	return nil
}

func (s *BuilderScreen) Title() string {
	return s.def.Title
}

func (s *BuilderScreen) KeyHints() []layout.KeyHint {
	if s.confirmingQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Keep playing"},
		}
	}
	if s.heldLayer >= 0 {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Slot"},
			{Key: "Enter", Description: "Place"},
			{Key: "Esc", Description: "Put back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Layer"},
		{Key: "Enter", Description: "Pick up"},
		{Key: "Esc", Description: "Leave"},
	}
}

func (s *BuilderScreen) InterceptEsc() bool {
	return !s.finished
}

func (s *BuilderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	return s, s.handleKey(kmsg)
}

func (s *BuilderScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.confirmingQuit {
		switch msg.String() {
		case "y", "Y":
			s.appendPlayEvent(false)
			return func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmingQuit = false
		}
		return nil
	}

	if s.finished {
		return nil
	}

	if s.heldLayer >= 0 {
		return s.handleSlotKey(msg)
	}
	return s.handleTrayKey(msg)
}

// handleTrayKey navigates the unplaced layer list.
func (s *BuilderScreen) handleTrayKey(msg tea.KeyMsg) tea.Cmd {
	tray := s.game.Tray()
	switch msg.String() {
	case "esc":
		s.confirmingQuit = true
	case "up", "k":
		if s.trayCursor > 0 {
			s.trayCursor--
		}
	case "down", "j":
		if s.trayCursor < len(tray)-1 {
			s.trayCursor++
		}
	case "enter", "space":
		if s.trayCursor < len(tray) {
			s.heldLayer = tray[s.trayCursor].ID
			s.slotCursor = s.firstEmptySlot()
		}
	}
	return nil
}

// handleSlotKey navigates the stack with a layer in hand. Up on screen
// means a higher slot index.
func (s *BuilderScreen) handleSlotKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.heldLayer = -1
	case "up", "k":
		if s.slotCursor < s.game.Total()-1 {
			s.slotCursor++
		}
	case "down", "j":
		if s.slotCursor > 0 {
			s.slotCursor--
		}
	case "enter", "space":
		s.game.PlacePiece(s.heldLayer, s.slotCursor)
		s.heldLayer = -1
		if tray := s.game.Tray(); s.trayCursor >= len(tray) && len(tray) > 0 {
			s.trayCursor = len(tray) - 1
		}
		if s.game.Status() == puzzlegame.StatusCompleted {
			return s.finish()
		}
	}
	return nil
}

func (s *BuilderScreen) firstEmptySlot() int {
	for i, id := range s.game.Slots() {
		if id < 0 {
			return i
		}
	}
	return 0
}

func (s *BuilderScreen) finish() tea.Cmd {
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
		Score:       s.game.CorrectCount(),
		Total:       s.game.Total(),
		ScoreLabel:  "layers right",
		Duration:    time.Since(s.startedAt),
		Result:      res,
	})
	return func() tea.Msg { return router.PushScreenMsg{Screen: sum} }
}

func (s *BuilderScreen) appendPlayEvent(completed bool) {
	if s.eventRepo == nil {
		return
	}
	_ = s.eventRepo.AppendPlay(context.Background(), store.PlayEventData{
		SessionID:    s.sessionID,
		Volcano:      s.volcanoName,
		GameType:     string(s.def.Type),
		GameTitle:    s.def.Title,
		Score:        s.game.CorrectCount(),
		Total:        s.game.Total(),
		Completed:    completed,
		DurationSecs: int(time.Since(s.startedAt).Seconds()),
	})
}

func (s *BuilderScreen) View(width, height int) string {
	if s.confirmingQuit {
		return components.RenderQuitConfirm(width)
	}
	if s.finished {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Volcano built!")
	}

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Volcano: %s", s.volcanoName))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Stacked %d/%d", s.game.PlacedCount(), s.game.Total()))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width-4)))
	b.WriteString("\n\n")

	stack := s.renderStack()
	tray := s.renderTray()
	columns := lipgloss.JoinHorizontal(lipgloss.Top, stack, "      ", tray)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, columns))
	b.WriteString("\n\n")

	if s.heldLayer >= 0 {
		name := ""
		desc := ""
		if s.heldLayer < len(s.def.Layers) {
			name = s.def.Layers[s.heldLayer].Name
			desc = s.def.Layers[s.heldLayer].Description
		}
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(fmt.Sprintf("Holding: %s", name)))
		if desc != "" {
			b.WriteString("\n")
			wrapped := lipgloss.NewStyle().
				Width(min(width-8, 70)).
				Foreground(theme.TextDim).
				Align(lipgloss.Center).
				Render(desc)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, wrapped))
		}
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Stack the layers from the magma chamber up"))
	}

	return b.String()
}

// renderStack renders the slot column top-down, slot widths shrinking
// toward the summit so the stack reads as a cross-section.
func (s *BuilderScreen) renderStack() string {
	total := s.game.Total()

	var rows []string
	for slot := total - 1; slot >= 0; slot-- {
		w := 38 - slot*3
		if w < 20 {
			w = 20
		}

		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Width(w).
			Align(lipgloss.Center)

		label := "·"
		if p, ok := s.game.PieceAt(slot); ok {
			label = p.Label
			if p.Home == slot {
				style = style.Foreground(theme.Success)
			} else {
				style = style.Foreground(theme.Text)
			}
		} else {
			style = style.Foreground(theme.TextDim)
		}

		if s.heldLayer >= 0 && slot == s.slotCursor {
			style = style.BorderForeground(theme.Primary).Bold(true)
		}

		rows = append(rows, style.Render(label))
	}

	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

// renderTray renders the unplaced layers as a vertical list.
func (s *BuilderScreen) renderTray() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render("LAYERS"))
	b.WriteString("\n\n")

	tray := s.game.Tray()
	if len(tray) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("(empty)"))
	}
	for i, p := range tray {
		switch {
		case p.ID == s.heldLayer:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
				Render("◈ " + p.Label))
		case s.heldLayer < 0 && i == s.trayCursor:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
				Render("▸ " + p.Label))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).
				Render("  " + p.Label))
		}
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(22).Render(b.String())
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
