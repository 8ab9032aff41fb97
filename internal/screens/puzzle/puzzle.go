package puzzle

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

// PuzzleScreen drives one tile-puzzle game. Tiles are picked from a tray
// and dropped onto a grid; dropping onto an occupied cell sends the old
// tile back to the tray. The run completes when the tray is empty, however
// the tiles are arranged.
type PuzzleScreen struct {
	volcanoName string
	def         catalog.GameDef
	prog        *progress.Store
	eventRepo   store.EventRepo

	game      *puzzlegame.Game
	rows      int
	cols      int
	sessionID string
	startedAt time.Time

	trayCursor int
	gridCursor int
	heldPiece  int // piece ID in hand, -1 when none

	confirmingQuit bool
	finished       bool
}

var _ screen.Screen = (*PuzzleScreen)(nil)
var _ screen.KeyHintProvider = (*PuzzleScreen)(nil)
var _ screen.EscInterceptor = (*PuzzleScreen)(nil)

// New creates a PuzzleScreen for the given game definition.
func New(volcanoName string, def catalog.GameDef, prog *progress.Store, eventRepo store.EventRepo) *PuzzleScreen {
	rows, cols := 0, 0
	var labels []string
	if def.Puzzle != nil {
		rows = def.Puzzle.Rows
		cols = def.Puzzle.Cols
		labels = def.Puzzle.Tiles
	}
	g := puzzlegame.New(labels)
	g.Start()

	return &PuzzleScreen{
		volcanoName: volcanoName,
		def:         def,
		prog:        prog,
		eventRepo:   eventRepo,
		game:        g,
		rows:        rows,
		cols:        cols,
		sessionID:   uuid.New().String(),
		startedAt:   time.Now(),
		heldPiece:   -1,
	}
}

func (s *PuzzleScreen) Init() tea.Cmd {
	if s.game.Status() == puzzlegame.StatusCompleted {
		return s.finish()
	}
	return nil
}

func (s *PuzzleScreen) Title() string {
	return s.def.Title
}

func (s *PuzzleScreen) KeyHints() []layout.KeyHint {
	if s.confirmingQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Keep playing"},
		}
	}
	if s.heldPiece >= 0 {
		return []layout.KeyHint{
			{Key: "←↑↓→", Description: "Cell"},
			{Key: "Enter", Description: "Place"},
			{Key: "Esc", Description: "Put back"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Tile"},
		{Key: "Enter", Description: "Pick up"},
		{Key: "Esc", Description: "Leave"},
	}
}

func (s *PuzzleScreen) InterceptEsc() bool {
	return !s.finished
}

func (s *PuzzleScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	return s, s.handleKey(kmsg)
}

func (s *PuzzleScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
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

	if s.heldPiece >= 0 {
		return s.handleGridKey(msg)
	}
	return s.handleTrayKey(msg)
}

// handleTrayKey navigates the tile tray.
func (s *PuzzleScreen) handleTrayKey(msg tea.KeyMsg) tea.Cmd {
	tray := s.game.Tray()
	switch msg.String() {
	case "esc":
		s.confirmingQuit = true
	case "left", "h", "up", "k":
		if s.trayCursor > 0 {
			s.trayCursor--
		}
	case "right", "l", "down", "j":
		if s.trayCursor < len(tray)-1 {
			s.trayCursor++
		}
	case "enter", "space":
		if s.trayCursor < len(tray) {
			s.heldPiece = tray[s.trayCursor].ID
			s.gridCursor = s.firstEmptySlot()
		}
	}
	return nil
}

// handleGridKey navigates the grid with a tile in hand.
func (s *PuzzleScreen) handleGridKey(msg tea.KeyMsg) tea.Cmd {
	total := s.game.Total()
	switch msg.String() {
	case "esc":
		s.heldPiece = -1
	case "left", "h":
		if s.gridCursor%s.cols > 0 {
			s.gridCursor--
		}
	case "right", "l":
		if s.gridCursor%s.cols < s.cols-1 && s.gridCursor+1 < total {
			s.gridCursor++
		}
	case "up", "k":
		if s.gridCursor-s.cols >= 0 {
			s.gridCursor -= s.cols
		}
	case "down", "j":
		if s.gridCursor+s.cols < total {
			s.gridCursor += s.cols
		}
	case "enter", "space":
		s.game.PlacePiece(s.heldPiece, s.gridCursor)
		s.heldPiece = -1
		if tray := s.game.Tray(); s.trayCursor >= len(tray) && len(tray) > 0 {
			s.trayCursor = len(tray) - 1
		}
		if s.game.Status() == puzzlegame.StatusCompleted {
			return s.finish()
		}
	}
	return nil
}

func (s *PuzzleScreen) firstEmptySlot() int {
	for i, id := range s.game.Slots() {
		if id < 0 {
			return i
		}
	}
	return 0
}

func (s *PuzzleScreen) finish() tea.Cmd {
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
		ScoreLabel:  "in place",
		Duration:    time.Since(s.startedAt),
		Result:      res,
	})
	return func() tea.Msg { return router.PushScreenMsg{Screen: sum} }
}

func (s *PuzzleScreen) appendPlayEvent(completed bool) {
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

func (s *PuzzleScreen) View(width, height int) string {
	if s.confirmingQuit {
		return components.RenderQuitConfirm(width)
	}
	if s.finished {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Puzzle assembled!")
	}

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Volcano: %s", s.volcanoName))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Placed %d/%d", s.game.PlacedCount(), s.game.Total()))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width-4)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderGrid()))
	b.WriteString("\n\n")
	b.WriteString(s.renderTray(width))
	b.WriteString("\n\n")

	if s.heldPiece >= 0 {
		held := s.game.Tray()
		label := ""
		for _, p := range held {
			if p.ID == s.heldPiece {
				label = p.Label
				break
			}
		}
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(fmt.Sprintf("Holding: %s", label)))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Pick a tile, then drop it on the grid"))
	}

	return b.String()
}

// renderGrid renders the slot grid. Tiles sitting in their own slot get
// the success tint as a gentle hint.
func (s *PuzzleScreen) renderGrid() string {
	cellW := s.cellWidth()

	var rows []string
	for r := 0; r < s.rows; r++ {
		var cells []string
		for c := 0; c < s.cols; c++ {
			slot := r*s.cols + c
			cells = append(cells, s.renderCell(slot, cellW))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (s *PuzzleScreen) renderCell(slot, cellW int) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cellW).
		Align(lipgloss.Center)

	label := "·"
	if p, ok := s.game.PieceAt(slot); ok {
		label = truncate(p.Label, cellW)
		if p.Home == slot {
			style = style.Foreground(theme.Success)
		} else {
			style = style.Foreground(theme.Text)
		}
	} else {
		style = style.Foreground(theme.TextDim)
	}

	if s.heldPiece >= 0 && slot == s.gridCursor {
		style = style.BorderForeground(theme.Primary).Bold(true)
	}

	return style.Render(label)
}

// renderTray renders the unplaced tiles as a wrapped strip.
func (s *PuzzleScreen) renderTray(width int) string {
	tray := s.game.Tray()

	header := lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render("TRAY")
	if len(tray) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, header+"  (empty)")
	}

	var parts []string
	for i, p := range tray {
		label := " " + p.Label + " "
		switch {
		case p.ID == s.heldPiece:
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("◈"+label))
		case s.heldPiece < 0 && i == s.trayCursor:
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸"+label))
		default:
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.Text).Render(" "+label))
		}
	}

	strip := strings.Join(parts, " ")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(min(width-8, lipgloss.Width(strip))).Render(header+"\n"+strip))
}

// cellWidth sizes cells to the longest tile label, within bounds.
func (s *PuzzleScreen) cellWidth() int {
	w := 8
	for _, p := range s.game.Tray() {
		if len(p.Label)+2 > w {
			w = len(p.Label) + 2
		}
	}
	for i := range s.game.Slots() {
		if p, ok := s.game.PieceAt(i); ok && len(p.Label)+2 > w {
			w = len(p.Label) + 2
		}
	}
	if w > 16 {
		w = 16
	}
	return w
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return s[:max-1] + "…"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
