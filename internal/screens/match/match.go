package match

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
	"github.com/tectonhq/tecton/internal/router"
	"github.com/tectonhq/tecton/internal/screen"
	summaryscreen "github.com/tectonhq/tecton/internal/screens/summary"
	"github.com/tectonhq/tecton/internal/store"
	"github.com/tectonhq/tecton/internal/ui/components"
	"github.com/tectonhq/tecton/internal/ui/layout"
	"github.com/tectonhq/tecton/internal/ui/theme"
	"github.com/tectonhq/tecton/internal/wordmatch"
)

// MatchScreen drives one word-match game. The touch app's drag-and-drop
// becomes a two-step pick: choose a term, then choose the definition to
// drop it on. A wrong drop sends the term back to the pool.
type MatchScreen struct {
	volcanoName string
	def         catalog.GameDef
	prog        *progress.Store
	eventRepo   store.EventRepo

	game      *wordmatch.Game
	sessionID string
	startedAt time.Time

	itemCursor int
	zoneCursor int
	heldItem   int // item ID in hand, -1 when none
	lastMiss   bool

	confirmingQuit bool
	finished       bool
}

var _ screen.Screen = (*MatchScreen)(nil)
var _ screen.KeyHintProvider = (*MatchScreen)(nil)
var _ screen.EscInterceptor = (*MatchScreen)(nil)

// New creates a MatchScreen for the given game definition.
func New(volcanoName string, def catalog.GameDef, prog *progress.Store, eventRepo store.EventRepo) *MatchScreen {
	g := wordmatch.New(def.Pairs)
	g.Start()

	return &MatchScreen{
		volcanoName: volcanoName,
		def:         def,
		prog:        prog,
		eventRepo:   eventRepo,
		game:        g,
		sessionID:   uuid.New().String(),
		startedAt:   time.Now(),
		heldItem:    -1,
	}
}

func (s *MatchScreen) Init() tea.Cmd {
	if s.game.Status() == wordmatch.StatusCompleted {
		return s.finish()
	}
	return nil
}

func (s *MatchScreen) Title() string {
	return s.def.Title
}

func (s *MatchScreen) KeyHints() []layout.KeyHint {
	if s.confirmingQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Keep playing"},
		}
	}
	if s.heldItem >= 0 {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Definition"},
			{Key: "Enter", Description: "Drop"},
			{Key: "Esc", Description: "Put back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Term"},
		{Key: "Enter", Description: "Pick up"},
		{Key: "Esc", Description: "Leave"},
	}
}

func (s *MatchScreen) InterceptEsc() bool {
	return !s.finished
}

func (s *MatchScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	return s, s.handleKey(kmsg)
}

func (s *MatchScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
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

	if s.heldItem >= 0 {
		return s.handleDropKey(msg)
	}
	return s.handlePickKey(msg)
}

// handlePickKey navigates the term pool.
func (s *MatchScreen) handlePickKey(msg tea.KeyMsg) tea.Cmd {
	items := s.game.Items()
	switch msg.String() {
	case "esc":
		s.confirmingQuit = true
	case "up", "k":
		if s.itemCursor > 0 {
			s.itemCursor--
		}
	case "down", "j":
		if s.itemCursor < len(items)-1 {
			s.itemCursor++
		}
	case "enter", "space":
		if s.itemCursor < len(items) {
			s.heldItem = items[s.itemCursor].ID
			s.zoneCursor = s.firstUnmatchedZone()
			s.lastMiss = false
		}
	}
	return nil
}

// handleDropKey navigates the definition zones with a term in hand.
func (s *MatchScreen) handleDropKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.heldItem = -1
		s.lastMiss = false
	case "up", "k":
		s.moveZoneCursor(-1)
	case "down", "j":
		s.moveZoneCursor(1)
	case "enter", "space":
		zones := s.game.Zones()
		if s.zoneCursor >= len(zones) {
			return nil
		}
		ok := s.game.AttemptMatch(s.heldItem, zones[s.zoneCursor].ID)
		s.heldItem = -1
		s.lastMiss = !ok
		if items := s.game.Items(); s.itemCursor >= len(items) && len(items) > 0 {
			s.itemCursor = len(items) - 1
		}
		if ok && s.game.Status() == wordmatch.StatusCompleted {
			return s.finish()
		}
	}
	return nil
}

func (s *MatchScreen) firstUnmatchedZone() int {
	for i, z := range s.game.Zones() {
		if !z.Matched {
			return i
		}
	}
	return 0
}

// moveZoneCursor steps over matched zones, stopping at the list edge.
func (s *MatchScreen) moveZoneCursor(delta int) {
	zones := s.game.Zones()
	i := s.zoneCursor
	for {
		i += delta
		if i < 0 || i >= len(zones) {
			return
		}
		if !zones[i].Matched {
			s.zoneCursor = i
			return
		}
	}
}

func (s *MatchScreen) finish() tea.Cmd {
	if s.finished {
		return nil
	}
	s.finished = true

	res := s.prog.MarkGameCompleted(s.volcanoName, s.def.Type)
	s.appendPlayEvent(true)

	detail := "Perfect, no misses!"
	if m := s.game.Misses(); m == 1 {
		detail = "1 miss"
	} else if m > 1 {
		detail = fmt.Sprintf("%d misses", m)
	}

	sum := summaryscreen.New(summaryscreen.Data{
		VolcanoName: s.volcanoName,
		GameTitle:   s.def.Title,
		GameType:    s.def.Type,
		Score:       s.game.MatchedCount(),
		Total:       s.game.Total(),
		ScoreLabel:  "pairs",
		Detail:      detail,
		Duration:    time.Since(s.startedAt),
		Result:      res,
	})
	return func() tea.Msg { return router.PushScreenMsg{Screen: sum} }
}

func (s *MatchScreen) appendPlayEvent(completed bool) {
	if s.eventRepo == nil {
		return
	}
	_ = s.eventRepo.AppendPlay(context.Background(), store.PlayEventData{
		SessionID:    s.sessionID,
		Volcano:      s.volcanoName,
		GameType:     string(s.def.Type),
		GameTitle:    s.def.Title,
		Score:        s.game.MatchedCount(),
		Total:        s.game.Total(),
		Completed:    completed,
		DurationSecs: int(time.Since(s.startedAt).Seconds()),
	})
}

func (s *MatchScreen) View(width, height int) string {
	if s.confirmingQuit {
		return components.RenderQuitConfirm(width)
	}
	if s.finished {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  All pairs matched!")
	}

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Volcano: %s", s.volcanoName))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Matched %d/%d  %s %d",
			s.game.MatchedCount(),
			s.game.Total(),
			lipgloss.NewStyle().Foreground(theme.Error).Render("✗"),
			s.game.Misses(),
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width-4)))
	b.WriteString("\n\n")

	colW := (width - 12) / 2
	if colW > 44 {
		colW = 44
	}
	left := s.renderItems(colW)
	right := s.renderZones(colW)
	columns := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, columns))
	b.WriteString("\n\n")

	switch {
	case s.lastMiss:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("Not a match, the term went back to the pool"))
	case s.heldItem >= 0:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Drop the term onto its definition"))
	default:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Pick a term to match"))
	}

	return b.String()
}

// renderItems renders the unmatched term pool.
func (s *MatchScreen) renderItems(colW int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render("TERMS"))
	b.WriteString("\n\n")

	for i, it := range s.game.Items() {
		switch {
		case it.ID == s.heldItem:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
				Render("◈ " + it.Term))
		case s.heldItem < 0 && i == s.itemCursor:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
				Render("▸ " + it.Term))
		default:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).
				Render("  " + it.Term))
		}
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(colW).Render(b.String())
}

// renderZones renders the definition targets, wrapped to the column.
func (s *MatchScreen) renderZones(colW int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render("DEFINITIONS"))
	b.WriteString("\n\n")

	for i, z := range s.game.Zones() {
		var block string
		switch {
		case z.Matched:
			block = lipgloss.NewStyle().Foreground(theme.Success).Render("✓ "+z.Term) + "\n" +
				lipgloss.NewStyle().Foreground(theme.TextDim).Width(colW).Render("  "+z.Definition)
		case s.heldItem >= 0 && i == s.zoneCursor:
			block = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Width(colW).
				Render("▸ " + z.Definition)
		default:
			block = lipgloss.NewStyle().Foreground(theme.Text).Width(colW).
				Render("• " + z.Definition)
		}
		b.WriteString(block)
		b.WriteString("\n\n")
	}

	return lipgloss.NewStyle().Width(colW).Render(b.String())
}
