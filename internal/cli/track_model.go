package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Noahwuhrmann/Zeiterfassung/internal/billing"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/cli/formatter"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/domain"
	"github.com/Noahwuhrmann/Zeiterfassung/internal/repository"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// trackModel is the bubbletea model behind "zeit track". The engine holds no
// timer state: every second the model re-reads the active session and
// recomputes the elapsed display from the clock.
type trackModel struct {
	app  *App
	user *domain.User

	active       *domain.WorkSession
	monthMinutes int
	notice       string
	err          error

	keys     trackKeyMap
	help     help.Model
	quitting bool
}

type trackKeyMap struct {
	Start key.Binding
	Stop  key.Binding
	Quit  key.Binding
}

func (k trackKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Stop, k.Quit}
}

func (k trackKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Start, k.Stop, k.Quit}}
}

func defaultTrackKeyMap() trackKeyMap {
	return trackKeyMap{
		Start: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Stop:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func newTrackModel(app *App, user *domain.User) trackModel {
	return trackModel{
		app:  app,
		user: user,
		keys: defaultTrackKeyMap(),
		help: help.New(),
	}
}

// ── messages ────────────────────────────────────────────────────────────────

type tickMsg time.Time

type refreshMsg struct {
	active       *domain.WorkSession
	monthMinutes int
	err          error
}

type actionMsg struct {
	notice string
	err    error
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m trackModel) refresh() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		active, err := m.app.Reports.ActiveSession(ctx, m.user.ID)
		if err != nil {
			return refreshMsg{err: err}
		}
		minutes, err := m.app.Reports.CurrentMonthMinutes(ctx, m.user.ID)
		if err != nil {
			return refreshMsg{err: err}
		}
		return refreshMsg{active: active, monthMinutes: minutes}
	}
}

func (m trackModel) startSession() tea.Cmd {
	return func() tea.Msg {
		_, err := m.app.Tracker.Start(context.Background(), m.user.ID)
		if err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return actionMsg{notice: "A session is already running."}
			}
			return actionMsg{err: err}
		}
		return actionMsg{notice: "Session started."}
	}
}

func (m trackModel) stopSession() tea.Cmd {
	return func() tea.Msg {
		session, err := m.app.Tracker.Stop(context.Background(), m.user.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return actionMsg{notice: "No session is running."}
			}
			return actionMsg{err: err}
		}
		elapsed := billing.ElapsedSeconds(session.StartedAt, *session.EndedAt)
		return actionMsg{notice: "Stopped after " + billing.FormatHMS(elapsed) + "."}
	}
}

// ── bubbletea interface ─────────────────────────────────────────────────────

func (m trackModel) Init() tea.Cmd {
	return tea.Batch(m.refresh(), tick())
}

func (m trackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Start):
			return m, m.startSession()
		case key.Matches(msg, m.keys.Stop):
			return m, m.stopSession()
		}

	case tickMsg:
		return m, tea.Batch(m.refresh(), tick())

	case refreshMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.active = msg.active
		m.monthMinutes = msg.monthMinutes

	case actionMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.notice = msg.notice
		return m, m.refresh()
	}

	return m, nil
}

func (m trackModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("Zeiterfassung"))
	b.WriteString("\n\n")
	b.WriteString("Hello " + formatter.StyleBold.Render(m.user.Name) + "!\n")

	if m.active != nil {
		elapsed := billing.ElapsedSeconds(m.active.StartedAt, m.app.Clock.Now())
		b.WriteString("Running since  " + formatter.HumanTimestamp(m.active.StartedAt, m.app.Loc) + "\n")
		b.WriteString("Elapsed        " + formatter.StyleGreen.Render(billing.FormatHMS(elapsed)))
	} else {
		b.WriteString(formatter.StyleDim.Render("No session running."))
	}
	b.WriteString("\n")
	b.WriteString("Current month  " + formatter.StyleBlue.Render(formatter.MinutesHMS(m.monthMinutes)))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	} else if m.notice != "" {
		b.WriteString(formatter.StyleYellow.Render(m.notice) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
