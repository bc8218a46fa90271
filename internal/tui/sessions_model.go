package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/skipsmart/internal/budget"
	"github.com/balkashynov/skipsmart/internal/models"
)

// MarkFunc persists a status change and returns the updated session
type MarkFunc func(id uint, status models.Status) (*models.ClassSession, error)

// SessionsModel is the interactive session list of one semester
type SessionsModel struct {
	width  int
	height int

	title    string
	sessions []models.ClassSession
	visible  []int // indexes into sessions that pass the filters
	selected int   // index into visible

	// status hides rows of other statuses; the budget panel still sees every session
	status models.Status

	// Pagination
	currentPage     int
	sessionsPerPage int

	filter    textinput.Model
	filtering bool

	keys keyMap
	help help.Model

	mark MarkFunc
	now  func() time.Time

	notice string
	err    error
}

// markedMsg reports the result of a MarkFunc call
type markedMsg struct {
	index   int
	session *models.ClassSession
	err     error
}

// NewSessionsModel creates the session list, selecting the next class due
func NewSessionsModel(title string, sessions []models.ClassSession, mark MarkFunc, now func() time.Time) SessionsModel {
	filter := textinput.New()
	filter.Prompt = "Filter: "
	filter.Placeholder = "subject name or code"
	filter.CharLimit = 64

	m := SessionsModel{
		title:    title,
		sessions: sessions,
		filter:   filter,
		keys:     defaultKeyMap(),
		help:     help.New(),
		mark:     mark,
		now:      now,
	}
	m.applyFilter()
	return m.selectNext()
}

// WithStatus limits the rows shown to one status, "" shows all
func (m SessionsModel) WithStatus(status models.Status) SessionsModel {
	m.status = status
	m.applyFilter()
	return m.selectNext()
}

// Init initializes the model
func (m SessionsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m SessionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// header(2) + column headers(2) + pagination(1) + help(2) + borders(4) + margins(2)
		m.sessionsPerPage = max(m.height-13, 3)
		m.help.Width = msg.Width
		return m.syncPage(), nil

	case markedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.notice = ""
			return m, nil
		}
		m.err = nil
		m.sessions[msg.index].Status = msg.session.Status
		m.notice = fmt.Sprintf("Session #%d marked %s", msg.session.ID, strings.ToLower(string(msg.session.Status)))
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.handleFilterKeys(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			return m.moveSelection(-1), nil
		case key.Matches(msg, m.keys.Down):
			return m.moveSelection(1), nil
		case key.Matches(msg, m.keys.PrevPage):
			return m.movePage(-1), nil
		case key.Matches(msg, m.keys.NextPage):
			return m.movePage(1), nil
		case key.Matches(msg, m.keys.Today):
			return m.selectNext(), nil
		case key.Matches(msg, m.keys.Filter):
			m.filtering = true
			return m, m.filter.Focus()
		case key.Matches(msg, m.keys.Attend):
			return m.markSelected(models.StatusAttended)
		case key.Matches(msg, m.keys.Skip):
			return m.markSelected(models.StatusSkipped)
		case key.Matches(msg, m.keys.Cancel):
			return m.markSelected(models.StatusCancelled)
		case key.Matches(msg, m.keys.Reset):
			return m.markSelected(models.StatusPending)
		}
	}

	return m, nil
}

// handleFilterKeys handles key input while the filter has focus
func (m SessionsModel) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		return m.selectNext(), nil

	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m.selectNext(), cmd
}

// applyFilter recomputes the visible sessions from the status and filter text
func (m *SessionsModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))

	m.visible = m.visible[:0]
	for i, s := range m.sessions {
		if m.status != "" && s.Status != m.status {
			continue
		}
		if query == "" || strings.Contains(strings.ToLower(s.Subject.DisplayName()), query) {
			m.visible = append(m.visible, i)
		}
	}
	m.selected = 0
	m.currentPage = 0
}

// current returns the index into sessions of the selected row
func (m SessionsModel) current() (int, bool) {
	if m.selected < 0 || m.selected >= len(m.visible) {
		return 0, false
	}
	return m.visible[m.selected], true
}

// selectNext selects the first visible session that has not ended yet
func (m SessionsModel) selectNext() SessionsModel {
	now := m.now()
	m.selected = max(len(m.visible)-1, 0)
	for i, idx := range m.visible {
		if !m.sessions[idx].EndTime.Before(now) {
			m.selected = i
			break
		}
	}
	return m.syncPage()
}

// moveSelection moves the selection by delta rows, following it across pages
func (m SessionsModel) moveSelection(delta int) SessionsModel {
	next := m.selected + delta
	if next < 0 || next >= len(m.visible) {
		return m
	}
	m.selected = next
	return m.syncPage()
}

// movePage changes page, keeping the selection within it
func (m SessionsModel) movePage(delta int) SessionsModel {
	per := m.perPage()
	next := m.currentPage + delta
	if next < 0 || next >= m.pageCount() {
		return m
	}
	m.currentPage = next
	m.selected = min(next*per, len(m.visible)-1)
	return m
}

// syncPage moves to the page holding the selection
func (m SessionsModel) syncPage() SessionsModel {
	m.currentPage = m.selected / m.perPage()
	return m
}

func (m SessionsModel) perPage() int {
	if m.sessionsPerPage <= 0 {
		return max(len(m.visible), 1)
	}
	return m.sessionsPerPage
}

func (m SessionsModel) pageCount() int {
	per := m.perPage()
	return (len(m.visible) + per - 1) / per
}

// markSelected persists a new status for the selected session
func (m SessionsModel) markSelected(status models.Status) (tea.Model, tea.Cmd) {
	idx, ok := m.current()
	if !ok || m.mark == nil {
		return m, nil
	}

	id := m.sessions[idx].ID
	mark := m.mark
	return m, func() tea.Msg {
		session, err := mark(id, status)
		return markedMsg{index: idx, session: session, err: err}
	}
}

// selectedReport computes the budget of the selected session's subject
func (m SessionsModel) selectedReport() (models.Subject, budget.Report, bool) {
	idx, ok := m.current()
	if !ok {
		return models.Subject{}, budget.Report{}, false
	}

	subject := m.sessions[idx].Subject
	var sessions []models.ClassSession
	for _, s := range m.sessions {
		if s.SubjectID == m.sessions[idx].SubjectID {
			sessions = append(sessions, s)
		}
	}
	return subject, budget.Calculate(sessions, subject.TargetPercentage, m.now()), true
}

// View renders the TUI
func (m SessionsModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Calculate layout
	leftWidth := m.width * 60 / 100
	rightWidth := m.width - leftWidth - 1

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderSessionTable(leftWidth),
		" ",
		m.renderBudgetPanel(rightWidth),
	)

	var bottom string
	if m.filtering {
		bottom = m.renderFilterBar()
	} else {
		bottom = m.renderHelpBar()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		content,
		m.renderStatusLine(),
		bottom,
	)
}

// renderSessionTable renders the left panel with the session table
func (m SessionsModel) renderSessionTable(width int) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))

	b.WriteString(headerStyle.Render("📅 " + m.title))
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true)
		b.WriteString(emptyStyle.Render("No sessions found"))
		return m.panelStyle(width).Render(b.String())
	}

	// Column widths inside the border
	availableWidth := width - 4
	idWidth := 6
	dateWidth := 16
	timeWidth := 11
	statusWidth := 11
	subjectWidth := max(availableWidth-idWidth-dateWidth-timeWidth-statusWidth-4, 12)

	columnHeaderStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright)).
		Padding(0, 1)

	headers := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s",
		idWidth, "ID",
		dateWidth, "DATE",
		timeWidth, "TIME",
		subjectWidth, "SUBJECT",
		statusWidth, "STATUS")
	b.WriteString(columnHeaderStyle.Render(headers))
	b.WriteString("\n\n")

	now := m.now()
	per := m.perPage()
	start := m.currentPage * per
	end := min(start+per, len(m.visible))

	for row := start; row < end; row++ {
		s := m.sessions[m.visible[row]]

		subject := truncate(s.Subject.DisplayName(), subjectWidth)
		statusText := strings.ToLower(string(s.Status))
		statusColor := StatusColor(s.Status)
		if s.Status == models.StatusPending && s.EndTime.Before(now) {
			statusText = "unmarked"
			statusColor = ColorWarning
		}
		status := lipgloss.NewStyle().Foreground(lipgloss.Color(statusColor)).Render(fmt.Sprintf("%-*s", statusWidth, statusText))

		rowContent := fmt.Sprintf("%-*s %-*s %-*s %-*s %s",
			idWidth, fmt.Sprintf("#%d", s.ID),
			dateWidth, s.Date.Format("Mon 02/01/2006"),
			timeWidth, s.StartTime.Format("15:04")+"-"+s.EndTime.Format("15:04"),
			subjectWidth, subject,
			status)

		if row == m.selected {
			selectedStyle := lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorAccentMain)).
				Bold(true).
				Padding(0, 1)
			b.WriteString(selectedStyle.Render(rowContent))
		} else {
			b.WriteString(" " + rowContent)
		}
		b.WriteString("\n")
	}

	if pages := m.pageCount(); pages > 1 {
		pageInfo := fmt.Sprintf("Page %d/%d (%d sessions)", m.currentPage+1, pages, len(m.visible))
		pageStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHelpText)).
			Align(lipgloss.Center).
			Width(width - 2).
			MarginTop(1)
		b.WriteString(pageStyle.Render(pageInfo))
	}

	return m.panelStyle(width).Render(b.String())
}

// renderBudgetPanel renders the right panel with the selected subject's budget
func (m SessionsModel) renderBudgetPanel(width int) string {
	var b strings.Builder

	subject, report, ok := m.selectedReport()
	if !ok {
		logoStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccentMain)).
			Bold(true).
			Align(lipgloss.Center).
			Width(width)
		b.WriteString(logoStyle.Render("skipsmart"))
		return m.panelStyle(width).Render(b.String())
	}

	titleColor := ColorPrimaryText
	if subject.Color != "" {
		titleColor = subject.Color
	}
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(titleColor)).
		Width(width)
	b.WriteString(titleStyle.Render("📚 " + subject.DisplayName()))
	b.WriteString("\n\n")

	label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	value := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Bold(true)

	current := "-"
	if report.CurrentPercentage != nil {
		current = fmt.Sprintf("%.1f%%", *report.CurrentPercentage)
	}

	standingColor := ColorDisabledText
	switch report.Standing() {
	case budget.StandingSafe:
		standingColor = ColorSuccess
	case budget.StandingBehind:
		standingColor = ColorError
	}

	b.WriteString(label.Render("Attendance: ") + value.Render(current))
	b.WriteString(label.Render(fmt.Sprintf(" / target %.0f%%", report.TargetPercentage)))
	b.WriteString("\n")
	b.WriteString(label.Render("Standing:   "))
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(standingColor)).Bold(true).Render(string(report.Standing())))
	b.WriteString("\n\n")

	b.WriteString(label.Render(fmt.Sprintf("Held %d · attended %d · skipped %d", report.Held, report.Attended, report.Skipped)))
	b.WriteString("\n")
	b.WriteString(label.Render(fmt.Sprintf("Remaining %d", report.Future)))
	if report.Cancelled > 0 {
		b.WriteString(label.Render(fmt.Sprintf(" · cancelled %d", report.Cancelled)))
	}
	b.WriteString("\n\n")

	b.WriteString(label.Render("Can still skip: "))
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Bold(true).Render(fmt.Sprintf("%d", report.MaxSkippable)))
	b.WriteString("\n")
	if report.RequiredAttendances > 0 {
		b.WriteString(label.Render("Must attend:    "))
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Bold(true).Render(fmt.Sprintf("%d", report.RequiredAttendances)))
		b.WriteString("\n")
	}
	if report.Overdue > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Italic(true).
			Render(fmt.Sprintf("%d past class(es) still unmarked", report.Overdue)))
	}

	return m.panelStyle(width).Render(b.String())
}

func (m SessionsModel) panelStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width)
}

// renderStatusLine shows the result of the last mark
func (m SessionsModel) renderStatusLine() string {
	if m.err != nil {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("❌ " + m.err.Error())
	}
	if m.notice != "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Render("✅ " + m.notice)
	}
	return ""
}

// renderFilterBar renders the filter input while it has focus
func (m SessionsModel) renderFilterBar() string {
	filterStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Background(lipgloss.Color(ColorBorder)).
		Padding(0, 1).
		Width(m.width - 2)
	return filterStyle.Render(m.filter.View())
}

// renderHelpBar renders the hotkey hints
func (m SessionsModel) renderHelpBar() string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Width(m.width).
		Render(m.help.View(m.keys))
}

// truncate shortens s to fit width, marking the cut with "..."
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
