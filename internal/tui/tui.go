package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/skipsmart/internal/models"
)

// RunSessionsTUI starts the interactive session list
// with rows limited to status ("" for all)
func RunSessionsTUI(title string, sessions []models.ClassSession, status models.Status, mark MarkFunc, now func() time.Time) error {
	model := NewSessionsModel(title, sessions, mark, now).WithStatus(status)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	// Report a failed mark once the TUI closes
	if m, ok := finalModel.(SessionsModel); ok && m.err != nil {
		fmt.Printf("❌ Error: %v\n", m.err)
	}
	return nil
}
