package tui

import "github.com/balkashynov/skipsmart/internal/models"

// Color constants for the skipsmart TUI theme
const (
	// Base Colors
	ColorCardBackground = "#1B1530" // Dark purple
	ColorBorder         = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Titles, selected row
	ColorSecondaryText = "#B1B8C7" // Purple-tinted grey
	ColorDisabledText  = "#6D7383" // Cancelled sessions, empty values
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Purple theme)
	ColorAccentMain   = "#7C3AED" // Logo, active borders
	ColorAccentBright = "#A78BFA" // Headers, highlights

	// State Colors
	ColorError   = "#EF4444" // Skipped, behind target
	ColorSuccess = "#22C55E" // Attended, safe
	ColorWarning = "#F59E0B" // Overdue, unmarked
)

// StatusColor returns the color a session status is rendered in
func StatusColor(status models.Status) string {
	switch status {
	case models.StatusAttended:
		return ColorSuccess
	case models.StatusSkipped:
		return ColorError
	case models.StatusCancelled:
		return ColorDisabledText
	default:
		return ColorSecondaryText
	}
}
