package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/habita-dev/habita/internal/engine"
	"github.com/habita-dev/habita/internal/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	bonusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	pointsStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	lockedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

func checkbox(done bool) string {
	if done {
		return doneStyle.Render("[x]")
	}
	return pendingStyle.Render("[ ]")
}

func formatPoints(points int) string {
	return pointsStyle.Render(fmt.Sprintf("%d pts", points))
}

// formatDayHeading renders a day key with its weekday name.
func formatDayHeading(date string, day time.Time) string {
	return titleStyle.Render(fmt.Sprintf("%s (%s)", date, day.Weekday()))
}

func formatActivityLine(a models.Activity) string {
	marker := "+"
	if a.Status == models.StatusPlanned {
		marker = "·"
	}
	return fmt.Sprintf("  %s %s  %s (%s, %d pts)",
		marker, a.Timestamp.Local().Format("15:04"), a.Text, a.Category, a.Points)
}

// formatNotice maps a toggle outcome to the message shown to the user.
func formatNotice(result engine.ToggleResult) string {
	switch result.Notice {
	case engine.NoticeDailyComplete:
		return bonusStyle.Render(fmt.Sprintf("🎉 All habits complete! +%d bonus points!", result.BonusChange))
	case engine.NoticeFirstOfDay:
		return doneStyle.Render(fmt.Sprintf("Great start! %s done (+%d pts)", result.Category.Label, result.Category.Points))
	case engine.NoticeCategoryDone:
		return doneStyle.Render(fmt.Sprintf("%s done (+%d pts)", result.Category.Label, result.Category.Points))
	default:
		msg := fmt.Sprintf("%s unmarked (-%d pts)", result.Category.Label, result.Category.Points)
		if result.BonusChange < 0 {
			msg += fmt.Sprintf(", daily bonus removed (%d)", result.BonusChange)
		}
		return pendingStyle.Render(msg)
	}
}
