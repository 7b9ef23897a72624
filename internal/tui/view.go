package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/stitchlog/internal/constants"
	"github.com/julianstephens/stitchlog/internal/earnings"
	"github.com/julianstephens/stitchlog/internal/tracker"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateSetup, StateNewSession, StateAddEntry, StateConfirmArchive:
		content = m.form.View()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	case StateTrash:
		content = docStyle.Render(m.viewTrash())
	case StateGoal:
		content = docStyle.Render(m.viewGoal())
	default:
		content = docStyle.Render(m.viewToday())
	}

	sections := []string{m.viewTabs(), content}
	if m.status != "" {
		sections = append(sections, statusStyle.Render(m.status))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Trash", "Goal"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	user, ok := m.mgr.ActiveUser()
	if !ok {
		return "no active profile"
	}
	record, ok := m.mgr.ActiveRecord()
	if !ok {
		return "no active day"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s — %s", user.Name, record.Date)))
	b.WriteString("\n\n")

	if len(record.Sessions) == 0 {
		b.WriteString(subtleStyle.Render("No sessions yet. Press n to start one."))
		return b.String()
	}

	total := 0.0
	for i, session := range record.Sessions {
		cursor := "  "
		if i == m.sessionCursor {
			cursor = "> "
		}
		pieces := earnings.TotalPieces(session)
		amount := earnings.SessionEarnings(session)
		total += amount

		line := fmt.Sprintf("%s%-20s %4d pcs", cursor, session.ClothType, pieces)
		if session.Rate > 0 {
			line += fmt.Sprintf("   ₹%.2f", amount)
		}
		b.WriteString(line + "\n")

		if i == m.sessionCursor {
			for j, entry := range session.Entries {
				if j == 5 {
					b.WriteString(subtleStyle.Render(fmt.Sprintf("     … %d more\n", len(session.Entries)-j)))
					break
				}
				for _, category := range sortedCategories(entry.Counts) {
					b.WriteString(subtleStyle.Render(fmt.Sprintf("     %s × %d\n", category, entry.Counts[category])))
				}
			}
		}
	}

	if total > 0 {
		b.WriteString(fmt.Sprintf("\ntoday: ₹%.2f", total))
	}
	return b.String()
}

func sortedCategories(counts map[string]int) []string {
	categories := make([]string, 0, len(counts))
	for _, c := range constants.DefaultCategories {
		if _, ok := counts[c]; ok {
			categories = append(categories, c)
		}
	}
	for c := range counts {
		known := false
		for _, seen := range categories {
			if seen == c {
				known = true
				break
			}
		}
		if !known {
			categories = append(categories, c)
		}
	}
	return categories
}

func (m Model) viewTrash() string {
	user, ok := m.mgr.ActiveUser()
	if !ok {
		return "no active profile"
	}

	items := tracker.TrashItems(user)
	if len(items) == 0 {
		return subtleStyle.Render("Trash is empty.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Trash"))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(fmt.Sprintf("Sessions are deleted forever after %d days.", int(constants.TrashRetention.Hours()/24))))
	b.WriteString("\n\n")

	for i, item := range items {
		cursor := "  "
		if i == m.trashCursor {
			cursor = "> "
		}
		left := ""
		if item.Session.DeletedAt != nil {
			if deletedAt, err := time.Parse(time.RFC3339, *item.Session.DeletedAt); err == nil {
				days := int(time.Until(deletedAt.Add(constants.TrashRetention)).Hours() / 24)
				if days < 0 {
					days = 0
				}
				left = fmt.Sprintf("%dd left", days)
			}
		}
		b.WriteString(fmt.Sprintf("%s%s  %-20s %4d pcs  %s\n",
			cursor, item.Date, item.Session.ClothType, earnings.TotalPieces(item.Session), subtleStyle.Render(left)))
	}
	return b.String()
}

func (m Model) viewGoal() string {
	user, ok := m.mgr.ActiveUser()
	if !ok {
		return "no active profile"
	}

	progress := earnings.GoalProgress(user, tracker.VisibleRecords(user.DailyRecords))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Earnings"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Earned: ₹%.2f\n", progress.Earnings))

	if user.EarningsGoal <= 0 {
		b.WriteString(subtleStyle.Render("No goal set. Use: stitchlog goal set <amount>"))
		return b.String()
	}

	const barWidth = 30
	filled := int(progress.Percent / 100 * barWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	b.WriteString(fmt.Sprintf("Goal:   ₹%.2f\n\n", user.EarningsGoal))
	b.WriteString(fmt.Sprintf("%s %.0f%%\n", bar, progress.Percent))
	return b.String()
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete this session forever? This cannot be undone."),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
