package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/timeflow/internal/client/models"
	"github.com/dmitrijs2005/timeflow/internal/client/services"
)

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
	colorDanger  = lipgloss.Color("#EF4444")
	colorSuccess = lipgloss.Color("#10B981")
	colorNotice  = lipgloss.Color("#856404")

	titleStyle       = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	activeTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E7EB")).Background(colorPrimary).Padding(0, 1).Bold(true)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	mutedStyle       = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle       = lipgloss.NewStyle().Foreground(colorDanger)
	successStyle     = lipgloss.NewStyle().Foreground(colorSuccess)
	noticeStyle      = lipgloss.NewStyle().Foreground(colorNotice).Border(lipgloss.NormalBorder()).Padding(0, 1)
	quoteStyle       = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	cellStyle        = lipgloss.NewStyle().Width(6).Align(lipgloss.Right)
	entryStyle       = lipgloss.NewStyle().PaddingLeft(2)
)

func renderTabs(names []string, active string) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if n == active {
			parts = append(parts, activeTabStyle.Render(n))
		} else {
			parts = append(parts, inactiveTabStyle.Render(n))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderEntries(entries []models.DiaryEntry) string {
	if len(entries) == 0 {
		return mutedStyle.Render("No entries yet.")
	}
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(titleStyle.Render(e.Date))
		b.WriteString(" ")
		b.WriteString(mutedStyle.Render("#" + e.ID))
		b.WriteString("\n")
		b.WriteString(entryStyle.Render(e.Content))
	}
	return b.String()
}

func renderPlans(plans models.Plans, only ...models.PlanType) string {
	types := models.PlanTypes
	if len(only) > 0 {
		types = only
	}
	var b strings.Builder
	for i, t := range types {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(titleStyle.Render(t.Label() + " plans"))
		b.WriteString("\n")
		list := plans[t]
		if len(list) == 0 {
			b.WriteString(entryStyle.Render(mutedStyle.Render("none")))
			b.WriteString("\n")
			continue
		}
		for _, p := range list {
			line := fmt.Sprintf("%s  %s", mutedStyle.Render("#"+p.ID), p.Title)
			if p.StartDate != "" || p.EndDate != "" {
				line += mutedStyle.Render(fmt.Sprintf("  (%s .. %s)", p.StartDate, p.EndDate))
			}
			b.WriteString(entryStyle.Render(line))
			b.WriteString("\n")
			if p.Description != "" {
				b.WriteString(entryStyle.Render("  " + p.Description))
				b.WriteString("\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderMonth draws a Sunday-first grid. Days with events carry '*', days
// with completed work carry '+'.
func renderMonth(m services.MonthView) string {
	header := titleStyle.Render(fmt.Sprintf("%s %d", m.Month, m.Year))

	cells := make([]string, 0, 7)
	for _, d := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		cells = append(cells, cellStyle.Render(d))
	}
	rows := []string{header, lipgloss.JoinHorizontal(lipgloss.Top, cells...)}

	cells = cells[:0]
	for i := 0; i < m.Offset; i++ {
		cells = append(cells, cellStyle.Render(""))
	}
	for _, d := range m.Days {
		mark := " "
		switch {
		case d.Events > 0 && d.Works > 0:
			mark = "#"
		case d.Events > 0:
			mark = "*"
		case d.Works > 0:
			mark = "+"
		}
		cells = append(cells, cellStyle.Render(fmt.Sprintf("%d%s", d.Day, mark)))
		if len(cells) == 7 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
			cells = cells[:0]
		}
	}
	if len(cells) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	rows = append(rows, mutedStyle.Render("* events  + completed work  # both"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderDay(d services.DayDetail) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(d.Date))
	b.WriteString("\n")
	b.WriteString("Events:\n")
	if len(d.Events) == 0 {
		b.WriteString(entryStyle.Render(mutedStyle.Render("none")))
		b.WriteString("\n")
	}
	for _, e := range d.Events {
		box := "[ ]"
		if e.Completed {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s %s", box, mutedStyle.Render("#"+e.ID), e.Title)
		if e.PlanTitle != "" {
			line += mutedStyle.Render(" -> " + e.PlanTitle)
		}
		b.WriteString(entryStyle.Render(line))
		b.WriteString("\n")
		if e.Description != "" {
			b.WriteString(entryStyle.Render("    " + e.Description))
			b.WriteString("\n")
		}
	}
	b.WriteString("Completed work:\n")
	if len(d.Works) == 0 {
		b.WriteString(entryStyle.Render(mutedStyle.Render("none")))
		b.WriteString("\n")
	}
	for _, w := range d.Works {
		b.WriteString(entryStyle.Render(fmt.Sprintf("%s %s", mutedStyle.Render("#"+w.ID), w.Content)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
