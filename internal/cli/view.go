package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/matzehuels/octoscope/pkg/github"
)

const maxDescriptionWidth = 48

// renderProfile renders the profile card. Optional fields are omitted when empty.
func renderProfile(s styles, p github.UserProfile) string {
	var b strings.Builder

	b.WriteString(s.Title.Render(p.DisplayName()))
	if p.DisplayName() != p.Login {
		b.WriteString(" " + s.Dim.Render("@"+p.Login))
	}
	b.WriteString("\n")
	if p.Bio != "" {
		b.WriteString(s.Value.Render(strings.TrimSpace(p.Bio)) + "\n")
	}
	b.WriteString("\n")

	row := func(key, value string, style lipgloss.Style) {
		if value == "" {
			return
		}
		b.WriteString(s.Key.Render(key) + " " + style.Render(value) + "\n")
	}
	row("Company", p.Company, s.Value)
	row("Location", p.Location, s.Value)
	row("Blog", p.BlogURL(), s.Link)
	row("Email", p.Email, s.Value)
	row("Profile", p.HTMLURL, s.Link)

	stats := []string{
		s.Number.Render(humanize.Comma(int64(p.Followers))) + s.Dim.Render(" followers"),
		s.Number.Render(humanize.Comma(int64(p.Following))) + s.Dim.Render(" following"),
		s.Number.Render(humanize.Comma(int64(p.PublicRepos))) + s.Dim.Render(" repositories"),
	}
	b.WriteString(strings.Join(stats, s.Dim.Render(" · ")))

	return b.String()
}

// renderRepoTable renders repos in API order. cursor highlights a row; -1
// highlights nothing.
func renderRepoTable(s styles, repos []github.RepositorySummary, cursor int, now time.Time) string {
	rows := make([][]string, 0, len(repos))
	for _, r := range repos {
		lang := r.Language
		if lang == "" {
			lang = "—"
		}
		rows = append(rows, []string{
			r.Name,
			truncate(r.Description, maxDescriptionWidth),
			lang,
			humanize.Comma(int64(r.Stars)),
			humanize.Comma(int64(r.Forks)),
			formatRelativeTime(r.UpdatedAt, now),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.Border).
		Headers("Repository", "Description", "Lang", iconStar, "Forks", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Header.Padding(0, 1)
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == cursor:
				return base.Inherit(s.Selected)
			case col == 0:
				return base.Inherit(s.Highlight)
			case col == 3 || col == 4:
				return base.Inherit(s.Number).Align(lipgloss.Right)
			case col == 1 || col == 5:
				return base.Inherit(s.Dim)
			}
			return base.Inherit(s.Value)
		})

	return t.Render()
}

// formatRelativeTime renders recent times relative to now and older ones as a date.
func formatRelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "—"
	}
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
