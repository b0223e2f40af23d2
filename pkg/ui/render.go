package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"iggraph/pkg/graph"
)

const captionWidth = 40

// RenderUser renders a profile card
func RenderUser(u *graph.User) string {
	if u == nil {
		return dimStyle.Render("no user")
	}

	title := titleStyle.Render("@" + u.Username)
	if u.Name != "" {
		title += " " + dimStyle.Render(u.Name)
	}

	rows := []string{title, ""}
	rows = append(rows, field("ID", u.ID))
	if u.AccountType != "" {
		rows = append(rows, field("Account", u.AccountType))
	}
	rows = append(rows,
		field("Media", strconv.Itoa(u.MediaCount)),
		field("Followers", strconv.Itoa(u.FollowersCount)),
		field("Follows", strconv.Itoa(u.FollowsCount)),
	)
	if u.Website != "" {
		rows = append(rows, field("Website", u.Website))
	}
	if u.Biography != "" {
		rows = append(rows, "", singleLine(u.Biography, 60))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// RenderMedia renders a single media object as a card
func RenderMedia(m *graph.Media) string {
	if m == nil {
		return dimStyle.Render("no media")
	}

	rows := []string{titleStyle.Render(m.ID), ""}
	if m.MediaType != "" {
		rows = append(rows, field("Type", string(m.MediaType)))
	}
	if taken, err := m.TakenAt(); err == nil {
		rows = append(rows, field("Taken", taken.Format("2006-01-02 15:04")))
	}
	rows = append(rows,
		field("Likes", strconv.Itoa(m.LikeCount)),
		field("Comments", strconv.Itoa(m.CommentsCount)),
	)
	if m.Permalink != "" {
		rows = append(rows, field("Link", m.Permalink))
	}
	if m.Children != nil && len(m.Children.Data) > 0 {
		rows = append(rows, field("Children", strconv.Itoa(len(m.Children.Data))))
	}
	if m.Caption != "" {
		rows = append(rows, "", singleLine(m.Caption, 60))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// RenderMediaList renders a page of media as a table, followed by the next cursor when present
func RenderMediaList(l *graph.MediaList) string {
	if l == nil || l.Len() == 0 {
		return dimStyle.Render("no media")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(magenta)).
		Headers("ID", "TYPE", "TAKEN", "LIKES", "CAPTION").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, m := range l.Data {
		taken := ""
		if ts, err := m.TakenAt(); err == nil {
			taken = ts.Format("2006-01-02")
		}
		t.Row(m.ID, string(m.MediaType), taken, strconv.Itoa(m.LikeCount), singleLine(m.Caption, captionWidth))
	}

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d items", l.Len())))
	if cursor, ok := l.NextCursor(); ok {
		b.WriteString("\n")
		b.WriteString(field("Next", cursor))
	}
	return b.String()
}

// PrintError prints an error message in red
func PrintError(w io.Writer, msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = msg + ": " + fmt.Sprintf("%v", args[0])
	}
	fmt.Fprintln(w, errorStyle.Render(msg))
}

// PrintSuccess prints a success message in green
func PrintSuccess(w io.Writer, msg string) {
	fmt.Fprintln(w, successStyle.Render(msg))
}

// PrintWarning prints a warning message in yellow
func PrintWarning(w io.Writer, msg string) {
	fmt.Fprintln(w, warningStyle.Render(msg))
}

// PrintInfo prints a label and value
func PrintInfo(w io.Writer, label, value string) {
	fmt.Fprintln(w, field(label, value))
}

func field(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

// singleLine collapses whitespace and truncates to width cells
func singleLine(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	return ansi.Truncate(s, width, "…")
}
