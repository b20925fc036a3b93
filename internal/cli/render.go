package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/docsim/internal/models"
	"github.com/dmitrijs2005/docsim/internal/report"
	"github.com/fatih/color"
)

const dateLayout = "2006-01-02 15:04"

var (
	headerColor = color.New(color.Bold)
	errorColor  = color.New(color.FgRed)
	okColor     = color.New(color.FgGreen)

	levelColors = map[report.Level]*color.Color{
		report.LevelLow:    color.New(color.FgGreen),
		report.LevelMedium: color.New(color.FgYellow),
		report.LevelHigh:   color.New(color.FgRed, color.Bold),
	}
)

func formatDocument(d *models.Document) string {
	return fmt.Sprintf("#%d %s (%d chars, uploaded %s)",
		d.ID, d.Name, len([]rune(d.Content)), d.UploadDate.Local().Format(dateLayout))
}

func formatMatch(m report.Match) string {
	c, ok := levelColors[m.Level]
	if !ok {
		c = color.New()
	}
	return fmt.Sprintf("    ~ %s: %s", m.Document.Name, c.Sprintf("%s %s", report.FormatScore(m.Score), m.Level))
}

// renderReport produces the lines of the list command.
func renderReport(entries []report.Entry) []string {
	if len(entries) == 0 {
		return []string{"No documents yet. Use 'upload <path>' or 'fetch <url>'."}
	}

	lines := []string{headerColor.Sprintf("%d document(s):", len(entries))}
	for _, e := range entries {
		lines = append(lines, formatDocument(e.Document))
		for _, m := range e.Matches {
			lines = append(lines, formatMatch(m))
		}
	}
	return lines
}

func renderProfile(p *models.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name:    %s\n", p.Name)
	fmt.Fprintf(&b, "Email:   %s\n", p.Email)
	if p.AvatarURL != "" {
		fmt.Fprintf(&b, "Avatar:  %s\n", p.AvatarURL)
	}
	fmt.Fprintf(&b, "Member since %s", p.CreatedAt.Local().Format(dateLayout))
	return b.String()
}
