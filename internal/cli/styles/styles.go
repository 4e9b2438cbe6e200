package styles

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/lanes/internal/models"
)

// Palette used by the CLI
const (
	AccentColor  = "#7C3AED"
	TitleColor   = "#F9FAFB"
	SubtleColor  = "#9CA3AF"
	NormalColor  = "#E5E7EB"
	ErrorColor   = "#EF4444"
	SuccessColor = "#22C55E"
	WarningColor = "#EAB308"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 80

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Position:"
	ValueStyle    lipgloss.Style
	SectionStyle  lipgloss.Style // For column headers

	// Status styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
)

func init() {
	Init()
}

// Init initializes all CLI styles
func Init() {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(AccentColor)).
		Padding(1, 2).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(TitleColor))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(SubtleColor))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(AccentColor))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(NormalColor))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(AccentColor)).
		Bold(true).
		MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(SuccessColor))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ErrorColor))

	WarningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(WarningColor))
}

// ═══════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════

// ColoredText renders text with a hex color
func ColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// RenderPriority renders a priority badge, or nothing for unprioritized tasks
func RenderPriority(p *models.Priority) string {
	if p == nil {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Color())).
		Bold(true).
		Render("[" + string(*p) + "]")
}

// RenderTaskLine renders one card of an ordered listing
// Format: "  #12  Title [high]  bug  @1024"
func RenderTaskLine(task *models.TaskSummary) string {
	title := ValueStyle.Render(task.Title)
	if task.Completed {
		title = SubtitleStyle.Render("✓ " + task.Title)
	}

	parts := []string{
		LabelStyle.Render(fmt.Sprintf("#%d", task.ID)),
		title,
	}
	if badge := RenderPriority(task.Priority); badge != "" {
		parts = append(parts, badge)
	}
	for _, l := range task.Labels {
		parts = append(parts, ColoredText(l.Name, l.Color))
	}
	parts = append(parts, SubtitleStyle.Render(fmt.Sprintf("@%d", task.Position)))

	return "  " + strings.Join(parts, "  ")
}

// RenderColumnHeader renders "Name (count/limit)"; the limit part is
// highlighted once the column is full
func RenderColumnHeader(column *models.Column, count int) string {
	header := fmt.Sprintf("%s (%d)", column.Name, count)
	if column.HasLimit() {
		usage := fmt.Sprintf("(%d/%d)", count, *column.Limit)
		if count >= *column.Limit {
			usage = WarningStyle.Render(usage)
		}
		header = fmt.Sprintf("%s %s", column.Name, usage)
	}
	return SectionStyle.Render(header) + SubtitleStyle.Render(fmt.Sprintf("  column %d", column.ID))
}

// RenderColumnView renders a column header followed by its tasks in order
func RenderColumnView(view *models.ColumnView) string {
	var b strings.Builder
	b.WriteString(RenderColumnHeader(view.Column, len(view.Tasks)))
	b.WriteString("\n")
	if len(view.Tasks) == 0 {
		b.WriteString(SubtitleStyle.Render("  (empty)"))
		b.WriteString("\n")
	}
	for _, task := range view.Tasks {
		b.WriteString(RenderTaskLine(task))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderBoardView renders every column of a board left to right in position order
func RenderBoardView(view *models.BoardView) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(view.Board.Name))
	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("  board %d · %d tasks", view.Board.ID, view.TaskCount())))
	b.WriteString("\n")
	for _, col := range view.Columns {
		b.WriteString(RenderColumnView(col))
	}
	return b.String()
}

// RenderActivity renders one activity row
// Format: "2026-03-10 12:00  task.moved  moved "X" from "Todo" to "Doing""
func RenderActivity(a *models.Activity) string {
	return fmt.Sprintf("%s  %s  %s",
		SubtitleStyle.Render(a.CreatedAt.Local().Format("2006-01-02 15:04")),
		LabelStyle.Render(a.Type),
		ValueStyle.Render(a.Description))
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}
