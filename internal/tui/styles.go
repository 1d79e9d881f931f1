package tui

import "github.com/charmbracelet/lipgloss"

// 终端配色，与窗口端的主题取值一致
var (
	colorGlyph = lipgloss.Color("#E50914")

	lightText   = lipgloss.Color("#141414")
	lightMuted  = lipgloss.Color("#565656")
	lightBorder = lipgloss.Color("#D9D9D9")
	lightDanger = lipgloss.Color("#FF4D4F")

	darkText   = lipgloss.Color("#F8F9FA")
	darkMuted  = lipgloss.Color("#9EA2B3")
	darkBorder = lipgloss.Color("#272736")
	darkDanger = lipgloss.Color("#FF6B6B")
)

// styles 一套主题下的 lipgloss 样式
type styles struct {
	glyph   lipgloss.Style
	card    lipgloss.Style
	focused lipgloss.Style
	title   lipgloss.Style
	body    lipgloss.Style
	dim     lipgloss.Style
	banner  lipgloss.Style
}

func newStyles(darkMode bool) styles {
	text, muted, border, danger := lightText, lightMuted, lightBorder, lightDanger
	if darkMode {
		text, muted, border, danger = darkText, darkMuted, darkBorder, darkDanger
	}
	return styles{
		glyph:   lipgloss.NewStyle().Foreground(colorGlyph).Bold(true),
		card:    lipgloss.NewStyle().Foreground(border),
		focused: lipgloss.NewStyle().Foreground(colorGlyph),
		title:   lipgloss.NewStyle().Foreground(text).Bold(true),
		body:    lipgloss.NewStyle().Foreground(text),
		dim:     lipgloss.NewStyle().Foreground(muted),
		banner:  lipgloss.NewStyle().Foreground(danger).Bold(true),
	}
}
