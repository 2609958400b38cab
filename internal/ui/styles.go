package ui

import "github.com/charmbracelet/lipgloss"

// 牌面颜色
var cardColors = map[string]lipgloss.Color{
	"Red":      lipgloss.Color("#E53935"),
	"Green":    lipgloss.Color("#43A047"),
	"Blue":     lipgloss.Color("#1E88E5"),
	"Yellow":   lipgloss.Color("#FDD835"),
	"Wildcard": lipgloss.Color("#9E9E9E"),
}

var (
	docStyle      = lipgloss.NewStyle().Margin(1, 2)
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	promptStyle   = lipgloss.NewStyle().MarginTop(1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true)
	turnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Width(4).
			Align(lipgloss.Center).
			Bold(true)
)

const (
	turnIcon = "▶"
	botIcon  = "🤖"
	unoIcon  = "UNO!"
)
