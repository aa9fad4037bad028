package panel

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	TextColor      = lipgloss.Color("#FFFFFF") // White
	SubtleColor    = lipgloss.Color("#626262") // Gray
	BorderColor    = lipgloss.Color("#7D56F4") // Purple (same as primary)
	HighlightColor = lipgloss.Color("#43BF6D") // Green (same as secondary)
	SurfaceColor   = lipgloss.Color("#1A1A1A") // Dark gray
)

var (
	// Outer panel box
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Background(SurfaceColor).
			Padding(0, 1)

	StatusStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Padding(0, 1)

	FocusedButtonStyle = ButtonStyle.
				Foreground(SurfaceColor).
				Background(HighlightColor)

	ExpandedButtonStyle = ButtonStyle.
				Foreground(PrimaryColor)

	// Module tiles
	TileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1)

	ActiveTileStyle = TileStyle.
			BorderForeground(PrimaryColor)

	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	ActiveTitleStyle = TitleStyle.
				Foreground(PrimaryColor)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// Expanded sections
	SectionStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(PrimaryColor).
			PaddingLeft(1)

	ItemStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	ConnectedItemStyle = ItemStyle.
				Foreground(SecondaryColor)

	FocusedItemStyle = lipgloss.NewStyle().
				Foreground(SurfaceColor).
				Background(HighlightColor)

	VerbStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	SwitchOnStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	SwitchOffStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)
)
