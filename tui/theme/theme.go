// Package theme holds the shared lipgloss styles for deck's terminal output.
package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const defaultThemeName = "kanagawa"

// --- Kanagawa Dragon palette ---
const (
	kanagawaGreen              = "#98BB6C"
	kanagawaYellow             = "#FF9E3B"
	kanagawaRed                = "#FF5D62"
	kanagawaOrange             = "#FFA066"
	kanagawaCyan               = "#7E9CD8"
	kanagawaBlue               = "#7FB4CA"
	kanagawaViolet             = "#957FB8"
	kanagawaPink               = "#D27E99"
	kanagawaLightText          = "#DCD7BA"
	kanagawaMutedText          = "#727169"
	kanagawaBorder             = "#363646"
	kanagawaSelectedBackground = "#223249"
)

// --- Gruvbox palette ---
const (
	gruvboxGreen              = "#B8BB26"
	gruvboxYellow             = "#FABD2F"
	gruvboxRed                = "#FB4934"
	gruvboxOrange             = "#FE8019"
	gruvboxCyan               = "#83A598"
	gruvboxBlue               = "#458588"
	gruvboxViolet             = "#B16286"
	gruvboxPink               = "#D3869B"
	gruvboxLightText          = "#EBDBB2"
	gruvboxMutedText          = "#BDAE93"
	gruvboxBorder             = "#504945"
	gruvboxSelectedBackground = "#32302F"
)

// --- Terminal (ANSI-friendly) palette ---
const (
	terminalGreen              = "2"
	terminalYellow             = "3"
	terminalRed                = "1"
	terminalOrange             = "208"
	terminalCyan               = "6"
	terminalBlue               = "4"
	terminalViolet             = "5"
	terminalPink               = "13"
	terminalLightText          = "7"
	terminalMutedText          = "8"
	terminalBorder             = "8"
	terminalSelectedBackground = "8"
)

// Colors encapsulates the palette used by a theme.
type Colors struct {
	Green              lipgloss.TerminalColor
	Yellow             lipgloss.TerminalColor
	Red                lipgloss.TerminalColor
	Orange             lipgloss.TerminalColor
	Cyan               lipgloss.TerminalColor
	Blue               lipgloss.TerminalColor
	Violet             lipgloss.TerminalColor
	Pink               lipgloss.TerminalColor
	LightText          lipgloss.TerminalColor
	MutedText          lipgloss.TerminalColor
	Border             lipgloss.TerminalColor
	SelectedBackground lipgloss.TerminalColor
}

// Theme holds all the pre-configured styles.
type Theme struct {
	Colors Colors

	Header lipgloss.Style
	Title  lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	Bold     lipgloss.Style
	Italic   lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style

	Box       lipgloss.Style
	Tile      lipgloss.Style // Workspace grid cell
	DropZone  lipgloss.Style // Grid border while a transfer is armed
	Modal     lipgloss.Style
	Highlight lipgloss.Style
	Accent    lipgloss.Style

	Input       lipgloss.Style
	Placeholder lipgloss.Style

	Up   lipgloss.Style // Rising quote
	Down lipgloss.Style // Falling quote

	// Dynamic color palette for components
	AccentColors []lipgloss.TerminalColor
}

var themeRegistry = map[string]func() Colors{
	"kanagawa": newKanagawaColors,
	"gruvbox":  newGruvboxColors,
	"terminal": newTerminalColors,
}

// DefaultTheme is the theme selected by DECK_THEME (kanagawa when unset).
var DefaultTheme = NewThemeWithName(os.Getenv("DECK_THEME"))

// NewThemeWithName constructs a theme from a specific palette name. Unknown
// names fall back to the default palette.
func NewThemeWithName(name string) *Theme {
	name = strings.ToLower(strings.TrimSpace(name))
	factory, ok := themeRegistry[name]
	if !ok {
		factory = themeRegistry[defaultThemeName]
	}
	return newThemeFromColors(factory())
}

// RenderHeader renders a header with the default styling.
func RenderHeader(title string) string {
	return DefaultTheme.Header.Render(title)
}

// RenderStatus renders text with the appropriate status style.
func RenderStatus(status, text string) string {
	switch status {
	case "success":
		return DefaultTheme.Success.Render(text)
	case "error":
		return DefaultTheme.Error.Render(text)
	case "warning":
		return DefaultTheme.Warning.Render(text)
	case "info":
		return DefaultTheme.Info.Render(text)
	default:
		return text
	}
}

func newThemeFromColors(colors Colors) *Theme {
	return &Theme{
		Colors: colors,

		Header: lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Underline(true),

		Success: lipgloss.NewStyle().
			Foreground(colors.Green).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(colors.Red).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(colors.Yellow).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(colors.Cyan).
			Bold(true),

		Bold:   lipgloss.NewStyle().Bold(true),
		Italic: lipgloss.NewStyle().Italic(true),
		Normal: lipgloss.NewStyle(),
		Muted:  lipgloss.NewStyle().Faint(true),

		Selected: lipgloss.NewStyle().
			Background(colors.SelectedBackground).
			Foreground(colors.LightText),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Border).
			Padding(0, 1),

		Tile: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Border).
			Padding(0, 1),

		DropZone: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colors.Orange),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Violet).
			Padding(1, 2),

		Highlight: lipgloss.NewStyle().
			Foreground(colors.Orange).
			Bold(true),

		Accent: lipgloss.NewStyle().
			Foreground(colors.Violet).
			Bold(true),

		Input: lipgloss.NewStyle().
			Foreground(colors.LightText),

		Placeholder: lipgloss.NewStyle().
			Foreground(colors.MutedText).
			Italic(true),

		Up:   lipgloss.NewStyle().Foreground(colors.Green),
		Down: lipgloss.NewStyle().Foreground(colors.Red),

		AccentColors: []lipgloss.TerminalColor{
			colors.Cyan,
			colors.Blue,
			colors.Violet,
			colors.Pink,
			colors.Green,
			colors.Orange,
		},
	}
}

func newKanagawaColors() Colors {
	return Colors{
		Green:              lipgloss.Color(kanagawaGreen),
		Yellow:             lipgloss.Color(kanagawaYellow),
		Red:                lipgloss.Color(kanagawaRed),
		Orange:             lipgloss.Color(kanagawaOrange),
		Cyan:               lipgloss.Color(kanagawaCyan),
		Blue:               lipgloss.Color(kanagawaBlue),
		Violet:             lipgloss.Color(kanagawaViolet),
		Pink:               lipgloss.Color(kanagawaPink),
		LightText:          lipgloss.Color(kanagawaLightText),
		MutedText:          lipgloss.Color(kanagawaMutedText),
		Border:             lipgloss.Color(kanagawaBorder),
		SelectedBackground: lipgloss.Color(kanagawaSelectedBackground),
	}
}

func newGruvboxColors() Colors {
	return Colors{
		Green:              lipgloss.Color(gruvboxGreen),
		Yellow:             lipgloss.Color(gruvboxYellow),
		Red:                lipgloss.Color(gruvboxRed),
		Orange:             lipgloss.Color(gruvboxOrange),
		Cyan:               lipgloss.Color(gruvboxCyan),
		Blue:               lipgloss.Color(gruvboxBlue),
		Violet:             lipgloss.Color(gruvboxViolet),
		Pink:               lipgloss.Color(gruvboxPink),
		LightText:          lipgloss.Color(gruvboxLightText),
		MutedText:          lipgloss.Color(gruvboxMutedText),
		Border:             lipgloss.Color(gruvboxBorder),
		SelectedBackground: lipgloss.Color(gruvboxSelectedBackground),
	}
}

func newTerminalColors() Colors {
	return Colors{
		Green:              lipgloss.Color(terminalGreen),
		Yellow:             lipgloss.Color(terminalYellow),
		Red:                lipgloss.Color(terminalRed),
		Orange:             lipgloss.Color(terminalOrange),
		Cyan:               lipgloss.Color(terminalCyan),
		Blue:               lipgloss.Color(terminalBlue),
		Violet:             lipgloss.Color(terminalViolet),
		Pink:               lipgloss.Color(terminalPink),
		LightText:          lipgloss.Color(terminalLightText),
		MutedText:          lipgloss.Color(terminalMutedText),
		Border:             lipgloss.Color(terminalBorder),
		SelectedBackground: lipgloss.Color(terminalSelectedBackground),
	}
}
