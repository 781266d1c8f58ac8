// Package theme holds the Lip Gloss styles shared by the terminal UI.
package theme

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	// accent is #ff87d7, xterm 212.
	accent = colorful.Color{R: 1, G: 0x87 / 255.0, B: 0xd7 / 255.0}
	muted  = colorful.Color{R: 0x80 / 255.0, G: 0x80 / 255.0, B: 0x80 / 255.0}
)

// Shade mixes the accent toward grey in Lab space. t is clamped to [0, 1];
// 0 is the accent itself.
func Shade(t float64) color.Color {
	switch {
	case t < 0:
		t = 0
	case t > 1:
		t = 1
	}
	return accent.BlendLab(muted, t).Clamped()
}

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Picker PickerTheme
	Panel  PanelTheme
	Footer FooterTheme
}

// PickerTheme styles the record picker.
type PickerTheme struct {
	Prompt      lipgloss.Style
	Row         lipgloss.Style
	Secondary   lipgloss.Style
	Highlighted lipgloss.Style
	Count       lipgloss.Style
	Empty       lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Faint lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	row := lipgloss.NewStyle()
	secondary := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	return Theme{
		Picker: PickerTheme{
			Prompt:      lipgloss.NewStyle().Foreground(Shade(0)).Bold(true),
			Row:         row,
			Secondary:   secondary,
			Highlighted: lipgloss.NewStyle().Bold(true).Foreground(Shade(0)),
			Count:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Empty:       lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Shade(0.6)).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
			Faint: secondary,
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("214")),
			Error:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		},
	}
}
