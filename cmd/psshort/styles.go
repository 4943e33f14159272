// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/charmbracelet/lipgloss"

// Color palette - shared hex colors for consistent theming across CLI output.
const (
	// ColorPrimary is purple - used for titles and primary emphasis.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - used for subtitles and de-emphasized content.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - used for savings and positive outcomes.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorHighlight is blue - used for command tokens.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for primary headers.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SavingsStyle is for character-savings figures.
	SavingsStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// CommandStyle is for command names in the stats report.
	CommandStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)
)
