// Package ui holds the console colours and tables shared by the commands.
package ui

import (
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/slumber/internal/quality"
)

var DarkTheme bool

func Green(a any) string {
	if DarkTheme {
		return pterm.LightGreen(a)
	}

	return pterm.Green(a)
}

func Yellow(a any) string {
	if DarkTheme {
		return pterm.LightYellow(a)
	}

	return pterm.Yellow(a)
}

func Blue(a any) string {
	if DarkTheme {
		return pterm.LightBlue(a)
	}

	return pterm.Blue(a)
}

func Red(a any) string {
	if DarkTheme {
		return pterm.LightRed(a)
	}

	return pterm.Red(a)
}

// Quality colours a quality score by its label.
func Quality(score int) string {
	switch quality.LabelFor(score) {
	case quality.Excellent:
		return Green(score)
	case quality.Good:
		return Blue(score)
	case quality.Fair:
		return Yellow(score)
	default:
		return Red(score)
	}
}
