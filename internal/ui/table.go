package ui

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/pterm/pterm"
)

// PrintTable writes rows to w as a boxed table. The first row is the
// header.
func PrintTable(w io.Writer, rows [][]string) error {
	str, err := pterm.DefaultTable.
		WithBoxed().
		WithHasHeader().
		WithData(rows).
		Srender()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, str)

	return err
}

// Truncate shortens s to at most width terminal cells.
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}
