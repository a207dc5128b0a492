package stats

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/slumber/internal/config"
	"github.com/ayoisaiah/slumber/internal/quality"
	"github.com/ayoisaiah/slumber/internal/ui"
)

const barChartChar = "▇"

const reportDate = "January 02, 2006"

func getBarChart(header string, bars pterm.Bars) string {
	if len(bars) == 0 {
		return ""
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return ui.Blue("\n"+header) + chart
}

// getLabels renders how many nights fell into each quality band.
func getLabels(s *Summary) string {
	bars := make(pterm.Bars, 0, len(quality.Labels))

	for _, l := range quality.Labels {
		bars = append(bars, pterm.Bar{
			Label: string(l),
			Value: s.Labels[l],
		})
	}

	return getBarChart("Quality breakdown (nights)", bars)
}

func getSummary(s *Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", ui.Blue("Summary"))
	fmt.Fprintln(&b, "Nights tracked:", ui.Green(s.Nights))
	fmt.Fprintln(&b, "Time slept:", ui.Green(s.TotalDuration))

	if s.TargetMinutes > 0 {
		fmt.Fprintf(
			&b,
			"Nights on target (%s): %s\n",
			formatDuration(time.Duration(s.TargetMinutes)*time.Minute),
			ui.Green(s.OnTarget),
		)
	}

	return b.String()
}

func getAverages(s *Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", ui.Blue("Averages"))
	fmt.Fprintln(&b, "Sleep duration:", ui.Green(s.AvgDuration))
	fmt.Fprintf(&b, "Quality: %s\n", ui.Green(fmt.Sprintf("%.1f", s.AvgQuality)))
	fmt.Fprintf(&b, "Wake-ups: %s\n", ui.Green(fmt.Sprintf("%.1f", s.AvgWakeUps)))

	return b.String()
}

func getExtremes(s *Summary, layout string) string {
	if s.Best == nil {
		return ""
	}

	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", ui.Blue("Highlights"))

	line := func(title string, n *Night) {
		fmt.Fprintf(
			&b,
			"%s: %s, %s (quality %s)\n",
			title,
			n.StartTime.Format(layout),
			n.Duration,
			ui.Quality(n.Quality),
		)
	}

	line("Best night", s.Best)
	line("Worst night", s.Worst)

	return b.String()
}

// Render writes the summary in its console form.
func Render(w io.Writer, s *Summary, display config.DisplayConfig) {
	if s.Nights == 0 {
		pterm.Info.Println(noSessionsMsg)
		return
	}

	timePeriod := "Reporting period: " + s.StartTime.Format(reportDate) +
		" - " + s.EndTime.Format(reportDate)

	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgBlue)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintfln(timePeriod)

	output := fmt.Sprint(
		header,
		getSummary(s),
		getAverages(s),
		getExtremes(s, dateTimeLayout(display)),
		getLabels(s),
	)

	fmt.Fprintln(w, strings.TrimSpace(output))
}

// Show prints the summary for the filter, as JSON when asJSON is set.
func (s *Stats) Show(
	w io.Writer,
	f *config.FilterConfig,
	display config.DisplayConfig,
	asJSON bool,
) error {
	summary, err := s.Summary(f)
	if err != nil {
		return err
	}

	if !asJSON {
		Render(w, summary, display)
		return nil
	}

	b, err := summary.ToJSON()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))

	return err
}
