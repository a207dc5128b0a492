package config

import (
	"slices"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/slumber/internal/timeutil"
)

// FilterConfig narrows the sessions shown by list and stats.
type FilterConfig struct {
	StartTime time.Time
	EndTime   time.Time
	Period    timeutil.Period
}

// FilterOptions are the raw filter flags.
type FilterOptions struct {
	Now    time.Time
	Period string
	Start  string
	End    string
}

// Filter reads the filter flags of a list or stats command. Without a
// period or a start date the last seven days are shown.
func Filter(ctx *cli.Context) (*FilterConfig, error) {
	period := ctx.String("period")
	if period == "" && ctx.String("start") == "" {
		period = string(timeutil.Period7Days)
	}

	return NewFilter(FilterOptions{
		Now:    time.Now(),
		Period: period,
		Start:  ctx.String("start"),
		End:    ctx.String("end"),
	})
}

// NewFilter builds a filter from its options. A period takes precedence
// over explicit start and end times.
func NewFilter(opts FilterOptions) (*FilterConfig, error) {
	cfg := &FilterConfig{}

	period := timeutil.Period(strings.TrimSpace(opts.Period))

	if period != "" && !slices.Contains(timeutil.PeriodCollection, period) {
		names := make([]string, len(timeutil.PeriodCollection))
		for i, p := range timeutil.PeriodCollection {
			names[i] = string(p)
		}

		return nil, errInvalidPeriod.Fmt(strings.Join(names, ", "))
	}

	if period != "" {
		cfg.Period = period
		cfg.StartTime, cfg.EndTime = timeutil.PeriodRange(period, opts.Now)

		return cfg, nil
	}

	if opts.Start == "" {
		return nil, errInvalidStartDate
	}

	start, err := timeutil.FromStr(opts.Start, opts.Now)
	if err != nil {
		return nil, errInvalidCLITime.Fmt("start", opts.Start)
	}

	cfg.StartTime = start

	if opts.Now.After(cfg.StartTime) {
		cfg.EndTime = opts.Now
	} else {
		cfg.EndTime = timeutil.RoundToEnd(cfg.StartTime)
	}

	if opts.End != "" {
		end, err := timeutil.FromStr(opts.End, opts.Now)
		if err != nil {
			return nil, errInvalidCLITime.Fmt("end", opts.End)
		}

		cfg.EndTime = end
	}

	if cfg.EndTime.Before(cfg.StartTime) {
		return nil, errInvalidDateRange
	}

	return cfg, nil
}
