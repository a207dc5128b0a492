// Package stats summarises sleep history over a reporting period
package stats

import (
	"encoding/json"
	"time"

	"github.com/hako/durafmt"

	"github.com/ayoisaiah/slumber/internal/config"
	"github.com/ayoisaiah/slumber/internal/models"
	"github.com/ayoisaiah/slumber/internal/quality"
	"github.com/ayoisaiah/slumber/internal/timeutil"
	"github.com/ayoisaiah/slumber/store"
)

const noSessionsMsg = "No sleep sessions found for the specified time range"

// Night is the compact form of a session used for the best and worst nights.
type Night struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	ID        string    `json:"id"`
	Duration  string    `json:"duration"`
	Minutes   int       `json:"duration_minutes"`
	Quality   int       `json:"quality"`
	WakeUps   int       `json:"wake_ups"`
}

// Summary aggregates the closed sessions of a reporting period.
type Summary struct {
	StartTime      time.Time             `json:"start_time"`
	EndTime        time.Time             `json:"end_time"`
	Labels         map[quality.Label]int `json:"labels"`
	Best           *Night                `json:"best,omitempty"`
	Worst          *Night                `json:"worst,omitempty"`
	TotalDuration  string                `json:"total_duration"`
	AvgDuration    string                `json:"avg_duration"`
	Nights         int                   `json:"nights"`
	TotalMinutes   int                   `json:"total_minutes"`
	AvgMinutes     int                   `json:"avg_minutes"`
	TargetMinutes  int                   `json:"target_minutes"`
	OnTarget       int                   `json:"nights_on_target"`
	AvgQuality     float64               `json:"avg_quality"`
	AvgWakeUps     float64               `json:"avg_wake_ups"`
	NightlyMinutes []int                 `json:"-"`
}

// ToJSON encodes the summary.
func (s *Summary) ToJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

func formatDuration(d time.Duration) string {
	//nolint:gomnd // limit to first 2 units
	return durafmt.Parse(d.Round(time.Minute)).LimitToUnit("hours").LimitFirstN(2).String()
}

func newNight(sess *models.SleepSession) *Night {
	minutes := sess.DurationMinutes

	return &Night{
		ID:        sess.ID,
		StartTime: sess.StartTime,
		EndTime:   sess.EndTime,
		Minutes:   minutes,
		Duration:  formatDuration(time.Duration(minutes) * time.Minute),
		Quality:   sess.Quality,
		WakeUps:   sess.WakeUps,
	}
}

// filterSessions ensures that sessions with an invalid end date are ignored.
func filterSessions(sessions []models.SleepSession) []models.SleepSession {
	filtered := make([]models.SleepSession, 0, len(sessions))

	for i := range sessions {
		sess := sessions[i]

		if sess.State() != models.StateClosed || sess.EndTime.Before(sess.StartTime) {
			continue
		}

		filtered = append(filtered, sess)
	}

	return filtered
}

// Compute summarises sessions. target is the nightly sleep goal; nights at or
// above it count towards OnTarget. Ties for best and worst go to the earlier
// night.
func Compute(sessions []models.SleepSession, target time.Duration) *Summary {
	sessions = filterSessions(sessions)

	s := &Summary{
		Labels:        make(map[quality.Label]int, len(quality.Labels)),
		TargetMinutes: int(target / time.Minute),
	}

	for _, l := range quality.Labels {
		s.Labels[l] = 0
	}

	var qualitySum, wakeUpSum int

	for i := range sessions {
		sess := &sessions[i]

		s.Nights++
		s.TotalMinutes += sess.DurationMinutes
		s.NightlyMinutes = append(s.NightlyMinutes, sess.DurationMinutes)
		qualitySum += sess.Quality
		wakeUpSum += sess.WakeUps
		s.Labels[quality.LabelFor(sess.Quality)]++

		if s.TargetMinutes > 0 && sess.DurationMinutes >= s.TargetMinutes {
			s.OnTarget++
		}

		if s.Best == nil || sess.Quality > s.Best.Quality {
			s.Best = newNight(sess)
		}

		if s.Worst == nil || sess.Quality < s.Worst.Quality {
			s.Worst = newNight(sess)
		}
	}

	s.TotalDuration = formatDuration(time.Duration(s.TotalMinutes) * time.Minute)

	if s.Nights > 0 {
		s.AvgMinutes = timeutil.Round(float64(s.TotalMinutes) / float64(s.Nights))
		s.AvgQuality = round1(float64(qualitySum) / float64(s.Nights))
		s.AvgWakeUps = round1(float64(wakeUpSum) / float64(s.Nights))
		s.StartTime = sessions[0].StartTime
		s.EndTime = sessions[len(sessions)-1].EndTime
	}

	s.AvgDuration = formatDuration(time.Duration(s.AvgMinutes) * time.Minute)

	return s
}

func round1(f float64) float64 {
	return float64(timeutil.Round(f*10)) / 10
}

// Stats reads sessions from the local store and summarises them.
type Stats struct {
	db     store.DB
	now    func() time.Time
	target time.Duration
}

// Option configures Stats.
type Option func(*Stats)

// WithNow overrides the clock used to resolve periods.
func WithNow(now func() time.Time) Option {
	return func(s *Stats) {
		s.now = now
	}
}

// WithTarget sets the nightly sleep goal.
func WithTarget(d time.Duration) Option {
	return func(s *Stats) {
		s.target = d
	}
}

// New returns Stats reading from db.
func New(db store.DB, opts ...Option) *Stats {
	s := &Stats{
		db:     db,
		now:    time.Now,
		target: config.DefaultTarget,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Sessions returns the sessions that started within the filter bounds,
// oldest first.
func (s *Stats) Sessions(f *config.FilterConfig) ([]models.SleepSession, error) {
	return s.db.GetSessions(f.StartTime, f.EndTime)
}

// Summary computes the summary for the filter bounds. The reported period is
// the filter's, except for all-time which starts at the first night.
func (s *Stats) Summary(f *config.FilterConfig) (*Summary, error) {
	sessions, err := s.Sessions(f)
	if err != nil {
		return nil, err
	}

	summary := Compute(sessions, s.target)

	if !f.StartTime.IsZero() {
		summary.StartTime = f.StartTime
	}

	if !f.EndTime.IsZero() {
		summary.EndTime = f.EndTime
	}

	return summary, nil
}
