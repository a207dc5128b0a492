// Package quality scores a night of sleep on a 0-10 scale.
//
// The score is a heuristic: start from a perfect 10, lose a point for every
// started hour outside the 7-9 hour window and a point for every time the
// user woke up.
package quality

const (
	Max = 10
	Min = 0

	shortSleepMinutes = 7 * 60
	longSleepMinutes  = 9 * 60
	minutesPerPenalty = 60
)

// Label is the human-readable band a score falls into.
type Label string

const (
	Excellent Label = "Excellent"
	Good      Label = "Good"
	Fair      Label = "Fair"
	Poor      Label = "Poor"
)

// Labels lists every label from best to worst.
var Labels = []Label{Excellent, Good, Fair, Poor}

// Score computes the quality of a session that lasted durationMinutes with
// wakeUps interruptions. Negative inputs count as zero.
func Score(durationMinutes, wakeUps int) int {
	durationMinutes = max(durationMinutes, 0)
	wakeUps = max(wakeUps, 0)

	score := Max

	switch {
	case durationMinutes < shortSleepMinutes:
		score -= penalty(shortSleepMinutes - durationMinutes)
	case durationMinutes > longSleepMinutes:
		score -= penalty(durationMinutes - longSleepMinutes)
	}

	score -= wakeUps

	return min(max(score, Min), Max)
}

// penalty returns one point per started hour.
func penalty(minutes int) int {
	return (minutes + minutesPerPenalty - 1) / minutesPerPenalty
}

// LabelFor maps a score to its label.
func LabelFor(score int) Label {
	switch {
	case score >= 8:
		return Excellent
	case score >= 6:
		return Good
	case score >= 4:
		return Fair
	default:
		return Poor
	}
}
