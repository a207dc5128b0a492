package alarm

import "time"

// Trigger returns when an alarm for alarmTime should fire. A time that is
// not after now moves forward a day at a time until it is. The smart alarm
// fires window earlier, but never before now.
func Trigger(alarmTime, now time.Time, smart bool, window time.Duration) time.Time {
	t := alarmTime

	for !t.After(now) {
		t = t.AddDate(0, 0, 1)
	}

	if !smart || window <= 0 {
		return t
	}

	early := t.Add(-window)
	if early.Before(now) {
		return now
	}

	return early
}
