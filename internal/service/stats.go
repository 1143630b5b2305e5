package service

import "time"

// Stats are the dashboard counters.
type Stats struct {
	Today  int
	Streak int
	Total  int
}

// ComputeStats counts notes created today and the run of consecutive days
// with at least one note. The streak may end yesterday; a gap of a full day
// resets it.
func ComputeStats(created []time.Time, now time.Time, loc *time.Location) Stats {
	if loc == nil {
		loc = time.Local
	}
	days := make(map[string]struct{}, len(created))
	today := dayKey(now, loc)
	st := Stats{Total: len(created)}
	for _, t := range created {
		k := dayKey(t, loc)
		days[k] = struct{}{}
		if k == today {
			st.Today++
		}
	}

	day := now.In(loc)
	if _, ok := days[today]; !ok {
		day = day.AddDate(0, 0, -1)
	}
	for {
		if _, ok := days[dayKey(day, loc)]; !ok {
			break
		}
		st.Streak++
		day = day.AddDate(0, 0, -1)
	}
	return st
}

func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// Greeting returns the dashboard salutation for an hour of the day.
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "Good Morning"
	case hour < 18:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}
