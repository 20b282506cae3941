package progression

import (
	"fmt"
	"time"
)

var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var DayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Event is a scheduled deadline or session shown on the calendar.
type Event struct {
	Date  string `json:"date" yaml:"date"`
	Type  string `json:"type" yaml:"type"`
	Title string `json:"title" yaml:"title"`
	XP    int    `json:"xp" yaml:"xp"`
}

// Grid is a month laid out for a 7-column week view. Month is zero-based.
// Days holds LeadingBlanks zeros followed by 1..DaysInMonth.
type Grid struct {
	Year          int   `json:"year"`
	Month         int   `json:"month"`
	LeadingBlanks int   `json:"leading_blanks"`
	DaysInMonth   int   `json:"days_in_month"`
	Days          []int `json:"days"`
}

// BuildMonth lays out the month. Out of range months roll into the
// neighbouring years the same way time.Date does.
func BuildMonth(year, month0 int) Grid {
	year, month0 = normalize(year, month0)

	first := time.Date(year, time.Month(month0+1), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	blanks := int(first.Weekday())
	days := last.Day()

	cells := make([]int, 0, blanks+days)
	for i := 0; i < blanks; i++ {
		cells = append(cells, 0)
	}
	for d := 1; d <= days; d++ {
		cells = append(cells, d)
	}

	return Grid{
		Year:          year,
		Month:         month0,
		LeadingBlanks: blanks,
		DaysInMonth:   days,
		Days:          cells,
	}
}

// Navigate moves a zero-based month by delta months.
func Navigate(year, month0, delta int) (int, int) {
	return normalize(year, month0+delta)
}

func DateKey(year, month0, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month0+1, day)
}

// EventsOn never returns nil.
func EventsOn(events []Event, year, month0, day int) []Event {
	key := DateKey(year, month0, day)
	matched := make([]Event, 0)
	for _, e := range events {
		if e.Date == key {
			matched = append(matched, e)
		}
	}
	return matched
}

func EventsOnDate(events []Event, date string) []Event {
	matched := make([]Event, 0)
	for _, e := range events {
		if e.Date == date {
			matched = append(matched, e)
		}
	}
	return matched
}

// Upcoming returns the first n events in catalog order.
func Upcoming(events []Event, n int) []Event {
	if n < 0 {
		n = 0
	}
	if n > len(events) {
		n = len(events)
	}
	out := make([]Event, n)
	copy(out, events[:n])
	return out
}

func IsToday(today time.Time, year, month0, day int) bool {
	return day > 0 &&
		today.Year() == year &&
		int(today.Month())-1 == month0 &&
		today.Day() == day
}

func MonthName(month0 int) string {
	_, month0 = normalize(0, month0)
	return MonthNames[month0]
}

func normalize(year, month0 int) (int, int) {
	t := time.Date(year, time.Month(month0+1), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), int(t.Month()) - 1
}
