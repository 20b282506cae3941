package dto

import "github.com/lac-hong-legacy/epsilon_api/progression"

type CalendarQuery struct {
	Year  *int `query:"year" validate:"omitempty,gte=1,lte=9999"`
	Month *int `query:"month" validate:"omitempty,gte=0,lte=11"`
}

func (q CalendarQuery) Validate() error {
	return GetValidator().Struct(q)
}

type EventsQuery struct {
	Date string `query:"date" validate:"required,date_key"`
}

func (q EventsQuery) Validate() error {
	return GetValidator().Struct(q)
}

type UpcomingQuery struct {
	Limit int `query:"limit" validate:"gte=0,lte=50"`
}

func (q UpcomingQuery) Validate() error {
	return GetValidator().Struct(q)
}

// CalendarCell is one slot in the week grid. Blank cells have Day 0 and no
// date.
type CalendarCell struct {
	Day     int                 `json:"day"`
	Date    string              `json:"date,omitempty"`
	IsToday bool                `json:"is_today"`
	Events  []progression.Event `json:"events"`
}

type MonthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type LegendItem struct {
	Type  string `json:"type"`
	Color string `json:"color"`
}

type CalendarMonthResponse struct {
	Year      int            `json:"year"`
	Month     int            `json:"month"`
	MonthName string         `json:"month_name"`
	DayNames  []string       `json:"day_names"`
	Cells     []CalendarCell `json:"cells"`
	Prev      MonthRef       `json:"prev"`
	Next      MonthRef       `json:"next"`
	Legend    []LegendItem   `json:"legend"`
}

type EventsResponse struct {
	Date   string              `json:"date"`
	Events []progression.Event `json:"events"`
}
