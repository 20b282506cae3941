package services

import (
	"fmt"
	"os"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/lac-hong-legacy/epsilon_api/dto"
	"github.com/lac-hong-legacy/epsilon_api/progression"
	"github.com/lac-hong-legacy/epsilon_api/shared"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var sampleEvents = []progression.Event{
	{Date: "2024-01-15", Type: shared.EventTypeLesson, Title: "Marketing Fundamentals Due", XP: 150},
	{Date: "2024-01-18", Type: shared.EventTypeQuiz, Title: "Finance Quiz Deadline", XP: 200},
	{Date: "2024-01-20", Type: shared.EventTypeVideo, Title: "Leadership Webinar", XP: 100},
	{Date: "2024-01-22", Type: shared.EventTypeLesson, Title: "Business Ethics Module", XP: 150},
	{Date: "2024-01-25", Type: shared.EventTypeQuiz, Title: "Entrepreneurship Assessment", XP: 250},
	{Date: "2024-01-28", Type: shared.EventTypeVideo, Title: "Guest Speaker: Startup Success", XP: 100},
}

var eventLegend = []dto.LegendItem{
	{Type: shared.EventTypeLesson, Color: "bg-blue-500"},
	{Type: shared.EventTypeQuiz, Color: "bg-green-500"},
	{Type: shared.EventTypeVideo, Color: "bg-red-500"},
}

const defaultUpcomingLimit = 4

type calendarFile struct {
	Events []progression.Event `yaml:"events"`
}

// CalendarService serves the static event schedule laid over month grids.
// Events are loaded once at startup and never change afterwards.
type CalendarService struct {
	appContext.DefaultService

	events []progression.Event
	now    func() time.Time
}

const CALENDAR_SVC = "calendar_svc"

func NewCalendarService(events []progression.Event, now func() time.Time) *CalendarService {
	if now == nil {
		now = time.Now
	}
	return &CalendarService{events: events, now: now}
}

func (svc CalendarService) Id() string {
	return CALENDAR_SVC
}

func (svc *CalendarService) Configure(ctx *appContext.Context) error {
	svc.now = time.Now
	svc.events = sampleEvents

	if file := os.Getenv("CALENDAR_EVENTS_FILE"); file != "" {
		events, err := LoadEvents(file)
		if err != nil {
			return err
		}
		svc.events = events
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *CalendarService) Start() error {
	log.WithField("events", len(svc.events)).Info("Calendar events loaded")
	return nil
}

// LoadEvents reads an events file of the form
//
//	events:
//	  - {date: 2024-01-15, type: lesson, title: Marketing Fundamentals Due, xp: 150}
func LoadEvents(file string) ([]progression.Event, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read calendar events: %w", err)
	}

	var cfg calendarFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse calendar events: %w", err)
	}

	for i, e := range cfg.Events {
		if _, err := time.Parse("2006-01-02", e.Date); err != nil {
			return nil, fmt.Errorf("calendar event %d (%q): bad date %q", i, e.Title, e.Date)
		}
		switch e.Type {
		case shared.EventTypeLesson, shared.EventTypeQuiz, shared.EventTypeVideo:
		default:
			return nil, fmt.Errorf("calendar event %d (%q): unknown type %q", i, e.Title, e.Type)
		}
	}
	if cfg.Events == nil {
		cfg.Events = []progression.Event{}
	}
	return cfg.Events, nil
}

// Month lays out the given month with its events. A nil year or month
// defaults to the current one.
func (svc *CalendarService) Month(year, month0 *int) *dto.CalendarMonthResponse {
	today := svc.now()

	y, m := today.Year(), int(today.Month())-1
	if year != nil {
		y = *year
	}
	if month0 != nil {
		m = *month0
	}

	grid := progression.BuildMonth(y, m)

	cells := make([]dto.CalendarCell, 0, len(grid.Days))
	for _, day := range grid.Days {
		if day == 0 {
			cells = append(cells, dto.CalendarCell{Events: []progression.Event{}})
			continue
		}
		cells = append(cells, dto.CalendarCell{
			Day:     day,
			Date:    progression.DateKey(grid.Year, grid.Month, day),
			IsToday: progression.IsToday(today, grid.Year, grid.Month, day),
			Events:  progression.EventsOn(svc.events, grid.Year, grid.Month, day),
		})
	}

	prevY, prevM := progression.Navigate(grid.Year, grid.Month, -1)
	nextY, nextM := progression.Navigate(grid.Year, grid.Month, 1)

	legend := make([]dto.LegendItem, len(eventLegend))
	copy(legend, eventLegend)

	return &dto.CalendarMonthResponse{
		Year:      grid.Year,
		Month:     grid.Month,
		MonthName: progression.MonthName(grid.Month),
		DayNames:  progression.DayNames[:],
		Cells:     cells,
		Prev:      dto.MonthRef{Year: prevY, Month: prevM},
		Next:      dto.MonthRef{Year: nextY, Month: nextM},
		Legend:    legend,
	}
}

func (svc *CalendarService) EventsOn(date string) *dto.EventsResponse {
	return &dto.EventsResponse{
		Date:   date,
		Events: progression.EventsOnDate(svc.events, date),
	}
}

// Upcoming returns the first limit events, 4 when limit is not positive.
func (svc *CalendarService) Upcoming(limit int) []progression.Event {
	if limit <= 0 {
		limit = defaultUpcomingLimit
	}
	return progression.Upcoming(svc.events, limit)
}
