package progression

import "math"

// EmptyCatalogFallback is the denominator used when the resource catalog is
// empty. It is a placeholder carried over from the first dashboard release;
// Summary reports CatalogEstimated whenever it is applied.
const EmptyCatalogFallback = 20

// Snapshot is the read-only view of a user's progress record. A nil
// *Snapshot means the user has no record yet.
type Snapshot struct {
	XP                  int
	CompletedLessons    []string
	CompletedQuizzes    []string
	CompletedVideos     []string
	DownloadedResources []string
	Badges              []string
	StreakDays          int
}

type Counts struct {
	Lessons   int `json:"lessons"`
	Quizzes   int `json:"quizzes"`
	Videos    int `json:"videos"`
	Downloads int `json:"downloads"`
}

type Summary struct {
	Counts           Counts `json:"counts"`
	Completed        int    `json:"completed"`
	Total            int    `json:"total"`
	Percent          int    `json:"percent"`
	CatalogEstimated bool   `json:"catalog_estimated"`
	StreakDays       int    `json:"streak_days"`
	XP               int    `json:"xp"`
}

func (s *Snapshot) Counts() Counts {
	if s == nil {
		return Counts{}
	}
	return Counts{
		Lessons:   len(s.CompletedLessons),
		Quizzes:   len(s.CompletedQuizzes),
		Videos:    len(s.CompletedVideos),
		Downloads: len(s.DownloadedResources),
	}
}

// Completed counts lessons, quizzes and videos. Downloads are tracked but
// do not count toward completion.
func (s *Snapshot) Completed() int {
	c := s.Counts()
	return c.Lessons + c.Quizzes + c.Videos
}

func (s *Snapshot) xp() int {
	if s == nil {
		return 0
	}
	return clamp(s.XP)
}

func (s *Snapshot) streak() int {
	if s == nil {
		return 0
	}
	return clamp(s.StreakDays)
}

// Summarize aggregates a snapshot against a catalog of catalogSize
// resources. fallback replaces an empty catalog; values below 1 use
// EmptyCatalogFallback.
func Summarize(s *Snapshot, catalogSize, fallback int) Summary {
	if fallback < 1 {
		fallback = EmptyCatalogFallback
	}

	total := catalogSize
	estimated := false
	if total <= 0 {
		total = fallback
		estimated = true
	}

	completed := s.Completed()

	return Summary{
		Counts:           s.Counts(),
		Completed:        completed,
		Total:            total,
		Percent:          Percent(completed, total),
		CatalogEstimated: estimated,
		StreakDays:       s.streak(),
		XP:               s.xp(),
	}
}

// Percent rounds half up, so 2.5 becomes 3. The result is not capped at
// 100 when part exceeds total.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(clamp(part))*100/float64(total) + 0.5))
}
