package progression

const StarterBadgeID = "starter"

type BadgeStyle struct {
	Gradient string `json:"gradient"`
	Icon     string `json:"icon"`
	Border   string `json:"border"`
}

type Badge struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Name        string     `json:"name"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Style       BadgeStyle `json:"style"`
}

// Criterion describes what unlocks a badge. Metric is one of "lessons",
// "quizzes", "xp", "streak", "completed" or "" for badges granted on signup.
// A Target of 0 with Metric "completed" means the whole catalog.
type Criterion struct {
	Metric string
	Target int
}

type BadgeProgress struct {
	Badge   Badge `json:"badge"`
	Current int   `json:"current"`
	Target  int   `json:"target"`
	Met     bool  `json:"met"`
}

var badgeCatalog = []Badge{
	{ID: "starter", Type: "starter", Name: "Starter", Title: "Getting Started", Description: "Welcome to Epsilon!",
		Style: BadgeStyle{Gradient: "from-slate-400 to-slate-600", Icon: "🌟", Border: "border-slate-300"}},
	{ID: "learner", Type: "learner", Name: "Learner", Title: "Eager Learner", Description: "Complete 5 lessons",
		Style: BadgeStyle{Gradient: "from-blue-400 to-blue-600", Icon: "📚", Border: "border-blue-300"}},
	{ID: "achiever", Type: "achiever", Name: "Achiever", Title: "Quiz Master", Description: "Pass 5 quizzes",
		Style: BadgeStyle{Gradient: "from-green-400 to-green-600", Icon: "🏆", Border: "border-green-300"}},
	{ID: "master", Type: "master", Name: "Master", Title: "Knowledge Master", Description: "Earn 1000 XP",
		Style: BadgeStyle{Gradient: "from-purple-400 to-purple-600", Icon: "💎", Border: "border-purple-300"}},
	{ID: "champion", Type: "champion", Name: "Champion", Title: "Champion", Description: "7-day streak",
		Style: BadgeStyle{Gradient: "from-amber-400 to-amber-600", Icon: "👑", Border: "border-amber-300"}},
	{ID: "legend", Type: "legend", Name: "Legend", Title: "Epsilon Legend", Description: "Complete all content",
		Style: BadgeStyle{Gradient: "from-rose-400 to-rose-600", Icon: "🔥", Border: "border-rose-300"}},
}

var badgeCriteria = map[string]Criterion{
	"starter":  {},
	"learner":  {Metric: "lessons", Target: 5},
	"achiever": {Metric: "quizzes", Target: 5},
	"master":   {Metric: "xp", Target: 1000},
	"champion": {Metric: "streak", Target: 7},
	"legend":   {Metric: "completed"},
}

// BadgeCatalog returns a copy of the fixed, ordered catalog.
func BadgeCatalog() []Badge {
	out := make([]Badge, len(badgeCatalog))
	copy(out, badgeCatalog)
	return out
}

// EarnedBadgeIDs falls back to the starter badge when there is no record.
func EarnedBadgeIDs(s *Snapshot) []string {
	if s == nil || s.Badges == nil {
		return []string{StarterBadgeID}
	}
	return s.Badges
}

// Partition splits catalog into earned and locked, both in catalog order.
// Every catalog entry lands in exactly one of the two.
func Partition(catalog []Badge, earnedIDs []string) (earned, locked []Badge) {
	has := make(map[string]struct{}, len(earnedIDs))
	for _, id := range earnedIDs {
		has[id] = struct{}{}
	}

	earned = make([]Badge, 0, len(catalog))
	locked = make([]Badge, 0, len(catalog))
	for _, b := range catalog {
		if _, ok := has[b.ID]; ok {
			earned = append(earned, b)
		} else {
			locked = append(locked, b)
		}
	}
	return earned, locked
}

// CriteriaProgress reports how far the snapshot is from each badge. It does
// not award anything.
func CriteriaProgress(badges []Badge, s *Snapshot, catalogSize int) []BadgeProgress {
	c := s.Counts()
	out := make([]BadgeProgress, 0, len(badges))
	for _, b := range badges {
		crit := badgeCriteria[b.ID]

		var current, target int
		switch crit.Metric {
		case "lessons":
			current, target = c.Lessons, crit.Target
		case "quizzes":
			current, target = c.Quizzes, crit.Target
		case "xp":
			current, target = s.xp(), crit.Target
		case "streak":
			current, target = s.streak(), crit.Target
		case "completed":
			current, target = s.Completed(), catalogSize
			if target <= 0 {
				target = EmptyCatalogFallback
			}
		}

		out = append(out, BadgeProgress{
			Badge:   b,
			Current: current,
			Target:  target,
			Met:     current >= target,
		})
	}
	return out
}
