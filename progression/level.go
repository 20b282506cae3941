// Package progression holds the pure calculations behind the dashboard,
// calendar and profile pages. Nothing in here talks to the backend.
package progression

// XPPerLevel is the width of every level bucket.
const XPPerLevel = 500

type LevelInfo struct {
	XP                   int     `json:"xp"`
	Level                int     `json:"level"`
	NextLevel            int     `json:"next_level"`
	XPIntoLevel          int     `json:"xp_into_level"`
	XPToNextLevel        int     `json:"xp_to_next_level"`
	LevelProgressPercent float64 `json:"level_progress_percent"`
}

func Level(xp int) int {
	return clamp(xp)/XPPerLevel + 1
}

// XPToNextLevel is always in [1, XPPerLevel].
func XPToNextLevel(xp int) int {
	return XPPerLevel - clamp(xp)%XPPerLevel
}

func LevelProgressPercent(xp int) float64 {
	return float64(clamp(xp)%XPPerLevel) / XPPerLevel * 100
}

func NewLevelInfo(xp int) LevelInfo {
	xp = clamp(xp)
	level := Level(xp)
	return LevelInfo{
		XP:                   xp,
		Level:                level,
		NextLevel:            level + 1,
		XPIntoLevel:          xp % XPPerLevel,
		XPToNextLevel:        XPToNextLevel(xp),
		LevelProgressPercent: LevelProgressPercent(xp),
	}
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
