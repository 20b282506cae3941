// model/progress.go
package model

import (
	"bytes"
	"time"

	"github.com/bytedance/sonic"
	"github.com/lac-hong-legacy/epsilon_api/progression"
	"gorm.io/datatypes"
)

// UserProgress is the per-user progress record, keyed by email. The id set
// columns hold JSON arrays of resource ids (or badge ids).
type UserProgress struct {
	ID                  string         `json:"id" gorm:"primaryKey"`
	UserEmail           string         `json:"user_email" gorm:"uniqueIndex;not null"`
	XP                  int            `json:"xp" gorm:"default:0"`
	CompletedLessons    datatypes.JSON `json:"completed_lessons" gorm:"type:jsonb"`
	CompletedQuizzes    datatypes.JSON `json:"completed_quizzes" gorm:"type:jsonb"`
	CompletedVideos     datatypes.JSON `json:"completed_videos" gorm:"type:jsonb"`
	DownloadedResources datatypes.JSON `json:"downloaded_resources" gorm:"type:jsonb"`
	Badges              datatypes.JSON `json:"badges" gorm:"type:jsonb"`
	StreakDays          int            `json:"streak_days" gorm:"default:0"`
	CreatedAt           time.Time      `json:"created_date"`
	UpdatedAt           time.Time      `json:"updated_date"`
}

// ProgressPatch is the part of a progress record the dashboard writes.
// Completion columns, XP, badges and streak belong to other writers and are
// never sent back.
type ProgressPatch struct {
	DownloadedResources datatypes.JSON `json:"downloaded_resources"`
}

// NewUserProgress returns the all-zero record created on a user's first visit.
func NewUserProgress(id, email string) *UserProgress {
	empty := datatypes.JSON("[]")
	return &UserProgress{
		ID:                  id,
		UserEmail:           email,
		XP:                  0,
		CompletedLessons:    empty,
		CompletedQuizzes:    empty,
		CompletedVideos:     empty,
		DownloadedResources: empty,
		Badges:              empty,
		StreakDays:          0,
	}
}

// IDSet decodes a JSON id column. Missing or malformed columns decode as
// empty; numeric ids are kept in their textual form.
func IDSet(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var values []interface{}
	if err := sonic.Unmarshal(raw, &values); err != nil {
		return []string{}
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		switch id := v.(type) {
		case string:
			out = append(out, id)
		case nil:
		default:
			b, err := sonic.Marshal(id)
			if err == nil {
				out = append(out, string(b))
			}
		}
	}
	return out
}

func EncodeIDSet(ids []string) datatypes.JSON {
	if ids == nil {
		ids = []string{}
	}
	b, err := sonic.Marshal(ids)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(b)
}

// AddDownload records a downloaded resource. It reports false when the id
// was already present; ids are never removed.
func (p *UserProgress) AddDownload(resourceID string) bool {
	ids := IDSet(p.DownloadedResources)
	for _, id := range ids {
		if id == resourceID {
			return false
		}
	}
	p.DownloadedResources = EncodeIDSet(append(ids, resourceID))
	return true
}

// Snapshot converts the record to the read-only view used by the
// calculations. A nil record yields a nil snapshot.
func (p *UserProgress) Snapshot() *progression.Snapshot {
	if p == nil {
		return nil
	}

	// A null column reads the same as a missing one.
	var badges []string
	if raw := bytes.TrimSpace(p.Badges); len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		badges = IDSet(p.Badges)
	}

	return &progression.Snapshot{
		XP:                  p.XP,
		CompletedLessons:    IDSet(p.CompletedLessons),
		CompletedQuizzes:    IDSet(p.CompletedQuizzes),
		CompletedVideos:     IDSet(p.CompletedVideos),
		DownloadedResources: IDSet(p.DownloadedResources),
		Badges:              badges,
		StreakDays:          p.StreakDays,
	}
}
