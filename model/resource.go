package model

import "time"

const (
	ResourceLesson   = "lesson"
	ResourceQuiz     = "quiz"
	ResourceVideo    = "video"
	ResourceDownload = "download"
)

// Resource is a catalog entry. ObjectKey points at the file in object
// storage for downloadable resources.
type Resource struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Type        string    `json:"type" gorm:"index;not null"` // lesson, quiz, video, download
	Description string    `json:"description" gorm:"type:text"`
	Category    string    `json:"category"`
	Duration    string    `json:"duration"`
	URL         string    `json:"url"`
	ObjectKey   string    `json:"object_key"`
	XPReward    int       `json:"xp_reward" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_date"`
	UpdatedAt   time.Time `json:"updated_date"`
}
