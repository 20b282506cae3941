package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the identity record owned by the backend. Email is the key the
// progress records hang off.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role" gorm:"default:user"`
	CreatedAt time.Time `json:"created_date"`
	UpdatedAt time.Time `json:"updated_date"`
}
