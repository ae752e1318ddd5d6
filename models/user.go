package models

import "time"

// User is owned by the identity collaborator; the engine only reads it.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Name      string    `gorm:"size:32;default:New User" json:"name"`
	Mobile    string    `gorm:"unique;type:varchar(11);not null" json:"mobile"`
	AvatarURL string    `gorm:"size:128;default:''" json:"avatarUrl"`
}
