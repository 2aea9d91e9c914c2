package model

import "time"

// DefaultParticipantRole is assigned to invited users.
const DefaultParticipantRole = "participant"

// Participant joins a user to a project they were invited to. The composite
// primary key keeps at most one row per (user, project) pair; the project
// owner is never written here.
type Participant struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey"`
	ProjectID uint      `json:"project_id" gorm:"primaryKey"`
	Role      string    `json:"role" gorm:"size:50;not null;default:'participant'"`
	AddedAt   time.Time `json:"added_at" gorm:"autoCreateTime"`

	// Relations
	User    User    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Project Project `json:"-" gorm:"foreignKey:ProjectID"`
}
