package model

import "time"

// Project represents a project owned by exactly one user. Documents and
// participants are cascade-deleted with the project at the database level.
type Project struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	OwnerID     uint      `json:"owner_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Owner        User          `json:"-" gorm:"foreignKey:OwnerID"`
	Documents    []Document    `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Participants []Participant `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}
