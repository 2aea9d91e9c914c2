package model

import "time"

// Document is the metadata row for one uploaded blob. S3Key is globally
// unique and must always point at a live object for as long as the row
// exists; the document service is its sole writer.
type Document struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ProjectID  uint      `json:"project_id" gorm:"not null;index"`
	FileName   string    `json:"file_name" gorm:"size:255;not null"`
	FileType   string    `json:"file_type,omitempty" gorm:"size:100"`
	S3Key      string    `json:"s3_key" gorm:"uniqueIndex;size:1024;not null"`
	UploaderID *uint     `json:"uploader_id,omitempty"` // NULL once the uploading user is removed
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Project  Project `json:"-" gorm:"foreignKey:ProjectID"`
	Uploader *User   `json:"-" gorm:"foreignKey:UploaderID;constraint:OnDelete:SET NULL"`
}
