package models

import "time"

// FileAttachment stores one uploaded file as base64 text. FileUID is a stable
// identifier issued at insert time; admin deletion should prefer it over the
// ordinal position the dashboard historically used.
type FileAttachment struct {
	ID           int       `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	FileUID      string    `gorm:"column:file_uid;size:36;uniqueIndex" json:"file_uid"`
	SubmissionID string    `gorm:"column:submission_id;index;not null" json:"submission_id"`
	FileType     string    `gorm:"column:file_type;not null" json:"file_type"`
	FileName     string    `gorm:"column:file_name;not null" json:"file_name"`
	MimeType     string    `gorm:"column:mime_type;not null" json:"mime_type"`
	FileData     string    `gorm:"column:file_data;type:longtext;not null" json:"file_data"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName overrides
func (FileAttachment) TableName() string {
	return "files"
}

// File categories. Everything except CategoryInternal is write-once at
// submission time; internal documents are added and removed by staff later.
const (
	CategoryDocument     = "document"     // technical certificate
	CategoryRegistration = "registration" // registration certificate
	CategoryPlate        = "plate"        // plate photo
	CategoryInstallation = "installation" // installation proof
	CategoryVehicle      = "vehicle"      // vehicle documentation photos
	CategoryInternal     = "internal"     // staff-only, post-submission
)

// Categories lists all file categories in their canonical order.
var Categories = []string{
	CategoryDocument,
	CategoryRegistration,
	CategoryPlate,
	CategoryInstallation,
	CategoryVehicle,
	CategoryInternal,
}

// IsValidCategory reports whether c belongs to the closed category set.
func IsValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
