package models

import "time"

// Submission is one customer case: contact and billing details, the free-text
// request, the current lifecycle status and the assigned employee. History,
// notes and files hang off it and are removed with it.
type Submission struct {
	ID                 string    `gorm:"primaryKey;column:id;size:16" json:"id"`
	ContactPerson      string    `gorm:"column:contact_person;not null" json:"contact_person"`
	Company            string    `gorm:"column:company" json:"company"`
	Email              string    `gorm:"column:email;not null" json:"email"`
	Phone              string    `gorm:"column:phone;not null" json:"phone"`
	ContactStreet      string    `gorm:"column:contact_street;not null" json:"contact_street"`
	ContactCity        string    `gorm:"column:contact_city;not null" json:"contact_city"`
	ContactZip         string    `gorm:"column:contact_zip;not null" json:"contact_zip"`
	BillingName        string    `gorm:"column:billing_name;not null" json:"billing_name"`
	BillingStreet      string    `gorm:"column:billing_street;not null" json:"billing_street"`
	BillingCity        string    `gorm:"column:billing_city;not null" json:"billing_city"`
	BillingZip         string    `gorm:"column:billing_zip;not null" json:"billing_zip"`
	ICO                string    `gorm:"column:ico" json:"ico"`
	DIC                string    `gorm:"column:dic" json:"dic"`
	WantsPaperInvoice  bool      `gorm:"column:wants_paper_invoice;default:false" json:"wants_paper_invoice"`
	TractorOwnerName   string    `gorm:"column:tractor_owner_name" json:"tractor_owner_name"`
	TractorOwnerStreet string    `gorm:"column:tractor_owner_street" json:"tractor_owner_street"`
	TractorOwnerCity   string    `gorm:"column:tractor_owner_city" json:"tractor_owner_city"`
	TractorOwnerZip    string    `gorm:"column:tractor_owner_zip" json:"tractor_owner_zip"`
	RequestDescription string    `gorm:"column:request_description;type:text;not null" json:"request_description"`
	Status             string    `gorm:"column:status;not null" json:"status"`
	AssignedEmployee   string    `gorm:"column:assigned_employee;default:''" json:"assigned_employee"`
	SubmissionDate     time.Time `gorm:"column:submission_date;autoCreateTime" json:"submission_date"`

	// Relations (cascade delete with the parent)
	StatusHistory []StatusHistoryEntry `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"status_history,omitempty"`
	InternalNotes []InternalNote       `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"internal_notes,omitempty"`
	Files         []FileAttachment     `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"files,omitempty"`
}

// TableName overrides
func (Submission) TableName() string {
	return "submissions"
}

// StatusHistoryEntry records one lifecycle transition. Rows are append-only;
// the newest row always matches Submission.Status.
type StatusHistoryEntry struct {
	ID           int       `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	SubmissionID string    `gorm:"column:submission_id;index;not null" json:"submission_id"`
	Status       string    `gorm:"column:status;not null" json:"status"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (StatusHistoryEntry) TableName() string {
	return "status_history"
}

// InternalNote is a staff note on a submission. Never edited, never deleted.
type InternalNote struct {
	ID           int       `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	SubmissionID string    `gorm:"column:submission_id;index;not null" json:"submission_id"`
	NoteText     string    `gorm:"column:note_text;type:text;not null" json:"note_text"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (InternalNote) TableName() string {
	return "internal_notes"
}
