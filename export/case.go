// Package export rebuilds one submission into a downloadable archive:
// a text report plus one folder per non-empty file category.
package export

import (
	"time"

	"registration-service-api/models"
)

// File is a stored attachment as it travels over the wire. Data is base64
// and empty in metadata-only views.
type File struct {
	UID      string `json:"uid,omitempty"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// StatusChange is one lifecycle transition.
type StatusChange struct {
	Status string    `json:"status"`
	Date   time.Time `json:"date"`
}

// Note is one internal staff note.
type Note struct {
	Text string    `json:"text"`
	Date time.Time `json:"date"`
}

// Case is the full wire representation of a submission: the detail endpoint
// returns it and the bundler consumes it.
type Case struct {
	ID                 string    `json:"id"`
	ContactPerson      string    `json:"contactPerson"`
	Company            string    `json:"company"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	ContactStreet      string    `json:"contactStreet"`
	ContactCity        string    `json:"contactCity"`
	ContactZip         string    `json:"contactZip"`
	BillingName        string    `json:"billingName"`
	BillingStreet      string    `json:"billingStreet"`
	BillingCity        string    `json:"billingCity"`
	BillingZip         string    `json:"billingZip"`
	ICO                string    `json:"ico"`
	DIC                string    `json:"dic"`
	WantsPaperInvoice  bool      `json:"wantsPaperInvoice"`
	TractorOwnerName   string    `json:"tractorOwnerName"`
	TractorOwnerStreet string    `json:"tractorOwnerStreet"`
	TractorOwnerCity   string    `json:"tractorOwnerCity"`
	TractorOwnerZip    string    `json:"tractorOwnerZip"`
	RequestDescription string    `json:"requestDescription"`
	Status             string    `json:"status"`
	AssignedEmployee   string    `json:"assignedEmployee"`
	SubmissionDate     time.Time `json:"submissionDate"`

	StatusHistory []StatusChange `json:"statusHistory"`
	InternalNotes []Note         `json:"internalNotes"`

	Documents                  []File `json:"documents"`
	RegistrationCertificates   []File `json:"registrationCertificates"`
	VehiclePlatePhotos         []File `json:"vehiclePlatePhotos"`
	InstallationDocuments      []File `json:"installationDocuments"`
	VehicleDocumentationPhotos []File `json:"vehicleDocumentationPhotos"`
	InternalDocuments          []File `json:"internalDocuments"`
}

// FromSubmission converts the stored record into its wire shape, grouping the
// flat file list by category in one pass. With includeData false the payloads
// are dropped (list view).
func FromSubmission(sub *models.Submission, includeData bool) *Case {
	c := &Case{
		ID:                 sub.ID,
		ContactPerson:      sub.ContactPerson,
		Company:            sub.Company,
		Email:              sub.Email,
		Phone:              sub.Phone,
		ContactStreet:      sub.ContactStreet,
		ContactCity:        sub.ContactCity,
		ContactZip:         sub.ContactZip,
		BillingName:        sub.BillingName,
		BillingStreet:      sub.BillingStreet,
		BillingCity:        sub.BillingCity,
		BillingZip:         sub.BillingZip,
		ICO:                sub.ICO,
		DIC:                sub.DIC,
		WantsPaperInvoice:  sub.WantsPaperInvoice,
		TractorOwnerName:   sub.TractorOwnerName,
		TractorOwnerStreet: sub.TractorOwnerStreet,
		TractorOwnerCity:   sub.TractorOwnerCity,
		TractorOwnerZip:    sub.TractorOwnerZip,
		RequestDescription: sub.RequestDescription,
		Status:             sub.Status,
		AssignedEmployee:   sub.AssignedEmployee,
		SubmissionDate:     sub.SubmissionDate,
		StatusHistory:      make([]StatusChange, 0, len(sub.StatusHistory)),
		InternalNotes:      make([]Note, 0, len(sub.InternalNotes)),

		Documents:                  []File{},
		RegistrationCertificates:   []File{},
		VehiclePlatePhotos:         []File{},
		InstallationDocuments:      []File{},
		VehicleDocumentationPhotos: []File{},
		InternalDocuments:          []File{},
	}

	for _, h := range sub.StatusHistory {
		c.StatusHistory = append(c.StatusHistory, StatusChange{Status: h.Status, Date: h.CreatedAt})
	}
	for _, n := range sub.InternalNotes {
		c.InternalNotes = append(c.InternalNotes, Note{Text: n.NoteText, Date: n.CreatedAt})
	}

	groups := map[string]*[]File{
		models.CategoryDocument:     &c.Documents,
		models.CategoryRegistration: &c.RegistrationCertificates,
		models.CategoryPlate:        &c.VehiclePlatePhotos,
		models.CategoryInstallation: &c.InstallationDocuments,
		models.CategoryVehicle:      &c.VehicleDocumentationPhotos,
		models.CategoryInternal:     &c.InternalDocuments,
	}
	for _, f := range sub.Files {
		group, ok := groups[f.FileType]
		if !ok {
			continue
		}
		file := File{UID: f.FileUID, Name: f.FileName, MimeType: f.MimeType}
		if includeData {
			file.Data = f.FileData
		}
		*group = append(*group, file)
	}

	return c
}
