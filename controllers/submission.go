// controllers/submission.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"registration-service-api/config"
	"registration-service-api/export"
	"registration-service-api/models"
	"registration-service-api/services"
	"registration-service-api/utils"
)

func submissionService() *services.SubmissionService {
	return services.NewSubmissionService(config.DB)
}

// ===================== INTAKE =====================

type filePayload struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type createSubmissionRequest struct {
	ContactPerson      string `json:"contactPerson"`
	Company            string `json:"company"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	ContactStreet      string `json:"contactStreet"`
	ContactCity        string `json:"contactCity"`
	ContactZip         string `json:"contactZip"`
	BillingName        string `json:"billingName"`
	BillingStreet      string `json:"billingStreet"`
	BillingCity        string `json:"billingCity"`
	BillingZip         string `json:"billingZip"`
	ICO                string `json:"ico"`
	DIC                string `json:"dic"`
	WantsPaperInvoice  bool   `json:"wantsPaperInvoice"`
	TractorOwnerName   string `json:"tractorOwnerName"`
	TractorOwnerStreet string `json:"tractorOwnerStreet"`
	TractorOwnerCity   string `json:"tractorOwnerCity"`
	TractorOwnerZip    string `json:"tractorOwnerZip"`
	RequestDescription string `json:"requestDescription"`

	Documents                  []filePayload `json:"documents"`
	RegistrationCertificates   []filePayload `json:"registrationCertificates"`
	VehiclePlatePhotos         []filePayload `json:"vehiclePlatePhotos"`
	InstallationDocuments      []filePayload `json:"installationDocuments"`
	VehicleDocumentationPhotos []filePayload `json:"vehicleDocumentationPhotos"`
}

// firstMissingField returns the wire name of the first required field that is
// empty, so the form can focus it.
func firstMissingField(req *createSubmissionRequest) string {
	required := []struct {
		field string
		value string
	}{
		{"contactPerson", req.ContactPerson},
		{"email", req.Email},
		{"phone", req.Phone},
		{"contactStreet", req.ContactStreet},
		{"contactCity", req.ContactCity},
		{"contactZip", req.ContactZip},
		{"billingName", req.BillingName},
		{"billingStreet", req.BillingStreet},
		{"billingCity", req.BillingCity},
		{"billingZip", req.BillingZip},
		{"requestDescription", req.RequestDescription},
	}
	for _, r := range required {
		if utils.SanitizeInput(r.value) == "" {
			return r.field
		}
	}
	return ""
}

func toIncoming(files []filePayload) []services.IncomingFile {
	out := make([]services.IncomingFile, 0, len(files))
	for _, f := range files {
		out = append(out, services.IncomingFile{Name: f.Name, MimeType: f.MimeType, Data: f.Data})
	}
	return out
}

// CreateSubmission handles the customer intake form.
func CreateSubmission(c *gin.Context) {
	var req createSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if field := firstMissingField(&req); field != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Required field is missing", "field": field})
		return
	}
	if !utils.ValidateEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address", "field": "email"})
		return
	}

	input := &services.NewSubmission{
		ContactPerson:      utils.SanitizeInput(req.ContactPerson),
		Company:            utils.SanitizeInput(req.Company),
		Email:              utils.SanitizeInput(req.Email),
		Phone:              utils.SanitizeInput(req.Phone),
		ContactStreet:      utils.SanitizeInput(req.ContactStreet),
		ContactCity:        utils.SanitizeInput(req.ContactCity),
		ContactZip:         utils.SanitizeInput(req.ContactZip),
		BillingName:        utils.SanitizeInput(req.BillingName),
		BillingStreet:      utils.SanitizeInput(req.BillingStreet),
		BillingCity:        utils.SanitizeInput(req.BillingCity),
		BillingZip:         utils.SanitizeInput(req.BillingZip),
		ICO:                utils.SanitizeInput(req.ICO),
		DIC:                utils.SanitizeInput(req.DIC),
		WantsPaperInvoice:  req.WantsPaperInvoice,
		TractorOwnerName:   utils.SanitizeInput(req.TractorOwnerName),
		TractorOwnerStreet: utils.SanitizeInput(req.TractorOwnerStreet),
		TractorOwnerCity:   utils.SanitizeInput(req.TractorOwnerCity),
		TractorOwnerZip:    utils.SanitizeInput(req.TractorOwnerZip),
		RequestDescription: utils.SanitizeInput(req.RequestDescription),
		Files: map[string][]services.IncomingFile{
			models.CategoryDocument:     toIncoming(req.Documents),
			models.CategoryRegistration: toIncoming(req.RegistrationCertificates),
			models.CategoryPlate:        toIncoming(req.VehiclePlatePhotos),
			models.CategoryInstallation: toIncoming(req.InstallationDocuments),
			models.CategoryVehicle:      toIncoming(req.VehicleDocumentationPhotos),
		},
	}

	created, err := submissionService().Create(input)
	if errors.Is(err, services.ErrInvalidCategory) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown file category"})
		return
	}
	if err != nil {
		log.Printf("Failed to create submission: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission"})
		return
	}

	// The record is durable; notification is best-effort and must not delay
	// or fail the response.
	go services.SendSubmissionNotifications(created)

	c.JSON(http.StatusCreated, gin.H{"id": created.ID})
}

// ===================== ADMIN =====================

// GetSubmissions returns all cases, newest first, without file payloads.
func GetSubmissions(c *gin.Context) {
	submissions, err := submissionService().List()
	if err != nil {
		log.Printf("Failed to list submissions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	cases := make([]*export.Case, 0, len(submissions))
	for i := range submissions {
		cases = append(cases, export.FromSubmission(&submissions[i], false))
	}
	c.JSON(http.StatusOK, cases)
}

// GetSubmission returns one case with full file payloads.
func GetSubmission(c *gin.Context) {
	id := c.Param("id")
	submission, err := submissionService().GetFull(id)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		log.Printf("Failed to load submission %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, export.FromSubmission(submission, true))
}

// UpdateStatus overwrites the current status and appends to the history log.
func UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.IsValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status", "field": "status"})
		return
	}

	err := submissionService().AppendStatus(id, req.Status)
	if errors.Is(err, services.ErrInvalidStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status", "field": "status"})
		return
	}
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		log.Printf("Failed to update status of %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func toNoteList(notes []models.InternalNote) []export.Note {
	out := make([]export.Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, export.Note{Text: n.NoteText, Date: n.CreatedAt})
	}
	return out
}

// AddNote appends one internal note and returns the updated list.
func AddNote(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	notes, err := submissionService().AppendNote(id, utils.SanitizeInput(req.Text))
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		log.Printf("Failed to add note to %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Note failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"internalNotes": toNoteList(notes)})
}

func toFileList(files []models.FileAttachment) []export.File {
	out := make([]export.File, 0, len(files))
	for _, f := range files {
		out = append(out, export.File{UID: f.FileUID, Name: f.FileName, MimeType: f.MimeType})
	}
	return out
}

// AddInternalDocuments stores staff-only files on an existing case.
func AddInternalDocuments(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Files []filePayload `json:"files" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	files, err := submissionService().AddInternalFiles(id, toIncoming(req.Files))
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		log.Printf("Failed to add internal documents to %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"internalDocuments": toFileList(files)})
}

// DeleteInternalDocument removes one internal file by its position in
// insertion order. Kept for dashboard compatibility; prefer the UID route.
func DeleteInternalDocument(c *gin.Context) {
	id := c.Param("id")

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid index"})
		return
	}

	files, err := submissionService().DeleteInternalFileAt(id, index)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		log.Printf("Failed to delete internal document of %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"internalDocuments": toFileList(files)})
}

// DeleteInternalDocumentByUID removes one internal file by its stable
// identifier.
func DeleteInternalDocumentByUID(c *gin.Context) {
	id := c.Param("id")
	fileUID := c.Param("uid")

	files, err := submissionService().DeleteInternalFileByUID(id, fileUID)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		log.Printf("Failed to delete internal document %s of %s: %v", fileUID, id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"internalDocuments": toFileList(files)})
}

// AssignEmployee overwrites the assignment; empty unassigns.
func AssignEmployee(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Employee string `json:"employee"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := submissionService().AssignEmployee(id, utils.SanitizeInput(req.Employee))
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		log.Printf("Failed to assign employee on %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Assign failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
