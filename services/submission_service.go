package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"registration-service-api/models"
)

// ErrNotFound is returned when the referenced submission does not exist.
var ErrNotFound = errors.New("submission not found")

// ErrInvalidStatus is returned when a status outside the lifecycle set is
// supplied. Callers map it to a client error, not a server one.
var ErrInvalidStatus = errors.New("invalid status")

// ErrInvalidCategory is returned when the intake carries a file category
// outside the known set.
var ErrInvalidCategory = errors.New("invalid file category")

// createAttempts bounds the duplicate-ID retry loop. Two attempts only lose
// when a third creator races in between, so three is plenty.
const createAttempts = 3

// IncomingFile is an uploaded file that has not been stored yet: original
// name, MIME type and base64 payload.
type IncomingFile struct {
	Name     string
	MimeType string
	Data     string
}

// NewSubmission carries the customer intake form. Files holds the customer
// categories only; internal documents are added by staff after creation.
type NewSubmission struct {
	ContactPerson      string
	Company            string
	Email              string
	Phone              string
	ContactStreet      string
	ContactCity        string
	ContactZip         string
	BillingName        string
	BillingStreet      string
	BillingCity        string
	BillingZip         string
	ICO                string
	DIC                string
	WantsPaperInvoice  bool
	TractorOwnerName   string
	TractorOwnerStreet string
	TractorOwnerCity   string
	TractorOwnerZip    string
	RequestDescription string
	Files              map[string][]IncomingFile
}

// SubmissionService owns persistence of submissions and their children.
type SubmissionService struct {
	db *gorm.DB
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	return &SubmissionService{db: db}
}

// Create persists the submission, its initial status history entry and all
// customer files in one transaction. Either everything lands or nothing does.
// A duplicate generated ID aborts the transaction and the whole attempt is
// replayed with a fresh ID.
func (s *SubmissionService) Create(input *NewSubmission) (*models.Submission, error) {
	for category := range input.Files {
		if !models.IsValidCategory(category) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
		}
	}

	var created models.Submission
	var lastErr error

	for attempt := 1; attempt <= createAttempts; attempt++ {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			id, err := NextSubmissionID(tx, time.Now())
			if err != nil {
				return err
			}

			submission := models.Submission{
				ID:                 id,
				ContactPerson:      input.ContactPerson,
				Company:            input.Company,
				Email:              input.Email,
				Phone:              input.Phone,
				ContactStreet:      input.ContactStreet,
				ContactCity:        input.ContactCity,
				ContactZip:         input.ContactZip,
				BillingName:        input.BillingName,
				BillingStreet:      input.BillingStreet,
				BillingCity:        input.BillingCity,
				BillingZip:         input.BillingZip,
				ICO:                input.ICO,
				DIC:                input.DIC,
				WantsPaperInvoice:  input.WantsPaperInvoice,
				TractorOwnerName:   input.TractorOwnerName,
				TractorOwnerStreet: input.TractorOwnerStreet,
				TractorOwnerCity:   input.TractorOwnerCity,
				TractorOwnerZip:    input.TractorOwnerZip,
				RequestDescription: input.RequestDescription,
				Status:             models.InitialStatus,
				AssignedEmployee:   "",
			}
			if err := tx.Create(&submission).Error; err != nil {
				return err
			}

			if err := tx.Create(&models.StatusHistoryEntry{
				SubmissionID: id,
				Status:       models.InitialStatus,
			}).Error; err != nil {
				return err
			}

			for _, category := range models.Categories {
				if category == models.CategoryInternal {
					continue
				}
				for _, file := range input.Files[category] {
					if err := tx.Create(&models.FileAttachment{
						FileUID:      uuid.NewString(),
						SubmissionID: id,
						FileType:     category,
						FileName:     file.Name,
						MimeType:     file.MimeType,
						FileData:     file.Data,
					}).Error; err != nil {
						return err
					}
				}
			}

			created = submission
			return nil
		})
		if err == nil {
			return &created, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to create submission: %w", err)
		}
		lastErr = err
	}

	return nil, fmt.Errorf("failed to create submission: id conflicts exhausted retries: %w", lastErr)
}

// List returns all submissions, newest first, with history and notes but
// file metadata only. Payloads are excluded to keep the response bounded.
func (s *SubmissionService) List() ([]models.Submission, error) {
	var submissions []models.Submission
	err := s.db.
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("InternalNotes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "file_uid", "submission_id", "file_type", "file_name", "mime_type", "created_at").
				Order("id ASC")
		}).
		Order("submission_date DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

// GetFull returns one submission with history, notes and full file payloads.
func (s *SubmissionService) GetFull(id string) (*models.Submission, error) {
	var submission models.Submission
	err := s.db.
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("InternalNotes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("id = ?", id).
		First(&submission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load submission %s: %w", id, err)
	}
	return &submission, nil
}

func (s *SubmissionService) exists(tx *gorm.DB, id string) error {
	var found models.Submission
	err := tx.Select("id").Where("id = ?", id).First(&found).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// AppendStatus overwrites the current status and appends one history row.
// Any member of the lifecycle set is accepted, including backward moves.
func (s *SubmissionService) AppendStatus(id, status string) error {
	if !models.IsValidStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.exists(tx, id); err != nil {
			return err
		}
		if err := tx.Model(&models.Submission{}).
			Where("id = ?", id).
			Update("status", status).Error; err != nil {
			return err
		}
		return tx.Create(&models.StatusHistoryEntry{
			SubmissionID: id,
			Status:       status,
		}).Error
	})
}

// AppendNote adds one internal note and returns the updated note list.
func (s *SubmissionService) AppendNote(id, text string) ([]models.InternalNote, error) {
	if err := s.exists(s.db, id); err != nil {
		return nil, err
	}
	if err := s.db.Create(&models.InternalNote{
		SubmissionID: id,
		NoteText:     text,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to add note to %s: %w", id, err)
	}
	return s.notes(id)
}

func (s *SubmissionService) notes(id string) ([]models.InternalNote, error) {
	var notes []models.InternalNote
	err := s.db.Where("submission_id = ?", id).
		Order("created_at ASC, id ASC").
		Find(&notes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load notes for %s: %w", id, err)
	}
	return notes, nil
}

// AddInternalFiles appends staff-only documents and returns the updated
// internal-document metadata.
func (s *SubmissionService) AddInternalFiles(id string, files []IncomingFile) ([]models.FileAttachment, error) {
	if err := s.exists(s.db, id); err != nil {
		return nil, err
	}
	for _, file := range files {
		if err := s.db.Create(&models.FileAttachment{
			FileUID:      uuid.NewString(),
			SubmissionID: id,
			FileType:     models.CategoryInternal,
			FileName:     file.Name,
			MimeType:     file.MimeType,
			FileData:     file.Data,
		}).Error; err != nil {
			return nil, fmt.Errorf("failed to store internal document for %s: %w", id, err)
		}
	}
	return s.InternalDocuments(id)
}

// InternalDocuments returns metadata of the internal files in insertion order.
func (s *SubmissionService) InternalDocuments(id string) ([]models.FileAttachment, error) {
	if err := s.exists(s.db, id); err != nil {
		return nil, err
	}
	var files []models.FileAttachment
	err := s.db.Select("id", "file_uid", "submission_id", "file_type", "file_name", "mime_type", "created_at").
		Where("submission_id = ? AND file_type = ?", id, models.CategoryInternal).
		Order("id ASC").
		Find(&files).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load internal documents for %s: %w", id, err)
	}
	return files, nil
}

// DeleteInternalFileAt removes the internal document at the given zero-based
// position within insertion order. An out-of-range index is a no-op. This is
// a compatibility shim for the old dashboard; DeleteInternalFileByUID is the
// stable contract.
func (s *SubmissionService) DeleteInternalFileAt(id string, index int) ([]models.FileAttachment, error) {
	if err := s.exists(s.db, id); err != nil {
		return nil, err
	}
	if index >= 0 {
		var target models.FileAttachment
		err := s.db.Select("id").
			Where("submission_id = ? AND file_type = ?", id, models.CategoryInternal).
			Order("id ASC").
			Offset(index).
			Limit(1).
			First(&target).Error
		if err == nil {
			if err := s.db.Delete(&models.FileAttachment{}, target.ID).Error; err != nil {
				return nil, fmt.Errorf("failed to delete internal document of %s: %w", id, err)
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to resolve internal document of %s: %w", id, err)
		}
	}
	return s.InternalDocuments(id)
}

// DeleteInternalFileByUID removes one internal document by its stable
// identifier. An unknown UID is a no-op, mirroring the ordinal shim.
func (s *SubmissionService) DeleteInternalFileByUID(id, fileUID string) ([]models.FileAttachment, error) {
	if err := s.exists(s.db, id); err != nil {
		return nil, err
	}
	err := s.db.
		Where("submission_id = ? AND file_type = ? AND file_uid = ?", id, models.CategoryInternal, fileUID).
		Delete(&models.FileAttachment{}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to delete internal document %s of %s: %w", fileUID, id, err)
	}
	return s.InternalDocuments(id)
}

// AssignEmployee overwrites the assignment. Empty unassigns. Last write wins.
func (s *SubmissionService) AssignEmployee(id, employee string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.exists(tx, id); err != nil {
			return err
		}
		return tx.Model(&models.Submission{}).
			Where("id = ?", id).
			Update("assigned_employee", employee).Error
	})
}
