package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"registration-service-api/models"
)

var idPattern = regexp.MustCompile(`^\d{7}$`)

func TestCreateAndGetFullRoundtrip(t *testing.T) {
	svc := NewSubmissionService(newTestDB(t))

	created, err := svc.Create(validInput())
	require.NoError(t, err)
	assert.Regexp(t, idPattern, created.ID)

	got, err := svc.GetFull(created.ID)
	require.NoError(t, err)

	assert.Equal(t, "Jan Novák", got.ContactPerson)
	assert.Equal(t, "Agro Novák s.r.o.", got.Company)
	assert.Equal(t, "jan@example.com", got.Email)
	assert.Equal(t, "Josef Novák", got.TractorOwnerName)
	assert.Equal(t, "Zápis traktoru Zetor 7245 do registru.", got.RequestDescription)
	assert.True(t, got.WantsPaperInvoice)
	assert.Equal(t, models.InitialStatus, got.Status)
	assert.Empty(t, got.AssignedEmployee)

	// Exactly one history entry carrying the initial status.
	require.Len(t, got.StatusHistory, 1)
	assert.Equal(t, models.InitialStatus, got.StatusHistory[0].Status)

	assert.Empty(t, got.InternalNotes)

	counts := map[string]int{}
	for _, f := range got.Files {
		counts[f.FileType]++
		assert.NotEmpty(t, f.FileUID)
		assert.NotEmpty(t, f.FileData)
	}
	assert.Equal(t, map[string]int{
		models.CategoryDocument:     1,
		models.CategoryRegistration: 1,
		models.CategoryPlate:        1,
		models.CategoryVehicle:      3,
	}, counts)
}

func TestCreateAllocatesSequentialIDs(t *testing.T) {
	svc := NewSubmissionService(newTestDB(t))

	first, err := svc.Create(validInput())
	require.NoError(t, err)
	second, err := svc.Create(validInput())
	require.NoError(t, err)

	prefix := time.Now().Format("2006")
	assert.Equal(t, prefix+"001", first.ID)
	assert.Equal(t, prefix+"002", second.ID)
}

// contendSubmissionID registers a create callback that claims the freshly
// generated ID right before the pending insert runs, simulating a concurrent
// creator winning the race. It fires at most `times` times and returns a
// counter of how often it did.
func contendSubmissionID(t *testing.T, db *gorm.DB, times int) *int {
	t.Helper()

	fired := 0
	err := db.Callback().Create().Before("gorm:create").Register("contend_submission_id", func(tx *gorm.DB) {
		sub, ok := tx.Statement.Dest.(*models.Submission)
		if !ok || fired >= times {
			return
		}
		fired++
		rival := tx.Session(&gorm.Session{NewDB: true}).Exec(`
			INSERT INTO submissions
				(id, contact_person, email, phone, contact_street, contact_city, contact_zip,
				 billing_name, billing_street, billing_city, billing_zip, request_description, status)
			VALUES (?, 'Rival', 'rival@example.com', '0', '-', '-', '-', '-', '-', '-', '-', '-', ?)`,
			sub.ID, models.InitialStatus)
		require.NoError(t, rival.Error)
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Callback().Create().Remove("contend_submission_id") })

	return &fired
}

func TestCreateRetriesWhenGeneratedIDIsTaken(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db)
	fired := contendSubmissionID(t, db, 1)

	created, err := svc.Create(validInput())
	require.NoError(t, err)
	require.Equal(t, 1, *fired)

	// The rival row died with the aborted transaction, so the replay gets the
	// first number of the year again.
	assert.Equal(t, time.Now().Format("2006")+"001", created.ID)

	var count int64
	require.NoError(t, db.Model(&models.Submission{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// The surviving record is complete: children landed with the retry.
	got, err := svc.GetFull(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jan Novák", got.ContactPerson)
	require.Len(t, got.StatusHistory, 1)
	assert.Len(t, got.Files, 6)
}

func TestCreateGivesUpAfterRepeatedIDConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db)
	fired := contendSubmissionID(t, db, createAttempts)

	created, err := svc.Create(validInput())
	require.Error(t, err)
	assert.Nil(t, created)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.Contains(t, err.Error(), "exhausted retries")
	assert.Equal(t, createAttempts, *fired)

	// Every attempt rolled back; nothing leaked.
	var count int64
	require.NoError(t, db.Model(&models.Submission{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	svc := NewSubmissionService(newTestDB(t))

	input := validInput()
	input.Files["photo"] = []IncomingFile{{Name: "x.jpg", MimeType: "image/jpeg", Data: "eA=="}}

	created, err := svc.Create(input)
	assert.Nil(t, created)
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestGetFullNotFound(t *testing.T) {
	svc := NewSubmissionService(newTestDB(t))

	_, err := svc.GetFull("1999001")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAppendStatusAppendsNeverMutates(t *testing.T) {
	svc := NewSubmissionService(newTestDB(t))
	created, err := svc.Create(validInput())
	require.NoError(t, err)

	// Forward, forward, and a backward correction: all allowed.
	updates := []string{models.StatusProcessing, models.StatusInvoiced, models.StatusPending}
	for _, status := range updates {
		require.NoError(t, svc.AppendStatus(created.ID, status))
	}

	got, err := svc.GetFull(created.ID)
	require.NoError(t, err)

	require.Len(t, got.StatusHistory, 1+len(updates))
	assert.Equal(t, models.InitialStatus, got.StatusHistory[0].Status)
	assert.Equal(t, models.StatusProcessing, got.StatusHistory[1].Status)
	assert.Equal(t, models.StatusInvoiced, got.StatusHistory[2].Status)
	assert.Equal(t, models.StatusPending, got.StatusHistory[3].Status)
	assert.Equal(t, models.StatusPending, got.Status)
}

func TestAppendStatusRejectsUnknownValue(t *testing.T) {
	svc := NewSubmissionService(newTestDB(t))
	created, err := svc.Create(validInput())
	require.NoError(t, err)

	err = svc.AppendStatus(created.ID, "Vymyšlený stav")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	got, err := svc.GetFull(created.ID)
	require.NoError(t, err)
	assert.Len(t, got.StatusHistory, 1)
}

func TestAppendStatusNotFound(t *testing.T) {
	svc := NewSubmissionService(newTestDB(t))
	err := svc.AppendStatus("1999001", models.StatusProcessing)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAppendNoteOrdersAscending(t *testing.T) {
	svc := NewSubmissionService(newTestDB(t))
	created, err := svc.Create(validInput())
	require.NoError(t, err)

	_, err = svc.AppendNote(created.ID, "první")
	require.NoError(t, err)
	notes, err := svc.AppendNote(created.ID, "druhá")
	require.NoError(t, err)

	require.Len(t, notes, 2)
	assert.Equal(t, "první", notes[0].NoteText)
	assert.Equal(t, "druhá", notes[1].NoteText)
}

func TestInternalDocumentsLifecycle(t *testing.T) {
	svc := NewSubmissionService(newTestDB(t))
	created, err := svc.Create(validInput())
	require.NoError(t, err)

	docs, err := svc.AddInternalFiles(created.ID, []IncomingFile{
		{Name: "smlouva.pdf", MimeType: "application/pdf", Data: "ZG9j"},
		{Name: "zapis.pdf", MimeType: "application/pdf", Data: "ZG9jMg=="},
	})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "smlouva.pdf", docs[0].FileName)

	// Out-of-range ordinal is a silent no-op.
	docs, err = svc.DeleteInternalFileAt(created.ID, 5)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = svc.DeleteInternalFileAt(created.ID, -1)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	// Ordinal deletion removes by insertion order.
	docs, err = svc.DeleteInternalFileAt(created.ID, 0)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "zapis.pdf", docs[0].FileName)

	// Stable-identifier deletion.
	docs, err = svc.DeleteInternalFileByUID(created.ID, docs[0].FileUID)
	require.NoError(t, err)
	assert.Empty(t, docs)

	// Unknown UID is a no-op too.
	docs, err = svc.DeleteInternalFileByUID(created.ID, "no-such-uid")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestInternalOperationsLeaveCustomerFilesUntouched(t *testing.T) {
	svc := NewSubmissionService(newTestDB(t))
	created, err := svc.Create(validInput())
	require.NoError(t, err)

	_, err = svc.AddInternalFiles(created.ID, []IncomingFile{
		{Name: "x.pdf", MimeType: "application/pdf", Data: "eA=="},
	})
	require.NoError(t, err)
	_, err = svc.DeleteInternalFileAt(created.ID, 0)
	require.NoError(t, err)
	require.NoError(t, svc.AppendStatus(created.ID, models.StatusProcessing))
	require.NoError(t, svc.AssignEmployee(created.ID, "Karel"))

	got, err := svc.GetFull(created.ID)
	require.NoError(t, err)

	customer := 0
	for _, f := range got.Files {
		if f.FileType != models.CategoryInternal {
			customer++
			assert.NotEmpty(t, f.FileData)
		}
	}
	assert.Equal(t, 6, customer)
}

func TestAssignEmployeeOverwrites(t *testing.T) {
	svc := NewSubmissionService(newTestDB(t))
	created, err := svc.Create(validInput())
	require.NoError(t, err)

	require.NoError(t, svc.AssignEmployee(created.ID, "Karel"))
	got, err := svc.GetFull(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Karel", got.AssignedEmployee)

	// Empty unassigns.
	require.NoError(t, svc.AssignEmployee(created.ID, ""))
	got, err = svc.GetFull(created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.AssignedEmployee)

	assert.ErrorIs(t, svc.AssignEmployee("1999001", "Karel"), ErrNotFound)
}

func TestListReturnsMetadataOnlyNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubmissionService(db)

	older, err := svc.Create(validInput())
	require.NoError(t, err)
	newer, err := svc.Create(validInput())
	require.NoError(t, err)

	// Creation timestamps can land in the same second; separate them.
	require.NoError(t, db.Model(&models.Submission{}).
		Where("id = ?", older.ID).
		Update("submission_date", time.Now().Add(-time.Hour)).Error)

	list, err := svc.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)

	for _, sub := range list {
		require.Len(t, sub.StatusHistory, 1)
		require.NotEmpty(t, sub.Files)
		for _, f := range sub.Files {
			assert.Empty(t, f.FileData, "list view must not carry payloads")
			assert.NotEmpty(t, f.FileName)
			assert.NotEmpty(t, f.MimeType)
		}
	}
}
