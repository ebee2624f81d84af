package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"registration-service-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to open in-memory database")

	require.NoError(t, db.AutoMigrate(
		&models.Submission{},
		&models.StatusHistoryEntry{},
		&models.InternalNote{},
		&models.FileAttachment{},
	))

	return db
}

// seedSubmission inserts a minimal submission row with the given ID.
func seedSubmission(t *testing.T, db *gorm.DB, id string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Submission{
		ID:                 id,
		ContactPerson:      "Jan Novák",
		Email:              "jan@example.com",
		Phone:              "+420123456789",
		ContactStreet:      "Polní 1",
		ContactCity:        "Brno",
		ContactZip:         "60200",
		BillingName:        "Jan Novák",
		BillingStreet:      "Polní 1",
		BillingCity:        "Brno",
		BillingZip:         "60200",
		RequestDescription: "Zápis traktoru",
		Status:             models.InitialStatus,
	}).Error)
}

func validInput() *NewSubmission {
	return &NewSubmission{
		ContactPerson:      "Jan Novák",
		Company:            "Agro Novák s.r.o.",
		Email:              "jan@example.com",
		Phone:              "+420123456789",
		ContactStreet:      "Polní 1",
		ContactCity:        "Brno",
		ContactZip:         "60200",
		BillingName:        "Agro Novák s.r.o.",
		BillingStreet:      "Polní 1",
		BillingCity:        "Brno",
		BillingZip:         "60200",
		ICO:                "12345678",
		DIC:                "CZ12345678",
		WantsPaperInvoice:  true,
		TractorOwnerName:   "Josef Novák",
		TractorOwnerStreet: "Luční 5",
		TractorOwnerCity:   "Vyškov",
		TractorOwnerZip:    "68201",
		RequestDescription: "Zápis traktoru Zetor 7245 do registru.",
		Files: map[string][]IncomingFile{
			models.CategoryDocument:     {{Name: "tp.pdf", MimeType: "application/pdf", Data: "dGVjaA=="}},
			models.CategoryRegistration: {{Name: "orv.pdf", MimeType: "application/pdf", Data: "cmVn"}},
			models.CategoryPlate:        {{Name: "stitek.jpg", MimeType: "image/jpeg", Data: "cGxhdGU="}},
			models.CategoryVehicle: {
				{Name: "front.jpg", MimeType: "image/jpeg", Data: "Zm90bzE="},
				{Name: "side.jpg", MimeType: "image/jpeg", Data: "Zm90bzI="},
				{Name: "rear.jpg", MimeType: "image/jpeg", Data: "Zm90bzM="},
			},
		},
	}
}
