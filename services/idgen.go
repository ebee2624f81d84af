package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"registration-service-api/models"
)

// NextSubmissionID allocates the next case number for the year of now,
// formatted as YYYYNNN. The sequence restarts at 001 every calendar year.
//
// The lookup is not serialized against concurrent creators; the primary key
// on submissions.id rejects the loser and the caller retries inside a fresh
// transaction.
func NextSubmissionID(tx *gorm.DB, now time.Time) (string, error) {
	prefix := now.Format("2006")

	var last models.Submission
	err := tx.Select("id").
		Where("id LIKE ?", prefix+"%").
		Order("id DESC").
		Limit(1).
		First(&last).Error

	seq := 0
	switch {
	case err == nil:
		if len(last.ID) > len(prefix) {
			if n, convErr := strconv.Atoi(last.ID[len(prefix):]); convErr == nil {
				seq = n
			}
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first submission of the year
	default:
		return "", fmt.Errorf("failed to look up latest submission id: %w", err)
	}

	return fmt.Sprintf("%s%03d", prefix, seq+1), nil
}
