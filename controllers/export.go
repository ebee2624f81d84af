package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"registration-service-api/export"
	"registration-service-api/services"
)

// DownloadCaseArchive streams the full case archive: the detail report plus
// one folder per non-empty file category.
func DownloadCaseArchive(c *gin.Context) {
	id := c.Param("id")

	submission, err := submissionService().GetFull(id)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if err != nil {
		log.Printf("Failed to load submission %s for archive: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var buf bytes.Buffer
	if err := export.BuildArchive(export.FromSubmission(submission, true), &buf); err != nil {
		log.Printf("Failed to build archive for %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build archive"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.ArchiveName(id)))
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

// ExportSubmissionsToExcel writes the case list as a spreadsheet for the
// back office.
func ExportSubmissionsToExcel(c *gin.Context) {
	submissions, err := submissionService().List()
	if err != nil {
		log.Printf("Failed to list submissions for export: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"Číslo", "Stav", "Kontaktní osoba", "Firma", "Email", "Telefon", "Vyřizuje", "Datum vložení"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, sub := range submissions {
		values := []interface{}{
			sub.ID,
			sub.Status,
			sub.ContactPerson,
			sub.Company,
			sub.Email,
			sub.Phone,
			sub.AssignedEmployee,
			sub.SubmissionDate.Format("2. 1. 2006 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		log.Printf("Failed to write spreadsheet: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate Excel file"})
		return
	}

	filename := fmt.Sprintf("prehled_pripadu_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buffer.Bytes())
}
