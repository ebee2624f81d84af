package export

import (
	"archive/zip"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// Fixed folder names inside the archive, one per file category, in the order
// the dashboard always produced them.
var folderGroups = []struct {
	Folder string
	Files  func(*Case) []File
}{
	{"technicky_prukaz", func(c *Case) []File { return c.Documents }},
	{"osvedceni_o_registraci", func(c *Case) []File { return c.RegistrationCertificates }},
	{"vyrobni_stitek", func(c *Case) []File { return c.VehiclePlatePhotos }},
	{"doklad_o_montazi", func(c *Case) []File { return c.InstallationDocuments }},
	{"fotodokumentace_vozidla", func(c *Case) []File { return c.VehicleDocumentationPhotos }},
	{"interni_dokumenty", func(c *Case) []File { return c.InternalDocuments }},
}

// ArchiveName derives the deterministic archive filename for a case.
func ArchiveName(id string) string {
	return fmt.Sprintf("udalost_%s.zip", id)
}

func decodePayload(data string) ([]byte, error) {
	// Tolerate data URLs from older clients.
	if idx := strings.Index(data, ";base64,"); idx >= 0 {
		data = data[idx+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(data)
}

// BuildArchive writes the case archive to w: the detail report at the root
// plus one folder per non-empty category with every file decoded under its
// original name. Empty categories produce no folder.
func BuildArchive(c *Case, w io.Writer) error {
	zw := zip.NewWriter(w)

	report, err := zw.Create("detail_udalosti.txt")
	if err != nil {
		return fmt.Errorf("failed to create report entry: %w", err)
	}
	if _, err := report.Write([]byte(ReportText(c))); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	for _, group := range folderGroups {
		for _, file := range group.Files(c) {
			payload, err := decodePayload(file.Data)
			if err != nil {
				return fmt.Errorf("failed to decode %s/%s: %w", group.Folder, file.Name, err)
			}
			entry, err := zw.Create(group.Folder + "/" + file.Name)
			if err != nil {
				return fmt.Errorf("failed to create %s/%s: %w", group.Folder, file.Name, err)
			}
			if _, err := entry.Write(payload); err != nil {
				return fmt.Errorf("failed to write %s/%s: %w", group.Folder, file.Name, err)
			}
		}
	}

	return zw.Close()
}
