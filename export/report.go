package export

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// czechDate matches the cs-CZ locale formatting the dashboard always used.
const czechDate = "2. 1. 2006 15:04:05"

const notGiven = "Nezadáno"

const statusColumnWidth = 30

func orPlaceholder(value string) string {
	if value == "" {
		return notGiven
	}
	return value
}

func formatDate(t time.Time) string {
	return t.Format(czechDate)
}

func padStatus(status string) string {
	if pad := statusColumnWidth - utf8.RuneCountInString(status); pad > 0 {
		return status + strings.Repeat(" ", pad)
	}
	return status
}

// ReportText renders the case summary document. Section order is fixed; the
// internal-notes section disappears entirely when there are no notes.
func ReportText(c *Case) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Detail události: #%s\n", c.ID)
	b.WriteString("=================================\n\n")

	b.WriteString("Základní informace:\n")
	b.WriteString("-------------------\n")
	fmt.Fprintf(&b, "Stav: %s\n", c.Status)
	assignee := c.AssignedEmployee
	if assignee == "" {
		assignee = "Nepřiřazeno"
	}
	fmt.Fprintf(&b, "Vyřizuje: %s\n", assignee)
	fmt.Fprintf(&b, "Datum vložení: %s\n\n", formatDate(c.SubmissionDate))

	b.WriteString("-------------------\n")
	b.WriteString("Kontaktní údaje:\n")
	b.WriteString("-------------------\n")
	fmt.Fprintf(&b, "Kontaktní osoba: %s\n", c.ContactPerson)
	fmt.Fprintf(&b, "Firma: %s\n", orPlaceholder(c.Company))
	fmt.Fprintf(&b, "Adresa: %s, %s, %s\n", c.ContactStreet, c.ContactCity, c.ContactZip)
	fmt.Fprintf(&b, "Email: %s\n", c.Email)
	fmt.Fprintf(&b, "Telefon: %s\n\n", c.Phone)

	b.WriteString("-------------------\n")
	b.WriteString("Majitel traktoru:\n")
	b.WriteString("-------------------\n")
	fmt.Fprintf(&b, "Jméno/Firma: %s\n", orPlaceholder(c.TractorOwnerName))
	ownerAddress := notGiven
	if c.TractorOwnerStreet != "" {
		ownerAddress = fmt.Sprintf("%s, %s, %s", c.TractorOwnerStreet, c.TractorOwnerCity, c.TractorOwnerZip)
	}
	fmt.Fprintf(&b, "Adresa: %s\n\n", ownerAddress)

	b.WriteString("-------------------\n")
	b.WriteString("Fakturační údaje:\n")
	b.WriteString("-------------------\n")
	fmt.Fprintf(&b, "Jméno/Firma: %s\n", c.BillingName)
	fmt.Fprintf(&b, "Fakturační adresa: %s, %s, %s\n", c.BillingStreet, c.BillingCity, c.BillingZip)
	fmt.Fprintf(&b, "IČO: %s\n", orPlaceholder(c.ICO))
	fmt.Fprintf(&b, "DIČ: %s\n", orPlaceholder(c.DIC))
	paper := "Ne"
	if c.WantsPaperInvoice {
		paper = "Ano"
	}
	fmt.Fprintf(&b, "Papírová faktura: %s\n\n", paper)

	b.WriteString("-------------------\n")
	b.WriteString("Popis požadavku:\n")
	b.WriteString("-------------------\n")
	fmt.Fprintf(&b, "%s\n\n", c.RequestDescription)

	if len(c.InternalNotes) > 0 {
		b.WriteString("-------------------\n")
		b.WriteString("Interní poznámky:\n")
		b.WriteString("-------------------\n")
		for _, note := range c.InternalNotes {
			fmt.Fprintf(&b, "[%s] - %s\n", formatDate(note.Date), note.Text)
		}
		b.WriteString("\n")
	}

	b.WriteString("Historie stavů:\n")
	b.WriteString("-------------------\n")
	for _, change := range c.StatusHistory {
		fmt.Fprintf(&b, "%s %s\n", padStatus(change.Status), formatDate(change.Date))
	}

	return strings.TrimSpace(b.String())
}
