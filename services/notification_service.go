package services

import (
	"fmt"
	"log"
	"os"
	"strings"

	"registration-service-api/config"
	"registration-service-api/models"
)

// defaultOperatorEmails receives the staff copy when OPERATOR_EMAILS is unset.
var defaultOperatorEmails = []string{"info@zetor-servis.cz", "admin@zetor-servis.cz"}

func operatorEmails() []string {
	raw := os.Getenv("OPERATOR_EMAILS")
	if raw == "" {
		return defaultOperatorEmails
	}
	parts := strings.Split(raw, ",")
	emails := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			emails = append(emails, trimmed)
		}
	}
	return emails
}

func caseSummaryHTML(sub *models.Submission) string {
	company := sub.Company
	if company == "" {
		company = "-"
	}
	return fmt.Sprintf(`
		<h2>Nový požadavek v systému: %s</h2>
		<p><strong>Kontaktní osoba:</strong> %s</p>
		<p><strong>Firma:</strong> %s</p>
		<p><strong>Email:</strong> %s</p>
		<p><strong>Telefon:</strong> %s</p>
		<hr>
		<p><strong>Popis požadavku:</strong></p>
		<p>%s</p>`,
		sub.ID, sub.ContactPerson, company, sub.Email, sub.Phone, sub.RequestDescription)
}

// SendSubmissionNotifications sends the confirmation mail to the submitter
// and a copy to the operator list. Best effort: the submission is already
// committed, failures are logged and never propagated.
func SendSubmissionNotifications(sub *models.Submission) {
	summary := caseSummaryHTML(sub)

	customerBody := fmt.Sprintf(`
		<h1>Dobrý den,</h1>
		<p>děkujeme za Váš požadavek. Zaevidovali jsme jej pod číslem <strong>%s</strong>.</p>
		<p>Naši pracovníci Vás budou brzy kontaktovat.</p>
		<br>%s`, sub.ID, summary)

	if err := config.SendMail(
		[]string{sub.Email},
		fmt.Sprintf("Potvrzení přijetí požadavku č. %s", sub.ID),
		customerBody,
	); err != nil {
		log.Printf("Failed to send confirmation mail for submission %s: %v", sub.ID, err)
	}

	if err := config.SendMail(
		operatorEmails(),
		fmt.Sprintf("NOVÝ PŘÍPAD: %s - %s", sub.ID, sub.ContactPerson),
		summary,
	); err != nil {
		log.Printf("Failed to send operator mail for submission %s: %v", sub.ID, err)
	}
}
