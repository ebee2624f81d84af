package models

// Lifecycle statuses, in their nominal order. The set is closed but
// transitions are not restricted: administrators may move a case to any
// status, including backwards, and every change lands in status_history.
const (
	StatusPending    = "Nový požadavek"
	StatusProcessing = "Vygenerováno prohlášení"
	StatusInvoiced   = "Faktura odeslána"
	StatusCompleted  = "Faktura zaplacena"
	StatusRegistered = "Prohlášení zapsáno do IZTP"
)

// InitialStatus is forced onto every new submission.
const InitialStatus = StatusPending

// Statuses lists the closed lifecycle set in order.
var Statuses = []string{
	StatusPending,
	StatusProcessing,
	StatusInvoiced,
	StatusCompleted,
	StatusRegistered,
}

// IsValidStatus reports whether s is one of the five lifecycle values.
func IsValidStatus(s string) bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}
