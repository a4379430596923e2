package common

import (
	"log"
	"tbs/src/db"
	"tbs/src/models"
)

// RecordAudit appends one diagnostic record for an outbound provider
// call. Write failures are logged and swallowed; they never reach the
// caller's outcome.
func RecordAudit(entry *models.AuditLog) {
	d := db.GetDb()
	if d == nil {
		return
	}
	if err := d.Create(entry).Error; err != nil {
		log.Printf("[audit] Failed to write audit record for %s/%s: %s\n", entry.Provider, entry.Action, err.Error())
	}
}
