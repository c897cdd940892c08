package services

import (
	"encoding/json"
	"log"

	"github.com/rentfolio/tenantportal/internal/models"
	"gorm.io/gorm"
)

// auditPageSize is the fixed page length of the audit log view.
const auditPageSize = 10

// RecordAudit writes an audit trail entry. Failures are logged, not
// propagated: auditing never blocks the action it describes.
func RecordAudit(db *gorm.DB, userID, action string, metadata map[string]interface{}) {
	var raw []byte
	if metadata != nil {
		var err error
		raw, err = json.Marshal(metadata)
		if err != nil {
			log.Printf("audit: failed to marshal metadata for %s: %v", action, err)
			raw = nil
		}
	}

	entry := models.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: raw,
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("audit: failed to record %s: %v", action, err)
	}
}

// ListAuditLogs returns one page of the audit trail, newest first, with the
// total row count for pagination.
func ListAuditLogs(db *gorm.DB, page int) ([]models.AuditLog, int64, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := db.Model(&models.AuditLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	err := db.Order("created_at DESC").
		Limit(auditPageSize).
		Offset((page - 1) * auditPageSize).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
