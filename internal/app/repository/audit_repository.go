package repository

import (
	"github.com/tablehost/sop-backend/internal/app/model"
	"github.com/tablehost/sop-backend/pkg/logger"
	"gorm.io/gorm"
)

type AuditRepository interface {
	Create(entry *model.AuditLog) error
	FindByResource(resourceType string, resourceID uint) ([]model.AuditLog, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(entry *model.AuditLog) error {
	if err := r.db.Create(entry).Error; err != nil {
		logger.Error("Failed to write audit log entry", err, map[string]interface{}{
			"action":        entry.Action,
			"resource_type": entry.ResourceType,
			"resource_id":   entry.ResourceID,
		})
		return err
	}
	return nil
}

func (r *auditRepository) FindByResource(resourceType string, resourceID uint) ([]model.AuditLog, error) {
	var entries []model.AuditLog
	err := r.db.Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
