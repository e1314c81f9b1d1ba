package model

import "time"

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/28 21:55
 * @file: model.go
 * @description: base model
 */

type BaseModel struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// GetID returns the identifier; entities compare by it alone.
func (m BaseModel) GetID() uint64 {
	return m.ID
}

// AuditModel adds who created and last touched the row.
type AuditModel struct {
	BaseModel
	CreatedBy string `gorm:"column:created_by;size:128" json:"createdBy"`
	UpdatedBy string `gorm:"column:updated_by;size:128" json:"updatedBy"`
}

// Stamp marks the row as created by actor. UpdatedBy stays empty until the first update.
func (m *AuditModel) Stamp(actor string) {
	m.CreatedBy = actor
	m.UpdatedBy = ""
}

// Touch marks the row as updated by actor.
func (m *AuditModel) Touch(actor string) {
	m.UpdatedBy = actor
	m.UpdatedAt = time.Now()
}

type Entity interface {
	GetID() uint64
}

// SameEntity reports whether a and b are the same persisted row.
func SameEntity(a, b Entity) bool {
	if a == nil || b == nil {
		return false
	}
	return a.GetID() != 0 && a.GetID() == b.GetID()
}
