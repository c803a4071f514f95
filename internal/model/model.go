package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Model struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate 主键由服务端生成
func (m *Model) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *Model) GetID() string {
	return m.ID
}

// Stamp 维护时间戳，供 gorm 之外的存储使用
func (m *Model) Stamp(now time.Time, create bool) {
	if create && m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if !create || m.UpdatedAt.IsZero() {
		m.UpdatedAt = now
	}
}
