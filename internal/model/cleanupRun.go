package model

import "gorm.io/datatypes"

type CleanupType string

const (
	CleanupDuplicate  CleanupType = "duplicate"
	CleanupIncomplete CleanupType = "incomplete"
	CleanupTest       CleanupType = "test"
	CleanupOrphaned   CleanupType = "orphaned"
	CleanupAll        CleanupType = "all"
)

func (t CleanupType) Valid() bool {
	switch t {
	case CleanupDuplicate, CleanupIncomplete, CleanupTest, CleanupOrphaned, CleanupAll:
		return true
	}
	return false
}

// CleanupRun 数据清理记录，删除不可恢复，保留被删工单 ID 备查
type CleanupRun struct {
	Model
	Type       CleanupType                 `gorm:"type:varchar(20);not null" json:"type"`
	DeletedIDs datatypes.JSONSlice[string] `json:"deleted_ids"`
	Count      int                         `json:"count"`
	Operator   string                      `gorm:"type:varchar(100)" json:"operator"`
}
