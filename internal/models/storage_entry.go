package models

import (
	"time"

	"gorm.io/datatypes"
)

// StorageEntry is one row of the SQL key-value table. Value is kept in a text
// column so that whatever bytes were written (even malformed JSON) are read
// back unchanged.
type StorageEntry struct {
	Key       string         `gorm:"column:storage_key;primaryKey;size:191"`
	Value     datatypes.JSON `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (StorageEntry) TableName() string {
	return "storage_entries"
}
