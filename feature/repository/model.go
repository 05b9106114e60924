package repository

import "time"

// Mapping links a source catalog record to its destination repository record.
type Mapping struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	SourceID      string    `gorm:"column:source_id;size:191;uniqueIndex;not null" json:"source_id"`
	DestinationID string    `gorm:"column:destination_id;size:191;index;not null" json:"destination_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName overrides the table name used by Mapping.
func (Mapping) TableName() string {
	return "record_mappings"
}

// mappingColumns are the columns the store reads and writes.
var mappingColumns = []string{"id", "source_id", "destination_id", "created_at", "updated_at"}
