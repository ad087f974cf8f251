package types

import (
	"time"
)

// Note is a single submitted entry. Notes are never updated or deleted.
type Note struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Note) TableName() string {
	return "notes"
}
