package models

import "time"

// ActivityLog is an append-only audit record. TaskID intentionally carries no
// foreign key constraint so entries outlive the tasks they reference.
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	Action    string    `gorm:"size:200;not null"`
	TaskID    *uint     `gorm:"index"`
	CreatedAt time.Time `gorm:"not null"`
}
