package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusTodo  = "todo"
	StatusDoing = "doing"
	StatusDone  = "done"
)

const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
)

type Task struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"not null;index"`
	Title       string          `gorm:"size:140;not null"`
	Description string          `gorm:"size:2000"`
	Status      string          `gorm:"size:16;not null;default:todo"` // todo|doing|done
	Priority    int             `gorm:"not null;default:2"`            // 1 high, 2 medium, 3 low
	DueDate     *datatypes.Date `gorm:"type:date"`
	CreatedAt   time.Time       `gorm:"not null"`
	// autoUpdateTime off: the lifecycle service stamps this from its own
	// clock, and a conventional UpdatedAt would be overwritten on Save.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
