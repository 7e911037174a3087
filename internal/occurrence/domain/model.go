package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// ScheduledOccurrence is one bookable date/time instance of a class. Seats
// are committed against it by the booking flow; the class catalog owns every
// other attribute.
type ScheduledOccurrence struct {
	ID             snowflake.ID `json:"id" gorm:"primaryKey"`
	ClassID        snowflake.ID `json:"class_id" gorm:"not null;index"`
	StartDate      time.Time    `json:"start_date" gorm:"not null"`
	StartTime      string       `json:"start_time" gorm:"type:text;not null"`
	EndTime        string       `json:"end_time" gorm:"type:text;not null"`
	CommittedCount int          `json:"committed_count" gorm:"not null;default:0"`
	CreatedAt      time.Time    `json:"created_at" gorm:"not null"`
	UpdatedAt      time.Time    `json:"updated_at" gorm:"not null"`
}

func (ScheduledOccurrence) TableName() string { return "scheduled_occurrences" }
