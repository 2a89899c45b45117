package kafka

import (
	"time"

	"gorm.io/gorm"
)

// OutboxEventRecord backs the outbox_events table for migrations; the
// repository itself speaks raw SQL against the same columns.
type OutboxEventRecord struct {
	ID            string     `gorm:"type:uuid;primaryKey"`
	RequestID     string     `gorm:"type:varchar(100)"`
	AggregateType string     `gorm:"type:varchar(50);not null"`
	AggregateID   string     `gorm:"type:uuid;not null;index"`
	EventType     string     `gorm:"type:varchar(100);not null"`
	Topic         string     `gorm:"type:varchar(100);not null"`
	Payload       []byte     `gorm:"type:jsonb;not null"`
	Status        string     `gorm:"type:varchar(20);not null;default:pending;index"`
	RetryCount    int        `gorm:"not null;default:0"`
	ErrorMessage  *string    `gorm:"type:varchar(500)"`
	NextRetryAt   *time.Time `gorm:""`
	ProcessedAt   *time.Time `gorm:""`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime"`
}

func (OutboxEventRecord) TableName() string {
	return "outbox_events"
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&OutboxEventRecord{})
}
