package models

import (
	"context"
	"encoding/json"
	"time"

	"bitbucket.org/mmdatafocus/pos_backend/config"
	"bitbucket.org/mmdatafocus/pos_backend/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventRecord is a transactional outbox row. Domain writers append rows
// inside their own transaction; the dispatcher publishes after commit.
type EventRecord struct {
	ID            int                 `gorm:"primary_key;index:idx_event_dispatch,priority:3" json:"id"`
	CompanyId     string              `gorm:"size:64;not null;index" json:"company_id"`
	OccurredAt    time.Time           `gorm:"index;not null" json:"occurred_at"`
	ReferenceId   int                 `json:"reference_id"`
	ReferenceType EventReferenceType  `gorm:"size:20;not null" json:"reference_type"`
	Action        EventAction         `gorm:"size:10;not null" json:"action"`
	Payload       []byte              `gorm:"type:blob" json:"payload"`
	PublishStatus OutboxPublishStatus `gorm:"size:20;not null;default:'PENDING';index;index:idx_event_dispatch,priority:1" json:"publish_status"`

	PublishedAt      *time.Time `gorm:"index" json:"published_at"`
	PubSubMessageId  *string    `gorm:"size:255" json:"pubsub_message_id"`
	PublishAttempts  int        `gorm:"not null;default:0" json:"publish_attempts"`
	NextAttemptAt    *time.Time `gorm:"index;index:idx_event_dispatch,priority:2" json:"next_attempt_at"`
	LockedAt         *time.Time `gorm:"index" json:"locked_at"`
	LockedBy         *string    `gorm:"size:100" json:"locked_by"`
	LastPublishError *string    `gorm:"type:text" json:"last_publish_error"`
	CorrelationId    string     `gorm:"size:64;index" json:"correlation_id"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func ConvertToPubSubMessage(record EventRecord) config.PubSubMessage {
	return config.PubSubMessage{
		ID:            record.ID,
		CompanyId:     record.CompanyId,
		OccurredAt:    record.OccurredAt,
		ReferenceId:   record.ReferenceId,
		ReferenceType: string(record.ReferenceType),
		Action:        string(record.Action),
		Payload:       record.Payload,
		CorrelationId: record.CorrelationId,
	}
}

// WritePosEvent appends an outbox row using the caller's transaction so the
// event commits or rolls back together with the domain write.
func WritePosEvent(ctx context.Context, tx *gorm.DB, companyId string, occurredAt time.Time, refId int, refType EventReferenceType, action EventAction, obj interface{}) error {
	payload, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	record := EventRecord{
		CompanyId:     companyId,
		OccurredAt:    occurredAt,
		ReferenceId:   refId,
		ReferenceType: refType,
		Action:        action,
		Payload:       payload,
		PublishStatus: OutboxPublishStatusPending,
		CorrelationId: correlationIdFromContextOrNew(ctx),
	}
	return tx.Create(&record).Error
}

func correlationIdFromContextOrNew(ctx context.Context) string {
	if ctx != nil {
		if v, ok := utils.GetCorrelationIdFromContext(ctx); ok && v != "" {
			return v
		}
	}
	return uuid.NewString()
}
