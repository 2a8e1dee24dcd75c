package persistence

import (
	"context"
	"time"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/entity"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

type AuditLogRepository struct {
	db *DB
}

func NewAuditLogRepository(db *DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Record stores one delivered message. Redeliveries of the same message id
// are ignored; it reports whether a row was inserted.
func (r *AuditLogRepository) Record(ctx context.Context, messageID, eventType string, payload []byte) (bool, error) {
	log := entity.AuditLog{
		ID:        uuid.New(),
		MessageID: messageID,
		EventType: eventType,
		Payload:   datatypes.JSON(payload),
		CreatedAt: time.Now().UTC(),
	}
	res := r.db.Write(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "message_id"}}, DoNothing: true}).
		Create(&log)
	return res.RowsAffected == 1, res.Error
}
