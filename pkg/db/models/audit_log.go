package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sirimeals/mealops-backend/pkg/enums"
)

// AuditLog records one staff operation against the scheduling or packing
// surfaces. Writes are fire-and-forget from the core's perspective.
type AuditLog struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ActorID    uuid.UUID         `gorm:"column:actor_id;type:uuid;not null" json:"actorId"`
	CustomerID *uuid.UUID        `gorm:"column:customer_id;type:uuid" json:"customerId,omitempty"`
	BagID      *uuid.UUID        `gorm:"column:bag_id;type:uuid" json:"bagId,omitempty"`
	EventType  enums.AuditEvent  `gorm:"column:event_type;not null;index" json:"eventType"`
	Detail     string            `gorm:"column:detail;not null;default:''" json:"detail"`
	Status     enums.AuditStatus `gorm:"column:status;not null" json:"status"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
}
